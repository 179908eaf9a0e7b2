// Copyright Mia srl
// SPDX-License-Identifier: AGPL-3.0-only or Commercial

package qr

import "fmt"

const (
	// MaskCount is the number of data mask patterns.
	MaskCount = 8

	penaltyN1 = 3
	penaltyN2 = 3
	penaltyN3 = 40
	penaltyN4 = 10
)

// AutoMask lets the encoder select the mask pattern with the lowest penalty.
const AutoMask = -1

func validateMask(mask int) error {
	if mask != AutoMask && (mask < 0 || mask >= MaskCount) {
		return fmt.Errorf("%w: %d (must be between 0 and %d)", ErrInvalidMask, mask, MaskCount-1)
	}

	return nil
}

// maskCondition reports whether the data module at column x and row y is inverted by mask.
func maskCondition(mask, x, y int) bool {
	switch mask {
	case 0:
		return (x+y)%2 == 0
	case 1:
		return y%2 == 0
	case 2:
		return x%3 == 0
	case 3:
		return (x+y)%3 == 0
	case 4:
		return (x/3+y/2)%2 == 0
	case 5:
		return x*y%2+x*y%3 == 0
	case 6:
		return (x*y%2+x*y%3)%2 == 0
	case 7:
		return ((x+y)%2+x*y%3)%2 == 0
	default:
		return false
	}
}

// applyMask inverts every data module selected by mask. Applying the same mask twice
// restores the original matrix.
func (m *matrix) applyMask(mask int) {
	for y, row := range m.modules {
		for x, module := range row {
			if module.Kind == Data && maskCondition(mask, x, y) {
				row[x].Dark = !module.Dark
			}
		}
	}
}

// penalty scores the matrix with the four rules of the standard; lower is better.
func (m *matrix) penalty() int {
	dark := func(x, y int) bool { return m.modules[y][x].Dark }
	transposed := func(x, y int) bool { return m.modules[x][y].Dark }

	score := 0
	for _, at := range []func(int, int) bool{dark, transposed} {
		for line := range m.size {
			score += m.runPenalty(line, at)
			score += m.finderLikePenalty(line, at)
		}
	}

	// 2x2 blocks of the same colour
	for y := 0; y < m.size-1; y++ {
		for x := 0; x < m.size-1; x++ {
			color := dark(x, y)
			if color == dark(x+1, y) && color == dark(x, y+1) && color == dark(x+1, y+1) {
				score += penaltyN2
			}
		}
	}

	// balance of dark and light modules
	darkCount := 0
	for y := range m.size {
		for x := range m.size {
			if dark(x, y) {
				darkCount++
			}
		}
	}
	percent := darkCount * 100 / (m.size * m.size)
	previous := percent - percent%5
	next := previous + 5
	score += min(abs(previous-50)/5, abs(next-50)/5) * penaltyN4

	return score
}

// runPenalty scores runs of five or more modules of the same colour in a line.
func (m *matrix) runPenalty(line int, at func(int, int) bool) int {
	score := 0
	runLength := 1
	for i := 1; i <= m.size; i++ {
		if i < m.size && at(i, line) == at(i-1, line) {
			runLength++
			continue
		}

		if runLength >= 5 {
			score += penaltyN1 + runLength - 5
		}
		runLength = 1
	}

	return score
}

var finderLikePatterns = [2][11]bool{
	{true, false, true, true, true, false, true, false, false, false, false},
	{false, false, false, false, true, false, true, true, true, false, true},
}

// finderLikePenalty scores the 1:1:3:1:1 patterns preceded or followed by four light modules.
func (m *matrix) finderLikePenalty(line int, at func(int, int) bool) int {
	score := 0
	for start := 0; start+11 <= m.size; start++ {
		for _, pattern := range finderLikePatterns {
			matched := true
			for k, want := range pattern {
				if at(start+k, line) != want {
					matched = false
					break
				}
			}
			if matched {
				score += penaltyN3
			}
		}
	}

	return score
}
