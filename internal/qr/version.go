// Copyright Mia srl
// SPDX-License-Identifier: AGPL-3.0-only or Commercial

package qr

import "fmt"

const (
	// MinVersion is the smallest symbol version, 21x21 modules.
	MinVersion = 1
	// MaxVersion is the largest symbol version, 177x177 modules.
	MaxVersion = 40
)

// Version is a symbol version, numbered from 1 to 40.
type Version int

// blockLayout describes how the data codewords of a version are split at one level.
type blockLayout struct {
	ecPerBlock      int
	group1Blocks    int
	group1Codewords int
	group2Blocks    int
}

// VersionByNumber returns the version numbered num.
func VersionByNumber(num int) (Version, error) {
	if num < MinVersion || num > MaxVersion {
		return 0, fmt.Errorf("%w: %d (must be between %d and %d)", ErrInvalidVersion, num, MinVersion, MaxVersion)
	}

	return Version(num), nil
}

// ModulesPerSide returns the number of modules on a single side of the symbol.
func (v Version) ModulesPerSide() int {
	return 4*(int(v)-1) + 21
}

func (v Version) layout(level Level) blockLayout {
	return blockLayouts[v-1][level]
}

// DataCodewords returns how many data codewords the version holds at level.
func (v Version) DataCodewords(level Level) int {
	layout := v.layout(level)
	return layout.group1Blocks*layout.group1Codewords + layout.group2Blocks*(layout.group1Codewords+1)
}

// ECCodewordsPerBlock returns the number of error correction codewords in each block at level.
func (v Version) ECCodewordsPerBlock(level Level) int {
	return v.layout(level).ecPerBlock
}

// BlockSizes returns the data codeword count of every block at level, group 1 first.
func (v Version) BlockSizes(level Level) []int {
	layout := v.layout(level)
	sizes := make([]int, 0, layout.group1Blocks+layout.group2Blocks)
	for range layout.group1Blocks {
		sizes = append(sizes, layout.group1Codewords)
	}
	for range layout.group2Blocks {
		sizes = append(sizes, layout.group1Codewords+1)
	}

	return sizes
}

// TotalCodewords returns the data plus error correction codewords of the version.
func (v Version) TotalCodewords() int {
	layout := v.layout(Low)
	blocks := layout.group1Blocks + layout.group2Blocks
	return v.DataCodewords(Low) + blocks*layout.ecPerBlock
}

// alignmentPositions returns the row and column centres of the alignment patterns.
func (v Version) alignmentPositions() []int {
	if v == 1 {
		return nil
	}

	count := int(v)/7 + 2
	step := (int(v)*8 + count*3 + 5) / (count*4 - 4) * 2
	positions := make([]int, count)
	positions[0] = 6
	for i, pos := count-1, v.ModulesPerSide()-7; i >= 1; i, pos = i-1, pos-step {
		positions[i] = pos
	}

	return positions
}

// ChooseVersion returns the smallest version, starting from minVersion, that can hold
// segment at level.
func ChooseVersion(segment *Segment, level Level, minVersion int) (Version, error) {
	if !level.Valid() {
		return 0, fmt.Errorf("%w: %d", ErrUnknownLevel, int(level))
	}

	start, err := VersionByNumber(max(minVersion, MinVersion))
	if err != nil {
		return 0, err
	}

	for version := start; version <= MaxVersion; version++ {
		used := segment.totalBits(int(version))
		if used >= 0 && used <= version.DataCodewords(level)*8 {
			return version, nil
		}
	}

	return 0, &CapacityError{Level: level, Mode: segment.Mode, Bits: segment.bitLength(MaxVersion)}
}
