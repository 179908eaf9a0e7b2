// Copyright Mia srl
// SPDX-License-Identifier: AGPL-3.0-only or Commercial

package qr

// ModuleKind tells which part of the symbol a module belongs to.
type ModuleKind int

const (
	// Unset modules have not been assigned yet.
	Unset ModuleKind = iota
	// Finder modules form the three position detection patterns.
	Finder
	// Separator modules are the light border around the finder patterns.
	Separator
	// Timing modules form the alternating row and column patterns.
	Timing
	// Alignment modules form the alignment patterns.
	Alignment
	// Format modules hold the error correction level and mask pattern.
	Format
	// VersionInfo modules hold the version number, from version 7 onwards.
	VersionInfo
	// DarkModule is the single module that is always dark.
	DarkModule
	// Data modules hold the masked codewords.
	Data
)

// Module is a single square of the symbol.
type Module struct {
	Kind ModuleKind
	Dark bool
}

// isFunction reports whether the module belongs to a function pattern and must not be masked.
func (m Module) isFunction() bool {
	return m.Kind != Unset && m.Kind != Data
}

// matrix is the module grid of a symbol, indexed as modules[y][x].
type matrix struct {
	size    int
	modules [][]Module
}

func newMatrix(version Version) *matrix {
	size := version.ModulesPerSide()
	modules := make([][]Module, size)
	for y := range modules {
		modules[y] = make([]Module, size)
	}

	return &matrix{size: size, modules: modules}
}

func (m *matrix) set(x, y int, kind ModuleKind, dark bool) {
	m.modules[y][x] = Module{Kind: kind, Dark: dark}
}

func (m *matrix) clone() *matrix {
	modules := make([][]Module, m.size)
	for y, row := range m.modules {
		modules[y] = make([]Module, m.size)
		copy(modules[y], row)
	}

	return &matrix{size: m.size, modules: modules}
}

// drawFunctionPatterns places every function pattern of version. Format modules are
// reserved with light values until the mask is known.
func (m *matrix) drawFunctionPatterns(version Version) {
	for i := range m.size {
		m.set(6, i, Timing, i%2 == 0)
		m.set(i, 6, Timing, i%2 == 0)
	}

	m.drawFinder(3, 3)
	m.drawFinder(m.size-4, 3)
	m.drawFinder(3, m.size-4)

	positions := version.alignmentPositions()
	last := len(positions) - 1
	for i, y := range positions {
		for j, x := range positions {
			// skip the three corners taken by the finders
			if (i == 0 && j == 0) || (i == 0 && j == last) || (i == last && j == 0) {
				continue
			}
			m.drawAlignment(x, y)
		}
	}

	m.drawFormatBits(0)
	m.drawVersion(version)
}

// drawFinder draws a finder pattern centred on (x, y) along with its separator.
func (m *matrix) drawFinder(x, y int) {
	for dy := -4; dy <= 4; dy++ {
		for dx := -4; dx <= 4; dx++ {
			xx, yy := x+dx, y+dy
			if xx < 0 || xx >= m.size || yy < 0 || yy >= m.size {
				continue
			}

			distance := max(abs(dx), abs(dy))
			if distance == 4 {
				m.set(xx, yy, Separator, false)
				continue
			}
			m.set(xx, yy, Finder, distance != 2)
		}
	}
}

// drawAlignment draws a 5x5 alignment pattern centred on (x, y).
func (m *matrix) drawAlignment(x, y int) {
	for dy := -2; dy <= 2; dy++ {
		for dx := -2; dx <= 2; dx++ {
			m.set(x+dx, y+dy, Alignment, max(abs(dx), abs(dy)) != 1)
		}
	}
}

// drawFormatBits writes both copies of the format information for level and mask.
func (m *matrix) drawFormatBits(bits int) {
	bit := func(i int) bool { return (bits>>uint(i))&1 == 1 }

	for i := 0; i <= 5; i++ {
		m.set(8, i, Format, bit(i))
	}
	m.set(8, 7, Format, bit(6))
	m.set(8, 8, Format, bit(7))
	m.set(7, 8, Format, bit(8))
	for i := 9; i < 15; i++ {
		m.set(14-i, 8, Format, bit(i))
	}

	for i := range 8 {
		m.set(m.size-1-i, 8, Format, bit(i))
	}
	for i := 8; i < 15; i++ {
		m.set(8, m.size-15+i, Format, bit(i))
	}

	m.set(8, m.size-8, DarkModule, true)
}

// drawVersion writes both copies of the version information, for version 7 and above.
func (m *matrix) drawVersion(version Version) {
	if version < 7 {
		return
	}

	bits := versionInfoBits(version)
	for i := range 18 {
		dark := (bits>>uint(i))&1 == 1
		a := m.size - 11 + i%3
		b := i / 3
		m.set(a, b, VersionInfo, dark)
		m.set(b, a, VersionInfo, dark)
	}
}

// drawCodewords places the codeword bits in the zigzag order, skipping function modules.
// Remainder modules stay light.
func (m *matrix) drawCodewords(codewords []byte) {
	totalBits := len(codewords) * 8
	i := 0
	for right := m.size - 1; right >= 1; right -= 2 {
		if right == 6 {
			right = 5
		}

		upward := (right+1)&2 == 0
		for vertical := range m.size {
			for j := range 2 {
				x := right - j
				y := vertical
				if upward {
					y = m.size - 1 - vertical
				}

				if m.modules[y][x].isFunction() {
					continue
				}

				dark := false
				if i < totalBits {
					dark = (codewords[i>>3]>>(7-uint(i&7)))&1 == 1
					i++
				}
				m.set(x, y, Data, dark)
			}
		}
	}
}

// formatInfoBits returns the 15 bit BCH protected format information.
func formatInfoBits(level Level, mask int) int {
	data := level.formatBits()<<3 | mask
	remainder := data
	for range 10 {
		remainder = (remainder << 1) ^ ((remainder >> 9) * 0x537)
	}

	return (data<<10 | remainder) ^ 0x5412
}

// versionInfoBits returns the 18 bit BCH protected version information.
func versionInfoBits(version Version) int {
	remainder := int(version)
	for range 12 {
		remainder = (remainder << 1) ^ ((remainder >> 11) * 0x1F25)
	}

	return int(version)<<12 | remainder
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}
