// Copyright Mia srl
// SPDX-License-Identifier: AGPL-3.0-only or Commercial

package qr

// Code is an encoded QR symbol.
type Code struct {
	// Version of the symbol.
	Version Version
	// Level is the error correction level of the symbol.
	Level Level
	// Mode used to encode the data.
	Mode Mode
	// Mask is the data mask pattern applied to the symbol.
	Mask int

	matrix *matrix
}

type settings struct {
	mask       int
	minVersion int
}

// Option customizes how Encode builds a symbol.
type Option func(*settings)

// WithMask forces the data mask pattern instead of selecting the one with the lowest
// penalty. AutoMask restores automatic selection.
func WithMask(mask int) Option {
	return func(s *settings) {
		s.mask = mask
	}
}

// WithMinVersion makes version selection start at version instead of 1.
func WithMinVersion(version int) Option {
	return func(s *settings) {
		s.minVersion = version
	}
}

// Encode builds the QR symbol for data at the error correction level.
func Encode(data string, level Level, opts ...Option) (*Code, error) {
	cfg := &settings{mask: AutoMask, minVersion: MinVersion}
	for _, opt := range opts {
		opt(cfg)
	}

	if err := validateMask(cfg.mask); err != nil {
		return nil, err
	}

	segment := NewSegment(data)
	version, err := ChooseVersion(segment, level, cfg.minVersion)
	if err != nil {
		return nil, err
	}

	blocks := splitBlocks(dataCodewords(segment, version, level), version, level)

	base := newMatrix(version)
	base.drawFunctionPatterns(version)
	base.drawCodewords(interleave(blocks))

	mask := cfg.mask
	if mask == AutoMask {
		mask = chooseMask(base, level)
	}

	final := base.clone()
	final.applyMask(mask)
	final.drawFormatBits(formatInfoBits(level, mask))

	return &Code{
		Version: version,
		Level:   level,
		Mode:    segment.Mode,
		Mask:    mask,
		matrix:  final,
	}, nil
}

// chooseMask returns the mask pattern with the lowest penalty, the lowest index on ties.
func chooseMask(base *matrix, level Level) int {
	best := 0
	bestPenalty := -1
	for mask := range MaskCount {
		candidate := base.clone()
		candidate.applyMask(mask)
		candidate.drawFormatBits(formatInfoBits(level, mask))

		if penalty := candidate.penalty(); bestPenalty < 0 || penalty < bestPenalty {
			best = mask
			bestPenalty = penalty
		}
	}

	return best
}

// Size returns the number of modules on a side, without quiet zone.
func (c *Code) Size() int {
	return c.matrix.size
}

// Dark reports whether the module at column x and row y is dark. Coordinates outside
// the symbol are light, so callers can draw the quiet zone without bounds checks.
func (c *Code) Dark(x, y int) bool {
	if x < 0 || y < 0 || x >= c.matrix.size || y >= c.matrix.size {
		return false
	}

	return c.matrix.modules[y][x].Dark
}

// Module returns the module at column x and row y.
func (c *Code) Module(x, y int) Module {
	if x < 0 || y < 0 || x >= c.matrix.size || y >= c.matrix.size {
		return Module{}
	}

	return c.matrix.modules[y][x]
}

// Penalty returns the mask penalty score of the symbol.
func (c *Code) Penalty() int {
	return c.matrix.penalty()
}
