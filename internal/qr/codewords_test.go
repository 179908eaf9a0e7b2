// Copyright Mia srl
// SPDX-License-Identifier: AGPL-3.0-only or Commercial

package qr

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDataCodewords(t *testing.T) {
	t.Parallel()

	codewords := dataCodewords(NewSegment("HELLO WORLD"), 1, Quartile)
	assert.Equal(t, []byte{0x20, 0x5B, 0x0B, 0x78, 0xD1, 0x72, 0xDC, 0x4D, 0x43, 0x40, 0xEC, 0x11, 0xEC}, codewords)

	codewords = dataCodewords(NewSegment("HELLO WORLD"), 1, Medium)
	assert.Equal(t, []byte{32, 91, 11, 120, 209, 114, 220, 77, 67, 64, 236, 17, 236, 17, 236, 17}, codewords)
}

func TestSplitBlocks(t *testing.T) {
	t.Parallel()

	t.Run("single group", func(t *testing.T) {
		t.Parallel()

		codewords := dataCodewords(NewSegment("HELLO WORLD"), 1, Quartile)
		blocks := splitBlocks(codewords, 1, Quartile)
		require.Len(t, blocks, 1)
		assert.Equal(t, codewords, blocks[0].data)
		assert.Len(t, blocks[0].ec, 13)
	})

	t.Run("two groups", func(t *testing.T) {
		t.Parallel()

		codewords := dataCodewords(NewSegment("Hello, world! I am a weirdly complicated QR code!"), 5, Quartile)
		blocks := splitBlocks(codewords, 5, Quartile)
		require.Len(t, blocks, 4)

		expected := [][]byte{
			{0x43, 0x14, 0x86, 0x56, 0xC6, 0xC6, 0xF2, 0xC2, 0x07, 0x76, 0xF7, 0x26, 0xC6, 0x42, 0x12},
			{0x04, 0x92, 0x06, 0x16, 0xD2, 0x06, 0x12, 0x07, 0x76, 0x56, 0x97, 0x26, 0x46, 0xC7, 0x92},
			{0x06, 0x36, 0xF6, 0xD7, 0x06, 0xC6, 0x96, 0x36, 0x17, 0x46, 0x56, 0x42, 0x05, 0x15, 0x22, 0x06},
			{0x36, 0xF6, 0x46, 0x52, 0x10, 0xEC, 0x11, 0xEC, 0x11, 0xEC, 0x11, 0xEC, 0x11, 0xEC, 0x11, 0xEC},
		}
		for i, b := range blocks {
			assert.Equal(t, expected[i], b.data, "block %d", i)
			assert.Len(t, b.ec, 18, "block %d", i)
		}
	})
}

func TestInterleave(t *testing.T) {
	t.Parallel()

	blocks := []block{
		{data: []byte{1, 2}, ec: []byte{10, 11}},
		{data: []byte{3, 4}, ec: []byte{12, 13}},
		{data: []byte{5, 6, 7}, ec: []byte{14, 15}},
	}

	assert.Equal(t, []byte{1, 3, 5, 2, 4, 6, 7, 10, 12, 14, 11, 13, 15}, interleave(blocks))
	assert.Empty(t, interleave(nil))
}
