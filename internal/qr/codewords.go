// Copyright Mia srl
// SPDX-License-Identifier: AGPL-3.0-only or Commercial

package qr

const (
	padByteFirst  = 0xEC
	padByteSecond = 0x11
)

// dataCodewords builds the padded data codewords of segment for version and level.
func dataCodewords(segment *Segment, version Version, level Level) []byte {
	capacityBits := version.DataCodewords(level) * 8

	var buffer bitBuffer
	segment.appendTo(&buffer, int(version))

	buffer.appendBits(0, min(4, capacityBits-buffer.len()))
	buffer.appendBits(0, (8-buffer.len()%8)%8)

	codewords := buffer.bytes()
	for pad := byte(padByteFirst); len(codewords) < version.DataCodewords(level); pad ^= padByteFirst ^ padByteSecond {
		codewords = append(codewords, pad)
	}

	return codewords
}

// block is a slice of data codewords with its error correction codewords.
type block struct {
	data []byte
	ec   []byte
}

// splitBlocks divides codewords in the group 1 and group 2 blocks of version at level
// and computes the error correction codewords of each block.
func splitBlocks(codewords []byte, version Version, level Level) []block {
	sizes := version.BlockSizes(level)
	ecCount := version.ECCodewordsPerBlock(level)

	blocks := make([]block, 0, len(sizes))
	offset := 0
	for _, size := range sizes {
		data := codewords[offset : offset+size]
		offset += size
		blocks = append(blocks, block{
			data: data,
			ec:   ecCodewords(data, ecCount),
		})
	}

	return blocks
}

// interleave returns the final codeword sequence: the data codewords taken column by
// column across blocks, followed by the error correction codewords taken the same way.
func interleave(blocks []block) []byte {
	longestData := 0
	total := 0
	for _, b := range blocks {
		longestData = max(longestData, len(b.data))
		total += len(b.data) + len(b.ec)
	}

	out := make([]byte, 0, total)
	for i := range longestData {
		for _, b := range blocks {
			if i < len(b.data) {
				out = append(out, b.data[i])
			}
		}
	}

	if len(blocks) > 0 {
		for i := range len(blocks[0].ec) {
			for _, b := range blocks {
				out = append(out, b.ec[i])
			}
		}
	}

	return out
}
