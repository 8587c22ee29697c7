// Package block implements bounded-size block storage for track samples.
//
// Samples are kept as a list of blocks no longer than the configured
// maximum. Appending in block-sized chunks avoids reallocating large
// contiguous buffers while a track grows; editing operations (delete,
// insert) repack the affected region.
package block

const (
	// DefaultMaxBlockSize is the block size used when none is specified.
	// 256k samples (2 MB of float64) keeps individual allocations modest
	// while amortizing per-block overhead.
	DefaultMaxBlockSize = 262144

	// minBlockSize guards against degenerate configurations.
	minBlockSize = 256
)

// Buffer is an append-optimized sample container backed by fixed-size
// blocks. All indices are sample counts from the start of the buffer.
//
// Invariant after Flush: every block except the last is exactly
// maxBlockSize long.
type Buffer struct {
	blocks  [][]float64
	length  int
	maxSize int
}

// New creates an empty buffer with the given maximum block size.
// Sizes below the minimum are clamped.
func New(maxBlockSize int) *Buffer {
	if maxBlockSize < minBlockSize {
		maxBlockSize = minBlockSize
	}
	return &Buffer{maxSize: maxBlockSize}
}

// Len returns the number of samples stored.
func (b *Buffer) Len() int {
	return b.length
}

// MaxBlockSize returns the configured maximum block length.
func (b *Buffer) MaxBlockSize() int {
	return b.maxSize
}

// BestBlockSize returns the preferred append chunk size at sample index
// at: the room left in the block that index falls into. Appending in
// these chunks keeps blocks aligned to the maximum size.
func (b *Buffer) BestBlockSize(at int) int {
	if at < 0 {
		return b.maxSize
	}
	return b.maxSize - at%b.maxSize
}

// Append adds samples to the end of the buffer, splitting across blocks
// as needed. The input slice is copied.
func (b *Buffer) Append(samples []float64) {
	for len(samples) > 0 {
		if n := len(b.blocks); n == 0 || len(b.blocks[n-1]) >= b.maxSize {
			b.blocks = append(b.blocks, make([]float64, 0, b.maxSize))
		}
		last := len(b.blocks) - 1
		room := b.maxSize - len(b.blocks[last])
		take := min(room, len(samples))
		b.blocks[last] = append(b.blocks[last], samples[:take]...)
		samples = samples[take:]
		b.length += take
	}
}

// AppendSilence appends n zero samples.
func (b *Buffer) AppendSilence(n int) {
	if n <= 0 {
		return
	}
	b.Append(make([]float64, n))
}

// Flush repacks the buffer so that every block except the last is full.
// Append already maintains this, so Flush only has work to do after
// Delete or Insert left short blocks behind.
func (b *Buffer) Flush() {
	for i := 0; i < len(b.blocks)-1; i++ {
		if len(b.blocks[i]) != b.maxSize {
			b.repack()
			return
		}
	}
}

// Get copies samples [start, start+len(out)) into out. Regions outside
// the buffer are zero-filled. Returns the number of samples that came
// from stored data.
func (b *Buffer) Get(start int, out []float64) int {
	for i := range out {
		out[i] = 0
	}
	if start >= b.length || start+len(out) <= 0 {
		return 0
	}
	copied := 0
	pos := 0 // start index of the current block
	for _, blk := range b.blocks {
		blkEnd := pos + len(blk)
		lo := max(start, pos)
		hi := min(start+len(out), blkEnd)
		if lo < hi {
			copied += copy(out[lo-start:hi-start], blk[lo-pos:hi-pos])
		}
		pos = blkEnd
		if pos >= start+len(out) {
			break
		}
	}
	return copied
}

// Delete removes count samples starting at index start. Out-of-range
// portions are ignored.
func (b *Buffer) Delete(start, count int) {
	if start < 0 {
		count += start
		start = 0
	}
	if start >= b.length || count <= 0 {
		return
	}
	count = min(count, b.length-start)
	flat := b.flatten()
	flat = append(flat[:start], flat[start+count:]...)
	b.rebuild(flat)
}

// Insert places samples into the buffer so that samples[0] lands at
// index start. Inserting past the end pads the gap with silence.
func (b *Buffer) Insert(start int, samples []float64) {
	if len(samples) == 0 {
		return
	}
	if start < 0 {
		start = 0
	}
	flat := b.flatten()
	if start > len(flat) {
		flat = append(flat, make([]float64, start-len(flat))...)
	}
	out := make([]float64, 0, len(flat)+len(samples))
	out = append(out, flat[:start]...)
	out = append(out, samples...)
	out = append(out, flat[start:]...)
	b.rebuild(out)
}

// InsertSilence inserts n zero samples at index start.
func (b *Buffer) InsertSilence(start, n int) {
	if n <= 0 {
		return
	}
	b.Insert(start, make([]float64, n))
}

// Clone returns a deep copy of the buffer.
func (b *Buffer) Clone() *Buffer {
	out := New(b.maxSize)
	out.blocks = make([][]float64, len(b.blocks))
	for i, blk := range b.blocks {
		c := make([]float64, len(blk), cap(blk))
		copy(c, blk)
		out.blocks[i] = c
	}
	out.length = b.length
	return out
}

// NumBlocks returns the current block count.
func (b *Buffer) NumBlocks() int {
	return len(b.blocks)
}

func (b *Buffer) flatten() []float64 {
	flat := make([]float64, 0, b.length)
	for _, blk := range b.blocks {
		flat = append(flat, blk...)
	}
	return flat
}

func (b *Buffer) rebuild(flat []float64) {
	b.blocks = nil
	b.length = 0
	b.Append(flat)
}

func (b *Buffer) repack() {
	b.rebuild(b.flatten())
}
