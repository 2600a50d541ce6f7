package rt4d

// FlashProgress describes the state of the write loop after one block.
type FlashProgress struct {
	// Offset of the block just written.
	Offset int

	// ChunkSize is the size of the block just written.
	ChunkSize int

	// BytesWritten is the running total of acknowledged bytes.
	BytesWritten int

	// TotalBytes is the padded image size.
	TotalBytes int

	// OK reports whether the block was acknowledged.
	OK bool
}

// ProgressCallback is called after every write block. Implementations
// should return quickly; the bootloader expects the next block
// promptly.
type ProgressCallback func(FlashProgress)
