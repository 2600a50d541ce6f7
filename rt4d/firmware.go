package rt4d

import (
	"fmt"
	"os"

	"github.com/sigurn/crc16"
)

// Flash geometry of the RT-4D and compatible clones.
const (
	// WriteBlockSize is the fixed data length of one WriteFlash frame.
	WriteBlockSize = 0x400

	// MemorySize is the size of the writable flash region. It is an
	// exact multiple of WriteBlockSize (246 blocks), so chunking a
	// padded image never yields a short final block.
	MemorySize = 0x3d800
)

// OversizeError is returned when a firmware blob does not fit the
// radio's flash region. Truncating would silently discard code, so
// oversized images are always rejected.
type OversizeError struct {
	Size int
	Max  int
}

func (e *OversizeError) Error() string {
	return fmt.Sprintf("firmware of %d (%#x) bytes exceeds flash size of %d (%#x) bytes",
		e.Size, e.Size, e.Max, e.Max)
}

// FirmwareImage is an immutable firmware blob, zero-padded to the full
// flash size and ready to be split into write blocks.
type FirmwareImage struct {
	data    []byte // padded to MemorySize
	rawSize int
	padding int
	crc     uint16
}

// Chunk is one write block of a firmware image. Offsets run over the
// whole flash region, well past 64 KiB; they are only truncated to two
// bytes when a write frame is built.
type Chunk struct {
	Offset int
	Data   []byte
}

var crcTable = crc16.MakeTable(crc16.CRC16_CCITT_FALSE)

// FirmwareFromBytes wraps a raw firmware blob. Blobs smaller than
// MemorySize are zero-padded up to it; larger blobs are rejected with
// an OversizeError.
func FirmwareFromBytes(raw []byte) (*FirmwareImage, error) {
	if len(raw) > MemorySize {
		return nil, &OversizeError{Size: len(raw), Max: MemorySize}
	}

	data := make([]byte, MemorySize)
	copy(data, raw)

	return &FirmwareImage{
		data:    data,
		rawSize: len(raw),
		padding: MemorySize - len(raw),
		crc:     crc16.Checksum(raw, crcTable),
	}, nil
}

// LoadFirmware reads a raw firmware blob from a file.
func LoadFirmware(filepath string) (*FirmwareImage, error) {
	raw, err := os.ReadFile(filepath)
	if err != nil {
		return nil, fmt.Errorf("error reading firmware file: %v", err)
	}
	return FirmwareFromBytes(raw)
}

// Size returns the padded image size, always MemorySize.
func (f *FirmwareImage) Size() int { return len(f.data) }

// RawSize returns the firmware size before padding.
func (f *FirmwareImage) RawSize() int { return f.rawSize }

// Padding returns the number of zero bytes appended to the blob.
func (f *FirmwareImage) Padding() int { return f.padding }

// CRC16 returns the CRC16/CCITT-FALSE fingerprint of the raw blob,
// before padding. The bootloader never sees it; it only identifies the
// image in logs.
func (f *FirmwareImage) CRC16() uint16 { return f.crc }

// Chunks splits the padded image into consecutive WriteBlockSize blocks
// with ascending offsets. The blocks alias the image buffer; callers
// must not modify them. Re-calling yields the same sequence.
func (f *FirmwareImage) Chunks() []Chunk {
	chunks := make([]Chunk, 0, MemorySize/WriteBlockSize)
	for offset := 0; offset < MemorySize; offset += WriteBlockSize {
		chunks = append(chunks, Chunk{
			Offset: offset,
			Data:   f.data[offset : offset+WriteBlockSize],
		})
	}
	return chunks
}

func (f *FirmwareImage) String() string {
	return fmt.Sprintf("firmware %d (%#04x) bytes, padding %d bytes, CRC %#04x",
		f.rawSize, f.rawSize, f.padding, f.crc)
}
