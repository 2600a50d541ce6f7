package rt4d

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/sigurn/crc16"
)

func TestFirmwareFromBytesPadding(t *testing.T) {
	tests := []struct {
		name        string
		rawSize     int
		wantPadding int
	}{
		{
			name:        "small image is padded to full flash size",
			rawSize:     100,
			wantPadding: MemorySize - 100,
		},
		{
			name:        "image one block short",
			rawSize:     MemorySize - WriteBlockSize,
			wantPadding: WriteBlockSize,
		},
		{
			name:        "full size image needs no padding",
			rawSize:     MemorySize,
			wantPadding: 0,
		},
		{
			name:        "empty image is all padding",
			rawSize:     0,
			wantPadding: MemorySize,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			raw := bytes.Repeat([]byte{0x5a}, tt.rawSize)

			fw, err := FirmwareFromBytes(raw)
			if err != nil {
				t.Fatalf("FirmwareFromBytes: %v", err)
			}

			if fw.Size() != MemorySize {
				t.Errorf("Size = %d, want %d", fw.Size(), MemorySize)
			}
			if fw.RawSize() != tt.rawSize {
				t.Errorf("RawSize = %d, want %d", fw.RawSize(), tt.rawSize)
			}
			if fw.Padding() != tt.wantPadding {
				t.Errorf("Padding = %d, want %d", fw.Padding(), tt.wantPadding)
			}
		})
	}
}

func TestFirmwareFromBytesOversize(t *testing.T) {
	fw, err := FirmwareFromBytes(make([]byte, MemorySize+1))
	if fw != nil {
		t.Error("oversized image was accepted")
	}

	var oversize *OversizeError
	if !errors.As(err, &oversize) {
		t.Fatalf("error = %v, want *OversizeError", err)
	}
	if oversize.Size != MemorySize+1 || oversize.Max != MemorySize {
		t.Errorf("OversizeError = %+v", oversize)
	}
}

func TestFirmwareContentAndPaddingBytes(t *testing.T) {
	raw := []byte{1, 2, 3, 4, 5}

	fw, err := FirmwareFromBytes(raw)
	if err != nil {
		t.Fatalf("FirmwareFromBytes: %v", err)
	}

	chunks := fw.Chunks()
	if !bytes.Equal(chunks[0].Data[:5], raw) {
		t.Errorf("image start = % x, want % x", chunks[0].Data[:5], raw)
	}
	for i, b := range chunks[0].Data[5:] {
		if b != 0 {
			t.Fatalf("padding byte %d is %#02x, want zero", i+5, b)
		}
	}
}

func TestChunksPartition(t *testing.T) {
	fw, err := FirmwareFromBytes(make([]byte, 100))
	if err != nil {
		t.Fatalf("FirmwareFromBytes: %v", err)
	}

	chunks := fw.Chunks()
	if len(chunks) != MemorySize/WriteBlockSize {
		t.Fatalf("len(chunks) = %d, want %d", len(chunks), MemorySize/WriteBlockSize)
	}

	for i, chunk := range chunks {
		if chunk.Offset != i*WriteBlockSize {
			t.Fatalf("chunk %d offset = %#x, want %#x", i, chunk.Offset, i*WriteBlockSize)
		}
		if len(chunk.Data) != WriteBlockSize {
			t.Fatalf("chunk %d length = %d, want %d", i, len(chunk.Data), WriteBlockSize)
		}
	}

	// Offsets must keep ascending past the 16 bit boundary.
	if chunks[64].Offset != 0x10000 {
		t.Errorf("chunk 64 offset = %#x, want 0x10000", chunks[64].Offset)
	}
	for i := 1; i < len(chunks); i++ {
		if chunks[i].Offset <= chunks[i-1].Offset {
			t.Fatalf("offsets not strictly ascending: chunk %d offset %#x after %#x",
				i, chunks[i].Offset, chunks[i-1].Offset)
		}
	}

	last := chunks[len(chunks)-1]
	if last.Offset+len(last.Data) != MemorySize {
		t.Errorf("chunks end at %#x, want %#x", last.Offset+len(last.Data), MemorySize)
	}
}

func TestChunksRestartable(t *testing.T) {
	fw, err := FirmwareFromBytes([]byte{0xde, 0xad, 0xbe, 0xef})
	if err != nil {
		t.Fatalf("FirmwareFromBytes: %v", err)
	}

	first := fw.Chunks()
	second := fw.Chunks()

	if len(first) != len(second) {
		t.Fatalf("chunk counts differ: %d vs %d", len(first), len(second))
	}
	for i := range first {
		if first[i].Offset != second[i].Offset || !bytes.Equal(first[i].Data, second[i].Data) {
			t.Fatalf("chunk %d differs between iterations", i)
		}
	}
}

func TestFirmwareCRC16(t *testing.T) {
	raw := []byte{0x10, 0x20, 0x30, 0x40}

	fw, err := FirmwareFromBytes(raw)
	if err != nil {
		t.Fatalf("FirmwareFromBytes: %v", err)
	}

	want := crc16.Checksum(raw, crc16.MakeTable(crc16.CRC16_CCITT_FALSE))
	if fw.CRC16() != want {
		t.Errorf("CRC16 = %#04x, want %#04x", fw.CRC16(), want)
	}

	// CRC16/CCITT-FALSE of no data is the initial value.
	empty, err := FirmwareFromBytes(nil)
	if err != nil {
		t.Fatalf("FirmwareFromBytes: %v", err)
	}
	if empty.CRC16() != 0xffff {
		t.Errorf("CRC16 of empty image = %#04x, want 0xffff", empty.CRC16())
	}
}

func TestLoadFirmware(t *testing.T) {
	path := filepath.Join(t.TempDir(), "fw.bin")
	raw := bytes.Repeat([]byte{0xa5}, 1000)
	if err := os.WriteFile(path, raw, 0644); err != nil {
		t.Fatal(err)
	}

	fw, err := LoadFirmware(path)
	if err != nil {
		t.Fatalf("LoadFirmware: %v", err)
	}
	if fw.RawSize() != len(raw) {
		t.Errorf("RawSize = %d, want %d", fw.RawSize(), len(raw))
	}

	if _, err := LoadFirmware(filepath.Join(t.TempDir(), "missing.bin")); err == nil {
		t.Error("loading a missing file succeeded")
	}
}
