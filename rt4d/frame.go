package rt4d

/*
Bootloader request frame:
byte		opcode;
byte		payload[];
byte		checksum;

The checksum trailer covers opcode and payload.
*/

// Bootloader opcodes.
const (
	CmdReadFlash  byte = 0x52
	CmdEraseFlash byte = 0x39
	CmdWriteFlash byte = 0x57
)

// Single byte responses of the bootloader.
const (
	AckResponse       byte = 0x06
	FlashModeResponse byte = 0xFF
)

// Erase bank markers, one per flash bank. The bootloader only accepts
// them in lower-then-upper order.
const (
	EraseBankLower byte = 0x10
	EraseBankUpper byte = 0x55
)

// checksumBias is added to the byte sum before truncation. Opaque
// protocol constant, carried over from the stock flasher.
const checksumBias = 72

// Checksum returns the trailer byte for the given frame bytes.
func Checksum(data []byte) byte {
	sum := checksumBias
	for _, b := range data {
		sum += int(b)
	}
	return byte(sum % 256)
}

// BuildFrame assembles a complete request frame from an opcode and its
// payload, appending the checksum trailer. The input slices are not
// modified.
func BuildFrame(opcode byte, payload []byte) []byte {
	frame := make([]byte, 0, len(payload)+2)
	frame = append(frame, opcode)
	frame = append(frame, payload...)
	return append(frame, Checksum(frame))
}

// BuildProbeFrame returns the ReadFlash frame used to probe for
// bootloader mode.
func BuildProbeFrame() []byte {
	return BuildFrame(CmdReadFlash, []byte{0x00, 0x00})
}

// BuildEraseFrame returns the erase frame for one flash bank. The
// marker must be EraseBankLower or EraseBankUpper.
func BuildEraseFrame(marker byte) []byte {
	return BuildFrame(CmdEraseFlash, []byte{0x33, 0x05, marker})
}

// BuildWriteFrame returns the write frame for a single block. The
// offset is transmitted as two big-endian bytes in front of the data;
// offsets beyond 64 KiB wrap on the wire, which is what the bootloader
// expects.
func BuildWriteFrame(offset int, data []byte) []byte {
	payload := make([]byte, 0, len(data)+2)
	payload = append(payload, byte(offset>>8&0xff), byte(offset&0xff))
	payload = append(payload, data...)
	return BuildFrame(CmdWriteFlash, payload)
}
