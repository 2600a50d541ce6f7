package rt4d

import "time"

// Transport is the duplex byte channel a BootloaderSession drives. The
// radio's bootloader speaks strict request/response, so three
// operations are the entire surface: any channel providing them (real
// serial port, loopback, in-memory test double) is substitutable.
type Transport interface {
	// DrainInput discards any bytes currently buffered for read. It
	// must not block.
	DrainInput()

	// Write sends all of p. It reports false if the channel could not
	// accept every byte before its write deadline.
	Write(p []byte) bool

	// Read blocks up to timeout and returns whatever bytes arrived,
	// at most max. A timeout yields a short or empty slice, never an
	// indefinite block.
	Read(max int, timeout time.Duration) []byte
}
