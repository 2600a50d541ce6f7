package rt4d

import (
	"time"

	log "github.com/sirupsen/logrus"
	"go.bug.st/serial"
)

// FlashBaudRate is the fixed line speed of the RT-4D bootloader.
const FlashBaudRate = 115200

// SerialTransport adapts a serial port to the Transport interface.
type SerialTransport struct {
	port serial.Port
	name string
}

// OpenSerialTransport opens the given serial device at the bootloader's
// fixed 115200 8N1 settings.
func OpenSerialTransport(name string) (*SerialTransport, error) {
	port, err := serial.Open(name, &serial.Mode{
		BaudRate: FlashBaudRate,
		DataBits: 8,
		Parity:   serial.NoParity,
		StopBits: serial.OneStopBit,
	})
	if err != nil {
		return nil, err
	}
	return &SerialTransport{port: port, name: name}, nil
}

func (s *SerialTransport) DrainInput() {
	if err := s.port.ResetInputBuffer(); err != nil {
		log.Warnf("could not drain input of %s: %v", s.name, err)
	}
}

func (s *SerialTransport) Write(p []byte) bool {
	n, err := s.port.Write(p)
	if err != nil {
		log.Warnf("write to %s failed: %v", s.name, err)
		return false
	}
	return n == len(p)
}

// Read accumulates up to max bytes until the timeout expires. A single
// port read may return fewer bytes than requested, so it keeps reading
// with the remaining time budget.
func (s *SerialTransport) Read(max int, timeout time.Duration) []byte {
	buf := make([]byte, max)
	got := 0
	deadline := time.Now().Add(timeout)

	for got < max {
		remaining := time.Until(deadline)
		if remaining <= 0 {
			break
		}
		if err := s.port.SetReadTimeout(remaining); err != nil {
			log.Warnf("could not set read timeout on %s: %v", s.name, err)
			break
		}

		n, err := s.port.Read(buf[got:])
		if err != nil {
			log.Warnf("read from %s failed: %v", s.name, err)
			break
		}
		if n == 0 { // timeout
			break
		}
		got += n
	}

	return buf[:got]
}

func (s *SerialTransport) Close() error {
	return s.port.Close()
}
