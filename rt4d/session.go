package rt4d

import "fmt"

// SessionState tracks a session through the fixed protocol sequence
// mode detection -> erase -> write. StateCompleted and StateFailed are
// terminal; a session reaching either must be discarded, since the
// radio's flash state after a partial erase or write is undefined.
type SessionState int

const (
	StateIdle SessionState = iota
	StateModeVerified
	StateErased
	StateWriting
	StateCompleted
	StateFailed
)

func (s SessionState) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateModeVerified:
		return "mode verified"
	case StateErased:
		return "erased"
	case StateWriting:
		return "writing"
	case StateCompleted:
		return "completed"
	case StateFailed:
		return "failed"
	}
	return fmt.Sprintf("unknown session state %d", int(s))
}

// FlashReport is the outcome of a write loop.
type FlashReport struct {
	// BytesWritten is the sum of the sizes of all acknowledged blocks.
	BytesWritten int

	// PaddingAdded is the number of zero bytes appended to the
	// firmware blob before writing.
	PaddingAdded int

	// Success reports that every block of the padded image was
	// acknowledged.
	Success bool
}

// BootloaderSession drives the flashing protocol over an injected
// Transport. It owns the transport for its whole lifetime and covers
// exactly one flashing attempt.
//
// The protocol is strict request/response: a new frame is never sent
// before the prior response or timeout is resolved, and there are no
// retries at this layer. A timeout, NACK or mismatched byte aborts the
// enclosing operation; restarting is the caller's call and means a
// fresh session, beginning again with mode detection.
type BootloaderSession struct {
	transport Transport
	config    Config
	state     SessionState
}

// NewSession creates a session over the given transport.
func NewSession(transport Transport, opts ...Option) *BootloaderSession {
	if transport == nil {
		panic("transport cannot be nil")
	}

	cfg := defaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}

	return &BootloaderSession{
		transport: transport,
		config:    cfg,
		state:     StateIdle,
	}
}

// State returns the current protocol state.
func (s *BootloaderSession) State() SessionState { return s.state }

// DetectBootloaderMode probes whether the radio is in flashing mode.
// Stale input is drained first, then a ReadFlash probe is sent; the
// radio answers with 4 bytes whose first byte is FlashModeResponse when
// it is ready. No answer, or a different first byte, is a normal
// negative result (radio off, still booting, wrong cable), not an
// error: the session stays idle and the caller may probe again.
func (s *BootloaderSession) DetectBootloaderMode() bool {
	if s.state != StateIdle {
		s.config.Logger.Errorf("bootloader probe requested in state %q", s.state)
		return false
	}

	s.transport.DrainInput()
	resp := s.exchange(BuildProbeFrame(), 4)

	if len(resp) == 0 || resp[0] != FlashModeResponse {
		return false
	}

	s.state = StateModeVerified
	return true
}

// EraseFlash erases both flash banks, lower before upper. The order is
// mandatory, and a missing ACK for the lower bank aborts before the
// upper bank is touched: a half-erased flash must not be treated as a
// base for further commands. Any failure is terminal for the session.
func (s *BootloaderSession) EraseFlash() bool {
	if s.state != StateModeVerified {
		s.config.Logger.Errorf("erase requested in state %q", s.state)
		return false
	}

	for _, marker := range []byte{EraseBankLower, EraseBankUpper} {
		if !s.eraseBank(marker) {
			s.config.Logger.Errorf("erase of bank %#02x not acknowledged", marker)
			s.state = StateFailed
			return false
		}
		s.config.Logger.Debugf("bank %#02x erased", marker)
	}

	s.state = StateErased
	return true
}

func (s *BootloaderSession) eraseBank(marker byte) bool {
	resp := s.exchange(BuildEraseFrame(marker), 1)
	return len(resp) == 1 && resp[0] == AckResponse
}

// WriteChunk transfers one block and waits for its ACK. The data length
// must be exactly WriteBlockSize; anything else is a programming error
// (FirmwareImage only ever produces fixed-size blocks) and panics
// rather than sending a malformed frame to the radio. Writes are only
// accepted once the flash has been erased.
func (s *BootloaderSession) WriteChunk(offset int, data []byte) bool {
	if len(data) != WriteBlockSize {
		panic(fmt.Sprintf("write block must be %d bytes, got %d", WriteBlockSize, len(data)))
	}
	if s.state != StateErased && s.state != StateWriting {
		s.config.Logger.Errorf("write requested in state %q", s.state)
		return false
	}

	resp := s.exchange(BuildWriteFrame(offset, data), 1)
	return len(resp) == 1 && resp[0] == AckResponse
}

// FlashImage writes the padded image block by block in ascending offset
// order. The first unacknowledged block stops the loop immediately; the
// report then carries the bytes acknowledged so far. There is no retry
// and no skip-ahead.
func (s *BootloaderSession) FlashImage(img *FirmwareImage) FlashReport {
	if s.state != StateErased {
		s.config.Logger.Errorf("flash requested in state %q", s.state)
		return FlashReport{PaddingAdded: img.Padding()}
	}

	s.state = StateWriting
	total := 0

	for _, chunk := range img.Chunks() {
		ok := s.WriteChunk(chunk.Offset, chunk.Data)
		if ok {
			total += len(chunk.Data)
		}

		s.config.Logger.Debugf("write %#04x bytes at %#06x [%s]",
			len(chunk.Data), chunk.Offset, okString(ok))
		if s.config.Progress != nil {
			s.config.Progress(FlashProgress{
				Offset:       chunk.Offset,
				ChunkSize:    len(chunk.Data),
				BytesWritten: total,
				TotalBytes:   img.Size(),
				OK:           ok,
			})
		}

		if !ok {
			s.state = StateFailed
			return FlashReport{BytesWritten: total, PaddingAdded: img.Padding()}
		}
	}

	success := total == img.Size()
	if success {
		s.state = StateCompleted
	} else {
		s.state = StateFailed
	}

	return FlashReport{BytesWritten: total, PaddingAdded: img.Padding(), Success: success}
}

// exchange performs one request/response round trip.
func (s *BootloaderSession) exchange(frame []byte, respLen int) []byte {
	if s.config.TraceFrames {
		s.config.Logger.Debugf("out: % x", frame)
	}

	if !s.transport.Write(frame) {
		return nil
	}

	resp := s.transport.Read(respLen, s.config.ReadTimeout)
	if s.config.TraceFrames {
		s.config.Logger.Debugf("in:  % x", resp)
	}
	return resp
}

func okString(ok bool) string {
	if ok {
		return "OK"
	}
	return "FAILED"
}
