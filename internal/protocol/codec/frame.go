package codec

import (
	"encoding/binary"
	"errors"
	"fmt"
	"io"
)

// HeaderSize is the length prefix size of a stream frame.
const HeaderSize = 4

// DefaultMaxFrameSize bounds a single request or response payload.
const DefaultMaxFrameSize = 64 * 1024

// ErrFrameTooLarge is returned when a frame header announces more than the limit.
var ErrFrameTooLarge = errors.New("frame too large")

// WriteFrame writes payload prefixed with its big-endian uint32 length in a single write.
func WriteFrame(w io.Writer, payload []byte) error {
	buf := GetBuffer()
	defer PutBuffer(buf)

	var hdr [HeaderSize]byte
	binary.BigEndian.PutUint32(hdr[:], uint32(len(payload)))
	buf.Write(hdr[:])
	buf.Write(payload)

	_, err := w.Write(buf.Bytes())
	return err
}

// ReadFrame reads one length-prefixed frame. A clean close before the header
// returns io.EOF; a close inside a frame returns io.ErrUnexpectedEOF.
func ReadFrame(r io.Reader, maxSize int) ([]byte, error) {
	var hdr [HeaderSize]byte
	if _, err := io.ReadFull(r, hdr[:]); err != nil {
		return nil, err
	}

	n := binary.BigEndian.Uint32(hdr[:])
	if maxSize > 0 && n > uint32(maxSize) {
		return nil, fmt.Errorf("%w: %d > %d bytes", ErrFrameTooLarge, n, maxSize)
	}

	payload := make([]byte, n)
	if _, err := io.ReadFull(r, payload); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, io.ErrUnexpectedEOF
		}
		return nil, err
	}
	return payload, nil
}
