// Package ipc implements a length-prefixed TCP request/response protocol
// translating client requests into reactor actions, plus a Client for
// external front-ends (bar, notifications, CLI) and this module's own
// tests.
package ipc

import (
	"encoding/binary"
	"fmt"
	"io"
)

// maxFrameBody is the largest body a u16 length prefix can address.
const maxFrameBody = 0xFFFF

// readFrame reads one `u16 big-endian length | body` frame.
func readFrame(r io.Reader) ([]byte, error) {
	var lenBuf [2]byte
	if _, err := io.ReadFull(r, lenBuf[:]); err != nil {
		return nil, err
	}
	n := binary.BigEndian.Uint16(lenBuf[:])
	body := make([]byte, n)
	if n > 0 {
		if _, err := io.ReadFull(r, body); err != nil {
			return nil, err
		}
	}
	return body, nil
}

// writeFrame writes body framed with its u16 big-endian length prefix.
func writeFrame(w io.Writer, body []byte) error {
	if len(body) > maxFrameBody {
		return fmt.Errorf("ipc: response body of %d bytes exceeds u16 frame limit", len(body))
	}
	var lenBuf [2]byte
	binary.BigEndian.PutUint16(lenBuf[:], uint16(len(body)))
	if _, err := w.Write(lenBuf[:]); err != nil {
		return err
	}
	_, err := w.Write(body)
	return err
}
