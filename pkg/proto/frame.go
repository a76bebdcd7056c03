// Package proto holds the serial transport and command framing shared by
// panels reached over USB.
package proto

import (
	"io"

	"github.com/pkg/errors"
)

// Port is the byte pipe a panel bridge talks over.
type Port interface {
	io.ReadWriteCloser
}

var (
	ErrTooManyVars  = errors.New("too many vars")
	ErrTooManyBytes = errors.New("too many bytes")
	ErrVarRange     = errors.New("var out of range")
)

// MaxVar is the largest value a header var can carry.
const MaxVar = 1<<10 - 1

// Command packs code and up to four 10-bit vars into a six-byte header.
func Command(code uint8, vars ...int) ([]byte, error) {
	if len(vars) > 4 {
		return nil, ErrTooManyVars
	}

	var v [4]int
	for i, x := range vars {
		if x < 0 || x > MaxVar {
			return nil, errors.Wrapf(ErrVarRange, "var %d = %d", i, x)
		}
		v[i] = x
	}

	return header(make([]byte, 6), code, v), nil
}

// Option packs code with an option payload padded to fixed bytes.
func Option(code uint8, fixed int, payload []byte) ([]byte, error) {
	if len(payload) > fixed-6 {
		return nil, ErrTooManyBytes
	}

	bs := append(make([]byte, 6), payload...)
	if len(bs) < fixed {
		bs = append(bs, make([]byte, fixed-len(bs))...)
	}

	return header(bs, code, [4]int{}), nil
}

func header(bs []byte, code uint8, v [4]int) []byte {
	bs[0] = (byte)(v[0] >> 2)
	bs[1] = (byte)(((v[0] & 3) << 6) + (v[1] >> 4))
	bs[2] = (byte)(((v[1] & 0xF) << 4) + (v[2] >> 6))
	bs[3] = (byte)(((v[2] & 0x3F) << 2) + (v[3] >> 8))
	bs[4] = (byte)(v[3] & 0xFF)
	bs[5] = code
	return bs
}

// Decode reverses Command.
func Decode(bs []byte) (code uint8, vars [4]int, err error) {
	if len(bs) < 6 {
		return 0, vars, io.ErrUnexpectedEOF
	}
	vars[0] = int(bs[0])<<2 | int(bs[1])>>6
	vars[1] = int(bs[1]&0x3F)<<4 | int(bs[2])>>4
	vars[2] = int(bs[2]&0x0F)<<6 | int(bs[3])>>2
	vars[3] = int(bs[3]&0x03)<<8 | int(bs[4])
	return bs[5], vars, nil
}
