// Package bridge shows frames on a panel behind a USB serial bridge, a small
// board that forwards framed commands to the panel's SPI bus.
package bridge

import (
	"bytes"
	"encoding/binary"
	"image"
	"time"

	"go.uber.org/zap"

	"weatherpaper/pkg/canvas"
	"weatherpaper/pkg/device"
	"weatherpaper/pkg/proto"
)

const (
	Reset     = 101
	Sleep     = 108
	Wake      = 109
	Configure = 121
	Black     = 197
	Chromatic = 198
	Refresh   = 199
)

// New talks to a bridge over an open port.
func New(port proto.Port, size image.Point, logger *zap.Logger) *Bridge {
	return &Bridge{
		port:   port,
		size:   size,
		logger: logger,
	}
}

// Open finds the serial port whose name contains name.
func Open(name string, size image.Point, logger *zap.Logger) (*Bridge, error) {
	s := proto.NewSerial(name)
	if err := s.Open(&proto.Options{
		DTR:         true,
		RTS:         true,
		BaudRate:    115200,
		ReadTimeout: time.Millisecond,
	}); err != nil {
		return nil, err
	}
	return New(s, size, logger), nil
}

type Bridge struct {
	port   proto.Port
	size   image.Point
	logger *zap.Logger
}

var _ device.Panel = (*Bridge)(nil)

func (b *Bridge) Init() error {
	if err := b.sendCMD(Wake); err != nil {
		return err
	}

	var bs bytes.Buffer
	_ = binary.Write(&bs, binary.BigEndian, uint16(b.size.X))
	_ = binary.Write(&bs, binary.BigEndian, uint16(b.size.Y))

	return b.sendOpt(Configure, 16, bs.Bytes())
}

func (b *Bridge) Show(c *canvas.Canvas) error {
	if err := device.CheckSize(c, b.size); err != nil {
		return err
	}

	black, chromatic := c.Planes()
	for _, plane := range []struct {
		code uint8
		data []byte
	}{
		{Black, black},
		{Chromatic, chromatic},
	} {
		if err := b.sendCMD(plane.code, 0, 0, b.size.X-1, b.size.Y-1); err != nil {
			return err
		}
		if err := b.sendBytes(plane.data); err != nil {
			return err
		}
	}

	return b.sendCMD(Refresh)
}

func (b *Bridge) Sleep() error {
	return b.sendCMD(Sleep)
}

// Halt resets the bridge and closes the port.
func (b *Bridge) Halt() error {
	err := b.sendCMD(Reset)
	if err2 := b.port.Close(); err == nil {
		err = err2
	}
	return err
}
