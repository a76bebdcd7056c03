package bridge

import (
	"fmt"
	"time"

	"go.uber.org/zap"

	"weatherpaper/pkg/proto"
)

func (b *Bridge) sendCMD(code uint8, vars ...int) error {
	bs, err := proto.Command(code, vars...)
	if err != nil {
		return err
	}
	return b.sendBytes(bs)
}

func (b *Bridge) sendOpt(code uint8, fixed int, payload []byte) error {
	bs, err := proto.Option(code, fixed, payload)
	if err != nil {
		return err
	}
	return b.sendBytes(bs)
}

func (b *Bridge) sendBytes(bytes []byte) error {
	var sent int
	var cost time.Duration

	start := time.Now()
	if n, err := b.port.Write(bytes); err != nil {
		return err
	} else {
		sent = n
		cost = time.Since(start)
	}

	ext := ""
	if len(bytes) <= 16 {
		ext = fmt.Sprintf("%x", bytes)
	}

	b.logger.With(
		zap.Int("sent", sent),
		zap.String("cost", cost.String()),
		zap.String("data", ext),
	).Debug("transfer")

	return nil
}
