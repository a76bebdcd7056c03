// Copyright 2021 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package epd7in5b

import (
	"time"

	"periph.io/x/conn/v3/gpio"
)

// errorHandler is a wrapper for error management. The first error sticks and
// every later call is a no-op.
type errorHandler struct {
	d   *Dev
	err error
}

func (eh *errorHandler) rstOut(l gpio.Level) {
	if eh.err != nil {
		return
	}
	eh.err = eh.d.rst.Out(l)
}

func (eh *errorHandler) dcOut(l gpio.Level) {
	if eh.err != nil {
		return
	}
	eh.err = eh.d.dc.Out(l)
}

func (eh *errorHandler) cTx(w []byte, r []byte) {
	if eh.err != nil {
		return
	}
	eh.err = eh.d.c.Tx(w, r)
}

func (eh *errorHandler) sendCommand(cmd byte) {
	if eh.err != nil {
		return
	}

	eh.dcOut(gpio.Low)
	eh.cTx([]byte{cmd}, nil)
}

func (eh *errorHandler) sendData(data []byte) {
	if eh.err != nil {
		return
	}

	eh.dcOut(gpio.High)
	for len(data) > 0 && eh.err == nil {
		n := min(len(data), eh.d.opts.MaxTx)
		eh.cTx(data[:n], nil)
		data = data[n:]
	}
}

// waitUntilIdle polls the busy line, which this controller drives low while
// it works.
func (eh *errorHandler) waitUntilIdle() {
	if eh.err != nil {
		return
	}

	deadline := time.Now().Add(eh.d.opts.BusyTimeout)
	for {
		eh.sendCommand(getStatus)
		if eh.err != nil || eh.d.busy.Read() == gpio.High {
			return
		}
		if time.Now().After(deadline) {
			eh.err = errBusyTimeout
			return
		}
		time.Sleep(20 * time.Millisecond)
	}
}

func (eh *errorHandler) reset() {
	eh.rstOut(gpio.High)
	time.Sleep(20 * time.Millisecond)
	eh.rstOut(gpio.Low)
	time.Sleep(2 * time.Millisecond)
	eh.rstOut(gpio.High)
	time.Sleep(20 * time.Millisecond)
}
