// Copyright 2021 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package epd7in5b

// Commands
const (
	panelSetting       byte = 0x00
	powerSetting       byte = 0x01
	powerOff           byte = 0x02
	powerOn            byte = 0x04
	deepSleep          byte = 0x07
	dataStartBlack     byte = 0x10
	displayRefresh     byte = 0x12
	dataStartChromatic byte = 0x13
	dualSPI            byte = 0x15
	vcomDataInterval   byte = 0x50
	tconSetting        byte = 0x60
	resolution         byte = 0x61
	getStatus          byte = 0x71
)

const deepSleepCheck byte = 0xA5

type controller interface {
	sendCommand(byte)
	sendData([]byte)
	waitUntilIdle()
}

func initDisplay(ctrl controller, opts *Opts) {
	ctrl.sendCommand(powerSetting)
	ctrl.sendData([]byte{0x07, 0x07, 0x3F, 0x3F})

	ctrl.sendCommand(powerOn)
	ctrl.waitUntilIdle()

	ctrl.sendCommand(panelSetting)
	ctrl.sendData([]byte{0x0F})

	ctrl.sendCommand(resolution)
	ctrl.sendData([]byte{
		byte(opts.Width >> 8), byte(opts.Width),
		byte(opts.Height >> 8), byte(opts.Height),
	})

	ctrl.sendCommand(dualSPI)
	ctrl.sendData([]byte{0x00})

	ctrl.sendCommand(vcomDataInterval)
	ctrl.sendData([]byte{0x11, 0x07})

	ctrl.sendCommand(tconSetting)
	ctrl.sendData([]byte{0x22})
}

// showPlanes uploads both planes and refreshes. In the black plane a set bit
// is white; in the chromatic plane a set bit is accent.
func showPlanes(ctrl controller, black, chromatic []byte) {
	ctrl.sendCommand(dataStartBlack)
	ctrl.sendData(black)

	ctrl.sendCommand(dataStartChromatic)
	ctrl.sendData(chromatic)

	ctrl.sendCommand(displayRefresh)
	ctrl.waitUntilIdle()
}

func sleepDisplay(ctrl controller) {
	ctrl.sendCommand(powerOff)
	ctrl.waitUntilIdle()

	ctrl.sendCommand(deepSleep)
	ctrl.sendData([]byte{deepSleepCheck})
}
