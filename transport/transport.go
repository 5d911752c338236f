// SPDX-License-Identifier: MIT
//
// Copyright © 2020 Kent Gibson <warthog618@gmail.com>.

// Package transport opens the connection to the modem.
//
// The modem may be attached by a serial device, a TCP port on the loopback
// interface, or a local socket.
package transport

import (
	"fmt"
	"io"
	"net"

	"github.com/pkg/errors"
	"github.com/warthog618/ril/serial"
)

// Config identifies the connection to the modem.
//
// The first of Device, Port, Socket and VSock that is set is used.
// If none are set the serial port is auto-detected.
type Config struct {
	Device string `yaml:"device"`
	Baud   int    `yaml:"baud"`
	Port   int    `yaml:"port"`
	Socket string `yaml:"socket"`
	VSock  int    `yaml:"vsock"`
}

// ErrUnsupported indicates the transport is not supported on this platform.
var ErrUnsupported = errors.New("transport not supported")

// Open opens the connection described by the config.
func Open(cfg Config) (io.ReadWriteCloser, error) {
	switch {
	case cfg.Device != "":
		return openSerial(serial.WithPort(cfg.Device), cfg)
	case cfg.Port > 0:
		c, err := net.Dial("tcp", fmt.Sprintf("127.0.0.1:%d", cfg.Port))
		if err != nil {
			return nil, errors.Wrapf(err, "dial port %d", cfg.Port)
		}
		return c, nil
	case cfg.Socket != "":
		c, err := net.Dial("unix", cfg.Socket)
		if err != nil {
			return nil, errors.Wrapf(err, "dial socket %s", cfg.Socket)
		}
		return c, nil
	case cfg.VSock > 0:
		return nil, errors.Wrapf(ErrUnsupported, "vsock port %d", cfg.VSock)
	}
	return openSerial(nil, cfg)
}

// String describes the transport selected by the config.
func (cfg Config) String() string {
	switch {
	case cfg.Device != "":
		return cfg.Device
	case cfg.Port > 0:
		return fmt.Sprintf("tcp:127.0.0.1:%d", cfg.Port)
	case cfg.Socket != "":
		return "unix:" + cfg.Socket
	case cfg.VSock > 0:
		return fmt.Sprintf("vsock:%d", cfg.VSock)
	}
	return "auto"
}

func openSerial(port serial.Option, cfg Config) (io.ReadWriteCloser, error) {
	var options []serial.Option
	if port != nil {
		options = append(options, port)
	}
	if cfg.Baud != 0 {
		options = append(options, serial.WithBaud(cfg.Baud))
	}
	p, err := serial.New(options...)
	if err != nil {
		return nil, err
	}
	return p, nil
}
