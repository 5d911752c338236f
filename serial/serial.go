// SPDX-License-Identifier: MIT
//
// Copyright © 2020 Kent Gibson <warthog618@gmail.com>.

// Package serial provides a serial port, which provides the io.ReadWriter
// interface, that provides the connection between the modem and the core.
package serial

import (
	"github.com/pkg/errors"
	"github.com/tarm/serial"
	bugst "go.bug.st/serial"
)

// Config is the configuration of the serial port.
type Config struct {
	port string
	baud int
}

// Option modifies the Config used to open the port.
type Option func(*Config)

// ErrNoPort indicates no port was specified and none could be found.
var ErrNoPort = errors.New("no serial port found")

// New creates a serial port.
//
// If no port is specified, and the platform default cannot be found, the
// first port reported by the system is used.
func New(options ...Option) (*serial.Port, error) {
	cfg := defaultConfig
	for _, option := range options {
		option(&cfg)
	}
	if cfg.port == defaultConfig.port && !present(cfg.port) {
		ports, err := Ports()
		if err == nil && len(ports) > 0 {
			cfg.port = ports[0]
		}
	}
	if cfg.port == "" {
		return nil, ErrNoPort
	}
	config := serial.Config{Name: cfg.port, Baud: cfg.baud}
	p, err := serial.OpenPort(&config)
	if err != nil {
		return nil, errors.Wrapf(err, "open %s", cfg.port)
	}
	return p, nil
}

// WithBaud sets the baud rate for the serial port.
func WithBaud(b int) Option {
	return func(c *Config) {
		c.baud = b
	}
}

// WithPort sets the port for the serial port.
func WithPort(p string) Option {
	return func(c *Config) {
		c.port = p
	}
}

// Ports returns the serial ports present on the system.
func Ports() ([]string, error) {
	ports, err := bugst.GetPortsList()
	if err != nil {
		return nil, errors.Wrap(err, "list ports")
	}
	return ports, nil
}

func present(port string) bool {
	ports, err := Ports()
	if err != nil {
		// can't tell, so assume it is
		return true
	}
	for _, p := range ports {
		if p == port {
			return true
		}
	}
	return false
}
