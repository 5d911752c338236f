// SPDX-License-Identifier: MIT
//
// Copyright © 2020 Kent Gibson <warthog618@gmail.com>.

// Package netif controls the administrative state of the network interface
// carrying packet data.
package netif

import "github.com/pkg/errors"

var (
	// ErrSocket indicates the control socket could not be opened.
	ErrSocket = errors.New("interface socket")

	// ErrQuery indicates the interface flags could not be read.
	ErrQuery = errors.New("get interface flags")

	// ErrSet indicates the interface flags could not be written.
	ErrSet = errors.New("set interface flags")
)

// Controller sets interfaces up or down.
type Controller struct{}

// SetState brings the named interface up or down.
//
// Setting an interface to the state it is already in is not an error.
func (Controller) SetState(name string, up bool) error {
	return SetState(name, up)
}
