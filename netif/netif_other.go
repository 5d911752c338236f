// SPDX-License-Identifier: MIT
//
// Copyright © 2020 Kent Gibson <warthog618@gmail.com>.

//go:build !linux
// +build !linux

package netif

import "github.com/pkg/errors"

// IsUp returns true if the named interface is administratively up.
//
// Interface control is only available on Linux.
func IsUp(name string) (bool, error) {
	return false, errors.Wrap(ErrSocket, "unsupported platform")
}

// SetState brings the named interface up or down.
//
// Interface control is only available on Linux.
func SetState(name string, up bool) error {
	return errors.Wrap(ErrSocket, "unsupported platform")
}
