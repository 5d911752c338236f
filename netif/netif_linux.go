// SPDX-License-Identifier: MIT
//
// Copyright © 2020 Kent Gibson <warthog618@gmail.com>.

//go:build linux
// +build linux

package netif

import (
	"github.com/pkg/errors"
	"golang.org/x/sys/unix"
)

// IsUp returns true if the named interface is administratively up.
func IsUp(name string) (bool, error) {
	fd, err := unix.Socket(unix.AF_INET, unix.SOCK_DGRAM, unix.IPPROTO_IP)
	if err != nil {
		return false, errors.Wrapf(ErrSocket, "%v", err)
	}
	defer unix.Close(fd)
	ifr, err := getFlags(fd, name)
	if err != nil {
		return false, err
	}
	return ifr.Uint16()&unix.IFF_UP != 0, nil
}

// SetState brings the named interface up or down.
func SetState(name string, up bool) error {
	fd, err := unix.Socket(unix.AF_INET, unix.SOCK_DGRAM, unix.IPPROTO_IP)
	if err != nil {
		return errors.Wrapf(ErrSocket, "%v", err)
	}
	defer unix.Close(fd)
	ifr, err := getFlags(fd, name)
	if err != nil {
		return err
	}
	flags := ifr.Uint16()
	if (flags&unix.IFF_UP != 0) == up {
		return nil
	}
	ifr.SetUint16(flags ^ unix.IFF_UP)
	if err = unix.IoctlIfreq(fd, unix.SIOCSIFFLAGS, ifr); err != nil {
		return errors.Wrapf(ErrSet, "%s: %v", name, err)
	}
	return nil
}

func getFlags(fd int, name string) (*unix.Ifreq, error) {
	ifr, err := unix.NewIfreq(name)
	if err != nil {
		return nil, errors.Wrapf(ErrQuery, "%s: %v", name, err)
	}
	if err = unix.IoctlIfreq(fd, unix.SIOCGIFFLAGS, ifr); err != nil {
		return nil, errors.Wrapf(ErrQuery, "%s: %v", name, err)
	}
	return ifr, nil
}
