// SPDX-License-Identifier: MIT
//
// Copyright © 2020 Kent Gibson <warthog618@gmail.com>.

//go:build !linux && !darwin && !windows
// +build !linux,!darwin,!windows

package serial

var defaultConfig = Config{
	baud: 115200,
}
