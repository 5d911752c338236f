// SPDX-License-Identifier: MIT
//
// Copyright © 2018 Kent Gibson <warthog618@gmail.com>.

package ril

import (
	"context"
	"encoding/hex"
	"fmt"
	"strconv"
	"strings"
)

// stkEvent classifies a proactive command.
type stkEvent int

const (
	stkUnknown stkEvent = iota
	stkNotify
	stkProactive
)

// Proactive command types.
const (
	stkRefresh      = 0x01
	stkSendSS       = 0x11
	stkSendUSSD     = 0x12
	stkSendSMS      = 0x13
	stkSendDTMF     = 0x14
	stkPlayTone     = 0x20
	stkRunAT        = 0x34
	stkCloseChannel = 0x41
)

// stkRefreshSIMReset is the qualifier of a REFRESH that resets the SIM.
const stkRefreshSIMReset = "04"

// classifyProactive determines how a proactive command is reported, from the
// command type in its command details.
//
// A SIM reset refresh also reports whether the toolkit service must be
// restarted.
func classifyProactive(cmd string) (ev stkEvent, reset bool) {
	if len(cmd) < 3 {
		return stkUnknown, false
	}
	// offset depends on the length encoding of the proactive command tag
	typePos := 12
	if cmd[2] <= '7' {
		typePos = 10
	}
	if len(cmd) < typePos+2 {
		return stkUnknown, false
	}
	ct, err := strconv.ParseUint(cmd[typePos:typePos+2], 16, 8)
	if err != nil {
		return stkUnknown, false
	}
	switch ct {
	case stkRunAT, stkSendDTMF, stkSendSMS, stkSendSS, stkSendUSSD, stkPlayTone, stkCloseChannel:
		return stkNotify, false
	case stkRefresh:
		q := typePos + 2
		if len(cmd) >= q+2 && strings.EqualFold(cmd[q:q+2], stkRefreshSIMReset) {
			return stkProactive, true
		}
		return stkNotify, false
	}
	return stkProactive, false
}

// onProactiveCommand reports a proactive command from the SIM, or holds it
// until the toolkit service is running.
func (c *Core) onProactiveCommand(ctx context.Context, cmd string) {
	ev, reset := classifyProactive(cmd)
	if reset {
		c.stkRunning.Store(false)
	}
	if c.stkRunning.Load() && c.isSIMAbsent(ctx) {
		c.stkRunning.Store(false)
	}
	if !c.stkRunning.Load() {
		c.smu.Lock()
		c.stkPending = &cmd
		c.smu.Unlock()
		c.log.Debugw("toolkit service not running", "cmd", cmd)
		return
	}
	switch ev {
	case stkNotify:
		c.sink.Event(UnsolSTKEventNotify, STKCommand(cmd))
	case stkProactive:
		c.sink.Event(UnsolSTKProactiveCommand, STKCommand(cmd))
	}
}

func (c *Core) reportSTKServiceIsRunning(ctx context.Context) Errno {
	c.stkRunning.Store(true)
	c.smu.Lock()
	pending := c.stkPending
	c.stkPending = nil
	c.smu.Unlock()
	if pending != nil {
		c.sink.Event(UnsolSTKProactiveCommand, STKCommand(*pending))
		return Success
	}
	if _, err := c.singleLine(ctx, "+CUSATD?", "+CUSATD:"); err != nil {
		return failure(err)
	}
	return Success
}

// stkAlphaTag is the tag of an alpha identifier.
const stkAlphaTag = "85"

// ccAlpha extracts the alpha identifier from an envelope response.
func ccAlpha(rsp string) (string, bool) {
	idx := strings.Index(rsp, stkAlphaTag)
	if idx < 0 {
		return "", false
	}
	p := rsp[idx+len(stkAlphaTag):]
	if len(p) < 2 {
		return "", false
	}
	n, err := strconv.ParseUint(p[:2], 16, 8)
	if err != nil {
		return "", false
	}
	p = p[2:]
	if int(n)*2 < len(p) {
		p = p[:n*2]
	}
	b, err := hex.DecodeString(p)
	if err != nil {
		return "", false
	}
	return string(b), true
}

// sendEnvelope completes the request, then reports any call control alpha
// identifier in the response.
func (c *Core) sendEnvelope(ctx context.Context, r STKSendEnvelopeCommand, t Token) {
	if r.Contents == "" {
		c.complete(t, InvalidArguments, nil)
		return
	}
	line, err := c.singleLine(ctx, fmt.Sprintf("+CUSATE=%q", r.Contents), "+CUSATE:")
	if err != nil {
		c.complete(t, failure(err), nil)
		return
	}
	c.complete(t, Success, nil)
	if alpha, ok := ccAlpha(line); ok {
		c.sink.Event(UnsolSTKCCAlphaNotify, alpha)
	}
}

func (c *Core) sendTerminalResponse(ctx context.Context, r STKSendTerminalResponse) Errno {
	if r.Contents == "" {
		return InvalidArguments
	}
	if _, err := c.singleLine(ctx, fmt.Sprintf("+CUSATT=%q", r.Contents), "+CUSATT:"); err != nil {
		return failure(err)
	}
	return Success
}
