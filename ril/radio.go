// SPDX-License-Identifier: MIT
//
// Copyright © 2018 Kent Gibson <warthog618@gmail.com>.

package ril

import (
	"context"

	"github.com/looplab/fsm"
	"github.com/warthog618/ril/gsm"
	"github.com/warthog618/ril/info"
	"github.com/warthog618/ril/tech"
)

// RadioState is the availability of the radio.
type RadioState int

// Radio states.
const (
	RadioUnavailable RadioState = iota
	RadioOff
	RadioOn
)

var radioStateNames = []string{"unavailable", "off", "on"}

func (s RadioState) String() string {
	if s < 0 || int(s) >= len(radioStateNames) {
		return "invalid"
	}
	return radioStateNames[s]
}

func parseRadioState(name string) RadioState {
	for i, n := range radioStateNames {
		if n == name {
			return RadioState(i)
		}
	}
	return RadioUnavailable
}

// newRadioFSM creates the radio state machine.
//
// Each event is named after its destination state.  Setting the current
// state again is a NoTransitionError.
func newRadioFSM() *fsm.FSM {
	unavailable := RadioUnavailable.String()
	off := RadioOff.String()
	on := RadioOn.String()
	return fsm.NewFSM(
		unavailable,
		fsm.Events{
			{Name: off, Src: []string{unavailable, off, on}, Dst: off},
			{Name: on, Src: []string{off, on}, Dst: on},
			{Name: unavailable, Src: []string{unavailable, off, on}, Dst: unavailable},
		},
		fsm.Callbacks{},
	)
}

// RadioState returns the current radio state.
func (c *Core) RadioState() RadioState {
	c.mu.Lock()
	defer c.mu.Unlock()
	return parseRadioState(c.radio.Current())
}

// setRadioState is the only path that changes the radio state.
//
// Once the channel is closed the state is forced to RadioUnavailable.
// A change emits the radio and SIM state events, in that order, and entering
// RadioOn polls the SIM.
func (c *Core) setRadioState(s RadioState) {
	c.evMu.Lock()
	defer c.evMu.Unlock()
	c.mu.Lock()
	if c.closed {
		s = RadioUnavailable
	}
	old := parseRadioState(c.radio.Current())
	changed := false
	switch err := c.radio.Event(context.Background(), s.String()); err.(type) {
	case nil:
		changed = true
	case fsm.NoTransitionError:
	default:
		c.log.Warnw("invalid radio state transition", "from", old, "to", s, "err", err)
	}
	if changed || c.closed {
		c.cond.Broadcast()
	}
	c.mu.Unlock()
	if !changed {
		return
	}
	c.log.Infow("radio state changed", "from", old, "to", s)
	c.sink.Event(UnsolRadioStateChanged, s)
	c.sink.Event(UnsolSimStatusChanged, nil)
	if s == RadioOn {
		c.queue.post(c.pollSIMState)
	}
}

// isRadioOn queries the modem for the transceiver power state.
func (c *Core) isRadioOn(ctx context.Context) (bool, error) {
	line, err := c.singleLine(ctx, "+CFUN?", "+CFUN:")
	if err != nil {
		return false, err
	}
	tk, err := info.Tokenize(line)
	if err != nil {
		return false, err
	}
	return tk.NextBool()
}

// detectModem determines the technologies supported by the modem.
func (c *Core) detectModem(ctx context.Context) {
	if cur, pref, err := c.queryCTEC(ctx); err == nil {
		if supported, err := c.querySupportedTechs(ctx); err == nil {
			c.smu.Lock()
			c.mdm.Current = cur
			c.mdm.Preferred = pref
			c.mdm.Supported = supported
			c.mdm.Multimode = true
			c.smu.Unlock()
			c.log.Infow("found multimode modem", "supported", supported, "current", cur)
			return
		}
	}
	_, err := c.singleLine(ctx, "+WNAM", "+WNAM:")
	c.smu.Lock()
	defer c.smu.Unlock()
	c.mdm.Multimode = false
	if err == nil {
		c.mdm.Supported = tech.CDMA | tech.EVDO
		c.mdm.Current = 2
		c.log.Info("found CDMA modem")
		return
	}
	c.mdm.Supported = tech.GSM | tech.WCDMA | tech.LTE
	c.mdm.Current = 0
	c.log.Info("found GSM modem")
}

// queryCTEC returns the current technology index and preference reported by
// +CTEC.
func (c *Core) queryCTEC(ctx context.Context) (int, tech.Preference, error) {
	line, err := c.singleLine(ctx, "+CTEC?", "+CTEC:")
	if err != nil {
		return 0, 0, err
	}
	cur, pref, err := parseCTEC(line)
	if err != nil {
		return 0, 0, err
	}
	if pref == nil {
		return 0, 0, info.ErrNoToken
	}
	return cur, *pref, nil
}

// parseCTEC parses the current technology index and the optional hex
// encoded preference from a +CTEC line.
func parseCTEC(line string) (int, *tech.Preference, error) {
	tk, err := info.Tokenize(line)
	if err != nil {
		return 0, nil, err
	}
	if !tk.HasMore() {
		return 0, nil, info.ErrNoToken
	}
	cur, err := tk.NextInt()
	if err != nil {
		return 0, nil, err
	}
	p, err := tk.NextHexInt()
	if err != nil {
		return cur, nil, nil
	}
	pref := tech.Preference(p)
	return cur, &pref, nil
}

func (c *Core) querySupportedTechs(ctx context.Context) (tech.Mask, error) {
	line, err := c.singleLine(ctx, "+CTEC=?", "+CTEC:")
	if err != nil {
		return 0, err
	}
	tk, err := info.Tokenize(line)
	if err != nil {
		return 0, err
	}
	if !tk.HasMore() {
		return 0, info.ErrNoToken
	}
	var m tech.Mask
	for {
		v, err := tk.NextInt()
		if err != nil {
			break
		}
		m |= tech.FromIndex(v)
	}
	return m, nil
}

func (c *Core) logCapabilities(ctx context.Context) {
	l, err := c.lines(ctx, "+GCAP")
	if err != nil {
		return
	}
	if err := gsm.CheckCapabilities(l); err != nil {
		c.log.Warnw("capabilities", "err", err)
		return
	}
	c.log.Debugw("capabilities", "gcap", gsm.Capabilities(l))
}

// currentMask returns the technology currently in use.
func (c *Core) currentMask() tech.Mask {
	c.smu.Lock()
	defer c.smu.Unlock()
	return tech.FromIndex(c.mdm.Current)
}

// setRadioTechnology records the technology in use, reporting a change of
// voice technology.
func (c *Core) setRadioTechnology(idx int) {
	c.smu.Lock()
	old := c.mdm.Current
	if idx == old {
		c.smu.Unlock()
		return
	}
	c.mdm.Current = idx
	c.smu.Unlock()
	rt, ok := tech.FromModemMask(tech.FromIndex(idx))
	ort, _ := tech.FromModemMask(tech.FromIndex(old))
	c.log.Debugw("radio technology", "from", old, "to", idx)
	if ok && rt != ort {
		c.sink.Event(UnsolVoiceRadioTechChanged, rt)
	}
}

func (c *Core) radioPower(ctx context.Context, r RadioPower) Errno {
	state := c.RadioState()
	switch {
	case !r.On && state != RadioOff:
		err := c.command(ctx, "+CFUN=0")
		c.setRadioState(RadioOff)
		if err != nil {
			return failure(err)
		}
	case r.On && state == RadioOff:
		if err := c.command(ctx, "+CFUN=1"); err != nil {
			// some modems return an error yet power on the radio
			if on, qerr := c.isRadioOn(ctx); qerr != nil || !on {
				return failure(err)
			}
		}
		c.setRadioState(RadioOn)
	}
	return Success
}

func (c *Core) shutdown(ctx context.Context) Errno {
	if c.RadioState() != RadioOff {
		c.command(ctx, "+CFUN=0")
		c.setRadioState(RadioUnavailable)
	}
	return Success
}

func (c *Core) deviceIdentity(ctx context.Context) (Errno, interface{}) {
	imei, err := c.numeric(ctx, "+CGSN")
	if err != nil {
		return failure(err), nil
	}
	id := Identity{IMEI: "----", IMEISV: "----", ESN: "77777777"}
	if c.currentMask() == tech.CDMA {
		id.MEID = imei
	} else {
		id.IMEI = imei
	}
	return Success, id
}

func (c *Core) numericString(ctx context.Context, cmd string) (Errno, interface{}) {
	s, err := c.numeric(ctx, cmd)
	if err != nil {
		return failure(err), nil
	}
	return Success, s
}

func radioCapability() RadioCapability {
	return RadioCapability{
		Version: 1,
		RAF:     tech.RAFNR | tech.RAFLTE | tech.RAFWCDMA | tech.RAFGSM,
		UUID:    "com.android.modem.simulator",
	}
}

func (c *Core) voiceRadioTech() (Errno, interface{}) {
	rt, ok := tech.FromModemMask(c.currentMask())
	if !ok {
		return GenericFailure, nil
	}
	return Success, rt
}
