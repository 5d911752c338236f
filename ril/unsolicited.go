// SPDX-License-Identifier: MIT
//
// Copyright © 2018 Kent Gibson <warthog618@gmail.com>.

package ril

import (
	"context"

	"github.com/warthog618/ril/at"
	"github.com/warthog618/ril/gsm"
	"github.com/warthog618/ril/info"
	"github.com/warthog618/ril/tech"
)

// indication binds an unsolicited line prefix to its handler.
type indication struct {
	prefix  string
	handler at.InfoHandler
	options []at.IndicationOption
}

// Bounds on the number of fields in a pushed +CSQ.
const (
	minSignalFields = 12
	maxSignalFields = 19
)

// physicalChannelFields is the number of fields in a %CGFPCCFG line.
const physicalChannelFields = 5

// indications returns the unsolicited lines handled by the Core.
//
// Indications are matched in order, so more specific prefixes precede more
// general ones.  Handlers are called from the goroutine delivering lines from
// the modem, so anything requiring a command is posted to the task queue.
func (c *Core) indications() []indication {
	inds := []indication{
		{prefix: "%CGFPCCFG:", handler: c.onPhysicalChannelConfigs},
		{prefix: "%CTZV:", handler: c.onNITZ},
		{prefix: "+CRING:", handler: c.onCallStateChanged},
		{prefix: "RING", handler: c.onCallStateChanged},
		{prefix: "NO CARRIER", handler: c.onCallStateChanged},
		{prefix: "+CCWA", handler: c.onCallStateChanged},
		{prefix: "+CREG:", handler: c.onNetworkStateChanged},
		{prefix: "+CGREG:", handler: c.onNetworkStateChanged},
		{prefix: "+CEREG:", handler: c.onNetworkStateChanged},
		{prefix: "+CMT:", handler: c.onSMS(UnsolNewSMS), options: []at.IndicationOption{at.WithTrailingLine}},
		{prefix: "+CDS:", handler: c.onSMS(UnsolNewSMSStatusReport), options: []at.IndicationOption{at.WithTrailingLine}},
		{prefix: "+CMTI:", handler: c.onSMSOnSim},
		{prefix: "+CGEV:", handler: c.onPacketDomainEvent},
		{prefix: "+CTEC: ", handler: c.onTechnology},
		{prefix: "+CCSS: ", handler: c.onSubscriptionSource},
		{prefix: "+WSOS: ", handler: c.onEmergencyCallbackMode},
		{prefix: "+WPRL: ", handler: c.onPRLChanged},
		{prefix: "+CFUN: 0", handler: c.onRadioOff},
		{prefix: "+CSQ: ", handler: c.onSignalStrength},
		{prefix: "+CUSATEND", handler: c.onSTKSessionEnd},
		{prefix: "+CUSATP:", handler: c.onSTKProactive},
		{prefix: "+CUSD:", handler: c.onUSSD},
	}
	for i := range inds {
		inds[i].handler = c.whileAvailable(inds[i].handler)
	}
	return inds
}

// whileAvailable drops indications received while the radio is
// unavailable.  The state is polled once the radio becomes available.
func (c *Core) whileAvailable(h at.InfoHandler) at.InfoHandler {
	return func(lines []string) {
		if c.RadioState() == RadioUnavailable {
			c.log.Debugw("ignoring indication", "line", lines[0])
			return
		}
		h(lines)
	}
}

// refreshDataCalls reports the data calls, for modems that do not report
// packet domain events.
func (c *Core) refreshDataCalls() {
	c.queue.post(c.onDataCallListChanged)
}

func (c *Core) onPhysicalChannelConfigs(lines []string) {
	tk, err := info.Tokenize(lines[0])
	if err != nil {
		return
	}
	cfg := make([]int, physicalChannelFields)
	for i := range cfg {
		if cfg[i], err = tk.NextInt(); err != nil {
			c.log.Warnw("invalid physical channel config", "line", lines[0], "err", err)
			return
		}
	}
	// the third field is a modem technology
	rt, _ := tech.FromModemMask(tech.Mask(cfg[2]))
	cfg[2] = int(rt)
	c.sink.Event(UnsolPhysicalChannelConfigs, cfg)
}

func (c *Core) onNITZ(lines []string) {
	tk, err := info.Tokenize(lines[0])
	if err != nil {
		return
	}
	t, err := tk.NextString()
	if err != nil {
		c.log.Warnw("invalid NITZ", "line", lines[0], "err", err)
		return
	}
	c.sink.Event(UnsolNITZTimeReceived, t)
}

func (c *Core) onCallStateChanged(lines []string) {
	c.sink.Event(UnsolCallStateChanged, nil)
	c.refreshDataCalls()
}

func (c *Core) onNetworkStateChanged(lines []string) {
	c.sink.Event(UnsolVoiceNetworkStateChanged, nil)
	c.refreshDataCalls()
}

// onSMS returns a handler forwarding the PDU that follows the indication.
func (c *Core) onSMS(code Unsol) at.InfoHandler {
	return func(lines []string) {
		pdu := lines[1]
		if p, err := gsm.DecodePDU(pdu); err != nil {
			c.log.Warnw("invalid PDU", "code", code, "pdu", pdu, "err", err)
		} else {
			c.log.Debugw("received PDU", "code", code, "smsc", p.SMSC.Addr, "tpdu_len", len(p.TPDU))
		}
		c.sink.Event(code, pdu)
	}
}

func (c *Core) onSMSOnSim(lines []string) {
	tk, err := info.Tokenize(lines[0])
	if err != nil {
		return
	}
	// memory
	if err := tk.Skip(); err != nil {
		return
	}
	idx, err := tk.NextInt()
	if err != nil {
		c.log.Warnw("invalid SMS index", "line", lines[0], "err", err)
		return
	}
	c.sink.Event(UnsolNewSMSOnSim, idx)
}

func (c *Core) onPacketDomainEvent(lines []string) {
	c.refreshDataCalls()
}

func (c *Core) onTechnology(lines []string) {
	cur, _, err := parseCTEC(lines[0])
	if err != nil {
		c.log.Warnw("invalid technology", "line", lines[0], "err", err)
		return
	}
	switch tech.FromIndex(cur) {
	case tech.GSM, tech.CDMA, tech.WCDMA, tech.LTE:
		c.setRadioTechnology(cur)
	default:
		c.log.Warnw("unknown technology", "index", cur)
	}
}

func (c *Core) onSubscriptionSource(lines []string) {
	tk, err := info.Tokenize(lines[0])
	if err != nil {
		return
	}
	src, err := tk.NextInt()
	if err != nil {
		c.log.Warnw("invalid subscription source", "line", lines[0], "err", err)
		return
	}
	c.setSubscriptionSourceState(src)
}

func (c *Core) onEmergencyCallbackMode(lines []string) {
	tk, err := info.Tokenize(lines[0])
	if err != nil {
		return
	}
	enter, err := tk.NextBool()
	if err != nil {
		c.log.Warnw("invalid emergency callback mode", "line", lines[0], "err", err)
		return
	}
	if enter {
		c.sink.Event(UnsolEnterEmergencyCallbackMode, nil)
		return
	}
	c.sink.Event(UnsolExitEmergencyCallbackMode, nil)
}

func (c *Core) onPRLChanged(lines []string) {
	tk, err := info.Tokenize(lines[0])
	if err != nil {
		return
	}
	version, err := tk.NextInt()
	if err != nil {
		c.log.Warnw("invalid PRL version", "line", lines[0], "err", err)
		return
	}
	c.sink.Event(UnsolCDMAPRLChanged, version)
}

func (c *Core) onRadioOff(lines []string) {
	c.setRadioState(RadioOff)
}

// parseSignalStrength parses the fields of a pushed +CSQ, which may carry
// more fields than the GSM pair returned by the query.
func parseSignalStrength(line string) (SignalStrengthInfo, error) {
	tk, err := info.Tokenize(line)
	if err != nil {
		return SignalStrengthInfo{}, err
	}
	v := make([]int, maxSignalFields)
	for i := range v {
		if v[i], err = tk.NextInt(); err != nil {
			if i < minSignalFields {
				return SignalStrengthInfo{}, err
			}
			v[i] = 0
		}
	}
	return SignalStrengthInfo{Values: v}, nil
}

func (c *Core) onSignalStrength(lines []string) {
	ss, err := parseSignalStrength(lines[0])
	if err != nil {
		c.log.Warnw("invalid signal strength", "line", lines[0], "err", err)
		return
	}
	c.sink.Event(UnsolSignalStrength, ss)
}

func (c *Core) onSTKSessionEnd(lines []string) {
	c.sink.Event(UnsolSTKSessionEnd, nil)
}

func (c *Core) onSTKProactive(lines []string) {
	tk, err := info.Tokenize(lines[0])
	if err != nil {
		return
	}
	cmd, err := tk.NextString()
	if err != nil {
		c.log.Warnw("invalid proactive command", "line", lines[0], "err", err)
		return
	}
	// classification may query the SIM
	c.queue.post(func(ctx context.Context) {
		c.onProactiveCommand(ctx, cmd)
	})
}

// ParseUSSD parses a +CUSD line.  The message and coding scheme are
// optional.
func ParseUSSD(line string) (USSD, error) {
	u := USSD{}
	tk, err := info.Tokenize(line)
	if err != nil {
		return u, err
	}
	if u.Mode, err = tk.NextInt(); err != nil {
		return u, err
	}
	if !tk.HasMore() {
		return u, nil
	}
	if u.Message, err = tk.NextString(); err != nil {
		return u, err
	}
	if !tk.HasMore() {
		return u, nil
	}
	if u.DCS, err = tk.NextInt(); err != nil {
		return u, err
	}
	return u, nil
}

func (c *Core) onUSSD(lines []string) {
	u, err := ParseUSSD(lines[0])
	if err != nil {
		c.log.Warnw("invalid USSD", "line", lines[0], "err", err)
		return
	}
	c.sink.Event(UnsolOnUSSD, u)
}
