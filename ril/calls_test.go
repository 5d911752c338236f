// SPDX-License-Identifier: MIT
//
// Copyright © 2018 Kent Gibson <warthog618@gmail.com>.

package ril_test

import (
	"context"
	"testing"
	"time"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/warthog618/ril/at"
	"github.com/warthog618/ril/info"
	"github.com/warthog618/ril/ril"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestParseCall(t *testing.T) {
	patterns := []struct {
		name string
		line string
		call ril.Call
		err  error
	}{
		{
			"active",
			`+CLCC: 1,0,0,0,0,"+18005551212",145`,
			ril.Call{Index: 1, State: ril.CallActive, Voice: true, Number: "+18005551212", TOA: 145},
			nil,
		},
		{
			"dialing",
			`+CLCC: 1,0,2,0,0,"+18005551212",145`,
			ril.Call{Index: 1, State: ril.CallDialing, Voice: true, Number: "+18005551212", TOA: 145},
			nil,
		},
		{
			"waiting mpty",
			`+CLCC: 2,1,5,0,1,"0405551212",129`,
			ril.Call{Index: 2, MT: true, State: ril.CallWaiting, Voice: true, Multiparty: true, Number: "0405551212", TOA: 129},
			nil,
		},
		{
			"data",
			`+CLCC: 3,1,4,1,0`,
			ril.Call{Index: 3, MT: true, State: ril.CallIncoming},
			nil,
		},
		{
			"not dialable",
			`+CLCC: 1,1,4,0,0,"Anonymous",128`,
			ril.Call{Index: 1, MT: true, State: ril.CallIncoming, Voice: true, TOA: 128},
			nil,
		},
		{
			"invalid state",
			`+CLCC: 1,0,6,0,0`,
			ril.Call{Index: 1},
			ril.ErrInvalidCallState,
		},
		{
			"no prefix",
			`1,0,0,0,0`,
			ril.Call{},
			info.ErrNoPrefix,
		},
		{
			"truncated",
			`+CLCC: 1,0`,
			ril.Call{Index: 1},
			info.ErrNoToken,
		},
	}
	for _, p := range patterns {
		f := func(t *testing.T) {
			call, err := ril.ParseCall(p.line)
			assert.Equal(t, p.err, errors.Cause(err))
			assert.Equal(t, p.call, call)
		}
		t.Run(p.name, f)
	}
}

func TestGetCurrentCalls(t *testing.T) {
	f := newFixture(t, ril.WithCallPollInterval(0))
	f.init(t, true)
	f.ch.set("+CLCC",
		`+CLCC: 1,0,0,0,0,"+18005551212",145`,
		`+CLCC: 2,0,1,0,0,"0405551212",129`)
	c := f.handle(t, ril.GetCurrentCalls{})
	assert.Equal(t, ril.Success, c.e)
	calls := c.rsp.([]ril.Call)
	require.Len(t, calls, 2)
	assert.Equal(t, ril.CallHolding, calls[1].State)

	// no calls
	f.ch.set("+CLCC")
	c = f.handle(t, ril.GetCurrentCalls{})
	assert.Equal(t, ril.Success, c.e)
	assert.Equal(t, []ril.Call{}, c.rsp)

	f.ch.fail("+CLCC", at.ErrClosed)
	c = f.handle(t, ril.GetCurrentCalls{})
	assert.Equal(t, ril.RadioNotAvailable, c.e)
}

func TestGetCurrentCallsTransient(t *testing.T) {
	f := newFixture(t, ril.WithCallPollInterval(0))
	f.init(t, true)
	f.s.clear()
	f.ch.set("+CLCC", `+CLCC: 1,0,3,0,0,"+18005551212",145`)
	c := f.handle(t, ril.GetCurrentCalls{})
	assert.Equal(t, ril.Success, c.e)
	// alerting call triggers a follow up state change
	f.s.waitEvent(t, ril.UnsolCallStateChanged)
}

var (
	waitingCall = `+CLCC: 2,1,5,0,0,"0405551212",129`
	activeCall  = `+CLCC: 2,1,0,0,0,"0405551212",129`
)

func TestGetCurrentCallsRace(t *testing.T) {
	f := newFixture(t, ril.WithCallPollInterval(0))
	f.init(t, true)
	f.ch.sequence("+CLCC", []string{waitingCall}, []string{activeCall})

	c := f.handle(t, ril.GetCurrentCalls{})
	assert.Equal(t, ril.Success, c.e)
	assert.Equal(t, ril.CallWaiting, c.rsp.([]ril.Call)[0].State)

	// active without an answer, so polled again and again before failing
	c = f.handle(t, ril.GetCurrentCalls{})
	assert.Equal(t, ril.GenericFailure, c.e)
	assert.Nil(t, c.rsp)
	assert.Equal(t, 6, f.ch.count("+CLCC"))

	// tracking is reset
	c = f.handle(t, ril.GetCurrentCalls{})
	assert.Equal(t, ril.Success, c.e)
	assert.Equal(t, ril.CallActive, c.rsp.([]ril.Call)[0].State)
	assert.Equal(t, 7, f.ch.count("+CLCC"))
}

func TestGetCurrentCallsClose(t *testing.T) {
	f := newFixture(t, ril.WithCallPollInterval(time.Hour))
	f.init(t, true)
	f.ch.sequence("+CLCC", []string{waitingCall}, []string{activeCall})
	c := f.handle(t, ril.GetCurrentCalls{})
	require.Equal(t, ril.Success, c.e)

	// race detected, so completion waits on the repoll
	f.c.Handle(context.Background(), ril.GetCurrentCalls{}, "repoll")
	select {
	case c := <-f.s.done:
		t.Fatalf("completed before repoll: %v", c)
	default:
	}

	f.c.Close()
	c = f.s.waitComplete(t)
	assert.Equal(t, "repoll", c.t)
	assert.Equal(t, ril.RadioNotAvailable, c.e)
	assert.Nil(t, c.rsp)
	assert.Equal(t, 2, f.ch.count("+CLCC"))
}

func TestGetCurrentCallsAnswered(t *testing.T) {
	f := newFixture(t, ril.WithCallPollInterval(0))
	f.init(t, true)
	f.ch.sequence("+CLCC", []string{waitingCall}, []string{activeCall})

	c := f.handle(t, ril.GetCurrentCalls{})
	assert.Equal(t, ril.Success, c.e)

	c = f.handle(t, ril.Answer{})
	assert.Equal(t, ril.Success, c.e)
	assert.Contains(t, f.ch.commands(), "A")

	c = f.handle(t, ril.GetCurrentCalls{})
	assert.Equal(t, ril.Success, c.e)
	assert.Equal(t, ril.CallActive, c.rsp.([]ril.Call)[0].State)
	assert.Equal(t, 2, f.ch.count("+CLCC"))
}

func TestDial(t *testing.T) {
	patterns := []struct {
		name string
		req  ril.Request
		cmd  string
	}{
		{"plain", ril.Dial{Address: "+18005551212"}, "D+18005551212;"},
		{"invoke clir", ril.Dial{Address: "123", CLIR: 1}, "D123I;"},
		{"suppress clir", ril.Dial{Address: "123", CLIR: 2}, "D123i;"},
		{"emergency", ril.EmergencyDial{Dial: ril.Dial{Address: "911"}}, "D911@,#;"},
		{"emergency category",
			ril.EmergencyDial{Dial: ril.Dial{Address: "911"}, Categories: 4},
			"D911@4,#;"},
		{"emergency normal",
			ril.EmergencyDial{Dial: ril.Dial{Address: "911"}, Routing: ril.RoutingNormal},
			"D911;"},
	}
	for _, p := range patterns {
		f := func(t *testing.T) {
			f := newFixture(t)
			f.init(t, true)
			c := f.handle(t, p.req)
			assert.Equal(t, ril.Success, c.e)
			assert.Contains(t, f.ch.commands(), p.cmd)
		}
		t.Run(p.name, f)
	}
}

func TestDialFailure(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	f := newFixture(t, ril.WithLogger(zap.New(core).Sugar()))
	f.init(t, true)
	f.ch.fail("D123;", at.ConnectError("NO CARRIER"))
	c := f.handle(t, ril.Dial{Address: "123"})
	assert.Equal(t, ril.Success, c.e)
	w := logs.FilterMessage("dial failed").All()
	require.Len(t, w, 1)
	assert.Equal(t, zapcore.WarnLevel, w[0].Level)
	assert.Equal(t, "D123;", w[0].ContextMap()["cmd"])
}

func TestCallControl(t *testing.T) {
	patterns := []struct {
		name  string
		req   ril.Request
		cmd   string
		errno ril.Errno
	}{
		{"hangup", ril.Hangup{Index: 3}, "+CHLD=13", ril.Success},
		{"hangup waiting", ril.HangupWaitingOrBackground{}, "+CHLD=0", ril.Success},
		{"hangup foreground", ril.HangupForegroundResumeBackground{}, "+CHLD=1", ril.Success},
		{"switch", ril.SwitchWaitingOrHoldingAndActive{}, "+CHLD=2", ril.Success},
		{"conference", ril.Conference{}, "+CHLD=3", ril.Success},
		{"udub", ril.UDUB{}, "H", ril.Success},
		{"separate", ril.SeparateConnection{Index: 2}, "+CHLD=22", ril.Success},
		{"dtmf", ril.DTMF{Tone: '5'}, "+VTS=5", ril.Success},
		{"mute", ril.SetMute{Mute: true}, "+CMUT=1", ril.Success},
		{"unmute", ril.SetMute{}, "+CMUT=0", ril.Success},
		{"clir", ril.SetCLIR{N: 2}, "+CLIR=2", ril.Success},
		{"call waiting", ril.SetCallWaiting{Enable: true, ServiceClass: 1}, "+CCWA=1,1,1", ril.Success},
		{"supp svc", ril.SetSuppSvcNotification{Enable: true}, "+CSSN=1,1", ril.Success},
		{"ussd", ril.SendUSSD{USSD: "*100#"}, `+CUSD=1,"*100#"`, ril.Success},
		{"cancel ussd", ril.CancelUSSD{}, "+CUSD=2", ril.Success},
	}
	for _, p := range patterns {
		f := func(t *testing.T) {
			f := newFixture(t)
			f.init(t, true)
			c := f.handle(t, p.req)
			assert.Equal(t, p.errno, c.e)
			assert.Contains(t, f.ch.commands(), p.cmd)
		}
		t.Run(p.name, f)
	}
}

func TestCallControlNoSim(t *testing.T) {
	patterns := []struct {
		name  string
		req   ril.Request
		errno ril.Errno
	}{
		{"hangup", ril.Hangup{Index: 1}, ril.ModemErr},
		{"switch", ril.SwitchWaitingOrHoldingAndActive{}, ril.RadioNotAvailable},
		{"separate", ril.SeparateConnection{Index: 1}, ril.RadioNotAvailable},
		{"clip", ril.QueryCLIP{}, ril.ModemErr},
		{"clir", ril.GetCLIR{}, ril.ModemErr},
		{"cancel ussd", ril.CancelUSSD{}, ril.RadioNotAvailable},
	}
	for _, p := range patterns {
		f := func(t *testing.T) {
			f := newFixture(t)
			f.init(t, true)
			f.ch.fail("+CPIN?", at.CMEError("10"))
			c := f.handle(t, p.req)
			assert.Equal(t, p.errno, c.e)
		}
		t.Run(p.name, f)
	}
}

func TestSeparateConnectionRange(t *testing.T) {
	f := newFixture(t)
	f.init(t, true)
	for _, idx := range []int{0, 10} {
		c := f.handle(t, ril.SeparateConnection{Index: idx})
		assert.Equal(t, ril.GenericFailure, c.e, idx)
	}
}

func TestGetMute(t *testing.T) {
	f := newFixture(t)
	f.init(t, true)
	f.ch.set("+CMUT?", "+CMUT: 1")
	c := f.handle(t, ril.GetMute{})
	assert.Equal(t, ril.Success, c.e)
	assert.Equal(t, true, c.rsp)

	f.ch.set("+CMUT?", "+CMUT: 0")
	c = f.handle(t, ril.GetMute{})
	assert.Equal(t, false, c.rsp)
}

func TestQueryCLIP(t *testing.T) {
	f := newFixture(t)
	f.init(t, true)
	f.ch.set("+CLIP?", "+CLIP: 1,2")
	c := f.handle(t, ril.QueryCLIP{})
	assert.Equal(t, ril.Success, c.e)
	assert.Equal(t, 2, c.rsp)

	f.ch.set("+CLIR?", "+CLIR: 0,4")
	c = f.handle(t, ril.GetCLIR{})
	assert.Equal(t, ril.Success, c.e)
	assert.Equal(t, ril.CLIRInfo{N: 0, M: 4}, c.rsp)
}

func TestQueryCallWaiting(t *testing.T) {
	f := newFixture(t)
	f.init(t, true)
	f.ch.set("+CCWA=1,2", "+CCWA: 1,1", "+CCWA: 1,4")
	c := f.handle(t, ril.QueryCallWaiting{})
	assert.Equal(t, ril.Success, c.e)
	assert.Equal(t, ril.CallWaitingInfo{Enabled: true, ServiceClass: 5}, c.rsp)
}

func TestCallForward(t *testing.T) {
	f := newFixture(t)
	f.init(t, true)
	f.ch.set(`+CCFCU=1,2,2,145,"",0`,
		`+CCFCU: 1,1,2,145,"+18005551212"`,
		`+CCFCU: 0,4`)
	c := f.handle(t, ril.QueryCallForwardStatus{CallForward: ril.CallForward{Reason: 1, TOA: 145}})
	assert.Equal(t, ril.Success, c.e)
	assert.Equal(t, []ril.CallForward{
		{Status: 1, Reason: 1, ServiceClass: 1, TOA: 145, Number: "+18005551212"},
		{Status: 0, Reason: 1, ServiceClass: 4},
	}, c.rsp)

	// registration requires a number
	c = f.handle(t, ril.SetCallForward{CallForward: ril.CallForward{Status: 3}})
	assert.Equal(t, ril.GenericFailure, c.e)

	c = f.handle(t, ril.SetCallForward{CallForward: ril.CallForward{
		Status: 3, Reason: 2, TOA: 145, Number: "+18005551212", TimeSeconds: 20,
	}})
	assert.Equal(t, ril.Success, c.e)
	assert.Contains(t, f.ch.commands(), `+CCFCU=2,3,2,145,"+18005551212",0,"","",,20`)
}

func TestQueryTTYMode(t *testing.T) {
	f := newFixture(t)
	f.init(t, true)
	c := f.handle(t, ril.QueryTTYMode{})
	assert.Equal(t, ril.Success, c.e)
	assert.Equal(t, 1, c.rsp)

	f.ch.set("+CPIN?", "+CPIN: SIM PIN")
	c = f.handle(t, ril.QueryTTYMode{})
	assert.Equal(t, 0, c.rsp)
}
