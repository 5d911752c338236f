// SPDX-License-Identifier: MIT
//
// Copyright © 2018 Kent Gibson <warthog618@gmail.com>.

package ril

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/pkg/errors"
	"github.com/warthog618/ril/info"
)

// maxCallRepolls is the number of times the call list is polled again when a
// call appears to have been answered without an answer request.
const maxCallRepolls = 4

// callTracker holds the call list state carried between polls.
type callTracker struct {
	// index of the call incoming or waiting at the last poll, or -1
	incomingOrWaiting int

	repolls int
}

// ErrInvalidCallState indicates a +CLCC line reported an unknown call state.
var ErrInvalidCallState = errors.New("invalid call state")

// ParseCall parses a +CLCC line.
//
// The number and type of address are optional.  A number that is not a
// dialling string is reported as empty.
func ParseCall(line string) (Call, error) {
	var call Call
	tk, err := info.Tokenize(line)
	if err != nil {
		return call, err
	}
	if call.Index, err = tk.NextInt(); err != nil {
		return call, err
	}
	if call.MT, err = tk.NextBool(); err != nil {
		return call, err
	}
	state, err := tk.NextInt()
	if err != nil {
		return call, err
	}
	if state < int(CallActive) || state > int(CallWaiting) {
		return call, errors.Wrapf(ErrInvalidCallState, "%d", state)
	}
	call.State = CallState(state)
	mode, err := tk.NextInt()
	if err != nil {
		return call, err
	}
	call.Voice = mode == 0
	if call.Multiparty, err = tk.NextBool(); err != nil {
		return call, err
	}
	if !tk.HasMore() {
		return call, nil
	}
	number, err := tk.NextString()
	if err != nil {
		// tolerate a malformed number
		return call, nil
	}
	if len(number) > 0 && strings.IndexByte("+0123456789", number[0]) >= 0 {
		call.Number = number
	}
	if call.TOA, err = tk.NextInt(); err != nil {
		return call, err
	}
	return call, nil
}

// getCurrentCalls completes the request with the current call list.
//
// A call that was incoming or waiting at the previous poll and is now active,
// without having been answered, is taken as a modem race and the list is
// polled again, up to maxCallRepolls times, before the request fails.
func (c *Core) getCurrentCalls(ctx context.Context, t Token) {
	l, err := c.multiLine(ctx, "+CLCC", "+CLCC:")
	if err != nil {
		c.complete(t, failure(err), nil)
		return
	}
	calls := []Call{}
	incoming := -1
	repoll := false
	for _, line := range l {
		call, err := ParseCall(line)
		if err != nil {
			c.log.Warnw("discarding call", "line", line, "err", err)
			continue
		}
		if call.State == CallIncoming || call.State == CallWaiting {
			incoming = call.Index
		}
		if call.State != CallActive && call.State != CallHolding {
			repoll = true
		}
		calls = append(calls, call)
	}
	c.smu.Lock()
	prev := c.calls.incomingOrWaiting
	c.calls.incomingOrWaiting = incoming
	if prev >= 0 && incoming < 0 && !c.expectAnswer.Load() {
		for _, call := range calls {
			if call.Index != prev || call.State != CallActive {
				continue
			}
			if c.calls.repolls < maxCallRepolls {
				c.calls.repolls++
				c.calls.incomingOrWaiting = prev
				n := c.calls.repolls
				c.smu.Unlock()
				c.log.Infow("call answered unexpectedly, polling again", "index", prev, "repolls", n)
				c.queue.postRequest(c.callPoll,
					func(ctx context.Context) {
						c.getCurrentCalls(ctx, t)
					},
					func() {
						c.complete(t, RadioNotAvailable, nil)
					})
				return
			}
			c.calls.repolls = 0
			c.smu.Unlock()
			c.expectAnswer.Store(false)
			c.complete(t, GenericFailure, nil)
			return
		}
	}
	c.calls.repolls = 0
	c.smu.Unlock()
	c.expectAnswer.Store(false)
	c.complete(t, Success, calls)
	if repoll {
		// the modem does not report all call state changes
		c.queue.postDelayed(c.callPoll, func(context.Context) {
			c.sink.Event(UnsolCallStateChanged, nil)
		})
	}
}

func clirSuffix(clir int) string {
	switch clir {
	case 1:
		return "I"
	case 2:
		return "i"
	}
	return ""
}

func (c *Core) dial(ctx context.Context, r Dial) Errno {
	// the result is reported via call state changes
	cmd := "D" + r.Address + clirSuffix(r.CLIR) + ";"
	if err := c.command(ctx, cmd); err != nil {
		c.log.Warnw("dial failed", "cmd", cmd, "err", err)
	}
	return Success
}

func (c *Core) emergencyDial(ctx context.Context, r EmergencyDial) Errno {
	clir := clirSuffix(r.CLIR)
	var cmd string
	switch {
	case r.Routing == RoutingNormal:
		cmd = "D" + r.Address + clir + ";"
	case r.Categories == 0:
		cmd = fmt.Sprintf("D%s@,#%s;", r.Address, clir)
	default:
		cmd = fmt.Sprintf("D%s@%d,#%s;", r.Address, r.Categories, clir)
	}
	if err := c.command(ctx, cmd); err != nil {
		return failure(err)
	}
	return Success
}

// callSelection issues a call hold and multiparty command.
//
// The outcome is reported via call state changes.
func (c *Core) callSelection(ctx context.Context, cmd string) Errno {
	if c.isSIMAbsent(ctx) {
		return RadioNotAvailable
	}
	if cmd == "+CHLD=2" {
		// may answer a waiting call
		c.expectAnswer.Store(true)
	}
	c.command(ctx, cmd)
	return Success
}

func (c *Core) hangup(ctx context.Context, r Hangup) Errno {
	if c.isSIMAbsent(ctx) {
		return ModemErr
	}
	c.command(ctx, "+CHLD=1"+strconv.Itoa(r.Index))
	return Success
}

// answer answers an incoming call.  The outcome is reported via call state
// changes.
func (c *Core) answer(ctx context.Context) Errno {
	c.command(ctx, "A")
	c.expectAnswer.Store(true)
	if c.simStatus(ctx) != simReady {
		return ModemErr
	}
	return Success
}

func (c *Core) separateConnection(ctx context.Context, r SeparateConnection) Errno {
	if c.isSIMAbsent(ctx) {
		return RadioNotAvailable
	}
	// the call index must be a single digit
	if r.Index <= 0 || r.Index >= 10 {
		return GenericFailure
	}
	c.command(ctx, "+CHLD=2"+strconv.Itoa(r.Index))
	return Success
}

func (c *Core) dtmf(ctx context.Context, r DTMF) Errno {
	c.command(ctx, "+VTS="+string(r.Tone))
	return Success
}

func (c *Core) getMute(ctx context.Context) (Errno, interface{}) {
	mute := 0
	if line, err := c.singleLine(ctx, "+CMUT?", "+CMUT:"); err == nil {
		if tk, err := info.Tokenize(line); err == nil {
			if v, err := tk.NextInt(); err == nil {
				mute = v
			}
		}
	}
	return Success, mute != 0
}

func (c *Core) setMute(ctx context.Context, r SetMute) Errno {
	cmd := "+CMUT=0"
	if r.Mute {
		cmd = "+CMUT=1"
	}
	if err := c.command(ctx, cmd); err != nil {
		return failure(err)
	}
	return Success
}

func (c *Core) queryCLIP(ctx context.Context) (Errno, interface{}) {
	if c.isSIMAbsent(ctx) {
		return ModemErr, nil
	}
	line, err := c.singleLine(ctx, "+CLIP?", "+CLIP:")
	if err != nil {
		return failure(err), nil
	}
	tk, err := info.Tokenize(line)
	if err != nil {
		return GenericFailure, nil
	}
	if err := tk.Skip(); err != nil {
		return GenericFailure, nil
	}
	status, err := tk.NextInt()
	if err != nil {
		return GenericFailure, nil
	}
	return Success, status
}

func (c *Core) getCLIR(ctx context.Context) (Errno, interface{}) {
	if c.isSIMAbsent(ctx) {
		return ModemErr, nil
	}
	line, err := c.singleLine(ctx, "+CLIR?", "+CLIR:")
	if err != nil {
		return failure(err), nil
	}
	tk, err := info.Tokenize(line)
	if err != nil {
		return GenericFailure, nil
	}
	var ci CLIRInfo
	if ci.N, err = tk.NextInt(); err != nil {
		return GenericFailure, nil
	}
	if ci.M, err = tk.NextInt(); err != nil {
		return GenericFailure, nil
	}
	return Success, ci
}

func (c *Core) setCLIR(ctx context.Context, r SetCLIR) Errno {
	if err := c.command(ctx, "+CLIR="+strconv.Itoa(r.N)); err != nil {
		return failure(err)
	}
	return Success
}

// parseCallForward parses a +CCFCU line.
//
// The number and time are optional.
func parseCallForward(line string) (CallForward, error) {
	var cf CallForward
	tk, err := info.Tokenize(line)
	if err != nil {
		return cf, err
	}
	if cf.Status, err = tk.NextInt(); err != nil {
		return cf, err
	}
	if cf.ServiceClass, err = tk.NextInt(); err != nil {
		return cf, err
	}
	if !tk.HasMore() {
		return cf, nil
	}
	// number type
	if err = tk.Skip(); err != nil {
		return cf, err
	}
	if cf.TOA, err = tk.NextInt(); err != nil {
		return cf, err
	}
	if cf.Number, err = tk.NextString(); err != nil {
		return cf, nil
	}
	if !tk.HasMore() {
		return cf, nil
	}
	// subaddress and its type
	tk.Skip()
	tk.Skip()
	if t, err := tk.NextInt(); err == nil {
		cf.TimeSeconds = t
	}
	return cf, nil
}

const cfRegistration = 3

func (c *Core) setCallForward(ctx context.Context, r SetCallForward) Errno {
	cf := r.CallForward
	if cf.Status == cfRegistration && cf.Number == "" {
		return GenericFailure
	}
	cmd := fmt.Sprintf("+CCFCU=%d,%d,2,%d,%q,%d", cf.Reason, cf.Status, cf.TOA, cf.Number, cf.ServiceClass)
	switch {
	case cf.TimeSeconds != 0 && cf.Status == cfRegistration:
		cmd += fmt.Sprintf(`,"","",,%d`, cf.TimeSeconds)
	case cf.ServiceClass != 0:
		cmd += `,""`
	}
	if _, err := c.multiLine(ctx, cmd, "+CCFCU:"); err != nil {
		return failure(err)
	}
	return Success
}

func (c *Core) queryCallForward(ctx context.Context, r QueryCallForwardStatus) (Errno, interface{}) {
	cf := r.CallForward
	cmd := fmt.Sprintf("+CCFCU=%d,2,2,%d,%q,%d", cf.Reason, cf.TOA, cf.Number, cf.ServiceClass)
	l, err := c.multiLine(ctx, cmd, "+CCFCU:")
	if err != nil {
		return failure(err), nil
	}
	fwds := []CallForward{}
	for _, line := range l {
		f, err := parseCallForward(line)
		if err != nil {
			return GenericFailure, nil
		}
		f.Reason = cf.Reason
		fwds = append(fwds, f)
	}
	return Success, fwds
}

func (c *Core) queryCallWaiting(ctx context.Context, r QueryCallWaiting) (Errno, interface{}) {
	cmd := "+CCWA=1,2"
	if r.ServiceClass != 0 {
		cmd += "," + strconv.Itoa(r.ServiceClass)
	}
	l, err := c.multiLine(ctx, cmd, "+CCWA:")
	if err != nil {
		return failure(err), nil
	}
	var cw CallWaitingInfo
	for _, line := range l {
		tk, err := info.Tokenize(line)
		if err != nil {
			return GenericFailure, nil
		}
		mode, err := tk.NextInt()
		if err != nil {
			return GenericFailure, nil
		}
		class, err := tk.NextInt()
		if err != nil {
			return GenericFailure, nil
		}
		cw.Enabled = mode == 1
		cw.ServiceClass |= class
	}
	return Success, cw
}

func (c *Core) setCallWaiting(ctx context.Context, r SetCallWaiting) Errno {
	cmd := "+CCWA=1," + boolInt(r.Enable)
	if r.ServiceClass != 0 {
		cmd += "," + strconv.Itoa(r.ServiceClass)
	}
	if err := c.command(ctx, cmd); err != nil {
		return failure(err)
	}
	return Success
}

func (c *Core) setSuppSvcNotification(ctx context.Context, r SetSuppSvcNotification) Errno {
	m := boolInt(r.Enable)
	if err := c.command(ctx, "+CSSN="+m+","+m); err != nil {
		return failure(err)
	}
	return Success
}

func (c *Core) sendUSSD(ctx context.Context, r SendUSSD) Errno {
	if err := c.command(ctx, fmt.Sprintf("+CUSD=1,%q", r.USSD)); err != nil {
		return failure(err)
	}
	return Success
}

func (c *Core) cancelUSSD(ctx context.Context) Errno {
	if c.isSIMAbsent(ctx) {
		return RadioNotAvailable
	}
	if err := c.command(ctx, "+CUSD=2"); err != nil {
		return failure(err)
	}
	return Success
}

// queryTTYMode reports full TTY support once the SIM is ready.
func (c *Core) queryTTYMode(ctx context.Context) (Errno, interface{}) {
	if c.simStatus(ctx) == simReady {
		return Success, 1
	}
	return Success, 0
}

func boolInt(b bool) string {
	if b {
		return "1"
	}
	return "0"
}
