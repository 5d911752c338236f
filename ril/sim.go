// SPDX-License-Identifier: MIT
//
// Copyright © 2018 Kent Gibson <warthog618@gmail.com>.

package ril

import (
	"context"
	"fmt"
	"strconv"

	"github.com/warthog618/ril/info"
)

// simStatus is the lifecycle state of the SIM, as reported by +CPIN?.
type simStatus int

const (
	simAbsent simStatus = iota
	simNotReady
	simReady
	simPIN
	simPUK
	simNetworkPerso
)

var simStatusNames = [...]string{"absent", "not ready", "ready", "PIN", "PUK", "network perso"}

func (s simStatus) String() string {
	if s < 0 || int(s) >= len(simStatusNames) {
		return fmt.Sprintf("simStatus(%d)", int(s))
	}
	return simStatusNames[s]
}

// cmeSimNotInserted is the CME error returned when there is no SIM.
const cmeSimNotInserted = "10"

// simStatus queries the SIM.
//
// A READY SIM is only reported ready once the radio is on.
func (c *Core) simStatus(ctx context.Context) simStatus {
	s := c.querySIM(ctx)
	if s == simReady && c.RadioState() != RadioOn {
		return simNotReady
	}
	return s
}

// isSIMAbsent queries the SIM and returns true if there is none.
func (c *Core) isSIMAbsent(ctx context.Context) bool {
	return c.simStatus(ctx) == simAbsent
}

func (c *Core) querySIM(ctx context.Context) simStatus {
	line, err := c.singleLine(ctx, "+CPIN?", "+CPIN:")
	if err != nil {
		if cme, ok := cmeError(err); ok && cme == cmeSimNotInserted {
			return simAbsent
		}
		return simNotReady
	}
	tk, err := info.Tokenize(line)
	if err != nil {
		return simNotReady
	}
	state, err := tk.NextString()
	if err != nil {
		return simNotReady
	}
	switch state {
	case "READY":
		return simReady
	case "SIM PIN":
		return simPIN
	case "SIM PUK":
		return simPUK
	case "PH-NET PIN":
		return simNetworkPerso
	}
	// unsupported lock types
	return simAbsent
}

// pollSIMState polls the SIM until it leaves the not ready state.
//
// Polling only continues while the radio is unavailable.
func (c *Core) pollSIMState(ctx context.Context) {
	if c.RadioState() != RadioUnavailable {
		return
	}
	switch s := c.simStatus(ctx); s {
	case simNotReady:
		c.queue.postDelayed(c.simPoll, c.pollSIMState)
	case simReady:
		c.onSIMReady(ctx)
		c.sink.Event(UnsolSimStatusChanged, nil)
	default:
		c.log.Infow("SIM absent or locked", "status", s)
		c.sink.Event(UnsolSimStatusChanged, nil)
	}
}

// onSIMReady configures the commands that require the SIM.
func (c *Core) onSIMReady(ctx context.Context) {
	c.singleLine(ctx, "+CSMS=1", "+CSMS:")
	// route SMS and status reports directly to the TE
	c.command(ctx, "+CNMI=1,2,2,1,1")
}

var appStatuses = map[simStatus]AppStatus{
	simAbsent:       {},
	simNotReady:     {State: AppStateDetected},
	simReady:        {State: AppStateReady, PersoSubstate: PersoReady},
	simPIN:          {State: AppStatePIN, Pin1: PinEnabledNotVerified},
	simPUK:          {State: AppStatePUK, Pin1: PinEnabledBlocked},
	simNetworkPerso: {State: AppStateSubscriptionPerso, PersoSubstate: PersoSimNetwork, Pin1: PinEnabledNotVerified},
}

func appStatus(s simStatus, t AppType) AppStatus {
	a := appStatuses[s]
	if s != simAbsent {
		a.Type = t
	}
	return a
}

// cardStatus synthesizes the card status from a single SIM query.
func (c *Core) cardStatus(ctx context.Context) CardStatus {
	s := c.simStatus(ctx)
	cs := CardStatus{
		State:        CardAbsent,
		GsmUmtsIndex: -1,
		CdmaIndex:    -1,
		ImsIndex:     -1,
	}
	if s == simAbsent {
		return cs
	}
	cs.State = CardPresent
	cs.GsmUmtsIndex = 0
	cs.CdmaIndex = 1
	cs.ImsIndex = 2
	cs.Apps = []AppStatus{
		appStatus(s, AppUSIM),
		appStatus(s, AppRUIM),
		appStatus(s, AppISIM),
	}
	cs.ICCID = c.iccid(ctx)
	return cs
}

func (c *Core) iccid(ctx context.Context) string {
	line, err := c.singleLine(ctx, "+QCCID", "+QCCID:")
	if err != nil {
		return ""
	}
	tk, err := info.Tokenize(line)
	if err != nil {
		return ""
	}
	return tk.Rest()
}

// remainingAttempts returns the number of attempts remaining for the lock,
// or -1 if unknown.
func (c *Core) remainingAttempts(ctx context.Context, lock string) int {
	l, err := c.multiLine(ctx, fmt.Sprintf("+CPINR=%q", lock), "+CPINR:")
	if err != nil || len(l) == 0 {
		return -1
	}
	tk, err := info.Tokenize(l[0])
	if err != nil {
		return -1
	}
	if err := tk.Skip(); err != nil {
		return -1
	}
	n, err := tk.NextInt()
	if err != nil {
		return -1
	}
	return n
}

// enterCode sends a +CPIN command, completing with the remaining attempts
// for the lock on failure.
func (c *Core) enterCode(ctx context.Context, cmd, lock string) (Errno, interface{}) {
	if _, err := c.lines(ctx, cmd); err != nil {
		if failure(err) == RadioNotAvailable {
			return RadioNotAvailable, nil
		}
		return PasswordIncorrect, c.remainingAttempts(ctx, lock)
	}
	return Success, nil
}

func (c *Core) enterSimPin(ctx context.Context, pin, lock string) (Errno, interface{}) {
	return c.enterCode(ctx, "+CPIN="+pin, lock)
}

func (c *Core) changeSimPin(ctx context.Context, a, b, lock string) (Errno, interface{}) {
	return c.enterCode(ctx, "+CPIN="+a+","+b, lock)
}

func (c *Core) changeSimPin2(ctx context.Context, r ChangeSimPin2) (Errno, interface{}) {
	return c.enterCode(ctx, fmt.Sprintf(`+CPWD="P2",%q,%q`, r.OldPIN, r.NewPIN), "SIM PIN2")
}

func facilityLockCmd(facility string, mode int, password string, class int) string {
	cmd := fmt.Sprintf("+CLCK=%q,%d,%q", facility, mode, password)
	if class != 0 {
		cmd += "," + strconv.Itoa(class)
	}
	return cmd
}

// facilityAttempts returns the remaining attempts for the lock protecting
// the facility.
func (c *Core) facilityAttempts(ctx context.Context, facility string) int {
	switch facility {
	case "SC":
		return c.remainingAttempts(ctx, "SIM PIN")
	case "FD":
		return c.remainingAttempts(ctx, "SIM PIN2")
	}
	return 1
}

func (c *Core) queryFacilityLock(ctx context.Context, r QueryFacilityLock) (Errno, interface{}) {
	if r.Facility == "" {
		return InvalidArguments, nil
	}
	cmd := facilityLockCmd(r.Facility, 2, r.Password, r.ServiceClass)
	l, err := c.multiLine(ctx, cmd, "+CLCK: ")
	if err != nil || len(l) == 0 {
		return GenericFailure, c.facilityAttempts(ctx, r.Facility)
	}
	tk, err := info.Tokenize(l[0])
	if err != nil {
		return GenericFailure, c.facilityAttempts(ctx, r.Facility)
	}
	status, err := tk.NextInt()
	if err != nil {
		return GenericFailure, c.facilityAttempts(ctx, r.Facility)
	}
	return Success, status
}

func (c *Core) setFacilityLock(ctx context.Context, r SetFacilityLock) (Errno, interface{}) {
	if r.Facility == "" || r.Password == "" {
		return InvalidArguments, nil
	}
	mode := 0
	if r.Lock {
		mode = 1
	}
	e := Success
	if err := c.command(ctx, facilityLockCmd(r.Facility, mode, r.Password, r.ServiceClass)); err != nil {
		e = PasswordIncorrect
	}
	return e, c.facilityAttempts(ctx, r.Facility)
}

func (c *Core) changeBarringPassword(ctx context.Context, r ChangeBarringPassword) Errno {
	if r.Facility == "" || r.OldPassword == "" || r.NewPassword == "" {
		return InvalidArguments
	}
	cmd := fmt.Sprintf("+CPWD=%q,%q,%q", r.Facility, r.OldPassword, r.NewPassword)
	if err := c.command(ctx, cmd); err != nil {
		return PasswordIncorrect
	}
	return Success
}

func (c *Core) imsi(ctx context.Context) (Errno, interface{}) {
	return c.numericString(ctx, "+CIMI")
}
