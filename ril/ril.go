// SPDX-License-Identifier: MIT
//
// Copyright © 2018 Kent Gibson <warthog618@gmail.com>.

// Package ril adapts an AT command modem to the request, completion and
// event model of a telephony framework.
//
// The Core accepts typed Requests via Handle, translates them into AT
// commands issued over a Channel, and reports the outcome of each request
// exactly once to a Sink.  Unsolicited lines from the modem are translated
// into state changes and events pushed to the same Sink.
package ril

import (
	"context"
	"sync"
	"time"

	"github.com/looplab/fsm"
	"github.com/warthog618/ril/netif"
	"github.com/warthog618/ril/tech"
	"go.uber.org/atomic"
	"go.uber.org/zap"
)

// Token identifies a request to the Sink.  It is opaque to the Core.
type Token interface{}

// Sink receives request completions and events.
//
// Methods may be called from any goroutine.
type Sink interface {
	// Complete is called exactly once for each request passed to Handle.
	Complete(t Token, e Errno, rsp interface{})

	// Event is called for each event generated by the Core.
	Event(code Unsol, payload interface{})
}

// Link controls the network interface carrying packet data.
type Link interface {
	SetState(name string, up bool) error
}

// ModemInfo describes the capabilities of the modem and its technology
// configuration.
type ModemInfo struct {
	// Supported is the set of technologies supported by the modem.
	Supported tech.Mask

	// Current is the bit index of the technology currently in use.
	Current int

	// Multimode is true if the modem can switch between technologies.
	Multimode bool

	// Preferred is the priority encoded technology preference.
	Preferred tech.Preference

	// SubscriptionSource is the CDMA subscription source.
	SubscriptionSource int
}

// Core is the state shared by all requests and indications.
type Core struct {
	sink   Sink
	log    *zap.SugaredLogger
	link   Link
	ifname string

	// delay before a follow up call list poll
	callPoll time.Duration

	// delay between SIM polls while the SIM is not ready
	simPoll time.Duration

	// mu covers radio, closed and ch, and is the lock for cond
	mu     sync.Mutex
	cond   *sync.Cond
	radio  *fsm.FSM
	closed bool
	ch     Channel

	// serialises radio state events
	evMu sync.Mutex

	// smu covers the fields below
	smu          sync.Mutex
	mdm          ModemInfo
	calls        callTracker
	reg          registration
	ims          IMSRegistration
	cellInfoRate int
	stkPending   *string

	stkRunning   *atomic.Bool
	expectAnswer *atomic.Bool

	pdp   *pdpPool
	queue *taskQueue

	ctx    context.Context
	cancel context.CancelFunc
}

// Option is a construction option for a Core.
type Option func(*Core)

// New creates a Core reporting to the sink.
//
// The Core has no Channel until Attach is called.
func New(sink Sink, options ...Option) *Core {
	ctx, cancel := context.WithCancel(context.Background())
	c := &Core{
		sink:     sink,
		log:      zap.NewNop().Sugar(),
		link:     netif.Controller{},
		ifname:   "wwan0",
		callPoll: 500 * time.Millisecond,
		simPoll:  time.Second,
		radio:    newRadioFSM(),
		mdm: ModemInfo{
			Supported: tech.GSM | tech.WCDMA | tech.LTE,
			Preferred: tech.DefaultPreference,
		},
		calls:        callTracker{incomingOrWaiting: -1},
		reg:          registration{lac: -1, cid: -1, mncLength: 2},
		ims:          IMSRegistration{Format: 1},
		stkRunning:   atomic.NewBool(false),
		expectAnswer: atomic.NewBool(false),
		pdp:          newPDPPool(pdpPoolSize),
		queue:        newTaskQueue(),
		ctx:          ctx,
		cancel:       cancel,
	}
	c.cond = sync.NewCond(&c.mu)
	for _, option := range options {
		option(c)
	}
	go c.queue.run(ctx)
	return c
}

// WithLogger sets the logger for the Core.
//
// By default nothing is logged.
func WithLogger(l *zap.SugaredLogger) Option {
	return func(c *Core) {
		c.log = l
	}
}

// WithInterface sets the name of the network interface carrying packet data.
//
// The default is "wwan0".
func WithInterface(name string) Option {
	return func(c *Core) {
		c.ifname = name
	}
}

// WithLink sets the controller for the packet data interface.
func WithLink(l Link) Option {
	return func(c *Core) {
		c.link = l
	}
}

// WithModemInfo sets the initial ModemInfo, which is otherwise determined by
// Init.
func WithModemInfo(m ModemInfo) Option {
	return func(c *Core) {
		c.mdm = m
	}
}

// WithCallPollInterval sets the delay before the call list is polled again
// while calls are changing state.
func WithCallPollInterval(d time.Duration) Option {
	return func(c *Core) {
		c.callPoll = d
	}
}

// WithSimPollInterval sets the interval between polls of a SIM that is not
// yet ready.
func WithSimPollInterval(d time.Duration) Option {
	return func(c *Core) {
		c.simPoll = d
	}
}

// Attach binds the Core to a connected Channel.
//
// The unsolicited line handlers are registered with the Channel, and the
// radio becomes unavailable when the Channel closes.
func (c *Core) Attach(ch Channel) error {
	c.mu.Lock()
	c.ch = ch
	c.closed = false
	c.mu.Unlock()
	for _, ind := range c.indications() {
		if err := ch.AddIndication(ind.prefix, ind.handler, ind.options...); err != nil {
			return err
		}
	}
	go func() {
		select {
		case <-ch.Closed():
			c.detach(ch)
		case <-c.ctx.Done():
		}
	}()
	return nil
}

// detach closes out the Core if ch is still the attached Channel.
func (c *Core) detach(ch Channel) {
	c.mu.Lock()
	if c.ch != ch {
		c.mu.Unlock()
		return
	}
	c.closed = true
	c.mu.Unlock()
	c.log.Info("channel closed")
	c.setRadioState(RadioUnavailable)
}

// OnCommandTimeout closes out the Core after a command has timed out.
//
// The modem state is unknown, so the Channel should be closed and recreated.
func (c *Core) OnCommandTimeout() {
	c.mu.Lock()
	c.closed = true
	c.mu.Unlock()
	c.log.Warn("command timeout")
	c.setRadioState(RadioUnavailable)
}

// WaitClosed blocks until the attached Channel is closed or a command times
// out.
func (c *Core) WaitClosed() {
	c.mu.Lock()
	for !c.closed {
		c.cond.Wait()
	}
	c.mu.Unlock()
}

// Close stops the Core.  Tasks deferred by indications are discarded.
func (c *Core) Close() {
	c.queue.close()
	c.cancel()
}

// ModemInfo returns a snapshot of the modem capabilities.
func (c *Core) ModemInfo() ModemInfo {
	c.smu.Lock()
	defer c.smu.Unlock()
	return c.mdm
}

// Init runs the modem initialization sequence on the attached Channel.
//
// The radio is OFF on return unless the modem reports it is already on.
func (c *Core) Init(ctx context.Context) error {
	c.setRadioState(RadioOff)
	ch, err := c.channel()
	if err != nil {
		return err
	}
	if err := ch.Init(ctx); err != nil {
		return err
	}
	c.detectModem(ctx)
	for _, cmd := range initCmds {
		err := c.command(ctx, cmd)
		if err != nil && cmd == "+CREG=2" {
			// some modems do not support location reporting
			err = c.command(ctx, "+CREG=1")
		}
		if err != nil {
			if failure(err) == RadioNotAvailable || ctx.Err() != nil {
				return err
			}
			c.log.Debugw("init command failed", "cmd", cmd, "err", err)
		}
	}
	c.logCapabilities(ctx)
	if on, err := c.isRadioOn(ctx); err == nil && on {
		c.setRadioState(RadioOn)
	}
	c.log.Infow("initialized", "radio", c.RadioState())
	return nil
}

// initCmds configure the modem after the handshake.
var initCmds = []string{
	"E0Q0V1",
	"S0=0",
	"+CMEE=1",
	"+CREG=2",
	"+CGREG=1",
	"+CCWA=1",
	"+CMOD=0",
	"+CMUT=0",
	"+CSSN=0,1",
	"+COLP=0",
	`+CSCS="GSM"`,
	"+CUSD=1",
	"+CGEREP=1,0",
	"+CMGF=0",
}
