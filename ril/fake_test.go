// SPDX-License-Identifier: MIT
//
// Copyright © 2018 Kent Gibson <warthog618@gmail.com>.

package ril_test

import (
	"context"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/warthog618/ril/at"
	"github.com/warthog618/ril/ril"
)

// fakeChannel is a scripted command channel.
//
// Commands without a scripted response succeed with no info lines.
type fakeChannel struct {
	mu     sync.Mutex
	rsp    map[string][]string
	seq    map[string][][]string
	errs   map[string]error
	sent   []string
	pdus   []string
	inds   []fakeIndication
	closed chan struct{}
}

type fakeIndication struct {
	prefix  string
	handler at.InfoHandler
}

func newFakeChannel() *fakeChannel {
	return &fakeChannel{
		rsp:    map[string][]string{},
		seq:    map[string][][]string{},
		errs:   map[string]error{},
		closed: make(chan struct{}),
	}
}

// set scripts the info lines returned by a command.
func (f *fakeChannel) set(cmd string, lines ...string) {
	f.mu.Lock()
	f.rsp[cmd] = lines
	delete(f.errs, cmd)
	f.mu.Unlock()
}

// sequence scripts successive responses to a command.  The last response
// repeats.
func (f *fakeChannel) sequence(cmd string, rsps ...[]string) {
	f.mu.Lock()
	f.seq[cmd] = rsps
	f.mu.Unlock()
}

// fail scripts an error returned by a command.
func (f *fakeChannel) fail(cmd string, err error) {
	f.mu.Lock()
	f.errs[cmd] = err
	f.mu.Unlock()
}

func (f *fakeChannel) response(cmd string) ([]string, error) {
	f.sent = append(f.sent, cmd)
	if err, ok := f.errs[cmd]; ok {
		return nil, err
	}
	if s, ok := f.seq[cmd]; ok && len(s) > 0 {
		l := s[0]
		if len(s) > 1 {
			f.seq[cmd] = s[1:]
		}
		return l, nil
	}
	return f.rsp[cmd], nil
}

func (f *fakeChannel) Command(ctx context.Context, cmd string) ([]string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.response(cmd)
}

func (f *fakeChannel) SMSCommand(ctx context.Context, cmd string, sms string) ([]string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.pdus = append(f.pdus, sms)
	return f.response(cmd)
}

func (f *fakeChannel) AddIndication(prefix string, handler at.InfoHandler, options ...at.IndicationOption) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, ind := range f.inds {
		if ind.prefix == prefix {
			return at.ErrIndicationExists
		}
	}
	f.inds = append(f.inds, fakeIndication{prefix, handler})
	return nil
}

func (f *fakeChannel) Init(ctx context.Context, cmds ...string) error {
	return nil
}

func (f *fakeChannel) Closed() <-chan struct{} {
	return f.closed
}

func (f *fakeChannel) close() {
	close(f.closed)
}

// indicate passes the lines to the first indication matching the first line,
// as the reader goroutine of the channel would.
func (f *fakeChannel) indicate(lines ...string) bool {
	f.mu.Lock()
	var h at.InfoHandler
	for _, ind := range f.inds {
		if strings.HasPrefix(lines[0], ind.prefix) {
			h = ind.handler
			break
		}
	}
	f.mu.Unlock()
	if h == nil {
		return false
	}
	h(lines)
	return true
}

// commands returns the commands sent so far.
func (f *fakeChannel) commands() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.sent...)
}

func (f *fakeChannel) count(cmd string) int {
	n := 0
	for _, c := range f.commands() {
		if c == cmd {
			n++
		}
	}
	return n
}

func (f *fakeChannel) reset() {
	f.mu.Lock()
	f.sent = nil
	f.pdus = nil
	f.mu.Unlock()
}

type completion struct {
	t   ril.Token
	e   ril.Errno
	rsp interface{}
}

type event struct {
	code    ril.Unsol
	payload interface{}
}

// recordingSink records completions and events.
type recordingSink struct {
	mu     sync.Mutex
	events []event
	done   chan completion
}

func newSink() *recordingSink {
	return &recordingSink{done: make(chan completion, 32)}
}

func (s *recordingSink) Complete(t ril.Token, e ril.Errno, rsp interface{}) {
	s.done <- completion{t, e, rsp}
}

func (s *recordingSink) Event(code ril.Unsol, payload interface{}) {
	s.mu.Lock()
	s.events = append(s.events, event{code, payload})
	s.mu.Unlock()
}

func (s *recordingSink) Events() []event {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]event(nil), s.events...)
}

func (s *recordingSink) codes() []ril.Unsol {
	var c []ril.Unsol
	for _, e := range s.Events() {
		c = append(c, e.code)
	}
	return c
}

func (s *recordingSink) clear() {
	s.mu.Lock()
	s.events = nil
	s.mu.Unlock()
}

// find returns the last event with the code.
func (s *recordingSink) find(code ril.Unsol) (event, bool) {
	ev := s.Events()
	for i := len(ev) - 1; i >= 0; i-- {
		if ev[i].code == code {
			return ev[i], true
		}
	}
	return event{}, false
}

func (s *recordingSink) waitEvent(t *testing.T, code ril.Unsol) event {
	t.Helper()
	var ev event
	require.Eventually(t, func() bool {
		var ok bool
		ev, ok = s.find(code)
		return ok
	}, time.Second, time.Millisecond, "waiting for %v", code)
	return ev
}

func (s *recordingSink) waitComplete(t *testing.T) completion {
	t.Helper()
	select {
	case c := <-s.done:
		return c
	case <-time.After(time.Second):
		t.Fatal("request not completed")
	}
	return completion{}
}

// fakeLink records the state of the data interface.
type fakeLink struct {
	mu  sync.Mutex
	up  map[string]bool
	err error
}

func (l *fakeLink) SetState(name string, up bool) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.err != nil {
		return l.err
	}
	if l.up == nil {
		l.up = map[string]bool{}
	}
	l.up[name] = up
	return nil
}

func (l *fakeLink) isUp(name string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.up[name]
}

type fixture struct {
	c  *ril.Core
	ch *fakeChannel
	s  *recordingSink
}

// newFixture creates a Core attached to a fake channel.
func newFixture(t *testing.T, options ...ril.Option) *fixture {
	t.Helper()
	s := newSink()
	ch := newFakeChannel()
	c := ril.New(s, options...)
	t.Cleanup(c.Close)
	require.Nil(t, c.Attach(ch))
	return &fixture{c: c, ch: ch, s: s}
}

// init initializes the modem, which reports the radio as on or off.
func (f *fixture) init(t *testing.T, on bool) {
	t.Helper()
	if on {
		f.ch.set("+CFUN?", "+CFUN: 1")
	} else {
		f.ch.set("+CFUN?", "+CFUN: 0")
	}
	f.ch.set("+CPIN?", "+CPIN: READY")
	require.Nil(t, f.c.Init(context.Background()))
	if on {
		require.Equal(t, ril.RadioOn, f.c.RadioState())
	} else {
		require.Equal(t, ril.RadioOff, f.c.RadioState())
	}
}

// handle issues a request and waits for its completion.
func (f *fixture) handle(t *testing.T, req ril.Request) completion {
	t.Helper()
	f.c.Handle(context.Background(), req, req.Code())
	c := f.s.waitComplete(t)
	require.Equal(t, req.Code(), c.t)
	return c
}
