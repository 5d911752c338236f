// SPDX-License-Identifier: MIT
//
// Copyright © 2018 Kent Gibson <warthog618@gmail.com>.

// Package at provides a low level driver for AT modems.
//
// The AT serialises commands to the modem, so only one command is ever in
// flight, and separates unsolicited result codes from command responses.
package at

import (
	"bufio"
	"context"
	"io"
	"strings"
	"sync"
	"time"

	"github.com/pkg/errors"
	"go.uber.org/atomic"
	"go.uber.org/zap"
)

// AT represents a modem that can be managed using AT commands.
//
// Commands can be issued to the modem using the Command and SMSCommand methods.
//
// The AT closes the closed channel when the connection to the underlying
// modem is broken (Read returns EOF).
//
// When closed, all outstanding commands return ErrClosed and the state of the
// underlying modem becomes unknown.
//
// Once closed the AT cannot be re-opened - it must be recreated.
type AT struct {
	// channel for commands issued to the modem
	cmdCh chan func()

	// channel for changes to inds
	indCh chan func()

	// closed when modem is closed
	closed chan struct{}

	// channel for all lines read from the modem
	iLines chan string

	// channel for lines read from the modem after indications removed
	cLines chan string

	// the underlying modem
	modem io.ReadWriter

	// the minimum time between an escape command and the subsequent command
	escTime time.Duration

	// the maximum time a command may take to complete, zero for no limit
	timeout time.Duration

	// called when a command times out
	onTimeout func()

	log *zap.SugaredLogger

	// indications in order of registration
	inds []indication // only modified in indLoop

	// commands issued by Init.
	initCmds []string

	// set while a command is in flight
	busy *atomic.Bool

	// the ID of the command in flight
	cmdID *atomic.String

	// covers escGuard
	escGuardMu sync.Mutex

	// if not-nil, the time the subsequent command must wait
	escGuard <-chan time.Time
}

// Option is a construction option for an AT.
type Option func(*AT)

// New creates a new AT modem.
func New(modem io.ReadWriter, options ...Option) *AT {
	a := &AT{
		modem:   modem,
		cmdCh:   make(chan func()),
		indCh:   make(chan func()),
		iLines:  make(chan string),
		cLines:  make(chan string),
		closed:  make(chan struct{}),
		escTime: 20 * time.Millisecond,
		busy:    atomic.NewBool(false),
		cmdID:   atomic.NewString(""),
		log:     zap.NewNop().Sugar(),
	}
	for _, option := range options {
		option(a)
	}
	if a.initCmds == nil {
		a.initCmds = []string{
			"E0Q0V1", // echo off, result codes on, verbose result codes
		}
	}
	go lineReader(a.modem, a.iLines)
	go a.indLoop()
	go a.cmdLoop()
	return a
}

const (
	sub = 0x1a
	esc = 0x1b
)

// WithEscTime sets the guard time for the modem.
//
// The escape time is the minimum time between an escape command being sent to
// the modem and any subsequent commands.
//
// The default guard time is 20msec.
func WithEscTime(d time.Duration) Option {
	return func(a *AT) {
		a.escTime = d
	}
}

// WithTimeout sets the maximum time a command may take once it has been
// written to the modem.
//
// A command exceeding the timeout returns ErrTimeout.
// The default is no timeout, other than that provided by the context.
func WithTimeout(d time.Duration) Option {
	return func(a *AT) {
		a.timeout = d
	}
}

// WithTimeoutHandler sets a function to be called when a command returns
// ErrTimeout.
//
// The handler is called from the goroutine that issued the command, after the
// command has been released.
func WithTimeoutHandler(handler func()) Option {
	return func(a *AT) {
		a.onTimeout = handler
	}
}

// WithLogger sets the logger for the AT.
//
// Writes and discarded lines are logged at debug level, and command timeouts
// as warnings.  By default nothing is logged.
func WithLogger(l *zap.SugaredLogger) Option {
	return func(a *AT) {
		a.log = l
	}
}

// InfoHandler receives indication info.
type InfoHandler func([]string)

// WithIndication adds an indication during construction.
func WithIndication(prefix string, handler InfoHandler, options ...IndicationOption) Option {
	ind := newIndication(prefix, handler, options...)
	return func(a *AT) {
		a.inds = append(a.inds, ind)
	}
}

// WithInitCmds specifies the commands issued by Init.
//
// The default command is ATE0Q0V1.
func WithInitCmds(cmds ...string) Option {
	return func(a *AT) {
		a.initCmds = cmds
	}
}

// Closed returns a channel which will block while the modem is not closed.
func (a *AT) Closed() <-chan struct{} {
	return a.closed
}

// Command issues the command to the modem and returns the result.
//
// The command should NOT include the AT prefix, nor <CR><LF> suffix which is
// automatically added.
//
// The return value includes the info (the lines returned by the modem between
// the command and the status line), or an error if the command did not
// complete successfully.
func (a *AT) Command(ctx context.Context, cmd string) ([]string, error) {
	return a.issue(ctx, request{cmd: cmd})
}

// AddIndication adds a handler for a set of lines beginning with the prefixed
// line and the following trailing lines.
//
// Indications are matched in the order they are added, and only the first
// matching indication receives the lines.
func (a *AT) AddIndication(prefix string, handler InfoHandler, options ...IndicationOption) error {
	ind := newIndication(prefix, handler, options...)
	errs := make(chan error, 1)
	indf := func() {
		if a.findIndication(prefix) != -1 {
			errs <- ErrIndicationExists
			return
		}
		a.inds = append(a.inds, ind)
		errs <- nil
	}
	select {
	case <-a.closed:
		return ErrClosed
	case a.indCh <- indf:
		return <-errs
	}
}

// CancelIndication removes any indication corresponding to the prefix.
//
// If any such indication exists no further indications will be sent to its
// handler.
func (a *AT) CancelIndication(prefix string) {
	done := make(chan struct{})
	indf := func() {
		if i := a.findIndication(prefix); i != -1 {
			a.inds = append(a.inds[:i], a.inds[i+1:]...)
		}
		close(done)
	}
	select {
	case <-a.closed:
	case a.indCh <- indf:
		<-done
	}
}

// findIndication returns the index of the indication with the prefix, or -1.
//
// Only called from indLoop.
func (a *AT) findIndication(prefix string) int {
	for i, ind := range a.inds {
		if ind.prefix == prefix {
			return i
		}
	}
	return -1
}

// Init initialises the modem by escaping any outstanding SMS commands
// and issuing the init commands.
//
// The Init is intended to be called after creation and before any other commands
// are issued in order to get the modem into a known state.
//
// The default init commands can be overridden by the cmds parameter.
func (a *AT) Init(ctx context.Context, cmds ...string) error {
	// escape any outstanding SMS operations then CR to flush the command
	// buffer
	a.escape([]byte("\r\n")...)

	if cmds == nil {
		cmds = a.initCmds
	}
	for _, cmd := range cmds {
		_, err := a.Command(ctx, cmd)
		switch err {
		case nil:
		case context.DeadlineExceeded, context.Canceled, ErrClosed:
			return err
		default:
			return errors.Wrapf(err, "AT%s returned error", cmd)
		}
	}
	return nil
}

// SMSCommand issues an SMS command to the modem, and returns the result.
//
// An SMS command is issued in two steps; first the command line:
//
//	AT<command><CR>
//
// which the modem responds to with a ">" prompt, after which the SMS PDU is
// sent to the modem:
//
//	<sms><Ctrl-Z>
//
// The modem then completes the command as per other commands, such as those
// issued by Command.
//
// The format of the sms may be a text message or a hex coded SMS PDU,
// depending on the configuration of the modem (text or PDU mode).
func (a *AT) SMSCommand(ctx context.Context, cmd string, sms string) ([]string, error) {
	return a.issue(ctx, request{cmd: cmd, sms: &sms})
}

// request is a command to be written to the modem.
type request struct {
	cmd string

	// the body sent after the prompt, for SMS commands
	sms *string
}

// line returns the command line written to the modem.
//
// SMS command lines are terminated by CR alone, as the modem responds with
// the prompt rather than a line.
func (r request) line() string {
	if r.sms != nil {
		return "AT" + r.cmd + "\r"
	}
	return "AT" + r.cmd + "\r\n"
}

// issue passes the request to the cmdLoop and waits for the response.
func (a *AT) issue(ctx context.Context, req request) ([]string, error) {
	done := make(chan response)
	cmdf := func() {
		cctx, cancel := a.withTimeout(ctx)
		info, err := a.process(cctx, req)
		cancel()
		done <- response{info: info, err: a.checkTimeout(ctx, err)}
	}
	select {
	case <-a.closed:
		return nil, ErrClosed
	case a.cmdCh <- cmdf:
	}
	rsp := <-done
	if rsp.err == ErrTimeout {
		a.log.Warnw("command timed out", "cmd", req.cmd, "timeout", a.timeout)
		if a.onTimeout != nil {
			a.onTimeout()
		}
	}
	return rsp.info, rsp.err
}

func (a *AT) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if a.timeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, a.timeout)
}

// checkTimeout converts a deadline expiry caused by the command timeout,
// rather than by the parent context, into ErrTimeout.
func (a *AT) checkTimeout(parent context.Context, err error) error {
	if err == context.DeadlineExceeded && a.timeout > 0 && parent.Err() == nil {
		return ErrTimeout
	}
	return err
}

// cmdLoop is responsible for the interface to the modem.
//
// It serialises the issuing of commands and awaits the responses.
// If no command is pending then any lines received are discarded.
//
// The cmdLoop terminates when the downstream closes.
func (a *AT) cmdLoop() {
	for {
		select {
		case cmd := <-a.cmdCh:
			cmd()
		case line, ok := <-a.cLines:
			if !ok {
				a.log.Info("modem closed")
				close(a.closed)
				return
			}
			if line != "" {
				a.log.Debugw("discarded line", "line", line)
			}
		}
	}
}

// lineReader takes lines from m and redirects them to out.
//
// lineReader exits when m closes.
func lineReader(m io.Reader, out chan string) {
	scanner := bufio.NewScanner(m)
	scanner.Split(scanLines)
	for scanner.Scan() {
		out <- scanner.Text()
	}
	close(out) // tell pipeline we're done - end of pipeline will close the AT.
}

// indLoop is responsible for pulling indications from the stream of lines read
// from the modem, and forwarding them to handlers.
//
// Non-indication lines are passed upstream. Indication trailing lines are
// assumed to arrive in a contiguous block immediately after the indication.
//
// Lines that form part of the response to the command in flight are passed
// upstream even if they match an indication.
//
// indLoop exits when the iLines channel closes.
func (a *AT) indLoop() {
	defer close(a.cLines)
	for {
		select {
		case indf := <-a.indCh:
			indf()
		case line, ok := <-a.iLines:
			if !ok {
				return
			}
			if a.isResponse(line) || !a.dispatch(line) {
				a.cLines <- line
			}
		}
	}
}

// dispatch passes the line, and any trailing lines, to the first matching
// indication.
//
// Returns false if no indication matches the line.
func (a *AT) dispatch(line string) bool {
	for _, ind := range a.inds {
		if !strings.HasPrefix(line, ind.prefix) {
			continue
		}
		lines := make([]string, ind.lines)
		lines[0] = line
		for i := 1; i < ind.lines; i++ {
			t, ok := <-a.iLines
			if !ok {
				a.log.Warnw("indication truncated", "prefix", ind.prefix)
				return true
			}
			lines[i] = t
		}
		ind.handler(lines)
		return true
	}
	return false
}

// isResponse determines if the line belongs to the command in flight.
func (a *AT) isResponse(line string) bool {
	if !a.busy.Load() {
		return false
	}
	switch parseRxLine(line, a.cmdID.Load()) {
	case rxlInfo,
		rxlStatusOK,
		rxlStatusError,
		rxlSMSPrompt,
		rxlConnect,
		rxlConnectError:
		return true
	}
	return false
}

// setActive marks the command as in flight, or clears the marker if cmdID is
// nil.
func (a *AT) setActive(cmdID *string) {
	if cmdID == nil {
		a.busy.Store(false)
		return
	}
	a.cmdID.Store(*cmdID)
	a.busy.Store(true)
}

// process writes the request to the modem and collects the response.
func (a *AT) process(ctx context.Context, req request) (info []string, err error) {
	a.waitEscGuard()
	cmdID := parseCmdID(req.cmd)
	a.setActive(&cmdID)
	defer a.setActive(nil)
	if err = a.write(req.line()); err != nil {
		return
	}
	for {
		select {
		case <-ctx.Done():
			if req.sms != nil {
				// cancel outstanding SMS request
				a.escape()
			}
			err = ctx.Err()
			return
		case line, ok := <-a.cLines:
			if !ok {
				return nil, ErrClosed
			}
			if line == "" {
				continue
			}
			i, done, perr := a.processRxLine(req, parseRxLine(line, cmdID), line)
			if i != nil {
				info = append(info, *i)
			}
			if perr != nil {
				err = perr
				return
			}
			if done {
				return
			}
		}
	}
}

// processRxLine determines how a line received from the modem adds to the
// response for the request.
//
// The return values are:
//   - a line of info to be added to the response (optional)
//   - a flag indicating if the command is complete.
//   - an error detected while processing the command.
func (a *AT) processRxLine(req request, lt rxl, line string) (info *string, done bool, err error) {
	switch lt {
	case rxlStatusOK:
		done = true
	case rxlStatusError:
		err = newError(line)
	case rxlSMSPrompt:
		if req.sms == nil {
			break
		}
		if err = a.write(*req.sms + string(rune(sub))); err != nil {
			// escape SMS
			a.escape()
		}
	case rxlUnknown:
		if req.sms != nil && line[len(line)-1] == sub && strings.HasPrefix(line, *req.sms) {
			// swallow echoed SMS PDU
			break
		}
		info = &line
	case rxlInfo:
		info = &line
	case rxlConnect:
		info = &line
		done = true
	case rxlConnectError:
		err = ConnectError(line)
	}
	return
}

// issue an escape command
func (a *AT) escape(b ...byte) {
	cmd := append([]byte(string(rune(esc))+"\r\n"), b...)
	a.modem.Write(cmd)
	a.startEscGuard()
}

// startEscGuard starts a write guard that prevents a subsequent write within
// a short period of time (default 20ms).
func (a *AT) startEscGuard() {
	a.escGuardMu.Lock()
	a.escGuard = time.After(a.escTime)
	a.escGuardMu.Unlock()
}

// waitEscGuard waits for a write guard to allow a write to the modem.
func (a *AT) waitEscGuard() {
	a.escGuardMu.Lock()
	defer a.escGuardMu.Unlock()
	if a.escGuard == nil {
		return
	}
	for {
		select {
		case _, ok := <-a.cLines:
			if !ok {
				return
			}
		case <-a.escGuard:
			a.escGuard = nil
			return
		}
	}
}

// write writes raw command text to the modem.
func (a *AT) write(s string) error {
	a.log.Debugw("write", "data", s)
	_, err := a.modem.Write([]byte(s))
	return err
}

// CMEError indicates a CME Error was returned by the modem.
//
// The value is the error value, in string form, which may be the numeric or
// textual, depending on the modem configuration.
type CMEError string

// CMSError indicates a CMS Error was returned by the modem.
//
// The value is the error value, in string form, which may be the numeric or
// textual, depending on the modem configuration.
type CMSError string

// ConnectError indicates an attempt to dial failed.
//
// The value of the error is the failure indication returned by the modem.
type ConnectError string

func (e CMEError) Error() string {
	return string("CME Error: " + e)
}

func (e CMSError) Error() string {
	return string("CMS Error: " + e)
}

func (e ConnectError) Error() string {
	return string("Connect: " + e)
}

var (
	// ErrClosed indicates an operation cannot be performed as the modem has
	// been closed.
	ErrClosed = errors.New("closed")

	// ErrError indicates the modem returned a generic AT ERROR in response to
	// an operation.
	ErrError = errors.New("ERROR")

	// ErrIndicationExists indicates there is already a indication registered
	// for a prefix.
	ErrIndicationExists = errors.New("indication exists")

	// ErrTimeout indicates the modem did not complete a command within the
	// command timeout.
	ErrTimeout = errors.New("command timeout")
)

// newError parses a line and creates an error corresponding to the content.
func newError(line string) error {
	var err error
	switch {
	case strings.HasPrefix(line, "ERROR"):
		err = ErrError
	case strings.HasPrefix(line, "+CMS ERROR:"):
		err = CMSError(strings.TrimSpace(line[11:]))
	case strings.HasPrefix(line, "+CME ERROR:"):
		err = CMEError(strings.TrimSpace(line[11:]))
	}
	return err
}

// response represents the result of a request operation performed on the
// modem.
//
// info is the collection of lines returned between the command and the status
// line. err corresponds to any error returned by the modem or while
// interacting with the modem.
type response struct {
	info []string
	err  error
}

// Received line types.
type rxl int

const (
	rxlUnknown rxl = iota
	rxlEchoCmdLine
	rxlInfo
	rxlStatusOK
	rxlStatusError
	rxlAsync
	rxlSMSPrompt
	rxlConnect
	rxlConnectError
)

// indication represents an unsolicited result code (URC) from the modem, such
// as a received SMS message.
//
// Indications are lines prefixed with a particular pattern, and may include a
// number of trailing lines. The matching lines are bundled into a slice and
// sent to the handler.
type indication struct {
	prefix  string
	lines   int
	handler InfoHandler
}

func newIndication(prefix string, handler InfoHandler, options ...IndicationOption) indication {
	ind := indication{
		prefix:  prefix,
		handler: handler,
		lines:   1,
	}
	for _, option := range options {
		option(&ind)
	}
	return ind
}

// IndicationOption alters the behavior of the indication.
type IndicationOption func(*indication)

// WithTrailingLines indicates the indication includes a number of lines after
// the line containing the indication.
func WithTrailingLines(l int) func(*indication) {
	return func(ind *indication) {
		ind.lines = l + 1
	}
}

// WithTrailingLine indicates the indication includes one line after the line
// containing the indication.
var WithTrailingLine = WithTrailingLines(1)

// parseCmdID returns the identifier component of the command.
//
// This is the section prior to any '=' or '?' and is generally, but not
// always, used to prefix info lines corresponding to the command.
func parseCmdID(cmdLine string) string {
	if idx := strings.IndexAny(cmdLine, "=?"); idx != -1 {
		return cmdLine[0:idx]
	}
	return cmdLine
}

// parseRxLine parses a received line and identifies the line type.
func parseRxLine(line string, cmdID string) rxl {
	switch {
	case line == "OK":
		return rxlStatusOK
	case strings.HasPrefix(line, "ERROR"),
		strings.HasPrefix(line, "+CME ERROR:"),
		strings.HasPrefix(line, "+CMS ERROR:"):
		return rxlStatusError
	case strings.HasPrefix(line, cmdID+":"):
		return rxlInfo
	case line == ">":
		return rxlSMSPrompt
	case strings.HasPrefix(line, "AT"+cmdID):
		return rxlEchoCmdLine
	case len(cmdID) == 0 || cmdID[0] != 'D':
		// Short circuit non-ATD commands.
		// No attempt to identify SMS PDUs at this level, so they will
		// be caught here, along with other unidentified lines.
		return rxlUnknown
	case strings.HasPrefix(line, "CONNECT"):
		return rxlConnect
	case line == "BUSY",
		line == "NO ANSWER",
		line == "NO CARRIER",
		line == "NO DIALTONE":
		return rxlConnectError
	default:
		// No attempt to identify SMS PDUs at this level, so they will
		// be caught here, along with other unidentified lines.
		return rxlUnknown
	}
}

// scanLines is a custom line scanner for lineReader that recognises the prompt
// returned by the modem in response to SMS commands such as +CMGS.
func scanLines(data []byte, atEOF bool) (advance int, token []byte, err error) {
	// handle SMS prompt special case - no CR at prompt
	if len(data) >= 1 && data[0] == '>' {
		i := 1
		// there may be trailing space, so swallow that...
		for ; i < len(data) && data[i] == ' '; i++ {
		}
		return i, data[0:1], nil
	}
	return bufio.ScanLines(data, atEOF)
}
