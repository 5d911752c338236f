// SPDX-License-Identifier: MIT
//
// Copyright © 2018 Kent Gibson <warthog618@gmail.com>.

package ril

import (
	"context"
	"strings"

	"github.com/pkg/errors"
	"github.com/warthog618/ril/at"
)

// Channel is the command channel to the modem.
//
// Commands are issued one at a time.  Indication handlers are called from the
// goroutine delivering lines from the modem and so must not issue commands.
//
// *at.AT satisfies Channel.
type Channel interface {
	Command(ctx context.Context, cmd string) ([]string, error)
	SMSCommand(ctx context.Context, cmd string, sms string) ([]string, error)
	AddIndication(prefix string, handler at.InfoHandler, options ...at.IndicationOption) error
	Init(ctx context.Context, cmds ...string) error
	Closed() <-chan struct{}
}

func (c *Core) channel() (Channel, error) {
	c.mu.Lock()
	ch := c.ch
	c.mu.Unlock()
	if ch == nil {
		return nil, ErrNotAttached
	}
	return ch, nil
}

// command issues a command that returns no info of interest.
func (c *Core) command(ctx context.Context, cmd string) error {
	_, err := c.lines(ctx, cmd)
	return err
}

func (c *Core) lines(ctx context.Context, cmd string) ([]string, error) {
	ch, err := c.channel()
	if err != nil {
		return nil, err
	}
	l, err := ch.Command(ctx, cmd)
	if err != nil {
		c.log.Debugw("command failed", "cmd", cmd, "err", err)
	}
	return l, err
}

// singleLine issues a command and returns the first info line with the
// prefix.
func (c *Core) singleLine(ctx context.Context, cmd, prefix string) (string, error) {
	l, err := c.lines(ctx, cmd)
	if err != nil {
		return "", err
	}
	for _, line := range l {
		if strings.HasPrefix(line, prefix) {
			return line, nil
		}
	}
	return "", errors.Wrapf(ErrNoResponse, "AT%s", cmd)
}

// multiLine issues a command and returns all info lines with the prefix.
func (c *Core) multiLine(ctx context.Context, cmd, prefix string) ([]string, error) {
	l, err := c.lines(ctx, cmd)
	if err != nil {
		return nil, err
	}
	var m []string
	for _, line := range l {
		if strings.HasPrefix(line, prefix) {
			m = append(m, line)
		}
	}
	return m, nil
}

// numeric issues a command and returns the first info line beginning with a
// digit, such as the response to +CGSN.
func (c *Core) numeric(ctx context.Context, cmd string) (string, error) {
	l, err := c.lines(ctx, cmd)
	if err != nil {
		return "", err
	}
	for _, line := range l {
		if len(line) > 0 && line[0] >= '0' && line[0] <= '9' {
			return line, nil
		}
	}
	return "", errors.Wrapf(ErrNoResponse, "AT%s", cmd)
}

// smsCommand issues an SMS command and returns the first info line with the
// prefix.
func (c *Core) smsCommand(ctx context.Context, cmd, pdu, prefix string) (string, error) {
	ch, err := c.channel()
	if err != nil {
		return "", err
	}
	l, err := ch.SMSCommand(ctx, cmd, pdu)
	if err != nil {
		c.log.Debugw("sms command failed", "cmd", cmd, "err", err)
		return "", err
	}
	for _, line := range l {
		if strings.HasPrefix(line, prefix) {
			return line, nil
		}
	}
	return "", errors.Wrapf(ErrNoResponse, "AT%s", cmd)
}

// cmeError returns the CME error code returned by the modem, if any.
func cmeError(err error) (string, bool) {
	cme, ok := errors.Cause(err).(at.CMEError)
	return string(cme), ok
}
