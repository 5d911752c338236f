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
	"github.com/warthog618/ril/gsm"
	"github.com/warthog618/ril/info"
)

// smsPDU validates the SMSC and TPDU of a message to be passed to the modem
// and returns them combined as the modem expects.
func smsPDU(smsc, tpdu string) (string, error) {
	p, err := gsm.ParsePDU(smsc, tpdu)
	if err != nil {
		return "", err
	}
	if err := gsm.CheckSubmit(p); err != nil {
		return "", err
	}
	if smsc == "" {
		smsc = gsm.DefaultSMSC
	}
	return smsc + tpdu, nil
}

func (c *Core) sendSMS(ctx context.Context, r SendSMS, more bool) (Errno, interface{}) {
	if c.isSIMAbsent(ctx) {
		return SimAbsent, nil
	}
	pdu, err := smsPDU(r.SMSC, r.PDU)
	if err != nil {
		c.log.Warnw("send SMS", "err", err)
		return InvalidArguments, nil
	}
	if more {
		// keep the relay link open for the messages to follow
		c.command(ctx, "+CMMS=1")
	}
	rsp := SMSResponse{MessageRef: -2, ErrorCode: -1}
	line, err := c.smsCommand(ctx, fmt.Sprintf("+CMGS=%d", len(r.PDU)/2), pdu, "+CMGS:")
	if err != nil {
		return failure(err), rsp
	}
	tk, err := info.Tokenize(line)
	if err != nil {
		return GenericFailure, rsp
	}
	ref, err := tk.NextInt()
	if err != nil {
		return GenericFailure, rsp
	}
	rsp.MessageRef = ref
	return Success, rsp
}

func (c *Core) smsAcknowledge(ctx context.Context, r SMSAcknowledge) Errno {
	if c.isSIMAbsent(ctx) {
		return RadioNotAvailable
	}
	cmd := "+CNMA=2"
	if r.Success {
		cmd = "+CNMA=1"
	}
	if err := c.command(ctx, cmd); err != nil {
		return failure(err)
	}
	return Success
}

// writeSMSToSim stores the message and returns its index in SIM storage.
func (c *Core) writeSMSToSim(ctx context.Context, r WriteSMSToSim) (Errno, interface{}) {
	if c.isSIMAbsent(ctx) {
		return SimAbsent, nil
	}
	p, err := gsm.ParsePDU(r.SMSC, r.PDU)
	if err != nil {
		c.log.Warnw("write SMS", "err", err)
		return InvalidArguments, nil
	}
	smsc := r.SMSC
	if smsc == "" {
		smsc = gsm.DefaultSMSC
	}
	cmd := fmt.Sprintf("+CMGW=%d,%d", len(p.TPDU), r.Status)
	line, err := c.smsCommand(ctx, cmd, smsc+r.PDU, "+CMGW:")
	if err != nil {
		return failure(err), nil
	}
	tk, err := info.Tokenize(line)
	if err != nil {
		return GenericFailure, nil
	}
	idx, err := tk.NextInt()
	if err != nil {
		return GenericFailure, nil
	}
	return Success, idx
}

func (c *Core) deleteSMSOnSim(ctx context.Context, r DeleteSMSOnSim) Errno {
	if err := c.command(ctx, "+CMGD="+strconv.Itoa(r.Index)); err != nil {
		return failure(err)
	}
	return Success
}

func (c *Core) getSMSCAddress(ctx context.Context) (Errno, interface{}) {
	line, err := c.singleLine(ctx, "+CSCA?", "+CSCA:")
	if err != nil {
		return failure(err), nil
	}
	tk, err := info.Tokenize(line)
	if err != nil {
		return GenericFailure, nil
	}
	addr, err := tk.NextString()
	if err != nil {
		return GenericFailure, nil
	}
	return Success, addr
}

func (c *Core) setSMSCAddress(ctx context.Context, r SetSMSCAddress) Errno {
	if c.simStatus(ctx) != simReady {
		return SimAbsent
	}
	if r.Address == "" {
		return GenericFailure
	}
	toa := 129
	if strings.HasPrefix(r.Address, "+") {
		toa = 145
	}
	if err := c.command(ctx, fmt.Sprintf("+CSCA=%q,%d", r.Address, toa)); err != nil {
		return failure(err)
	}
	return Success
}

// maxBroadcastID bounds both message identifiers and data coding schemes.
const maxBroadcastID = 0xffff

// ErrInvalidRange indicates a broadcast range is out of bounds.
var ErrInvalidRange = errors.New("invalid range")

func formatRange(from, to int) (string, error) {
	if from < 0 || from > maxBroadcastID || to < 0 || to > maxBroadcastID {
		return "", errors.Wrapf(ErrInvalidRange, "%d-%d", from, to)
	}
	if from == to {
		return strconv.Itoa(from), nil
	}
	return fmt.Sprintf("%d-%d", from, to), nil
}

// parseRange parses a range in the form "a" or "a-b".
func parseRange(s string) (int, int, error) {
	s = strings.TrimSpace(s)
	parts := strings.SplitN(s, "-", 2)
	from, err := strconv.Atoi(parts[0])
	if err != nil {
		return 0, 0, errors.Wrap(info.ErrInvalidToken, s)
	}
	if len(parts) == 1 {
		return from, from, nil
	}
	to, err := strconv.Atoi(parts[1])
	if err != nil {
		return 0, 0, errors.Wrap(info.ErrInvalidToken, s)
	}
	return from, to, nil
}

func (c *Core) setBroadcastSMSConfig(ctx context.Context, r SetBroadcastSMSConfig) Errno {
	if len(r.Configs) == 0 {
		return InvalidArguments
	}
	ids := make([]string, 0, len(r.Configs))
	dcss := make([]string, 0, len(r.Configs))
	for _, cfg := range r.Configs {
		id, err := formatRange(cfg.FromServiceID, cfg.ToServiceID)
		if err != nil {
			return InvalidArguments
		}
		dcs, err := formatRange(cfg.FromCodeScheme, cfg.ToCodeScheme)
		if err != nil {
			return InvalidArguments
		}
		ids = append(ids, id)
		dcss = append(dcss, dcs)
	}
	// mode 0 accepts the listed messages
	mode := 1
	if r.Configs[0].Selected {
		mode = 0
	}
	cmd := fmt.Sprintf("+CSCB=%d,%q,%q", mode, strings.Join(ids, ","), strings.Join(dcss, ","))
	if err := c.command(ctx, cmd); err != nil {
		return failure(err)
	}
	return Success
}

func (c *Core) getBroadcastSMSConfig(ctx context.Context) (Errno, interface{}) {
	line, err := c.singleLine(ctx, "+CSCB?", "+CSCB:")
	if err != nil {
		return failure(err), nil
	}
	cfgs, err := parseBroadcastConfig(line)
	if err != nil {
		c.log.Warnw("broadcast config", "line", line, "err", err)
		return GenericFailure, nil
	}
	return Success, cfgs
}

// parseBroadcastConfig parses a +CSCB line into configs pairing each
// message id range with the coding scheme range in the same position.
func parseBroadcastConfig(line string) ([]BroadcastConfig, error) {
	tk, err := info.Tokenize(line)
	if err != nil {
		return nil, err
	}
	mode, err := tk.NextInt()
	if err != nil {
		return nil, err
	}
	ids, err := tk.NextString()
	if err != nil {
		return nil, err
	}
	var dcss []string
	if tk.HasMore() {
		d, err := tk.NextString()
		if err != nil {
			return nil, err
		}
		if d != "" {
			dcss = strings.Split(d, ",")
		}
	}
	if ids == "" {
		return []BroadcastConfig{}, nil
	}
	idl := strings.Split(ids, ",")
	cfgs := make([]BroadcastConfig, 0, len(idl))
	for i, id := range idl {
		var cfg BroadcastConfig
		if cfg.FromServiceID, cfg.ToServiceID, err = parseRange(id); err != nil {
			return nil, err
		}
		if i < len(dcss) {
			if cfg.FromCodeScheme, cfg.ToCodeScheme, err = parseRange(dcss[i]); err != nil {
				return nil, err
			}
		}
		cfg.Selected = mode == 0
		cfgs = append(cfgs, cfg)
	}
	return cfgs, nil
}
