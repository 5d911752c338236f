// SPDX-License-Identifier: MIT
//
// Copyright © 2018 Kent Gibson <warthog618@gmail.com>.

package ril

import (
	"context"
	"fmt"
	"strconv"

	"github.com/pkg/errors"
	"github.com/warthog618/ril/info"
)

// ErrShortAPDU indicates an APDU response too short to contain the status
// words.
var ErrShortAPDU = errors.New("short APDU response")

// manageChannelOpen is the MANAGE CHANNEL APDU that opens a logical channel
// without selecting an application.
const manageChannelOpen = "0070000001"

func (c *Core) simIO(ctx context.Context, r SimIO) (Errno, interface{}) {
	cmd := fmt.Sprintf("+CRSM=%d,%d,%d,%d,%d", r.Command, r.FileID, r.P1, r.P2, r.P3)
	if r.Data != "" {
		cmd += "," + r.Data
	}
	line, err := c.singleLine(ctx, cmd, "+CRSM:")
	if err != nil {
		return failure(err), nil
	}
	rsp, err := parseCRSM(line)
	if err != nil {
		c.log.Debugw("bad SIM IO response", "line", line, "err", err)
		return GenericFailure, nil
	}
	return Success, rsp
}

// parseCRSM parses a +CRSM: <sw1>,<sw2>[,<response>] line.
func parseCRSM(line string) (SimIOResponse, error) {
	var rsp SimIOResponse
	tk, err := info.Tokenize(line)
	if err != nil {
		return rsp, err
	}
	if rsp.SW1, err = tk.NextInt(); err != nil {
		return rsp, err
	}
	if rsp.SW2, err = tk.NextInt(); err != nil {
		return rsp, err
	}
	if tk.HasMore() {
		if rsp.Response, err = tk.NextString(); err != nil {
			return rsp, err
		}
	}
	return rsp, nil
}

// apduHeader returns the hex encoded APDU header, followed by P3 and the
// data.
func apduHeader(a SimAPDU) string {
	h := fmt.Sprintf("%02x%02x%02x%02x", a.CLA, a.Instruction, a.P1, a.P2)
	if a.Data == "" && a.P3 < 0 {
		return h
	}
	return h + fmt.Sprintf("%02x", a.P3) + a.Data
}

// splitStatus splits the trailing status words from a hex encoded APDU
// response.
func splitStatus(s string) (SimIOResponse, error) {
	n := len(s)
	if n < 4 {
		return SimIOResponse{}, errors.Wrapf(ErrShortAPDU, "%q", s)
	}
	sw1, err := strconv.ParseUint(s[n-4:n-2], 16, 8)
	if err != nil {
		return SimIOResponse{}, err
	}
	sw2, err := strconv.ParseUint(s[n-2:], 16, 8)
	if err != nil {
		return SimIOResponse{}, err
	}
	return SimIOResponse{SW1: int(sw1), SW2: int(sw2), Response: s[:n-4]}, nil
}

// apduResponse parses a +CSIM: or +CGLA: <length>,<response> line.
func apduResponse(line string) (SimIOResponse, error) {
	tk, err := info.Tokenize(line)
	if err != nil {
		return SimIOResponse{}, err
	}
	if err = tk.Skip(); err != nil {
		return SimIOResponse{}, err
	}
	s, err := tk.NextString()
	if err != nil {
		return SimIOResponse{}, err
	}
	return splitStatus(s)
}

// transmit sends an APDU command and parses the response.
func (c *Core) transmit(ctx context.Context, cmd, prefix string) (Errno, interface{}) {
	line, err := c.singleLine(ctx, cmd, prefix)
	if err != nil {
		return failure(err), nil
	}
	rsp, err := apduResponse(line)
	if err != nil {
		c.log.Debugw("bad APDU response", "line", line, "err", err)
		return GenericFailure, nil
	}
	return Success, rsp
}

func (c *Core) transmitAPDUBasic(ctx context.Context, a SimAPDU) (Errno, interface{}) {
	apdu := apduHeader(a)
	return c.transmit(ctx, fmt.Sprintf("+CSIM=%d,%q", len(apdu), apdu), "+CSIM:")
}

func (c *Core) transmitAPDUChannel(ctx context.Context, a SimAPDU) (Errno, interface{}) {
	if a.P3 < 0 {
		a.P3 = 0
	}
	apdu := apduHeader(a)
	cmd := fmt.Sprintf("+CGLA=%d,%d,%q", a.SessionID, len(apdu), apdu)
	return c.transmit(ctx, cmd, "+CGLA:")
}

// openChannel returns the session ID of the opened channel.
//
// Without an AID the channel is opened with a MANAGE CHANNEL APDU, and the
// response bytes, including the status words, are returned instead.
func (c *Core) openChannel(ctx context.Context, r SimOpenChannel) (Errno, interface{}) {
	if r.AID == "" {
		cmd := fmt.Sprintf("+CSIM=%d,%q", len(manageChannelOpen), manageChannelOpen)
		e, rsp := c.transmit(ctx, cmd, "+CSIM:")
		if e != Success {
			return e, nil
		}
		sr := rsp.(SimIOResponse)
		b, err := hexBytes(sr.Response)
		if err != nil {
			return GenericFailure, nil
		}
		return Success, append(b, sr.SW1, sr.SW2)
	}
	line, err := c.numeric(ctx, fmt.Sprintf("+CCHO=%q", r.AID))
	if err != nil {
		return failure(err), nil
	}
	id, err := strconv.Atoi(line)
	if err != nil {
		c.log.Debugw("bad session ID", "line", line)
		return GenericFailure, nil
	}
	return Success, []int{id}
}

func (c *Core) closeChannel(ctx context.Context, r SimCloseChannel) Errno {
	if r.SessionID == 0 {
		return InvalidArguments
	}
	if err := c.command(ctx, "+CCHC="+strconv.Itoa(r.SessionID)); err != nil {
		return GenericFailure
	}
	return Success
}

// hexBytes decodes a hex string into its byte values.
func hexBytes(s string) ([]int, error) {
	if len(s)%2 != 0 {
		return nil, errors.Errorf("odd length hex %q", s)
	}
	b := make([]int, 0, len(s)/2+2)
	for i := 0; i < len(s); i += 2 {
		v, err := strconv.ParseUint(s[i:i+2], 16, 8)
		if err != nil {
			return nil, err
		}
		b = append(b, int(v))
	}
	return b, nil
}
