// SPDX-License-Identifier: MIT
//
// Copyright © 2018 Kent Gibson <warthog618@gmail.com>.

package ril

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/pkg/errors"
	"github.com/warthog618/ril/info"
	"github.com/warthog618/ril/netif"
)

// pdpPoolSize is the number of PDP contexts available for data calls.
const pdpPoolSize = 3

// pdpPool allocates PDP context ids, which run from 1 to the pool size.
type pdpPool struct {
	mu   sync.Mutex
	busy []bool
}

func newPDPPool(size int) *pdpPool {
	return &pdpPool{busy: make([]bool, size)}
}

// acquire returns the lowest idle context id and marks it busy.
//
// Returns false if all contexts are busy.
func (p *pdpPool) acquire() (int, bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	for i, b := range p.busy {
		if !b {
			p.busy[i] = true
			return i + 1, true
		}
	}
	return 0, false
}

// release returns the context id to the pool.  Ids outside the pool are
// ignored.
func (p *pdpPool) release(cid int) {
	if !p.valid(cid) {
		return
	}
	p.mu.Lock()
	p.busy[cid-1] = false
	p.mu.Unlock()
}

func (p *pdpPool) valid(cid int) bool {
	return cid >= 1 && cid <= len(p.busy)
}

// ErrNoContext indicates all PDP contexts are in use.
var ErrNoContext = errors.New("no free PDP context")

// linkErrno maps a failure to change the state of the data interface.
func linkErrno(err error) Errno {
	switch errors.Cause(err) {
	case nil:
		return Success
	case netif.ErrQuery:
		return RadioNotAvailable
	}
	return GenericFailure
}

func (c *Core) setupDataCall(ctx context.Context, r SetupDataCall) (Errno, interface{}) {
	if err := c.link.SetState(c.ifname, true); err != nil {
		c.log.Warnw("interface up", "ifname", c.ifname, "err", err)
		return linkErrno(err), nil
	}
	cid, ok := c.pdp.acquire()
	if !ok {
		c.log.Warnw("setup data call", "err", ErrNoContext)
		return GenericFailure, nil
	}
	protocol := r.Protocol
	if protocol == "" {
		protocol = "IP"
	}
	cmds := []string{
		fmt.Sprintf("+CGDCONT=%d,%q,%q,,0,0", cid, protocol, r.APN),
		// default QoS
		"+CGQREQ=1",
		"+CGQMIN=1",
		"+CGEREP=1,0",
		// clear any stale session on the context
		fmt.Sprintf("+CGACT=0,%d", cid),
	}
	for _, cmd := range cmds {
		c.command(ctx, cmd)
	}
	if err := c.command(ctx, fmt.Sprintf("D*99***%d#", cid)); err != nil {
		c.pdp.release(cid)
		return failure(err), nil
	}
	dcs, err := c.dataCalls(ctx, cid)
	if err != nil || len(dcs) == 0 {
		c.log.Warnw("setup data call", "cid", cid, "err", err)
		c.pdp.release(cid)
		return GenericFailure, nil
	}
	c.log.Infow("data call up", "cid", cid, "apn", r.APN)
	return Success, dcs[0]
}

// deactivateDataCall brings the data interface down and releases the
// context.  The context is not deactivated on the modem.
func (c *Core) deactivateDataCall(r DeactivateDataCall) Errno {
	if !c.pdp.valid(r.CID) {
		return GenericFailure
	}
	err := c.link.SetState(c.ifname, false)
	if err != nil {
		c.log.Warnw("interface down", "ifname", c.ifname, "err", err)
	}
	c.pdp.release(r.CID)
	return linkErrno(err)
}

func (c *Core) dataCallList(ctx context.Context) (Errno, interface{}) {
	dcs, err := c.dataCalls(ctx, 0)
	if err != nil {
		return failure(err), nil
	}
	return Success, dcs
}

// onDataCallListChanged reports the data calls, or nil if they could not be
// determined.
func (c *Core) onDataCallListChanged(ctx context.Context) {
	dcs, err := c.dataCalls(ctx, 0)
	if err != nil {
		c.log.Debugw("data call list", "err", err)
		c.sink.Event(UnsolDataCallListChanged, nil)
		return
	}
	c.sink.Event(UnsolDataCallListChanged, dcs)
}

// dataCalls builds the data call list from the active contexts, their
// definitions and their dynamic parameters.
//
// A cid of 0 lists all contexts, in which case missing dynamic parameters are
// tolerated.
func (c *Core) dataCalls(ctx context.Context, cid int) ([]DataCall, error) {
	l, err := c.multiLine(ctx, "+CGACT?", "+CGACT:")
	if err != nil {
		return nil, err
	}
	calls := map[int]*DataCall{}
	for _, line := range l {
		tk, err := info.Tokenize(line)
		if err != nil {
			return nil, err
		}
		ncid, err := tk.NextInt()
		if err != nil {
			return nil, err
		}
		active, err := tk.NextInt()
		if err != nil {
			return nil, err
		}
		if cid != 0 && ncid != cid {
			continue
		}
		calls[ncid] = &DataCall{
			Status:             -1,
			SuggestedRetryTime: -1,
			CID:                ncid,
			Active:             active,
		}
	}
	l, err = c.multiLine(ctx, "+CGDCONT?", "+CGDCONT:")
	if err != nil {
		return nil, err
	}
	for _, line := range l {
		if err := c.parseContextDefinition(line, calls); err != nil {
			return nil, err
		}
	}
	cids := make([]int, 0, len(calls))
	for ncid := range calls {
		cids = append(cids, ncid)
	}
	sort.Ints(cids)
	dcs := make([]DataCall, 0, len(cids))
	for _, ncid := range cids {
		dc := calls[ncid]
		if dc.Active != 0 {
			if err := c.contextParameters(ctx, ncid, dc); err != nil {
				if cid != 0 {
					return nil, err
				}
				c.log.Debugw("context parameters", "cid", ncid, "err", err)
			}
		}
		dcs = append(dcs, *dc)
	}
	return dcs, nil
}

// parseContextDefinition fills in the data call from a +CGDCONT line, if the
// context is one of the calls.
func (c *Core) parseContextDefinition(line string, calls map[int]*DataCall) error {
	tk, err := info.Tokenize(line)
	if err != nil {
		return err
	}
	ncid, err := tk.NextInt()
	if err != nil {
		return err
	}
	dc, ok := calls[ncid]
	if !ok {
		return nil
	}
	dc.Status = 0
	if dc.Type, err = tk.NextString(); err != nil {
		return err
	}
	// APN
	if err = tk.Skip(); err != nil {
		return err
	}
	if dc.Addresses, err = tk.NextString(); err != nil {
		return err
	}
	dc.IfName = c.ifname
	// public DNS until the dynamic parameters are known
	dc.DNSes = "8.8.8.8 8.8.4.4"
	return nil
}

// contextParameters fills in the gateway and DNS servers of an active
// context from +CGCONTRDP.
func (c *Core) contextParameters(ctx context.Context, cid int, dc *DataCall) error {
	line, err := c.singleLine(ctx, fmt.Sprintf("+CGCONTRDP=%d", cid), "+CGCONTRDP:")
	if err != nil {
		return err
	}
	tk, err := info.Tokenize(line)
	if err != nil {
		return err
	}
	ncid, err := tk.NextInt()
	if err != nil {
		return err
	}
	if ncid != cid {
		return errors.Wrapf(ErrNoResponse, "+CGCONTRDP for cid %d", ncid)
	}
	// bearer id, APN, local address and subnet mask
	for i := 0; i < 3; i++ {
		if err := tk.Skip(); err != nil {
			return err
		}
	}
	gw, err := tk.NextString()
	if err != nil {
		return err
	}
	dns, err := tk.NextString()
	if err != nil {
		return err
	}
	if tk.HasMore() {
		if dns2, err := tk.NextString(); err == nil && dns2 != "" {
			dns += " " + dns2
		}
	}
	dc.Gateways = gw
	dc.DNSes = dns
	return nil
}
