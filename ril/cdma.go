// SPDX-License-Identifier: MIT
//
// Copyright © 2018 Kent Gibson <warthog618@gmail.com>.

package ril

import (
	"context"
	"strconv"

	"github.com/warthog618/ril/info"
	"github.com/warthog618/ril/tech"
)

// basebandVersion is reported for all modems.
const basebandVersion = "1.0.0.0"

// cdmaSubscription is reported for CDMA subscriptions, which the modem
// cannot be queried for.
var cdmaSubscription = CDMASubscriptionInfo{
	MDN: "8587777777",
	SID: "1",
	NID: "1",
	MIN: "8587777777",
	PRL: "1",
}

func (c *Core) isCDMA() bool {
	return c.currentMask() == tech.CDMA
}

// singleInt issues a command and returns the first field of its response.
func (c *Core) singleInt(ctx context.Context, cmd, prefix string) (int, error) {
	line, err := c.singleLine(ctx, cmd, prefix)
	if err != nil {
		return 0, err
	}
	tk, err := info.Tokenize(line)
	if err != nil {
		return 0, err
	}
	return tk.NextInt()
}

func (c *Core) getSubscriptionSource(ctx context.Context) (Errno, interface{}) {
	src, err := c.singleInt(ctx, "+CCSS?", "+CCSS:")
	if err != nil {
		return failure(err), nil
	}
	return Success, src
}

func (c *Core) setSubscriptionSource(ctx context.Context, r CDMASetSubscriptionSource) Errno {
	if !c.isCDMA() {
		return Success
	}
	if err := c.command(ctx, "+CCSS="+strconv.Itoa(r.Source)); err != nil {
		return failure(err)
	}
	c.setSubscriptionSourceState(r.Source)
	return Success
}

// setSubscriptionSourceState records the subscription source and reports
// the change.
func (c *Core) setSubscriptionSourceState(src int) {
	c.smu.Lock()
	c.mdm.SubscriptionSource = src
	c.smu.Unlock()
	c.sink.Event(UnsolCDMASubscriptionSourceChanged, src)
}

func (c *Core) queryRoamingPreference(ctx context.Context) (Errno, interface{}) {
	if !c.isCDMA() {
		return RequestNotSupported, nil
	}
	pref, err := c.singleInt(ctx, "+WRMP?", "+WRMP:")
	if err != nil {
		return failure(err), nil
	}
	return Success, pref
}

func (c *Core) setRoamingPreference(ctx context.Context, r CDMASetRoamingPreference) Errno {
	if !c.isCDMA() {
		return Success
	}
	if err := c.command(ctx, "+WRMP="+strconv.Itoa(r.Preference)); err != nil {
		return failure(err)
	}
	return Success
}

func (c *Core) exitEmergencyCallbackMode(ctx context.Context) Errno {
	if !c.isCDMA() {
		return Success
	}
	if err := c.command(ctx, "+WSOS=0"); err != nil {
		return failure(err)
	}
	return Success
}
