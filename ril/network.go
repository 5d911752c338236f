// SPDX-License-Identifier: MIT
//
// Copyright © 2018 Kent Gibson <warthog618@gmail.com>.

package ril

import (
	"context"
	"fmt"
	"strings"

	"github.com/pkg/errors"
	"github.com/warthog618/ril/info"
	"github.com/warthog618/ril/tech"
)

// registration is the serving cell and network, as last reported by the
// modem.
type registration struct {
	lac       int
	cid       int
	mcc       int
	mnc       int
	mncLength int
}

func (r registration) numeric() string {
	if r.mncLength == 3 {
		return fmt.Sprintf("%03d%03d", r.mcc, r.mnc)
	}
	return fmt.Sprintf("%03d%02d", r.mcc, r.mnc)
}

// ErrUnexpectedFields indicates a line has more fields than are understood.
var ErrUnexpectedFields = errors.New("unexpected number of fields")

// ParseRegistrationState parses a +CREG, +CGREG or +CEREG line.
//
// Both the solicited form, which leads with the reporting mode, and the
// unsolicited form are accepted.  The LAC and CID are hex encoded and are -1
// if not present.  An access technology, if present, sets the Tech.
func ParseRegistrationState(line string) (RegistrationState, error) {
	rs := RegistrationState{LAC: -1, CID: -1}
	tk, err := info.Tokenize(line)
	if err != nil {
		return rs, err
	}
	commas := strings.Count(tk.Rest(), ",")
	if commas > 4 {
		return rs, errors.Wrapf(ErrUnexpectedFields, "%d", commas+1)
	}
	if commas == 1 || commas >= 3 {
		// reporting mode
		if _, err = tk.NextInt(); err != nil {
			return rs, err
		}
	}
	if rs.State, err = tk.NextInt(); err != nil {
		return rs, err
	}
	if commas < 2 {
		return rs, nil
	}
	if rs.LAC, err = tk.NextHexInt(); err != nil {
		return rs, err
	}
	if rs.CID, err = tk.NextHexInt(); err != nil {
		return rs, err
	}
	if commas == 4 {
		act, err := tk.NextInt()
		if err != nil {
			return rs, err
		}
		rs.Tech = tech.FromAcT(act)
	}
	return rs, nil
}

// cdmaRegistration is reported for 3GPP2 technologies, which the modem
// cannot be queried for.
var cdmaRegistration = CDMARegistration{
	BaseStationID:        "1",
	BaseStationLatitude:  "123",
	BaseStationLongitude: "222",
	ConcurrentServices:   "0",
	SystemID:             "4",
	NetworkID:            "65535",
	RoamingIndicator:     "0",
	PRLState:             "1",
	DefaultRoaming:       "0",
	DeniedReason:         "0",
}

func (c *Core) registrationState(ctx context.Context, data bool) (Errno, interface{}) {
	cmd, prefix := "+CREG?", "+CREG:"
	if data {
		cmd, prefix = "+CGREG?", "+CGREG:"
		if c.currentMask() == tech.LTE {
			cmd, prefix = "+CEREG?", "+CEREG:"
		}
	}
	line, err := c.singleLine(ctx, cmd, prefix)
	if err != nil {
		return failure(err), nil
	}
	rs, err := ParseRegistrationState(line)
	if err != nil {
		c.log.Warnw("registration state", "line", line, "err", err)
		return GenericFailure, nil
	}
	c.smu.Lock()
	c.reg.lac = rs.LAC
	c.reg.cid = rs.CID
	reg := c.reg
	c.smu.Unlock()
	if rt, ok := tech.FromModemMask(c.currentMask()); ok && rt.Is3GPP2() {
		rs.Tech = tech.EVDOA
		if !data {
			cdma := cdmaRegistration
			rs.CDMA = &cdma
		}
	}
	rs.MCC = reg.mcc
	rs.MNC = reg.mnc
	rs.Numeric = reg.numeric()
	if data {
		rs.MaxDataCalls = pdpPoolSize
	}
	return Success, rs
}

// parseOperatorName returns the name from a +COPS line, which is empty if
// the modem is not registered.
func parseOperatorName(line string) (string, error) {
	tk, err := info.Tokenize(line)
	if err != nil {
		return "", err
	}
	// mode
	if _, err = tk.NextInt(); err != nil {
		return "", err
	}
	if !tk.HasMore() {
		return "", nil
	}
	// format
	if _, err = tk.NextInt(); err != nil {
		return "", err
	}
	if !tk.HasMore() {
		return "", nil
	}
	return tk.NextString()
}

func (c *Core) operator(ctx context.Context) (Errno, interface{}) {
	l, err := c.multiLine(ctx, "+COPS=3,0;+COPS?;+COPS=3,1;+COPS?;+COPS=3,2;+COPS?", "+COPS:")
	if err == nil && len(l) != 3 {
		err = errors.Wrapf(ErrUnexpectedFields, "%d lines", len(l))
	}
	var names [3]string
	for i := 0; err == nil && i < len(names); i++ {
		names[i], err = parseOperatorName(l[i])
	}
	c.smu.Lock()
	defer c.smu.Unlock()
	if err != nil {
		c.log.Warnw("operator", "err", err)
		c.reg.mcc = 0
		c.reg.mnc = 0
		c.reg.mncLength = 0
		return failure(err), nil
	}
	numeric := names[2]
	switch len(numeric) {
	case 5, 6:
		var mcc, mnc int
		if _, err := fmt.Sscanf(numeric[:3], "%d", &mcc); err != nil {
			break
		}
		if _, err := fmt.Sscanf(numeric[3:], "%d", &mnc); err != nil {
			break
		}
		c.reg.mcc = mcc
		c.reg.mnc = mnc
		c.reg.mncLength = len(numeric) - 3
	}
	return Success, OperatorInfo{Long: names[0], Short: names[1], Numeric: numeric}
}

func (c *Core) signalStrength(ctx context.Context) (Errno, interface{}) {
	line, err := c.singleLine(ctx, "+CSQ", "+CSQ:")
	if err != nil {
		return failure(err), nil
	}
	tk, err := info.Tokenize(line)
	if err != nil {
		return GenericFailure, nil
	}
	v := make([]int, 2)
	// missing fields are reported as zero
	v[0], _ = tk.NextInt()
	v[1], _ = tk.NextInt()
	return Success, SignalStrengthInfo{Values: v}
}

func (c *Core) queryNetworkSelectionMode(ctx context.Context) (Errno, interface{}) {
	line, err := c.singleLine(ctx, "+COPS?", "+COPS:")
	if err != nil {
		return failure(err), nil
	}
	tk, err := info.Tokenize(line)
	if err != nil {
		return GenericFailure, nil
	}
	mode, err := tk.NextInt()
	if err != nil {
		return GenericFailure, nil
	}
	return Success, mode
}

func (c *Core) setNetworkSelectionAutomatic(ctx context.Context) Errno {
	if c.isSIMAbsent(ctx) {
		return RadioNotAvailable
	}
	if err := c.command(ctx, "+COPS=0"); err != nil {
		return failure(err)
	}
	return Success
}

// cmeNoNetworkService is the CME error returned when no network is
// available.
const cmeNoNetworkService = "30"

func (c *Core) setNetworkSelectionManual(ctx context.Context, r SetNetworkSelectionManual) Errno {
	cmd := fmt.Sprintf("+COPS=1,2,%q", r.Numeric)
	if act, ok := r.Tech.AcT(); ok {
		cmd += fmt.Sprintf(",%d", act)
	}
	if err := c.command(ctx, cmd); err != nil {
		if cme, ok := cmeError(err); ok && cme == cmeNoNetworkService {
			return RadioNotAvailable
		}
		return failure(err)
	}
	return Success
}

// currentTech returns the current technology index reported by +CTEC.
func (c *Core) currentTech(ctx context.Context) (int, error) {
	line, err := c.singleLine(ctx, "+CTEC?", "+CTEC:")
	if err != nil {
		return 0, err
	}
	cur, _, err := parseCTEC(line)
	return cur, err
}

// setPreferred applies the technology preference corresponding to the
// network mode.
func (c *Core) setPreferred(ctx context.Context, pref tech.Preference, mode int) Errno {
	c.smu.Lock()
	supported := c.mdm.Supported
	old := c.mdm.Preferred
	c.smu.Unlock()
	if !tech.ModePossible(supported, mode) {
		return ModeNotSupported
	}
	cur, err := c.currentTech(ctx)
	if err != nil {
		return failure(err)
	}
	if old == pref {
		return Success
	}
	line, err := c.singleLine(ctx, fmt.Sprintf("+CTEC=%d,\"%x\"", cur, int32(pref)), "+CTEC:")
	if err != nil {
		return failure(err)
	}
	c.smu.Lock()
	c.mdm.Preferred = pref
	c.smu.Unlock()
	if !strings.Contains(line, "DONE") {
		if cur, _, err := parseCTEC(line); err == nil {
			c.setRadioTechnology(cur)
		}
	}
	return Success
}

func (c *Core) setPreferredNetworkType(ctx context.Context, r SetPreferredNetworkType) Errno {
	pref, ok := tech.PreferenceFromMode(r.Mode)
	if !ok {
		return ModeNotSupported
	}
	return c.setPreferred(ctx, pref, r.Mode)
}

func (c *Core) setPreferredNetworkTypeBitmap(ctx context.Context, r SetPreferredNetworkTypeBitmap) Errno {
	pref, mode := tech.PreferenceFromBitmap(r.Bitmap)
	return c.setPreferred(ctx, pref, mode)
}

func (c *Core) getPreferredNetworkType(ctx context.Context, bitmap bool) (Errno, interface{}) {
	_, pref, err := c.queryCTEC(ctx)
	if err != nil {
		return failure(err), nil
	}
	mode, ok := tech.ModeFromPreference(pref)
	if !ok {
		c.log.Warnw("unknown preferred mode", "preference", pref)
		return GenericFailure, nil
	}
	if bitmap {
		return Success, tech.BitmapFromPreference(pref)
	}
	return Success, mode
}

// screenState reduces registration reporting while the screen is off.
func (c *Core) screenState(ctx context.Context, r ScreenState) Errno {
	n := "1"
	if r.On {
		n = "2"
	}
	for _, cmd := range []string{"+CEREG=", "+CREG=", "+CGREG="} {
		c.command(ctx, cmd+n)
	}
	return Success
}

func availableBandModes() []int {
	return []int{0, 1, 2, 3, 4}
}

// cellInfoList reports the serving cell from the registration bookkeeping.
func (c *Core) cellInfoList() []CellInfo {
	c.smu.Lock()
	defer c.smu.Unlock()
	return []CellInfo{{
		Registered:     true,
		MCC:            c.reg.mcc,
		MNC:            c.reg.mnc,
		LAC:            c.reg.lac,
		CID:            c.reg.cid,
		BSIC:           1,
		SignalStrength: 10,
	}}
}

// setCellInfoListRate records the rate.  Cell info is never reported
// unsolicited.
func (c *Core) setCellInfoListRate(r SetUnsolCellInfoListRate) {
	c.smu.Lock()
	c.cellInfoRate = r.RateMs
	c.smu.Unlock()
}

func (c *Core) imsRegistrationState() (Errno, interface{}) {
	c.smu.Lock()
	ims := c.ims
	c.smu.Unlock()
	if ims.Format == -1 {
		return GenericFailure, nil
	}
	return Success, ims
}
