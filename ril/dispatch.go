// SPDX-License-Identifier: MIT
//
// Copyright © 2018 Kent Gibson <warthog618@gmail.com>.

package ril

import (
	"context"
)

// allowedWhileOff are the requests processed while the radio is off.
var allowedWhileOff = map[RequestCode]bool{
	RequestBasebandVersion:                    true,
	RequestCDMAGetSubscriptionSource:          true,
	RequestCDMAQueryPreferredVoicePrivacyMode: true,
	RequestCDMASetPreferredVoicePrivacyMode:   true,
	RequestCDMASetRoamingPreference:           true,
	RequestCDMASetSubscriptionSource:          true,
	RequestCDMASubscription:                   true,
	RequestDeviceIdentity:                     true,
	RequestExitEmergencyCallbackMode:          true,
	RequestGetActivityInfo:                    true,
	RequestGetCarrierRestrictions:             true,
	RequestGetCurrentCalls:                    true,
	RequestGetIMEI:                            true,
	RequestGetMute:                            true,
	RequestSetMute:                            true,
	RequestGetNeighboringCellIDs:              true,
	RequestGetPreferredNetworkType:            true,
	RequestGetRadioCapability:                 true,
	RequestGetSimStatus:                       true,
	RequestNVResetConfig:                      true,
	RequestQueryAvailableBandMode:             true,
	RequestQueryNetworkSelectionMode:          true,
	RequestQueryTTYMode:                       true,
	RequestRadioPower:                         true,
	RequestSetBandMode:                        true,
	RequestSetCarrierRestrictions:             true,
	RequestSetLocationUpdates:                 true,
	RequestSetPreferredNetworkType:            true,
	RequestSetTTYMode:                         true,
	RequestSetUnsolCellInfoListRate:           true,
	RequestStopLCE:                            true,
	RequestVoiceRadioTech:                     true,
	RequestScreenState:                        true,
}

// gate returns false if the request cannot be processed in the radio state.
func gate(s RadioState, code RequestCode) bool {
	switch s {
	case RadioUnavailable:
		return code == RequestGetSimStatus
	case RadioOff:
		return allowedWhileOff[code]
	}
	return true
}

// complete reports the outcome of a request to the Sink.
func (c *Core) complete(t Token, e Errno, rsp interface{}) {
	c.log.Debugw("complete", "token", t, "errno", e)
	c.sink.Complete(t, e, rsp)
}

// Handle processes a request, completing it exactly once via the Sink.
//
// Handle blocks until the request is complete, other than for
// GetCurrentCalls, which may complete later from the task queue while the
// call list settles.  Requests that are not valid in the current radio
// state complete with RadioNotAvailable without any command being issued.
func (c *Core) Handle(ctx context.Context, req Request, t Token) {
	code := req.Code()
	state := c.RadioState()
	c.log.Debugw("request", "code", code, "radio", state)
	if !gate(state, code) {
		c.complete(t, RadioNotAvailable, nil)
		return
	}
	switch r := req.(type) {
	case GetCurrentCalls:
		c.getCurrentCalls(ctx, t)
		return
	case STKSendEnvelopeCommand:
		c.sendEnvelope(ctx, r, t)
		return
	}
	e, rsp := c.dispatch(ctx, req)
	c.complete(t, e, rsp)
}

// dispatch routes a request to its handler and returns the outcome.
func (c *Core) dispatch(ctx context.Context, req Request) (Errno, interface{}) {
	switch r := req.(type) {
	// radio
	case RadioPower:
		return c.radioPower(ctx, r), nil
	case Shutdown:
		return c.shutdown(ctx), nil
	case BasebandVersion:
		return Success, basebandVersion
	case DeviceIdentity:
		return c.deviceIdentity(ctx)
	case GetIMEI:
		return c.numericString(ctx, "+CGSN")
	case GetIMSI:
		return c.imsi(ctx)
	case GetRadioCapability:
		return Success, radioCapability()
	case SetRadioCapability:
		return Success, r.Capability
	case VoiceRadioTech:
		return c.voiceRadioTech()

	// SIM
	case GetSimStatus:
		return Success, c.cardStatus(ctx)
	case EnterSimPin:
		return c.enterSimPin(ctx, r.PIN, "SIM PIN")
	case EnterSimPin2:
		return c.enterSimPin(ctx, r.PIN, "SIM PIN2")
	case EnterSimPuk:
		return c.changeSimPin(ctx, r.PUK, r.NewPIN, "SIM PUK")
	case EnterSimPuk2:
		return c.changeSimPin(ctx, r.PUK, r.NewPIN, "SIM PUK2")
	case ChangeSimPin:
		return c.changeSimPin(ctx, r.OldPIN, r.NewPIN, "SIM PIN")
	case ChangeSimPin2:
		return c.changeSimPin2(ctx, r)
	case QueryFacilityLock:
		return c.queryFacilityLock(ctx, r)
	case SetFacilityLock:
		return c.setFacilityLock(ctx, r)
	case ChangeBarringPassword:
		return c.changeBarringPassword(ctx, r), nil
	case SimIO:
		return c.simIO(ctx, r)
	case SimTransmitAPDUBasic:
		return c.transmitAPDUBasic(ctx, r.SimAPDU)
	case SimTransmitAPDUChannel:
		return c.transmitAPDUChannel(ctx, r.SimAPDU)
	case SimOpenChannel:
		return c.openChannel(ctx, r)
	case SimCloseChannel:
		return c.closeChannel(ctx, r), nil

	// calls
	case Dial:
		return c.dial(ctx, r), nil
	case EmergencyDial:
		return c.emergencyDial(ctx, r), nil
	case Hangup:
		return c.hangup(ctx, r), nil
	case HangupWaitingOrBackground:
		return c.callSelection(ctx, "+CHLD=0"), nil
	case HangupForegroundResumeBackground:
		return c.callSelection(ctx, "+CHLD=1"), nil
	case SwitchWaitingOrHoldingAndActive:
		return c.callSelection(ctx, "+CHLD=2"), nil
	case Conference:
		return c.callSelection(ctx, "+CHLD=3"), nil
	case UDUB:
		return c.callSelection(ctx, "H"), nil
	case Answer:
		return c.answer(ctx), nil
	case SeparateConnection:
		return c.separateConnection(ctx, r), nil
	case DTMF:
		return c.dtmf(ctx, r), nil
	case GetMute:
		return c.getMute(ctx)
	case SetMute:
		return c.setMute(ctx, r), nil
	case GetCLIR:
		return c.getCLIR(ctx)
	case SetCLIR:
		return c.setCLIR(ctx, r), nil
	case QueryCLIP:
		return c.queryCLIP(ctx)
	case QueryCallWaiting:
		return c.queryCallWaiting(ctx, r)
	case SetCallWaiting:
		return c.setCallWaiting(ctx, r), nil
	case QueryCallForwardStatus:
		return c.queryCallForward(ctx, r)
	case SetCallForward:
		return c.setCallForward(ctx, r), nil
	case SetSuppSvcNotification:
		return c.setSuppSvcNotification(ctx, r), nil
	case SendUSSD:
		return c.sendUSSD(ctx, r), nil
	case CancelUSSD:
		return c.cancelUSSD(ctx), nil
	case QueryTTYMode:
		return c.queryTTYMode(ctx)

	// network
	case SignalStrength:
		return c.signalStrength(ctx)
	case VoiceRegistrationState:
		return c.registrationState(ctx, false)
	case DataRegistrationState:
		return c.registrationState(ctx, true)
	case Operator:
		return c.operator(ctx)
	case QueryNetworkSelectionMode:
		return c.queryNetworkSelectionMode(ctx)
	case SetNetworkSelectionAutomatic:
		return c.setNetworkSelectionAutomatic(ctx), nil
	case SetNetworkSelectionManual:
		return c.setNetworkSelectionManual(ctx, r), nil
	case SetPreferredNetworkType:
		return c.setPreferredNetworkType(ctx, r), nil
	case GetPreferredNetworkType:
		return c.getPreferredNetworkType(ctx, false)
	case SetPreferredNetworkTypeBitmap:
		return c.setPreferredNetworkTypeBitmap(ctx, r), nil
	case GetPreferredNetworkTypeBitmap:
		return c.getPreferredNetworkType(ctx, true)
	case ScreenState:
		return c.screenState(ctx, r), nil
	case QueryAvailableBandMode:
		return Success, availableBandModes()
	case GetCellInfoList:
		return Success, c.cellInfoList()
	case SetUnsolCellInfoListRate:
		c.setCellInfoListRate(r)
		return Success, nil
	case IMSRegistrationState:
		return c.imsRegistrationState()

	// data
	case SetupDataCall:
		return c.setupDataCall(ctx, r)
	case DeactivateDataCall:
		return c.deactivateDataCall(r), nil
	case DataCallList:
		return c.dataCallList(ctx)

	// SMS
	case SendSMS:
		return c.sendSMS(ctx, r, false)
	case SendSMSExpectMore:
		return c.sendSMS(ctx, r.SendSMS, true)
	case SMSAcknowledge:
		return c.smsAcknowledge(ctx, r), nil
	case WriteSMSToSim:
		return c.writeSMSToSim(ctx, r)
	case DeleteSMSOnSim:
		return c.deleteSMSOnSim(ctx, r), nil
	case GetSMSCAddress:
		return c.getSMSCAddress(ctx)
	case SetSMSCAddress:
		return c.setSMSCAddress(ctx, r), nil
	case GetBroadcastSMSConfig:
		return c.getBroadcastSMSConfig(ctx)
	case SetBroadcastSMSConfig:
		return c.setBroadcastSMSConfig(ctx, r), nil

	// CDMA
	case CDMAGetSubscriptionSource:
		return c.getSubscriptionSource(ctx)
	case CDMASetSubscriptionSource:
		return c.setSubscriptionSource(ctx, r), nil
	case CDMASubscription:
		return Success, cdmaSubscription
	case CDMAQueryRoamingPreference:
		return c.queryRoamingPreference(ctx)
	case CDMASetRoamingPreference:
		return c.setRoamingPreference(ctx, r), nil
	case ExitEmergencyCallbackMode:
		return c.exitEmergencyCallbackMode(ctx), nil

	// toolkit
	case ReportSTKServiceIsRunning:
		return c.reportSTKServiceIsRunning(ctx), nil
	case STKSendTerminalResponse:
		return c.sendTerminalResponse(ctx, r), nil

	// OEM hooks echo their payload
	case OEMHookRaw:
		return Success, r.Data
	case OEMHookStrings:
		return Success, r.Strings

	case StartLCE, StopLCE, PullLCEData:
		if c.isSIMAbsent(ctx) {
			return SimAbsent, nil
		}
		return LCENotSupported, nil

	// accepted without effect
	case SetInitialAttachAPN,
		AllowData,
		EnterNetworkDepersonalization,
		SetBandMode,
		GetNeighboringCellIDs,
		SetLocationUpdates,
		SetTTYMode,
		SetDataProfile,
		CDMASetPreferredVoicePrivacyMode:
		return Success, nil
	}
	c.log.Debugw("request not supported", "code", req.Code())
	return RequestNotSupported, nil
}
