// SPDX-License-Identifier: MIT
//
// Copyright © 2018 Kent Gibson <warthog618@gmail.com>.

package ril

import (
	"fmt"

	"github.com/warthog618/ril/tech"
)

// RequestCode identifies the kind of a request.
//
// Values match the numbering used by the telephony framework.
type RequestCode int

// Request codes.
const (
	RequestGetSimStatus                       RequestCode = 1
	RequestEnterSimPin                        RequestCode = 2
	RequestEnterSimPuk                        RequestCode = 3
	RequestEnterSimPin2                       RequestCode = 4
	RequestEnterSimPuk2                       RequestCode = 5
	RequestChangeSimPin                       RequestCode = 6
	RequestChangeSimPin2                      RequestCode = 7
	RequestEnterNetworkDepersonalization      RequestCode = 8
	RequestGetCurrentCalls                    RequestCode = 9
	RequestDial                               RequestCode = 10
	RequestGetIMSI                            RequestCode = 11
	RequestHangup                             RequestCode = 12
	RequestHangupWaitingOrBackground          RequestCode = 13
	RequestHangupForegroundResumeBackground   RequestCode = 14
	RequestSwitchWaitingOrHoldingAndActive    RequestCode = 15
	RequestConference                         RequestCode = 16
	RequestUDUB                               RequestCode = 17
	RequestLastCallFailCause                  RequestCode = 18
	RequestSignalStrength                     RequestCode = 19
	RequestVoiceRegistrationState             RequestCode = 20
	RequestDataRegistrationState              RequestCode = 21
	RequestOperator                           RequestCode = 22
	RequestRadioPower                         RequestCode = 23
	RequestDTMF                               RequestCode = 24
	RequestSendSMS                            RequestCode = 25
	RequestSendSMSExpectMore                  RequestCode = 26
	RequestSetupDataCall                      RequestCode = 27
	RequestSimIO                              RequestCode = 28
	RequestSendUSSD                           RequestCode = 29
	RequestCancelUSSD                         RequestCode = 30
	RequestGetCLIR                            RequestCode = 31
	RequestSetCLIR                            RequestCode = 32
	RequestQueryCallForwardStatus             RequestCode = 33
	RequestSetCallForward                     RequestCode = 34
	RequestQueryCallWaiting                   RequestCode = 35
	RequestSetCallWaiting                     RequestCode = 36
	RequestSMSAcknowledge                     RequestCode = 37
	RequestGetIMEI                            RequestCode = 38
	RequestGetIMEISV                          RequestCode = 39
	RequestAnswer                             RequestCode = 40
	RequestDeactivateDataCall                 RequestCode = 41
	RequestQueryFacilityLock                  RequestCode = 42
	RequestSetFacilityLock                    RequestCode = 43
	RequestChangeBarringPassword              RequestCode = 44
	RequestQueryNetworkSelectionMode          RequestCode = 45
	RequestSetNetworkSelectionAutomatic       RequestCode = 46
	RequestSetNetworkSelectionManual          RequestCode = 47
	RequestQueryAvailableNetworks             RequestCode = 48
	RequestDTMFStart                          RequestCode = 49
	RequestDTMFStop                           RequestCode = 50
	RequestBasebandVersion                    RequestCode = 51
	RequestSeparateConnection                 RequestCode = 52
	RequestSetMute                            RequestCode = 53
	RequestGetMute                            RequestCode = 54
	RequestQueryCLIP                          RequestCode = 55
	RequestLastDataCallFailCause              RequestCode = 56
	RequestDataCallList                       RequestCode = 57
	RequestResetRadio                         RequestCode = 58
	RequestOEMHookRaw                         RequestCode = 59
	RequestOEMHookStrings                     RequestCode = 60
	RequestScreenState                        RequestCode = 61
	RequestSetSuppSvcNotification             RequestCode = 62
	RequestWriteSMSToSim                      RequestCode = 63
	RequestDeleteSMSOnSim                     RequestCode = 64
	RequestSetBandMode                        RequestCode = 65
	RequestQueryAvailableBandMode             RequestCode = 66
	RequestSTKGetProfile                      RequestCode = 67
	RequestSTKSetProfile                      RequestCode = 68
	RequestSTKSendEnvelopeCommand             RequestCode = 69
	RequestSTKSendTerminalResponse            RequestCode = 70
	RequestSTKHandleCallSetupRequestedFromSim RequestCode = 71
	RequestExplicitCallTransfer               RequestCode = 72
	RequestSetPreferredNetworkType            RequestCode = 73
	RequestGetPreferredNetworkType            RequestCode = 74
	RequestGetNeighboringCellIDs              RequestCode = 75
	RequestSetLocationUpdates                 RequestCode = 76
	RequestCDMASetSubscriptionSource          RequestCode = 77
	RequestCDMASetRoamingPreference           RequestCode = 78
	RequestCDMAQueryRoamingPreference         RequestCode = 79
	RequestSetTTYMode                         RequestCode = 80
	RequestQueryTTYMode                       RequestCode = 81
	RequestCDMASetPreferredVoicePrivacyMode   RequestCode = 82
	RequestCDMAQueryPreferredVoicePrivacyMode RequestCode = 83
	RequestCDMASendSMS                        RequestCode = 87
	RequestGSMGetBroadcastSMSConfig           RequestCode = 89
	RequestGSMSetBroadcastSMSConfig           RequestCode = 90
	RequestGSMSMSBroadcastActivation          RequestCode = 91
	RequestCDMASubscription                   RequestCode = 95
	RequestDeviceIdentity                     RequestCode = 98
	RequestExitEmergencyCallbackMode          RequestCode = 99
	RequestGetSMSCAddress                     RequestCode = 100
	RequestSetSMSCAddress                     RequestCode = 101
	RequestReportSMSMemoryStatus              RequestCode = 102
	RequestReportSTKServiceIsRunning          RequestCode = 103
	RequestCDMAGetSubscriptionSource          RequestCode = 104
	RequestVoiceRadioTech                     RequestCode = 108
	RequestGetCellInfoList                    RequestCode = 109
	RequestSetUnsolCellInfoListRate           RequestCode = 110
	RequestSetInitialAttachAPN                RequestCode = 111
	RequestIMSRegistrationState               RequestCode = 112
	RequestIMSSendSMS                         RequestCode = 113
	RequestSimTransmitAPDUBasic               RequestCode = 114
	RequestSimOpenChannel                     RequestCode = 115
	RequestSimCloseChannel                    RequestCode = 116
	RequestSimTransmitAPDUChannel             RequestCode = 117
	RequestNVResetConfig                      RequestCode = 121
	RequestAllowData                          RequestCode = 123
	RequestGetHardwareConfig                  RequestCode = 124
	RequestSimAuthentication                  RequestCode = 125
	RequestSetDataProfile                     RequestCode = 128
	RequestShutdown                           RequestCode = 129
	RequestGetRadioCapability                 RequestCode = 130
	RequestSetRadioCapability                 RequestCode = 131
	RequestStartLCE                           RequestCode = 132
	RequestStopLCE                            RequestCode = 133
	RequestPullLCEData                        RequestCode = 134
	RequestGetActivityInfo                    RequestCode = 135
	RequestSetCarrierRestrictions             RequestCode = 136
	RequestGetCarrierRestrictions             RequestCode = 137
	RequestGetPreferredNetworkTypeBitmap      RequestCode = 147
	RequestSetPreferredNetworkTypeBitmap      RequestCode = 148
	RequestEmergencyDial                      RequestCode = 149
)

func (c RequestCode) String() string {
	return fmt.Sprintf("Request(%d)", int(c))
}

// Request is a typed request from the upper framework.
type Request interface {
	Code() RequestCode
}

// RawRequest is a request the core has no typed form for.
//
// It passes the radio state gating as its code dictates, but is otherwise
// completed with RequestNotSupported.
type RawRequest struct {
	ID   RequestCode
	Data []byte
}

// Code returns the request code.
func (r RawRequest) Code() RequestCode { return r.ID }

// Radio and device requests.
type (
	// RadioPower turns the transceiver on or off.
	RadioPower struct{ On bool }

	// Shutdown turns the radio off ahead of a device shutdown.
	Shutdown struct{}

	// BasebandVersion requests the baseband version string.
	BasebandVersion struct{}

	// DeviceIdentity requests the IMEI, IMEISV, ESN and MEID.
	DeviceIdentity struct{}

	// GetIMEI requests the IMEI.
	GetIMEI struct{}

	// GetIMSI requests the IMSI of the SIM.
	GetIMSI struct{ AID string }

	// GetRadioCapability requests the radio access families supported.
	GetRadioCapability struct{}

	// SetRadioCapability requests a change of radio capability.
	SetRadioCapability struct{ Capability RadioCapability }

	// VoiceRadioTech requests the radio technology of the voice service.
	VoiceRadioTech struct{}
)

func (RadioPower) Code() RequestCode         { return RequestRadioPower }
func (Shutdown) Code() RequestCode           { return RequestShutdown }
func (BasebandVersion) Code() RequestCode    { return RequestBasebandVersion }
func (DeviceIdentity) Code() RequestCode     { return RequestDeviceIdentity }
func (GetIMEI) Code() RequestCode            { return RequestGetIMEI }
func (GetIMSI) Code() RequestCode            { return RequestGetIMSI }
func (GetRadioCapability) Code() RequestCode { return RequestGetRadioCapability }
func (SetRadioCapability) Code() RequestCode { return RequestSetRadioCapability }
func (VoiceRadioTech) Code() RequestCode     { return RequestVoiceRadioTech }

// SIM requests.
type (
	// GetSimStatus requests the CardStatus.
	GetSimStatus struct{}

	// EnterSimPin supplies PIN1.
	EnterSimPin struct{ PIN, AID string }

	// EnterSimPin2 supplies PIN2.
	EnterSimPin2 struct{ PIN, AID string }

	// EnterSimPuk supplies PUK1 and a replacement PIN1.
	EnterSimPuk struct{ PUK, NewPIN, AID string }

	// EnterSimPuk2 supplies PUK2 and a replacement PIN2.
	EnterSimPuk2 struct{ PUK, NewPIN, AID string }

	// ChangeSimPin changes PIN1.
	ChangeSimPin struct{ OldPIN, NewPIN, AID string }

	// ChangeSimPin2 changes PIN2.
	ChangeSimPin2 struct{ OldPIN, NewPIN, AID string }

	// EnterNetworkDepersonalization supplies the network depersonalization
	// code.
	EnterNetworkDepersonalization struct{ PIN string }

	// QueryFacilityLock queries the lock state of a facility.
	QueryFacilityLock struct {
		Facility     string
		Password     string
		ServiceClass int
		AID          string
	}

	// SetFacilityLock locks or unlocks a facility.
	SetFacilityLock struct {
		Facility     string
		Lock         bool
		Password     string
		ServiceClass int
		AID          string
	}

	// ChangeBarringPassword changes the password of a call barring facility.
	ChangeBarringPassword struct {
		Facility    string
		OldPassword string
		NewPassword string
	}

	// SimIO performs a restricted SIM access to an elementary file.
	//
	// Command is the SIM command, e.g. 176 for READ BINARY or 192 for
	// GET RESPONSE.  Data is hex encoded.
	SimIO struct {
		Command int
		FileID  int
		Path    string
		P1      int
		P2      int
		P3      int
		Data    string
		PIN2    string
		AID     string
	}

	// SimTransmitAPDUBasic sends an APDU on the basic channel.
	SimTransmitAPDUBasic struct{ SimAPDU }

	// SimTransmitAPDUChannel sends an APDU on a logical channel.
	SimTransmitAPDUChannel struct{ SimAPDU }

	// SimOpenChannel opens a logical channel to the application with the
	// AID.  An empty AID opens a channel without selecting an application.
	SimOpenChannel struct {
		AID string
		P2  int
	}

	// SimCloseChannel closes a logical channel.
	SimCloseChannel struct{ SessionID int }
)

// SimAPDU is a command APDU.
//
// P3 is omitted from a basic channel APDU without data if negative.
// Data is hex encoded.
type SimAPDU struct {
	SessionID   int
	CLA         int
	Instruction int
	P1          int
	P2          int
	P3          int
	Data        string
}

func (GetSimStatus) Code() RequestCode                  { return RequestGetSimStatus }
func (EnterSimPin) Code() RequestCode                   { return RequestEnterSimPin }
func (EnterSimPin2) Code() RequestCode                  { return RequestEnterSimPin2 }
func (EnterSimPuk) Code() RequestCode                   { return RequestEnterSimPuk }
func (EnterSimPuk2) Code() RequestCode                  { return RequestEnterSimPuk2 }
func (ChangeSimPin) Code() RequestCode                  { return RequestChangeSimPin }
func (ChangeSimPin2) Code() RequestCode                 { return RequestChangeSimPin2 }
func (EnterNetworkDepersonalization) Code() RequestCode { return RequestEnterNetworkDepersonalization }
func (QueryFacilityLock) Code() RequestCode             { return RequestQueryFacilityLock }
func (SetFacilityLock) Code() RequestCode               { return RequestSetFacilityLock }
func (ChangeBarringPassword) Code() RequestCode         { return RequestChangeBarringPassword }
func (SimIO) Code() RequestCode                         { return RequestSimIO }
func (SimTransmitAPDUBasic) Code() RequestCode          { return RequestSimTransmitAPDUBasic }
func (SimTransmitAPDUChannel) Code() RequestCode        { return RequestSimTransmitAPDUChannel }
func (SimOpenChannel) Code() RequestCode                { return RequestSimOpenChannel }
func (SimCloseChannel) Code() RequestCode               { return RequestSimCloseChannel }

// EmergencyRouting selects how an emergency number is dialled.
type EmergencyRouting int

// Emergency routings.
const (
	RoutingUnknown EmergencyRouting = iota
	RoutingEmergency
	RoutingNormal
)

// Call control requests.
type (
	// GetCurrentCalls requests the list of current calls.
	GetCurrentCalls struct{}

	// Dial originates a voice call.
	//
	// CLIR is 0 for the subscription default, 1 to invoke and 2 to suppress.
	Dial struct {
		Address string
		CLIR    int
	}

	// EmergencyDial originates an emergency call.
	EmergencyDial struct {
		Dial
		Categories int
		Routing    EmergencyRouting
	}

	// Hangup releases the call with the given index.
	Hangup struct{ Index int }

	// HangupWaitingOrBackground releases held or waiting calls.
	HangupWaitingOrBackground struct{}

	// HangupForegroundResumeBackground releases active calls and accepts
	// the held or waiting call.
	HangupForegroundResumeBackground struct{}

	// SwitchWaitingOrHoldingAndActive places active calls on hold and
	// accepts the held or waiting call.
	SwitchWaitingOrHoldingAndActive struct{}

	// Conference adds a held call to the conversation.
	Conference struct{}

	// UDUB rejects an incoming call as User Determined User Busy.
	UDUB struct{}

	// Answer answers an incoming call.
	Answer struct{}

	// SeparateConnection places all calls except the given one on hold.
	SeparateConnection struct{ Index int }

	// DTMF sends a single DTMF tone.
	DTMF struct{ Tone byte }

	// GetMute requests the uplink mute state.
	GetMute struct{}

	// SetMute sets the uplink mute state.
	SetMute struct{ Mute bool }

	// GetCLIR requests the calling line identity restriction setting.
	GetCLIR struct{}

	// SetCLIR sets the calling line identity restriction.
	SetCLIR struct{ N int }

	// QueryCLIP requests the calling line identity presentation state.
	QueryCLIP struct{}

	// QueryCallWaiting requests the call waiting state for a service class.
	QueryCallWaiting struct{ ServiceClass int }

	// SetCallWaiting enables or disables call waiting.
	SetCallWaiting struct {
		Enable       bool
		ServiceClass int
	}

	// QueryCallForwardStatus requests the call forwarding state.
	QueryCallForwardStatus struct{ CallForward }

	// SetCallForward alters the call forwarding state.
	SetCallForward struct{ CallForward }

	// SetSuppSvcNotification enables or disables supplementary service
	// notifications.
	SetSuppSvcNotification struct{ Enable bool }

	// SendUSSD sends a USSD string.
	SendUSSD struct{ USSD string }

	// CancelUSSD cancels an ongoing USSD session.
	CancelUSSD struct{}

	// QueryTTYMode requests the TTY mode.
	QueryTTYMode struct{}

	// SetTTYMode sets the TTY mode.
	SetTTYMode struct{ Mode int }
)

func (GetCurrentCalls) Code() RequestCode                  { return RequestGetCurrentCalls }
func (Dial) Code() RequestCode                             { return RequestDial }
func (EmergencyDial) Code() RequestCode                    { return RequestEmergencyDial }
func (Hangup) Code() RequestCode                           { return RequestHangup }
func (HangupWaitingOrBackground) Code() RequestCode        { return RequestHangupWaitingOrBackground }
func (HangupForegroundResumeBackground) Code() RequestCode { return RequestHangupForegroundResumeBackground }
func (SwitchWaitingOrHoldingAndActive) Code() RequestCode  { return RequestSwitchWaitingOrHoldingAndActive }
func (Conference) Code() RequestCode                       { return RequestConference }
func (UDUB) Code() RequestCode                             { return RequestUDUB }
func (Answer) Code() RequestCode                           { return RequestAnswer }
func (SeparateConnection) Code() RequestCode               { return RequestSeparateConnection }
func (DTMF) Code() RequestCode                             { return RequestDTMF }
func (GetMute) Code() RequestCode                          { return RequestGetMute }
func (SetMute) Code() RequestCode                          { return RequestSetMute }
func (GetCLIR) Code() RequestCode                          { return RequestGetCLIR }
func (SetCLIR) Code() RequestCode                          { return RequestSetCLIR }
func (QueryCLIP) Code() RequestCode                        { return RequestQueryCLIP }
func (QueryCallWaiting) Code() RequestCode                 { return RequestQueryCallWaiting }
func (SetCallWaiting) Code() RequestCode                   { return RequestSetCallWaiting }
func (QueryCallForwardStatus) Code() RequestCode           { return RequestQueryCallForwardStatus }
func (SetCallForward) Code() RequestCode                   { return RequestSetCallForward }
func (SetSuppSvcNotification) Code() RequestCode           { return RequestSetSuppSvcNotification }
func (SendUSSD) Code() RequestCode                         { return RequestSendUSSD }
func (CancelUSSD) Code() RequestCode                       { return RequestCancelUSSD }
func (QueryTTYMode) Code() RequestCode                     { return RequestQueryTTYMode }
func (SetTTYMode) Code() RequestCode                       { return RequestSetTTYMode }

// Network requests.
type (
	// SignalStrength requests the current signal strength.
	SignalStrength struct{}

	// VoiceRegistrationState requests the circuit switched registration.
	VoiceRegistrationState struct{}

	// DataRegistrationState requests the packet switched registration.
	DataRegistrationState struct{}

	// Operator requests the long, short and numeric operator names.
	Operator struct{}

	// QueryNetworkSelectionMode requests automatic or manual selection.
	QueryNetworkSelectionMode struct{}

	// SetNetworkSelectionAutomatic selects the network automatically.
	SetNetworkSelectionAutomatic struct{}

	// SetNetworkSelectionManual selects the network by its numeric id.
	SetNetworkSelectionManual struct {
		Numeric string
		Tech    tech.RadioTech
	}

	// SetPreferredNetworkType sets the preferred network mode.
	SetPreferredNetworkType struct{ Mode int }

	// GetPreferredNetworkType requests the preferred network mode.
	GetPreferredNetworkType struct{}

	// SetPreferredNetworkTypeBitmap sets the preferred radio access
	// families.
	SetPreferredNetworkTypeBitmap struct{ Bitmap tech.RAF }

	// GetPreferredNetworkTypeBitmap requests the preferred radio access
	// families.
	GetPreferredNetworkTypeBitmap struct{}

	// ScreenState informs the modem of the screen state.
	ScreenState struct{ On bool }

	// QueryAvailableBandMode requests the supported band modes.
	QueryAvailableBandMode struct{}

	// SetBandMode selects a band mode.
	SetBandMode struct{ Mode int }

	// SetLocationUpdates enables or disables location update notifications.
	SetLocationUpdates struct{ Enable bool }

	// GetNeighboringCellIDs requests the neighbouring cells.
	GetNeighboringCellIDs struct{}

	// GetCellInfoList requests the cells known to the modem.
	GetCellInfoList struct{}

	// SetUnsolCellInfoListRate sets the rate of cell info reports.
	SetUnsolCellInfoListRate struct{ RateMs int }

	// IMSRegistrationState requests the IMS registration state.
	IMSRegistrationState struct{}
)

func (SignalStrength) Code() RequestCode                { return RequestSignalStrength }
func (VoiceRegistrationState) Code() RequestCode        { return RequestVoiceRegistrationState }
func (DataRegistrationState) Code() RequestCode         { return RequestDataRegistrationState }
func (Operator) Code() RequestCode                      { return RequestOperator }
func (QueryNetworkSelectionMode) Code() RequestCode     { return RequestQueryNetworkSelectionMode }
func (SetNetworkSelectionAutomatic) Code() RequestCode  { return RequestSetNetworkSelectionAutomatic }
func (SetNetworkSelectionManual) Code() RequestCode     { return RequestSetNetworkSelectionManual }
func (SetPreferredNetworkType) Code() RequestCode       { return RequestSetPreferredNetworkType }
func (GetPreferredNetworkType) Code() RequestCode       { return RequestGetPreferredNetworkType }
func (SetPreferredNetworkTypeBitmap) Code() RequestCode { return RequestSetPreferredNetworkTypeBitmap }
func (GetPreferredNetworkTypeBitmap) Code() RequestCode { return RequestGetPreferredNetworkTypeBitmap }
func (ScreenState) Code() RequestCode                   { return RequestScreenState }
func (QueryAvailableBandMode) Code() RequestCode        { return RequestQueryAvailableBandMode }
func (SetBandMode) Code() RequestCode                   { return RequestSetBandMode }
func (SetLocationUpdates) Code() RequestCode            { return RequestSetLocationUpdates }
func (GetNeighboringCellIDs) Code() RequestCode         { return RequestGetNeighboringCellIDs }
func (GetCellInfoList) Code() RequestCode               { return RequestGetCellInfoList }
func (SetUnsolCellInfoListRate) Code() RequestCode      { return RequestSetUnsolCellInfoListRate }
func (IMSRegistrationState) Code() RequestCode          { return RequestIMSRegistrationState }

// Packet data requests.
type (
	// SetupDataCall activates a packet data session.
	SetupDataCall struct {
		Tech     tech.RadioTech
		Profile  int
		APN      string
		User     string
		Password string
		Auth     int
		// Protocol is the PDP type, "IP", "IPV6" or "IPV4V6".
		// Defaults to "IP".
		Protocol string
	}

	// DeactivateDataCall tears down a packet data session.
	DeactivateDataCall struct {
		CID    int
		Reason int
	}

	// DataCallList requests the active packet data sessions.
	DataCallList struct{}

	// SetInitialAttachAPN sets the APN used for the initial attach.
	SetInitialAttachAPN struct {
		APN      string
		Protocol string
	}

	// AllowData allows or disallows packet data.
	AllowData struct{ Allow bool }

	// SetDataProfile provides the data profiles.
	SetDataProfile struct{}
)

func (SetupDataCall) Code() RequestCode       { return RequestSetupDataCall }
func (DeactivateDataCall) Code() RequestCode  { return RequestDeactivateDataCall }
func (DataCallList) Code() RequestCode        { return RequestDataCallList }
func (SetInitialAttachAPN) Code() RequestCode { return RequestSetInitialAttachAPN }
func (AllowData) Code() RequestCode           { return RequestAllowData }
func (SetDataProfile) Code() RequestCode      { return RequestSetDataProfile }

// SMS requests.
type (
	// SendSMS sends an SMS-SUBMIT TPDU.
	//
	// SMSC is the hex encoded SMSC address, or empty for the default held
	// by the SIM. PDU is the hex encoded TPDU.
	SendSMS struct {
		SMSC string
		PDU  string
	}

	// SendSMSExpectMore is SendSMS with more messages to follow.
	SendSMSExpectMore struct{ SendSMS }

	// SMSAcknowledge acknowledges the last incoming SMS.
	SMSAcknowledge struct {
		Success bool
		Cause   int
	}

	// WriteSMSToSim stores an SMS on the SIM.
	WriteSMSToSim struct {
		Status int
		PDU    string
		SMSC   string
	}

	// DeleteSMSOnSim deletes the SMS stored on the SIM at the index.
	DeleteSMSOnSim struct{ Index int }

	// GetSMSCAddress requests the SMSC address.
	GetSMSCAddress struct{}

	// SetSMSCAddress sets the SMSC address.
	SetSMSCAddress struct{ Address string }

	// GetBroadcastSMSConfig requests the cell broadcast configuration.
	GetBroadcastSMSConfig struct{}

	// SetBroadcastSMSConfig sets the cell broadcast configuration.
	SetBroadcastSMSConfig struct{ Configs []BroadcastConfig }
)

func (SendSMS) Code() RequestCode               { return RequestSendSMS }
func (SendSMSExpectMore) Code() RequestCode     { return RequestSendSMSExpectMore }
func (SMSAcknowledge) Code() RequestCode        { return RequestSMSAcknowledge }
func (WriteSMSToSim) Code() RequestCode         { return RequestWriteSMSToSim }
func (DeleteSMSOnSim) Code() RequestCode        { return RequestDeleteSMSOnSim }
func (GetSMSCAddress) Code() RequestCode        { return RequestGetSMSCAddress }
func (SetSMSCAddress) Code() RequestCode        { return RequestSetSMSCAddress }
func (GetBroadcastSMSConfig) Code() RequestCode { return RequestGSMGetBroadcastSMSConfig }
func (SetBroadcastSMSConfig) Code() RequestCode { return RequestGSMSetBroadcastSMSConfig }

// CDMA requests.
type (
	// CDMAGetSubscriptionSource requests the subscription source.
	CDMAGetSubscriptionSource struct{}

	// CDMASetSubscriptionSource selects the subscription source.
	CDMASetSubscriptionSource struct{ Source int }

	// CDMASubscription requests the subscription details.
	CDMASubscription struct{}

	// CDMAQueryRoamingPreference requests the roaming preference.
	CDMAQueryRoamingPreference struct{}

	// CDMASetRoamingPreference sets the roaming preference.
	CDMASetRoamingPreference struct{ Preference int }

	// ExitEmergencyCallbackMode exits emergency callback mode.
	ExitEmergencyCallbackMode struct{}

	// CDMASetPreferredVoicePrivacyMode selects enhanced voice privacy.
	CDMASetPreferredVoicePrivacyMode struct{ Enhanced bool }
)

func (CDMAGetSubscriptionSource) Code() RequestCode        { return RequestCDMAGetSubscriptionSource }
func (CDMASetSubscriptionSource) Code() RequestCode        { return RequestCDMASetSubscriptionSource }
func (CDMASubscription) Code() RequestCode                 { return RequestCDMASubscription }
func (CDMAQueryRoamingPreference) Code() RequestCode       { return RequestCDMAQueryRoamingPreference }
func (CDMASetRoamingPreference) Code() RequestCode         { return RequestCDMASetRoamingPreference }
func (ExitEmergencyCallbackMode) Code() RequestCode        { return RequestExitEmergencyCallbackMode }
func (CDMASetPreferredVoicePrivacyMode) Code() RequestCode { return RequestCDMASetPreferredVoicePrivacyMode }

// SIM toolkit, OEM and link capacity requests.
type (
	// ReportSTKServiceIsRunning indicates the toolkit service is ready to
	// receive proactive commands.
	ReportSTKServiceIsRunning struct{}

	// STKSendEnvelopeCommand sends a hex encoded envelope to the SIM.
	STKSendEnvelopeCommand struct{ Contents string }

	// STKSendTerminalResponse sends a hex encoded terminal response to the
	// SIM.
	STKSendTerminalResponse struct{ Contents string }

	// OEMHookRaw passes raw data to the modem.
	OEMHookRaw struct{ Data []byte }

	// OEMHookStrings passes strings to the modem.
	OEMHookStrings struct{ Strings []string }

	// StartLCE starts link capacity estimation.
	StartLCE struct{}

	// StopLCE stops link capacity estimation.
	StopLCE struct{}

	// PullLCEData requests link capacity estimates.
	PullLCEData struct{}
)

func (ReportSTKServiceIsRunning) Code() RequestCode { return RequestReportSTKServiceIsRunning }
func (STKSendEnvelopeCommand) Code() RequestCode    { return RequestSTKSendEnvelopeCommand }
func (STKSendTerminalResponse) Code() RequestCode   { return RequestSTKSendTerminalResponse }
func (OEMHookRaw) Code() RequestCode                { return RequestOEMHookRaw }
func (OEMHookStrings) Code() RequestCode            { return RequestOEMHookStrings }
func (StartLCE) Code() RequestCode                  { return RequestStartLCE }
func (StopLCE) Code() RequestCode                   { return RequestStopLCE }
func (PullLCEData) Code() RequestCode               { return RequestPullLCEData }
