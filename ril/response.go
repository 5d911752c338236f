// SPDX-License-Identifier: MIT
//
// Copyright © 2018 Kent Gibson <warthog618@gmail.com>.

package ril

import "github.com/warthog618/ril/tech"

// CardState is the presence of the SIM card.
type CardState int

// Card states.
const (
	CardAbsent CardState = iota
	CardPresent
	CardError
)

// PinState is the state of a PIN.
type PinState int

// PIN states.
const (
	PinUnknown PinState = iota
	PinEnabledNotVerified
	PinEnabledVerified
	PinDisabled
	PinEnabledBlocked
	PinEnabledPermBlocked
)

// AppType is the type of a SIM application.
type AppType int

// Application types.
const (
	AppUnknown AppType = iota
	AppSIM
	AppUSIM
	AppRUIM
	AppCSIM
	AppISIM
)

// AppState is the state of a SIM application.
type AppState int

// Application states.
const (
	AppStateUnknown AppState = iota
	AppStateDetected
	AppStatePIN
	AppStatePUK
	AppStateSubscriptionPerso
	AppStateReady
)

// PersoSubstate is the personalization state of a SIM application.
type PersoSubstate int

// Personalization substates.
const (
	PersoUnknown PersoSubstate = iota
	PersoInProgress
	PersoReady
	PersoSimNetwork
)

// AppStatus is the status of one application on the card.
type AppStatus struct {
	Type          AppType
	State         AppState
	PersoSubstate PersoSubstate
	AID           string
	Label         string
	Pin1Replaced  bool
	Pin1          PinState
	Pin2          PinState
}

// CardStatus is the response to GetSimStatus.
//
// Application indices are -1 if the card has no application of that family.
type CardStatus struct {
	State             CardState
	UniversalPinState PinState
	GsmUmtsIndex      int
	CdmaIndex         int
	ImsIndex          int
	Apps              []AppStatus
	ICCID             string
}

// CallState is the state of a call.
type CallState int

// Call states, as reported by +CLCC.
const (
	CallActive CallState = iota
	CallHolding
	CallDialing
	CallAlerting
	CallIncoming
	CallWaiting
)

// Call is one entry in the response to GetCurrentCalls.
type Call struct {
	Index      int
	MT         bool
	State      CallState
	Voice      bool
	Multiparty bool
	// Number is empty if the modem did not report a usable number.
	Number string
	TOA    int
}

// SignalStrengthInfo is the response to SignalStrength and the payload of the
// UnsolSignalStrength event.
//
// Values are positional as reported by the modem, with the GSM signal
// strength and bit error rate first.
type SignalStrengthInfo struct {
	Values []int
}

// CDMARegistration holds the fields of a registration response that apply
// to CDMA networks.
type CDMARegistration struct {
	BaseStationID        string
	BaseStationLatitude  string
	BaseStationLongitude string
	ConcurrentServices   string
	SystemID             string
	NetworkID            string
	RoamingIndicator     string
	PRLState             string
	DefaultRoaming       string
	DeniedReason         string
}

// RegistrationState is the response to VoiceRegistrationState and
// DataRegistrationState.
type RegistrationState struct {
	State int
	// LAC and CID are -1 if not reported.
	LAC  int
	CID  int
	Tech tech.RadioTech
	// CDMA is set for 3GPP2 technologies.
	CDMA    *CDMARegistration
	MCC     int
	MNC     int
	Numeric string
	// MaxDataCalls is set for data registrations.
	MaxDataCalls int
}

// OperatorInfo is the response to Operator.
//
// A name not reported by the modem is empty.
type OperatorInfo struct {
	Long    string
	Short   string
	Numeric string
}

// DataCall describes a packet data session.
type DataCall struct {
	Status             int
	SuggestedRetryTime int
	CID                int
	Active             int
	Type               string
	IfName             string
	Addresses          string
	DNSes              string
	Gateways           string
	PCSCF              string
	MTU                int
}

// SimIOResponse is the response to SimIO and the APDU requests.
//
// Response is hex encoded and excludes the status words.
type SimIOResponse struct {
	SW1      int
	SW2      int
	Response string
}

// SMSResponse is the response to SendSMS and WriteSMSToSim.
type SMSResponse struct {
	MessageRef int
	AckPDU     string
	ErrorCode  int
}

// CallForward is the payload of the call forwarding requests and the
// response to QueryCallForwardStatus.
type CallForward struct {
	Status       int
	Reason       int
	ServiceClass int
	TOA          int
	Number       string
	TimeSeconds  int
}

// CallWaitingInfo is the response to QueryCallWaiting.
type CallWaitingInfo struct {
	Enabled      bool
	ServiceClass int
}

// CLIRInfo is the response to GetCLIR.
type CLIRInfo struct {
	N int
	M int
}

// BroadcastConfig is one range of cell broadcast messages.
type BroadcastConfig struct {
	FromServiceID  int
	ToServiceID    int
	FromCodeScheme int
	ToCodeScheme   int
	Selected       bool
}

// Identity is the response to DeviceIdentity.
type Identity struct {
	IMEI   string
	IMEISV string
	ESN    string
	MEID   string
}

// CDMASubscriptionInfo is the response to CDMASubscription.
type CDMASubscriptionInfo struct {
	MDN string
	SID string
	NID string
	MIN string
	PRL string
}

// RadioCapability is the response to GetRadioCapability.
type RadioCapability struct {
	Version int
	Session int
	Phase   int
	RAF     tech.RAF
	UUID    string
	Status  int
}

// CellInfo is one entry in the response to GetCellInfoList.
type CellInfo struct {
	Registered     bool
	MCC            int
	MNC            int
	LAC            int
	CID            int
	BSIC           int
	SignalStrength int
	BitErrorRate   int
}

// IMSRegistration is the response to IMSRegistrationState.
type IMSRegistration struct {
	Registered bool
	Format     int
}

// USSD is the payload of the UnsolOnUSSD event.
type USSD struct {
	Mode    int
	Message string
	DCS     int
}

// STKCommand is the payload of the toolkit events, the hex encoded command.
type STKCommand string
