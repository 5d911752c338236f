// SPDX-License-Identifier: MIT
//
// Copyright © 2018 Kent Gibson <warthog618@gmail.com>.

package ril

import "fmt"

// Unsol identifies an event pushed to the Sink.
type Unsol int

// Event codes.
const (
	UnsolRadioStateChanged             Unsol = 1000
	UnsolCallStateChanged              Unsol = 1001
	UnsolVoiceNetworkStateChanged      Unsol = 1002
	UnsolNewSMS                        Unsol = 1003
	UnsolNewSMSStatusReport            Unsol = 1004
	UnsolNewSMSOnSim                   Unsol = 1005
	UnsolOnUSSD                        Unsol = 1006
	UnsolNITZTimeReceived              Unsol = 1008
	UnsolSignalStrength                Unsol = 1009
	UnsolDataCallListChanged           Unsol = 1010
	UnsolSuppSvcNotification           Unsol = 1011
	UnsolSTKSessionEnd                 Unsol = 1012
	UnsolSTKProactiveCommand           Unsol = 1013
	UnsolSTKEventNotify                Unsol = 1014
	UnsolSimRefresh                    Unsol = 1017
	UnsolCallRing                      Unsol = 1018
	UnsolSimStatusChanged              Unsol = 1019
	UnsolEnterEmergencyCallbackMode    Unsol = 1024
	UnsolCDMASubscriptionSourceChanged Unsol = 1031
	UnsolCDMAPRLChanged                Unsol = 1032
	UnsolExitEmergencyCallbackMode     Unsol = 1033
	UnsolRILConnected                  Unsol = 1034
	UnsolVoiceRadioTechChanged         Unsol = 1035
	UnsolCellInfoList                  Unsol = 1036
	UnsolIMSNetworkStateChanged        Unsol = 1037
	UnsolSTKCCAlphaNotify              Unsol = 1044
	UnsolPhysicalChannelConfigs        Unsol = 1051
)

var unsolNames = map[Unsol]string{
	UnsolRadioStateChanged:             "RADIO_STATE_CHANGED",
	UnsolCallStateChanged:              "CALL_STATE_CHANGED",
	UnsolVoiceNetworkStateChanged:      "VOICE_NETWORK_STATE_CHANGED",
	UnsolNewSMS:                        "NEW_SMS",
	UnsolNewSMSStatusReport:            "NEW_SMS_STATUS_REPORT",
	UnsolNewSMSOnSim:                   "NEW_SMS_ON_SIM",
	UnsolOnUSSD:                        "ON_USSD",
	UnsolNITZTimeReceived:              "NITZ_TIME_RECEIVED",
	UnsolSignalStrength:                "SIGNAL_STRENGTH",
	UnsolDataCallListChanged:           "DATA_CALL_LIST_CHANGED",
	UnsolSuppSvcNotification:           "SUPP_SVC_NOTIFICATION",
	UnsolSTKSessionEnd:                 "STK_SESSION_END",
	UnsolSTKProactiveCommand:           "STK_PROACTIVE_COMMAND",
	UnsolSTKEventNotify:                "STK_EVENT_NOTIFY",
	UnsolSimRefresh:                    "SIM_REFRESH",
	UnsolCallRing:                      "CALL_RING",
	UnsolSimStatusChanged:              "SIM_STATUS_CHANGED",
	UnsolEnterEmergencyCallbackMode:    "ENTER_EMERGENCY_CALLBACK_MODE",
	UnsolCDMASubscriptionSourceChanged: "CDMA_SUBSCRIPTION_SOURCE_CHANGED",
	UnsolCDMAPRLChanged:                "CDMA_PRL_CHANGED",
	UnsolExitEmergencyCallbackMode:     "EXIT_EMERGENCY_CALLBACK_MODE",
	UnsolRILConnected:                  "RIL_CONNECTED",
	UnsolVoiceRadioTechChanged:         "VOICE_RADIO_TECH_CHANGED",
	UnsolCellInfoList:                  "CELL_INFO_LIST",
	UnsolIMSNetworkStateChanged:        "IMS_NETWORK_STATE_CHANGED",
	UnsolSTKCCAlphaNotify:              "STK_CC_ALPHA_NOTIFY",
	UnsolPhysicalChannelConfigs:        "PHYSICAL_CHANNEL_CONFIGS",
}

func (u Unsol) String() string {
	if n, ok := unsolNames[u]; ok {
		return n
	}
	return fmt.Sprintf("Unsol(%d)", int(u))
}
