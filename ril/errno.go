// SPDX-License-Identifier: MIT
//
// Copyright © 2018 Kent Gibson <warthog618@gmail.com>.

package ril

import (
	"fmt"

	"github.com/pkg/errors"
	"github.com/warthog618/ril/at"
)

// Errno is the completion status of a request.
//
// Values match the numbering used by the telephony framework.
type Errno int

// Completion statuses.
const (
	Success                     Errno = 0
	RadioNotAvailable           Errno = 1
	GenericFailure              Errno = 2
	PasswordIncorrect           Errno = 3
	SimPin2                     Errno = 4
	SimPuk2                     Errno = 5
	RequestNotSupported         Errno = 6
	Cancelled                   Errno = 7
	OpNotAllowedDuringVoiceCall Errno = 8
	OpNotAllowedBeforeRegToNW   Errno = 9
	SMSSendFailRetry            Errno = 10
	SimAbsent                   Errno = 11
	SubscriptionNotAvailable    Errno = 12
	ModeNotSupported            Errno = 13
	FDNCheckFailure             Errno = 14
	IllegalSimOrME              Errno = 15
	MissingResource             Errno = 16
	NoSuchElement               Errno = 17
	LCENotSupported             Errno = 36
	NoMemory                    Errno = 37
	InternalErr                 Errno = 38
	SystemErr                   Errno = 39
	ModemErr                    Errno = 40
	InvalidState                Errno = 41
	NoResources                 Errno = 42
	SimErr                      Errno = 43
	InvalidArguments            Errno = 44
)

var errnoNames = map[Errno]string{
	Success:                     "SUCCESS",
	RadioNotAvailable:           "RADIO_NOT_AVAILABLE",
	GenericFailure:              "GENERIC_FAILURE",
	PasswordIncorrect:           "PASSWORD_INCORRECT",
	SimPin2:                     "SIM_PIN2",
	SimPuk2:                     "SIM_PUK2",
	RequestNotSupported:         "REQUEST_NOT_SUPPORTED",
	Cancelled:                   "CANCELLED",
	OpNotAllowedDuringVoiceCall: "OP_NOT_ALLOWED_DURING_VOICE_CALL",
	OpNotAllowedBeforeRegToNW:   "OP_NOT_ALLOWED_BEFORE_REG_TO_NW",
	SMSSendFailRetry:            "SMS_SEND_FAIL_RETRY",
	SimAbsent:                   "SIM_ABSENT",
	SubscriptionNotAvailable:    "SUBSCRIPTION_NOT_AVAILABLE",
	ModeNotSupported:            "MODE_NOT_SUPPORTED",
	FDNCheckFailure:             "FDN_CHECK_FAILURE",
	IllegalSimOrME:              "ILLEGAL_SIM_OR_ME",
	MissingResource:             "MISSING_RESOURCE",
	NoSuchElement:               "NO_SUCH_ELEMENT",
	LCENotSupported:             "LCE_NOT_SUPPORTED",
	NoMemory:                    "NO_MEMORY",
	InternalErr:                 "INTERNAL_ERR",
	SystemErr:                   "SYSTEM_ERR",
	ModemErr:                    "MODEM_ERR",
	InvalidState:                "INVALID_STATE",
	NoResources:                 "NO_RESOURCES",
	SimErr:                      "SIM_ERR",
	InvalidArguments:            "INVALID_ARGUMENTS",
}

func (e Errno) String() string {
	if n, ok := errnoNames[e]; ok {
		return n
	}
	return fmt.Sprintf("Errno(%d)", int(e))
}

var (
	// ErrNotAttached indicates a command was attempted with no channel
	// attached to the core.
	ErrNotAttached = errors.New("no channel attached")

	// ErrNoResponse indicates the command succeeded but returned no info
	// line of the expected form.
	ErrNoResponse = errors.New("no response line")
)

// failure maps a command error to the status reported for the request.
//
// Loss of the channel is reported as RadioNotAvailable, anything else as
// GenericFailure.
func failure(err error) Errno {
	switch errors.Cause(err) {
	case at.ErrClosed, at.ErrTimeout, ErrNotAttached:
		return RadioNotAvailable
	}
	return GenericFailure
}
