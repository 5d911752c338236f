// SPDX-License-Identifier: MIT
//
// Copyright © 2018 Kent Gibson <warthog618@gmail.com>.

// Package gsm provides the GSM specific pieces used by the core: modem
// capability parsing and the SMS PDUs exchanged in PDU mode.
package gsm

import (
	"encoding/hex"
	"strings"

	"github.com/pkg/errors"
	"github.com/warthog618/ril/info"
	"github.com/warthog618/sms"
	"github.com/warthog618/sms/encoding/pdumode"
)

// DefaultSMSC is the SMSC field indicating the SMSC stored in the SIM is to
// be used.
const DefaultSMSC = "00"

var (
	// ErrInvalidPDU indicates the PDU is not a well formed hex PDU.
	ErrInvalidPDU = errors.New("invalid PDU")

	// ErrNotGSMCapable indicates that the modem does not support the GSM
	// command set, as determined from the GCAP response.
	ErrNotGSMCapable = errors.New("modem is not GSM capable")

	// ErrNotSubmit indicates the TPDU is not an SMS-SUBMIT.
	ErrNotSubmit = errors.New("not an SMS-SUBMIT")
)

// Capabilities parses the response to AT+GCAP into the set of capabilities
// reported by the modem.
func Capabilities(lines []string) map[string]bool {
	capabilities := make(map[string]bool)
	for _, l := range lines {
		if info.HasPrefix(l, "+GCAP") {
			caps := strings.Split(info.TrimPrefix(l, "+GCAP"), ",")
			for _, cap := range caps {
				capabilities[strings.TrimSpace(cap)] = true
			}
		}
	}
	return capabilities
}

// CheckCapabilities returns ErrNotGSMCapable if the GCAP response does not
// include +CGSM.
func CheckCapabilities(lines []string) error {
	if !Capabilities(lines)["+CGSM"] {
		return ErrNotGSMCapable
	}
	return nil
}

// ParsePDU decodes the hex SMSC and TPDU fields passed with a message into a
// PDU.
//
// An empty smsc selects the SMSC stored in the SIM.
func ParsePDU(smsc, tpdu string) (*pdumode.PDU, error) {
	if smsc == "" {
		smsc = DefaultSMSC
	}
	p, err := pdumode.UnmarshalHexString(smsc + tpdu)
	if err != nil {
		return nil, errors.Wrapf(ErrInvalidPDU, "%v", err)
	}
	return p, nil
}

// CheckSubmit returns ErrNotSubmit unless the PDU carries an SMS-SUBMIT TPDU.
func CheckSubmit(p *pdumode.PDU) error {
	// message type indicator in the first octet
	if len(p.TPDU) == 0 || p.TPDU[0]&0x03 != 0x01 {
		return ErrNotSubmit
	}
	return nil
}

// DecodePDU decodes a PDU mode hex PDU, as delivered in +CMT and +CDS
// indications.
func DecodePDU(pdu string) (*pdumode.PDU, error) {
	p, err := pdumode.UnmarshalHexString(pdu)
	if err != nil {
		return nil, errors.Wrapf(ErrInvalidPDU, "%v", err)
	}
	return p, nil
}

// EncodeSubmit encodes the message to the number as a set of SMS-SUBMIT
// TPDUs in hex form, one per segment.
func EncodeSubmit(number, msg string) ([]string, error) {
	tpdus, err := sms.Encode([]byte(msg), sms.To(number))
	if err != nil {
		return nil, err
	}
	pdus := make([]string, 0, len(tpdus))
	for _, t := range tpdus {
		b, err := t.MarshalBinary()
		if err != nil {
			return nil, err
		}
		pdus = append(pdus, strings.ToUpper(hex.EncodeToString(b)))
	}
	return pdus, nil
}
