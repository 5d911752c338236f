// SPDX-License-Identifier: MIT
//
// Copyright © 2018 Kent Gibson <warthog618@gmail.com>.

// Package tech provides the mappings between the network mode indicies used
// by the telephony framework, the technology masks used by the modem, and the
// radio access family bitmaps.
package tech

// Mask is a set of modem technologies.
//
// The same bits are used in each byte of a priority encoded Preference, and
// a single technology is reported by the modem as the index of its bit.
type Mask uint32

// Modem technologies.
const (
	GSM Mask = 1 << iota
	WCDMA
	CDMA
	EVDO
	TDSCDMA
	LTE
	NR
)

// FromIndex returns the Mask for a technology reported by the modem as a bit
// index.
func FromIndex(idx int) Mask {
	if idx < 0 || idx > 31 {
		return 0
	}
	return 1 << uint(idx)
}

// Preference is a priority encoded set of technologies.
//
// Each byte is a Mask, and technologies in higher order bytes are preferred
// over those in lower order bytes.
type Preference int32

// RadioTech identifies a radio access technology.
type RadioTech int

// Radio access technologies.
const (
	Unknown RadioTech = iota
	GPRS
	EDGE
	UMTS
	IS95A
	IS95B
	OneXRTT
	EVDO0
	EVDOA
	HSDPA
	HSUPA
	HSPA
	EVDOB
	EHRPD
	RadioLTE
	HSPAP
	RadioGSM
	TDSCDMARadio
	IWLAN
	LTECA
	RadioNR
)

// Is3GPP2 returns true if the technology is from the CDMA family.
func (r RadioTech) Is3GPP2() bool {
	switch r {
	case IS95A, IS95B, OneXRTT, EVDO0, EVDOA, EVDOB, EHRPD:
		return true
	}
	return false
}

// RAF is a bitmap of radio access technologies, with bit n set for RadioTech n.
type RAF uint32

// Bit returns the RAF bit corresponding to the RadioTech.
func (r RadioTech) Bit() RAF {
	return 1 << uint(r)
}

// Radio access families.
const (
	RAFGSM     = RAF(1<<RadioGSM | 1<<GPRS | 1<<EDGE)
	RAFCDMA    = RAF(1<<IS95A | 1<<IS95B | 1<<OneXRTT)
	RAFEVDO    = RAF(1<<EVDO0 | 1<<EVDOA | 1<<EVDOB | 1<<EHRPD)
	RAFWCDMA   = RAF(1<<HSUPA | 1<<HSDPA | 1<<HSPA | 1<<HSPAP | 1<<UMTS)
	RAFLTE     = RAF(1<<RadioLTE | 1<<LTECA)
	RAFNR      = RAF(1 << RadioNR)
	RAFTDSCDMA = RAF(1 << TDSCDMARadio)
)

// FromModemMask returns the RadioTech corresponding to a single modem
// technology.
//
// Returns false if the mask does not correspond to a single known technology.
func FromModemMask(m Mask) (RadioTech, bool) {
	switch m {
	case CDMA:
		return OneXRTT, true
	case EVDO:
		return EVDOA, true
	case GSM:
		return GPRS, true
	case WCDMA:
		return HSPA, true
	case LTE:
		return RadioLTE, true
	case NR:
		return RadioNR, true
	}
	return Unknown, false
}

// FromAcT maps the access technology field of a registration response to a
// RadioTech.
func FromAcT(act int) RadioTech {
	switch act {
	case 0:
		return GPRS
	case 2:
		return UMTS
	case 3:
		return EDGE
	case 4:
		return HSDPA
	case 5:
		return HSUPA
	case 6:
		return HSPA
	case 7:
		return RadioLTE
	case 11, 12, 13:
		return RadioNR
	case 15:
		return HSPAP
	case 16:
		return LTECA
	}
	return Unknown
}

// AcT returns the access technology field used in +COPS for the RadioTech.
//
// Returns false if the technology has no 3GPP access technology.
func (r RadioTech) AcT() (int, bool) {
	switch r {
	case GPRS, RadioGSM:
		return 0, true
	case UMTS:
		return 2, true
	case EDGE:
		return 3, true
	case HSDPA:
		return 4, true
	case HSUPA:
		return 5, true
	case HSPA, HSPAP:
		return 6, true
	case RadioLTE, LTECA:
		return 7, true
	case RadioNR:
		return 12, true
	}
	return 0, false
}

type mode struct {
	modem  Mask
	pref   Preference
	bitmap RAF
}

// modes is indexed by network mode.
var modes = []mode{
	{GSM | WCDMA, Preference(GSM | WCDMA<<8), RAFWCDMA | RAFGSM},
	{GSM, Preference(GSM), RAFGSM},
	{WCDMA, Preference(WCDMA), RAFWCDMA},
	{GSM | WCDMA, Preference(GSM | WCDMA), RAFWCDMA | RAFGSM},
	{CDMA | EVDO, Preference(CDMA | EVDO), RAFCDMA | RAFEVDO},
	{CDMA, Preference(CDMA), RAFCDMA},
	{EVDO, Preference(EVDO), RAFEVDO},
	{GSM | WCDMA | CDMA | EVDO, Preference(GSM | WCDMA | CDMA | EVDO), RAFGSM | RAFWCDMA | RAFCDMA | RAFEVDO},
	{LTE | CDMA | EVDO, Preference(LTE | CDMA | EVDO), RAFLTE | RAFCDMA | RAFEVDO},
	{LTE | GSM | WCDMA, Preference(LTE | GSM | WCDMA), RAFLTE | RAFGSM | RAFWCDMA},
	{LTE | CDMA | EVDO | GSM | WCDMA, Preference(LTE | CDMA | EVDO | GSM | WCDMA), RAFLTE | RAFCDMA | RAFEVDO | RAFGSM | RAFWCDMA},
	{LTE, Preference(LTE), RAFLTE},
	{LTE | WCDMA, Preference(LTE | WCDMA), RAFLTE | RAFWCDMA},
	{TDSCDMA, Preference(TDSCDMA), RAFTDSCDMA},
	{WCDMA | TDSCDMA, Preference(WCDMA | TDSCDMA), RAFTDSCDMA | RAFWCDMA},
	{LTE | TDSCDMA, Preference(LTE | TDSCDMA), RAFLTE | RAFTDSCDMA},
	{TDSCDMA | GSM, Preference(TDSCDMA | GSM), RAFTDSCDMA | RAFGSM},
	{LTE | TDSCDMA | GSM, Preference(LTE | TDSCDMA | GSM), RAFLTE | RAFTDSCDMA | RAFGSM},
	{WCDMA | TDSCDMA | GSM, Preference(WCDMA | TDSCDMA | GSM), RAFTDSCDMA | RAFGSM | RAFWCDMA},
	{LTE | WCDMA | TDSCDMA, Preference(LTE | WCDMA | TDSCDMA), RAFLTE | RAFTDSCDMA | RAFWCDMA},
	{LTE | WCDMA | TDSCDMA | GSM, Preference(LTE | WCDMA | TDSCDMA | GSM), RAFLTE | RAFTDSCDMA | RAFGSM | RAFWCDMA},
	{EVDO | CDMA | WCDMA | TDSCDMA | GSM, Preference(EVDO | CDMA | WCDMA | TDSCDMA | GSM), RAFTDSCDMA | RAFCDMA | RAFEVDO | RAFGSM | RAFWCDMA},
	{LTE | TDSCDMA | CDMA | EVDO | WCDMA | GSM, Preference(LTE | TDSCDMA | CDMA | EVDO | WCDMA | GSM), RAFLTE | RAFTDSCDMA | RAFCDMA | RAFEVDO | RAFGSM | RAFWCDMA},
	{NR, Preference(NR), RAFNR},
	{NR | LTE, Preference(NR | LTE), RAFNR | RAFLTE},
	{NR | LTE | CDMA | EVDO, Preference(NR | LTE | CDMA | EVDO), RAFNR | RAFLTE | RAFCDMA | RAFEVDO},
	{NR | LTE | WCDMA | GSM, Preference(NR | LTE | WCDMA | GSM), RAFNR | RAFLTE | RAFGSM | RAFWCDMA},
	{NR | LTE | CDMA | EVDO | WCDMA | GSM, Preference(NR | LTE | CDMA | EVDO | WCDMA | GSM), RAFNR | RAFLTE | RAFCDMA | RAFEVDO | RAFGSM | RAFWCDMA},
	{NR | LTE | WCDMA, Preference(NR | LTE | WCDMA), RAFNR | RAFLTE | RAFWCDMA},
	{NR | LTE | TDSCDMA, Preference(NR | LTE | TDSCDMA), RAFNR | RAFLTE | RAFTDSCDMA},
	{NR | LTE | TDSCDMA | GSM, Preference(NR | LTE | TDSCDMA | GSM), RAFNR | RAFLTE | RAFTDSCDMA | RAFGSM},
	{NR | LTE | TDSCDMA | WCDMA, Preference(NR | LTE | TDSCDMA | WCDMA), RAFNR | RAFLTE | RAFTDSCDMA | RAFWCDMA},
	{NR | LTE | TDSCDMA | WCDMA | GSM, Preference(NR | LTE | TDSCDMA | WCDMA | GSM), RAFNR | RAFLTE | RAFTDSCDMA | RAFGSM | RAFWCDMA},
	{NR | LTE | TDSCDMA | CDMA | EVDO | WCDMA | GSM, Preference(NR | LTE | TDSCDMA | CDMA | EVDO | WCDMA | GSM), RAFNR | RAFLTE | RAFTDSCDMA | RAFCDMA | RAFEVDO | RAFGSM | RAFWCDMA},
}

const (
	// DefaultMode is the network mode assumed for an unknown bitmap.
	DefaultMode = 9

	// DefaultPreference is the preference assumed for an unknown bitmap.
	DefaultPreference = Preference(LTE | GSM | WCDMA)

	// DefaultBitmap is the bitmap assumed for an unknown preference.
	DefaultBitmap = RAFLTE | RAFGSM | RAFWCDMA
)

// NumModes is the number of known network modes.
func NumModes() int {
	return len(modes)
}

// ModemMask returns the technologies required by the network mode.
//
// Returns false if the mode is out of range.
func ModemMask(nm int) (Mask, bool) {
	if nm < 0 || nm >= len(modes) {
		return 0, false
	}
	return modes[nm].modem, true
}

// PreferenceFromMode returns the priority encoded preference for the
// network mode.
//
// Returns false if the mode is out of range.
func PreferenceFromMode(nm int) (Preference, bool) {
	if nm < 0 || nm >= len(modes) {
		return 0, false
	}
	return modes[nm].pref, true
}

// ModeFromPreference returns the first network mode with the given
// preference.
//
// Returns false if the preference is not in the table.
func ModeFromPreference(p Preference) (int, bool) {
	for i, m := range modes {
		if m.pref == p {
			return i, true
		}
	}
	return 0, false
}

// ModePossible returns true if the supported technologies cover all those
// required by the network mode.
func ModePossible(supported Mask, nm int) bool {
	m, ok := ModemMask(nm)
	if !ok {
		return false
	}
	return m&supported == m
}

// PreferenceFromBitmap returns the preference and network mode of the first
// entry matching the bitmap.
//
// An unknown bitmap returns the DefaultPreference and DefaultMode.
func PreferenceFromBitmap(b RAF) (Preference, int) {
	for i, m := range modes {
		if m.bitmap == b {
			return m.pref, i
		}
	}
	return DefaultPreference, DefaultMode
}

// BitmapFromPreference returns the bitmap of the first entry matching the
// preference.
//
// An unknown preference returns the DefaultBitmap.
func BitmapFromPreference(p Preference) RAF {
	for _, m := range modes {
		if m.pref == p {
			return m.bitmap
		}
	}
	return DefaultBitmap
}
