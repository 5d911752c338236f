// SPDX-License-Identifier: MIT
//
// Copyright © 2018 Kent Gibson <warthog618@gmail.com>.

// Package info provides utility functions for manipulating info lines returned
// by the modem in response to AT commands.
package info

import (
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

// HasPrefix returns true if the line begins with the info prefix for the command.
func HasPrefix(line, cmd string) bool {
	return strings.HasPrefix(line, cmd+":")
}

// TrimPrefix removes the command  prefix, if any, and any intervening space
// from the info line.
func TrimPrefix(line, cmd string) string {
	return strings.TrimLeft(strings.TrimPrefix(line, cmd+":"), " ")
}

var (
	// ErrNoPrefix indicates the line has no "<cmd>:" prefix to start from.
	ErrNoPrefix = errors.New("no prefix")

	// ErrNoToken indicates the line has been exhausted.
	ErrNoToken = errors.New("no token")

	// ErrInvalidToken indicates the token does not hold a value of the
	// requested type.
	ErrInvalidToken = errors.New("invalid token")
)

// Tokenizer is a cursor over the comma separated fields of an info line.
//
// Fields may be quoted, in which case they extend to the closing quote and
// may contain commas.
type Tokenizer struct {
	rest string
	// set once the final field has been taken.
	done bool
}

// NewTokenizer creates a Tokenizer positioned at the start of the line.
func NewTokenizer(line string) *Tokenizer {
	return &Tokenizer{rest: line}
}

// Tokenize creates a Tokenizer positioned after the info prefix of the line.
func Tokenize(line string) (*Tokenizer, error) {
	t := NewTokenizer(line)
	if err := t.Start(); err != nil {
		return nil, err
	}
	return t, nil
}

// Start skips the cursor past the first ':' in the line.
func (t *Tokenizer) Start() error {
	idx := strings.IndexByte(t.rest, ':')
	if idx == -1 {
		return ErrNoPrefix
	}
	t.rest = t.rest[idx+1:]
	return nil
}

// HasMore returns true if there are unread characters remaining.
func (t *Tokenizer) HasMore() bool {
	return !t.done && len(t.rest) > 0
}

// Rest returns the unread remainder of the line, with leading space removed,
// without advancing the cursor.
func (t *Tokenizer) Rest() string {
	if t.done {
		return ""
	}
	return strings.TrimLeft(t.rest, " \t")
}

// Next returns the next field as a raw string.
func (t *Tokenizer) Next() (string, error) {
	if t.done {
		return "", ErrNoToken
	}
	t.rest = strings.TrimLeft(t.rest, " \t")
	if strings.HasPrefix(t.rest, `"`) {
		s := t.rest[1:]
		idx := strings.IndexByte(s, '"')
		if idx == -1 {
			t.rest = ""
			t.done = true
			return s, nil
		}
		tok := s[:idx]
		t.rest = s[idx+1:]
		t.SkipComma()
		return tok, nil
	}
	idx := strings.IndexByte(t.rest, ',')
	if idx == -1 {
		tok := t.rest
		t.rest = ""
		t.done = true
		return tok, nil
	}
	tok := t.rest[:idx]
	t.rest = t.rest[idx+1:]
	return tok, nil
}

// NextString returns the next field as a string.
//
// An empty field returns an empty string.
func (t *Tokenizer) NextString() (string, error) {
	return t.Next()
}

// NextInt returns the next field as a decimal integer.
func (t *Tokenizer) NextInt() (int, error) {
	return t.nextInt(10)
}

// NextHexInt returns the next field as a hexadecimal integer.
func (t *Tokenizer) NextHexInt() (int, error) {
	return t.nextInt(16)
}

// NextBool returns the next field as a boolean, which must be 0 or 1.
func (t *Tokenizer) NextBool() (bool, error) {
	v, err := t.NextInt()
	if err != nil {
		return false, err
	}
	switch v {
	case 0:
		return false, nil
	case 1:
		return true, nil
	}
	return false, errors.Wrapf(ErrInvalidToken, "bool %d", v)
}

// Skip discards the next field.
func (t *Tokenizer) Skip() error {
	_, err := t.Next()
	return err
}

// SkipComma advances the cursor past the next comma, or to the end of the
// line if there is none.
func (t *Tokenizer) SkipComma() {
	idx := strings.IndexByte(t.rest, ',')
	if idx == -1 {
		t.rest = ""
		return
	}
	t.rest = t.rest[idx+1:]
}

func (t *Tokenizer) nextInt(base int) (int, error) {
	tok, err := t.Next()
	if err != nil {
		return 0, err
	}
	return parseInt(tok, base)
}

// parseInt parses the leading integer in tok, ignoring any trailing
// characters.
func parseInt(tok string, base int) (int, error) {
	s := strings.TrimLeft(tok, " \t")
	end := 0
	if end < len(s) && (s[end] == '-' || s[end] == '+') {
		end++
	}
	start := end
	for end < len(s) && isDigit(s[end], base) {
		end++
	}
	if end == start {
		return 0, errors.Wrapf(ErrInvalidToken, "'%s'", tok)
	}
	v, err := strconv.ParseInt(s[:end], base, 64)
	if err != nil {
		return 0, errors.Wrapf(ErrInvalidToken, "'%s'", tok)
	}
	return int(v), nil
}

func isDigit(c byte, base int) bool {
	switch {
	case c >= '0' && c <= '9':
		return true
	case base == 16 && c >= 'a' && c <= 'f':
		return true
	case base == 16 && c >= 'A' && c <= 'F':
		return true
	}
	return false
}
