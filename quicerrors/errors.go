// Copyright (c) 2025, Grigory Buteyko aka Hrissan
// Licensed under the MIT License. See LICENSE for details.

package quicerrors

import (
	"fmt"
)

// we do not allocate on the error returning path,
// so all errors below are completely static

type Error struct {
	fatal bool
	code  int
	text  string
}

func (e *Error) Error() string {
	if e.fatal {
		return fmt.Sprintf("quicprotect (fatal): %d %s", e.code, e.text)
	}
	return fmt.Sprintf("quicprotect (warning): %d %s", e.code, e.text)
}

// fatal errors must tear down the connection,
// warnings mean "drop the packet and continue"
func (e *Error) Fatal() bool {
	return e.fatal
}

func NewFatal(code int, text string) error {
	return &Error{
		fatal: true,
		code:  code,
		text:  text,
	}
}

func NewWarning(code int, text string) error {
	return &Error{
		fatal: false,
		code:  code,
		text:  text,
	}
}

// The single deprotection failure. The reason (ciphertext, seal or header
// tampering) must not be distinguishable by an on-path observer.
var WarnAEADDeprotectionFailed = NewWarning(-100, "aead deprotection failed")

var WarnPacketTooShortForSample = NewWarning(-101, "packet too short for header protection sample")
var WarnPacketTooShortForOpen = NewWarning(-102, "packet too short to contain an aead seal")
var WarnPacketHeaderParsing = NewWarning(-103, "packet header failed to parse")
var WarnNotInitialPacket = NewWarning(-104, "packet is not a long header Initial packet")

var ErrHKDFExpandTooLong = NewFatal(-200, "hkdf expand output exceeds 255 * hash length")
var ErrUnsupportedAlgorithm = NewFatal(-201, "aead algorithm not supported")
var ErrUnsupportedVersion = NewFatal(-202, "quic version not supported")
var ErrKeysDiscarded = NewFatal(-203, "packet protection keys were discarded and must never be used again")
var ErrPacketNumberLength = NewFatal(-204, "packet number length must be 1..4 bytes")

// BackendError wraps an unexpected failure of the underlying crypto
// library (bad key length and such). This is a local misconfiguration,
// not a remote attack, so it is loud and fatal for the connection.
type BackendError struct {
	Op  string
	Err error
}

func (e *BackendError) Error() string {
	return "quicprotect (backend): " + e.Op + ": " + e.Err.Error()
}

func (e *BackendError) Unwrap() error {
	return e.Err
}

func WrapBackend(op string, err error) error {
	return &BackendError{Op: op, Err: err}
}
