// Copyright (c) 2025, Grigory Buteyko aka Hrissan
// Licensed under the MIT License. See LICENSE for details.

package ciphersuite

import (
	"encoding/binary"
	"hash"
	"math"

	"github.com/hrissan/quicprotect/constants"
	"github.com/hrissan/quicprotect/quicerrors"
	"github.com/hrissan/quicprotect/safecast"
)

// HKDF per [rfc5869], with the TLS 1.3 label framing of [rfc8446:7.1].
// All functions take ready HMAC instances, so key schedule code controls
// allocations.

// TODO - remove allocations inside hmac.Reset path

func HKDFExtract(hmacSalt hash.Hash, keymaterial []byte) (result Hash) {
	hmacSalt.Reset()
	hmacSalt.Write(keymaterial)
	result.SetSum(hmacSalt)
	return
}

// ExtractSecret runs HKDF-Extract with an explicit salt. An empty salt is
// replaced by a zero-filled salt of the hash output length [rfc5869:2.2]
func ExtractSecret(suite Suite, salt []byte, keymaterial []byte) Hash {
	if len(salt) == 0 {
		var zeros [constants.MaxHashLength]byte
		salt = zeros[:suite.HashLen()]
	}
	return HKDFExtract(suite.NewHMAC(salt), keymaterial)
}

func HKDFExpand(dst []byte, hmacSecret hash.Hash, info []byte) error {
	if len(dst) > 255*hmacSecret.Size() { // [rfc5869:2.3]
		return quicerrors.ErrHKDFExpandTooLong
	}
	offset := 0
	hmacSecret.Reset()
	var ha Hash
	for i := 1; offset < len(dst); i++ {
		hmacSecret.Write(info)
		hmacSecret.Write([]byte{byte(i)}) // counter fits a byte due to check above
		ha.SetSum(hmacSecret)
		offset += copy(dst[offset:], ha.GetValue())
		hmacSecret.Reset()
		hmacSecret.Write(ha.GetValue())
	}
	return nil
}

const labelPrefix = "tls13 " // QUIC reuses the TLS 1.3 schedule [rfc9001:5.1]

func HKDFExpandLabel(dst []byte, hmacSecret hash.Hash, label string, context []byte) error {
	if len(dst) > math.MaxUint16 {
		panic("invalid expand label result length")
	}
	hkdflabel := make([]byte, 0, 128)
	hkdflabel = binary.BigEndian.AppendUint16(hkdflabel, uint16(len(dst))) // safe due to check above
	hkdflabel = append(hkdflabel, safecast.Cast[byte](len(label)+len(labelPrefix)))
	hkdflabel = append(hkdflabel, labelPrefix...)
	hkdflabel = append(hkdflabel, label...)
	hkdflabel = append(hkdflabel, safecast.Cast[byte](len(context)))
	hkdflabel = append(hkdflabel, context...)
	return HKDFExpand(dst, hmacSecret, hkdflabel)
}
