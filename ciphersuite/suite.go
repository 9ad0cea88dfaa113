// Copyright (c) 2025, Grigory Buteyko aka Hrissan
// Licensed under the MIT License. See LICENSE for details.

package ciphersuite

import (
	"crypto/cipher"
	"hash"

	"github.com/hrissan/quicprotect/constants"
	"github.com/hrissan/quicprotect/quicerrors"
)

// HeaderProtection turns a 16-byte ciphertext sample into the 5-byte
// header protection mask [rfc9001:5.4.1]. Implementations keep no mutable
// state, so one instance may be shared by concurrent packet pipelines.
type HeaderProtection interface {
	Mask(sample []byte) ([constants.HeaderProtectionMaskSize]byte, error)
}

type Suite interface {
	ID() ID
	// AEAD algorithm name as selected during negotiation, e.g. "AES-128-GCM"
	Name() string
	// length of both the packet protection key and the header protection key
	KeyLen() int
	HashLen() int
	// when we protect this many packets, keys must be rotated, and we are
	// not the layer that rotates them [rfc9001:6.6]
	ProtectionLimit() uint64
	// used for transcript hash and such. Unfortunately, allocates.
	NewHasher() hash.Hash
	// used for HKDF. Unfortunately, allocates.
	NewHMAC(key []byte) hash.Hash
	NewAEAD(key []byte) (cipher.AEAD, error)
	NewHeaderProtection(hpKey []byte) (HeaderProtection, error)
}

type ID uint16

const (
	TLS_AES_128_GCM_SHA256       ID = 0x1301
	TLS_AES_256_GCM_SHA384       ID = 0x1302
	TLS_CHACHA20_POLY1305_SHA256 ID = 0x1303
)

var suite_TLS_AES_128_GCM_SHA256 Suite = &impl_TLS_AES_128_GCM_SHA256{}
var suite_TLS_AES_256_GCM_SHA384 Suite = &impl_TLS_AES_256_GCM_SHA384{}
var suite_TLS_CHACHA20_POLY1305_SHA256 Suite = &impl_TLS_CHACHA20_POLY1305_SHA256{}

// for suite IDs coming from finished negotiation, where an unknown ID is
// a caller bug, not a runtime condition
func GetSuite(num ID) Suite {
	switch num {
	case TLS_AES_128_GCM_SHA256:
		return suite_TLS_AES_128_GCM_SHA256
	case TLS_AES_256_GCM_SHA384:
		return suite_TLS_AES_256_GCM_SHA384
	case TLS_CHACHA20_POLY1305_SHA256:
		return suite_TLS_CHACHA20_POLY1305_SHA256
	}
	panic("unsupported ciphersuite ID")
}

// for algorithm names coming from configuration
func GetSuiteByName(name string) (Suite, error) {
	switch name {
	case suite_TLS_AES_128_GCM_SHA256.Name():
		return suite_TLS_AES_128_GCM_SHA256, nil
	case suite_TLS_AES_256_GCM_SHA384.Name():
		return suite_TLS_AES_256_GCM_SHA384, nil
	case suite_TLS_CHACHA20_POLY1305_SHA256.Name():
		return suite_TLS_CHACHA20_POLY1305_SHA256, nil
	}
	return nil, quicerrors.ErrUnsupportedAlgorithm
}
