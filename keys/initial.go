// Copyright (c) 2025, Grigory Buteyko aka Hrissan
// Licensed under the MIT License. See LICENSE for details.

package keys

import (
	"github.com/hrissan/quicprotect/ciphersuite"
	"github.com/hrissan/quicprotect/constants"
	"github.com/hrissan/quicprotect/quicerrors"
)

const Version1 = 0x00000001

// [rfc9001:5.2] initial salt for QUIC version 1
var initialSaltV1 = []byte{
	0x38, 0x76, 0x2c, 0xf7, 0xf5, 0x59, 0x34, 0xb3, 0x4d, 0x17,
	0x9a, 0xe6, 0xa4, 0xc8, 0x0c, 0xad, 0xcc, 0xbb, 0x7f, 0x0a,
}

// InitialSuite is fixed regardless of what the handshake later
// negotiates [rfc9001:5.2]
func InitialSuite() ciphersuite.Suite {
	return ciphersuite.GetSuite(ciphersuite.TLS_AES_128_GCM_SHA256)
}

// DeriveInitialKeys derives both directions of Initial packet protection
// from the client's original Destination Connection ID. Both endpoints
// arrive at the same pair, which is the interoperability contract pinned
// by the [rfc9001:A.1] vectors. QUIC version 2 changes the salt and the
// per-version labels and is not supported.
func DeriveInitialKeys(destConnID []byte, version uint32) (client Keys, server Keys, err error) {
	if version != Version1 {
		return Keys{}, Keys{}, quicerrors.ErrUnsupportedVersion
	}
	suite := InitialSuite()
	initialSecret := ciphersuite.ExtractSecret(suite, initialSaltV1, destConnID)
	clientSecret, err := deriveSecret(suite, initialSecret.GetValue(), "client in", nil, constants.InitialSecretLength)
	if err != nil {
		return Keys{}, Keys{}, err
	}
	serverSecret, err := deriveSecret(suite, initialSecret.GetValue(), "server in", nil, constants.InitialSecretLength)
	if err != nil {
		return Keys{}, Keys{}, err
	}
	if client, err = DeriveKeys(suite, clientSecret.GetValue()); err != nil {
		return Keys{}, Keys{}, err
	}
	if server, err = DeriveKeys(suite, serverSecret.GetValue()); err != nil {
		return Keys{}, Keys{}, err
	}
	return client, server, nil
}
