// Copyright (c) 2025, Grigory Buteyko aka Hrissan
// Licensed under the MIT License. See LICENSE for details.

package keys

import (
	"github.com/hrissan/quicprotect/ciphersuite"
)

func deriveSecret(suite ciphersuite.Suite, secret []byte, label string, context []byte, length int) (result ciphersuite.Hash, err error) {
	hmacSecret := suite.NewHMAC(secret)
	result.SetZero(length)
	if err = ciphersuite.HKDFExpandLabel(result.GetValue(), hmacSecret, label, context); err != nil {
		return ciphersuite.Hash{}, err
	}
	return result, nil
}

func deriveTrafficPair(suite ciphersuite.Suite, secret []byte, clientLabel string, serverLabel string, transcriptHash []byte) (client Keys, server Keys, err error) {
	clientSecret, err := deriveSecret(suite, secret, clientLabel, transcriptHash, suite.HashLen())
	if err != nil {
		return Keys{}, Keys{}, err
	}
	serverSecret, err := deriveSecret(suite, secret, serverLabel, transcriptHash, suite.HashLen())
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

// DeriveHandshakeKeys derives both directions of Handshake packet
// protection from the TLS handshake secret and the transcript hash up to
// ServerHello [rfc8446:7.1]
func DeriveHandshakeKeys(suite ciphersuite.Suite, handshakeSecret []byte, transcriptHash []byte) (client Keys, server Keys, err error) {
	return deriveTrafficPair(suite, handshakeSecret, "c hs traffic", "s hs traffic", transcriptHash)
}

// DeriveApplicationKeys derives both directions of 1-RTT packet
// protection from the TLS master secret and the transcript hash up to
// server Finished [rfc8446:7.1]
func DeriveApplicationKeys(suite ciphersuite.Suite, masterSecret []byte, transcriptHash []byte) (client Keys, server Keys, err error) {
	return deriveTrafficPair(suite, masterSecret, "c ap traffic", "s ap traffic", transcriptHash)
}
