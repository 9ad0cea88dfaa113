// Copyright (c) 2025, Grigory Buteyko aka Hrissan
// Licensed under the MIT License. See LICENSE for details.

package keys

import (
	"encoding/binary"

	"github.com/hrissan/quicprotect/ciphersuite"
	"github.com/hrissan/quicprotect/constants"
)

// Keys is the packet protection material for one direction at one
// encryption level. Immutable once derived; a level transition replaces
// the whole value, never patches it.
type Keys struct {
	Key ciphersuite.Hash
	IV  [constants.NonceSize]byte
	HP  ciphersuite.Hash
}

// Zeroize wipes the material. Used when an encryption level is retired,
// a retired key must never be used again [rfc9001:4.9]
func (k *Keys) Zeroize() {
	*k = Keys{}
}

// DeriveKeys expands a traffic secret into packet protection material
// [rfc9001:5.1]. Key and header protection key lengths come from the
// suite, never from the hash.
func DeriveKeys(suite ciphersuite.Suite, trafficSecret []byte) (Keys, error) {
	hmacSecret := suite.NewHMAC(trafficSecret)
	var k Keys
	k.Key.SetZero(suite.KeyLen())
	if err := ciphersuite.HKDFExpandLabel(k.Key.GetValue(), hmacSecret, "quic key", nil); err != nil {
		return Keys{}, err
	}
	if err := ciphersuite.HKDFExpandLabel(k.IV[:], hmacSecret, "quic iv", nil); err != nil {
		return Keys{}, err
	}
	k.HP.SetZero(suite.KeyLen())
	if err := ciphersuite.HKDFExpandLabel(k.HP.GetValue(), hmacSecret, "quic hp", nil); err != nil {
		return Keys{}, err
	}
	return k, nil
}

// panic if len(iv) is < 8
func FillIVSequence(iv []byte, seq uint64) {
	maskBytes := iv[len(iv)-8:]
	mask := binary.BigEndian.Uint64(maskBytes)
	binary.BigEndian.PutUint64(maskBytes, seq^mask)
}

// Nonce is the write IV with the packet number XORed into the low 8
// bytes, big-endian [rfc9001:5.3]. Never stored, recomputed per packet.
func Nonce(iv [constants.NonceSize]byte, packetNumber uint64) [constants.NonceSize]byte {
	FillIVSequence(iv[:], packetNumber) // iv is a copy, otherwise disaster
	return iv
}
