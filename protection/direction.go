// Copyright (c) 2025, Grigory Buteyko aka Hrissan
// Licensed under the MIT License. See LICENSE for details.

package protection

import (
	"crypto/cipher"

	"github.com/hrissan/quicprotect/ciphersuite"
	"github.com/hrissan/quicprotect/constants"
	"github.com/hrissan/quicprotect/keys"
	"github.com/hrissan/quicprotect/quicerrors"
)

// DirectionKeys is the ready-to-use protection state for one direction at
// one encryption level. Read-only after construction, safe for concurrent
// Seal/Open of different packets.
type DirectionKeys struct {
	aead cipher.AEAD
	iv   [constants.NonceSize]byte
	hp   ciphersuite.HeaderProtection
}

func NewDirectionKeys(suite ciphersuite.Suite, k keys.Keys) (DirectionKeys, error) {
	aead, err := suite.NewAEAD(k.Key.GetValue())
	if err != nil {
		return DirectionKeys{}, err
	}
	hp, err := suite.NewHeaderProtection(k.HP.GetValue())
	if err != nil {
		return DirectionKeys{}, err
	}
	return DirectionKeys{aead: aead, iv: k.IV, hp: hp}, nil
}

// Seal encrypts plaintext with the header as additional data and appends
// ciphertext plus the 16-byte seal to dst. The caller owns packet number
// uniqueness, this layer only mixes it into the nonce.
func (d *DirectionKeys) Seal(dst []byte, packetNumber uint64, plaintext []byte, header []byte) []byte {
	nonce := keys.Nonce(d.iv, packetNumber)
	return d.aead.Seal(dst, nonce[:], plaintext, header)
}

// Open authenticates and decrypts sealed, appending plaintext to dst. Any
// failure collapses into the single static deprotection error, the caller
// must silently drop the packet [rfc9001:5.3]
func (d *DirectionKeys) Open(dst []byte, packetNumber uint64, sealed []byte, header []byte) ([]byte, error) {
	if len(sealed) < constants.AEADSealSize {
		return nil, quicerrors.WarnPacketTooShortForOpen
	}
	nonce := keys.Nonce(d.iv, packetNumber)
	decrypted, err := d.aead.Open(dst, nonce[:], sealed, header)
	if err != nil {
		return nil, quicerrors.WarnAEADDeprotectionFailed
	}
	return decrypted, nil
}

func (d *DirectionKeys) HeaderProtection() ciphersuite.HeaderProtection {
	return d.hp
}
