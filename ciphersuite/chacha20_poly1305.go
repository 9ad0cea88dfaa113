// Copyright (c) 2025, Grigory Buteyko aka Hrissan
// Licensed under the MIT License. See LICENSE for details.

package ciphersuite

import (
	"crypto/cipher"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/binary"
	"hash"
	"math"

	"github.com/hrissan/quicprotect/constants"
	"github.com/hrissan/quicprotect/quicerrors"
	"golang.org/x/crypto/chacha20"
	"golang.org/x/crypto/chacha20poly1305"
)

// The library AEAD implements the full [rfc8439:2.8] construction,
// including the 8+8 byte little-endian length block in the Poly1305 input
// and constant-time seal comparison.
func newChaCha20Poly1305(key []byte) (cipher.AEAD, error) {
	aead, err := chacha20poly1305.New(key)
	if err != nil {
		return nil, quicerrors.WrapBackend("chacha20poly1305.New", err)
	}
	return aead, nil
}

// Header protection mask is the first 5 keystream bytes with the sample
// split into block counter and nonce [rfc9001:5.4.4]
type chachaHeaderProtection struct {
	key [chacha20.KeySize]byte
}

func newChaChaHeaderProtection(hpKey []byte) (HeaderProtection, error) {
	if len(hpKey) != chacha20.KeySize {
		return nil, quicerrors.ErrUnsupportedAlgorithm
	}
	p := &chachaHeaderProtection{}
	copy(p.key[:], hpKey)
	return p, nil
}

func (p *chachaHeaderProtection) Mask(sample []byte) ([constants.HeaderProtectionMaskSize]byte, error) {
	var mask [constants.HeaderProtectionMaskSize]byte
	if len(sample) < constants.HeaderProtectionSampleSize {
		return mask, quicerrors.WarnPacketTooShortForSample
	}
	counter := binary.LittleEndian.Uint32(sample[:4])
	nonce := sample[4:constants.HeaderProtectionSampleSize]
	ci, err := chacha20.NewUnauthenticatedCipher(p.key[:], nonce)
	if err != nil {
		return mask, quicerrors.WrapBackend("chacha20.NewUnauthenticatedCipher", err)
	}
	ci.SetCounter(counter)
	ci.XORKeyStream(mask[:], mask[:])
	return mask, nil
}

type impl_TLS_CHACHA20_POLY1305_SHA256 struct {
}

func (s *impl_TLS_CHACHA20_POLY1305_SHA256) ID() ID {
	return TLS_CHACHA20_POLY1305_SHA256
}

func (s *impl_TLS_CHACHA20_POLY1305_SHA256) Name() string {
	return "CHACHA20-POLY1305"
}

func (s *impl_TLS_CHACHA20_POLY1305_SHA256) KeyLen() int {
	return chacha20poly1305.KeySize
}

func (s *impl_TLS_CHACHA20_POLY1305_SHA256) HashLen() int {
	return sha256.Size
}

func (s *impl_TLS_CHACHA20_POLY1305_SHA256) ProtectionLimit() uint64 {
	// [rfc9001:6.6] the packet number would run out first
	return math.MaxUint64
}

func (s *impl_TLS_CHACHA20_POLY1305_SHA256) NewHasher() hash.Hash {
	return sha256.New()
}

func (s *impl_TLS_CHACHA20_POLY1305_SHA256) NewHMAC(key []byte) hash.Hash {
	return hmac.New(sha256.New, key)
}

func (s *impl_TLS_CHACHA20_POLY1305_SHA256) NewAEAD(key []byte) (cipher.AEAD, error) {
	return newChaCha20Poly1305(key)
}

func (s *impl_TLS_CHACHA20_POLY1305_SHA256) NewHeaderProtection(hpKey []byte) (HeaderProtection, error) {
	return newChaChaHeaderProtection(hpKey)
}
