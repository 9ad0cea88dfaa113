// Copyright (c) 2025, Grigory Buteyko aka Hrissan
// Licensed under the MIT License. See LICENSE for details.

package ciphersuite

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/hmac"
	"crypto/sha256"
	"crypto/sha512"
	"hash"

	"github.com/hrissan/quicprotect/constants"
	"github.com/hrissan/quicprotect/quicerrors"
)

func newAESGCM(key []byte) (cipher.AEAD, error) {
	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, quicerrors.WrapBackend("aes.NewCipher", err)
	}
	// GCM nonce length is set explicitly, QUIC always uses 12 [rfc9001:5.3]
	aead, err := cipher.NewGCMWithNonceSize(block, constants.NonceSize)
	if err != nil {
		return nil, quicerrors.WrapBackend("cipher.NewGCMWithNonceSize", err)
	}
	return aead, nil
}

// Header protection mask is a single AES-ECB block over the sample
// [rfc9001:5.4.3]. The mask lives on the stack, so one protector is safe
// for concurrent use.
type aesHeaderProtection struct {
	block cipher.Block
}

func newAESHeaderProtection(hpKey []byte) (HeaderProtection, error) {
	block, err := aes.NewCipher(hpKey)
	if err != nil {
		return nil, quicerrors.WrapBackend("aes.NewCipher", err)
	}
	return &aesHeaderProtection{block: block}, nil
}

func (p *aesHeaderProtection) Mask(sample []byte) ([constants.HeaderProtectionMaskSize]byte, error) {
	var mask [aes.BlockSize]byte
	if len(sample) < p.block.BlockSize() {
		return [constants.HeaderProtectionMaskSize]byte{}, quicerrors.WarnPacketTooShortForSample
	}
	p.block.Encrypt(mask[:], sample)
	return [constants.HeaderProtectionMaskSize]byte(mask[:constants.HeaderProtectionMaskSize]), nil
}

type impl_TLS_AES_128_GCM_SHA256 struct {
}

func (s *impl_TLS_AES_128_GCM_SHA256) ID() ID {
	return TLS_AES_128_GCM_SHA256
}

func (s *impl_TLS_AES_128_GCM_SHA256) Name() string {
	return "AES-128-GCM"
}

func (s *impl_TLS_AES_128_GCM_SHA256) KeyLen() int {
	return 16
}

func (s *impl_TLS_AES_128_GCM_SHA256) HashLen() int {
	return sha256.Size
}

func (s *impl_TLS_AES_128_GCM_SHA256) ProtectionLimit() uint64 {
	// [rfc9001:6.6] confidentiality limit for AES-GCM
	return 1 << 23
}

func (s *impl_TLS_AES_128_GCM_SHA256) NewHasher() hash.Hash {
	return sha256.New()
}

func (s *impl_TLS_AES_128_GCM_SHA256) NewHMAC(key []byte) hash.Hash {
	return hmac.New(sha256.New, key)
}

func (s *impl_TLS_AES_128_GCM_SHA256) NewAEAD(key []byte) (cipher.AEAD, error) {
	return newAESGCM(key)
}

func (s *impl_TLS_AES_128_GCM_SHA256) NewHeaderProtection(hpKey []byte) (HeaderProtection, error) {
	return newAESHeaderProtection(hpKey)
}

type impl_TLS_AES_256_GCM_SHA384 struct {
}

func (s *impl_TLS_AES_256_GCM_SHA384) ID() ID {
	return TLS_AES_256_GCM_SHA384
}

func (s *impl_TLS_AES_256_GCM_SHA384) Name() string {
	return "AES-256-GCM"
}

func (s *impl_TLS_AES_256_GCM_SHA384) KeyLen() int {
	return 32
}

func (s *impl_TLS_AES_256_GCM_SHA384) HashLen() int {
	return sha512.Size384
}

func (s *impl_TLS_AES_256_GCM_SHA384) ProtectionLimit() uint64 {
	// [rfc9001:6.6] confidentiality limit for AES-GCM
	return 1 << 23
}

func (s *impl_TLS_AES_256_GCM_SHA384) NewHasher() hash.Hash {
	return sha512.New384()
}

func (s *impl_TLS_AES_256_GCM_SHA384) NewHMAC(key []byte) hash.Hash {
	return hmac.New(sha512.New384, key)
}

func (s *impl_TLS_AES_256_GCM_SHA384) NewAEAD(key []byte) (cipher.AEAD, error) {
	return newAESGCM(key)
}

func (s *impl_TLS_AES_256_GCM_SHA384) NewHeaderProtection(hpKey []byte) (HeaderProtection, error) {
	return newAESHeaderProtection(hpKey)
}
