// Copyright (c) 2025, Grigory Buteyko aka Hrissan
// Licensed under the MIT License. See LICENSE for details.

package ciphersuite

import (
	"bytes"
	"encoding/hex"
	"testing"

	"github.com/hrissan/quicprotect/quicerrors"
	"golang.org/x/crypto/chacha20"
)

// [rfc8439:2.8.2] full AEAD construction, including the 8+8 byte
// little-endian length block in the Poly1305 input
func TestChaCha20Poly1305Vector(t *testing.T) {
	key := mustHex(t, "808182838485868788898a8b8c8d8e8f909192939495969798999a9b9c9d9e9f")
	nonce := mustHex(t, "070000004041424344454647")
	aad := mustHex(t, "50515253c0c1c2c3c4c5c6c7")
	plaintext := []byte("Ladies and Gentlemen of the class of '99: If I could offer you " +
		"only one tip for the future, sunscreen would be it.")
	wantSealed := mustHex(t,
		"d31a8d34648e60db7b86afbc53ef7ec2a4aded51296e08fea9e2b5a736ee62d6"+
			"3dbea45e8ca9671282fafb69da92728b1a71de0a9e060b2905d6a5b67ecd3b36"+
			"92ddbd7f2d778b8c9803aee328091b58fab324e4fad675945585808b4831d7bc"+
			"3ff4def08e4b7a9de576d26586cec64b6116"+
			"1ae10b594f09e26a7e902ecbd0600691")

	suite := GetSuite(TLS_CHACHA20_POLY1305_SHA256)
	aead, err := suite.NewAEAD(key)
	if err != nil {
		t.Fatal(err)
	}
	sealed := aead.Seal(nil, nonce, plaintext, aad)
	if !bytes.Equal(sealed, wantSealed) {
		t.Errorf("sealed mismatch:\ngot:  %x\nwant: %x", sealed, wantSealed)
	}
	opened, err := aead.Open(nil, nonce, sealed, aad)
	if err != nil {
		t.Fatalf("open failed: %v", err)
	}
	if !bytes.Equal(opened, plaintext) {
		t.Errorf("open did not return the plaintext")
	}
}

func TestChacha20Keystream(t *testing.T) {
	key := []byte{
		0x00, 0x01, 0x02, 0x03, 0x04, 0x05, 0x06, 0x07, 0x08, 0x09, 0x0a, 0x0b, 0x0c, 0x0d, 0x0e, 0x0f,
		0x10, 0x11, 0x12, 0x13, 0x14, 0x15, 0x16, 0x17, 0x18, 0x19, 0x1a, 0x1b, 0x1c, 0x1d, 0x1e, 0x1f,
	}
	nonce := []byte{0x00, 0x00, 0x00, 0x09, 0x00, 0x00, 0x00, 0x4a, 0x00, 0x00, 0x00, 0x00}
	counter := uint32(1)
	ci, err := chacha20.NewUnauthenticatedCipher(key, nonce)
	if err != nil {
		t.Error(err)
	}
	var result [64]byte
	ci.SetCounter(counter)
	ci.XORKeyStream(result[:], result[:])
	resultHex := "10f1e7e4d13b5915500fdd1fa32071c4c7d1f4c733c068030422aa9ac3d46c4ed2826446079faa0914c2d705d98b02a2b5129cd1de164eb9cbd083e8a2503c4e"
	if hex.EncodeToString(result[:]) != resultHex {
		t.Errorf("chacha20 wrong result")
	}
}

func TestGetSuiteByName(t *testing.T) {
	for name, id := range map[string]ID{
		"AES-128-GCM":       TLS_AES_128_GCM_SHA256,
		"AES-256-GCM":       TLS_AES_256_GCM_SHA384,
		"CHACHA20-POLY1305": TLS_CHACHA20_POLY1305_SHA256,
	} {
		suite, err := GetSuiteByName(name)
		if err != nil {
			t.Fatalf("%s: %v", name, err)
		}
		if suite.ID() != id {
			t.Errorf("%s: got suite %#x", name, uint16(suite.ID()))
		}
		if GetSuite(id) != suite {
			t.Errorf("%s: registry and name lookup disagree", name)
		}
	}
	if _, err := GetSuiteByName("AES-128-CCM"); err != quicerrors.ErrUnsupportedAlgorithm {
		t.Errorf("expected unsupported algorithm error, got %v", err)
	}
}

func TestSuiteParameters(t *testing.T) {
	for _, tc := range []struct {
		id      ID
		keyLen  int
		hashLen int
	}{
		{TLS_AES_128_GCM_SHA256, 16, 32},
		{TLS_AES_256_GCM_SHA384, 32, 48},
		{TLS_CHACHA20_POLY1305_SHA256, 32, 32},
	} {
		suite := GetSuite(tc.id)
		if suite.KeyLen() != tc.keyLen {
			t.Errorf("suite %#x: key length %d", uint16(tc.id), suite.KeyLen())
		}
		if suite.HashLen() != tc.hashLen {
			t.Errorf("suite %#x: hash length %d", uint16(tc.id), suite.HashLen())
		}
		if suite.NewHasher().Size() != tc.hashLen {
			t.Errorf("suite %#x: hasher size disagrees with HashLen", uint16(tc.id))
		}
		key := make([]byte, tc.keyLen)
		aead, err := suite.NewAEAD(key)
		if err != nil {
			t.Fatalf("suite %#x: %v", uint16(tc.id), err)
		}
		if aead.Overhead() != 16 {
			t.Errorf("suite %#x: seal size %d", uint16(tc.id), aead.Overhead())
		}
		if aead.NonceSize() != 12 {
			t.Errorf("suite %#x: nonce size %d", uint16(tc.id), aead.NonceSize())
		}
		if _, err := suite.NewHeaderProtection(key); err != nil {
			t.Errorf("suite %#x: header protection: %v", uint16(tc.id), err)
		}
	}
}

func TestBadKeyLengthIsBackendError(t *testing.T) {
	suite := GetSuite(TLS_AES_128_GCM_SHA256)
	if _, err := suite.NewAEAD(make([]byte, 15)); err == nil {
		t.Errorf("15-byte AES-128 key must be rejected")
	}
}
