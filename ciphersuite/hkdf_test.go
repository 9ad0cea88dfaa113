// Copyright (c) 2025, Grigory Buteyko aka Hrissan
// Licensed under the MIT License. See LICENSE for details.

package ciphersuite

import (
	"bytes"
	"encoding/hex"
	"testing"

	"github.com/hrissan/quicprotect/quicerrors"
)

func mustHex(t *testing.T, s string) []byte {
	t.Helper()
	b, err := hex.DecodeString(s)
	if err != nil {
		t.Fatalf("bad hex in test: %v", err)
	}
	return b
}

// [rfc5869:A] SHA-256 test cases
func TestHKDFVectors(t *testing.T) {
	suite := GetSuite(TLS_AES_128_GCM_SHA256)
	for _, tc := range []struct {
		name string
		ikm  string
		salt string
		info string
		prk  string
		okm  string
	}{
		{
			name: "basic",
			ikm:  "0b0b0b0b0b0b0b0b0b0b0b0b0b0b0b0b0b0b0b0b0b0b",
			salt: "000102030405060708090a0b0c",
			info: "f0f1f2f3f4f5f6f7f8f9",
			prk:  "077709362c2e32df0ddc3f0dc47bba6390b6c73bb50f9c3122ec844ad7c2b3e5",
			okm:  "3cb25f25faacd57a90434f64d0362f2a2d2d0a90cf1a5a4c5db02d56ecc4c5bf34007208d5b887185865",
		},
		{
			name: "longer inputs",
			ikm: "000102030405060708090a0b0c0d0e0f101112131415161718191a1b1c1d1e1f" +
				"202122232425262728292a2b2c2d2e2f303132333435363738393a3b3c3d3e3f" +
				"404142434445464748494a4b4c4d4e4f",
			salt: "606162636465666768696a6b6c6d6e6f707172737475767778797a7b7c7d7e7f" +
				"808182838485868788898a8b8c8d8e8f909192939495969798999a9b9c9d9e9f" +
				"a0a1a2a3a4a5a6a7a8a9aaabacadaeaf",
			info: "b0b1b2b3b4b5b6b7b8b9babbbcbdbebfc0c1c2c3c4c5c6c7c8c9cacbcccdcecf" +
				"d0d1d2d3d4d5d6d7d8d9dadbdcdddedfe0e1e2e3e4e5e6e7e8e9eaebecedeeef" +
				"f0f1f2f3f4f5f6f7f8f9fafbfcfdfeff",
			prk: "06a6b88c5853361a06104c9ceb35b45cef760014904671014a193f40c15fc244",
			okm: "b11e398dc80327a1c8e7f78c596a49344f012eda2d4efad8a050cc4c19afa97c" +
				"59045a99cac7827271cb41c65e590e09da3275600c2f09b8367793a9aca3db71" +
				"cc30c58179ec3e87c14c01d5c1f3434f1d87",
		},
		{
			name: "zero-length salt",
			ikm:  "0b0b0b0b0b0b0b0b0b0b0b0b0b0b0b0b0b0b0b0b0b0b",
			salt: "",
			info: "",
			prk:  "19ef24a32c717b167f33a91d6f648bdf96596776afdb6377ac434c1c293ccb04",
			okm:  "8da4e775a563c18f715f802a063c5a31b8a11f5c5ee1879ec3454e5f3c738d2d9d201395faa4b61a96c8",
		},
	} {
		t.Run(tc.name, func(t *testing.T) {
			prk := ExtractSecret(suite, mustHex(t, tc.salt), mustHex(t, tc.ikm))
			if !bytes.Equal(prk.GetValue(), mustHex(t, tc.prk)) {
				t.Errorf("prk mismatch: got %x want %s", prk.GetValue(), tc.prk)
			}
			wantOKM := mustHex(t, tc.okm)
			okm := make([]byte, len(wantOKM))
			if err := HKDFExpand(okm, suite.NewHMAC(prk.GetValue()), mustHex(t, tc.info)); err != nil {
				t.Fatalf("expand failed: %v", err)
			}
			if !bytes.Equal(okm, wantOKM) {
				t.Errorf("okm mismatch: got %x want %s", okm, tc.okm)
			}
		})
	}
}

func TestHKDFExpandTooLong(t *testing.T) {
	suite := GetSuite(TLS_AES_128_GCM_SHA256)
	prk := make([]byte, 32)
	dst := make([]byte, 255*32+1)
	if err := HKDFExpand(dst, suite.NewHMAC(prk), nil); err != quicerrors.ErrHKDFExpandTooLong {
		t.Errorf("expected length error, got %v", err)
	}
	dst = dst[:255*32]
	if err := HKDFExpand(dst, suite.NewHMAC(prk), nil); err != nil {
		t.Errorf("255 * hash length must be accepted, got %v", err)
	}
}

// the label framing is 2-byte length, length-prefixed "tls13 "+label,
// length-prefixed context [rfc8446:7.1]; pinned indirectly by the key
// schedule vectors, here we only check determinism and context influence
func TestHKDFExpandLabel(t *testing.T) {
	suite := GetSuite(TLS_AES_128_GCM_SHA256)
	secret := mustHex(t, "c00cf151ca5be075ed0ebfb5c80323c42d6b7db67881289af4008f1f6c357aea")
	var a, b, c [16]byte
	if err := HKDFExpandLabel(a[:], suite.NewHMAC(secret), "quic key", nil); err != nil {
		t.Fatal(err)
	}
	if err := HKDFExpandLabel(b[:], suite.NewHMAC(secret), "quic key", nil); err != nil {
		t.Fatal(err)
	}
	if a != b {
		t.Errorf("expand label must be deterministic")
	}
	if err := HKDFExpandLabel(c[:], suite.NewHMAC(secret), "quic key", []byte{1}); err != nil {
		t.Fatal(err)
	}
	if a == c {
		t.Errorf("context must influence output")
	}
}
