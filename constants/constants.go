// Copyright (c) 2025, Grigory Buteyko aka Hrissan
// Licensed under the MIT License. See LICENSE for details.

package constants

// We want fixed-size storage for hashes and secrets, as we want to do as
// few allocations as possible. SHA-384 is the largest hash any suite uses.
const MaxHashLength = 48

// All AEADs defined for use with QUIC have a 16-byte seal [rfc9001:5.3]
const AEADSealSize = 16

const NonceSize = 12

// [rfc9001:5.4.2]
const HeaderProtectionSampleSize = 16

// first byte mask plus up to 4 packet number bytes [rfc9001:5.4.1]
const HeaderProtectionMaskSize = 5

const MaxPacketNumberLength = 4

// Initial secrets are always HKDF-SHA256 output [rfc9001:5.2]
const InitialSecretLength = 32
