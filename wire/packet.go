// Copyright (c) 2025, Grigory Buteyko aka Hrissan
// Licensed under the MIT License. See LICENSE for details.

package wire

const longHeaderBit = 0b10000000

const maxPacketNumber = (uint64(1) << 62) - 1

func IsLongHeader(firstByte byte) bool {
	return firstByte&longHeaderBit != 0
}

// encoded in the low 2 bits of the (unprotected) first byte [rfc9000:17]
func PacketNumberLength(firstByte byte) int {
	return int(firstByte&0b00000011) + 1
}

// ReadVarint decodes a QUIC variable-length integer [rfc9000:16] and
// returns (value, bytesRead). bytesRead of 0 signals a truncated buffer.
func ReadVarint(b []byte) (uint64, int) {
	if len(b) == 0 {
		return 0, 0
	}
	length := 1 << (b[0] >> 6)
	if len(b) < length {
		return 0, 0
	}
	v := uint64(b[0] & 0b00111111)
	for i := 1; i < length; i++ {
		v = v<<8 | uint64(b[i])
	}
	return v, length
}

// DecodePacketNumber reconstructs a full packet number from its truncated
// wire encoding and the largest packet number received so far [rfc9000:A.3]
func DecodePacketNumber(largest uint64, truncated uint64, pnLength int) uint64 {
	expected := largest + 1
	win := uint64(1) << (pnLength * 8)
	hwin := win / 2
	mask := win - 1
	candidate := (expected &^ mask) | truncated
	if expected >= hwin && candidate <= expected-hwin && candidate < maxPacketNumber+1-win { // irregularity around 0
		return candidate + win
	}
	if candidate > expected+hwin && candidate >= win {
		return candidate - win
	}
	return candidate
}
