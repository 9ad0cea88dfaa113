// Copyright (c) 2025, Grigory Buteyko aka Hrissan
// Licensed under the MIT License. See LICENSE for details.

package protection

import (
	"github.com/hrissan/quicprotect/ciphersuite"
	"github.com/hrissan/quicprotect/constants"
	"github.com/hrissan/quicprotect/quicerrors"
	"github.com/hrissan/quicprotect/wire"
)

// The sample starts 4 bytes after the packet number field begins, for
// both protect and unprotect [rfc9001:5.4.2]. Packets too short for the
// window are rejected before anything is read.
func headerSample(packet []byte, pnOffset int) ([]byte, error) {
	if pnOffset < 1 || len(packet) < pnOffset+4+constants.HeaderProtectionSampleSize {
		return nil, quicerrors.WarnPacketTooShortForSample
	}
	return packet[pnOffset+4 : pnOffset+4+constants.HeaderProtectionSampleSize], nil
}

func applyHeaderMask(packet []byte, mask [constants.HeaderProtectionMaskSize]byte, pnOffset int, pnLength int) {
	if wire.IsLongHeader(packet[0]) {
		packet[0] ^= mask[0] & 0x0f // [rfc9001:5.4.1]
	} else {
		packet[0] ^= mask[0] & 0x1f
	}
	for i := 0; i < pnLength; i++ {
		packet[pnOffset+i] ^= mask[1+i]
	}
}

// ProtectHeader masks the first byte and the packet number bytes in
// place. Must run after AEAD sealing, the mask is keyed off the
// ciphertext sample.
func ProtectHeader(packet []byte, hp ciphersuite.HeaderProtection, pnOffset int, pnLength int) error {
	if pnLength < 1 || pnLength > constants.MaxPacketNumberLength {
		return quicerrors.ErrPacketNumberLength
	}
	sample, err := headerSample(packet, pnOffset)
	if err != nil {
		return err
	}
	mask, err := hp.Mask(sample)
	if err != nil {
		return err
	}
	applyHeaderMask(packet, mask, pnOffset, pnLength)
	return nil
}

// UnprotectHeader unmasks the first byte, learns the true packet number
// length from its low 2 bits, then unmasks exactly that many bytes. Must
// run before AEAD opening.
func UnprotectHeader(packet []byte, hp ciphersuite.HeaderProtection, pnOffset int) (pnLength int, err error) {
	sample, err := headerSample(packet, pnOffset)
	if err != nil {
		return 0, err
	}
	mask, err := hp.Mask(sample)
	if err != nil {
		return 0, err
	}
	if wire.IsLongHeader(packet[0]) {
		packet[0] ^= mask[0] & 0x0f
	} else {
		packet[0] ^= mask[0] & 0x1f
	}
	pnLength = wire.PacketNumberLength(packet[0])
	for i := 0; i < pnLength; i++ {
		packet[pnOffset+i] ^= mask[1+i]
	}
	return pnLength, nil
}
