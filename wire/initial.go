// Copyright (c) 2025, Grigory Buteyko aka Hrissan
// Licensed under the MIT License. See LICENSE for details.

package wire

import (
	"encoding/binary"

	"github.com/hrissan/quicprotect/quicerrors"
)

// InitialHeader is the part of a version 1 Initial long header this layer
// needs to locate the protected fields. All byte fields alias the packet.
type InitialHeader struct {
	Version    uint32
	DestConnID []byte
	SrcConnID  []byte
	Token      []byte
	// length of packet number plus payload, as encoded on the wire
	Length uint64
	// where the (possibly still protected) packet number begins
	PacketNumberOffset int
}

// type bits 0b00 in the version 1 long header first byte [rfc9000:17.2.2]
func IsInitial(packet []byte) bool {
	if len(packet) < 7 || !IsLongHeader(packet[0]) {
		return false
	}
	if binary.BigEndian.Uint32(packet[1:5]) != 0x00000001 {
		return false
	}
	return packet[0]&0b00110000 == 0
}

// ParseInitialHeader walks the Initial long header up to the packet
// number. It never touches protected bytes, so it works on both protected
// and unprotected packets.
func ParseInitialHeader(packet []byte) (InitialHeader, error) {
	if len(packet) < 7 || !IsLongHeader(packet[0]) {
		return InitialHeader{}, quicerrors.WarnPacketHeaderParsing
	}
	if !IsInitial(packet) {
		return InitialHeader{}, quicerrors.WarnNotInitialPacket
	}
	var hdr InitialHeader
	hdr.Version = binary.BigEndian.Uint32(packet[1:5])
	offset := 5

	dcidLen := int(packet[offset])
	offset++
	if len(packet) < offset+dcidLen+1 {
		return InitialHeader{}, quicerrors.WarnPacketHeaderParsing
	}
	hdr.DestConnID = packet[offset : offset+dcidLen]
	offset += dcidLen

	scidLen := int(packet[offset])
	offset++
	if len(packet) < offset+scidLen {
		return InitialHeader{}, quicerrors.WarnPacketHeaderParsing
	}
	hdr.SrcConnID = packet[offset : offset+scidLen]
	offset += scidLen

	tokenLen, n := ReadVarint(packet[offset:])
	if n == 0 || uint64(len(packet)) < uint64(offset+n)+tokenLen {
		return InitialHeader{}, quicerrors.WarnPacketHeaderParsing
	}
	hdr.Token = packet[offset+n : offset+n+int(tokenLen)]
	offset += n + int(tokenLen)

	length, m := ReadVarint(packet[offset:])
	if m == 0 {
		return InitialHeader{}, quicerrors.WarnPacketHeaderParsing
	}
	hdr.Length = length
	hdr.PacketNumberOffset = offset + m
	if uint64(len(packet)) < uint64(hdr.PacketNumberOffset)+length {
		return InitialHeader{}, quicerrors.WarnPacketHeaderParsing
	}
	return hdr, nil
}
