// Copyright (c) 2025, Grigory Buteyko aka Hrissan
// Licensed under the MIT License. See LICENSE for details.

package protection

import (
	"github.com/hrissan/quicprotect/ciphersuite"
	"github.com/hrissan/quicprotect/keys"
	"github.com/hrissan/quicprotect/quicerrors"
	"github.com/hrissan/quicprotect/wire"
)

// PacketProtection bundles both directions for one encryption level.
// Read-only after construction, so it may be shared across concurrent
// send/receive pipelines without locks. A level transition is a handle
// swap performed by the connection state machine, which then calls
// Discard on the retired instance.
type PacketProtection struct {
	suite     ciphersuite.Suite
	write     DirectionKeys
	read      DirectionKeys
	discarded bool
}

func New(suite ciphersuite.Suite, write keys.Keys, read keys.Keys) (*PacketProtection, error) {
	w, err := NewDirectionKeys(suite, write)
	if err != nil {
		return nil, err
	}
	r, err := NewDirectionKeys(suite, read)
	if err != nil {
		return nil, err
	}
	return &PacketProtection{suite: suite, write: w, read: r}, nil
}

// NewInitial derives and installs Initial keys from the client's original
// Destination Connection ID [rfc9001:5.2]
func NewInitial(destConnID []byte, version uint32, roleServer bool) (*PacketProtection, error) {
	client, server, err := keys.DeriveInitialKeys(destConnID, version)
	if err != nil {
		return nil, err
	}
	write, read := client, server
	if roleServer {
		write, read = server, client
	}
	return New(keys.InitialSuite(), write, read)
}

// NewHandshake installs Handshake keys for the negotiated suite.
func NewHandshake(suite ciphersuite.Suite, handshakeSecret []byte, transcriptHash []byte, roleServer bool) (*PacketProtection, error) {
	client, server, err := keys.DeriveHandshakeKeys(suite, handshakeSecret, transcriptHash)
	if err != nil {
		return nil, err
	}
	write, read := client, server
	if roleServer {
		write, read = server, client
	}
	return New(suite, write, read)
}

// NewApplication installs 1-RTT keys for the negotiated suite.
func NewApplication(suite ciphersuite.Suite, masterSecret []byte, transcriptHash []byte, roleServer bool) (*PacketProtection, error) {
	client, server, err := keys.DeriveApplicationKeys(suite, masterSecret, transcriptHash)
	if err != nil {
		return nil, err
	}
	write, read := client, server
	if roleServer {
		write, read = server, client
	}
	return New(suite, write, read)
}

func (p *PacketProtection) Suite() ciphersuite.Suite {
	return p.suite
}

// SealPacket encrypts packet in place. packet is header followed by
// plaintext payload, with the encoded packet number at pnOffset and its
// length in the low 2 bits of the first byte. Returns the packet extended
// by the 16-byte seal, header protection already applied. When packet has
// spare capacity for the seal, no allocation happens.
func (p *PacketProtection) SealPacket(packet []byte, pnOffset int, packetNumber uint64) ([]byte, error) {
	if p.discarded {
		return nil, quicerrors.ErrKeysDiscarded
	}
	if pnOffset < 1 || pnOffset >= len(packet) {
		return nil, quicerrors.WarnPacketHeaderParsing
	}
	pnLength := wire.PacketNumberLength(packet[0])
	hdrSize := pnOffset + pnLength
	if hdrSize > len(packet) {
		return nil, quicerrors.WarnPacketHeaderParsing
	}
	sealed := p.write.Seal(packet[:hdrSize], packetNumber, packet[hdrSize:], packet[:hdrSize])
	if err := ProtectHeader(sealed, p.write.hp, pnOffset, pnLength); err != nil {
		return nil, err
	}
	return sealed, nil
}

// OpenPacket removes header protection and decrypts the payload in place.
// largestPacketNumber is the highest packet number opened so far in this
// number space, used to reconstruct the truncated wire encoding. The
// returned payload aliases packet. On a deprotection failure packet
// contents are garbage and the caller must silently drop it.
func (p *PacketProtection) OpenPacket(packet []byte, pnOffset int, largestPacketNumber uint64) (payload []byte, packetNumber uint64, err error) {
	if p.discarded {
		return nil, 0, quicerrors.ErrKeysDiscarded
	}
	pnLength, err := UnprotectHeader(packet, p.read.hp, pnOffset)
	if err != nil {
		return nil, 0, err
	}
	var truncated uint64
	for i := 0; i < pnLength; i++ {
		truncated = truncated<<8 | uint64(packet[pnOffset+i])
	}
	packetNumber = wire.DecodePacketNumber(largestPacketNumber, truncated, pnLength)
	hdrSize := pnOffset + pnLength
	payload, err = p.read.Open(packet[hdrSize:hdrSize], packetNumber, packet[hdrSize:], packet[:hdrSize])
	if err != nil {
		return nil, 0, err
	}
	return payload, packetNumber, nil
}

// Discard wipes both directions. Must not race with in-flight Seal/Open
// calls, the caller swaps its handle first. Any later use fails hard, a
// retired key must never protect or deprotect another packet [rfc9001:4.9]
func (p *PacketProtection) Discard() {
	p.write = DirectionKeys{}
	p.read = DirectionKeys{}
	p.discarded = true
}
