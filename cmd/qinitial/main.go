// Copyright (c) 2025, Grigory Buteyko aka Hrissan
// Licensed under the MIT License. See LICENSE for details.

// qinitial derives Initial keys from a captured QUIC datagram and opens
// its first Initial packet. Useful for checking interop captures against
// the [rfc9001:A] vectors.
package main

import (
	"encoding/hex"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/hrissan/quicprotect/keys"
	"github.com/hrissan/quicprotect/protection"
	"github.com/hrissan/quicprotect/wire"
	"github.com/spf13/cobra"
)

var (
	packetHex  string
	fromServer bool
	largestPN  uint64
	showKeys   bool
	verbose    bool
)

var rootCmd = &cobra.Command{
	Use:   "qinitial",
	Short: "Open a protected QUIC Initial packet",
	Long: `qinitial derives RFC 9001 Initial keys from the Destination Connection ID
of a captured QUIC v1 Initial packet, removes header protection and opens
the payload. Reads the packet as hex from --packet or stdin.`,
	RunE: runOpen,
}

func init() {
	rootCmd.Flags().StringVarP(&packetHex, "packet", "p", "", "hex-encoded Initial packet (default: read from stdin)")
	rootCmd.Flags().BoolVar(&fromServer, "from-server", false, "packet was sent by the server (open with client read keys)")
	rootCmd.Flags().Uint64Var(&largestPN, "largest-pn", 0, "largest packet number already seen in this space")
	rootCmd.Flags().BoolVar(&showKeys, "show-keys", false, "print derived key material")
	rootCmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "debug output")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func runOpen(cmd *cobra.Command, args []string) error {
	if verbose {
		log.SetLevel(log.DebugLevel)
	}
	if packetHex == "" {
		data, err := io.ReadAll(os.Stdin)
		if err != nil {
			return fmt.Errorf("reading stdin: %w", err)
		}
		packetHex = string(data)
	}
	packetHex = strings.Map(func(r rune) rune {
		if r == ' ' || r == '\n' || r == '\t' || r == '\r' {
			return -1
		}
		return r
	}, packetHex)
	packetHex = strings.TrimPrefix(packetHex, "0x")
	packet, err := hex.DecodeString(packetHex)
	if err != nil {
		return fmt.Errorf("packet is not valid hex: %w", err)
	}

	hdr, err := wire.ParseInitialHeader(packet)
	if err != nil {
		return err
	}
	log.Debug("parsed Initial header",
		"version", fmt.Sprintf("0x%08x", hdr.Version),
		"dcid", fmt.Sprintf("%x", hdr.DestConnID),
		"scid", fmt.Sprintf("%x", hdr.SrcConnID),
		"token_len", len(hdr.Token),
		"pn_offset", hdr.PacketNumberOffset)

	if showKeys {
		client, server, err := keys.DeriveInitialKeys(hdr.DestConnID, hdr.Version)
		if err != nil {
			return err
		}
		printKeys("client", client)
		printKeys("server", server)
	}

	// a client's packet is opened from the server perspective and vice versa
	pp, err := protection.NewInitial(hdr.DestConnID, hdr.Version, !fromServer)
	if err != nil {
		return err
	}
	// the packet may be coalesced with others, open only the Initial
	initial := packet[:uint64(hdr.PacketNumberOffset)+hdr.Length]
	payload, pn, err := pp.OpenPacket(initial, hdr.PacketNumberOffset, largestPN)
	if err != nil {
		log.Error("failed to open packet", "err", err)
		return err
	}
	log.Info("opened Initial packet", "packet_number", pn, "payload_len", len(payload))
	fmt.Printf("%x\n", payload)
	return nil
}

func printKeys(direction string, k keys.Keys) {
	log.Info(direction+" Initial keys",
		"key", fmt.Sprintf("%x", k.Key.GetValue()),
		"iv", fmt.Sprintf("%x", k.IV[:]),
		"hp", fmt.Sprintf("%x", k.HP.GetValue()))
}
