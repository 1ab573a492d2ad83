// SPDX-License-Identifier: GPL-2.0-or-later
// Copyright (c) 2025 Kaz Walker, Thermoquad

package cmd

import (
	"fmt"
	"os"
	"time"

	"github.com/Thermoquad/heliostat/pkg/fusain"
	"github.com/Thermoquad/heliostat/pkg/helios"
	"github.com/Thermoquad/heliostat/pkg/heliosfixed"
	"github.com/spf13/cobra"
)

var (
	packetTestTimeout  int
	packetTestProtocol string
)

var packetTestCmd = &cobra.Command{
	Use:   "packet_test",
	Short: "Test connection by waiting for a valid packet",
	Long: `Wait for a valid packet on the connection until timeout.

This command connects to a serial port or WebSocket and waits for any valid
packet matching the selected protocol's framing and CRC. It ignores invalid
bytes and waits for a complete, valid packet.

Protocols (--protocol):
  fusain      CBOR-payload, 8-byte addressed, MaxPayload=114 (default)
  heliosfixed fixed-layout, 8-byte addressed, MaxPayload=114
  helios      fixed-layout, unaddressed, MaxPayload=58

Exit codes:
  0 - Packet received before timeout
  1 - Timeout reached without receiving a valid packet
  2 - Connection error

Useful for testing connectivity to Helios or Slate WebSocket bridge.`,
	RunE: runPacketTest,
}

func init() {
	rootCmd.AddCommand(packetTestCmd)
	packetTestCmd.Flags().IntVar(&packetTestTimeout, "timeout", 10, "Timeout in seconds to wait for a packet")
	packetTestCmd.Flags().StringVar(&packetTestProtocol, "protocol", "fusain", "Protocol variant: fusain, heliosfixed, or helios")
}

func runPacketTest(cmd *cobra.Command, args []string) error {
	conn, connInfo, err := OpenConnection()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Connection error: %v\n", err)
		os.Exit(2)
	}
	defer conn.Close()

	fmt.Printf("Heliostat - Packet Test\n")
	fmt.Printf("Connection: %s\n", connInfo)
	fmt.Printf("Protocol: %s\n", packetTestProtocol)
	fmt.Printf("Timeout: %d seconds\n", packetTestTimeout)
	fmt.Printf("Waiting for valid packet...\n\n")

	var waitErr error
	switch packetTestProtocol {
	case "fusain":
		waitErr = waitForFusainPacket(conn)
	case "heliosfixed":
		waitErr = waitForHeliosfixedPacket(conn)
	case "helios":
		waitErr = waitForHeliosPacket(conn)
	default:
		fmt.Fprintf(os.Stderr, "Unknown protocol %q (want fusain, heliosfixed, or helios)\n", packetTestProtocol)
		os.Exit(2)
	}

	if waitErr == errPacketTestTimeout {
		fmt.Fprintf(os.Stderr, "TIMEOUT: No valid packet received within %d seconds\n", packetTestTimeout)
		os.Exit(1)
	}
	if waitErr != nil {
		fmt.Fprintf(os.Stderr, "Read error: %v\n", waitErr)
		os.Exit(2)
	}

	os.Exit(0)
	return nil
}

var errPacketTestTimeout = fmt.Errorf("packet test timed out")

func waitForFusainPacket(conn Connection) error {
	decoder := fusain.NewDecoder()
	buf := make([]byte, 128)
	packetChan := make(chan *fusain.Packet, 1)
	errChan := make(chan error, 1)

	go func() {
		invalidBytes := 0
		for {
			n, err := conn.Read(buf)
			if err != nil {
				errChan <- err
				return
			}
			for i := 0; i < n; i++ {
				packet, decodeErr := decoder.DecodeByte(buf[i])
				if decodeErr != nil {
					invalidBytes++
					continue
				}
				if packet != nil {
					if invalidBytes > 0 {
						fmt.Printf("(skipped %d invalid bytes before sync)\n", invalidBytes)
					}
					packetChan <- packet
					return
				}
			}
		}
	}()

	select {
	case packet := <-packetChan:
		fmt.Printf("SUCCESS: Received valid packet\n")
		fmt.Printf("  Type: %s (0x%02X)\n", fusain.FormatMessageType(packet.Type()), packet.Type())
		fmt.Printf("  Address: 0x%016X\n", packet.Address())
		fmt.Printf("  Length: %d bytes\n", packet.Length())
		fmt.Printf("  CRC: 0x%04X\n", packet.CRC())
		return nil
	case err := <-errChan:
		return err
	case <-time.After(time.Duration(packetTestTimeout) * time.Second):
		return errPacketTestTimeout
	}
}

func waitForHeliosfixedPacket(conn Connection) error {
	decoder := heliosfixed.NewDecoder()
	buf := make([]byte, 128)
	packetChan := make(chan *heliosfixed.Packet, 1)
	errChan := make(chan error, 1)

	go func() {
		invalidBytes := 0
		for {
			n, err := conn.Read(buf)
			if err != nil {
				errChan <- err
				return
			}
			for i := 0; i < n; i++ {
				packet, decodeErr := decoder.DecodeByte(buf[i])
				if decodeErr != nil {
					invalidBytes++
					continue
				}
				if packet != nil {
					if invalidBytes > 0 {
						fmt.Printf("(skipped %d invalid bytes before sync)\n", invalidBytes)
					}
					packetChan <- packet
					return
				}
			}
		}
	}()

	select {
	case packet := <-packetChan:
		fmt.Printf("SUCCESS: Received valid packet\n")
		fmt.Printf("  Type: %s (0x%02X)\n", heliosfixed.FormatMessageType(packet.Type()), packet.Type())
		fmt.Printf("  Address: 0x%016X\n", packet.Address())
		fmt.Printf("  Length: %d bytes\n", packet.Length())
		fmt.Printf("  CRC: 0x%04X\n", packet.CRC())
		return nil
	case err := <-errChan:
		return err
	case <-time.After(time.Duration(packetTestTimeout) * time.Second):
		return errPacketTestTimeout
	}
}

func waitForHeliosPacket(conn Connection) error {
	decoder := helios.NewDecoder()
	buf := make([]byte, 128)
	packetChan := make(chan *helios.Packet, 1)
	errChan := make(chan error, 1)

	go func() {
		invalidBytes := 0
		for {
			n, err := conn.Read(buf)
			if err != nil {
				errChan <- err
				return
			}
			for i := 0; i < n; i++ {
				packet, decodeErr := decoder.DecodeByte(buf[i])
				if decodeErr != nil {
					invalidBytes++
					continue
				}
				if packet != nil {
					if invalidBytes > 0 {
						fmt.Printf("(skipped %d invalid bytes before sync)\n", invalidBytes)
					}
					packetChan <- packet
					return
				}
			}
		}
	}()

	select {
	case packet := <-packetChan:
		fmt.Printf("SUCCESS: Received valid packet\n")
		fmt.Printf("  Type: %s (0x%02X)\n", helios.FormatMessageType(packet.Type()), packet.Type())
		fmt.Printf("  Length: %d bytes\n", packet.Length())
		fmt.Printf("  CRC: 0x%04X\n", packet.CRC())
		return nil
	case err := <-errChan:
		return err
	case <-time.After(time.Duration(packetTestTimeout) * time.Second):
		return errPacketTestTimeout
	}
}
