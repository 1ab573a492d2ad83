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
	wsPingTimeout  int
	wsPingCount    int
	wsPingProtocol string
)

var wsPingCmd = &cobra.Command{
	Use:   "ws_ping",
	Short: "Test a connection by sending PING_REQUEST and waiting for PING_RESPONSE",
	Long: `Send PING_REQUEST packets and wait for PING_RESPONSE.

This command tests bidirectional communication with a device or router
(e.g. the Slate WebSocket bridge, or a Helios appliance directly over
serial). The responder handles PING_REQUEST locally and replies with
PING_RESPONSE carrying its uptime.

Protocols (--protocol):
  fusain      CBOR-payload, 8-byte addressed (default) — pings the
              stateless address, as a router would be addressed.
  heliosfixed fixed-layout, 8-byte addressed — pings the stateless address.
  helios      fixed-layout, unaddressed — pings the single device on the
              wire directly (no addressing concept).

This is useful for verifying:
  - The connection is established
  - HTTP Basic authentication works (WebSocket)
  - The responder is processing packets
  - Bidirectional packet flow works

Exit codes:
  0 - All pings successful
  1 - One or more pings failed/timed out
  2 - Connection error`,
	RunE: runWsPing,
}

func init() {
	rootCmd.AddCommand(wsPingCmd)
	wsPingCmd.Flags().IntVar(&wsPingTimeout, "timeout", 5, "Timeout in seconds for each ping")
	wsPingCmd.Flags().IntVar(&wsPingCount, "count", 3, "Number of pings to send")
	wsPingCmd.Flags().StringVar(&wsPingProtocol, "protocol", "fusain", "Protocol variant: fusain, heliosfixed, or helios")
}

func runWsPing(cmd *cobra.Command, args []string) error {
	conn, connInfo, err := OpenConnection()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Connection error: %v\n", err)
		os.Exit(2)
	}
	defer conn.Close()

	fmt.Printf("Heliostat - Ping Test\n")
	fmt.Printf("Connection: %s\n", connInfo)
	fmt.Printf("Protocol: %s\n", wsPingProtocol)
	fmt.Printf("Timeout: %d seconds per ping\n", wsPingTimeout)
	fmt.Printf("Count: %d pings\n\n", wsPingCount)

	var successCount, failCount int
	switch wsPingProtocol {
	case "fusain":
		successCount, failCount = runFusainPings(conn)
	case "heliosfixed":
		successCount, failCount = runHeliosfixedPings(conn)
	case "helios":
		successCount, failCount = runHeliosPings(conn)
	default:
		fmt.Fprintf(os.Stderr, "Unknown protocol %q (want fusain, heliosfixed, or helios)\n", wsPingProtocol)
		os.Exit(2)
	}

	fmt.Printf("\n--- Ping statistics ---\n")
	fmt.Printf("%d pings sent, %d responses received, %.0f%% packet loss\n",
		wsPingCount, successCount, float64(failCount)/float64(wsPingCount)*100)

	if failCount > 0 {
		os.Exit(1)
	}
	return nil
}

func runFusainPings(conn Connection) (successCount, failCount int) {
	decoder := fusain.NewDecoder()

	for i := 1; i <= wsPingCount; i++ {
		fmt.Printf("Ping %d/%d: ", i, wsPingCount)

		pingPacket := fusain.NewPingRequest(fusain.AddressStateless)
		wireBytes := fusain.MustEncodePacket(pingPacket)

		startTime := time.Now()
		if _, err := conn.Write(wireBytes); err != nil {
			fmt.Printf("SEND FAILED: %v\n", err)
			failCount++
			continue
		}

		responseChan := make(chan *fusain.Packet, 1)
		errChan := make(chan error, 1)
		go func() {
			buf := make([]byte, 128)
			for {
				n, err := conn.Read(buf)
				if err != nil {
					errChan <- err
					return
				}
				for j := 0; j < n; j++ {
					packet, decodeErr := decoder.DecodeByte(buf[j])
					if decodeErr != nil {
						continue
					}
					if packet != nil && packet.Type() == fusain.MsgPingResponse {
						responseChan <- packet
						return
					}
				}
			}
		}()

		select {
		case packet := <-responseChan:
			rtt := time.Since(startTime)
			uptime, _ := fusain.GetMapUint(packet.PayloadMap(), 0)
			fmt.Printf("PONG, uptime=%s, rtt=%v\n", formatUptime(uptime), rtt.Round(time.Millisecond))
			successCount++
		case err := <-errChan:
			fmt.Printf("READ FAILED: %v\n", err)
			failCount++
		case <-time.After(time.Duration(wsPingTimeout) * time.Second):
			fmt.Printf("TIMEOUT (no response in %ds)\n", wsPingTimeout)
			failCount++
		}

		if i < wsPingCount {
			time.Sleep(100 * time.Millisecond)
		}
	}
	return successCount, failCount
}

func runHeliosfixedPings(conn Connection) (successCount, failCount int) {
	decoder := heliosfixed.NewDecoder()

	for i := 1; i <= wsPingCount; i++ {
		fmt.Printf("Ping %d/%d: ", i, wsPingCount)

		pingPacket := heliosfixed.NewPingRequest(heliosfixed.AddressStateless)
		wireBytes := heliosfixed.MustEncodePacket(pingPacket)

		startTime := time.Now()
		if _, err := conn.Write(wireBytes); err != nil {
			fmt.Printf("SEND FAILED: %v\n", err)
			failCount++
			continue
		}

		responseChan := make(chan *heliosfixed.Packet, 1)
		errChan := make(chan error, 1)
		go func() {
			buf := make([]byte, 128)
			for {
				n, err := conn.Read(buf)
				if err != nil {
					errChan <- err
					return
				}
				for j := 0; j < n; j++ {
					packet, decodeErr := decoder.DecodeByte(buf[j])
					if decodeErr != nil {
						continue
					}
					if packet != nil && packet.Type() == heliosfixed.MsgPingResponse {
						responseChan <- packet
						return
					}
				}
			}
		}()

		select {
		case packet := <-responseChan:
			rtt := time.Since(startTime)
			ping, err := heliosfixed.DecodePingResponse(packet.Payload())
			if err != nil {
				fmt.Printf("PONG, invalid payload (%v), rtt=%v\n", err, rtt.Round(time.Millisecond))
			} else {
				fmt.Printf("PONG, uptime=%s, rtt=%v\n", formatUptime(ping.UptimeMs), rtt.Round(time.Millisecond))
			}
			successCount++
		case err := <-errChan:
			fmt.Printf("READ FAILED: %v\n", err)
			failCount++
		case <-time.After(time.Duration(wsPingTimeout) * time.Second):
			fmt.Printf("TIMEOUT (no response in %ds)\n", wsPingTimeout)
			failCount++
		}

		if i < wsPingCount {
			time.Sleep(100 * time.Millisecond)
		}
	}
	return successCount, failCount
}

func runHeliosPings(conn Connection) (successCount, failCount int) {
	decoder := helios.NewDecoder()

	for i := 1; i <= wsPingCount; i++ {
		fmt.Printf("Ping %d/%d: ", i, wsPingCount)

		pingPacket := helios.NewPingRequest()
		wireBytes := helios.MustEncodePacket(pingPacket)

		startTime := time.Now()
		if _, err := conn.Write(wireBytes); err != nil {
			fmt.Printf("SEND FAILED: %v\n", err)
			failCount++
			continue
		}

		responseChan := make(chan *helios.Packet, 1)
		errChan := make(chan error, 1)
		go func() {
			buf := make([]byte, 128)
			for {
				n, err := conn.Read(buf)
				if err != nil {
					errChan <- err
					return
				}
				for j := 0; j < n; j++ {
					packet, decodeErr := decoder.DecodeByte(buf[j])
					if decodeErr != nil {
						continue
					}
					if packet != nil && packet.Type() == helios.MSG_PING_RESPONSE {
						responseChan <- packet
						return
					}
				}
			}
		}()

		select {
		case packet := <-responseChan:
			rtt := time.Since(startTime)
			ping, err := helios.DecodePingResponse(packet.Payload())
			if err != nil {
				fmt.Printf("PONG, invalid payload (%v), rtt=%v\n", err, rtt.Round(time.Millisecond))
			} else {
				fmt.Printf("PONG, uptime=%s, rtt=%v\n", formatUptime(ping.UptimeMs), rtt.Round(time.Millisecond))
			}
			successCount++
		case err := <-errChan:
			fmt.Printf("READ FAILED: %v\n", err)
			failCount++
		case <-time.After(time.Duration(wsPingTimeout) * time.Second):
			fmt.Printf("TIMEOUT (no response in %ds)\n", wsPingTimeout)
			failCount++
		}

		if i < wsPingCount {
			time.Sleep(100 * time.Millisecond)
		}
	}
	return successCount, failCount
}
