// SPDX-License-Identifier: GPL-2.0-or-later
// Copyright (c) 2025 Kaz Walker, Thermoquad

package cmd

import (
	"github.com/spf13/cobra"
)

var (
	// Global flags
	portName      string
	baudRate      int
	wsURL         string
	wsUsername    string
	wsNoSSLVerify bool
)

var rootCmd = &cobra.Command{
	Use:   "heliostat",
	Short: "Helios Serial Protocol Analyzer",
	Long: `Heliostat - A CLI tool for monitoring and analyzing Helios serial protocol packets.

Provides commands for raw packet logging and advanced error detection to help
diagnose communication issues and protocol anomalies.`,
	Version: "2.0.0",
}

func init() {
	// Global persistent flags (available to all subcommands)
	rootCmd.PersistentFlags().StringVarP(&portName, "port", "p", "", "Serial port device")
	rootCmd.PersistentFlags().IntVarP(&baudRate, "baud", "b", 115200, "Baud rate")
	rootCmd.PersistentFlags().StringVarP(&wsURL, "url", "u", "", "WebSocket URL (alternative to --port)")
	rootCmd.PersistentFlags().StringVar(&wsUsername, "username", "", "WebSocket username")
	rootCmd.PersistentFlags().BoolVar(&wsNoSSLVerify, "no-ssl-verify", false, "Skip TLS certificate verification")
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}
