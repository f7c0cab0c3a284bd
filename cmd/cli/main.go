// Copyright (c) Abstract Machines
// SPDX-License-Identifier: Apache-2.0

// Package main contains cli main function to run the cli.
package main

import (
	"log"

	"github.com/absmach/certmgmt/cli"
	"github.com/absmach/certmgmt/sdk"
	"github.com/spf13/cobra"
)

func main() {
	sdkConf := sdk.Config{}

	// Root
	rootCmd := &cobra.Command{
		Use:   "certmgmt-cli",
		Short: "Certificate enrollment, lookup and credential archive client",
		PersistentPreRun: func(_ *cobra.Command, _ []string) {
			cliConf, err := cli.ParseConfig(sdkConf)
			if err != nil {
				log.Fatalf("Failed to parse config: %s", err)
			}
			s := sdk.NewSDK(cliConf)
			cli.SetSDK(s)
		},
	}

	// Root Commands
	rootCmd.AddCommand(cli.NewEnrollCmd())
	rootCmd.AddCommand(cli.NewLookupCmd())
	rootCmd.AddCommand(cli.NewPendingCmd())
	rootCmd.AddCommand(cli.NewArchiveCmd())
	rootCmd.AddCommand(cli.NewConfigCmd())

	rootCmd.PersistentFlags().StringVarP(
		&sdkConf.SignURL,
		"sign-url",
		"s",
		sdkConf.SignURL,
		"Certificate signing service URL",
	)

	rootCmd.PersistentFlags().StringVarP(
		&sdkConf.ArchiveURL,
		"archive-url",
		"a",
		sdkConf.ArchiveURL,
		"Credential archive service URL",
	)

	rootCmd.PersistentFlags().StringVarP(
		&sdkConf.LookupURL,
		"lookup-url",
		"u",
		sdkConf.LookupURL,
		"Certificate lookup service URL",
	)

	rootCmd.PersistentFlags().DurationVarP(
		&sdkConf.Timeout,
		"timeout",
		"t",
		sdkConf.Timeout,
		"Request timeout",
	)

	rootCmd.PersistentFlags().BoolVarP(
		&sdkConf.TLSVerification,
		"tls-verify",
		"V",
		sdkConf.TLSVerification,
		"Verify the server TLS certificate",
	)

	rootCmd.PersistentFlags().StringVarP(
		&cli.ConfigPath,
		"config",
		"c",
		cli.ConfigPath,
		"Config path",
	)

	rootCmd.PersistentFlags().BoolVarP(
		&cli.RawOutput,
		"raw",
		"r",
		cli.RawOutput,
		"Enables raw output mode for easier parsing of output",
	)

	rootCmd.PersistentFlags().BoolVarP(
		&sdkConf.CurlFlag,
		"curl",
		"x",
		false,
		"Convert HTTP request to cURL command",
	)

	if err := rootCmd.Execute(); err != nil {
		log.Fatal(err)
	}
}
