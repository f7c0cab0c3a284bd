// Copyright (c) Abstract Machines
// SPDX-License-Identifier: Apache-2.0

package cli_test

import (
	"bytes"
	"testing"

	"github.com/absmach/certmgmt/cli"
	sdkmocks "github.com/absmach/certmgmt/sdk/mocks"
	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
)

type outputLog uint8

const (
	usageLog outputLog = iota
	errLog
	entityLog
	okLog
)

func init() {
	color.NoColor = true
}

func executeCommand(t *testing.T, root *cobra.Command, args ...string) string {
	buffer := new(bytes.Buffer)
	root.SetOut(buffer)
	root.SetErr(buffer)
	root.SetArgs(args)
	err := root.Execute()
	assert.NoError(t, err, "Error executing command")
	return buffer.String()
}

func newRootCmd(cmds ...*cobra.Command) *cobra.Command {
	rootCmd := &cobra.Command{Use: "certmgmt-cli"}

	rootCmd.PersistentFlags().BoolVarP(
		&cli.RawOutput,
		"raw",
		"r",
		false,
		"Enables raw output mode for easier parsing of output",
	)

	for _, cmd := range cmds {
		rootCmd.AddCommand(cmd)
	}

	return rootCmd
}

// resetSDK clears expectations registered with argument matchers, which
// Unset cannot remove.
func resetSDK(m *sdkmocks.MockSDK) {
	m.ExpectedCalls = nil
	m.Calls = nil
}
