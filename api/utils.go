// Copyright (c) Abstract Machines
// SPDX-License-Identifier: Apache-2.0

package api

import (
	"math/big"
	"strings"
)

// FormatSerialNumber formats a certificate serial number as colon-separated
// lower case hex octets.
func FormatSerialNumber(serial *big.Int) string {
	if serial == nil {
		return ""
	}
	return NormalizeSerialNumber(serial.Text(16))
}

// NormalizeSerialNumber rewrites a hex serial number, with or without colon
// or space separators, as colon-separated lower case octets.
func NormalizeSerialNumber(serial string) string {
	hex := strings.ToLower(strings.NewReplacer(":", "", " ", "").Replace(serial))
	if len(hex)%2 != 0 {
		hex = "0" + hex
	}

	octets := make([]string, 0, len(hex)/2)
	for i := 0; i < len(hex); i += 2 {
		octets = append(octets, hex[i:i+2])
	}
	return strings.Join(octets, ":")
}
