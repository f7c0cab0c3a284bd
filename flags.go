// Copyright (c) Abstract Machines
// SPDX-License-Identifier: Apache-2.0

package certmgmt

import (
	"strings"

	"github.com/absmach/supermq/pkg/errors"
)

// Flag is one option of a CSR request. The values match the wire bits.
type Flag uint32

const (
	// DoNotPost builds the CSR without submitting it.
	DoNotPost Flag = 1 << iota
	// ReturnCSR returns the CSR in the enrollment result.
	ReturnCSR
	// Renew posts a renewal instead of a new request.
	Renew
	// UseExistingCSR submits the caller supplied CSR.
	UseExistingCSR
	// PendingCheckOnly asks whether a request is pending. Lookup only.
	PendingCheckOnly
)

const allFlags = DoNotPost | ReturnCSR | Renew | UseExistingCSR | PendingCheckOnly

var flagNames = []struct {
	flag Flag
	name string
}{
	{DoNotPost, "do-not-post"},
	{ReturnCSR, "return-csr"},
	{Renew, "renew"},
	{UseExistingCSR, "use-existing-csr"},
	{PendingCheckOnly, "pending-check-only"},
}

func (f Flag) String() string {
	for _, fn := range flagNames {
		if fn.flag == f {
			return fn.name
		}
	}
	return "unknown"
}

// Flags is a validated set of request options.
type Flags struct {
	bits Flag
}

// NewFlags returns the set of the given options, rejecting combinations
// that have no defined meaning.
func NewFlags(opts ...Flag) (Flags, error) {
	var bits Flag
	for _, o := range opts {
		bits |= o
	}
	return FlagsFromBits(uint32(bits))
}

// MustFlags is like NewFlags but panics on an invalid combination.
func MustFlags(opts ...Flag) Flags {
	f, err := NewFlags(opts...)
	if err != nil {
		panic(err)
	}
	return f
}

// FlagsFromBits decodes the wire representation of a flag set.
func FlagsFromBits(bits uint32) (Flags, error) {
	f := Flags{bits: Flag(bits)}
	if err := f.Validate(); err != nil {
		return Flags{}, err
	}
	return f, nil
}

// Validate rejects unknown bits, Renew together with UseExistingCSR, and
// PendingCheckOnly together with any enrollment option.
func (f Flags) Validate() error {
	if f.bits&^allFlags != 0 {
		return errors.Wrap(ErrInvalidParameter, ErrUnknownFlag)
	}
	if f.Has(Renew) && f.Has(UseExistingCSR) {
		return errors.Wrap(ErrInvalidParameter, ErrFlagCombination)
	}
	if f.Has(PendingCheckOnly) && f.bits != PendingCheckOnly {
		return errors.Wrap(ErrInvalidParameter, ErrFlagCombination)
	}
	return nil
}

// Has reports whether the option is set.
func (f Flags) Has(o Flag) bool {
	return f.bits&o == o && o != 0
}

// Bits returns the wire representation.
func (f Flags) Bits() uint32 {
	return uint32(f.bits)
}

func (f Flags) String() string {
	var names []string
	for _, fn := range flagNames {
		if f.Has(fn.flag) {
			names = append(names, fn.name)
		}
	}
	return strings.Join(names, "|")
}
