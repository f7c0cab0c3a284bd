// Copyright (c) Abstract Machines
// SPDX-License-Identifier: Apache-2.0

package certmgmt

import (
	"crypto"
	"strings"
	"unicode/utf8"

	"github.com/absmach/supermq/pkg/errors"
)

// Supported request versions.
const (
	CSRRequestVersion     uint32 = 0
	ArchiveRequestVersion uint32 = 0
)

// CSRRequest is one enrollment attempt.
type CSRRequest struct {
	Version uint32

	// Crypto generates the CSR. Required unless UseExistingCSR is set.
	Crypto CryptoService

	// NumTypeValuePairs must equal len(Subject).
	NumTypeValuePairs int
	Subject           []TypeValue

	// PublicKey is included in the CSR and PrivateKey signs it. Both are
	// required unless UseExistingCSR is set.
	PublicKey  crypto.PublicKey
	PrivateKey crypto.Signer

	Identity Identity
	Flags    Flags

	// Class is the certificate class requested from the server. The zero
	// value requests an identity certificate.
	Class CertClass

	// CSR is the DER encoded request submitted when UseExistingCSR is set.
	CSR []byte
}

// Validate checks the fields that do not depend on the server. Identity is
// validated separately since a dry run does not need it.
func (req CSRRequest) Validate() error {
	if req.Version != CSRRequestVersion {
		return errors.Wrap(ErrInvalidParameter, ErrUnsupportedVersion)
	}
	if err := req.Flags.Validate(); err != nil {
		return err
	}
	if req.NumTypeValuePairs != len(req.Subject) {
		return errors.Wrap(ErrInvalidParameter, ErrSubjectCount)
	}
	if req.Class > CertClassEncryption {
		return errors.Wrap(ErrInvalidParameter, ErrUnknownCertClass)
	}
	if req.Flags.Has(UseExistingCSR) {
		if len(req.CSR) == 0 {
			return errors.Wrap(ErrInvalidParameter, ErrMissingCSR)
		}
		return nil
	}
	if req.PublicKey == nil || req.PrivateKey == nil {
		return errors.Wrap(ErrInvalidParameter, ErrMissingKeys)
	}
	if req.Crypto == nil {
		return errors.Wrap(ErrInvalidParameter, ErrMissingCrypto)
	}
	return nil
}

// RequestedClass returns the class sent to the server.
func (req CSRRequest) RequestedClass() CertClass {
	if req.Class == CertClassAll {
		return CertClassIdentity
	}
	return req.Class
}

// ArchiveOp selects the archive operation of an ArchiveRequest.
type ArchiveOp uint8

const (
	ArchiveStore ArchiveOp = iota + 1
	ArchiveFetch
	ArchiveRemove
	ArchiveListOp
)

var archiveOpNames = map[ArchiveOp]string{
	ArchiveStore:  "store",
	ArchiveFetch:  "fetch",
	ArchiveRemove: "remove",
	ArchiveListOp: "list",
}

func (op ArchiveOp) String() string {
	if name, ok := archiveOpNames[op]; ok {
		return name
	}
	return "unknown"
}

// ParseArchiveOp parses an operation name as returned by ArchiveOp.String.
func ParseArchiveOp(s string) (ArchiveOp, error) {
	for op, name := range archiveOpNames {
		if strings.EqualFold(s, name) {
			return op, nil
		}
	}
	return 0, errors.Wrap(ErrInvalidParameter, ErrUnknownArchiveOp)
}

// ArchiveRequest is one archive operation. Fields irrelevant to the
// selected operation are ignored.
type ArchiveRequest struct {
	Version  uint32
	Identity Identity

	// ArchiveName is required for store, fetch and remove.
	ArchiveName []byte

	// TimeString is the UNIX time label of the archive, store only.
	TimeString []byte

	// Payload is the PKCS#12 PFX to store.
	Payload []byte
}

// Validate checks the fields the operation depends on.
func (req ArchiveRequest) Validate(op ArchiveOp) error {
	if _, ok := archiveOpNames[op]; !ok {
		return errors.Wrap(ErrInvalidParameter, ErrUnknownArchiveOp)
	}
	if req.Version != ArchiveRequestVersion {
		return errors.Wrap(ErrInvalidParameter, ErrUnsupportedVersion)
	}
	if err := req.Identity.Validate(); err != nil {
		return err
	}
	if op == ArchiveListOp {
		return nil
	}
	if len(req.ArchiveName) == 0 {
		return errors.Wrap(ErrInvalidParameter, ErrMissingArchiveName)
	}
	if !utf8.Valid(req.ArchiveName) {
		return errors.Wrap(ErrInvalidParameter, ErrInvalidUTF8)
	}
	if op != ArchiveStore {
		return nil
	}
	if len(req.TimeString) == 0 {
		return errors.Wrap(ErrInvalidParameter, ErrMissingTimeString)
	}
	if len(req.Payload) == 0 {
		return errors.Wrap(ErrInvalidParameter, ErrMissingPayload)
	}
	return nil
}
