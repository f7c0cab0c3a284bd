// Copyright (c) Abstract Machines
// SPDX-License-Identifier: Apache-2.0

// Package certmgmt holds the request and result types shared by the
// certificate enrollment, lookup and credential archive clients.
package certmgmt

import (
	"context"
	"crypto"
	"crypto/x509"
	"encoding/asn1"
	"encoding/json"
	"strings"
	"unicode/utf8"

	"github.com/absmach/supermq/pkg/errors"
)

// Default endpoints of the certificate management service.
const (
	SignSchema   = "http://"
	SignHost     = "certmgmt.mac.com"
	SignPath     = "/sign"
	ArchiveHost  = "certmgmt.mac.com"
	ArchivePath  = "/archive"
	LookupSchema = "http://"
	// LookupHost has no override mechanism in the protocol.
	LookupHost = "certinfo.mac.com"

	DefaultSignURL    = SignSchema + SignHost + SignPath
	DefaultArchiveURL = SignSchema + ArchiveHost + ArchivePath
	DefaultLookupURL  = LookupSchema + LookupHost
)

// Lookup paths. Each is followed by the user name.
const (
	LookupAllPath        = "/lookup?"
	LookupIdentityPath   = "/lookup/ichat?"
	LookupSigningPath    = "/lookup/email?"
	LookupEncryptionPath = "/lookup/emailencrypt?"
)

// PendingHeader carries the answer to a pending-request check.
const PendingHeader = "X-Request-Pending"

// KeyAlgorithm names the algorithm of a generated key pair.
type KeyAlgorithm string

const KeyAlgorithmRSA KeyAlgorithm = "RSA"

// Default key and CSR signature policy.
const (
	DefaultKeyAlgorithm       = KeyAlgorithmRSA
	DefaultKeySize            = 1024
	DefaultSignatureAlgorithm = x509.SHA1WithRSA
)

// Identity holds the UTF-8 encoded credentials sent with every remote call.
type Identity struct {
	UserName []byte
	Password []byte
}

// NewIdentity returns an Identity for the given user name and password.
func NewIdentity(userName, password string) Identity {
	return Identity{
		UserName: []byte(userName),
		Password: []byte(password),
	}
}

// Validate checks that both credentials are present and valid UTF-8.
func (id Identity) Validate() error {
	if len(id.UserName) == 0 {
		return errors.Wrap(ErrInvalidParameter, ErrMissingUserName)
	}
	if len(id.Password) == 0 {
		return errors.Wrap(ErrInvalidParameter, ErrMissingPassword)
	}
	if !utf8.Valid(id.UserName) || !utf8.Valid(id.Password) {
		return errors.Wrap(ErrInvalidParameter, ErrInvalidUTF8)
	}
	return nil
}

// CertClass filters certificate lookups.
type CertClass uint8

const (
	CertClassAll CertClass = iota
	CertClassIdentity
	CertClassSigning
	CertClassEncryption
)

var certClassNames = map[CertClass]string{
	CertClassAll:        "all",
	CertClassIdentity:   "identity",
	CertClassSigning:    "signing",
	CertClassEncryption: "encryption",
}

func (c CertClass) String() string {
	if name, ok := certClassNames[c]; ok {
		return name
	}
	return "unknown"
}

// LookupPath returns the lookup path for the class, including the trailing
// query separator.
func (c CertClass) LookupPath() (string, error) {
	switch c {
	case CertClassAll:
		return LookupAllPath, nil
	case CertClassIdentity:
		return LookupIdentityPath, nil
	case CertClassSigning:
		return LookupSigningPath, nil
	case CertClassEncryption:
		return LookupEncryptionPath, nil
	default:
		return "", errors.Wrap(ErrInvalidParameter, ErrUnknownCertClass)
	}
}

// ParseCertClass parses a class name as returned by CertClass.String.
func ParseCertClass(s string) (CertClass, error) {
	for c, name := range certClassNames {
		if strings.EqualFold(s, name) {
			return c, nil
		}
	}
	return CertClassAll, errors.Wrap(ErrInvalidParameter, ErrUnknownCertClass)
}

func (c CertClass) MarshalJSON() ([]byte, error) {
	return json.Marshal(c.String())
}

func (c *CertClass) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	class, err := ParseCertClass(s)
	if err != nil {
		return err
	}
	*c = class
	return nil
}

// TypeValue is one attribute of a CSR subject.
type TypeValue struct {
	Type  asn1.ObjectIdentifier
	Value string
}

// KeyPair is the key pair to be certified. Private signs the CSR.
type KeyPair struct {
	Public  crypto.PublicKey
	Private crypto.Signer
}

// CryptoService is the external cryptographic service that owns key
// material and produces CSR signatures.
type CryptoService interface {
	// GenerateKeyPair generates a key pair of the given algorithm and size.
	GenerateKeyPair(ctx context.Context, alg KeyAlgorithm, bits int) (KeyPair, error)

	// SignCSR returns a DER encoded CSR over subject, signed with keys.
	SignCSR(ctx context.Context, keys KeyPair, subject []TypeValue) ([]byte, error)
}

// Enrollment is the result of a CSR submission. Certificate is empty for a
// dry run; CSR is set only when ReturnCSR was requested.
type Enrollment struct {
	Certificate []byte `json:"certificate,omitempty"`
	CSR         []byte `json:"csr,omitempty"`
}

// ParseCertificate parses the signed DER certificate.
func (e Enrollment) ParseCertificate() (*x509.Certificate, error) {
	if len(e.Certificate) == 0 {
		return nil, ErrNotFound
	}
	return x509.ParseCertificate(e.Certificate)
}

// LookupRequest selects the certificates of a user.
type LookupRequest struct {
	UserName string
	Class    CertClass
	// PendingOnly asks only whether a signing request is outstanding.
	PendingOnly bool
}

// Validate checks the lookup request.
func (req LookupRequest) Validate() error {
	if req.UserName == "" {
		return errors.Wrap(ErrInvalidParameter, ErrMissingUserName)
	}
	if !utf8.ValidString(req.UserName) {
		return errors.Wrap(ErrInvalidParameter, ErrInvalidUTF8)
	}
	if _, err := req.Class.LookupPath(); err != nil {
		return err
	}
	return nil
}

// LookupResult holds either the certificates or, for a pending check, the
// pending status. Certificates is the zero sequence for a pending check.
type LookupResult struct {
	Certificates CertificateSeq
	Pending      bool
}
