// Copyright (c) Abstract Machines
// SPDX-License-Identifier: Apache-2.0

// Package authority implements a reference certificate authority speaking
// the enrollment, lookup and archive protocol. It signs CSRs with a local CA
// and is meant for development and integration testing of the clients.
package authority

import (
	"context"
	"crypto/x509"
	"time"

	"github.com/absmach/certmgmt"
	"github.com/absmach/supermq/pkg/errors"
)

var (
	// ErrMalformedCSR indicates a CSR that cannot be parsed or whose
	// signature does not verify.
	ErrMalformedCSR = errors.New("malformed certificate signing request")

	// ErrSubjectMismatch indicates a CSR whose common name is not the
	// requesting user.
	ErrSubjectMismatch = errors.New("CSR subject does not match user")

	// ErrNothingToRenew indicates a renewal for a class without an issued
	// certificate.
	ErrNothingToRenew = errors.New("no certificate to renew")

	// ErrConflict indicates that the entity already exists.
	ErrConflict = errors.New("entity already exists")

	// ErrMalformedEntity indicates a malformed entity specification.
	ErrMalformedEntity = errors.New("malformed entity specification")

	// ErrCreateEntity indicates an error in creating an entity.
	ErrCreateEntity = errors.New("failed to create entity")

	// ErrViewEntity indicates an error in viewing an entity.
	ErrViewEntity = errors.New("view entity failed")

	// ErrRemoveEntity indicates an error in removing an entity.
	ErrRemoveEntity = errors.New("failed to remove entity")

	// ErrRootCANotFound indicates a service without a signing CA.
	ErrRootCANotFound = errors.New("root CA not found")
)

// User is an account allowed to enroll and archive.
type User struct {
	Name         string
	PasswordHash []byte
	CreatedAt    time.Time
}

// Certificate is an issued certificate.
type Certificate struct {
	SerialNumber string
	UserName     string
	Class        certmgmt.CertClass
	// DER is the DER encoded certificate.
	DER        []byte
	Renewal    bool
	ExpiryTime time.Time
	CreatedAt  time.Time
}

// PendingRequest is a signing request queued for approval.
type PendingRequest struct {
	ID        string
	UserName  string
	Class     certmgmt.CertClass
	CSR       []byte
	Renewal   bool
	CreatedAt time.Time
}

// Archive is a stored credential archive.
type Archive struct {
	UserName   string
	Name       string
	TimeString string
	PFX        []byte
	UpdatedAt  time.Time
}

// SignRequest is a CSR submitted for signing.
type SignRequest struct {
	Identity certmgmt.Identity
	Renew    bool
	Class    certmgmt.CertClass
	CSR      []byte
}

// SignResult holds either the signed certificate or, when the request was
// queued, the pending request ID.
type SignResult struct {
	Certificate Certificate
	Queued      bool
	RequestID   string
}

// Config holds the issuance policy.
type Config struct {
	// ValidityPeriod is the lifetime of issued certificates.
	ValidityPeriod time.Duration
	// RequireApproval queues every signing request until Approve is called.
	RequireApproval bool
	// AutoRegister creates unknown users on their first authenticated call.
	AutoRegister bool
}

//go:generate mockery --name Service --output=./mocks --filename service.go --quiet --note "Copyright (c) Abstract Machines"
type Service interface {
	// Register creates a user or updates its password.
	Register(ctx context.Context, userName, password string) error

	// Sign issues a certificate for the CSR, or queues the request when
	// approval is required.
	Sign(ctx context.Context, req SignRequest) (SignResult, error)

	// Approve signs a queued request.
	Approve(ctx context.Context, requestID string) (Certificate, error)

	// Lookup returns the certificates of a user in issuance order. Class
	// All matches every class.
	Lookup(ctx context.Context, userName string, class certmgmt.CertClass) ([]Certificate, error)

	// IsPending reports whether a request of the user is queued.
	IsPending(ctx context.Context, userName string, class certmgmt.CertClass) (bool, error)

	// StoreArchive stores an archive, replacing one of the same name.
	StoreArchive(ctx context.Context, id certmgmt.Identity, archive Archive) error

	// FetchArchive retrieves an archive by name.
	FetchArchive(ctx context.Context, id certmgmt.Identity, name string) (Archive, error)

	// RemoveArchive removes an archive by name.
	RemoveArchive(ctx context.Context, id certmgmt.Identity, name string) error

	// ListArchives lists the archives of a user in name order.
	ListArchives(ctx context.Context, id certmgmt.Identity) ([]Archive, error)

	// CACert returns the signing CA certificate.
	CACert(ctx context.Context) (*x509.Certificate, error)
}

//go:generate mockery --name Repository --output=./mocks --filename repository.go --quiet --note "Copyright (c) Abstract Machines"
type Repository interface {
	// SaveUser creates a user or replaces its password hash.
	SaveUser(ctx context.Context, user User) error

	// RetrieveUser retrieves a user by name.
	RetrieveUser(ctx context.Context, name string) (User, error)

	// CreateCert adds an issued certificate.
	CreateCert(ctx context.Context, cert Certificate) error

	// ListCerts lists the certificates of a user, oldest first. Class All
	// matches every class.
	ListCerts(ctx context.Context, userName string, class certmgmt.CertClass) ([]Certificate, error)

	// CreatePending queues a signing request.
	CreatePending(ctx context.Context, req PendingRequest) error

	// RetrievePending retrieves a queued request by ID.
	RetrievePending(ctx context.Context, id string) (PendingRequest, error)

	// RemovePending removes a queued request.
	RemovePending(ctx context.Context, id string) error

	// CountPending counts the queued requests of a user. Class All matches
	// every class.
	CountPending(ctx context.Context, userName string, class certmgmt.CertClass) (uint64, error)

	// SaveArchive creates or replaces an archive.
	SaveArchive(ctx context.Context, archive Archive) error

	// RetrieveArchive retrieves an archive by user and name.
	RetrieveArchive(ctx context.Context, userName, name string) (Archive, error)

	// RemoveArchive removes an archive by user and name.
	RemoveArchive(ctx context.Context, userName, name string) error

	// ListArchives lists the archives of a user in name order.
	ListArchives(ctx context.Context, userName string) ([]Archive, error)
}
