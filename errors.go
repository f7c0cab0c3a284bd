// Copyright (c) Abstract Machines
// SPDX-License-Identifier: Apache-2.0

package certmgmt

import "github.com/absmach/supermq/pkg/errors"

// Error kinds. Every failure returned by the clients contains exactly one.
var (
	// ErrInvalidParameter indicates a malformed or inconsistent request,
	// detected before any network call.
	ErrInvalidParameter = errors.New("invalid parameter")

	// ErrAuthentication indicates that the server rejected the credentials.
	ErrAuthentication = errors.New("authentication failed")

	// ErrNotFound indicates that the lookup, fetch or remove target is absent.
	ErrNotFound = errors.New("entity not found")

	// ErrServer indicates a non-success response or an unparseable body.
	ErrServer = errors.New("server error")

	// ErrNetwork indicates a transport failure, including timeout and
	// cancellation.
	ErrNetwork = errors.New("network error")

	// ErrRequestQueued indicates that the signing request was accepted and
	// queued for approval instead of being signed.
	ErrRequestQueued = errors.New("request queued for approval")
)

// Details wrapped by ErrInvalidParameter.
var (
	ErrUnsupportedVersion     = errors.New("unsupported request version")
	ErrMissingUserName        = errors.New("missing user name")
	ErrMissingPassword        = errors.New("missing password")
	ErrInvalidUTF8            = errors.New("credentials are not valid UTF-8")
	ErrMissingCSR             = errors.New("missing CSR")
	ErrMissingKeys            = errors.New("missing key pair")
	ErrMissingCrypto          = errors.New("missing cryptographic service")
	ErrSubjectCount           = errors.New("type/value pair count does not match subject")
	ErrUnknownFlag            = errors.New("unknown request flag")
	ErrFlagCombination        = errors.New("invalid request flag combination")
	ErrMissingArchiveName     = errors.New("missing archive name")
	ErrMissingTimeString      = errors.New("missing archive time string")
	ErrMissingPayload         = errors.New("missing archive payload")
	ErrUnknownCertClass       = errors.New("unknown certificate class")
	ErrUnknownArchiveOp       = errors.New("unknown archive operation")
	ErrUnsupportedRequestType = errors.New("unsupported request type")
)

var (
	// ErrCryptoService indicates that the external cryptographic service
	// failed to generate a key pair or sign a CSR.
	ErrCryptoService = errors.New("cryptographic service failure")

	// ErrAlreadyReleased indicates a second release of a caller-owned buffer.
	ErrAlreadyReleased = errors.New("buffer already released")
)
