// Copyright (c) Abstract Machines
// SPDX-License-Identifier: Apache-2.0

package http

import "github.com/absmach/supermq/pkg/errors"

var (
	// ErrMissingUserName indicates missing user name.
	ErrMissingUserName = errors.New("missing user name")

	// ErrMissingPassword indicates missing password.
	ErrMissingPassword = errors.New("missing password")

	// ErrMissingCSR indicates missing CSR.
	ErrMissingCSR = errors.New("missing CSR")

	// ErrInvalidAction indicates a sign action other than new or renew.
	ErrInvalidAction = errors.New("invalid sign action")

	// ErrMissingArchiveName indicates missing archive name.
	ErrMissingArchiveName = errors.New("missing archive name")

	// ErrMissingTimeString indicates missing archive time string.
	ErrMissingTimeString = errors.New("missing archive time string")

	// ErrMissingPFX indicates missing archive payload.
	ErrMissingPFX = errors.New("missing archive payload")

	// ErrMissingRequestID indicates missing pending request ID.
	ErrMissingRequestID = errors.New("missing request ID")

	// ErrUnsupportedContentType indicates unacceptable or lack of Content-Type.
	ErrUnsupportedContentType = errors.New("unsupported content type")

	// ErrInvalidRequest indicates that the request is invalid.
	ErrInvalidRequest = errors.New("invalid request")
)
