// Copyright (c) Abstract Machines
// SPDX-License-Identifier: Apache-2.0

// Package csr builds the certificate signing requests submitted by the
// enrollment client. It performs no network I/O.
package csr

import (
	"context"
	"encoding/asn1"

	"github.com/absmach/certmgmt"
	"github.com/absmach/supermq/pkg/errors"
)

var oidCommonName = asn1.ObjectIdentifier{2, 5, 4, 3}

// CommonNameSubject returns a subject holding only the given common name,
// typically the user name.
func CommonNameSubject(commonName string) []certmgmt.TypeValue {
	return []certmgmt.TypeValue{
		{Type: oidCommonName, Value: commonName},
	}
}

// Build returns the transport-ready DER encoded CSR of req. With
// UseExistingCSR the supplied CSR is passed through; otherwise the request's
// crypto service signs a new one over the subject.
func Build(ctx context.Context, req certmgmt.CSRRequest) ([]byte, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	if req.Flags.Has(certmgmt.UseExistingCSR) {
		return req.CSR, nil
	}

	keys := certmgmt.KeyPair{
		Public:  req.PublicKey,
		Private: req.PrivateKey,
	}
	der, err := req.Crypto.SignCSR(ctx, keys, req.Subject)
	if err != nil {
		return nil, errors.Wrap(certmgmt.ErrCryptoService, err)
	}
	if len(der) == 0 {
		return nil, errors.Wrap(certmgmt.ErrCryptoService, certmgmt.ErrMissingCSR)
	}

	return der, nil
}

// NewRequest generates a key pair through svc using the default key policy
// and returns a CSR request for identity with a common name subject.
func NewRequest(ctx context.Context, svc certmgmt.CryptoService, identity certmgmt.Identity, flags certmgmt.Flags) (certmgmt.CSRRequest, error) {
	if svc == nil {
		return certmgmt.CSRRequest{}, errors.Wrap(certmgmt.ErrInvalidParameter, certmgmt.ErrMissingCrypto)
	}
	keys, err := svc.GenerateKeyPair(ctx, certmgmt.DefaultKeyAlgorithm, certmgmt.DefaultKeySize)
	if err != nil {
		return certmgmt.CSRRequest{}, errors.Wrap(certmgmt.ErrCryptoService, err)
	}
	subject := CommonNameSubject(string(identity.UserName))

	return certmgmt.CSRRequest{
		Version:           certmgmt.CSRRequestVersion,
		Crypto:            svc,
		NumTypeValuePairs: len(subject),
		Subject:           subject,
		PublicKey:         keys.Public,
		PrivateKey:        keys.Private,
		Identity:          identity,
		Flags:             flags,
	}, nil
}
