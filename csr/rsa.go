// Copyright (c) Abstract Machines
// SPDX-License-Identifier: Apache-2.0

package csr

import (
	"context"
	"crypto"
	"crypto/rand"
	"crypto/rsa"
	"crypto/x509"
	"crypto/x509/pkix"
	"io"

	"github.com/absmach/certmgmt"
	"github.com/absmach/supermq/pkg/errors"
)

var (
	// ErrUnsupportedAlgorithm indicates a key algorithm other than RSA.
	ErrUnsupportedAlgorithm = errors.New("unsupported key algorithm")

	// ErrEmptySubject indicates a CSR without subject attributes.
	ErrEmptySubject = errors.New("empty CSR subject")

	// ErrKeyMismatch indicates a public key that does not belong to the
	// private key.
	ErrKeyMismatch = errors.New("public key does not match private key")
)

// Policy is the key and signature policy of the RSA service.
type Policy struct {
	KeyBits            int
	SignatureAlgorithm x509.SignatureAlgorithm
}

// DefaultPolicy is a 1024-bit RSA key with a SHA-1 with RSA CSR signature.
var DefaultPolicy = Policy{
	KeyBits:            certmgmt.DefaultKeySize,
	SignatureAlgorithm: certmgmt.DefaultSignatureAlgorithm,
}

var _ certmgmt.CryptoService = (*RSAService)(nil)

// RSAService is a software CryptoService backed by crypto/rsa.
type RSAService struct {
	policy Policy
	rand   io.Reader
}

// NewRSAService returns a service applying policy. Zero fields of policy
// fall back to DefaultPolicy.
func NewRSAService(policy Policy) *RSAService {
	if policy.KeyBits == 0 {
		policy.KeyBits = DefaultPolicy.KeyBits
	}
	if policy.SignatureAlgorithm == x509.UnknownSignatureAlgorithm {
		policy.SignatureAlgorithm = DefaultPolicy.SignatureAlgorithm
	}
	return &RSAService{
		policy: policy,
		rand:   rand.Reader,
	}
}

func (s *RSAService) GenerateKeyPair(ctx context.Context, alg certmgmt.KeyAlgorithm, bits int) (certmgmt.KeyPair, error) {
	if alg != certmgmt.KeyAlgorithmRSA {
		return certmgmt.KeyPair{}, ErrUnsupportedAlgorithm
	}
	if err := ctx.Err(); err != nil {
		return certmgmt.KeyPair{}, err
	}
	if bits == 0 {
		bits = s.policy.KeyBits
	}
	key, err := rsa.GenerateKey(s.rand, bits)
	if err != nil {
		return certmgmt.KeyPair{}, err
	}

	return certmgmt.KeyPair{
		Public:  &key.PublicKey,
		Private: key,
	}, nil
}

func (s *RSAService) SignCSR(ctx context.Context, keys certmgmt.KeyPair, subject []certmgmt.TypeValue) ([]byte, error) {
	if len(subject) == 0 {
		return nil, ErrEmptySubject
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if keys.Private == nil {
		return nil, certmgmt.ErrMissingKeys
	}
	if pub, ok := keys.Public.(interface{ Equal(crypto.PublicKey) bool }); ok && !pub.Equal(keys.Private.Public()) {
		return nil, ErrKeyMismatch
	}

	names := make([]pkix.AttributeTypeAndValue, 0, len(subject))
	for _, tv := range subject {
		names = append(names, pkix.AttributeTypeAndValue{
			Type:  tv.Type,
			Value: tv.Value,
		})
	}
	template := x509.CertificateRequest{
		Subject: pkix.Name{
			ExtraNames: names,
		},
		SignatureAlgorithm: s.policy.SignatureAlgorithm,
	}

	return x509.CreateCertificateRequest(s.rand, &template, keys.Private)
}
