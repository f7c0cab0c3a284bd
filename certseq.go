// Copyright (c) Abstract Machines
// SPDX-License-Identifier: Apache-2.0

package certmgmt

import (
	"bytes"
	"crypto/x509"
	"encoding/pem"
	"iter"
	"sync"

	"github.com/absmach/supermq/pkg/errors"
)

const pemCertificate = "CERTIFICATE"

// CertificateSeq is a lazy, finite and non-restartable sequence of
// certificates in the order the server returned them.
type CertificateSeq struct {
	st *certSeqState
}

type certSeqState struct {
	mu   sync.Mutex
	rest []byte
	done bool
}

// NewCertificateSeq returns a sequence over the PEM CERTIFICATE blocks of
// data. Other block types are skipped.
func NewCertificateSeq(data []byte) CertificateSeq {
	return CertificateSeq{st: &certSeqState{rest: data}}
}

// HasCertificates reports whether data holds at least one certificate block.
func HasCertificates(data []byte) bool {
	return bytes.Contains(data, []byte("-----BEGIN "+pemCertificate+"-----"))
}

// IsZero reports whether s was never populated.
func (s CertificateSeq) IsZero() bool {
	return s.st == nil
}

// All yields the remaining certificates. Iteration stops at the first
// malformed certificate, which is yielded as an ErrServer error. A later
// call resumes after the last certificate yielded.
func (s CertificateSeq) All() iter.Seq2[*x509.Certificate, error] {
	return func(yield func(*x509.Certificate, error) bool) {
		if s.st == nil {
			return
		}
		for {
			cert, ok, err := s.st.next()
			if !ok {
				return
			}
			if !yield(cert, err) || err != nil {
				return
			}
		}
	}
}

// Collect drains the sequence.
func (s CertificateSeq) Collect() ([]*x509.Certificate, error) {
	var certs []*x509.Certificate
	for cert, err := range s.All() {
		if err != nil {
			return certs, err
		}
		certs = append(certs, cert)
	}
	return certs, nil
}

func (st *certSeqState) next() (*x509.Certificate, bool, error) {
	st.mu.Lock()
	defer st.mu.Unlock()
	for !st.done {
		var block *pem.Block
		block, st.rest = pem.Decode(st.rest)
		if block == nil {
			st.done = true
			st.rest = nil
			return nil, false, nil
		}
		if block.Type != pemCertificate {
			continue
		}
		cert, err := x509.ParseCertificate(block.Bytes)
		if err != nil {
			st.done = true
			st.rest = nil
			return nil, true, errors.Wrap(ErrServer, err)
		}
		return cert, true, nil
	}
	return nil, false, nil
}
