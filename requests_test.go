// Copyright (c) Abstract Machines
// SPDX-License-Identifier: Apache-2.0

package certmgmt_test

import (
	"context"
	"crypto/rand"
	"crypto/rsa"
	"encoding/json"
	"fmt"
	"testing"

	"github.com/absmach/certmgmt"
	"github.com/absmach/supermq/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubCrypto struct{}

func (stubCrypto) GenerateKeyPair(context.Context, certmgmt.KeyAlgorithm, int) (certmgmt.KeyPair, error) {
	return certmgmt.KeyPair{}, nil
}

func (stubCrypto) SignCSR(context.Context, certmgmt.KeyPair, []certmgmt.TypeValue) ([]byte, error) {
	return []byte{0x30}, nil
}

func TestIdentityValidate(t *testing.T) {
	cases := []struct {
		desc     string
		identity certmgmt.Identity
		err      error
	}{
		{
			desc:     "valid identity",
			identity: certmgmt.NewIdentity("alice", "p1"),
		},
		{
			desc:     "missing user name",
			identity: certmgmt.NewIdentity("", "p1"),
			err:      certmgmt.ErrMissingUserName,
		},
		{
			desc:     "missing password",
			identity: certmgmt.NewIdentity("alice", ""),
			err:      certmgmt.ErrMissingPassword,
		},
		{
			desc:     "invalid UTF-8 user name",
			identity: certmgmt.Identity{UserName: []byte{0xff, 0xfe}, Password: []byte("p1")},
			err:      certmgmt.ErrInvalidUTF8,
		},
	}

	for _, tc := range cases {
		t.Run(tc.desc, func(t *testing.T) {
			err := tc.identity.Validate()
			assert.True(t, errors.Contains(err, tc.err), fmt.Sprintf("%s: expected error %s, got %s", tc.desc, tc.err, err))
			if tc.err != nil {
				assert.True(t, errors.Contains(err, certmgmt.ErrInvalidParameter))
			}
		})
	}
}

func TestCertClass(t *testing.T) {
	cases := []struct {
		desc  string
		class certmgmt.CertClass
		name  string
		path  string
	}{
		{
			desc:  "all classes",
			class: certmgmt.CertClassAll,
			name:  "all",
			path:  "/lookup?",
		},
		{
			desc:  "identity",
			class: certmgmt.CertClassIdentity,
			name:  "identity",
			path:  "/lookup/ichat?",
		},
		{
			desc:  "signing",
			class: certmgmt.CertClassSigning,
			name:  "signing",
			path:  "/lookup/email?",
		},
		{
			desc:  "encryption",
			class: certmgmt.CertClassEncryption,
			name:  "encryption",
			path:  "/lookup/emailencrypt?",
		},
	}

	for _, tc := range cases {
		t.Run(tc.desc, func(t *testing.T) {
			assert.Equal(t, tc.name, tc.class.String())

			path, err := tc.class.LookupPath()
			require.Nil(t, err, fmt.Sprintf("unexpected error: %s", err))
			assert.Equal(t, tc.path, path)

			parsed, err := certmgmt.ParseCertClass(tc.name)
			require.Nil(t, err, fmt.Sprintf("unexpected error: %s", err))
			assert.Equal(t, tc.class, parsed)

			data, err := json.Marshal(tc.class)
			require.Nil(t, err, fmt.Sprintf("unexpected error: %s", err))
			var decoded certmgmt.CertClass
			require.Nil(t, json.Unmarshal(data, &decoded))
			assert.Equal(t, tc.class, decoded)
		})
	}

	_, err := certmgmt.CertClass(9).LookupPath()
	assert.True(t, errors.Contains(err, certmgmt.ErrUnknownCertClass))
	_, err = certmgmt.ParseCertClass("bogus")
	assert.True(t, errors.Contains(err, certmgmt.ErrUnknownCertClass))
	var decoded certmgmt.CertClass
	assert.NotNil(t, json.Unmarshal([]byte(`"bogus"`), &decoded))
}

func TestCSRRequestValidate(t *testing.T) {
	key, err := rsa.GenerateKey(rand.Reader, 1024)
	require.Nil(t, err, fmt.Sprintf("unexpected error: %s", err))
	subject := []certmgmt.TypeValue{{Value: "alice"}}

	valid := certmgmt.CSRRequest{
		Version:           certmgmt.CSRRequestVersion,
		Crypto:            stubCrypto{},
		NumTypeValuePairs: 1,
		Subject:           subject,
		PublicKey:         &key.PublicKey,
		PrivateKey:        key,
		Identity:          certmgmt.NewIdentity("alice", "p1"),
	}

	cases := []struct {
		desc   string
		modify func(req *certmgmt.CSRRequest)
		err    error
	}{
		{
			desc:   "valid request",
			modify: func(*certmgmt.CSRRequest) {},
		},
		{
			desc:   "unsupported version",
			modify: func(req *certmgmt.CSRRequest) { req.Version = 1 },
			err:    certmgmt.ErrUnsupportedVersion,
		},
		{
			desc:   "subject count mismatch",
			modify: func(req *certmgmt.CSRRequest) { req.NumTypeValuePairs = 2 },
			err:    certmgmt.ErrSubjectCount,
		},
		{
			desc:   "unknown class",
			modify: func(req *certmgmt.CSRRequest) { req.Class = 7 },
			err:    certmgmt.ErrUnknownCertClass,
		},
		{
			desc:   "missing keys",
			modify: func(req *certmgmt.CSRRequest) { req.PrivateKey = nil },
			err:    certmgmt.ErrMissingKeys,
		},
		{
			desc:   "missing crypto service",
			modify: func(req *certmgmt.CSRRequest) { req.Crypto = nil },
			err:    certmgmt.ErrMissingCrypto,
		},
		{
			desc: "existing CSR without keys",
			modify: func(req *certmgmt.CSRRequest) {
				req.Flags = certmgmt.MustFlags(certmgmt.UseExistingCSR)
				req.PublicKey, req.PrivateKey, req.Crypto = nil, nil, nil
				req.CSR = []byte{0x30}
			},
		},
		{
			desc: "existing CSR missing",
			modify: func(req *certmgmt.CSRRequest) {
				req.Flags = certmgmt.MustFlags(certmgmt.UseExistingCSR)
			},
			err: certmgmt.ErrMissingCSR,
		},
	}

	for _, tc := range cases {
		t.Run(tc.desc, func(t *testing.T) {
			req := valid
			tc.modify(&req)
			err := req.Validate()
			assert.True(t, errors.Contains(err, tc.err), fmt.Sprintf("%s: expected error %s, got %s", tc.desc, tc.err, err))
		})
	}

	assert.Equal(t, certmgmt.CertClassIdentity, certmgmt.CSRRequest{}.RequestedClass())
	assert.Equal(t, certmgmt.CertClassSigning, certmgmt.CSRRequest{Class: certmgmt.CertClassSigning}.RequestedClass())
}

func TestArchiveRequestValidate(t *testing.T) {
	identity := certmgmt.NewIdentity("alice", "p1")
	store := certmgmt.ArchiveRequest{
		Identity:    identity,
		ArchiveName: []byte("home-mac"),
		TimeString:  []byte("1700000000"),
		Payload:     []byte("pfx"),
	}

	cases := []struct {
		desc string
		op   certmgmt.ArchiveOp
		req  certmgmt.ArchiveRequest
		err  error
	}{
		{
			desc: "store",
			op:   certmgmt.ArchiveStore,
			req:  store,
		},
		{
			desc: "store without payload",
			op:   certmgmt.ArchiveStore,
			req:  certmgmt.ArchiveRequest{Identity: identity, ArchiveName: []byte("home-mac"), TimeString: []byte("1")},
			err:  certmgmt.ErrMissingPayload,
		},
		{
			desc: "store without time string",
			op:   certmgmt.ArchiveStore,
			req:  certmgmt.ArchiveRequest{Identity: identity, ArchiveName: []byte("home-mac"), Payload: []byte("pfx")},
			err:  certmgmt.ErrMissingTimeString,
		},
		{
			desc: "fetch ignores payload fields",
			op:   certmgmt.ArchiveFetch,
			req:  certmgmt.ArchiveRequest{Identity: identity, ArchiveName: []byte("home-mac")},
		},
		{
			desc: "remove without name",
			op:   certmgmt.ArchiveRemove,
			req:  certmgmt.ArchiveRequest{Identity: identity},
			err:  certmgmt.ErrMissingArchiveName,
		},
		{
			desc: "remove with invalid UTF-8 name",
			op:   certmgmt.ArchiveRemove,
			req:  certmgmt.ArchiveRequest{Identity: identity, ArchiveName: []byte{0xc3, 0x28}},
			err:  certmgmt.ErrInvalidUTF8,
		},
		{
			desc: "list needs only the identity",
			op:   certmgmt.ArchiveListOp,
			req:  certmgmt.ArchiveRequest{Identity: identity},
		},
		{
			desc: "list without password",
			op:   certmgmt.ArchiveListOp,
			req:  certmgmt.ArchiveRequest{Identity: certmgmt.NewIdentity("alice", "")},
			err:  certmgmt.ErrMissingPassword,
		},
		{
			desc: "unsupported version",
			op:   certmgmt.ArchiveFetch,
			req:  certmgmt.ArchiveRequest{Version: 3, Identity: identity, ArchiveName: []byte("home-mac")},
			err:  certmgmt.ErrUnsupportedVersion,
		},
		{
			desc: "unknown operation",
			op:   certmgmt.ArchiveOp(0),
			req:  store,
			err:  certmgmt.ErrUnknownArchiveOp,
		},
	}

	for _, tc := range cases {
		t.Run(tc.desc, func(t *testing.T) {
			err := tc.req.Validate(tc.op)
			assert.True(t, errors.Contains(err, tc.err), fmt.Sprintf("%s: expected error %s, got %s", tc.desc, tc.err, err))
		})
	}

	op, err := certmgmt.ParseArchiveOp("FETCH")
	require.Nil(t, err, fmt.Sprintf("unexpected error: %s", err))
	assert.Equal(t, certmgmt.ArchiveFetch, op)
	op, err = certmgmt.ParseArchiveOp("list")
	require.Nil(t, err, fmt.Sprintf("unexpected error: %s", err))
	assert.Equal(t, certmgmt.ArchiveListOp, op)
	assert.Equal(t, "list", op.String())
	_, err = certmgmt.ParseArchiveOp("rename")
	assert.True(t, errors.Contains(err, certmgmt.ErrUnknownArchiveOp))
}

func TestLookupRequestValidate(t *testing.T) {
	cases := []struct {
		desc string
		req  certmgmt.LookupRequest
		err  error
	}{
		{
			desc: "valid lookup",
			req:  certmgmt.LookupRequest{UserName: "alice", Class: certmgmt.CertClassSigning},
		},
		{
			desc: "missing user name",
			req:  certmgmt.LookupRequest{Class: certmgmt.CertClassSigning},
			err:  certmgmt.ErrMissingUserName,
		},
		{
			desc: "invalid UTF-8 user name",
			req:  certmgmt.LookupRequest{UserName: string([]byte{0xff})},
			err:  certmgmt.ErrInvalidUTF8,
		},
		{
			desc: "unknown class",
			req:  certmgmt.LookupRequest{UserName: "alice", Class: 4},
			err:  certmgmt.ErrUnknownCertClass,
		},
	}

	for _, tc := range cases {
		t.Run(tc.desc, func(t *testing.T) {
			err := tc.req.Validate()
			assert.True(t, errors.Contains(err, tc.err), fmt.Sprintf("%s: expected error %s, got %s", tc.desc, tc.err, err))
		})
	}
}
