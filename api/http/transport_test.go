// Copyright (c) Abstract Machines
// SPDX-License-Identifier: Apache-2.0

package http_test

import (
	"context"
	"crypto/x509"
	"encoding/json"
	"encoding/pem"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/absmach/certmgmt"
	mgapi "github.com/absmach/certmgmt/api"
	httpapi "github.com/absmach/certmgmt/api/http"
	"github.com/absmach/certmgmt/authority"
	"github.com/absmach/certmgmt/authority/mocks"
	sdkmocks "github.com/absmach/certmgmt/sdk/mocks"
	"github.com/absmach/supermq/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

const (
	instanceID  = "5de9b29a-feb9-11ed-be56-0242ac120002"
	contentType = "application/json"
	userName    = "alice@mac.com"
	password    = "secret"
	adminToken  = "admin-token"
	requestID   = "123e4567-e89b-12d3-a456-000000000001"
)

var der = []byte{0x30, 0x03, 0x02, 0x01, 0x01}

type testRequest struct {
	client      *http.Client
	method      string
	url         string
	contentType string
	token       string
	body        io.Reader
}

func (tr testRequest) make() (*http.Response, error) {
	req, err := http.NewRequest(tr.method, tr.url, tr.body)
	if err != nil {
		return nil, err
	}
	if tr.token != "" {
		req.Header.Set("Authorization", "Bearer "+tr.token)
	}
	if tr.contentType != "" {
		req.Header.Set("Content-Type", tr.contentType)
	}
	return tr.client.Do(req)
}

// resetMock drops expectations and recorded calls. Unset cannot remove
// expectations registered with argument matchers.
func resetMock(m *mock.Mock) {
	m.ExpectedCalls = nil
	m.Calls = nil
}

func newServer() (*httptest.Server, *mocks.Service) {
	svc := new(mocks.Service)
	handler := httpapi.MakeHandler(svc, sdkmocks.NewLogger(slog.LevelDebug), instanceID)
	return httptest.NewServer(handler), svc
}

func toJSON(data any) string {
	jsonData, err := json.Marshal(data)
	if err != nil {
		return ""
	}
	return string(jsonData)
}

type errorRes struct {
	Err string `json:"error"`
	Msg string `json:"message"`
}

func TestSign(t *testing.T) {
	ts, svc := newServer()
	defer ts.Close()

	validReq := map[string]any{
		"user_name":  userName,
		"password":   password,
		"action":     "new",
		"cert_class": "signing",
		"csr":        []byte("csr"),
	}
	renewReq := map[string]any{
		"user_name":  userName,
		"password":   password,
		"action":     "renew",
		"cert_class": "identity",
		"csr":        []byte("csr"),
	}

	cases := []struct {
		desc        string
		req         string
		contentType string
		svcRes      authority.SignResult
		svcErr      error
		svcCalled   bool
		renew       bool
		class       certmgmt.CertClass
		status      int
		cert        []byte
		requestID   string
		errMsg      string
	}{
		{
			desc:        "sign new certificate",
			req:         toJSON(validReq),
			contentType: contentType,
			svcRes:      authority.SignResult{Certificate: authority.Certificate{DER: der}},
			svcCalled:   true,
			class:       certmgmt.CertClassSigning,
			status:      http.StatusCreated,
			cert:        der,
		},
		{
			desc:        "renew certificate",
			req:         toJSON(renewReq),
			contentType: contentType,
			svcRes:      authority.SignResult{Certificate: authority.Certificate{DER: der}},
			svcCalled:   true,
			renew:       true,
			class:       certmgmt.CertClassIdentity,
			status:      http.StatusCreated,
			cert:        der,
		},
		{
			desc:        "sign queued request",
			req:         toJSON(validReq),
			contentType: contentType,
			svcRes:      authority.SignResult{Queued: true, RequestID: requestID},
			svcCalled:   true,
			class:       certmgmt.CertClassSigning,
			status:      http.StatusAccepted,
			requestID:   requestID,
		},
		{
			desc:        "sign with invalid credentials",
			req:         toJSON(validReq),
			contentType: contentType,
			svcErr:      certmgmt.ErrAuthentication,
			svcCalled:   true,
			class:       certmgmt.CertClassSigning,
			status:      http.StatusUnauthorized,
			errMsg:      certmgmt.ErrAuthentication.Error(),
		},
		{
			desc:        "sign with mismatched subject",
			req:         toJSON(validReq),
			contentType: contentType,
			svcErr:      errors.Wrap(authority.ErrMalformedEntity, authority.ErrSubjectMismatch),
			svcCalled:   true,
			class:       certmgmt.CertClassSigning,
			status:      http.StatusBadRequest,
			errMsg:      certmgmt.ErrInvalidParameter.Error(),
		},
		{
			desc:        "renew without certificate",
			req:         toJSON(renewReq),
			contentType: contentType,
			svcErr:      errors.Wrap(certmgmt.ErrNotFound, authority.ErrNothingToRenew),
			svcCalled:   true,
			renew:       true,
			class:       certmgmt.CertClassIdentity,
			status:      http.StatusNotFound,
			errMsg:      certmgmt.ErrNotFound.Error(),
		},
		{
			desc:        "sign with invalid content type",
			req:         toJSON(validReq),
			contentType: "text/plain",
			status:      http.StatusUnsupportedMediaType,
			errMsg:      httpapi.ErrUnsupportedContentType.Error(),
		},
		{
			desc:        "sign with malformed body",
			req:         "{",
			contentType: contentType,
			status:      http.StatusBadRequest,
			errMsg:      certmgmt.ErrInvalidParameter.Error(),
		},
		{
			desc: "sign with invalid action",
			req: toJSON(map[string]any{
				"user_name":  userName,
				"password":   password,
				"action":     "revoke",
				"cert_class": "identity",
				"csr":        []byte("csr"),
			}),
			contentType: contentType,
			status:      http.StatusBadRequest,
			errMsg:      certmgmt.ErrInvalidParameter.Error(),
		},
		{
			desc: "sign without CSR",
			req: toJSON(map[string]any{
				"user_name":  userName,
				"password":   password,
				"action":     "new",
				"cert_class": "identity",
			}),
			contentType: contentType,
			status:      http.StatusBadRequest,
			errMsg:      certmgmt.ErrInvalidParameter.Error(),
		},
	}

	for _, tc := range cases {
		t.Run(tc.desc, func(t *testing.T) {
			svc.On("Sign", mock.Anything, mock.MatchedBy(func(req authority.SignRequest) bool {
				return string(req.Identity.UserName) == userName && req.Renew == tc.renew && req.Class == tc.class
			})).Return(tc.svcRes, tc.svcErr)

			req := testRequest{
				client:      ts.Client(),
				method:      http.MethodPost,
				url:         ts.URL + certmgmt.SignPath,
				contentType: tc.contentType,
				body:        strings.NewReader(tc.req),
			}
			res, err := req.make()
			require.Nil(t, err, fmt.Sprintf("unexpected error: %s", err))
			defer res.Body.Close()
			assert.Equal(t, tc.status, res.StatusCode)

			body, err := io.ReadAll(res.Body)
			require.Nil(t, err, fmt.Sprintf("unexpected error: %s", err))
			if tc.errMsg != "" {
				var e errorRes
				require.Nil(t, json.Unmarshal(body, &e))
				assert.Equal(t, tc.errMsg, e.Msg)
			} else {
				var sr struct {
					Certificate []byte `json:"certificate"`
					RequestID   string `json:"request_id"`
				}
				require.Nil(t, json.Unmarshal(body, &sr))
				assert.Equal(t, tc.cert, sr.Certificate)
				assert.Equal(t, tc.requestID, sr.RequestID)
			}
			if tc.svcCalled {
				svc.AssertCalled(t, "Sign", mock.Anything, mock.Anything)
			} else {
				svc.AssertNotCalled(t, "Sign", mock.Anything, mock.Anything)
			}
			resetMock(&svc.Mock)
		})
	}
}

func TestArchive(t *testing.T) {
	ts, svc := newServer()
	defer ts.Close()

	id := certmgmt.NewIdentity(userName, password)
	archive := authority.Archive{Name: "home-mac", TimeString: "1700000000", PFX: []byte("pfx")}

	store := toJSON(map[string]any{
		"user_name":    userName,
		"password":     password,
		"operation":    "store",
		"archive_name": archive.Name,
		"time_string":  archive.TimeString,
		"pfx":          archive.PFX,
	})
	fetch := toJSON(map[string]any{
		"user_name":    userName,
		"password":     password,
		"operation":    "fetch",
		"archive_name": archive.Name,
	})
	remove := toJSON(map[string]any{
		"user_name":    userName,
		"password":     password,
		"operation":    "remove",
		"archive_name": archive.Name,
	})
	list := toJSON(map[string]any{
		"user_name": userName,
		"password":  password,
		"operation": "list",
	})

	cases := []struct {
		desc     string
		req      string
		method   string
		args     []any
		ret      []any
		status   int
		contains string
	}{
		{
			desc:   "store archive",
			req:    store,
			method: "StoreArchive",
			args:   []any{mock.Anything, id, mock.MatchedBy(func(a authority.Archive) bool { return a.Name == archive.Name })},
			ret:    []any{nil},
			status: http.StatusCreated,
		},
		{
			desc:     "fetch archive",
			req:      fetch,
			method:   "FetchArchive",
			args:     []any{mock.Anything, id, archive.Name},
			ret:      []any{archive, nil},
			status:   http.StatusOK,
			contains: `"time_string":"1700000000"`,
		},
		{
			desc:     "fetch missing archive",
			req:      fetch,
			method:   "FetchArchive",
			args:     []any{mock.Anything, id, archive.Name},
			ret:      []any{authority.Archive{}, errors.Wrap(authority.ErrViewEntity, errors.Wrap(certmgmt.ErrNotFound, errors.New("sql: no rows in result set")))},
			status:   http.StatusNotFound,
			contains: certmgmt.ErrNotFound.Error(),
		},
		{
			desc:   "remove archive",
			req:    remove,
			method: "RemoveArchive",
			args:   []any{mock.Anything, id, archive.Name},
			ret:    []any{nil},
			status: http.StatusNoContent,
		},
		{
			desc:     "list archives",
			req:      list,
			method:   "ListArchives",
			args:     []any{mock.Anything, id},
			ret:      []any{[]authority.Archive{{Name: "home-mac", TimeString: "1"}, {Name: "work-mac", TimeString: "2"}}, nil},
			status:   http.StatusOK,
			contains: `"archives":[{"archive_name":"home-mac","time_string":"1"},{"archive_name":"work-mac","time_string":"2"}]`,
		},
		{
			desc:     "list archives with invalid credentials",
			req:      list,
			method:   "ListArchives",
			args:     []any{mock.Anything, id},
			ret:      []any{nil, certmgmt.ErrAuthentication},
			status:   http.StatusUnauthorized,
			contains: certmgmt.ErrAuthentication.Error(),
		},
		{
			desc: "archive with unknown operation",
			req: toJSON(map[string]any{
				"user_name": userName,
				"password":  password,
				"operation": "rename",
			}),
			status:   http.StatusBadRequest,
			contains: certmgmt.ErrUnknownArchiveOp.Error(),
		},
		{
			desc: "store archive without payload",
			req: toJSON(map[string]any{
				"user_name":    userName,
				"password":     password,
				"operation":    "store",
				"archive_name": archive.Name,
				"time_string":  archive.TimeString,
			}),
			status:   http.StatusBadRequest,
			contains: httpapi.ErrMissingPFX.Error(),
		},
	}

	for _, tc := range cases {
		t.Run(tc.desc, func(t *testing.T) {
			if tc.method != "" {
				svc.On(tc.method, tc.args...).Return(tc.ret...)
			}

			req := testRequest{
				client:      ts.Client(),
				method:      http.MethodPost,
				url:         ts.URL + certmgmt.ArchivePath,
				contentType: contentType,
				body:        strings.NewReader(tc.req),
			}
			res, err := req.make()
			require.Nil(t, err, fmt.Sprintf("unexpected error: %s", err))
			defer res.Body.Close()
			assert.Equal(t, tc.status, res.StatusCode)

			body, err := io.ReadAll(res.Body)
			require.Nil(t, err, fmt.Sprintf("unexpected error: %s", err))
			assert.Contains(t, string(body), tc.contains)
			resetMock(&svc.Mock)
		})
	}
}

func TestLookup(t *testing.T) {
	ts, svc := newServer()
	defer ts.Close()

	certs := []authority.Certificate{
		{SerialNumber: "1", DER: der},
		{SerialNumber: "2", DER: []byte{0x30, 0x00}},
	}

	cases := []struct {
		desc   string
		path   string
		class  certmgmt.CertClass
		certs  []authority.Certificate
		svcErr error
		status int
		blocks int
	}{
		{
			desc:   "lookup all certificates",
			path:   certmgmt.LookupAllPath,
			class:  certmgmt.CertClassAll,
			certs:  certs,
			status: http.StatusOK,
			blocks: 2,
		},
		{
			desc:   "lookup signing certificates",
			path:   certmgmt.LookupSigningPath,
			class:  certmgmt.CertClassSigning,
			certs:  certs[:1],
			status: http.StatusOK,
			blocks: 1,
		},
		{
			desc:   "lookup encryption certificates of unknown user",
			path:   certmgmt.LookupEncryptionPath,
			class:  certmgmt.CertClassEncryption,
			svcErr: certmgmt.ErrNotFound,
			status: http.StatusNotFound,
		},
	}

	for _, tc := range cases {
		t.Run(tc.desc, func(t *testing.T) {
			svcCall := svc.On("Lookup", mock.Anything, userName, tc.class).Return(tc.certs, tc.svcErr)

			req := testRequest{
				client: ts.Client(),
				method: http.MethodGet,
				url:    ts.URL + tc.path + "alice%40mac.com",
			}
			res, err := req.make()
			require.Nil(t, err, fmt.Sprintf("unexpected error: %s", err))
			defer res.Body.Close()
			assert.Equal(t, tc.status, res.StatusCode)

			body, err := io.ReadAll(res.Body)
			require.Nil(t, err, fmt.Sprintf("unexpected error: %s", err))
			blocks := 0
			for block, rest := pem.Decode(body); block != nil; block, rest = pem.Decode(rest) {
				assert.Equal(t, "CERTIFICATE", block.Type)
				blocks++
			}
			assert.Equal(t, tc.blocks, blocks)
			if tc.svcErr == nil {
				assert.Equal(t, "application/x-pem-file", res.Header.Get("Content-Type"))
			}
			svcCall.Unset()
		})
	}
}

func TestPending(t *testing.T) {
	ts, svc := newServer()
	defer ts.Close()

	cases := []struct {
		desc    string
		path    string
		class   certmgmt.CertClass
		pending bool
		svcErr  error
		status  int
		header  string
	}{
		{
			desc:    "pending identity request",
			path:    certmgmt.LookupIdentityPath,
			class:   certmgmt.CertClassIdentity,
			pending: true,
			status:  http.StatusOK,
			header:  "true",
		},
		{
			desc:   "no pending request",
			path:   certmgmt.LookupAllPath,
			class:  certmgmt.CertClassAll,
			status: http.StatusOK,
			header: "false",
		},
		{
			desc:   "pending check failure",
			path:   certmgmt.LookupAllPath,
			class:  certmgmt.CertClassAll,
			svcErr: errors.Wrap(authority.ErrViewEntity, errors.New("connection reset")),
			status: http.StatusUnprocessableEntity,
		},
	}

	for _, tc := range cases {
		t.Run(tc.desc, func(t *testing.T) {
			svcCall := svc.On("IsPending", mock.Anything, userName, tc.class).Return(tc.pending, tc.svcErr)

			req := testRequest{
				client: ts.Client(),
				method: http.MethodHead,
				url:    ts.URL + tc.path + "alice%40mac.com",
			}
			res, err := req.make()
			require.Nil(t, err, fmt.Sprintf("unexpected error: %s", err))
			defer res.Body.Close()
			assert.Equal(t, tc.status, res.StatusCode)
			assert.Equal(t, tc.header, res.Header.Get(certmgmt.PendingHeader))
			svcCall.Unset()
		})
	}
}

func TestApprove(t *testing.T) {
	ts, svc := newServer()
	defer ts.Close()

	cases := []struct {
		desc     string
		token    string
		svcErr   error
		status   int
		contains string
	}{
		{
			desc:     "approve request",
			token:    adminToken,
			status:   http.StatusOK,
			contains: `"serial_number":"01:00"`,
		},
		{
			desc:     "approve request without admin token",
			svcErr:   errors.Wrap(certmgmt.ErrAuthentication, mgapi.ErrAdminRequired),
			status:   http.StatusUnauthorized,
			contains: mgapi.ErrAdminRequired.Error(),
		},
		{
			desc:     "approve unknown request",
			token:    adminToken,
			svcErr:   errors.Wrap(authority.ErrViewEntity, certmgmt.ErrNotFound),
			status:   http.StatusNotFound,
			contains: certmgmt.ErrNotFound.Error(),
		},
	}

	for _, tc := range cases {
		t.Run(tc.desc, func(t *testing.T) {
			svc.On("Approve", mock.MatchedBy(func(ctx context.Context) bool {
				return mgapi.AdminToken(ctx) == tc.token
			}), requestID).Return(authority.Certificate{SerialNumber: "256", Class: certmgmt.CertClassIdentity, DER: der}, tc.svcErr)

			req := testRequest{
				client: ts.Client(),
				method: http.MethodPost,
				url:    fmt.Sprintf("%s/requests/%s/approve", ts.URL, requestID),
				token:  tc.token,
			}
			res, err := req.make()
			require.Nil(t, err, fmt.Sprintf("unexpected error: %s", err))
			defer res.Body.Close()
			assert.Equal(t, tc.status, res.StatusCode)

			body, err := io.ReadAll(res.Body)
			require.Nil(t, err, fmt.Sprintf("unexpected error: %s", err))
			assert.Contains(t, string(body), tc.contains)
			resetMock(&svc.Mock)
		})
	}
}

func TestCA(t *testing.T) {
	ts, svc := newServer()
	defer ts.Close()

	ca := &x509.Certificate{Raw: der}
	svcCall := svc.On("CACert", mock.Anything).Return(ca, nil)
	defer svcCall.Unset()

	req := testRequest{
		client: ts.Client(),
		method: http.MethodGet,
		url:    ts.URL + "/ca",
	}
	res, err := req.make()
	require.Nil(t, err, fmt.Sprintf("unexpected error: %s", err))
	defer res.Body.Close()
	assert.Equal(t, http.StatusOK, res.StatusCode)

	body, err := io.ReadAll(res.Body)
	require.Nil(t, err, fmt.Sprintf("unexpected error: %s", err))
	block, _ := pem.Decode(body)
	require.NotNil(t, block)
	assert.Equal(t, der, block.Bytes)
}

func TestHealth(t *testing.T) {
	ts, _ := newServer()
	defer ts.Close()

	res, err := ts.Client().Get(ts.URL + "/health")
	require.Nil(t, err, fmt.Sprintf("unexpected error: %s", err))
	defer res.Body.Close()
	assert.Equal(t, http.StatusOK, res.StatusCode)

	var health map[string]string
	require.Nil(t, json.NewDecoder(res.Body).Decode(&health))
	assert.Equal(t, instanceID, health["instance_id"])
	assert.Equal(t, "pass", health["status"])
}
