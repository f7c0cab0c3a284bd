// Copyright (c) Abstract Machines
// SPDX-License-Identifier: Apache-2.0

package sdk

import (
	"bytes"
	"context"
	"crypto/tls"
	"fmt"
	"io"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/absmach/certmgmt"
	"github.com/absmach/supermq/pkg/errors"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"moul.io/http2curl"
)

const (
	// CTJSON represents JSON content type.
	CTJSON ContentType = "application/json"

	// CTPEM represents PEM content type.
	CTPEM ContentType = "application/x-pem-file"
)

// ContentType represents all possible content types.
type ContentType string

type Config struct {
	SignURL    string
	ArchiveURL string
	// LookupURL is fixed by the protocol to certmgmt.DefaultLookupURL.
	// It is only meant to be overridden by tests.
	LookupURL string

	Timeout         time.Duration
	TLSVerification bool
	CurlFlag        bool

	// Transport is the HTTP transport. It defaults to a transport honouring
	// TLSVerification.
	Transport http.RoundTripper

	// Deallocator releases fetched payloads and archive lists.
	Deallocator certmgmt.Deallocator
}

type mgSDK struct {
	signURL    string
	archiveURL string
	lookupURL  string

	client      *http.Client
	curlFlag    bool
	deallocator certmgmt.Deallocator
}

// Submission is the result of Submit. Exactly one of Enrollment and Lookup
// is populated, according to Type.
type Submission struct {
	Type       certmgmt.RequestType
	Enrollment certmgmt.Enrollment
	Lookup     certmgmt.LookupResult
}

// SDK contains the certificate management client API. Each call performs at
// most one HTTP exchange and never retries.
type SDK interface {
	// Enroll builds the CSR of req and, unless DoNotPost is set, submits it
	// for signing. A request queued by the server for approval is reported
	// as ErrRequestQueued. With PendingCheckOnly no CSR is built: a pending
	// request of the identity yields ErrRequestQueued, no pending request an
	// empty Enrollment and a nil error.
	//
	// example:
	//  req, _ := csr.NewRequest(ctx, csr.NewRSAService(csr.DefaultPolicy), certmgmt.NewIdentity("alice", "p1"), certmgmt.MustFlags(certmgmt.ReturnCSR))
	//  enrollment, _ := sdk.Enroll(ctx, req)
	//  fmt.Println(len(enrollment.Certificate))
	Enroll(ctx context.Context, req certmgmt.CSRRequest) (certmgmt.Enrollment, errors.SDKError)

	// Lookup returns the certificates of a user, or only the pending
	// request status when req.PendingOnly is set.
	//
	// example:
	//  res, _ := sdk.Lookup(ctx, certmgmt.LookupRequest{UserName: "alice", Class: certmgmt.CertClassSigning})
	//  certs, _ := res.Certificates.Collect()
	//  fmt.Println(len(certs))
	Lookup(ctx context.Context, req certmgmt.LookupRequest) (certmgmt.LookupResult, errors.SDKError)

	// StoreArchive stores req.Payload under req.ArchiveName, overwriting an
	// archive of the same name.
	//
	// example:
	//  err := sdk.StoreArchive(ctx, certmgmt.ArchiveRequest{Identity: id, ArchiveName: []byte("home-mac"), TimeString: []byte("1700000000"), Payload: pfx})
	//  fmt.Println(err) // nil if successful
	StoreArchive(ctx context.Context, req certmgmt.ArchiveRequest) errors.SDKError

	// FetchArchive returns the archive named req.ArchiveName. The caller
	// releases the payload.
	//
	// example:
	//  payload, _ := sdk.FetchArchive(ctx, certmgmt.ArchiveRequest{Identity: id, ArchiveName: []byte("home-mac")})
	//  defer payload.Release()
	FetchArchive(ctx context.Context, req certmgmt.ArchiveRequest) (certmgmt.ArchivePayload, errors.SDKError)

	// RemoveArchive removes the archive named req.ArchiveName.
	//
	// example:
	//  err := sdk.RemoveArchive(ctx, certmgmt.ArchiveRequest{Identity: id, ArchiveName: []byte("home-mac")})
	//  fmt.Println(err) // nil if successful
	RemoveArchive(ctx context.Context, req certmgmt.ArchiveRequest) errors.SDKError

	// ListArchives lists the archives of req.Identity. The caller releases
	// the list.
	//
	// example:
	//  list, _ := sdk.ListArchives(ctx, certmgmt.ArchiveRequest{Identity: id})
	//  defer list.Release()
	//  fmt.Println(list.Len())
	ListArchives(ctx context.Context, req certmgmt.ArchiveRequest) (certmgmt.ArchiveList, errors.SDKError)

	// Submit dispatches req by request type: Standard(KindCertIssue) takes
	// a CSRRequest, Vendor(KindCertLookup) takes a LookupRequest or a
	// CSRRequest whose identity names the user.
	//
	// example:
	//  sub, _ := sdk.Submit(ctx, certmgmt.Vendor(certmgmt.KindCertLookup), certmgmt.LookupRequest{UserName: "alice", PendingOnly: true})
	//  fmt.Println(sub.Lookup.Pending)
	Submit(ctx context.Context, rt certmgmt.RequestType, req any) (Submission, errors.SDKError)
}

// NewSDK returns a client for the endpoints of conf. Empty endpoints fall
// back to the service defaults.
func NewSDK(conf Config) SDK {
	transport := conf.Transport
	if transport == nil {
		transport = &http.Transport{
			TLSClientConfig: &tls.Config{
				InsecureSkipVerify: !conf.TLSVerification,
			},
		}
	}
	deallocator := conf.Deallocator
	if deallocator == nil {
		deallocator = certmgmt.WipeDeallocator
	}

	return &mgSDK{
		signURL:    withDefault(conf.SignURL, certmgmt.DefaultSignURL),
		archiveURL: withDefault(conf.ArchiveURL, certmgmt.DefaultArchiveURL),
		lookupURL:  strings.TrimSuffix(withDefault(conf.LookupURL, certmgmt.DefaultLookupURL), "/"),
		client: &http.Client{
			Transport: otelhttp.NewTransport(transport),
			Timeout:   conf.Timeout,
		},
		curlFlag:    conf.CurlFlag,
		deallocator: deallocator,
	}
}

// processRequest creates and sends a new HTTP request, and checks for errors in the HTTP response.
// It returns the response headers, the response body, the status code and the associated error (if any).
func (sdk mgSDK) processRequest(ctx context.Context, method, reqURL string, data []byte, headers map[string]string, expectedRespCodes ...int) (http.Header, []byte, int, errors.SDKError) {
	var body io.Reader
	if data != nil {
		body = bytes.NewReader(data)
	}
	req, err := http.NewRequestWithContext(ctx, method, reqURL, body)
	if err != nil {
		return make(http.Header), []byte{}, 0, errors.NewSDKError(errors.Wrap(certmgmt.ErrInvalidParameter, err))
	}

	// Sets a default value for the Content-Type.
	// Overridden if Content-Type is passed in the headers arguments.
	if data != nil {
		req.Header.Set("Content-Type", string(CTJSON))
	}

	for key, value := range headers {
		req.Header.Set(key, value)
	}

	if sdk.curlFlag {
		curlCommand, err := http2curl.GetCurlCommand(req)
		if err != nil {
			return nil, nil, 0, errors.NewSDKError(err)
		}
		log.Println(curlCommand.String())
	}

	resp, err := sdk.client.Do(req)
	if err != nil {
		return make(http.Header), []byte{}, 0, errors.NewSDKError(errors.Wrap(certmgmt.ErrNetwork, err))
	}
	defer resp.Body.Close()

	if sdkerr := errors.CheckError(resp, expectedRespCodes...); sdkerr != nil {
		return make(http.Header), []byte{}, resp.StatusCode, withKind(sdkerr, resp.StatusCode)
	}

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return make(http.Header), []byte{}, resp.StatusCode, errors.NewSDKErrorWithStatus(errors.Wrap(certmgmt.ErrNetwork, err), resp.StatusCode)
	}

	return resp.Header, respBody, resp.StatusCode, nil
}

// withKind wraps a response error in the error kind of its status code.
func withKind(sdkerr errors.SDKError, statusCode int) errors.SDKError {
	kind := kindOf(statusCode)
	if sdkerr.Msg() == kind.Error() {
		return errors.NewSDKErrorWithStatus(errors.Wrap(kind, sdkerr.Err()), statusCode)
	}
	cause := errors.Wrap(errors.New(sdkerr.Msg()), sdkerr.Err())
	return errors.NewSDKErrorWithStatus(errors.Wrap(kind, cause), statusCode)
}

func kindOf(statusCode int) errors.Error {
	switch statusCode {
	case http.StatusUnauthorized, http.StatusForbidden:
		return certmgmt.ErrAuthentication
	case http.StatusNotFound:
		return certmgmt.ErrNotFound
	case http.StatusAccepted:
		return certmgmt.ErrRequestQueued
	default:
		return certmgmt.ErrServer
	}
}

func serverError(format string, args ...any) errors.SDKError {
	return errors.NewSDKError(errors.Wrap(certmgmt.ErrServer, fmt.Errorf(format, args...)))
}

func withDefault(value, def string) string {
	if value == "" {
		return def
	}
	return value
}
