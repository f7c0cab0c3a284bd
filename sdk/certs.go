// Copyright (c) Abstract Machines
// SPDX-License-Identifier: Apache-2.0

package sdk

import (
	"context"
	"encoding/json"
	"net/http"
	"net/url"
	"strconv"

	"github.com/absmach/certmgmt"
	"github.com/absmach/certmgmt/csr"
	"github.com/absmach/supermq/pkg/errors"
)

var errMissingPendingHeader = errors.New("missing " + certmgmt.PendingHeader + " header")

func (sdk mgSDK) Enroll(ctx context.Context, req certmgmt.CSRRequest) (certmgmt.Enrollment, errors.SDKError) {
	if req.Flags.Has(certmgmt.PendingCheckOnly) {
		return sdk.checkPending(ctx, req)
	}
	if err := req.Validate(); err != nil {
		return certmgmt.Enrollment{}, errors.NewSDKError(err)
	}
	posting := !req.Flags.Has(certmgmt.DoNotPost)
	if posting {
		if err := req.Identity.Validate(); err != nil {
			return certmgmt.Enrollment{}, errors.NewSDKError(err)
		}
	}

	der, err := csr.Build(ctx, req)
	if err != nil {
		return certmgmt.Enrollment{}, errors.NewSDKError(err)
	}

	var enrollment certmgmt.Enrollment
	if req.Flags.Has(certmgmt.ReturnCSR) {
		enrollment.CSR = der
	}
	if !posting {
		return enrollment, nil
	}

	action := actionNew
	if req.Flags.Has(certmgmt.Renew) {
		action = actionRenew
	}
	data, err := json.Marshal(signReq{
		UserName:  string(req.Identity.UserName),
		Password:  string(req.Identity.Password),
		Action:    action,
		CertClass: req.RequestedClass(),
		CSR:       der,
	})
	if err != nil {
		return certmgmt.Enrollment{}, errors.NewSDKError(errors.Wrap(certmgmt.ErrInvalidParameter, err))
	}

	_, body, status, sdkerr := sdk.processRequest(ctx, http.MethodPost, sdk.signURL, data, nil, http.StatusOK, http.StatusCreated, http.StatusAccepted)
	if sdkerr != nil {
		return certmgmt.Enrollment{}, sdkerr
	}

	var res signRes
	if err := json.Unmarshal(body, &res); err != nil {
		return certmgmt.Enrollment{}, errors.NewSDKError(errors.Wrap(certmgmt.ErrServer, err))
	}
	if status == http.StatusAccepted {
		return certmgmt.Enrollment{}, errors.NewSDKErrorWithStatus(errors.Wrap(certmgmt.ErrRequestQueued, errors.New("request "+res.RequestID)), status)
	}
	if len(res.Certificate) == 0 {
		return certmgmt.Enrollment{}, serverError("signed certificate missing from response")
	}
	enrollment.Certificate = res.Certificate

	return enrollment, nil
}

// checkPending answers a PendingCheckOnly request: ErrRequestQueued when a
// request of the identity is pending, an empty enrollment otherwise.
func (sdk mgSDK) checkPending(ctx context.Context, req certmgmt.CSRRequest) (certmgmt.Enrollment, errors.SDKError) {
	if req.Version != certmgmt.CSRRequestVersion {
		return certmgmt.Enrollment{}, errors.NewSDKError(errors.Wrap(certmgmt.ErrInvalidParameter, certmgmt.ErrUnsupportedVersion))
	}
	if err := req.Flags.Validate(); err != nil {
		return certmgmt.Enrollment{}, errors.NewSDKError(err)
	}
	if err := req.Identity.Validate(); err != nil {
		return certmgmt.Enrollment{}, errors.NewSDKError(err)
	}
	res, sdkerr := sdk.Lookup(ctx, certmgmt.LookupRequest{
		UserName:    string(req.Identity.UserName),
		Class:       req.RequestedClass(),
		PendingOnly: true,
	})
	if sdkerr != nil {
		return certmgmt.Enrollment{}, sdkerr
	}
	if res.Pending {
		return certmgmt.Enrollment{}, errors.NewSDKError(certmgmt.ErrRequestQueued)
	}
	return certmgmt.Enrollment{}, nil
}

func (sdk mgSDK) Lookup(ctx context.Context, req certmgmt.LookupRequest) (certmgmt.LookupResult, errors.SDKError) {
	if err := req.Validate(); err != nil {
		return certmgmt.LookupResult{}, errors.NewSDKError(err)
	}
	path, err := req.Class.LookupPath()
	if err != nil {
		return certmgmt.LookupResult{}, errors.NewSDKError(err)
	}
	reqURL := sdk.lookupURL + path + url.QueryEscape(req.UserName)

	if req.PendingOnly {
		headers, _, _, sdkerr := sdk.processRequest(ctx, http.MethodHead, reqURL, nil, nil, http.StatusOK)
		if sdkerr != nil {
			return certmgmt.LookupResult{}, sdkerr
		}
		value := headers.Get(certmgmt.PendingHeader)
		if value == "" {
			return certmgmt.LookupResult{}, errors.NewSDKError(errors.Wrap(certmgmt.ErrServer, errMissingPendingHeader))
		}
		pending, err := strconv.ParseBool(value)
		if err != nil {
			return certmgmt.LookupResult{}, errors.NewSDKError(errors.Wrap(certmgmt.ErrServer, err))
		}
		return certmgmt.LookupResult{Pending: pending}, nil
	}

	headers := map[string]string{"Accept": string(CTPEM)}
	_, body, _, sdkerr := sdk.processRequest(ctx, http.MethodGet, reqURL, nil, headers, http.StatusOK)
	if sdkerr != nil {
		return certmgmt.LookupResult{}, sdkerr
	}
	if !certmgmt.HasCertificates(body) {
		return certmgmt.LookupResult{}, errors.NewSDKError(certmgmt.ErrNotFound)
	}

	return certmgmt.LookupResult{Certificates: certmgmt.NewCertificateSeq(body)}, nil
}

func (sdk mgSDK) Submit(ctx context.Context, rt certmgmt.RequestType, req any) (Submission, errors.SDKError) {
	sub := Submission{Type: rt}
	switch {
	case rt == certmgmt.Standard(certmgmt.KindCertIssue):
		csrReq, ok := req.(certmgmt.CSRRequest)
		if !ok {
			return sub, errors.NewSDKError(errors.Wrap(certmgmt.ErrInvalidParameter, certmgmt.ErrUnsupportedRequestType))
		}
		enrollment, err := sdk.Enroll(ctx, csrReq)
		if err != nil {
			return sub, err
		}
		sub.Enrollment = enrollment
		return sub, nil
	case rt == certmgmt.Vendor(certmgmt.KindCertLookup):
		var lookupReq certmgmt.LookupRequest
		switch r := req.(type) {
		case certmgmt.LookupRequest:
			lookupReq = r
		case certmgmt.CSRRequest:
			if err := r.Flags.Validate(); err != nil {
				return sub, errors.NewSDKError(err)
			}
			lookupReq = certmgmt.LookupRequest{
				UserName:    string(r.Identity.UserName),
				Class:       r.RequestedClass(),
				PendingOnly: r.Flags.Has(certmgmt.PendingCheckOnly),
			}
		default:
			return sub, errors.NewSDKError(errors.Wrap(certmgmt.ErrInvalidParameter, certmgmt.ErrUnsupportedRequestType))
		}
		res, err := sdk.Lookup(ctx, lookupReq)
		if err != nil {
			return sub, err
		}
		sub.Lookup = res
		return sub, nil
	default:
		return sub, errors.NewSDKError(errors.Wrap(certmgmt.ErrInvalidParameter, certmgmt.ErrUnsupportedRequestType))
	}
}
