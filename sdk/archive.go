// Copyright (c) Abstract Machines
// SPDX-License-Identifier: Apache-2.0

package sdk

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/absmach/certmgmt"
	"github.com/absmach/supermq/pkg/errors"
)

func (sdk mgSDK) StoreArchive(ctx context.Context, req certmgmt.ArchiveRequest) errors.SDKError {
	_, sdkerr := sdk.archive(ctx, certmgmt.ArchiveStore, req, http.StatusOK, http.StatusCreated, http.StatusNoContent)
	return sdkerr
}

func (sdk mgSDK) FetchArchive(ctx context.Context, req certmgmt.ArchiveRequest) (certmgmt.ArchivePayload, errors.SDKError) {
	body, sdkerr := sdk.archive(ctx, certmgmt.ArchiveFetch, req, http.StatusOK)
	if sdkerr != nil {
		return certmgmt.ArchivePayload{}, sdkerr
	}

	var res fetchArchiveRes
	if err := json.Unmarshal(body, &res); err != nil {
		return certmgmt.ArchivePayload{}, errors.NewSDKError(errors.Wrap(certmgmt.ErrServer, err))
	}
	if len(res.PFX) == 0 {
		return certmgmt.ArchivePayload{}, serverError("archive %q returned without payload", string(req.ArchiveName))
	}

	return certmgmt.NewArchivePayload(res.PFX, sdk.deallocator), nil
}

func (sdk mgSDK) RemoveArchive(ctx context.Context, req certmgmt.ArchiveRequest) errors.SDKError {
	_, sdkerr := sdk.archive(ctx, certmgmt.ArchiveRemove, req, http.StatusOK, http.StatusNoContent)
	return sdkerr
}

func (sdk mgSDK) ListArchives(ctx context.Context, req certmgmt.ArchiveRequest) (certmgmt.ArchiveList, errors.SDKError) {
	body, sdkerr := sdk.archive(ctx, certmgmt.ArchiveListOp, req, http.StatusOK)
	if sdkerr != nil {
		return certmgmt.ArchiveList{}, sdkerr
	}

	var res listArchivesRes
	if err := json.Unmarshal(body, &res); err != nil {
		return certmgmt.ArchiveList{}, errors.NewSDKError(errors.Wrap(certmgmt.ErrServer, err))
	}
	entries := make([]certmgmt.ArchiveEntry, 0, len(res.Archives))
	for _, a := range res.Archives {
		if a.ArchiveName == "" {
			return certmgmt.ArchiveList{}, serverError("archive list entry without name")
		}
		entries = append(entries, certmgmt.ArchiveEntry{
			ArchiveName: []byte(a.ArchiveName),
			TimeString:  []byte(a.TimeString),
		})
	}

	return certmgmt.NewArchiveList(entries, sdk.deallocator), nil
}

func (sdk mgSDK) archive(ctx context.Context, op certmgmt.ArchiveOp, req certmgmt.ArchiveRequest, expectedRespCodes ...int) ([]byte, errors.SDKError) {
	if err := req.Validate(op); err != nil {
		return nil, errors.NewSDKError(err)
	}
	data, err := json.Marshal(newArchiveReq(op, req))
	if err != nil {
		return nil, errors.NewSDKError(errors.Wrap(certmgmt.ErrInvalidParameter, err))
	}

	_, body, _, sdkerr := sdk.processRequest(ctx, http.MethodPost, sdk.archiveURL, data, nil, expectedRespCodes...)
	return body, sdkerr
}
