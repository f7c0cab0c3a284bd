// Copyright (c) Abstract Machines
// SPDX-License-Identifier: Apache-2.0

package http

import (
	"net/http"
	"strconv"

	"github.com/absmach/certmgmt"
	"github.com/absmach/certmgmt/internal/api"
)

var (
	_ api.Response = (*signRes)(nil)
	_ api.Response = (*storeArchiveRes)(nil)
	_ api.Response = (*fetchArchiveRes)(nil)
	_ api.Response = (*removeArchiveRes)(nil)
	_ api.Response = (*listArchivesRes)(nil)
	_ api.Response = (*pendingRes)(nil)
	_ api.Response = (*registerRes)(nil)
	_ api.Response = (*approveRes)(nil)
)

type signRes struct {
	Certificate []byte `json:"certificate,omitempty"`
	RequestID   string `json:"request_id,omitempty"`
}

func (res signRes) Code() int {
	if res.RequestID != "" {
		return http.StatusAccepted
	}
	return http.StatusCreated
}

func (res signRes) Headers() map[string]string {
	return map[string]string{}
}

func (res signRes) Empty() bool {
	return false
}

type storeArchiveRes struct{}

func (res storeArchiveRes) Code() int {
	return http.StatusCreated
}

func (res storeArchiveRes) Headers() map[string]string {
	return map[string]string{}
}

func (res storeArchiveRes) Empty() bool {
	return true
}

type fetchArchiveRes struct {
	ArchiveName string `json:"archive_name"`
	TimeString  string `json:"time_string"`
	PFX         []byte `json:"pfx"`
}

func (res fetchArchiveRes) Code() int {
	return http.StatusOK
}

func (res fetchArchiveRes) Headers() map[string]string {
	return map[string]string{}
}

func (res fetchArchiveRes) Empty() bool {
	return false
}

type removeArchiveRes struct{}

func (res removeArchiveRes) Code() int {
	return http.StatusNoContent
}

func (res removeArchiveRes) Headers() map[string]string {
	return map[string]string{}
}

func (res removeArchiveRes) Empty() bool {
	return true
}

type archiveEntryRes struct {
	ArchiveName string `json:"archive_name"`
	TimeString  string `json:"time_string"`
}

type listArchivesRes struct {
	Archives []archiveEntryRes `json:"archives"`
}

func (res listArchivesRes) Code() int {
	return http.StatusOK
}

func (res listArchivesRes) Headers() map[string]string {
	return map[string]string{}
}

func (res listArchivesRes) Empty() bool {
	return false
}

// lookupRes holds DER certificates written as concatenated PEM blocks.
type lookupRes struct {
	certs [][]byte
}

type pendingRes struct {
	pending bool
}

func (res pendingRes) Code() int {
	return http.StatusOK
}

func (res pendingRes) Headers() map[string]string {
	return map[string]string{
		certmgmt.PendingHeader: strconv.FormatBool(res.pending),
	}
}

func (res pendingRes) Empty() bool {
	return true
}

type registerRes struct{}

func (res registerRes) Code() int {
	return http.StatusCreated
}

func (res registerRes) Headers() map[string]string {
	return map[string]string{}
}

func (res registerRes) Empty() bool {
	return true
}

type approveRes struct {
	SerialNumber string `json:"serial_number"`
	UserName     string `json:"user_name"`
	CertClass    string `json:"cert_class"`
	Certificate  []byte `json:"certificate"`
}

func (res approveRes) Code() int {
	return http.StatusOK
}

func (res approveRes) Headers() map[string]string {
	return map[string]string{}
}

func (res approveRes) Empty() bool {
	return false
}
