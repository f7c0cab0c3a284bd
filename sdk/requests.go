// Copyright (c) Abstract Machines
// SPDX-License-Identifier: Apache-2.0

package sdk

import "github.com/absmach/certmgmt"

// Sign request actions.
const (
	actionNew   = "new"
	actionRenew = "renew"
)

type signReq struct {
	UserName  string             `json:"user_name"`
	Password  string             `json:"password"`
	Action    string             `json:"action"`
	CertClass certmgmt.CertClass `json:"cert_class"`
	CSR       []byte             `json:"csr"`
}

type signRes struct {
	Certificate []byte `json:"certificate,omitempty"`
	RequestID   string `json:"request_id,omitempty"`
}

type archiveReq struct {
	UserName    string `json:"user_name"`
	Password    string `json:"password"`
	Operation   string `json:"operation"`
	ArchiveName string `json:"archive_name,omitempty"`
	TimeString  string `json:"time_string,omitempty"`
	PFX         []byte `json:"pfx,omitempty"`
}

func newArchiveReq(op certmgmt.ArchiveOp, req certmgmt.ArchiveRequest) archiveReq {
	ar := archiveReq{
		UserName:  string(req.Identity.UserName),
		Password:  string(req.Identity.Password),
		Operation: op.String(),
	}
	if op == certmgmt.ArchiveListOp {
		return ar
	}
	ar.ArchiveName = string(req.ArchiveName)
	if op == certmgmt.ArchiveStore {
		ar.TimeString = string(req.TimeString)
		ar.PFX = req.Payload
	}
	return ar
}

type fetchArchiveRes struct {
	ArchiveName string `json:"archive_name"`
	TimeString  string `json:"time_string"`
	PFX         []byte `json:"pfx"`
}

type archiveEntryRes struct {
	ArchiveName string `json:"archive_name"`
	TimeString  string `json:"time_string"`
}

type listArchivesRes struct {
	Archives []archiveEntryRes `json:"archives"`
}
