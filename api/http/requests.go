// Copyright (c) Abstract Machines
// SPDX-License-Identifier: Apache-2.0

package http

import (
	"github.com/absmach/certmgmt"
	"github.com/absmach/supermq/pkg/errors"
)

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

func (req signReq) validate() error {
	if req.UserName == "" {
		return ErrMissingUserName
	}
	if req.Password == "" {
		return ErrMissingPassword
	}
	if req.Action != actionNew && req.Action != actionRenew {
		return ErrInvalidAction
	}
	if len(req.CSR) == 0 {
		return ErrMissingCSR
	}
	return nil
}

type archiveReq struct {
	UserName    string `json:"user_name"`
	Password    string `json:"password"`
	Operation   string `json:"operation"`
	ArchiveName string `json:"archive_name"`
	TimeString  string `json:"time_string"`
	PFX         []byte `json:"pfx"`

	op certmgmt.ArchiveOp
}

func (req archiveReq) identity() certmgmt.Identity {
	return certmgmt.NewIdentity(req.UserName, req.Password)
}

func (req archiveReq) validate() error {
	if req.UserName == "" {
		return ErrMissingUserName
	}
	if req.Password == "" {
		return ErrMissingPassword
	}
	if req.op == certmgmt.ArchiveListOp {
		return nil
	}
	if req.ArchiveName == "" {
		return ErrMissingArchiveName
	}
	if req.op != certmgmt.ArchiveStore {
		return nil
	}
	if req.TimeString == "" {
		return ErrMissingTimeString
	}
	if len(req.PFX) == 0 {
		return ErrMissingPFX
	}
	return nil
}

type lookupReq struct {
	userName string
	class    certmgmt.CertClass
}

func (req lookupReq) validate() error {
	if req.userName == "" {
		return ErrMissingUserName
	}
	return nil
}

type registerReq struct {
	UserName string `json:"user_name"`
	Password string `json:"password"`
}

func (req registerReq) validate() error {
	if req.UserName == "" {
		return ErrMissingUserName
	}
	if req.Password == "" {
		return ErrMissingPassword
	}
	return nil
}

type approveReq struct {
	id string
}

func (req approveReq) validate() error {
	if req.id == "" {
		return ErrMissingRequestID
	}
	return nil
}

func validationError(err error) error {
	return errors.Wrap(certmgmt.ErrInvalidParameter, err)
}
