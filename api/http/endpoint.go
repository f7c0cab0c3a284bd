// Copyright (c) Abstract Machines
// SPDX-License-Identifier: Apache-2.0

package http

import (
	"context"
	"math/big"

	"github.com/absmach/certmgmt"
	mgapi "github.com/absmach/certmgmt/api"
	"github.com/absmach/certmgmt/authority"
	"github.com/absmach/supermq/pkg/errors"
	"github.com/go-kit/kit/endpoint"
)

func signEndpoint(svc authority.Service) endpoint.Endpoint {
	return func(ctx context.Context, request any) (response any, err error) {
		req := request.(signReq)
		if err := req.validate(); err != nil {
			return signRes{}, validationError(err)
		}

		res, err := svc.Sign(ctx, authority.SignRequest{
			Identity: certmgmt.NewIdentity(req.UserName, req.Password),
			Renew:    req.Action == actionRenew,
			Class:    req.CertClass,
			CSR:      req.CSR,
		})
		if err != nil {
			return signRes{}, err
		}
		if res.Queued {
			return signRes{RequestID: res.RequestID}, nil
		}

		return signRes{Certificate: res.Certificate.DER}, nil
	}
}

func archiveEndpoint(svc authority.Service) endpoint.Endpoint {
	return func(ctx context.Context, request any) (response any, err error) {
		req := request.(archiveReq)
		if err := req.validate(); err != nil {
			return nil, validationError(err)
		}

		switch req.op {
		case certmgmt.ArchiveStore:
			archive := authority.Archive{
				Name:       req.ArchiveName,
				TimeString: req.TimeString,
				PFX:        req.PFX,
			}
			if err := svc.StoreArchive(ctx, req.identity(), archive); err != nil {
				return storeArchiveRes{}, err
			}
			return storeArchiveRes{}, nil

		case certmgmt.ArchiveFetch:
			archive, err := svc.FetchArchive(ctx, req.identity(), req.ArchiveName)
			if err != nil {
				return fetchArchiveRes{}, err
			}
			return fetchArchiveRes{
				ArchiveName: archive.Name,
				TimeString:  archive.TimeString,
				PFX:         archive.PFX,
			}, nil

		case certmgmt.ArchiveRemove:
			if err := svc.RemoveArchive(ctx, req.identity(), req.ArchiveName); err != nil {
				return removeArchiveRes{}, err
			}
			return removeArchiveRes{}, nil

		default:
			archives, err := svc.ListArchives(ctx, req.identity())
			if err != nil {
				return listArchivesRes{}, err
			}
			res := listArchivesRes{Archives: make([]archiveEntryRes, 0, len(archives))}
			for _, a := range archives {
				res.Archives = append(res.Archives, archiveEntryRes{
					ArchiveName: a.Name,
					TimeString:  a.TimeString,
				})
			}
			return res, nil
		}
	}
}

func lookupEndpoint(svc authority.Service) endpoint.Endpoint {
	return func(ctx context.Context, request any) (response any, err error) {
		req := request.(lookupReq)
		if err := req.validate(); err != nil {
			return lookupRes{}, validationError(err)
		}

		certs, err := svc.Lookup(ctx, req.userName, req.class)
		if err != nil {
			return lookupRes{}, err
		}

		res := lookupRes{certs: make([][]byte, 0, len(certs))}
		for _, c := range certs {
			res.certs = append(res.certs, c.DER)
		}
		return res, nil
	}
}

func pendingEndpoint(svc authority.Service) endpoint.Endpoint {
	return func(ctx context.Context, request any) (response any, err error) {
		req := request.(lookupReq)
		if err := req.validate(); err != nil {
			return pendingRes{}, validationError(err)
		}

		pending, err := svc.IsPending(ctx, req.userName, req.class)
		if err != nil {
			return pendingRes{}, err
		}

		return pendingRes{pending: pending}, nil
	}
}

func caEndpoint(svc authority.Service) endpoint.Endpoint {
	return func(ctx context.Context, _ any) (response any, err error) {
		ca, err := svc.CACert(ctx)
		if err != nil {
			return lookupRes{}, err
		}

		return lookupRes{certs: [][]byte{ca.Raw}}, nil
	}
}

func registerEndpoint(svc authority.Service) endpoint.Endpoint {
	return func(ctx context.Context, request any) (response any, err error) {
		req := request.(registerReq)
		if err := req.validate(); err != nil {
			return registerRes{}, validationError(err)
		}

		if err := svc.Register(ctx, req.UserName, req.Password); err != nil {
			return registerRes{}, err
		}

		return registerRes{}, nil
	}
}

func approveEndpoint(svc authority.Service) endpoint.Endpoint {
	return func(ctx context.Context, request any) (response any, err error) {
		req := request.(approveReq)
		if err := req.validate(); err != nil {
			return approveRes{}, validationError(err)
		}

		cert, err := svc.Approve(ctx, req.id)
		if err != nil {
			return approveRes{}, err
		}

		serial, ok := new(big.Int).SetString(cert.SerialNumber, 10)
		if !ok {
			return approveRes{}, errors.Wrap(authority.ErrViewEntity, errors.New("invalid serial number "+cert.SerialNumber))
		}

		return approveRes{
			SerialNumber: mgapi.FormatSerialNumber(serial),
			UserName:     cert.UserName,
			CertClass:    cert.Class.String(),
			Certificate:  cert.DER,
		}, nil
	}
}
