// Copyright (c) Abstract Machines
// SPDX-License-Identifier: Apache-2.0

package api

import (
	"context"
	"crypto/x509"
	"fmt"
	"log/slog"
	"time"

	"github.com/absmach/certmgmt"
	"github.com/absmach/certmgmt/authority"
)

var _ authority.Service = (*loggingMiddleware)(nil)

type loggingMiddleware struct {
	logger *slog.Logger
	svc    authority.Service
}

// LoggingMiddleware adds logging facilities to the authority service.
func LoggingMiddleware(svc authority.Service, logger *slog.Logger) authority.Service {
	return &loggingMiddleware{logger, svc}
}

func (lm *loggingMiddleware) Register(ctx context.Context, userName, password string) (err error) {
	defer func(begin time.Time) {
		message := fmt.Sprintf("Method register for user %s took %s to complete", userName, time.Since(begin))
		if err != nil {
			lm.logger.Warn(fmt.Sprintf("%s with error: %s.", message, err))
			return
		}
		lm.logger.Info(message)
	}(time.Now())
	return lm.svc.Register(ctx, userName, password)
}

func (lm *loggingMiddleware) Sign(ctx context.Context, req authority.SignRequest) (res authority.SignResult, err error) {
	defer func(begin time.Time) {
		message := fmt.Sprintf("Method sign for user %s and class %s took %s to complete", req.Identity.UserName, req.Class, time.Since(begin))
		if err != nil {
			lm.logger.Warn(fmt.Sprintf("%s with error: %s.", message, err))
			return
		}
		if res.Queued {
			lm.logger.Info(fmt.Sprintf("%s, queued as request %s", message, res.RequestID))
			return
		}
		lm.logger.Info(message)
	}(time.Now())
	return lm.svc.Sign(ctx, req)
}

func (lm *loggingMiddleware) Approve(ctx context.Context, requestID string) (cert authority.Certificate, err error) {
	defer func(begin time.Time) {
		message := fmt.Sprintf("Method approve for request %s took %s to complete", requestID, time.Since(begin))
		if err != nil {
			lm.logger.Warn(fmt.Sprintf("%s with error: %s.", message, err))
			return
		}
		lm.logger.Info(message)
	}(time.Now())
	return lm.svc.Approve(ctx, requestID)
}

func (lm *loggingMiddleware) Lookup(ctx context.Context, userName string, class certmgmt.CertClass) (certs []authority.Certificate, err error) {
	defer func(begin time.Time) {
		message := fmt.Sprintf("Method lookup for user %s and class %s took %s to complete", userName, class, time.Since(begin))
		if err != nil {
			lm.logger.Warn(fmt.Sprintf("%s with error: %s.", message, err))
			return
		}
		lm.logger.Info(message)
	}(time.Now())
	return lm.svc.Lookup(ctx, userName, class)
}

func (lm *loggingMiddleware) IsPending(ctx context.Context, userName string, class certmgmt.CertClass) (pending bool, err error) {
	defer func(begin time.Time) {
		message := fmt.Sprintf("Method is_pending for user %s and class %s took %s to complete", userName, class, time.Since(begin))
		if err != nil {
			lm.logger.Warn(fmt.Sprintf("%s with error: %s.", message, err))
			return
		}
		lm.logger.Info(message)
	}(time.Now())
	return lm.svc.IsPending(ctx, userName, class)
}

func (lm *loggingMiddleware) StoreArchive(ctx context.Context, id certmgmt.Identity, archive authority.Archive) (err error) {
	defer func(begin time.Time) {
		message := fmt.Sprintf("Method store_archive %s for user %s took %s to complete", archive.Name, id.UserName, time.Since(begin))
		if err != nil {
			lm.logger.Warn(fmt.Sprintf("%s with error: %s.", message, err))
			return
		}
		lm.logger.Info(message)
	}(time.Now())
	return lm.svc.StoreArchive(ctx, id, archive)
}

func (lm *loggingMiddleware) FetchArchive(ctx context.Context, id certmgmt.Identity, name string) (archive authority.Archive, err error) {
	defer func(begin time.Time) {
		message := fmt.Sprintf("Method fetch_archive %s for user %s took %s to complete", name, id.UserName, time.Since(begin))
		if err != nil {
			lm.logger.Warn(fmt.Sprintf("%s with error: %s.", message, err))
			return
		}
		lm.logger.Info(message)
	}(time.Now())
	return lm.svc.FetchArchive(ctx, id, name)
}

func (lm *loggingMiddleware) RemoveArchive(ctx context.Context, id certmgmt.Identity, name string) (err error) {
	defer func(begin time.Time) {
		message := fmt.Sprintf("Method remove_archive %s for user %s took %s to complete", name, id.UserName, time.Since(begin))
		if err != nil {
			lm.logger.Warn(fmt.Sprintf("%s with error: %s.", message, err))
			return
		}
		lm.logger.Info(message)
	}(time.Now())
	return lm.svc.RemoveArchive(ctx, id, name)
}

func (lm *loggingMiddleware) ListArchives(ctx context.Context, id certmgmt.Identity) (archives []authority.Archive, err error) {
	defer func(begin time.Time) {
		message := fmt.Sprintf("Method list_archives for user %s took %s to complete", id.UserName, time.Since(begin))
		if err != nil {
			lm.logger.Warn(fmt.Sprintf("%s with error: %s.", message, err))
			return
		}
		lm.logger.Info(message)
	}(time.Now())
	return lm.svc.ListArchives(ctx, id)
}

func (lm *loggingMiddleware) CACert(ctx context.Context) (cert *x509.Certificate, err error) {
	defer func(begin time.Time) {
		message := fmt.Sprintf("Method ca_cert took %s to complete", time.Since(begin))
		if err != nil {
			lm.logger.Warn(fmt.Sprintf("%s with error: %s.", message, err))
			return
		}
		lm.logger.Info(message)
	}(time.Now())
	return lm.svc.CACert(ctx)
}
