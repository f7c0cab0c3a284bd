// Copyright (c) Abstract Machines
// SPDX-License-Identifier: Apache-2.0

package tracing

import (
	"context"
	"crypto/x509"

	"github.com/absmach/certmgmt"
	"github.com/absmach/certmgmt/authority"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

var _ authority.Service = (*tracingMiddleware)(nil)

type tracingMiddleware struct {
	tracer trace.Tracer
	svc    authority.Service
}

// New returns a new authority service with tracing capabilities.
func New(svc authority.Service, tracer trace.Tracer) authority.Service {
	return &tracingMiddleware{tracer, svc}
}

func (tm *tracingMiddleware) Register(ctx context.Context, userName, password string) error {
	ctx, span := tm.tracer.Start(ctx, "register", trace.WithAttributes(
		attribute.String("user_name", userName),
	))
	defer span.End()
	return tm.svc.Register(ctx, userName, password)
}

func (tm *tracingMiddleware) Sign(ctx context.Context, req authority.SignRequest) (authority.SignResult, error) {
	ctx, span := tm.tracer.Start(ctx, "sign", trace.WithAttributes(
		attribute.String("user_name", string(req.Identity.UserName)),
		attribute.String("cert_class", req.Class.String()),
		attribute.Bool("renew", req.Renew),
	))
	defer span.End()
	return tm.svc.Sign(ctx, req)
}

func (tm *tracingMiddleware) Approve(ctx context.Context, requestID string) (authority.Certificate, error) {
	ctx, span := tm.tracer.Start(ctx, "approve", trace.WithAttributes(
		attribute.String("request_id", requestID),
	))
	defer span.End()
	return tm.svc.Approve(ctx, requestID)
}

func (tm *tracingMiddleware) Lookup(ctx context.Context, userName string, class certmgmt.CertClass) ([]authority.Certificate, error) {
	ctx, span := tm.tracer.Start(ctx, "lookup", trace.WithAttributes(
		attribute.String("user_name", userName),
		attribute.String("cert_class", class.String()),
	))
	defer span.End()
	return tm.svc.Lookup(ctx, userName, class)
}

func (tm *tracingMiddleware) IsPending(ctx context.Context, userName string, class certmgmt.CertClass) (bool, error) {
	ctx, span := tm.tracer.Start(ctx, "is_pending", trace.WithAttributes(
		attribute.String("user_name", userName),
		attribute.String("cert_class", class.String()),
	))
	defer span.End()
	return tm.svc.IsPending(ctx, userName, class)
}

func (tm *tracingMiddleware) StoreArchive(ctx context.Context, id certmgmt.Identity, archive authority.Archive) error {
	ctx, span := tm.tracer.Start(ctx, "store_archive", trace.WithAttributes(
		attribute.String("archive_name", archive.Name),
	))
	defer span.End()
	return tm.svc.StoreArchive(ctx, id, archive)
}

func (tm *tracingMiddleware) FetchArchive(ctx context.Context, id certmgmt.Identity, name string) (authority.Archive, error) {
	ctx, span := tm.tracer.Start(ctx, "fetch_archive", trace.WithAttributes(
		attribute.String("archive_name", name),
	))
	defer span.End()
	return tm.svc.FetchArchive(ctx, id, name)
}

func (tm *tracingMiddleware) RemoveArchive(ctx context.Context, id certmgmt.Identity, name string) error {
	ctx, span := tm.tracer.Start(ctx, "remove_archive", trace.WithAttributes(
		attribute.String("archive_name", name),
	))
	defer span.End()
	return tm.svc.RemoveArchive(ctx, id, name)
}

func (tm *tracingMiddleware) ListArchives(ctx context.Context, id certmgmt.Identity) ([]authority.Archive, error) {
	ctx, span := tm.tracer.Start(ctx, "list_archives")
	defer span.End()
	return tm.svc.ListArchives(ctx, id)
}

func (tm *tracingMiddleware) CACert(ctx context.Context) (*x509.Certificate, error) {
	ctx, span := tm.tracer.Start(ctx, "ca_cert")
	defer span.End()
	return tm.svc.CACert(ctx)
}
