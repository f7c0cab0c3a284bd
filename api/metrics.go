// Copyright (c) Abstract Machines
// SPDX-License-Identifier: Apache-2.0

package api

import (
	"context"
	"crypto/x509"
	"time"

	"github.com/absmach/certmgmt"
	"github.com/absmach/certmgmt/authority"
	"github.com/go-kit/kit/metrics"
)

var _ authority.Service = (*metricsMiddleware)(nil)

type metricsMiddleware struct {
	counter metrics.Counter
	latency metrics.Histogram
	svc     authority.Service
}

// MetricsMiddleware instruments the authority service by tracking request count and latency.
func MetricsMiddleware(svc authority.Service, counter metrics.Counter, latency metrics.Histogram) authority.Service {
	return &metricsMiddleware{
		counter: counter,
		latency: latency,
		svc:     svc,
	}
}

func (mm *metricsMiddleware) Register(ctx context.Context, userName, password string) error {
	defer func(begin time.Time) {
		mm.counter.With("method", "register").Add(1)
		mm.latency.With("method", "register").Observe(time.Since(begin).Seconds())
	}(time.Now())
	return mm.svc.Register(ctx, userName, password)
}

func (mm *metricsMiddleware) Sign(ctx context.Context, req authority.SignRequest) (authority.SignResult, error) {
	defer func(begin time.Time) {
		mm.counter.With("method", "sign").Add(1)
		mm.latency.With("method", "sign").Observe(time.Since(begin).Seconds())
	}(time.Now())
	return mm.svc.Sign(ctx, req)
}

func (mm *metricsMiddleware) Approve(ctx context.Context, requestID string) (authority.Certificate, error) {
	defer func(begin time.Time) {
		mm.counter.With("method", "approve").Add(1)
		mm.latency.With("method", "approve").Observe(time.Since(begin).Seconds())
	}(time.Now())
	return mm.svc.Approve(ctx, requestID)
}

func (mm *metricsMiddleware) Lookup(ctx context.Context, userName string, class certmgmt.CertClass) ([]authority.Certificate, error) {
	defer func(begin time.Time) {
		mm.counter.With("method", "lookup").Add(1)
		mm.latency.With("method", "lookup").Observe(time.Since(begin).Seconds())
	}(time.Now())
	return mm.svc.Lookup(ctx, userName, class)
}

func (mm *metricsMiddleware) IsPending(ctx context.Context, userName string, class certmgmt.CertClass) (bool, error) {
	defer func(begin time.Time) {
		mm.counter.With("method", "is_pending").Add(1)
		mm.latency.With("method", "is_pending").Observe(time.Since(begin).Seconds())
	}(time.Now())
	return mm.svc.IsPending(ctx, userName, class)
}

func (mm *metricsMiddleware) StoreArchive(ctx context.Context, id certmgmt.Identity, archive authority.Archive) error {
	defer func(begin time.Time) {
		mm.counter.With("method", "store_archive").Add(1)
		mm.latency.With("method", "store_archive").Observe(time.Since(begin).Seconds())
	}(time.Now())
	return mm.svc.StoreArchive(ctx, id, archive)
}

func (mm *metricsMiddleware) FetchArchive(ctx context.Context, id certmgmt.Identity, name string) (authority.Archive, error) {
	defer func(begin time.Time) {
		mm.counter.With("method", "fetch_archive").Add(1)
		mm.latency.With("method", "fetch_archive").Observe(time.Since(begin).Seconds())
	}(time.Now())
	return mm.svc.FetchArchive(ctx, id, name)
}

func (mm *metricsMiddleware) RemoveArchive(ctx context.Context, id certmgmt.Identity, name string) error {
	defer func(begin time.Time) {
		mm.counter.With("method", "remove_archive").Add(1)
		mm.latency.With("method", "remove_archive").Observe(time.Since(begin).Seconds())
	}(time.Now())
	return mm.svc.RemoveArchive(ctx, id, name)
}

func (mm *metricsMiddleware) ListArchives(ctx context.Context, id certmgmt.Identity) ([]authority.Archive, error) {
	defer func(begin time.Time) {
		mm.counter.With("method", "list_archives").Add(1)
		mm.latency.With("method", "list_archives").Observe(time.Since(begin).Seconds())
	}(time.Now())
	return mm.svc.ListArchives(ctx, id)
}

func (mm *metricsMiddleware) CACert(ctx context.Context) (*x509.Certificate, error) {
	defer func(begin time.Time) {
		mm.counter.With("method", "ca_cert").Add(1)
		mm.latency.With("method", "ca_cert").Observe(time.Since(begin).Seconds())
	}(time.Now())
	return mm.svc.CACert(ctx)
}
