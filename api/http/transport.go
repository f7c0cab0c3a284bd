// Copyright (c) Abstract Machines
// SPDX-License-Identifier: Apache-2.0

package http

import (
	"context"
	"encoding/json"
	"encoding/pem"
	"log/slog"
	"net/http"
	"net/url"
	"strings"

	"github.com/absmach/certmgmt"
	mgapi "github.com/absmach/certmgmt/api"
	"github.com/absmach/certmgmt/authority"
	"github.com/absmach/certmgmt/internal/api"
	"github.com/absmach/supermq/pkg/errors"
	"github.com/go-chi/chi/v5"
	kithttp "github.com/go-kit/kit/transport/http"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const (
	idKey        = "id"
	bearerPrefix = "Bearer "
)

// MakeHandler returns a HTTP handler for API endpoints.
func MakeHandler(svc authority.Service, logger *slog.Logger, instanceID string) http.Handler {
	opts := []kithttp.ServerOption{
		kithttp.ServerErrorEncoder(api.LoggingErrorEncoder(logger, EncodeError)),
	}
	adminOpts := append([]kithttp.ServerOption{kithttp.ServerBefore(adminTokenToContext)}, opts...)

	r := chi.NewRouter()

	r.Post(certmgmt.SignPath, kithttp.NewServer(
		signEndpoint(svc),
		decodeSign,
		api.EncodeResponse,
		opts...,
	).ServeHTTP)

	r.Post(certmgmt.ArchivePath, kithttp.NewServer(
		archiveEndpoint(svc),
		decodeArchive,
		api.EncodeResponse,
		opts...,
	).ServeHTTP)

	classes := []certmgmt.CertClass{
		certmgmt.CertClassAll,
		certmgmt.CertClassIdentity,
		certmgmt.CertClassSigning,
		certmgmt.CertClassEncryption,
	}
	for _, class := range classes {
		path, _ := class.LookupPath()
		path = strings.TrimSuffix(path, "?")

		r.Get(path, kithttp.NewServer(
			lookupEndpoint(svc),
			decodeLookup(class),
			encodePEMResponse,
			opts...,
		).ServeHTTP)

		r.Head(path, kithttp.NewServer(
			pendingEndpoint(svc),
			decodeLookup(class),
			api.EncodeResponse,
			opts...,
		).ServeHTTP)
	}

	r.Get("/ca", kithttp.NewServer(
		caEndpoint(svc),
		kithttp.NopRequestDecoder,
		encodePEMResponse,
		opts...,
	).ServeHTTP)

	r.Post("/users", kithttp.NewServer(
		registerEndpoint(svc),
		decodeRegister,
		api.EncodeResponse,
		adminOpts...,
	).ServeHTTP)

	r.Post("/requests/{id}/approve", kithttp.NewServer(
		approveEndpoint(svc),
		decodeApprove,
		api.EncodeResponse,
		adminOpts...,
	).ServeHTTP)

	r.Get("/health", api.Health("certmgmt", instanceID))
	r.Handle("/metrics", promhttp.Handler())

	return r
}

func decodeSign(_ context.Context, r *http.Request) (any, error) {
	if !strings.Contains(r.Header.Get("Content-Type"), api.ContentType) {
		return nil, ErrUnsupportedContentType
	}

	var req signReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		return nil, errors.Wrap(ErrInvalidRequest, err)
	}

	return req, nil
}

func decodeArchive(_ context.Context, r *http.Request) (any, error) {
	if !strings.Contains(r.Header.Get("Content-Type"), api.ContentType) {
		return nil, ErrUnsupportedContentType
	}

	var req archiveReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		return nil, errors.Wrap(ErrInvalidRequest, err)
	}

	op, err := certmgmt.ParseArchiveOp(req.Operation)
	if err != nil {
		return nil, err
	}
	req.op = op

	return req, nil
}

// decodeLookup reads the user name from the raw query: lookup URLs carry
// it as the whole query string.
func decodeLookup(class certmgmt.CertClass) kithttp.DecodeRequestFunc {
	return func(_ context.Context, r *http.Request) (any, error) {
		userName, err := url.QueryUnescape(r.URL.RawQuery)
		if err != nil {
			return nil, errors.Wrap(ErrInvalidRequest, err)
		}

		return lookupReq{userName: userName, class: class}, nil
	}
}

func decodeRegister(_ context.Context, r *http.Request) (any, error) {
	if !strings.Contains(r.Header.Get("Content-Type"), api.ContentType) {
		return nil, ErrUnsupportedContentType
	}

	var req registerReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		return nil, errors.Wrap(ErrInvalidRequest, err)
	}

	return req, nil
}

func decodeApprove(_ context.Context, r *http.Request) (any, error) {
	return approveReq{id: chi.URLParam(r, idKey)}, nil
}

func encodePEMResponse(_ context.Context, w http.ResponseWriter, response any) error {
	res := response.(lookupRes)

	w.Header().Set("Content-Type", api.PEMContentType)
	w.WriteHeader(http.StatusOK)
	for _, der := range res.certs {
		if err := pem.Encode(w, &pem.Block{Type: "CERTIFICATE", Bytes: der}); err != nil {
			return err
		}
	}

	return nil
}

func adminTokenToContext(ctx context.Context, r *http.Request) context.Context {
	return mgapi.WithAdminToken(ctx, extractBearerToken(r))
}

func extractBearerToken(r *http.Request) string {
	token := r.Header.Get("Authorization")
	if !strings.HasPrefix(token, bearerPrefix) {
		return ""
	}

	return strings.TrimPrefix(token, bearerPrefix)
}
