// Copyright (c) Abstract Machines
// SPDX-License-Identifier: Apache-2.0

package api

import (
	"context"
	"crypto/subtle"
	"crypto/x509"

	"github.com/absmach/certmgmt"
	"github.com/absmach/certmgmt/authority"
	"github.com/absmach/supermq/pkg/errors"
)

// ErrAdminRequired indicates an administrative operation without a valid
// admin token.
var ErrAdminRequired = errors.New("admin token required")

type adminTokenKey struct{}

// WithAdminToken returns a context carrying the admin token of a request.
func WithAdminToken(ctx context.Context, token string) context.Context {
	return context.WithValue(ctx, adminTokenKey{}, token)
}

// AdminToken returns the admin token carried by ctx.
func AdminToken(ctx context.Context) string {
	token, _ := ctx.Value(adminTokenKey{}).(string)
	return token
}

var _ authority.Service = (*authorizationMiddleware)(nil)

type authorizationMiddleware struct {
	adminToken string
	svc        authority.Service
}

// AuthorizationMiddleware restricts user registration and request approval
// to callers presenting adminToken. An empty adminToken disables both.
func AuthorizationMiddleware(svc authority.Service, adminToken string) authority.Service {
	return &authorizationMiddleware{adminToken, svc}
}

func (am *authorizationMiddleware) Register(ctx context.Context, userName, password string) error {
	if err := am.checkAdmin(ctx); err != nil {
		return err
	}
	return am.svc.Register(ctx, userName, password)
}

func (am *authorizationMiddleware) Sign(ctx context.Context, req authority.SignRequest) (authority.SignResult, error) {
	return am.svc.Sign(ctx, req)
}

func (am *authorizationMiddleware) Approve(ctx context.Context, requestID string) (authority.Certificate, error) {
	if err := am.checkAdmin(ctx); err != nil {
		return authority.Certificate{}, err
	}
	return am.svc.Approve(ctx, requestID)
}

func (am *authorizationMiddleware) Lookup(ctx context.Context, userName string, class certmgmt.CertClass) ([]authority.Certificate, error) {
	return am.svc.Lookup(ctx, userName, class)
}

func (am *authorizationMiddleware) IsPending(ctx context.Context, userName string, class certmgmt.CertClass) (bool, error) {
	return am.svc.IsPending(ctx, userName, class)
}

func (am *authorizationMiddleware) StoreArchive(ctx context.Context, id certmgmt.Identity, archive authority.Archive) error {
	return am.svc.StoreArchive(ctx, id, archive)
}

func (am *authorizationMiddleware) FetchArchive(ctx context.Context, id certmgmt.Identity, name string) (authority.Archive, error) {
	return am.svc.FetchArchive(ctx, id, name)
}

func (am *authorizationMiddleware) RemoveArchive(ctx context.Context, id certmgmt.Identity, name string) error {
	return am.svc.RemoveArchive(ctx, id, name)
}

func (am *authorizationMiddleware) ListArchives(ctx context.Context, id certmgmt.Identity) ([]authority.Archive, error) {
	return am.svc.ListArchives(ctx, id)
}

func (am *authorizationMiddleware) CACert(ctx context.Context) (*x509.Certificate, error) {
	return am.svc.CACert(ctx)
}

func (am *authorizationMiddleware) checkAdmin(ctx context.Context) error {
	token := AdminToken(ctx)
	if am.adminToken == "" || token == "" {
		return errors.Wrap(certmgmt.ErrAuthentication, ErrAdminRequired)
	}
	if subtle.ConstantTimeCompare([]byte(token), []byte(am.adminToken)) != 1 {
		return errors.Wrap(certmgmt.ErrAuthentication, ErrAdminRequired)
	}
	return nil
}
