// Copyright (c) Abstract Machines
// SPDX-License-Identifier: Apache-2.0

// Package memory contains an in-memory authority repository for local runs
// and tests.
package memory

import (
	"context"
	"slices"
	"strings"
	"sync"

	"github.com/absmach/certmgmt"
	"github.com/absmach/certmgmt/authority"
	"github.com/absmach/supermq/pkg/errors"
)

var _ authority.Repository = (*repository)(nil)

type archiveKey struct {
	user string
	name string
}

type repository struct {
	mu       sync.RWMutex
	users    map[string]authority.User
	certs    []authority.Certificate
	pending  map[string]authority.PendingRequest
	archives map[archiveKey]authority.Archive
}

// NewRepository returns an empty in-memory repository.
func NewRepository() authority.Repository {
	return &repository{
		users:    make(map[string]authority.User),
		pending:  make(map[string]authority.PendingRequest),
		archives: make(map[archiveKey]authority.Archive),
	}
}

func (repo *repository) SaveUser(_ context.Context, user authority.User) error {
	repo.mu.Lock()
	defer repo.mu.Unlock()

	if old, ok := repo.users[user.Name]; ok {
		user.CreatedAt = old.CreatedAt
	}
	repo.users[user.Name] = user
	return nil
}

func (repo *repository) RetrieveUser(_ context.Context, name string) (authority.User, error) {
	repo.mu.RLock()
	defer repo.mu.RUnlock()

	user, ok := repo.users[name]
	if !ok {
		return authority.User{}, certmgmt.ErrNotFound
	}
	return user, nil
}

func (repo *repository) CreateCert(_ context.Context, cert authority.Certificate) error {
	repo.mu.Lock()
	defer repo.mu.Unlock()

	for _, c := range repo.certs {
		if c.SerialNumber == cert.SerialNumber {
			return authority.ErrConflict
		}
	}
	cert.DER = slices.Clone(cert.DER)
	repo.certs = append(repo.certs, cert)
	return nil
}

func (repo *repository) ListCerts(_ context.Context, userName string, class certmgmt.CertClass) ([]authority.Certificate, error) {
	repo.mu.RLock()
	defer repo.mu.RUnlock()

	var certs []authority.Certificate
	for _, c := range repo.certs {
		if c.UserName != userName {
			continue
		}
		if class != certmgmt.CertClassAll && c.Class != class {
			continue
		}
		certs = append(certs, c)
	}
	return certs, nil
}

func (repo *repository) CreatePending(_ context.Context, req authority.PendingRequest) error {
	repo.mu.Lock()
	defer repo.mu.Unlock()

	if _, ok := repo.pending[req.ID]; ok {
		return authority.ErrConflict
	}
	req.CSR = slices.Clone(req.CSR)
	repo.pending[req.ID] = req
	return nil
}

func (repo *repository) RetrievePending(_ context.Context, id string) (authority.PendingRequest, error) {
	repo.mu.RLock()
	defer repo.mu.RUnlock()

	req, ok := repo.pending[id]
	if !ok {
		return authority.PendingRequest{}, certmgmt.ErrNotFound
	}
	return req, nil
}

func (repo *repository) RemovePending(_ context.Context, id string) error {
	repo.mu.Lock()
	defer repo.mu.Unlock()

	if _, ok := repo.pending[id]; !ok {
		return certmgmt.ErrNotFound
	}
	delete(repo.pending, id)
	return nil
}

func (repo *repository) CountPending(_ context.Context, userName string, class certmgmt.CertClass) (uint64, error) {
	repo.mu.RLock()
	defer repo.mu.RUnlock()

	var count uint64
	for _, req := range repo.pending {
		if req.UserName != userName {
			continue
		}
		if class != certmgmt.CertClassAll && req.Class != class {
			continue
		}
		count++
	}
	return count, nil
}

func (repo *repository) SaveArchive(_ context.Context, archive authority.Archive) error {
	if archive.UserName == "" || archive.Name == "" {
		return errors.Wrap(authority.ErrMalformedEntity, certmgmt.ErrMissingArchiveName)
	}
	repo.mu.Lock()
	defer repo.mu.Unlock()

	archive.PFX = slices.Clone(archive.PFX)
	repo.archives[archiveKey{archive.UserName, archive.Name}] = archive
	return nil
}

func (repo *repository) RetrieveArchive(_ context.Context, userName, name string) (authority.Archive, error) {
	repo.mu.RLock()
	defer repo.mu.RUnlock()

	archive, ok := repo.archives[archiveKey{userName, name}]
	if !ok {
		return authority.Archive{}, certmgmt.ErrNotFound
	}
	archive.PFX = slices.Clone(archive.PFX)
	return archive, nil
}

func (repo *repository) RemoveArchive(_ context.Context, userName, name string) error {
	repo.mu.Lock()
	defer repo.mu.Unlock()

	key := archiveKey{userName, name}
	if _, ok := repo.archives[key]; !ok {
		return certmgmt.ErrNotFound
	}
	delete(repo.archives, key)
	return nil
}

func (repo *repository) ListArchives(_ context.Context, userName string) ([]authority.Archive, error) {
	repo.mu.RLock()
	defer repo.mu.RUnlock()

	archives := []authority.Archive{}
	for key, archive := range repo.archives {
		if key.user == userName {
			archive.PFX = nil
			archives = append(archives, archive)
		}
	}
	slices.SortFunc(archives, func(a, b authority.Archive) int {
		return strings.Compare(a.Name, b.Name)
	})
	return archives, nil
}
