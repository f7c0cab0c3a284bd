// Copyright (c) Abstract Machines
// SPDX-License-Identifier: Apache-2.0

package postgres

import (
	"context"
	"database/sql"
	"time"

	"github.com/absmach/certmgmt"
	"github.com/absmach/certmgmt/authority"
	"github.com/absmach/supermq/pkg/errors"
	"github.com/absmach/supermq/pkg/postgres"
	"github.com/jackc/pgx/v5/pgconn"
)

// Postgres error codes:
// https://www.postgresql.org/docs/current/errcodes-appendix.html
const (
	errDuplicate      = "23505" // unique_violation
	errTruncation     = "22001" // string_data_right_truncation
	errFK             = "23503" // foreign_key_violation
	errInvalid        = "22P02" // invalid_text_representation
	errUntranslatable = "22P05" // untranslatable_character
	errInvalidChar    = "22021" // character_not_in_repertoire
)

type repository struct {
	db postgres.Database
}

var _ authority.Repository = (*repository)(nil)

func NewRepository(db postgres.Database) authority.Repository {
	return repository{
		db: db,
	}
}

func (repo repository) SaveUser(ctx context.Context, user authority.User) error {
	q := `INSERT INTO users (user_name, password_hash, created_at)
		VALUES (:user_name, :password_hash, :created_at)
		ON CONFLICT (user_name) DO UPDATE SET password_hash = EXCLUDED.password_hash`
	if _, err := repo.db.NamedExecContext(ctx, q, toDBUser(user)); err != nil {
		return handleError(authority.ErrCreateEntity, err)
	}
	return nil
}

func (repo repository) RetrieveUser(ctx context.Context, name string) (authority.User, error) {
	q := `SELECT user_name, password_hash, created_at FROM users WHERE user_name = $1`
	var dbu dbUser
	if err := repo.db.QueryRowxContext(ctx, q, name).StructScan(&dbu); err != nil {
		if err == sql.ErrNoRows {
			return authority.User{}, errors.Wrap(certmgmt.ErrNotFound, err)
		}
		return authority.User{}, handleError(authority.ErrViewEntity, err)
	}
	return dbu.toUser(), nil
}

func (repo repository) CreateCert(ctx context.Context, cert authority.Certificate) error {
	q := `INSERT INTO certs (serial_number, user_name, cert_class, certificate, renewal, expiry_time, created_at)
		VALUES (:serial_number, :user_name, :cert_class, :certificate, :renewal, :expiry_time, :created_at)`
	if _, err := repo.db.NamedExecContext(ctx, q, toDBCert(cert)); err != nil {
		return handleError(authority.ErrCreateEntity, err)
	}
	return nil
}

func (repo repository) ListCerts(ctx context.Context, userName string, class certmgmt.CertClass) ([]authority.Certificate, error) {
	q := `SELECT serial_number, user_name, cert_class, certificate, renewal, expiry_time, created_at FROM certs
		WHERE user_name = $1 AND ($2::SMALLINT = 0 OR cert_class = $2::SMALLINT) ORDER BY seq`
	rows, err := repo.db.QueryxContext(ctx, q, userName, int16(class))
	if err != nil {
		return nil, handleError(authority.ErrViewEntity, err)
	}
	defer rows.Close()

	certs := []authority.Certificate{}
	for rows.Next() {
		var dbc dbCert
		if err := rows.StructScan(&dbc); err != nil {
			return nil, handleError(authority.ErrViewEntity, err)
		}
		certs = append(certs, dbc.toCert())
	}
	if err := rows.Err(); err != nil {
		return nil, handleError(authority.ErrViewEntity, err)
	}
	return certs, nil
}

func (repo repository) CreatePending(ctx context.Context, req authority.PendingRequest) error {
	q := `INSERT INTO pending_requests (id, user_name, cert_class, csr, renewal, created_at)
		VALUES (:id, :user_name, :cert_class, :csr, :renewal, :created_at)`
	if _, err := repo.db.NamedExecContext(ctx, q, toDBPending(req)); err != nil {
		return handleError(authority.ErrCreateEntity, err)
	}
	return nil
}

func (repo repository) RetrievePending(ctx context.Context, id string) (authority.PendingRequest, error) {
	q := `SELECT id, user_name, cert_class, csr, renewal, created_at FROM pending_requests WHERE id = $1`
	var dbp dbPending
	if err := repo.db.QueryRowxContext(ctx, q, id).StructScan(&dbp); err != nil {
		if err == sql.ErrNoRows {
			return authority.PendingRequest{}, errors.Wrap(certmgmt.ErrNotFound, err)
		}
		return authority.PendingRequest{}, handleError(authority.ErrViewEntity, err)
	}
	return dbp.toPending(), nil
}

func (repo repository) RemovePending(ctx context.Context, id string) error {
	q := `DELETE FROM pending_requests WHERE id = $1`
	result, err := repo.db.ExecContext(ctx, q, id)
	if err != nil {
		return handleError(authority.ErrRemoveEntity, err)
	}
	if rows, _ := result.RowsAffected(); rows == 0 {
		return certmgmt.ErrNotFound
	}
	return nil
}

func (repo repository) CountPending(ctx context.Context, userName string, class certmgmt.CertClass) (uint64, error) {
	q := `SELECT COUNT(*) FROM pending_requests
		WHERE user_name = $1 AND ($2::SMALLINT = 0 OR cert_class = $2::SMALLINT)`
	var count int64
	if err := repo.db.QueryRowxContext(ctx, q, userName, int16(class)).Scan(&count); err != nil {
		return 0, handleError(authority.ErrViewEntity, err)
	}
	return uint64(count), nil
}

func (repo repository) SaveArchive(ctx context.Context, archive authority.Archive) error {
	q := `INSERT INTO archives (user_name, archive_name, time_string, pfx, updated_at)
		VALUES (:user_name, :archive_name, :time_string, :pfx, :updated_at)
		ON CONFLICT (user_name, archive_name) DO UPDATE
		SET time_string = EXCLUDED.time_string, pfx = EXCLUDED.pfx, updated_at = EXCLUDED.updated_at`
	if _, err := repo.db.NamedExecContext(ctx, q, toDBArchive(archive)); err != nil {
		return handleError(authority.ErrCreateEntity, err)
	}
	return nil
}

func (repo repository) RetrieveArchive(ctx context.Context, userName, name string) (authority.Archive, error) {
	q := `SELECT user_name, archive_name, time_string, pfx, updated_at FROM archives
		WHERE user_name = $1 AND archive_name = $2`
	var dba dbArchive
	if err := repo.db.QueryRowxContext(ctx, q, userName, name).StructScan(&dba); err != nil {
		if err == sql.ErrNoRows {
			return authority.Archive{}, errors.Wrap(certmgmt.ErrNotFound, err)
		}
		return authority.Archive{}, handleError(authority.ErrViewEntity, err)
	}
	return dba.toArchive(), nil
}

func (repo repository) RemoveArchive(ctx context.Context, userName, name string) error {
	q := `DELETE FROM archives WHERE user_name = $1 AND archive_name = $2`
	result, err := repo.db.ExecContext(ctx, q, userName, name)
	if err != nil {
		return handleError(authority.ErrRemoveEntity, err)
	}
	if rows, _ := result.RowsAffected(); rows == 0 {
		return certmgmt.ErrNotFound
	}
	return nil
}

func (repo repository) ListArchives(ctx context.Context, userName string) ([]authority.Archive, error) {
	q := `SELECT user_name, archive_name, time_string, updated_at FROM archives
		WHERE user_name = $1 ORDER BY archive_name`
	rows, err := repo.db.QueryxContext(ctx, q, userName)
	if err != nil {
		return nil, handleError(authority.ErrViewEntity, err)
	}
	defer rows.Close()

	archives := []authority.Archive{}
	for rows.Next() {
		var dba dbArchive
		if err := rows.StructScan(&dba); err != nil {
			return nil, handleError(authority.ErrViewEntity, err)
		}
		archives = append(archives, dba.toArchive())
	}
	if err := rows.Err(); err != nil {
		return nil, handleError(authority.ErrViewEntity, err)
	}
	return archives, nil
}

type dbUser struct {
	Name         string    `db:"user_name"`
	PasswordHash []byte    `db:"password_hash"`
	CreatedAt    time.Time `db:"created_at"`
}

func toDBUser(u authority.User) dbUser {
	return dbUser{
		Name:         u.Name,
		PasswordHash: u.PasswordHash,
		CreatedAt:    u.CreatedAt,
	}
}

func (dbu dbUser) toUser() authority.User {
	return authority.User{
		Name:         dbu.Name,
		PasswordHash: dbu.PasswordHash,
		CreatedAt:    dbu.CreatedAt,
	}
}

type dbCert struct {
	SerialNumber string    `db:"serial_number"`
	UserName     string    `db:"user_name"`
	Class        int16     `db:"cert_class"`
	Certificate  []byte    `db:"certificate"`
	Renewal      bool      `db:"renewal"`
	ExpiryTime   time.Time `db:"expiry_time"`
	CreatedAt    time.Time `db:"created_at"`
}

func toDBCert(c authority.Certificate) dbCert {
	return dbCert{
		SerialNumber: c.SerialNumber,
		UserName:     c.UserName,
		Class:        int16(c.Class),
		Certificate:  c.DER,
		Renewal:      c.Renewal,
		ExpiryTime:   c.ExpiryTime,
		CreatedAt:    c.CreatedAt,
	}
}

func (dbc dbCert) toCert() authority.Certificate {
	return authority.Certificate{
		SerialNumber: dbc.SerialNumber,
		UserName:     dbc.UserName,
		Class:        certmgmt.CertClass(dbc.Class),
		DER:          dbc.Certificate,
		Renewal:      dbc.Renewal,
		ExpiryTime:   dbc.ExpiryTime,
		CreatedAt:    dbc.CreatedAt,
	}
}

type dbPending struct {
	ID        string    `db:"id"`
	UserName  string    `db:"user_name"`
	Class     int16     `db:"cert_class"`
	CSR       []byte    `db:"csr"`
	Renewal   bool      `db:"renewal"`
	CreatedAt time.Time `db:"created_at"`
}

func toDBPending(p authority.PendingRequest) dbPending {
	return dbPending{
		ID:        p.ID,
		UserName:  p.UserName,
		Class:     int16(p.Class),
		CSR:       p.CSR,
		Renewal:   p.Renewal,
		CreatedAt: p.CreatedAt,
	}
}

func (dbp dbPending) toPending() authority.PendingRequest {
	return authority.PendingRequest{
		ID:        dbp.ID,
		UserName:  dbp.UserName,
		Class:     certmgmt.CertClass(dbp.Class),
		CSR:       dbp.CSR,
		Renewal:   dbp.Renewal,
		CreatedAt: dbp.CreatedAt,
	}
}

type dbArchive struct {
	UserName   string    `db:"user_name"`
	Name       string    `db:"archive_name"`
	TimeString string    `db:"time_string"`
	PFX        []byte    `db:"pfx"`
	UpdatedAt  time.Time `db:"updated_at"`
}

func toDBArchive(a authority.Archive) dbArchive {
	return dbArchive{
		UserName:   a.UserName,
		Name:       a.Name,
		TimeString: a.TimeString,
		PFX:        a.PFX,
		UpdatedAt:  a.UpdatedAt,
	}
}

func (dba dbArchive) toArchive() authority.Archive {
	return authority.Archive{
		UserName:   dba.UserName,
		Name:       dba.Name,
		TimeString: dba.TimeString,
		PFX:        dba.PFX,
		UpdatedAt:  dba.UpdatedAt,
	}
}

func handleError(wrapper, err error) error {
	pqErr, ok := err.(*pgconn.PgError)
	if ok {
		switch pqErr.Code {
		case errDuplicate:
			return errors.Wrap(authority.ErrConflict, err)
		case errInvalid, errInvalidChar, errTruncation, errUntranslatable:
			return errors.Wrap(authority.ErrMalformedEntity, err)
		case errFK:
			return errors.Wrap(authority.ErrCreateEntity, err)
		}
	}

	return errors.Wrap(wrapper, err)
}
