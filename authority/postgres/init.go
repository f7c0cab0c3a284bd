// Copyright (c) Abstract Machines
// SPDX-License-Identifier: Apache-2.0

package postgres

import (
	_ "github.com/jackc/pgx/v5/stdlib" // required for SQL access
	migrate "github.com/rubenv/sql-migrate"
)

func Migration() *migrate.MemoryMigrationSource {
	return &migrate.MemoryMigrationSource{
		Migrations: []*migrate.Migration{
			{
				Id: "certmgmt_1",
				Up: []string{
					`CREATE TABLE IF NOT EXISTS users (
						user_name     VARCHAR(254) PRIMARY KEY,
						password_hash BYTEA NOT NULL,
						created_at    TIMESTAMP
					)`,
					`CREATE TABLE IF NOT EXISTS certs (
						seq           BIGSERIAL,
						serial_number VARCHAR(40) PRIMARY KEY,
						user_name     VARCHAR(254) NOT NULL,
						cert_class    SMALLINT NOT NULL,
						certificate   BYTEA NOT NULL,
						renewal       BOOLEAN NOT NULL DEFAULT FALSE,
						expiry_time   TIMESTAMP,
						created_at    TIMESTAMP
					)`,
					`CREATE INDEX IF NOT EXISTS certs_user_class_idx ON certs (user_name, cert_class)`,
					`CREATE TABLE IF NOT EXISTS pending_requests (
						id         VARCHAR(36) PRIMARY KEY,
						user_name  VARCHAR(254) NOT NULL,
						cert_class SMALLINT NOT NULL,
						csr        BYTEA NOT NULL,
						renewal    BOOLEAN NOT NULL DEFAULT FALSE,
						created_at TIMESTAMP
					)`,
					`CREATE TABLE IF NOT EXISTS archives (
						user_name    VARCHAR(254) NOT NULL,
						archive_name VARCHAR(1024) NOT NULL,
						time_string  VARCHAR(64) NOT NULL,
						pfx          BYTEA NOT NULL,
						updated_at   TIMESTAMP,
						PRIMARY KEY (user_name, archive_name)
					)`,
				},
				Down: []string{
					"DROP TABLE archives",
					"DROP TABLE pending_requests",
					"DROP TABLE certs",
					"DROP TABLE users",
				},
			},
		},
	}
}
