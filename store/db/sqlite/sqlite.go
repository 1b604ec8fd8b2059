// Package sqlite implements the store driver on SQLite.
// SQLite is intended for development, demo and single-administrator
// deployments; production instances should use PostgreSQL.
package sqlite

import (
	"context"
	"database/sql"
	"time"

	"github.com/pkg/errors"

	// Import the SQLite driver.
	_ "modernc.org/sqlite"

	"github.com/quilicura/micondominio/internal/profile"
	"github.com/quilicura/micondominio/internal/version"
	"github.com/quilicura/micondominio/store"
)

type DB struct {
	db      *sql.DB
	profile *profile.Profile
}

// NewDB opens the SQLite database at the DSN configured in the profile.
func NewDB(profile *profile.Profile) (store.Driver, error) {
	if profile.DSN == "" {
		return nil, errors.New("dsn required")
	}

	// Connect with some sane settings:
	// - Foreign keys enabled: the schema relies on them.
	// - busy_timeout: avoid immediate SQLITE_BUSY under the write-ahead log.
	// - Journal mode WAL: the recommended journal mode for most applications.
	//
	// Note: with the `modernc.org/sqlite` driver each pragma must be prefixed
	// with `_pragma=`.
	sqliteDB, err := sql.Open("sqlite", profile.DSN+"?_pragma=foreign_keys(1)&_pragma=busy_timeout(10000)&_pragma=journal_mode(WAL)")
	if err != nil {
		return nil, errors.Wrapf(err, "failed to open db with dsn: %s", profile.DSN)
	}

	// SQLite with WAL: a single connection is optimal and avoids writer contention.
	sqliteDB.SetMaxOpenConns(1)
	sqliteDB.SetMaxIdleConns(1)
	sqliteDB.SetConnMaxLifetime(0)
	sqliteDB.SetConnMaxIdleTime(0)

	driver := DB{db: sqliteDB, profile: profile}

	return &driver, nil
}

func (d *DB) GetDB() *sql.DB {
	return d.db
}

func (d *DB) Close() error {
	return d.db.Close()
}

const schema = `
CREATE TABLE IF NOT EXISTS region (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	code TEXT NOT NULL UNIQUE,
	name TEXT NOT NULL UNIQUE,
	created_ts BIGINT NOT NULL,
	updated_ts BIGINT NOT NULL
);

CREATE TABLE IF NOT EXISTS commune (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	region_id INTEGER NOT NULL REFERENCES region(id),
	name TEXT NOT NULL,
	created_ts BIGINT NOT NULL,
	updated_ts BIGINT NOT NULL,
	UNIQUE(region_id, name)
);

CREATE TABLE IF NOT EXISTS condominium (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	rut TEXT NOT NULL UNIQUE,
	name TEXT NOT NULL,
	address TEXT NOT NULL,
	region_id INTEGER NOT NULL REFERENCES region(id),
	commune_id INTEGER NOT NULL REFERENCES commune(id),
	contact_email TEXT NOT NULL,
	created_ts BIGINT NOT NULL,
	updated_ts BIGINT NOT NULL
);

CREATE TABLE IF NOT EXISTS user (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	condominium_id INTEGER NOT NULL REFERENCES condominium(id),
	first_names TEXT NOT NULL,
	last_name TEXT NOT NULL,
	rut TEXT NOT NULL UNIQUE,
	email TEXT NOT NULL,
	phone TEXT NOT NULL DEFAULT '',
	residence TEXT NOT NULL DEFAULT '',
	password_hash TEXT NOT NULL DEFAULT '',
	role TEXT NOT NULL,
	account_status TEXT NOT NULL DEFAULT 'ACTIVA',
	created_ts BIGINT NOT NULL,
	updated_ts BIGINT NOT NULL
);

CREATE TABLE IF NOT EXISTS incident_category (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	name TEXT NOT NULL UNIQUE,
	created_ts BIGINT NOT NULL
);

CREATE TABLE IF NOT EXISTS incident (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	condominium_id INTEGER NOT NULL REFERENCES condominium(id),
	category_id INTEGER NOT NULL REFERENCES incident_category(id),
	reporter_id INTEGER NOT NULL REFERENCES user(id),
	title TEXT NOT NULL,
	description TEXT NOT NULL,
	status TEXT NOT NULL DEFAULT 'PENDIENTE',
	priority TEXT NOT NULL DEFAULT 'MEDIA',
	address TEXT,
	latitude REAL,
	longitude REAL,
	reported_ts BIGINT NOT NULL,
	closed_ts BIGINT,
	created_ts BIGINT NOT NULL,
	updated_ts BIGINT NOT NULL
);

CREATE TABLE IF NOT EXISTS incident_log (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	incident_id INTEGER NOT NULL REFERENCES incident(id) ON DELETE CASCADE,
	action TEXT NOT NULL,
	detail TEXT NOT NULL,
	created_ts BIGINT NOT NULL
);

CREATE TABLE IF NOT EXISTS sanction (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	condominium_id INTEGER NOT NULL REFERENCES condominium(id),
	reporter_id INTEGER NOT NULL REFERENCES user(id),
	type TEXT NOT NULL,
	reason TEXT NOT NULL,
	reason_detail TEXT,
	offender_first_name TEXT NOT NULL,
	offender_last_name TEXT NOT NULL,
	offender_rut TEXT NOT NULL,
	apartment_number TEXT,
	sanction_ts BIGINT NOT NULL,
	payment_due_ts BIGINT,
	created_ts BIGINT NOT NULL,
	updated_ts BIGINT NOT NULL
);

CREATE TABLE IF NOT EXISTS meeting (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	condominium_id INTEGER NOT NULL REFERENCES condominium(id),
	topic TEXT NOT NULL,
	scheduled_ts BIGINT NOT NULL,
	location TEXT NOT NULL,
	description TEXT,
	status TEXT NOT NULL DEFAULT 'PROGRAMADA',
	created_ts BIGINT NOT NULL,
	updated_ts BIGINT NOT NULL
);

CREATE TABLE IF NOT EXISTS chat_session (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	uid TEXT NOT NULL UNIQUE,
	user_id INTEGER NOT NULL REFERENCES user(id),
	title TEXT NOT NULL DEFAULT '',
	active INTEGER NOT NULL DEFAULT 1,
	created_ts BIGINT NOT NULL,
	updated_ts BIGINT NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_chat_session_user_active ON chat_session(user_id, active);

CREATE TABLE IF NOT EXISTS chat_message (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	session_id INTEGER NOT NULL REFERENCES chat_session(id) ON DELETE CASCADE,
	role TEXT NOT NULL,
	content TEXT NOT NULL,
	tokens_used INTEGER,
	pending_action TEXT,
	created_ts BIGINT NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_chat_message_session ON chat_message(session_id, created_ts);
`

const migrationHistorySchema = `
CREATE TABLE IF NOT EXISTS migration_history (
	version TEXT NOT NULL PRIMARY KEY,
	created_ts BIGINT NOT NULL
);
`

// Migrate creates the schema. Statements are idempotent; dev and demo
// instances reapply the latest schema on every startup, while prod skips
// migration when the recorded version is already current.
func (d *DB) Migrate(ctx context.Context) error {
	if _, err := d.db.ExecContext(ctx, migrationHistorySchema); err != nil {
		return errors.Wrap(err, "failed to create migration_history table")
	}

	currentVersion := version.GetCurrentVersion(d.profile.Mode)
	if d.profile.Mode == "prod" {
		applied, err := d.latestMigrationVersion(ctx)
		if err != nil {
			return err
		}
		if applied != "" && version.IsVersionGreaterOrEqualThan(applied, currentVersion) {
			return nil
		}
	}

	if _, err := d.db.ExecContext(ctx, schema); err != nil {
		return errors.Wrap(err, "failed to migrate schema")
	}
	if _, err := d.db.ExecContext(ctx,
		"INSERT INTO migration_history (version, created_ts) VALUES (?, ?) ON CONFLICT(version) DO NOTHING",
		currentVersion, time.Now().Unix(),
	); err != nil {
		return errors.Wrap(err, "failed to record migration version")
	}
	return nil
}

func (d *DB) latestMigrationVersion(ctx context.Context) (string, error) {
	rows, err := d.db.QueryContext(ctx, "SELECT version FROM migration_history")
	if err != nil {
		return "", errors.Wrap(err, "failed to read migration_history")
	}
	defer rows.Close()

	latest := ""
	for rows.Next() {
		var v string
		if err := rows.Scan(&v); err != nil {
			return "", errors.Wrap(err, "failed to scan migration_history")
		}
		if latest == "" || version.IsVersionGreaterOrEqualThan(v, latest) {
			latest = v
		}
	}
	return latest, rows.Err()
}
