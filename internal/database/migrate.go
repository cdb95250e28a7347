package database

import (
	"context"
	"database/sql"
	"embed"
	"fmt"
	"io/fs"
	"sort"
	"strconv"
	"strings"

	"github.com/rs/zerolog"
)

//go:embed migrations/*.sql
var migrationsFS embed.FS

// Migration is one versioned schema change. Up and down SQL are kept
// together so operators can roll back by hand if they ever need to.
type Migration struct {
	Version     int
	Description string
	UpSQL       string
	DownSQL     string
}

// migrationFile is the parsed form of NNNN_description.up.sql.
type migrationFile struct {
	version     int
	description string
	direction   string
}

func parseMigrationFileName(name string) (migrationFile, error) {
	base, ok := strings.CutSuffix(name, ".sql")
	if !ok {
		return migrationFile{}, fmt.Errorf("not a migration file: %s", name)
	}

	var direction string
	switch {
	case strings.HasSuffix(base, ".up"):
		direction = "up"
		base = strings.TrimSuffix(base, ".up")
	case strings.HasSuffix(base, ".down"):
		direction = "down"
		base = strings.TrimSuffix(base, ".down")
	default:
		return migrationFile{}, fmt.Errorf("missing direction in migration file name: %s", name)
	}

	versionPart, descriptionPart, ok := strings.Cut(base, "_")
	if !ok {
		return migrationFile{}, fmt.Errorf("missing description in migration file name: %s", name)
	}
	version, err := strconv.Atoi(versionPart)
	if err != nil {
		return migrationFile{}, fmt.Errorf("bad version in migration file name %s: %w", name, err)
	}

	return migrationFile{
		version:     version,
		description: strings.ReplaceAll(descriptionPart, "_", " "),
		direction:   direction,
	}, nil
}

// LoadMigrations scans fsys for NNNN_description.{up,down}.sql pairs
// and returns them sorted by version. Every version must carry both
// directions; files that don't match the pattern are ignored.
func LoadMigrations(fsys fs.FS) ([]*Migration, error) {
	byVersion := make(map[int]*Migration)

	err := fs.WalkDir(fsys, ".", func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}

		mf, err := parseMigrationFileName(d.Name())
		if err != nil {
			// Not a migration file.
			return nil
		}

		content, err := fs.ReadFile(fsys, path)
		if err != nil {
			return fmt.Errorf("read %s: %w", path, err)
		}

		m, exists := byVersion[mf.version]
		if !exists {
			m = &Migration{Version: mf.version, Description: mf.description}
			byVersion[mf.version] = m
		}
		switch mf.direction {
		case "up":
			m.UpSQL = string(content)
		case "down":
			m.DownSQL = string(content)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("scan migrations: %w", err)
	}

	migrations := make([]*Migration, 0, len(byVersion))
	for version, m := range byVersion {
		if m.UpSQL == "" || m.DownSQL == "" {
			return nil, fmt.Errorf("migration %04d is missing its up or down file", version)
		}
		migrations = append(migrations, m)
	}
	sort.Slice(migrations, func(i, j int) bool {
		return migrations[i].Version < migrations[j].Version
	})
	return migrations, nil
}

// EmbeddedMigrations loads the migrations compiled into the binary.
func EmbeddedMigrations() ([]*Migration, error) {
	sub, err := fs.Sub(migrationsFS, "migrations")
	if err != nil {
		return nil, err
	}
	return LoadMigrations(sub)
}

// Migrate applies every pending embedded migration in version order.
// Each migration runs in its own transaction together with its
// schema_migrations record, so a failure leaves the schema at the
// last fully applied version.
func Migrate(ctx context.Context, db *sql.DB, logger zerolog.Logger) error {
	migrations, err := EmbeddedMigrations()
	if err != nil {
		return err
	}
	return applyAll(ctx, db, migrations, logger)
}

const createSchemaMigrationsSQL = `
CREATE TABLE IF NOT EXISTS schema_migrations (
	version     INTEGER PRIMARY KEY,
	description TEXT NOT NULL,
	applied_at  TIMESTAMPTZ NOT NULL DEFAULT NOW()
)`

func applyAll(ctx context.Context, db *sql.DB, migrations []*Migration, logger zerolog.Logger) error {
	if _, err := db.ExecContext(ctx, createSchemaMigrationsSQL); err != nil {
		return fmt.Errorf("create schema_migrations: %w", err)
	}

	applied, err := appliedVersions(ctx, db)
	if err != nil {
		return err
	}

	for _, m := range migrations {
		if applied[m.Version] {
			continue
		}
		if err := applyOne(ctx, db, m); err != nil {
			return fmt.Errorf("apply migration %04d (%s): %w", m.Version, m.Description, err)
		}
		logger.Info().
			Int("version", m.Version).
			Str("description", m.Description).
			Msg("applied migration")
	}
	return nil
}

func appliedVersions(ctx context.Context, db *sql.DB) (map[int]bool, error) {
	rows, err := db.QueryContext(ctx, `SELECT version FROM schema_migrations`)
	if err != nil {
		return nil, fmt.Errorf("read schema_migrations: %w", err)
	}
	defer rows.Close()

	applied := make(map[int]bool)
	for rows.Next() {
		var version int
		if err := rows.Scan(&version); err != nil {
			return nil, err
		}
		applied[version] = true
	}
	return applied, rows.Err()
}

func applyOne(ctx context.Context, db *sql.DB, m *Migration) error {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, m.UpSQL); err != nil {
		return err
	}
	if _, err := tx.ExecContext(ctx,
		`INSERT INTO schema_migrations (version, description) VALUES ($1, $2)`,
		m.Version, m.Description); err != nil {
		return err
	}
	return tx.Commit()
}
