package database_test

import (
	"testing"
	"testing/fstest"

	qt "github.com/frankban/quicktest"

	"github.com/plantstore/plantstore-backend/internal/database"
)

func TestLoadMigrationsSortsByVersion(t *testing.T) {
	c := qt.New(t)

	fsys := fstest.MapFS{
		"0002_add_species.up.sql":     {Data: []byte("ALTER TABLE plants ADD COLUMN species TEXT;")},
		"0002_add_species.down.sql":   {Data: []byte("ALTER TABLE plants DROP COLUMN species;")},
		"0001_create_plants.up.sql":   {Data: []byte("CREATE TABLE plants (id BIGSERIAL PRIMARY KEY);")},
		"0001_create_plants.down.sql": {Data: []byte("DROP TABLE plants;")},
	}

	migrations, err := database.LoadMigrations(fsys)
	c.Assert(err, qt.IsNil)
	c.Assert(migrations, qt.HasLen, 2)
	c.Assert(migrations[0].Version, qt.Equals, 1)
	c.Assert(migrations[0].Description, qt.Equals, "create plants")
	c.Assert(migrations[0].UpSQL, qt.Contains, "CREATE TABLE plants")
	c.Assert(migrations[1].Version, qt.Equals, 2)
	c.Assert(migrations[1].Description, qt.Equals, "add species")
}

func TestLoadMigrationsRequiresBothDirections(t *testing.T) {
	c := qt.New(t)

	fsys := fstest.MapFS{
		"0001_create_plants.up.sql":   {Data: []byte("CREATE TABLE plants ();")},
		"0001_create_plants.down.sql": {Data: []byte("DROP TABLE plants;")},
		"0002_add_species.up.sql":     {Data: []byte("ALTER TABLE plants ADD COLUMN species TEXT;")},
	}

	migrations, err := database.LoadMigrations(fsys)
	c.Assert(err, qt.ErrorMatches, `migration 0002 is missing its up or down file`)
	c.Assert(migrations, qt.IsNil)
}

func TestLoadMigrationsIgnoresUnrelatedFiles(t *testing.T) {
	c := qt.New(t)

	fsys := fstest.MapFS{
		"README.md":                   {Data: []byte("# migrations")},
		"scratch.sql":                 {Data: []byte("SELECT 1;")},
		"0001_create_plants.up.sql":   {Data: []byte("CREATE TABLE plants ();")},
		"0001_create_plants.down.sql": {Data: []byte("DROP TABLE plants;")},
	}

	migrations, err := database.LoadMigrations(fsys)
	c.Assert(err, qt.IsNil)
	c.Assert(migrations, qt.HasLen, 1)
	c.Assert(migrations[0].Version, qt.Equals, 1)
}

func TestEmbeddedMigrationsAreComplete(t *testing.T) {
	c := qt.New(t)

	migrations, err := database.EmbeddedMigrations()
	c.Assert(err, qt.IsNil)
	c.Assert(migrations, qt.Not(qt.HasLen), 0)

	c.Assert(migrations[0].Version, qt.Equals, 1)
	c.Assert(migrations[0].UpSQL, qt.Contains, "CREATE TABLE IF NOT EXISTS plants")
	c.Assert(migrations[0].DownSQL, qt.Contains, "DROP TABLE IF EXISTS plants")

	for i := 1; i < len(migrations); i++ {
		c.Assert(migrations[i].Version > migrations[i-1].Version, qt.IsTrue)
	}
}
