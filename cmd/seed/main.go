package main

import (
	"context"
	"database/sql"

	"github.com/shopspring/decimal"

	"github.com/plantstore/plantstore-backend/internal/config"
	"github.com/plantstore/plantstore-backend/internal/database"
	"github.com/plantstore/plantstore-backend/internal/observability"
)

type seedPlant struct {
	id    int64
	name  string
	image string
	price decimal.Decimal
}

var seedPlants = []seedPlant{
	{id: 1, name: "Aloe", image: "./images/aloe.jpg", price: decimal.RequireFromString("11.50")},
	{id: 2, name: "ZZ Plant", image: "./images/zz-plant.jpg", price: decimal.RequireFromString("25.98")},
}

func main() {
	logger := observability.InitLogger("plantstore-seed")

	cfg, err := config.Load()
	if err != nil {
		logger.Fatal().Err(err).Msg("configuration")
	}

	ctx := context.Background()

	db, err := database.Open(ctx, cfg.DatabaseURL)
	if err != nil {
		logger.Fatal().Err(err).Msg("database")
	}
	defer db.Close()

	if err := database.Migrate(ctx, db, logger); err != nil {
		logger.Fatal().Err(err).Msg("migrations")
	}

	if err := seed(ctx, db); err != nil {
		logger.Fatal().Err(err).Msg("seed")
	}
	logger.Info().Int("plants", len(seedPlants)).Msg("database seeded")
}

// seed replaces the plants table contents with the fixture rows.
func seed(ctx context.Context, db *sql.DB) error {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM plants`); err != nil {
		return err
	}

	for _, p := range seedPlants {
		_, err := tx.ExecContext(ctx,
			`INSERT INTO plants (id, name, image, price) VALUES ($1, $2, $3, $4)`,
			p.id, p.name, p.image, p.price,
		)
		if err != nil {
			return err
		}
	}

	// Explicit ids bypass the sequence; realign it so later inserts do not collide.
	if _, err := tx.ExecContext(ctx,
		`SELECT setval(pg_get_serial_sequence('plants', 'id'), (SELECT MAX(id) FROM plants))`,
	); err != nil {
		return err
	}

	return tx.Commit()
}
