package plants

import (
	"context"
	"database/sql"
	"errors"

	"github.com/lib/pq"
)

type postgresRepo struct{ db *sql.DB }

func NewPostgresRepository(db *sql.DB) Repository { return &postgresRepo{db: db} }

func (r *postgresRepo) List(ctx context.Context) ([]*Plant, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT id, name, image, price FROM plants`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	// Non-nil so an empty table serialises as [] rather than null.
	plants := make([]*Plant, 0)
	for rows.Next() {
		p, err := scanPlant(rows)
		if err != nil {
			return nil, err
		}
		plants = append(plants, p)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return plants, nil
}

func (r *postgresRepo) GetByID(ctx context.Context, id int64) (*Plant, error) {
	return scanPlant(r.db.QueryRowContext(ctx,
		`SELECT id, name, image, price FROM plants WHERE id = $1`, id))
}

// Create inserts the plant inside a transaction and fills in the
// store-assigned id.
func (r *postgresRepo) Create(ctx context.Context, p *Plant) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	err = tx.QueryRowContext(ctx, `
		INSERT INTO plants (name, image, price)
		VALUES ($1, $2, $3)
		RETURNING id`,
		p.Name, p.Image, p.Price).Scan(&p.ID)
	if err != nil {
		return mapIntegrity(err)
	}
	if err := tx.Commit(); err != nil {
		return mapIntegrity(err)
	}
	return nil
}

// Delete removes the plant inside a transaction. sql.ErrNoRows comes
// back when the id is not in the table.
func (r *postgresRepo) Delete(ctx context.Context, id int64) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	res, err := tx.ExecContext(ctx, `DELETE FROM plants WHERE id = $1`, id)
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return sql.ErrNoRows
	}
	return tx.Commit()
}

// ── helpers ──────────────────────────────────────────────────────────────────

type rowScanner interface{ Scan(dest ...interface{}) error }

func scanPlant(row rowScanner) (*Plant, error) {
	p := &Plant{}
	if err := row.Scan(&p.ID, &p.Name, &p.Image, &p.Price); err != nil {
		return nil, err
	}
	return p, nil
}

// mapIntegrity folds Postgres integrity violations (class 23) into
// ErrIntegrity and leaves every other failure untouched.
func mapIntegrity(err error) error {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) && pqErr.Code.Class() == "23" {
		return ErrIntegrity
	}
	return err
}
