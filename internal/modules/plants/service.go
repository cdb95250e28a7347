package plants

import (
	"bytes"
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

// Service defines plant business logic.
type Service interface {
	ListPlants(ctx context.Context) ([]*Plant, error)
	GetPlant(ctx context.Context, id int64) (*Plant, error)
	CreatePlant(ctx context.Context, req CreatePlantRequest) (*Plant, error)
	DeletePlant(ctx context.Context, id int64) error
}

type service struct{ repo Repository }

func NewService(repo Repository) Service { return &service{repo: repo} }

func (s *service) ListPlants(ctx context.Context) ([]*Plant, error) {
	return s.repo.List(ctx)
}

func (s *service) GetPlant(ctx context.Context, id int64) (*Plant, error) {
	p, err := s.repo.GetByID(ctx, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, &NotFoundError{ID: strconv.FormatInt(id, 10)}
	}
	if err != nil {
		return nil, err
	}
	return p, nil
}

// CreatePlant validates the payload in a fixed order: every key
// present, then no empty values, then a parseable price. The first
// failed step wins.
func (s *service) CreatePlant(ctx context.Context, req CreatePlantRequest) (*Plant, error) {
	if !req.Name.Set || !req.Image.Set || req.Price == nil {
		return nil, &ValidationError{Reason: msgMissingFields}
	}
	if req.Name.Empty() || req.Image.Empty() || isJSONNull(req.Price) {
		return nil, &ValidationError{Reason: msgEmptyFields}
	}
	price, err := parsePrice(req.Price)
	if err != nil {
		return nil, &ValidationError{Reason: msgInvalidPrice}
	}

	p := &Plant{
		Name:  req.Name.Val(),
		Image: req.Image.Val(),
		Price: price,
	}
	if err := s.repo.Create(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

func (s *service) DeletePlant(ctx context.Context, id int64) error {
	err := s.repo.Delete(ctx, id)
	if errors.Is(err, sql.ErrNoRows) {
		return &NotFoundError{ID: strconv.FormatInt(id, 10)}
	}
	return err
}

// ── helpers ──────────────────────────────────────────────────────────────────

func isJSONNull(raw json.RawMessage) bool {
	return bytes.Equal(bytes.TrimSpace(raw), []byte("null"))
}

// parsePrice accepts a JSON number literal or a string holding one,
// always going through the string form so floats never enter the
// pipeline. The result is normalised to scale 2 to match the
// NUMERIC(10,2) column.
func parsePrice(raw json.RawMessage) (decimal.Decimal, error) {
	text := strings.TrimSpace(string(raw))
	if strings.HasPrefix(text, `"`) {
		var quoted string
		if err := json.Unmarshal(raw, &quoted); err != nil {
			return decimal.Decimal{}, err
		}
		text = strings.TrimSpace(quoted)
	}
	d, err := decimal.NewFromString(text)
	if err != nil {
		return decimal.Decimal{}, err
	}
	return d.Round(2), nil
}
