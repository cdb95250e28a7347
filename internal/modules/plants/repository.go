package plants

import "context"

// Repository defines the interface for plant data storage.
type Repository interface {
	List(ctx context.Context) ([]*Plant, error)
	GetByID(ctx context.Context, id int64) (*Plant, error)
	Create(ctx context.Context, p *Plant) error
	Delete(ctx context.Context, id int64) error
}
