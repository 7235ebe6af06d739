package content

import (
	"context"
	"encoding/json"
	"time"
)

// Row is one persisted section.
type Row struct {
	Key       Key             `json:"key"`
	Content   json.RawMessage `json:"content"`
	UpdatedAt time.Time       `json:"updatedAt"`
	UpdatedBy string          `json:"updatedBy"`
}

// Store is the row-per-section persistence collaborator. Get returns a
// SECTION_NOT_SEEDED error for a key with no row. Update never inserts.
type Store interface {
	Get(ctx context.Context, key Key) (*Row, error)
	GetAll(ctx context.Context) ([]Row, error)
	Update(ctx context.Context, row Row) error
	Seed(ctx context.Context, key Key, content json.RawMessage) (bool, error)
}
