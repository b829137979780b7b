package repository

import (
	"context"

	"mediashare/internal/model"
)

// MediaRepository defines data access for media records using SQL queries only.
// No business logic here — strictly persistence operations.
type MediaRepository interface {
	// Create inserts a new media record and returns the stored row.
	Create(ctx context.Context, m *model.Media) (*model.Media, error)

	// FindByID returns a media record by its ID.
	FindByID(ctx context.Context, id string) (*model.Media, error)

	// List returns a paginated list of media records and the total row count.
	List(ctx context.Context, pq PageQuery) (*PageResult[model.Media], error)

	// Delete removes a media record by ID. It returns nil if the row was
	// deleted or did not exist.
	Delete(ctx context.Context, id string) error
}
