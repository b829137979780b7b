package postgres

import (
	"context"
	"database/sql"
	"errors"

	"mediashare/internal/model"
	"mediashare/internal/repository"
)

// MediaPostgres is a PostgreSQL implementation of repository.MediaRepository.
// It uses database/sql with parameterized queries and contains no business logic.
type MediaPostgres struct {
	db *sql.DB
}

// NewMediaPostgres creates a new MediaPostgres repository.
func NewMediaPostgres(db *sql.DB) *MediaPostgres {
	return &MediaPostgres{db: db}
}

var _ repository.MediaRepository = (*MediaPostgres)(nil)

// IsNoRowsError reports whether err denotes an absent row.
func IsNoRowsError(err error) bool {
	return errors.Is(err, sql.ErrNoRows)
}

// Create inserts a new media row and returns the stored record.
func (r *MediaPostgres) Create(ctx context.Context, m *model.Media) (*model.Media, error) {
	const q = `
		INSERT INTO media (id, title, storage_path, size, mime_type, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, title, storage_path, size, mime_type, created_at
	`
	row := r.db.QueryRowContext(ctx, q,
		m.ID,
		m.Title,
		m.StoragePath,
		m.Size,
		m.MimeType,
		m.CreatedAt,
	)
	var out model.Media
	if err := row.Scan(
		&out.ID,
		&out.Title,
		&out.StoragePath,
		&out.Size,
		&out.MimeType,
		&out.CreatedAt,
	); err != nil {
		return nil, err
	}
	return &out, nil
}

// FindByID fetches a single media record by its ID.
func (r *MediaPostgres) FindByID(ctx context.Context, id string) (*model.Media, error) {
	const q = `
		SELECT id, title, storage_path, size, mime_type, created_at
		FROM media
		WHERE id = $1
	`
	row := r.db.QueryRowContext(ctx, q, id)
	var m model.Media
	if err := row.Scan(
		&m.ID,
		&m.Title,
		&m.StoragePath,
		&m.Size,
		&m.MimeType,
		&m.CreatedAt,
	); err != nil {
		return nil, err
	}
	return &m, nil
}

// List returns media records using LIMIT/OFFSET pagination and a total count.
func (r *MediaPostgres) List(ctx context.Context, pq repository.PageQuery) (*repository.PageResult[model.Media], error) {
	const qCount = `SELECT COUNT(*) FROM media`
	var total int
	if err := r.db.QueryRowContext(ctx, qCount).Scan(&total); err != nil {
		return nil, err
	}

	const qList = `
		SELECT id, title, storage_path, size, mime_type, created_at
		FROM media
		ORDER BY created_at DESC, id DESC
		LIMIT $1 OFFSET $2
	`
	rows, err := r.db.QueryContext(ctx, qList, pq.Limit, pq.Offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := make([]model.Media, 0)
	for rows.Next() {
		var m model.Media
		if err := rows.Scan(
			&m.ID,
			&m.Title,
			&m.StoragePath,
			&m.Size,
			&m.MimeType,
			&m.CreatedAt,
		); err != nil {
			return nil, err
		}
		items = append(items, m)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return &repository.PageResult[model.Media]{
		Items: items,
		Total: total,
	}, nil
}

// Delete removes a media row by ID. It does not return an error if the row
// does not exist.
func (r *MediaPostgres) Delete(ctx context.Context, id string) error {
	const q = `DELETE FROM media WHERE id = $1`
	res, err := r.db.ExecContext(ctx, q, id)
	if err != nil {
		return err
	}
	_, _ = res.RowsAffected()
	return nil
}
