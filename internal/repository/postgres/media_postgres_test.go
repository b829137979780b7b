package postgres

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mediashare/internal/model"
	"mediashare/internal/repository"
)

func newMediaRepo(t *testing.T) (*MediaPostgres, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return NewMediaPostgres(db), mock
}

func mediaRows(items ...model.Media) *sqlmock.Rows {
	rows := sqlmock.NewRows([]string{"id", "title", "storage_path", "size", "mime_type", "created_at"})
	for _, m := range items {
		rows.AddRow(m.ID, m.Title, m.StoragePath, m.Size, m.MimeType, m.CreatedAt)
	}
	return rows
}

func TestMediaPostgres_Create(t *testing.T) {
	repo, mock := newMediaRepo(t)
	now := time.Date(2026, 1, 2, 15, 0, 0, 0, time.UTC)

	m := &model.Media{
		ID:          "m1",
		Title:       "vacation.mp4",
		StoragePath: "media/gen.mp4",
		Size:        1024,
		MimeType:    "video/mp4",
		CreatedAt:   now,
	}
	mock.ExpectQuery("INSERT INTO media").
		WithArgs("m1", "vacation.mp4", "media/gen.mp4", int64(1024), "video/mp4", now).
		WillReturnRows(mediaRows(*m))

	stored, err := repo.Create(context.Background(), m)

	assert.NoError(t, err)
	assert.Equal(t, "m1", stored.ID)
	assert.Equal(t, int64(1024), stored.Size)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestMediaPostgres_FindByID(t *testing.T) {
	t.Run("found", func(t *testing.T) {
		repo, mock := newMediaRepo(t)
		now := time.Now().UTC()

		mock.ExpectQuery("SELECT (.+) FROM media").
			WithArgs("m1").
			WillReturnRows(mediaRows(model.Media{ID: "m1", Title: "a", StoragePath: "media/a", CreatedAt: now}))

		got, err := repo.FindByID(context.Background(), "m1")

		assert.NoError(t, err)
		assert.Equal(t, "m1", got.ID)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("absent row surfaces sql.ErrNoRows", func(t *testing.T) {
		repo, mock := newMediaRepo(t)

		mock.ExpectQuery("SELECT (.+) FROM media").
			WithArgs("ghost").
			WillReturnError(sql.ErrNoRows)

		got, err := repo.FindByID(context.Background(), "ghost")

		assert.Nil(t, got)
		assert.True(t, IsNoRowsError(err))
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestIsNoRowsError(t *testing.T) {
	assert.True(t, IsNoRowsError(sql.ErrNoRows))
	assert.False(t, IsNoRowsError(errors.New("boom")))
	assert.False(t, IsNoRowsError(nil))
}

func TestMediaPostgres_List(t *testing.T) {
	repo, mock := newMediaRepo(t)
	now := time.Now().UTC()

	mock.ExpectQuery(`SELECT COUNT\(\*\) FROM media`).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(25))
	mock.ExpectQuery("SELECT (.+) FROM media").
		WithArgs(10, 20).
		WillReturnRows(mediaRows(
			model.Media{ID: "m1", CreatedAt: now},
			model.Media{ID: "m2", CreatedAt: now},
		))

	res, err := repo.List(context.Background(), repository.PageQuery{Limit: 10, Offset: 20})

	assert.NoError(t, err)
	assert.Equal(t, 25, res.Total)
	assert.Len(t, res.Items, 2)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestMediaPostgres_Delete(t *testing.T) {
	repo, mock := newMediaRepo(t)

	mock.ExpectExec("DELETE FROM media").
		WithArgs("m1").
		WillReturnResult(sqlmock.NewResult(0, 1))

	assert.NoError(t, repo.Delete(context.Background(), "m1"))
	assert.NoError(t, mock.ExpectationsWereMet())
}
