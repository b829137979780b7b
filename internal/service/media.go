package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	"mediashare/internal/model"
	"mediashare/internal/repository"
	"mediashare/internal/storage"
)

// MediaListResult is the service-level DTO for paginated media.
type MediaListResult struct {
	Items []model.Media `json:"data"`
	Total int           `json:"total"`
}

// MediaService defines the use cases for handling uploaded media.
type MediaService interface {
	// Upload uploads the content to object storage, saves metadata to DB, and
	// rolls back storage if the DB save fails.
	// - originalFilename is used only to extract the extension; the stored
	//   object key is UUID + original extension.
	// - title defaults to originalFilename when empty.
	Upload(ctx context.Context, r io.Reader, originalFilename, title, contentType string, size int64) (*model.Media, error)

	// List returns media using limit/offset and a total count.
	List(ctx context.Context, limit, offset int) (*MediaListResult, error)

	// Get returns a single media record by its ID.
	Get(ctx context.Context, id string) (*model.Media, error)

	// OpenFile returns the media content as a streaming reader along with the
	// record it belongs to. The caller must close the reader.
	OpenFile(ctx context.Context, id string) (io.ReadCloser, *model.Media, error)

	// Delete removes a media item. All share links referencing it are deleted
	// first so no link can outlive its target.
	Delete(ctx context.Context, id string) error
}

type mediaService struct {
	store    storage.Storage
	repo     repository.MediaRepository
	linkRepo repository.ShareLinkRepository
}

// NewMediaService constructs a new MediaService.
func NewMediaService(store storage.Storage, repo repository.MediaRepository, linkRepo repository.ShareLinkRepository) MediaService {
	return &mediaService{store: store, repo: repo, linkRepo: linkRepo}
}

func (s *mediaService) Upload(ctx context.Context, r io.Reader, originalFilename, title, contentType string, size int64) (*model.Media, error) {
	if r == nil {
		return nil, ErrReaderNil
	}
	if title == "" {
		title = originalFilename
	}

	ext := filepath.Ext(originalFilename)
	genName := uuid.New().String() + ext
	key := filepath.ToSlash(filepath.Join("media", genName))

	objInfo, err := s.store.Put(ctx, key, r, storage.PutObjectOptions{
		Size:        size,
		ContentType: contentType,
		Metadata: map[string]string{
			"original-filename": originalFilename,
		},
	})
	if err != nil {
		return nil, fmt.Errorf("upload to storage: %w", err)
	}

	m := &model.Media{
		ID:          uuid.New().String(),
		Title:       title,
		StoragePath: objInfo.Key,
		Size:        objInfo.Size,
		MimeType:    objInfo.ContentType,
		CreatedAt:   time.Now().UTC(),
	}
	stored, err := s.repo.Create(ctx, m)
	if err != nil {
		// Rollback: delete the object from storage
		if delErr := s.store.Delete(ctx, key); delErr != nil {
			return nil, fmt.Errorf("db save failed: %v; rollback delete failed: %v", err, delErr)
		}
		return nil, fmt.Errorf("db save failed: %w", err)
	}
	return stored, nil
}

func (s *mediaService) List(ctx context.Context, limit, offset int) (*MediaListResult, error) {
	if limit <= 0 {
		limit = 10
	}
	if offset < 0 {
		offset = 0
	}

	res, err := s.repo.List(ctx, repository.PageQuery{Limit: limit, Offset: offset})
	if err != nil {
		return nil, err
	}
	return &MediaListResult{Items: res.Items, Total: res.Total}, nil
}

func (s *mediaService) Get(ctx context.Context, id string) (*model.Media, error) {
	if id == "" {
		return nil, ErrIDRequired
	}
	m, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrMediaNotFound
		}
		return nil, err
	}
	return m, nil
}

func (s *mediaService) OpenFile(ctx context.Context, id string) (io.ReadCloser, *model.Media, error) {
	m, err := s.Get(ctx, id)
	if err != nil {
		return nil, nil, err
	}
	rc, _, err := s.store.Get(ctx, m.StoragePath)
	if err != nil {
		return nil, nil, fmt.Errorf("open storage object: %w", err)
	}
	return rc, m, nil
}

// Delete cascades: share links first, then the stored object, then the row.
// Links go first so a concurrent access cannot resolve a link whose media is
// already half-deleted.
func (s *mediaService) Delete(ctx context.Context, id string) error {
	if id == "" {
		return ErrIDRequired
	}
	m, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrMediaNotFound
		}
		return err
	}

	if err := s.linkRepo.DeleteAllByMedia(ctx, id); err != nil {
		return fmt.Errorf("delete share links: %w", err)
	}
	// Delete from storage before the DB row so the storage path is not lost.
	if err := s.store.Delete(ctx, m.StoragePath); err != nil {
		return fmt.Errorf("delete storage: %w", err)
	}
	return s.repo.Delete(ctx, id)
}
