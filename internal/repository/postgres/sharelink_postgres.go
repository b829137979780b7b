package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"mediashare/internal/model"
	"mediashare/internal/repository"
)

// ShareLinkPostgres is a PostgreSQL implementation of repository.ShareLinkRepository.
type ShareLinkPostgres struct {
	db *sql.DB

	// now is swappable in tests so expiration predicates are deterministic.
	now func() time.Time
}

// NewShareLinkPostgres creates a new ShareLinkPostgres repository.
func NewShareLinkPostgres(db *sql.DB) *ShareLinkPostgres {
	return &ShareLinkPostgres{db: db, now: time.Now}
}

var _ repository.ShareLinkRepository = (*ShareLinkPostgres)(nil)

const shareLinkColumns = `id, media_id, short_code, long_url, password, expires_at, status, created_at`

func scanShareLink(row interface{ Scan(...any) error }) (*model.ShareLink, error) {
	var (
		l         model.ShareLink
		password  sql.NullString
		expiresAt sql.NullTime
	)
	if err := row.Scan(
		&l.ID,
		&l.MediaID,
		&l.ShortCode,
		&l.LongURL,
		&password,
		&expiresAt,
		&l.Status,
		&l.CreatedAt,
	); err != nil {
		return nil, err
	}
	if password.Valid {
		l.Password = &password.String
	}
	if expiresAt.Valid {
		t := expiresAt.Time
		l.ExpiresAt = &t
	}
	return &l, nil
}

// Create inserts a new share-link row. Required fields are checked before
// touching the database so a malformed record never reaches storage.
func (r *ShareLinkPostgres) Create(ctx context.Context, link *model.ShareLink) (*model.ShareLink, error) {
	switch {
	case link.MediaID == "":
		return nil, fmt.Errorf("%w: media_id", repository.ErrMissingField)
	case link.ShortCode == "":
		return nil, fmt.Errorf("%w: short_code", repository.ErrMissingField)
	case link.LongURL == "":
		return nil, fmt.Errorf("%w: long_url", repository.ErrMissingField)
	case link.ExpiresAt == nil:
		return nil, fmt.Errorf("%w: expires_at", repository.ErrMissingField)
	}

	const q = `
		INSERT INTO share_links (id, media_id, short_code, long_url, password, expires_at, status, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING ` + shareLinkColumns
	row := r.db.QueryRowContext(ctx, q,
		link.ID,
		link.MediaID,
		link.ShortCode,
		link.LongURL,
		nullString(link.Password),
		nullTime(link.ExpiresAt),
		link.Status,
		link.CreatedAt,
	)
	return scanShareLink(row)
}

// FindByID fetches a share link by ID regardless of status.
func (r *ShareLinkPostgres) FindByID(ctx context.Context, id string) (*model.ShareLink, error) {
	const q = `SELECT ` + shareLinkColumns + ` FROM share_links WHERE id = $1`
	return scanShareLink(r.db.QueryRowContext(ctx, q, id))
}

// Finalize stores the real short code and long URL and marks the row finalized.
func (r *ShareLinkPostgres) Finalize(ctx context.Context, id, shortCode, longURL string) (*model.ShareLink, error) {
	const q = `
		UPDATE share_links
		SET short_code = $2, long_url = $3, status = $4
		WHERE id = $1
		RETURNING ` + shareLinkColumns
	row := r.db.QueryRowContext(ctx, q, id, shortCode, longURL, model.ShareLinkFinalized)
	return scanShareLink(row)
}

// DeleteByID removes a share link. Missing rows are not an error.
func (r *ShareLinkPostgres) DeleteByID(ctx context.Context, id string) error {
	const q = `DELETE FROM share_links WHERE id = $1`
	_, err := r.db.ExecContext(ctx, q, id)
	return err
}

// DeleteAllByMedia removes every share link referencing the media item.
func (r *ShareLinkPostgres) DeleteAllByMedia(ctx context.Context, mediaID string) error {
	const q = `DELETE FROM share_links WHERE media_id = $1`
	_, err := r.db.ExecContext(ctx, q, mediaID)
	return err
}

// predicates collects independent WHERE clauses that are always combined with
// AND. A clause that is inherently a disjunction (e.g. "not expired" meaning
// no expiry set or expiry in the future) carries its OR inside the clause
// string, so stacking filters can never silently drop one of them.
type predicates struct {
	clauses []string
	args    []any
}

func (p *predicates) add(clause string, args ...any) {
	// Rewrite ?-placeholders into positional ones based on args seen so far.
	for _, a := range args {
		clause = strings.Replace(clause, "?", fmt.Sprintf("$%d", len(p.args)+1), 1)
		p.args = append(p.args, a)
	}
	p.clauses = append(p.clauses, clause)
}

func (p *predicates) where() string {
	return " WHERE " + strings.Join(p.clauses, " AND ")
}

func buildShareLinkPredicates(mediaID string, q repository.ShareLinkQuery, now time.Time) *predicates {
	p := &predicates{}
	p.add("media_id = ?", mediaID)
	p.add("status = ?", string(model.ShareLinkFinalized))

	if q.Expired != nil {
		if *q.Expired {
			p.add("(expires_at IS NOT NULL AND expires_at < ?)", now)
		} else {
			p.add("(expires_at IS NULL OR expires_at > ?)", now)
		}
	}
	if q.HasPassword != nil {
		if *q.HasPassword {
			p.add("password IS NOT NULL")
		} else {
			p.add("password IS NULL")
		}
	}
	return p
}

func sortClause(q repository.ShareLinkQuery) string {
	col := "created_at"
	if q.SortBy == repository.SortByExpiresAt {
		col = "expires_at"
	}
	dir := "DESC"
	if q.SortOrder == repository.SortAsc {
		dir = "ASC"
	}
	return fmt.Sprintf(" ORDER BY %s %s, id %s", col, dir, dir)
}

// Query returns finalized share links for one media item matching the filters
// plus the total count over the same filters.
func (r *ShareLinkPostgres) Query(ctx context.Context, mediaID string, q repository.ShareLinkQuery) (*repository.PageResult[model.ShareLink], error) {
	p := buildShareLinkPredicates(mediaID, q, r.now().UTC())

	qCount := `SELECT COUNT(*) FROM share_links` + p.where()
	var total int
	if err := r.db.QueryRowContext(ctx, qCount, p.args...).Scan(&total); err != nil {
		return nil, err
	}

	qList := `SELECT ` + shareLinkColumns + ` FROM share_links` + p.where() + sortClause(q)
	args := append([]any{}, p.args...)
	if q.Limit > 0 {
		qList += fmt.Sprintf(" LIMIT $%d", len(args)+1)
		args = append(args, q.Limit)
	}
	if q.Skip > 0 {
		qList += fmt.Sprintf(" OFFSET $%d", len(args)+1)
		args = append(args, q.Skip)
	}

	rows, err := r.db.QueryContext(ctx, qList, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := make([]model.ShareLink, 0)
	for rows.Next() {
		l, err := scanShareLink(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, *l)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return &repository.PageResult[model.ShareLink]{Items: items, Total: total}, nil
}

// DeleteExpiredBefore purges finalized rows whose expiry passed before cutoff.
func (r *ShareLinkPostgres) DeleteExpiredBefore(ctx context.Context, cutoff time.Time) (int64, error) {
	const q = `
		DELETE FROM share_links
		WHERE status = $1 AND expires_at IS NOT NULL AND expires_at < $2
	`
	res, err := r.db.ExecContext(ctx, q, model.ShareLinkFinalized, cutoff)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

// DeleteStaleProvisional purges provisional rows created before cutoff.
func (r *ShareLinkPostgres) DeleteStaleProvisional(ctx context.Context, cutoff time.Time) (int64, error) {
	const q = `
		DELETE FROM share_links
		WHERE status = $1 AND created_at < $2
	`
	res, err := r.db.ExecContext(ctx, q, model.ShareLinkProvisional, cutoff)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

func nullString(s *string) sql.NullString {
	if s == nil || *s == "" {
		return sql.NullString{}
	}
	return sql.NullString{String: *s, Valid: true}
}

func nullTime(t *time.Time) sql.NullTime {
	if t == nil {
		return sql.NullTime{}
	}
	return sql.NullTime{Time: *t, Valid: true}
}
