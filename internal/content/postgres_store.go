package content

import (
	"context"
	"database/sql"
	"encoding/json"
	stderrors "errors"
	"time"

	"lawfirm-site/internal/common/errors"
	"lawfirm-site/internal/common/logger"
)

// PostgresStore persists sections in the site_content table.
type PostgresStore struct {
	db           *sql.DB
	queryTimeout time.Duration
	logger       logger.Logger
}

func NewPostgresStore(db *sql.DB, queryTimeout time.Duration, log logger.Logger) *PostgresStore {
	return &PostgresStore{
		db:           db,
		queryTimeout: queryTimeout,
		logger:       log.WithFields(map[string]interface{}{"component": "content-store"}),
	}
}

func (s *PostgresStore) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if s.queryTimeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, s.queryTimeout)
}

func (s *PostgresStore) Get(ctx context.Context, key Key) (*Row, error) {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	row := s.db.QueryRowContext(ctx, `
		SELECT section_key, content, updated_at, updated_by
		FROM site_content
		WHERE section_key = $1`, string(key))

	r, err := scanRow(row)
	if stderrors.Is(err, sql.ErrNoRows) {
		return nil, errors.NewSectionNotSeededError(string(key))
	}
	if err != nil {
		s.logger.Error("section query failed", map[string]interface{}{
			"section": string(key),
			"error":   err,
		})
		return nil, errors.NewStoreUnavailableError("get "+string(key), err)
	}
	return r, nil
}

// GetAll returns every stored row. Rows for keys outside the known set are skipped.
func (s *PostgresStore) GetAll(ctx context.Context) ([]Row, error) {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	rows, err := s.db.QueryContext(ctx, `
		SELECT section_key, content, updated_at, updated_by
		FROM site_content
		ORDER BY section_key`)
	if err != nil {
		s.logger.Error("content query failed", map[string]interface{}{"error": err})
		return nil, errors.NewStoreUnavailableError("get all", err)
	}
	defer rows.Close()

	var out []Row
	for rows.Next() {
		r, err := scanRow(rows)
		if err != nil {
			return nil, errors.NewStoreUnavailableError("scan", err)
		}
		if _, ok := ParseKey(string(r.Key)); !ok {
			s.logger.Warn("ignoring unknown section row", map[string]interface{}{"section": string(r.Key)})
			continue
		}
		out = append(out, *r)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.NewStoreUnavailableError("iterate", err)
	}
	return out, nil
}

// Update replaces the document of an existing row. A key that was never
// seeded affects no row and is reported as SECTION_NOT_SEEDED.
func (s *PostgresStore) Update(ctx context.Context, r Row) error {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	result, err := s.db.ExecContext(ctx, `
		UPDATE site_content
		SET content = $1, updated_at = $2, updated_by = $3
		WHERE section_key = $4`,
		[]byte(r.Content), r.UpdatedAt, r.UpdatedBy, string(r.Key))
	if err != nil {
		s.logger.Error("section update failed", map[string]interface{}{
			"section": string(r.Key),
			"error":   err,
		})
		return errors.NewStoreWriteRejectedError(string(r.Key), err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return errors.NewStoreWriteRejectedError(string(r.Key), err)
	}
	if affected == 0 {
		return errors.NewSectionNotSeededError(string(r.Key))
	}
	return nil
}

// Seed inserts content for key unless a row already exists, and reports
// whether it inserted.
func (s *PostgresStore) Seed(ctx context.Context, key Key, content json.RawMessage) (bool, error) {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	result, err := s.db.ExecContext(ctx, `
		INSERT INTO site_content (section_key, content, updated_at, updated_by)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (section_key) DO NOTHING`,
		string(key), []byte(content), time.Now().UTC(), "seed")
	if err != nil {
		return false, errors.NewStoreWriteRejectedError(string(key), err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return false, errors.NewStoreWriteRejectedError(string(key), err)
	}
	return affected > 0, nil
}

type scanner interface {
	Scan(dest ...interface{}) error
}

func scanRow(sc scanner) (*Row, error) {
	var (
		key       string
		content   []byte
		updatedAt time.Time
		updatedBy sql.NullString
	)
	if err := sc.Scan(&key, &content, &updatedAt, &updatedBy); err != nil {
		return nil, err
	}
	return &Row{
		Key:       Key(key),
		Content:   json.RawMessage(content),
		UpdatedAt: updatedAt,
		UpdatedBy: updatedBy.String,
	}, nil
}
