package revisions

import (
	"context"
	"fmt"
	"time"

	goerrors "github.com/goliatone/go-errors"
	repository "github.com/goliatone/go-repository-bun"
	cache "github.com/goliatone/go-repository-cache/cache"
	repositorycache "github.com/goliatone/go-repository-cache/repositorycache"
	"github.com/google/uuid"
	"github.com/uptrace/bun"

	"github.com/goliatone/go-site-builder/internal/identity"
)

// LogRecord is the row holding one serialised revision log.
type LogRecord struct {
	bun.BaseModel `bun:"table:builder_revision_logs,alias:brl"`

	ID        uuid.UUID `bun:",pk,type:uuid" json:"id"`
	LogKey    string    `bun:"log_key,notnull,unique" json:"log_key"`
	Payload   string    `bun:"payload,notnull" json:"payload"`
	UpdatedAt time.Time `bun:"updated_at,nullzero,default:current_timestamp" json:"updated_at"`
}

// NewLogRecordRepository creates a repository for revision log rows.
func NewLogRecordRepository(db *bun.DB) repository.Repository[*LogRecord] {
	return repository.MustNewRepository(db, repository.ModelHandlers[*LogRecord]{
		NewRecord:          func() *LogRecord { return &LogRecord{} },
		GetID:              func(record *LogRecord) uuid.UUID { return record.ID },
		SetID:              func(record *LogRecord, id uuid.UUID) { record.ID = id },
		GetIdentifier:      func() string { return "log_key" },
		GetIdentifierValue: func(record *LogRecord) string { return record.LogKey },
	})
}

// SQLStore persists values in a SQL table through bun. Row ids derive from the
// key so writes are upserts by primary key.
type SQLStore struct {
	db   *bun.DB
	repo repository.Repository[*LogRecord]
	now  func() time.Time
}

// NewSQLStore creates a store without caching.
func NewSQLStore(db *bun.DB) *SQLStore {
	return NewSQLStoreWithCache(db, nil, nil)
}

// NewSQLStoreWithCache creates a store whose reads go through the repository cache.
func NewSQLStoreWithCache(db *bun.DB, cacheService cache.CacheService, serializer cache.KeySerializer) *SQLStore {
	base := NewLogRecordRepository(db)
	if cacheService != nil && serializer != nil {
		base = repositorycache.New(base, cacheService, serializer)
	}
	return &SQLStore{db: db, repo: base, now: time.Now}
}

// EnsureSchema creates the backing table when missing.
func (s *SQLStore) EnsureSchema(ctx context.Context) error {
	_, err := s.db.NewCreateTable().Model((*LogRecord)(nil)).IfNotExists().Exec(ctx)
	return err
}

func (s *SQLStore) Read(ctx context.Context, key string) ([]byte, error) {
	record, err := s.repo.GetByID(ctx, identity.RevisionLogUUID(key).String())
	if err != nil {
		if goerrors.IsCategory(err, repository.CategoryDatabaseNotFound) {
			return nil, ErrKeyNotFound
		}
		return nil, fmt.Errorf("revisions: read %s: %w", key, err)
	}
	return []byte(record.Payload), nil
}

func (s *SQLStore) Write(ctx context.Context, key string, value []byte) error {
	id := identity.RevisionLogUUID(key)
	existing, err := s.repo.GetByID(ctx, id.String())
	if err != nil {
		if !goerrors.IsCategory(err, repository.CategoryDatabaseNotFound) {
			return fmt.Errorf("revisions: lookup %s: %w", key, err)
		}
		_, err = s.repo.Create(ctx, &LogRecord{
			ID:        id,
			LogKey:    key,
			Payload:   string(value),
			UpdatedAt: s.now().UTC(),
		})
		return err
	}
	existing.Payload = string(value)
	existing.UpdatedAt = s.now().UTC()
	_, err = s.repo.Update(ctx, existing)
	return err
}

// Ping checks connectivity.
func (s *SQLStore) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

func (s *SQLStore) Close() error {
	return s.db.Close()
}
