package drafts

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"time"

	"github.com/uptrace/bun"

	"github.com/goliatone/go-site-builder/document"
	"github.com/goliatone/go-site-builder/pkg/interfaces"
)

var errDatabaseRequired = errors.New("drafts: bun repository requires a database")

// BunRepository persists drafts using a Bun-backed database.
type BunRepository struct {
	db          *bun.DB
	opts        options
	broadcaster *changeBroadcaster
}

var _ Repository = (*BunRepository)(nil)

// NewBunRepository constructs a Bun-backed repository.
func NewBunRepository(db *bun.DB, opts ...Option) *BunRepository {
	return &BunRepository{
		db:          db,
		opts:        buildOptions(opts),
		broadcaster: newChangeBroadcaster(),
	}
}

// EnsureSchema creates the drafts table when missing.
func (r *BunRepository) EnsureSchema(ctx context.Context) error {
	if r.db == nil {
		return errDatabaseRequired
	}
	_, err := r.db.NewCreateTable().Model((*draftModel)(nil)).IfNotExists().Exec(ctx)
	return err
}

// List returns the stored drafts ordered by project id.
func (r *BunRepository) List(ctx context.Context) ([]Draft, error) {
	if r.db == nil {
		return nil, errDatabaseRequired
	}
	var models []draftModel
	if err := r.db.NewSelect().Model(&models).Order("project_id ASC").Scan(ctx); err != nil {
		return nil, err
	}
	out := make([]Draft, len(models))
	for i := range models {
		out[i] = modelToDraft(&models[i])
	}
	return out, nil
}

// Get retrieves the draft of a project.
func (r *BunRepository) Get(ctx context.Context, projectID string) (*Draft, error) {
	if r.db == nil {
		return nil, errDatabaseRequired
	}
	trimmed := strings.TrimSpace(projectID)
	if trimmed == "" {
		return nil, ErrProjectIDRequired
	}
	model, err := r.find(ctx, trimmed)
	if err != nil {
		return nil, err
	}
	draft := modelToDraft(model)
	return &draft, nil
}

// Save writes the working copy, keeping any published snapshot.
func (r *BunRepository) Save(ctx context.Context, project *document.Project, data *document.WeddingData) error {
	if r.db == nil {
		return errDatabaseRequired
	}
	id, err := projectKey(project)
	if err != nil {
		return err
	}

	existing, err := r.find(ctx, id)
	created := false
	if err != nil {
		if !errors.Is(err, ErrDraftNotFound) {
			return err
		}
		created = true
	}

	now := r.opts.now().UTC()
	model := draftModel{
		ProjectID:   id,
		WeddingID:   project.WeddingID,
		Project:     project.Clone(),
		WeddingData: data.Clone(),
		UpdatedAt:   now,
	}
	if created {
		model.CreatedAt = now
		if _, err := r.db.NewInsert().Model(&model).Exec(ctx); err != nil {
			return err
		}
	} else {
		model.CreatedAt = existing.CreatedAt
		model.Published = existing.Published
		model.PublishedVersion = existing.PublishedVersion
		model.PublishedAt = existing.PublishedAt
		if _, err := r.db.NewUpdate().
			Model(&model).
			Column("wedding_id", "project", "wedding_data", "updated_at").
			WherePK().
			Exec(ctx); err != nil {
			return err
		}
	}

	r.broadcaster.Broadcast(newChangeEvent(ChangeSaved, modelToDraft(&model)))
	return nil
}

// Publish snapshots the saved working copy as the next published version.
func (r *BunRepository) Publish(ctx context.Context, projectID string) (interfaces.PublishResult, error) {
	if r.db == nil {
		return interfaces.PublishResult{}, errDatabaseRequired
	}
	trimmed := strings.TrimSpace(projectID)
	if trimmed == "" {
		return interfaces.PublishResult{}, ErrProjectIDRequired
	}

	var result interfaces.PublishResult
	var published draftModel
	err := r.db.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
		var model draftModel
		if err := tx.NewSelect().Model(&model).Where("project_id = ?", trimmed).Scan(ctx); err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return ErrDraftNotFound
			}
			return err
		}
		now := r.opts.now()
		version := model.PublishedVersion + 1
		publishedAt := document.Timestamp(now)
		model.Published = publishSnapshot(modelToDraft(&model), version, publishedAt)
		model.PublishedVersion = version
		model.PublishedAt = publishedAt
		model.UpdatedAt = now.UTC()
		if _, err := tx.NewUpdate().
			Model(&model).
			Column("published", "published_version", "published_at", "updated_at").
			WherePK().
			Exec(ctx); err != nil {
			return err
		}
		result = interfaces.PublishResult{Version: version, PublishedAt: publishedAt}
		published = model
		return nil
	})
	if err != nil {
		return interfaces.PublishResult{}, err
	}

	r.broadcaster.Broadcast(newChangeEvent(ChangePublished, modelToDraft(&published)))
	return result, nil
}

// Delete removes a draft.
func (r *BunRepository) Delete(ctx context.Context, projectID string) error {
	if r.db == nil {
		return errDatabaseRequired
	}
	trimmed := strings.TrimSpace(projectID)
	if trimmed == "" {
		return ErrProjectIDRequired
	}

	model, err := r.find(ctx, trimmed)
	if err != nil {
		return err
	}
	if _, err := r.db.NewDelete().Model(model).WherePK().Exec(ctx); err != nil {
		return err
	}

	r.broadcaster.Broadcast(newChangeEvent(ChangeDeleted, modelToDraft(model)))
	return nil
}

// Subscribe delivers change events until the context is cancelled.
func (r *BunRepository) Subscribe(ctx context.Context) (<-chan ChangeEvent, error) {
	return r.broadcaster.Subscribe(ctx)
}

func (r *BunRepository) find(ctx context.Context, projectID string) (*draftModel, error) {
	var model draftModel
	err := r.db.NewSelect().Model(&model).Where("project_id = ?", projectID).Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrDraftNotFound
		}
		return nil, err
	}
	return &model, nil
}

type draftModel struct {
	bun.BaseModel `bun:"table:site_drafts"`

	ProjectID        string                `bun:",pk"`
	WeddingID        string                `bun:"wedding_id"`
	Project          *document.Project     `bun:"project,type:jsonb"`
	WeddingData      *document.WeddingData `bun:"wedding_data,type:jsonb,nullzero"`
	Published        *document.Project     `bun:"published,type:jsonb,nullzero"`
	PublishedVersion int                   `bun:"published_version"`
	PublishedAt      string                `bun:"published_at"`
	CreatedAt        time.Time             `bun:"created_at"`
	UpdatedAt        time.Time             `bun:"updated_at"`
}

func modelToDraft(model *draftModel) Draft {
	if model == nil {
		return Draft{}
	}
	return cloneDraft(Draft{
		ProjectID:        model.ProjectID,
		WeddingID:        model.WeddingID,
		Project:          model.Project,
		WeddingData:      model.WeddingData,
		Published:        model.Published,
		PublishedVersion: model.PublishedVersion,
		PublishedAt:      model.PublishedAt,
		UpdatedAt:        model.UpdatedAt,
	})
}
