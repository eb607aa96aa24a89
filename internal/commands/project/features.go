package projectcmd

import (
	"context"
	"errors"

	"github.com/goliatone/go-site-builder/internal/revisions"
)

var (
	ErrPersisterRequired = errors.New("projectcmd: persister required")
	ErrPublisherRequired = errors.New("projectcmd: publisher required")
	ErrRevisionsDisabled = errors.New("projectcmd: revision history disabled")
)

// FeatureGates exposes runtime toggles consulted by project command handlers.
type FeatureGates struct {
	// RevisionsEnabled should return true when save and publish record revisions.
	RevisionsEnabled func() bool
}

func (g FeatureGates) revisionsEnabled() bool {
	if g.RevisionsEnabled == nil {
		return true
	}
	return g.RevisionsEnabled()
}

// RevisionLog is the subset of the revision log used by the handlers.
type RevisionLog interface {
	Record(ctx context.Context, input revisions.RecordInput) (revisions.Revision, error)
	Get(ctx context.Context, weddingID, revisionID string) (revisions.Revision, error)
}
