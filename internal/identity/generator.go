package identity

import (
	"strings"

	"github.com/google/uuid"
)

// Generator produces fresh opaque ids with a fixed prefix.
type Generator func() string

// NewGenerator returns a Generator backed by random UUIDs. Consecutive calls
// never collide, regardless of wall clock resolution.
func NewGenerator(prefix string) Generator {
	return func() string {
		return prefix + strings.ReplaceAll(uuid.NewString(), "-", "")[:16]
	}
}

var (
	SectionID  = NewGenerator("sec_")
	RevisionID = NewGenerator("rev_")
	PageID     = NewGenerator("page_")
	AssetID    = NewGenerator("asset_")
)
