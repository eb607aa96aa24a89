package identity

import (
	"strings"

	hashid "github.com/goliatone/hashid/pkg/hashid"
	"github.com/google/uuid"
)

// namespace prefixes hashed keys so ids of different kinds never collide.
type namespace string

const (
	nsProject     namespace = "site-builder:project:"
	nsHomePage    namespace = "site-builder:page:home:"
	nsRevisionLog namespace = "site-builder:revision_log:"
)

// uuidFor hashes key inside ns. A blank key yields uuid.Nil. When hashid
// rejects the key the name-based SHA1 UUID is used instead.
func (ns namespace) uuidFor(key string) uuid.UUID {
	key = strings.TrimSpace(key)
	if key == "" {
		return uuid.Nil
	}
	name := string(ns) + key
	uid, err := hashid.NewUUID(name, hashid.WithHashAlgorithm(hashid.SHA256), hashid.WithNormalization(true))
	if err == nil && uid != uuid.Nil {
		return uid
	}
	return uuid.NewSHA1(uuid.NameSpaceOID, []byte(name))
}

// RevisionLogUUID is the stable key of the revision log stored for key.
func RevisionLogUUID(key string) uuid.UUID {
	return nsRevisionLog.uuidFor(key)
}

// ProjectID returns the stable project id for a wedding record.
func ProjectID(weddingID string) string {
	return "proj_" + hex(nsProject.uuidFor(weddingID))
}

// HomePageID returns the stable id of a project's initial home page.
func HomePageID(projectID string) string {
	return "page_" + hex(nsHomePage.uuidFor(projectID))[:12]
}

func hex(id uuid.UUID) string {
	return strings.ReplaceAll(id.String(), "-", "")
}
