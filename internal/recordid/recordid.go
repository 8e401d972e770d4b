// Package recordid provides ids for imported catalog records that do not carry one.
package recordid

import (
	"crypto/sha256"
	"encoding/hex"
	"strings"

	"github.com/google/uuid"
)

const prefix = "rec_"

// FromSlug returns a stable record ID for the given tenant and slug.
// Same tenant and slug always yield the same ID, so re-importing a seed file
// updates records instead of duplicating them.
func FromSlug(tenantID, slug string) string {
	normalized := strings.ToLower(strings.TrimSpace(slug))
	hash := sha256.Sum256([]byte(tenantID + "/" + normalized))
	return prefix + hex.EncodeToString(hash[:16])
}

// New returns a random record ID.
func New() string {
	return uuid.New().String()
}
