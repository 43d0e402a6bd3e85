package scene

import (
	"crypto/sha256"
	"encoding/hex"
)

// ItemID is a content-addressed identifier for scene items. It is derived
// from the path of the expression that created the item, so re-evaluating
// the same script yields the same IDs.
type ItemID string

// ZeroID is the empty ItemID, used for scene-level findings.
const ZeroID ItemID = ""

// NewItemID hashes path into an ItemID.
func NewItemID(path string) ItemID {
	sum := sha256.Sum256([]byte(path))
	return ItemID(hex.EncodeToString(sum[:]))
}

// Short returns the first 8 hex characters, for messages.
func (id ItemID) Short() string {
	if len(id) <= 8 {
		return string(id)
	}
	return string(id[:8])
}

func (id ItemID) IsZero() bool {
	return id == ZeroID
}
