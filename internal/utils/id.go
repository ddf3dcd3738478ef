package utils

import (
	"strings"

	"github.com/google/uuid"
)

const (
	PrefixProduct  = "PRD"
	PrefixOrder    = "ORD"
	PrefixSupplier = "SUP"
	PrefixUser     = "USR"
	PrefixReview   = "REV"
	PrefixItem     = "ITM"
)

// NewID returns prefix-<uuidv7> in upper case. UUIDv7 is time ordered, so ids
// sort roughly by creation and do not collide the way short random suffixes do.
func NewID(prefix string) string {
	id, err := uuid.NewV7()
	if err != nil {
		id = uuid.New()
	}
	return prefix + "-" + strings.ToUpper(strings.ReplaceAll(id.String(), "-", ""))
}
