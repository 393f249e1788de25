package service

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// Reference prefixes.
const (
	SanctionReferencePrefix = "SL"
	ApprovalReferencePrefix = "APR"
)

// ReferenceGenerator produces a human-quotable, collision-resistant reference
// such as "SL-20260302-9F1C...".
type ReferenceGenerator func(prefix string, at time.Time) string

// NewReference combines the prefix, the calendar date of at and a random
// UUID rendered as upper-case hex.
func NewReference(prefix string, at time.Time) string {
	id := strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", ""))
	return prefix + "-" + at.Format("20060102") + "-" + id
}
