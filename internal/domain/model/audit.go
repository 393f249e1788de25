package model

import (
	"maps"
	"time"

	"github.com/bibbank/loan-origination/internal/domain/valueobject"
)

// AuditEntry records one successful lifecycle step. Entries are appended and
// never edited.
type AuditEntry struct {
	Sequence int                           `json:"sequence"`
	Action   valueobject.LifecycleAction   `json:"action"`
	Status   valueobject.ApplicationStatus `json:"status"`
	At       time.Time                     `json:"at"`
	Figures  map[string]string             `json:"figures,omitempty"`
}

func (e AuditEntry) clone() AuditEntry {
	c := e
	c.Figures = maps.Clone(e.Figures)
	return c
}

func cloneAudit(src []AuditEntry) []AuditEntry {
	if len(src) == 0 {
		return nil
	}
	dst := make([]AuditEntry, len(src))
	for i, e := range src {
		dst[i] = e.clone()
	}
	return dst
}
