package models

import (
	"strings"
	"time"
)

// Standard audit actions.
const (
	AuditActionInitiated = "INITIATED"
	AuditActionVerified  = "VERIFIED"
	AuditActionFailed    = "FAILED"
	AuditActionPartial   = "PARTIAL"
	AuditActionSkipped   = "SKIPPED"
	AuditActionSubmitted = "SUBMITTED"
	AuditActionScored    = "SCORED"
)

// Standard audit actors.
const (
	AuditActorSystem    = "SYSTEM"
	AuditActorCandidate = "CANDIDATE"
	AuditActorHR        = "HR"
	AuditActorProvider  = "PROVIDER"
)

// AuditEntry is one append-only record of an action taken on a step or
// session. Entries are compliance evidence, not event sourcing.
type AuditEntry struct {
	Timestamp time.Time      `json:"timestamp"`
	Action    string         `json:"action"`
	Actor     string         `json:"actor"`
	Details   map[string]any `json:"details,omitempty"`
}

// NewAuditEntry builds an entry with sanitized details.
func NewAuditEntry(action, actor string, details map[string]any, now time.Time) AuditEntry {
	return AuditEntry{
		Timestamp: now,
		Action:    action,
		Actor:     actor,
		Details:   SanitizeAuditDetails(details),
	}
}

// SanitizeAuditDetails strips raw identifiers before details enter an audit
// trail: any key ending in "_number" (aadhaar_number, pan_number,
// uan_number, ...) and the raw_response payload are dropped. Returns nil for
// empty input so empty detail maps do not serialize.
func SanitizeAuditDetails(details map[string]any) map[string]any {
	if len(details) == 0 {
		return nil
	}

	safe := make(map[string]any, len(details))
	for k, v := range details {
		if strings.HasSuffix(k, "_number") || k == "raw_response" {
			continue
		}
		safe[k] = v
	}
	if len(safe) == 0 {
		return nil
	}
	return safe
}
