package entities

import (
	"time"

	"github.com/google/uuid"
)

// ReloadedEvent announces that a new archive snapshot has been swapped in
type ReloadedEvent struct {
	Generation      uuid.UUID `json:"generation"`
	Source          string    `json:"source"`
	Trigger         string    `json:"trigger"`
	MeetingCount    int       `json:"meeting_count"`
	DiagnosticCount int       `json:"diagnostic_count"`
	LoadedAt        time.Time `json:"loaded_at"`
}
