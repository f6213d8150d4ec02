package archive

import (
	"time"
)

// SummaryResponse describes the live snapshot
type SummaryResponse struct {
	Generation      string    `json:"generation"`
	Source          string    `json:"source"`
	Trigger         string    `json:"trigger"`
	LoadedAt        time.Time `json:"loaded_at"`
	MeetingCount    int       `json:"meeting_count"`
	DecisionCount   int       `json:"decision_count"`
	ActionItemCount int       `json:"action_item_count"`
	PersonCount     int       `json:"person_count"`
	TopicCount      int       `json:"topic_count"`
	WorkgroupCount  int       `json:"workgroup_count"`
	DiagnosticCount int       `json:"diagnostic_count"`
}

// DiagnosticResponse is one rejected raw record
type DiagnosticResponse struct {
	Index  int    `json:"index"`
	Reason string `json:"reason"`
}

// PersonResponse represents a derived person
type PersonResponse struct {
	Key           string              `json:"key"`
	Name          string              `json:"name"`
	MeetingCount  int                 `json:"meeting_count"`
	WorkgroupIDs  []string            `json:"workgroup_ids"`
	MeetingIDs    []string            `json:"meeting_ids"`
	ActionItemIDs []string            `json:"action_item_ids"`
	Roles         map[string][]string `json:"roles"`
}

// TopicResponse represents a derived topic
type TopicResponse struct {
	Key          string         `json:"key"`
	Name         string         `json:"name"`
	MeetingCount int            `json:"meeting_count"`
	MeetingIDs   []string       `json:"meeting_ids"`
	WorkgroupIDs []string       `json:"workgroup_ids"`
	CoOccurrence map[string]int `json:"co_occurrence"`
}

// WorkgroupResponse represents a derived workgroup with its topics and people
type WorkgroupResponse struct {
	ID           string   `json:"id"`
	Name         string   `json:"name"`
	MeetingCount int      `json:"meeting_count"`
	MeetingIDs   []string `json:"meeting_ids"`
	Topics       []string `json:"topics"`
	People       []string `json:"people"`
}

// HealthResponse reports liveness and the snapshot state
type HealthResponse struct {
	Status        string     `json:"status"`
	Environment   string     `json:"environment"`
	Generation    string     `json:"generation,omitempty"`
	LoadedAt      *time.Time `json:"loaded_at,omitempty"`
	LastAttemptAt *time.Time `json:"last_attempt_at,omitempty"`
	LastError     string     `json:"last_error,omitempty"`
	AutoReload    bool       `json:"auto_reload"`
}
