package model

import "time"

// SyncStatus describes whether background synchronization work is running.
type SyncStatus string

const (
	SyncIdle    SyncStatus = "idle"
	SyncSyncing SyncStatus = "syncing"
	SyncError   SyncStatus = "error"
)

// SyncState is the single shared status value exposed to observers.
// Transitions are idle -> syncing -> (idle | error); an errored state is
// only left through a new syncing attempt.
type SyncState struct {
	LastSync time.Time  `json:"last_sync"`
	Status   SyncStatus `json:"status"`
	Error    string     `json:"error,omitempty"`
}

// TableChange is a decoded realtime change notification for a watched table.
type TableChange struct {
	Table     string         `json:"table"`
	Operation string         `json:"operation"`
	Row       map[string]any `json:"row"`
}

// RowString reads a string column from the notification payload.
func (c TableChange) RowString(key string) string {
	if v, ok := c.Row[key].(string); ok {
		return v
	}
	return ""
}
