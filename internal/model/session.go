package model

import "time"

// Session is a bounded sequence of visitor activity, terminated by an
// inactivity timeout. Counters are reset when a session rolls over.
type Session struct {
	ID           string
	StartTime    time.Time
	LastActive   time.Time
	PageViews    int
	Interactions int
}

// Duration returns how long the session has been alive at the given instant.
func (s Session) Duration(now time.Time) time.Duration {
	return now.Sub(s.StartTime)
}
