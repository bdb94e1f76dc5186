package entities

import "time"

// Entry is one immutable audit record. UserID is empty for unauthenticated
// actors such as booths.
type Entry struct {
	ID        string
	UserID    string
	Action    string
	Table     string
	RecordID  string
	Data      map[string]any
	IPAddress string
	UserAgent string
	CreatedAt time.Time
}

type Filter struct {
	UserID string
	Action string
	Table  string
	Since  *time.Time
	Until  *time.Time
}

type Page struct {
	Items []Entry
	Total int64
	Page  int
	Limit int
}

type ActionCount struct {
	Action string
	Count  int64
}
