package entities

import "time"

type BoothStatus string

const (
	BoothStatusActive      BoothStatus = "ativa"
	BoothStatusInactive    BoothStatus = "inativa"
	BoothStatusMaintenance BoothStatus = "manutencao"
)

func ValidBoothStatus(s BoothStatus) bool {
	switch s {
	case BoothStatusActive, BoothStatusInactive, BoothStatusMaintenance:
		return true
	}
	return false
}

// ConnectionState is derived from the last heartbeat, never stored as truth;
// the sweeper only caches it for dashboard reads.
type ConnectionState string

const (
	ConnectionOnline  ConnectionState = "online"
	ConnectionWarning ConnectionState = "warning"
	ConnectionOffline ConnectionState = "offline"
)

type Booth struct {
	ID         string
	Number     int
	Location   string
	Status     BoothStatus
	IPAddress  string
	ElectionID string
	LastPing   *time.Time
	Connection ConnectionState
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// ConnectionAt derives the connection state at now. A booth that is not
// administratively active is always offline; an active booth is online while
// the last ping is fresher than onlineWithin, warning until offlineAfter,
// and offline beyond that or when it never pinged.
func (b Booth) ConnectionAt(now time.Time, onlineWithin, offlineAfter time.Duration) ConnectionState {
	if b.Status != BoothStatusActive {
		return ConnectionOffline
	}
	if b.LastPing == nil {
		return ConnectionOffline
	}
	age := now.Sub(*b.LastPing)
	switch {
	case age <= onlineWithin:
		return ConnectionOnline
	case age <= offlineAfter:
		return ConnectionWarning
	default:
		return ConnectionOffline
	}
}

// FleetSummary aggregates connection states for the dashboard.
type FleetSummary struct {
	Total   int
	Online  int
	Warning int
	Offline int
}
