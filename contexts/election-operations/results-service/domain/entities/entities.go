package entities

import "time"

type ElectionSummary struct {
	ID       string
	Title    string
	Status   string
	StartsAt time.Time
	EndsAt   time.Time
}

type CandidateTally struct {
	CandidateID string
	Number      int
	Name        string
	Party       string
	Votes       int64
	Percent     float64
}

type Participation struct {
	Eligible    int64
	Voted       int64
	Abstentions int64
	Turnout     float64
}

type ElectionResults struct {
	Election      ElectionSummary
	TotalVotes    int64
	NullVotes     int64
	BlankVotes    int64
	Tallies       []CandidateTally
	Participation Participation
	GeneratedAt   time.Time
}

type ElectionTotals struct {
	Election   ElectionSummary
	TotalVotes int64
	Turnout    float64
}

type FleetStatus struct {
	Total   int
	Online  int
	Warning int
	Offline int
}

type DashboardSummary struct {
	Elections   []ElectionTotals
	Fleet       FleetStatus
	GeneratedAt time.Time
}
