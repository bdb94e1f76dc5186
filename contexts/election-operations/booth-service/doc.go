// Package boothservice manages the urna fleet: registration, status, the
// ping heartbeat booths send while polling, and the derived connection state
// shown on the dashboard.
package boothservice
