// internal/domain/models/stats.go
package models

// Stats aggregates every request in the store. InProgress counts both
// Assigned and In Progress requests.
type Stats struct {
	Total      int `json:"total"`
	Completed  int `json:"completed"`
	InProgress int `json:"inProgress"`
	Pending    int `json:"pending"`
	Rejected   int `json:"rejected"`
}

// VictimStats aggregates one victim's requests.
type VictimStats struct {
	Total      int `json:"total"`
	Solved     int `json:"solved"`
	InProgress int `json:"inProgress"`
	Rejected   int `json:"rejected"`
}
