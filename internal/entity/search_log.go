package entity

import (
	"time"

	"github.com/google/uuid"
)

// SearchLog is an audit entry for one employee search. It describes the query and its
// outcome; returned records are never stored.
type SearchLog struct {
	ID        uuid.UUID `json:"id"`
	Provider  string    `json:"provider"`
	Company   string    `json:"company,omitempty"`
	JobTitle  string    `json:"job_title,omitempty"`
	Location  string    `json:"location,omitempty"`
	Status    int       `json:"status"`
	Category  string    `json:"category,omitempty"`
	Total     int       `json:"total"`
	Returned  int       `json:"returned"`
	LatencyMS int64     `json:"latency_ms"`
	CreatedAt time.Time `json:"created_at"`
}
