package domain

import "time"

// EventStatus is the lifecycle state of an event.
type EventStatus string

const (
	EventScheduled EventStatus = "scheduled"
	EventCancelled EventStatus = "cancelled"
	EventFinished  EventStatus = "finished"
)

func (s EventStatus) Valid() bool {
	switch s {
	case EventScheduled, EventCancelled, EventFinished:
		return true
	}
	return false
}

// Event belongs to exactly one club.
type Event struct {
	ID          int64       `json:"id"`
	ClubID      int64       `json:"clubId"`
	Title       string      `json:"title"`
	Description string      `json:"description"`
	StartsAt    time.Time   `json:"startsAt"`
	EndsAt      time.Time   `json:"endsAt"`
	Status      EventStatus `json:"status"`
	CreatedAt   time.Time   `json:"createdAt"`
}
