package handler

import "time"

type createEventRequest struct {
	ClubID      int64     `json:"clubId"      validate:"required,gt=0"`
	Title       string    `json:"title"       validate:"required,max=160"`
	Description string    `json:"description" validate:"max=4000"`
	StartsAt    time.Time `json:"startsAt"    validate:"required"`
	EndsAt      time.Time `json:"endsAt"      validate:"required"`
	Status      string    `json:"status"      validate:"omitempty,oneof=scheduled cancelled finished"`
}
