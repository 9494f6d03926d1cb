package trainings

import "time"

// Training is a scheduled training session members can register for.
type Training struct {
	ID          int64     `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description,omitempty"`
	Trainer     string    `json:"trainer,omitempty"`
	StartsAt    time.Time `json:"starts_at"`
	Capacity    int       `json:"capacity,omitempty"`
	Registered  int       `json:"registered,omitempty"`
}

// Attendee is one member's registration against a training.
type Attendee struct {
	MemberID int64     `json:"member_id"`
	Name     string    `json:"name"`
	Attended bool      `json:"attended"`
	JoinedAt time.Time `json:"joined_at,omitzero"`
}

// CreateTrainingRequest is the payload for scheduling a training.
type CreateTrainingRequest struct {
	Title       string    `json:"title" validate:"required"`
	Description string    `json:"description,omitempty"`
	Trainer     string    `json:"trainer,omitempty"`
	StartsAt    time.Time `json:"starts_at" validate:"required"`
	Capacity    int       `json:"capacity,omitempty" validate:"omitempty,gt=0"`
}
