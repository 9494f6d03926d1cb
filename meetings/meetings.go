package meetings

import "time"

// Meeting is a scheduled chapter meeting.
type Meeting struct {
	ID        int64     `json:"id"`
	ChapterID int64     `json:"chapter_id,omitempty"`
	Title     string    `json:"title"`
	Agenda    string    `json:"agenda,omitempty"`
	Location  string    `json:"location,omitempty"`
	StartsAt  time.Time `json:"starts_at"`
	EndsAt    time.Time `json:"ends_at,omitzero"`
}

// Visitor is a guest registered against a meeting.
type Visitor struct {
	ID          int64  `json:"id"`
	MeetingID   int64  `json:"meeting_id"`
	Name        string `json:"name"`
	Company     string `json:"company,omitempty"`
	Email       string `json:"email,omitempty"`
	InvitedByID int64  `json:"invited_by_id,omitempty"`
}

// CreateMeetingRequest is the payload for scheduling a meeting.
type CreateMeetingRequest struct {
	Title    string    `json:"title" validate:"required"`
	Agenda   string    `json:"agenda,omitempty"`
	Location string    `json:"location,omitempty"`
	StartsAt time.Time `json:"starts_at" validate:"required"`
	EndsAt   time.Time `json:"ends_at,omitzero"`
}

// UpdateMeetingRequest carries the fields to change; nil means leave unchanged.
type UpdateMeetingRequest struct {
	Title    *string    `json:"title,omitempty"`
	Agenda   *string    `json:"agenda,omitempty"`
	Location *string    `json:"location,omitempty"`
	StartsAt *time.Time `json:"starts_at,omitempty"`
	EndsAt   *time.Time `json:"ends_at,omitempty"`
}

// AddVisitorRequest registers a guest for a meeting.
type AddVisitorRequest struct {
	Name        string `json:"name" validate:"required"`
	Company     string `json:"company,omitempty"`
	Email       string `json:"email,omitempty" validate:"omitempty,email"`
	InvitedByID int64  `json:"invited_by_id,omitempty"`
}
