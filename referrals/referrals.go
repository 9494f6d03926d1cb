package referrals

import "time"

// Reference statuses as reported by the backend.
const (
	StatusOpen     = "open"
	StatusAccepted = "accepted"
	StatusDeclined = "declined"
	StatusClosed   = "closed"
)

// Reference is a business referral passed from one member to another.
type Reference struct {
	ID           int64     `json:"id"`
	FromMemberID int64     `json:"from_member_id"`
	ToMemberID   int64     `json:"to_member_id"`
	Contact      string    `json:"contact,omitempty"`
	Description  string    `json:"description,omitempty"`
	Status       string    `json:"status"`
	CreatedAt    time.Time `json:"created_at,omitzero"`
}

// DoneDeal records closed business attributed to a referral.
type DoneDeal struct {
	ID          int64     `json:"id"`
	MemberID    int64     `json:"member_id"`
	PartnerID   int64     `json:"partner_id,omitempty"`
	ReferenceID int64     `json:"reference_id,omitempty"`
	Amount      float64   `json:"amount"`
	Currency    string    `json:"currency,omitempty"`
	Description string    `json:"description,omitempty"`
	ClosedAt    time.Time `json:"closed_at,omitzero"`
}

// CreateReferenceRequest is the payload for passing a referral.
type CreateReferenceRequest struct {
	ToMemberID  int64  `json:"to_member_id" validate:"required"`
	Contact     string `json:"contact" validate:"required"`
	Description string `json:"description,omitempty"`
}

// CreateDoneDealRequest is the payload for recording closed business.
type CreateDoneDealRequest struct {
	PartnerID   int64   `json:"partner_id,omitempty"`
	ReferenceID int64   `json:"reference_id,omitempty"`
	Amount      float64 `json:"amount" validate:"required,gt=0"`
	Currency    string  `json:"currency,omitempty" validate:"omitempty,len=3"`
	Description string  `json:"description,omitempty"`
}
