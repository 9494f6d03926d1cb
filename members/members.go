package members

import "time"

// Member is a chapter member as returned by the backend directory.
type Member struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Phone     string    `json:"phone,omitempty"`
	Company   string    `json:"company,omitempty"`
	Category  string    `json:"category,omitempty"`
	ChapterID int64     `json:"chapter_id,omitempty"`
	Role      string    `json:"role,omitempty"`
	Active    bool      `json:"active"`
	JoinedAt  time.Time `json:"joined_at,omitzero"`
}

// RoleInfo describes a member's role and permissions. The backend may not
// expose this endpoint at all; see Service.RoleInfo.
type RoleInfo struct {
	Role        string   `json:"role"`
	Description string   `json:"description,omitempty"`
	Permissions []string `json:"permissions,omitempty"`
}

// CreateMemberRequest is the payload for creating a member.
type CreateMemberRequest struct {
	Name     string `json:"name" validate:"required"`
	Email    string `json:"email" validate:"required,email"`
	Phone    string `json:"phone,omitempty"`
	Company  string `json:"company,omitempty"`
	Category string `json:"category,omitempty"`
}

// UpdateMemberRequest carries the fields to change; nil means leave unchanged.
type UpdateMemberRequest struct {
	Name     *string `json:"name,omitempty"`
	Email    *string `json:"email,omitempty" validate:"omitempty,email"`
	Phone    *string `json:"phone,omitempty"`
	Company  *string `json:"company,omitempty"`
	Category *string `json:"category,omitempty"`
	Active   *bool   `json:"active,omitempty"`
}
