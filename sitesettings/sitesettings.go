package sitesettings

// SiteSettings holds the chapter-wide display and contact settings.
type SiteSettings struct {
	ChapterName  string `json:"chapter_name"`
	LogoURL      string `json:"logo_url,omitempty"`
	ContactEmail string `json:"contact_email,omitempty"`
	Timezone     string `json:"timezone,omitempty"`
	MeetingDay   string `json:"meeting_day,omitempty"`
	Currency     string `json:"currency,omitempty"`
}

// Requirement is a chapter participation requirement members are measured
// against (visitors brought, references passed, and so on) over a period.
type Requirement struct {
	ID          int64  `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description,omitempty"`
	Target      int    `json:"target"`
	Period      string `json:"period,omitempty"`
}

// UpdateSiteSettingsRequest carries the fields to change; nil means leave
// unchanged.
type UpdateSiteSettingsRequest struct {
	ChapterName  *string `json:"chapter_name,omitempty"`
	LogoURL      *string `json:"logo_url,omitempty" validate:"omitempty,url"`
	ContactEmail *string `json:"contact_email,omitempty" validate:"omitempty,email"`
	Timezone     *string `json:"timezone,omitempty"`
	MeetingDay   *string `json:"meeting_day,omitempty"`
	Currency     *string `json:"currency,omitempty" validate:"omitempty,len=3"`
}
