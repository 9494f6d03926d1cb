package meetings

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
	"time"

	"github.com/connecthub/connecthub-go/httpclient"
	"github.com/connecthub/connecthub-go/internal/validation"
	"github.com/pkg/errors"
)

// Service provides meeting and visitor operations. Visitors are scoped to
// a meeting.
type Service struct {
	client *httpclient.Client
}

// NewService creates a meeting Service.
func NewService(client *httpclient.Client) (*Service, error) {
	if client == nil {
		return nil, errors.New("[meetings.NewService] http client is required")
	}
	return &Service{client: client}, nil
}

// ListOptions filter and page the meeting list.
type ListOptions struct {
	Page    int
	PerPage int
	From    time.Time
	To      time.Time
}

func (o ListOptions) query() string {
	values := url.Values{}
	if o.Page > 0 {
		values.Set("page", strconv.Itoa(o.Page))
	}
	if o.PerPage > 0 {
		values.Set("per_page", strconv.Itoa(o.PerPage))
	}
	if !o.From.IsZero() {
		values.Set("from", o.From.Format(time.RFC3339))
	}
	if !o.To.IsZero() {
		values.Set("to", o.To.Format(time.RFC3339))
	}
	return values.Encode()
}

// List returns meetings matching the options.
func (s *Service) List(ctx context.Context, opts ListOptions) ([]Meeting, error) {
	path := "meetings"
	if q := opts.query(); q != "" {
		path += "?" + q
	}
	resp, err := s.client.Get(ctx, path, nil)
	if err != nil {
		return nil, errors.Wrap(err, "[Service.List] meetings request")
	}
	var out []Meeting
	if err := resp.Envelope.DecodeData(&out); err != nil {
		return nil, errors.Wrap(err, "[Service.List] decode meetings")
	}
	return out, nil
}

// Get returns one meeting by ID.
func (s *Service) Get(ctx context.Context, id int64) (*Meeting, error) {
	resp, err := s.client.Get(ctx, fmt.Sprintf("meetings/%d", id), nil)
	if err != nil {
		return nil, errors.Wrapf(err, "[Service.Get] meeting %d", id)
	}
	var out Meeting
	if err := resp.Envelope.DecodeData(&out); err != nil {
		return nil, errors.Wrap(err, "[Service.Get] decode meeting")
	}
	return &out, nil
}

// Create schedules a meeting.
func (s *Service) Create(ctx context.Context, req CreateMeetingRequest) (*Meeting, error) {
	if err := validation.Struct(req); err != nil {
		return nil, errors.Wrap(err, "[Service.Create]")
	}
	resp, err := s.client.Post(ctx, "meetings", req, nil)
	if err != nil {
		return nil, errors.Wrap(err, "[Service.Create] meetings request")
	}
	var out Meeting
	if err := resp.Envelope.DecodeData(&out); err != nil {
		return nil, errors.Wrap(err, "[Service.Create] decode meeting")
	}
	return &out, nil
}

// Update changes the non-nil fields of a meeting.
func (s *Service) Update(ctx context.Context, id int64, req UpdateMeetingRequest) (*Meeting, error) {
	resp, err := s.client.Put(ctx, fmt.Sprintf("meetings/%d", id), req, nil)
	if err != nil {
		return nil, errors.Wrapf(err, "[Service.Update] meeting %d", id)
	}
	var out Meeting
	if err := resp.Envelope.DecodeData(&out); err != nil {
		return nil, errors.Wrap(err, "[Service.Update] decode meeting")
	}
	return &out, nil
}

// Delete cancels a meeting.
func (s *Service) Delete(ctx context.Context, id int64) error {
	if _, err := s.client.Delete(ctx, fmt.Sprintf("meetings/%d", id), nil); err != nil {
		return errors.Wrapf(err, "[Service.Delete] meeting %d", id)
	}
	return nil
}

// Visitors returns the guests registered for a meeting.
func (s *Service) Visitors(ctx context.Context, meetingID int64) ([]Visitor, error) {
	resp, err := s.client.Get(ctx, fmt.Sprintf("meetings/%d/visitors", meetingID), nil)
	if err != nil {
		return nil, errors.Wrapf(err, "[Service.Visitors] meeting %d", meetingID)
	}
	var out []Visitor
	if err := resp.Envelope.DecodeData(&out); err != nil {
		return nil, errors.Wrap(err, "[Service.Visitors] decode visitors")
	}
	return out, nil
}

// AddVisitor registers a guest for a meeting.
func (s *Service) AddVisitor(ctx context.Context, meetingID int64, req AddVisitorRequest) (*Visitor, error) {
	if err := validation.Struct(req); err != nil {
		return nil, errors.Wrap(err, "[Service.AddVisitor]")
	}
	resp, err := s.client.Post(ctx, fmt.Sprintf("meetings/%d/visitors", meetingID), req, nil)
	if err != nil {
		return nil, errors.Wrapf(err, "[Service.AddVisitor] meeting %d", meetingID)
	}
	var out Visitor
	if err := resp.Envelope.DecodeData(&out); err != nil {
		return nil, errors.Wrap(err, "[Service.AddVisitor] decode visitor")
	}
	return &out, nil
}

// RemoveVisitor deletes a guest registration.
func (s *Service) RemoveVisitor(ctx context.Context, meetingID, visitorID int64) error {
	path := fmt.Sprintf("meetings/%d/visitors/%d", meetingID, visitorID)
	if _, err := s.client.Delete(ctx, path, nil); err != nil {
		return errors.Wrapf(err, "[Service.RemoveVisitor] visitor %d", visitorID)
	}
	return nil
}
