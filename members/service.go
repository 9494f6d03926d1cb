package members

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"github.com/connecthub/connecthub-go/httpclient"
	"github.com/connecthub/connecthub-go/internal/validation"
	"github.com/pkg/errors"
)

// Service provides the member directory CRUD operations.
type Service struct {
	client *httpclient.Client
}

// NewService creates a member Service.
func NewService(client *httpclient.Client) (*Service, error) {
	if client == nil {
		return nil, errors.New("[members.NewService] http client is required")
	}
	return &Service{client: client}, nil
}

// ListOptions filter and page the member list.
type ListOptions struct {
	Page     int
	PerPage  int
	Search   string
	Category string
}

func (o ListOptions) query() string {
	values := url.Values{}
	if o.Page > 0 {
		values.Set("page", strconv.Itoa(o.Page))
	}
	if o.PerPage > 0 {
		values.Set("per_page", strconv.Itoa(o.PerPage))
	}
	if o.Search != "" {
		values.Set("search", o.Search)
	}
	if o.Category != "" {
		values.Set("category", o.Category)
	}
	return values.Encode()
}

// List returns members matching the options.
func (s *Service) List(ctx context.Context, opts ListOptions) ([]Member, error) {
	path := "members"
	if q := opts.query(); q != "" {
		path += "?" + q
	}
	resp, err := s.client.Get(ctx, path, nil)
	if err != nil {
		return nil, errors.Wrap(err, "[Service.List] members request")
	}
	var out []Member
	if err := resp.Envelope.DecodeData(&out); err != nil {
		return nil, errors.Wrap(err, "[Service.List] decode members")
	}
	return out, nil
}

// Get returns one member by ID.
func (s *Service) Get(ctx context.Context, id int64) (*Member, error) {
	resp, err := s.client.Get(ctx, fmt.Sprintf("members/%d", id), nil)
	if err != nil {
		return nil, errors.Wrapf(err, "[Service.Get] member %d", id)
	}
	var out Member
	if err := resp.Envelope.DecodeData(&out); err != nil {
		return nil, errors.Wrap(err, "[Service.Get] decode member")
	}
	return &out, nil
}

// Create adds a member.
func (s *Service) Create(ctx context.Context, req CreateMemberRequest) (*Member, error) {
	if err := validation.Struct(req); err != nil {
		return nil, errors.Wrap(err, "[Service.Create]")
	}
	resp, err := s.client.Post(ctx, "members", req, nil)
	if err != nil {
		return nil, errors.Wrap(err, "[Service.Create] members request")
	}
	var out Member
	if err := resp.Envelope.DecodeData(&out); err != nil {
		return nil, errors.Wrap(err, "[Service.Create] decode member")
	}
	return &out, nil
}

// Update changes the non-nil fields of a member.
func (s *Service) Update(ctx context.Context, id int64, req UpdateMemberRequest) (*Member, error) {
	if err := validation.Struct(req); err != nil {
		return nil, errors.Wrap(err, "[Service.Update]")
	}
	resp, err := s.client.Put(ctx, fmt.Sprintf("members/%d", id), req, nil)
	if err != nil {
		return nil, errors.Wrapf(err, "[Service.Update] member %d", id)
	}
	var out Member
	if err := resp.Envelope.DecodeData(&out); err != nil {
		return nil, errors.Wrap(err, "[Service.Update] decode member")
	}
	return &out, nil
}

// Delete removes a member.
func (s *Service) Delete(ctx context.Context, id int64) error {
	if _, err := s.client.Delete(ctx, fmt.Sprintf("members/%d", id), nil); err != nil {
		return errors.Wrapf(err, "[Service.Delete] member %d", id)
	}
	return nil
}

// RoleInfo returns role details for a member. A 404 here means the backend
// does not expose the role endpoint yet and is deliberately not an error:
// the result is (nil, nil) and callers hide the feature. Any other non-2xx
// status is surfaced as usual.
func (s *Service) RoleInfo(ctx context.Context, memberID int64) (*RoleInfo, error) {
	resp, err := s.client.Get(ctx, fmt.Sprintf("members/%d/role", memberID), nil)
	if err != nil {
		if reqErr, ok := httpclient.AsRequestError(err); ok && reqErr.IsStatus(http.StatusNotFound) {
			return nil, nil
		}
		return nil, errors.Wrapf(err, "[Service.RoleInfo] member %d", memberID)
	}
	var out RoleInfo
	if err := resp.Envelope.DecodeData(&out); err != nil {
		return nil, errors.Wrap(err, "[Service.RoleInfo] decode role info")
	}
	return &out, nil
}
