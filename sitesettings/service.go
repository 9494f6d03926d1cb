package sitesettings

import (
	"context"

	"github.com/connecthub/connecthub-go/httpclient"
	"github.com/connecthub/connecthub-go/internal/validation"
	"github.com/pkg/errors"
)

// Service provides the site-settings and requirements operations.
type Service struct {
	client *httpclient.Client
}

// NewService creates a site-settings Service.
func NewService(client *httpclient.Client) (*Service, error) {
	if client == nil {
		return nil, errors.New("[sitesettings.NewService] http client is required")
	}
	return &Service{client: client}, nil
}

// Get returns the chapter settings.
func (s *Service) Get(ctx context.Context) (*SiteSettings, error) {
	resp, err := s.client.Get(ctx, "site-settings", nil)
	if err != nil {
		return nil, errors.Wrap(err, "[Service.Get] site-settings request")
	}
	var out SiteSettings
	if err := resp.Envelope.DecodeData(&out); err != nil {
		return nil, errors.Wrap(err, "[Service.Get] decode site-settings")
	}
	return &out, nil
}

// Update changes the non-nil settings fields.
func (s *Service) Update(ctx context.Context, req UpdateSiteSettingsRequest) (*SiteSettings, error) {
	if err := validation.Struct(req); err != nil {
		return nil, errors.Wrap(err, "[Service.Update]")
	}
	resp, err := s.client.Put(ctx, "site-settings", req, nil)
	if err != nil {
		return nil, errors.Wrap(err, "[Service.Update] site-settings request")
	}
	var out SiteSettings
	if err := resp.Envelope.DecodeData(&out); err != nil {
		return nil, errors.Wrap(err, "[Service.Update] decode site-settings")
	}
	return &out, nil
}

// Requirements returns the chapter participation requirements.
func (s *Service) Requirements(ctx context.Context) ([]Requirement, error) {
	resp, err := s.client.Get(ctx, "requirements", nil)
	if err != nil {
		return nil, errors.Wrap(err, "[Service.Requirements] requirements request")
	}
	var out []Requirement
	if err := resp.Envelope.DecodeData(&out); err != nil {
		return nil, errors.Wrap(err, "[Service.Requirements] decode requirements")
	}
	return out, nil
}
