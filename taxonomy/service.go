package taxonomy

import (
	"context"

	"github.com/connecthub/connecthub-go/httpclient"
	"github.com/pkg/errors"
)

// Service provides the read-mostly lookup lists: categories, locations
// and regions.
type Service struct {
	client *httpclient.Client
}

// NewService creates a taxonomy Service.
func NewService(client *httpclient.Client) (*Service, error) {
	if client == nil {
		return nil, errors.New("[taxonomy.NewService] http client is required")
	}
	return &Service{client: client}, nil
}

// Categories returns the business category list.
func (s *Service) Categories(ctx context.Context) ([]Category, error) {
	resp, err := s.client.Get(ctx, "categories", nil)
	if err != nil {
		return nil, errors.Wrap(err, "[Service.Categories] categories request")
	}
	var out []Category
	if err := resp.Envelope.DecodeData(&out); err != nil {
		return nil, errors.Wrap(err, "[Service.Categories] decode categories")
	}
	return out, nil
}

// Locations returns the location list.
func (s *Service) Locations(ctx context.Context) ([]Location, error) {
	resp, err := s.client.Get(ctx, "locations", nil)
	if err != nil {
		return nil, errors.Wrap(err, "[Service.Locations] locations request")
	}
	var out []Location
	if err := resp.Envelope.DecodeData(&out); err != nil {
		return nil, errors.Wrap(err, "[Service.Locations] decode locations")
	}
	return out, nil
}

// Regions returns the region list.
func (s *Service) Regions(ctx context.Context) ([]Region, error) {
	resp, err := s.client.Get(ctx, "regions", nil)
	if err != nil {
		return nil, errors.Wrap(err, "[Service.Regions] regions request")
	}
	var out []Region
	if err := resp.Envelope.DecodeData(&out); err != nil {
		return nil, errors.Wrap(err, "[Service.Regions] decode regions")
	}
	return out, nil
}
