package referrals

import (
	"context"
	"fmt"

	"github.com/connecthub/connecthub-go/httpclient"
	"github.com/connecthub/connecthub-go/internal/validation"
	"github.com/pkg/errors"
)

// Service provides the references and done-deals operations.
type Service struct {
	client *httpclient.Client
}

// NewService creates a referral Service.
func NewService(client *httpclient.Client) (*Service, error) {
	if client == nil {
		return nil, errors.New("[referrals.NewService] http client is required")
	}
	return &Service{client: client}, nil
}

// References returns referrals involving the current user.
func (s *Service) References(ctx context.Context) ([]Reference, error) {
	resp, err := s.client.Get(ctx, "references", nil)
	if err != nil {
		return nil, errors.Wrap(err, "[Service.References] references request")
	}
	var out []Reference
	if err := resp.Envelope.DecodeData(&out); err != nil {
		return nil, errors.Wrap(err, "[Service.References] decode references")
	}
	return out, nil
}

// CreateReference passes a referral to another member.
func (s *Service) CreateReference(ctx context.Context, req CreateReferenceRequest) (*Reference, error) {
	if err := validation.Struct(req); err != nil {
		return nil, errors.Wrap(err, "[Service.CreateReference]")
	}
	resp, err := s.client.Post(ctx, "references", req, nil)
	if err != nil {
		return nil, errors.Wrap(err, "[Service.CreateReference] references request")
	}
	var out Reference
	if err := resp.Envelope.DecodeData(&out); err != nil {
		return nil, errors.Wrap(err, "[Service.CreateReference] decode reference")
	}
	return &out, nil
}

// UpdateReferenceStatus moves a referral to a new status.
func (s *Service) UpdateReferenceStatus(ctx context.Context, id int64, status string) (*Reference, error) {
	body := map[string]string{"status": status}
	resp, err := s.client.Put(ctx, fmt.Sprintf("references/%d", id), body, nil)
	if err != nil {
		return nil, errors.Wrapf(err, "[Service.UpdateReferenceStatus] reference %d", id)
	}
	var out Reference
	if err := resp.Envelope.DecodeData(&out); err != nil {
		return nil, errors.Wrap(err, "[Service.UpdateReferenceStatus] decode reference")
	}
	return &out, nil
}

// DoneDeals returns the closed business records.
func (s *Service) DoneDeals(ctx context.Context) ([]DoneDeal, error) {
	resp, err := s.client.Get(ctx, "done-deals", nil)
	if err != nil {
		return nil, errors.Wrap(err, "[Service.DoneDeals] done-deals request")
	}
	var out []DoneDeal
	if err := resp.Envelope.DecodeData(&out); err != nil {
		return nil, errors.Wrap(err, "[Service.DoneDeals] decode done-deals")
	}
	return out, nil
}

// CreateDoneDeal records closed business.
func (s *Service) CreateDoneDeal(ctx context.Context, req CreateDoneDealRequest) (*DoneDeal, error) {
	if err := validation.Struct(req); err != nil {
		return nil, errors.Wrap(err, "[Service.CreateDoneDeal]")
	}
	resp, err := s.client.Post(ctx, "done-deals", req, nil)
	if err != nil {
		return nil, errors.Wrap(err, "[Service.CreateDoneDeal] done-deals request")
	}
	var out DoneDeal
	if err := resp.Envelope.DecodeData(&out); err != nil {
		return nil, errors.Wrap(err, "[Service.CreateDoneDeal] decode done-deal")
	}
	return &out, nil
}

// DeleteDoneDeal removes a closed-business record.
func (s *Service) DeleteDoneDeal(ctx context.Context, id int64) error {
	if _, err := s.client.Delete(ctx, fmt.Sprintf("done-deals/%d", id), nil); err != nil {
		return errors.Wrapf(err, "[Service.DeleteDoneDeal] done-deal %d", id)
	}
	return nil
}
