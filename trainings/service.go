package trainings

import (
	"context"
	"fmt"

	"github.com/connecthub/connecthub-go/httpclient"
	"github.com/connecthub/connecthub-go/internal/validation"
	"github.com/pkg/errors"
)

// Service provides training and attendance operations.
type Service struct {
	client *httpclient.Client
}

// NewService creates a training Service.
func NewService(client *httpclient.Client) (*Service, error) {
	if client == nil {
		return nil, errors.New("[trainings.NewService] http client is required")
	}
	return &Service{client: client}, nil
}

// List returns upcoming trainings.
func (s *Service) List(ctx context.Context) ([]Training, error) {
	resp, err := s.client.Get(ctx, "trainings", nil)
	if err != nil {
		return nil, errors.Wrap(err, "[Service.List] trainings request")
	}
	var out []Training
	if err := resp.Envelope.DecodeData(&out); err != nil {
		return nil, errors.Wrap(err, "[Service.List] decode trainings")
	}
	return out, nil
}

// Get returns one training by ID.
func (s *Service) Get(ctx context.Context, id int64) (*Training, error) {
	resp, err := s.client.Get(ctx, fmt.Sprintf("trainings/%d", id), nil)
	if err != nil {
		return nil, errors.Wrapf(err, "[Service.Get] training %d", id)
	}
	var out Training
	if err := resp.Envelope.DecodeData(&out); err != nil {
		return nil, errors.Wrap(err, "[Service.Get] decode training")
	}
	return &out, nil
}

// Create schedules a training.
func (s *Service) Create(ctx context.Context, req CreateTrainingRequest) (*Training, error) {
	if err := validation.Struct(req); err != nil {
		return nil, errors.Wrap(err, "[Service.Create]")
	}
	resp, err := s.client.Post(ctx, "trainings", req, nil)
	if err != nil {
		return nil, errors.Wrap(err, "[Service.Create] trainings request")
	}
	var out Training
	if err := resp.Envelope.DecodeData(&out); err != nil {
		return nil, errors.Wrap(err, "[Service.Create] decode training")
	}
	return &out, nil
}

// Delete removes a training.
func (s *Service) Delete(ctx context.Context, id int64) error {
	if _, err := s.client.Delete(ctx, fmt.Sprintf("trainings/%d", id), nil); err != nil {
		return errors.Wrapf(err, "[Service.Delete] training %d", id)
	}
	return nil
}

// Register signs a member up for a training.
func (s *Service) Register(ctx context.Context, trainingID, memberID int64) error {
	body := map[string]int64{"member_id": memberID}
	path := fmt.Sprintf("trainings/%d/attendees", trainingID)
	if _, err := s.client.Post(ctx, path, body, nil); err != nil {
		return errors.Wrapf(err, "[Service.Register] training %d member %d", trainingID, memberID)
	}
	return nil
}

// Attendees returns the registrations for a training.
func (s *Service) Attendees(ctx context.Context, trainingID int64) ([]Attendee, error) {
	resp, err := s.client.Get(ctx, fmt.Sprintf("trainings/%d/attendees", trainingID), nil)
	if err != nil {
		return nil, errors.Wrapf(err, "[Service.Attendees] training %d", trainingID)
	}
	var out []Attendee
	if err := resp.Envelope.DecodeData(&out); err != nil {
		return nil, errors.Wrap(err, "[Service.Attendees] decode attendees")
	}
	return out, nil
}
