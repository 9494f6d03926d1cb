package messages

import (
	"context"
	"fmt"

	"github.com/connecthub/connecthub-go/httpclient"
	"github.com/connecthub/connecthub-go/internal/validation"
	"github.com/pkg/errors"
)

// Service provides the member messaging operations.
type Service struct {
	client *httpclient.Client
}

// NewService creates a message Service.
func NewService(client *httpclient.Client) (*Service, error) {
	if client == nil {
		return nil, errors.New("[messages.NewService] http client is required")
	}
	return &Service{client: client}, nil
}

// List returns the current user's messages.
func (s *Service) List(ctx context.Context) ([]Message, error) {
	resp, err := s.client.Get(ctx, "messages", nil)
	if err != nil {
		return nil, errors.Wrap(err, "[Service.List] messages request")
	}
	var out []Message
	if err := resp.Envelope.DecodeData(&out); err != nil {
		return nil, errors.Wrap(err, "[Service.List] decode messages")
	}
	return out, nil
}

// Get returns one message by ID.
func (s *Service) Get(ctx context.Context, id int64) (*Message, error) {
	resp, err := s.client.Get(ctx, fmt.Sprintf("messages/%d", id), nil)
	if err != nil {
		return nil, errors.Wrapf(err, "[Service.Get] message %d", id)
	}
	var out Message
	if err := resp.Envelope.DecodeData(&out); err != nil {
		return nil, errors.Wrap(err, "[Service.Get] decode message")
	}
	return &out, nil
}

// Send delivers a message to another member.
func (s *Service) Send(ctx context.Context, req SendMessageRequest) (*Message, error) {
	if err := validation.Struct(req); err != nil {
		return nil, errors.Wrap(err, "[Service.Send]")
	}
	resp, err := s.client.Post(ctx, "messages", req, nil)
	if err != nil {
		return nil, errors.Wrap(err, "[Service.Send] messages request")
	}
	var out Message
	if err := resp.Envelope.DecodeData(&out); err != nil {
		return nil, errors.Wrap(err, "[Service.Send] decode message")
	}
	return &out, nil
}

// MarkRead flags a message as read.
func (s *Service) MarkRead(ctx context.Context, id int64) error {
	body := map[string]bool{"read": true}
	if _, err := s.client.Put(ctx, fmt.Sprintf("messages/%d", id), body, nil); err != nil {
		return errors.Wrapf(err, "[Service.MarkRead] message %d", id)
	}
	return nil
}

// Delete removes a message.
func (s *Service) Delete(ctx context.Context, id int64) error {
	if _, err := s.client.Delete(ctx, fmt.Sprintf("messages/%d", id), nil); err != nil {
		return errors.Wrapf(err, "[Service.Delete] message %d", id)
	}
	return nil
}
