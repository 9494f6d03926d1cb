package httpclient

import (
	"encoding/json"

	"github.com/connecthub/connecthub-go/internal/utils"
	"github.com/pkg/errors"
)

// Envelope is the backend's top-level response wrapper. Success responses
// follow {success: true, data: ...}. Failure responses are inconsistent:
// the message may live under error, errors or message, and each of those
// may be a plain string or an object carrying its own message field.
type Envelope struct {
	Success bool            `json:"success"`
	Code    string          `json:"code"`
	Data    json.RawMessage `json:"data"`
	Error   json.RawMessage `json:"error"`
	Errors  json.RawMessage `json:"errors"`
	Message json.RawMessage `json:"message"`
}

// DecodeData unmarshals the data payload into v.
func (e *Envelope) DecodeData(v any) error {
	if len(e.Data) == 0 {
		return errors.New("[Envelope.DecodeData] envelope has no data")
	}
	if err := json.Unmarshal(e.Data, v); err != nil {
		return errors.Wrap(err, "[Envelope.DecodeData] json.Unmarshal")
	}
	return nil
}

// ErrorMessage extracts the human-readable failure message from the
// envelope. The fields are checked in a fixed priority order: error,
// then errors, then message. Returns "" when none of them carries a
// recognizable message.
func (e *Envelope) ErrorMessage() string {
	for _, raw := range []json.RawMessage{e.Error, e.Errors, e.Message} {
		if msg := messageFromRaw(raw); msg != "" {
			return msg
		}
	}
	return ""
}

// FieldErrors returns per-field validation messages when the errors field
// is an object mapping field names to a message or a list of messages.
// Returns nil when no field-level errors are present.
func (e *Envelope) FieldErrors() map[string]string {
	if len(e.Errors) == 0 {
		return nil
	}
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(e.Errors, &fields); err != nil {
		return nil
	}
	out := make(map[string]string, len(fields))
	for field, raw := range fields {
		if field == "message" {
			continue
		}
		var s string
		if err := json.Unmarshal(raw, &s); err == nil {
			out[field] = s
			continue
		}
		var list []any
		if err := json.Unmarshal(raw, &list); err == nil {
			if msgs := utils.ToStringSlice(list); len(msgs) > 0 {
				out[field] = msgs[0]
			}
		}
	}
	if len(out) == 0 {
		return nil
	}
	return out
}

func messageFromRaw(raw json.RawMessage) string {
	if len(raw) == 0 {
		return ""
	}
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s
	}
	var obj struct {
		Message string `json:"message"`
	}
	if err := json.Unmarshal(raw, &obj); err == nil {
		return obj.Message
	}
	return ""
}
