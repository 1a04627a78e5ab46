package report

import (
	"errors"

	"github.com/s0up4200/matchboard/footballdata"
)

// ErrorPayload is the serialized form of a failure, shared by the renderers
// and the HTTP API
type ErrorPayload struct {
	Kind            string                   `json:"kind" yaml:"kind"`
	Message         string                   `json:"message" yaml:"message"`
	FriendlyMessage string                   `json:"friendlyMessage,omitempty" yaml:"friendlyMessage,omitempty"`
	StatusCode      int                      `json:"statusCode,omitempty" yaml:"statusCode,omitempty"`
	Code            string                   `json:"code,omitempty" yaml:"code,omitempty"`
	Suggestion      *footballdata.Suggestion `json:"suggestion,omitempty" yaml:"suggestion,omitempty"`
}

// NewErrorPayload describes err. Errors that are not *footballdata.Error are
// reported with an empty kind and their raw message.
func NewErrorPayload(err error) ErrorPayload {
	var fdErr *footballdata.Error
	if !errors.As(err, &fdErr) {
		return ErrorPayload{Message: err.Error()}
	}

	return ErrorPayload{
		Kind:            string(fdErr.Kind),
		Message:         fdErr.Message,
		FriendlyMessage: footballdata.FriendlyMessage(fdErr.Kind),
		StatusCode:      fdErr.StatusCode,
		Code:            fdErr.Code,
		Suggestion:      fdErr.Suggestion,
	}
}

// userMessage prefers the fixed message of the kind
func (p ErrorPayload) userMessage() string {
	if p.FriendlyMessage != "" {
		return p.FriendlyMessage
	}
	return p.Message
}
