package domain

import (
	"encoding/json"

	apperrors "github.com/ablecats/filestream/internal/errors"
)

// Envelope is the top-level response shape every service endpoint shares.
type Envelope struct {
	Code int             `json:"code"`
	Msg  string          `json:"msg"`
	Data json.RawMessage `json:"data"`
}

// Ok reports whether the response signals success. The convention (which code
// value means success) varies across service revisions, so the expected value
// comes from configuration.
func (e *Envelope) Ok(successCode int) bool {
	return e.Code == successCode
}

// ExtractToken locates the token object inside a login or refresh response.
// The service has shipped it both at data.token and at data directly. Returns
// ErrAuth when no access token is present in either location.
func (e *Envelope) ExtractToken() (*Token, error) {
	if len(e.Data) == 0 {
		return nil, apperrors.Wrap(apperrors.ErrAuth, "response carries no data")
	}

	var wrapper struct {
		Token json.RawMessage `json:"token"`
	}
	raw := e.Data
	if err := json.Unmarshal(e.Data, &wrapper); err == nil && len(wrapper.Token) > 0 && string(wrapper.Token) != "null" {
		raw = wrapper.Token
	}

	var token Token
	if err := json.Unmarshal(raw, &token); err != nil {
		return nil, apperrors.Wrap(apperrors.ErrAuth, "token object invalid")
	}
	if token.AccessToken == "" {
		return nil, apperrors.Wrap(apperrors.ErrAuth, "access_token not found in response")
	}
	return &token, nil
}
