package client

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/mcoot/gameapi-e2e/internal/model"
)

// Decode parses a raw response body into the envelope.
// Numbers are kept as json.Number so numeric ids are not rounded.
func Decode(raw string) (*model.Response, error) {
	if strings.TrimSpace(raw) == "" {
		return nil, model.ErrEmptyResponse
	}

	dec := json.NewDecoder(strings.NewReader(raw))
	dec.UseNumber()

	var resp model.Response
	if err := dec.Decode(&resp); err != nil {
		return nil, fmt.Errorf("%w: %v", model.ErrMalformedEnvelope, err)
	}
	if resp.Status == "" {
		return nil, fmt.Errorf("%w: missing status in %s", model.ErrMalformedEnvelope, truncate(raw, 200))
	}
	return &resp, nil
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
