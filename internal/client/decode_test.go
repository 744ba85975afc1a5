package client

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mcoot/gameapi-e2e/internal/model"
)

func TestDecode(t *testing.T) {
	tests := []struct {
		name    string
		raw     string
		wantErr error
		check   func(t *testing.T, resp *model.Response)
	}{
		{
			name: "session opened",
			raw:  `{"status":"ok","data":[{"player-id":"p-1","session-id":"s-1"}]}`,
			check: func(t *testing.T, resp *model.Response) {
				assert.True(t, resp.OK())
				assert.Equal(t, "p-1", resp.String(model.FieldPlayerID))
				assert.Equal(t, "s-1", resp.String(model.FieldSessionID))
			},
		},
		{
			name: "error envelope",
			raw:  `{"status":"error","message":"Invalid platform ID"}`,
			check: func(t *testing.T, resp *model.Response) {
				assert.Equal(t, model.StatusError, resp.Status)
				assert.Equal(t, model.MessageInvalidPlatform, resp.Message)
			},
		},
		{
			name: "large numeric id keeps digits",
			raw:  `{"status":"ok","data":[{"player-id":9007199254740993}]}`,
			check: func(t *testing.T, resp *model.Response) {
				assert.Equal(t, "9007199254740993", resp.String(model.FieldPlayerID))
			},
		},
		{name: "empty body", raw: "  \n", wantErr: model.ErrEmptyResponse},
		{name: "html error page", raw: "<html>502 Bad Gateway</html>", wantErr: model.ErrMalformedEnvelope},
		{name: "no status", raw: `{"data":[]}`, wantErr: model.ErrMalformedEnvelope},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp, err := Decode(tt.raw)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			tt.check(t, resp)
		})
	}
}
