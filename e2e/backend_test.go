package e2e_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/mcoot/gameapi-e2e/internal/config"
	"github.com/mcoot/gameapi-e2e/internal/factory"
	"github.com/mcoot/gameapi-e2e/internal/testutil"
)

// backend is what the suite runs against: the live service named by
// GAMEAPI_BASE_URL, or an in-process stub when that is unset
type backend struct {
	cfg  *config.Config
	app  *factory.App
	stub *testutil.StubBackend
}

func newBackend(t *testing.T) *backend {
	t.Helper()

	cfg, err := config.Load()
	require.NoError(t, err)

	var sb *testutil.StubBackend
	if cfg.BaseURL == "" {
		sb = testutil.StartStub(t)
		cfg.BaseURL = sb.URL
	}

	app, err := factory.New(cfg, testutil.Logger(t, cfg.LogLevel()))
	require.NoError(t, err)

	b := &backend{cfg: cfg, app: app, stub: sb}
	t.Cleanup(func() {
		// whatever this run recorded and did not release is a leak
		left, err := app.Ledger.ListFixturesForRun(context.Background(), app.Fixtures.RunID())
		if err == nil && len(left) > 0 {
			t.Errorf("%d fixtures leaked by run %s", len(left), app.Fixtures.RunID())
		}
		_ = app.Close()
	})
	return b
}

// live reports whether the suite targets a real backend
func (b *backend) live() bool {
	return b.stub == nil
}
