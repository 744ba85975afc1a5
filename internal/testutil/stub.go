package testutil

import (
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/mcoot/gameapi-e2e/internal/dependencies/clock"
	"github.com/mcoot/gameapi-e2e/internal/dependencies/random"
	"github.com/mcoot/gameapi-e2e/internal/stub"
)

// StubBackend is a running in-process stub
type StubBackend struct {
	URL     string
	Service *stub.Service
	Server  *httptest.Server
}

// StubOption customises StartStub
type StubOption func(*stubOptions)

type stubOptions struct {
	cfg    stub.Config
	apiKey string
}

// WithPlatforms overrides the registered platform ids
func WithPlatforms(platforms ...int) StubOption {
	return func(o *stubOptions) { o.cfg.Platforms = platforms }
}

// WithAPIKey makes the stub require the given bearer key
func WithAPIKey(key string) StubOption {
	return func(o *stubOptions) { o.apiKey = key }
}

// StartStub runs the stub backend on an httptest server that is closed
// when the test ends
func StartStub(t testing.TB, opts ...StubOption) *StubBackend {
	t.Helper()

	o := stubOptions{cfg: stub.DefaultConfig()}
	for _, opt := range opts {
		opt(&o)
	}

	service := stub.NewService(stub.NewStore(), clock.New(), random.New(), o.cfg, NopLogger())

	routerCfg := stub.RouterConfig{Logger: NopLogger(), Service: service}
	if o.apiKey != "" {
		hash, err := stub.HashAPIKey(o.apiKey, bcrypt.MinCost)
		require.NoError(t, err)
		routerCfg.APIKeyHash = hash
	}

	srv := httptest.NewServer(stub.NewRouter(routerCfg))
	t.Cleanup(srv.Close)

	return &StubBackend{
		URL:     srv.URL,
		Service: service,
		Server:  srv,
	}
}
