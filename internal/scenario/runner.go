package scenario

import (
	"context"
	"fmt"
	"runtime"
	"sync"
	"time"

	"github.com/stretchr/testify/require"
	"golang.org/x/sync/errgroup"
)

// Recorder collects assertion failures outside go test.
// FailNow stops the calling goroutine, so it must only be used from a
// goroutine started by Run.
type Recorder struct {
	mu       sync.Mutex
	failed   bool
	failures []string
}

var _ require.TestingT = (*Recorder)(nil)

// Errorf records a failure and lets the scenario continue
func (r *Recorder) Errorf(format string, args ...any) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.failed = true
	r.failures = append(r.failures, fmt.Sprintf(format, args...))
}

// FailNow marks the scenario failed and unwinds it. Deferred calls still
// run, so scope cleanup happens.
func (r *Recorder) FailNow() {
	r.mu.Lock()
	r.failed = true
	r.mu.Unlock()
	runtime.Goexit()
}

// Failed reports whether any failure was recorded
func (r *Recorder) Failed() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.failed
}

// Failures returns the recorded messages
func (r *Recorder) Failures() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string(nil), r.failures...)
}

// Result is the outcome of one scenario run
type Result struct {
	Name     string        `json:"name"`
	Passed   bool          `json:"passed"`
	Failures []string      `json:"failures,omitempty"`
	Duration time.Duration `json:"duration"`
}

// Run executes a scenario against a Recorder
func Run(ctx context.Context, sc Scenario, env *Env) Result {
	rec := &Recorder{}
	start := time.Now()

	done := make(chan struct{})
	go func() {
		defer close(done)
		defer func() {
			if p := recover(); p != nil {
				rec.Errorf("panic: %v", p)
			}
		}()
		sc.Run(ctx, rec, env)
	}()
	<-done

	return Result{
		Name:     sc.Name,
		Passed:   !rec.Failed(),
		Failures: rec.Failures(),
		Duration: time.Since(start),
	}
}

// RunAll runs scenarios with at most parallelism in flight and returns the
// results in input order
func RunAll(ctx context.Context, scenarios []Scenario, env *Env, parallelism int) []Result {
	if parallelism <= 0 {
		parallelism = 1
	}
	results := make([]Result, len(scenarios))

	var g errgroup.Group
	g.SetLimit(parallelism)
	for i, sc := range scenarios {
		i, sc := i, sc
		g.Go(func() error {
			results[i] = Run(ctx, sc, env)
			return nil
		})
	}
	_ = g.Wait()

	return results
}
