package app

import (
	"bytes"
	"context"
	"log/slog"
	"sync"

	"github.com/stretchr/testify/mock"

	"github.com/andyballingall/cformat/internal/filter"
	"github.com/andyballingall/cformat/internal/formatter"
)

var discardLogger = slog.New(slog.DiscardHandler)

type MockManager struct {
	mock.Mock
}

func (m *MockManager) Check(ctx context.Context, opts Options) error {
	args := m.Called(ctx, opts)
	return args.Error(0)
}

func (m *MockManager) Format(ctx context.Context, opts Options) error {
	args := m.Called(ctx, opts)
	return args.Error(0)
}

// MockGitter is a test mock for the repo.Gitter interface.
type MockGitter struct {
	TopLevelFunc    func() (string, error)
	StagedFilesFunc func() ([]string, error)
	Top             string
	Staged          []string
}

func (m *MockGitter) TopLevel(_ context.Context) (string, error) {
	if m.TopLevelFunc != nil {
		return m.TopLevelFunc()
	}
	return m.Top, nil
}

func (m *MockGitter) StagedFiles(_ context.Context) ([]string, error) {
	if m.StagedFilesFunc != nil {
		return m.StagedFilesFunc()
	}
	return m.Staged, nil
}

// fakeChecker reports a Violation for every path in violations.
type fakeChecker struct {
	mu         sync.Mutex
	violations map[string]bool
	err        error
	checked    []string
}

func (f *fakeChecker) Check(_ context.Context, path string) (formatter.Verdict, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return formatter.Compliant, f.err
	}
	f.checked = append(f.checked, path)
	if f.violations[path] {
		return formatter.Violation, nil
	}
	return formatter.Compliant, nil
}

// fakeInvoker records what it was asked to format, honouring the filter the
// way the real invoker does.
type fakeInvoker struct {
	mu        sync.Mutex
	formatted []string
	dryRun    bool
	err       error
}

func (f *fakeInvoker) Format(_ context.Context, path string, dryRun bool) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.formatted = append(f.formatted, path)
	f.dryRun = dryRun
	return f.err
}

func (f *fakeInvoker) FormatFiles(ctx context.Context, paths []string, dryRun bool, flt *filter.Filter) error {
	for _, p := range paths {
		if flt.Excluded(p) {
			continue
		}
		if err := f.Format(ctx, p, dryRun); err != nil {
			return err
		}
	}
	return nil
}

func (f *fakeInvoker) Formatted() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.formatted...)
}

// safeBuffer is a thread-safe wrapper around bytes.Buffer for use in concurrent tests.
type safeBuffer struct {
	buf bytes.Buffer
	mu  sync.Mutex
}

func (b *safeBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *safeBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}
