package commands

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/okra-platform/smithy-codegen/internal/config"
)

// mockSignalNotifier captures the channel so tests can deliver signals
type mockSignalNotifier struct {
	mu   sync.Mutex
	ch   chan<- os.Signal
	stop bool
}

func (m *mockSignalNotifier) Notify(c chan<- os.Signal, sig ...os.Signal) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.ch = c
}

func (m *mockSignalNotifier) Stop(c chan<- os.Signal) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.stop = true
}

func (m *mockSignalNotifier) send(sig os.Signal) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.ch == nil {
		return false
	}
	m.ch <- sig
	return true
}

func TestController_Watch_StopsOnSignal(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}

	// Test: watch generates up front and exits cleanly on interrupt
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "model.json"), []byte(weatherModel), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, config.FileName), []byte(`{"name": "weather"}`), 0644))

	logger := zerolog.Nop()
	ctrl := &Controller{
		Flags:  &Flags{ConfigPath: filepath.Join(dir, config.FileName)},
		Out:    &bytes.Buffer{},
		Logger: &logger,
	}
	signals := &mockSignalNotifier{}

	done := make(chan error, 1)
	go func() { done <- ctrl.watch(context.Background(), signals) }()

	assert.Eventually(t, func() bool {
		_, err := os.Stat(filepath.Join(dir, "build", "In.h"))
		return err == nil
	}, 2*time.Second, 20*time.Millisecond)

	require.True(t, signals.send(os.Interrupt))

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("watch did not stop")
	}
	assert.True(t, signals.stop)
}

func TestController_Watch_ConfigError(t *testing.T) {
	ctrl := &Controller{Flags: &Flags{ConfigPath: filepath.Join(t.TempDir(), "missing.json")}}
	err := ctrl.watch(context.Background(), &mockSignalNotifier{})
	assert.ErrorContains(t, err, "failed to load project config")
}

func TestController_LoadProject_ModelOverrideDerivesPatterns(t *testing.T) {
	// Test: --model with a GraphQL schema switches the derived watch patterns
	chdir(t, t.TempDir())

	ctrl := &Controller{Flags: &Flags{Model: "api.okra.gql"}}
	cfg, _, err := ctrl.loadProject()
	require.NoError(t, err)

	assert.Equal(t, config.FormatGraphQL, cfg.ModelFormat())
	assert.Contains(t, cfg.Watch.Patterns, "*.okra.gql")
	assert.NotContains(t, cfg.Watch.Patterns, "*.json")
}

func TestWatchTargets(t *testing.T) {
	project := filepath.Join(string(filepath.Separator), "work", "weather")

	tests := []struct {
		name     string
		model    string
		patterns []string
		roots    []string
		want     []string
	}{
		{
			name:     "model inside the project",
			model:    "./model/weather.json",
			patterns: []string{"*.json"},
			roots:    []string{project},
			want:     []string{"*.json", "weather.json"},
		},
		{
			name:     "model already matched by name",
			model:    "weather.json",
			patterns: []string{"weather.json"},
			roots:    []string{project},
			want:     []string{"weather.json"},
		},
		{
			name:     "model outside the project",
			model:    filepath.Join(string(filepath.Separator), "shared", "api.okra.gql"),
			patterns: []string{"model/*.json"},
			roots:    []string{project, filepath.Join(string(filepath.Separator), "shared")},
			want:     []string{"model/*.json", "api.okra.gql"},
		},
		{
			name:     "sibling directory with a shared prefix",
			model:    filepath.Join(string(filepath.Separator), "work", "weather-api", "model.json"),
			patterns: []string{"*.json"},
			roots:    []string{project, filepath.Join(string(filepath.Separator), "work", "weather-api")},
			want:     []string{"*.json", "model.json"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := &config.Config{Model: tt.model, Watch: config.WatchConfig{Patterns: tt.patterns}}
			roots, patterns := watchTargets(cfg, project)
			assert.Equal(t, tt.roots, roots)
			assert.Equal(t, tt.want, patterns)
			assert.Len(t, cfg.Watch.Patterns, len(tt.patterns))
		})
	}
}

func TestController_Watch_ModelOutsideProject(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}

	// Test plan:
	// 1. The project config lives in one directory, the GraphQL model in another
	// 2. The initial pass generates the output
	// 3. Rewriting the model regenerates it
	project := t.TempDir()
	shared := t.TempDir()
	modelPath := filepath.Join(shared, "api.okra.gql")
	require.NoError(t, os.WriteFile(modelPath, []byte(weatherIDL), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(project, config.FileName), []byte(`{"name": "weather"}`), 0644))

	logger := zerolog.Nop()
	ctrl := &Controller{
		Flags: &Flags{
			ConfigPath: filepath.Join(project, config.FileName),
			Model:      modelPath,
		},
		Out:    &bytes.Buffer{},
		Logger: &logger,
	}
	signals := &mockSignalNotifier{}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	done := make(chan error, 1)
	go func() { done <- ctrl.watch(ctx, signals) }()

	header := filepath.Join(project, "build", "In.h")
	require.Eventually(t, func() bool {
		_, err := os.Stat(header)
		return err == nil
	}, 2*time.Second, 20*time.Millisecond)

	require.NoError(t, os.Remove(header))
	// give the watcher time to register the model directory
	time.Sleep(100 * time.Millisecond)
	require.NoError(t, os.WriteFile(modelPath, []byte(weatherIDL+"\n"), 0644))

	assert.Eventually(t, func() bool {
		_, err := os.Stat(header)
		return err == nil
	}, 2*time.Second, 20*time.Millisecond)

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("watch did not stop")
	}
}
