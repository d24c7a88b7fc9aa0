package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfigFromPath(t *testing.T) {
	tests := []struct {
		name     string
		contents string
		check    func(t *testing.T, got *Config)
	}{
		{
			name: "valid config with all fields",
			contents: `{
  "name": "weather",
  "model": "./model/weather.json",
  "language": "c++",
  "output": "./build/cpp",
  "indent": "\t",
  "declarationExtension": "hpp",
  "definitionExtension": "cc",
  "includeComments": true,
  "watch": {"patterns": ["model/*.json"], "exclude": ["tmp/"]}
}`,
			check: func(t *testing.T, got *Config) {
				assert.Equal(t, "weather", got.Name)
				assert.Equal(t, "./model/weather.json", got.Model)
				assert.Equal(t, "c++", got.Language)
				assert.Equal(t, "./build/cpp", got.Output)
				assert.Equal(t, "\t", got.Indent)
				assert.Equal(t, "hpp", got.DeclarationExtension)
				assert.Equal(t, "cc", got.DefinitionExtension)
				assert.True(t, got.IncludeComments)
				assert.Equal(t, []string{"model/*.json"}, got.Watch.Patterns)
				assert.Equal(t, []string{"tmp/"}, got.Watch.Exclude)
			},
		},
		{
			name:     "config with defaults",
			contents: `{"name": "minimal"}`,
			check: func(t *testing.T, got *Config) {
				assert.Equal(t, "./model.json", got.Model)
				assert.Equal(t, "cpp", got.Language)
				assert.Equal(t, "./build", got.Output)
				assert.Equal(t, "    ", got.Indent)
				assert.Equal(t, "h", got.DeclarationExtension)
				assert.Equal(t, "cpp", got.DefinitionExtension)
				assert.False(t, got.IncludeComments)
				assert.Contains(t, got.Watch.Patterns, "*.json")
				assert.Contains(t, got.Watch.Exclude, "build/")
				assert.Contains(t, got.Watch.Exclude, FileName)
			},
		},
		{
			name:     "graphql model gets graphql watch patterns",
			contents: `{"model": "./weather.okra.gql"}`,
			check: func(t *testing.T, got *Config) {
				assert.Equal(t, FormatGraphQL, got.ModelFormat())
				assert.Contains(t, got.Watch.Patterns, "*.okra.gql")
				assert.NotContains(t, got.Watch.Patterns, "*.json")
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			configPath := filepath.Join(t.TempDir(), FileName)
			require.NoError(t, os.WriteFile(configPath, []byte(tt.contents), 0644))

			got, err := LoadConfigFromPath(configPath)
			require.NoError(t, err)
			require.NotNil(t, got)
			tt.check(t, got)
		})
	}
}

func TestLoadConfigFromPath_Errors(t *testing.T) {
	tests := []struct {
		name        string
		setupFunc   func(string) string
		errContains string
	}{
		{
			name: "file not found",
			setupFunc: func(tmpDir string) string {
				return filepath.Join(tmpDir, "nonexistent.json")
			},
			errContains: "failed to read config file",
		},
		{
			name: "invalid json",
			setupFunc: func(tmpDir string) string {
				path := filepath.Join(tmpDir, FileName)
				os.WriteFile(path, []byte("invalid json"), 0644)
				return path
			},
			errContains: "failed to parse config file",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			configPath := tt.setupFunc(t.TempDir())

			_, err := LoadConfigFromPath(configPath)
			assert.Error(t, err)
			assert.Contains(t, err.Error(), tt.errContains)
		})
	}
}

func TestModelFormat(t *testing.T) {
	tests := []struct {
		model string
		want  string
	}{
		{"./model.json", FormatJSON},
		{"./weather.okra.gql", FormatGraphQL},
		{"schema.GraphQL", FormatGraphQL},
		{"model", FormatJSON},
	}

	for _, tt := range tests {
		t.Run(tt.model, func(t *testing.T) {
			assert.Equal(t, tt.want, (&Config{Model: tt.model}).ModelFormat())
		})
	}
}

func TestLoadConfig(t *testing.T) {
	// Test finding codegen.json in the directory itself
	t.Run("config in current dir", func(t *testing.T) {
		tmpDir := t.TempDir()
		require.NoError(t, os.WriteFile(filepath.Join(tmpDir, FileName), []byte(`{"name": "here"}`), 0644))

		got, projectRoot, err := loadConfigFromDir(tmpDir)
		require.NoError(t, err)
		assert.Equal(t, "here", got.Name)
		assert.Equal(t, tmpDir, projectRoot)
	})

	// Test finding codegen.json in a parent directory
	t.Run("config in parent dir", func(t *testing.T) {
		tmpDir := t.TempDir()
		subDir := filepath.Join(tmpDir, "model", "nested")
		require.NoError(t, os.MkdirAll(subDir, 0755))
		require.NoError(t, os.WriteFile(filepath.Join(tmpDir, FileName), []byte(`{"name": "parent"}`), 0644))

		got, projectRoot, err := loadConfigFromDir(subDir)
		require.NoError(t, err)
		assert.Equal(t, "parent", got.Name)
		assert.Equal(t, tmpDir, projectRoot)
	})

	// Test loading from the working directory
	t.Run("config in working dir", func(t *testing.T) {
		tmpDir := t.TempDir()
		require.NoError(t, os.WriteFile(filepath.Join(tmpDir, FileName), []byte(`{"name": "cwd"}`), 0644))
		chdir(t, tmpDir)

		got, projectRoot, err := LoadConfig()
		require.NoError(t, err)
		assert.Equal(t, "cwd", got.Name)
		// Use filepath.EvalSymlinks to resolve any symlinks for comparison
		expectedRoot, _ := filepath.EvalSymlinks(tmpDir)
		actualRoot, _ := filepath.EvalSymlinks(projectRoot)
		assert.Equal(t, expectedRoot, actualRoot)
	})

	// Test no codegen.json found
	t.Run("no config found", func(t *testing.T) {
		_, _, err := loadConfigFromDir(t.TempDir())
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "no codegen.json found")
	})
}

func TestSave(t *testing.T) {
	// Test: a saved config loads back with the same values
	path := filepath.Join(t.TempDir(), FileName)
	config := Default()
	config.Name = "weather"
	config.Model = "./weather.okra.gql"
	require.NoError(t, config.Save(path))

	got, err := LoadConfigFromPath(path)
	require.NoError(t, err)
	assert.Equal(t, config, got)
}

func TestResolvePath(t *testing.T) {
	assert.Equal(t, filepath.Join("/project", "model.json"), ResolvePath("/project", "./model.json"))
	assert.Equal(t, "/abs/model.json", ResolvePath("/project", "/abs/model.json"))
}

func TestConfig_SetModel(t *testing.T) {
	// Test plan:
	// 1. Derived watch patterns follow the new model format
	// 2. Patterns written in the config file are left alone
	t.Run("derived patterns follow the model", func(t *testing.T) {
		cfg, err := Parse([]byte(`{"name": "weather"}`))
		require.NoError(t, err)
		require.Contains(t, cfg.Watch.Patterns, "*.json")

		cfg.SetModel("/tmp/api.okra.gql")
		assert.Equal(t, "/tmp/api.okra.gql", cfg.Model)
		assert.Contains(t, cfg.Watch.Patterns, "*.okra.gql")
		assert.NotContains(t, cfg.Watch.Patterns, "*.json")
	})

	t.Run("explicit patterns are kept", func(t *testing.T) {
		cfg, err := Parse([]byte(`{"watch": {"patterns": ["model/*.json"]}}`))
		require.NoError(t, err)

		cfg.SetModel("/tmp/api.okra.gql")
		assert.Equal(t, []string{"model/*.json"}, cfg.Watch.Patterns)
	})
}
