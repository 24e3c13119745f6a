package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func defaultConfig() *Config {
	return &Config{
		Database: DatabaseConfig{
			Driver:     "mysql",
			Host:       "localhost",
			Port:       3306,
			Database:   "trainer",
			Username:   "trainer",
			SQLitePath: "trainer.db",
		},
		Scoring: ScoringConfig{
			DiscountedAnswers: 5,
			Denominator:       15,
		},
		Progression: ProgressionConfig{
			EntryTest:         "initial",
			FallbackPriorTest: "test_2",
			FallbackBlock:     3,
			Tests: []TestRuleConfig{
				{Name: "initial", DisplayName: "Initial Test"},
				{Name: "test_1", DisplayName: "Test 1", PriorTest: "initial", RequiredBlock: 1},
				{Name: "test_2", DisplayName: "Test 2", PriorTest: "test_1", RequiredBlock: 2},
			},
			Blocks: []BlockRuleConfig{
				{Block: 2, RequiredBlocks: []int{1}, RequiredTest: "test_1"},
				{Block: 3, RequiredBlocks: []int{1, 2}, RequiredTest: "test_2"},
			},
		},
		Tracing: TracingConfig{ServiceName: "trainer"},
	}
}

func TestConfigLoader_Load(t *testing.T) {
	testsDir := t.TempDir()

	tests := []struct {
		name              string
		configContent     string
		useExplicitPath   bool
		env               map[string]string
		wantErr           bool
		want              func() *Config
		wantErrorContains []string
	}{
		{
			name:            "no config file uses defaults",
			useExplicitPath: false,
			want:            defaultConfig,
		},
		{
			name: "sqlite driver with custom scoring",
			configContent: `database:
  driver: sqlite
  sqlite_path: data/trainer.db
scoring:
  discounted_answers: 4
  denominator: 16
seed:
  tests_directory: ` + testsDir + `
`,
			useExplicitPath: true,
			want: func() *Config {
				cfg := defaultConfig()
				cfg.Database.Driver = "sqlite"
				cfg.Database.SQLitePath = "data/trainer.db"
				cfg.Scoring = ScoringConfig{DiscountedAnswers: 4, Denominator: 16}
				cfg.Seed.TestsDirectory = testsDir
				return cfg
			},
		},
		{
			name: "progression table replaces defaults",
			configContent: `progression:
  entry_test: placement
  fallback_prior_test: final
  fallback_block: 2
  tests:
    - name: placement
      display_name: Placement Test
  blocks:
    - block: 2
      required_blocks: [1]
`,
			useExplicitPath: true,
			want: func() *Config {
				cfg := defaultConfig()
				cfg.Progression = ProgressionConfig{
					EntryTest:         "placement",
					FallbackPriorTest: "final",
					FallbackBlock:     2,
					Tests:             []TestRuleConfig{{Name: "placement", DisplayName: "Placement Test"}},
					Blocks:            []BlockRuleConfig{{Block: 2, RequiredBlocks: []int{1}}},
				}
				return cfg
			},
		},
		{
			name:            "password is bound to environment",
			useExplicitPath: false,
			env:             map[string]string{"DB_PASSWORD": "secret"},
			want: func() *Config {
				cfg := defaultConfig()
				cfg.Database.Password = "secret"
				return cfg
			},
		},
		{
			name:            "tracing endpoint is bound to environment",
			useExplicitPath: false,
			env:             map[string]string{"TRAINER_OTEL_ENDPOINT": "http://localhost:4318"},
			want: func() *Config {
				cfg := defaultConfig()
				cfg.Tracing.Endpoint = "http://localhost:4318"
				return cfg
			},
		},
		{
			name: "invalid tracing endpoint",
			configContent: `tracing:
  endpoint: not a url
`,
			useExplicitPath:   true,
			wantErr:           true,
			wantErrorContains: []string{"invalid configuration", "endpoint must be a valid URL"},
		},
		{
			name: "invalid YAML format",
			configContent: `database:
  driver: mysql
  invalid yaml format here [[[
`,
			useExplicitPath: false,
			wantErr:         true,
			wantErrorContains: []string{
				"configuration file found but could not be read",
				"Please check the file format and permissions",
			},
		},
		{
			name: "unknown driver",
			configContent: `database:
  driver: postgres
`,
			useExplicitPath:   true,
			wantErr:           true,
			wantErrorContains: []string{"invalid configuration", "driver must be one of [mysql sqlite]"},
		},
		{
			name: "zero denominator",
			configContent: `scoring:
  denominator: 0
`,
			useExplicitPath:   true,
			wantErr:           true,
			wantErrorContains: []string{"invalid configuration", "denominator must be greater than 0"},
		},
		{
			name: "missing tests directory",
			configContent: `seed:
  tests_directory: /nonexistent/tests
`,
			useExplicitPath:   true,
			wantErr:           true,
			wantErrorContains: []string{"tests_directory must be an existing and readable directory"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for k, v := range tt.env {
				t.Setenv(k, v)
			}
			tempDir := t.TempDir()

			var configPath string
			if tt.useExplicitPath {
				configPath = filepath.Join(tempDir, "config.yml")
				err := os.WriteFile(configPath, []byte(tt.configContent), 0644)
				require.NoError(t, err)
			} else {
				if tt.configContent != "" {
					err := os.WriteFile(filepath.Join(tempDir, "config.yaml"), []byte(tt.configContent), 0644)
					require.NoError(t, err)
				}
				t.Chdir(tempDir)
			}

			loader, err := NewConfigLoader(configPath)
			require.NoError(t, err)
			got, err := loader.Load()

			if tt.wantErr {
				assert.Error(t, err)
				assert.Nil(t, got)
				for _, wantMsg := range tt.wantErrorContains {
					assert.Contains(t, err.Error(), wantMsg)
				}
				return
			}

			require.NoError(t, err)
			require.NotNil(t, got)
			assert.Equal(t, tt.want(), got)
		})
	}
}
