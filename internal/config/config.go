package config

import (
	"fmt"
	"strings"

	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
)

type Config struct {
	Database    DatabaseConfig    `mapstructure:"database"`
	Scoring     ScoringConfig     `mapstructure:"scoring"`
	Progression ProgressionConfig `mapstructure:"progression"`
	Seed        SeedConfig        `mapstructure:"seed"`
	Tracing     TracingConfig     `mapstructure:"tracing"`
}

type DatabaseConfig struct {
	Driver          string            `mapstructure:"driver" validate:"oneof=mysql sqlite"`
	Host            string            `mapstructure:"host" validate:"required_if=Driver mysql"`
	Port            int               `mapstructure:"port" validate:"required_if=Driver mysql,gte=0,lte=65535"`
	Database        string            `mapstructure:"database" validate:"required_if=Driver mysql"`
	Username        string            `mapstructure:"username"`
	Password        string            `mapstructure:"password"`
	TLS             bool              `mapstructure:"tls"`
	Params          map[string]string `mapstructure:"params"`
	MaxOpenConns    int               `mapstructure:"max_open_conns" validate:"gte=0"`
	MaxIdleConns    int               `mapstructure:"max_idle_conns" validate:"gte=0"`
	ConnMaxLifetime int               `mapstructure:"conn_max_lifetime_seconds" validate:"gte=0"`
	SQLitePath      string            `mapstructure:"sqlite_path" validate:"required_if=Driver sqlite"`
}

// ScoringConfig holds the constants of the memorization speed formula.
type ScoringConfig struct {
	DiscountedAnswers int `mapstructure:"discounted_answers" validate:"gte=0"`
	Denominator       int `mapstructure:"denominator" validate:"gt=0"`
}

// ProgressionConfig is the single rule table shared by exercise and test access checks.
type ProgressionConfig struct {
	EntryTest         string            `mapstructure:"entry_test" validate:"required"`
	FallbackPriorTest string            `mapstructure:"fallback_prior_test" validate:"required"`
	FallbackBlock     int               `mapstructure:"fallback_block" validate:"gte=1,lte=3"`
	Tests             []TestRuleConfig  `mapstructure:"tests" validate:"dive"`
	Blocks            []BlockRuleConfig `mapstructure:"blocks" validate:"dive"`
}

type TestRuleConfig struct {
	Name          string `mapstructure:"name" validate:"required"`
	DisplayName   string `mapstructure:"display_name"`
	PriorTest     string `mapstructure:"prior_test"`
	RequiredBlock int    `mapstructure:"required_block" validate:"gte=0,lte=3"`
}

type BlockRuleConfig struct {
	Block          int    `mapstructure:"block" validate:"gte=1,lte=3"`
	RequiredBlocks []int  `mapstructure:"required_blocks" validate:"dive,gte=1,lte=3"`
	RequiredTest   string `mapstructure:"required_test"`
}

type SeedConfig struct {
	TestsDirectory string `mapstructure:"tests_directory" validate:"omitempty,readable_dir"`
}

// TracingConfig enables OTLP trace export when Endpoint is set.
type TracingConfig struct {
	Endpoint    string `mapstructure:"endpoint" validate:"omitempty,url"`
	ServiceName string `mapstructure:"service_name" validate:"required"`
}

type ConfigLoader struct {
	viper      *viper.Viper
	validator  *validator.Validate
	translator ut.Translator
}

func NewConfigLoader(configFile string) (*ConfigLoader, error) {
	validate, trans, err := newValidator()
	if err != nil {
		return nil, fmt.Errorf("failed to create new validator: %w", err)
	}

	v := viper.New()
	v.SetConfigType("yaml")
	if configFile != "" {
		v.SetConfigFile(configFile)
	} else {
		v.SetConfigName("config")
		v.AddConfigPath(".")
		v.AddConfigPath("$HOME/.config/trainer")
	}

	return &ConfigLoader{
		viper:      v,
		validator:  validate,
		translator: trans,
	}, nil
}

func (loader *ConfigLoader) Load() (*Config, error) {
	v := loader.viper

	v.SetDefault("database.driver", "mysql")
	v.SetDefault("database.host", "localhost")
	v.SetDefault("database.port", 3306)
	v.SetDefault("database.database", "trainer")
	v.SetDefault("database.username", "trainer")
	v.SetDefault("database.sqlite_path", "trainer.db")
	v.SetDefault("scoring.discounted_answers", 5)
	v.SetDefault("scoring.denominator", 15)
	v.SetDefault("progression.entry_test", "initial")
	v.SetDefault("progression.fallback_prior_test", "test_2")
	v.SetDefault("progression.fallback_block", 3)
	v.SetDefault("progression.tests", []map[string]any{
		{"name": "initial", "display_name": "Initial Test"},
		{"name": "test_1", "display_name": "Test 1", "prior_test": "initial", "required_block": 1},
		{"name": "test_2", "display_name": "Test 2", "prior_test": "test_1", "required_block": 2},
	})
	v.SetDefault("progression.blocks", []map[string]any{
		{"block": 2, "required_blocks": []int{1}, "required_test": "test_1"},
		{"block": 3, "required_blocks": []int{1, 2}, "required_test": "test_2"},
	})
	v.SetDefault("seed.tests_directory", "")
	v.SetDefault("tracing.endpoint", "")
	v.SetDefault("tracing.service_name", "trainer")

	// Bind database secrets to environment variables
	if err := v.BindEnv("database.password", "DB_PASSWORD"); err != nil {
		return nil, fmt.Errorf("failed to bind DB_PASSWORD environment variable: %w", err)
	}
	if err := v.BindEnv("database.driver", "DB_DRIVER"); err != nil {
		return nil, fmt.Errorf("failed to bind DB_DRIVER environment variable: %w", err)
	}

	if err := v.BindEnv("tracing.endpoint", "TRAINER_OTEL_ENDPOINT"); err != nil {
		return nil, fmt.Errorf("failed to bind TRAINER_OTEL_ENDPOINT environment variable: %w", err)
	}

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("configuration file found but could not be read: %w. Please check the file format and permissions", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration format: %w", err)
	}

	if err := loader.validator.Struct(cfg); err != nil {
		validationErrors := err.(validator.ValidationErrors)
		var errorMsgs []string
		for _, e := range validationErrors {
			errorMsgs = append(errorMsgs, e.Translate(loader.translator))
		}
		return nil, fmt.Errorf("invalid configuration: %s", strings.Join(errorMsgs, ", "))
	}

	return &cfg, nil
}
