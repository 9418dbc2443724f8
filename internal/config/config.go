// Package config loads and validates the on-disk engine configuration.
// Grounded on the teacher's internal/config/config.go: LoadConfig,
// validateConfig, ParseSize, and ParseDuration are reused near-verbatim
// (the size/duration parsers are domain-agnostic string grammars),
// generalized from HTTP-proxy destinations/rules to the engine's own
// option set (spec.md §3's configuration table).
package config

import (
	"encoding/hex"
	"errors"
	"fmt"
	"math/big"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

// RotationConfig mirrors spec.md §3's rotation.* options.
type RotationConfig struct {
	Strategy    string  `yaml:"strategy"` // "multiFile" or "singleFile"
	MaxFileSize string  `yaml:"max_file_size"`
	MaxFiles    int     `yaml:"max_files,omitempty"`
	TrimPercent float64 `yaml:"trim_percent,omitempty"`
}

// RetentionConfig mirrors spec.md §3's retention.* options.
type RetentionConfig struct {
	MaxAge          string `yaml:"max_age,omitempty"`
	MinEntries      int    `yaml:"min_entries,omitempty"`
	CleanupInterval string `yaml:"cleanup_interval,omitempty"`
}

// EncryptionConfig mirrors spec.md §3's encryption.key option. Key is
// provided as hex so it survives YAML round-tripping unambiguously.
type EncryptionConfig struct {
	KeyHex string `yaml:"key,omitempty"`
}

// RedactionPattern mirrors one entry of spec.md §3's redactionPatterns.
type RedactionPattern struct {
	Name        string `yaml:"name" validate:"required"`
	Regex       string `yaml:"regex" validate:"required"`
	Replacement string `yaml:"replacement"`
}

// SinkConfig mirrors one entry of spec.md §3's sinks option. Kind
// selects a registered sink constructor (see internal/sink); Categories
// is an optional glob allowlist (internal/sink.CategoryFilter).
type SinkConfig struct {
	Kind            string   `yaml:"kind" validate:"required"` // e.g. "gelf"
	Name            string   `yaml:"name,omitempty"`
	Host            string   `yaml:"host,omitempty"`
	Port            int      `yaml:"port,omitempty"`
	Protocol        string   `yaml:"protocol,omitempty"`
	CompressionType string   `yaml:"compression_type,omitempty"`
	Categories      []string `yaml:"categories,omitempty"`
}

// AdminConfig mirrors spec.md §13's optional admin HTTP surface.
type AdminConfig struct {
	Enabled bool   `yaml:"enabled,omitempty"`
	Host    string `yaml:"host,omitempty"`
	Port    int    `yaml:"port,omitempty"`
}

// Config is the root engine configuration, YAML-decoded and validated.
type Config struct {
	MinLevel      string `yaml:"min_level"`
	Enabled       bool   `yaml:"enabled"`
	BufferSize    int    `yaml:"buffer_size"`
	FlushInterval string `yaml:"flush_interval"`
	Directory     string `yaml:"directory" validate:"required"`

	Format       string `yaml:"format"`
	CustomFormat string `yaml:"custom_format,omitempty"`

	Rotation   RotationConfig     `yaml:"rotation"`
	Encryption EncryptionConfig   `yaml:"encryption,omitempty"`
	Redaction  []RedactionPattern `yaml:"redaction_patterns,omitempty"`

	ContextProviders []string `yaml:"context_providers,omitempty"` // names resolved against a registry
	Hooks            []string `yaml:"hooks,omitempty"`             // names resolved against a registry

	Retention RetentionConfig `yaml:"retention,omitempty"`
	Sinks     []SinkConfig    `yaml:"sinks,omitempty"`

	SensitiveMode bool `yaml:"sensitive_mode,omitempty"`

	Admin AdminConfig `yaml:"admin,omitempty"`
}

// LoadConfig reads, parses, and validates the YAML configuration at path.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file '%s': %w", path, err)
	}

	cfg := Config{
		MinLevel:      "info",
		Enabled:       true,
		BufferSize:    1000,
		FlushInterval: "5s",
		Format:        "json",
	}

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("error parsing config file '%s': %w", path, err)
	}

	if cfg.Admin.Enabled {
		if cfg.Admin.Host == "" {
			cfg.Admin.Host = "127.0.0.1"
		}
		if cfg.Admin.Port == 0 {
			cfg.Admin.Port = 9090
		}
	}

	if err := ValidateConfig(&cfg); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return &cfg, nil
}

var validLevels = map[string]bool{
	"verbose": true, "debug": true, "info": true, "warning": true, "error": true, "fatal": true,
}

var validFormats = map[string]bool{
	"json": true, "compactJson": true, "plainText": true, "csv": true, "custom": true,
}

// validateConfig performs semantic validation beyond struct tags,
// grounded on the teacher's validateConfig.
func validateConfig(cfg *Config) error {
	if cfg.Directory == "" {
		return errors.New("directory cannot be empty")
	}
	if !validLevels[cfg.MinLevel] {
		return fmt.Errorf("invalid min_level: '%s'", cfg.MinLevel)
	}
	if cfg.BufferSize <= 0 {
		return fmt.Errorf("buffer_size must be positive: %d", cfg.BufferSize)
	}
	if _, err := ParseDuration(cfg.FlushInterval); err != nil {
		return fmt.Errorf("invalid flush_interval: %w", err)
	}
	if !validFormats[cfg.Format] {
		return fmt.Errorf("invalid format: '%s'", cfg.Format)
	}
	if cfg.Format == "custom" && cfg.CustomFormat == "" {
		return errors.New("custom_format is required when format is 'custom'")
	}

	switch cfg.Rotation.Strategy {
	case "multiFile":
		if cfg.Rotation.MaxFiles < 1 {
			return errors.New("rotation.max_files must be >= 1 for strategy 'multiFile'")
		}
	case "singleFile":
		if cfg.Rotation.TrimPercent <= 0 || cfg.Rotation.TrimPercent > 100 {
			return fmt.Errorf("rotation.trim_percent must be in (0,100]: %v", cfg.Rotation.TrimPercent)
		}
	case "":
		// Rotation is optional.
	default:
		return fmt.Errorf("invalid rotation.strategy: '%s'", cfg.Rotation.Strategy)
	}
	if cfg.Rotation.Strategy != "" {
		if _, err := ParseSize(cfg.Rotation.MaxFileSize); err != nil {
			return fmt.Errorf("invalid rotation.max_file_size: %w", err)
		}
	}

	if cfg.Encryption.KeyHex != "" {
		key, err := DecodeKey(cfg.Encryption.KeyHex)
		if err != nil {
			return fmt.Errorf("invalid encryption.key: %w", err)
		}
		if len(key) != 32 {
			return fmt.Errorf("encryption.key must decode to 32 bytes, got %d", len(key))
		}
	}

	for i, p := range cfg.Redaction {
		if p.Name == "" {
			return fmt.Errorf("redaction_patterns[%d]: name is required", i)
		}
		if p.Regex == "" {
			return fmt.Errorf("redaction_patterns[%d]: regex is required", i)
		}
	}

	if cfg.Retention.MaxAge != "" {
		if _, err := ParseDuration(cfg.Retention.MaxAge); err != nil {
			return fmt.Errorf("invalid retention.max_age: %w", err)
		}
	}
	if cfg.Retention.CleanupInterval != "" {
		if _, err := ParseDuration(cfg.Retention.CleanupInterval); err != nil {
			return fmt.Errorf("invalid retention.cleanup_interval: %w", err)
		}
	}

	sinkNames := make(map[string]bool)
	for i, s := range cfg.Sinks {
		if s.Kind == "" {
			return fmt.Errorf("sinks[%d]: kind is required", i)
		}
		name := s.Name
		if name == "" {
			name = fmt.Sprintf("sinks[%d]", i)
		}
		if sinkNames[name] {
			return fmt.Errorf("sinks: duplicate name '%s'", name)
		}
		sinkNames[name] = true

		switch s.Kind {
		case "gelf":
			if s.Host == "" {
				return fmt.Errorf("sinks[%s]: host is required for kind 'gelf'", name)
			}
			if s.Port <= 0 || s.Port > 65535 {
				return fmt.Errorf("sinks[%s]: invalid port %d for kind 'gelf'", name, s.Port)
			}
			if s.Protocol != "" && s.Protocol != "udp" && s.Protocol != "tcp" {
				return fmt.Errorf("sinks[%s]: invalid protocol '%s'", name, s.Protocol)
			}
		default:
			return fmt.Errorf("sinks[%s]: unknown kind '%s'", name, s.Kind)
		}
	}

	if cfg.Admin.Enabled && (cfg.Admin.Port <= 0 || cfg.Admin.Port > 65535) {
		return fmt.Errorf("admin.port invalid: %d", cfg.Admin.Port)
	}

	return nil
}

// ValidateConfig runs go-playground/validator struct-tag validation
// followed by validateConfig's semantic checks, exactly the two-pass
// shape of the teacher's ValidateConfig.
func ValidateConfig(cfg *Config) error {
	v := validator.New()
	if err := v.Struct(cfg); err != nil {
		var msgs []string
		for _, fe := range err.(validator.ValidationErrors) {
			msgs = append(msgs, fmt.Sprintf("field validation for '%s' failed on the '%s' tag", fe.Field(), fe.Tag()))
		}
		return errors.New(strings.Join(msgs, "; "))
	}
	return validateConfig(cfg)
}

// DecodeKey decodes a hex-encoded encryption key.
func DecodeKey(hexKey string) ([]byte, error) {
	return hex.DecodeString(hexKey)
}

// ParseDuration parses a duration string (e.g. "10m", "1h30m", "7d").
// Supports standard time.ParseDuration units plus 'd' for days.
func ParseDuration(durationStr string) (time.Duration, error) {
	durationStr = strings.TrimSpace(durationStr)
	if durationStr == "" {
		return 0, errors.New("duration string cannot be empty")
	}

	if strings.HasSuffix(strings.ToLower(durationStr), "d") {
		numStr := strings.TrimSuffix(strings.ToLower(durationStr), "d")
		days, err := strconv.ParseInt(numStr, 10, 64)
		if err != nil {
			return 0, fmt.Errorf("invalid number format for days in '%s': %w", durationStr, err)
		}
		if days < 0 {
			return 0, fmt.Errorf("duration (days) cannot be negative: %d", days)
		}
		d := time.Duration(days) * 24 * time.Hour
		if d <= 0 {
			return 0, fmt.Errorf("duration must be positive: '%s'", durationStr)
		}
		return d, nil
	}

	d, err := time.ParseDuration(durationStr)
	if err != nil {
		return 0, fmt.Errorf("invalid duration format '%s': %w", durationStr, err)
	}
	if d <= 0 {
		return 0, fmt.Errorf("duration must be positive: '%s'", durationStr)
	}
	return d, nil
}

// ParseSize parses a size string (e.g. "10MB", "5k", "1G") into bytes.
func ParseSize(sizeStr string) (int64, error) {
	sizeStr = strings.TrimSpace(strings.ToUpper(sizeStr))
	if sizeStr == "" {
		return 0, errors.New("size string cannot be empty")
	}

	var multiplier int64 = 1
	suffix := ""

	switch {
	case strings.HasSuffix(sizeStr, "KB"):
		multiplier, suffix = 1024, "KB"
	case strings.HasSuffix(sizeStr, "K"):
		multiplier, suffix = 1024, "K"
	case strings.HasSuffix(sizeStr, "MB"):
		multiplier, suffix = 1024*1024, "MB"
	case strings.HasSuffix(sizeStr, "M"):
		multiplier, suffix = 1024*1024, "M"
	case strings.HasSuffix(sizeStr, "GB"):
		multiplier, suffix = 1024*1024*1024, "GB"
	case strings.HasSuffix(sizeStr, "G"):
		multiplier, suffix = 1024*1024*1024, "G"
	}

	numStr := sizeStr
	if suffix != "" {
		numStr = strings.TrimSuffix(sizeStr, suffix)
	}
	numStr = strings.TrimSpace(numStr)

	numBig := new(big.Int)
	if _, ok := numBig.SetString(numStr, 10); !ok {
		return 0, fmt.Errorf("invalid number format in size string '%s'", sizeStr)
	}
	if numBig.Sign() < 0 {
		return 0, fmt.Errorf("size cannot be negative: %s", numBig.String())
	}
	if numBig.Sign() == 0 {
		return 0, nil
	}

	resultBig := new(big.Int).Mul(numBig, big.NewInt(multiplier))
	maxInt64 := big.NewInt(1<<63 - 1)
	if resultBig.Cmp(maxInt64) > 0 {
		return 0, fmt.Errorf("size value %s%s results in overflow", numBig.String(), suffix)
	}

	return resultBig.Int64(), nil
}
