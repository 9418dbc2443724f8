package config

import (
	"fmt"
	"regexp"

	"github.com/ironlog/ironlog/internal/engine"
	"github.com/ironlog/ironlog/internal/format"
	"github.com/ironlog/ironlog/internal/record"
	"github.com/ironlog/ironlog/internal/redact"
	"github.com/ironlog/ironlog/internal/rotation"
	"github.com/ironlog/ironlog/internal/sink"
)

// BuildOptions translates a validated Config into engine.Options, resolving
// named context providers/hooks against the package registry and
// constructing sinks/rotation strategy from their config sections.
func BuildOptions(cfg *Config) (engine.Options, error) {
	opts := engine.Options{
		MinLevel:      record.ParseLevel(cfg.MinLevel),
		Enabled:       cfg.Enabled,
		BufferSize:    cfg.BufferSize,
		Directory:     cfg.Directory,
		FormatName:    format.Name(cfg.Format),
		SensitiveMode: cfg.SensitiveMode,
	}

	if d, err := ParseDuration(cfg.FlushInterval); err == nil {
		opts.FlushInterval = d
	}

	if cfg.Format == "custom" {
		opts.CustomFormatName = cfg.CustomFormat
	}

	if cfg.Rotation.Strategy != "" {
		size, err := ParseSize(cfg.Rotation.MaxFileSize)
		if err != nil {
			return engine.Options{}, err
		}
		opts.RotationMaxSize = size
		switch cfg.Rotation.Strategy {
		case "multiFile":
			opts.RotationStrategy = rotation.RingStrategy{MaxFiles: cfg.Rotation.MaxFiles}
		case "singleFile":
			opts.RotationStrategy = rotation.TrimStrategy{TrimPercent: cfg.Rotation.TrimPercent}
		}
	}

	if cfg.Encryption.KeyHex != "" {
		key, err := DecodeKey(cfg.Encryption.KeyHex)
		if err != nil {
			return engine.Options{}, err
		}
		opts.EncryptionKey = key
	}

	for _, p := range cfg.Redaction {
		re, err := regexp.Compile(p.Regex)
		if err != nil {
			return engine.Options{}, err
		}
		opts.RedactionPatterns = append(opts.RedactionPatterns, redact.Pattern{
			Name:        p.Name,
			Regex:       re,
			Replacement: p.Replacement,
		})
	}

	for _, name := range cfg.ContextProviders {
		if fn, ok := LookupContextProvider(name); ok {
			opts.ContextProviders = append(opts.ContextProviders, fn)
		}
	}

	opts.Hooks = composeHooks(cfg.Hooks)

	if cfg.Retention.MaxAge != "" {
		if d, err := ParseDuration(cfg.Retention.MaxAge); err == nil {
			opts.RetentionMaxAge = d
		}
		opts.RetentionMin = cfg.Retention.MinEntries
		if cfg.Retention.CleanupInterval != "" {
			if d, err := ParseDuration(cfg.Retention.CleanupInterval); err == nil {
				opts.RetentionInterval = d
			}
		}
	}

	for _, s := range cfg.Sinks {
		built, err := buildSink(s)
		if err != nil {
			return engine.Options{}, err
		}
		opts.Sinks = append(opts.Sinks, built)
	}

	return opts, nil
}

func buildSink(cfg SinkConfig) (sink.Sink, error) {
	var built sink.Sink
	switch cfg.Kind {
	case "gelf":
		g, err := sink.NewGELF(sink.GELFConfig{
			Host:            cfg.Host,
			Port:            cfg.Port,
			Protocol:        cfg.Protocol,
			CompressionType: cfg.CompressionType,
		})
		if err != nil {
			return nil, err
		}
		built = g
	default:
		return nil, fmt.Errorf("config: unknown sink kind %q", cfg.Kind)
	}
	if len(cfg.Categories) > 0 {
		built = sink.NewCategoryFilter(built, cfg.Categories)
	}
	return built, nil
}

// composeHooks resolves each named hooks bundle and merges them into one
// engine.Hooks that invokes every registered callback for a given event
// in registration order.
func composeHooks(names []string) engine.Hooks {
	var bundles []engine.Hooks
	for _, name := range names {
		if h, ok := LookupHooks(name); ok {
			bundles = append(bundles, h)
		}
	}
	if len(bundles) == 0 {
		return engine.Hooks{}
	}
	if len(bundles) == 1 {
		return bundles[0]
	}

	return engine.Hooks{
		OnLog: func(r record.Record) {
			for _, b := range bundles {
				if b.OnLog != nil {
					b.OnLog(r)
				}
			}
		},
		OnFlush: func(count int) {
			for _, b := range bundles {
				if b.OnFlush != nil {
					b.OnFlush(count)
				}
			}
		},
		OnRotate: func() {
			for _, b := range bundles {
				if b.OnRotate != nil {
					b.OnRotate()
				}
			}
		},
		OnError: func(err error, trace string) {
			for _, b := range bundles {
				if b.OnError != nil {
					b.OnError(err, trace)
				}
			}
		},
	}
}
