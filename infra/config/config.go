package config

import (
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/pkg/errors"
)

const (
	defaultModel     = "gpt-4o-mini"
	defaultBaseURL   = "https://api.openai.com/v1"
	defaultAPIKeyEnv = "OPENAI_API_KEY"

	lookupTimeout   = 15 * time.Second
	sequenceTimeout = 30 * time.Second
)

// Duration - time.Duration, который читается из toml строкой ("15s")
type Duration time.Duration

func (d *Duration) UnmarshalText(text []byte) error {
	parsed, err := time.ParseDuration(strings.TrimSpace(string(text)))
	if err != nil {
		return errors.Wrapf(err, "invalid duration %q", text)
	}
	*d = Duration(parsed)
	return nil
}

func (d Duration) MarshalText() ([]byte, error) {
	return []byte(time.Duration(d).String()), nil
}

type Config struct {
	Model       ModelConfig `toml:"model"`
	Stages      Stages      `toml:"stages"`
	LogLevel    string      `toml:"log_level"`
	MetricsAddr string      `toml:"metrics_addr"`
}

type ModelConfig struct {
	Name      string `toml:"name"`
	BaseURL   string `toml:"base_url"`
	APIKeyEnv string `toml:"api_key_env"`
}

// Call - настройки одного вида обращения к модели
type Call struct {
	Temperature float64  `toml:"temperature"`
	Timeout     Duration `toml:"timeout"`
}

type Stages struct {
	Structure  Call `toml:"structure"`
	Specialize Call `toml:"specialize"`
	Types      Call `toml:"types"`
	Sequences  Call `toml:"sequences"`
	Synthesis  Call `toml:"synthesis"`
	Repair     Call `toml:"repair"`
}

// Default - структурные запросы с низкой температурой и коротким таймаутом,
// генерация последовательностей и сообщений с температурой повыше
func Default() Config {
	lookup := Call{Temperature: 0.1, Timeout: Duration(lookupTimeout)}
	generate := Call{Temperature: 0.5, Timeout: Duration(lookupTimeout)}
	return Config{
		Model: ModelConfig{
			Name:      defaultModel,
			BaseURL:   defaultBaseURL,
			APIKeyEnv: defaultAPIKeyEnv,
		},
		Stages: Stages{
			Structure:  lookup,
			Specialize: lookup,
			Types:      lookup,
			Sequences:  Call{Temperature: 0.5, Timeout: Duration(sequenceTimeout)},
			Synthesis:  generate,
			Repair:     generate,
		},
		LogLevel: "info",
	}
}

// Load - пустой путь означает конфиг по умолчанию; значения из файла
// накладываются поверх значений по умолчанию
func Load(path string) (Config, error) {
	cfg := Default()
	if strings.TrimSpace(path) == "" {
		return cfg, nil
	}
	meta, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return Config{}, errors.Wrapf(err, "failed to load config %s", path)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, key := range undecoded {
			keys[i] = key.String()
		}
		return Config{}, errors.Errorf("unknown config keys in %s: %s", path, strings.Join(keys, ", "))
	}
	if err := Validate(cfg); err != nil {
		return Config{}, errors.WithMessagef(err, "invalid config %s", path)
	}
	return cfg, nil
}

func Validate(cfg Config) error {
	if strings.TrimSpace(cfg.Model.Name) == "" {
		return errors.New("model.name is required")
	}
	if strings.TrimSpace(cfg.Model.BaseURL) == "" {
		return errors.New("model.base_url is required")
	}
	calls := []struct {
		name string
		call Call
	}{
		{"structure", cfg.Stages.Structure},
		{"specialize", cfg.Stages.Specialize},
		{"types", cfg.Stages.Types},
		{"sequences", cfg.Stages.Sequences},
		{"synthesis", cfg.Stages.Synthesis},
		{"repair", cfg.Stages.Repair},
	}
	for _, c := range calls {
		name, call := c.name, c.call
		if call.Timeout <= 0 {
			return errors.Errorf("stages.%s.timeout must be positive", name)
		}
		if call.Temperature < 0 || call.Temperature > 2 {
			return errors.Errorf("stages.%s.temperature must be within [0, 2]", name)
		}
	}
	return nil
}
