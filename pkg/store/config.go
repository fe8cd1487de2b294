package store

import (
	"errors"
	"fmt"
	"os"
	"runtime"
	"strings"
	"time"

	"github.com/mitchellh/go-homedir"
	"github.com/spf13/viper"
)

// Config exposes the settings deck reads from .deck.yaml and DECK_* env.
type Config interface {
	BasePath() string
	Volume() float64
	Debounce() time.Duration
	Listen() string
	LogLevel() string
	LogFile() string
	Platform() string
}

// Defaults applied before the config file and environment are consulted.
const (
	DefaultPath     = "~/.deck"
	DefaultVolume   = 0.8
	DefaultDebounce = time.Second
	DefaultListen   = "127.0.0.1:5173"
)

// LoadConfig reads .deck.yaml from $DECK_CONFIG_PATH or the working
// directory, layered under DECK_ prefixed environment variables.
func LoadConfig() (Config, error) {
	v := viper.New()
	v.SetDefault("path", DefaultPath)
	v.SetDefault("volume", DefaultVolume)
	v.SetDefault("debounce", DefaultDebounce)
	v.SetDefault("listen", DefaultListen)
	v.SetDefault("log.level", "info")
	v.SetDefault("log.file", "")
	v.SetDefault("platform", runtime.GOOS)
	v.SetConfigName(".deck") // .yaml is implicit
	v.SetEnvPrefix("DECK")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if override := os.Getenv("DECK_CONFIG_PATH"); override != "" {
		v.AddConfigPath(override)
	}
	v.AddConfigPath("./")

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("store: read config: %w", err)
		}
	}

	path, err := homedir.Expand(v.GetString("path"))
	if err != nil {
		return nil, fmt.Errorf("store: expand path: %w", err)
	}
	logFile := v.GetString("log.file")
	if logFile != "" {
		if logFile, err = homedir.Expand(logFile); err != nil {
			return nil, fmt.Errorf("store: expand log file: %w", err)
		}
	}

	return &fileConfig{
		Path:     path,
		Vol:      clampVolume(v.GetFloat64("volume")),
		Quiet:    v.GetDuration("debounce"),
		Addr:     v.GetString("listen"),
		Level:    v.GetString("log.level"),
		File:     logFile,
		OSFamily: v.GetString("platform"),
	}, nil
}

// StaticConfig is a Config with fixed values, used by tests and embedders.
func StaticConfig(path string) Config {
	return &fileConfig{
		Path:     path,
		Vol:      DefaultVolume,
		Quiet:    DefaultDebounce,
		Addr:     DefaultListen,
		Level:    "info",
		OSFamily: runtime.GOOS,
	}
}

type fileConfig struct {
	Path     string        `json:"path"`
	Vol      float64       `json:"volume"`
	Quiet    time.Duration `json:"debounce"`
	Addr     string        `json:"listen"`
	Level    string        `json:"logLevel"`
	File     string        `json:"logFile,omitempty"`
	OSFamily string        `json:"platform"`
}

func (f *fileConfig) BasePath() string { return f.Path }

func (f *fileConfig) Volume() float64 { return f.Vol }

func (f *fileConfig) Debounce() time.Duration {
	if f.Quiet <= 0 {
		return DefaultDebounce
	}
	return f.Quiet
}

func (f *fileConfig) Listen() string { return f.Addr }

func (f *fileConfig) LogLevel() string { return f.Level }

func (f *fileConfig) LogFile() string { return f.File }

func (f *fileConfig) Platform() string { return f.OSFamily }

func clampVolume(v float64) float64 {
	switch {
	case v < 0:
		return 0
	case v > 1:
		return 1
	}
	return v
}
