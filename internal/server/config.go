package server

import (
	"errors"
	"fmt"
	"io/fs"
	"math"
	"os"
	"strconv"
	"strings"

	"github.com/iwvelando/debt-payoff/internal/config"
	"github.com/iwvelando/debt-payoff/pkg/constants"
	"gopkg.in/yaml.v3"
)

// Config defines runtime parameters for the HTTP server.
type Config struct {
	Address       string               `yaml:"address"`
	MaxUploadSize string               `yaml:"maxUploadSize"`
	MaxMonths     int                  `yaml:"maxMonths"`
	Logging       config.LoggingConfig `yaml:"logging"`
	Storage       config.StorageConfig `yaml:"storage"`

	uploadSizeBytes int64
}

// defaultConfig serves plans from memory on the default address.
func defaultConfig() *Config {
	return &Config{
		Address:   constants.DefaultServerAddress,
		MaxMonths: constants.DefaultMaxMonths,
		Storage: config.StorageConfig{
			Backend: constants.StorageMemory,
			Path:    constants.DefaultStatePath,
			Key:     constants.DefaultStateKey,
		},
		uploadSizeBytes: constants.DefaultMaxUploadSizeBytes,
	}
}

// LoadConfig reads the server configuration at path. A missing file, or an
// empty path, yields the defaults.
func LoadConfig(path string) (*Config, error) {
	cfg := defaultConfig()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return cfg, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read server config: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse server config: %w", err)
	}
	if err := cfg.normalize(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// UploadSizeBytes returns the request body limit in bytes.
func (c *Config) UploadSizeBytes() int64 {
	return c.uploadSizeBytes
}

// SetUploadSizeBytes overrides the request body limit. Non-positive sizes
// are ignored.
func (c *Config) SetUploadSizeBytes(size int64) {
	if size <= 0 {
		return
	}
	c.uploadSizeBytes = size
	c.MaxUploadSize = strconv.FormatInt(size, 10)
}

// normalize fills fields the YAML left empty from defaultConfig and resolves
// the upload size.
func (c *Config) normalize() error {
	if c.MaxMonths < 0 {
		return fmt.Errorf("maxMonths %d must not be negative", c.MaxMonths)
	}

	defaults := defaultConfig()
	c.Address = orDefault(c.Address, defaults.Address)
	if c.MaxMonths == 0 {
		c.MaxMonths = defaults.MaxMonths
	}
	c.Storage.Backend = orDefault(strings.ToLower(strings.TrimSpace(c.Storage.Backend)), defaults.Storage.Backend)
	c.Storage.Path = orDefault(c.Storage.Path, defaults.Storage.Path)
	c.Storage.Key = orDefault(c.Storage.Key, defaults.Storage.Key)

	size, err := ParseSize(c.MaxUploadSize)
	if err != nil {
		return fmt.Errorf("maxUploadSize: %w", err)
	}
	c.uploadSizeBytes = defaults.uploadSizeBytes
	c.SetUploadSizeBytes(size)
	return nil
}

func orDefault(value, fallback string) string {
	if value == "" {
		return fallback
	}
	return value
}

// sizeUnits is checked in order, so two-letter suffixes precede "B".
var sizeUnits = []struct {
	suffix string
	bytes  int64
}{
	{"KB", 1 << 10},
	{"MB", 1 << 20},
	{"GB", 1 << 30},
	{"K", 1 << 10},
	{"M", 1 << 20},
	{"G", 1 << 30},
	{"B", 1},
}

// ParseSize converts a byte count with an optional K, M or G suffix (e.g.
// "256K", "10MB") into bytes. An empty value returns the default limit.
func ParseSize(value string) (int64, error) {
	s := strings.ToUpper(strings.TrimSpace(value))
	if s == "" {
		return constants.DefaultMaxUploadSizeBytes, nil
	}

	multiplier := int64(1)
	for _, unit := range sizeUnits {
		if strings.HasSuffix(s, unit.suffix) {
			s = strings.TrimSpace(strings.TrimSuffix(s, unit.suffix))
			multiplier = unit.bytes
			break
		}
	}

	n, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid size %q: %w", value, err)
	}
	if n < 0 {
		return 0, fmt.Errorf("size %q must not be negative", value)
	}
	if n > math.MaxInt64/multiplier {
		return 0, fmt.Errorf("size %q overflows", value)
	}
	return n * multiplier, nil
}
