package services

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/custodia-labs/mailblocks/internal/core/domain"
	"github.com/custodia-labs/mailblocks/internal/core/ports/driven"
	"github.com/custodia-labs/mailblocks/internal/core/ports/driving"
)

// Ensure SettingsService implements the interface.
var _ driving.SettingsService = (*SettingsService)(nil)

// Config keys for settings storage.
const (
	keyMaxInputBytes  = "import.max_input_bytes"
	keyOutputFormat   = "output.format"
	keyOutputIndent   = "output.indent"
	keyOutputColor    = "output.color"
	keyStorageBackend = "storage.backend"
	keyStorageDataDir = "storage.data_dir"
	keyMCPRateLimit   = "mcp.rate_limit"
)

// settingKeys lists the recognised keys in display order.
var settingKeys = []string{
	keyMaxInputBytes,
	keyOutputFormat,
	keyOutputIndent,
	keyOutputColor,
	keyStorageBackend,
	keyStorageDataDir,
	keyMCPRateLimit,
}

// SettingsService manages application settings.
type SettingsService struct {
	configStore driven.ConfigStore
}

// NewSettingsService creates a new settings service.
func NewSettingsService(configStore driven.ConfigStore) *SettingsService {
	return &SettingsService{
		configStore: configStore,
	}
}

// Get retrieves current settings. Unset or unusable values fall back to
// the defaults.
func (s *SettingsService) Get() (*domain.Settings, error) {
	defaults := domain.DefaultSettings()

	settings := &domain.Settings{
		Import: domain.ImportSettings{
			MaxInputBytes: s.getInt(keyMaxInputBytes, defaults.Import.MaxInputBytes),
		},
		Output: domain.OutputSettings{
			Format: s.getOutputFormat(defaults.Output.Format),
			Indent: s.getInt(keyOutputIndent, defaults.Output.Indent),
			Color:  s.getBool(keyOutputColor, defaults.Output.Color),
		},
		Storage: domain.StorageSettings{
			Backend: s.getStorageBackend(defaults.Storage.Backend),
			DataDir: s.configStore.GetString(keyStorageDataDir), // No default - empty means ~/.mailblocks/data
		},
		MCP: domain.MCPSettings{
			RateLimit: s.getInt(keyMCPRateLimit, defaults.MCP.RateLimit),
		},
	}

	return settings, nil
}

// Save validates and persists settings.
func (s *SettingsService) Save(settings *domain.Settings) error {
	if err := settings.Validate(); err != nil {
		return err
	}

	values := []struct {
		key   string
		value any
	}{
		{keyMaxInputBytes, settings.Import.MaxInputBytes},
		{keyOutputFormat, settings.Output.Format.String()},
		{keyOutputIndent, settings.Output.Indent},
		{keyOutputColor, settings.Output.Color},
		{keyStorageBackend, settings.Storage.Backend.String()},
		{keyStorageDataDir, settings.Storage.DataDir},
		{keyMCPRateLimit, settings.MCP.RateLimit},
	}
	for _, v := range values {
		if err := s.configStore.Set(v.key, v.value); err != nil {
			return fmt.Errorf("save %s: %w", v.key, err)
		}
	}

	return nil
}

// Set parses value for key, validates the resulting settings and saves them.
func (s *SettingsService) Set(key, value string) error {
	settings, err := s.Get()
	if err != nil {
		return err
	}

	value = strings.TrimSpace(value)
	switch key {
	case keyMaxInputBytes:
		settings.Import.MaxInputBytes, err = parseInt(key, value)
	case keyOutputFormat:
		settings.Output.Format = domain.OutputFormat(strings.ToLower(value))
	case keyOutputIndent:
		settings.Output.Indent, err = parseInt(key, value)
	case keyOutputColor:
		settings.Output.Color, err = parseBool(key, value)
	case keyStorageBackend:
		settings.Storage.Backend = domain.StorageBackend(strings.ToLower(value))
	case keyStorageDataDir:
		settings.Storage.DataDir = value
	case keyMCPRateLimit:
		settings.MCP.RateLimit, err = parseInt(key, value)
	default:
		return fmt.Errorf("%w: unknown setting %q", domain.ErrInvalidInput, key)
	}
	if err != nil {
		return err
	}

	return s.Save(settings)
}

// Keys returns the recognised setting keys in display order.
func (s *SettingsService) Keys() []string {
	keys := make([]string, len(settingKeys))
	copy(keys, settingKeys)
	return keys
}

// Validate checks the stored configuration, including values that Get
// would silently replace with defaults.
func (s *SettingsService) Validate() error {
	if val := s.configStore.GetString(keyOutputFormat); val != "" && !domain.OutputFormat(val).IsValid() {
		return fmt.Errorf("%w: unknown output format %q", domain.ErrInvalidInput, val)
	}
	if val := s.configStore.GetString(keyStorageBackend); val != "" && !domain.StorageBackend(val).IsValid() {
		return fmt.Errorf("%w: unknown storage backend %q", domain.ErrInvalidInput, val)
	}

	settings, err := s.Get()
	if err != nil {
		return err
	}
	return settings.Validate()
}

// GetDefaults returns the default settings.
func (s *SettingsService) GetDefaults() domain.Settings {
	return domain.DefaultSettings()
}

// getInt returns the stored integer, or defaultVal when the key is unset.
// Zero is a meaningful value for several keys.
func (s *SettingsService) getInt(key string, defaultVal int) int {
	if _, exists := s.configStore.Get(key); !exists {
		return defaultVal
	}
	return s.configStore.GetInt(key)
}

func (s *SettingsService) getBool(key string, defaultVal bool) bool {
	if _, exists := s.configStore.Get(key); !exists {
		return defaultVal
	}
	return s.configStore.GetBool(key)
}

func (s *SettingsService) getOutputFormat(defaultVal domain.OutputFormat) domain.OutputFormat {
	format := domain.OutputFormat(s.configStore.GetString(keyOutputFormat))
	if !format.IsValid() {
		return defaultVal
	}
	return format
}

func (s *SettingsService) getStorageBackend(defaultVal domain.StorageBackend) domain.StorageBackend {
	backend := domain.StorageBackend(s.configStore.GetString(keyStorageBackend))
	if !backend.IsValid() {
		return defaultVal
	}
	return backend
}

func parseInt(key, value string) (int, error) {
	n, err := strconv.Atoi(value)
	if err != nil {
		return 0, fmt.Errorf("%w: %s must be an integer, got %q", domain.ErrInvalidInput, key, value)
	}
	return n, nil
}

func parseBool(key, value string) (bool, error) {
	b, err := strconv.ParseBool(value)
	if err != nil {
		return false, fmt.Errorf("%w: %s must be true or false, got %q", domain.ErrInvalidInput, key, value)
	}
	return b, nil
}
