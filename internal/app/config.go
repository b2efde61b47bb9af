package app

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"github.com/charmbracelet/huh"
	"github.com/dsrosen/zendesk-ticket-board/internal/tickets"
	"github.com/dsrosen/zendesk-ticket-board/internal/zendesk"
	"github.com/spf13/viper"
)

const (
	configFileName = "board_config.json"
	envPrefix      = "TICKET_BOARD"
)

var (
	CfgFile string
)

type Config struct {
	Zendesk              ZdCfg          `mapstructure:"zendesk" json:"zendesk"`
	Collaborators        []Collaborator `mapstructure:"collaborators" json:"collaborators"`
	DefaultCollaborator  string         `mapstructure:"default_collaborator" json:"default_collaborator"`
	PageSize             int            `mapstructure:"page_size" json:"page_size"`
	MaxConcurrentLookups int            `mapstructure:"max_concurrent_lookups" json:"max_concurrent_lookups"`
	LookupTimeout        time.Duration  `mapstructure:"lookup_timeout" json:"lookup_timeout"`
	ListenAddr           string         `mapstructure:"listen_addr" json:"listen_addr"`
}

type ZdCfg struct {
	Creds    zendesk.Creds    `mapstructure:"api_creds" json:"api_creds"`
	FieldIds tickets.FieldIds `mapstructure:"field_ids" json:"field_ids"`
}

// Collaborator maps a person's display name to the Zendesk view holding their queue.
type Collaborator struct {
	Name   string `mapstructure:"name" json:"name"`
	ViewId string `mapstructure:"view_id" json:"view_id"`
}

// InitConfig reads the config file from dir (or CfgFile), creating a default
// one if none exists, and applies environment overrides.
func InitConfig(dir string) (*Config, error) {
	setCfgDefaults()

	if CfgFile != "" {
		viper.SetConfigFile(CfgFile)
	} else {
		viper.AddConfigPath(dir)
		viper.SetConfigType("json")
		viper.SetConfigName(strings.TrimSuffix(configFileName, filepath.Ext(configFileName)))
	}

	if err := viper.ReadInConfig(); err != nil {
		var configFileNotFoundError viper.ConfigFileNotFoundError
		if !errors.As(err, &configFileNotFoundError) {
			slog.Error("reading config file", "error", err)
			return nil, fmt.Errorf("reading config file: %w", err)
		}

		path := filepath.Join(dir, configFileName)
		slog.Info("no config file found, creating default", "path", path)
		if err := viper.WriteConfigAs(path); err != nil {
			slog.Error("creating default config file", "error", err)
			return nil, fmt.Errorf("creating default config file: %w", err)
		}
		viper.SetConfigFile(path)
	}

	// Bound after the default file is written, which must not hold env secrets.
	if err := bindEnv(); err != nil {
		return nil, err
	}

	cfg := &Config{}
	if err := viper.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("unmarshaling config: %w", err)
	}

	slog.Debug("config loaded", "file", viper.ConfigFileUsed(), "collaborators", len(cfg.Collaborators))
	return cfg, nil
}

func bindEnv() error {
	viper.SetEnvPrefix(envPrefix)
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	if err := viper.BindEnv("zendesk.api_creds.username", envPrefix+"_USERNAME"); err != nil {
		return fmt.Errorf("binding username env: %w", err)
	}
	if err := viper.BindEnv("zendesk.api_creds.password", envPrefix+"_PASSWORD"); err != nil {
		return fmt.Errorf("binding password env: %w", err)
	}
	viper.AutomaticEnv()
	return nil
}

func setCfgDefaults() {
	fields := tickets.DefaultFieldIds()
	viper.SetDefault("zendesk.api_creds.username", "")
	viper.SetDefault("zendesk.api_creds.password", "")
	viper.SetDefault("zendesk.api_creds.token", "")
	viper.SetDefault("zendesk.api_creds.subdomain", "")
	viper.SetDefault("zendesk.api_creds.base_url", "")
	viper.SetDefault("zendesk.field_ids.hours_upgrade", fields.HoursUpgrade)
	viper.SetDefault("zendesk.field_ids.hours_fix", fields.HoursFix)
	viper.SetDefault("zendesk.field_ids.hours_design", fields.HoursDesign)
	viper.SetDefault("zendesk.field_ids.final_date", fields.FinalDate)
	viper.SetDefault("collaborators", []Collaborator{})
	viper.SetDefault("default_collaborator", "")
	viper.SetDefault("page_size", zendesk.ViewPageSize)
	viper.SetDefault("max_concurrent_lookups", 10)
	viper.SetDefault("lookup_timeout", "20s")
	viper.SetDefault("listen_addr", "127.0.0.1:8080")
}

// Validate reports every missing required value at once.
func (cfg *Config) Validate() error {
	slog.Debug("validating required fields")
	var missing []string

	requiredFields := map[string]string{
		"zendesk.api_creds.username": cfg.Zendesk.Creds.Username,
	}

	if cfg.Zendesk.Creds.Token == "" {
		requiredFields["zendesk.api_creds.password"] = cfg.Zendesk.Creds.Password
	}

	if cfg.Zendesk.Creds.BaseUrl == "" {
		requiredFields["zendesk.api_creds.subdomain"] = cfg.Zendesk.Creds.Subdomain
	}

	for k, v := range requiredFields {
		if v == "" {
			slog.Warn("missing required config value", "key", k)
			missing = append(missing, k)
		}
	}

	if cfg.Zendesk.FieldIds.FinalDate == 0 {
		missing = append(missing, "zendesk.field_ids.final_date")
	}

	for i, c := range cfg.Collaborators {
		if c.ViewId == "" {
			missing = append(missing, fmt.Sprintf("collaborators[%d].view_id", i))
		}
	}

	if len(missing) > 0 {
		slices.Sort(missing)
		slog.Error("missing required config values", "missing", missing)
		return fmt.Errorf("missing required config values: %s", strings.Join(missing, ", "))
	}

	return nil
}

// CollaboratorByViewId returns the configured collaborator for a view id, or
// an unnamed one when the view is not in the config.
func (cfg *Config) CollaboratorByViewId(viewId string) Collaborator {
	for _, c := range cfg.Collaborators {
		if c.ViewId == viewId {
			return c
		}
	}
	return Collaborator{Name: viewId, ViewId: viewId}
}

func (cfg *Config) LoaderOpts() tickets.LoaderOpts {
	return tickets.LoaderOpts{
		Fields:        cfg.Zendesk.FieldIds,
		PageSize:      cfg.PageSize,
		MaxConcurrent: cfg.MaxConcurrentLookups,
		LookupTimeout: cfg.LookupTimeout,
	}
}

func (cfg *Config) RunCredsForm() error {
	if err := cfg.credsForm().Run(); err != nil {
		slog.Error("error running creds form", "error", err)
		return fmt.Errorf("running creds form: %w", err)
	}
	slog.Debug("creds form completed")

	viper.Set("zendesk.api_creds", cfg.Zendesk.Creds)
	if err := viper.WriteConfig(); err != nil {
		slog.Error("error writing config file", "error", err)
		return fmt.Errorf("writing config file: %w", err)
	}

	return nil
}

func (cfg *Config) credsForm() *huh.Form {
	return huh.NewForm(
		inputGroup("Zendesk Subdomain", &cfg.Zendesk.Creds.Subdomain, requiredInput, false),
		inputGroup("Zendesk Username", &cfg.Zendesk.Creds.Username, requiredInput, false),
		inputGroup("Zendesk Password", &cfg.Zendesk.Creds.Password, requiredInput, true),
	).WithHeight(3).WithShowHelp(false).WithTheme(huh.ThemeBase16())
}

// inputGroup creates a huh Group with an input field, this is just to make cfg.credsForm prettier.
func inputGroup(title string, value *string, validate func(string) error, secret bool) *huh.Group {
	input := huh.NewInput().
		Title(title).
		Placeholder(*value).
		Validate(validate).
		Inline(true).
		Value(value)

	if secret {
		input = input.EchoMode(huh.EchoModePassword)
	}

	return huh.NewGroup(input)
}

// Validator for required huh Input fields
func requiredInput(s string) error {
	if s == "" {
		return errors.New("field is required")
	}
	return nil
}

func makeBoardDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("getting user home directory: %w", err)
	}

	dir := filepath.Join(home, "ticket-board")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("creating board directory: %w", err)
	}

	return dir, nil
}
