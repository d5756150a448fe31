package config

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	tl "github.com/tuumbleweed/tintlog/logger"
	"github.com/tuumbleweed/tintlog/palette"
	"github.com/tuumbleweed/xerr"

	"github.com/PedroASilva38/RUPTURAS-QRZ/src/pkg/util"
)

/*
Config is the full runtime configuration, loaded from a JSON file.

The recipient tables and region sets drive routing; everything else is
transport and rendering policy. The loaded value is passed explicitly into
the pipeline — routing code never reads this package's state on its own.
*/
type Config struct {
	// Source sheet.
	SpreadsheetID string `json:"spreadsheet_id"`
	SheetName     string `json:"sheet_name"`
	ReadRange     string `json:"read_range"`
	StatusColumn  string `json:"status_column"`

	// Outbound mail.
	Provider         string   `json:"provider"`
	SenderAddress    string   `json:"sender_address"`
	TestMode         bool     `json:"test_mode"`
	TestAddress      string   `json:"test_address"`
	ManagementEmails []string `json:"management_emails"`

	// Rendering.
	OutputDir            string `json:"output_dir"`
	FilenameStrategy     string `json:"filename_strategy"`
	IncludeHandlerColumn bool   `json:"include_handler_column"`

	// Recipient tables.
	Managers        map[string]string `json:"managers"`
	BuyersPB        map[string]string `json:"buyers_pb"`
	BuyersRN        map[string]string `json:"buyers_rn"`
	BuyersRNBebidas map[string]string `json:"buyers_rn_bebidas"`

	// Region membership, by leading store number.
	StoresPB  []int `json:"stores_pb"`
	StoresRN1 []int `json:"stores_rn1"`
	StoresRN2 []int `json:"stores_rn2"`
}

var loaded *Config

/*
InitializeConfig reads and validates the JSON configuration file, stores it
as the package handle and returns it.

It quits on unreadable or invalid configuration: nothing in this program can
run without the recipient tables.
*/
func InitializeConfig(configPath string) *Config {
	bytesRead, readErr := os.ReadFile(configPath)
	xerr.QuitIfError(readErr, fmt.Sprintf("Unable to read config file '%s'", configPath))

	cfg := &Config{}
	unmarshalErr := json.Unmarshal(bytesRead, cfg)
	xerr.QuitIfError(unmarshalErr, fmt.Sprintf("Unable to parse config file '%s'", configPath))

	applyDefaults(cfg)

	validationErr := validate(cfg)
	xerr.QuitIfError(validationErr, fmt.Sprintf("Invalid config file '%s'", configPath))

	loaded = cfg
	tl.Log(tl.Info1, palette.Cyan, "Loaded configuration from '%s'", configPath)
	return cfg
}

// Get returns the configuration loaded by InitializeConfig, or nil.
func Get() *Config {
	return loaded
}

func applyDefaults(cfg *Config) {
	if cfg.Provider == "" {
		cfg.Provider = "gmail"
	}
	if cfg.StatusColumn == "" {
		cfg.StatusColumn = "M"
	}
	if cfg.OutputDir == "" {
		cfg.OutputDir = "Relatorios_Enviados"
	}
	if cfg.FilenameStrategy == "" {
		cfg.FilenameStrategy = string(util.FilenameStrict)
	}
}

func validate(cfg *Config) error {
	if strings.TrimSpace(cfg.SpreadsheetID) == "" {
		return fmt.Errorf("spreadsheet_id is required")
	}
	if strings.TrimSpace(cfg.ReadRange) == "" {
		return fmt.Errorf("read_range is required")
	}
	if strings.TrimSpace(cfg.SenderAddress) == "" {
		return fmt.Errorf("sender_address is required")
	}
	if cfg.TestMode && strings.TrimSpace(cfg.TestAddress) == "" {
		return fmt.Errorf("test_mode is on but test_address is empty")
	}

	strategy := util.FilenameStrategy(cfg.FilenameStrategy)
	if strategy != util.FilenameStrict && strategy != util.FilenameMinimal {
		return fmt.Errorf("filename_strategy must be %q or %q, got %q",
			util.FilenameStrict, util.FilenameMinimal, cfg.FilenameStrategy)
	}

	return nil
}

/*
Strategy returns the configured file-name sanitization strategy.
*/
func (c *Config) Strategy() util.FilenameStrategy {
	return util.FilenameStrategy(c.FilenameStrategy)
}

/*
CheckIfEnvVarsPresent logs a warning for every missing environment variable.

Provider credentials live in the environment, not in the config file, so the
entrypoints call this up front to surface misconfiguration early.
*/
func CheckIfEnvVarsPresent(names ...string) {
	for _, name := range names {
		value := os.Getenv(name)
		if strings.TrimSpace(value) == "" {
			tl.Log(tl.Warning, palette.YellowBold, "Environment variable '%s' is %s", name, "not set")
		}
	}
}
