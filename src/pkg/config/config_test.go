package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/PedroASilva38/RUPTURAS-QRZ/src/pkg/util"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.json")
	require.NoError(t, os.WriteFile(path, []byte(body), 0644))
	return path
}

func TestInitializeConfigDefaults(t *testing.T) {
	path := writeConfig(t, `{
		"spreadsheet_id": "sheet-id",
		"read_range": "Respostas!A1:M",
		"sender_address": "comercial@empresa.com"
	}`)

	cfg := InitializeConfig(path)
	assert.Equal(t, "gmail", cfg.Provider)
	assert.Equal(t, "M", cfg.StatusColumn)
	assert.Equal(t, "Relatorios_Enviados", cfg.OutputDir)
	assert.Equal(t, util.FilenameStrict, cfg.Strategy())
	assert.Same(t, cfg, Get())
}

func TestInitializeConfigFullFile(t *testing.T) {
	path := writeConfig(t, `{
		"spreadsheet_id": "sheet-id",
		"sheet_name": "Respostas",
		"read_range": "Respostas!A1:M",
		"status_column": "N",
		"provider": "mailgun",
		"sender_address": "comercial@empresa.com",
		"test_mode": true,
		"test_address": "teste@empresa.com",
		"filename_strategy": "minimal",
		"managers": {"10 - Leste": "gerente@empresa.com"},
		"stores_rn1": [5, 6]
	}`)

	cfg := InitializeConfig(path)
	assert.Equal(t, "mailgun", cfg.Provider)
	assert.Equal(t, "N", cfg.StatusColumn)
	assert.Equal(t, util.FilenameMinimal, cfg.Strategy())
	assert.Equal(t, "gerente@empresa.com", cfg.Managers["10 - Leste"])
	assert.Equal(t, []int{5, 6}, cfg.StoresRN1)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{name: "valid", mutate: func(c *Config) {}},
		{name: "missing spreadsheet", mutate: func(c *Config) { c.SpreadsheetID = "" }, wantErr: true},
		{name: "missing range", mutate: func(c *Config) { c.ReadRange = "" }, wantErr: true},
		{name: "missing sender", mutate: func(c *Config) { c.SenderAddress = "" }, wantErr: true},
		{name: "test mode without address", mutate: func(c *Config) { c.TestMode = true; c.TestAddress = "" }, wantErr: true},
		{name: "bad strategy", mutate: func(c *Config) { c.FilenameStrategy = "fancy" }, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := &Config{
				SpreadsheetID:    "sheet-id",
				ReadRange:        "Respostas!A1:M",
				SenderAddress:    "comercial@empresa.com",
				FilenameStrategy: "strict",
			}
			tt.mutate(cfg)

			err := validate(cfg)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
