package keysync

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"wallet_connector/internal/app/port"
	"wallet_connector/internal/domain/entity"
)

const defaultAccountsFilePath = "data/accounts.json"

// accountRecord is the on-disk shape of one synced account.
type accountRecord struct {
	ID             string `json:"id"`
	CurrencyID     string `json:"currencyId"`
	FreshAddress   string `json:"freshAddress"`
	SeedIdentifier string `json:"seedIdentifier"`
	DerivationMode string `json:"derivationMode"`
	Index          int    `json:"index"`
	Name           string `json:"name"`
	Ticker         string `json:"ticker"`
}

// FileDirectory implements port.KeySync by reading the account list the
// key-sync collaborator materialized on disk. The real collaborator's
// device protocol is out of scope; only this narrow surface is consumed.
type FileDirectory struct {
	filePath string
	logger   port.Logger
}

// NewFileDirectory creates a FileDirectory over the given file path, or the
// default path when empty.
func NewFileDirectory(filePath string, logger port.Logger) port.KeySync {
	if filePath == "" {
		filePath = defaultAccountsFilePath
	}
	return &FileDirectory{filePath: filePath, logger: logger}
}

// Authenticate verifies the synced-account source is reachable. The file
// variant only checks the file exists; the device-backed implementation
// runs the keyring handshake here.
func (d *FileDirectory) Authenticate(_ context.Context) error {
	if _, err := os.Stat(d.filePath); err != nil {
		return fmt.Errorf("key-sync source %s is unavailable: %w", d.filePath, err)
	}
	return nil
}

// ListAccounts reads and validates the synced accounts.
func (d *FileDirectory) ListAccounts(_ context.Context) ([]entity.Account, error) {
	data, err := os.ReadFile(d.filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to read accounts file %s: %w", d.filePath, err)
	}

	var records []accountRecord
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("failed to unmarshal accounts file %s: %w", d.filePath, err)
	}

	accounts := make([]entity.Account, 0, len(records))
	for _, rec := range records {
		if !(strings.HasPrefix(rec.FreshAddress, "0x") && len(rec.FreshAddress) == 42) {
			d.logger.Warn("Skipping account with invalid address format",
				"file", d.filePath, "id", rec.ID, "address", rec.FreshAddress)
			continue
		}
		if rec.CurrencyID == "" {
			d.logger.Warn("Skipping account without currency id", "file", d.filePath, "id", rec.ID)
			continue
		}
		accounts = append(accounts, entity.Account{
			ID:             rec.ID,
			CurrencyID:     rec.CurrencyID,
			FreshAddress:   rec.FreshAddress,
			SeedIdentifier: rec.SeedIdentifier,
			DerivationMode: rec.DerivationMode,
			Index:          rec.Index,
			Name:           rec.Name,
			Ticker:         rec.Ticker,
			Tokens:         []entity.TokenBalance{},
		})
	}

	d.logger.Info("Accounts loaded from key-sync source", "count", len(accounts), "path", d.filePath)
	return accounts, nil
}
