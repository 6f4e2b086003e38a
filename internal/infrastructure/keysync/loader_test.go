package keysync

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type silentLogger struct{}

func (silentLogger) Info(string, ...any)  {}
func (silentLogger) Debug(string, ...any) {}
func (silentLogger) Warn(string, ...any)  {}
func (silentLogger) Error(string, ...any) {}

func writeAccountsFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "accounts.json")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestFileDirectory_ListAccounts(t *testing.T) {
	path := writeAccountsFile(t, `[
		{
			"id": "acc-1",
			"currencyId": "ethereum",
			"freshAddress": "0x742d35Cc6634C0532925a3b844Bc454e4438f44e",
			"seedIdentifier": "seed-1",
			"derivationMode": "",
			"index": 0,
			"name": "Main",
			"ticker": "ETH"
		}
	]`)
	directory := NewFileDirectory(path, silentLogger{})

	require.NoError(t, directory.Authenticate(context.Background()))

	accounts, err := directory.ListAccounts(context.Background())
	require.NoError(t, err)
	require.Len(t, accounts, 1)
	assert.Equal(t, "acc-1", accounts[0].ID)
	assert.Equal(t, "ethereum", accounts[0].CurrencyID)
	assert.NotNil(t, accounts[0].Tokens)
	assert.False(t, accounts[0].Hydrated())
}

func TestFileDirectory_SkipsInvalidRecords(t *testing.T) {
	path := writeAccountsFile(t, `[
		{"id": "bad-address", "currencyId": "ethereum", "freshAddress": "not-an-address"},
		{"id": "no-currency", "freshAddress": "0x742d35Cc6634C0532925a3b844Bc454e4438f44e"},
		{"id": "good", "currencyId": "polygon", "freshAddress": "0x1111111111111111111111111111111111111111", "ticker": "POL"}
	]`)
	directory := NewFileDirectory(path, silentLogger{})

	accounts, err := directory.ListAccounts(context.Background())
	require.NoError(t, err)
	require.Len(t, accounts, 1)
	assert.Equal(t, "good", accounts[0].ID)
}

func TestFileDirectory_MissingFile(t *testing.T) {
	directory := NewFileDirectory(filepath.Join(t.TempDir(), "absent.json"), silentLogger{})

	assert.Error(t, directory.Authenticate(context.Background()))

	_, err := directory.ListAccounts(context.Background())
	assert.Error(t, err)
}

func TestFileDirectory_MalformedJSON(t *testing.T) {
	path := writeAccountsFile(t, `{not json`)
	directory := NewFileDirectory(path, silentLogger{})

	_, err := directory.ListAccounts(context.Background())
	assert.Error(t, err)
}
