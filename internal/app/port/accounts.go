package port

import (
	"context"

	"wallet_connector/internal/domain/entity"
)

// AccountDirectory lists the raw accounts recovered by the key-sync
// collaborator. The returned accounts carry identity and chain metadata
// only; enrichment fields are empty.
type AccountDirectory interface {
	ListAccounts(ctx context.Context) ([]entity.Account, error)
}

// KeySync is the narrow surface of the key-sync collaborator this layer is
// allowed to touch: authenticate the session, then list accounts. Device
// discovery and keyring cryptography live behind it.
type KeySync interface {
	Authenticate(ctx context.Context) error
	AccountDirectory
}
