package port

import "wallet_connector/internal/walletcontext"

// WalletContext is the read-and-notify surface of the shared wallet context.
// The core never mutates the state directly; it dispatches events.
type WalletContext interface {
	Current() walletcontext.State
	Dispatch(e walletcontext.Event)
	Subscribe(fn func(walletcontext.State)) func()
}
