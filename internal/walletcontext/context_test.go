package walletcontext

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReduce(t *testing.T) {
	initial := State{}

	selected := Reduce(initial, AccountSelected{Account: AccountRef{FreshAddress: "0xabc", CurrencyID: "ethereum"}})
	require.NotNil(t, selected.SelectedAccount)
	assert.Equal(t, "0xabc", selected.SelectedAccount.FreshAddress)
	assert.Equal(t, "ethereum", selected.SelectedAccount.CurrencyID)

	// the input state is untouched
	assert.Nil(t, initial.SelectedAccount)

	chained := Reduce(selected, ChainChanged{ChainID: 137})
	assert.Equal(t, uint64(137), chained.ChainID)
	assert.Equal(t, "0xabc", chained.SelectedAccount.FreshAddress)

	consented := Reduce(chained, ConsentUpdated{Given: true})
	assert.True(t, consented.ConsentGiven)

	// AccountChanged is a pure notification
	assert.Equal(t, consented, Reduce(consented, AccountChanged{}))
}

func TestStoreDispatchNotifiesSubscribers(t *testing.T) {
	store := NewStore(State{ChainID: 1})

	var seen []State
	unsubscribe := store.Subscribe(func(s State) {
		seen = append(seen, s)
	})

	store.Dispatch(ChainChanged{ChainID: 10})
	store.Dispatch(ConsentUpdated{Given: true})

	require.Len(t, seen, 2)
	assert.Equal(t, uint64(10), seen[0].ChainID)
	assert.True(t, seen[1].ConsentGiven)
	assert.Equal(t, uint64(10), store.Current().ChainID)

	unsubscribe()
	store.Dispatch(ChainChanged{ChainID: 42161})
	assert.Len(t, seen, 2)
	assert.Equal(t, uint64(42161), store.Current().ChainID)
}
