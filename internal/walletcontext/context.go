package walletcontext

import "sync"

// AccountRef identifies a selected account. Both fields are required: a
// single address can be shared across several EVM-compatible chains with
// distinct currency ids.
type AccountRef struct {
	FreshAddress string `json:"freshAddress"`
	CurrencyID   string `json:"currencyId"`
}

// State is the shared wallet context the host mutates through events. The
// enrichment core only ever reads it.
type State struct {
	SelectedAccount *AccountRef
	ChainID         uint64
	ConsentGiven    bool
}

// Event is a discrete context change. The concrete event types below are the
// only way State moves.
type Event interface {
	isEvent()
}

// AccountSelected marks an account as the current selection.
type AccountSelected struct {
	Account AccountRef
}

// AccountChanged signals that the selected account's data was re-assembled.
// It carries no payload; subscribers re-read what they need.
type AccountChanged struct{}

// ChainChanged switches the wallet's current chain id.
type ChainChanged struct {
	ChainID uint64
}

// ConsentUpdated records the user's data-sharing consent flag.
type ConsentUpdated struct {
	Given bool
}

func (AccountSelected) isEvent() {}
func (AccountChanged) isEvent()  {}
func (ChainChanged) isEvent()    {}
func (ConsentUpdated) isEvent()  {}

// Reduce applies one event to a state and returns the next state. It is a
// pure function; the input state is never mutated.
func Reduce(s State, e Event) State {
	switch ev := e.(type) {
	case AccountSelected:
		ref := ev.Account
		s.SelectedAccount = &ref
	case ChainChanged:
		s.ChainID = ev.ChainID
	case ConsentUpdated:
		s.ConsentGiven = ev.Given
	case AccountChanged:
		// notification only, no state transition
	}
	return s
}

// Store holds the current State and fans events out to subscribers. All
// mutation goes through Dispatch.
type Store struct {
	mu          sync.Mutex
	state       State
	subscribers map[int]func(State)
	nextSubID   int
}

// NewStore creates a Store with the given initial state.
func NewStore(initial State) *Store {
	return &Store{
		state:       initial,
		subscribers: make(map[int]func(State)),
	}
}

// Current returns a snapshot of the state.
func (st *Store) Current() State {
	st.mu.Lock()
	defer st.mu.Unlock()
	return st.state
}

// Dispatch reduces the event into the state and notifies subscribers with
// the resulting snapshot.
func (st *Store) Dispatch(e Event) {
	st.mu.Lock()
	st.state = Reduce(st.state, e)
	snapshot := st.state
	subs := make([]func(State), 0, len(st.subscribers))
	for _, fn := range st.subscribers {
		subs = append(subs, fn)
	}
	st.mu.Unlock()

	for _, fn := range subs {
		fn(snapshot)
	}
}

// Subscribe registers a callback invoked after every dispatched event. The
// returned function removes the subscription.
func (st *Store) Subscribe(fn func(State)) func() {
	st.mu.Lock()
	id := st.nextSubID
	st.nextSubID++
	st.subscribers[id] = fn
	st.mu.Unlock()

	return func() {
		st.mu.Lock()
		delete(st.subscribers, id)
		st.mu.Unlock()
	}
}
