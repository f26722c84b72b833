package domain

// WalletState is the stage a template reached during a sweep run.
type WalletState int

const (
	// WalletStateInvalid marks a template whose paths or descriptors could
	// not be built. It never reaches Created.
	WalletStateInvalid WalletState = iota
	WalletStateCreated
	WalletStateSynced
	WalletStateSyncFailed
	WalletStateFunded
	WalletStateEmpty
	WalletStateSigned
	WalletStateBuildFailed
	WalletStateBroadcast
	WalletStateBroadcastFailed
)

var walletStateNames = map[WalletState]string{
	WalletStateInvalid:         "invalid",
	WalletStateCreated:         "created",
	WalletStateSynced:          "synced",
	WalletStateSyncFailed:      "sync_failed",
	WalletStateFunded:          "funded",
	WalletStateEmpty:           "empty",
	WalletStateSigned:          "signed",
	WalletStateBuildFailed:     "build_failed",
	WalletStateBroadcast:       "broadcast",
	WalletStateBroadcastFailed: "broadcast_failed",
}

var walletStateTransitions = map[WalletState][]WalletState{
	WalletStateCreated: {WalletStateSynced, WalletStateSyncFailed},
	WalletStateSynced:  {WalletStateFunded, WalletStateEmpty},
	WalletStateFunded:  {WalletStateSigned, WalletStateBuildFailed},
	WalletStateSigned:  {WalletStateBroadcast, WalletStateBroadcastFailed},
}

func (s WalletState) String() string {
	if name, ok := walletStateNames[s]; ok {
		return name
	}
	return "unknown"
}

// CanTransitionTo returns whether the given state directly follows s.
func (s WalletState) CanTransitionTo(next WalletState) bool {
	for _, st := range walletStateTransitions[s] {
		if st == next {
			return true
		}
	}
	return false
}

// IsTerminal returns whether no other state can follow s.
func (s WalletState) IsTerminal() bool {
	return len(walletStateTransitions[s]) <= 0
}

// IsFailure returns whether s is a terminal failure.
func (s WalletState) IsFailure() bool {
	switch s {
	case WalletStateInvalid, WalletStateSyncFailed,
		WalletStateBuildFailed, WalletStateBroadcastFailed:
		return true
	}
	return false
}

// WalletStates returns all states in lifecycle order.
func WalletStates() []WalletState {
	states := make([]WalletState, 0, len(walletStateNames))
	for s := WalletStateInvalid; s <= WalletStateBroadcastFailed; s++ {
		states = append(states, s)
	}
	return states
}
