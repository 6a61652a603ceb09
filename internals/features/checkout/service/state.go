package service

// State = posisi alur registrasi di sisi browser.
type State int

const (
	StateIdle State = iota
	StateDraftSaved
	StateAwaitingExternalPayment
	StateReconciling
	StateFinalizing
	StateConfirmed
	StateFinalizationFailed
	StateReconciliationFailed
)

var stateNames = map[State]string{
	StateIdle:                    "idle",
	StateDraftSaved:              "draft_saved",
	StateAwaitingExternalPayment: "awaiting_external_payment",
	StateReconciling:             "reconciling",
	StateFinalizing:              "finalizing",
	StateConfirmed:               "confirmed",
	StateFinalizationFailed:      "finalization_failed",
	StateReconciliationFailed:    "reconciliation_failed",
}

func (s State) String() string {
	if n, ok := stateNames[s]; ok {
		return n
	}
	return "unknown"
}

func (s State) Terminal() bool {
	return s == StateConfirmed || s == StateFinalizationFailed || s == StateReconciliationFailed
}
