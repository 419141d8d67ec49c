package domain

// SearchState represents the orchestrator's current phase
type SearchState string

const (
	StateIdle       SearchState = "idle"
	StateDebouncing SearchState = "debouncing"
	StateFetching   SearchState = "fetching"
	StateRendering  SearchState = "rendering"
	StateError      SearchState = "error"
)

// Trigger identifies what started a search
type Trigger string

const (
	TriggerTyped   Trigger = "typed"
	TriggerClick   Trigger = "click"
	TriggerHistory Trigger = "history"
	TriggerToggle  Trigger = "toggle"
)

// RecordsHistory reports whether searches started by t are pushed to history.
// Replays (prev/next, mode toggle) are not.
func (t Trigger) RecordsHistory() bool {
	return t == TriggerTyped || t == TriggerClick
}

// NavState holds prev/next availability for the presentation layer
type NavState struct {
	CanGoBack    bool
	CanGoForward bool
	Clickable    bool
}
