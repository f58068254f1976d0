// Package state holds the client-side stores that reconcile
// independently-fetched views of marketplace data: the project listing,
// the user's applications, and the profile. Stores are plain mutable
// structs driven from a single event loop; they never call the network
// themselves.
package state

// Status is the lifecycle of one async request family.
type Status int

const (
	StatusIdle Status = iota
	StatusLoading
	StatusSucceeded
	StatusFailed
)

func (s Status) String() string {
	switch s {
	case StatusLoading:
		return "loading"
	case StatusSucceeded:
		return "succeeded"
	case StatusFailed:
		return "failed"
	default:
		return "idle"
	}
}

// InteractionKind names one of the per-project user actions.
type InteractionKind string

const (
	InteractionLike     InteractionKind = "like"
	InteractionDislike  InteractionKind = "dislike"
	InteractionBookmark InteractionKind = "bookmark"
	InteractionApply    InteractionKind = "apply"
)

// Interaction is one confirmed user action against one project. It is
// the value the bridge watches on the application store.
type Interaction struct {
	ProjectID string
	Kind      InteractionKind
	Active    bool
}
