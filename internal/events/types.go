package events

import "time"

// EventType indicates what kind of change occurred
type EventType string

const (
	EventCollectionChanged EventType = "collection_changed"
)

// Op names the store operation behind a change
type Op string

const (
	OpCache  Op = "cache"  // collection adopted from the local cache
	OpFetch  Op = "fetch"  // collection replaced by a remote fetch
	OpAdd    Op = "add"    // entity appended
	OpUpdate Op = "update" // entity replaced in place
	OpDelete Op = "delete" // entity removed
	OpSync   Op = "sync"   // one project's tasks replaced
	OpState  Op = "state"  // loading flag or error changed, collection untouched
)

// Event represents a store change notification
type Event struct {
	Type      EventType
	Entity    string // cache key of the collection, e.g. "projects"
	Op        Op
	ID        string    // affected entity or project id, empty for whole-collection ops
	Version   uint64    // collection version after the change
	Timestamp time.Time // when the event was published
}

// Changed reports whether the event changed the collection contents
func (e Event) Changed() bool {
	return e.Op != OpState
}
