package refresh

// State represents the refresh loop lifecycle.
type State string

const (
	StateInitializing State = "initializing"
	StateRunning      State = "running"
	StateStopped      State = "stopped"
)
