package domain

// AuthState is the lifecycle state of the client identity store.
type AuthState string

const (
	AuthInitializing  AuthState = "initializing"
	AuthAuthenticated AuthState = "authenticated"
	AuthAnonymous     AuthState = "anonymous"
)
