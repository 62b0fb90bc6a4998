package credstore

// Fixed slot names. Stable across releases: a persisted session written by
// an older build must remain readable.
const (
	// TokenKey is the slot holding the bearer credential string.
	TokenKey = "auth_token"
	// ProfileKey is the slot holding the serialized profile snapshot.
	ProfileKey = "user_data"
)

// Store is the durable two-slot persistence consumed by the session
// manager. Implementations must make every operation total: storage-layer
// errors surface as absent reads and silently dropped writes.
type Store interface {
	// Token returns the stored credential, or false when absent.
	Token() (string, bool)
	// Profile returns the stored profile snapshot, or false when absent.
	Profile() ([]byte, bool)
	// Set writes both slots together.
	Set(token string, profile []byte)
	// Clear removes both slots together. Clearing an empty store is a no-op.
	Clear()
}
