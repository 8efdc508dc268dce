package types

import "fmt"

// SyncDirection is the direction of a reconciliation run
type SyncDirection string

const (
	// SyncDirectionPull copies newer remote documents into the primary store
	SyncDirectionPull SyncDirection = "pull"
	// SyncDirectionPush rebuilds the remote collections from the primary store
	SyncDirectionPush SyncDirection = "push"
)

// IsValid checks if the direction is valid
func (d SyncDirection) IsValid() bool {
	switch d {
	case SyncDirectionPull, SyncDirectionPush:
		return true
	default:
		return false
	}
}

func (d SyncDirection) String() string {
	return string(d)
}

// ParseSyncDirection parses a string into a SyncDirection
func ParseSyncDirection(s string) (SyncDirection, error) {
	d := SyncDirection(s)
	if !d.IsValid() {
		return "", fmt.Errorf("invalid sync direction: %s", s)
	}
	return d, nil
}
