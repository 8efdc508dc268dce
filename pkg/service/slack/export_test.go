package slack

// Export internal functions for testing
var (
	// TruncateToMaxBytes is exported for testing UTF-8 truncation
	TruncateToMaxBytes = truncateToMaxBytes

	// BuildSyncFailureMessage is exported for testing message layout
	BuildSyncFailureMessage = buildSyncFailureMessage
)
