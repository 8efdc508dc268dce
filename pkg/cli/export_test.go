package cli

import "io"

// SetSyncOutput redirects sync command output and returns a restore function
func SetSyncOutput(w io.Writer) func() {
	prev := syncOutput
	syncOutput = w
	return func() { syncOutput = prev }
}
