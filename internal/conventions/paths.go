package conventions

import "path/filepath"

const (
	// DefaultDataDir is the default workly data directory name (relative to home).
	DefaultDataDir = ".workly"
	// DBFile is the SQLite file with the board cache and the call journal.
	DBFile = "workly.db"
	// SessionFile is the YAML file with the session of the logged user.
	SessionFile = "session.yaml"

	// DefaultFakeAPIAddress is the listen address of the local fake API.
	DefaultFakeAPIAddress = "127.0.0.1:8080"
	// APIPathPrefix is the path prefix of the Workly REST API.
	APIPathPrefix = "/api/v1"
)

// DBPath returns the database path inside a data directory.
func DBPath(dataDir string) string {
	return filepath.Join(dataDir, DBFile)
}

// SessionPath returns the session file path inside a data directory.
func SessionPath(dataDir string) string {
	return filepath.Join(dataDir, SessionFile)
}
