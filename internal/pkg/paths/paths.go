// Package paths provides path management for different runtime environments.
// Supports development mode and binary mode.
package paths

import (
	"os"
	"path/filepath"
	"sync"
)

var (
	basePath string
	dataPath string
	once     sync.Once
)

// IsBinaryMode returns true if running as a compiled binary (not go run).
func IsBinaryMode() bool {
	exe, err := os.Executable()
	if err != nil {
		return false
	}
	// go run creates temp binaries in /tmp or similar
	return !isInTempDir(exe)
}

func isInTempDir(path string) bool {
	tempDir := os.TempDir()
	return len(path) > len(tempDir) && path[:len(tempDir)] == tempDir
}

// GetBasePath returns the base path for the application.
// In dev mode: the working directory; in binary mode: the directory
// containing the executable.
func GetBasePath() string {
	once.Do(initPaths)
	return basePath
}

// GetDataPath returns the data directory path.
// Creates the directory if it doesn't exist.
func GetDataPath() string {
	once.Do(initPaths)
	return dataPath
}

// GetDBPath returns the full path to the SQLite database file.
func GetDBPath() string {
	// Allow override via environment variable
	if dbPath := os.Getenv("PROMPTLAB_DB"); dbPath != "" {
		return dbPath
	}
	return filepath.Join(GetDataPath(), "promptlab.db")
}

// GetLogsDir returns the directory for rotated log files.
func GetLogsDir() string {
	if dir := os.Getenv("PROMPTLAB_LOGS_DIR"); dir != "" {
		return dir
	}
	return filepath.Join(GetBasePath(), "logs")
}

func initPaths() {
	if IsBinaryMode() {
		exe, _ := os.Executable()
		basePath = filepath.Dir(exe)
	} else {
		wd, _ := os.Getwd()
		basePath = wd
	}

	// Data path: check env var first, then default to data/ under base
	if dp := os.Getenv("PROMPTLAB_DATA_DIR"); dp != "" {
		dataPath = dp
	} else {
		dataPath = filepath.Join(basePath, "data")
	}

	// Ensure data directory exists
	_ = os.MkdirAll(dataPath, 0755)
}
