package phrasebook

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// Archive moves the SQLite phrasebook into an archive directory next to
// it, with a timestamp in the name, and returns the new path. The next
// OpenSQLite starts an empty phrasebook.
func Archive(dbPath string) (string, error) {
	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		return "", fmt.Errorf("phrasebook database does not exist: %s", dbPath)
	}

	archiveDir := filepath.Join(filepath.Dir(dbPath), "archive")
	if err := os.MkdirAll(archiveDir, 0755); err != nil {
		return "", fmt.Errorf("failed to create archive directory: %w", err)
	}

	ext := filepath.Ext(dbPath)
	base := strings.TrimSuffix(filepath.Base(dbPath), ext)

	archivePath := filepath.Join(archiveDir,
		fmt.Sprintf("%s-%s%s", base, time.Now().Format("20060102-150405"), ext))

	// Archive already exists, add microseconds
	if _, err := os.Stat(archivePath); err == nil {
		archivePath = filepath.Join(archiveDir,
			fmt.Sprintf("%s-%s%s", base, time.Now().Format("20060102-150405.000000"), ext))
	}

	if err := os.Rename(dbPath, archivePath); err != nil {
		return "", fmt.Errorf("failed to archive phrasebook: %w", err)
	}
	return archivePath, nil
}
