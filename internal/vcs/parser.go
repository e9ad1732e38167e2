package vcs

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/aleister1102/commitsentry/internal/models"
)

const (
	fieldSep  = "\x1f"
	recordSep = "\x1e"
)

// logFormat is the --format used by listCommits; parseLog reads it back.
const logFormat = "--format=%H%x1f%an%x1f%ct%x1f%s%x1e"

// parseLog turns `git log` output produced with logFormat into commits.
func parseLog(output, remoteURL string) ([]models.Commit, error) {
	var commits []models.Commit
	for _, record := range strings.Split(output, recordSep) {
		record = strings.TrimSpace(record)
		if record == "" {
			continue
		}

		fields := strings.SplitN(record, fieldSep, 4)
		if len(fields) != 4 {
			return nil, fmt.Errorf("malformed log record %q", record)
		}
		date, err := strconv.ParseInt(fields[2], 10, 64)
		if err != nil {
			return nil, fmt.Errorf("malformed commit date %q: %w", fields[2], err)
		}

		commits = append(commits, models.Commit{
			ID:        fields[0],
			Author:    fields[1],
			Date:      date,
			Message:   fields[3],
			RemoteURL: remoteURL,
		})
	}
	return commits, nil
}

// parseNameStatus reads `git show --name-status --format=` output.
// Renames and copies report the destination path.
func parseNameStatus(output string) []models.ChangeEntry {
	var entries []models.ChangeEntry
	for _, line := range strings.Split(output, "\n") {
		line = strings.TrimRight(line, "\r")
		if line == "" {
			continue
		}

		parts := strings.Split(line, "\t")
		if len(parts) < 2 {
			continue
		}
		entries = append(entries, models.ChangeEntry{
			File:   parts[len(parts)-1],
			Status: models.ParseChangeStatus(parts[0]),
		})
	}
	return entries
}
