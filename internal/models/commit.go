package models

import "time"

// Commit is a version-control commit as returned by a CommitSource.
// Values are treated as immutable once retrieved.
type Commit struct {
	ID        string `json:"id"`
	Message   string `json:"message"`
	Author    string `json:"author"`
	Date      int64  `json:"date"` // unix seconds
	RemoteURL string `json:"remote_url,omitempty"`
}

// CommittedAt returns the commit date as a time.Time.
func (c Commit) CommittedAt() time.Time {
	return time.Unix(c.Date, 0)
}

// ShortID returns the abbreviated commit hash used in log lines and titles.
func (c Commit) ShortID() string {
	if len(c.ID) <= 7 {
		return c.ID
	}
	return c.ID[:7]
}

// ChangeStatus classifies how a file was touched by a commit.
type ChangeStatus string

const (
	ChangeStatusAdded    ChangeStatus = "Added"
	ChangeStatusDeleted  ChangeStatus = "Deleted"
	ChangeStatusModified ChangeStatus = "Modified"
	ChangeStatusOther    ChangeStatus = "Other"
)

// ChangeEntry is one file touched by a commit, as reported for a (commit, folder) lookup.
type ChangeEntry struct {
	File   string       `json:"file"`
	Status ChangeStatus `json:"status"`
}

// ParseChangeStatus maps a git name-status letter (A, D, M, R100, ...) to a ChangeStatus.
func ParseChangeStatus(code string) ChangeStatus {
	if code == "" {
		return ChangeStatusOther
	}
	switch code[0] {
	case 'A':
		return ChangeStatusAdded
	case 'D':
		return ChangeStatusDeleted
	case 'M':
		return ChangeStatusModified
	default:
		return ChangeStatusOther
	}
}
