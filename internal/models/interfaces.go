package models

import "context"

// CommitSource lists commits and their per-folder changes. What "new" means is owned
// by the implementation (e.g. commits since a recorded baseline).
type CommitSource interface {
	ListNewCommits(ctx context.Context, repoPath, remote, branch string) ([]Commit, error)
	GetCommitFolderChanges(ctx context.Context, folderPath, commitID string) ([]ChangeEntry, error)
}

// PermissionProvider models the OS notification permission.
type PermissionProvider interface {
	IsPermissionGranted(ctx context.Context) bool
	RequestPermission(ctx context.Context) (bool, error)
}

// NotificationSender delivers a visual notification.
type NotificationSender interface {
	SendNotification(ctx context.Context, title, body string) error
}

// CommitNotificationSender is a NotificationSender that can also render the
// commit behind a notification. The dispatcher prefers it when available.
type CommitNotificationSender interface {
	NotificationSender
	SendCommitNotification(ctx context.Context, title, body string, commit Commit) error
}

// SoundPlayer plays a sound by identifier.
type SoundPlayer interface {
	PlaySound(ctx context.Context, soundID string) error
}

// KeyValueStore is durable string storage.
type KeyValueStore interface {
	Get(ctx context.Context, key string) (string, bool, error)
	Set(ctx context.Context, key, value string) error
}
