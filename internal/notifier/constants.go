package notifier

import "time"

// DefaultSoundThrottle is the minimum gap between two played sounds.
const DefaultSoundThrottle = 2 * time.Second

// Payload templates of a commit notification.
const (
	titleTemplate = "New Commit in %s"
	bodyTemplate  = "%s: %s"
)
