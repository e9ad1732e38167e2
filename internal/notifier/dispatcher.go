package notifier

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/aleister1102/commitsentry/internal/common/errorwrapper"
	"github.com/aleister1102/commitsentry/internal/models"
	"github.com/rs/zerolog"
)

// DispatcherOptions wires a Dispatcher to its backends.
type DispatcherOptions struct {
	Sender        models.NotificationSender
	Player        models.SoundPlayer
	Permission    models.PermissionProvider
	SoundThrottle time.Duration
	SoundEnabled  bool
	SelectedSound string
	Now           func() time.Time
	Logger        zerolog.Logger
}

// Dispatcher turns a relevant commit into a visual notification plus an
// optional sound. Visual notifications are never throttled; sounds share a
// single last-played timestamp.
type Dispatcher struct {
	sender     models.NotificationSender
	player     models.SoundPlayer
	permission models.PermissionProvider
	throttle   time.Duration
	now        func() time.Time
	logger     zerolog.Logger

	mu            sync.Mutex
	lastPlayed    time.Time
	soundEnabled  bool
	selectedSound string
}

func NewDispatcher(opts DispatcherOptions) *Dispatcher {
	if opts.Now == nil {
		opts.Now = time.Now
	}
	if opts.SoundThrottle < 0 {
		opts.SoundThrottle = 0
	}
	if opts.SelectedSound == "" {
		opts.SelectedSound = models.DefaultSound
	}
	return &Dispatcher{
		sender:        opts.Sender,
		player:        opts.Player,
		permission:    opts.Permission,
		throttle:      opts.SoundThrottle,
		now:           opts.Now,
		logger:        opts.Logger.With().Str("component", "Dispatcher").Logger(),
		soundEnabled:  opts.SoundEnabled,
		selectedSound: opts.SelectedSound,
	}
}

// EnsurePermission checks the notification permission and asks for it when
// missing. A refusal or a failed request yields ErrPermissionDenied.
func (d *Dispatcher) EnsurePermission(ctx context.Context) error {
	if d.permission == nil || d.permission.IsPermissionGranted(ctx) {
		return nil
	}

	granted, err := d.permission.RequestPermission(ctx)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}
		return fmt.Errorf("%w: %v", errorwrapper.ErrPermissionDenied, err)
	}
	if !granted {
		return errorwrapper.ErrPermissionDenied
	}
	return nil
}

// ApplySoundSettings updates the sound toggle and identifier used by later notifications.
func (d *Dispatcher) ApplySoundSettings(enabled bool, soundID string) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.soundEnabled = enabled
	if soundID != "" {
		d.selectedSound = soundID
	}
}

// Notify sends the notification for commit in folder. A failed send is returned;
// a failed sound is only logged.
func (d *Dispatcher) Notify(ctx context.Context, folder string, commit models.Commit) error {
	title := FormatTitle(folder)
	body := FormatBody(commit)

	if err := d.send(ctx, title, body, commit); err != nil {
		return errorwrapper.WrapError(err, fmt.Sprintf("failed to notify commit %s", commit.ShortID()))
	}
	d.logger.Info().
		Str("commit", commit.ShortID()).
		Str("folder", folder).
		Msg("Notification sent")

	if soundID, ok := d.claimSound(); ok {
		if err := d.player.PlaySound(ctx, soundID); err != nil {
			d.logger.Warn().Err(err).Str("sound", soundID).Msg("Failed to play notification sound")
		}
	}
	return nil
}

func (d *Dispatcher) send(ctx context.Context, title, body string, commit models.Commit) error {
	if rich, ok := d.sender.(models.CommitNotificationSender); ok {
		return rich.SendCommitNotification(ctx, title, body, commit)
	}
	return d.sender.SendNotification(ctx, title, body)
}

// claimSound reserves the sound slot when sound is enabled and the throttle
// window has passed. The timestamp is taken before playback starts.
func (d *Dispatcher) claimSound() (string, bool) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if !d.soundEnabled || d.player == nil {
		return "", false
	}
	now := d.now()
	if !d.lastPlayed.IsZero() && now.Sub(d.lastPlayed) < d.throttle {
		return "", false
	}
	d.lastPlayed = now
	return d.selectedSound, true
}
