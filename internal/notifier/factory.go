package notifier

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/aleister1102/commitsentry/internal/config"
	"github.com/aleister1102/commitsentry/internal/models"
	"github.com/aleister1102/commitsentry/internal/notifier/discord"
	"github.com/rs/zerolog"
)

// Backend bundles the capabilities one notification channel provides.
type Backend struct {
	Name       string
	Sender     models.NotificationSender
	Player     models.SoundPlayer
	Permission models.PermissionProvider
}

// NewBackend builds the backend selected by cfg.Backend. console writes to out.
func NewBackend(cfg config.NotificationConfig, out io.Writer, logger zerolog.Logger) (Backend, error) {
	switch cfg.Backend {
	case config.BackendConsole:
		c := NewConsoleNotifier(out)
		return Backend{Name: cfg.Backend, Sender: c, Player: c, Permission: c}, nil

	case config.BackendDiscord:
		sender, err := discord.NewWebhookSender(cfg.DiscordWebhookURL, cfg.MentionRoleIDs,
			&http.Client{Timeout: 20 * time.Second}, logger)
		if err != nil {
			return Backend{}, err
		}
		return Backend{Name: cfg.Backend, Sender: sender, Player: SilentPlayer{}, Permission: grantedPermission{}}, nil

	case config.BackendDesktop, "":
		d := NewDesktopNotifier("commitsentry")
		return Backend{Name: config.BackendDesktop, Sender: d, Player: NewCommandSoundPlayer(cfg.SoundDir), Permission: d}, nil

	default:
		return Backend{}, fmt.Errorf("unknown notification backend %q", cfg.Backend)
	}
}

type grantedPermission struct{}

func (grantedPermission) IsPermissionGranted(context.Context) bool          { return true }
func (grantedPermission) RequestPermission(context.Context) (bool, error) { return true, nil }
