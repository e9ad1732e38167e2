package discord

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/aleister1102/commitsentry/internal/models"
	"github.com/rs/zerolog"
)

const (
	// Username shown on webhook messages.
	Username = "commitsentry"
	// CommitEmbedColor is the accent color of commit embeds.
	CommitEmbedColor = 0x6F42C1
)

// WebhookSender posts notifications to a Discord webhook. It satisfies
// models.NotificationSender; Discord has no sound, so it is paired with a silent player.
type WebhookSender struct {
	webhookURL     string
	mentionRoleIDs []string
	httpClient     *http.Client
	now            func() time.Time
	logger         zerolog.Logger
}

// NewWebhookSender validates webhookURL and returns a sender for it.
func NewWebhookSender(webhookURL string, mentionRoleIDs []string, httpClient *http.Client, logger zerolog.Logger) (*WebhookSender, error) {
	if _, err := url.ParseRequestURI(webhookURL); err != nil {
		return nil, fmt.Errorf("invalid discord webhook url: %w", err)
	}
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 20 * time.Second}
	}
	return &WebhookSender{
		webhookURL:     webhookURL,
		mentionRoleIDs: mentionRoleIDs,
		httpClient:     httpClient,
		now:            time.Now,
		logger:         logger.With().Str("component", "DiscordWebhook").Logger(),
	}, nil
}

// SendNotification posts title and body as a single embed.
func (s *WebhookSender) SendNotification(ctx context.Context, title, body string) error {
	return s.send(ctx, s.newEmbed(title, body).WithTimestamp(s.now()).Build())
}

// SendCommitNotification posts the embed for commit, linked to the commit page
// when the remote is a known web host.
func (s *WebhookSender) SendCommitNotification(ctx context.Context, title, body string, commit models.Commit) error {
	builder := s.newEmbed(title, body).AddField("Commit", commit.ShortID(), true)
	if commit.Author != "" {
		builder.WithAuthor(commit.Author, "", "")
	}
	if link := CommitURL(commit.RemoteURL, commit.ID); link != "" {
		builder.WithURL(link)
	}
	if commit.Date > 0 {
		builder.WithTimestamp(commit.CommittedAt())
	} else {
		builder.WithTimestamp(s.now())
	}
	return s.send(ctx, builder.Build())
}

func (s *WebhookSender) newEmbed(title, body string) *DiscordEmbedBuilder {
	return NewDiscordEmbedBuilder().
		WithTitle(title).
		WithDescription(body).
		WithColor(CommitEmbedColor).
		WithFooter(Username, "")
}

func (s *WebhookSender) send(ctx context.Context, embed DiscordEmbed) error {
	payload := NewDiscordMessagePayloadBuilder().
		WithUsername(Username).
		WithContent(s.mentions()).
		AddEmbed(embed).
		Build()
	return s.post(ctx, payload)
}

// CommitURL turns a git remote (https, ssh:// or scp-like) into the web link of
// commitID. Remotes it cannot map, local paths included, yield "".
func CommitURL(remote, commitID string) string {
	remote = strings.TrimSpace(remote)
	if remote == "" || commitID == "" {
		return ""
	}

	var host, path string
	switch {
	case strings.Contains(remote, "://"):
		u, err := url.Parse(remote)
		if err != nil || u.Hostname() == "" {
			return ""
		}
		switch u.Scheme {
		case "http", "https", "ssh", "git":
		default:
			return ""
		}
		host, path = u.Hostname(), u.Path
	case strings.Contains(remote, "@") && strings.Contains(remote, ":"):
		_, rest, _ := strings.Cut(remote, "@")
		host, path, _ = strings.Cut(rest, ":")
	default:
		return ""
	}

	path = strings.TrimSuffix(strings.Trim(path, "/"), ".git")
	if host == "" || path == "" {
		return ""
	}
	return "https://" + host + "/" + path + "/commit/" + commitID
}

func (s *WebhookSender) mentions() string {
	if len(s.mentionRoleIDs) == 0 {
		return ""
	}
	parts := make([]string, 0, len(s.mentionRoleIDs))
	for _, id := range s.mentionRoleIDs {
		parts = append(parts, "<@&"+id+">")
	}
	return strings.Join(parts, " ")
}

func (s *WebhookSender) post(ctx context.Context, payload DiscordMessagePayload) error {
	data, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal discord payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.webhookURL, bytes.NewReader(data))
	if err != nil {
		return fmt.Errorf("failed to create discord request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to send discord notification: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		respBody, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return fmt.Errorf("discord notification failed with status %d: %s", resp.StatusCode, strings.TrimSpace(string(respBody)))
	}

	s.logger.Debug().Int("status_code", resp.StatusCode).Msg("Discord notification sent")
	return nil
}
