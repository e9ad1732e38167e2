package discord

import (
	"time"
	"unicode/utf8"
)

// DiscordEmbedBuilder helps in constructing DiscordEmbed objects. Text that
// exceeds Discord's limits is truncated rather than rejected.
type DiscordEmbedBuilder struct {
	embed DiscordEmbed
}

// NewDiscordEmbedBuilder creates a new Discord embed builder
func NewDiscordEmbedBuilder() *DiscordEmbedBuilder {
	return &DiscordEmbedBuilder{}
}

func (deb *DiscordEmbedBuilder) WithTitle(title string) *DiscordEmbedBuilder {
	deb.embed.Title = truncate(title, maxTitleLength)
	return deb
}

func (deb *DiscordEmbedBuilder) WithDescription(description string) *DiscordEmbedBuilder {
	deb.embed.Description = truncate(description, maxDescriptionLength)
	return deb
}

func (deb *DiscordEmbedBuilder) WithURL(url string) *DiscordEmbedBuilder {
	deb.embed.URL = url
	return deb
}

func (deb *DiscordEmbedBuilder) WithTimestamp(timestamp time.Time) *DiscordEmbedBuilder {
	deb.embed.Timestamp = timestamp.Format(time.RFC3339)
	return deb
}

func (deb *DiscordEmbedBuilder) WithColor(color int) *DiscordEmbedBuilder {
	deb.embed.Color = color
	return deb
}

func (deb *DiscordEmbedBuilder) WithFooter(text, iconURL string) *DiscordEmbedBuilder {
	deb.embed.Footer = &DiscordEmbedFooter{Text: truncate(text, maxFooterLength), IconURL: iconURL}
	return deb
}

func (deb *DiscordEmbedBuilder) WithAuthor(name, url, iconURL string) *DiscordEmbedBuilder {
	deb.embed.Author = &DiscordEmbedAuthor{Name: truncate(name, maxTitleLength), URL: url, IconURL: iconURL}
	return deb
}

// AddField adds a field; empty names or values and fields past the limit are skipped.
func (deb *DiscordEmbedBuilder) AddField(name, value string, inline bool) *DiscordEmbedBuilder {
	if name == "" || value == "" || len(deb.embed.Fields) >= maxFields {
		return deb
	}
	deb.embed.Fields = append(deb.embed.Fields, DiscordEmbedField{
		Name:   truncate(name, maxFieldNameLength),
		Value:  truncate(value, maxFieldValueLength),
		Inline: inline,
	})
	return deb
}

func (deb *DiscordEmbedBuilder) Build() DiscordEmbed {
	return deb.embed
}

// truncate shortens s to at most limit runes, marking the cut with an ellipsis.
func truncate(s string, limit int) string {
	if utf8.RuneCountInString(s) <= limit {
		return s
	}
	runes := []rune(s)
	return string(runes[:limit-1]) + "…"
}
