package notifier

import (
	"fmt"
	"strings"

	"github.com/aleister1102/commitsentry/internal/models"
)

// FormatTitle returns the notification title for folder.
func FormatTitle(folder string) string {
	return fmt.Sprintf(titleTemplate, folder)
}

// FormatBody returns "{author}: {message}".
func FormatBody(commit models.Commit) string {
	return fmt.Sprintf(bodyTemplate, commit.Author, strings.TrimSpace(commit.Message))
}
