package notifier

import (
	"context"
	"fmt"
	"io"
	"sync"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/term"
)

var (
	consoleTitleStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(lipgloss.Color("15")).
				Background(lipgloss.Color("62")).
				Padding(0, 1)

	consoleBodyStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("252")).
				PaddingLeft(1)

	consoleBoxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("62"))
)

// ConsoleNotifier prints notifications as boxes on a terminal and rings the
// terminal bell as its sound. It needs no permission.
type ConsoleNotifier struct {
	mu  sync.Mutex
	out io.Writer
}

func NewConsoleNotifier(out io.Writer) *ConsoleNotifier {
	return &ConsoleNotifier{out: out}
}

// SendNotification implements models.NotificationSender.
func (c *ConsoleNotifier) SendNotification(_ context.Context, title, body string) error {
	box := consoleBoxStyle.Render(lipgloss.JoinVertical(lipgloss.Left,
		consoleTitleStyle.Render(title),
		consoleBodyStyle.Render(body),
	))

	c.mu.Lock()
	defer c.mu.Unlock()
	_, err := fmt.Fprintln(c.out, box)
	return err
}

// PlaySound implements models.SoundPlayer by writing BEL, only when out is a terminal.
func (c *ConsoleNotifier) PlaySound(context.Context, string) error {
	f, ok := c.out.(interface{ Fd() uintptr })
	if !ok || !term.IsTerminal(f.Fd()) {
		return nil
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	_, err := io.WriteString(c.out, "\a")
	return err
}

// IsPermissionGranted implements models.PermissionProvider.
func (c *ConsoleNotifier) IsPermissionGranted(context.Context) bool { return true }

// RequestPermission implements models.PermissionProvider.
func (c *ConsoleNotifier) RequestPermission(context.Context) (bool, error) { return true, nil }
