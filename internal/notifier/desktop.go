package notifier

import (
	"context"
	"errors"
	"fmt"
	"os/exec"
	"runtime"
	"strconv"
)

// DesktopNotifier shows OS notifications through notify-send (Linux/BSD) or
// osascript (macOS). Permission is modelled as the helper being installed.
type DesktopNotifier struct {
	goos     string
	run      CommandRunner
	lookPath LookPathFunc
	appName  string
}

// NewDesktopNotifier creates a notifier for the running OS.
func NewDesktopNotifier(appName string) *DesktopNotifier {
	return &DesktopNotifier{
		goos:     runtime.GOOS,
		run:      execCommand,
		lookPath: exec.LookPath,
		appName:  appName,
	}
}

func (n *DesktopNotifier) helper() string {
	if n.goos == "darwin" {
		return "osascript"
	}
	return "notify-send"
}

// IsPermissionGranted implements models.PermissionProvider.
func (n *DesktopNotifier) IsPermissionGranted(context.Context) bool {
	_, err := n.lookPath(n.helper())
	return err == nil
}

// RequestPermission implements models.PermissionProvider. There is no prompt to
// show on these platforms, so the answer is whether the helper can be found.
func (n *DesktopNotifier) RequestPermission(ctx context.Context) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}
	if _, err := n.lookPath(n.helper()); err != nil {
		if errors.Is(err, exec.ErrNotFound) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

// SendNotification implements models.NotificationSender.
func (n *DesktopNotifier) SendNotification(ctx context.Context, title, body string) error {
	if n.goos == "darwin" {
		script := fmt.Sprintf("display notification %s with title %s", strconv.Quote(body), strconv.Quote(title))
		return n.run(ctx, "osascript", "-e", script)
	}
	return n.run(ctx, "notify-send", "--app-name="+n.appName, title, body)
}
