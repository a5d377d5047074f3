//go:build darwin

package notify

import (
	"fmt"
	"os/exec"
)

// desktopNotify displays a notification through Notification Center.
func desktopNotify(title, body string, _ Options) error {
	script := fmt.Sprintf("display notification %q with title %q", body, title)
	return exec.Command("osascript", "-e", script).Run()
}
