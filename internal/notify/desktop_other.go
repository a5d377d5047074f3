//go:build !linux && !darwin

package notify

func desktopNotify(title, body string, opts Options) error {
	return nil
}
