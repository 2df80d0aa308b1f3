package player

import (
	"log/slog"
	"os/exec"
	"runtime"
)

// Opener launches URLs with the system default handler. Trailer links open
// in the browser rather than the audio player.
type Opener struct {
	logger *slog.Logger
}

// NewOpener creates a URL opener
func NewOpener(logger *slog.Logger) *Opener {
	if logger == nil {
		logger = slog.Default()
	}
	return &Opener{logger: logger}
}

// OpenURL opens the URL using the platform's default handler
func (o *Opener) OpenURL(url string) error {
	var cmd *exec.Cmd

	switch runtime.GOOS {
	case "darwin":
		cmd = exec.Command("open", url)
	case "windows":
		cmd = exec.Command("cmd", "/c", "start", "", url)
	default:
		cmd = exec.Command("xdg-open", url)
	}

	o.logger.Info("opening url with system default", "os", runtime.GOOS, "url", url)

	return cmd.Start()
}
