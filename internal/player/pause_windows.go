//go:build windows

package player

// Windows has no job-control signals; pausing stops the process and a later
// resume restarts playback from the beginning via the controller.

func (h *processHandle) Pause() error {
	return h.Stop()
}

func (h *processHandle) Resume() error {
	return nil
}
