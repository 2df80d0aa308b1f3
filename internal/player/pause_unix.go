//go:build unix

package player

import "syscall"

// Pause suspends the player process
func (h *processHandle) Pause() error {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.stopped || h.cmd.Process == nil {
		return nil
	}
	return h.cmd.Process.Signal(syscall.SIGSTOP)
}

// Resume continues a suspended player process
func (h *processHandle) Resume() error {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.stopped || h.cmd.Process == nil {
		return nil
	}
	return h.cmd.Process.Signal(syscall.SIGCONT)
}
