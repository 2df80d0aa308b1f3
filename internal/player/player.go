package player

import (
	"context"
	"fmt"
	"log/slog"
	"os/exec"
	"sync"

	"github.com/tuannho0802/Movies-Musics-Suggestion-App/internal/domain"
)

// audioPlayerConfig defines how to invoke a player for headless audio output
type audioPlayerConfig struct {
	args []string // Flags that suppress video/UI and exit at end of media
}

// players registry - single source of truth for supported audio players
var players = map[string]audioPlayerConfig{
	"mpv":    {args: []string{"--no-video", "--really-quiet"}},
	"ffplay": {args: []string{"-nodisp", "-autoexit", "-loglevel", "quiet"}},
	"vlc":    {args: []string{"--intf", "dummy", "--play-and-exit"}},
}

// candidatePlayers defines the preferred player order when none is configured
var candidatePlayers = []string{"mpv", "ffplay", "vlc"}

// Player spawns an external audio player process per preview. It implements
// domain.AudioPlayer.
type Player struct {
	command string   // configured player command, empty for auto-detect
	args    []string // additional arguments for the player
	logger  *slog.Logger
}

// New creates a Player using the configured command or auto-detection
func New(command string, args []string, logger *slog.Logger) *Player {
	if logger == nil {
		logger = slog.Default()
	}
	return &Player{
		command: command,
		args:    args,
		logger:  logger,
	}
}

// Play starts playback of url and returns a handle controlling the process
func (p *Player) Play(ctx context.Context, url string) (domain.AudioHandle, error) {
	command, baseArgs, err := p.resolveCommand()
	if err != nil {
		return nil, err
	}

	args := append(append([]string{}, baseArgs...), p.args...)
	args = append(args, url)

	cmd := exec.Command(command, args...)
	if err := cmd.Start(); err != nil {
		return nil, fmt.Errorf("failed to start player: %w", err)
	}

	p.logger.Info("started preview playback", "player", command, "url", url)

	h := &processHandle{
		cmd:  cmd,
		done: make(chan struct{}),
	}
	go func() {
		cmd.Wait()
		close(h.done)
	}()

	return h, nil
}

// resolveCommand picks the configured player or the first available candidate
func (p *Player) resolveCommand() (string, []string, error) {
	if p.command != "" {
		if cfg, ok := players[p.command]; ok {
			return p.command, cfg.args, nil
		}
		// Unknown player: trust the user's args
		return p.command, nil, nil
	}

	for _, name := range candidatePlayers {
		if _, err := exec.LookPath(name); err == nil {
			return name, players[name].args, nil
		}
	}

	return "", nil, fmt.Errorf("no audio player found (tried %v)", candidatePlayers)
}

// processHandle controls a running player process
type processHandle struct {
	cmd  *exec.Cmd
	done chan struct{}

	mu      sync.Mutex
	stopped bool
}

func (h *processHandle) Done() <-chan struct{} {
	return h.done
}

func (h *processHandle) Stop() error {
	h.mu.Lock()
	if h.stopped {
		h.mu.Unlock()
		return nil
	}
	h.stopped = true
	h.mu.Unlock()

	if h.cmd.Process == nil {
		return nil
	}
	return h.cmd.Process.Kill()
}
