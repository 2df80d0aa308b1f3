package playback

import (
	"context"
	"errors"
	"log/slog"
	"sync"

	"github.com/tuannho0802/Movies-Musics-Suggestion-App/internal/domain"
)

// State is the lifecycle state of a single preview control
type State int

const (
	StateUninitialized State = iota
	StateLoading
	StatePlaying
	StatePaused
	StateUnavailable // terminal: backend has no preview for this track
	StateErrored     // terminal: preview fetch or player start failed
)

// String returns a control-label representation of the state
func (s State) String() string {
	switch s {
	case StateUninitialized, StatePaused:
		return "play"
	case StateLoading:
		return "loading"
	case StatePlaying:
		return "pause"
	case StateUnavailable:
		return "unavailable"
	case StateErrored:
		return "error"
	default:
		return "unknown"
	}
}

// Event describes a control state change for observers
type Event struct {
	WidgetID string
	State    State
}

// Observer receives control state changes. Implementations must not call
// back into the controller.
type Observer interface {
	OnPlaybackChange(Event)
}

// previewResolver resolves a preview URL for a track (consumer-defined interface)
type previewResolver interface {
	Preview(ctx context.Context, title, artist string) (string, error)
}

// widget tracks one preview control
type widget struct {
	id         string
	title      string
	artist     string
	state      State
	previewURL string // memoized after first successful fetch
	handle     domain.AudioHandle
}

// Controller enforces single-flight preview playback: at most one audio
// handle plays at a time across all registered controls.
type Controller struct {
	resolver previewResolver
	player   domain.AudioPlayer
	observer Observer
	logger   *slog.Logger

	mu      sync.Mutex
	widgets map[string]*widget
	current string // widget id holding the active handle, empty if none
}

// NewController creates a playback controller
func NewController(resolver previewResolver, player domain.AudioPlayer, observer Observer, logger *slog.Logger) *Controller {
	if logger == nil {
		logger = slog.Default()
	}
	return &Controller{
		resolver: resolver,
		player:   player,
		observer: observer,
		logger:   logger,
		widgets:  make(map[string]*widget),
	}
}

// Register binds a preview control for a track. Re-registering an existing
// id keeps its state, so re-rendering a feed does not reset controls.
func (c *Controller) Register(id, title, artist string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if _, ok := c.widgets[id]; ok {
		return
	}
	c.widgets[id] = &widget{id: id, title: title, artist: artist}
}

// StateOf returns the current state of a control
func (c *Controller) StateOf(id string) State {
	c.mu.Lock()
	defer c.mu.Unlock()
	if w, ok := c.widgets[id]; ok {
		return w.state
	}
	return StateUninitialized
}

// Toggle handles a click on a preview control. Clicks during an outstanding
// fetch and clicks on terminal-state controls are ignored.
func (c *Controller) Toggle(ctx context.Context, id string) {
	c.mu.Lock()
	w, ok := c.widgets[id]
	if !ok {
		c.mu.Unlock()
		return
	}

	switch w.state {
	case StateLoading, StateUnavailable, StateErrored:
		c.mu.Unlock()
		return

	case StatePlaying:
		h := w.handle
		c.setStateLocked(w, StatePaused)
		c.mu.Unlock()
		if h != nil {
			h.Pause()
		}
		return

	case StatePaused:
		if w.handle != nil {
			c.pauseCurrentLocked(id)
			h := w.handle
			c.current = id
			c.setStateLocked(w, StatePlaying)
			c.mu.Unlock()
			h.Resume()
			return
		}
		// Handle finished or was displaced; restart from the memoized URL
		c.startLocked(ctx, w)
		return

	case StateUninitialized:
		if w.previewURL != "" {
			c.startLocked(ctx, w)
			return
		}
		c.setStateLocked(w, StateLoading)
		title, artist := w.title, w.artist
		c.mu.Unlock()
		c.fetchAndStart(ctx, id, title, artist)
		return

	default:
		c.mu.Unlock()
	}
}

// fetchAndStart resolves the preview URL and begins playback. Called
// without the lock held.
func (c *Controller) fetchAndStart(ctx context.Context, id, title, artist string) {
	url, err := c.resolver.Preview(ctx, title, artist)

	c.mu.Lock()
	w, ok := c.widgets[id]
	if !ok {
		c.mu.Unlock()
		return
	}
	if err != nil {
		if errors.Is(err, domain.ErrNoPreview) {
			c.setStateLocked(w, StateUnavailable)
		} else {
			c.logger.Warn("preview fetch failed", "title", title, "error", err)
			c.setStateLocked(w, StateErrored)
		}
		c.mu.Unlock()
		return
	}

	w.previewURL = url
	c.startLocked(ctx, w)
}

// startLocked pauses any other active handle and starts playback of w's
// memoized URL. The lock must be held; it is released before returning.
func (c *Controller) startLocked(ctx context.Context, w *widget) {
	c.pauseCurrentLocked(w.id)

	handle, err := c.player.Play(ctx, w.previewURL)
	if err != nil {
		c.logger.Warn("player start failed", "title", w.title, "error", err)
		c.setStateLocked(w, StateErrored)
		c.mu.Unlock()
		return
	}

	w.handle = handle
	c.current = w.id
	c.setStateLocked(w, StatePlaying)
	c.mu.Unlock()

	go c.watchDone(w.id, handle)
}

// pauseCurrentLocked pauses the active handle of any widget other than
// exceptID and resets its control to the paused label. This runs before a
// new handle starts so two sources never play concurrently.
func (c *Controller) pauseCurrentLocked(exceptID string) {
	if c.current == "" || c.current == exceptID {
		return
	}
	prev, ok := c.widgets[c.current]
	c.current = ""
	if !ok || prev.handle == nil {
		return
	}
	if prev.state == StatePlaying {
		prev.handle.Pause()
		c.setStateLocked(prev, StatePaused)
	}
}

// watchDone transitions a widget back to paused when its media ends naturally
func (c *Controller) watchDone(id string, handle domain.AudioHandle) {
	<-handle.Done()

	c.mu.Lock()
	defer c.mu.Unlock()

	w, ok := c.widgets[id]
	if !ok || w.handle != handle {
		return // superseded by a newer handle
	}
	w.handle = nil
	if c.current == id {
		c.current = ""
	}
	if w.state == StatePlaying || w.state == StatePaused {
		c.setStateLocked(w, StatePaused)
	}
}

// StopAll stops any active handle, e.g. on shutdown
func (c *Controller) StopAll() {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, w := range c.widgets {
		if w.handle != nil {
			w.handle.Stop()
			w.handle = nil
			if w.state == StatePlaying {
				c.setStateLocked(w, StatePaused)
			}
		}
	}
	c.current = ""
}

// setStateLocked updates a widget state and notifies the observer
func (c *Controller) setStateLocked(w *widget, s State) {
	w.state = s
	if c.observer != nil {
		c.observer.OnPlaybackChange(Event{WidgetID: w.id, State: s})
	}
}
