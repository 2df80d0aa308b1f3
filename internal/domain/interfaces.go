package domain

import "context"

// ArtworkStore is the persistent key-value cache for resolved artwork URLs.
// Entries are authoritative once written and are never revalidated.
type ArtworkStore interface {
	// Get returns the cached URL for key and whether it was present
	Get(key string) (string, bool)

	// Put stores a resolved URL under key
	Put(key, url string) error

	Close() error
}

// AudioHandle controls a single started preview. Done is closed when the
// media finishes on its own.
type AudioHandle interface {
	Pause() error
	Resume() error
	Stop() error
	Done() <-chan struct{}
}

// AudioPlayer starts playback of a preview URL and hands back a handle.
type AudioPlayer interface {
	Play(ctx context.Context, url string) (AudioHandle, error)
}
