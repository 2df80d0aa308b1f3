package artwork

import (
	"context"
	"log/slog"

	"github.com/tuannho0802/Movies-Musics-Suggestion-App/internal/domain"
)

// FallbackImage is an embedded vector placeholder used when no artwork can
// be resolved. It is never written to the cache so a later call can retry.
const FallbackImage = "data:image/svg+xml;charset=UTF-8,%3Csvg xmlns='http://www.w3.org/2000/svg' width='500' height='750' viewBox='0 0 500 750'%3E%3Cdefs%3E%3ClinearGradient id='g' x1='0%25' y1='0%25' x2='100%25' y2='100%25'%3E%3Cstop offset='0%25' stop-color='%232a2a32'/%3E%3Cstop offset='100%25' stop-color='%23121214'/%3E%3C/linearGradient%3E%3C/defs%3E%3Crect width='500' height='750' fill='url(%23g)'/%3E%3Cpath fill='%236200ee' opacity='0.2' d='M250 300c-60 0-110 50-110 110s50 110 110 110 110-50 110-110-50-110-110-110zm0 180c-38 0-70-32-70-70s32-70 70-70 70 32 70 70-32 70-70 70z'/%3E%3Ctext x='50%25' y='90%25' fill='white' opacity='0.3' font-family='sans-serif' font-size='20' text-anchor='middle'%3EIMAGE UNAVAILABLE%3C/text%3E%3C/svg%3E"

// movieLookup resolves a poster URL for a movie title
type movieLookup interface {
	HasKey() bool
	PosterURL(ctx context.Context, title string) (string, error)
}

// musicLookup resolves cover artwork for a track title
type musicLookup interface {
	ArtworkURL(ctx context.Context, title string) (string, error)
}

// Resolver resolves display artwork for media items: local cache first,
// then the server-supplied URL, then a third-party lookup by kind, and
// finally the embedded placeholder.
type Resolver struct {
	store  domain.ArtworkStore
	movies movieLookup
	music  musicLookup
	logger *slog.Logger
}

// NewResolver creates an artwork resolver
func NewResolver(store domain.ArtworkStore, movies movieLookup, music musicLookup, logger *slog.Logger) *Resolver {
	if logger == nil {
		logger = slog.Default()
	}
	return &Resolver{
		store:  store,
		movies: movies,
		music:  music,
		logger: logger,
	}
}

// ResolveImage returns a display image URL for the item. Failures never
// propagate; the worst outcome is the placeholder.
func (r *Resolver) ResolveImage(ctx context.Context, item domain.MediaItem) string {
	key := CacheKey(item.Title)

	if url, ok := r.store.Get(key); ok {
		return url
	}

	// Server-supplied artwork wins over third-party lookups
	if item.ImageURL != "" {
		r.persist(key, item.ImageURL)
		return item.ImageURL
	}

	url, err := r.lookup(ctx, item)
	if err != nil {
		r.logger.Debug("artwork lookup failed", "title", item.Title, "error", err)
		return FallbackImage
	}
	if url == "" {
		return FallbackImage
	}

	r.persist(key, url)
	return url
}

// lookup queries the third-party source for the item's kind
func (r *Resolver) lookup(ctx context.Context, item domain.MediaItem) (string, error) {
	switch item.Kind {
	case domain.KindMovie:
		if !r.movies.HasKey() {
			return "", domain.ErrMissingAPIKey
		}
		return r.movies.PosterURL(ctx, item.Title)
	case domain.KindMusic:
		return r.music.ArtworkURL(ctx, item.Title)
	default:
		return "", domain.ErrNoArtwork
	}
}

func (r *Resolver) persist(key, url string) {
	if err := r.store.Put(key, url); err != nil {
		r.logger.Warn("failed to cache artwork url", "key", key, "error", err)
	}
}
