package domain

import "errors"

// Sentinel errors for domain operations
var (
	// ErrServerOffline indicates the discovery backend is unreachable
	ErrServerOffline = errors.New("discovery server is unreachable")

	// ErrNoPreview indicates no audio preview exists for a track
	ErrNoPreview = errors.New("no preview available")

	// ErrNoArtwork indicates no artwork could be resolved for a title
	ErrNoArtwork = errors.New("no artwork found")

	// ErrMissingAPIKey indicates a third-party lookup requires a key that
	// was not supplied by the remote configuration
	ErrMissingAPIKey = errors.New("api key is not configured")
)
