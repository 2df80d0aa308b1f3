package artwork

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"sync"
	"time"

	bolt "go.etcd.io/bbolt"
)

var bucketArtwork = []byte("artwork")

// cacheVersion tags cache keys so stale entries from older resolution
// schemes are ignored rather than migrated.
const cacheVersion = "img_v3_"

var whitespaceRe = regexp.MustCompile(`\s+`)

// CacheKey computes the normalized, versioned cache key for a title
func CacheKey(title string) string {
	normalized := whitespaceRe.ReplaceAllString(strings.TrimSpace(title), "_")
	return cacheVersion + strings.ToLower(normalized)
}

// Store implements domain.ArtworkStore using BoltDB with an in-memory
// layer promoted on access. With an empty directory it runs memory-only.
type Store struct {
	db *bolt.DB
	mu sync.RWMutex // Protects memory cache

	cache map[string]string
}

// NewStore opens (or creates) the artwork cache under dir
func NewStore(dir string) (*Store, error) {
	if dir == "" {
		// Memory-only mode (no persistence)
		return &Store{cache: make(map[string]string)}, nil
	}

	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, err
	}

	dbPath := filepath.Join(dir, "artwork.db")
	db, err := bolt.Open(dbPath, 0600, &bolt.Options{Timeout: 1 * time.Second})
	if err != nil {
		return nil, fmt.Errorf("failed to open bolt db: %w", err)
	}

	err = db.Update(func(tx *bolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists(bucketArtwork)
		return err
	})
	if err != nil {
		db.Close()
		return nil, err
	}

	return &Store{db: db, cache: make(map[string]string)}, nil
}

func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// Get returns the cached URL for key and whether it was present
func (s *Store) Get(key string) (string, bool) {
	// Check memory cache first
	s.mu.RLock()
	if url, ok := s.cache[key]; ok {
		s.mu.RUnlock()
		return url, true
	}
	s.mu.RUnlock()

	if s.db == nil {
		return "", false
	}

	// Read from BoltDB
	var url string
	s.db.View(func(tx *bolt.Tx) error {
		b := tx.Bucket(bucketArtwork)
		if b == nil {
			return nil
		}
		if v := b.Get([]byte(key)); v != nil {
			url = string(v)
		}
		return nil
	})

	if url == "" {
		return "", false
	}

	// Promote to memory cache
	s.mu.Lock()
	s.cache[key] = url
	s.mu.Unlock()

	return url, true
}

// Put stores a resolved URL under key
func (s *Store) Put(key, url string) error {
	// Update memory cache
	s.mu.Lock()
	s.cache[key] = url
	s.mu.Unlock()

	if s.db == nil {
		return nil // Memory-only mode
	}

	return s.db.Update(func(tx *bolt.Tx) error {
		b := tx.Bucket(bucketArtwork)
		return b.Put([]byte(key), []byte(url))
	})
}
