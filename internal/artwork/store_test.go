package artwork

import "testing"

func TestCacheKey(t *testing.T) {
	tests := []struct {
		name  string
		title string
		want  string
	}{
		{"simple", "Inception", "img_v3_inception"},
		{"spaces collapse", "The  Dark   Knight", "img_v3_the_dark_knight"},
		{"mixed case", "BoHemian Rhapsody", "img_v3_bohemian_rhapsody"},
		{"surrounding whitespace", "  Heat \t", "img_v3_heat"},
		{"tabs and newlines", "Mr.\tRobot\nPilot", "img_v3_mr._robot_pilot"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := CacheKey(tt.title); got != tt.want {
				t.Errorf("CacheKey(%q) = %q, want %q", tt.title, got, tt.want)
			}
		})
	}
}

func TestStoreMemoryOnly(t *testing.T) {
	store, err := NewStore("")
	if err != nil {
		t.Fatalf("NewStore: %v", err)
	}
	defer store.Close()

	if _, ok := store.Get("img_v3_missing"); ok {
		t.Error("expected miss on empty store")
	}

	if err := store.Put("img_v3_heat", "https://example.com/heat.jpg"); err != nil {
		t.Fatalf("Put: %v", err)
	}

	got, ok := store.Get("img_v3_heat")
	if !ok || got != "https://example.com/heat.jpg" {
		t.Errorf("Get = %q (present=%v)", got, ok)
	}
}

func TestStorePersistsAcrossReopen(t *testing.T) {
	dir := t.TempDir()

	store, err := NewStore(dir)
	if err != nil {
		t.Fatalf("NewStore: %v", err)
	}
	if err := store.Put("img_v3_inception", "https://image.tmdb.org/t/p/w500/inc.jpg"); err != nil {
		t.Fatalf("Put: %v", err)
	}
	if err := store.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	reopened, err := NewStore(dir)
	if err != nil {
		t.Fatalf("NewStore reopen: %v", err)
	}
	defer reopened.Close()

	got, ok := reopened.Get("img_v3_inception")
	if !ok || got != "https://image.tmdb.org/t/p/w500/inc.jpg" {
		t.Errorf("expected entry to survive reopen, got %q (present=%v)", got, ok)
	}
}
