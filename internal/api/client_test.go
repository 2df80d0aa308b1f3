package api

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/tuannho0802/Movies-Musics-Suggestion-App/internal/domain"
	"github.com/tuannho0802/Movies-Musics-Suggestion-App/internal/log"
)

func TestSearchParsesResults(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/search" {
			t.Errorf("unexpected path %q", r.URL.Path)
		}
		q := r.URL.Query()
		if q.Get("q") != "inception" || q.Get("type") != "movie" || q.Get("page") != "2" {
			t.Errorf("unexpected query %q", r.URL.RawQuery)
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"results":[
			{"title":"Inception","type":"movie","year_or_artist":"2010","genre":"Film","description":"A thief who steals corporate secrets","score":0.93,"trailer_url":"https://youtube.com/watch?v=x"},
			{"title":"Time","type":"music","year_or_artist":"Hans Zimmer","score":0.81,"preview_url":"https://audio.example/time.m4a"},
			{"title":"Mystery","type":"podcast"}
		]}`))
	}))
	defer srv.Close()

	client := NewClient(srv.URL, log.NullLogger())
	items, err := client.Search(context.Background(), "inception", "movie", 2)
	if err != nil {
		t.Fatalf("Search: %v", err)
	}

	// Unknown kind tags are skipped
	if len(items) != 2 {
		t.Fatalf("expected 2 items, got %d", len(items))
	}
	if items[0].Kind != domain.KindMovie || items[0].Title != "Inception" {
		t.Errorf("unexpected first item %+v", items[0])
	}
	if items[0].Score != 0.93 {
		t.Errorf("score = %v, want 0.93", items[0].Score)
	}
	if items[1].Kind != domain.KindMusic || items[1].Artist() != "Hans Zimmer" {
		t.Errorf("unexpected second item %+v", items[1])
	}
}

func TestTrendingQueryShape(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/trending" {
			t.Errorf("unexpected path %q", r.URL.Path)
		}
		q := r.URL.Query()
		if q.Get("type") != "music" || q.Get("limit") != "12" || q.Get("page") != "1" {
			t.Errorf("unexpected query %q", r.URL.RawQuery)
		}
		w.Write([]byte(`{"results":[]}`))
	}))
	defer srv.Close()

	client := NewClient(srv.URL, log.NullLogger())
	items, err := client.Trending(context.Background(), "music", 12, 1)
	if err != nil {
		t.Fatalf("Trending: %v", err)
	}
	if len(items) != 0 {
		t.Errorf("expected empty page, got %d items", len(items))
	}
}

func TestAutocompleteGroups(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/autocomplete" {
			t.Errorf("unexpected path %q", r.URL.Path)
		}
		w.Write([]byte(`{
			"movies":[{"title":"Batman Begins","type":"movie"}],
			"music":[{"title":"Batdance","type":"music","year_or_artist":"Prince"}]
		}`))
	}))
	defer srv.Close()

	client := NewClient(srv.URL, log.NullLogger())
	sugg, err := client.Autocomplete(context.Background(), "bat")
	if err != nil {
		t.Fatalf("Autocomplete: %v", err)
	}
	if len(sugg.Movies) != 1 || sugg.Movies[0].Title != "Batman Begins" {
		t.Errorf("unexpected movies group %+v", sugg.Movies)
	}
	if len(sugg.Music) != 1 || sugg.Music[0].Artist() != "Prince" {
		t.Errorf("unexpected music group %+v", sugg.Music)
	}
}

func TestPreview(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		if q.Get("title") == "Time" && q.Get("artist") == "Hans Zimmer" {
			w.Write([]byte(`{"url":"https://audio.example/time.m4a"}`))
			return
		}
		w.Write([]byte(`{"url":""}`))
	}))
	defer srv.Close()

	client := NewClient(srv.URL, log.NullLogger())

	url, err := client.Preview(context.Background(), "Time", "Hans Zimmer")
	if err != nil {
		t.Fatalf("Preview: %v", err)
	}
	if url != "https://audio.example/time.m4a" {
		t.Errorf("url = %q", url)
	}

	if _, err := client.Preview(context.Background(), "Nothing", "Nobody"); !errors.Is(err, domain.ErrNoPreview) {
		t.Errorf("expected ErrNoPreview, got %v", err)
	}
}

func TestFetchConfig(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/config" {
			t.Errorf("unexpected path %q", r.URL.Path)
		}
		w.Write([]byte(`{"TMDB_API_KEY":"secret"}`))
	}))
	defer srv.Close()

	client := NewClient(srv.URL, log.NullLogger())
	cfg, err := client.FetchConfig(context.Background())
	if err != nil {
		t.Fatalf("FetchConfig: %v", err)
	}
	if cfg.TMDBAPIKey != "secret" {
		t.Errorf("key = %q", cfg.TMDBAPIKey)
	}
}

func TestServerOffline(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close() // immediately unreachable

	client := NewClient(srv.URL, log.NullLogger())
	if _, err := client.Search(context.Background(), "x", "all", 1); !errors.Is(err, domain.ErrServerOffline) {
		t.Errorf("expected ErrServerOffline, got %v", err)
	}
}

func TestErrorStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	client := NewClient(srv.URL, log.NullLogger())
	if _, err := client.Trending(context.Background(), "all", 12, 1); err == nil {
		t.Error("expected error on 500 status")
	}
}
