package artwork

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestITunesArtworkURLUpgradesResolution(t *testing.T) {
	var gotTerm, gotEntity string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotTerm = r.URL.Query().Get("term")
		gotEntity = r.URL.Query().Get("entity")
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"results":[{"artworkUrl100":"https://is1-ssl.mzstatic.com/image/100x100bb.jpg"}]}`))
	}))
	defer srv.Close()

	client := NewITunesClient(100, 10)
	client.baseURL = srv.URL

	url, err := client.ArtworkURL(context.Background(), "Bohemian Rhapsody")
	if err != nil {
		t.Fatalf("ArtworkURL: %v", err)
	}
	if want := "https://is1-ssl.mzstatic.com/image/600x600bb.jpg"; url != want {
		t.Errorf("url = %q, want %q", url, want)
	}
	if gotTerm != "Bohemian Rhapsody" {
		t.Errorf("term param = %q", gotTerm)
	}
	if gotEntity != "song" {
		t.Errorf("entity param = %q, want song", gotEntity)
	}
}

func TestITunesArtworkURLNoResults(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"resultCount":0,"results":[]}`))
	}))
	defer srv.Close()

	client := NewITunesClient(100, 10)
	client.baseURL = srv.URL

	url, err := client.ArtworkURL(context.Background(), "Unknown Song")
	if err != nil {
		t.Fatalf("ArtworkURL: %v", err)
	}
	if url != "" {
		t.Errorf("expected empty url, got %q", url)
	}
}
