package api

import (
	"log/slog"

	"github.com/tuannho0802/Movies-Musics-Suggestion-App/internal/domain"
)

// resultItem mirrors the backend's JSON result shape
type resultItem struct {
	Title        string  `json:"title"`
	Type         string  `json:"type"`
	YearOrArtist string  `json:"year_or_artist"`
	Genre        string  `json:"genre"`
	Description  string  `json:"description"`
	Score        float64 `json:"score"`
	ImageURL     string  `json:"image_url"`
	TrailerURL   string  `json:"trailer_url"`
	PreviewURL   string  `json:"preview_url"`
}

// mapItems converts wire items to domain items, skipping entries with an
// unrecognized type tag
func mapItems(items []resultItem) []domain.MediaItem {
	mapped := make([]domain.MediaItem, 0, len(items))
	for _, it := range items {
		kind, err := domain.ParseKind(it.Type)
		if err != nil {
			slog.Debug("skipping item with unknown kind", "title", it.Title, "type", it.Type)
			continue
		}
		mapped = append(mapped, domain.MediaItem{
			Title:        it.Title,
			Kind:         kind,
			YearOrArtist: it.YearOrArtist,
			Genre:        it.Genre,
			Description:  it.Description,
			Score:        it.Score,
			ImageURL:     it.ImageURL,
			TrailerURL:   it.TrailerURL,
			PreviewURL:   it.PreviewURL,
		})
	}
	return mapped
}
