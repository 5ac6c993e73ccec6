package handler

import (
	"strings"

	"github.com/clubhub/clubhub-api/internal/core/ports"
)

// toCreateClubInput trims free text and drops blank genre tags.
func toCreateClubInput(req createClubRequest, key string) ports.CreateClubInput {
	genres := make([]string, 0, len(req.Genres))
	for _, g := range req.Genres {
		if g = strings.TrimSpace(g); g != "" {
			genres = append(genres, g)
		}
	}

	return ports.CreateClubInput{
		Name:           strings.TrimSpace(req.Name),
		Description:    strings.TrimSpace(req.Description),
		Address:        strings.TrimSpace(req.Address),
		City:           strings.TrimSpace(req.City),
		MinAge:         req.MinAge,
		Genres:         genres,
		ImageURL:       strings.TrimSpace(req.ImageURL),
		IdempotencyKey: key,
	}
}
