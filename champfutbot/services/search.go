package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/champfut/champfutbot/champfutbot/database/models"
	"github.com/champfut/champfutbot/champfutbot/database/repositories"
	"github.com/sahilm/fuzzy"
)

// SearchService resolves card names for autocomplete and command options.
type SearchService struct {
	instances repositories.CardInstanceRepository
}

func NewSearchService(instances repositories.CardInstanceRepository) *SearchService {
	return &SearchService{instances: instances}
}

type instanceSource []*models.CardInstance

func (s instanceSource) String(i int) string {
	return s[i].DisplayName()
}

func (s instanceSource) Len() int {
	return len(s)
}

// SearchOwnedInstances fuzzy-matches the user's collection against the
// query. An empty query returns the most recently obtained cards. Results
// are capped at limit entries.
func (ss *SearchService) SearchOwnedInstances(ctx context.Context, userID, query string, limit int) ([]*models.CardInstance, error) {
	owned, err := ss.instances.GetAllByUserID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to load collection: %w", err)
	}

	query = strings.TrimSpace(query)
	if query == "" {
		if len(owned) > limit {
			owned = owned[:limit]
		}
		return owned, nil
	}

	matches := fuzzy.FindFrom(query, instanceSource(owned))
	results := make([]*models.CardInstance, 0, limit)
	for _, match := range matches {
		results = append(results, owned[match.Index])
		if len(results) >= limit {
			break
		}
	}
	return results, nil
}
