// Package identity talks to the externally owned user service that maps
// opaque player references to display names.
package identity

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/openquiz/leaderboard-api/internal/models"
)

// Resolver maps a set of player references to display names in one call.
// Implementations must be bulk-only; callers never loop over single lookups.
type Resolver interface {
	ResolveMany(ctx context.Context, playerRefs []string) (map[string]string, error)
}

type resolveRequest struct {
	PlayerRefs []string `json:"player_refs"`
}

type resolveResponse struct {
	Names map[string]string `json:"names"`
}

// HTTPResolver resolves names against the user service's bulk endpoint.
type HTTPResolver struct {
	baseURL string
	client  *http.Client
}

func NewHTTPResolver(baseURL string) *HTTPResolver {
	return &HTTPResolver{
		baseURL: baseURL,
		client:  &http.Client{Timeout: 10 * time.Second},
	}
}

// ResolveMany performs a single bulk lookup. A partial result (fewer names
// than refs) is not an error; missing refs are simply absent from the map.
func (r *HTTPResolver) ResolveMany(ctx context.Context, playerRefs []string) (map[string]string, error) {
	if len(playerRefs) == 0 {
		return map[string]string{}, nil
	}

	payload, err := json.Marshal(resolveRequest{PlayerRefs: playerRefs})
	if err != nil {
		return nil, fmt.Errorf("encode resolve request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, r.baseURL+"/api/v1/users/resolve", bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("build resolve request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := r.client.Do(req)
	if err != nil {
		return nil, &models.UpstreamError{
			Status:  http.StatusBadGateway,
			Message: "identity service unreachable",
			Err:     err,
		}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &models.UpstreamError{
			Status:  resp.StatusCode,
			Message: fmt.Sprintf("identity service returned %d", resp.StatusCode),
		}
	}

	var body resolveResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, &models.UpstreamError{
			Status:  http.StatusBadGateway,
			Message: "identity service returned malformed response",
			Err:     err,
		}
	}
	if body.Names == nil {
		body.Names = map[string]string{}
	}
	return body.Names, nil
}
