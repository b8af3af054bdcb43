package pokeapi

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"pokedex-service/internal/metrics"

	"go.uber.org/zap"
)

const (
	pokemonPath = "/api/v2/pokemon"
	speciesPath = "/api/v2/pokemon-species"

	// maxListLimit caps the upstream listing request.
	maxListLimit = 1500
)

// ListPokemon fetches the full name/url listing in one call. Position in
// the returned slice defines the canonical index number (1-based).
func (c *client) ListPokemon(ctx context.Context, limit int) ([]NamedResource, error) {
	if limit <= 0 || limit > maxListLimit {
		limit = maxListLimit
	}

	url := fmt.Sprintf("%s%s?limit=%d", c.cfg.BaseURL, pokemonPath, limit)

	var page resourcePage
	if err := c.getJSON(ctx, url, "list", &page); err != nil {
		return nil, err
	}
	return page.Results, nil
}

// GetPokemon fetches one detail record by name or id.
func (c *client) GetPokemon(ctx context.Context, nameOrID string) (*Pokemon, error) {
	nameOrID = strings.TrimSpace(nameOrID)
	if nameOrID == "" {
		return nil, fmt.Errorf("%w: empty name or id", ErrNotFound)
	}

	url := c.cfg.BaseURL + pokemonPath + "/" + nameOrID

	var p Pokemon
	if err := c.getJSON(ctx, url, "pokemon", &p); err != nil {
		return nil, err
	}
	return &p, nil
}

// GetSpecies fetches the secondary species record by id. Alternate forms
// may have none; the upstream answers 404 and the caller falls back to
// GetSpeciesByURL with the redirect reference from the primary record.
func (c *client) GetSpecies(ctx context.Context, id int) (*Species, error) {
	url := c.cfg.BaseURL + speciesPath + "/" + strconv.Itoa(id)

	var s Species
	if err := c.getJSON(ctx, url, "species", &s); err != nil {
		return nil, err
	}
	return &s, nil
}

// GetSpeciesByURL fetches a species record from an absolute URL embedded
// in a primary record.
func (c *client) GetSpeciesByURL(ctx context.Context, url string) (*Species, error) {
	if url == "" {
		return nil, fmt.Errorf("%w: empty species url", ErrNotFound)
	}

	var s Species
	if err := c.getJSON(ctx, url, "species", &s); err != nil {
		return nil, err
	}
	return &s, nil
}

// getJSON performs one GET with the per-request timeout and decodes the
// body into out. 404 maps to ErrNotFound; everything else that fails maps
// to ErrUpstream. No retries: the cache layer above is the sole mitigation
// for upstream load.
func (c *client) getJSON(parentCtx context.Context, url, endpoint string, out any) error {
	ctx, cancel := context.WithTimeout(parentCtx, c.cfg.UpstreamTimeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return fmt.Errorf("%w: build request: %v", ErrUpstream, err)
	}
	req.Header.Set("Accept", "application/json")

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	duration := time.Since(start)

	if err != nil {
		metrics.ObserveUpstream(endpoint, 0, duration)
		c.logger.Warn("upstream request failed",
			zap.String("url", url),
			zap.Duration("duration", duration),
			zap.Error(err),
		)
		return fmt.Errorf("%w: get %s: %v", ErrUpstream, url, err)
	}
	defer resp.Body.Close()

	metrics.ObserveUpstream(endpoint, resp.StatusCode, duration)

	if resp.StatusCode == http.StatusNotFound {
		return fmt.Errorf("%w: %s", ErrNotFound, url)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		c.logger.Warn("upstream error status",
			zap.String("url", url),
			zap.Int("status", resp.StatusCode),
			zap.String("body", truncate(string(body), 200)),
		)
		return fmt.Errorf("%w: status %d: %s", ErrUpstream, resp.StatusCode, truncate(string(body), 200))
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("%w: decode %s: %v", ErrUpstream, url, err)
	}

	c.logger.Debug("upstream request completed",
		zap.String("endpoint", endpoint),
		zap.Int("status", resp.StatusCode),
		zap.Duration("duration", duration),
	)

	return nil
}

// truncate limits string length for logging.
func truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen] + "..."
}
