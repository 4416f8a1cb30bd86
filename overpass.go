package mapdata

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/pkg/errors"
	"golang.org/x/time/rate"
)

// OverpassMember is one member entry of a relation element.
type OverpassMember struct {
	Type string `json:"type"`
	Ref  int64  `json:"ref"`
	Role string `json:"role"`
}

// OverpassElement is a single element returned by the Overpass API. Lat/Lon
// are set for nodes, Nodes for ways, Members for relations.
type OverpassElement struct {
	Type    string            `json:"type"`
	ID      int64             `json:"id"`
	Lat     float64           `json:"lat,omitempty"`
	Lon     float64           `json:"lon,omitempty"`
	Tags    map[string]string `json:"tags,omitempty"`
	Nodes   []int64           `json:"nodes,omitempty"`
	Members []OverpassMember  `json:"members,omitempty"`
}

// OverpassResult is a query response partitioned by element type.
type OverpassResult struct {
	Nodes     []OverpassElement `json:"nodes"`
	Ways      []OverpassElement `json:"ways"`
	Relations []OverpassElement `json:"relations"`
}

type overpassResponse struct {
	Elements []OverpassElement `json:"elements"`
}

// OverpassClient queries the Overpass API with rate limiting and a fixed
// bounded retry policy. Exhausting the retries is fatal for the run: the core
// pipeline never starts on partial data.
type OverpassClient struct {
	endpoint   string
	httpClient *http.Client
	limiter    *rate.Limiter
	tries      int
	retryDelay time.Duration
	verbose    bool
}

// NewOverpassClient prepares a client for the endpoint and retry policy of
// the given configuration.
func NewOverpassClient(cfg Config, verbose bool) *OverpassClient {
	return &OverpassClient{
		endpoint: cfg.OverpassURL,
		httpClient: &http.Client{
			Timeout: 180 * time.Second,
			Transport: &http.Transport{
				MaxIdleConns:    10,
				IdleConnTimeout: 90 * time.Second,
			},
		},
		limiter:    rate.NewLimiter(rate.Limit(cfg.QueryRateLimit), 1),
		tries:      cfg.QueryTries,
		retryDelay: cfg.retryDelay(),
		verbose:    verbose,
	}
}

// WayQuery returns the Overpass QL query for every way intersecting the
// region's geographic box, with their member nodes recursed down.
func WayQuery(region BoundingRegion) string {
	return fmt.Sprintf("[out:json];(way(%s); >; ); out;", region.geoBBox())
}

// RelationQuery returns the Overpass QL query for every relation referencing
// a way in the region's geographic box.
func RelationQuery(region BoundingRegion) string {
	return fmt.Sprintf("[out:json];(way(%s); <; ); out;", region.geoBBox())
}

// NodeQuery returns the Overpass QL query for every node in the region's
// geographic box.
func NodeQuery(region BoundingRegion) string {
	return fmt.Sprintf("[out:json];(node(%s); ); out;", region.geoBBox())
}

// Query posts the given Overpass QL query, retrying with a fixed delay a
// bounded number of times before giving up.
func (client *OverpassClient) Query(ctx context.Context, query string) (*OverpassResult, error) {
	var lastErr error
	for try := 1; try <= client.tries; try++ {
		result, err := client.queryOnce(ctx, query)
		if err == nil {
			return result, nil
		}
		lastErr = err
		if client.verbose {
			fmt.Printf("\t[WARNING]: Query failed: %s. Rerunning the query after %s\n", err, client.retryDelay)
		}
		if try == client.tries {
			break
		}
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(client.retryDelay):
		}
	}
	return nil, errors.Wrapf(lastErr, "Query failed after %d tries", client.tries)
}

func (client *OverpassClient) queryOnce(ctx context.Context, query string) (*OverpassResult, error) {
	if err := client.limiter.Wait(ctx); err != nil {
		return nil, err
	}
	form := url.Values{"data": {query}}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, client.endpoint, strings.NewReader(form.Encode()))
	if err != nil {
		return nil, errors.Wrap(err, "Prepare request")
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := client.httpClient.Do(req)
	if err != nil {
		return nil, errors.Wrap(err, "Do request")
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, errors.Errorf("Overpass returned status %d", resp.StatusCode)
	}

	var decoded overpassResponse
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return nil, errors.Wrap(err, "Decode response")
	}

	result := &OverpassResult{}
	for _, element := range decoded.Elements {
		switch element.Type {
		case "node":
			result.Nodes = append(result.Nodes, element)
		case "way":
			result.Ways = append(result.Ways, element)
		case "relation":
			result.Relations = append(result.Relations, element)
		}
	}
	return result, nil
}
