// Package tarkovdev fetches the task and hideout catalog from the tarkov.dev
// GraphQL API and keeps local copies for when it is unreachable.
package tarkovdev

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

const DefaultEndpoint = "https://api.tarkov.dev/graphql"

var ErrDataUnavailable = errors.New("catalog data unavailable")

type Client struct {
	endpoint string
	http     *http.Client
}

func NewClient(endpoint string, timeout time.Duration) *Client {
	if endpoint == "" {
		endpoint = DefaultEndpoint
	}
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &Client{
		endpoint: endpoint,
		http:     &http.Client{Timeout: timeout},
	}
}

type graphQLRequest struct {
	Query     string         `json:"query"`
	Variables map[string]any `json:"variables,omitempty"`
}

type graphQLError struct {
	Message string `json:"message"`
}

type graphQLResponse struct {
	Data   map[string]json.RawMessage `json:"data"`
	Errors []graphQLError             `json:"errors"`
}

// Query posts a GraphQL query and returns the raw value of the named top-level
// data field.
func (c *Client) Query(ctx context.Context, query string, field string) (json.RawMessage, error) {
	body, err := json.Marshal(graphQLRequest{Query: query})
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("graphql request: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read graphql response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("graphql request: unexpected status %d", resp.StatusCode)
	}

	var out graphQLResponse
	if err := json.Unmarshal(raw, &out); err != nil {
		return nil, fmt.Errorf("decode graphql response: %w", err)
	}

	value, ok := out.Data[field]
	if !ok || len(value) == 0 || string(value) == "null" {
		if len(out.Errors) > 0 {
			msgs := make([]string, 0, len(out.Errors))
			for _, e := range out.Errors {
				msgs = append(msgs, e.Message)
			}
			return nil, fmt.Errorf("graphql: %s", strings.Join(msgs, "; "))
		}
		return nil, fmt.Errorf("graphql: field %q missing from response", field)
	}
	return value, nil
}

// FetchTasks returns the tasks list as a JSON array.
func (c *Client) FetchTasks(ctx context.Context) ([]byte, error) {
	raw, err := c.Query(ctx, tasksQuery, "tasks")
	if err != nil {
		return nil, err
	}
	return unwrapList(raw)
}

// FetchStations returns the hideout stations list as a JSON array.
func (c *Client) FetchStations(ctx context.Context) ([]byte, error) {
	raw, err := c.Query(ctx, hideoutStationsQuery, "hideoutStations")
	if err != nil {
		return nil, err
	}
	return unwrapList(raw)
}

// unwrapList accepts a plain array or a connection shaped object with nodes
// or edges and returns a JSON array.
func unwrapList(raw json.RawMessage) ([]byte, error) {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) > 0 && trimmed[0] == '[' {
		return trimmed, nil
	}

	var conn struct {
		Nodes []json.RawMessage `json:"nodes"`
		Edges []struct {
			Node json.RawMessage `json:"node"`
		} `json:"edges"`
	}
	if err := json.Unmarshal(trimmed, &conn); err != nil {
		return nil, fmt.Errorf("unexpected list shape: %w", err)
	}

	items := conn.Nodes
	if items == nil {
		for _, e := range conn.Edges {
			if len(e.Node) > 0 && string(e.Node) != "null" {
				items = append(items, e.Node)
			}
		}
	}
	if items == nil {
		items = []json.RawMessage{}
	}
	return json.Marshal(items)
}
