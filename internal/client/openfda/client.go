// Package openfda queries the openFDA drug/label endpoint for the
// interaction classifier.
package openfda

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/osetrov/healthkeeper/internal/common"
)

// resultLimit caps how many label documents one query returns.
const resultLimit = 5

// LabelResult is one drug-label document. Only the free-text fields the
// classifier scans are decoded.
type LabelResult struct {
	DrugInteractions  []string `json:"drug_interactions"`
	Warnings          []string `json:"warnings"`
	Contraindications []string `json:"contraindications"`
}

// LabelResponse is the body of a label query.
type LabelResponse struct {
	Results []LabelResult `json:"results"`
}

// LabelSource is the external drug-label collaborator.
// A non-success HTTP status is reported as common.ErrTransport (wrapped);
// callers are expected to degrade gracefully, not abort.
type LabelSource interface {
	Query(ctx context.Context, drugName string) (*LabelResponse, error)
}

// Client queries a real openFDA-compatible endpoint over HTTP.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

func NewClient(baseURL string, timeout time.Duration) *Client {
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: timeout},
	}
}

// Query fetches label documents whose brand name or generic name equals
// drugName (case-sensitive, per the external API).
func (c *Client) Query(ctx context.Context, drugName string) (*LabelResponse, error) {
	reqURL := fmt.Sprintf(
		`%s/drug/label.json?search=openfda.brand_name:%%22%s%%22+OR+openfda.generic_name:%%22%s%%22&limit=%d`,
		c.baseURL, escapeComponent(drugName), escapeComponent(drugName), resultLimit)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("build label request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("label request for %q: %w", drugName, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("label request for %q returned %d: %w",
			drugName, resp.StatusCode, common.ErrTransport)
	}

	var body LabelResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, fmt.Errorf("decode label response for %q: %w", drugName, err)
	}
	return &body, nil
}

// escapeComponent percent-encodes a query component the way the external API
// expects: spaces become %20, not '+'.
func escapeComponent(s string) string {
	return strings.ReplaceAll(url.QueryEscape(s), "+", "%20")
}
