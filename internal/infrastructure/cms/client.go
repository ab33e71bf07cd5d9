package cms

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	sonic "github.com/bytedance/sonic"
	crerr "github.com/cockroachdb/errors"

	"github.com/acitysports/sports-backend/internal/domain/season"
	"github.com/acitysports/sports-backend/internal/platform/logging"
	"github.com/acitysports/sports-backend/internal/platform/resilience"
	"github.com/acitysports/sports-backend/internal/usecase"
)

const (
	seasonPointQuery  = `*[_type == "seasons" && _id == $id][0]{_id, title, startDate, endDate}`
	documentListQuery = `*[_type == $type]{..., logo{asset->{url}}}`

	maxResponseBytes = 16 << 20
)

var errTransient = crerr.New("cms transient failure")

type ClientConfig struct {
	HTTPClient *http.Client
	// BaseURL overrides the project-derived endpoint, used in tests.
	BaseURL        string
	ProjectID      string
	Dataset        string
	APIVersion     string
	Token          string
	Timeout        time.Duration
	MaxRetries     int
	Logger         *logging.Logger
	CircuitBreaker resilience.CircuitSettings
}

// Client reads documents from the CMS's query API. It is read-only: this
// system never writes back to the CMS.
type Client struct {
	httpClient *http.Client
	queryURL   string
	token      string
	maxRetries int
	logger     *logging.Logger
	breaker    *resilience.CircuitBreaker
	flight     resilience.SingleFlight
}

func NewClient(cfg ClientConfig) *Client {
	logger := cfg.Logger
	if logger == nil {
		logger = logging.Default()
	}

	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: cfg.Timeout}
	}
	if httpClient.Timeout <= 0 {
		httpClient.Timeout = 15 * time.Second
	}

	dataset := strings.TrimSpace(cfg.Dataset)
	if dataset == "" {
		dataset = "production"
	}
	apiVersion := strings.TrimSpace(cfg.APIVersion)
	if apiVersion == "" {
		apiVersion = "2025-02-06"
	}

	baseURL := strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/")
	if baseURL == "" {
		baseURL = fmt.Sprintf("https://%s.api.sanity.io", strings.TrimSpace(cfg.ProjectID))
	}
	queryURL := fmt.Sprintf("%s/v%s/data/query/%s", baseURL, apiVersion, dataset)

	maxRetries := cfg.MaxRetries
	if maxRetries < 0 {
		maxRetries = 0
	}

	return &Client{
		httpClient: httpClient,
		queryURL:   queryURL,
		token:      strings.TrimSpace(cfg.Token),
		maxRetries: maxRetries,
		logger:     logger,
		breaker:    resilience.NewCircuitBreaker(cfg.CircuitBreaker),
	}
}

type seasonDocument struct {
	ID        string `json:"_id"`
	Title     string `json:"title"`
	StartDate string `json:"startDate"`
	EndDate   string `json:"endDate"`
}

// GetSeason issues a point query for one seasons document. The second return
// is false when the CMS has no document with that ID.
func (c *Client) GetSeason(ctx context.Context, seasonID string) (season.Season, bool, error) {
	seasonID = strings.TrimSpace(seasonID)
	if seasonID == "" {
		return season.Season{}, false, fmt.Errorf("season id is required")
	}

	var doc *seasonDocument
	if err := c.query(ctx, seasonPointQuery, map[string]string{"id": seasonID}, &doc); err != nil {
		return season.Season{}, false, fmt.Errorf("query season %s: %w", seasonID, err)
	}
	if doc == nil || strings.TrimSpace(doc.ID) == "" {
		return season.Season{}, false, nil
	}

	startDate, err := parseDocumentDate(doc.StartDate)
	if err != nil {
		return season.Season{}, false, fmt.Errorf("parse season %s start date: %w", seasonID, err)
	}
	endDate, err := parseDocumentDate(doc.EndDate)
	if err != nil {
		return season.Season{}, false, fmt.Errorf("parse season %s end date: %w", seasonID, err)
	}

	return season.Season{
		ID:        doc.ID,
		Title:     doc.Title,
		StartDate: startDate,
		EndDate:   endDate,
	}, true, nil
}

// ListDocuments returns every document of the given type, in the webhook
// payload shape so resync can replay them through the normal upsert path.
func (c *Client) ListDocuments(ctx context.Context, docType string) ([]usecase.WebhookDocument, error) {
	docType = strings.TrimSpace(docType)
	if docType == "" {
		return nil, fmt.Errorf("document type is required")
	}

	var docs []usecase.WebhookDocument
	if err := c.query(ctx, documentListQuery, map[string]string{"type": docType}, &docs); err != nil {
		return nil, fmt.Errorf("query %s documents: %w", docType, err)
	}

	return docs, nil
}

type queryEnvelope struct {
	Result json.RawMessage `json:"result"`
}

func (c *Client) query(ctx context.Context, groq string, params map[string]string, target any) error {
	if err := c.breaker.Allow(); err != nil {
		c.logger.WarnContext(ctx, "cms circuit breaker rejected request", "state", c.breaker.State())
		return fmt.Errorf("%w: cms is temporarily unavailable", usecase.ErrDependencyUnavailable)
	}

	values := url.Values{}
	values.Set("query", groq)
	for key, value := range params {
		encoded, err := sonic.MarshalString(value)
		if err != nil {
			return fmt.Errorf("encode query param %s: %w", key, err)
		}
		values.Set("$"+key, encoded)
	}

	fullURL := c.queryURL + "?" + values.Encode()

	out, err, _ := c.flight.Do(fullURL, func() (any, error) {
		raw, reqErr := c.executeRequest(ctx, fullURL)
		if reqErr != nil && crerr.Is(reqErr, errTransient) {
			c.breaker.RecordFailure()
		} else {
			c.breaker.RecordSuccess()
		}
		return raw, reqErr
	})
	if err != nil {
		return err
	}

	raw, ok := out.([]byte)
	if !ok {
		return fmt.Errorf("unexpected response payload type %T", out)
	}

	var envelope queryEnvelope
	if err := sonic.Unmarshal(raw, &envelope); err != nil {
		return fmt.Errorf("decode cms envelope: %w", err)
	}
	if len(envelope.Result) == 0 || string(envelope.Result) == "null" {
		return nil
	}
	if err := sonic.Unmarshal(envelope.Result, target); err != nil {
		return fmt.Errorf("decode cms result: %w", err)
	}

	return nil
}

func (c *Client) executeRequest(ctx context.Context, fullURL string) ([]byte, error) {
	var lastErr error
	for attempt := 0; attempt <= c.maxRetries; attempt++ {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, fullURL, nil)
		if err != nil {
			return nil, fmt.Errorf("build request: %w", err)
		}
		req.Header.Set("Accept", "application/json")
		if c.token != "" {
			req.Header.Set("Authorization", "Bearer "+c.token)
		}

		resp, err := c.httpClient.Do(req)
		if err != nil {
			lastErr = crerr.Wrapf(errTransient, "send request: %v", err)
		} else {
			raw, readErr := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
			_ = resp.Body.Close()
			switch {
			case readErr != nil:
				lastErr = crerr.Wrapf(errTransient, "read response body: %v", readErr)
			case resp.StatusCode >= 200 && resp.StatusCode < 300:
				return raw, nil
			case isRetryableStatus(resp.StatusCode):
				lastErr = crerr.Wrapf(errTransient, "cms status=%d body=%s", resp.StatusCode, abbreviateBody(raw))
			default:
				return nil, crerr.Newf("cms status=%d body=%s", resp.StatusCode, abbreviateBody(raw))
			}
		}

		if attempt == c.maxRetries {
			break
		}
		backoff := time.Duration(attempt+1) * time.Second
		timer := time.NewTimer(backoff)
		select {
		case <-ctx.Done():
			timer.Stop()
			return nil, ctx.Err()
		case <-timer.C:
		}
	}

	if lastErr == nil {
		lastErr = crerr.New("cms request failed")
	}
	c.logger.WarnContext(ctx, "cms request failed", "url", fullURL, "error", lastErr)
	return nil, lastErr
}

func isRetryableStatus(status int) bool {
	return status == http.StatusTooManyRequests || status >= 500
}

func abbreviateBody(raw []byte) string {
	const maxLen = 256
	body := strings.TrimSpace(string(raw))
	if len(body) > maxLen {
		return body[:maxLen] + "..."
	}
	return body
}

var documentDateLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02",
}

func parseDocumentDate(value string) (*time.Time, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return nil, nil
	}

	for _, layout := range documentDateLayouts {
		if parsed, err := time.Parse(layout, value); err == nil {
			parsed = parsed.UTC()
			return &parsed, nil
		}
	}

	return nil, fmt.Errorf("unrecognized date %q", value)
}
