// Package graphql is the repository.Store for the managed practice log API,
// a GraphQL endpoint exposing create/list/get/update/delete on PracticeLog.
package graphql

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"practice-log/internal/errors"
	"practice-log/internal/logging"
	"practice-log/internal/repository"
)

// Options configures the client. Exactly one of APIKey or AuthToken is
// normally set; APIKey wins when both are.
type Options struct {
	Endpoint  string
	APIKey    string
	AuthToken string
	Timeout   time.Duration
	// HTTPClient overrides the default client (tests).
	HTTPClient *http.Client
}

// Client talks to the GraphQL endpoint.
type Client struct {
	endpoint  string
	apiKey    string
	authToken string
	http      *http.Client
}

var _ repository.Store = (*Client)(nil)

// New validates opts and builds a client.
func New(opts Options) (*Client, error) {
	if strings.TrimSpace(opts.Endpoint) == "" {
		return nil, errors.NewInvalidInputError("remote.endpoint", opts.Endpoint, "endpoint is required")
	}
	hc := opts.HTTPClient
	if hc == nil {
		timeout := opts.Timeout
		if timeout <= 0 {
			timeout = 30 * time.Second
		}
		hc = &http.Client{Timeout: timeout}
	}
	return &Client{
		endpoint:  opts.Endpoint,
		apiKey:    opts.APIKey,
		authToken: opts.AuthToken,
		http:      hc,
	}, nil
}

type gqlRequest struct {
	Query     string                 `json:"query"`
	Variables map[string]interface{} `json:"variables,omitempty"`
}

type gqlError struct {
	Message   string `json:"message"`
	ErrorType string `json:"errorType,omitempty"`
}

type gqlResponse struct {
	Data   json.RawMessage `json:"data"`
	Errors []gqlError      `json:"errors"`
}

// wireRecord is PracticeLog as the API serialises it.
type wireRecord struct {
	ID          string  `json:"id"`
	Date        *string `json:"date"`
	Category    *string `json:"category"`
	SubCategory *string `json:"subCategory"`
	Duration    *int    `json:"duration"`
	Location    *string `json:"location"`
	Notes       *string `json:"notes"`
	CreatedAt   string  `json:"createdAt"`
	UpdatedAt   string  `json:"updatedAt"`
}

func (w *wireRecord) toRecord() (*repository.Record, error) {
	r := &repository.Record{
		ID:          w.ID,
		Date:        deref(w.Date),
		Category:    deref(w.Category),
		SubCategory: deref(w.SubCategory),
		Location:    deref(w.Location),
		Notes:       deref(w.Notes),
	}
	if w.Duration != nil {
		r.Duration = *w.Duration
	}
	var err error
	if r.CreatedAt, err = parseAWSDateTime(w.CreatedAt); err != nil {
		return nil, fmt.Errorf("createdAt: %w", err)
	}
	if r.UpdatedAt, err = parseAWSDateTime(w.UpdatedAt); err != nil {
		return nil, fmt.Errorf("updatedAt: %w", err)
	}
	return r, nil
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func parseAWSDateTime(s string) (time.Time, error) {
	if s == "" {
		return time.Time{}, nil
	}
	return time.Parse(time.RFC3339Nano, s)
}

// do posts one GraphQL document and decodes data into out.
func (c *Client) do(ctx context.Context, op, query string, vars map[string]interface{}, out interface{}) error {
	body, err := json.Marshal(gqlRequest{Query: query, Variables: vars})
	if err != nil {
		return errors.NewRemoteError(op, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(body))
	if err != nil {
		return errors.NewRemoteError(op, err)
	}
	req.Header.Set("Content-Type", "application/json")
	if c.apiKey != "" {
		req.Header.Set("x-api-key", c.apiKey)
	} else if c.authToken != "" {
		req.Header.Set("Authorization", "Bearer "+c.authToken)
	}

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		return errors.NewRemoteError(op, err)
	}
	defer resp.Body.Close()
	logging.Debug("graphql call", "op", op, "status", resp.StatusCode, "elapsed", time.Since(start))

	if resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden {
		return errors.NewPermissionError(op, "practice log API")
	}
	if resp.StatusCode != http.StatusOK {
		b, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return errors.NewRemoteError(op, fmt.Errorf("status %d: %s", resp.StatusCode, strings.TrimSpace(string(b))))
	}

	var gr gqlResponse
	if err := json.NewDecoder(resp.Body).Decode(&gr); err != nil {
		return errors.NewRemoteError(op, fmt.Errorf("decode response: %w", err))
	}
	if len(gr.Errors) > 0 {
		msgs := make([]string, 0, len(gr.Errors))
		for _, e := range gr.Errors {
			msgs = append(msgs, e.Message)
		}
		return errors.NewRemoteError(op, fmt.Errorf("%s", strings.Join(msgs, "; "))).
			WithContext("errorType", gr.Errors[0].ErrorType)
	}
	if out == nil {
		return nil
	}
	if err := json.Unmarshal(gr.Data, out); err != nil {
		return errors.NewRemoteError(op, fmt.Errorf("decode data: %w", err))
	}
	return nil
}

func recordInput(r *repository.Record) map[string]interface{} {
	in := map[string]interface{}{
		"date":        r.Date,
		"category":    r.Category,
		"subCategory": r.SubCategory,
		"duration":    r.Duration,
	}
	if r.Location != "" {
		in["location"] = r.Location
	}
	if r.Notes != "" {
		in["notes"] = r.Notes
	}
	return in
}

func (c *Client) CreateRecord(ctx context.Context, r *repository.Record) error {
	var out struct {
		CreatePracticeLog *wireRecord `json:"createPracticeLog"`
	}
	vars := map[string]interface{}{"input": recordInput(r)}
	if err := c.do(ctx, "createPracticeLog", createPracticeLogDoc, vars, &out); err != nil {
		return err
	}
	if out.CreatePracticeLog == nil {
		return errors.NewRemoteError("createPracticeLog", fmt.Errorf("empty response"))
	}
	created, err := out.CreatePracticeLog.toRecord()
	if err != nil {
		return errors.NewRemoteError("createPracticeLog", err)
	}
	r.ID = created.ID
	r.CreatedAt = created.CreatedAt
	r.UpdatedAt = created.UpdatedAt
	return nil
}

func (c *Client) ListRecords(ctx context.Context, opts repository.ListOptions) (*repository.Page, error) {
	vars := map[string]interface{}{"limit": repository.PageLimit(opts)}
	if opts.NextToken != "" {
		vars["nextToken"] = opts.NextToken
	}
	filter := map[string]interface{}{}
	if opts.Filter.Category != "" {
		filter["category"] = map[string]string{"eq": opts.Filter.Category}
	}
	if opts.Filter.Date != "" {
		filter["date"] = map[string]string{"eq": opts.Filter.Date}
	}
	if len(filter) > 0 {
		vars["filter"] = filter
	}

	var out struct {
		ListPracticeLogs *struct {
			Items     []*wireRecord `json:"items"`
			NextToken *string       `json:"nextToken"`
		} `json:"listPracticeLogs"`
	}
	if err := c.do(ctx, "listPracticeLogs", listPracticeLogsDoc, vars, &out); err != nil {
		return nil, err
	}
	page := &repository.Page{}
	if out.ListPracticeLogs == nil {
		return page, nil
	}
	for _, w := range out.ListPracticeLogs.Items {
		if w == nil {
			continue
		}
		r, err := w.toRecord()
		if err != nil {
			return nil, errors.NewRemoteError("listPracticeLogs", err)
		}
		page.Items = append(page.Items, r)
	}
	page.NextToken = deref(out.ListPracticeLogs.NextToken)
	return page, nil
}

func (c *Client) GetRecord(ctx context.Context, id string) (*repository.Record, error) {
	var out struct {
		GetPracticeLog *wireRecord `json:"getPracticeLog"`
	}
	if err := c.do(ctx, "getPracticeLog", getPracticeLogDoc, map[string]interface{}{"id": id}, &out); err != nil {
		return nil, err
	}
	if out.GetPracticeLog == nil {
		return nil, errors.NewNotFoundError("practice log", id)
	}
	r, err := out.GetPracticeLog.toRecord()
	if err != nil {
		return nil, errors.NewRemoteError("getPracticeLog", err)
	}
	return r, nil
}

func (c *Client) UpdateRecord(ctx context.Context, r *repository.Record) error {
	in := recordInput(r)
	in["id"] = r.ID
	var out struct {
		UpdatePracticeLog *wireRecord `json:"updatePracticeLog"`
	}
	if err := c.do(ctx, "updatePracticeLog", updatePracticeLogDoc, map[string]interface{}{"input": in}, &out); err != nil {
		return err
	}
	if out.UpdatePracticeLog == nil {
		return errors.NewNotFoundError("practice log", r.ID)
	}
	updated, err := out.UpdatePracticeLog.toRecord()
	if err != nil {
		return errors.NewRemoteError("updatePracticeLog", err)
	}
	r.UpdatedAt = updated.UpdatedAt
	return nil
}

func (c *Client) DeleteRecord(ctx context.Context, id string) error {
	var out struct {
		DeletePracticeLog *struct {
			ID string `json:"id"`
		} `json:"deletePracticeLog"`
	}
	vars := map[string]interface{}{"input": map[string]string{"id": id}}
	if err := c.do(ctx, "deletePracticeLog", deletePracticeLogDoc, vars, &out); err != nil {
		return err
	}
	if out.DeletePracticeLog == nil {
		return errors.NewNotFoundError("practice log", id)
	}
	return nil
}

// Close releases idle connections.
func (c *Client) Close() error {
	c.http.CloseIdleConnections()
	return nil
}
