package sheets

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"time"
)

// DefaultEndpoint is the production Google Sheets values/spreadsheets API.
const DefaultEndpoint = "https://sheets.googleapis.com/v4/spreadsheets"

// ValueRange addresses one rectangular range and the rows to write there.
type ValueRange struct {
	Range  string     `json:"range"`
	Values [][]string `json:"values"`
}

// Store is the remote spreadsheet contract the rest of the system depends
// on. The production implementation is Client; tests substitute fakes.
type Store interface {
	// CreateSpreadsheet creates a new spreadsheet with the given tab
	// titles and returns its identifier.
	CreateSpreadsheet(ctx context.Context, token, title string, initialTabs []string) (string, error)

	// GetTabTitles returns the titles of every tab in the spreadsheet.
	GetTabTitles(ctx context.Context, token, sheetID string) ([]string, error)

	// BatchCreateTabs adds one tab per title in a single request.
	BatchCreateTabs(ctx context.Context, token, sheetID string, titles []string) error

	// BatchWriteRanges overwrites each addressed range with the given rows.
	BatchWriteRanges(ctx context.Context, token, sheetID string, data []ValueRange) error

	// GetValues reads the rows of a single range. A missing tab yields
	// ErrNotFound.
	GetValues(ctx context.Context, token, sheetID, rng string) ([][]string, error)

	// AppendRow appends one row after the last data row of a range.
	AppendRow(ctx context.Context, token, sheetID, rng string, row []string) error
}

// Client talks to the Google Sheets REST API. It imposes no timeout
// semantics of its own beyond the dial timeout; callers bound requests
// through ctx.
type Client struct {
	endpoint string
	http     *http.Client
}

// NewClient creates a Client against the given endpoint, which defaults
// to the production API when empty.
func NewClient(endpoint string) *Client {
	if endpoint == "" {
		endpoint = DefaultEndpoint
	}
	return &Client{
		endpoint: endpoint,
		http: &http.Client{
			Transport: &http.Transport{
				DialContext: (&net.Dialer{
					Timeout: 5 * time.Second,
				}).DialContext,
			},
		},
	}
}

type sheetProperties struct {
	Title string `json:"title"`
}

type sheetEntry struct {
	Properties sheetProperties `json:"properties"`
}

type createSpreadsheetRequest struct {
	Properties sheetProperties `json:"properties"`
	Sheets     []sheetEntry    `json:"sheets"`
}

type createSpreadsheetResponse struct {
	SpreadsheetID string `json:"spreadsheetId"`
}

func (c *Client) CreateSpreadsheet(ctx context.Context, token, title string, initialTabs []string) (string, error) {
	body := createSpreadsheetRequest{Properties: sheetProperties{Title: title}}
	for _, tab := range initialTabs {
		body.Sheets = append(body.Sheets, sheetEntry{Properties: sheetProperties{Title: tab}})
	}

	var resp createSpreadsheetResponse
	if err := c.doJSON(ctx, token, http.MethodPost, c.endpoint, body, &resp); err != nil {
		return "", fmt.Errorf("creating spreadsheet: %w", err)
	}
	if resp.SpreadsheetID == "" {
		return "", fmt.Errorf("%w: create returned no spreadsheet id", ErrTransient)
	}
	return resp.SpreadsheetID, nil
}

type spreadsheetMetadata struct {
	Sheets []sheetEntry `json:"sheets"`
}

func (c *Client) GetTabTitles(ctx context.Context, token, sheetID string) ([]string, error) {
	u := fmt.Sprintf("%s/%s?fields=sheets.properties", c.endpoint, sheetID)
	var meta spreadsheetMetadata
	if err := c.doJSON(ctx, token, http.MethodGet, u, nil, &meta); err != nil {
		return nil, fmt.Errorf("reading tab titles: %w", err)
	}
	titles := make([]string, 0, len(meta.Sheets))
	for _, s := range meta.Sheets {
		titles = append(titles, s.Properties.Title)
	}
	return titles, nil
}

type addSheetRequest struct {
	AddSheet struct {
		Properties sheetProperties `json:"properties"`
	} `json:"addSheet"`
}

func (c *Client) BatchCreateTabs(ctx context.Context, token, sheetID string, titles []string) error {
	if len(titles) == 0 {
		return nil
	}
	var requests []addSheetRequest
	for _, title := range titles {
		var req addSheetRequest
		req.AddSheet.Properties.Title = title
		requests = append(requests, req)
	}
	u := fmt.Sprintf("%s/%s:batchUpdate", c.endpoint, sheetID)
	body := map[string]any{"requests": requests}
	if err := c.doJSON(ctx, token, http.MethodPost, u, body, nil); err != nil {
		return fmt.Errorf("creating tabs: %w", err)
	}
	return nil
}

func (c *Client) BatchWriteRanges(ctx context.Context, token, sheetID string, data []ValueRange) error {
	if len(data) == 0 {
		return nil
	}
	u := fmt.Sprintf("%s/%s/values:batchUpdate", c.endpoint, sheetID)
	body := map[string]any{
		"valueInputOption": "USER_ENTERED",
		"data":             data,
	}
	if err := c.doJSON(ctx, token, http.MethodPost, u, body, nil); err != nil {
		return fmt.Errorf("writing ranges: %w", err)
	}
	return nil
}

type valuesResponse struct {
	Values [][]string `json:"values"`
}

func (c *Client) GetValues(ctx context.Context, token, sheetID, rng string) ([][]string, error) {
	u := fmt.Sprintf("%s/%s/values/%s", c.endpoint, sheetID, url.PathEscape(rng))
	var resp valuesResponse
	if err := c.doJSON(ctx, token, http.MethodGet, u, nil, &resp); err != nil {
		return nil, fmt.Errorf("reading range %s: %w", rng, err)
	}
	return resp.Values, nil
}

func (c *Client) AppendRow(ctx context.Context, token, sheetID, rng string, row []string) error {
	u := fmt.Sprintf("%s/%s/values/%s:append?valueInputOption=USER_ENTERED", c.endpoint, sheetID, url.PathEscape(rng))
	body := map[string]any{"values": [][]string{row}}
	if err := c.doJSON(ctx, token, http.MethodPost, u, body, nil); err != nil {
		return fmt.Errorf("appending row: %w", err)
	}
	return nil
}

// doJSON performs one authenticated request and decodes the response into
// out when non-nil. HTTP status codes are folded into the error taxonomy:
// 401/403 → ErrUnauthorized, 404 → ErrNotFound, anything else non-2xx →
// ErrTransient carrying the raw body.
func (c *Client) doJSON(ctx context.Context, token, method, u string, body, out any) error {
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("marshaling request: %w", err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, u, reader)
	if err != nil {
		return fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+token)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrTransient, err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("%w: reading response: %v", ErrTransient, err)
	}

	switch {
	case resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden:
		return fmt.Errorf("%w: status %d", ErrUnauthorized, resp.StatusCode)
	case resp.StatusCode == http.StatusNotFound:
		return fmt.Errorf("%w: status 404", ErrNotFound)
	case resp.StatusCode < 200 || resp.StatusCode > 299:
		return fmt.Errorf("%w: status %d: %s", ErrTransient, resp.StatusCode, string(respBody))
	}

	if out != nil && len(respBody) > 0 {
		if err := json.Unmarshal(respBody, out); err != nil {
			return fmt.Errorf("%w: decoding response: %v", ErrTransient, err)
		}
	}
	return nil
}
