package history

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"
)

// Column layout of the shared result log. The log is a spreadsheet-backed
// web endpoint; each game is one row of display strings, matching the
// sheet's columns exactly.
const (
	colDate = iota
	colTime
	colTotal
	colCorrect
	colAccuracy
	colOperation
	colTimeLimit
	colElapsed
	colCount
)

const defaultHTTPTimeout = 10 * time.Second

// Client talks to the remote result-log endpoint. It implements Source
// and Sink. A single attempt per call; retry policy belongs to callers
// who want one (the quiz flow instead degrades gracefully).
type Client struct {
	baseURL string
	token   string
	http    *http.Client
}

// NewClient creates a Client for the result-log endpoint. token may be
// empty when the endpoint is unauthenticated.
func NewClient(baseURL, token string) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		token:   token,
		http:    &http.Client{Timeout: defaultHTTPTimeout},
	}
}

type appendRequest struct {
	Row []string `json:"row"`
}

type rowsResponse struct {
	Rows [][]string `json:"rows"`
}

// Append posts one finished game as a display-string row.
func (c *Client) Append(ctx context.Context, rec Record) error {
	payload, err := json.Marshal(appendRequest{Row: formatRow(rec)})
	if err != nil {
		return fmt.Errorf("marshal row: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/rows", bytes.NewReader(payload))
	if err != nil {
		return err
	}
	c.setHeaders(req)

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("append result: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		return fmt.Errorf("result log returned status %d", resp.StatusCode)
	}
	return nil
}

// Accuracies fetches all rows and extracts the accuracy column. Rows that
// are short or hold an unparseable or out-of-range accuracy are skipped
// rather than failing the fetch.
func (c *Client) Accuracies(ctx context.Context) ([]float64, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/rows", nil)
	if err != nil {
		return nil, err
	}
	c.setHeaders(req)

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch result log: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("result log returned status %d", resp.StatusCode)
	}

	var payload rowsResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("decode result log: %w", err)
	}

	var out []float64
	for _, row := range payload.Rows {
		acc, ok := parseAccuracyCell(row)
		if !ok {
			continue
		}
		out = append(out, acc)
	}
	return out, nil
}

func (c *Client) setHeaders(req *http.Request) {
	req.Header.Set("Content-Type", "application/json")
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}
}

// formatRow renders a record as the sheet's display strings:
// date, time, total, correct, "NN.N%", operation, "Ns", "N.Ns".
func formatRow(rec Record) []string {
	return []string{
		rec.PlayedAt.Format("2006-01-02"),
		rec.PlayedAt.Format("15:04:05"),
		strconv.Itoa(rec.TotalQuestions),
		strconv.Itoa(rec.CorrectCount),
		fmt.Sprintf("%.1f%%", rec.Accuracy),
		rec.Operation,
		fmt.Sprintf("%ds", rec.TimeLimit),
		fmt.Sprintf("%.1fs", rec.Elapsed.Seconds()),
	}
}

// parseAccuracyCell extracts a valid accuracy percentage from a row.
func parseAccuracyCell(row []string) (float64, bool) {
	if len(row) < colCount {
		return 0, false
	}
	cell := strings.TrimSpace(strings.TrimSuffix(strings.TrimSpace(row[colAccuracy]), "%"))
	acc, err := strconv.ParseFloat(cell, 64)
	if err != nil || acc < 0 || acc > 100 {
		return 0, false
	}
	return acc, true
}
