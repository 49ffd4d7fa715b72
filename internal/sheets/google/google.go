// Package google implements the row-store ports on top of a Google
// spreadsheet via the sheets/v4 API, authenticated with a service account.
package google

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"finanzas/internal/sheets"

	goption "google.golang.org/api/option"
	gsheet "google.golang.org/api/sheets/v4"
)

// Config carries everything the client needs; credentials are injected by the
// caller instead of being read from the environment here.
type Config struct {
	SpreadsheetID string
	// One of the two credential sources must be set.
	ServiceAccountJSON string
	ServiceAccountFile string
	// Timeout bounds every API call. Retries are deliberately not done at
	// this layer: retrying an append blindly risks duplicate rows.
	Timeout time.Duration
}

type Client struct {
	svc           *gsheet.Service
	spreadsheetID string
	timeout       time.Duration
}

var _ sheets.Store = (*Client)(nil)

func New(ctx context.Context, cfg Config) (*Client, error) {
	if strings.TrimSpace(cfg.SpreadsheetID) == "" {
		return nil, errors.New("missing spreadsheet ID")
	}

	credentialsJSON, err := loadCredentials(cfg)
	if err != nil {
		return nil, err
	}

	svc, err := gsheet.NewService(ctx,
		goption.WithCredentialsJSON(credentialsJSON),
		goption.WithScopes(gsheet.SpreadsheetsScope))
	if err != nil {
		return nil, fmt.Errorf("create sheets service: %w", err)
	}

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}

	return &Client{
		svc:           svc,
		spreadsheetID: cfg.SpreadsheetID,
		timeout:       timeout,
	}, nil
}

func loadCredentials(cfg Config) ([]byte, error) {
	switch {
	case strings.TrimSpace(cfg.ServiceAccountJSON) != "":
		return []byte(cfg.ServiceAccountJSON), nil
	case strings.TrimSpace(cfg.ServiceAccountFile) != "":
		data, err := os.ReadFile(cfg.ServiceAccountFile)
		if err != nil {
			return nil, fmt.Errorf("read service account file: %w", err)
		}
		return data, nil
	default:
		return nil, errors.New("missing service account credentials")
	}
}

func (c *Client) Movements() sheets.Table {
	return &worksheet{client: c, name: sheets.MovementsSheet, headers: sheets.MovementHeaders}
}

func (c *Client) Budgets() sheets.Table {
	return &worksheet{client: c, name: sheets.BudgetsSheet, headers: sheets.BudgetHeaders}
}

func (c *Client) Goals() sheets.Table {
	return &worksheet{client: c, name: sheets.GoalsSheet, headers: sheets.GoalHeaders}
}

// EnsureSheets creates any of the three worksheets that are missing and
// writes their header rows, so a fresh spreadsheet works out of the box.
func (c *Client) EnsureSheets(ctx context.Context) error {
	callCtx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	meta, err := c.svc.Spreadsheets.Get(c.spreadsheetID).Fields("sheets.properties.title").Context(callCtx).Do()
	if err != nil {
		return fmt.Errorf("get spreadsheet: %w", err)
	}

	existing := make(map[string]bool, len(meta.Sheets))
	for _, sh := range meta.Sheets {
		if sh.Properties != nil {
			existing[sh.Properties.Title] = true
		}
	}

	wanted := []struct {
		title   string
		headers []string
	}{
		{sheets.MovementsSheet, sheets.MovementHeaders},
		{sheets.BudgetsSheet, sheets.BudgetHeaders},
		{sheets.GoalsSheet, sheets.GoalHeaders},
	}

	for _, w := range wanted {
		if existing[w.title] {
			continue
		}
		if err := c.addSheet(ctx, w.title, w.headers); err != nil {
			return err
		}
		slog.InfoContext(ctx, "Created worksheet", "title", w.title)
	}
	return nil
}

func (c *Client) addSheet(ctx context.Context, title string, headers []string) error {
	callCtx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	req := &gsheet.BatchUpdateSpreadsheetRequest{
		Requests: []*gsheet.Request{{
			AddSheet: &gsheet.AddSheetRequest{
				Properties: &gsheet.SheetProperties{Title: title},
			},
		}},
	}
	if _, err := c.svc.Spreadsheets.BatchUpdate(c.spreadsheetID, req).Context(callCtx).Do(); err != nil {
		return fmt.Errorf("add sheet %s: %w", title, err)
	}

	row := make([]any, len(headers))
	for i, h := range headers {
		row[i] = h
	}
	headerCtx, cancelHeader := context.WithTimeout(ctx, c.timeout)
	defer cancelHeader()
	vr := &gsheet.ValueRange{Values: [][]any{row}}
	_, err := c.svc.Spreadsheets.Values.Update(c.spreadsheetID, title+"!A1", vr).
		ValueInputOption("USER_ENTERED").Context(headerCtx).Do()
	if err != nil {
		return fmt.Errorf("write headers for %s: %w", title, err)
	}
	return nil
}

// worksheet adapts one sheet tab to the Table port.
type worksheet struct {
	client  *Client
	name    string
	headers []string
}

func (w *worksheet) AppendRow(ctx context.Context, values []any) error {
	callCtx, cancel := context.WithTimeout(ctx, w.client.timeout)
	defer cancel()

	vr := &gsheet.ValueRange{Values: [][]any{values}}
	_, err := w.client.svc.Spreadsheets.Values.Append(w.client.spreadsheetID, w.name+"!A1", vr).
		ValueInputOption("USER_ENTERED").
		InsertDataOption("INSERT_ROWS").
		Context(callCtx).Do()
	if err != nil {
		return fmt.Errorf("append to %s: %w", w.name, err)
	}
	return nil
}

func (w *worksheet) ReadAllRows(ctx context.Context) ([]sheets.Row, error) {
	callCtx, cancel := context.WithTimeout(ctx, w.client.timeout)
	defer cancel()

	rng := fmt.Sprintf("%s!A1:%s", w.name, columnLetter(len(w.headers)))
	resp, err := w.client.svc.Spreadsheets.Values.Get(w.client.spreadsheetID, rng).Context(callCtx).Do()
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", rng, err)
	}
	if len(resp.Values) <= 1 {
		return nil, nil
	}

	// The sheet's own header row wins over the declared headers, so a sheet
	// with reordered columns still reads correctly.
	headers := toStrings(resp.Values[0])
	if len(headers) == 0 {
		headers = w.headers
	}

	out := make([]sheets.Row, 0, len(resp.Values)-1)
	for _, raw := range resp.Values[1:] {
		cells := toStrings(raw)
		row := make(sheets.Row, len(headers))
		for i, h := range headers {
			if h == "" {
				continue
			}
			if i < len(cells) {
				row[h] = cells[i]
			} else {
				row[h] = ""
			}
		}
		out = append(out, row)
	}
	return out, nil
}

func (w *worksheet) UpdateCell(ctx context.Context, row, col int, value any) error {
	if row < 2 {
		return fmt.Errorf("row %d out of range", row)
	}
	if col < 1 {
		return fmt.Errorf("column %d out of range", col)
	}

	callCtx, cancel := context.WithTimeout(ctx, w.client.timeout)
	defer cancel()

	rng := fmt.Sprintf("%s!%s%d", w.name, columnLetter(col), row)
	vr := &gsheet.ValueRange{Values: [][]any{{value}}}
	_, err := w.client.svc.Spreadsheets.Values.Update(w.client.spreadsheetID, rng, vr).
		ValueInputOption("USER_ENTERED").Context(callCtx).Do()
	if err != nil {
		return fmt.Errorf("update %s: %w", rng, err)
	}
	return nil
}

// columnLetter converts a 1-indexed column number to its A1 letter ("A",
// "Z", "AA", ...).
func columnLetter(col int) string {
	var b []byte
	for col > 0 {
		col--
		b = append([]byte{byte('A' + col%26)}, b...)
		col /= 26
	}
	return string(b)
}

func toStrings(in []any) []string {
	out := make([]string, len(in))
	for i, v := range in {
		out[i] = strings.TrimSpace(fmt.Sprint(v))
	}
	return out
}
