package sheets

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"

	goption "google.golang.org/api/option"
	gsheet "google.golang.org/api/sheets/v4"

	"personal-budget/internal/core"
	"personal-budget/internal/source"
)

// ValuesGetter fetches a cell range as the Sheets API returns it.
type ValuesGetter interface {
	GetValues(ctx context.Context, spreadsheetID, readRange string) ([][]interface{}, error)
}

// Credentials selects the service account used to read the sheet. The first
// non-empty field wins: inline JSON, then a file path, then the path from
// GOOGLE_APPLICATION_CREDENTIALS.
type Credentials struct {
	ServiceAccountJSON string
	ServiceAccountFile string
	ApplicationDefault string
}

type Client struct {
	values        ValuesGetter
	spreadsheetID string
	readRange     string
}

var (
	_ source.DocumentReader = (*Client)(nil)
	_ source.Locator        = (*Client)(nil)
)

// New creates a Sheets backed reader using service account credentials.
func New(ctx context.Context, spreadsheetID, readRange string, creds Credentials) (*Client, error) {
	spreadsheetID = strings.TrimSpace(spreadsheetID)
	if spreadsheetID == "" {
		return nil, errors.New("missing spreadsheet ID")
	}
	svc, err := newSheetsService(ctx, creds)
	if err != nil {
		return nil, fmt.Errorf("sheets service: %w", err)
	}
	return NewWithGetter(serviceGetter{svc: svc}, spreadsheetID, readRange), nil
}

// NewWithGetter wires a custom ValuesGetter, used by tests.
func NewWithGetter(g ValuesGetter, spreadsheetID, readRange string) *Client {
	if strings.TrimSpace(readRange) == "" {
		readRange = "Budget!A:B"
	}
	return &Client{values: g, spreadsheetID: spreadsheetID, readRange: readRange}
}

// Location implements source.Locator
func (c *Client) Location() string {
	return fmt.Sprintf("sheets:%s/%s", c.spreadsheetID, c.readRange)
}

// Load implements source.DocumentReader
func (c *Client) Load(ctx context.Context) (core.Document, error) {
	if c.values == nil {
		return core.Document{}, errors.New("sheets service not initialized")
	}
	values, err := c.values.GetValues(ctx, c.spreadsheetID, c.readRange)
	if err != nil {
		return core.Document{}, fmt.Errorf("read range %s: %w", c.readRange, err)
	}
	doc, err := parseValues(values)
	if err != nil {
		return core.Document{}, fmt.Errorf("parse range %s: %w", c.readRange, err)
	}
	return doc, nil
}

type serviceGetter struct {
	svc *gsheet.Service
}

func (g serviceGetter) GetValues(ctx context.Context, spreadsheetID, readRange string) ([][]interface{}, error) {
	resp, err := g.svc.Spreadsheets.Values.Get(spreadsheetID, readRange).
		ValueRenderOption("UNFORMATTED_VALUE").
		Context(ctx).
		Do()
	if err != nil {
		return nil, err
	}
	return resp.Values, nil
}

func newSheetsService(ctx context.Context, creds Credentials) (*gsheet.Service, error) {
	var (
		credentialsJSON []byte
		err             error
	)

	switch {
	case strings.TrimSpace(creds.ServiceAccountJSON) != "":
		slog.InfoContext(ctx, "Using inline service account credentials")
		credentialsJSON = []byte(creds.ServiceAccountJSON)
	case strings.TrimSpace(creds.ServiceAccountFile) != "":
		credentialsJSON, err = os.ReadFile(creds.ServiceAccountFile)
		if err != nil {
			return nil, fmt.Errorf("read service account file: %w", err)
		}
	case strings.TrimSpace(creds.ApplicationDefault) != "":
		credentialsJSON, err = os.ReadFile(creds.ApplicationDefault)
		if err != nil {
			return nil, fmt.Errorf("read application credentials: %w", err)
		}
	default:
		return nil, errors.New("missing service account credentials (set GOOGLE_SERVICE_ACCOUNT_JSON, GOOGLE_SERVICE_ACCOUNT_FILE, or GOOGLE_APPLICATION_CREDENTIALS)")
	}

	service, err := gsheet.NewService(ctx,
		goption.WithCredentialsJSON(credentialsJSON),
		goption.WithScopes(gsheet.SpreadsheetsReadonlyScope))
	if err != nil {
		return nil, fmt.Errorf("create sheets service: %w", err)
	}
	return service, nil
}
