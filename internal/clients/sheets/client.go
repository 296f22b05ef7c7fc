// Package sheets implements the record-keeper over a Google Sheets
// spreadsheet. Every push rewrites the roster tab in full.
package sheets

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"google.golang.org/api/googleapi"
	"google.golang.org/api/option"
	sheetsapi "google.golang.org/api/sheets/v4"

	"github.com/ExoCode33/bp-idolls-guild-manager/internal/catalog"
	"github.com/ExoCode33/bp-idolls-guild-manager/internal/entities"
	apperr "github.com/ExoCode33/bp-idolls-guild-manager/internal/errors"
)

// Config holds configuration for the sheets client
type Config struct {
	SpreadsheetID   string
	SheetName       string // tab to rewrite, e.g. "Roster"
	CredentialsFile string // service-account JSON key path
}

// Client pushes roster snapshots to a spreadsheet tab
type Client struct {
	svc           *sheetsapi.Service
	spreadsheetID string
	sheetName     string
}

// NewClient creates a sheets client authenticated with a service account
func NewClient(ctx context.Context, cfg *Config) (*Client, error) {
	if cfg.SpreadsheetID == "" {
		return nil, apperr.InvalidArgument("spreadsheet ID cannot be empty")
	}
	if cfg.SheetName == "" {
		return nil, apperr.InvalidArgument("sheet name cannot be empty")
	}

	svc, err := sheetsapi.NewService(ctx, option.WithCredentialsFile(cfg.CredentialsFile))
	if err != nil {
		return nil, apperr.Wrap(err, "failed to create sheets service")
	}

	return &Client{
		svc:           svc,
		spreadsheetID: cfg.SpreadsheetID,
		sheetName:     cfg.SheetName,
	}, nil
}

var headerRow = []interface{}{
	"Member", "IGN", "Type", "Class", "Subclass", "Role",
	"Battle Power", "BP Band", "Guild", "Timezone",
}

// ReplaceAll clears the roster tab and rewrites it from the snapshot
func (c *Client) ReplaceAll(ctx context.Context, entries []*entities.RosterEntry) error {
	values := make([][]interface{}, 0, len(entries)+1)
	values = append(values, headerRow)
	for _, entry := range entries {
		ch := entry.Character
		values = append(values, []interface{}{
			ch.OwnerID,
			ch.IGN,
			string(ch.Type),
			ch.Class,
			ch.Subclass,
			ch.Role,
			strconv.Itoa(ch.BattlePower),
			catalog.BandLabelFor(ch.BattlePower),
			ch.Guild,
			entry.Timezone,
		})
	}

	tabRange := fmt.Sprintf("%s!A:J", c.sheetName)

	_, err := c.svc.Spreadsheets.Values.
		Clear(c.spreadsheetID, tabRange, &sheetsapi.ClearValuesRequest{}).
		Context(ctx).Do()
	if err != nil {
		return wrapAPIError(err, "failed to clear roster tab")
	}

	_, err = c.svc.Spreadsheets.Values.
		Update(c.spreadsheetID, tabRange, &sheetsapi.ValueRange{Values: values}).
		ValueInputOption("RAW").
		Context(ctx).Do()
	if err != nil {
		return wrapAPIError(err, "failed to write roster tab")
	}

	return nil
}

// wrapAPIError classifies quota responses so the scheduler can back off
func wrapAPIError(err error, message string) error {
	var apiErr *googleapi.Error
	if errors.As(err, &apiErr) {
		if apiErr.Code == http.StatusTooManyRequests ||
			(apiErr.Code == http.StatusForbidden && strings.Contains(strings.ToLower(apiErr.Message), "quota")) {
			return apperr.WrapWithCode(err, apperr.CodeRateLimited, message)
		}
	}
	return apperr.Wrap(err, message)
}
