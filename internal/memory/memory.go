package memory

import (
	"context"
	"fmt"
)

const valueRange = "Sheet1!A:B"

// SheetsAPI is the slice of the Google client the store needs.
type SheetsAPI interface {
	SheetValues(ctx context.Context, token, sheetID, valueRange string) ([][]string, error)
	AppendSheetRow(ctx context.Context, token, sheetID, valueRange string, row []string) error
}

type TokenSource interface {
	AccessToken(ctx context.Context) (string, error)
}

// Store is a spreadsheet-backed key/value memory. It is an auxiliary feature:
// nothing in the chat pipeline reads or writes it.
type Store struct {
	tokens  TokenSource
	sheets  SheetsAPI
	sheetID string
}

func NewStore(tokens TokenSource, sheets SheetsAPI, sheetID string) *Store {
	return &Store{tokens: tokens, sheets: sheets, sheetID: sheetID}
}

// Get returns the value of the last row whose first column matches key.
// Appends are never compacted, so last row wins.
func (s *Store) Get(ctx context.Context, key string) (string, error) {
	token, err := s.tokens.AccessToken(ctx)
	if err != nil {
		return "", err
	}
	rows, err := s.sheets.SheetValues(ctx, token, s.sheetID, valueRange)
	if err != nil {
		return "", err
	}
	value := ""
	found := false
	for _, row := range rows {
		if len(row) >= 2 && row[0] == key {
			value = row[1]
			found = true
		}
	}
	if !found {
		return "", fmt.Errorf("memory key %q not found", key)
	}
	return value, nil
}

// Set appends a [key, value] row.
func (s *Store) Set(ctx context.Context, key, value string) error {
	token, err := s.tokens.AccessToken(ctx)
	if err != nil {
		return err
	}
	return s.sheets.AppendSheetRow(ctx, token, s.sheetID, valueRange, []string{key, value})
}
