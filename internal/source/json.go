package source

import (
	"bufio"
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/IshaanNene/CatalogGoat/internal/types"
)

// Crawler exports can carry very large markdown bodies on a single line.
const maxLineSize = 64 * 1024 * 1024

// ReadJSONFile reads a JSON array of page records.
func ReadJSONFile(path string) ([]types.PageRecord, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, &types.LoadError{Path: path, Err: err}
	}
	defer f.Close()

	pages, err := DecodeJSON(f)
	if err != nil {
		return nil, &types.LoadError{Path: path, Err: err}
	}
	return pages, nil
}

// DecodeJSON decodes a JSON array of page records.
func DecodeJSON(r io.Reader) ([]types.PageRecord, error) {
	var pages []types.PageRecord
	if err := json.NewDecoder(r).Decode(&pages); err != nil {
		if err == io.EOF {
			return nil, types.ErrEmptyInput
		}
		return nil, fmt.Errorf("decoding page array: %w", err)
	}
	return pages, nil
}

// ReadJSONLFile reads one page record per line.
func ReadJSONLFile(path string) ([]types.PageRecord, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, &types.LoadError{Path: path, Err: err}
	}
	defer f.Close()

	pages, err := DecodeJSONL(f)
	if err != nil {
		return nil, &types.LoadError{Path: path, Err: err}
	}
	return pages, nil
}

// DecodeJSONL decodes newline-delimited page records. Blank lines are skipped.
func DecodeJSONL(r io.Reader) ([]types.PageRecord, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineSize)

	var pages []types.PageRecord
	line := 0
	for scanner.Scan() {
		line++
		b := bytes.TrimSpace(scanner.Bytes())
		if len(b) == 0 {
			continue
		}
		var p types.PageRecord
		if err := json.Unmarshal(b, &p); err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
		pages = append(pages, p)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading lines: %w", err)
	}
	return pages, nil
}
