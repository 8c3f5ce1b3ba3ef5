// Package loader reads evaluation datasets from CSV, JSON, and
// BibTeX/JabRef files into records.
package loader

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/kailas-cloud/ragscore/internal/domain"
	"github.com/kailas-cloud/ragscore/internal/domain/record"
)

// Format identifies a dataset file format.
type Format string

// Supported dataset formats.
const (
	FormatCSV    Format = "csv"
	FormatJSON   Format = "json"
	FormatBibTeX Format = "bibtex"
)

// IsValid reports whether the format is supported.
func (f Format) IsValid() bool {
	return f == FormatCSV || f == FormatJSON || f == FormatBibTeX
}

// DetectFormat infers the dataset format from the file extension.
func DetectFormat(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".csv":
		return FormatCSV, nil
	case ".json":
		return FormatJSON, nil
	case ".bib", ".bibtex":
		return FormatBibTeX, nil
	default:
		return "", fmt.Errorf("%w: cannot detect format of %q", domain.ErrUnsupportedFormat, path)
	}
}

// Load reads records from path. An empty format is detected from the
// file extension.
func Load(path string, format Format) ([]record.Record, error) {
	if format == "" {
		detected, err := DetectFormat(path)
		if err != nil {
			return nil, err
		}
		format = detected
	}

	switch format {
	case FormatCSV:
		return loadCSV(path)
	case FormatJSON:
		return loadJSON(path)
	case FormatBibTeX:
		return loadBibTeX(path)
	default:
		return nil, fmt.Errorf("%w: %q", domain.ErrUnsupportedFormat, format)
	}
}
