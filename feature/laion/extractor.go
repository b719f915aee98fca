package laion

import (
	"errors"
	"fmt"
	"math"

	"laion-dataset/core/metadata"
)

// Output field names.
const (
	FieldImage          = "image"
	FieldCaption        = "caption"
	FieldNSFW           = "nsfw"
	FieldSimilarity     = "similarity"
	FieldLicense        = "license"
	FieldURL            = "url"
	FieldOriginalWidth  = "original_width"
	FieldOriginalHeight = "original_height"
)

// Metadata table columns, as written by img2dataset.
const (
	ColumnCaption        = "caption"
	ColumnURL            = "url"
	ColumnNSFW           = "NSFW"
	ColumnSimilarity     = "similarity"
	ColumnLicense        = "LICENSE"
	ColumnOriginalWidth  = "original_width"
	ColumnOriginalHeight = "original_height"
)

const (
	// UntaggedNSFW replaces missing or unknown NSFW tags.
	UntaggedNSFW = "UNTAGGED"
	// MissingSimilarity replaces missing similarity scores.
	MissingSimilarity = -1.0
	// MissingLicense replaces missing licenses.
	MissingLicense = "?"
	// MissingDimension replaces missing original image dimensions.
	MissingDimension = -1
)

// NSFWTags are the class names of the nsfw field, in label order.
var NSFWTags = []string{"UNLIKELY", "UNSURE", "NSFW", UntaggedNSFW}

// ErrMissingColumn is returned when a metadata row lacks a required column.
var ErrMissingColumn = errors.New("missing metadata column")

// Extractor maps one metadata row to record fields.
type Extractor interface {
	Extract(row metadata.Row) (map[string]any, error)
}

// ExtractorFunc adapts a function to the Extractor interface.
type ExtractorFunc func(row metadata.Row) (map[string]any, error)

// Extract calls f(row).
func (f ExtractorFunc) Extract(row metadata.Row) (map[string]any, error) {
	return f(row)
}

// LaionExtractor extracts the LAION-400M metadata fields.
type LaionExtractor struct{}

var requiredColumns = []string{
	ColumnCaption, ColumnURL, ColumnNSFW, ColumnSimilarity,
	ColumnLicense, ColumnOriginalWidth, ColumnOriginalHeight,
}

// Extract implements Extractor.
func (LaionExtractor) Extract(row metadata.Row) (map[string]any, error) {
	for _, col := range requiredColumns {
		if _, ok := row[col]; !ok {
			return nil, fmt.Errorf("%w: %s", ErrMissingColumn, col)
		}
	}

	similarity := row.Float(ColumnSimilarity)
	if math.IsNaN(similarity) {
		similarity = MissingSimilarity
	}

	license := row.String(ColumnLicense)
	if license == "" {
		license = MissingLicense
	}

	return map[string]any{
		FieldCaption:        row.String(ColumnCaption),
		FieldNSFW:           normalizeNSFW(row.String(ColumnNSFW)),
		FieldSimilarity:     similarity,
		FieldLicense:        license,
		FieldURL:            row.String(ColumnURL),
		FieldOriginalWidth:  dimension(row, ColumnOriginalWidth),
		FieldOriginalHeight: dimension(row, ColumnOriginalHeight),
	}, nil
}

func normalizeNSFW(tag string) string {
	for _, t := range NSFWTags[:3] {
		if tag == t {
			return tag
		}
	}
	return UntaggedNSFW
}

func dimension(row metadata.Row, col string) int {
	v, ok := row.Int(col)
	if !ok {
		return MissingDimension
	}
	return v
}
