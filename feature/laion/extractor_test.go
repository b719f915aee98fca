package laion

import (
	"math"
	"testing"

	"laion-dataset/core/metadata"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fullRow() metadata.Row {
	return metadata.Row{
		ColumnCaption:        "a lighthouse at dusk",
		ColumnURL:            "https://example.com/l.jpg",
		ColumnNSFW:           "UNSURE",
		ColumnSimilarity:     0.41,
		ColumnLicense:        "by-nc-sa",
		ColumnOriginalWidth:  int32(1024),
		ColumnOriginalHeight: int32(768),
	}
}

func TestLaionExtractor(t *testing.T) {
	fields, err := LaionExtractor{}.Extract(fullRow())
	require.NoError(t, err)

	assert.Equal(t, map[string]any{
		FieldCaption:        "a lighthouse at dusk",
		FieldURL:            "https://example.com/l.jpg",
		FieldNSFW:           "UNSURE",
		FieldSimilarity:     0.41,
		FieldLicense:        "by-nc-sa",
		FieldOriginalWidth:  1024,
		FieldOriginalHeight: 768,
	}, fields)
}

func TestLaionExtractor_Placeholders(t *testing.T) {
	row := metadata.Row{
		ColumnCaption:        nil,
		ColumnURL:            "https://example.com/x.jpg",
		ColumnNSFW:           nil,
		ColumnSimilarity:     nil,
		ColumnLicense:        nil,
		ColumnOriginalWidth:  nil,
		ColumnOriginalHeight: nil,
	}
	fields, err := LaionExtractor{}.Extract(row)
	require.NoError(t, err)

	assert.Equal(t, "", fields[FieldCaption])
	assert.Equal(t, UntaggedNSFW, fields[FieldNSFW])
	assert.Equal(t, MissingSimilarity, fields[FieldSimilarity])
	assert.Equal(t, MissingLicense, fields[FieldLicense])
	assert.Equal(t, MissingDimension, fields[FieldOriginalWidth])
	assert.Equal(t, MissingDimension, fields[FieldOriginalHeight])

	t.Run("NaNSimilarity", func(t *testing.T) {
		row := fullRow()
		row[ColumnSimilarity] = math.NaN()
		fields, err := LaionExtractor{}.Extract(row)
		require.NoError(t, err)
		assert.Equal(t, MissingSimilarity, fields[FieldSimilarity])
	})
}

func TestNormalizeNSFW(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"UNLIKELY", "UNLIKELY"},
		{"UNSURE", "UNSURE"},
		{"NSFW", "NSFW"},
		{"nsfw", UntaggedNSFW},
		{"", UntaggedNSFW},
		{"None", UntaggedNSFW},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, normalizeNSFW(tt.in))
		})
	}
}

func TestLaionExtractor_MissingColumn(t *testing.T) {
	row := fullRow()
	delete(row, ColumnLicense)

	_, err := LaionExtractor{}.Extract(row)
	assert.ErrorIs(t, err, ErrMissingColumn)
	assert.Contains(t, err.Error(), ColumnLicense)
}

func TestNewInfo(t *testing.T) {
	info := NewInfo()
	assert.Equal(t, "laion400m", info.Name)
	assert.Equal(t, "1.0.0", info.Version)
	assert.Equal(t, "Initial release.", info.ReleaseNotes["1.0.0"])
	assert.Equal(t, 41455, info.ShardCount)
	assert.Contains(t, info.ManualDownloadInstructions, Homepage)

	names := make([]string, 0, len(info.Features))
	for _, f := range info.Features {
		names = append(names, f.Name)
	}
	assert.Equal(t, []string{
		FieldImage, FieldCaption, FieldNSFW, FieldSimilarity,
		FieldLicense, FieldURL, FieldOriginalWidth, FieldOriginalHeight,
	}, names)
}
