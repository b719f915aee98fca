package laion

import (
	"laion-dataset/core/shards"
)

const (
	// DatasetName is the registered name of the dataset.
	DatasetName = "laion400m"
	// Version is the dataset version.
	Version = "1.0.0"
	// Homepage documents the dataset and how to download it.
	Homepage = "https://laion.ai/blog/laion-400-open-dataset/"
)

// ManualDownloadInstructions tells users how to populate the manual directory.
const ManualDownloadInstructions = `Refer to "Download Information" on ` + Homepage

const citation = `@article{schuhmann2021laion,
  title={LAION-400M: Open Dataset of CLIP-Filtered 400 Million Image-Text Pairs},
  author={Schuhmann, Christoph and Vencu, Richard and Beaumont, Romain and
          Kaczmarczyk, Robert and Mullis, Clayton and Katta, Aarush and
          Coombes, Theo and Jitsev, Jenia and Komatsuzaki, Aran},
  journal={arXiv preprint arXiv:2111.02114},
  year={2021}
}`

// FieldSpec describes one field of the output records.
type FieldSpec struct {
	Name  string   `json:"name"`
	Type  string   `json:"type"`
	Doc   string   `json:"doc"`
	Names []string `json:"names,omitempty"`
}

// Info is the immutable description of the dataset.
type Info struct {
	Name                       string            `json:"name"`
	Version                    string            `json:"version"`
	ReleaseNotes               map[string]string `json:"release_notes"`
	Description                string            `json:"description"`
	Homepage                   string            `json:"homepage"`
	Citation                   string            `json:"citation"`
	ShardCount                 int               `json:"shard_count"`
	ManualDownloadInstructions string            `json:"manual_download_instructions"`
	Features                   []FieldSpec       `json:"features"`
}

// NewInfo returns the dataset description.
func NewInfo() Info {
	return Info{
		Name:    DatasetName,
		Version: Version,
		ReleaseNotes: map[string]string{
			"1.0.0": "Initial release.",
		},
		Description: "LAION-400M: 400 million CLIP-filtered image-text pairs, " +
			"distributed as image tar archives with parquet metadata.",
		Homepage:                   Homepage,
		Citation:                   citation,
		ShardCount:                 shards.Count,
		ManualDownloadInstructions: ManualDownloadInstructions,
		Features: []FieldSpec{
			{Name: FieldImage, Type: "image", Doc: "image"},
			{Name: FieldCaption, Type: "text", Doc: "HTML alt-text attribute"},
			{Name: FieldNSFW, Type: "class_label", Doc: "NSFW tag (detected with CLIP). Incohesive and missing tags are replaced with UNTAGGED", Names: NSFWTags},
			{Name: FieldSimilarity, Type: "float64", Doc: "cosine similarity score between the text and image embedding. Missing values default to -1.0"},
			{Name: FieldLicense, Type: "text", Doc: "type of Creative Commons license (if applicable)"},
			{Name: FieldURL, Type: "text", Doc: "image URL"},
			{Name: FieldOriginalWidth, Type: "int32", Doc: "original width of the image"},
			{Name: FieldOriginalHeight, Type: "int32", Doc: "original height of the image"},
		},
	}
}
