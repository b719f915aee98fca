package catalog

import "time"

// TableName is the catalog table.
const TableName = "laion_records"

// Record is one catalogued dataset record.
type Record struct {
	Key            string    `gorm:"column:record_key;primaryKey;type:varchar(32)" json:"key"`
	ShardIdx       int       `gorm:"column:shard_idx;index" json:"shard_idx"`
	RowIdx         int       `gorm:"column:row_idx" json:"row_idx"`
	Caption        string    `gorm:"column:caption;type:text" json:"caption"`
	URL            string    `gorm:"column:url;type:text" json:"url"`
	NSFW           string    `gorm:"column:nsfw;type:varchar(16)" json:"nsfw"`
	Similarity     float64   `gorm:"column:similarity" json:"similarity"`
	License        string    `gorm:"column:license;type:varchar(255)" json:"license"`
	OriginalWidth  int       `gorm:"column:original_width" json:"original_width"`
	OriginalHeight int       `gorm:"column:original_height" json:"original_height"`
	ImageSize      int64     `gorm:"column:image_size" json:"image_size"`
	ObjectKey      string    `gorm:"column:object_key;type:varchar(255)" json:"object_key"`
	UpdatedAt      time.Time `gorm:"column:updated_at" json:"updated_at"`
}

// TableName overrides the table name used by GORM.
func (Record) TableName() string {
	return TableName
}
