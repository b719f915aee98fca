package ingest

import (
	"fmt"
	"time"

	"github.com/dustin/go-humanize"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Summary totals one pipeline run.
type Summary struct {
	Shards   int           `json:"shards"`
	Records  int64         `json:"records"`
	Bytes    int64         `json:"bytes"`
	Duration time.Duration `json:"duration"`
}

// String renders the summary for terminals.
func (s Summary) String() string {
	return fmt.Sprintf("%s shards, %s records, %s of images in %s",
		humanize.Comma(int64(s.Shards)),
		humanize.Comma(s.Records),
		humanize.Bytes(uint64(s.Bytes)),
		s.Duration.Round(time.Millisecond))
}

// MarshalLogObject implements zapcore.ObjectMarshaler.
func (s Summary) MarshalLogObject(enc zapcore.ObjectEncoder) error {
	enc.AddInt("shards", s.Shards)
	enc.AddInt64("records", s.Records)
	enc.AddInt64("bytes", s.Bytes)
	enc.AddDuration("duration", s.Duration)
	return nil
}

var _ zapcore.ObjectMarshaler = Summary{}

func summaryField(s Summary) zap.Field {
	return zap.Object("summary", s)
}
