// Package laion exposes the manually downloaded LAION-400M shards as a dataset.
//
// The Builder turns one shard (an image tar plus its parquet metadata table)
// into a lazy sequence of keyed records. For every image member of the archive
// the member's name stem is parsed as a row index into the metadata table, and
// the image bytes are joined with the fields extracted from that row.
//
// # Record Stream
//
// GenerateShard returns an iter.Seq2. The sequence is finite and
// non-restartable: ranging over it opens the shard files, and ranging again
// re-opens and re-reads them from the start. Breaking out of the loop releases
// the archive. The first error is yielded once and ends the sequence.
//
//	for rec, err := range builder.GenerateShard(ctx, 7) {
//	    if err != nil {
//	        return err
//	    }
//	    fmt.Println(rec.Key, len(rec.Image))
//	}
//
// Records follow archive order, not row order. The join trusts the file
// names: no check is made that the table's row count matches the archive.
//
// # HTTP Endpoints
//
//   - GET /dataset/info : Dataset description and feature schema.
//   - GET /dataset/shards/:idx : Shard file paths and presence.
//   - GET /dataset/shards/:idx/records : Record fields of a shard (?limit=N).
//   - GET /dataset/records/:key : Fields of one record.
//   - GET /dataset/records/:key/image : Raw image bytes of one record.
package laion
