// Package catalog persists an index of ingested dataset records.
//
// Every record emitted by the ingest pipeline is upserted into the
// laion_records table with its metadata fields and the object-storage key of
// its exported image, so records can be looked up without re-reading the
// shard archives.
//
// # Usage
//
//	repo := catalog.NewRepository(db)
//	if err := repo.Migrate(); err != nil {
//	    return err
//	}
//	err := repo.Upsert(ctx, records)
//	rec, err := repo.Get(ctx, "7_42")
package catalog
