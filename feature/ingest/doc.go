// Package ingest feeds generated LAION-400M records into downstream sinks.
//
// A Pipeline fans shard indices out to a bounded number of workers. Each
// worker drains one shard's record sequence in archive order and hands every
// record to each configured Sink:
//
//   - StorageSink uploads image bytes and a metadata JSON document per record
//     to object storage.
//   - CatalogSink upserts record fields into the catalog table in batches.
//
// The first error aborts its shard and cancels the rest of the run.
package ingest
