// Package integrity provides health checks for the dataset and its sinks.
//
// # Checks Provided
//
//   - Shards: Verifies that every shard of the configured range has both its .tar archive and .parquet metadata file in the manual directory.
//   - Structure: Checks if the folders written by the storage sink exist in the bucket (images/, metadata/).
//   - Catalog: Validates that the catalog table matches the record model (columns, types).
//
// # HTTP Endpoints
//
//   - GET /integrity : Runs all checks.
//   - GET /integrity/shards : Runs the shard file check (supports ?start=&end=).
//   - GET /integrity/structure : Runs structure check (supports ?fix=true).
//   - GET /integrity/catalog : Runs catalog schema check.
package integrity
