// Package middleware contains HTTP middleware for the Fiber application.
//
// # Components
//
//   - auth: Validates the X-API-Key header against the configured key.
//   - rayid: Assigns a Request ID (RayID) to every incoming request,
//     storing it in the context locals and the X-Ray-ID response header.
package middleware
