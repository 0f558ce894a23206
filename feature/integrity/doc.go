// Package integrity reports on the health of both replicas without changing them.
//
// # Checks Provided
//
//   - Layout: the bucket exists, how many day snapshots it holds, which objects under
//     the day prefix are not day snapshots, and whether the catalog object exists.
//   - Snapshots: every local row and remote object is decoded; the ones that fail are
//     listed. A sync of such a key fails until it is repaired.
//   - Schema: the local tables have every column the models declare.
//
// # HTTP Endpoints
//
//   - GET /integrity : Runs all checks.
//   - GET /integrity/layout : Runs the layout check (supports ?fix=true to create the bucket).
//   - GET /integrity/snapshots : Runs the snapshot check.
//   - GET /integrity/schema : Runs the schema check.
package integrity
