// Package pkguid provides the identifier generators used by the application.
//
// Two strategies are available:
//   - Snowflake: time-ordered numeric IDs (44-bit milliseconds, 11-bit
//     instance, 8-bit counter), unique across instances without
//     coordination. This is the minting backend.
//   - UUID: RFC 4122 string IDs, used for request correlation and event
//     identifiers.
//
// Business code depends on the StringID and NumberID interfaces rather
// than a concrete strategy.
package pkguid
