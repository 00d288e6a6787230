// Package history persists run outcomes to a local SQLite database.
//
// The database is an audit trail, not a cache: skip decisions always come
// from scanning the output directory, so losing or disabling the history
// file never changes behavior.
package history
