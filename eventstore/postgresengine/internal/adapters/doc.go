// Package adapters provide database adapter implementations for the PostgreSQL archive.
//
// The adapters support pgxpool.Pool, sql.DB, and sqlx.DB behind the common DBAdapter interface,
// so the archive works with any of these connection types.
package adapters
