// Package queue persists conversion jobs in SQLite.
//
// A job records the input directory, output path, and encoding parameters for
// one conversion, plus its lifecycle status and progress. The store applies
// WAL journaling and retries briefly on SQLITE_BUSY so the worker and the CLI
// can share the database.
package queue
