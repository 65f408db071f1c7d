// Package postgresengine provides a PostgreSQL implementation of the archive engine.
//
// It supports multiple database adapters (pgx, sql.DB, sqlx) and builds its SQL with goqu.
// The expected table looks like this:
//
//	CREATE TABLE action_log (
//		sequence_number BIGSERIAL PRIMARY KEY,
//		kind            TEXT NOT NULL,
//		owner           TEXT NOT NULL,
//		occurred_at     TIMESTAMP WITH TIME ZONE NOT NULL,
//		payload         JSONB NOT NULL,
//		metadata        JSONB NOT NULL
//	);
//
// Usage examples:
//
//	// Basic usage
//	db, _ := pgxpool.New(context.Background(), dsn)
//	archive, _ := postgresengine.NewArchiveFromPGXPool(db)
//
//	// With table name and logging
//	archive, _ := postgresengine.NewArchiveFromPGXPool(
//		db,
//		postgresengine.WithTableName("campus_action_log"),
//		postgresengine.WithLogger(slog.Default()),
//	)
//
//	err := archive.Append(ctx, entry)
//	entries, maxSeq, _ := archive.Query(ctx, filter)
package postgresengine
