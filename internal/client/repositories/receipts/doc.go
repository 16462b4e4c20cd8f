// Package receipts provides the client-side journal of wallet call receipts.
//
// The journal keeps one row per call id. Values and events are stored as
// JSON text so the CLI can reprint a receipt exactly as it was received.
//
// Typical Usage
//
//	repo := receipts.NewSQLiteRepository(db)
//	_ = repo.Save(ctx, r)
//	last, _ := repo.List(ctx, 20)
//	one, _ := repo.Get(ctx, callID)
package receipts
