// Package testdb provides database helpers for integration tests.
//
// Tests that need PostgreSQL call GetTestDBWithT, which skips when no
// database URL is configured:
//
//	//go:build integration
//
//	func TestStoreAgainstPostgres(t *testing.T) {
//		db := testdb.GetTestDBWithT(t)
//		testdb.WithTx(t, db, func(t *testing.T, tx *sql.Tx) {
//			// changes are rolled back when fn returns
//		})
//	}
package testdb
