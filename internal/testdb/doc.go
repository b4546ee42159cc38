// Package testdb provides utilities for database integration tests.
//
// Tests are gated on a database URL (DATABASE_URL, or GTASK_TEST_DB_URL as a
// fallback). A package's TestMain opens one connection with OpenTestDB and
// applies the embedded migrations with ApplyMigrations; each test then runs
// inside WithTx, whose transaction is always rolled back, so tests never see
// each other's rows and need no cleanup:
//
//	func TestTaskStore_Create(t *testing.T) {
//	    t.Parallel()
//	    testdb.WithTx(t, testDB, func(t *testing.T, tx *sql.Tx) {
//	        tasks := postgres.NewPostgresTaskStore(tx, nil)
//	        ...
//	    })
//	}
package testdb
