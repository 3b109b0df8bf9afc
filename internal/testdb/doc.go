// Package testdb provides throwaway migrated databases for tests.
//
// Every database lives in its own temporary directory, so tests never share
// state and need no cleanup beyond what testing.T already does. WithTx adds
// transaction-based isolation for tests that want to discard their writes
// while keeping the database.
package testdb
