// Package sqlstore implements the store interfaces on database/sql.
//
// The same code serves SQLite and PostgreSQL: queries are written with '?'
// placeholders and rebound per driver, and constraint failures from either
// driver are mapped onto the store package's sentinel errors. Every store
// accepts a store.DBTX so it can run directly on a *sql.DB or inside a
// transaction obtained through WithTx.
package sqlstore
