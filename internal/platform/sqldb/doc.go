// Package sqldb opens the relational store behind the tracker and keeps its
// schema current. It understands two backends: a local SQLite file (the
// default, through the pure-Go modernc.org/sqlite driver) and PostgreSQL
// through pgx. Queries are written with '?' placeholders and rebound for
// the active driver.
package sqldb
