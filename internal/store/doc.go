// Package store defines interfaces for data persistence operations.
// These interfaces abstract the underlying relational store from the
// tracker's business rules, which live in internal/service.
package store
