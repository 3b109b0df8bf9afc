// Package service holds the tracker's business rules.
//
// The SessionManager owns the single active login session and resolves the
// current user for every session-scoped operation. The entity services guard
// creates and deletes with referential checks that run before any write,
// and ReportService serves the read side. Every operation runs inside
// store.RunInTransaction. Failures are sentinel errors classified with
// KindOf.
package service
