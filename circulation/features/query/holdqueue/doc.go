// Package holdqueue implements the Hold Queue query use case.
//
// It lists the pending hold requests of one book, earliest first, as the catalog currently
// holds them. Requests that are past their expiry but not purged yet are flagged.
package holdqueue
