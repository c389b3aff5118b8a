// Package shell contains the infrastructure shared by the circulation features:
// mapping between domain events and journal entries, event metadata, recording events
// with retry on concurrency conflicts, handler results, the user-interaction contract
// and observability helpers.
//
// In Hexagonal Architecture terminology, this would be the 'adapters' layer.
package shell
