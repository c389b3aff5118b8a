// Package changebookinfo implements the Change Book Info use case: a field-level update of
// title, subject and author where only the supplied fields change.
package changebookinfo
