// Package io provides JSON export and import for computed group models.
//
// The format captures the immutable field set of a built group: the
// generator descriptor, coset representatives, vertices, cusp classes and
// the signature. Matrices are serialized as four-entry integer arrays in
// row-major order; arbitrary-precision entries survive the round trip
// exactly.
//
// Import validates the structure, rebuilds the group from the generator
// descriptor and cross-checks the stored invariants against the rebuilt
// ones, so a tampered or stale file is rejected rather than trusted.
// Every exported model carries a fresh run identifier and timestamp; two
// exports of the same group differ only in those fields.
package io
