// Package subgroup models finite-index subgroups of the modular group
// PSL(2,Z) through their action on cosets.
//
// A subgroup of index n is described by a pair of permutations of
// {1,...,n}: permS of order dividing 2 and permR of order dividing 3,
// images of the standard generators S and R = S*T under the coset-action
// homomorphism. The pair must act transitively; the point 1 labels the
// coset of the subgroup itself.
//
// # Construction
//
// There are three ways to build a group:
//
//   - New, from an explicit permutation pair. Coset representatives are
//     enumerated by walking the cycles of permT = permS*permR and
//     connecting cycles through permS.
//   - NewGamma0, the classical congruence subgroup Gamma0(N). Representatives
//     come from a specialized enumeration using the level, and the
//     permutation pair is derived back from them.
//   - FromArithmeticGroup, adapting any external implementation that exposes
//     an index, a membership predicate and a generating permutation pair.
//
// Construction computes the full geometric model eagerly: coset
// representatives, vertices of a fundamental domain, cusp classes with
// normalizers, stabilizers and widths, and the topological signature
// (index, cusps, elliptic point counts, genus). A failed consistency check
// aborts construction; no partially built group is ever returned.
//
// # Queries
//
// The finished group answers membership tests, factors arbitrary elements
// through the coset action, pulls back points of the upper half-plane into
// the fundamental domain in double or arbitrary precision, locates closest
// vertices and cusps, decides congruence via Wohlfahrt's criterion, and
// reports reflectional symmetry properties. Derived tables that are
// expensive to compute (congruence status, normalizer orders,
// symmetrizability) are memoized per instance and safe for concurrent
// readers.
package subgroup
