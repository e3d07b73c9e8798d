// Package bounds infers the generic bounds of a generated Debug impl.
//
// The analysis is syntactic. Every field type is scanned once and each type
// parameter T is classified by how it occurs:
//
//   - direct: `T` itself, anywhere outside a marker wrapper;
//   - marker: anything inside `PhantomData<...>`;
//   - associated: `T::Name` or `<T as Trait>::Name` outside a marker.
//
// Direct use bounds T. Otherwise associated paths are bounded one predicate
// each, a marker-only parameter gets nothing, and an unused parameter is
// bounded. `#[debug(bound = "...")]` on the type replaces the whole
// analysis with the given predicates.
package bounds
