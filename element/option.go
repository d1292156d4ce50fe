package element

// Option is a small generic replacement for the sentinel "match-any" magic
// numbers the source encodes per descriptor field. A None value matches any
// grid value for that field; a Some value requires equality.
//
// This mirrors golang.org/x/exp/constraints' ordered-type generics already
// pulled in by the teacher's go.mod, rather than introducing a new
// dependency for what is a two-line type.
type Option[T comparable] struct {
	value T
	some  bool
}

// Some returns a present Option wrapping v.
func Some[T comparable](v T) Option[T] {
	return Option[T]{value: v, some: true}
}

// None returns an absent ("match-any") Option.
func None[T comparable]() Option[T] {
	return Option[T]{}
}

// IsSome reports whether the option carries a value.
func (o Option[T]) IsSome() bool {
	return o.some
}

// Get returns the wrapped value and whether it was present.
func (o Option[T]) Get() (T, bool) {
	return o.value, o.some
}

// MatchesGrid reports whether this field, as known in an ElementDescriptor,
// is satisfied by a concrete grid-meta value: a None field always matches,
// a Some field requires equality.
func (o Option[T]) MatchesGrid(gridValue T) bool {
	if !o.some {
		return true
	}
	return o.value == gridValue
}
