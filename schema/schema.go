// Package schema implements the validation and transform/untransform layer
// that sits above the wire codec: a small type system over the value space
// that checks typed messages and removes information already implied by a
// shared schema before encoding (spec section 4.6, "Schema layer").
package schema

// Schema is the closed set of schema forms. Only the types defined in this
// package implement it.
type Schema interface {
	schemaForm()
}

// Atomic matches any value of one on-wire primitive kind, by exact Go type
// (spec section 4.6, "Atomic types").
type Atomic uint8

const (
	Bool Atomic = iota
	Int
	Float
	Bytes
	Text
	DateKind
	TimeKind
	DateTimeKind
	DurationKind
	DecimalKind
)

func (Atomic) schemaForm() {}

// Instance matches a message that is equal to Value (spec section 4.6,
// "Atomic-instance").
type Instance struct {
	Value any
}

func (Instance) schemaForm() {}

// Optional marks a Tuple element, Dict key, or List element as not required
// to be present. It is only meaningful inside those three compound forms
// (spec section 4.6).
type Optional struct {
	Schema Schema
}

func (Optional) schemaForm() {}

// Tuple matches a wire.Tuple no longer than the schema itself, whose leading
// non-optional entries must all be present and whose trailing Optional
// entries may be absent (spec section 4.6, "Tuple schema").
type Tuple []Schema

func (Tuple) schemaForm() {}

// List matches a wire.List whose elements all match Elem. A nil Elem means
// the empty schema `[]`, which matches only the empty list. Wrapping Elem in
// Optional additionally permits an empty list (spec section 4.6, "List
// schema").
type List struct {
	Elem Schema
}

func (List) schemaForm() {}

// DictKey identifies one entry of a Dict schema: either an exact-match key
// (optionally itself Optional, permitting the key to be absent) or a
// wildcard over all message keys of a given Atomic kind not claimed by an
// exact-match entry (spec section 4.6, "Dict schema").
type DictKey struct {
	Wildcard   Atomic
	IsWildcard bool
	Exact      any
	Optional   bool
}

// Key builds a required exact-match DictKey.
func Key(value any) DictKey { return DictKey{Exact: value} }

// OptionalKey builds an exact-match DictKey whose key may be absent from the
// message.
func OptionalKey(value any) DictKey { return DictKey{Exact: value, Optional: true} }

// WildcardKey builds a DictKey that matches any otherwise-unclaimed message
// key of the given Atomic kind.
func WildcardKey(kind Atomic) DictKey { return DictKey{Wildcard: kind, IsWildcard: true} }

// DictEntry pairs one DictKey with the schema its value must match.
type DictEntry struct {
	Key   DictKey
	Value Schema
}

// Dict matches a wire.Hash (spec section 4.6, "Dict schema"). Order of
// Entries does not affect matching; it only affects nothing externally
// visible, since transform/untransform always re-derive a canonical
// ordering (spec section 9, "Schema dict key ordering").
type Dict []DictEntry

func (Dict) schemaForm() {}

// Union matches if any one of Options matches (spec section 4.6, "Union").
type Union []Schema

func (Union) schemaForm() {}

type anySchema struct{}

func (anySchema) schemaForm() {}

// Any matches every value (spec section 4.6, "ANY").
var Any Schema = anySchema{}

// Rule matches a value iff Pred returns true for it (spec section 4.6,
// "RULE").
type Rule struct {
	Pred func(value any) bool
}

func (Rule) schemaForm() {}
