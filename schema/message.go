package schema

import (
	"fmt"

	"github.com/mummydata/mummy/internal/hash"
	"github.com/mummydata/mummy/wire"
)

// Type binds a Schema to a fingerprint computed once at construction time,
// giving callers a single validated handle to Validate/Transform/Encode and
// Decode/Untransform repeatedly without re-checking the schema's own
// well-formedness on every call (spec section 6, "Library surface").
type Type struct {
	schema      Schema
	fingerprint uint64
}

// Bind validates s and returns a *Type for it, or the *errs.SchemaError
// ValidateSchema produced.
func Bind(s Schema) (*Type, error) {
	if err := ValidateSchema(s); err != nil {
		return nil, err
	}
	return &Type{schema: s, fingerprint: fingerprintOf(s)}, nil
}

// Schema returns the schema this Type was bound to.
func (t *Type) Schema() Schema { return t.schema }

// Fingerprint is a stable hash of the schema's shape, suitable for a quick
// sanity check that two peers agree on a schema before exchanging
// transformed (schema-shortened) payloads (spec section 9, "shared-schema
// peers").
func (t *Type) Fingerprint() uint64 { return t.fingerprint }

// New wraps message as a *Message bound to t, without validating it; call
// Validate explicitly when the message did not just come from a trusted
// source such as a successful Decode.
func (t *Type) New(message any) *Message {
	return &Message{typ: t, value: message}
}

// Decode parses data as a plain (non-schema-shortened) wire payload and
// binds the result to t without validating it against the schema.
func (t *Type) Decode(data []byte) (*Message, error) {
	value, err := wire.Decode(data)
	if err != nil {
		return nil, err
	}
	return t.New(value), nil
}

// Untransform reverses a schema-shortened payload's Transform, rebuilding
// the full message shape from transformed.
func (t *Type) Untransform(transformed any) (*Message, error) {
	value, err := Untransform(t.schema, transformed)
	if err != nil {
		return nil, err
	}
	return t.New(value), nil
}

// DecodeTransformed parses data as a schema-shortened wire payload (the
// output of Message.EncodeTransformed) and reconstructs the full message.
func (t *Type) DecodeTransformed(data []byte) (*Message, error) {
	transformed, err := wire.Decode(data)
	if err != nil {
		return nil, err
	}
	return t.Untransform(transformed)
}

// Message pairs a value with the Type it is meant to satisfy.
type Message struct {
	typ   *Type
	value any
}

// Value returns the underlying message value.
func (m *Message) Value() any { return m.value }

// Validate checks m's value against its Type's schema.
func (m *Message) Validate() error {
	return Validate(m.typ.schema, m.value)
}

// Transform reshapes m's value per its Type's schema, stripping information
// already implied by the shared schema.
func (m *Message) Transform() (any, error) {
	return Transform(m.typ.schema, m.value)
}

// Encode validates and encodes m's value as a plain wire payload.
func (m *Message) Encode(opts ...wire.EncodeOption) ([]byte, error) {
	if err := m.Validate(); err != nil {
		return nil, err
	}
	return wire.Encode(m.value, opts...)
}

// EncodeTransformed validates m's value, transforms it per the shared
// schema, and encodes the shortened result (spec section 4.6, "Transform").
func (m *Message) EncodeTransformed(opts ...wire.EncodeOption) ([]byte, error) {
	if err := m.Validate(); err != nil {
		return nil, err
	}
	transformed, err := m.Transform()
	if err != nil {
		return nil, err
	}
	return wire.Encode(transformed, opts...)
}

func fingerprintOf(s Schema) uint64 {
	return hash.ID(describe(s))
}

// describe renders a schema's shape as a deterministic string for
// fingerprinting. It is not meant to be parsed back; only compared.
func describe(s Schema) string {
	switch sch := s.(type) {
	case Atomic:
		return fmt.Sprintf("atomic(%d)", sch)
	case Instance:
		return fmt.Sprintf("instance(%v)", sch.Value)
	case Optional:
		return "optional(" + describe(sch.Schema) + ")"
	case Tuple:
		out := "tuple("
		for i, sub := range sch {
			if i > 0 {
				out += ","
			}
			out += describe(sub)
		}
		return out + ")"
	case List:
		if sch.Elem == nil {
			return "list()"
		}
		return "list(" + describe(sch.Elem) + ")"
	case Dict:
		required, optional, wildcards := groupDictKeys(sch)
		out := "dict("
		for _, e := range required {
			out += "r:" + canonicalKey(e.Key.Exact) + "=" + describe(e.Value) + ";"
		}
		for _, e := range optional {
			out += "o:" + canonicalKey(e.Key.Exact) + "=" + describe(e.Value) + ";"
		}
		for kind := Bool; kind <= DecimalKind; kind++ {
			if wsch, ok := wildcards[kind]; ok {
				out += fmt.Sprintf("w:%d=%s;", kind, describe(wsch))
			}
		}
		return out + ")"
	case Union:
		out := "union("
		for i, opt := range sch {
			if i > 0 {
				out += "|"
			}
			out += describe(opt)
		}
		return out + ")"
	case anySchema:
		return "any()"
	case Rule:
		return fmt.Sprintf("rule(%p)", sch.Pred)
	default:
		return fmt.Sprintf("unknown(%T)", s)
	}
}
