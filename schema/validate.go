package schema

import (
	"fmt"
	"math/big"
	"reflect"

	"github.com/mummydata/mummy/errs"
	"github.com/mummydata/mummy/wire"
)

// Validate checks message against s, returning an *errs.ValidationError
// naming the innermost (sub-message, sub-schema) pair that failed to match
// (spec section 4.6, "Validation").
func Validate(s Schema, message any) error {
	switch sch := s.(type) {
	case Atomic:
		return validateAtomic(sch, message)
	case Instance:
		return validateInstance(sch, message)
	case Optional:
		return Validate(sch.Schema, message)
	case Tuple:
		return validateTuple(sch, message)
	case List:
		return validateList(sch, message)
	case Dict:
		return validateDict(sch, message)
	case Union:
		return validateUnion(sch, message)
	case anySchema:
		return nil
	case Rule:
		return validateRule(sch, message)
	default:
		return fmt.Errorf("%w: unrecognized schema form %T", errs.ErrInvalidSchema, s)
	}
}

func mismatch(message any, s Schema) error {
	return &errs.ValidationError{Message: message, Schema: s}
}

func validateAtomic(kind Atomic, message any) error {
	ok := false
	switch kind {
	case Bool:
		_, ok = message.(bool)
	case Int:
		switch message.(type) {
		case int64, *big.Int:
			ok = true
		}
	case Float:
		_, ok = message.(float64)
	case Bytes:
		_, ok = message.([]byte)
	case Text:
		_, ok = message.(string)
	case DateKind:
		_, ok = message.(wire.Date)
	case TimeKind:
		_, ok = message.(wire.Time)
	case DateTimeKind:
		_, ok = message.(wire.DateTime)
	case DurationKind:
		_, ok = message.(wire.Duration)
	case DecimalKind:
		_, ok = message.(wire.Decimal)
	}
	if !ok {
		return mismatch(message, kind)
	}
	return nil
}

func validateInstance(sch Instance, message any) error {
	if reflect.DeepEqual(sch.Value, message) {
		return nil
	}
	return mismatch(message, sch)
}

func validateTuple(sch Tuple, message any) error {
	tup, ok := message.(wire.Tuple)
	if !ok {
		return mismatch(message, sch)
	}
	if len(tup) > len(sch) {
		return mismatch(message, sch)
	}

	i := 0
	for ; i < len(sch); i++ {
		if _, isOpt := sch[i].(Optional); isOpt {
			break
		}
		if i >= len(tup) {
			return mismatch(message, sch)
		}
		if err := Validate(sch[i], tup[i]); err != nil {
			return err
		}
	}

	remaining := tup[i:]
	for j, sub := range sch[i:] {
		if j >= len(remaining) {
			break
		}
		opt, isOpt := sub.(Optional)
		if !isOpt {
			// An out-of-order tuple schema was rejected at construction
			// time, so this can't happen for a schema that passed
			// ValidateSchema.
			return mismatch(message, sch)
		}
		if err := Validate(opt.Schema, remaining[j]); err != nil {
			return err
		}
	}

	return nil
}

func validateList(sch List, message any) error {
	lst, ok := message.(wire.List)
	if !ok {
		return mismatch(message, sch)
	}

	if sch.Elem == nil {
		if len(lst) != 0 {
			return mismatch(message, sch)
		}
		return nil
	}

	elemSchema := sch.Elem
	if opt, isOpt := elemSchema.(Optional); isOpt {
		if len(lst) == 0 {
			return nil
		}
		elemSchema = opt.Schema
	} else if len(lst) == 0 {
		return mismatch(message, sch)
	}

	for _, item := range lst {
		if err := Validate(elemSchema, item); err != nil {
			return err
		}
	}
	return nil
}

func validateDict(sch Dict, message any) error {
	hash, ok := message.(wire.Hash)
	if !ok {
		return mismatch(message, sch)
	}

	type keyEntry struct {
		value    Schema
		optional bool
	}
	exact := make(map[string]keyEntry, len(sch))
	wildcards := make(map[Atomic]Schema)
	for _, e := range sch {
		if e.Key.IsWildcard {
			wildcards[e.Key.Wildcard] = e.Value
			continue
		}
		exact[canonicalKey(e.Key.Exact)] = keyEntry{value: e.Value, optional: e.Key.Optional}
	}

	matched := make(map[string]bool, len(hash))
	for _, he := range hash {
		ck := canonicalKey(he.Key)
		if ke, found := exact[ck]; found {
			matched[ck] = true
			if err := Validate(ke.value, he.Value); err != nil {
				return err
			}
			continue
		}

		kind, known := classifyAtomic(he.Key)
		if !known {
			return mismatch(message, sch)
		}
		wsch, hasWildcard := wildcards[kind]
		if !hasWildcard {
			return mismatch(message, sch)
		}
		if err := Validate(wsch, he.Value); err != nil {
			return err
		}
	}

	for ck, ke := range exact {
		if !ke.optional && !matched[ck] {
			return mismatch(message, sch)
		}
	}

	return nil
}

func validateUnion(sch Union, message any) error {
	for _, opt := range sch {
		if err := Validate(opt, message); err == nil {
			return nil
		}
	}
	return mismatch(message, sch)
}

func validateRule(sch Rule, message any) error {
	if sch.Pred(message) {
		return nil
	}
	return mismatch(message, sch)
}

// classifyAtomic reports which Atomic kind a decoded wire value belongs to,
// for matching against Dict wildcard keys.
func classifyAtomic(v any) (Atomic, bool) {
	switch v.(type) {
	case bool:
		return Bool, true
	case int64, *big.Int:
		return Int, true
	case float64:
		return Float, true
	case []byte:
		return Bytes, true
	case string:
		return Text, true
	case wire.Date:
		return DateKind, true
	case wire.Time:
		return TimeKind, true
	case wire.DateTime:
		return DateTimeKind, true
	case wire.Duration:
		return DurationKind, true
	case wire.Decimal:
		return DecimalKind, true
	default:
		return 0, false
	}
}

// canonicalKey renders a dict key as a string unique enough to use as a map
// key and sort key: Go has no generic comparable/ordered constraint broad
// enough to cover every wire value a schema key might be, so keys are
// compared and ordered by this textual form instead (spec section 9,
// "Schema dict key ordering").
func canonicalKey(v any) string {
	return fmt.Sprintf("%T:%v", v, v)
}

// ValidateSchema checks that s is itself well-formed, returning an
// *errs.SchemaError naming the offending sub-schema (spec section 4.6,
// "Schema validation is performed once at schema construction").
func ValidateSchema(s Schema) error {
	switch sch := s.(type) {
	case Atomic:
		return nil
	case Instance:
		return nil
	case Optional:
		return ValidateSchema(sch.Schema)
	case Tuple:
		seenOptional := false
		for _, sub := range sch {
			if opt, isOpt := sub.(Optional); isOpt {
				seenOptional = true
				if err := ValidateSchema(opt.Schema); err != nil {
					return err
				}
				continue
			}
			if seenOptional {
				return &errs.SchemaError{Schema: s}
			}
			if err := ValidateSchema(sub); err != nil {
				return err
			}
		}
		return nil
	case List:
		if sch.Elem == nil {
			return nil
		}
		elem := sch.Elem
		if opt, isOpt := elem.(Optional); isOpt {
			elem = opt.Schema
		}
		return ValidateSchema(elem)
	case Dict:
		for _, entry := range sch {
			if err := ValidateSchema(entry.Value); err != nil {
				return err
			}
		}
		return nil
	case Union:
		for _, opt := range sch {
			if err := ValidateSchema(opt); err != nil {
				return err
			}
		}
		return nil
	case anySchema:
		return nil
	case Rule:
		if sch.Pred == nil {
			return &errs.SchemaError{Schema: s}
		}
		return nil
	default:
		return &errs.SchemaError{Schema: s}
	}
}
