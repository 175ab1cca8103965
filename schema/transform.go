package schema

import (
	"fmt"
	"sort"

	"github.com/mummydata/mummy/errs"
	"github.com/mummydata/mummy/wire"
)

// groupDictKeys partitions a Dict schema's entries into required exact keys,
// optional exact keys, and wildcard entries keyed by Atomic kind. Required
// and optional groups are sorted by canonicalKey so transform/untransform
// agree on a position for every exact key without needing the caller to
// order schema entries themselves (spec section 9, "Schema dict key
// ordering").
func groupDictKeys(sch Dict) (required, optional []DictEntry, wildcards map[Atomic]Schema) {
	wildcards = make(map[Atomic]Schema)
	for _, e := range sch {
		if e.Key.IsWildcard {
			wildcards[e.Key.Wildcard] = e.Value
			continue
		}
		if e.Key.Optional {
			optional = append(optional, e)
		} else {
			required = append(required, e)
		}
	}
	sortEntriesByKey(required)
	sortEntriesByKey(optional)
	return required, optional, wildcards
}

func sortEntriesByKey(entries []DictEntry) {
	sort.Slice(entries, func(i, j int) bool {
		return canonicalKey(entries[i].Key.Exact) < canonicalKey(entries[j].Key.Exact)
	})
}

func lookupHashValue(hash wire.Hash, key any) (any, bool) {
	target := canonicalKey(key)
	for _, he := range hash {
		if canonicalKey(he.Key) == target {
			return he.Value, true
		}
	}
	return nil, false
}

// Transform reshapes message according to s, stripping information already
// implied by the schema: a Dict becomes a positional wire.List of required
// values, then optional values (or nil when absent), then trailing
// (key, value) pairs for entries matched by a wildcard key, in lexicographic
// key order; an Instance schema's value collapses to nil since it is already
// known from the schema itself (spec section 4.6, "Transform").
func Transform(s Schema, message any) (any, error) {
	switch sch := s.(type) {
	case Instance:
		return nil, nil

	case List:
		lst, ok := message.(wire.List)
		if !ok {
			return nil, fmt.Errorf("%w: expected a list to transform", errs.ErrInvalidMessage)
		}
		elemSchema := sch.Elem
		if opt, isOpt := elemSchema.(Optional); isOpt {
			elemSchema = opt.Schema
		}
		out := make(wire.List, len(lst))
		for i, item := range lst {
			t, err := Transform(elemSchema, item)
			if err != nil {
				return nil, err
			}
			out[i] = t
		}
		return out, nil

	case Tuple:
		tup, ok := message.(wire.Tuple)
		if !ok {
			return nil, fmt.Errorf("%w: expected a tuple to transform", errs.ErrInvalidMessage)
		}
		out := make(wire.Tuple, len(tup))
		for i, item := range tup {
			sub := sch[i]
			if opt, isOpt := sub.(Optional); isOpt {
				sub = opt.Schema
			}
			t, err := Transform(sub, item)
			if err != nil {
				return nil, err
			}
			out[i] = t
		}
		return out, nil

	case Dict:
		return transformDict(sch, message)

	default:
		return message, nil
	}
}

func transformDict(sch Dict, message any) (any, error) {
	hash, ok := message.(wire.Hash)
	if !ok {
		return nil, fmt.Errorf("%w: expected a hash to transform", errs.ErrInvalidMessage)
	}

	required, optional, wildcards := groupDictKeys(sch)
	claimed := make(map[string]bool, len(required)+len(optional))

	out := make(wire.List, 0, len(required)+len(optional))

	for _, e := range required {
		claimed[canonicalKey(e.Key.Exact)] = true
		v, found := lookupHashValue(hash, e.Key.Exact)
		if !found {
			return nil, fmt.Errorf("%w: required key missing from message", errs.ErrInvalidMessage)
		}
		t, err := Transform(e.Value, v)
		if err != nil {
			return nil, err
		}
		out = append(out, t)
	}

	for _, e := range optional {
		claimed[canonicalKey(e.Key.Exact)] = true
		if v, found := lookupHashValue(hash, e.Key.Exact); found {
			t, err := Transform(e.Value, v)
			if err != nil {
				return nil, err
			}
			out = append(out, t)
		} else {
			out = append(out, nil)
		}
	}

	var remainder []wire.HashEntry
	for _, he := range hash {
		if claimed[canonicalKey(he.Key)] {
			continue
		}
		remainder = append(remainder, he)
	}
	sort.Slice(remainder, func(i, j int) bool {
		return canonicalKey(remainder[i].Key) < canonicalKey(remainder[j].Key)
	})

	for _, he := range remainder {
		kind, known := classifyAtomic(he.Key)
		if !known {
			return nil, fmt.Errorf("%w: message key has no wildcard-matchable type", errs.ErrInvalidMessage)
		}
		wsch, hasWildcard := wildcards[kind]
		if !hasWildcard {
			return nil, fmt.Errorf("%w: message key is not covered by any schema entry", errs.ErrInvalidMessage)
		}
		t, err := Transform(wsch, he.Value)
		if err != nil {
			return nil, err
		}
		out = append(out, he.Key, t)
	}

	return out, nil
}

// Untransform reverses Transform, rebuilding the original message shape from
// its positional form. An Instance schema reconstructs its known value
// directly rather than reading it back from the transformed data.
func Untransform(s Schema, transformed any) (any, error) {
	switch sch := s.(type) {
	case Instance:
		return sch.Value, nil

	case List:
		lst, ok := transformed.(wire.List)
		if !ok {
			return nil, fmt.Errorf("%w: expected a list to untransform", errs.ErrInvalidMessage)
		}
		elemSchema := sch.Elem
		if opt, isOpt := elemSchema.(Optional); isOpt {
			elemSchema = opt.Schema
		}
		out := make(wire.List, len(lst))
		for i, item := range lst {
			v, err := Untransform(elemSchema, item)
			if err != nil {
				return nil, err
			}
			out[i] = v
		}
		return out, nil

	case Tuple:
		tup, ok := transformed.(wire.Tuple)
		if !ok {
			return nil, fmt.Errorf("%w: expected a tuple to untransform", errs.ErrInvalidMessage)
		}
		out := make(wire.Tuple, len(tup))
		for i, item := range tup {
			sub := sch[i]
			if opt, isOpt := sub.(Optional); isOpt {
				sub = opt.Schema
			}
			v, err := Untransform(sub, item)
			if err != nil {
				return nil, err
			}
			out[i] = v
		}
		return out, nil

	case Dict:
		return untransformDict(sch, transformed)

	default:
		return transformed, nil
	}
}

func untransformDict(sch Dict, transformed any) (any, error) {
	lst, ok := transformed.(wire.List)
	if !ok {
		return nil, fmt.Errorf("%w: expected a list to untransform into a hash", errs.ErrInvalidMessage)
	}

	required, optional, wildcards := groupDictKeys(sch)
	if len(lst) < len(required) {
		return nil, fmt.Errorf("%w: too few positional values for required keys", errs.ErrInvalidMessage)
	}

	out := make(wire.Hash, 0, len(lst))
	pos := 0

	for _, e := range required {
		v, err := Untransform(e.Value, lst[pos])
		if err != nil {
			return nil, err
		}
		out = append(out, wire.HashEntry{Key: e.Key.Exact, Value: v})
		pos++
	}

	for _, e := range optional {
		if pos >= len(lst) {
			break
		}
		item := lst[pos]
		pos++
		if item == nil {
			continue
		}
		v, err := Untransform(e.Value, item)
		if err != nil {
			return nil, err
		}
		out = append(out, wire.HashEntry{Key: e.Key.Exact, Value: v})
	}

	for pos < len(lst) {
		key := lst[pos]
		pos++
		if pos >= len(lst) {
			return nil, fmt.Errorf("%w: dangling wildcard key with no value", errs.ErrInvalidMessage)
		}
		valueTransformed := lst[pos]
		pos++

		kind, known := classifyAtomic(key)
		if !known {
			return nil, fmt.Errorf("%w: wildcard key has no recognizable type", errs.ErrInvalidMessage)
		}
		wsch, hasWildcard := wildcards[kind]
		if !hasWildcard {
			return nil, fmt.Errorf("%w: no wildcard schema for key type", errs.ErrInvalidMessage)
		}
		v, err := Untransform(wsch, valueTransformed)
		if err != nil {
			return nil, err
		}
		out = append(out, wire.HashEntry{Key: key, Value: v})
	}

	return out, nil
}
