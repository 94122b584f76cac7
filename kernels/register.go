package kernels

import (
	"fmt"

	"github.com/lyteflow/lyteflow/pipe"
)

// Registered kernel kinds.
const (
	KindScaler       = "scaler"
	KindNormalizer   = "normalizer"
	KindRotator      = "rotator"
	KindDuplicator   = "duplicator"
	KindConcat       = "concat"
	KindOneHot       = "onehot"
	KindColumnFilter = "column_filter"
)

// Register adds a factory for every stock kernel to the registry, keyed by
// the Kind constants. Factories read their parameters from definition
// options.
func Register(r *pipe.Registry) {
	r.Register(KindScaler, func(opts map[string]any) (pipe.Element, error) {
		factor, err := optFloat(opts, "factor", 1)
		if err != nil {
			return nil, err
		}
		return NewScaler(optString(opts, "name"), factor), nil
	})

	r.Register(KindNormalizer, func(opts map[string]any) (pipe.Element, error) {
		dependent, err := optBool(opts, "dependent", false)
		if err != nil {
			return nil, err
		}
		return NewNormalizer(optString(opts, "name"), dependent), nil
	})

	r.Register(KindRotator, func(opts map[string]any) (pipe.Element, error) {
		rotations, err := optInts(opts, "rotations")
		if err != nil {
			return nil, err
		}
		keep, err := optBool(opts, "keep_original", false)
		if err != nil {
			return nil, err
		}
		rot, err := NewRotator(optString(opts, "name"), rotations, keep)
		if err != nil {
			return nil, err
		}
		if key := optString(opts, "attribute"); key != "" {
			rot.ExportAs(key)
		}
		return rot, nil
	})

	r.Register(KindDuplicator, func(opts map[string]any) (pipe.Element, error) {
		copies, err := optInt(opts, "copies", 1)
		if err != nil {
			return nil, err
		}
		d := NewDuplicator(optString(opts, "name"), copies)
		if arg := optString(opts, "argument"); arg != "" {
			d.CopiesFrom(arg)
		}
		return d, nil
	})

	r.Register(KindConcat, func(opts map[string]any) (pipe.Element, error) {
		axis, err := optInt(opts, "axis", 0)
		if err != nil {
			return nil, err
		}
		return NewConcat(optString(opts, "name"), axis)
	})

	r.Register(KindOneHot, func(opts map[string]any) (pipe.Element, error) {
		return NewOneHot(optString(opts, "name")), nil
	})

	r.Register(KindColumnFilter, func(opts map[string]any) (pipe.Element, error) {
		columns, err := optStrings(opts, "columns")
		if err != nil {
			return nil, err
		}
		ignore, err := optBool(opts, "ignore_absent", false)
		if err != nil {
			return nil, err
		}
		return NewColumnFilter(optString(opts, "name"), columns, ignore), nil
	})
}

// --- option coercion; definition options arrive as YAML/JSON values ---

func optString(opts map[string]any, key string) string {
	if v, found := opts[key]; found {
		if s, valid := v.(string); valid {
			return s
		}
	}
	return ""
}

func optFloat(opts map[string]any, key string, def float64) (float64, error) {
	v, found := opts[key]
	if !found {
		return def, nil
	}
	switch x := v.(type) {
	case float64:
		return x, nil
	case int:
		return float64(x), nil
	case int64:
		return float64(x), nil
	default:
		return 0, fmt.Errorf("option %q: expected number, got %T", key, v)
	}
}

func optInt(opts map[string]any, key string, def int) (int, error) {
	v, found := opts[key]
	if !found {
		return def, nil
	}
	return asInt(v)
}

func optBool(opts map[string]any, key string, def bool) (bool, error) {
	v, found := opts[key]
	if !found {
		return def, nil
	}
	b, valid := v.(bool)
	if !valid {
		return false, fmt.Errorf("option %q: expected bool, got %T", key, v)
	}
	return b, nil
}

func optInts(opts map[string]any, key string) ([]int, error) {
	v, found := opts[key]
	if !found {
		return nil, nil
	}
	list, valid := v.([]any)
	if !valid {
		return nil, fmt.Errorf("option %q: expected list, got %T", key, v)
	}
	out := make([]int, len(list))
	for i, e := range list {
		n, err := asInt(e)
		if err != nil {
			return nil, fmt.Errorf("option %q: %w", key, err)
		}
		out[i] = n
	}
	return out, nil
}

func optStrings(opts map[string]any, key string) ([]string, error) {
	v, found := opts[key]
	if !found {
		return nil, nil
	}
	list, valid := v.([]any)
	if !valid {
		return nil, fmt.Errorf("option %q: expected list, got %T", key, v)
	}
	out := make([]string, len(list))
	for i, e := range list {
		s, ok := e.(string)
		if !ok {
			return nil, fmt.Errorf("option %q: element %d is %T, expected string", key, i, e)
		}
		out[i] = s
	}
	return out, nil
}
