package lenient

import (
	"github.com/kaptinlin/jsonrepair"
	"github.com/pkg/errors"
	"github.com/valyala/fastjson"
)

type options struct {
	repair bool
}

// Option is a functional argument for Parse
type Option func(*options)

// WithRepair makes Parse fall back to github.com/kaptinlin/jsonrepair
// when the text cannot be read as-is. Repair is far more forgiving:
// it will close unbalanced brackets and drop trailing commas.
func WithRepair() Option {
	return func(o *options) {
		o.repair = true
	}
}

// Parse reads object or array shaped text (see Canonicalize) and
// returns it as Go values: map[string]interface{}, []interface{},
// string, float64, bool, or nil.
func Parse(text string, opts ...Option) (interface{}, error) {
	var o options
	for _, f := range opts {
		f(&o)
	}
	canonical, err := Canonicalize(text)
	if err != nil {
		if !o.repair {
			return nil, err
		}
		repaired, repairErr := jsonrepair.JSONRepair(text)
		if repairErr != nil {
			return nil, errors.Wrapf(err, "repair also failed (%s)", repairErr)
		}
		canonical = repaired
	}
	return Decode(canonical)
}

// Decode turns strict JSON text into Go values.
func Decode(canonical string) (interface{}, error) {
	var parser fastjson.Parser
	v, err := parser.Parse(canonical)
	if err != nil {
		return nil, errors.Wrap(err, "json")
	}
	return toGo(v)
}

func toGo(v *fastjson.Value) (interface{}, error) {
	switch v.Type() {
	case fastjson.TypeNull:
		return nil, nil
	case fastjson.TypeTrue:
		return true, nil
	case fastjson.TypeFalse:
		return false, nil
	case fastjson.TypeNumber:
		// fastjson also takes inf, nan and a few other non-JSON spellings
		if raw := v.String(); !jsonNumberRE.MatchString(raw) {
			return nil, errors.Errorf("json: invalid number '%s'", raw)
		}
		return v.Float64()
	case fastjson.TypeString:
		b, err := v.StringBytes()
		if err != nil {
			return nil, errors.WithStack(err)
		}
		return string(b), nil
	case fastjson.TypeArray:
		elements, err := v.Array()
		if err != nil {
			return nil, errors.WithStack(err)
		}
		a := make([]interface{}, len(elements))
		for i, e := range elements {
			a[i], err = toGo(e)
			if err != nil {
				return nil, err
			}
		}
		return a, nil
	case fastjson.TypeObject:
		o, err := v.Object()
		if err != nil {
			return nil, errors.WithStack(err)
		}
		m := make(map[string]interface{}, o.Len())
		var visitErr error
		o.Visit(func(key []byte, value *fastjson.Value) {
			if visitErr != nil {
				return
			}
			m[string(key)], visitErr = toGo(value)
		})
		if visitErr != nil {
			return nil, visitErr
		}
		return m, nil
	default:
		return nil, errors.Errorf("internal error: unexpected json type %s", v.Type())
	}
}
