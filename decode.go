package tagify

import (
	"encoding/json"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/muir/commonerrors"
	"github.com/muir/reflectutils"
	"github.com/pkg/errors"
)

// Validate is a subset of the Validate provided by
// https://github.com/go-playground/validator, allowing
// other implementations to be provided if desired
type Validate interface {
	Struct(s interface{}) error
}

// Decoder moves tag values into structs. The tags come from struct
// tags:
//
//	type Formatting struct {
//		Bold     bool              `tagify:"bold"`
//		FontSize int               `tagify:"fontSize,required" validate:"min=6,max=72"`
//		Color    string            `tagify:"color,kind=string"`
//		Config   map[string]string `tagify:"config"`
//		Ignored  string            `tagify:"-"`
//	}
//
// The name is first. If it is empty, the field name is used. The kind
// is normally derived from the field type: bool fields are bare tags,
// numbers are Numeric, strings are String, maps and structs are Object,
// and slices and arrays are Array. Override it with kind=.
type Decoder struct {
	tag      string
	validate Validate
}

type DecoderOptArg func(*Decoder)

// WithValidate replaces the default validator. Use nil to skip
// validation.
func WithValidate(v Validate) DecoderOptArg {
	return func(d *Decoder) {
		d.validate = v
	}
}

// WithStructTag changes the struct tag that is read. Default "tagify".
func WithStructTag(tag string) DecoderOptArg {
	return func(d *Decoder) {
		d.tag = tag
	}
}

func NewDecoder(opts ...DecoderOptArg) *Decoder {
	d := &Decoder{
		tag:      "tagify",
		validate: validator.New(),
	}
	for _, f := range opts {
		f(d)
	}
	return d
}

type fieldTag struct {
	Name     string `pt:"0"`
	Kind     string `pt:"kind"`
	Required bool   `pt:"required"`
}

type field struct {
	name     string
	kind     Kind
	bare     bool
	required bool
	index    []int
	typ      reflect.Type
}

func (d *Decoder) fields(model interface{}) (reflect.Value, []field, error) {
	v := reflect.ValueOf(model)
	if !v.IsValid() || v.Type().Kind() != reflect.Ptr || v.IsNil() || v.Type().Elem().Kind() != reflect.Struct {
		return reflect.Value{}, nil, commonerrors.ProgrammerError(errors.Errorf(
			"model must be a non-nil pointer to a struct, not %T", model))
	}
	t := v.Type().Elem()
	fields := make([]field, 0, t.NumField())
	for i := 0; i < t.NumField(); i++ {
		f := t.Field(i)
		if !f.IsExported() {
			continue
		}
		var ft fieldTag
		err := reflectutils.SplitTag(f.Tag).Set().Get(d.tag).Fill(&ft)
		if err != nil {
			return reflect.Value{}, nil, commonerrors.ProgrammerError(errors.Wrap(err, f.Name))
		}
		if ft.Name == "-" {
			continue
		}
		fd := field{
			name:     ft.Name,
			required: ft.Required,
			index:    f.Index,
			typ:      f.Type,
		}
		if fd.name == "" {
			fd.name = f.Name
		}
		if ft.Kind != "" {
			fd.kind, err = ParseKind(ft.Kind)
			if err != nil {
				return reflect.Value{}, nil, commonerrors.ProgrammerError(errors.Wrap(err, f.Name))
			}
			if fd.kind == Pattern {
				return reflect.Value{}, nil, commonerrors.ProgrammerError(errors.Errorf(
					"%s: kind=pattern needs a regular expression and cannot be declared in a struct tag", f.Name))
			}
		} else {
			fd.kind, fd.bare, err = kindForType(f.Type)
			if err != nil {
				return reflect.Value{}, nil, commonerrors.ProgrammerError(errors.Wrap(err, f.Name))
			}
		}
		fields = append(fields, fd)
	}
	return v.Elem(), fields, nil
}

func kindForType(t reflect.Type) (Kind, bool, error) {
	switch reflectutils.NonPointer(t).Kind() {
	case reflect.Bool:
		return Boolean, true, nil
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64,
		reflect.Float32, reflect.Float64:
		return Numeric, false, nil
	case reflect.String:
		return String, false, nil
	case reflect.Map, reflect.Struct:
		return Object, false, nil
	case reflect.Slice, reflect.Array:
		return Array, false, nil
	default:
		return Unresolved, false, errors.Errorf("no tag kind for fields of type %s", t)
	}
}

// Specs returns the tag specifications for a model, ready to be given
// to Parse or WithTags.
func (d *Decoder) Specs(model interface{}) ([]interface{}, error) {
	_, fields, err := d.fields(model)
	if err != nil {
		return nil, err
	}
	specs := make([]interface{}, len(fields))
	for i, f := range fields {
		if f.bare {
			specs[i] = f.name
		} else {
			specs[i] = Tag{Tag: f.name, Value: f.kind}
		}
	}
	return specs, nil
}

// Decode fills model, a pointer to a struct, from res and then
// validates it.
func (d *Decoder) Decode(res *Result, model interface{}) error {
	v, fields, err := d.fields(model)
	if err != nil {
		return err
	}
	var missing []string
	for _, f := range fields {
		value, hasValue := res.Value(f.name)
		switch {
		case hasValue:
			err = setField(f, v.FieldByIndex(f.index), value)
		case f.bare && res.Has(f.name):
			err = setField(f, v.FieldByIndex(f.index), true)
		case f.required:
			missing = append(missing, f.name)
			continue
		default:
			continue
		}
		if err != nil {
			return commonerrors.UsageError(errors.Wrapf(err, "tag %s", f.name))
		}
	}
	if len(missing) != 0 {
		return commonerrors.UsageError(errors.Errorf("missing required tags: %s", strings.Join(missing, ", ")))
	}
	if d.validate != nil {
		err := d.validate.Struct(model)
		if err != nil {
			return errors.Wrap(err, "validate")
		}
	}
	return nil
}

func setField(f field, target reflect.Value, value interface{}) error {
	switch value.(type) {
	case map[string]interface{}, []interface{}:
		enc, err := json.Marshal(value)
		if err != nil {
			return errors.WithStack(err)
		}
		p := reflect.New(f.typ)
		err = json.Unmarshal(enc, p.Interface())
		if err != nil {
			return errors.Wrapf(err, "decode into %s", f.typ)
		}
		target.Set(p.Elem())
		return nil
	}
	setter, err := reflectutils.MakeStringSetter(f.typ)
	if err != nil {
		return errors.Wrap(err, f.typ.String())
	}
	return setter(target, fmt.Sprint(value))
}

// ParseInto parses text with tags derived from model and decodes the
// result into model.
func (d *Decoder) ParseInto(options Options, model interface{}) (*Result, error) {
	specs, err := d.Specs(model)
	if err != nil {
		return nil, err
	}
	res, err := Parse(options, specs...)
	if err != nil {
		return nil, err
	}
	return res, d.Decode(res, model)
}

// Bind decodes res into model with a default Decoder.
func Bind(res *Result, model interface{}) error {
	return NewDecoder().Decode(res, model)
}
