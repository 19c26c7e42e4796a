package schema

import "fmt"

// Result holds the outcome of validating a set of values.
// Values contains every field that passed, keyed by name; Errors maps each
// failing field to its message.
type Result struct {
	Values map[string]any
	Errors map[string]string
}

// Valid reports whether no field failed.
func (r Result) Valid() bool {
	return len(r.Errors) == 0
}

// Schema is an ordered set of fields.
type Schema struct {
	fields []Field
	index  map[string]int
}

// New builds a schema from fields.
// PRE: field names are unique and non-empty
// POST: panics on a duplicate or empty name, since schemas are declared at
// package init
func New(fields ...Field) *Schema {
	s := &Schema{
		fields: make([]Field, 0, len(fields)),
		index:  make(map[string]int, len(fields)),
	}
	for _, f := range fields {
		if f.Name == "" {
			panic("schema: field without a name")
		}
		if _, dup := s.index[f.Name]; dup {
			panic(fmt.Sprintf("schema: duplicate field %q", f.Name))
		}
		s.index[f.Name] = len(s.fields)
		s.fields = append(s.fields, f)
	}
	return s
}

// Fields returns the fields in declaration order.
func (s *Schema) Fields() []Field {
	out := make([]Field, len(s.fields))
	copy(out, s.fields)
	return out
}

// Lookup returns the field with the given name.
func (s *Schema) Lookup(name string) (Field, bool) {
	i, ok := s.index[name]
	if !ok {
		return Field{}, false
	}
	return s.fields[i], true
}

// Validate checks every declared field against values.
// Keys in values that the schema does not declare are ignored.
// INVARIANT: a required field missing from values always fails.
func (s *Schema) Validate(values map[string]any) Result {
	res := Result{
		Values: make(map[string]any, len(s.fields)),
		Errors: make(map[string]string),
	}
	for _, f := range s.fields {
		v, msg := f.Check(values[f.Name])
		if msg != "" {
			res.Errors[f.Name] = msg
			continue
		}
		if v != nil {
			res.Values[f.Name] = v
		}
	}
	return res
}

// ValidateField re-validates a single field.
// POST: ok is false when the schema has no such field.
func (s *Schema) ValidateField(name string, value any) (v any, msg string, ok bool) {
	f, ok := s.Lookup(name)
	if !ok {
		return nil, "", false
	}
	v, msg = f.Check(value)
	return v, msg, true
}
