// Package structs reads struct fields by name.
package structs

import (
	"github.com/oleiade/reflections"
	"github.com/pkg/errors"
)

// A Row is an ordered projection of struct fields.
type Row struct {
	Fields []string
	Values []any
}

// GetField returns the value of the provided obj field. obj can whether be a structure or pointer to structure.
func GetField(obj any, name string) (any, error) {
	v, err := reflections.GetField(obj, name)
	return v, errors.Wrapf(err, "field %s", name)
}

// Project returns the given fields of obj, in the given order.
// All the exported fields, including the embedded ones, are returned when no field is provided.
func Project(obj any, fields ...string) (Row, error) {
	if len(fields) == 0 {
		var err error
		fields, err = reflections.FieldsDeep(obj)
		if err != nil {
			return Row{}, errors.Wrap(err, "could not list fields")
		}
	}

	row := Row{
		Fields: fields,
		Values: make([]any, len(fields)),
	}
	for i, name := range fields {
		v, err := GetField(obj, name)
		if err != nil {
			return Row{}, err
		}
		row.Values[i] = v
	}
	return row, nil
}

// Map returns the row as a map of field names to values.
func (r Row) Map() map[string]any {
	m := make(map[string]any, len(r.Fields))
	for i, name := range r.Fields {
		m[name] = r.Values[i]
	}
	return m
}
