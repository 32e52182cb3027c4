package store

import (
	"database/sql"
	"fmt"

	"github.com/roach88/songtab/internal/record"
)

// marshalValue converts a Value to canonical JSON TEXT for storage.
func marshalValue(v record.Value) (string, error) {
	data, err := record.MarshalCanonical(v)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// marshalNames stores a string list as a canonical JSON array.
func marshalNames(names []string) (string, error) {
	arr := make(record.Array, len(names))
	for i, n := range names {
		arr[i] = record.String(n)
	}
	return marshalValue(arr)
}

// unmarshalObject parses canonical JSON TEXT to an Object.
func unmarshalObject(data string) (record.Object, error) {
	v, err := record.ParseJSON([]byte(data))
	if err != nil {
		return nil, err
	}
	obj, ok := v.(record.Object)
	if !ok {
		return nil, fmt.Errorf("expected object, got %s", record.TypeName(v))
	}
	return obj, nil
}

// unmarshalNullable parses a nullable JSON column. SQL NULL yields nil.
func unmarshalNullable(data sql.NullString) (record.Value, error) {
	if !data.Valid {
		return nil, nil
	}
	return record.ParseJSON([]byte(data.String))
}

func unmarshalNames(data string) ([]string, error) {
	v, err := record.ParseJSON([]byte(data))
	if err != nil {
		return nil, err
	}
	arr, ok := v.(record.Array)
	if !ok {
		return nil, fmt.Errorf("expected array, got %s", record.TypeName(v))
	}
	names := make([]string, len(arr))
	for i, elem := range arr {
		s, ok := elem.(record.String)
		if !ok {
			return nil, fmt.Errorf("section_names[%d]: expected string, got %s", i, record.TypeName(elem))
		}
		names[i] = string(s)
	}
	return names, nil
}
