package querybuilder

import (
	"fmt"
	"reflect"
	"strings"
)

// InsertModel builds an insert from a struct's db tags. Fields tagged db:"-"
// or without a db tag are skipped.
func InsertModel(table string, model any) (*InsertBuilder, error) {
	columns, values, err := columnsAndValuesFromModel(model)
	if err != nil {
		return nil, err
	}
	return InsertInto(table).Columns(columns...).Values(values...), nil
}

func columnsAndValuesFromModel(model any) ([]string, []any, error) {
	v := reflect.ValueOf(model)
	for v.Kind() == reflect.Pointer {
		if v.IsNil() {
			return nil, nil, fmt.Errorf("model must not be nil")
		}
		v = v.Elem()
	}
	if v.Kind() != reflect.Struct {
		return nil, nil, fmt.Errorf("model must be a struct, got %s", v.Kind())
	}

	t := v.Type()
	columns := make([]string, 0, t.NumField())
	values := make([]any, 0, t.NumField())
	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)
		if !field.IsExported() {
			continue
		}

		tag := field.Tag.Get("db")
		if tag == "" || tag == "-" {
			continue
		}
		column := strings.Split(tag, ",")[0]
		if column == "" {
			continue
		}

		columns = append(columns, column)
		values = append(values, v.Field(i).Interface())
	}

	if len(columns) == 0 {
		return nil, nil, fmt.Errorf("model has no db-tagged fields")
	}

	return columns, values, nil
}
