package querybuilder

import (
	"fmt"
	"reflect"
	"strings"
	"sync"
)

// readonlyOption marks a column the database fills, e.g. `db:"id,readonly"`.
const readonlyOption = "readonly"

type modelColumn struct {
	name  string
	index int
}

var modelColumns sync.Map // reflect.Type -> []modelColumn

// InsertStruct starts an INSERT from the db-tagged exported fields of model.
// Fields tagged "-" or with the readonly option are left out.
func InsertStruct(table string, model any) (*InsertBuilder, error) {
	value := reflect.ValueOf(model)
	for value.Kind() == reflect.Pointer {
		if value.IsNil() {
			return nil, fmt.Errorf("model cannot be nil")
		}
		value = value.Elem()
	}
	if value.Kind() != reflect.Struct {
		return nil, fmt.Errorf("model must be struct, got %s", value.Kind())
	}

	columns := columnsOf(value.Type())
	if len(columns) == 0 {
		return nil, fmt.Errorf("model %s has no writable db columns", value.Type())
	}

	names := make([]string, len(columns))
	values := make([]any, len(columns))
	for i, col := range columns {
		names[i] = col.name
		values[i] = value.Field(col.index).Interface()
	}
	return InsertInto(table).Columns(names...).Values(values...), nil
}

func columnsOf(typ reflect.Type) []modelColumn {
	if cached, ok := modelColumns.Load(typ); ok {
		return cached.([]modelColumn)
	}

	columns := make([]modelColumn, 0, typ.NumField())
	for i := 0; i < typ.NumField(); i++ {
		field := typ.Field(i)
		if !field.IsExported() {
			continue
		}
		name, opts, _ := strings.Cut(field.Tag.Get("db"), ",")
		name = strings.TrimSpace(name)
		if name == "" || name == "-" || hasOption(opts, readonlyOption) {
			continue
		}
		columns = append(columns, modelColumn{name: name, index: i})
	}

	actual, _ := modelColumns.LoadOrStore(typ, columns)
	return actual.([]modelColumn)
}

func hasOption(opts, want string) bool {
	for _, opt := range strings.Split(opts, ",") {
		if strings.TrimSpace(opt) == want {
			return true
		}
	}
	return false
}
