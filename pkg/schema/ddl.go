package schema

import (
	"fmt"
	"reflect"
	"strings"
)

// generateDDL creates a CREATE TABLE statement from struct tags.
func generateDDL(model any, tableName string) string {
	columns := make([]string, 0, 8)
	for _, f := range taggedFields(model) {
		columns = append(columns, fmt.Sprintf("    %s %s", f.name, f.ddl))
	}

	ddl := fmt.Sprintf("CREATE TABLE IF NOT EXISTS %s\n(\n%s\n)",
		tableName,
		strings.Join(columns, ",\n"))

	return ddl
}

type taggedField struct {
	name, ddl string
}

func taggedFields(model any) []taggedField {
	v := reflect.ValueOf(model)
	if v.Kind() == reflect.Ptr {
		v = v.Elem()
	}
	t := v.Type()

	var res []taggedField
	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)
		dbTag := field.Tag.Get("db")
		ddlTag := field.Tag.Get("ddl")

		if dbTag != "" && ddlTag != "" {
			res = append(res, taggedField{name: dbTag, ddl: ddlTag})
		}
	}
	return res
}

// TableDDL returns the CREATE TABLE statement of the staging table.
func (sr StagingRow) TableDDL() string {
	return generateDDL(sr, TableName)
}

// DropDDL returns the DROP TABLE statement of the staging table.
func (sr StagingRow) DropDDL() string {
	return "DROP TABLE IF EXISTS " + TableName
}

// TableName is used by GORM and DDL generation.
func (sr StagingRow) TableName() string {
	return TableName
}

// Columns returns the column names in table (and CSV) order.
func (sr StagingRow) Columns() []string {
	fields := taggedFields(sr)
	res := make([]string, len(fields))
	for i, f := range fields {
		res[i] = f.name
	}
	return res
}
