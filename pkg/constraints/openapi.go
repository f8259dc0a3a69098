package constraints

import (
	"github.com/getkin/kin-openapi/openapi3"
)

// OpenAPISchema describes the submitted form as an OpenAPI object schema:
// numeric rules become bounded numbers, enumerated rules become string enums,
// and every field is required. Nil tables use Default.
func OpenAPISchema(table *Table) *openapi3.Schema {
	if table == nil {
		table = Default()
	}

	schema := openapi3.NewObjectSchema()
	required := make([]string, 0, len(table.rules))
	for _, rule := range table.Rules() {
		var prop *openapi3.Schema
		switch rule.Kind {
		case KindNumeric:
			prop = openapi3.NewFloat64Schema().WithMin(rule.Min).WithMax(rule.Max)
		case KindEnumerated:
			values := make([]any, 0, len(rule.Allowed))
			for _, v := range rule.Allowed {
				values = append(values, v)
			}
			prop = openapi3.NewStringSchema().WithEnum(values...)
		default:
			continue
		}
		prop.Title = rule.Field
		schema.WithProperty(rule.Field, prop)
		required = append(required, rule.Field)
	}
	schema.Required = required
	return schema
}
