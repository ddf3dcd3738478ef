package validate

import (
	"embed"
	"fmt"
	"math/big"
	"path"
	"strconv"
	"strings"

	"github.com/goccy/go-json"
	"github.com/xeipuuv/gojsonschema"
)

//go:embed schemas/*.json
var schemaFS embed.FS

// Schema ids understood by Validator.Validate.
const (
	SchemaProduct        = "product"
	SchemaOrder          = "order"
	SchemaOrderStatus    = "order_status"
	SchemaReview         = "review"
	SchemaSupplier       = "supplier"
	SchemaSupplierStatus = "supplier_status"
	SchemaRegister       = "register"
	SchemaLogin          = "login"
)

// Validator checks request bodies against the embedded JSON schemas.
type Validator struct {
	schemas map[string]*gojsonschema.Schema
}

func New() (*Validator, error) {
	entries, err := schemaFS.ReadDir("schemas")
	if err != nil {
		return nil, fmt.Errorf("cannot read schemas: %w", err)
	}

	v := &Validator{schemas: make(map[string]*gojsonschema.Schema, len(entries))}
	for _, entry := range entries {
		raw, err := schemaFS.ReadFile(path.Join("schemas", entry.Name()))
		if err != nil {
			return nil, fmt.Errorf("cannot read schema %s: %w", entry.Name(), err)
		}

		var head struct {
			ID string `json:"$id"`
		}
		if err := json.Unmarshal(raw, &head); err != nil {
			return nil, fmt.Errorf("parse error '%v' in schema %s", err, entry.Name())
		}
		if head.ID == "" {
			return nil, fmt.Errorf("schema %s does not contain $id", entry.Name())
		}

		compiled, err := gojsonschema.NewSchema(gojsonschema.NewBytesLoader(raw))
		if err != nil {
			return nil, fmt.Errorf("cannot compile schema %s: %w", head.ID, err)
		}
		v.schemas[head.ID] = compiled
	}

	return v, nil
}

// MustNew is New for package-level wiring; the schemas are compiled into the
// binary so a failure here is a programming error.
func MustNew() *Validator {
	v, err := New()
	if err != nil {
		panic(err)
	}
	return v
}

// Validate checks body against schemaID. A body that is not JSON or that
// breaks the schema yields *Error; an unknown schema yields a plain error.
func (v *Validator) Validate(schemaID string, body []byte) error {
	schema, ok := v.schemas[schemaID]
	if !ok {
		return fmt.Errorf("there is no schema %s", schemaID)
	}

	result, err := schema.Validate(gojsonschema.NewBytesLoader(body))
	if err != nil {
		return NewError("body", "request body must be valid JSON")
	}

	if result.Valid() {
		return nil
	}

	verr := &Error{}
	for _, re := range result.Errors() {
		field, msg := describe(re)
		verr.Add(field, msg)
	}
	return verr
}

func describe(re gojsonschema.ResultError) (string, string) {
	field := contextPath(re)
	details := re.Details()

	switch re.Type() {
	case "required":
		prop := fmt.Sprint(details["property"])
		if field != "" {
			prop = field + "." + prop
		}
		return prop, fmt.Sprintf("%s is required", prop)
	case "invalid_type":
		return field, fmt.Sprintf("%s must be of type %v", field, details["expected"])
	case "number_gte":
		return field, fmt.Sprintf("%s must be >= %s", field, num(details["min"]))
	case "number_lte":
		return field, fmt.Sprintf("%s must be <= %s", field, num(details["max"]))
	case "string_gte":
		return field, fmt.Sprintf("%s must be at least %v characters", field, details["min"])
	case "string_lte":
		return field, fmt.Sprintf("%s must be at most %v characters", field, details["max"])
	case "enum":
		return field, fmt.Sprintf("%s must be one of %v", field, details["allowed"])
	case "format":
		return field, fmt.Sprintf("%s must be a valid %v", field, details["format"])
	case "pattern":
		return field, fmt.Sprintf("%s has an invalid format", field)
	}
	return field, fmt.Sprintf("%s: %s", field, re.Description())
}

// contextPath turns "(root).items.0.price" into "items.0.price" and "(root)" into "".
func contextPath(re gojsonschema.ResultError) string {
	p := re.Context().String()
	p = strings.TrimPrefix(p, "(root)")
	return strings.TrimPrefix(p, ".")
}

// num renders schema bounds, which gojsonschema keeps as big numbers.
func num(v any) string {
	switch x := v.(type) {
	case *big.Rat:
		f, _ := x.Float64()
		return strconv.FormatFloat(f, 'f', -1, 64)
	case *big.Float:
		f, _ := x.Float64()
		return strconv.FormatFloat(f, 'f', -1, 64)
	}
	return fmt.Sprint(v)
}
