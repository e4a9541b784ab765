// Package docs builds the OpenAPI document served at /docs/openapi.json from the same route tables
// the router registers.
package docs

import (
	"net/http"
	"reflect"
	"regexp"
	"slices"
	"strconv"
	"strings"

	"github.com/invopop/jsonschema"
	"github.com/labstack/echo/v4"

	"github.com/mentorlink/api/internal/handler"
)

// Document is the subset of OpenAPI 3.1 the API publishes.
type Document struct {
	OpenAPI    string                          `json:"openapi"`
	Info       Info                            `json:"info"`
	Paths      map[string]map[string]Operation `json:"paths"`
	Components Components                      `json:"components"`
}

// Info names the API and its version.
type Info struct {
	Title   string `json:"title"`
	Version string `json:"version"`
}

// Components holds the reusable security schemes.
type Components struct {
	SecuritySchemes map[string]SecurityScheme `json:"securitySchemes"`
}

// SecurityScheme describes how a guarded operation authenticates.
type SecurityScheme struct {
	Type         string `json:"type"`
	Scheme       string `json:"scheme"`
	BearerFormat string `json:"bearerFormat,omitempty"`
}

// Operation documents one method on one path.
type Operation struct {
	Summary     string                `json:"summary,omitempty"`
	Tags        []string              `json:"tags,omitempty"`
	Parameters  []Parameter           `json:"parameters,omitempty"`
	RequestBody *RequestBody          `json:"requestBody,omitempty"`
	Responses   map[string]Response   `json:"responses"`
	Security    []map[string][]string `json:"security,omitempty"`
}

// Parameter is a path or query input.
type Parameter struct {
	Name     string             `json:"name"`
	In       string             `json:"in"`
	Required bool               `json:"required"`
	Schema   *jsonschema.Schema `json:"schema"`
}

// RequestBody is the JSON or multipart payload an operation accepts.
type RequestBody struct {
	Required bool                 `json:"required"`
	Content  map[string]MediaType `json:"content"`
}

// Response is the body documented for one status code.
type Response struct {
	Description string               `json:"description"`
	Content     map[string]MediaType `json:"content,omitempty"`
}

// MediaType pairs a content type with its schema.
type MediaType struct {
	Schema *jsonschema.Schema `json:"schema"`
}

const bearerScheme = "bearerAuth"

var pathParam = regexp.MustCompile(`:([A-Za-z0-9_]+)`)

// Build documents every route that is not hidden.
func Build(title, version string, routes []handler.Route) Document {
	doc := Document{
		OpenAPI: "3.1.0",
		Info:    Info{Title: title, Version: version},
		Paths:   make(map[string]map[string]Operation),
		Components: Components{SecuritySchemes: map[string]SecurityScheme{
			bearerScheme: {Type: "http", Scheme: "bearer", BearerFormat: "JWT"},
		}},
	}

	for _, route := range routes {
		if route.Hidden {
			continue
		}
		path := pathParam.ReplaceAllString(route.Path, "{$1}")
		if doc.Paths[path] == nil {
			doc.Paths[path] = make(map[string]Operation)
		}
		doc.Paths[path][strings.ToLower(route.Method)] = operation(route)
	}
	return doc
}

// Handler serves the document as JSON.
func Handler(doc Document) echo.HandlerFunc {
	return func(c echo.Context) error {
		return c.JSON(http.StatusOK, doc)
	}
}

func operation(route handler.Route) Operation {
	op := Operation{
		Summary:   route.Summary,
		Responses: make(map[string]Response),
	}
	if route.Tag != "" {
		op.Tags = []string{route.Tag}
	}

	op.Parameters = append(op.Parameters, parameters(route.Params, "path")...)
	op.Parameters = append(op.Parameters, parameters(route.Query, "query")...)

	switch {
	case route.Upload != "":
		file := &jsonschema.Schema{
			Type:       "object",
			Properties: jsonschema.NewProperties(),
			Required:   []string{route.Upload},
		}
		file.Properties.Set(route.Upload, &jsonschema.Schema{Type: "string", Format: "binary"})
		op.RequestBody = &RequestBody{
			Required: true,
			Content:  map[string]MediaType{echo.MIMEMultipartForm: {Schema: file}},
		}
	case route.Body != nil:
		op.RequestBody = &RequestBody{
			Required: true,
			Content:  map[string]MediaType{echo.MIMEApplicationJSON: {Schema: Schema(route.Body)}},
		}
	}

	success := Response{Description: http.StatusText(route.SuccessStatus())}
	if route.Response != nil {
		success.Content = map[string]MediaType{echo.MIMEApplicationJSON: {Schema: Schema(route.Response)}}
	}
	status := route.SuccessStatus()
	if route.Serve != nil {
		status = http.StatusOK
		success.Description = http.StatusText(http.StatusOK)
	}
	op.Responses[strconv.Itoa(status)] = success

	if route.Query != nil || route.Params != nil || route.Body != nil {
		op.Responses["400"] = Response{Description: "validation failed"}
	}
	if route.Guarded() {
		op.Security = []map[string][]string{{bearerScheme: {}}}
		op.Responses["401"] = Response{Description: "missing or invalid bearer token"}
		op.Responses["403"] = Response{Description: "insufficient role"}
	}
	if route.RateLimited {
		op.Responses["429"] = Response{Description: "rate limit exceeded"}
	}
	return op
}

// Schema reflects v into an inline JSON schema whose required list follows the validate tags.
func Schema(v any) *jsonschema.Schema {
	r := jsonschema.Reflector{Anonymous: true, DoNotReference: true, RequiredFromJSONSchemaTags: true}
	schema := r.Reflect(v)
	schema.Version = ""
	applyRequired(schema, reflect.TypeOf(v))
	return schema
}

func applyRequired(schema *jsonschema.Schema, t reflect.Type) {
	for t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	switch t.Kind() {
	case reflect.Slice, reflect.Array:
		if schema.Items != nil {
			applyRequired(schema.Items, t.Elem())
		}
	case reflect.Struct:
		schema.Required = requiredFields(t)
	}
}

func parameters(v any, in string) []Parameter {
	if v == nil {
		return nil
	}
	schema := Schema(v)
	if schema.Properties == nil {
		return nil
	}

	var params []Parameter
	for pair := schema.Properties.Oldest(); pair != nil; pair = pair.Next() {
		params = append(params, Parameter{
			Name:     pair.Key,
			In:       in,
			Required: in == "path" || slices.Contains(schema.Required, pair.Key),
			Schema:   pair.Value,
		})
	}
	return params
}

// requiredFields lists the JSON names of fields whose validate tag starts with a required rule.
func requiredFields(t reflect.Type) []string {
	var required []string
	for i := range t.NumField() {
		field := t.Field(i)
		if !field.IsExported() {
			continue
		}
		name, _, _ := strings.Cut(field.Tag.Get("json"), ",")
		if name == "" || name == "-" {
			continue
		}
		for _, rule := range strings.Split(field.Tag.Get("validate"), ",") {
			if rule == "dive" {
				break
			}
			if rule == "required" {
				required = append(required, name)
				break
			}
		}
	}
	return required
}
