package domain

import (
	"fmt"
	"sort"
	"strings"
)

// HTTPMethods is the verb vocabulary accepted in route manifests.
var HTTPMethods = map[string]struct{}{
	"GET":     {},
	"POST":    {},
	"PUT":     {},
	"PATCH":   {},
	"DELETE":  {},
	"HEAD":    {},
	"OPTIONS": {},
	"TRACE":   {},
	"CONNECT": {},
}

// EndpointRecord is one routable operation extracted from a web application.
type EndpointRecord struct {
	Name       string
	Path       string
	Methods    []string
	Parameters []string
	SourceCode *string
	Docstring  *string
}

// NewEndpointRecord normalises methods into a sorted, upper-case, de-duplicated set.
func NewEndpointRecord(name, path string, methods, params []string) EndpointRecord {
	return EndpointRecord{
		Name:       name,
		Path:       path,
		Methods:    NormalizeMethods(methods),
		Parameters: append([]string(nil), params...),
	}
}

// NormalizeMethods upper-cases, trims, de-duplicates and sorts HTTP verbs.
func NormalizeMethods(methods []string) []string {
	seen := make(map[string]struct{}, len(methods))
	out := make([]string, 0, len(methods))
	for _, method := range methods {
		m := strings.ToUpper(strings.TrimSpace(method))
		if m == "" {
			continue
		}
		if _, dup := seen[m]; dup {
			continue
		}
		seen[m] = struct{}{}
		out = append(out, m)
	}
	sort.Strings(out)
	return out
}

// Validate enforces the non-empty path and method invariants.
func (e EndpointRecord) Validate() error {
	if strings.TrimSpace(e.Path) == "" {
		return fmt.Errorf("endpoint %q: empty path", e.Name)
	}
	if len(e.Methods) == 0 {
		return fmt.Errorf("endpoint %q (%s): no HTTP methods", e.Name, e.Path)
	}
	for _, method := range e.Methods {
		if _, ok := HTTPMethods[method]; !ok {
			return fmt.Errorf("endpoint %q (%s): unknown HTTP method %q", e.Name, e.Path, method)
		}
	}
	return nil
}

// Key identifies the endpoint by method set and path, e.g. "GET,POST /items".
// Names are not unique: unnamed routes share UnnamedAPI and handlers may be reused.
func (e EndpointRecord) Key() string {
	return strings.TrimSpace(strings.Join(e.Methods, ",") + " " + e.Path)
}

// MethodsString joins the method set with ", ".
func (e EndpointRecord) MethodsString() string {
	return strings.Join(e.Methods, ", ")
}

// ParametersString joins the parameters, or returns NoParameters when there are none.
func (e EndpointRecord) ParametersString() string {
	if len(e.Parameters) == 0 {
		return NoParameters
	}
	return strings.Join(e.Parameters, ", ")
}

// HasSource reports whether source text was captured.
func (e EndpointRecord) HasSource() bool {
	return e.SourceCode != nil && *e.SourceCode != ""
}

// HasDocstring reports whether a docstring was captured.
func (e EndpointRecord) HasDocstring() bool {
	return e.Docstring != nil && *e.Docstring != ""
}

// PromptValues returns the standard placeholder values for per-endpoint templates.
func (e EndpointRecord) PromptValues() map[string]string {
	code := NoSourceCode
	if e.HasSource() {
		code = *e.SourceCode
	}
	description := NoDescription
	if e.HasDocstring() {
		description = *e.Docstring
	}
	return map[string]string{
		"path":             e.Path,
		"methods":          e.MethodsString(),
		"parameters":       e.ParametersString(),
		"api_name":         e.Name,
		"code":             code,
		"function_content": code,
		"description":      description,
	}
}

// Slug returns a file-name-safe form of the endpoint name.
func (e EndpointRecord) Slug() string {
	return Slugify(e.Name)
}

// Slugify lower-cases value and replaces every run of non-alphanumerics with "-".
func Slugify(value string) string {
	var b strings.Builder
	dash := false
	for _, r := range strings.ToLower(value) {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			b.WriteRune(r)
			dash = false
			continue
		}
		if !dash && b.Len() > 0 {
			b.WriteByte('-')
			dash = true
		}
	}
	return strings.TrimSuffix(b.String(), "-")
}

// StringPtr returns a pointer to value, or nil when value is empty.
func StringPtr(value string) *string {
	if value == "" {
		return nil
	}
	return &value
}
