package domain

import (
	"fmt"
	"sort"
	"strings"
)

// PromptTemplate is a versioned instruction text with {name} placeholders.
type PromptTemplate struct {
	Version string
	Text    string
}

// IsFallback reports whether the template is the not-found sentinel.
func (p PromptTemplate) IsFallback() bool {
	return p.Text == PromptNotFound
}

// Fill substitutes values into the template text.
func (p PromptTemplate) Fill(values map[string]string) (string, error) {
	return FillTemplate(p.Text, values)
}

// MissingValuesError lists placeholders that had no value.
type MissingValuesError struct {
	Names []string
}

func (e *MissingValuesError) Error() string {
	return fmt.Sprintf("prompt placeholders without a value: %s", strings.Join(e.Names, ", "))
}

// FillTemplate substitutes {name} placeholders. "{{" and "}}" produce literal braces.
// A format spec after ':' or a conversion after '!' is ignored.
func FillTemplate(template string, values map[string]string) (string, error) {
	var b strings.Builder
	b.Grow(len(template))
	missing := map[string]struct{}{}

	for i := 0; i < len(template); i++ {
		ch := template[i]
		switch ch {
		case '{':
			if i+1 < len(template) && template[i+1] == '{' {
				b.WriteByte('{')
				i++
				continue
			}
			end := strings.IndexByte(template[i+1:], '}')
			if end < 0 {
				return "", fmt.Errorf("unclosed placeholder at offset %d", i)
			}
			field := template[i+1 : i+1+end]
			name := fieldName(field)
			if name == "" {
				return "", fmt.Errorf("empty placeholder at offset %d", i)
			}
			value, ok := values[name]
			if !ok {
				missing[name] = struct{}{}
			}
			b.WriteString(value)
			i += end + 1
		case '}':
			if i+1 < len(template) && template[i+1] == '}' {
				b.WriteByte('}')
				i++
				continue
			}
			return "", fmt.Errorf("single '}' at offset %d", i)
		default:
			b.WriteByte(ch)
		}
	}

	if len(missing) > 0 {
		names := make([]string, 0, len(missing))
		for name := range missing {
			names = append(names, name)
		}
		sort.Strings(names)
		return "", &MissingValuesError{Names: names}
	}
	return b.String(), nil
}

// Placeholders lists the distinct placeholder names of template, in order of first use.
func Placeholders(template string) []string {
	var names []string
	seen := map[string]struct{}{}
	for i := 0; i < len(template); i++ {
		if template[i] != '{' {
			continue
		}
		if i+1 < len(template) && template[i+1] == '{' {
			i++
			continue
		}
		end := strings.IndexByte(template[i+1:], '}')
		if end < 0 {
			break
		}
		name := fieldName(template[i+1 : i+1+end])
		if _, dup := seen[name]; name != "" && !dup {
			seen[name] = struct{}{}
			names = append(names, name)
		}
		i += end + 1
	}
	return names
}

func fieldName(field string) string {
	if idx := strings.IndexAny(field, ":!"); idx >= 0 {
		field = field[:idx]
	}
	return strings.TrimSpace(field)
}
