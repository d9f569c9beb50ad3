package deckforge

import (
	"fmt"
	"sort"
	"strings"
)

// Resolve walks a dotted path ("analysis.key_benefits") into a nested
// content record. It never panics on absent or mismatched structure:
// ok is false whenever any path segment is missing or the value at an
// intermediate segment is not an object.
func Resolve(record map[string]any, path string) (any, bool) {
	if path == "" {
		return nil, false
	}
	var current any = record
	for _, segment := range strings.Split(path, ".") {
		obj, ok := current.(map[string]any)
		if !ok {
			return nil, false
		}
		current, ok = obj[segment]
		if !ok {
			return nil, false
		}
	}
	return current, true
}

// ResolveString resolves a path and renders the value as text.
// Non-scalar values report ok false.
func ResolveString(record map[string]any, path string) (string, bool) {
	v, ok := Resolve(record, path)
	if !ok {
		return "", false
	}
	s, ok := scalarString(v)
	return s, ok
}

// scalarString renders a scalar JSON value as text. Objects and arrays
// are not scalars.
func scalarString(v any) (string, bool) {
	switch n := v.(type) {
	case string:
		return n, true
	case float64:
		if n == float64(int64(n)) {
			return fmt.Sprintf("%d", int64(n)), true
		}
		return fmt.Sprintf("%g", n), true
	case bool:
		return fmt.Sprintf("%t", n), true
	case nil:
		return "", true
	default:
		return "", false
	}
}

// ResolveStringList resolves a path to a list of strings. Non-string
// list items are rendered as scalars; non-list values fail.
func ResolveStringList(record map[string]any, path string) ([]string, bool) {
	v, ok := Resolve(record, path)
	if !ok {
		return nil, false
	}
	items, ok := v.([]any)
	if !ok {
		return nil, false
	}
	out := make([]string, 0, len(items))
	for _, item := range items {
		s, ok := scalarString(item)
		if !ok {
			return nil, false
		}
		out = append(out, s)
	}
	return out, true
}

// ResolveRows resolves a path to table rows: a list of objects, each
// row's cells read back in the column order given. Missing cells
// render empty.
func ResolveRows(record map[string]any, path string, columns []string) ([][]string, bool) {
	v, ok := Resolve(record, path)
	if !ok {
		return nil, false
	}
	items, ok := v.([]any)
	if !ok {
		return nil, false
	}
	rows := make([][]string, 0, len(items))
	for _, item := range items {
		obj, ok := item.(map[string]any)
		if !ok {
			return nil, false
		}
		row := make([]string, len(columns))
		for i, col := range columns {
			if s, ok := scalarString(obj[col]); ok {
				row[i] = s
			}
		}
		rows = append(rows, row)
	}
	return rows, true
}

// rowColumns infers table column order from the first row object.
// JSON objects carry no order, so columns are sorted for determinism,
// with any "name"-like key promoted to the front.
func rowColumns(v any) []string {
	items, ok := v.([]any)
	if !ok || len(items) == 0 {
		return nil
	}
	first, ok := items[0].(map[string]any)
	if !ok {
		return nil
	}
	return sortedColumnKeys(first)
}

// leadColumns are promoted to the front of inferred table columns when
// present, in this order.
var leadColumns = []string{"name", "metric", "label", "title"}

func sortedColumnKeys(row map[string]any) []string {
	var lead []string
	for _, k := range leadColumns {
		if _, ok := row[k]; ok {
			lead = append(lead, k)
		}
	}
	var rest []string
	for k := range row {
		promoted := false
		for _, l := range lead {
			if k == l {
				promoted = true
				break
			}
		}
		if !promoted {
			rest = append(rest, k)
		}
	}
	sort.Strings(rest)
	return append(lead, rest...)
}

// ValidateContent checks the content record against a mapping config
// before assembly. It collects every problem instead of stopping at the
// first: a missing slide block, a missing data path, or a list-typed
// mapping whose data is not a list. Block presence is checked at the
// block path the slide's mappings actually bind under (conventionally
// "presentation_data.<slide_key>"), so a record in the enveloped format
// validates against the built-in plan and custom mappings with other
// envelopes validate against theirs. An empty result means the record
// can bind every mapping.
func ValidateContent(record map[string]any, cfg *MappingConfig) []string {
	var problems []string
	for _, slide := range cfg.Slides {
		if _, ok := Resolve(record, slide.blockPath()); !ok {
			problems = append(problems, fmt.Sprintf("Missing slide data for: %s", slide.Key))
			continue
		}
		for _, ph := range slide.Placeholders {
			v, ok := Resolve(record, ph.Path)
			if !ok {
				problems = append(problems, fmt.Sprintf("Missing data for path: %s", ph.Path))
				continue
			}
			switch ph.Type {
			case ContentBulletList:
				if _, ok := v.([]any); !ok {
					problems = append(problems, fmt.Sprintf("Bullet list data must be a list: %s", ph.Path))
				}
			case ContentTable:
				if _, ok := v.([]any); !ok {
					problems = append(problems, fmt.Sprintf("Table data must be a list: %s", ph.Path))
				}
			}
		}
	}
	return problems
}
