package output

import (
	"encoding/json"
	"fmt"

	"github.com/PaesslerAG/jsonpath"
)

// Select evaluates a JSONPath expression against a JSON document, for example
// $.projection[?(@.age==65)].net_worth. A filter matching a single element yields that
// element rather than a one-item list.
func Select(doc []byte, path string) (any, error) {
	var v any
	if err := json.Unmarshal(doc, &v); err != nil {
		return nil, fmt.Errorf("invalid JSON document: %w", err)
	}
	val, err := jsonpath.Get(path, v)
	if err != nil {
		return nil, fmt.Errorf("error evaluating %q: %w", path, err)
	}
	if list, ok := val.([]any); ok && len(list) == 1 {
		val = list[0]
	}
	return val, nil
}

// SelectJSON is Select with the result re-encoded as indented JSON.
func SelectJSON(doc []byte, path string) ([]byte, error) {
	val, err := Select(doc, path)
	if err != nil {
		return nil, err
	}
	return json.MarshalIndent(val, "", "  ")
}
