package compare

import (
	"encoding/json"
)

// JSONFormatter renders a ComparisonSet as JSON for scripting.
type JSONFormatter struct {
	Pretty bool
}

// Format marshals the base result, every alternative and the deltas against the base.
func (jf *JSONFormatter) Format(compSet *ComparisonSet) (string, error) {
	if jf.Pretty {
		data, err := json.MarshalIndent(compSet, "", "  ")
		if err != nil {
			return "", err
		}
		return string(data), nil
	}
	data, err := json.Marshal(compSet)
	if err != nil {
		return "", err
	}
	return string(data), nil
}
