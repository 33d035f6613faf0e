package model

import (
	"encoding/json"
	"strings"
)

// MaxExtraAttributes bounds how many pass-through attributes a document may carry.
const MaxExtraAttributes = 64

// splitExtra returns every top-level key of the JSON object that is not one
// of the known keys.
func splitExtra(data []byte, known ...string) (map[string]any, error) {
	var raw map[string]any
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, err
	}
	for _, k := range known {
		delete(raw, k)
	}
	if len(raw) == 0 {
		return nil, nil
	}
	return raw, nil
}

// mergeExtra marshals known and folds extra into the resulting object.
// Known fields win on a key clash.
func mergeExtra(known any, extra map[string]any) ([]byte, error) {
	data, err := json.Marshal(known)
	if err != nil || len(extra) == 0 {
		return data, err
	}

	out := make(map[string]any, len(extra)+8)
	if err := json.Unmarshal(data, &out); err != nil {
		return nil, err
	}
	for k, v := range extra {
		if _, taken := out[k]; !taken {
			out[k] = v
		}
	}
	return json.Marshal(out)
}

// IsSafeAttributeKey reports whether key can be stored as a top-level
// document field without being read as an operator or a dotted path.
func IsSafeAttributeKey(key string) bool {
	return key != "" && !strings.HasPrefix(key, "$") && !strings.Contains(key, ".")
}
