package response

import (
	"bytes"
	"encoding/json"
	"fmt"
)

const (
	dataKey        = "data"
	currentPageKey = "current_page"
)

// plain converts v to its JSON value representation (maps, slices, strings,
// json.Number, bool, nil). Numbers keep their literal so 64-bit integers
// survive the round trip.
func plain(v interface{}) (interface{}, error) {
	raw, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("failed to encode response data: %w", err)
	}

	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()

	var out interface{}
	if err := dec.Decode(&out); err != nil {
		return nil, fmt.Errorf("failed to decode response data: %w", err)
	}
	return out, nil
}

// Data normalizes v for the data key. Objects holding a non-null "data" key
// are unwrapped to that inner value.
func Data(v interface{}) (interface{}, error) {
	out, err := plain(v)
	if err != nil {
		return nil, err
	}

	if obj, ok := out.(map[string]interface{}); ok {
		if inner, ok := obj[dataKey]; ok && inner != nil {
			return inner, nil
		}
	}
	return out, nil
}

// ExtractPagination returns the paginator fields of v without its data.
// It returns nil when v does not look like a paginator (no data or no current_page).
func ExtractPagination(v interface{}) (Pagination, error) {
	out, err := plain(v)
	if err != nil {
		return nil, err
	}

	obj, ok := out.(map[string]interface{})
	if !ok || obj[dataKey] == nil || obj[currentPageKey] == nil {
		return nil, nil
	}

	delete(obj, dataKey)
	return Pagination(obj), nil
}
