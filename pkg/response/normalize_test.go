//go:build unit
// +build unit

package response

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type article struct {
	ID    string `json:"id"`
	Title string `json:"title"`
}

type paginator struct {
	CurrentPage int         `json:"current_page"`
	Data        interface{} `json:"data"`
	LastPage    int         `json:"last_page"`
	Total       int64       `json:"total"`
}

func TestData(t *testing.T) {
	tests := []struct {
		name     string
		input    interface{}
		expected interface{}
	}{
		{
			name:     "struct becomes object",
			input:    article{ID: "a1", Title: "Hello"},
			expected: map[string]interface{}{"id": "a1", "title": "Hello"},
		},
		{
			name:     "pointer to struct",
			input:    &article{ID: "a1"},
			expected: map[string]interface{}{"id": "a1", "title": ""},
		},
		{
			name:  "slice becomes list",
			input: []article{{ID: "a1"}, {ID: "a2"}},
			expected: []interface{}{
				map[string]interface{}{"id": "a1", "title": ""},
				map[string]interface{}{"id": "a2", "title": ""},
			},
		},
		{
			name:     "paginator is unwrapped to its items",
			input:    paginator{CurrentPage: 1, Data: []string{"x"}, LastPage: 1, Total: 1},
			expected: []interface{}{"x"},
		},
		{
			name:     "data wrapper is unwrapped",
			input:    map[string]interface{}{"data": map[string]interface{}{"id": 7}},
			expected: map[string]interface{}{"id": json.Number("7")},
		},
		{
			name:     "null data key is kept",
			input:    map[string]interface{}{"data": nil, "id": 1},
			expected: map[string]interface{}{"data": nil, "id": json.Number("1")},
		},
		{
			name:     "scalar passes through",
			input:    "ok",
			expected: "ok",
		},
		{
			name:     "nil stays nil",
			input:    nil,
			expected: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := Data(tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, out)
		})
	}
}

func TestData_UnencodableValue(t *testing.T) {
	_, err := Data(make(chan int))
	assert.Error(t, err)
}

func TestExtractPagination(t *testing.T) {
	pagination, err := ExtractPagination(paginator{CurrentPage: 2, Data: []int{1}, LastPage: 3, Total: 31})
	require.NoError(t, err)
	require.NotNil(t, pagination)

	assert.NotContains(t, pagination, "data")
	assert.Equal(t, json.Number("2"), pagination["current_page"])
	assert.Equal(t, json.Number("3"), pagination["last_page"])
	assert.Equal(t, json.Number("31"), pagination["total"])
}

func TestExtractPagination_NotAPaginator(t *testing.T) {
	tests := []struct {
		name  string
		input interface{}
	}{
		{"plain list", []int{1, 2}},
		{"object without current page", map[string]interface{}{"data": []int{1}}},
		{"object without data", map[string]interface{}{"current_page": 1}},
		{"scalar", 42},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			pagination, err := ExtractPagination(tt.input)
			require.NoError(t, err)
			assert.Nil(t, pagination)
		})
	}
}

type snowflake struct {
	ID    int64  `json:"id"`
	Owner uint64 `json:"owner"`
}

func TestData_KeepsLargeIntegers(t *testing.T) {
	out, err := Data(snowflake{ID: 9007199254740993, Owner: 18446744073709551615})
	require.NoError(t, err)
	assert.Equal(t, map[string]interface{}{
		"id":    json.Number("9007199254740993"),
		"owner": json.Number("18446744073709551615"),
	}, out)
}

func TestSuccess_KeepsLargeIntegers(t *testing.T) {
	env, err := Success(200, snowflake{ID: 9007199254740993})
	require.NoError(t, err)

	raw, err := json.Marshal(env)
	require.NoError(t, err)
	assert.Equal(t, `{"success":true,"message":null,"code":200,"data":{"id":9007199254740993,"owner":0}}`, string(raw))
}
