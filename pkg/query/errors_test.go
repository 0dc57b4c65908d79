//go:build unit
// +build unit

package query

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestInvalidQueryError_Messages(t *testing.T) {
	tests := []struct {
		name     string
		err      *InvalidQueryError
		expected string
	}{
		{
			name:     "filter",
			err:      &InvalidQueryError{Kind: KindFilter, Unknown: []string{"foo"}, Allowed: []string{"name", "email"}},
			expected: "Requested filter(s) `foo` are not allowed. Allowed filter(s) are `name, email`.",
		},
		{
			name:     "sort",
			err:      &InvalidQueryError{Kind: KindSort, Unknown: []string{"-age"}, Allowed: []string{"name"}},
			expected: "Requested sort(s) `-age` is not allowed. Allowed sort(s) are `name`.",
		},
		{
			name:     "include without allowed",
			err:      &InvalidQueryError{Kind: KindInclude, Unknown: []string{"author", "tags"}},
			expected: "Requested include(s) `author, tags` are not allowed. There are no allowed includes.",
		},
		{
			name:     "field",
			err:      &InvalidQueryError{Kind: KindField, Unknown: []string{"author.email"}, Allowed: []string{"id", "author.name"}},
			expected: "Requested field(s) `author.email` are not allowed. Allowed field(s) are `id, author.name`.",
		},
		{
			name:     "append",
			err:      &InvalidQueryError{Kind: KindAppend, Unknown: []string{"score"}, Allowed: []string{"excerpt"}},
			expected: "Requested append(s) `score` are not allowed. Allowed append(s) are `excerpt`.",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.err.Error())
			assert.True(t, errors.Is(tt.err, ErrInvalidQuery))
		})
	}
}

func TestInvalidQueryError_Wrapped(t *testing.T) {
	err := fmt.Errorf("index: %w", invalid(KindFilter, []string{"x"}, nil))

	var target *InvalidQueryError
	assert.True(t, errors.As(err, &target))
	assert.Equal(t, KindFilter, target.Kind)
	assert.ErrorIs(t, err, ErrInvalidQuery)
	assert.NotErrorIs(t, err, ErrNotFound)
}
