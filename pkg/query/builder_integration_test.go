//go:build integration
// +build integration

package query

import (
	"context"
	"fmt"
	"net/url"
	"testing"

	"github.com/falcomnl/api-controller/internal/pkg/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type writer struct {
	ID      uint    `json:"id"`
	Name    string  `json:"name"`
	Email   string  `json:"email"`
	Entries []entry `gorm:"foreignKey:WriterID" json:"entries,omitempty"`
}

type entry struct {
	ID       uint    `json:"id"`
	WriterID uint    `json:"writer_id"`
	Title    string  `json:"title"`
	Status   string  `json:"status"`
	Views    int     `json:"views"`
	Writer   *writer `json:"writer,omitempty"`
}

func seedEntries(t *testing.T) *gorm.DB {
	t.Helper()

	db := testutil.SetupTestDB(t, &writer{}, &entry{})

	ada := writer{Name: "Ada", Email: "ada@example.com"}
	bob := writer{Name: "Bob", Email: "bob@example.com"}
	require.NoError(t, db.Create(&ada).Error)
	require.NoError(t, db.Create(&bob).Error)

	entries := []entry{
		{WriterID: ada.ID, Title: "Go generics", Status: "published", Views: 30},
		{WriterID: ada.ID, Title: "Rust lifetimes", Status: "draft", Views: 5},
		{WriterID: bob.ID, Title: "go modules", Status: "archived", Views: 12},
		{WriterID: bob.ID, Title: "SQL joins", Status: "published", Views: 1},
		{WriterID: bob.ID, Title: "Testing in Go", Status: "draft", Views: 50},
	}
	require.NoError(t, db.Create(&entries).Error)
	return db
}

func entriesQuery(t *testing.T, db *gorm.DB, rawQuery string) *Builder[entry] {
	t.Helper()

	u, err := url.Parse("http://localhost/api/entries?" + rawQuery)
	require.NoError(t, err)

	return For[entry](db, ParseParams(u)).
		AllowedFields("id", "title", "writer_id", "writer.id", "writer.name").
		AllowedFilters(
			Partial("title"),
			Partial("q").On("title"),
			Exact("status"),
			Callback("min_views", func(db *gorm.DB, values []string) *gorm.DB {
				return db.Where("views >= ?", values[0])
			}),
		).
		AllowedSorts("id", "views", "title").
		DefaultSort("id").
		AllowedIncludes(Include("writer"))
}

func titles(entries []entry) []string {
	out := make([]string, len(entries))
	for i, e := range entries {
		out[i] = e.Title
	}
	return out
}

func TestBuilder_Filters(t *testing.T) {
	db := seedEntries(t)

	tests := []struct {
		rawQuery string
		expected []string
	}{
		{"filter[title]=GO", []string{"Go generics", "go modules", "Testing in Go"}},
		{"filter[q]=rust,sql", []string{"Rust lifetimes", "SQL joins"}},
		{"filter[status]=draft", []string{"Rust lifetimes", "Testing in Go"}},
		{"filter[status]=draft,archived", []string{"Rust lifetimes", "go modules", "Testing in Go"}},
		{"filter[min_views]=12", []string{"Go generics", "go modules", "Testing in Go"}},
		{"filter[status]=published&filter[title]=go", []string{"Go generics"}},
	}

	for _, tt := range tests {
		t.Run(tt.rawQuery, func(t *testing.T) {
			got, err := entriesQuery(t, db, tt.rawQuery).Get(context.Background())
			require.NoError(t, err)
			assert.Equal(t, tt.expected, titles(got))
		})
	}
}

func TestBuilder_Sorts(t *testing.T) {
	db := seedEntries(t)

	got, err := entriesQuery(t, db, "sort=-views").Get(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"Testing in Go", "Go generics", "go modules", "Rust lifetimes", "SQL joins"}, titles(got))

	got, err = entriesQuery(t, db, "").Get(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "Go generics", got[0].Title)
}

func TestBuilder_IncludeWithRelationFields(t *testing.T) {
	db := seedEntries(t)

	got, err := entriesQuery(t, db, "include=writer&fields[writer]=id,name&filter[title]=sql").Get(context.Background())
	require.NoError(t, err)
	require.Len(t, got, 1)
	require.NotNil(t, got[0].Writer)
	assert.Equal(t, "Bob", got[0].Writer.Name)
	assert.Empty(t, got[0].Writer.Email)
}

func TestBuilder_BaseFields(t *testing.T) {
	db := seedEntries(t)

	got, err := entriesQuery(t, db, "fields=id,title").Get(context.Background())
	require.NoError(t, err)
	require.NotEmpty(t, got)
	assert.NotEmpty(t, got[0].Title)
	assert.Empty(t, got[0].Status)
	assert.Zero(t, got[0].Views)
}

func TestBuilder_Paginate(t *testing.T) {
	db := seedEntries(t)

	page, err := entriesQuery(t, db, "page=2&filter[status]=draft,published").Paginate(context.Background(), 2)
	require.NoError(t, err)

	assert.Equal(t, int64(4), page.Total)
	assert.Equal(t, 2, page.LastPage)
	assert.Equal(t, 2, page.CurrentPage)
	assert.Equal(t, []string{"SQL joins", "Testing in Go"}, titles(page.Data.([]entry)))
	assert.Equal(t, 3, *page.From)
	assert.Equal(t, 4, *page.To)
	assert.Nil(t, page.NextPageURL)
	assert.Contains(t, page.FirstPageURL, "page=1")
}

func TestBuilder_PaginateBeyondLastPage(t *testing.T) {
	db := seedEntries(t)

	page, err := entriesQuery(t, db, "page=9").Paginate(context.Background(), 0)
	require.NoError(t, err)

	assert.Equal(t, DefaultPerPage, page.PerPage)
	assert.Empty(t, page.Data)
	assert.Nil(t, page.From)
}

func TestBuilder_PaginateMaxPage(t *testing.T) {
	db := seedEntries(t)

	page, err := entriesQuery(t, db, "page=9223372036854775807").Paginate(context.Background(), 2)
	require.NoError(t, err)

	assert.Equal(t, 9223372036854775807, page.CurrentPage)
	assert.Empty(t, page.Data)
	assert.Nil(t, page.From)
	assert.Nil(t, page.NextPageURL)
}

func TestBuilder_FirstAndWhere(t *testing.T) {
	db := seedEntries(t)

	var bob writer
	require.NoError(t, db.Where("name = ?", "Bob").Take(&bob).Error)

	got, err := entriesQuery(t, db, "sort=-views").Where("writer_id", bob.ID).First(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "Testing in Go", got.Title)

	_, err = entriesQuery(t, db, "").Where("id", fmt.Sprint(999)).First(context.Background())
	assert.ErrorIs(t, err, ErrNotFound)
}
