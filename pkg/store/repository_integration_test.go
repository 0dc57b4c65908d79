//go:build integration
// +build integration

package store

import (
	"context"
	"strings"
	"testing"

	"github.com/falcomnl/api-controller/internal/pkg/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/schema"
)

type task struct {
	ID       uint   `json:"id"`
	ListID   uint   `json:"list_id"`
	Title    string `json:"title"`
	Done     bool   `json:"done"`
	Position int    `json:"position"`
}

func (t *task) OrderColumn() string {
	return "position"
}

func (t *task) SortScope(db *gorm.DB) *gorm.DB {
	return db.Where("list_id = ?", t.ListID)
}

type note struct {
	ID   uint   `json:"id"`
	Body string `json:"body"`
}

func seedTasks(t *testing.T) (*Repository[task], []*task) {
	t.Helper()

	db := testutil.SetupTestDB(t, &task{}, &note{})
	repo := New[task](db)

	var tasks []*task
	for _, title := range []string{"a", "b", "c"} {
		rec := &task{ListID: 1, Title: title}
		require.NoError(t, repo.Create(context.Background(), rec))
		tasks = append(tasks, rec)
	}
	other := &task{ListID: 2, Title: "other"}
	require.NoError(t, repo.Create(context.Background(), other))

	return repo, append(tasks, other)
}

func positions(t *testing.T, repo *Repository[task], listID uint) []string {
	t.Helper()

	var tasks []task
	require.NoError(t, repo.DB().Where("list_id = ?", listID).Order("position").Find(&tasks).Error)

	out := make([]string, len(tasks))
	for i, rec := range tasks {
		out[i] = rec.Title
	}
	return out
}

func TestRepository_CreatePlacesSortableLast(t *testing.T) {
	_, tasks := seedTasks(t)

	assert.Equal(t, 1, tasks[0].Position)
	assert.Equal(t, 2, tasks[1].Position)
	assert.Equal(t, 3, tasks[2].Position)
	assert.Equal(t, 1, tasks[3].Position)
}

func TestRepository_CreateKeepsExplicitPosition(t *testing.T) {
	repo, _ := seedTasks(t)

	rec := &task{ListID: 1, Title: "pinned", Position: 10}
	require.NoError(t, repo.Create(context.Background(), rec))
	assert.Equal(t, 10, rec.Position)
}

func TestRepository_MoveOrder(t *testing.T) {
	ctx := context.Background()
	repo, tasks := seedTasks(t)

	require.NoError(t, repo.MoveOrderUp(ctx, tasks[2]))
	assert.Equal(t, []string{"a", "c", "b"}, positions(t, repo, 1))
	assert.Equal(t, 2, tasks[2].Position)

	require.NoError(t, repo.MoveOrderDown(ctx, tasks[0]))
	assert.Equal(t, []string{"c", "a", "b"}, positions(t, repo, 1))

	assert.Equal(t, []string{"other"}, positions(t, repo, 2))
}

func TestRepository_MoveOrderAtBoundary(t *testing.T) {
	ctx := context.Background()
	repo, tasks := seedTasks(t)

	require.NoError(t, repo.MoveOrderUp(ctx, tasks[0]))
	require.NoError(t, repo.MoveOrderDown(ctx, tasks[2]))
	require.NoError(t, repo.MoveOrderDown(ctx, tasks[3]))

	assert.Equal(t, []string{"a", "b", "c"}, positions(t, repo, 1))
	assert.Equal(t, 1, tasks[3].Position)
}

func TestRepository_MoveOrderNotSortable(t *testing.T) {
	repo, _ := seedTasks(t)
	notes := New[note](repo.DB())

	rec := &note{Body: "x"}
	require.NoError(t, notes.Create(context.Background(), rec))

	err := notes.MoveOrderUp(context.Background(), rec)
	assert.ErrorIs(t, err, ErrNotSortable)
}

func TestRepository_UpdateSelectedFields(t *testing.T) {
	ctx := context.Background()
	repo, tasks := seedTasks(t)

	rec := tasks[0]
	rec.Title = "renamed"
	rec.Done = false
	rec.ListID = 99
	require.NoError(t, repo.Update(ctx, rec, []string{"Title"}))

	var stored task
	require.NoError(t, repo.DB().First(&stored, rec.ID).Error)
	assert.Equal(t, "renamed", stored.Title)
	assert.Equal(t, uint(1), stored.ListID)

	require.NoError(t, repo.DB().Model(&stored).Update("done", true).Error)
	stored.Done = false
	require.NoError(t, repo.Update(ctx, &stored, []string{"Done"}))
	require.NoError(t, repo.DB().First(&stored, rec.ID).Error)
	assert.False(t, stored.Done)

	assert.NoError(t, repo.Update(ctx, &stored, nil))
}

func TestRepository_Delete(t *testing.T) {
	ctx := context.Background()
	repo, tasks := seedTasks(t)

	require.NoError(t, repo.Delete(ctx, tasks[1]))

	var count int64
	require.NoError(t, repo.DB().Model(&task{}).Count(&count).Error)
	assert.Equal(t, int64(3), count)
}

type seqTask struct {
	ID       uint   `json:"id"`
	Title    string `json:"title"`
	Position int    `json:"position"`
}

func (t *seqTask) OrderColumn() string {
	return "seq"
}

func TestRepository_MoveOrderUsesDBNamingStrategy(t *testing.T) {
	ctx := context.Background()
	db := testutil.SetupTestDB(t)
	db.Config.NamingStrategy = schema.NamingStrategy{NameReplacer: strings.NewReplacer("Position", "Seq")}
	require.NoError(t, db.AutoMigrate(&seqTask{}))

	// parsed with the default naming strategy, where Position maps to "position"
	fields, err := FieldsForKeys[seqTask]([]string{"position"})
	require.NoError(t, err)
	assert.Equal(t, []string{"Position"}, fields)

	repo := New[seqTask](db)
	first := &seqTask{Title: "a"}
	second := &seqTask{Title: "b"}
	require.NoError(t, repo.Create(ctx, first))
	require.NoError(t, repo.Create(ctx, second))
	assert.Equal(t, 1, first.Position)
	assert.Equal(t, 2, second.Position)

	require.NoError(t, repo.MoveOrderUp(ctx, second))

	var rows []struct {
		Title string
		Seq   int
	}
	require.NoError(t, db.Table("seq_tasks").Select("title", "seq").Order("seq").Scan(&rows).Error)
	require.Len(t, rows, 2)
	assert.Equal(t, "b", rows[0].Title)
	assert.Equal(t, 1, rows[0].Seq)
	assert.Equal(t, "a", rows[1].Title)
	assert.Equal(t, 2, rows[1].Seq)
}
