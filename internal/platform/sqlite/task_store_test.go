package sqlite_test

import (
	"context"
	"database/sql"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/google/uuid"
	"github.com/phrazzld/tasks-api/internal/domain"
	"github.com/phrazzld/tasks-api/internal/platform/sqlite"
	"github.com/phrazzld/tasks-api/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type taskFixture struct {
	users *sqlite.UserStore
	tasks *sqlite.TaskStore
	alice *domain.User
	bob   *domain.User
}

func newTaskFixture(t *testing.T) taskFixture {
	t.Helper()
	db := newTestDB(t)
	users := sqlite.NewUserStore(db, discardLogger())
	return taskFixture{
		users: users,
		tasks: sqlite.NewTaskStore(db, discardLogger()),
		alice: mustCreateUser(t, users, "alice"),
		bob:   mustCreateUser(t, users, "bob"),
	}
}

func titles(tasks []*domain.Task) []string {
	out := make([]string, 0, len(tasks))
	for _, task := range tasks {
		out = append(out, task.Title)
	}
	return out
}

func TestTaskStore_CreateAndGet(t *testing.T) {
	t.Parallel()

	f := newTaskFixture(t)
	created := mustCreateTask(t, f.tasks, f.alice.ID, "Buy milk", "2 liters")

	got, err := f.tasks.GetByID(context.Background(), created.ID, f.alice.ID)
	require.NoError(t, err)
	assert.Equal(t, created.ID, got.ID)
	assert.Equal(t, f.alice.ID, got.UserID)
	assert.Equal(t, "Buy milk", got.Title)
	assert.Equal(t, "2 liters", got.Description)
	assert.Equal(t, domain.TaskStatusOpen, got.Status)
	assert.WithinDuration(t, created.CreatedAt, got.CreatedAt, 0)
}

func TestTaskStore_CreateUnknownOwner(t *testing.T) {
	t.Parallel()

	f := newTaskFixture(t)
	task, err := domain.NewTask(uuid.New(), "orphan", "")
	require.NoError(t, err)

	err = f.tasks.Create(context.Background(), task)
	assert.ErrorIs(t, err, store.ErrInvalidEntity)
}

func TestTaskStore_OwnershipIsolation(t *testing.T) {
	t.Parallel()

	f := newTaskFixture(t)
	ctx := context.Background()
	task := mustCreateTask(t, f.tasks, f.alice.ID, "secret", "")

	_, err := f.tasks.GetByID(ctx, task.ID, f.bob.ID)
	assert.ErrorIs(t, err, store.ErrTaskNotFound)

	_, err = f.tasks.UpdateStatus(ctx, task.ID, f.bob.ID, domain.TaskStatusDone)
	assert.ErrorIs(t, err, store.ErrTaskNotFound)

	affected, err := f.tasks.Delete(ctx, task.ID, f.bob.ID)
	require.NoError(t, err)
	assert.Zero(t, affected)

	bobs, err := f.tasks.List(ctx, f.bob.ID, store.TaskFilter{})
	require.NoError(t, err)
	assert.Empty(t, bobs)

	still, err := f.tasks.GetByID(ctx, task.ID, f.alice.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.TaskStatusOpen, still.Status)
}

func TestTaskStore_UpdateStatus(t *testing.T) {
	t.Parallel()

	f := newTaskFixture(t)
	ctx := context.Background()
	task := mustCreateTask(t, f.tasks, f.alice.ID, "walk", "")

	for _, status := range []domain.TaskStatus{
		domain.TaskStatusDone, domain.TaskStatusOpen, domain.TaskStatusInProgress,
	} {
		updated, err := f.tasks.UpdateStatus(ctx, task.ID, f.alice.ID, status)
		require.NoError(t, err)
		assert.Equal(t, status, updated.Status)
		assert.Equal(t, "walk", updated.Title)
	}

	_, err := f.tasks.UpdateStatus(ctx, uuid.New(), f.alice.ID, domain.TaskStatusDone)
	assert.ErrorIs(t, err, store.ErrTaskNotFound)
}

func TestTaskStore_DeleteTwice(t *testing.T) {
	t.Parallel()

	f := newTaskFixture(t)
	ctx := context.Background()
	task := mustCreateTask(t, f.tasks, f.alice.ID, "once", "")

	affected, err := f.tasks.Delete(ctx, task.ID, f.alice.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), affected)

	affected, err = f.tasks.Delete(ctx, task.ID, f.alice.ID)
	require.NoError(t, err)
	assert.Zero(t, affected)

	_, err = f.tasks.GetByID(ctx, task.ID, f.alice.ID)
	assert.ErrorIs(t, err, store.ErrTaskNotFound)
}

func TestTaskStore_ConcurrentDelete(t *testing.T) {
	t.Parallel()

	f := newTaskFixture(t)
	task := mustCreateTask(t, f.tasks, f.alice.ID, "contested", "")

	var (
		wg    sync.WaitGroup
		total atomic.Int64
	)
	for i := 0; i < 2; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			affected, err := f.tasks.Delete(context.Background(), task.ID, f.alice.ID)
			if err == nil {
				total.Add(affected)
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, int64(1), total.Load())
}

func TestTaskStore_List(t *testing.T) {
	t.Parallel()

	f := newTaskFixture(t)
	ctx := context.Background()

	milk := mustCreateTask(t, f.tasks, f.alice.ID, "Buy milk", "")
	mustCreateTask(t, f.tasks, f.alice.ID, "Walk dog", "take the MILK bottle")
	mustCreateTask(t, f.tasks, f.alice.ID, "Pay 100% rent", "")
	mustCreateTask(t, f.tasks, f.alice.ID, "snake_case", "")
	mustCreateTask(t, f.tasks, f.bob.ID, "Bob's milk", "")

	_, err := f.tasks.UpdateStatus(ctx, milk.ID, f.alice.ID, domain.TaskStatusDone)
	require.NoError(t, err)

	done := domain.TaskStatusDone
	open := domain.TaskStatusOpen
	inProgress := domain.TaskStatusInProgress

	tests := []struct {
		name   string
		filter store.TaskFilter
		want   []string
	}{
		{
			name:   "no filter keeps insertion order",
			filter: store.TaskFilter{},
			want:   []string{"Buy milk", "Walk dog", "Pay 100% rent", "snake_case"},
		},
		{
			name:   "status only",
			filter: store.TaskFilter{Status: &done},
			want:   []string{"Buy milk"},
		},
		{
			name:   "search matches title or description case-insensitively",
			filter: store.TaskFilter{Search: "mIlK"},
			want:   []string{"Buy milk", "Walk dog"},
		},
		{
			name:   "status and search intersect",
			filter: store.TaskFilter{Status: &open, Search: "milk"},
			want:   []string{"Walk dog"},
		},
		{
			name:   "percent matches literally",
			filter: store.TaskFilter{Search: "%"},
			want:   []string{"Pay 100% rent"},
		},
		{
			name:   "underscore matches literally",
			filter: store.TaskFilter{Search: "e_c"},
			want:   []string{"snake_case"},
		},
		{
			name:   "no match",
			filter: store.TaskFilter{Status: &inProgress},
			want:   []string{},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, err := f.tasks.List(ctx, f.alice.ID, tc.filter)
			require.NoError(t, err)
			assert.Equal(t, tc.want, titles(got))
			for _, task := range got {
				assert.True(t, task.IsOwnedBy(f.alice.ID))
			}
		})
	}
}

func TestTaskStore_ListSearchNonASCII(t *testing.T) {
	t.Parallel()

	f := newTaskFixture(t)
	ctx := context.Background()

	mustCreateTask(t, f.tasks, f.alice.ID, "ÉCOLE fees", "")
	mustCreateTask(t, f.tasks, f.alice.ID, "Ärger", "")
	mustCreateTask(t, f.tasks, f.alice.ID, "groceries", "Crème fraîche")

	tests := []struct {
		search string
		want   []string
	}{
		{"ÉCOLE", []string{"ÉCOLE fees"}},
		{"école", []string{"ÉCOLE fees"}},
		{"Ärger", []string{"Ärger"}},
		{"ärger", []string{"Ärger"}},
		{"ÄRGER", []string{"Ärger"}},
		{"CRÈME", []string{"groceries"}},
		{"écolé", []string{}},
	}

	for _, tc := range tests {
		got, err := f.tasks.List(ctx, f.alice.ID, store.TaskFilter{Search: tc.search})
		require.NoError(t, err, tc.search)
		assert.Equal(t, tc.want, titles(got), tc.search)
	}
}

func TestUnicodeLowerFunction(t *testing.T) {
	t.Parallel()

	db := newTestDB(t)

	var lowered string
	require.NoError(t, db.QueryRowContext(context.Background(),
		"SELECT "+sqlite.LowerFunc+"(?)", "ÉCOLE Ärger ABC").Scan(&lowered))
	assert.Equal(t, "école ärger abc", lowered)

	var null sql.NullString
	require.NoError(t, db.QueryRowContext(context.Background(),
		"SELECT "+sqlite.LowerFunc+"(NULL)").Scan(&null))
	assert.False(t, null.Valid)
}
