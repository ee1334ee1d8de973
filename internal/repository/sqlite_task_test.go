package repository

import (
	"context"
	"testing"

	"github.com/alexanderramin/timetrack/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTaskRepo_CRUD(t *testing.T) {
	repo := NewSQLiteTaskRepo(testutil.NewTestDB(t))
	ctx := context.Background()

	task := testutil.NewTestTask("2025-06-16", "Write report",
		testutil.WithTaskProject("atlas"),
		testutil.WithTaskTags("docs"),
		testutil.WithTaskNote("draft first"),
	)
	require.NoError(t, repo.Create(ctx, task))

	fetched, err := repo.GetByID(ctx, testutil.TestAccount, task.ID)
	require.NoError(t, err)
	assert.Equal(t, "Write report", fetched.Title)
	assert.Equal(t, "2025-06-16", fetched.Day)
	assert.Nil(t, fetched.StartTime)
	assert.Equal(t, []string{"docs"}, fetched.Tags)
	assert.Equal(t, "draft first", fetched.Note)

	start := testutil.Instant("2025-06-16T10:00:00Z")
	fetched.StartTime = &start
	fetched.Title = "Write final report"
	require.NoError(t, repo.Update(ctx, fetched))

	again, err := repo.GetByID(ctx, testutil.TestAccount, task.ID)
	require.NoError(t, err)
	assert.Equal(t, "Write final report", again.Title)
	require.NotNil(t, again.StartTime)
	assert.True(t, again.StartTime.Equal(start))

	require.NoError(t, repo.Delete(ctx, testutil.TestAccount, task.ID))
	_, err = repo.GetByID(ctx, testutil.TestAccount, task.ID)
	assert.ErrorIs(t, err, ErrNotFound)
	assert.ErrorIs(t, repo.Delete(ctx, testutil.TestAccount, task.ID), ErrNotFound)
}

func TestTaskRepo_ListByDay(t *testing.T) {
	repo := NewSQLiteTaskRepo(testutil.NewTestDB(t))
	ctx := context.Background()

	late := testutil.NewTestTask("2025-06-16", "late", testutil.WithTaskStart(testutil.Instant("2025-06-16T15:00:00Z")))
	early := testutil.NewTestTask("2025-06-16", "early", testutil.WithTaskStart(testutil.Instant("2025-06-16T08:00:00Z")))
	unstarted := testutil.NewTestTask("2025-06-16", "someday")
	tomorrow := testutil.NewTestTask("2025-06-17", "tomorrow")
	require.NoError(t, repo.Create(ctx, late))
	require.NoError(t, repo.Create(ctx, early))
	require.NoError(t, repo.Create(ctx, unstarted))
	require.NoError(t, repo.Create(ctx, tomorrow))

	list, err := repo.ListByDay(ctx, testutil.TestAccount, "2025-06-16")
	require.NoError(t, err)
	require.Len(t, list, 3)
	assert.Equal(t, "someday", list[0].Title)
	assert.Equal(t, "early", list[1].Title)
	assert.Equal(t, "late", list[2].Title)

	other, err := repo.ListByDay(ctx, "other", "2025-06-16")
	require.NoError(t, err)
	assert.Empty(t, other)
}

func TestTaskRepo_UpdateMissing(t *testing.T) {
	repo := NewSQLiteTaskRepo(testutil.NewTestDB(t))
	task := testutil.NewTestTask("2025-06-16", "ghost")
	assert.ErrorIs(t, repo.Update(context.Background(), task), ErrNotFound)
}
