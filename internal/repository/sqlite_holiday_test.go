package repository

import (
	"context"
	"testing"

	"github.com/alexanderramin/timetrack/internal/domain"
	"github.com/alexanderramin/timetrack/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHolidayRepo_UpsertAndListRange(t *testing.T) {
	repo := NewSQLiteHolidayRepo(testutil.NewTestDB(t))
	ctx := context.Background()

	require.NoError(t, repo.Upsert(ctx, domain.Holiday{AccountID: testutil.TestAccount, Day: "2025-12-25", Name: "Xmas"}))
	require.NoError(t, repo.Upsert(ctx, domain.Holiday{AccountID: testutil.TestAccount, Day: "2025-12-26", Name: "Boxing Day"}))
	require.NoError(t, repo.Upsert(ctx, domain.Holiday{AccountID: testutil.TestAccount, Day: "2025-12-25", Name: "Christmas Day"}))
	require.NoError(t, repo.Upsert(ctx, domain.Holiday{AccountID: "other", Day: "2025-12-24", Name: "Eve"}))

	list, err := repo.ListRange(ctx, testutil.TestAccount, "2025-12-01", "2025-12-31")
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "Christmas Day", list[0].Name, "upsert replaces the name")
	assert.Equal(t, "2025-12-26", list[1].Day)

	require.NoError(t, repo.Delete(ctx, testutil.TestAccount, "2025-12-26"))
	assert.ErrorIs(t, repo.Delete(ctx, testutil.TestAccount, "2025-12-26"), ErrNotFound)
}
