package repository

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/alexanderramin/timetrack/internal/db"
	"github.com/alexanderramin/timetrack/internal/domain"
	"github.com/alexanderramin/timetrack/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestConcurrentAccess_ClaimOpenSingleWinner races many transactions that
// each create a session and claim the open slot of one account.
func TestConcurrentAccess_ClaimOpenSingleWinner(t *testing.T) {
	database := testutil.NewFileTestDB(t, "concurrent_test.db")
	uow := db.NewSQLiteUnitOfWork(database)
	ctx := context.Background()

	const workers = 16
	var wg sync.WaitGroup
	var wins, conflicts atomic.Int32
	start := testutil.Instant("2025-06-16T09:00:00Z")

	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			err := uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
				repo := NewSQLiteSessionRepo(tx)
				sess := testutil.NewTestSession(start)
				if err := repo.Create(ctx, sess); err != nil {
					return err
				}
				return repo.ClaimOpen(ctx, sess.AccountID, sess.ID)
			})
			switch {
			case err == nil:
				wins.Add(1)
			case errors.Is(err, domain.ErrConflict):
				conflicts.Add(1)
			default:
				t.Errorf("unexpected error: %v", err)
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, int32(1), wins.Load())
	assert.Equal(t, int32(workers-1), conflicts.Load())

	sessions, err := NewSQLiteSessionRepo(database).ListForDay(ctx, testutil.TestAccount, "2025-06-16")
	require.NoError(t, err)
	assert.Len(t, sessions, 1, "losing transactions leave no rows behind")
}

// TestConcurrentAccess_ReadDuringWrite verifies readers see consistent
// snapshots while sessions are being written.
func TestConcurrentAccess_ReadDuringWrite(t *testing.T) {
	database := testutil.NewFileTestDB(t, "concurrent_test.db")
	repo := NewSQLiteSessionRepo(database)
	ctx := context.Background()

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		base := testutil.Instant("2025-06-16T00:00:00Z")
		for i := 0; i < 20; i++ {
			from := base.Add(time.Duration(i) * 30 * time.Minute)
			s := testutil.NewTestSession(from, testutil.WithStopTime(from.Add(20*time.Minute)))
			if err := repo.Create(ctx, s); err != nil {
				t.Errorf("writer: create session %d: %v", i, err)
				return
			}
		}
	}()

	for r := 0; r < 5; r++ {
		wg.Add(1)
		go func(reader int) {
			defer wg.Done()
			for i := 0; i < 10; i++ {
				list, err := repo.ListForDay(ctx, testutil.TestAccount, "2025-06-16")
				if err != nil {
					t.Errorf("reader %d: list: %v", reader, err)
					return
				}
				for _, s := range list {
					if s.TotalSeconds == nil || *s.TotalSeconds != 1200 {
						t.Errorf("reader %d: half-written session %s", reader, s.ID)
					}
				}
			}
		}(r)
	}
	wg.Wait()

	list, err := repo.ListForDay(ctx, testutil.TestAccount, "2025-06-16")
	require.NoError(t, err)
	assert.Len(t, list, 20)
}
