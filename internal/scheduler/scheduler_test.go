package scheduler_test

import (
	"testing"

	"github.com/jvanelst/Investment-Dashboard-Backend/internal/scheduler"
	"github.com/jvanelst/Investment-Dashboard-Backend/internal/testutil"
)

// TestNew tests scheduler construction.
//
// WHY: A typo in RECOMPUTE_CRON must fail at startup, not silently install a
// job that never runs.
func TestNew(t *testing.T) {
	db := testutil.SetupTestDB(t)
	svc := testutil.NewTestSnapshotService(t, db)

	t.Run("accepts a valid cron expression", func(t *testing.T) {
		s, err := scheduler.New(svc, "15 2 * * *")
		if err != nil {
			t.Fatalf("New() returned unexpected error: %v", err)
		}
		s.Start()
		s.Stop()
	})

	t.Run("rejects an invalid cron expression", func(t *testing.T) {
		if _, err := scheduler.New(svc, "not a schedule"); err == nil {
			t.Error("Expected an error for an invalid expression")
		}
	})
}
