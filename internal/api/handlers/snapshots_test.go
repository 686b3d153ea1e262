package handlers

import (
	"database/sql"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/jvanelst/Investment-Dashboard-Backend/internal/model"
	"github.com/jvanelst/Investment-Dashboard-Backend/internal/testutil"
)

func setupSnapshotHandler(t *testing.T) (*SnapshotHandler, *sql.DB) {
	t.Helper()
	db := testutil.SetupTestDB(t)
	return NewSnapshotHandler(testutil.NewTestSnapshotService(t, db)), db
}

func seedRecomputedSeries(t *testing.T, db *sql.DB, handler *SnapshotHandler) {
	t.Helper()

	testutil.CreateBuy(t, db, "ACME", "2024-01-02", "100", "10")
	testutil.CreatePrice(t, db, "ACME", "2024-01-02", "10")
	testutil.CreatePrice(t, db, "ACME", "2024-01-03", "11")

	req := testutil.NewRequestWithURLParams(http.MethodPost, "/api/snapshot/ACME/recompute", map[string]string{"symbol": "ACME"})
	w := httptest.NewRecorder()
	handler.RecomputeSymbol(w, req)
	if w.Code != http.StatusNoContent {
		t.Fatalf("Seed recompute failed with %d: %s", w.Code, w.Body.String())
	}
}

func TestSnapshotHandler_Timeline(t *testing.T) {
	t.Run("returns the stored series oldest first", func(t *testing.T) {
		handler, db := setupSnapshotHandler(t)
		seedRecomputedSeries(t, db, handler)

		req := testutil.NewRequestWithURLParams(http.MethodGet, "/api/snapshot/ACME", map[string]string{"symbol": "ACME"})
		w := httptest.NewRecorder()

		handler.Timeline(w, req)

		if w.Code != http.StatusOK {
			t.Errorf("Expected 200, got %d: %s", w.Code, w.Body.String())
		}

		var snaps []model.DailySnapshot
		//nolint:errcheck // Test assertion - decode failure would cause test to fail anyway
		json.NewDecoder(w.Body).Decode(&snaps)

		if len(snaps) != 2 {
			t.Fatalf("Expected 2 snapshots, got %d", len(snaps))
		}
		if !snaps[0].Date.Before(snaps[1].Date) {
			t.Error("Expected snapshots ordered by date ascending")
		}
	})

	t.Run("rejects a backwards date range with 400", func(t *testing.T) {
		handler, _ := setupSnapshotHandler(t)

		req := testutil.NewRequestWithURLParams(http.MethodGet, "/api/snapshot/ACME", map[string]string{"symbol": "ACME"})
		q := req.URL.Query()
		q.Set("start", "2024-02-01")
		q.Set("end", "2024-01-01")
		req.URL.RawQuery = q.Encode()
		w := httptest.NewRecorder()

		handler.Timeline(w, req)

		if w.Code != http.StatusBadRequest {
			t.Errorf("Expected 400, got %d: %s", w.Code, w.Body.String())
		}
	})
}

func TestSnapshotHandler_Latest(t *testing.T) {
	t.Run("returns the most recent snapshot", func(t *testing.T) {
		handler, db := setupSnapshotHandler(t)
		seedRecomputedSeries(t, db, handler)

		req := testutil.NewRequestWithURLParams(http.MethodGet, "/api/snapshot/ACME/latest", map[string]string{"symbol": "ACME"})
		w := httptest.NewRecorder()

		handler.Latest(w, req)

		if w.Code != http.StatusOK {
			t.Errorf("Expected 200, got %d: %s", w.Code, w.Body.String())
		}

		var snap model.DailySnapshot
		//nolint:errcheck // Test assertion - decode failure would cause test to fail anyway
		json.NewDecoder(w.Body).Decode(&snap)

		if snap.Date.Format("2006-01-02") != "2024-01-03" {
			t.Errorf("Expected latest snapshot on 2024-01-03, got %s", snap.Date.Format("2006-01-02"))
		}
	})

	t.Run("returns 404 when no series exists", func(t *testing.T) {
		handler, _ := setupSnapshotHandler(t)

		req := testutil.NewRequestWithURLParams(http.MethodGet, "/api/snapshot/NONE/latest", map[string]string{"symbol": "NONE"})
		w := httptest.NewRecorder()

		handler.Latest(w, req)

		if w.Code != http.StatusNotFound {
			t.Errorf("Expected 404, got %d: %s", w.Code, w.Body.String())
		}
	})
}

func TestSnapshotHandler_TopOpportunities(t *testing.T) {
	t.Run("honors the limit query parameter", func(t *testing.T) {
		handler, db := setupSnapshotHandler(t)
		seedRecomputedSeries(t, db, handler)

		req := testutil.NewRequestWithQueryParams(http.MethodGet, "/api/snapshot/ACME/opportunities", map[string]string{"limit": "1"})
		req = testutil.NewRequestWithURLParams(http.MethodGet, req.URL.String(), map[string]string{"symbol": "ACME"})
		w := httptest.NewRecorder()

		handler.TopOpportunities(w, req)

		if w.Code != http.StatusOK {
			t.Errorf("Expected 200, got %d: %s", w.Code, w.Body.String())
		}

		var snaps []model.DailySnapshot
		//nolint:errcheck // Test assertion - decode failure would cause test to fail anyway
		json.NewDecoder(w.Body).Decode(&snaps)

		if len(snaps) != 1 {
			t.Errorf("Expected 1 opportunity, got %d", len(snaps))
		}
	})
}

func TestSnapshotHandler_RecomputeSymbol(t *testing.T) {
	t.Run("maps an oversold series to 409", func(t *testing.T) {
		handler, db := setupSnapshotHandler(t)

		testutil.CreateSell(t, db, "ACME", "2024-01-02", "10", "5")
		testutil.CreatePrice(t, db, "ACME", "2024-01-02", "5")

		req := testutil.NewRequestWithURLParams(http.MethodPost, "/api/snapshot/ACME/recompute", map[string]string{"symbol": "ACME"})
		w := httptest.NewRecorder()

		handler.RecomputeSymbol(w, req)

		if w.Code != http.StatusConflict {
			t.Errorf("Expected 409, got %d: %s", w.Code, w.Body.String())
		}
	})
}

func TestSnapshotHandler_RecomputeAll(t *testing.T) {
	t.Run("recomputes the whole watchlist and returns 204", func(t *testing.T) {
		handler, db := setupSnapshotHandler(t)

		testutil.CreateWatchlistSymbol(t, db, "ACME")
		testutil.CreateBuy(t, db, "ACME", "2024-01-02", "10", "5")
		testutil.CreatePrice(t, db, "ACME", "2024-01-02", "5")

		req := httptest.NewRequest(http.MethodPost, "/api/snapshot/recompute", nil)
		w := httptest.NewRecorder()

		handler.RecomputeAll(w, req)

		if w.Code != http.StatusNoContent {
			t.Errorf("Expected 204, got %d: %s", w.Code, w.Body.String())
		}
	})
}
