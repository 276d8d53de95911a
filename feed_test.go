package leadscope

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
)

// feedServer serves a fixed leads/companies pair, optionally failing.
func feedServer(t *testing.T, failing *atomic.Bool) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("/leads", func(w http.ResponseWriter, r *http.Request) {
		if failing != nil && failing.Load() {
			w.WriteHeader(http.StatusInternalServerError)
			_, _ = w.Write([]byte(`{"error":"store query failed"}`))
			return
		}
		_, _ = w.Write([]byte(`[
			{"_id":"507f1f77bcf86cd799439011","Title":"Acme tender","status":"new"},
			{"_id":"507f1f77bcf86cd799439012","Title":"Zeta tender","status":"accepted"}
		]`))
	})
	mux.HandleFunc("/companies", func(w http.ResponseWriter, r *http.Request) {
		if failing != nil && failing.Load() {
			w.WriteHeader(http.StatusInternalServerError)
			_, _ = w.Write([]byte(`{"error":"store query failed"}`))
			return
		}
		_, _ = w.Write([]byte(`[
			{"_id":"607f1f77bcf86cd799439011","canonical_name":"Zeta Ltd","total_signals":9},
			{"_id":"607f1f77bcf86cd799439012","canonical_name":"Acme Corp","total_signals":5}
		]`))
	})
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func TestFeed_RefreshAndStats(t *testing.T) {
	srv := feedServer(t, nil)
	feed := NewFeed(NewClient(WithBaseURL(srv.URL)))

	if feed.Loaded() {
		t.Fatal("feed must start empty")
	}

	if err := feed.Refresh(context.Background()); err != nil {
		t.Fatalf("refresh: %v", err)
	}
	if !feed.Loaded() {
		t.Fatal("expected feed loaded after refresh")
	}

	got := feed.Stats()
	want := Stats{TotalLeads: 2, NewLeads: 1, Accepted: 1, TotalCompanies: 2}
	if got != want {
		t.Errorf("expected %+v, got %+v", want, got)
	}
}

func TestFeed_SearchOverSnapshot(t *testing.T) {
	srv := feedServer(t, nil)
	feed := NewFeed(NewClient(WithBaseURL(srv.URL)))
	if err := feed.Refresh(context.Background()); err != nil {
		t.Fatalf("refresh: %v", err)
	}

	leads := feed.SearchLeads("acme")
	if len(leads) != 1 || deref(leads[0].Title) != "Acme tender" {
		t.Errorf("unexpected search result: %v", leadTitles(leads))
	}

	companies := feed.SearchCompanies("zeta")
	if len(companies) != 1 || deref(companies[0].CanonicalName) != "Zeta Ltd" {
		t.Errorf("unexpected company result: %d", len(companies))
	}
}

func TestFeed_FailedRefreshKeepsSnapshot(t *testing.T) {
	var failing atomic.Bool
	srv := feedServer(t, &failing)
	feed := NewFeed(NewClient(WithBaseURL(srv.URL)))

	if err := feed.Refresh(context.Background()); err != nil {
		t.Fatalf("first refresh: %v", err)
	}

	failing.Store(true)
	if err := feed.Refresh(context.Background()); err == nil {
		t.Fatal("expected refresh error")
	}

	// The previous snapshot survives a failed reload.
	leads, companies := feed.Snapshot()
	if len(leads) != 2 || len(companies) != 2 {
		t.Errorf("snapshot lost after failed refresh: %d leads, %d companies", len(leads), len(companies))
	}
}

func TestFeed_SnapshotReturnsCopies(t *testing.T) {
	srv := feedServer(t, nil)
	feed := NewFeed(NewClient(WithBaseURL(srv.URL)))
	if err := feed.Refresh(context.Background()); err != nil {
		t.Fatalf("refresh: %v", err)
	}

	leads, _ := feed.Snapshot()
	leads[0].Title = strPtr("mutated")

	fresh, _ := feed.Snapshot()
	if deref(fresh[0].Title) == "mutated" {
		t.Error("snapshot must not share backing storage with callers")
	}
}
