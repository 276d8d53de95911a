package chi

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"

	leadscope "github.com/signalworks/leadscope"
	"github.com/signalworks/leadscope/internal/domain"
	companyuc "github.com/signalworks/leadscope/internal/usecase/company"
	healthuc "github.com/signalworks/leadscope/internal/usecase/health"
	leaduc "github.com/signalworks/leadscope/internal/usecase/lead"
)

const hexID = "507f1f77bcf86cd799439011"

// --- Mocks ---

type mockLeadRepo struct {
	leads   []leadscope.Lead
	listErr error
}

func (m *mockLeadRepo) List(_ context.Context) ([]leadscope.Lead, error) {
	return m.leads, m.listErr
}

func (m *mockLeadRepo) GetByStoreID(_ context.Context, id string) (leadscope.Lead, error) {
	for _, l := range m.leads {
		if l.ID.Hex() == strings.ToLower(id) {
			return l, nil
		}
	}
	return leadscope.Lead{}, domain.ErrNotFound
}

func (m *mockLeadRepo) GetByLeadID(_ context.Context, id string) (leadscope.Lead, error) {
	for _, l := range m.leads {
		if l.LeadID != nil && *l.LeadID == id {
			return l, nil
		}
	}
	return leadscope.Lead{}, domain.ErrNotFound
}

type mockCompanyRepo struct {
	companies []leadscope.Company
	listErr   error
}

func (m *mockCompanyRepo) List(_ context.Context) ([]leadscope.Company, error) {
	return m.companies, m.listErr
}

type mockPinger struct {
	err error
}

func (m *mockPinger) Ping(_ context.Context) error { return m.err }

func newTestRouter(leadRepo *mockLeadRepo, companyRepo *mockCompanyRepo, pinger *mockPinger) http.Handler {
	srv := NewServer(
		leaduc.New(leadRepo),
		companyuc.New(companyRepo),
		healthuc.New(pinger),
		zap.NewNop(),
	)
	r := chi.NewRouter()
	srv.Register(r)
	return r
}

func doGet(t *testing.T, h http.Handler, path string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, path, http.NoBody)
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)
	return rr
}

func testLead(t *testing.T, leadID string) leadscope.Lead {
	t.Helper()
	oid, err := primitive.ObjectIDFromHex(hexID)
	if err != nil {
		t.Fatalf("ObjectIDFromHex: %v", err)
	}
	status := leadscope.StatusNew
	l := leadscope.Lead{ID: oid, Status: &status}
	if leadID != "" {
		l.LeadID = &leadID
	}
	return l
}

// --- Tests ---

func TestHealth(t *testing.T) {
	h := newTestRouter(&mockLeadRepo{}, &mockCompanyRepo{}, &mockPinger{})

	rr := doGet(t, h, "/health")
	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rr.Code)
	}
	var body map[string]bool
	if err := json.Unmarshal(rr.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if !body["ok"] {
		t.Errorf("expected ok=true, got %s", rr.Body.String())
	}
}

func TestHealth_StoreDown(t *testing.T) {
	h := newTestRouter(&mockLeadRepo{}, &mockCompanyRepo{}, &mockPinger{err: domain.ErrConnection})

	rr := doGet(t, h, "/health")
	if rr.Code != http.StatusInternalServerError {
		t.Errorf("expected 500, got %d", rr.Code)
	}
}

func TestListLeads(t *testing.T) {
	h := newTestRouter(&mockLeadRepo{leads: []leadscope.Lead{testLead(t, "L-1")}}, &mockCompanyRepo{}, &mockPinger{})

	rr := doGet(t, h, "/leads")
	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rr.Code)
	}
	var leads []leadscope.Lead
	if err := json.Unmarshal(rr.Body.Bytes(), &leads); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(leads) != 1 || leads[0].LeadID == nil || *leads[0].LeadID != "L-1" {
		t.Errorf("unexpected body %s", rr.Body.String())
	}
}

func TestListLeads_EmptyIsArray(t *testing.T) {
	h := newTestRouter(&mockLeadRepo{}, &mockCompanyRepo{}, &mockPinger{})

	rr := doGet(t, h, "/leads")
	if got := strings.TrimSpace(rr.Body.String()); got != "[]" {
		t.Errorf("expected empty JSON array, got %q", got)
	}
}

func TestListLeads_StoreError(t *testing.T) {
	listErr := fmt.Errorf("%w: cursor timeout", domain.ErrStore)
	h := newTestRouter(&mockLeadRepo{listErr: listErr}, &mockCompanyRepo{}, &mockPinger{})

	rr := doGet(t, h, "/leads")
	if rr.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", rr.Code)
	}
	var body map[string]string
	if err := json.Unmarshal(rr.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if !strings.Contains(body["error"], "cursor timeout") {
		t.Errorf("expected underlying message surfaced, got %q", body["error"])
	}
}

func TestGetLead_ByEitherIdentifier(t *testing.T) {
	repo := &mockLeadRepo{leads: []leadscope.Lead{testLead(t, "L-1")}}
	h := newTestRouter(repo, &mockCompanyRepo{}, &mockPinger{})

	for _, id := range []string{hexID, "L-1"} {
		rr := doGet(t, h, "/leads/"+id)
		if rr.Code != http.StatusOK {
			t.Fatalf("id %q: expected 200, got %d (%s)", id, rr.Code, rr.Body.String())
		}
		var l leadscope.Lead
		if err := json.Unmarshal(rr.Body.Bytes(), &l); err != nil {
			t.Fatalf("id %q: decode: %v", id, err)
		}
		if l.ID.Hex() != hexID {
			t.Errorf("id %q: resolved wrong lead %s", id, l.ID.Hex())
		}
	}
}

func TestGetLead_NotFound(t *testing.T) {
	h := newTestRouter(&mockLeadRepo{}, &mockCompanyRepo{}, &mockPinger{})

	rr := doGet(t, h, "/leads/does-not-exist")
	if rr.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rr.Code)
	}
	if got := strings.TrimSpace(rr.Body.String()); got != `{"error":"Not found"}` {
		t.Errorf("unexpected body %q", got)
	}
}

func TestListCompanies_SortedPassThrough(t *testing.T) {
	zeta, acme := "Zeta Ltd", "Acme Corp"
	nine, five := int64(9), int64(5)
	repo := &mockCompanyRepo{companies: []leadscope.Company{
		{CanonicalName: &zeta, TotalSignals: &nine},
		{CanonicalName: &acme, TotalSignals: &five},
	}}
	h := newTestRouter(&mockLeadRepo{}, repo, &mockPinger{})

	rr := doGet(t, h, "/companies")
	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rr.Code)
	}
	var companies []leadscope.Company
	if err := json.Unmarshal(rr.Body.Bytes(), &companies); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(companies) != 2 || *companies[0].CanonicalName != "Zeta Ltd" {
		t.Errorf("expected Zeta first, got %s", rr.Body.String())
	}
}

func TestListCompanies_EmptyIsArray(t *testing.T) {
	h := newTestRouter(&mockLeadRepo{}, &mockCompanyRepo{}, &mockPinger{})

	rr := doGet(t, h, "/companies")
	if got := strings.TrimSpace(rr.Body.String()); got != "[]" {
		t.Errorf("expected empty JSON array, got %q", got)
	}
}
