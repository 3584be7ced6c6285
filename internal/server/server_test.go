package server

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"math"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/petrossemanhica07/app-poupanca/internal/auth"
	"github.com/petrossemanhica07/app-poupanca/internal/models"
	"github.com/petrossemanhica07/app-poupanca/internal/service"
	"github.com/petrossemanhica07/app-poupanca/internal/storage/sqlite"
)

type testEnv struct {
	server *httptest.Server
	store  *sqlite.SQLiteStore
}

func setupTestServer(t *testing.T) *testEnv {
	t.Helper()

	store, err := sqlite.New(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("failed to create store: %v", err)
	}

	logger := slog.Default()
	jwtManager := auth.NewJWTManager("test-secret", time.Hour)
	authSvc := service.NewAuthService(store, jwtManager, logger)
	groupSvc := service.NewGroupService(store, logger)
	ledgerSvc := service.NewLedgerService(store, logger)
	reportSvc := service.NewReportService(store, logger)

	if err := authSvc.Bootstrap(context.Background()); err != nil {
		t.Fatalf("bootstrap failed: %v", err)
	}

	srv := New(authSvc, groupSvc, ledgerSvc, reportSvc, jwtManager, "")
	ts := httptest.NewServer(srv.Handler())

	t.Cleanup(func() {
		ts.Close()
		store.Close()
	})

	return &testEnv{server: ts, store: store}
}

// do issues a JSON request and decodes the response body into out (when
// non-nil), returning the status code.
func (e *testEnv) do(t *testing.T, method, path, token string, body, out any) int {
	t.Helper()

	var reqBody *bytes.Buffer = bytes.NewBuffer(nil)
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("failed to marshal body: %v", err)
		}
		reqBody = bytes.NewBuffer(b)
	}

	req, err := http.NewRequest(method, e.server.URL+path, reqBody)
	if err != nil {
		t.Fatalf("failed to build request: %v", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	defer resp.Body.Close()

	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			t.Fatalf("failed to decode response: %v", err)
		}
	}
	return resp.StatusCode
}

// loginAdmin logs in as the bootstrap administrator.
func (e *testEnv) loginAdmin(t *testing.T) string {
	t.Helper()

	var out struct {
		Token string       `json:"token"`
		User  *models.User `json:"user"`
	}
	status := e.do(t, http.MethodPost, "/auth/login", "",
		map[string]string{"email": "admin@local", "senha": "admin123"}, &out)
	if status != http.StatusOK {
		t.Fatalf("admin login = %d, want 200", status)
	}
	if out.Token == "" {
		t.Fatal("expected a token")
	}
	return out.Token
}

func (e *testEnv) saldo(t *testing.T, path, token string) float64 {
	t.Helper()

	var out struct {
		Saldo float64 `json:"saldo"`
	}
	if status := e.do(t, http.MethodGet, path, token, nil, &out); status != http.StatusOK {
		t.Fatalf("GET %s = %d, want 200", path, status)
	}
	return out.Saldo
}

func TestLogin(t *testing.T) {
	env := setupTestServer(t)

	t.Run("valid credentials issue a working token", func(t *testing.T) {
		token := env.loginAdmin(t)

		var me struct {
			User *auth.Claims `json:"user"`
		}
		if status := env.do(t, http.MethodGet, "/me", token, nil, &me); status != http.StatusOK {
			t.Fatalf("GET /me = %d, want 200", status)
		}
		if me.User == nil || me.User.Role != models.RoleAdmin {
			t.Errorf("claims = %+v, want admin role", me.User)
		}
		if me.User.Name != "Admin" {
			t.Errorf("Name = %q, want Admin", me.User.Name)
		}
	})

	t.Run("wrong password never issues a token", func(t *testing.T) {
		var out struct {
			Token string `json:"token"`
			Error string `json:"error"`
		}
		status := env.do(t, http.MethodPost, "/auth/login", "",
			map[string]string{"email": "admin@local", "senha": "wrong"}, &out)
		if status != http.StatusUnauthorized {
			t.Errorf("login = %d, want 401", status)
		}
		if out.Token != "" {
			t.Error("expected no token in response")
		}
	})

	t.Run("missing token rejected", func(t *testing.T) {
		if status := env.do(t, http.MethodGet, "/me", "", nil, nil); status != http.StatusUnauthorized {
			t.Errorf("GET /me without token = %d, want 401", status)
		}
	})

	t.Run("garbage token rejected", func(t *testing.T) {
		if status := env.do(t, http.MethodGet, "/me", "garbage", nil, nil); status != http.StatusUnauthorized {
			t.Errorf("GET /me with garbage token = %d, want 401", status)
		}
	})
}

func TestRoleGates(t *testing.T) {
	env := setupTestServer(t)
	admin := env.loginAdmin(t)

	// Seed a group + member and a member-role login.
	var created struct {
		ID int64 `json:"id"`
	}
	env.do(t, http.MethodPost, "/groups", admin, map[string]any{"nome": "G"}, &created)
	groupID := created.ID
	env.do(t, http.MethodPost, fmt.Sprintf("/groups/%d/members", groupID), admin,
		map[string]string{"nome": "Rosa"}, &created)
	memberToken := env.memberLogin(t, created.ID)

	tests := []struct {
		name   string
		method string
		path   string
		token  string
		body   any
		want   int
	}{
		{"member cannot see overview", http.MethodGet, "/reports/overview", memberToken, nil, http.StatusForbidden},
		{"member cannot create groups", http.MethodPost, "/groups", memberToken, map[string]any{"nome": "X"}, http.StatusForbidden},
		{"member cannot record movements", http.MethodPost, "/transactions", memberToken, map[string]any{}, http.StatusForbidden},
		{"admin sees overview", http.MethodGet, "/reports/overview", admin, nil, http.StatusOK},
		{"admin is not a member", http.MethodGet, "/me/balance", admin, nil, http.StatusForbidden},
		{"member sees own balance", http.MethodGet, "/me/balance", memberToken, nil, http.StatusOK},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if status := env.do(t, tt.method, tt.path, tt.token, tt.body, nil); status != tt.want {
				t.Errorf("%s %s = %d, want %d", tt.method, tt.path, status, tt.want)
			}
		})
	}
}

// memberLogin creates a member-role user linked to memberID and logs in.
func (e *testEnv) memberLogin(t *testing.T, memberID int64) string {
	t.Helper()

	hash, err := auth.HashPassword("segredo1")
	if err != nil {
		t.Fatalf("failed to hash password: %v", err)
	}
	email := fmt.Sprintf("member%d@local", memberID)
	if err := e.store.CreateUser(context.Background(), &models.User{
		Name:         "Membro",
		Email:        email,
		PasswordHash: hash,
		Role:         models.RoleMember,
		MemberID:     memberID,
	}); err != nil {
		t.Fatalf("failed to create member user: %v", err)
	}

	var out struct {
		Token string `json:"token"`
	}
	status := e.do(t, http.MethodPost, "/auth/login", "",
		map[string]string{"email": email, "senha": "segredo1"}, &out)
	if status != http.StatusOK {
		t.Fatalf("member login = %d, want 200", status)
	}
	return out.Token
}

func TestContributionScenario(t *testing.T) {
	env := setupTestServer(t)
	admin := env.loginAdmin(t)

	var created struct {
		ID int64 `json:"id"`
	}

	// Create group G with currency MZN.
	status := env.do(t, http.MethodPost, "/groups", admin,
		map[string]any{"nome": "G", "moeda": "MZN"}, &created)
	if status != http.StatusCreated {
		t.Fatalf("POST /groups = %d, want 201", status)
	}
	groupID := created.ID

	if got := env.saldo(t, fmt.Sprintf("/groups/%d/balance", groupID), admin); got != 0 {
		t.Errorf("new group balance = %v, want 0", got)
	}

	// Create member M in G.
	status = env.do(t, http.MethodPost, fmt.Sprintf("/groups/%d/members", groupID), admin,
		map[string]string{"nome": "M"}, &created)
	if status != http.StatusCreated {
		t.Fatalf("POST members = %d, want 201", status)
	}
	memberID := created.ID

	if got := env.saldo(t, fmt.Sprintf("/members/%d/balance", memberID), admin); got != 0 {
		t.Errorf("new member balance = %v, want 0", got)
	}

	// Open a meeting with today's date.
	today := time.Now().Format("2006-01-02")
	status = env.do(t, http.MethodPost, fmt.Sprintf("/groups/%d/meetings", groupID), admin,
		map[string]string{"data": today}, &created)
	if status != http.StatusCreated {
		t.Fatalf("POST meetings = %d, want 201", status)
	}
	meetingID := created.ID

	// A second open meeting for the same group conflicts.
	if status := env.do(t, http.MethodPost, fmt.Sprintf("/groups/%d/meetings", groupID), admin,
		map[string]string{"data": today}, nil); status != http.StatusConflict {
		t.Errorf("second open meeting = %d, want 409", status)
	}

	// Post contribution valor=100 multa=10.
	status = env.do(t, http.MethodPost, "/transactions", admin, map[string]any{
		"meeting_id": meetingID, "member_id": memberID,
		"tipo": "contribution", "valor": 100, "multa": 10,
	}, &created)
	if status != http.StatusCreated {
		t.Fatalf("POST /transactions = %d, want 201", status)
	}

	if got := env.saldo(t, fmt.Sprintf("/groups/%d/balance", groupID), admin); math.Abs(got-110) > 1e-9 {
		t.Errorf("group balance = %v, want 110", got)
	}
	if got := env.saldo(t, fmt.Sprintf("/members/%d/balance", memberID), admin); math.Abs(got-(-100)) > 1e-9 {
		t.Errorf("member balance = %v, want -100", got)
	}

	// Close the meeting; further movements must fail without side effects.
	var ok struct {
		OK bool `json:"ok"`
	}
	status = env.do(t, http.MethodPatch, fmt.Sprintf("/meetings/%d/close", meetingID), admin, nil, &ok)
	if status != http.StatusOK || !ok.OK {
		t.Fatalf("PATCH close = %d/%v, want 200/true", status, ok.OK)
	}

	status = env.do(t, http.MethodPost, "/transactions", admin, map[string]any{
		"meeting_id": meetingID, "member_id": memberID,
		"tipo": "contribution", "valor": 50,
	}, nil)
	if status != http.StatusBadRequest {
		t.Errorf("movement against closed meeting = %d, want 400", status)
	}
	if got := env.saldo(t, fmt.Sprintf("/groups/%d/balance", groupID), admin); math.Abs(got-110) > 1e-9 {
		t.Errorf("group balance after rejected movement = %v, want 110", got)
	}
}

func TestLoanAndPayoutProgression(t *testing.T) {
	env := setupTestServer(t)
	admin := env.loginAdmin(t)

	var created struct {
		ID int64 `json:"id"`
	}
	env.do(t, http.MethodPost, "/groups", admin, map[string]any{"nome": "G"}, &created)
	groupID := created.ID
	env.do(t, http.MethodPost, fmt.Sprintf("/groups/%d/members", groupID), admin,
		map[string]string{"nome": "M"}, &created)
	memberID := created.ID
	env.do(t, http.MethodPost, fmt.Sprintf("/groups/%d/meetings", groupID), admin,
		map[string]string{"data": "2026-08-30"}, &created)
	meetingID := created.ID

	steps := []struct {
		tipo       string
		valor      float64
		wantMember float64
		wantGroup  float64
	}{
		{"loan", 50, 50, -50},
		{"payout", 20, 70, -70},
	}
	for _, step := range steps {
		status := env.do(t, http.MethodPost, "/transactions", admin, map[string]any{
			"meeting_id": meetingID, "member_id": memberID,
			"tipo": step.tipo, "valor": step.valor,
		}, nil)
		if status != http.StatusCreated {
			t.Fatalf("POST %s = %d, want 201", step.tipo, status)
		}

		if got := env.saldo(t, fmt.Sprintf("/members/%d/balance", memberID), admin); math.Abs(got-step.wantMember) > 1e-9 {
			t.Errorf("after %s: member balance = %v, want %v", step.tipo, got, step.wantMember)
		}
		if got := env.saldo(t, fmt.Sprintf("/groups/%d/balance", groupID), admin); math.Abs(got-step.wantGroup) > 1e-9 {
			t.Errorf("after %s: group balance = %v, want %v", step.tipo, got, step.wantGroup)
		}
	}
}

func TestTransactionValidation(t *testing.T) {
	env := setupTestServer(t)
	admin := env.loginAdmin(t)

	var created struct {
		ID int64 `json:"id"`
	}
	env.do(t, http.MethodPost, "/groups", admin, map[string]any{"nome": "G"}, &created)
	groupID := created.ID
	env.do(t, http.MethodPost, fmt.Sprintf("/groups/%d/members", groupID), admin,
		map[string]string{"nome": "M"}, &created)
	memberID := created.ID
	env.do(t, http.MethodPost, fmt.Sprintf("/groups/%d/meetings", groupID), admin,
		map[string]string{"data": "2026-08-30"}, &created)
	meetingID := created.ID

	tests := []struct {
		name string
		body map[string]any
		want int
	}{
		{
			name: "unknown tipo",
			body: map[string]any{"meeting_id": meetingID, "member_id": memberID, "tipo": "transfer", "valor": 10},
			want: http.StatusBadRequest,
		},
		{
			name: "negative valor",
			body: map[string]any{"meeting_id": meetingID, "member_id": memberID, "tipo": "contribution", "valor": -5},
			want: http.StatusBadRequest,
		},
		{
			name: "missing meeting",
			body: map[string]any{"meeting_id": 9999, "member_id": memberID, "tipo": "contribution", "valor": 5},
			want: http.StatusBadRequest,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if status := env.do(t, http.MethodPost, "/transactions", admin, tt.body, nil); status != tt.want {
				t.Errorf("POST /transactions = %d, want %d", status, tt.want)
			}
		})
	}
}

func TestMemberSelfService(t *testing.T) {
	env := setupTestServer(t)
	admin := env.loginAdmin(t)

	var created struct {
		ID int64 `json:"id"`
	}
	env.do(t, http.MethodPost, "/groups", admin, map[string]any{"nome": "Xitique"}, &created)
	groupID := created.ID
	env.do(t, http.MethodPost, fmt.Sprintf("/groups/%d/members", groupID), admin,
		map[string]string{"nome": "Rosa"}, &created)
	memberID := created.ID
	env.do(t, http.MethodPost, fmt.Sprintf("/groups/%d/meetings", groupID), admin,
		map[string]string{"data": "2026-08-30"}, &created)
	meetingID := created.ID

	env.do(t, http.MethodPost, "/transactions", admin, map[string]any{
		"meeting_id": meetingID, "member_id": memberID, "tipo": "contribution", "valor": 40,
	}, nil)

	token := env.memberLogin(t, memberID)

	if got := env.saldo(t, "/me/balance", token); math.Abs(got-(-40)) > 1e-9 {
		t.Errorf("/me/balance = %v, want -40", got)
	}

	var txns []models.MemberTransaction
	if status := env.do(t, http.MethodGet, "/me/transactions", token, nil, &txns); status != http.StatusOK {
		t.Fatalf("GET /me/transactions = %d, want 200", status)
	}
	if len(txns) != 1 {
		t.Fatalf("got %d transactions, want 1", len(txns))
	}
	if txns[0].Group != "Xitique" || txns[0].Amount != 40 {
		t.Errorf("transaction = %+v, want Xitique/40", txns[0])
	}
}

func TestOverviewAndGroupReport(t *testing.T) {
	env := setupTestServer(t)
	admin := env.loginAdmin(t)

	var created struct {
		ID int64 `json:"id"`
	}
	env.do(t, http.MethodPost, "/groups", admin, map[string]any{"nome": "G"}, &created)
	groupID := created.ID
	env.do(t, http.MethodPost, fmt.Sprintf("/groups/%d/members", groupID), admin,
		map[string]string{"nome": "M"}, &created)
	memberID := created.ID
	env.do(t, http.MethodPost, fmt.Sprintf("/groups/%d/meetings", groupID), admin,
		map[string]string{"data": "2026-08-30"}, &created)
	meetingID := created.ID

	env.do(t, http.MethodPost, "/transactions", admin, map[string]any{
		"meeting_id": meetingID, "member_id": memberID, "tipo": "contribution", "valor": 75, "multa": 5,
	}, nil)

	var ov models.Overview
	if status := env.do(t, http.MethodGet, "/reports/overview", admin, nil, &ov); status != http.StatusOK {
		t.Fatalf("GET /reports/overview = %d, want 200", status)
	}
	if ov.Groups != 1 || ov.Members != 1 {
		t.Errorf("overview counts = %d groups / %d members, want 1/1", ov.Groups, ov.Members)
	}
	if math.Abs(ov.Cash-80) > 1e-9 {
		t.Errorf("Cash = %v, want 80", ov.Cash)
	}
	if len(ov.Latest) != 1 || ov.Latest[0].Type != models.TypeContribution {
		t.Errorf("Latest = %+v, want one contribution", ov.Latest)
	}

	var report models.GroupReport
	if status := env.do(t, http.MethodGet, fmt.Sprintf("/reports/group/%d", groupID), admin, nil, &report); status != http.StatusOK {
		t.Fatalf("GET /reports/group = %d, want 200", status)
	}
	if math.Abs(report.Balance-80) > 1e-9 {
		t.Errorf("report balance = %v, want 80", report.Balance)
	}
	if len(report.Contributions) != 1 || math.Abs(report.Contributions[0].Total-75) > 1e-9 {
		t.Errorf("contributions = %+v, want one row of 75", report.Contributions)
	}

	var rows []models.ReconciliationRow
	if status := env.do(t, http.MethodGet, "/reports/reconciliation", admin, nil, &rows); status != http.StatusOK {
		t.Fatalf("GET /reports/reconciliation = %d, want 200", status)
	}
	for _, r := range rows {
		if math.Abs(r.Drift) > 1e-9 {
			t.Errorf("%s %d drifted by %v", r.Scope, r.RefID, r.Drift)
		}
	}
}

func TestHealthz(t *testing.T) {
	env := setupTestServer(t)

	var out struct {
		Status string `json:"status"`
	}
	if status := env.do(t, http.MethodGet, "/healthz", "", nil, &out); status != http.StatusOK {
		t.Fatalf("GET /healthz = %d, want 200", status)
	}
	if out.Status != "ok" {
		t.Errorf("status = %q, want ok", out.Status)
	}
}
