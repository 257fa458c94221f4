package api

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/divvly/divvly/internal/auth"
	"github.com/divvly/divvly/internal/payments"
	"github.com/divvly/divvly/internal/service"
	"github.com/divvly/divvly/internal/storage/sqlite"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newTestRouter(t *testing.T) (*gin.Engine, *payments.LocalRail) {
	t.Helper()

	store, err := sqlite.New(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })

	rail := payments.NewLocalRail()
	jwtManager := auth.NewJWTManager("test-secret", time.Hour)

	router := SetupRouter(RouterDeps{
		AuthSvc:       service.NewAuthService(auth.NewPasswordAuthenticator(store), jwtManager, testLogger()),
		GroupSvc:      service.NewGroupService(store, 10),
		LedgerSvc:     service.NewLedgerService(store),
		SettlementSvc: service.NewSettlementService(store, rail),
		JWTManager:    jwtManager,
		Rail:          rail,
		Mode:          gin.TestMode,
	})
	return router, rail
}

func doJSON(t *testing.T, router *gin.Engine, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func decode(t *testing.T, w *httptest.ResponseRecorder, out any) {
	t.Helper()
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), out), "body: %s", w.Body.String())
}

// registerUser registers an account and returns its ledger address and
// session token.
func registerUser(t *testing.T, router *gin.Engine, email, name string) (address, token string) {
	t.Helper()

	w := doJSON(t, router, http.MethodPost, "/api/v1/auth/register", "", gin.H{
		"email":        email,
		"display_name": name,
		"password":     "correct-horse-battery",
	})
	require.Equal(t, http.StatusCreated, w.Code, "body: %s", w.Body.String())

	var resp authResponse
	decode(t, w, &resp)
	require.NotEmpty(t, resp.UserID)
	require.NotEmpty(t, resp.Token)
	return resp.UserID, resp.Token
}

func TestAuthFlow(t *testing.T) {
	router, _ := newTestRouter(t)

	_, _ = registerUser(t, router, "alice@example.com", "Alice")

	t.Run("login with correct password", func(t *testing.T) {
		w := doJSON(t, router, http.MethodPost, "/api/v1/auth/login", "", gin.H{
			"email":    "alice@example.com",
			"password": "correct-horse-battery",
		})
		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("login with wrong password", func(t *testing.T) {
		w := doJSON(t, router, http.MethodPost, "/api/v1/auth/login", "", gin.H{
			"email":    "alice@example.com",
			"password": "wrong",
		})
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("duplicate email rejected", func(t *testing.T) {
		w := doJSON(t, router, http.MethodPost, "/api/v1/auth/register", "", gin.H{
			"email":        "alice@example.com",
			"display_name": "Alice Again",
			"password":     "another-password",
		})
		assert.Equal(t, http.StatusConflict, w.Code)
	})

	t.Run("protected route without token", func(t *testing.T) {
		w := doJSON(t, router, http.MethodGet, "/api/v1/groups", "", nil)
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("protected route with garbage token", func(t *testing.T) {
		w := doJSON(t, router, http.MethodGet, "/api/v1/groups", "not-a-jwt", nil)
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})
}

func TestExpenseFlow(t *testing.T) {
	router, _ := newTestRouter(t)

	aliceAddr, aliceToken := registerUser(t, router, "alice@example.com", "Alice")
	bobAddr, bobToken := registerUser(t, router, "bob@example.com", "Bob")

	// Alice creates a two-person group.
	w := doJSON(t, router, http.MethodPost, "/api/v1/groups", aliceToken, gin.H{
		"name":             "Roommates",
		"token":            "USDC",
		"member_names":     []string{"Alice", "Bob"},
		"member_addresses": []string{aliceAddr, bobAddr},
	})
	require.Equal(t, http.StatusCreated, w.Code, "body: %s", w.Body.String())

	var group groupResponse
	decode(t, w, &group)
	require.Len(t, group.Members, 2)
	base := fmt.Sprintf("/api/v1/groups/%d", group.ID)

	t.Run("group visible to both members", func(t *testing.T) {
		for _, token := range []string{aliceToken, bobToken} {
			w := doJSON(t, router, http.MethodGet, "/api/v1/groups", token, nil)
			require.Equal(t, http.StatusOK, w.Code)

			var resp struct {
				GroupIDs []int64 `json:"group_ids"`
			}
			decode(t, w, &resp)
			assert.Contains(t, resp.GroupIDs, group.ID)
		}
	})

	t.Run("member lookup by index", func(t *testing.T) {
		w := doJSON(t, router, http.MethodGet, base+"/members/1", aliceToken, nil)
		require.Equal(t, http.StatusOK, w.Code)

		var member memberResponse
		decode(t, w, &member)
		assert.Equal(t, bobAddr, member.Address)

		w = doJSON(t, router, http.MethodGet, base+"/members/5", aliceToken, nil)
		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	// Alice pays 100 split between both: Bob owes Alice 50.
	w = doJSON(t, router, http.MethodPost, base+"/bills", aliceToken, gin.H{
		"description":  "groceries",
		"amount":       100,
		"participants": []string{aliceAddr, bobAddr},
	})
	require.Equal(t, http.StatusCreated, w.Code, "body: %s", w.Body.String())

	var bill billResponse
	decode(t, w, &bill)
	assert.Equal(t, int64(0), bill.Index)
	assert.Equal(t, aliceAddr, bill.Creator)

	t.Run("debt reflects split", func(t *testing.T) {
		w := doJSON(t, router, http.MethodGet,
			base+"/debt?debtor="+bobAddr+"&creditor="+aliceAddr, bobToken, nil)
		require.Equal(t, http.StatusOK, w.Code)

		var debt debtResponse
		decode(t, w, &debt)
		assert.Equal(t, int64(50), debt.Amount)
	})

	t.Run("totals and balances agree", func(t *testing.T) {
		w := doJSON(t, router, http.MethodGet, base+"/totals?member="+bobAddr, bobToken, nil)
		require.Equal(t, http.StatusOK, w.Code)

		var totals totalsResponse
		decode(t, w, &totals)
		assert.Equal(t, int64(50), totals.TotalOwed)
		assert.Equal(t, int64(0), totals.OwedByOthers)

		w = doJSON(t, router, http.MethodGet, base+"/balances", aliceToken, nil)
		require.Equal(t, http.StatusOK, w.Code)

		var resp struct {
			Balances []balanceResponse `json:"balances"`
		}
		decode(t, w, &resp)
		var net int64
		for _, b := range resp.Balances {
			net += b.Net
		}
		assert.Zero(t, net)
	})

	t.Run("bill participant lookup", func(t *testing.T) {
		w := doJSON(t, router, http.MethodGet, base+"/bills/0/participants/1", aliceToken, nil)
		require.Equal(t, http.StatusOK, w.Code)

		var resp struct {
			Address string `json:"address"`
		}
		decode(t, w, &resp)
		assert.Equal(t, bobAddr, resp.Address)
	})

	t.Run("nonmember as participant rejected", func(t *testing.T) {
		w := doJSON(t, router, http.MethodPost, base+"/bills", aliceToken, gin.H{
			"amount":       10,
			"participants": []string{"stranger"},
		})
		assert.Equal(t, http.StatusForbidden, w.Code)
	})

	t.Run("unknown group is 404", func(t *testing.T) {
		w := doJSON(t, router, http.MethodGet, "/api/v1/groups/404", aliceToken, nil)
		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}

func TestSettlementFlow(t *testing.T) {
	router, rail := newTestRouter(t)

	aliceAddr, aliceToken := registerUser(t, router, "alice@example.com", "Alice")
	bobAddr, bobToken := registerUser(t, router, "bob@example.com", "Bob")

	w := doJSON(t, router, http.MethodPost, "/api/v1/groups", aliceToken, gin.H{
		"name":             "Trip",
		"token":            "USDC",
		"member_names":     []string{"Alice", "Bob"},
		"member_addresses": []string{aliceAddr, bobAddr},
	})
	require.Equal(t, http.StatusCreated, w.Code)
	var group groupResponse
	decode(t, w, &group)
	base := fmt.Sprintf("/api/v1/groups/%d", group.ID)

	w = doJSON(t, router, http.MethodPost, base+"/bills", aliceToken, gin.H{
		"description":  "hotel",
		"amount":       100,
		"participants": []string{aliceAddr, bobAddr},
	})
	require.Equal(t, http.StatusCreated, w.Code)

	// Bob funds his wallet and approves the engine.
	w = doJSON(t, router, http.MethodPost, "/api/v1/wallet/deposit", bobToken, gin.H{
		"token":  "USDC",
		"amount": 200,
	})
	require.Equal(t, http.StatusOK, w.Code)

	t.Run("settle without allowance fails", func(t *testing.T) {
		w := doJSON(t, router, http.MethodPost, base+"/settlements", bobToken, gin.H{
			"creditor": aliceAddr,
			"amount":   50,
		})
		assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	})

	w = doJSON(t, router, http.MethodPost, "/api/v1/wallet/approve", bobToken, gin.H{
		"token":  "USDC",
		"amount": 200,
	})
	require.Equal(t, http.StatusOK, w.Code)

	w = doJSON(t, router, http.MethodPost, base+"/settlements", bobToken, gin.H{
		"creditor": aliceAddr,
		"amount":   50,
		"note":     "paid back",
	})
	require.Equal(t, http.StatusCreated, w.Code, "body: %s", w.Body.String())

	t.Run("debt cleared and value moved", func(t *testing.T) {
		w := doJSON(t, router, http.MethodGet,
			base+"/debt?debtor="+bobAddr+"&creditor="+aliceAddr, bobToken, nil)
		require.Equal(t, http.StatusOK, w.Code)

		var debt debtResponse
		decode(t, w, &debt)
		assert.Zero(t, debt.Amount)

		assert.Equal(t, int64(50), rail.Balance("USDC", aliceAddr))
		assert.Equal(t, int64(150), rail.Balance("USDC", bobAddr))
	})

	t.Run("settling again reports no debt", func(t *testing.T) {
		w := doJSON(t, router, http.MethodPost, base+"/settlements", bobToken, gin.H{
			"creditor": aliceAddr,
			"amount":   1,
		})
		assert.Equal(t, http.StatusConflict, w.Code)
	})

	t.Run("settlement log records the payment", func(t *testing.T) {
		w := doJSON(t, router, http.MethodGet, base+"/settlements", aliceToken, nil)
		require.Equal(t, http.StatusOK, w.Code)

		var resp struct {
			Settlements []settlementResponse `json:"settlements"`
		}
		decode(t, w, &resp)
		require.Len(t, resp.Settlements, 1)
		assert.Equal(t, "paid back", resp.Settlements[0].Note)
		assert.Equal(t, int64(50), resp.Settlements[0].Amount)
	})

	t.Run("wallet balance endpoint", func(t *testing.T) {
		w := doJSON(t, router, http.MethodGet, "/api/v1/wallet/balance?token=USDC", bobToken, nil)
		require.Equal(t, http.StatusOK, w.Code)

		var resp walletBalanceResponse
		decode(t, w, &resp)
		assert.Equal(t, int64(150), resp.Balance)
	})
}

func TestHealthz(t *testing.T) {
	router, _ := newTestRouter(t)

	w := doJSON(t, router, http.MethodGet, "/healthz", "", nil)
	assert.Equal(t, http.StatusOK, w.Code)
}
