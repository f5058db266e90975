package trades

import (
	"bytes"
	"database/sql"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	_ "modernc.org/sqlite"

	"tradebook/internal/domain"
	"tradebook/internal/events"
)

func setupTestDB(t *testing.T) *sql.DB {
	t.Helper()

	db, err := sql.Open("sqlite", ":memory:")
	require.NoError(t, err)
	require.NoError(t, InitSchema(db))
	return db
}

func newTestRouter(h *Handler) *chi.Mux {
	r := chi.NewRouter()
	r.Get("/", h.HandleList)
	r.Post("/", h.HandleCreate)
	r.Put("/{id}", h.HandleUpdate)
	r.Delete("/{id}", h.HandleDelete)
	return r
}

func f(v float64) *float64 { return &v }

func TestHandleCreateAndList(t *testing.T) {
	db := setupTestDB(t)
	defer db.Close()

	repo := NewRepository(db, zerolog.Nop())
	handler := NewHandler(repo, events.NewManager(zerolog.Nop()), nil, zerolog.Nop())
	router := newTestRouter(handler)

	body, _ := json.Marshal(TradeRequest{
		Date:       "2024-01-15",
		TradeType:  domain.TradeTypeOptions,
		Stocks:     "NIFTY 21500 CE",
		Profit:     f(500),
		Commission: 10,
	})

	req := httptest.NewRequest("POST", "/", bytes.NewReader(body))
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusCreated, w.Code)

	var created domain.Trade
	require.NoError(t, json.NewDecoder(w.Body).Decode(&created))
	assert.NotEmpty(t, created.ID)
	assert.Equal(t, domain.TradeTypeOptions, created.TradeType)
	assert.InDelta(t, 490, created.Net(), 1e-9)

	req = httptest.NewRequest("GET", "/", nil)
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	var list []domain.Trade
	require.NoError(t, json.NewDecoder(w.Body).Decode(&list))
	require.Len(t, list, 1)
	assert.Equal(t, created.ID, list[0].ID)
}

func TestHandleListEmptyReturnsArray(t *testing.T) {
	db := setupTestDB(t)
	defer db.Close()

	repo := NewRepository(db, zerolog.Nop())
	handler := NewHandler(repo, events.NewManager(zerolog.Nop()), nil, zerolog.Nop())

	req := httptest.NewRequest("GET", "/", nil)
	w := httptest.NewRecorder()
	handler.HandleList(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, "[]", w.Body.String())
}

func TestHandleCreateRejectsInvalid(t *testing.T) {
	db := setupTestDB(t)
	defer db.Close()

	repo := NewRepository(db, zerolog.Nop())
	handler := NewHandler(repo, events.NewManager(zerolog.Nop()), nil, zerolog.Nop())
	router := newTestRouter(handler)

	tests := []struct {
		name string
		req  TradeRequest
	}{
		{"bad date", TradeRequest{Date: "15/01/2024", Profit: f(10)}},
		{"both profit and loss", TradeRequest{Date: "2024-01-15", Profit: f(10), Loss: f(5)}},
		{"negative profit", TradeRequest{Date: "2024-01-15", Profit: f(-10)}},
		{"negative commission", TradeRequest{Date: "2024-01-15", Profit: f(10), Commission: -1}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			body, _ := json.Marshal(tt.req)
			req := httptest.NewRequest("POST", "/", bytes.NewReader(body))
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)
			assert.Equal(t, http.StatusBadRequest, w.Code)
		})
	}
}

func TestHandleUpdate(t *testing.T) {
	db := setupTestDB(t)
	defer db.Close()

	repo := NewRepository(db, zerolog.Nop())
	handler := NewHandler(repo, events.NewManager(zerolog.Nop()), nil, zerolog.Nop())
	router := newTestRouter(handler)

	require.NoError(t, repo.Create(domain.Trade{
		ID: "t1", Date: "2024-01-15", Profit: f(100), Commission: 5,
	}))

	body, _ := json.Marshal(TradeRequest{Date: "2024-01-16", Loss: f(75), Commission: 3})
	req := httptest.NewRequest("PUT", "/t1", bytes.NewReader(body))
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	stored, err := repo.GetByID("t1")
	require.NoError(t, err)
	require.NotNil(t, stored)
	assert.Equal(t, "2024-01-16", stored.Date)
	assert.Nil(t, stored.Profit)
	assert.InDelta(t, -78, stored.Net(), 1e-9)
}

func TestHandleUpdateMissing(t *testing.T) {
	db := setupTestDB(t)
	defer db.Close()

	repo := NewRepository(db, zerolog.Nop())
	handler := NewHandler(repo, events.NewManager(zerolog.Nop()), nil, zerolog.Nop())
	router := newTestRouter(handler)

	body, _ := json.Marshal(TradeRequest{Date: "2024-01-16", Profit: f(10)})
	req := httptest.NewRequest("PUT", "/nope", bytes.NewReader(body))
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestHandleDelete(t *testing.T) {
	db := setupTestDB(t)
	defer db.Close()

	repo := NewRepository(db, zerolog.Nop())
	handler := NewHandler(repo, events.NewManager(zerolog.Nop()), nil, zerolog.Nop())
	router := newTestRouter(handler)

	require.NoError(t, repo.Create(domain.Trade{ID: "t1", Date: "2024-01-15", Profit: f(100)}))

	req := httptest.NewRequest("DELETE", "/t1", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusNoContent, w.Code)

	stored, err := repo.GetByID("t1")
	require.NoError(t, err)
	assert.Nil(t, stored)

	req = httptest.NewRequest("DELETE", "/t1", nil)
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestRepositoryReplayOrder(t *testing.T) {
	db := setupTestDB(t)
	defer db.Close()

	repo := NewRepository(db, zerolog.Nop())

	// Inserted out of date order; same-day rows keep creation order.
	require.NoError(t, repo.Create(domain.Trade{ID: "b", Date: "2024-01-20", Profit: f(10)}))
	require.NoError(t, repo.Create(domain.Trade{ID: "a", Date: "2024-01-10", Profit: f(10)}))
	require.NoError(t, repo.Create(domain.Trade{ID: "c", Date: "2024-01-20", Loss: f(5)}))

	list, err := repo.GetAll()
	require.NoError(t, err)
	require.Len(t, list, 3)
	assert.Equal(t, []string{"a", "b", "c"}, []string{list[0].ID, list[1].ID, list[2].ID})
}
