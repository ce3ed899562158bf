package handlers

import (
	"encoding/json"
	"math/rand"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"uctuuctu/internal/models"
	"uctuuctu/internal/store"
	"uctuuctu/internal/ws"
)

func testRouter() (*gin.Engine, *store.RoomStore) {
	gin.SetMode(gin.TestMode)
	st := store.NewRoomStore(rand.New(rand.NewSource(1)), models.RoomSettings{RoundMs: 4000, IntermissionMs: 1000})
	h := &Handler{
		Hub:           ws.NewHub(),
		Store:         st,
		ClientBaseURL: "http://localhost:5173",
	}
	return Router(h, []string{"*"}), st
}

func TestHealth(t *testing.T) {
	router, _ := testRouter()

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	var body map[string]string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "uctu-uctu", body["service"])
	assert.Equal(t, "ok", body["status"])
}

func TestRoomQR(t *testing.T) {
	router, st := testRouter()

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/rooms/99999/qr", nil))
	assert.Equal(t, http.StatusNotFound, w.Code, "unknown room gets no QR")

	room := st.CreateRoom("h1", "Ayşe")
	w = httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/rooms/"+room.Code+"/qr", nil))
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "image/png", w.Header().Get("Content-Type"))
	assert.NotEmpty(t, w.Body.Bytes())
}
