package app

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"
	"time"

	"foodgram/internal/domain"
	"foodgram/internal/pkg/jwt"
	"foodgram/internal/testutil"
	"foodgram/internal/testutil/jwttest"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type e2eSuite struct {
	t      *testing.T
	router *gin.Engine
	secret string
}

type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Error   *struct {
		Code string `json:"code"`
	} `json:"error"`
}

func (s *e2eSuite) do(method, path string, body any, userID int64) (*httptest.ResponseRecorder, envelope) {
	s.t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(s.t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if userID != 0 {
		req.Header.Set("Authorization", "Bearer "+jwttest.Token(s.t, s.secret, userID, time.Hour))
	}

	rr := httptest.NewRecorder()
	s.router.ServeHTTP(rr, req)

	var env envelope
	if rr.Header().Get("Content-Type") == "application/json; charset=utf-8" {
		require.NoError(s.t, json.Unmarshal(rr.Body.Bytes(), &env), rr.Body.String())
	}
	return rr, env
}

func TestRouter_FullFlow(t *testing.T) {
	gin.SetMode(gin.TestMode)
	db := testutil.OpenDB(t)
	router, err := NewRouter(Deps{DB: db, JWT: jwt.New("e2e-secret")})
	require.NoError(t, err)
	s := &e2eSuite{t: t, router: router, secret: "e2e-secret"}

	rr, _ := s.do(http.MethodGet, "/health", nil, 0)
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.NotEmpty(t, rr.Header().Get("X-Request-ID"))

	// Registration is open to anonymous callers.
	var chef, fan struct{ ID int64 }
	for _, u := range []struct {
		name string
		out  *struct{ ID int64 }
	}{{"chef", &chef}, {"fan", &fan}} {
		rr, env := s.do(http.MethodPost, "/api/users", map[string]any{
			"email": u.name + "@example.com", "username": u.name,
			"first_name": "F", "last_name": "L", "password": "pass-" + u.name,
		}, 0)
		require.Equal(t, http.StatusCreated, rr.Code, rr.Body.String())
		require.NoError(t, json.Unmarshal(env.Data, u.out))
	}

	// An expired token left in the client must not block sign-up.
	req := httptest.NewRequest(http.MethodPost, "/api/users", bytes.NewBufferString(
		`{"email":"late@example.com","username":"late","first_name":"F","last_name":"L","password":"pass-late"}`))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+jwttest.Token(t, "e2e-secret", chef.ID, -time.Minute))
	rr = httptest.NewRecorder()
	router.ServeHTTP(rr, req)
	assert.Equal(t, http.StatusCreated, rr.Code, rr.Body.String())

	tag := testutil.CreateTag(t, db, "dinner")
	salt := testutil.CreateIngredient(t, db, "Salt", "g")
	sugar := testutil.CreateIngredient(t, db, "Sugar", "g")

	newRecipe := func(text string, items ...map[string]any) int64 {
		rr, env := s.do(http.MethodPost, "/api/recipes", map[string]any{
			"name": "Dish", "text": text, "cooking_time": 30,
			"tags": []int64{tag.ID}, "ingredients": items,
		}, chef.ID)
		require.Equal(t, http.StatusCreated, rr.Code, rr.Body.String())
		var out struct{ ID int64 }
		require.NoError(t, json.Unmarshal(env.Data, &out))
		return out.ID
	}
	a := newRecipe("A", map[string]any{"id": salt.ID, "amount": 5})
	b := newRecipe("B", map[string]any{"id": salt.ID, "amount": 3}, map[string]any{"id": sugar.ID, "amount": 10})

	rr, env := s.do(http.MethodPost, "/api/recipes", nil, 0)
	assert.Equal(t, http.StatusUnauthorized, rr.Code)
	require.NotNil(t, env.Error)

	for _, id := range []int64{a, b} {
		rr, _ = s.do(http.MethodPost, "/api/recipes/"+strconv.FormatInt(id, 10)+"/shopping_cart", nil, fan.ID)
		require.Equal(t, http.StatusCreated, rr.Code)
	}
	rr, _ = s.do(http.MethodPost, "/api/recipes/"+strconv.FormatInt(a, 10)+"/favorite", nil, fan.ID)
	require.Equal(t, http.StatusCreated, rr.Code)

	rr, _ = s.do(http.MethodGet, "/api/recipes/download_shopping_cart", nil, fan.ID)
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "Список покупок:\nSalt - 8, g\nSugar - 10, g", rr.Body.String())

	rr, env = s.do(http.MethodGet, "/api/recipes?is_in_shopping_cart=1", nil, fan.ID)
	require.Equal(t, http.StatusOK, rr.Code)
	var list []struct {
		ID               int64 `json:"id"`
		IsFavorited      bool  `json:"is_favorited"`
		IsInShoppingCart bool  `json:"is_in_shopping_cart"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &list))
	require.Len(t, list, 2)
	assert.Equal(t, b, list[0].ID, "newest first")
	assert.False(t, list[0].IsFavorited)
	assert.True(t, list[1].IsFavorited)
	assert.True(t, list[1].IsInShoppingCart)

	_, env = s.do(http.MethodGet, "/api/recipes", nil, 0)
	require.NoError(t, json.Unmarshal(env.Data, &list))
	for _, r := range list {
		assert.False(t, r.IsFavorited)
		assert.False(t, r.IsInShoppingCart)
	}

	rr, _ = s.do(http.MethodDelete, "/api/recipes/"+strconv.FormatInt(a, 10), nil, fan.ID)
	assert.Equal(t, http.StatusForbidden, rr.Code)

	rr, _ = s.do(http.MethodDelete, "/api/recipes/"+strconv.FormatInt(a, 10), nil, chef.ID)
	require.Equal(t, http.StatusNoContent, rr.Code)

	var orphans int64
	require.NoError(t, db.Model(&domain.Favorite{}).Where("recipe_id = ?", a).Count(&orphans).Error)
	assert.Zero(t, orphans)
	require.NoError(t, db.Model(&domain.ShoppingCartEntry{}).Where("recipe_id = ?", a).Count(&orphans).Error)
	assert.Zero(t, orphans)

	rr, _ = s.do(http.MethodGet, "/api/recipes/download_shopping_cart", nil, fan.ID)
	assert.Equal(t, "Список покупок:\nSalt - 3, g\nSugar - 10, g", rr.Body.String())
}
