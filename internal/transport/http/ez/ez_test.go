package ez

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"go-gin-gorm-blog/internal/core/database"
	"go-gin-gorm-blog/internal/domain"
	"go-gin-gorm-blog/internal/repo"
)

func init() { gin.SetMode(gin.TestMode) }

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := database.NewGorm(database.Opts{
		Driver:       "sqlite",
		DSN:          "file:" + filepath.Join(t.TempDir(), "blog.db") + "?_foreign_keys=on",
		MaxIdleConns: 2,
		LogLevel:     "silent",
	})
	require.NoError(t, err)
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})
	require.NoError(t, database.Migrate(db))
	return db
}

func do(r http.Handler, method, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestStatusOf(t *testing.T) {
	cases := []struct {
		err  error
		want int
	}{
		{domain.ErrInvalidEmail, http.StatusBadRequest},
		{domain.ErrInvalidCredentials, http.StatusUnauthorized},
		{domain.Forbidden("no"), http.StatusForbidden},
		{domain.ErrTagNotFound, http.StatusNotFound},
		{fmt.Errorf("wrap: %w", domain.ErrEmailTaken), http.StatusConflict},
		{domain.Internal("db", errors.New("gone")), http.StatusInternalServerError},
		{errors.New("plain"), http.StatusInternalServerError},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, StatusOf(tc.err), tc.err.Error())
	}
}

func mountCategories(t *testing.T) (*gin.Engine, *gorm.DB) {
	db := newTestDB(t)
	r := gin.New()
	e := New(r.Group("/category"), db, nil, nil)
	Crud(e, CrudConfig[domain.Category, domain.CategoryCreate, domain.CategoryUpdate]{
		Name:     "category",
		NotFound: domain.ErrCategoryNotFound,
		Repo: func(tx *gorm.DB) Resource[domain.Category, domain.CategoryCreate, domain.CategoryUpdate] {
			return repo.NewCategoryRepo(tx)
		},
	})
	return r, db
}

func TestCrudRoutes(t *testing.T) {
	r, _ := mountCategories(t)

	w := do(r, http.MethodPost, "/category/create", `{"name":"Go","description":"gophers"}`)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var created domain.Category
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))
	assert.Equal(t, uint(1), created.ID)

	w = do(r, http.MethodGet, "/category/1", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"name":"Go"`)

	w = do(r, http.MethodGet, "/category/search?keyword=GOPH", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"id":1`)

	w = do(r, http.MethodPatch, "/category/update", `{"id":1,"name":"Golang"}`)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"name":"Golang"`)
	assert.Contains(t, w.Body.String(), `"description":"gophers"`)

	w = do(r, http.MethodGet, "/category/", "")
	assert.Equal(t, http.StatusOK, w.Code)
	var all []domain.Category
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &all))
	assert.Len(t, all, 1)

	w = do(r, http.MethodDelete, "/category/delete/1", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"name":"Golang"`)

	w = do(r, http.MethodGet, "/category/1", "")
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.JSONEq(t, `{"message":"category not found"}`, w.Body.String())

	w = do(r, http.MethodDelete, "/category/delete/1", "")
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestCrudEmptyListIsArray(t *testing.T) {
	r, _ := mountCategories(t)

	w := do(r, http.MethodGet, "/category/", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `[]`, w.Body.String())
}

func TestCrudBindErrors(t *testing.T) {
	r, _ := mountCategories(t)

	assert.Equal(t, http.StatusBadRequest, do(r, http.MethodPost, "/category/create", `{"description":"no name"}`).Code)
	assert.Equal(t, http.StatusBadRequest, do(r, http.MethodGet, "/category/abc", "").Code)
	assert.Equal(t, http.StatusBadRequest, do(r, http.MethodPatch, "/category/update", `{"name":"x"}`).Code)
	assert.Equal(t, http.StatusNotFound, do(r, http.MethodPatch, "/category/update", `{"id":7,"name":"x"}`).Code)
}

func TestActionRollsBackOnError(t *testing.T) {
	db := newTestDB(t)
	r := gin.New()
	e := New(r.Group(""), db, nil, nil)
	RegisterAction(e, Action[struct{}, *domain.Tag]{
		Method: http.MethodPost,
		Path:   "/half",
		Binder: BindNone,
		Handler: func(c *gin.Context, tx *gorm.DB, _ *struct{}) (*domain.Tag, error) {
			if _, err := repo.NewTagRepo(tx).Create(domain.TagCreate{Name: "orphan"}); err != nil {
				return nil, err
			}
			return nil, domain.Conflict("changed my mind")
		},
	})

	w := do(r, http.MethodPost, "/half", "")
	assert.Equal(t, http.StatusConflict, w.Code)
	assert.JSONEq(t, `{"message":"changed my mind"}`, w.Body.String())

	var n int64
	require.NoError(t, db.Model(&domain.Tag{}).Count(&n).Error)
	assert.Zero(t, n)
}

func TestAuthActionWithoutUser(t *testing.T) {
	db := newTestDB(t)
	r := gin.New()
	pass := func(c *gin.Context) { c.Next() }
	e := New(r.Group(""), db, nil, pass)
	RegisterAction(e, Action[struct{}, *domain.User]{
		Method: http.MethodGet,
		Path:   "/me",
		Auth:   true,
		Handler: func(c *gin.Context, _ *gorm.DB, _ *struct{}) (*domain.User, error) {
			return CurrentUser(c)
		},
	})

	assert.Equal(t, http.StatusUnauthorized, do(r, http.MethodGet, "/me", "").Code)
}
