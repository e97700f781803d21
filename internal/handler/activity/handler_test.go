package activity

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vicevalds/carelink/internal/model"
	apperrors "github.com/vicevalds/carelink/pkg/errors"
)

type fakeRepo struct {
	activities map[int64]*model.Activity
	nextID     int64
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{activities: make(map[int64]*model.Activity), nextID: 1}
}

func (f *fakeRepo) Create(ctx context.Context, a *model.Activity) error {
	a.ID = f.nextID
	f.nextID++
	a.CreatedAt = time.Now()
	f.activities[a.ID] = a
	return nil
}

func (f *fakeRepo) Get(ctx context.Context, id int64) (*model.Activity, error) {
	a, ok := f.activities[id]
	if !ok {
		return nil, apperrors.NotFound("activity", nil)
	}
	return a, nil
}

func (f *fakeRepo) Update(ctx context.Context, a *model.Activity) error {
	f.activities[a.ID] = a
	return nil
}

func (f *fakeRepo) Delete(ctx context.Context, id int64) error {
	if _, ok := f.activities[id]; !ok {
		return apperrors.NotFound("activity", nil)
	}
	delete(f.activities, id)
	return nil
}

func (f *fakeRepo) List(ctx context.Context) ([]*model.Activity, error) {
	out := make([]*model.Activity, 0, len(f.activities))
	for _, a := range f.activities {
		out = append(out, a)
	}
	return out, nil
}

func (f *fakeRepo) ListBetween(ctx context.Context, from, to time.Time) ([]*model.Activity, error) {
	return f.List(ctx)
}

func setupRouter(repo *fakeRepo) *gin.Engine {
	gin.SetMode(gin.TestMode)
	engine := gin.New()
	NewHandler(repo).RegisterRoutes(engine.Group("/api"))
	return engine
}

func TestCreateActivity(t *testing.T) {
	repo := newFakeRepo()
	engine := setupRouter(repo)

	body := map[string]interface{}{
		"date":  "2025-03-10",
		"title": "Caminata en el parque",
		"time":  "10:30",
	}
	raw, _ := json.Marshal(body)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/activities", bytes.NewReader(raw))
	req.Header.Set("Content-Type", "application/json")
	engine.ServeHTTP(w, req)

	require.Equal(t, http.StatusCreated, w.Code)
	require.Len(t, repo.activities, 1)
	created := repo.activities[1]
	assert.Equal(t, "Caminata en el parque", created.Title)
	assert.Equal(t, "api", created.Source)
	require.NotNil(t, created.Time)
	assert.Equal(t, "10:30", *created.Time)
}

func TestCreateActivityRejectsBadDate(t *testing.T) {
	engine := setupRouter(newFakeRepo())

	raw, _ := json.Marshal(map[string]interface{}{
		"date":  "10/03/2025",
		"title": "Caminata",
	})
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/activities", bytes.NewReader(raw))
	req.Header.Set("Content-Type", "application/json")
	engine.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestGetActivityNotFound(t *testing.T) {
	engine := setupRouter(newFakeRepo())

	w := httptest.NewRecorder()
	engine.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/activities/99", nil))
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = httptest.NewRecorder()
	engine.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/activities/abc", nil))
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestUpdateActivityPartial(t *testing.T) {
	repo := newFakeRepo()
	timeStr := "10:30"
	require.NoError(t, repo.Create(context.Background(), &model.Activity{
		Date:  time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC),
		Title: "Caminata",
		Time:  &timeStr,
	}))
	engine := setupRouter(repo)

	raw, _ := json.Marshal(map[string]interface{}{"title": "Caminata larga"})
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPut, "/api/activities/1", bytes.NewReader(raw))
	req.Header.Set("Content-Type", "application/json")
	engine.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Caminata larga", repo.activities[1].Title)
	require.NotNil(t, repo.activities[1].Time)
	assert.Equal(t, "10:30", *repo.activities[1].Time)
}

func TestDeleteActivity(t *testing.T) {
	repo := newFakeRepo()
	require.NoError(t, repo.Create(context.Background(), &model.Activity{Title: "Caminata"}))
	engine := setupRouter(repo)

	w := httptest.NewRecorder()
	engine.ServeHTTP(w, httptest.NewRequest(http.MethodDelete, "/api/activities/1", nil))
	require.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, repo.activities)
}
