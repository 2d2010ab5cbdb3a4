package server_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/appleboy/gofight/v2"
	"github.com/labstack/echo/v4"
	"github.com/mdouchement/lostfound/internal/database"
	"github.com/mdouchement/lostfound/internal/model"
	"github.com/mdouchement/lostfound/internal/server"
	"github.com/mdouchement/lostfound/internal/store"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
)

var heldItems = []model.Item{
	{Name: "Headphones", Category: "Electronics", Location: "Zone A", Date: "2024-01-01"},
	{Name: "Laptop", Category: "Electronics", Location: "Zone B", Date: "2024-01-01", Image: "data:text/plain;base64,aGVsbG8="},
	{Name: "Bottle", Category: "Personal", Location: "Zone A", Date: "2024-01-02", Image: "data:image/png;base64,iVBORw0KGgo="},
}

func TestRequestHome(t *testing.T) {
	engine, _, _ := setup(t)

	// The rewrite matches on RequestURI, which only server-side requests carry.
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	engine.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"version":"test"}`, rec.Body.String())
}

func TestRequestVersion(t *testing.T) {
	engine, _, r := setup(t)

	r.GET("/version").Run(engine, func(r gofight.HTTPResponse, rq gofight.HTTPRequest) {
		assert.Equal(t, http.StatusOK, r.Code)
		assert.JSONEq(t, `{"version":"test"}`, r.Body.String())
	})
}

func TestRequestOptions(t *testing.T) {
	engine, _, r := setup(t)

	r.GET("/categories").Run(engine, func(r gofight.HTTPResponse, rq gofight.HTTPRequest) {
		assert.Equal(t, http.StatusOK, r.Code)
		assert.JSONEq(t, `{"categories":["Electronics","Personal","Clothing"]}`, r.Body.String())
	})

	r.GET("/zones").Run(engine, func(r gofight.HTTPResponse, rq gofight.HTTPRequest) {
		assert.Equal(t, http.StatusOK, r.Code)
		assert.JSONEq(t, `{"zones":["Zone A","Zone B","Zone C"]}`, r.Body.String())
	})
}

func setup(t *testing.T) (engine *echo.Echo, ctrl server.Controller, r *gofight.RequestConfig) {
	slot, err := database.Open(database.DriverStorm, t.TempDir(), "lostItems")
	if err != nil {
		panic(err)
	}
	t.Cleanup(func() {
		slot.Close()
	})

	log, _ := test.NewNullLogger()
	s := store.New(slot, heldItems, log)
	s.Hydrate()

	ctrl = server.Controller{
		Version:       "test",
		Store:         s,
		Logger:        log,
		UploadMaxSize: 1 << 20,
	}
	engine = server.EchoEngine(ctrl)

	return engine, ctrl, gofight.New()
}
