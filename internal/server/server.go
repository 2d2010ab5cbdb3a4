package server

import (
	_ "embed" // placeholder image
	"fmt"
	"net/http"
	"sort"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/labstack/gommon/log"
	"github.com/mdouchement/lostfound/internal/model"
	"github.com/mdouchement/lostfound/internal/server/middlewares"
	"github.com/mdouchement/lostfound/internal/store"
	"github.com/sirupsen/logrus"
)

//go:embed assets/lost-item.svg
var placeholder []byte

// PlaceholderContentType is the content type of the default item image.
const PlaceholderContentType = "image/svg+xml"

// A Controller is an Inversion Of Control pattern used to init the server package.
type Controller struct {
	Version string
	Store   *store.Store
	Logger  *logrus.Logger
	// CORS allowed origins, all origins when empty.
	CORSOrigins []string
	// Maximum size of an uploaded image in bytes.
	UploadMaxSize int64
}

// EchoEngine instantiates the wep server.
func EchoEngine(ctrl Controller) *echo.Echo {
	engine := echo.New()
	engine.Logger.SetLevel(log.INFO)
	engine.Use(middleware.Recover())
	engine.Use(middleware.Secure())
	engine.Use(middleware.Gzip())

	cors := middleware.DefaultCORSConfig
	if len(ctrl.CORSOrigins) > 0 {
		cors.AllowOrigins = ctrl.CORSOrigins
	}
	cors.AllowMethods = []string{http.MethodGet, http.MethodPost}
	engine.Use(middleware.CORSWithConfig(cors))

	engine.Use(middleware.LoggerWithConfig(middleware.LoggerConfig{
		Format: "[${status}] ${method} ${uri} (${bytes_in}) ${latency_human}\n",
		Output: ctrl.Logger.Writer(),
	}))
	engine.Binder = middlewares.NewBinder()
	// Error handler
	engine.HTTPErrorHandler = middlewares.HTTPErrorHandler(ctrl.Logger)

	engine.Pre(middleware.Rewrite(map[string]string{
		"/": "/version",
	}))

	////////////
	// Router //
	////////////

	router := engine.Group("")

	// generic handlers
	//
	router.GET("/version", func(c echo.Context) error {
		return c.JSON(http.StatusOK, echo.Map{
			"version": ctrl.Version,
		})
	})
	router.GET("/categories", func(c echo.Context) error {
		return c.JSON(http.StatusOK, echo.Map{
			"categories": model.Categories,
		})
	})
	router.GET("/zones", func(c echo.Context) error {
		return c.JSON(http.StatusOK, echo.Map{
			"zones": model.Zones,
		})
	})

	//
	// item handlers
	//
	item := &item{
		store:   ctrl.Store,
		maxSize: ctrl.UploadMaxSize,
	}
	router.GET("/items", item.List)
	router.POST("/items", item.Report)
	router.GET("/items/:index/image", item.Image)

	return engine
}

// PrintRoutes prints the Echo engine exposed routes.
func PrintRoutes(e *echo.Echo) {
	ignored := map[string]bool{
		"":   true,
		".":  true,
		"/*": true,
	}

	routes := e.Routes()
	sort.Slice(routes, func(i int, j int) bool {
		return routes[i].Path < routes[j].Path
	})

	fmt.Println("Routes:")
	for _, route := range routes {
		if ignored[route.Path] {
			continue
		}
		fmt.Printf("%6s %s\n", route.Method, route.Path)
	}
}
