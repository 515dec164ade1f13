package server

import (
	"net/http"
	"sort"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/mdouchement/pantry/internal/database"
	"github.com/mdouchement/pantry/internal/model"
	"github.com/mdouchement/pantry/internal/server/middlewares"
	"github.com/mdouchement/pantry/internal/server/service"
	"github.com/mdouchement/pantry/internal/server/token"
	"github.com/sirupsen/logrus"
)

// An IOC is an Iversion Of Control pattern used to init the server package.
type IOC struct {
	Version        string
	Database       database.Client
	Logger         logrus.FieldLogger
	NoRegistration bool
	// Token digest params
	SecretKey []byte
}

// EchoEngine instantiates the wep server.
func EchoEngine(ctrl IOC) *echo.Echo {
	logger := ctrl.Logger
	if logger == nil {
		logger = logrus.StandardLogger()
	}

	engine := echo.New()
	engine.HideBanner = true
	engine.HidePort = true
	engine.Pre(middlewares.ForceJSON())
	engine.Use(middleware.Recover())
	engine.Use(middleware.Secure())
	engine.Use(middleware.CORSWithConfig(middleware.DefaultCORSConfig))
	engine.Use(middleware.Gzip())

	engine.Use(middleware.LoggerWithConfig(middleware.LoggerConfig{
		Format: "[${status}] ${method} ${uri} (${bytes_in}) ${latency_human}\n",
		Output: logger.WithField("component", "http").WriterLevel(logrus.InfoLevel),
	}))
	engine.Binder = middlewares.NewBinder()
	// Error handler
	engine.HTTPErrorHandler = middlewares.HTTPErrorHandler(logger)

	engine.Pre(middleware.Rewrite(map[string]string{
		"/": "/version",
	}))

	////////////
	// Router //
	////////////

	tokens := token.NewAuthority(ctrl.Database, ctrl.SecretKey)

	router := engine.Group("")
	// Applied per route, a group level middleware would also catch unknown routes.
	authenticated := middlewares.Token(tokens)

	// generic handlers
	//
	router.GET("/version", func(c echo.Context) error {
		return c.JSON(http.StatusOK, echo.Map{
			"version": ctrl.Version,
		})
	})

	//
	// auth handlers
	//
	auth := &auth{
		users:  service.NewUser(ctrl.Database),
		tokens: tokens,
	}
	if !ctrl.NoRegistration {
		router.POST("/register", auth.Register)
	}
	router.POST("/login", auth.Login)
	router.POST("/logout", auth.Logout, authenticated)
	router.GET("/user", auth.User, authenticated)

	//
	// item handlers
	//
	item := &item{
		items: service.NewItem(ctrl.Database),
	}
	router.GET("/items", item.List, authenticated)
	router.POST("/items", item.Create, authenticated)
	router.GET("/items/:id", item.Show, authenticated)
	router.PUT("/items/:id", item.Update, authenticated)
	router.DELETE("/items/:id", item.Delete, authenticated)

	return engine
}

// PrintRoutes logs the Echo engine exposed routes.
func PrintRoutes(e *echo.Echo, logger logrus.FieldLogger) {
	ignored := map[string]bool{
		"":   true,
		".":  true,
		"/*": true,
	}

	routes := e.Routes()
	sort.Slice(routes, func(i int, j int) bool {
		if routes[i].Path == routes[j].Path {
			return routes[i].Method < routes[j].Method
		}
		return routes[i].Path < routes[j].Path
	})

	for _, route := range routes {
		if ignored[route.Path] {
			continue
		}
		logger.Infof("Route %6s %s", route.Method, route.Path)
	}
}

func currentUser(c echo.Context) *model.User {
	return middlewares.CurrentUser(c)
}
