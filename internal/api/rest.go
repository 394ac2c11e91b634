package api

import (
	"net/http"

	"github.com/cryocore/thermd/internal/control"
	"github.com/cryocore/thermd/internal/heaters"
	"github.com/cryocore/thermd/internal/persistence"
	"github.com/cryocore/thermd/internal/sensors"
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
)

const (
	urlParamId      = "id"
	indentationChar = "  "
)

type (
	Result struct {
		Name    string `json:"name"`
		Message string `json:"message"`
	}
)

// Services bundles the live components the REST endpoints operate on.
type Services struct {
	Sensors     *sensors.Registry
	Heaters     *heaters.Registry
	Engine      *control.Engine
	Persistence persistence.Persistence
}

func CreateRestService(services *Services) *echo.Echo {
	echoRest := echo.New()
	echoRest.HideBanner = true

	// Root level middleware
	echoRest.Pre(middleware.AddTrailingSlash())

	echoRest.Use(middleware.Secure())
	echoRest.Use(echoprometheus.NewMiddleware("thermd"))

	echoRest.Use(middleware.Logger())
	echoRest.Use(middleware.Recover())

	echoRest.GET("/alive/", isAlive)

	registerLoopEndpoints(echoRest, services)
	registerSensorEndpoints(echoRest, services)
	registerHeaterEndpoints(echoRest, services)

	return echoRest
}

// returns an empty "ok" answer
func isAlive(c echo.Context) error {
	return c.NoContent(http.StatusOK)
}

// return a "not found" message
func returnNotFound(c echo.Context, id string) (err error) {
	return c.JSONPretty(http.StatusNotFound, &Result{
		Name:    "Not found",
		Message: "No item with id '" + id + "' found",
	}, indentationChar)
}

// return a "bad request" message
func returnBadRequest(c echo.Context, e error) (err error) {
	return c.JSONPretty(http.StatusBadRequest, &Result{
		Name:    "Bad request",
		Message: e.Error(),
	}, indentationChar)
}

// return the error message of an error
func returnError(c echo.Context, e error) (err error) {
	return c.JSONPretty(http.StatusInternalServerError, &Result{
		Name:    "Unknown Error",
		Message: e.Error(),
	}, indentationChar)
}
