package api

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/qdm12/reprint"
)

func registerHeaterEndpoints(rest *echo.Echo, services *Services) {
	group := rest.Group("/heater")

	group.GET("/", func(c echo.Context) error {
		return getHeaters(c, services)
	})
	group.GET("/:"+urlParamId+"/", func(c echo.Context) error {
		return getHeater(c, services)
	})
	// the last line of defense, exposed verbatim: zero every heater and
	// freeze all loops
	group.POST("/stop/", func(c echo.Context) error {
		services.Heaters.EmergencyStop()
		services.Engine.SuspendAll()
		return c.NoContent(http.StatusOK)
	})
}

// returns a list of all currently configured heaters
func getHeaters(c echo.Context, services *Services) error {
	data := reprint.This(services.Heaters.Snapshot())
	return c.JSONPretty(http.StatusOK, data, indentationChar)
}

func getHeater(c echo.Context, services *Services) error {
	id := c.Param(urlParamId)
	for _, heater := range services.Heaters.Snapshot() {
		if heater.Id == id {
			data := reprint.This(heater)
			return c.JSONPretty(http.StatusOK, data, indentationChar)
		}
	}
	return returnNotFound(c, id)
}
