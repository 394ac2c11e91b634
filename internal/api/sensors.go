package api

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/qdm12/reprint"
)

func registerSensorEndpoints(rest *echo.Echo, services *Services) {
	group := rest.Group("/sensor")

	group.GET("/", func(c echo.Context) error {
		return getSensors(c, services)
	})
	group.GET("/:"+urlParamId+"/", func(c echo.Context) error {
		return getSensor(c, services)
	})
}

// returns a list of all currently configured sensors
func getSensors(c echo.Context, services *Services) error {
	data := reprint.This(services.Sensors.Snapshot())
	return c.JSONPretty(http.StatusOK, data, indentationChar)
}

func getSensor(c echo.Context, services *Services) error {
	id := c.Param(urlParamId)
	for _, sensor := range services.Sensors.Snapshot() {
		if sensor.Id == id {
			data := reprint.This(sensor)
			return c.JSONPretty(http.StatusOK, data, indentationChar)
		}
	}
	return returnNotFound(c, id)
}
