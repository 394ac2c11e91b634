package api

import (
	"errors"
	"net/http"

	"github.com/cryocore/thermd/internal/control"
	"github.com/cryocore/thermd/internal/ui"
	"github.com/labstack/echo/v4"
	"github.com/qdm12/reprint"
)

type setTargetRequest struct {
	TargetKelvin float64 `json:"targetKelvin"`
}

type setEnabledRequest struct {
	Enabled bool `json:"enabled"`
}

func registerLoopEndpoints(rest *echo.Echo, services *Services) {
	group := rest.Group("/loop")

	group.GET("/", func(c echo.Context) error {
		return getLoops(c, services)
	})
	group.GET("/:"+urlParamId+"/", func(c echo.Context) error {
		return getLoop(c, services)
	})
	group.PUT("/:"+urlParamId+"/target/", func(c echo.Context) error {
		return setLoopTarget(c, services)
	})
	group.PUT("/:"+urlParamId+"/enabled/", func(c echo.Context) error {
		return setLoopEnabled(c, services)
	})
	group.POST("/suspend/", func(c echo.Context) error {
		services.Engine.SuspendAll()
		return c.NoContent(http.StatusOK)
	})
	group.POST("/resume/", func(c echo.Context) error {
		services.Engine.ResumeAll()
		return c.NoContent(http.StatusOK)
	})
}

// returns a list of all currently configured loops
func getLoops(c echo.Context, services *Services) error {
	data := reprint.This(services.Engine.Snapshot())
	return c.JSONPretty(http.StatusOK, data, indentationChar)
}

func getLoop(c echo.Context, services *Services) error {
	id := c.Param(urlParamId)
	for _, loop := range services.Engine.Snapshot() {
		if loop.Id == id {
			data := reprint.This(loop)
			return c.JSONPretty(http.StatusOK, data, indentationChar)
		}
	}
	return returnNotFound(c, id)
}

func setLoopTarget(c echo.Context, services *Services) error {
	id := c.Param(urlParamId)

	var request setTargetRequest
	if err := c.Bind(&request); err != nil {
		return returnBadRequest(c, err)
	}

	err := services.Engine.SetTarget(id, request.TargetKelvin)
	if errors.Is(err, control.ErrLoopNotFound) {
		return returnNotFound(c, id)
	}
	if errors.Is(err, control.ErrSetpointOutOfRange) {
		return returnBadRequest(c, err)
	}
	if err != nil {
		return returnError(c, err)
	}

	// remember operator overrides across daemon restarts
	if services.Persistence != nil {
		if err := services.Persistence.SaveLoopTarget(id, request.TargetKelvin); err != nil {
			ui.Warning("Unable to persist target of loop %s: %v", id, err)
		}
	}

	return c.NoContent(http.StatusOK)
}

func setLoopEnabled(c echo.Context, services *Services) error {
	id := c.Param(urlParamId)

	var request setEnabledRequest
	if err := c.Bind(&request); err != nil {
		return returnBadRequest(c, err)
	}

	err := services.Engine.Enable(id, request.Enabled)
	if errors.Is(err, control.ErrLoopNotFound) {
		return returnNotFound(c, id)
	}
	if err != nil {
		return returnError(c, err)
	}

	if services.Persistence != nil {
		if err := services.Persistence.SaveLoopEnabled(id, request.Enabled); err != nil {
			ui.Warning("Unable to persist enabled flag of loop %s: %v", id, err)
		}
	}

	return c.NoContent(http.StatusOK)
}
