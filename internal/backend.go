package internal

import (
	"context"
	"fmt"
	"net/http"
	"syscall"
	"time"

	"github.com/cryocore/thermd/internal/api"
	"github.com/cryocore/thermd/internal/configuration"
	"github.com/cryocore/thermd/internal/control"
	"github.com/cryocore/thermd/internal/heaters"
	"github.com/cryocore/thermd/internal/persistence"
	"github.com/cryocore/thermd/internal/sensors"
	"github.com/cryocore/thermd/internal/statistics"
	"github.com/cryocore/thermd/internal/ui"
	"github.com/oklog/run"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func RunDaemon() {
	pers := persistence.NewPersistence(configuration.CurrentConfig.DbPath)
	if err := pers.Init(); err != nil {
		ui.Fatal("Unable to initialize persistence: %v", err)
	}

	sensorRegistry, heaterRegistry, err := InitializeRegistries()
	if err != nil {
		ui.Fatal("%v", err)
	}

	engine := control.NewEngine(sensorRegistry, heaterRegistry)
	if err := engine.Init(configuration.CurrentConfig.Loops); err != nil {
		ui.Fatal("Unable to initialize control engine: %v", err)
	}

	restoreLoopSettings(engine, pers)

	statistics.Register(statistics.NewSensorCollector(sensorRegistry))
	statistics.Register(statistics.NewHeaterCollector(heaterRegistry))
	statistics.Register(statistics.NewLoopCollector(engine))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var g run.Group
	{
		// === sensor sampling
		pollingRate := configuration.CurrentConfig.TempSensorPollingRate

		g.Add(func() error {
			tick := time.Tick(pollingRate)
			for {
				select {
				case <-ctx.Done():
					return nil
				case <-tick:
					failures := sensorRegistry.ReadAll()
					if failures > 0 {
						ui.Debug("Sampling tick finished with %d failed sensors", failures)
					}
				}
			}
		}, func(err error) {
			if err != nil {
				ui.Warning("Error sampling sensors: %v", err)
			}
		})
	}
	{
		// === control loop
		updateRate := configuration.CurrentConfig.ControllerAdjustmentTickRate

		g.Add(func() error {
			// wait for the first sampling results before controlling
			time.Sleep(configuration.CurrentConfig.TempSensorPollingRate * 2)

			lastTick := time.Now()
			tick := time.Tick(updateRate)
			for {
				select {
				case <-ctx.Done():
					return nil
				case now := <-tick:
					dt := now.Sub(lastTick).Seconds()
					lastTick = now

					errorCount := engine.UpdateAll(dt)
					if errorCount > 0 {
						ui.Debug("Control tick finished with %d degraded loops", errorCount)
					}
				}
			}
		}, func(err error) {
			// whatever stops the daemon, leave the heaters cold
			heaterRegistry.EmergencyStop()
			if err != nil {
				ui.Warning("Error in control loop: %v", err)
			}
		})
	}
	{
		if configuration.CurrentConfig.Statistics.Enabled {
			// === Prometheus Exporter
			port := configuration.CurrentConfig.Statistics.Port
			addr := fmt.Sprintf(":%d", port)
			server := &http.Server{Addr: addr, Handler: promhttp.Handler()}

			g.Add(func() error {
				ui.Info("Starting statistics server on port %d...", port)
				return server.ListenAndServe()
			}, func(err error) {
				ui.Info("Stopping statistics server...")
				timeoutCtx, timeoutCancel := context.WithTimeout(context.Background(), 5*time.Second)
				defer timeoutCancel()
				_ = server.Shutdown(timeoutCtx)
			})
		}
	}
	{
		if configuration.CurrentConfig.Api.Enabled {
			// === REST api
			port := configuration.CurrentConfig.Api.Port
			restServer := api.CreateRestService(&api.Services{
				Sensors:     sensorRegistry,
				Heaters:     heaterRegistry,
				Engine:      engine,
				Persistence: pers,
			})

			g.Add(func() error {
				ui.Info("Starting REST api server on port %d...", port)
				return restServer.Start(fmt.Sprintf(":%d", port))
			}, func(err error) {
				ui.Info("Stopping REST api server...")
				timeoutCtx, timeoutCancel := context.WithTimeout(context.Background(), 5*time.Second)
				defer timeoutCancel()
				_ = restServer.Shutdown(timeoutCtx)
			})
		}
	}
	{
		// === signal handling
		g.Add(run.SignalHandler(ctx, syscall.SIGINT, syscall.SIGTERM))
	}

	if err := g.Run(); err != nil {
		if _, ok := err.(run.SignalError); ok {
			ui.Info("Shutting down: %v", err)
			return
		}
		ui.Fatal("Daemon error: %v", err)
	}
}

// InitializeRegistries builds the sensor and heater drivers from the current
// configuration and wraps them in their registries.
func InitializeRegistries() (*sensors.Registry, *heaters.Registry, error) {
	var sensorList []sensors.Sensor
	for _, config := range configuration.CurrentConfig.Sensors {
		sensor, err := sensors.NewSensor(config)
		if err != nil {
			return nil, nil, fmt.Errorf("unable to create sensor %s: %w", config.ID, err)
		}
		sensorList = append(sensorList, sensor)
		sensors.SensorMap.Set(sensor.GetId(), sensor)
	}

	var heaterList []heaters.Heater
	for _, config := range configuration.CurrentConfig.Heaters {
		heater, err := heaters.NewHeater(config)
		if err != nil {
			return nil, nil, fmt.Errorf("unable to create heater %s: %w", config.ID, err)
		}
		heaterList = append(heaterList, heater)
		heaters.HeaterMap.Set(heater.GetId(), heater)
	}

	if len(heaterList) == 0 {
		return nil, nil, fmt.Errorf("no valid heater configurations, exiting")
	}

	sensorRegistry := sensors.NewRegistry(sensorList, configuration.CurrentConfig.TempRollingWindowSize)
	heaterRegistry := heaters.NewRegistry(heaterList)
	return sensorRegistry, heaterRegistry, nil
}

// restoreLoopSettings reapplies operator overrides persisted by earlier runs.
func restoreLoopSettings(engine *control.Engine, pers persistence.Persistence) {
	targets, err := pers.LoadLoopTargets()
	if err != nil {
		ui.Warning("Unable to load persisted loop targets: %v", err)
		return
	}
	for loopId, target := range targets {
		if err := engine.SetTarget(loopId, target); err != nil {
			ui.Warning("Unable to restore target of loop %s: %v", loopId, err)
		}
	}

	enabledFlags, err := pers.LoadLoopEnabled()
	if err != nil {
		ui.Warning("Unable to load persisted loop states: %v", err)
		return
	}
	for loopId, enabled := range enabledFlags {
		if err := engine.Enable(loopId, enabled); err != nil {
			ui.Warning("Unable to restore state of loop %s: %v", loopId, err)
		}
	}
}
