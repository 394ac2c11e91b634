package heaters

import (
	"fmt"

	"github.com/cryocore/thermd/internal/configuration"
	cmap "github.com/orcaman/concurrent-map/v2"
)

const (
	MinPowerPercent = 0.0
	MaxPowerPercent = 100.0
)

var (
	// HeaterMap holds all heater drivers built from the current
	// configuration, for enumeration by the CLI and the REST api
	HeaterMap = cmap.New[Heater]()
)

type Heater interface {
	GetId() string

	GetConfig() configuration.HeaterConfig

	// Actuate forwards the requested power percent to the external
	// power-regulator boundary
	Actuate(percent float64) error

	// EmergencyOff drives the device to zero output through its
	// distinguished off path
	EmergencyOff() error
}

func NewHeater(config configuration.HeaterConfig) (Heater, error) {
	if config.File != nil {
		return &FileHeater{
			Config: config,
		}, nil
	}

	if config.Cmd != nil {
		return &CmdHeater{
			Config: config,
		}, nil
	}

	return nil, fmt.Errorf("no matching heater type for heater: %s", config.ID)
}
