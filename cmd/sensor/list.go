package sensor

import (
	"bytes"
	"strconv"

	"github.com/cryocore/thermd/cmd/global"
	"github.com/cryocore/thermd/internal/configuration"
	"github.com/cryocore/thermd/internal/sensors"
	"github.com/cryocore/thermd/internal/ui"
	"github.com/mgutz/ansi"
	"github.com/spf13/cobra"
	"github.com/tomlazar/table"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "Print the configured sensors and their current readings to console",
	RunE: func(cmd *cobra.Command, args []string) error {
		configPath := configuration.DetectAndReadConfigFile()
		ui.Info("Using configuration file at: %s", configPath)
		configuration.LoadConfig()
		if err := configuration.Validate(configPath); err != nil {
			ui.FatalWithoutStacktrace("%v", err)
		}

		var rows [][]string
		for _, config := range configuration.CurrentConfig.Sensors {
			sensor, err := sensors.NewSensor(config)
			if err != nil {
				return err
			}

			var sensorType string
			switch {
			case config.Rtd != nil:
				sensorType = "RTD"
			case config.File != nil:
				sensorType = "File"
			case config.Cmd != nil:
				sensorType = "Cmd"
			}

			valueText := "N/A"
			if value, err := sensor.Read(); err == nil {
				valueText = strconv.FormatFloat(value, 'f', 2, 64)
			}

			rows = append(rows, []string{
				config.ID, sensorType, config.Location,
				strconv.FormatBool(config.Enabled.Get()), valueText,
			})
		}

		tab := table.Table{
			Headers: []string{"ID", "Type", "Location", "Enabled", "Kelvin"},
			Rows:    rows,
		}
		var buf bytes.Buffer
		tableErr := tab.WriteTable(&buf, &table.Config{
			ShowIndex:       false,
			Color:           !global.NoColor,
			AlternateColors: true,
			TitleColorCode:  ansi.ColorCode("white+buf"),
			AltColorCodes: []string{
				ansi.ColorCode("white"),
				ansi.ColorCode("white:236"),
			},
		})
		if tableErr != nil {
			panic(tableErr)
		}
		ui.Printfln(buf.String())

		return nil
	},
}

func init() {
	Command.AddCommand(listCmd)
}
