package loop

import (
	"bytes"
	"fmt"
	"strconv"
	"strings"

	"github.com/cryocore/thermd/cmd/global"
	"github.com/cryocore/thermd/internal/configuration"
	"github.com/cryocore/thermd/internal/ui"
	"github.com/mgutz/ansi"
	"github.com/spf13/cobra"
	"github.com/tomlazar/table"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "Print the configured control loops to console",
	RunE: func(cmd *cobra.Command, args []string) error {
		configPath := configuration.DetectAndReadConfigFile()
		ui.Info("Using configuration file at: %s", configPath)
		configuration.LoadConfig()
		if err := configuration.Validate(configPath); err != nil {
			ui.FatalWithoutStacktrace("%v", err)
		}

		var rows [][]string
		for _, config := range configuration.CurrentConfig.Loops {
			follows := "-"
			if len(config.FollowsLoopId) > 0 {
				follows = fmt.Sprintf("%s x%.2f", config.FollowsLoopId, config.FollowsScalar)
			}

			rows = append(rows, []string{
				config.ID,
				strings.Join(config.SensorIds, ","),
				strings.Join(config.HeaterIds, ","),
				fmt.Sprintf("%.2f/%.2f/%.2f", config.P, config.I, config.D),
				strconv.FormatFloat(config.DefaultTargetTemperature, 'f', 2, 64),
				follows,
				string(config.ErrorCondition),
			})
		}

		tab := table.Table{
			Headers: []string{"ID", "Sensors", "Heaters", "P/I/D", "Target (K)", "Follows", "On Error"},
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
