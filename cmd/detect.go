package cmd

import (
	"bytes"
	"fmt"
	"strconv"

	"github.com/cryocore/thermd/cmd/global"
	"github.com/cryocore/thermd/internal/ui"
	"github.com/md14454/gosensors"
	"github.com/mgutz/ansi"
	"github.com/spf13/cobra"
	"github.com/tomlazar/table"
)

var detectCmd = &cobra.Command{
	Use:   "detect",
	Short: "Detect temperature inputs",
	Long:  `Scans the host for temperature inputs usable as sensor file paths and prints them as a list`,
	Run: func(cmd *cobra.Command, args []string) {
		tableConfig := &table.Config{
			ShowIndex:       false,
			Color:           !global.NoColor,
			AlternateColors: true,
			TitleColorCode:  ansi.ColorCode("white+buf"),
			AltColorCodes: []string{
				ansi.ColorCode("white"),
				ansi.ColorCode("white:236"),
			},
		}

		gosensors.Init()
		defer gosensors.Cleanup()
		chips := gosensors.GetDetectedChips()

		for i := 0; i < len(chips); i++ {
			chip := chips[i]

			var rows [][]string
			features := chip.GetFeatures()
			for j := 0; j < len(features); j++ {
				feature := features[j]
				if feature.Type != gosensors.FeatureTypeTemp {
					continue
				}

				subfeatures := feature.GetSubFeatures()
				for _, subfeature := range subfeatures {
					if subfeature.Type != gosensors.SubFeatureTypeTempInput {
						continue
					}
					inputPath := fmt.Sprintf("%s/%s", chip.Path, subfeature.Name)
					// libsensors reports degrees celsius
					kelvin := subfeature.GetValue() + 273.15
					rows = append(rows, []string{
						feature.Name,
						inputPath,
						strconv.FormatFloat(kelvin, 'f', 2, 64),
					})
				}
			}

			if len(rows) <= 0 {
				continue
			}

			ui.Printfln("> %s", chip.Prefix)

			tab := table.Table{
				Headers: []string{"Label", "Input", "Kelvin"},
				Rows:    rows,
			}
			var buf bytes.Buffer
			if err := tab.WriteTable(&buf, tableConfig); err != nil {
				ui.Fatal("Error printing table: %v", err)
			}
			ui.Printfln(buf.String())
		}
	},
}

func init() {
	rootCmd.AddCommand(detectCmd)
}
