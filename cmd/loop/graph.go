package loop

import (
	"github.com/cryocore/thermd/internal/ui"
	"github.com/cryocore/thermd/internal/util"
	"github.com/guptarohit/asciigraph"
	"github.com/spf13/cobra"
)

var graphCmd = &cobra.Command{
	Use:   "graph",
	Short: "Print a simulated step response of a loop to console",
	Long: `Simulates the PID of the given loop against a first-order thermal model
and prints the resulting temperature trajectory. Useful for eyeballing gains
before touching real hardware.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		config, err := getLoopConfig(loopId)
		if err != nil {
			return err
		}

		pid := util.NewPidController(
			config.P, config.I, config.D,
			config.PowerLimitMin, config.PowerLimitMax,
		)

		const (
			dt      = 1.0 // seconds per simulation step
			steps   = 600
			ambient = 293.15
			// crude thermal model of a small heated mass
			heatCapacity = 800.0 // J/K
			lossCoeff    = 1.5   // W/K towards ambient
		)

		target := config.DefaultTargetTemperature
		measured := ambient

		values := make([]float64, 0, steps)
		for i := 0; i < steps; i++ {
			power := pid.Update(target, measured, dt)
			measured += (power - lossCoeff*(measured-ambient)) / heatCapacity * dt
			values = append(values, measured)
		}

		graph := asciigraph.Plot(
			values,
			asciigraph.Height(15),
			asciigraph.Width(100),
			asciigraph.Caption("Kelvin / seconds"),
		)
		ui.Printfln(graph)

		return nil
	},
}

func init() {
	Command.AddCommand(graphCmd)
}
