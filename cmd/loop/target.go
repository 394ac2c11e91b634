package loop

import (
	"strconv"

	"github.com/cryocore/thermd/internal/configuration"
	"github.com/cryocore/thermd/internal/persistence"
	"github.com/cryocore/thermd/internal/ui"
	"github.com/spf13/cobra"
)

var targetCmd = &cobra.Command{
	Use:   "target [kelvin]",
	Short: "Print or persist the target temperature of a loop",
	Long: `Without an argument the persisted (or configured default) target of the
loop is printed. With an argument the given target temperature in Kelvin is
persisted and picked up by the daemon on its next start.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		config, err := getLoopConfig(loopId)
		if err != nil {
			return err
		}

		pers := persistence.NewPersistence(configuration.CurrentConfig.DbPath)
		if err := pers.Init(); err != nil {
			return err
		}

		if len(args) == 0 {
			targets, err := pers.LoadLoopTargets()
			if err != nil {
				return err
			}
			target, ok := targets[config.ID]
			if !ok {
				target = config.DefaultTargetTemperature
			}
			ui.Printfln("%.2f", target)
			return nil
		}

		target, err := strconv.ParseFloat(args[0], 64)
		if err != nil {
			return err
		}
		if config.EnforceSetpointLimits &&
			(target < config.ValidSetpointRangeMin || target > config.ValidSetpointRangeMax) {
			ui.FatalWithoutStacktrace(
				"Target %.2f outside of accepted range [%.2f, %.2f] of loop %s",
				target, config.ValidSetpointRangeMin, config.ValidSetpointRangeMax, config.ID)
		}

		return pers.SaveLoopTarget(config.ID, target)
	},
}

func init() {
	Command.AddCommand(targetCmd)
}
