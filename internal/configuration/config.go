package configuration

import (
	"os"
	"path/filepath"
	"time"

	"github.com/cryocore/thermd/internal/ui"
	"github.com/mitchellh/go-homedir"
	"github.com/spf13/viper"
)

type Configuration struct {
	DbPath string `json:"dbPath"`

	TempSensorPollingRate time.Duration `json:"tempSensorPollingRate"`
	TempRollingWindowSize int           `json:"tempRollingWindowSize"`

	ControllerAdjustmentTickRate time.Duration `json:"controllerAdjustmentTickRate"`

	Statistics StatisticsConfig `json:"statistics"`
	Api        ApiConfig        `json:"api"`

	Sensors []SensorConfig `json:"sensors"`
	Heaters []HeaterConfig `json:"heaters"`
	Loops   []LoopConfig   `json:"loops"`
}

type StatisticsConfig struct {
	Enabled bool `json:"enabled"`
	Port    int  `json:"port"`
}

type ApiConfig struct {
	Enabled bool `json:"enabled"`
	Port    int  `json:"port"`
}

var CurrentConfig Configuration

// InitConfig reads in config file and ENV variables if set.
func InitConfig(cfgFile string) {
	viper.SetConfigName("thermd")

	if cfgFile != "" {
		// Use config file from the flag.
		viper.SetConfigFile(cfgFile)
	} else {
		// Find home directory.
		home, err := homedir.Dir()
		if err != nil {
			ui.Error("Couldn't detect home directory: %v", err)
			os.Exit(1)
		}

		viper.AddConfigPath(".")
		viper.AddConfigPath(home)
		viper.AddConfigPath("/etc/thermd/")
	}

	viper.AutomaticEnv() // read in environment variables that match

	setDefaultValues()
}

func setDefaultValues() {
	viper.SetDefault("dbpath", "/etc/thermd/thermd.db")
	viper.SetDefault("TempSensorPollingRate", 200*time.Millisecond)
	viper.SetDefault("TempRollingWindowSize", 10)

	viper.SetDefault("ControllerAdjustmentTickRate", 200*time.Millisecond)

	viper.SetDefault("statistics.enabled", false)
	viper.SetDefault("statistics.port", 9401)
	viper.SetDefault("api.enabled", false)
	viper.SetDefault("api.port", 9402)

	viper.SetDefault("sensors", []SensorConfig{})
	viper.SetDefault("heaters", []HeaterConfig{})
	viper.SetDefault("loops", []LoopConfig{})
}

// DetectAndReadConfigFile detects the path of the first existing config file
func DetectAndReadConfigFile() string {
	readConfigFile()
	return GetFilePath()
}

// GetFilePath this is only populated _after_ readConfigFile()
func GetFilePath() string {
	return viper.ConfigFileUsed()
}

func readConfigFile() {
	if err := viper.ReadInConfig(); err != nil {
		// config file is required, so we fail here
		ui.FatalWithoutStacktrace("Error reading config file, %v", err)
	}
}

// LoadConfig decodes the read-in configuration into CurrentConfig
// and applies implicit defaults that viper cannot express.
func LoadConfig() {
	err := viper.Unmarshal(&CurrentConfig, viper.DecodeHook(decodeHookFunc()))
	if err != nil {
		ui.Fatal("unable to decode into struct, %v", err)
	}

	for i := range CurrentConfig.Loops {
		loop := &CurrentConfig.Loops[i]
		// a follower without an explicit scalar tracks the followed
		// loop's setpoint one to one
		if len(loop.FollowsLoopId) > 0 && loop.FollowsScalar == 0 {
			loop.FollowsScalar = 1.0
		}
		if len(loop.ErrorCondition) <= 0 {
			loop.ErrorCondition = ErrorConditionAlarm
		}
	}
}

// AbsolutePath resolves the given path relative to the config file location,
// expanding a leading "~" to the current user's home directory.
func AbsolutePath(path string) string {
	if len(path) <= 0 {
		return path
	}
	if path[0] == '~' {
		home, err := homedir.Dir()
		if err == nil {
			return filepath.Join(home, path[1:])
		}
	}
	return path
}
