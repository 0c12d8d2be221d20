package cli

import (
	"fmt"
	"io"

	"github.com/pkg/errors"
	"github.com/urfave/cli/v2"

	"github.com/rtreach/evaltools/config"
	"github.com/rtreach/evaltools/logging"
)

// printf prints a message with a newline to w.
func printf(w io.Writer, format string, a ...interface{}) {
	//nolint:errcheck
	fmt.Fprintf(w, format+"\n", a...)
}

// warningf prints a warning to w.
func warningf(w io.Writer, format string, a ...interface{}) {
	printf(w, "Warning: "+format, a...)
}

// loggerFrom returns the logger set up by the app, or a blank one when an action runs standalone.
func loggerFrom(c *cli.Context) logging.Logger {
	if logger, ok := c.App.Metadata[loggerMetadataKey].(logging.Logger); ok {
		return logger
	}
	return logging.NewBlankLogger("rtreach")
}

// loadGeneratorConfig reads --config when given, otherwise the --vehicle preset.
func loadGeneratorConfig(c *cli.Context, logger logging.Logger) (*config.GeneratorConfig, error) {
	path := c.Path(generalFlagConfig)
	vehicle := c.String(generalFlagVehicle)
	if path != "" {
		if vehicle != "" {
			return nil, errors.Errorf("--%s and --%s cannot be used together, set the vehicle in the config file",
				generalFlagVehicle, generalFlagConfig)
		}
		return config.Read(path, logger)
	}
	if vehicle == "" {
		vehicle = config.DefaultVehicle
	}
	cfg, err := config.Preset(vehicle)
	if err != nil {
		return nil, err
	}
	return &cfg, nil
}
