package app

import (
	"fmt"
	"os"
	"strings"

	"github.com/lixenwraith/log"

	"github.com/five82/logparse/internal/config"
)

const logName = "logparse"

// newLogger builds the diagnostic logger from the [logging] table. The
// default writes to a file so the terminal UI is never disturbed.
func newLogger(cfg config.Logging) (*log.Logger, error) {
	logger := log.NewLogger()

	var configArgs []string

	levelValue, err := parseLogLevel(cfg.Level)
	if err != nil {
		return nil, fmt.Errorf("invalid log level: %w", err)
	}
	configArgs = append(configArgs, fmt.Sprintf("level=%d", levelValue))

	switch cfg.Output {
	case config.OutputNone:
		configArgs = append(configArgs, "disable_file=true", "enable_stdout=false")

	case config.OutputStderr:
		configArgs = append(configArgs,
			"disable_file=true",
			"enable_stdout=true",
			"stdout_target=stderr")

	case config.OutputFile:
		if err := os.MkdirAll(cfg.Directory, 0o755); err != nil {
			return nil, fmt.Errorf("create log directory: %w", err)
		}
		configArgs = append(configArgs,
			"enable_stdout=false",
			fmt.Sprintf("directory=%s", cfg.Directory),
			fmt.Sprintf("name=%s", logName))

	default:
		return nil, fmt.Errorf("invalid log output mode: %s", cfg.Output)
	}

	if err := logger.InitWithDefaults(configArgs...); err != nil {
		return nil, fmt.Errorf("init logger: %w", err)
	}
	return logger, nil
}

func parseLogLevel(level string) (int, error) {
	switch strings.ToLower(level) {
	case "debug":
		return int(log.LevelDebug), nil
	case "info":
		return int(log.LevelInfo), nil
	case "warn", "warning":
		return int(log.LevelWarn), nil
	case "error":
		return int(log.LevelError), nil
	default:
		return 0, fmt.Errorf("unknown log level: %s", level)
	}
}
