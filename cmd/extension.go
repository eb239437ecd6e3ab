package cmd

import (
	"errors"
	"fmt"
	"os"
	"os/exec"

	"github.com/rs/zerolog/log"
)

// Environment variables passed to extensions. The configuration reads the same ones.
const (
	EnvConfigFile = "FORECAST_CONFIG"
	EnvDataDir    = "FORECAST_DATA_DIR"
	EnvCacheDir   = "FORECAST_CACHE_DIR"
	EnvLogLevel   = "FORECAST_LOG_LEVEL"
)

// RunExtension attempts to find and execute an external fcs-<subcommand> binary.
// It returns (true, exitCode) if an extension was found and executed,
// and (false, 0) if no extension was found or executed.
func RunExtension(subcommand string, args []string) (bool, int) {
	externalCmdName := "fcs-" + subcommand

	lp, err := exec.LookPath(externalCmdName)
	if err != nil {
		log.Debug().Err(err).Str("command", externalCmdName).Msg("external command not found in PATH")
		return false, 0
	}

	cmd := exec.Command(lp, args...)
	cmd.Stdin = os.Stdin
	cmd.Stdout = stdout
	cmd.Stderr = os.Stderr

	// Pass the resolved settings as environment variables.
	cmd.Env = os.Environ()
	cmd.Env = append(cmd.Env, EnvConfigFile+"="+*configFile)
	if c, err := Config(); err == nil {
		cmd.Env = append(cmd.Env,
			EnvDataDir+"="+c.DataDir,
			EnvCacheDir+"="+c.CacheDir,
			EnvLogLevel+"="+c.LogLevel,
		)
	}

	if err := cmd.Run(); err != nil {
		var exitError *exec.ExitError
		if errors.As(err, &exitError) {
			return true, exitError.ExitCode()
		}
		fmt.Fprintf(os.Stderr, "Error executing external command %q: %v\n", externalCmdName, err)
		return true, 1
	}
	return true, 0
}
