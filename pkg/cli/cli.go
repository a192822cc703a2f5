package cli

import (
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"
)

const EnvLogLevel = "CMSET_LOG_LEVEL"
const DefaultScenariosPath = "./scenarios"
const DefaultLogLevel = "info"
const Version = "0.1.0"

// LogLevels lists all accepted log levels.
var LogLevels = []string{"debug", "info", "warn", "error"}

// Command can be any of:
//
//	CommandRun
//	CommandVersion
type Command any

type CommandRun struct {
	ScenariosPath string
	LogLevel      string
}

type CommandVersion struct{}

// Parse parses args and returns nil if no command is to be executed,
// in which case the reason is written to w.
func Parse(w io.Writer, args []string) (cmd Command) {
	fm := fmt.Sprintf

	executableName := "cmset"
	if len(args) > 0 {
		executableName = filepath.Base(args[0])
	}

	flags := flag.NewFlagSet("cmset", flag.ContinueOnError)
	flags.SetOutput(w)
	flags.Usage = func() {
		writeLines(w,
			fm("usage: %s <command> [flags]", executableName),
			"",
			"commands available:",
			" run - evaluates capped multiset scenarios",
			" version - prints the version",
			" help - prints this help",
		)
	}

	parseFlags := func() (ok bool) {
		err := flags.Parse(args[2:])
		// flags will automatically call .Usage()
		return err == nil
	}

	if len(args) < 2 {
		flags.Usage()
		return nil
	}

	switch args[1] {
	case "run":
		c := CommandRun{}

		flags.Usage = func() {
			writeLines(w,
				"",
				fm("usage: %s run [-scenarios <path>] [-log <level>]",
					executableName),
				"",
				"flags:",
				"-scenarios <path>: scenario file or directory "+
					"(default: "+DefaultScenariosPath+")",
				"-log <level>: one of debug, info, warn, error "+
					"(default: "+DefaultLogLevel+")",
				"",
				"environment variables:",
				fm("%s: default log level", EnvLogLevel),
			)
		}

		defaultLevel := os.Getenv(EnvLogLevel)
		if defaultLevel == "" {
			defaultLevel = DefaultLogLevel
		}
		flags.StringVar(&c.ScenariosPath, "scenarios", DefaultScenariosPath, "")
		flags.StringVar(&c.LogLevel, "log", defaultLevel, "")
		if !parseFlags() {
			return nil
		}

		if !isLogLevel(c.LogLevel) {
			writeLines(w, fm("unsupported log level: %q", c.LogLevel))
			flags.Usage()
			return nil
		}
		cmd = c

	case "version":
		if !parseFlags() {
			return nil
		}
		cmd = CommandVersion{}

	case "help":
		flags.Usage()
		return nil

	default:
		flags.Usage()
		return nil
	}
	return cmd
}

func isLogLevel(l string) bool {
	for _, x := range LogLevels {
		if x == l {
			return true
		}
	}
	return false
}

func writeLines(w io.Writer, lines ...string) {
	for i := range lines {
		_, _ = w.Write([]byte(lines[i]))
		_, _ = w.Write([]byte("\n"))
	}
}
