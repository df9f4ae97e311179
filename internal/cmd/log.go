package cmd

import (
	"io"
	"log/slog"
	"os"

	"github.com/AdguardTeam/golibs/logutil/slogutil"
)

// Special values of the log output option.
const (
	logOutputStdout = "stdout"
	logOutputStderr = "stderr"
)

// newLogger returns the logger for the command.  opts must be valid.
func newLogger(opts *options) (l *slog.Logger) {
	var output io.Writer = os.Stdout
	if opts.logOutput == logOutputStderr {
		output = os.Stderr
	}

	lvl := slog.LevelInfo
	if opts.verbose {
		lvl = slogutil.LevelDebug
	}

	return slogutil.New(&slogutil.Config{
		Output:       output,
		Format:       slogutil.FormatDefault,
		Level:        lvl,
		AddTimestamp: false,
	})
}
