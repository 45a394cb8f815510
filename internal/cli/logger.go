package cli

import (
	"fmt"
	"io"

	"github.com/charmbracelet/log"
)

// newLogger builds the structured logger shared by the store and commands.
func newLogger(w io.Writer, level string) (*log.Logger, error) {
	lvl, err := log.ParseLevel(level)
	if err != nil {
		return nil, fmt.Errorf("invalid log level %q: %w", level, err)
	}
	return log.NewWithOptions(w, log.Options{
		Prefix: "padlib",
		Level:  lvl,
	}), nil
}
