package commands

import (
	"context"
	"strings"
	"time"

	"github.com/goliatone/go-site-builder/internal/logging"
	"github.com/goliatone/go-site-builder/pkg/interfaces"
)

// DefaultCommandTimeout bounds a command when no timeout is configured.
const DefaultCommandTimeout = 15 * time.Second

const commandModuleRoot = "builder.commands"

// EnsureLogger never returns nil.
func EnsureLogger(logger interfaces.Logger) interfaces.Logger {
	if logger != nil {
		return logger
	}
	return logging.NoOp()
}

// CommandLogger resolves the logger for the command module name, tagged so
// command entries can be filtered apart from editor and session entries.
func CommandLogger(provider interfaces.LoggerProvider, module string) interfaces.Logger {
	name := strings.TrimSpace(module)
	if name == "" {
		name = "core"
	}
	return logging.With(
		logging.ModuleLogger(provider, commandModuleRoot+"."+name),
		"component", "command",
		"command_module", name,
	)
}

func boundContext(ctx context.Context, timeout time.Duration) (context.Context, context.CancelFunc) {
	if ctx == nil {
		ctx = context.Background()
	}
	if timeout > 0 {
		return context.WithTimeout(ctx, timeout)
	}
	return context.WithCancel(ctx)
}
