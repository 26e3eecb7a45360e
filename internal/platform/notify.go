package platform

import (
	"context"
	"os/exec"
	"strings"
	"sync"
	"time"

	"github.com/sadopc/peak/internal/service"
)

const notifyTimeout = 5 * time.Second

// Logger is satisfied by *logging.Logger.
type Logger interface {
	Printf(format string, args ...any)
}

// CommandNotifier delivers notifications by running a helper program
// (notify-send, osascript, or a user supplied command). Permission is granted
// when the program exists.
type CommandNotifier struct {
	path   string
	args   func(title, body string) []string
	logger Logger

	mu         sync.Mutex
	permission service.Permission
}

// NewNotifier picks the helper for this platform, or command when it is not
// empty. command is split on spaces; title and body are appended as the last
// two arguments.
func NewNotifier(command string, logger Logger) *CommandNotifier {
	n := &CommandNotifier{logger: logger, permission: service.PermissionDefault}
	if fields := strings.Fields(command); len(fields) > 0 {
		n.path, _ = exec.LookPath(fields[0])
		extra := fields[1:]
		n.args = func(title, body string) []string {
			return append(append([]string{}, extra...), title, body)
		}
		return n
	}
	n.path, n.args = systemNotifier()
	return n
}

// RequestPermission reports granted when the helper program is installed.
func (n *CommandNotifier) RequestPermission(ctx context.Context) service.Permission {
	n.mu.Lock()
	defer n.mu.Unlock()
	if n.path == "" {
		n.permission = service.PermissionDenied
	} else {
		n.permission = service.PermissionGranted
	}
	return n.permission
}

// Notify runs the helper. It does nothing until permission was granted and
// logs, rather than returns, failures.
func (n *CommandNotifier) Notify(title, body string) {
	n.mu.Lock()
	granted := n.permission == service.PermissionGranted
	n.mu.Unlock()
	if !granted {
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), notifyTimeout)
	defer cancel()
	if err := exec.CommandContext(ctx, n.path, n.args(title, body)...).Run(); err != nil && n.logger != nil {
		n.logger.Printf("notify: %v", err)
	}
}

var (
	_ service.Notifier    = (*CommandNotifier)(nil)
	_ service.Audio       = (*Bell)(nil)
	_ service.Audio       = Silent{}
	_ service.Clock       = RealClock{}
	_ service.IDGenerator = UUIDGenerator{}
)
