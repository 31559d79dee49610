package backend

import (
	"context"
	"os/exec"

	"go.trai.ch/den/internal/core/ports"
	"go.trai.ch/zerr"
)

// CommandFactory implements ports.BackendFactory by spawning the backend as a
// child process and speaking JSON-RPC over its stdio.
type CommandFactory struct {
	// Command is the backend invocation, executable first.
	Command []string

	// Dir is the working directory for the backend process. Empty inherits
	// den's.
	Dir string

	logger ports.Logger
}

// NewCommandFactory creates a factory for the given backend command line.
func NewCommandFactory(command []string, logger ports.Logger) *CommandFactory {
	return &CommandFactory{
		Command: command,
		logger:  logger,
	}
}

var _ ports.BackendFactory = (*CommandFactory)(nil)

// Create spawns the backend process. The returned closer shuts its stdin,
// waits for it to exit, and reports a failure exit status.
func (f *CommandFactory) Create(ctx context.Context) (ports.Backend, func() error, error) {
	if len(f.Command) == 0 {
		return nil, nil, zerr.New("no backend command configured")
	}

	cmd := exec.CommandContext(ctx, f.Command[0], f.Command[1:]...) //nolint:gosec // command comes from configuration
	cmd.Dir = f.Dir

	stdin, err := cmd.StdinPipe()
	if err != nil {
		return nil, nil, zerr.Wrap(err, "failed to open backend stdin")
	}
	stdout, err := cmd.StdoutPipe()
	if err != nil {
		return nil, nil, zerr.Wrap(err, "failed to open backend stdout")
	}

	if err := cmd.Start(); err != nil {
		return nil, nil, zerr.With(zerr.Wrap(err, "failed to start backend"), "command", f.Command[0])
	}
	if f.logger != nil {
		f.logger.Info("started build backend " + f.Command[0])
	}

	closer := func() error {
		if err := stdin.Close(); err != nil {
			_ = cmd.Process.Kill()
		}
		if err := cmd.Wait(); err != nil {
			return zerr.With(zerr.Wrap(err, "backend exited with failure"), "command", f.Command[0])
		}
		return nil
	}

	return NewClient(stdin, stdout), closer, nil
}
