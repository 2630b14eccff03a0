package speech

import (
	"context"
	"fmt"
	"io"
	"os/exec"
	"strings"
)

// AudioSource supplies raw audio for one recognition
type AudioSource interface {
	Open(ctx context.Context) (io.ReadCloser, error)
}

// CommandSource captures audio by running an external recorder and reading
// its standard output, e.g. "arecord -q -f S16_LE -r 16000 -c 1 -d 5".
type CommandSource struct {
	Command string
}

// Open starts the capture command.
// A missing or empty command is reported as ErrUnavailable.
func (s *CommandSource) Open(ctx context.Context) (io.ReadCloser, error) {
	args := strings.Fields(s.Command)
	if len(args) == 0 {
		return nil, fmt.Errorf("%w: no capture command configured", ErrUnavailable)
	}

	path, err := exec.LookPath(args[0])
	if err != nil {
		return nil, fmt.Errorf("%w: %s not found in PATH", ErrUnavailable, args[0])
	}

	cmd := exec.CommandContext(ctx, path, args[1:]...)
	stdout, err := cmd.StdoutPipe()
	if err != nil {
		return nil, fmt.Errorf("failed to open capture output: %w", err)
	}

	if err := cmd.Start(); err != nil {
		return nil, fmt.Errorf("failed to start %s: %w", args[0], err)
	}

	return &commandReader{ReadCloser: stdout, cmd: cmd}, nil
}

type commandReader struct {
	io.ReadCloser
	cmd *exec.Cmd
}

// Close stops the recorder if it is still running and reaps it
func (r *commandReader) Close() error {
	_ = r.ReadCloser.Close()
	if r.cmd.ProcessState == nil {
		_ = r.cmd.Process.Kill()
	}
	_ = r.cmd.Wait()
	return nil
}
