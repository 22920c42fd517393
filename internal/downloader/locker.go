package downloader

import (
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"

	"go.uber.org/zap"

	"github.com/vrsandeep/comicdl/internal/models"
)

// LockerOptions describes the external client used for file-locker links.
// Each argument may contain the placeholders {url} and {dest}.
type LockerOptions struct {
	Command string
	Args    []string
}

func DefaultLockerOptions() LockerOptions {
	return LockerOptions{Command: "mediafire-dl", Args: []string{"-o", "{dest}", "{url}"}}
}

// Expand returns the argument list for one link.
func (o LockerOptions) Expand(url, dest string) []string {
	r := strings.NewReplacer("{url}", url, "{dest}", dest)
	args := make([]string, len(o.Args))
	for i, a := range o.Args {
		args[i] = r.Replace(a)
	}
	return args
}

// Runner runs an external command to completion.
type Runner interface {
	Run(ctx context.Context, name string, args ...string) error
}

// ExecRunner runs commands with os/exec and logs their output at debug
// level.
type ExecRunner struct {
	Log *zap.Logger
}

func (r ExecRunner) Run(ctx context.Context, name string, args ...string) error {
	out, err := exec.CommandContext(ctx, name, args...).CombinedOutput()
	if r.Log != nil && len(out) > 0 {
		r.Log.Debug("external downloader output", zap.String("command", name), zap.ByteString("output", out))
	}
	return err
}

// downloadLocker hands the link to the external client, which writes into
// the output directory itself.
func (d *Dispatcher) downloadLocker(ctx context.Context, job *models.DownloadJob) error {
	args := d.opts.Locker.Expand(job.Link.URL, d.opts.OutputDir)
	job.Destination = d.opts.OutputDir

	err := d.runner.Run(ctx, d.opts.Locker.Command, args...)
	if err == nil {
		return nil
	}
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		return failure(job.Release.Title, ErrExitStatus, fmt.Errorf("exit status %d", exitErr.ExitCode()))
	}
	return failure(job.Release.Title, ErrLaunch, err)
}
