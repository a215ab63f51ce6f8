package engine

import (
	"bytes"
	"context"
	"encoding/json"
	"os/exec"
	"strings"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/tiered-sim/tiered-sim/sim"
)

// CommandEngine runs the engine as a child process: the submission is
// written to its stdin as JSON and a Result is read from its stdout.
type CommandEngine struct {
	Path string
	Args []string
	Dir  string
	Env  []string // appended to the inherited environment
}

// NewCommandEngine splits a command line on whitespace.
func NewCommandEngine(commandLine string) (*CommandEngine, error) {
	fields := strings.Fields(commandLine)
	if len(fields) == 0 {
		return nil, errors.New("empty engine command")
	}
	return &CommandEngine{Path: fields[0], Args: fields[1:]}, nil
}

// Name implements Engine.
func (e *CommandEngine) Name() string {
	return "command:" + e.Path
}

// Run implements Engine.
func (e *CommandEngine) Run(ctx context.Context, sub *Submission) ([]sim.CompletedTaskRecord, error) {
	payload, err := json.Marshal(sub)
	if err != nil {
		return nil, errors.Wrap(err, "marshaling submission")
	}

	cmd := exec.CommandContext(ctx, e.Path, e.Args...)
	cmd.Dir = e.Dir
	if len(e.Env) > 0 {
		cmd.Env = append(cmd.Environ(), e.Env...)
	}
	cmd.Stdin = bytes.NewReader(payload)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	logrus.Debugf("starting engine %s %v (%d bytes of submission)", e.Path, e.Args, len(payload))
	if err := cmd.Run(); err != nil {
		return nil, errors.Wrapf(err, "running %s: %s", e.Path, strings.TrimSpace(stderr.String()))
	}
	if stderr.Len() > 0 {
		logrus.Debugf("engine stderr: %s", strings.TrimSpace(stderr.String()))
	}
	return decodeResult(stdout.Bytes(), sub.RunID)
}

// decodeResult parses a Result and surfaces an engine-reported error.
func decodeResult(data []byte, runID string) ([]sim.CompletedTaskRecord, error) {
	var res Result
	if err := json.Unmarshal(data, &res); err != nil {
		return nil, errors.Wrap(err, "decoding engine result")
	}
	if res.Error != "" {
		return nil, errors.Errorf("engine reported: %s", res.Error)
	}
	if res.RunID != "" && runID != "" && res.RunID != runID {
		return nil, errors.Errorf("engine returned run %q, expected %q", res.RunID, runID)
	}
	return res.Records, nil
}
