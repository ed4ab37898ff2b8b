// Package pipeline runs the layout flow stages as external commands in their
// fixed order, aborting at the first failure.
package pipeline

import (
	"fmt"
	"os/exec"

	"github.com/pkg/errors"
	"github.com/rs/zerolog"

	"github.com/cktlab/flowdb"
)

// A Stage is one external tool invocation of the flow.
//
type Stage struct {
	Name string
	Cmd  string
	Args []string
}

// A StageError reports the stage that aborted the flow and its exit code
// (-1 when the stage did not run at all).
//
type StageError struct {
	Stage string
	Code  int
	Err   error
}

func (e *StageError) Error() string {
	return fmt.Sprintf("stage %s failed with exit code %d", e.Stage, e.Code)
}

func (e *StageError) Unwrap() error { return e.Err }

// FlowStages builds the fixed stage list of the flow: constraint generation,
// device generation, analog placement and well/substrate generation. Every
// stage receives the working directory and the technology-rule file paths.
//
func FlowStages(workDir string, rules flowdb.RuleFiles) []Stage {
	args := []string{
		"--cwd", workDir,
		"--spacing", rules.Spacing,
		"--width-area", rules.WidthArea,
		"--enclosure", rules.Enclosure,
		"--well-contact", rules.WellContact,
	}
	return []Stage{
		{Name: "constraint", Cmd: "flow-constraint", Args: args},
		{Name: "device", Cmd: "flow-device", Args: args},
		{Name: "place", Cmd: "flow-place", Args: args},
		{Name: "well", Cmd: "flow-well", Args: args},
	}
}

// Run executes the stages in order. The first non-zero exit aborts the
// remaining stages and is reported as a StageError.
//
func Run(log zerolog.Logger, workDir string, stages []Stage) error {
	for _, s := range stages {
		log.Info().Str("stage", s.Name).Str("cmd", s.Cmd).Msg("running stage")
		cmd := exec.Command(s.Cmd, s.Args...)
		cmd.Dir = workDir
		out, err := cmd.CombinedOutput()
		if len(out) > 0 {
			log.Debug().Str("stage", s.Name).Bytes("output", out).Msg("stage output")
		}
		if err != nil {
			code := -1
			if exitErr, ok := err.(*exec.ExitError); ok {
				code = exitErr.ExitCode()
			}
			log.Error().Str("stage", s.Name).Int("code", code).Err(err).Msg("stage failed, aborting flow")
			return &StageError{Stage: s.Name, Code: code, Err: errors.Wrapf(err, "stage %s", s.Name)}
		}
		log.Info().Str("stage", s.Name).Msg("stage done")
	}
	return nil
}
