package exec

import (
	"io"

	"github.com/reconquest/karma-go"
	"github.com/reconquest/lexec-go"
)

type Execution struct {
	*lexec.Execution

	command []string
}

func (execution *Execution) Output() (string, string, error) {
	stdout, stderr, err := execution.Execution.Output()
	if err != nil {
		return string(stdout), string(stderr), karma.
			Describe("command", FormatShellCommand(execution.command)).
			Format(
				err,
				"unable to run command",
			)
	}

	return string(stdout), string(stderr), nil
}

func (execution *Execution) Run() error {
	err := execution.Execution.Run()
	if err != nil {
		return karma.
			Describe("command", FormatShellCommand(execution.command)).
			Format(
				err,
				"unable to run command",
			)
	}

	return nil
}

func (execution *Execution) SetStderr(writer io.Writer) *Execution {
	execution.Execution.SetStderr(writer)

	return execution
}
