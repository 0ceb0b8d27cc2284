package retention

import (
	"fmt"
	"strings"

	"github.com/reconquest/karma-go"
)

// DecodeError is returned when a non-empty policy configuration cannot be
// turned into a policy.
type DecodeError struct {
	Config string
	Err    error
}

func (err *DecodeError) Error() string {
	return fmt.Sprintf(
		"unable to decode retention policy %q: %s",
		err.Config,
		err.Err,
	)
}

func (err *DecodeError) Unwrap() error {
	return err.Err
}

func unsupportedType(tag string, supported []string) error {
	return karma.
		Describe("type", tag).
		Reason(
			fmt.Errorf(
				strings.Join(
					[]string{
						"unsupported retention policy type",
						"supported types are: %q",
					},
					"\n",
				),
				supported,
			),
		)
}
