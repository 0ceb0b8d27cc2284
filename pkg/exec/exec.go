package exec

import (
	"fmt"
	"os/exec"
	"regexp"
	"strings"
	"sync/atomic"

	"github.com/kovetskiy/lorg"
	"github.com/reconquest/lexec-go"

	"github.com/Felix14-v2/fastback/pkg/log"
)

var (
	logger  = log.NewChildWithPrefix("{exec}")
	counter int32

	reSpecialChars       = regexp.MustCompile("[$`\"!' ]")
	reSpecialCharsEscape = regexp.MustCompile("[$`\"!]")
)

func SetLogger(log *lorg.Log) {
	logger = log
}

func Exec(command string, args ...string) *Execution {
	id := atomic.AddInt32(&counter, 1)

	return &Execution{
		Execution: lexec.NewExec(
			getLogger(
				logger.NewChildWithPrefix(
					fmt.Sprintf("<%s#%03d>", command, id),
				),
			),
			exec.Command(command, args...),
		),

		command: append([]string{command}, args...),
	}
}

// FormatShellCommand renders a command line the way it would be typed into
// a shell, quoting arguments that carry special characters.
func FormatShellCommand(command []string) string {
	formatted := make([]string, len(command))

	for i, arg := range command {
		if reSpecialChars.MatchString(arg) {
			formatted[i] = fmt.Sprintf(
				`"%s"`,
				reSpecialCharsEscape.ReplaceAllString(arg, `\$0`),
			)
		} else {
			formatted[i] = arg
		}
	}

	return strings.Join(formatted, " ")
}

func getLogger(log *lorg.Log) lexec.Logger {
	return func(command []string, stream lexec.Stream, data []byte) {
		if stream == lexec.InternalDebug {
			log.Tracef(
				`%s (%s) %s`,
				"command", FormatShellCommand(command), string(data),
			)
		} else {
			log.Tracef(
				`%s: %s`,
				stream, string(data),
			)
		}
	}
}
