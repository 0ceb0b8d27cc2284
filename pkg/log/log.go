package log

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/kovetskiy/lorg"
	"github.com/reconquest/colorgful"
	"github.com/reconquest/karma-go"
)

func init() {
	theme := colorgful.MustApplyDefaultTheme(
		`${time:2006-01-02 15:04:05.000} ${level:%s:left:true} ${prefix}%s`,
		colorgful.Default,
	)

	lorg.SetFormat(theme)
	lorg.SetOutput(theme)

	lorg.SetIndentLines(true)
	lorg.SetShiftIndent(len(
		regexp.MustCompile(`\x1b\[[^m]+m`).ReplaceAllString(
			fmt.Sprintf(theme.Render(lorg.LevelWarning, ""), ""), "",
		),
	))
}

var (
	Fatal   = lorg.Fatal
	Error   = lorg.Error
	Warning = lorg.Warning
	Info    = lorg.Info
	Debug   = lorg.Debug
	Trace   = lorg.Trace

	Fatalf   = lorg.Fatalf
	Errorf   = lorg.Errorf
	Warningf = lorg.Warningf
	Infof    = lorg.Infof
	Debugf   = lorg.Debugf
	Tracef   = lorg.Tracef

	SetLevel = lorg.SetLevel

	NewChildWithPrefix = lorg.NewChildWithPrefix
)

var levels = map[string]lorg.Level{
	"fatal":   lorg.LevelFatal,
	"error":   lorg.LevelError,
	"warning": lorg.LevelWarning,
	"info":    lorg.LevelInfo,
	"debug":   lorg.LevelDebug,
	"trace":   lorg.LevelTrace,
}

// ParseLevel maps a level name from the config file onto a lorg level.
func ParseLevel(name string) (lorg.Level, error) {
	level, ok := levels[strings.ToLower(strings.TrimSpace(name))]
	if !ok {
		return lorg.LevelInfo, karma.
			Describe("level", name).
			Reason(
				"unsupported log level, supported values are: " +
					"fatal, error, warning, info, debug, trace",
			)
	}

	return level, nil
}
