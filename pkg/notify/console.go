// Package notify delivers prune notices to the operator.
package notify

import (
	"github.com/Felix14-v2/fastback/pkg/messages"
)

// Logger is the part of *lorg.Log the console writes to.
type Logger interface {
	Infof(format string, values ...interface{})
	Warningf(format string, values ...interface{})
	Errorf(format string, values ...interface{})
}

// Console renders notices with a message bundle and writes them to a log.
// Chat errors go out at error level, hud notices at info level.
type Console struct {
	log    Logger
	bundle *messages.Bundle
	locale string
}

func NewConsole(log Logger, bundle *messages.Bundle, locale string) *Console {
	return &Console{
		log:    log,
		bundle: bundle,
		locale: locale,
	}
}

func (console *Console) Info(message string) {
	console.log.Infof("%s", message)
}

func (console *Console) ChatError(message messages.Message) {
	console.log.Errorf("%s", console.render(message))
}

func (console *Console) Hud(message messages.Message) {
	console.log.Infof("%s", console.render(message))
}

func (console *Console) render(message messages.Message) string {
	if !console.bundle.Has(message.Key) {
		console.log.Warningf("no translation for message %q", message.Key)
	}

	return console.bundle.Render(console.locale, message)
}
