// Package messages holds the localized user-facing notices. Catalogs are
// embedded YAML files, one per locale, registered into an x/text catalog.
package messages

import (
	"embed"
	"fmt"
	"io/fs"
	"path"
	"sort"
	"strings"

	"github.com/reconquest/karma-go"
	"golang.org/x/text/feature/plural"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/message/catalog"
	"gopkg.in/yaml.v3"
)

// BaseLocale is the locale every other catalog is checked against and the
// fallback for unknown locales.
const BaseLocale = "en-US"

// Message is a catalog key with its arguments, rendered lazily in the
// locale of whoever displays it.
type Message struct {
	Key  string
	Args []interface{}
}

func Localized(key string, args ...interface{}) Message {
	return Message{Key: key, Args: args}
}

type catalogFile struct {
	Locale   string           `yaml:"locale"`
	Messages map[string]entry `yaml:"messages"`
}

// entry is either a plain string or a map with "one" and "other" plural
// forms selected by the first argument.
type entry struct {
	Text  string
	One   string
	Other string
}

func (entry *entry) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind == yaml.ScalarNode {
		return node.Decode(&entry.Text)
	}

	var forms struct {
		One   string `yaml:"one"`
		Other string `yaml:"other"`
	}

	err := node.Decode(&forms)
	if err != nil {
		return err
	}

	if forms.Other == "" {
		return fmt.Errorf("line %d: plural message requires an 'other' form", node.Line)
	}

	entry.One = forms.One
	entry.Other = forms.Other

	return nil
}

func (entry entry) catalogMessage() catalog.Message {
	if entry.Other == "" {
		return catalog.String(entry.Text)
	}

	one := entry.One
	if one == "" {
		one = entry.Other
	}

	return plural.Selectf(1, "%d", "one", one, "other", entry.Other)
}

// Bundle is a set of loaded catalogs.
type Bundle struct {
	builder *catalog.Builder
	locales map[string]language.Tag
	keys    map[string]bool
}

//go:embed locales/*.yaml
var embedded embed.FS

var defaultBundle = mustLoad(embedded)

// Default returns the bundle built from the embedded catalogs.
func Default() *Bundle {
	return defaultBundle
}

// Load reads every locales/*.yaml file of catalogs.
func Load(catalogs fs.FS) (*Bundle, error) {
	paths, err := fs.Glob(catalogs, "locales/*.yaml")
	if err != nil {
		return nil, karma.Format(err, "unable to glob locale catalogs")
	}

	if len(paths) == 0 {
		return nil, karma.
			Describe("pattern", "locales/*.yaml").
			Reason("no locale catalogs found")
	}

	sort.Strings(paths)

	files := map[string]catalogFile{}

	for _, filename := range paths {
		data, err := fs.ReadFile(catalogs, filename)
		if err != nil {
			return nil, karma.
				Describe("path", filename).
				Format(err, "unable to read catalog")
		}

		var file catalogFile

		err = yaml.Unmarshal(data, &file)
		if err != nil {
			return nil, karma.
				Describe("path", filename).
				Format(err, "unable to parse catalog")
		}

		expected := strings.TrimSuffix(path.Base(filename), path.Ext(filename))
		if file.Locale != expected {
			return nil, karma.
				Describe("path", filename).
				Describe("locale", file.Locale).
				Reason("catalog locale must match its file name")
		}

		if len(file.Messages) == 0 {
			return nil, karma.
				Describe("path", filename).
				Reason("catalog has no messages")
		}

		files[file.Locale] = file
	}

	base, ok := files[BaseLocale]
	if !ok {
		return nil, karma.
			Describe("locale", BaseLocale).
			Reason("base locale catalog is missing")
	}

	bundle := &Bundle{
		builder: catalog.NewBuilder(
			catalog.Fallback(language.MustParse(BaseLocale)),
		),
		locales: map[string]language.Tag{},
		keys:    map[string]bool{},
	}

	for key := range base.Messages {
		bundle.keys[key] = true
	}

	for locale, file := range files {
		tag, err := language.Parse(locale)
		if err != nil {
			return nil, karma.
				Describe("locale", locale).
				Format(err, "unable to parse locale tag")
		}

		for key, entry := range file.Messages {
			if !bundle.keys[key] {
				return nil, karma.
					Describe("locale", locale).
					Describe("key", key).
					Reason("key is not defined in the base locale")
			}

			err := bundle.builder.Set(tag, key, entry.catalogMessage())
			if err != nil {
				return nil, karma.
					Describe("locale", locale).
					Describe("key", key).
					Format(err, "unable to register message")
			}
		}

		bundle.locales[locale] = tag
	}

	return bundle, nil
}

func mustLoad(catalogs fs.FS) *Bundle {
	bundle, err := Load(catalogs)
	if err != nil {
		panic(err)
	}

	return bundle
}

// Locales returns the loaded locale names, sorted.
func (bundle *Bundle) Locales() []string {
	locales := []string{}
	for locale := range bundle.locales {
		locales = append(locales, locale)
	}

	sort.Strings(locales)

	return locales
}

// Has reports whether key is defined in the base locale.
func (bundle *Bundle) Has(key string) bool {
	return bundle.keys[key]
}

// Printer returns a printer for locale, falling back to the base locale
// when locale is unknown or malformed.
func (bundle *Bundle) Printer(locale string) *message.Printer {
	tag, ok := bundle.locales[locale]
	if !ok {
		tag = bundle.locales[BaseLocale]
	}

	return message.NewPrinter(tag, message.Catalog(bundle.builder))
}

// Render formats msg in locale.
func (bundle *Bundle) Render(locale string, msg Message) string {
	return bundle.Printer(locale).Sprintf(msg.Key, msg.Args...)
}
