// Package translate formats the user visible messages of the emulator
// in the language of the user's locale.
package translate

import (
	"log"
	"sync"

	"github.com/jeandeaual/go-locale"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

const DEFAULT_LANGUAGE = "en-US"

var (
	mutex   sync.RWMutex
	printer *message.Printer
	tag     language.Tag
)

func init() {
	locales, err := locale.GetLocales()
	if err != nil {
		log.Printf("translate: %v", err)
	}

	SetLanguage(locales...)
}

// SetLanguage selects the best match for the given BCP 47 locales,
// falling back to DEFAULT_LANGUAGE.
func SetLanguage(locales ...string) {
	if len(locales) == 0 {
		locales = []string{DEFAULT_LANGUAGE}
	}

	mutex.Lock()
	defer mutex.Unlock()

	tag = message.MatchLanguage(locales...)
	if tag == language.Und {
		// No catalog entry matches, keep the locale for number formatting.
		tag = language.Make(locales[0])
	}
	printer = message.NewPrinter(tag)
}

// Language returns the language messages are formatted in.
func Language() language.Tag {
	mutex.RLock()
	defer mutex.RUnlock()

	return tag
}

// From formats an en-US Printf() style message in the user's language.
func From(key message.Reference, args ...any) string {
	mutex.RLock()
	defer mutex.RUnlock()

	return printer.Sprintf(key, args...)
}
