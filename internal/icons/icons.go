// Package icons maps the symbolic icon names producers attach to journal
// events onto display glyphs. The table is fixed at compile time and must
// cover every name any producer emits; an unknown name is a hard error so
// typos surface at delivery time instead of silently dropping the glyph.
package icons

import (
	"errors"
	"fmt"
	"sort"
)

// ErrNotFound indicates an icon name with no entry in the table.
var ErrNotFound = errors.New("icon not found")

var table = map[string]string{
	// Logging levels
	"info":      "ℹ",
	"idea":      "\U0001F4A1",
	"warning":   "⚠",
	"error":     "❌",
	"forbidden": "⛔",
	"critical":  "\U0001F198",
	"ok":        "\U0001F197",
	"announce":  "\U0001F4E3",

	// Moderation
	"ban":     "\U0001F528",
	"kick":    "\U0001F462",
	"muffled": "\U0001F637",
	"mute":    "\U0001F64A",
	"jail":    "\U0001F6A8",

	// Filter
	"flag":    "\U0001F6A9",
	"deleted": "\U0001F480",
	"nsfw":    "\U0001F51E",

	// Mail
	"has-mail": "\U0001F4EC",
	"no-mail":  "\U0001F4EA",

	// Watchdog
	"investigate": "\U0001F575",
	"watch":       "\U0001F441",

	// Configuration
	"edit":     "\U0001F4DD",
	"save":     "\U0001F4BE",
	"writing":  "✍",
	"settings": "\U0001F6E0",

	// Development
	"deploy":  "\U0001F680",
	"package": "\U0001F4E6",
	"script":  "\U0001F4DC",

	// Security
	"key":    "\U0001F511",
	"lock":   "\U0001F512",
	"unlock": "\U0001F513",

	// Documents
	"folder":     "\U0001F4C2",
	"file":       "\U0001F4C4",
	"book":       "\U0001F4D4",
	"upload":     "\U0001F4E4",
	"download":   "\U0001F4E5",
	"bookmark":   "\U0001F516",
	"journal":    "\U0001F4D2",
	"attachment": "\U0001F4CE",
	"clipboard":  "\U0001F4CB",
	"pin":        "\U0001F4CC",
	"briefcase":  "\U0001F4BC",
	"cabinet":    "\U0001F5C3",
	"trash":      "\U0001F5D1",

	// Collections
	"item_add":    "➕",
	"item_remove": "➖",
	"item_clear":  "✖",

	// Miscellaneous
	"hourglass":     "⏳",
	"person":        "\U0001F464",
	"navigate":      "\U0001F9ED",
	"bot":           "\U0001F916",
	"news":          "\U0001F4F0",
	"art":           "\U0001F3A8",
	"tag":           "\U0001F3AB",
	"music":         "\U0001F3B5",
	"link":          "\U0001F517",
	"alert":         "\U0001F514",
	"game":          "\U0001F3AE",
	"search":        "\U0001F50D",
	"bomb":          "\U0001F4A3",
	"gift":          "\U0001F381",
	"celebration":   "\U0001F389",
	"international": "\U0001F310",
	"award":         "\U0001F3C6",
	"luck":          "\U0001F340",
}

// Resolve returns the glyph for a symbolic icon name.
func Resolve(name string) (string, error) {
	glyph, ok := table[name]
	if !ok {
		return "", fmt.Errorf("%w: %q", ErrNotFound, name)
	}
	return glyph, nil
}

// Names returns every registered icon name in sorted order.
func Names() []string {
	names := make([]string, 0, len(table))
	for name := range table {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// All returns a copy of the full name-to-glyph table.
func All() map[string]string {
	out := make(map[string]string, len(table))
	for name, glyph := range table {
		out[name] = glyph
	}
	return out
}
