package export

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/ettle/strcase"
)

// headerCaser splits camelCase keys before each capital that follows a
// non-capital, and on '_' and '-'. A run of capitals stays one word and
// ends before the capital that opens the next word ("IPAddress").
var headerCaser = strcase.NewCaser(false, nil, strcase.NewSplitFn(
	[]rune{'_', '-'},
	strcase.SplitCase,
	strcase.SplitAcronym,
))

// Humanize turns a record key into a column label: lastContact becomes
// "Last Contact", mfaEnabled becomes "Mfa Enabled", IPAddress becomes
// "IP Address".
func Humanize(key string) string {
	key = strings.TrimSpace(key)
	if key == "" {
		return ""
	}
	label := headerCaser.ToCase(key, strcase.Original, ' ')
	r, size := utf8.DecodeRuneInString(label)
	if r == utf8.RuneError {
		return label
	}
	return string(unicode.ToUpper(r)) + label[size:]
}

// HumanizeAll maps Humanize over keys.
func HumanizeAll(keys []string) []string {
	out := make([]string, len(keys))
	for i, key := range keys {
		out[i] = Humanize(key)
	}
	return out
}
