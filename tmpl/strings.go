package tmpl

import (
	"regexp"
	"strconv"
	"strings"
	"unicode"

	"github.com/spf13/cast"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

var (
	formatArg   = regexp.MustCompile(`\{(\d+)\}`)
	slugInvalid = regexp.MustCompile(`[^a-z0-9]+`)
)

// StringHelper is exposed to templates as csStringHelper.
// Arguments are loosely typed because template values often are.
type StringHelper struct{}

func (StringHelper) IsNullOrEmpty(v any) bool {
	return v == nil || cast.ToString(v) == ""
}

func (StringHelper) IsNullOrWhiteSpace(v any) bool {
	return v == nil || strings.TrimSpace(cast.ToString(v)) == ""
}

// Format replaces positional placeholders {0}, {1}, ... with args.
// Placeholders without a matching argument are left as-is.
func (StringHelper) Format(format string, args ...any) string {
	return formatArg.ReplaceAllStringFunc(format, func(m string) string {
		i, err := strconv.Atoi(m[1 : len(m)-1])
		if err != nil || i >= len(args) {
			return m
		}
		return cast.ToString(args[i])
	})
}

func (StringHelper) Join(sep string, items any) string {
	return strings.Join(cast.ToStringSlice(items), sep)
}

func (StringHelper) Contains(s, sub any) bool {
	return strings.Contains(cast.ToString(s), cast.ToString(sub))
}

func (StringHelper) StartsWith(s, prefix any) bool {
	return strings.HasPrefix(cast.ToString(s), cast.ToString(prefix))
}

func (StringHelper) EndsWith(s, suffix any) bool {
	return strings.HasSuffix(cast.ToString(s), cast.ToString(suffix))
}

func (StringHelper) ToLower(s any) string {
	return strings.ToLower(cast.ToString(s))
}

func (StringHelper) ToUpper(s any) string {
	return strings.ToUpper(cast.ToString(s))
}

func (StringHelper) Trim(s any) string {
	return strings.TrimSpace(cast.ToString(s))
}

func (StringHelper) Title(s any) string {
	return cases.Title(language.English).String(cast.ToString(s))
}

// Slugify lowercases s, strips accents and joins the remaining
// alphanumeric runs with "-".
func (StringHelper) Slugify(s any) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	plain, _, err := transform.String(t, cast.ToString(s))
	if err != nil {
		plain = cast.ToString(s)
	}

	slug := slugInvalid.ReplaceAllString(strings.ToLower(plain), "-")
	return strings.Trim(slug, "-")
}

// Truncate cuts s to at most n runes, appending "..." when cut.
func (StringHelper) Truncate(s any, n int) string {
	r := []rune(cast.ToString(s))
	if n < 0 || len(r) <= n {
		return string(r)
	}

	return string(r[:n]) + "..."
}
