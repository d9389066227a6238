package gotdict

import (
	"net/url"
	"regexp"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/text/unicode/norm"
)

// NormalizeWord canonicalizes a lookup key: Unicode NFC, surrounding
// whitespace trimmed, lowercased. Blank input yields ErrInvalidInput.
//
// NormalizeWord is idempotent on its own output.
func NormalizeWord(raw string) (string, error) {
	word := norm.NFC.String(strings.ToLower(strings.TrimSpace(raw)))
	if word == "" {
		return "", ErrInvalidInput
	}
	return word, nil
}

// entities are the five entities the dictionary API emits, in decoding
// order. Each one is replaced across the whole text before the next, so
// "&amp;lt;" ends up as "<". Other entities are left as-is.
var entities = [...][2]string{
	{"&amp;", "&"},
	{"&lt;", "<"},
	{"&gt;", ">"},
	{"&quot;", `"`},
	{"&#39;", "'"},
}

func decodeEntities(s string) string {
	for _, e := range entities {
		s = strings.ReplaceAll(s, e[0], e[1])
	}
	return s
}

// CleanText strips markup from raw, decodes the basic entities and trims
// the result. A tag left open at the end of raw is kept as text.
//
//	CleanText("<b>explain</b> &amp; clarify") == "explain & clarify"
func CleanText(raw string) string {
	if raw == "" {
		return ""
	}

	var b strings.Builder
	z := html.NewTokenizer(strings.NewReader(raw))
	for {
		switch z.Next() {
		case html.ErrorToken:
			// An unterminated tag surfaces here with its bytes still in Raw.
			b.Write(z.Raw())
			return strings.TrimSpace(decodeEntities(b.String()))
		case html.TextToken:
			// Raw keeps entities encoded; decodeEntities handles them.
			b.Write(z.Raw())
		}
	}
}

// ValidateAudioURL reports whether raw parses as an absolute URL. The
// returned string is raw on success and empty otherwise.
func ValidateAudioURL(raw string) (string, bool) {
	if raw == "" {
		return "", false
	}
	u, err := url.Parse(raw)
	if err != nil || !u.IsAbs() {
		return "", false
	}
	if u.Host == "" && u.Opaque == "" {
		return "", false
	}
	return raw, true
}

var (
	// A Hangul label such as "번역:" that some backends prepend.
	koreanLabelPattern = regexp.MustCompile(`^\s*[\x{3131}-\x{3163}\x{AC00}-\x{D7A3}\s]*:\s*`)
	whitespacePattern  = regexp.MustCompile(`\s+`)
)

// CleanKoreanTranslation removes a leading "label:" prefix made of Hangul,
// collapses runs of whitespace and trims. Text without a colon-terminated
// label is kept whole.
func CleanKoreanTranslation(text string) string {
	text = koreanLabelPattern.ReplaceAllString(text, "")
	text = whitespacePattern.ReplaceAllString(text, " ")
	return strings.TrimSpace(text)
}
