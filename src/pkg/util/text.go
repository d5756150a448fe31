package util

import (
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// MaxSheetNameLength is the xlsx worksheet name limit.
const MaxSheetNameLength = 31

// FilenameStrategy selects how report file names are sanitized.
type FilenameStrategy string

const (
	// FilenameStrict folds diacritics and keeps only word characters,
	// whitespace and hyphens, with spaces collapsed to underscores.
	FilenameStrict FilenameStrategy = "strict"
	// FilenameMinimal strips only characters illegal in file names,
	// keeping accents and spaces readable.
	FilenameMinimal FilenameStrategy = "minimal"
)

var (
	strictDisallowed  = regexp.MustCompile(`[^\w\s-]`)
	minimalDisallowed = regexp.MustCompile(`[/\\:*?"<>|]`)
	whitespaceRun     = regexp.MustCompile(`\s+`)
)

/*
FormatNameFromEmail derives a display name from an email address: the local
part with separators replaced by spaces and each token title-cased.

With firstOnly it returns just the first token, which is what the report
greetings use. Inputs without an '@' come back as "N/A".
*/
func FormatNameFromEmail(email string, firstOnly bool) string {
	at := strings.Index(email, "@")
	if at <= 0 {
		return "N/A"
	}

	local := email[:at]
	local = strings.ReplaceAll(local, ".", " ")
	local = strings.ReplaceAll(local, "_", " ")

	tokens := strings.Fields(local)
	for index := 0; index < len(tokens); index += 1 {
		token := tokens[index]
		first, size := utf8.DecodeRuneInString(token)
		tokens[index] = string(unicode.ToUpper(first)) + strings.ToLower(token[size:])
	}
	if len(tokens) == 0 {
		return "N/A"
	}

	if firstOnly {
		return tokens[0]
	}
	return strings.Join(tokens, " ")
}

/*
FoldDiacritics decomposes the input and drops combining marks, so
"Padaria São João" becomes "Padaria Sao Joao".
*/
func FoldDiacritics(s string) string {
	stripper := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	folded, _, err := transform.String(stripper, s)
	if err != nil {
		return s
	}
	return folded
}

/*
SanitizeFilename cleans a human-readable name for use as a file name
fragment, using the configured strategy.
*/
func SanitizeFilename(name string, strategy FilenameStrategy) string {
	if strategy == FilenameMinimal {
		cleaned := minimalDisallowed.ReplaceAllString(name, "")
		return strings.TrimSpace(cleaned)
	}

	folded := FoldDiacritics(name)
	cleaned := strictDisallowed.ReplaceAllString(folded, "")
	cleaned = strings.TrimSpace(cleaned)
	return whitespaceRun.ReplaceAllString(cleaned, "_")
}

/*
SafeSheetName sanitizes a name for use as a worksheet title and truncates it
to the xlsx limit. Sheet names always use the strict fold so workbooks stay
valid regardless of the file-name strategy in effect.
*/
func SafeSheetName(name string) string {
	safe := SanitizeFilename(name, FilenameStrict)
	if safe == "" {
		safe = "Planilha"
	}
	if len(safe) > MaxSheetNameLength {
		safe = safe[:MaxSheetNameLength]
	}
	return safe
}
