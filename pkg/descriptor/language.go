package descriptor

import (
	"sort"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/gkertaseferi/generator-ibm-cloud-enablement/pkg/errors"
)

// Language identifies the application runtime.
type Language string

// Supported languages.
const (
	LanguageNode   Language = "NODE"
	LanguageJava   Language = "JAVA"
	LanguageSpring Language = "SPRING"
	LanguageSwift  Language = "SWIFT"
	LanguagePython Language = "PYTHON"
	LanguageDjango Language = "DJANGO"
	LanguageGo     Language = "GO"
)

// Bucket groups languages that share template variants.
type Bucket string

const (
	// BucketJava covers JVM builds (JAVA, SPRING).
	BucketJava Bucket = "java"
	// BucketDefault covers every other language.
	BucketDefault Bucket = "default"
)

type languageInfo struct {
	bucket Bucket
	port   int32
}

var languages = map[Language]languageInfo{
	LanguageNode:   {bucket: BucketDefault, port: 3000},
	LanguageJava:   {bucket: BucketJava, port: 9080},
	LanguageSpring: {bucket: BucketJava, port: 8080},
	LanguageSwift:  {bucket: BucketDefault, port: 8080},
	LanguagePython: {bucket: BucketDefault, port: 3000},
	LanguageDjango: {bucket: BucketDefault, port: 3000},
	LanguageGo:     {bucket: BucketDefault, port: 8080},
}

// ParseLanguage resolves a case-insensitive language name.
func ParseLanguage(s string) (Language, error) {
	l := Language(strings.ToUpper(strings.TrimSpace(s)))
	if _, ok := languages[l]; !ok {
		return "", errors.UnsupportedLanguage(s)
	}
	return l, nil
}

// SupportedLanguages returns all known languages in name order.
func SupportedLanguages() []Language {
	out := make([]Language, 0, len(languages))
	for l := range languages {
		out = append(out, l)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// Bucket returns the template bucket for l. Unknown languages fall into
// the default bucket.
func (l Language) Bucket() Bucket {
	if info, ok := languages[l]; ok {
		return info.bucket
	}
	return BucketDefault
}

// Port returns the container port the application listens on.
func (l Language) Port() int32 {
	if info, ok := languages[l]; ok {
		return info.port
	}
	return 8080
}

// DisplayName returns the title-cased language name, e.g. "Spring".
func (l Language) DisplayName() string {
	return cases.Title(language.English).String(strings.ToLower(string(l)))
}

// Valid reports whether l is a supported language.
func (l Language) Valid() bool {
	_, ok := languages[l]
	return ok
}
