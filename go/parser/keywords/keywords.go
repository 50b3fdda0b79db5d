// Package keywords provides EdgeQL keyword recognition and categorization.
//
// Every word the tokenizer scans is passed through Classify, which reports
// whether the word is a keyword and which of the three tiers it belongs to.
// The tier decides whether the word can still be written as a bare
// identifier. The tables are built once at package load and never change,
// so all functions here are safe for concurrent use.
package keywords

import (
	"errors"
	"fmt"
	"slices"
	"sort"
	"strings"
)

// Category represents the keyword tier of a word. The zero value,
// NotAKeyword, is what Classify returns for plain identifiers.
type Category int

const (
	// NotAKeyword - the word is an ordinary identifier
	NotAKeyword Category = iota

	// Unreserved - keyword in fixed grammar positions, identifier elsewhere
	Unreserved

	// FutureReserved - unused by the grammar today, forbidden as identifier
	FutureReserved

	// CurrentReserved - used by the grammar, forbidden as identifier
	CurrentReserved
)

// categoryNames holds the text form used by MarshalText and ParseCategory.
var categoryNames = map[Category]string{
	NotAKeyword:     "not_a_keyword",
	Unreserved:      "unreserved",
	FutureReserved:  "future_reserved",
	CurrentReserved: "current_reserved",
}

// Keyword is a single entry of the keyword table.
type Keyword struct {
	Name     string   `json:"name" yaml:"name" toml:"name"` // Canonical lowercase spelling
	Category Category `json:"category" yaml:"category" toml:"category"`
}

// keywordLookupMap resolves a lowercase word to its tier across all three
// tables at once. Missing words yield the zero Category, NotAKeyword.
var keywordLookupMap map[string]Category

// maxKeywordLength lets Classify reject long words without folding them.
var maxKeywordLength int

func init() {
	if err := Validate(); err != nil {
		panic(fmt.Sprintf("keywords: invalid keyword table: %v", err))
	}

	keywordLookupMap = make(map[string]Category,
		len(unreservedKeywords)+len(futureReservedKeywords)+len(currentReservedKeywords))
	for _, t := range tiers() {
		for _, w := range t.words {
			keywordLookupMap[w] = t.category
			maxKeywordLength = max(maxKeywordLength, len(w))
		}
	}
}

type tier struct {
	category Category
	words    []string
}

func tiers() []tier {
	return []tier{
		{Unreserved, unreservedKeywords[:]},
		{FutureReserved, futureReservedKeywords[:]},
		{CurrentReserved, currentReservedKeywords[:]},
	}
}

// Classify returns the keyword category of word, or NotAKeyword.
// Matching is case-insensitive using ASCII-only folding; callers pass the
// scanned text as-is and must not fold it themselves.
func Classify(word string) Category {
	if len(word) == 0 || len(word) > maxKeywordLength {
		return NotAKeyword
	}
	return keywordLookupMap[normalizeKeywordCase(word)]
}

// IsKeyword returns true if word belongs to any keyword tier.
func IsKeyword(word string) bool {
	return Classify(word) != NotAKeyword
}

// IsReservedKeyword returns true if word is future- or current-reserved,
// i.e. it can never be used as a bare identifier.
func IsReservedKeyword(word string) bool {
	return Classify(word).IsReserved()
}

// LookupKeyword returns the table entry for word (case-insensitive).
func LookupKeyword(word string) (Keyword, bool) {
	c := Classify(word)
	if c == NotAKeyword {
		return Keyword{}, false
	}
	return Keyword{Name: normalizeKeywordCase(word), Category: c}, true
}

// normalizeKeywordCase lowercases ASCII letters only. Non-ASCII bytes pass
// through untouched so that no locale rule can map a foreign letter onto
// a keyword.
func normalizeKeywordCase(s string) string {
	// Fast path: no uppercase means no allocation
	hasUpper := false
	for i := 0; i < len(s); i++ {
		if s[i] >= 'A' && s[i] <= 'Z' {
			hasUpper = true
			break
		}
	}
	if !hasUpper {
		return s
	}

	result := make([]byte, len(s))
	for i := 0; i < len(s); i++ {
		ch := s[i]
		if ch >= 'A' && ch <= 'Z' {
			ch += 'a' - 'A'
		}
		result[i] = ch
	}
	return string(result)
}

// Categories returns the three keyword tiers, least restrictive first.
func Categories() []Category {
	return []Category{Unreserved, FutureReserved, CurrentReserved}
}

// UnreservedKeywords returns the unreserved tier in table order.
func UnreservedKeywords() []string {
	return slices.Clone(unreservedKeywords[:])
}

// FutureReservedKeywords returns the future-reserved tier in table order.
func FutureReservedKeywords() []string {
	return slices.Clone(futureReservedKeywords[:])
}

// CurrentReservedKeywords returns the current-reserved tier in table order.
func CurrentReservedKeywords() []string {
	return slices.Clone(currentReservedKeywords[:])
}

// KeywordsByCategory returns the words of one tier in table order.
// NotAKeyword and unknown values yield nil.
func KeywordsByCategory(category Category) []string {
	switch category {
	case Unreserved:
		return UnreservedKeywords()
	case FutureReserved:
		return FutureReservedKeywords()
	case CurrentReserved:
		return CurrentReservedKeywords()
	default:
		return nil
	}
}

// AllKeywords returns every keyword of every tier sorted by name.
func AllKeywords() []Keyword {
	result := make([]Keyword, 0, len(keywordLookupMap))
	for name, c := range keywordLookupMap {
		result = append(result, Keyword{Name: name, Category: c})
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].Name < result[j].Name
	})
	return result
}

// Validate checks the keyword tables: every entry must be non-empty
// lowercase ASCII and appear exactly once across all tiers.
func Validate() error {
	return validateTiers(tiers())
}

func validateTiers(ts []tier) error {
	var errs []error
	seen := make(map[string]Category)
	for _, t := range ts {
		for _, w := range t.words {
			if w == "" {
				errs = append(errs, fmt.Errorf("empty keyword in %s tier", t.category))
				continue
			}
			if !isLowerASCII(w) {
				errs = append(errs, fmt.Errorf("keyword %q in %s tier is not lowercase ASCII", w, t.category))
			}
			if prev, ok := seen[w]; ok {
				if prev == t.category {
					errs = append(errs, fmt.Errorf("keyword %q listed twice in %s tier", w, t.category))
				} else {
					errs = append(errs, fmt.Errorf("keyword %q is in both %s and %s tiers", w, prev, t.category))
				}
				continue
			}
			seen[w] = t.category
		}
	}
	return errors.Join(errs...)
}

func isLowerASCII(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] >= 0x80 || (s[i] >= 'A' && s[i] <= 'Z') {
			return false
		}
	}
	return true
}

// IsReserved reports whether words of this category are rejected as bare
// identifiers.
func (c Category) IsReserved() bool {
	return c == FutureReserved || c == CurrentReserved
}

// CanBeIdentifier reports whether a word of this category may appear as
// a bare identifier in some grammar position.
func (c Category) CanBeIdentifier() bool {
	return c == NotAKeyword || c == Unreserved
}

// String returns the string representation of a Category.
func (c Category) String() string {
	switch c {
	case NotAKeyword:
		return "NOT_A_KEYWORD"
	case Unreserved:
		return "UNRESERVED_KEYWORD"
	case FutureReserved:
		return "FUTURE_RESERVED_KEYWORD"
	case CurrentReserved:
		return "CURRENT_RESERVED_KEYWORD"
	default:
		return "UNKNOWN_KEYWORD_CATEGORY"
	}
}

// MarshalText implements encoding.TextMarshaler.
func (c Category) MarshalText() ([]byte, error) {
	name, ok := categoryNames[c]
	if !ok {
		return nil, fmt.Errorf("unknown keyword category %d", int(c))
	}
	return []byte(name), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (c *Category) UnmarshalText(text []byte) error {
	parsed, err := ParseCategory(string(text))
	if err != nil {
		return err
	}
	*c = parsed
	return nil
}

// ParseCategory accepts either the text form ("future_reserved") or the
// String form ("FUTURE_RESERVED_KEYWORD"), in any case.
func ParseCategory(s string) (Category, error) {
	lower := strings.ToLower(strings.TrimSpace(s))
	for c, name := range categoryNames {
		if lower == name || lower == strings.ToLower(c.String()) {
			return c, nil
		}
	}
	return NotAKeyword, fmt.Errorf("unknown keyword category %q", s)
}
