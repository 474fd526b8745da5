package domaincheck

import "fmt"

// slot is one position in a parsed pattern: either a fixed literal
// rune or a charset to enumerate.
type slot struct {
	literal rune
	charset []rune // nil when this slot is a literal
}

func wordChars() []rune {
	chars := make([]rune, 0, 27)
	for c := 'a'; c <= 'z'; c++ {
		chars = append(chars, c)
	}
	return append(chars, '-')
}

func digitChars() []rune {
	chars := make([]rune, 0, 10)
	for c := '0'; c <= '9'; c++ {
		chars = append(chars, c)
	}
	return chars
}

func anyChars() []rune {
	return append(wordChars(), digitChars()...)
}

// parsePattern parses a pattern string into a sequence of slots,
// per the grammar: \w (27 options), \d (10 options), ? (37 options),
// \\ (literal backslash), any other literal char passed through,
// unknown escapes and a trailing backslash are errors.
func parsePattern(pattern string) ([]slot, error) {
	if pattern == "" {
		return nil, newInvalidPatternError(pattern, "pattern cannot be empty")
	}

	runes := []rune(pattern)
	slots := make([]slot, 0, len(runes))

	for i := 0; i < len(runes); i++ {
		r := runes[i]
		if r != '\\' {
			if r == '?' {
				slots = append(slots, slot{charset: anyChars()})
				continue
			}
			slots = append(slots, slot{literal: r})
			continue
		}

		if i == len(runes)-1 {
			return nil, newInvalidPatternError(pattern, "trailing backslash")
		}
		i++
		switch runes[i] {
		case 'w':
			slots = append(slots, slot{charset: wordChars()})
		case 'd':
			slots = append(slots, slot{charset: digitChars()})
		case '\\':
			slots = append(slots, slot{literal: '\\'})
		default:
			return nil, newInvalidPatternError(pattern, fmt.Sprintf("unknown escape \\%c", runes[i]))
		}
	}

	return slots, nil
}

// EstimatePatternCount returns the raw Cartesian product size of a
// pattern's slots, before base-name filtering. Exposed so callers can
// confirm a pattern isn't about to enumerate an unreasonable number of
// candidates.
func EstimatePatternCount(pattern string) (int, error) {
	slots, err := parsePattern(pattern)
	if err != nil {
		return 0, err
	}
	count := 1
	for _, s := range slots {
		if s.charset != nil {
			count *= len(s.charset)
		}
	}
	return count, nil
}

// expandPattern enumerates the full mixed-radix Cartesian product of a
// pattern's slot charsets in odometer order (rightmost slot varies
// fastest), then drops every candidate that fails base-name
// validation.
func expandPattern(pattern string) ([]string, error) {
	slots, err := parsePattern(pattern)
	if err != nil {
		return nil, err
	}

	radices := make([]int, len(slots))
	total := 1
	for i, s := range slots {
		if s.charset != nil {
			radices[i] = len(s.charset)
		} else {
			radices[i] = 1
		}
		total *= radices[i]
	}

	results := make([]string, 0, total)
	indices := make([]int, len(slots))

	for n := 0; n < total; n++ {
		buf := make([]rune, len(slots))
		for i, s := range slots {
			if s.charset != nil {
				buf[i] = s.charset[indices[i]]
			} else {
				buf[i] = s.literal
			}
		}
		candidate := string(buf)
		if validateBaseName(candidate) == nil {
			results = append(results, candidate)
		}

		// odometer increment: rightmost slot fastest.
		for i := len(slots) - 1; i >= 0; i-- {
			indices[i]++
			if indices[i] < radices[i] {
				break
			}
			indices[i] = 0
		}
	}

	return results, nil
}

// applyAffixes emits, for a single validated base name n, all affix
// variants that themselves pass base-name validation: prefix+n+suffix
// for every pair, prefix+n for every prefix, n+suffix for every
// suffix, and n itself iff includeBare.
func applyAffixes(base string, prefixes, suffixes []string, includeBare bool) []string {
	var out []string

	for _, p := range prefixes {
		for _, s := range suffixes {
			candidate := p + base + s
			if validateBaseName(candidate) == nil {
				out = append(out, candidate)
			}
		}
	}
	for _, p := range prefixes {
		candidate := p + base
		if validateBaseName(candidate) == nil {
			out = append(out, candidate)
		}
	}
	for _, s := range suffixes {
		candidate := base + s
		if validateBaseName(candidate) == nil {
			out = append(out, candidate)
		}
	}
	if includeBare && validateBaseName(base) == nil {
		out = append(out, base)
	}

	return out
}

// GenerateNames produces the flat, validated, deterministically
// ordered list of base names described by a set of literals and
// patterns, optionally expanded by prefix/suffix affixes.
//
// Order: literals first (in input order), then each pattern's
// expansions in odometer order, then — when any prefix or suffix is
// non-empty — every base's affix variants in the order prefix+base+
// suffix, prefix+base, base+suffix, bare base.
func GenerateNames(literals, patterns, prefixes, suffixes []string, includeBare bool) ([]string, error) {
	var bases []string

	for _, lit := range literals {
		if validateBaseName(lit) == nil {
			bases = append(bases, lit)
		}
	}

	for _, pattern := range patterns {
		expanded, err := expandPattern(pattern)
		if err != nil {
			return nil, err
		}
		bases = append(bases, expanded...)
	}

	if len(prefixes) == 0 && len(suffixes) == 0 {
		return bases, nil
	}

	var out []string
	for _, base := range bases {
		out = append(out, applyAffixes(base, prefixes, suffixes, includeBare)...)
	}
	return out, nil
}

// ExpandTLDs combines a list of base names with a list of TLDs to
// produce the final FQDN set: every base paired with every TLD, in
// base-major order.
func ExpandTLDs(bases, tlds []string) []string {
	out := make([]string, 0, len(bases)*len(tlds))
	for _, b := range bases {
		for _, t := range tlds {
			out = append(out, b+"."+t)
		}
	}
	return out
}
