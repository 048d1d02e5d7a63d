package sig

import "strings"

// Rule selects accounts by number prefix: an account matches when it starts
// with one of Include and with none of Exclude. Exclusions carve out a
// sub-class already attributed to another aggregate, e.g. 70 without 707.
type Rule struct {
	Include []string
	Exclude []string
}

// Prefixes returns a rule matching any of the given prefixes.
func Prefixes(p ...string) Rule {
	return Rule{Include: p}
}

// Except returns a copy of r that also rejects the given prefixes.
func (r Rule) Except(p ...string) Rule {
	exclude := make([]string, 0, len(r.Exclude)+len(p))
	exclude = append(exclude, r.Exclude...)
	exclude = append(exclude, p...)
	return Rule{Include: r.Include, Exclude: exclude}
}

// Match reports whether number is selected by r.
func (r Rule) Match(number string) bool {
	for _, p := range r.Exclude {
		if strings.HasPrefix(number, p) {
			return false
		}
	}
	for _, p := range r.Include {
		if strings.HasPrefix(number, p) {
			return true
		}
	}
	return false
}

// String renders r as "70 -707".
func (r Rule) String() string {
	parts := append([]string(nil), r.Include...)
	for _, p := range r.Exclude {
		parts = append(parts, "-"+p)
	}
	return strings.Join(parts, " ")
}
