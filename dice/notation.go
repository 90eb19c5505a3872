package dice

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// notationRegex matches dice notation like "2d6+3", "d20", "3d8-2".
var notationRegex = regexp.MustCompile(`^([+-]?\d*)[dD](\d+)([+-]\d+)?$`)

// ErrInvalidNotation indicates a dice-notation string could not be parsed.
var ErrInvalidNotation = fmt.Errorf("dice: invalid notation")

// ParseNotation parses a dice notation string into a Pool. Supports
// single terms ("2d6", "d20", "3d8+5") and catalog-style sums like
// "2d6+1d4+3". Used for ability records whose `dice`/`heal_dice` fields
// are authored as notation strings rather than structured specs.
func ParseNotation(notation string) (Pool, error) {
	notation = strings.TrimSpace(notation)
	if notation == "" {
		return Pool{}, fmt.Errorf("%w: empty notation", ErrInvalidNotation)
	}

	if strings.Count(notation, "d") > 1 || (strings.Count(notation, "d") == 1 && strings.Count(notation, "+") > 1) {
		return parseComplexNotation(notation)
	}

	matches := notationRegex.FindStringSubmatch(notation)
	if matches == nil {
		return Pool{}, fmt.Errorf("%w: %s", ErrInvalidNotation, notation)
	}

	count := 1
	if matches[1] != "" && matches[1] != "+" && matches[1] != "-" {
		var err error
		count, err = strconv.Atoi(matches[1])
		if err != nil {
			return Pool{}, fmt.Errorf("%w: invalid count in %s", ErrInvalidNotation, notation)
		}
	}

	size, err := strconv.Atoi(matches[2])
	if err != nil {
		return Pool{}, fmt.Errorf("%w: invalid die size in %s", ErrInvalidNotation, notation)
	}
	if size <= 0 {
		return Pool{}, fmt.Errorf("%w: die size must be positive in %s", ErrInvalidDieSize, notation)
	}

	modifier := 0
	if matches[3] != "" {
		modifier, err = strconv.Atoi(matches[3])
		if err != nil {
			return Pool{}, fmt.Errorf("%w: invalid modifier in %s", ErrInvalidNotation, notation)
		}
	}

	return SimplePool(count, size, modifier), nil
}

// parseComplexNotation handles sums of dice terms like "2d6+1d4+3".
func parseComplexNotation(notation string) (Pool, error) {
	parts := strings.Split(notation, "+")
	var specs []Spec
	modifier := 0

	for _, part := range parts {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}

		if strings.Contains(part, "d") || strings.Contains(part, "D") {
			matches := notationRegex.FindStringSubmatch(part)
			if matches == nil {
				return Pool{}, fmt.Errorf("%w: invalid term %s", ErrInvalidNotation, part)
			}

			count := 1
			if matches[1] != "" {
				var err error
				count, err = strconv.Atoi(matches[1])
				if err != nil {
					return Pool{}, fmt.Errorf("%w: invalid count in %s", ErrInvalidNotation, part)
				}
			}

			size, err := strconv.Atoi(matches[2])
			if err != nil {
				return Pool{}, fmt.Errorf("%w: invalid die size in %s", ErrInvalidNotation, part)
			}
			if size <= 0 {
				return Pool{}, fmt.Errorf("%w: die size must be positive in %s", ErrInvalidDieSize, part)
			}

			specs = append(specs, Spec{Count: count, Size: size})

			if matches[3] != "" {
				mod, err := strconv.Atoi(matches[3])
				if err != nil {
					return Pool{}, fmt.Errorf("%w: invalid modifier in %s", ErrInvalidNotation, part)
				}
				modifier += mod
			}
		} else {
			mod, err := strconv.Atoi(part)
			if err != nil {
				return Pool{}, fmt.Errorf("%w: invalid modifier %s", ErrInvalidNotation, part)
			}
			modifier += mod
		}
	}

	if len(specs) == 0 {
		return Pool{}, fmt.Errorf("%w: no dice found in %s", ErrInvalidNotation, notation)
	}

	return Pool{Dice: specs, Modifier: modifier}, nil
}

// MustParseNotation parses notation and panics on error. Useful for
// catalog fixtures where the notation is compile-time known-good.
func MustParseNotation(notation string) Pool {
	pool, err := ParseNotation(notation)
	if err != nil {
		panic(fmt.Sprintf("dice: failed to parse notation %q: %v", notation, err))
	}
	return pool
}
