package domain

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

const (
	MinUPosition = 1
	MaxUPosition = 48
)

var (
	uRangePattern   = regexp.MustCompile(`^\s*(\d{1,2})\s*(?:-\s*(\d{1,2})\s*)?$`)
	cabinetPattern  = regexp.MustCompile(`([A-Za-z0-9\-]+)(?:机柜|柜)`)
	bareCodePattern = regexp.MustCompile(`^[A-Za-z0-9\-]+$`)
)

// URange is a parsed rack unit range. When the free-text input does not parse,
// Parsed is false and Raw keeps the original text so nothing is lost.
type URange struct {
	Raw    string
	Start  int
	End    int
	Parsed bool
}

func (u URange) Count() int {
	if !u.Parsed {
		return 0
	}
	return u.End - u.Start + 1
}

func (u URange) String() string {
	if !u.Parsed {
		return u.Raw
	}
	if u.Start == u.End {
		return fmt.Sprintf("U%d", u.Start)
	}
	return fmt.Sprintf("U%d-U%d", u.Start, u.End)
}

// ParseURange parses a free-text rack unit expression such as "10" or
// "10-12". Non-numeric input falls back to an unparsed range keeping the raw
// text; numeric input with a reversed or out-of-bounds range is an error.
func ParseURange(raw string) (URange, error) {
	match := uRangePattern.FindStringSubmatch(raw)
	if match == nil {
		return URange{Raw: raw}, nil
	}

	start, err := strconv.Atoi(match[1])
	if err != nil {
		return URange{Raw: raw}, nil
	}
	end := start
	if match[2] != "" {
		end, err = strconv.Atoi(match[2])
		if err != nil {
			return URange{Raw: raw}, nil
		}
	}

	if start > end {
		return URange{}, fmt.Errorf("u position start %d is greater than end %d", start, end)
	}
	if start < MinUPosition || end > MaxUPosition {
		return URange{}, fmt.Errorf("u position must be between %d and %d", MinUPosition, MaxUPosition)
	}

	return URange{Raw: raw, Start: start, End: end, Parsed: true}, nil
}

// CabinetRef is a cabinet code extracted from a free-text location. When no
// cabinet marker is found, Parsed is false and Code is empty.
type CabinetRef struct {
	Raw    string
	Code   string
	Parsed bool
}

// ExtractCabinet pulls the cabinet code out of a free-text location string.
// The code is the token immediately before the cabinet marker. An input that
// is already a bare code passes through as parsed.
func ExtractCabinet(location string) CabinetRef {
	trimmed := strings.TrimSpace(location)
	if match := cabinetPattern.FindStringSubmatch(trimmed); match != nil {
		return CabinetRef{Raw: location, Code: match[1], Parsed: true}
	}

	if trimmed != "" && bareCodePattern.MatchString(trimmed) {
		return CabinetRef{Raw: location, Code: trimmed, Parsed: true}
	}

	return CabinetRef{Raw: location}
}
