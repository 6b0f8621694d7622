package catalog

import (
	"encoding/json"
	"strconv"
	"strings"
)

// ParseStatus tags the outcome of decoding a metafield.
type ParseStatus int

const (
	ParseOK ParseStatus = iota
	ParseMissing
	ParseMalformed
)

func (s ParseStatus) String() string {
	switch s {
	case ParseOK:
		return "ok"
	case ParseMissing:
		return "missing"
	default:
		return "malformed"
	}
}

// Parsed carries a decoded metafield. Value is always usable: on failure
// it holds the fallback and Err explains a malformed input.
type Parsed[T any] struct {
	Value  T
	Status ParseStatus
	Err    error
}

func (p Parsed[T]) OK() bool { return p.Status == ParseOK }

// ParseJSON decodes raw as T, falling back on empty or invalid input.
func ParseJSON[T any](raw string, fallback T) Parsed[T] {
	if strings.TrimSpace(raw) == "" {
		return Parsed[T]{Value: fallback, Status: ParseMissing}
	}
	var v T
	if err := json.Unmarshal([]byte(raw), &v); err != nil {
		return Parsed[T]{Value: fallback, Status: ParseMalformed, Err: err}
	}
	return Parsed[T]{Value: v, Status: ParseOK}
}

// ParseList decodes a JSON string array. Anything else yields an empty list.
func ParseList(raw string) Parsed[[]string] {
	p := ParseJSON[[]any](raw, nil)
	if !p.OK() {
		return Parsed[[]string]{Value: []string{}, Status: p.Status, Err: p.Err}
	}
	out := make([]string, 0, len(p.Value))
	for _, v := range p.Value {
		if s, ok := v.(string); ok {
			out = append(out, s)
		}
	}
	return Parsed[[]string]{Value: out, Status: ParseOK}
}

// ParseInt reads a leading integer the way loose storefront values are
// entered ("15", "15%", " 500 pcs").
func ParseInt(raw string) Parsed[*int] {
	s := strings.TrimSpace(raw)
	if s == "" {
		return Parsed[*int]{Status: ParseMissing}
	}
	end := 0
	if end < len(s) && (s[end] == '-' || s[end] == '+') {
		end++
	}
	for end < len(s) && s[end] >= '0' && s[end] <= '9' {
		end++
	}
	n, err := strconv.Atoi(s[:end])
	if err != nil {
		return Parsed[*int]{Status: ParseMalformed, Err: err}
	}
	return Parsed[*int]{Value: &n, Status: ParseOK}
}

// ParseFloat reads a percentage or amount; failures fall back to 0.
func ParseFloat(raw string) Parsed[float64] {
	s := strings.TrimSpace(strings.TrimSuffix(strings.TrimSpace(raw), "%"))
	if s == "" {
		return Parsed[float64]{Status: ParseMissing}
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return Parsed[float64]{Status: ParseMalformed, Err: err}
	}
	return Parsed[float64]{Value: f, Status: ParseOK}
}
