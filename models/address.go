package models

import "strings"

// Address is a postal address as the booking form and photographer profiles carry it.
type Address struct {
	Address string `json:"address"`
	City    string `json:"city"`
	State   string `json:"state"`
	Zip     string `json:"zip"`
}

// Key returns the address fingerprint used for zero-cost equality checks: parts are
// lowercased, trimmed, joined, and stripped to alphanumerics. Two locations are the
// same place iff their keys are equal and non-empty.
func (a Address) Key() string {
	parts := make([]string, 0, 4)
	for _, p := range []string{a.Address, a.City, a.State, a.Zip} {
		p = strings.ToLower(strings.TrimSpace(p))
		if p != "" {
			parts = append(parts, p)
		}
	}
	joined := strings.Join(parts, " ")
	var b strings.Builder
	b.Grow(len(joined))
	for _, r := range joined {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// IsZero reports whether no part of the address is set.
func (a Address) IsZero() bool {
	return a.Address == "" && a.City == "" && a.State == "" && a.Zip == ""
}

// DisplayLine renders the address as a single comma-separated line.
func (a Address) DisplayLine() string {
	parts := make([]string, 0, 4)
	for _, p := range []string{a.Address, a.City, a.State, a.Zip} {
		if s := strings.TrimSpace(p); s != "" {
			parts = append(parts, s)
		}
	}
	return strings.Join(parts, ", ")
}
