// Package family identifies which proposal family (EIPs or ERCs) a
// repository belongs to.
//
// The two families share early history and diverged later. Each family is
// recognised by a fingerprint commit that only exists in its own history;
// a repository must contain exactly one fingerprint.
package family

import (
	"fmt"
	"strings"

	"github.com/samber/lo"

	"github.com/eips-wg/preprocessor/errors"
)

// Use is a proposal family. It is a closed set: EIPs and ERCs.
type Use int

const (
	EIPs Use = iota
	ERCs
)

var names = map[Use]string{
	EIPs: "EIPs",
	ERCs: "ERCs",
}

// All returns every family in stable order.
func All() []Use {
	return []Use{EIPs, ERCs}
}

// Parse maps a family name ("EIPs" or "ERCs") to its Use. Names are
// case-sensitive.
func Parse(name string) (Use, error) {
	for _, u := range All() {
		if names[u] == name {
			return u, nil
		}
	}
	return 0, errors.Newf(errors.CodeInvalidInput, "unknown family %q", name)
}

func (u Use) String() string {
	if name, ok := names[u]; ok {
		return name
	}
	return fmt.Sprintf("Use(%d)", int(u))
}

// Others returns every family except u, in stable order.
func (u Use) Others() []Use {
	return lo.Filter(All(), func(o Use, _ int) bool { return o != u })
}

// MarshalText implements encoding.TextMarshaler.
func (u Use) MarshalText() ([]byte, error) {
	name, ok := names[u]
	if !ok {
		return nil, errors.Newf(errors.CodeInvalidInput, "unknown family %d", int(u))
	}
	return []byte(name), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (u *Use) UnmarshalText(text []byte) error {
	parsed, err := Parse(string(text))
	if err != nil {
		return err
	}
	*u = parsed
	return nil
}

// Location describes where a family is published.
type Location struct {
	// Repository is the canonical clone URL.
	Repository string `toml:"repository" json:"repository"`
	// BaseURL is where the rendered site is served.
	BaseURL string `toml:"base_url" json:"base_url"`
	// IdentifyingCommit is a commit hash only present in this family.
	IdentifyingCommit string `toml:"identifying_commit" json:"identifying_commit"`
}

// Locations maps each family to its Location.
type Locations map[Use]Location

// AmbiguousError reports that a repository did not match exactly one family.
type AmbiguousError struct {
	// Resolved records, per family, whether its fingerprint was found.
	Resolved map[Use]bool
	// Fingerprints records the commit probed for each family.
	Fingerprints map[Use]string
}

func (e *AmbiguousError) Error() string {
	parts := make([]string, 0, len(e.Resolved))
	for _, u := range All() {
		resolved, ok := e.Resolved[u]
		if !ok {
			continue
		}
		parts = append(parts, fmt.Sprintf("%s=%t", u, resolved))
	}
	return "unable to identify repository family (" + strings.Join(parts, ", ") + ")"
}

func (e *AmbiguousError) Code() errors.ErrorCode {
	return errors.CodeAmbiguousFamily
}
