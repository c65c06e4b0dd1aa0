// Package increment defines the semantic-version increment kind and the bump
// policy layered on top of github.com/Masterminds/semver/v3.
package increment

import (
	"fmt"

	"github.com/Masterminds/semver/v3"
)

// Kind is one of Major, Minor, or Patch, totally ordered Major > Minor > Patch.
type Kind int

const (
	// None represents an unset slot. It is the zero value so increment
	// vectors start out all-unset without explicit initialization.
	None Kind = iota
	Patch
	Minor
	Major
)

func (k Kind) String() string {
	switch k {
	case Major:
		return "major"
	case Minor:
		return "minor"
	case Patch:
		return "patch"
	default:
		return "none"
	}
}

// Max returns the greater of two Kinds under Major > Minor > Patch > None.
func Max(a, b Kind) Kind {
	if a > b {
		return a
	}
	return b
}

// Bump applies the release bump table to v for increment kind k, clearing
// pre-release and build metadata in every case; a pre-release is dropped
// before incrementing, so 1.2.3-rc1 bumps by Patch to 1.2.4. Passing None
// returns v with only its pre-release and build metadata cleared.
func Bump(v *semver.Version, k Kind) *semver.Version {
	// Strip first: semver's IncPatch only drops a pre-release tag without
	// incrementing the patch number.
	stripped, _ := v.SetPrerelease("")
	stripped, _ = stripped.SetMetadata("")
	v = &stripped
	if k == None {
		return v
	}
	var next semver.Version
	switch {
	case v.Major() == 0 && v.Minor() == 0:
		next = v.IncPatch()
	case v.Major() == 0:
		switch k {
		case Major, Minor:
			next = v.IncMinor()
		default:
			next = v.IncPatch()
		}
	default:
		switch k {
		case Major:
			next = v.IncMajor()
		case Minor:
			next = v.IncMinor()
		default:
			next = v.IncPatch()
		}
	}
	return &next
}

// MinBump returns the smallest increment that Bump treats distinctly for v:
// Patch for 0.0.* versions, None otherwise (every increment collapses to the
// same patch bump below 0.1.0).
func MinBump(v *semver.Version) Kind {
	if v.Major() == 0 && v.Minor() == 0 {
		return Patch
	}
	return None
}

// MaxBump returns the richest increment Bump treats distinctly for v: Patch
// for 0.0.*, Minor for 0.y.* with y >= 1, Major otherwise.
func MaxBump(v *semver.Version) Kind {
	switch {
	case v.Major() == 0 && v.Minor() == 0:
		return Patch
	case v.Major() == 0:
		return Minor
	default:
		return Major
	}
}

// ParseVersion parses a version string, accepting an optional leading "v".
func ParseVersion(s string) (*semver.Version, error) {
	v, err := semver.NewVersion(s)
	if err != nil {
		return nil, fmt.Errorf("increment: parse version %q: %w", s, err)
	}
	return v, nil
}
