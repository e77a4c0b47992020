package domain

import (
	"github.com/tregmine/webapi/internal/errors"
)

// AccessLevel is the permission tier of an application.
type AccessLevel string

const (
	AccessBasic   AccessLevel = "basic"
	AccessTrusted AccessLevel = "trusted"
	AccessAdmin   AccessLevel = "admin"
)

var accessRanks = map[AccessLevel]int{
	AccessBasic:   1,
	AccessTrusted: 2,
	AccessAdmin:   3,
}

// AccessLevelValues lists every valid level, lowest first.
func AccessLevelValues() []string {
	return []string{string(AccessBasic), string(AccessTrusted), string(AccessAdmin)}
}

// ParseAccessLevel converts s into an AccessLevel.
func ParseAccessLevel(s string) (AccessLevel, error) {
	level := AccessLevel(s)
	if !level.IsValid() {
		return "", errors.Wrapf(ErrInvalidAccessLevel, "%q", s)
	}
	return level, nil
}

// IsValid reports whether l is a known level.
func (l AccessLevel) IsValid() bool {
	_, ok := accessRanks[l]
	return ok
}

// Allows reports whether l is at least required. Unknown levels allow nothing.
func (l AccessLevel) Allows(required AccessLevel) bool {
	have, ok := accessRanks[l]
	if !ok {
		return false
	}
	return have >= accessRanks[required]
}
