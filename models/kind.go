// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import (
	"errors"
	"fmt"
	"strings"
)

// Kind identifies one of the synchronised entity collections.
type Kind string

const (
	KindEvents  Kind = "events"
	KindGroups  Kind = "groups"
	KindMembers Kind = "members"
)

// ErrUnknownKind is returned by ParseKind for anything that is not one of
// the three synchronised collections.
var ErrUnknownKind = errors.New("unknown entity kind")

// AllKinds lists every kind in the order the orchestrator schedules them.
func AllKinds() []Kind {
	return []Kind{KindGroups, KindMembers, KindEvents}
}

// ParseKind accepts the plural form used in URLs and config ("events") as
// well as the singular one ("event").
func ParseKind(s string) (Kind, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "events", "event":
		return KindEvents, nil
	case "groups", "group":
		return KindGroups, nil
	case "members", "member":
		return KindMembers, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownKind, s)
}

func (k Kind) String() string {
	return string(k)
}

// Table returns the local table holding records of this kind.
func (k Kind) Table() string {
	return string(k)
}

// HasParent reports whether records of this kind belong to a group, so a
// group-scoped pull can stamp the scope as their parent.
func (k Kind) HasParent() bool {
	return k == KindEvents || k == KindMembers
}
