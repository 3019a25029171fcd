// Package identity computes deterministic keys for catalog identities and
// unique IDs for runs.
package identity

import (
	"strings"

	"github.com/google/uuid"
)

// NamespaceUUID is the UUID v5 namespace for identity keys.
// Computed as: uuid.NewSHA1(uuid.NameSpaceDNS, []byte("idremap.coe-tools.dev"))
const NamespaceUUID = "1601c642-6a65-5884-8061-ebca97b9bb8c"

var namespace = uuid.MustParse(NamespaceUUID)

// Key returns a stable UUID v5 for an identity tuple. The same identity
// yields the same key in every catalog and on every run, so keys can be
// compared across reports.
func Key(ns, symbolic, display string) uuid.UUID {
	name := strings.Join([]string{ns, symbolic, display}, "\x00")
	return uuid.NewSHA1(namespace, []byte(name))
}

// NewRunID returns a time-ordered ID for one remap run.
func NewRunID() string {
	id, err := uuid.NewV7()
	if err != nil {
		return uuid.NewString()
	}
	return id.String()
}
