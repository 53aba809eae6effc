// Package identity derives offline player identities.
//
// An offline identity is a locally generated stand-in for an
// authenticated account: the stable ID is the version-3 (MD5,
// DNS-namespace) UUID of "OfflinePlayer:" + name, which is what the
// game itself computes for unauthenticated players. The same name
// yields the same ID on every machine.
package identity

import "github.com/google/uuid"

// AnonymousToken is the access-token sentinel meaning "no authentication".
const AnonymousToken = "null"

const offlinePrefix = "OfflinePlayer:"

// Identity is a per-launch player identity. It is created fresh for
// each launch request and never persisted.
type Identity struct {
	Name  string
	ID    uuid.UUID
	Token string
}

// Offline derives the stable offline identity for name.
// name must be non-empty; callers validate before invoking.
func Offline(name string) Identity {
	return Identity{
		Name:  name,
		ID:    uuid.NewMD5(uuid.NameSpaceDNS, []byte(offlinePrefix+name)),
		Token: AnonymousToken,
	}
}
