package live

import "hash/fnv"

// kind names used for identity hashing and attribute errors
const (
	threadKind = "LiveThread"
	updateKind = "LiveUpdate"
)

// identityHash combines a resource kind with its designated string id into
// a stable hash. Resources that compare equal hash equal.
func identityHash(kind, id string) uint64 {
	h := fnv.New64a()
	h.Write([]byte(kind))
	h.Write([]byte{0})
	h.Write([]byte(id))
	return h.Sum64()
}
