package job

import (
	"fmt"
	"hash/fnv"
)

// ShardLabel hashes a document ID to a stable, small-cardinality metric
// label (0-31).
func ShardLabel(id string) string {
	h := fnv.New32a()
	_, _ = h.Write([]byte(id))
	return fmt.Sprintf("%d", h.Sum32()%32)
}
