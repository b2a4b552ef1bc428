package badger

import "fmt"

// Key prefixes for different data types
const (
	checkpointPrefix = "chkpt"
)

// makeCheckpointKey generates a key for a status filter's run checkpoint.
func makeCheckpointKey(statusFilter string) []byte {
	return []byte(fmt.Sprintf("%s:%s", checkpointPrefix, statusFilter))
}
