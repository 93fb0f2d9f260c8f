package snowflake

import (
	"hash/fnv"
	"os"
	"strconv"
	"sync"

	bwsnowflake "github.com/bwmarrin/snowflake"
)

var (
	mu   sync.Mutex
	node *bwsnowflake.Node
)

// SetNodeID overrides the derived node id (0-1023). Call once at bootstrap,
// before the first id is generated.
func SetNodeID(id int64) error {
	n, err := bwsnowflake.NewNode(id & 0x3FF)
	if err != nil {
		return err
	}
	mu.Lock()
	node = n
	mu.Unlock()
	return nil
}

func activeNode() *bwsnowflake.Node {
	mu.Lock()
	defer mu.Unlock()
	if node == nil {
		// derive the node id from the hostname hash (10 bits)
		host, _ := os.Hostname()
		h := fnv.New32a()
		_, _ = h.Write([]byte(host))
		n, err := bwsnowflake.NewNode(int64(h.Sum32()) & 0x3FF)
		if err != nil {
			n, _ = bwsnowflake.NewNode(1)
		}
		node = n
	}
	return node
}

// Next returns a new snowflake id.
func Next() int64 {
	return activeNode().Generate().Int64()
}

// NextID returns a new snowflake id in decimal string form, used for
// client-visible correlation ids such as the order number.
func NextID() string {
	return strconv.FormatInt(Next(), 10)
}
