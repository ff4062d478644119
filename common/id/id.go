// Package id generates time-ordered unique identifiers for all entities.
package id

import (
	"fmt"
	"os"
	"strconv"
	"sync"

	"github.com/bwmarrin/snowflake"
)

var (
	node     *snowflake.Node
	initOnce sync.Once
	initErr  error
)

// New returns the next snowflake id. The node number comes from NODE_ID
// (default 0) so multiple instances can generate ids without coordination.
func New() int64 {
	initOnce.Do(func() {
		nodeID := int64(0)
		if v := os.Getenv("NODE_ID"); v != "" {
			parsed, err := strconv.ParseInt(v, 10, 64)
			if err != nil {
				initErr = fmt.Errorf("parsing NODE_ID: %w", err)
				return
			}
			nodeID = parsed
		}
		node, initErr = snowflake.NewNode(nodeID)
	})
	if initErr != nil {
		panic(initErr)
	}
	return node.Generate().Int64()
}
