package id

import (
	"sync"

	"github.com/bwmarrin/snowflake"
)

var (
	node *snowflake.Node
	once sync.Once
)

// Init must run once per process before New. The server and the worker use
// distinct node ids so ids never collide across processes.
func Init(nodeID int64) error {
	var err error
	once.Do(func() {
		node, err = snowflake.NewNode(nodeID)
	})
	return err
}

// New returns a time-ordered int64 id for users, workspaces, invites, leads
// and every other row keyed by BIGINT.
func New() int64 {
	return node.Generate().Int64()
}
