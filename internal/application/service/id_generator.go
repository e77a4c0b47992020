package service

import (
	"fmt"

	"github.com/bwmarrin/snowflake"
)

// EpochMillis is the snowflake epoch, 2018-01-01T00:00:00Z.
const EpochMillis int64 = 1514764800000

func init() {
	snowflake.Epoch = EpochMillis
}

type idGenerator struct {
	node *snowflake.Node
}

// NewIDGenerator creates an IDGenerator for the given node (the server id).
func NewIDGenerator(nodeID int64) (IDGenerator, error) {
	node, err := snowflake.NewNode(nodeID)
	if err != nil {
		return nil, fmt.Errorf("invalid server id %d: %w", nodeID, err)
	}
	return &idGenerator{node: node}, nil
}

func (g *idGenerator) Generate() snowflake.ID {
	return g.node.Generate()
}
