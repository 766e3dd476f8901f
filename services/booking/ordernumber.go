package booking

import (
	"fmt"
	"strings"

	"github.com/bwmarrin/snowflake"
)

// OrderNumberGenerator allocates unique, human-readable order numbers.
type OrderNumberGenerator interface {
	Next() string
}

// SnowflakeOrderNumbers derives order numbers from snowflake ids: a short
// namespace prefix followed by the id in base 36. Ids are time-ordered and
// unique per node, and the orders collection carries a unique index as the
// final guard.
type SnowflakeOrderNumbers struct {
	prefix string
	node   *snowflake.Node
}

func NewSnowflakeOrderNumbers(prefix string, nodeID int64) (*SnowflakeOrderNumbers, error) {
	node, err := snowflake.NewNode(nodeID)
	if err != nil {
		return nil, fmt.Errorf("failed to create snowflake node: %w", err)
	}
	return &SnowflakeOrderNumbers{prefix: prefix, node: node}, nil
}

func (g *SnowflakeOrderNumbers) Next() string {
	return g.prefix + "-" + strings.ToUpper(g.node.Generate().Base36())
}
