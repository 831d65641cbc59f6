package uid

import "github.com/bwmarrin/snowflake"

// Snowflake generates 64-bit time-ordered IDs suitable for primary keys.
type Snowflake struct {
	node *snowflake.Node
}

// NewSnowflake returns a Snowflake generator bound to the given node number.
func NewSnowflake(node int64) (*Snowflake, error) {
	n, err := snowflake.NewNode(node)
	if err != nil {
		return nil, err
	}
	return &Snowflake{node: n}, nil
}

// Generate returns the next ID.
func (s *Snowflake) Generate() int64 {
	return s.node.Generate().Int64()
}
