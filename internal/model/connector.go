package model

import "fmt"

// Connector ties a group of nodes together as a single rigid body. An
// optional reference node carries the rigid body motion and is where loads
// and boundary conditions on the connector are applied.
type Connector struct {
	Name    string
	Nodes   []int
	RefNode *int
}

// SetName returns the name of the node set derived for the connector during
// deck assembly. The prefix keeps derived sets from shadowing user sets.
func (c Connector) SetName() string {
	return fmt.Sprintf("connector_%s", c.Name)
}
