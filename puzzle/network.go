package puzzle

// Network advances a set of nodes in lockstep. Every node ticks against the
// states published at the start of the step; states are published only after
// all nodes ticked.
type Network struct {
	clock    *Clock
	registry *PlateRegistry
	nodes    []Node
}

func NewNetwork() *Network {
	return &Network{
		clock:    NewClock(),
		registry: NewPlateRegistry(),
	}
}

func (n *Network) Clock() *Clock {
	return n.clock
}

func (n *Network) Plates() *PlateRegistry {
	return n.registry
}

// Add appends a node. Pressure plates are registered for boop broadcasts.
func (n *Network) Add(node Node) {
	if node == nil {
		return
	}
	for _, existing := range n.nodes {
		if existing == node {
			return
		}
	}
	n.nodes = append(n.nodes, node)
	if p, ok := node.(*PressurePlate); ok {
		n.registry.Register(p)
	}
}

// Remove drops a node. A removed plate is destroyed, releasing any capture
// before it leaves the registry.
func (n *Network) Remove(node Node) {
	for i, existing := range n.nodes {
		if existing != node {
			continue
		}
		n.nodes = append(n.nodes[:i:i], n.nodes[i+1:]...)
		if p, ok := node.(*PressurePlate); ok {
			p.Destroy()
		}
		return
	}
}

func (n *Network) Len() int {
	return len(n.nodes)
}

func (n *Network) Step(dt float64) {
	if dt < 0 {
		dt = 0
	}
	n.clock.Advance(dt)

	nodes := append([]Node(nil), n.nodes...)
	for _, node := range nodes {
		node.Tick(dt)
	}
	for _, node := range nodes {
		node.Publish()
	}
}
