package component

// GravityScale scales world gravity for a dynamic physics body.
// 1.0 = normal gravity, 0.0 = no gravity. Bodies without it use 1.0.
type GravityScale struct {
	Scale float64
}

var GravityScaleComponent = NewComponent[GravityScale]()

// Parent attaches an entity to another one. The child keeps its offset from
// the parent's transform while attached.
type Parent struct {
	Entity  uint64
	OffsetX float64
	OffsetY float64
}

var ParentComponent = NewComponent[Parent]()
