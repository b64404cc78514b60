package component

// Door slides between its closed position and ClosedX+OpenX, ClosedY+OpenY
// at OpenSpeed or CloseSpeed units per second.
type Door struct {
	OpenX      float64
	OpenY      float64
	OpenSpeed  float64
	CloseSpeed float64

	ClosedX     float64
	ClosedY     float64
	Initialized bool
	IsOpen      bool
}

func (d *Door) Open() { d.IsOpen = true }
func (d *Door) Close() { d.IsOpen = false }

var DoorComponent = NewComponent[Door]()

// Fountain raises a water column toward MaxHeight while active and lowers it
// to MinHeight otherwise.
type Fountain struct {
	MinHeight float64
	MaxHeight float64
	RiseSpeed float64
	FallSpeed float64

	Height float64
	Active bool
}

func (f *Fountain) Activate() { f.Active = true }
func (f *Fountain) Deactivate() { f.Active = false }

var FountainComponent = NewComponent[Fountain]()
