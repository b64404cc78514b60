package component

// Persistent marks a gate whose open state survives between runs under ID.
type Persistent struct {
	ID string
}

var PersistentComponent = NewComponent[Persistent]()
