package component

// Tag is the collider tag other colliders filter on, such as "Player",
// "Enemy", "Fire" or "Ice".
type Tag struct {
	Name string
}

var TagComponent = NewComponent[Tag]()

// Name is the level-unique name used to wire entities together.
type Name struct {
	Value string
}

var NameComponent = NewComponent[Name]()
