package component

// ReloadRequest is a marker entity asking the world to rebuild the current
// level, created when a watched prefab or level file changes.
type ReloadRequest struct {
	Path string
}

var ReloadRequestComponent = NewComponent[ReloadRequest]()
