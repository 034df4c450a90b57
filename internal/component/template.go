package component

// Template records which spawn template produced an entity.
type Template struct {
	Name string
}
