package runtime

// Initializer is implemented by components that need to set up state
// once, before their first render.
type Initializer interface {
	OnInit()
}

// Mounter is implemented by components that acquire resources once their
// first render has reached the surface.
type Mounter interface {
	OnMount()
}

// Unmounter is implemented by components that must release resources
// when they are removed from the tree. OnUnmount is called exactly once
// for every instance that was mounted.
type Unmounter interface {
	OnUnmount()
}
