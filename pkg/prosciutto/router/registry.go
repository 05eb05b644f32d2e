package router

// Registry maps a screen kind to exactly one screen instance.
type Registry struct {
	screens map[Kind]Screen
	order   []Kind
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		screens: make(map[Kind]Screen),
	}
}

// Register adds screen under its kind. Nil screens and kinds that are already
// registered are skipped and false is returned; the first registration wins.
func (r *Registry) Register(screen Screen) bool {
	if isNil(screen) {
		return false
	}
	kind := screen.Kind()
	if _, exists := r.screens[kind]; exists {
		return false
	}
	r.screens[kind] = screen
	r.order = append(r.order, kind)
	return true
}

// Get returns the screen registered for kind.
func (r *Registry) Get(kind Kind) (Screen, bool) {
	screen, ok := r.screens[kind]
	return screen, ok
}

// Contains reports whether screen is the instance registered for its kind.
func (r *Registry) Contains(screen Screen) bool {
	if isNil(screen) {
		return false
	}
	registered, ok := r.screens[screen.Kind()]
	return ok && registered == screen
}

// Len returns the number of registered screens.
func (r *Registry) Len() int {
	return len(r.screens)
}

// Kinds returns the registered kinds in registration order.
func (r *Registry) Kinds() []Kind {
	out := make([]Kind, len(r.order))
	copy(out, r.order)
	return out
}

// Each calls fn for every screen in registration order.
func (r *Registry) Each(fn func(Screen)) {
	for _, kind := range r.order {
		fn(r.screens[kind])
	}
}

// Clear removes every registration.
func (r *Registry) Clear() {
	clear(r.screens)
	r.order = r.order[:0]
}
