package host

// ListenerID identifies a registered listener. The zero value is never
// handed out.
type ListenerID uint64

// PointerFunc receives pointer positions in logical client coordinates.
type PointerFunc func(clientX, clientY float64)

// ResizeFunc receives the new logical bounds and density.
type ResizeFunc func(bounds Rect, density float64)

// Events is the listener registration half of Host.
type Events interface {
	AddPointerListener(fn PointerFunc) ListenerID
	RemovePointerListener(id ListenerID)
	AddResizeListener(fn ResizeFunc) ListenerID
	RemoveResizeListener(id ListenerID)
}

// Listeners is a registry implementing Events. Hosts embed it and call
// the Emit methods from their loop goroutine. Not safe for concurrent use.
type Listeners struct {
	next    ListenerID
	pointer map[ListenerID]PointerFunc
	resize  map[ListenerID]ResizeFunc
	order   []ListenerID

	added   int
	removed int
}

// AddPointerListener registers fn for pointer moves.
func (l *Listeners) AddPointerListener(fn PointerFunc) ListenerID {
	if l.pointer == nil {
		l.pointer = make(map[ListenerID]PointerFunc)
	}
	id := l.register()
	l.pointer[id] = fn
	return id
}

// RemovePointerListener unregisters a pointer listener. Unknown IDs are
// ignored.
func (l *Listeners) RemovePointerListener(id ListenerID) {
	if _, ok := l.pointer[id]; ok {
		delete(l.pointer, id)
		l.unregister(id)
	}
}

// AddResizeListener registers fn for resizes.
func (l *Listeners) AddResizeListener(fn ResizeFunc) ListenerID {
	if l.resize == nil {
		l.resize = make(map[ListenerID]ResizeFunc)
	}
	id := l.register()
	l.resize[id] = fn
	return id
}

// RemoveResizeListener unregisters a resize listener. Unknown IDs are
// ignored.
func (l *Listeners) RemoveResizeListener(id ListenerID) {
	if _, ok := l.resize[id]; ok {
		delete(l.resize, id)
		l.unregister(id)
	}
}

// EmitPointer notifies pointer listeners in registration order.
func (l *Listeners) EmitPointer(clientX, clientY float64) {
	for _, id := range l.snapshot() {
		if fn, ok := l.pointer[id]; ok {
			fn(clientX, clientY)
		}
	}
}

// EmitResize notifies resize listeners in registration order.
func (l *Listeners) EmitResize(bounds Rect, density float64) {
	for _, id := range l.snapshot() {
		if fn, ok := l.resize[id]; ok {
			fn(bounds, density)
		}
	}
}

// PointerCount returns the number of registered pointer listeners.
func (l *Listeners) PointerCount() int { return len(l.pointer) }

// ResizeCount returns the number of registered resize listeners.
func (l *Listeners) ResizeCount() int { return len(l.resize) }

// Added returns how many listeners were ever registered.
func (l *Listeners) Added() int { return l.added }

// Removed returns how many listeners were actually removed.
func (l *Listeners) Removed() int { return l.removed }

func (l *Listeners) register() ListenerID {
	l.next++
	l.added++
	l.order = append(l.order, l.next)
	return l.next
}

func (l *Listeners) unregister(id ListenerID) {
	l.removed++
	for i, v := range l.order {
		if v == id {
			l.order = append(l.order[:i], l.order[i+1:]...)
			return
		}
	}
}

// snapshot copies the order so listeners may unregister while emitting.
func (l *Listeners) snapshot() []ListenerID {
	return append([]ListenerID(nil), l.order...)
}
