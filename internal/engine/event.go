package engine

// Event is a multi-cast event carrying one argument.
// Listeners run synchronously, in registration order.
type Event[T any] struct {
	listeners []func(T)
}

func (e *Event[T]) AddListener(callback func(T)) {
	if callback == nil {
		return
	}
	e.listeners = append(e.listeners, callback)
}

func (e *Event[T]) RemoveAllListeners() {
	e.listeners = nil
}

// Invoke calls all registered listeners
func (e *Event[T]) Invoke(arg T) {
	for _, listener := range e.listeners {
		listener(arg)
	}
}

// HasListeners lets hot paths skip building event payloads nobody reads.
func (e *Event[T]) HasListeners() bool {
	return len(e.listeners) > 0
}

func (e *Event[T]) GetListenerCount() int {
	return len(e.listeners)
}
