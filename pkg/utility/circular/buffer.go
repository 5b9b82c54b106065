package circular

// Buffer is a bounded FIFO over a fixed backing slice. Once full, a push
// evicts the oldest element. Index 0 is always the newest element.
type Buffer[T any] struct {
	data []T
	head int
	size int
}

func NewBuffer[T any](capacity int) *Buffer[T] {
	if capacity <= 0 {
		panic("capacity must be positive")
	}
	return &Buffer[T]{
		data: make([]T, capacity),
	}
}

func (b *Buffer[T]) Cap() int {
	return len(b.data)
}

func (b *Buffer[T]) Len() int {
	return b.size
}

func (b *Buffer[T]) Full() bool {
	return b.size == len(b.data)
}

func (b *Buffer[T]) Push(value T) {
	b.data[b.head] = value
	b.head = (b.head + 1) % len(b.data)
	if b.size < len(b.data) {
		b.size++
	}
}

// At returns the element idx steps behind the newest one. At(0) is the
// newest element, At(Len()-1) the oldest.
func (b *Buffer[T]) At(idx int) T {
	if idx < 0 || idx >= b.size {
		panic("index out of range")
	}
	actual := b.head - 1 - idx
	if actual < 0 {
		actual += len(b.data)
	}
	return b.data[actual]
}

// Each visits elements newest first.
func (b *Buffer[T]) Each(f func(T)) {
	for i := 0; i < b.size; i++ {
		f(b.At(i))
	}
}
