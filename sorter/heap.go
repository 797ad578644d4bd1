package sorter

// Heap sorts data by building a max-heap in place and repeatedly moving the
// root behind the shrinking heap.
func Heap[T Element](data []T) {
	n := len(data)
	if n <= 1 {
		return
	}

	for i := n/2 - 1; i >= 0; i-- {
		heapify(data, n, i)
	}

	for i := n - 1; i > 0; i-- {
		data[0], data[i] = data[i], data[0]
		heapify(data, i, 0)
	}
}

// heapify sifts data[i] down within the first n elements.
func heapify[T Element](data []T, n, i int) {
	for {
		largest := i
		left := 2*i + 1
		right := 2*i + 2

		if left < n && data[left] > data[largest] {
			largest = left
		}
		if right < n && data[right] > data[largest] {
			largest = right
		}

		if largest == i {
			return
		}

		data[i], data[largest] = data[largest], data[i]
		i = largest
	}
}
