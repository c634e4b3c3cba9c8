package pagewriter

// nullIterator walks a column of fixed width rows once, classifying each row
// as present or null and accumulating the null count as a side effect of the
// traversal. The column is never mutated.
type nullIterator struct {
	data      []byte
	size      int
	isNull    func(row []byte) bool
	offset    int
	nullCount int
}

func newNullIterator(data []byte, size int, isNull func([]byte) bool) *nullIterator {
	return &nullIterator{data: data, size: size, isNull: isNull}
}

// Len returns the total number of rows of the column, independently of how
// far the iteration advanced.
func (it *nullIterator) Len() int {
	return len(it.data) / it.size
}

// Next reports the validity of the next row; ok is false once all rows have
// been consumed.
func (it *nullIterator) Next() (valid, ok bool) {
	if it.offset+it.size > len(it.data) {
		return false, false
	}
	row := it.data[it.offset : it.offset+it.size]
	it.offset += it.size

	if it.isNull != nil && it.isNull(row) {
		it.nullCount++
		return false, true
	}
	return true, true
}

// NullCount returns the number of null rows seen so far; it is only complete
// after the iterator has been drained.
func (it *nullIterator) NullCount() int {
	return it.nullCount
}
