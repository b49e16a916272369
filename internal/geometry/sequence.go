package geometry

// Sequence allocates monotonically increasing ids for one engine run.
// A Sequence is not safe for concurrent use; each run owns its own.
type Sequence struct {
	next int
}

// NewSequence returns a sequence whose first id is start.
func NewSequence(start int) *Sequence {
	return &Sequence{next: start}
}

// Next returns the next id.
func (s *Sequence) Next() int {
	id := s.next
	s.next++
	return id
}

// Peek returns the id the next call to Next will return.
func (s *Sequence) Peek() int {
	return s.next
}
