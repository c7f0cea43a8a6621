package handoff

import "fmt"

// Item is the value producers hand over to consumers. It is immutable and compared by
// pointer.
type Item struct {
	producer string
	seq      int
}

func NewItem(producer string, seq int) *Item {
	return &Item{producer: producer, seq: seq}
}

// Producer returns the identity of the producer that created the item.
func (i *Item) Producer() string {
	return i.producer
}

// Seq returns the sequence number the producer assigned to the item.
func (i *Item) Seq() int {
	return i.seq
}

func (i *Item) String() string {
	return fmt.Sprintf("%s#%d", i.producer, i.seq)
}
