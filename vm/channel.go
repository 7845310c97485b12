package vm

import (
	"iter"
)

// Channel is an unbounded FIFO of integers.
// Values are sent to the back and received from the front.
type Channel struct {
	ReadIndex int
	Data      []int64
}

// Send appends a value to the back of the channel.
func (ch *Channel) Send(value int64) {
	ch.Data = append(ch.Data, value)
}

// Receive removes and returns the value at the front of the channel.
func (ch *Channel) Receive() (value int64, ok bool) {
	if ch.Empty() {
		return
	}

	value = ch.Data[ch.ReadIndex]
	ch.ReadIndex++
	ok = true

	// Reclaim the consumed prefix once it dominates the buffer.
	if ch.ReadIndex == len(ch.Data) {
		ch.Rewind()
	} else if ch.ReadIndex >= 32 && ch.ReadIndex*2 >= len(ch.Data) {
		ch.Data = append(ch.Data[:0], ch.Data[ch.ReadIndex:]...)
		ch.ReadIndex = 0
	}

	return
}

// Len returns the number of queued values.
func (ch *Channel) Len() int {
	return len(ch.Data) - ch.ReadIndex
}

func (ch *Channel) Empty() bool {
	return ch.Len() == 0
}

// Values iterates over the queued values, front first, without consuming them.
func (ch *Channel) Values() iter.Seq[int64] {
	return func(yield func(value int64) bool) {
		for _, value := range ch.Data[ch.ReadIndex:] {
			if !yield(value) {
				return
			}
		}
	}
}

// Rewind empties the channel.
func (ch *Channel) Rewind() {
	ch.ReadIndex = 0
	ch.Data = ch.Data[:0]
}
