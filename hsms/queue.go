package hsms

import "github.com/sumika-fab/secscore/internal/queue"

// MessageQueue is the landing queue for HSMSMessage values produced by a StreamDecoder's
// callbacks. The decoder itself must not block inside Decode, so a typical wiring enqueues
// here from onControl/onData and drains on a separate goroutine.
//
// MessageQueue wraps internal/queue's lock-free queue; it is safe for concurrent producers and
// consumers.
type MessageQueue struct {
	q queue.Queue
}

// NewMessageQueue creates an empty MessageQueue.
func NewMessageQueue() *MessageQueue {
	return &MessageQueue{q: queue.NewLockFreeQueue()}
}

// Enqueue adds a message to the tail of the queue.
func (mq *MessageQueue) Enqueue(msg HSMSMessage) {
	mq.q.Enqueue(msg)
}

// Dequeue removes and returns the message at the head of the queue, or nil if it is empty.
func (mq *MessageQueue) Dequeue() HSMSMessage {
	v := mq.q.Dequeue()
	if v == nil {
		return nil
	}

	msg, _ := v.(HSMSMessage)

	return msg
}

// Peek returns the message at the head of the queue without removing it, or nil if it is empty.
func (mq *MessageQueue) Peek() HSMSMessage {
	v := mq.q.Peek()
	if v == nil {
		return nil
	}

	msg, _ := v.(HSMSMessage)

	return msg
}

// Reset discards all queued messages.
func (mq *MessageQueue) Reset() {
	mq.q.Reset()
}

// IsEmpty returns true if the queue holds no messages.
func (mq *MessageQueue) IsEmpty() bool {
	return mq.q.IsEmpty()
}

// Length returns the number of queued messages.
func (mq *MessageQueue) Length() int {
	return mq.q.Length()
}
