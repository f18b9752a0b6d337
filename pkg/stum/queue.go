// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2025 Kaz Walker, Thermoquad

package stum

// EventQueueSize is the capacity of an EventQueue
const EventQueueSize = 32

// EventQueue is a fixed-capacity FIFO of events. When full, pushing evicts
// the oldest unread event so the most recent input is always kept.
type EventQueue struct {
	buf   [EventQueueSize]Event
	head  int // next unread
	count int
}

// Push appends an event. It returns true when an older event was dropped.
func (q *EventQueue) Push(ev Event) (dropped bool) {
	if q.count == EventQueueSize {
		q.head = (q.head + 1) % EventQueueSize
		q.count--
		dropped = true
	}
	q.buf[(q.head+q.count)%EventQueueSize] = ev
	q.count++
	return dropped
}

// Pop removes and returns the oldest event
func (q *EventQueue) Pop() (Event, bool) {
	if q.count == 0 {
		return Event{}, false
	}
	ev := q.buf[q.head]
	q.head = (q.head + 1) % EventQueueSize
	q.count--
	return ev, true
}

// Peek returns the oldest event without removing it
func (q *EventQueue) Peek() (Event, bool) {
	if q.count == 0 {
		return Event{}, false
	}
	return q.buf[q.head], true
}

// Len returns the number of unread events
func (q *EventQueue) Len() int {
	return q.count
}

// Clear discards all unread events
func (q *EventQueue) Clear() {
	q.head, q.count = 0, 0
}
