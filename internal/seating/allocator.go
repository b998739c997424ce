// Package seating assigns seats automatically when a booking request does
// not name them explicitly. The hall is a fixed 50-seat room; seats closest
// to the center are considered best and are handed out first.
package seating

import (
	"container/heap"
	"sort"
)

// Capacity is the fixed number of seats in the hall, numbered 1..Capacity.
const Capacity = 50

// center is the reference seat for proximity ranking: floor(Capacity/2).
const center = Capacity / 2

// seatEntry is a candidate seat keyed by its distance from the center.
type seatEntry struct {
	distance int
	seat     int
}

// seatHeap is a min-heap over (distance, seat). Ties on distance fall back
// to the lower seat number so extraction order is deterministic.
type seatHeap []seatEntry

func (h seatHeap) Len() int { return len(h) }

func (h seatHeap) Less(i, j int) bool {
	if h[i].distance != h[j].distance {
		return h[i].distance < h[j].distance
	}
	return h[i].seat < h[j].seat
}

func (h seatHeap) Swap(i, j int) { h[i], h[j] = h[j], h[i] }

func (h *seatHeap) Push(x any) { *h = append(*h, x.(seatEntry)) }

func (h *seatHeap) Pop() any {
	old := *h
	n := len(old)
	e := old[n-1]
	*h = old[:n-1]
	return e
}

// Allocate picks up to count seats for a showing given the seat numbers
// already recorded against it. Booked seats are excluded regardless of the
// booking's status, so cancellation never returns a seat to the pool. The
// remaining seats are ranked by |seat - center| and extracted smallest
// distance first until count is satisfied or availability runs out; when
// fewer seats remain than requested the shorter list is returned without
// error. The result is sorted ascending by seat number, not by selection
// order.
func Allocate(booked []int, count int) []int {
	taken := make(map[int]struct{}, len(booked))
	for _, s := range booked {
		taken[s] = struct{}{}
	}

	h := make(seatHeap, 0, Capacity)
	for s := 1; s <= Capacity; s++ {
		if _, ok := taken[s]; ok {
			continue
		}
		d := s - center
		if d < 0 {
			d = -d
		}
		h = append(h, seatEntry{distance: d, seat: s})
	}
	heap.Init(&h)

	assigned := make([]int, 0, count)
	for len(assigned) < count && h.Len() > 0 {
		assigned = append(assigned, heap.Pop(&h).(seatEntry).seat)
	}
	sort.Ints(assigned)
	return assigned
}
