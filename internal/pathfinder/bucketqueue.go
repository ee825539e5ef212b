package pathfinder

// bucketQueue is a monotone-cost priority queue backed by a ring buffer of
// width max_cost+1. Because every relaxation increases cost by a bounded
// amount (grid steps cost 1, extra edges and teleports cost a handful at
// most), the minimum pending cost advances monotonically and a plain ring
// buffer of buckets gives O(1) amortized push/pop instead of an O(log n)
// binary heap.
type bucketQueue struct {
	buckets  [][]uint32
	cursor   uint32
	baseline uint32 // absolute cost represented by the bucket at cursor
	size     int
}

func newBucketQueue(maxCost uint32) *bucketQueue {
	width := maxCost + 1
	if width == 0 {
		width = 1
	}
	return &bucketQueue{buckets: make([][]uint32, width)}
}

// push inserts index at the given absolute cost, which must not be less
// than the baseline (the cost of whatever vertex is currently being
// expanded) and must not exceed baseline+maxCost.
func (q *bucketQueue) push(cost uint32, index uint32) {
	width := uint32(len(q.buckets))
	slot := (q.cursor + (cost - q.baseline)) % width
	q.buckets[slot] = append(q.buckets[slot], index)
	q.size++
}

// empty reports whether every bucket has been drained.
func (q *bucketQueue) empty() bool { return q.size == 0 }

// pop returns the next index at the current minimum cost together with
// that cost, advancing the cursor through empty buckets as needed.
func (q *bucketQueue) pop() (index uint32, cost uint32, ok bool) {
	width := uint32(len(q.buckets))
	for i := uint32(0); i < width; i++ {
		bucket := q.buckets[q.cursor]
		if len(bucket) > 0 {
			index = bucket[0]
			q.buckets[q.cursor] = bucket[1:]
			q.size--
			return index, q.baseline, true
		}
		q.cursor = (q.cursor + 1) % width
		q.baseline++
	}
	return 0, 0, false
}
