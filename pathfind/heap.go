package pathfind

// keyItem is a heap entry ordered lexicographically by key, then id.
// Unused key slots stay zero.
type keyItem struct {
	key [4]int
	id  int
}

// keyPQ is a min-heap of keyItem used with container/heap. Stale entries are
// left in place and skipped by the caller on pop (lazy decrease-key).
type keyPQ []keyItem

func (pq keyPQ) Len() int { return len(pq) }

func (pq keyPQ) Less(i, j int) bool {
	a, b := &pq[i], &pq[j]
	for k := 0; k < len(a.key); k++ {
		if a.key[k] != b.key[k] {
			return a.key[k] < b.key[k]
		}
	}
	return a.id < b.id
}

func (pq keyPQ) Swap(i, j int) { pq[i], pq[j] = pq[j], pq[i] }

func (pq *keyPQ) Push(x interface{}) { *pq = append(*pq, x.(keyItem)) }

func (pq *keyPQ) Pop() interface{} {
	old := *pq
	n := len(old)
	it := old[n-1]
	*pq = old[:n-1]
	return it
}
