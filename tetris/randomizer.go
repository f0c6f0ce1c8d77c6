package tetris

import "math/rand/v2"

// BagSize is the number of pieces in one randomizer batch.
const BagSize = len(PieceTypes)

// Randomizer produces batches of piece types. Every batch must be a
// permutation of PieceTypes.
type Randomizer interface {
	NextBatch() [BagSize]PieceType
}

// ShuffleRandomizer is the 7-bag randomizer: each batch is a uniform shuffle
// of the seven types.
type ShuffleRandomizer struct {
	rng *rand.Rand
}

// NewShuffleRandomizer returns a bag randomizer seeded with seed. Equal seeds
// yield equal sequences.
func NewShuffleRandomizer(seed uint64) *ShuffleRandomizer {
	return &ShuffleRandomizer{
		rng: rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15)),
	}
}

// NextBatch implements Randomizer.
func (r *ShuffleRandomizer) NextBatch() [BagSize]PieceType {
	batch := PieceTypes
	r.rng.Shuffle(len(batch), func(i, j int) {
		batch[i], batch[j] = batch[j], batch[i]
	})
	return batch
}

// ScriptedRandomizer replays Batches in order, starting over after the last
// one. With no batches it returns PieceTypes in their fixed order.
type ScriptedRandomizer struct {
	Batches [][BagSize]PieceType
	next    int
}

// NextBatch implements Randomizer.
func (r *ScriptedRandomizer) NextBatch() [BagSize]PieceType {
	if len(r.Batches) == 0 {
		return PieceTypes
	}
	batch := r.Batches[r.next%len(r.Batches)]
	r.next++
	return batch
}

// Queue hands out piece types batch by batch. It keeps the batch after the
// current one drawn so previews can look across a bag boundary; a new batch
// is requested from the Randomizer exactly when the current one runs out.
type Queue struct {
	rand     Randomizer
	current  [BagSize]PieceType
	upcoming [BagSize]PieceType
	index    int
}

// NewQueue draws the first two batches from r.
func NewQueue(r Randomizer) *Queue {
	q := &Queue{rand: r}
	q.current = r.NextBatch()
	q.upcoming = r.NextBatch()
	return q
}

// Peek returns the type that the next Advance will consume.
func (q *Queue) Peek() PieceType {
	return q.current[q.index]
}

// Advance consumes the head of the queue.
func (q *Queue) Advance() {
	q.index++
	if q.index == BagSize {
		q.current = q.upcoming
		q.upcoming = q.rand.NextBatch()
		q.index = 0
	}
}

// Pop returns the head of the queue and consumes it.
func (q *Queue) Pop() PieceType {
	t := q.Peek()
	q.Advance()
	return t
}

// Preview returns up to n upcoming types, head first. n is capped at BagSize.
func (q *Queue) Preview(n int) []PieceType {
	n = min(max(n, 0), BagSize)
	out := make([]PieceType, 0, n)
	for i := q.index; i < q.index+n; i++ {
		if i < BagSize {
			out = append(out, q.current[i])
		} else {
			out = append(out, q.upcoming[i-BagSize])
		}
	}
	return out
}

// Index is the position of the head within the current batch.
func (q *Queue) Index() int {
	return q.index
}
