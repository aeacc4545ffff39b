package gen

// chunkRNG is a linear congruential generator seeded from the world seed and
// a chunk column, so a column's features do not depend on which box is being
// filled. salt separates the streams of different features.
type chunkRNG struct {
	state int64
}

func newChunkRNG(seed int64, cx, cz int, salt int64) *chunkRNG {
	return &chunkRNG{state: seed ^ (int64(cx)*341873128712 + int64(cz)*132897987541 + salt)}
}

func (r *chunkRNG) next() int64 {
	r.state = r.state*6364136223846793005 + 1442695040888963407
	return r.state
}

// intn returns a value in [0, n).
func (r *chunkRNG) intn(n int) int {
	v := int(r.next()>>33) % n
	if v < 0 {
		v = -v
	}
	return v
}
