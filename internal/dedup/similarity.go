// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package dedup

// Similarity scores how alike two normalized titles are, in [0, 1].
// It is a sequence ratio over matching blocks (recursive longest common
// substring), combined with a best-window pass that scores the shorter
// title against aligned windows of the longer one. The window pass keeps
// a subtitle addition ("climate observatory" vs "climate observatory: a
// progress report") from drowning an otherwise near-exact match.
//
// Symmetric and reflexive: Similarity(a, b) == Similarity(b, a), and
// Similarity(a, a) == 1 for any non-empty a. When exactly one side is
// empty the score is 0.
func Similarity(a, b string) float64 {
	if a == b {
		return 1
	}
	if a == "" || b == "" {
		return 0
	}
	// Canonical argument order so tie-breaking inside the block search
	// cannot make the score order-dependent.
	if b < a {
		a, b = b, a
	}

	ra, rb := []rune(a), []rune(b)
	score := ratio(ra, rb)
	if p := windowRatio(ra, rb); p > score {
		score = p
	}
	return score
}

// ratio is 2*M/(len(a)+len(b)) where M is the total size of the matching
// blocks between a and b.
func ratio(a, b []rune) float64 {
	if len(a)+len(b) == 0 {
		return 1
	}
	total := 0
	for _, m := range matchingBlocks(a, b) {
		total += m.size
	}
	return 2 * float64(total) / float64(len(a)+len(b))
}

// windowRatio scores the shorter sequence against equally long windows of
// the longer one, anchored at each matching block, and returns the best.
func windowRatio(a, b []rune) float64 {
	if len(a) > len(b) {
		a, b = b, a
	}
	// A very short title sitting inside a much longer one is containment,
	// not near-duplication; fall back to the plain ratio there.
	if 2*len(a) < len(b) {
		return 0
	}
	best := 0.0
	for _, m := range matchingBlocks(a, b) {
		start := m.b - m.a
		if start < 0 {
			start = 0
		}
		end := start + len(a)
		if end > len(b) {
			end = len(b)
		}
		if r := ratio(a, b[start:end]); r > best {
			best = r
		}
	}
	return best
}

// block is a run of identical runes: a[a:a+size] == b[b:b+size].
type block struct {
	a, b, size int
}

// matchingBlocks decomposes the pair into non-overlapping matching runs
// by recursively taking the longest common substring and splitting around
// it. The blocks are returned in discovery order; only their sizes and
// anchors matter to the callers.
func matchingBlocks(a, b []rune) []block {
	type span struct {
		alo, ahi, blo, bhi int
	}
	queue := []span{{0, len(a), 0, len(b)}}
	var blocks []block

	for len(queue) > 0 {
		s := queue[len(queue)-1]
		queue = queue[:len(queue)-1]

		m := longestMatch(a, b, s.alo, s.ahi, s.blo, s.bhi)
		if m.size == 0 {
			continue
		}
		blocks = append(blocks, m)
		if s.alo < m.a && s.blo < m.b {
			queue = append(queue, span{s.alo, m.a, s.blo, m.b})
		}
		if m.a+m.size < s.ahi && m.b+m.size < s.bhi {
			queue = append(queue, span{m.a + m.size, s.ahi, m.b + m.size, s.bhi})
		}
	}
	return blocks
}

// longestMatch finds the longest run of identical runes within
// a[alo:ahi] and b[blo:bhi]. Ties go to the earliest position in a,
// then in b.
func longestMatch(a, b []rune, alo, ahi, blo, bhi int) block {
	b2j := make(map[rune][]int)
	for j := blo; j < bhi; j++ {
		b2j[b[j]] = append(b2j[b[j]], j)
	}

	best := block{a: alo, b: blo}
	runs := make(map[int]int) // j -> length of run ending at (i, j)
	for i := alo; i < ahi; i++ {
		next := make(map[int]int)
		for _, j := range b2j[a[i]] {
			k := runs[j-1] + 1
			next[j] = k
			if k > best.size {
				best = block{a: i - k + 1, b: j - k + 1, size: k}
			}
		}
		runs = next
	}
	return best
}
