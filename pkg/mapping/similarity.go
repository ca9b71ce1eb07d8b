package mapping

// similarityRatio computes a longest-common-subsequence-based similarity
// ratio in [0,1], equivalent to Python's difflib.SequenceMatcher.ratio()
// (the Ratcliff/Obershelp algorithm): find the longest matching block,
// recurse into the unmatched prefix and suffix, and report
// 2*sum(matching block sizes) / (len(a)+len(b)).
func similarityRatio(a, b string) float64 {
	ra, rb := []rune(a), []rune(b)
	if len(ra) == 0 && len(rb) == 0 {
		return 1.0
	}
	matches := matchingBlockTotal(ra, rb, 0, len(ra), 0, len(rb))
	return 2.0 * float64(matches) / float64(len(ra)+len(rb))
}

func matchingBlockTotal(a, b []rune, aLo, aHi, bLo, bHi int) int {
	ai, bj, size := longestMatch(a, b, aLo, aHi, bLo, bHi)
	if size == 0 {
		return 0
	}
	total := size
	if ai > aLo && bj > bLo {
		total += matchingBlockTotal(a, b, aLo, ai, bLo, bj)
	}
	if ai+size < aHi && bj+size < bHi {
		total += matchingBlockTotal(a, b, ai+size, aHi, bj+size, bHi)
	}
	return total
}

// longestMatch finds the longest common contiguous run between a[aLo:aHi]
// and b[bLo:bHi], returning its start indices and length.
func longestMatch(a, b []rune, aLo, aHi, bLo, bHi int) (besti, bestj, bestsize int) {
	b2j := make(map[rune][]int)
	for j := bLo; j < bHi; j++ {
		b2j[b[j]] = append(b2j[b[j]], j)
	}

	besti, bestj, bestsize = aLo, bLo, 0
	j2len := make(map[int]int)
	for i := aLo; i < aHi; i++ {
		newJ2len := make(map[int]int)
		for _, j := range b2j[a[i]] {
			if j < bLo {
				continue
			}
			if j >= bHi {
				break
			}
			k := j2len[j-1] + 1
			newJ2len[j] = k
			if k > bestsize {
				besti, bestj, bestsize = i-k+1, j-k+1, k
			}
		}
		j2len = newJ2len
	}
	return besti, bestj, bestsize
}
