package identity

// sequenceRatio measures the similarity of two strings as
// 2*M / (len(a)+len(b)), where M is the total number of characters covered
// by matching blocks found via recursive longest-common-substring search
// (the Ratcliff/Obershelp gestalt measure). The result is in [0, 1].
func sequenceRatio(a, b string) float64 {
	ra := []rune(a)
	rb := []rune(b)
	total := len(ra) + len(rb)
	if total == 0 {
		return 0
	}
	matched := matchingChars(ra, rb, 0, len(ra), 0, len(rb))
	return 2 * float64(matched) / float64(total)
}

// matchingChars counts characters in matching blocks between a[alo:ahi] and
// b[blo:bhi]: find the longest match, then recurse into the unmatched
// regions on either side.
func matchingChars(a, b []rune, alo, ahi, blo, bhi int) int {
	i, j, size := longestMatch(a, b, alo, ahi, blo, bhi)
	if size == 0 {
		return 0
	}
	return size +
		matchingChars(a, b, alo, i, blo, j) +
		matchingChars(a, b, i+size, ahi, j+size, bhi)
}

// longestMatch finds the longest matching block between a[alo:ahi] and
// b[blo:bhi], preferring the earliest occurrence in a, then in b.
func longestMatch(a, b []rune, alo, ahi, blo, bhi int) (besti, bestj, bestsize int) {
	b2j := make(map[rune][]int)
	for j := blo; j < bhi; j++ {
		b2j[b[j]] = append(b2j[b[j]], j)
	}

	besti, bestj = alo, blo
	j2len := make(map[int]int)

	for i := alo; i < ahi; i++ {
		newJ2len := make(map[int]int)
		for _, j := range b2j[a[i]] {
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
