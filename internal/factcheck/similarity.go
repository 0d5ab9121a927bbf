package factcheck

// Similarity computes a normalized similarity ratio between two strings in
// [0, 1]. It is the length of the longest common subsequence over the mean
// string length: 2*LCS/(len(a)+len(b)), the same normalization a standard
// sequence matcher uses. Comparison is case-sensitive and operates on runes.
// Either input being empty yields 0.
func Similarity(a, b string) float64 {
	ra := []rune(a)
	rb := []rune(b)
	if len(ra) == 0 || len(rb) == 0 {
		return 0
	}
	lcs := lcsLength(ra, rb)
	return 2 * float64(lcs) / float64(len(ra)+len(rb))
}

// lcsLength runs the standard O(len(a)*len(b)) dynamic program, keeping two
// rows since only the previous prefix row is ever consulted.
func lcsLength(a, b []rune) int {
	prev := make([]int, len(b)+1)
	curr := make([]int, len(b)+1)
	for i := 1; i <= len(a); i++ {
		for j := 1; j <= len(b); j++ {
			if a[i-1] == b[j-1] {
				curr[j] = prev[j-1] + 1
			} else if prev[j] >= curr[j-1] {
				curr[j] = prev[j]
			} else {
				curr[j] = curr[j-1]
			}
		}
		prev, curr = curr, prev
	}
	return prev[len(b)]
}
