package bem

// Combine joins every parent selector with every suffix as
// parent + join + suffix. Suffixes vary slowest: the whole parent list is
// emitted for the first suffix, then for the second and so on, so
//
//	Combine([".Box-header", ".Box-content"], ["red", "important"], "__")
//
// yields .Box-header__red, .Box-content__red, .Box-header__important,
// .Box-content__important. No parents is treated as a single empty parent.
func Combine(parents, suffixes []string, join string) []string {
	if len(parents) == 0 {
		parents = []string{""}
	}
	out := make([]string, 0, len(parents)*len(suffixes))
	for _, s := range suffixes {
		for _, p := range parents {
			out = append(out, p+join+s)
		}
	}
	return out
}
