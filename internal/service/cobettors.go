package service

// normalizeCoBettors enforces set semantics on a co-bettor id list:
// duplicates collapse, the bettor and empty ids are dropped, order of
// first appearance is preserved.
func normalizeCoBettors(bettorID string, ids []string) []string {
	result := make([]string, 0, len(ids))
	seen := make(map[string]bool, len(ids))
	for _, id := range ids {
		if id == "" || id == bettorID || seen[id] {
			continue
		}
		seen[id] = true
		result = append(result, id)
	}
	return result
}

// equalIDSets compares two id lists as sets.
func equalIDSets(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	set := make(map[string]bool, len(a))
	for _, id := range a {
		set[id] = true
	}
	for _, id := range b {
		if !set[id] {
			return false
		}
	}
	return true
}
