package mpp

// MostProbablePath follows future[·] starting at start, appending states
// until one is revisited, and stops without including the revisiting
// step — the path is the cycle's basin, not the cycle itself re-entered.
func MostProbablePath(future map[int]int, start int) []int {
	seen := make(map[int]struct{})
	var path []int
	cur := start
	for {
		if _, ok := seen[cur]; ok {
			return path
		}
		seen[cur] = struct{}{}
		path = append(path, cur)
		cur = future[cur]
	}
}
