package catalog

import "sort"

// Ancestors returns the transitive prerequisites of the quest with the given
// id in breadth-first order. Ids missing from quests are included but not
// expanded. Cycles are tolerated.
func Ancestors(quests []Quest, id string) []string {
	prev := make(map[string][]string, len(quests))
	for _, q := range quests {
		prev[q.ID] = q.PreviousQuestIDs
	}

	var out []string
	visited := map[string]bool{id: true}
	queue := append([]string(nil), prev[id]...)
	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		if visited[cur] {
			continue
		}
		visited[cur] = true
		out = append(out, cur)
		queue = append(queue, prev[cur]...)
	}
	return out
}

// Cycles reports prerequisite cycles. Each cycle is listed once, starting at
// its lexically smallest quest id.
func Cycles(quests []Quest) [][]string {
	prev := make(map[string][]string, len(quests))
	ids := make([]string, 0, len(quests))
	for _, q := range quests {
		prev[q.ID] = q.PreviousQuestIDs
		ids = append(ids, q.ID)
	}
	sort.Strings(ids)

	const (
		white = iota
		grey
		black
	)
	color := make(map[string]int, len(ids))
	seen := make(map[string]bool)
	var (
		cycles [][]string
		stack  []string
		visit  func(id string)
	)
	visit = func(id string) {
		color[id] = grey
		stack = append(stack, id)
		for _, p := range prev[id] {
			if _, known := prev[p]; !known {
				continue
			}
			switch color[p] {
			case white:
				visit(p)
			case grey:
				start := len(stack) - 1
				for stack[start] != p {
					start--
				}
				cycle := rotate(append([]string(nil), stack[start:]...))
				key := joinKey(cycle)
				if !seen[key] {
					seen[key] = true
					cycles = append(cycles, cycle)
				}
			}
		}
		stack = stack[:len(stack)-1]
		color[id] = black
	}

	for _, id := range ids {
		if color[id] == white {
			visit(id)
		}
	}
	return cycles
}

func rotate(cycle []string) []string {
	min := 0
	for i, id := range cycle {
		if id < cycle[min] {
			min = i
		}
	}
	return append(cycle[min:], cycle[:min]...)
}

func joinKey(ids []string) string {
	n := 0
	for _, id := range ids {
		n += len(id) + 1
	}
	b := make([]byte, 0, n)
	for _, id := range ids {
		b = append(b, id...)
		b = append(b, 0)
	}
	return string(b)
}
