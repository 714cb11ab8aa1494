package requirements

// Adjust moves the collected total of item by delta, clamped to
// [-TotalCollected, TotalRequired-TotalCollected]. Units are placed one at a
// time: increments fill the first row below its cap, decrements drain the
// last row holding anything. It returns the updated item and the rows whose
// collected count changed, in row order. A zero effective delta returns the
// item unchanged and no rows.
func Adjust(item Item, delta int) (Item, []Row) {
	out := item
	out.Rows = append([]Row(nil), item.Rows...)
	out.recount()

	step := clamp(delta, -out.TotalCollected, out.TotalRequired-out.TotalCollected)
	if step == 0 {
		return out, nil
	}

	changed := make([]bool, len(out.Rows))
	for ; step > 0; step-- {
		for i := range out.Rows {
			if out.Rows[i].Collected < out.Rows[i].RequiredCount {
				out.Rows[i].Collected++
				changed[i] = true
				break
			}
		}
	}
	for ; step < 0; step++ {
		for i := len(out.Rows) - 1; i >= 0; i-- {
			if out.Rows[i].Collected > 0 {
				out.Rows[i].Collected--
				changed[i] = true
				break
			}
		}
	}

	out.recount()

	var rows []Row
	for i, c := range changed {
		if c && out.Rows[i].Collected != clamp(item.Rows[i].Collected, 0, item.Rows[i].RequiredCount) {
			rows = append(rows, out.Rows[i])
		}
	}
	return out, rows
}

// MarkAll sets every row of item to fully collected or to zero.
func MarkAll(item Item, found bool) (Item, []Row) {
	cur := item
	cur.Rows = append([]Row(nil), item.Rows...)
	cur.recount()
	if found {
		return Adjust(item, cur.TotalRequired-cur.TotalCollected)
	}
	return Adjust(item, -cur.TotalCollected)
}
