package grid

// Window returns the half-open range [start, end) of rows to render in a
// viewport of the given number of lines. The range starts at offset when
// possible, always contains cursor, and stops before the rows overflow the
// viewport. heightOf reports the rendered line count of row i; nil means one
// line per row.
func Window(count, cursor, offset, viewport int, heightOf func(i int) int) (start, end int) {
	if count <= 0 {
		return 0, 0
	}
	if heightOf == nil {
		heightOf = func(int) int { return 1 }
	}
	viewport = max(viewport, 1)
	cursor = min(max(cursor, 0), count-1)

	start = min(max(offset, 0), count-1)
	if cursor < start {
		start = cursor
	}

	// Scroll down until the cursor row fits below start.
	used := 0
	for i := start; i <= cursor; i++ {
		used += max(heightOf(i), 1)
	}
	for used > viewport && start < cursor {
		used -= max(heightOf(start), 1)
		start++
	}

	used = 0
	end = start
	for end < count {
		h := max(heightOf(end), 1)
		if used+h > viewport && end > cursor {
			break
		}
		used += h
		end++
		if used >= viewport && end > cursor {
			break
		}
	}
	return start, end
}
