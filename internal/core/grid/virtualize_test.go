package grid

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestWindow(t *testing.T) {
	tests := []struct {
		name      string
		count     int
		cursor    int
		offset    int
		viewport  int
		heights   map[int]int
		wantStart int
		wantEnd   int
	}{
		{name: "empty", count: 0, viewport: 5},
		{name: "fits", count: 3, cursor: 1, viewport: 5, wantEnd: 3},
		{name: "top", count: 20, cursor: 0, viewport: 5, wantEnd: 5},
		{name: "cursor below window scrolls", count: 20, cursor: 7, viewport: 5, wantStart: 3, wantEnd: 8},
		{name: "cursor above window scrolls", count: 20, cursor: 2, offset: 6, viewport: 5, wantStart: 2, wantEnd: 7},
		{name: "offset kept when cursor visible", count: 20, cursor: 8, offset: 6, viewport: 5, wantStart: 6, wantEnd: 11},
		{name: "cursor clamped", count: 4, cursor: 10, viewport: 2, wantStart: 2, wantEnd: 4},
		{
			name: "tall expanded row pushes window",
			count: 10, cursor: 3, viewport: 6,
			heights:   map[int]int{2: 4},
			wantStart: 1, wantEnd: 4,
		},
		{
			name: "expanded cursor row taller than viewport",
			count: 10, cursor: 4, offset: 0, viewport: 3,
			heights:   map[int]int{4: 8},
			wantStart: 4, wantEnd: 5,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var heightOf func(int) int
			if tt.heights != nil {
				heightOf = func(i int) int {
					if h, ok := tt.heights[i]; ok {
						return h
					}
					return 1
				}
			}
			start, end := Window(tt.count, tt.cursor, tt.offset, tt.viewport, heightOf)
			assert.Equal(t, tt.wantStart, start, "start")
			assert.Equal(t, tt.wantEnd, end, "end")
		})
	}
}
