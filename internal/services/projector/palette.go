// Package projector derives every on-screen view-model from a fetched payload
// and the current UI state. All functions are deterministic and perform no
// I/O; a render pass recomputes everything from scratch.
package projector

// segmentPalette is the fixed segment color cycle. Colors are assigned by
// ordinal position in the segments array: color = palette[i mod len]. The
// assignment is stable across re-renders as long as the segment order is
// stable; it is not tied to segment identity, so a reordered fetch can shift
// colors for the same segment name.
var segmentPalette = []string{
	"#00FF88", // primary green
	"#00D9FF", // cyan
	"#FF6B6B", // coral
	"#FF006E", // magenta
	"#3D5A80", // blue-gray
	"#FFB627", // amber
	"#8B5CF6", // purple
	"#10B981", // emerald
	"#F59E0B", // orange
	"#EC4899", // pink
	"#6366F1", // indigo
	"#14B8A6", // teal
	"#808080", // gray
}

// SegmentColor returns the palette color for an ordinal position.
func SegmentColor(index int) string {
	if index < 0 {
		index = 0
	}
	return segmentPalette[index%len(segmentPalette)]
}
