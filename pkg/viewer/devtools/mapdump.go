package devtools

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"worldmap/pkg/viewer/assets"
	"worldmap/pkg/viewer/mapview"
	"worldmap/pkg/viewer/tiles"
)

const viewDumpFilename = "view.txt"

// tileSymbol returns the single-character symbol for a tile's load state.
func tileSymbol(s assets.Status, visible bool) rune {
	switch s {
	case assets.StatusLoaded:
		if visible {
			return '#'
		}
		return '+'
	case assets.StatusLoading:
		return '~'
	case assets.StatusFailed:
		return 'x'
	default:
		if visible {
			return '?'
		}
		return '.'
	}
}

// DumpView writes a human-readable report of m: camera, tile grids,
// markers and quest hit records.
func DumpView(w io.Writer, m *mapview.MapView) {
	st := m.Status()
	vw, vh := m.Size()
	cam := m.Camera()

	fmt.Fprintln(w, "=== VIEW DUMP ===")
	fmt.Fprintln(w, "")
	fmt.Fprintln(w, "--- Camera ---")
	fmt.Fprintf(w, "viewport: %dx%d\n", vw, vh)
	fmt.Fprintf(w, "zoom_level: %d\n", st.ZoomLevel)
	fmt.Fprintf(w, "resolution: %d\n", st.Resolution)
	fmt.Fprintf(w, "camera_zoom: %.6f\n", cam.ZoomFactor())
	fmt.Fprintf(w, "scale: %.6f\n", st.Scale)
	fmt.Fprintf(w, "offset: %.2f,%.2f\n", st.Offset.X, st.Offset.Y)
	fmt.Fprintf(w, "animating: %t\n", st.Animating)
	fmt.Fprintf(w, "dragging: %t\n", st.Dragging)
	box := cam.View(vw, vh).WorldBox()
	fmt.Fprintf(w, "world_box: %.1f,%.1f - %.1f,%.1f\n", box.Min.X, box.Min.Y, box.Max.X, box.Max.Y)
	fmt.Fprintln(w, "")

	fmt.Fprintln(w, "--- Tiles ---")
	if st.Range.Empty() {
		fmt.Fprintln(w, "visible_range: none")
	} else {
		fmt.Fprintf(w, "visible_range: cols %d-%d rows %d-%d (%d tiles)\n",
			st.Range.MinCol, st.Range.MaxCol, st.Range.MinRow, st.Range.MaxRow, st.Range.Count())
	}
	fmt.Fprintf(w, "requested: %d\n", st.Requested)
	fmt.Fprintf(w, "loaded: %d\n", st.Loaded)
	fmt.Fprintf(w, "failed: %d\n", st.Failed)
	fmt.Fprintf(w, "in_flight: %d\n", st.InFlight)
	fmt.Fprintf(w, "pending_tiles: %s\n", listOrNone(pendingTiles(m)))
	fmt.Fprintf(w, "pending_icons: %s\n", listOrNone(pendingIcons(m)))
	fmt.Fprintln(w, "legend: # loaded+visible, + loaded, ~ loading, x failed, ? visible not requested, . not requested")

	levels := m.Tiles().Levels()
	order := make([]int, 0, len(levels))
	for level := range levels {
		order = append(order, level)
	}
	sort.Ints(order)
	for _, level := range order {
		fmt.Fprintf(w, "level %d (%d requested):\n", level, levels[level])
		for row := 0; row < level; row++ {
			for col := 0; col < level; col++ {
				visible := level == st.Resolution && st.Range.Contains(col, row)
				s := m.Tiles().Status(tiles.Key{Level: level, Col: col, Row: row})
				fmt.Fprintf(w, "%c", tileSymbol(s, visible))
			}
			fmt.Fprintln(w)
		}
	}
	fmt.Fprintln(w, "")

	fmt.Fprintln(w, "--- Markers ---")
	fmt.Fprintf(w, "drawn: %d\n", st.Markers)
	cfg := m.Config()
	for _, mk := range m.Data().Markers {
		if !mk.VisibleAt(st.ZoomLevel, cfg.MinZoomLevel, cfg.MaxZoomLevel) {
			continue
		}
		p := cam.WorldToScreen(mk.Pos())
		fmt.Fprintf(w, "marker: %s type=%s world=%.0f,%.0f screen=%.1f,%.1f\n", mk.Name, mk.Type, mk.X, mk.Y, p.X, p.Y)
	}
	fmt.Fprintln(w, "")

	fmt.Fprintln(w, "--- Quests ---")
	fmt.Fprintf(w, "hover_enabled: %t\n", st.Hover)
	fmt.Fprintf(w, "hit_records: %d\n", st.Hits)
	for _, h := range m.Overlay().Hits() {
		fmt.Fprintf(w, "hit: %s vertex=%d center=%.1f,%.1f radius=%.2f\n",
			h.Ref.Item.Name, h.Ref.Vertex, h.Path.Center.X, h.Path.Center.Y, h.Path.Radius)
	}
	if hov := m.Hovered(); len(hov) > 0 {
		r := m.Readout()
		fmt.Fprintf(w, "hovered_at: %s,%s\n", r.X, r.Y)
		for _, ref := range hov {
			fmt.Fprintf(w, "hovered: %s (%s)\n", ref.Item.Name, ref.Item.Giver)
		}
	}
}

// pendingTiles returns the outstanding tile loads ordered by level, row and
// column.
func pendingTiles(m *mapview.MapView) []string {
	var keys []tiles.Key
	m.Tiles().Pending(func(k tiles.Key) { keys = append(keys, k) })
	sort.Slice(keys, func(i, j int) bool {
		a, b := keys[i], keys[j]
		if a.Level != b.Level {
			return a.Level < b.Level
		}
		if a.Row != b.Row {
			return a.Row < b.Row
		}
		return a.Col < b.Col
	})
	out := make([]string, len(keys))
	for i, k := range keys {
		out[i] = k.String()
	}
	return out
}

func pendingIcons(m *mapview.MapView) []string {
	var names []string
	m.Icons().Pending(func(name string) { names = append(names, name) })
	sort.Strings(names)
	return names
}

func listOrNone(items []string) string {
	if len(items) == 0 {
		return "none"
	}
	return strings.Join(items, " ")
}

// WriteDumpFile writes DumpView output to view.txt in dir and returns its
// absolute path.
func WriteDumpFile(m *mapview.MapView, dir string) (string, error) {
	absPath, err := filepath.Abs(filepath.Join(dir, viewDumpFilename))
	if err != nil {
		return "", err
	}
	f, err := os.Create(absPath)
	if err != nil {
		return "", err
	}
	DumpView(f, m)
	if err := f.Close(); err != nil {
		return "", err
	}
	return absPath, nil
}
