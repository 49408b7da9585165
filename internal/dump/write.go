package dump

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// Write emits levels in dump format. Root points come first at depth zero,
// then each real level from the highest id down, every level one scope deeper
// than the previous. Levels without points are skipped, as the format has no
// way to declare them; for every other level, parsing the output yields
// levels again.
func Write(w io.Writer, levels Levels) error {
	bw := bufio.NewWriter(w)

	for _, p := range levels[RootLevel] {
		writePoint(bw, p)
	}

	ids := levels.IDs()
	depth := 0
	for i := len(ids) - 1; i >= 0; i-- {
		id := ids[i]
		if id == RootLevel || len(levels[id]) == 0 {
			continue
		}
		fmt.Fprintln(bw, openScope)
		depth++
		fmt.Fprintf(bw, "%s %d:\n", levelKeyword, id)
		for _, p := range levels[id] {
			writePoint(bw, p)
		}
	}
	if depth > 0 {
		fmt.Fprint(bw, strings.Repeat(closeScope+"\n", depth))
	}

	if err := bw.Flush(); err != nil {
		return fmt.Errorf("write dump: %w", err)
	}
	return nil
}

func writePoint(w *bufio.Writer, p Point) {
	w.WriteString(pointKeyword)
	w.WriteByte(' ')
	w.WriteString(strconv.FormatFloat(p.X, 'g', -1, 64))
	w.WriteByte(' ')
	w.WriteString(strconv.FormatFloat(p.Y, 'g', -1, 64))
	w.WriteByte('\n')
}
