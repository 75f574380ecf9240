package series

import (
	"encoding/csv"
	"encoding/json"
	"io"
	"strconv"

	"github.com/matzehuels/depscope/pkg/errors"
)

// WriteCSV emits the series with a header row, one point per line.
func WriteCSV(w io.Writer, points []Point) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"rank", "node_id", "node_name", "node_deps", "cumulative"}); err != nil {
		return errors.Wrap(errors.ErrCodeInternal, err, "writing csv header")
	}
	for _, p := range points {
		row := []string{
			strconv.Itoa(p.Rank),
			p.NodeID,
			p.NodeName,
			strconv.Itoa(p.NodeDeps),
			strconv.Itoa(p.Cumulative),
		}
		if err := cw.Write(row); err != nil {
			return errors.Wrap(errors.ErrCodeInternal, err, "writing csv row")
		}
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		return errors.Wrap(errors.ErrCodeInternal, err, "flushing csv")
	}
	return nil
}

// WriteJSON emits the series as an indented JSON array.
func WriteJSON(w io.Writer, points []Point) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(points); err != nil {
		return errors.Wrap(errors.ErrCodeInternal, err, "encoding series")
	}
	return nil
}
