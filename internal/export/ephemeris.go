package export

import (
	"encoding/csv"
	"encoding/json"
	"io"
	"strconv"
	"time"

	"github.com/san-kum/orrery/internal/catalog"
	"github.com/san-kum/orrery/internal/orbit"
)

// Row is one body at one instant. Position is ecliptic AU, Scene is the
// display-scaled position.
type Row struct {
	Time     time.Time  `json:"time"`
	ID       string     `json:"id"`
	Position [3]float64 `json:"position"`
	Distance float64    `json:"distance"`
	Scene    [3]float64 `json:"scene"`
}

type Ephemeris struct {
	Epoch       time.Time `json:"epoch"`
	ScaleFactor float64   `json:"scaleFactor"`
	Rows        []Row     `json:"rows"`
}

// Snapshot places every body at t. Bodies without orbital elements keep
// a zero ecliptic position and distance.
func Snapshot(table orbit.Table, t time.Time, scale float64) []Row {
	scene := catalog.ScenePositions(table, t, scale)
	ids := catalog.SortedIDs(scene)
	rows := make([]Row, 0, len(ids))
	for _, id := range ids {
		r := Row{Time: t.UTC(), ID: id}
		if el, ok := table[id]; ok {
			p := orbit.ComputePosition(el, t)
			r.Position = [3]float64{p.X, p.Y, p.Z}
			r.Distance = orbit.Distance(el, t)
		}
		s := scene[id]
		r.Scene = [3]float64{s.X, s.Y, s.Z}
		rows = append(rows, r)
	}
	return rows
}

// Sample snapshots every step from start, count times.
func Sample(table orbit.Table, start time.Time, step time.Duration, count int, scale float64) Ephemeris {
	e := Ephemeris{Epoch: start.UTC(), ScaleFactor: scale}
	t := start
	for i := 0; i < count; i++ {
		e.Rows = append(e.Rows, Snapshot(table, t, scale)...)
		t = t.Add(step)
	}
	return e
}

func WriteJSON(w io.Writer, e Ephemeris) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(e)
}

var csvHeader = []string{"time", "id", "x", "y", "z", "distance", "scene_x", "scene_y", "scene_z"}

func WriteCSV(w io.Writer, e Ephemeris) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(csvHeader); err != nil {
		return err
	}
	f := func(v float64) string { return strconv.FormatFloat(v, 'f', 6, 64) }
	for _, r := range e.Rows {
		record := []string{
			r.Time.UTC().Format(time.RFC3339),
			r.ID,
			f(r.Position[0]), f(r.Position[1]), f(r.Position[2]),
			f(r.Distance),
			f(r.Scene[0]), f(r.Scene[1]), f(r.Scene[2]),
		}
		if err := cw.Write(record); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}
