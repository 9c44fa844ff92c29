// Package replay records matches tick by tick to Parquet files and verifies
// that a recording still reproduces under the current engine.
package replay

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"

	"github.com/parquet-go/parquet-go"
	"github.com/parquet-go/parquet-go/compress/zstd"
	"gopkg.in/yaml.v3"

	"github.com/vovakirdan/centipede-arena/internal/config"
	"github.com/vovakirdan/centipede-arena/internal/core"
	"github.com/vovakirdan/centipede-arena/internal/games/centipede"
)

// Schema identifies the row layout written by this package.
const Schema = "centipede_tick_v1"

const (
	metaSchema  = "schema"
	metaMatchup = "matchup"
	metaSeed    = "seed"
	metaConfig  = "config"
)

// ErrEmpty is returned when a recording holds no ticks.
var ErrEmpty = errors.New("replay: recording is empty")

// Row is one tick of a recorded match. Positions are stored as parallel
// X/Y columns.
type Row struct {
	Tick      int64 `parquet:"tick"`
	Score     int32 `parquet:"score"`
	Direction int32 `parquet:"direction"`
	GameOver  bool  `parquet:"game_over"`

	PlayerX int32 `parquet:"player_x"`
	PlayerY int32 `parquet:"player_y"`

	SegmentX  []int32 `parquet:"segment_x"`
	SegmentY  []int32 `parquet:"segment_y"`
	MushroomX []int32 `parquet:"mushroom_x"`
	MushroomY []int32 `parquet:"mushroom_y"`
	BulletX   []int32 `parquet:"bullet_x"`
	BulletY   []int32 `parquet:"bullet_y"`
}

// RowFromSnapshot flattens a snapshot into a row.
func RowFromSnapshot(s centipede.Snapshot) Row {
	r := Row{
		Tick:      int64(s.Tick),
		Score:     int32(s.Score),
		Direction: int32(s.Direction),
		GameOver:  s.GameOver,
		PlayerX:   int32(s.Player.X),
		PlayerY:   int32(s.Player.Y),
	}
	r.SegmentX, r.SegmentY = splitPositions(s.Segments)
	r.MushroomX, r.MushroomY = splitPositions(s.Mushrooms)
	r.BulletX, r.BulletY = splitPositions(s.Bullets)
	return r
}

// Snapshot rebuilds the snapshot a row was recorded from.
func (r Row) Snapshot() centipede.Snapshot {
	return centipede.Snapshot{
		Tick:      uint64(r.Tick),
		Score:     int(r.Score),
		Direction: centipede.Direction(r.Direction),
		GameOver:  r.GameOver,
		Player:    centipede.Position{X: int(r.PlayerX), Y: int(r.PlayerY)},
		Segments:  joinPositions(r.SegmentX, r.SegmentY),
		Mushrooms: joinPositions(r.MushroomX, r.MushroomY),
		Bullets:   joinPositions(r.BulletX, r.BulletY),
	}
}

func splitPositions(ps []centipede.Position) (xs, ys []int32) {
	if len(ps) == 0 {
		return nil, nil
	}
	xs = make([]int32, len(ps))
	ys = make([]int32, len(ps))
	for i, p := range ps {
		xs[i], ys[i] = int32(p.X), int32(p.Y)
	}
	return xs, ys
}

func joinPositions(xs, ys []int32) []centipede.Position {
	n := min(len(xs), len(ys))
	if n == 0 {
		return nil
	}
	ps := make([]centipede.Position, n)
	for i := range n {
		ps[i] = centipede.Position{X: int(xs[i]), Y: int(ys[i])}
	}
	return ps
}

// Recording is a match header plus its ticks.
type Recording struct {
	MatchupID string
	Seed      int64
	Config    config.Config
	Rows      []Row
}

// Recorder accumulates ticks in memory until the match ends.
type Recorder struct {
	rec Recording
}

// NewRecorder starts a recording for one match.
func NewRecorder(matchupID string, seed int64, cfg config.Config) *Recorder {
	return &Recorder{rec: Recording{MatchupID: matchupID, Seed: seed, Config: cfg}}
}

// Record appends one tick.
func (r *Recorder) Record(s centipede.Snapshot) {
	r.rec.Rows = append(r.rec.Rows, RowFromSnapshot(s))
}

// Len returns the number of recorded ticks.
func (r *Recorder) Len() int { return len(r.rec.Rows) }

// Recording returns what has been recorded so far.
func (r *Recorder) Recording() *Recording { return &r.rec }

// WriteFile writes the recording to path with zstd compression. The file is
// written under a temporary name and renamed into place.
func (r *Recorder) WriteFile(path string) error {
	if len(r.rec.Rows) == 0 {
		return ErrEmpty
	}

	cfgYAML, err := yaml.Marshal(r.rec.Config)
	if err != nil {
		return fmt.Errorf("replay: encode config: %w", err)
	}

	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("replay: create output dir: %w", err)
		}
	}

	tmpPath := path + ".tmp"
	_ = os.Remove(tmpPath)

	if err := parquet.WriteFile(tmpPath, r.rec.Rows,
		parquet.Compression(&zstd.Codec{Level: zstd.SpeedBetterCompression}),
		parquet.KeyValueMetadata(metaSchema, Schema),
		parquet.KeyValueMetadata(metaMatchup, r.rec.MatchupID),
		parquet.KeyValueMetadata(metaSeed, strconv.FormatInt(r.rec.Seed, 10)),
		parquet.KeyValueMetadata(metaConfig, string(cfgYAML)),
	); err != nil {
		return fmt.Errorf("replay: write parquet: %w", err)
	}

	if err := os.Rename(tmpPath, path); err != nil {
		return fmt.Errorf("replay: rename parquet: %w", err)
	}
	return nil
}

// Load reads a recording written by WriteFile.
func Load(path string) (*Recording, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("replay: %w", err)
	}
	defer f.Close()

	stat, err := f.Stat()
	if err != nil {
		return nil, fmt.Errorf("replay: %w", err)
	}

	pf, err := parquet.OpenFile(f, stat.Size())
	if err != nil {
		return nil, fmt.Errorf("replay: open parquet: %w", err)
	}

	if schema, _ := pf.Lookup(metaSchema); schema != Schema {
		return nil, fmt.Errorf("replay: unsupported schema %q", schema)
	}

	rec := &Recording{Config: config.Default()}
	rec.MatchupID, _ = pf.Lookup(metaMatchup)

	seed, _ := pf.Lookup(metaSeed)
	if rec.Seed, err = strconv.ParseInt(seed, 10, 64); err != nil {
		return nil, fmt.Errorf("replay: bad seed %q: %w", seed, err)
	}

	cfgYAML, _ := pf.Lookup(metaConfig)
	if err := yaml.Unmarshal([]byte(cfgYAML), &rec.Config); err != nil {
		return nil, fmt.Errorf("replay: decode config: %w", err)
	}

	reader := parquet.NewGenericReader[Row](pf)
	defer reader.Close()

	rec.Rows = make([]Row, 0, int(reader.NumRows()))
	buf := make([]Row, 256)
	for {
		n, err := reader.Read(buf)
		rec.Rows = append(rec.Rows, buf[:n]...)
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("replay: read rows: %w", err)
		}
	}

	if len(rec.Rows) == 0 {
		return nil, ErrEmpty
	}
	return rec, nil
}

// Divergence describes the first tick where a re-simulation disagrees with
// the recording.
type Divergence struct {
	Index int
	Want  centipede.Snapshot
	Got   centipede.Snapshot
}

func (d *Divergence) Error() string {
	return fmt.Sprintf("replay: diverged at row %d (recorded tick %d, simulated tick %d)",
		d.Index, d.Want.Tick, d.Got.Tick)
}

// Verify re-runs the recorded match from its seed and compares every tick.
// It returns a *Divergence error at the first mismatch.
func Verify(rec *Recording) error {
	if len(rec.Rows) == 0 {
		return ErrEmpty
	}

	s, c, err := centipede.ParseMatchupID(rec.MatchupID)
	if err != nil {
		return fmt.Errorf("replay: %w", err)
	}

	g := centipede.New(rec.Config, s, c)
	if err := g.Reset(core.RuntimeConfig{Seed: rec.Seed}); err != nil {
		return fmt.Errorf("replay: %w", err)
	}

	for i, row := range rec.Rows {
		if i > 0 {
			g.Tick()
		}
		want, got := row.Snapshot(), g.Snapshot()
		if !want.Equal(got) {
			return &Divergence{Index: i, Want: want, Got: got}
		}
	}
	return nil
}
