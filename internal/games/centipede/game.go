package centipede

import (
	"errors"
	"fmt"
	"math/rand"
	"strings"

	"github.com/vovakirdan/centipede-arena/internal/config"
	"github.com/vovakirdan/centipede-arena/internal/core"
	"github.com/vovakirdan/centipede-arena/internal/registry"
)

// DefaultMatchup is the matchup used when none is named.
var DefaultMatchup = MatchupID(ShooterPredictive, CentipedeEvasive)

// errNotReset is returned by accessors used before Reset.
var errNotReset = errors.New("centipede: game used before Reset")

// Side identifies one of the two agents.
type Side string

const (
	SideShooter   Side = "shooter"
	SideCentipede Side = "centipede"
)

// Colors used when drawing each entity kind.
var entityColors = map[EntityKind]core.Color{
	EntityPlayer:   core.ColorBrightYellow,
	EntitySegment:  core.ColorBrightGreen,
	EntityMushroom: core.ColorOrange,
	EntityBullet:   core.ColorBrightWhite,
}

// MatchupID names a pairing of strategies, e.g. "predictive-vs-evasive".
func MatchupID(shooter ShooterStrategy, centipede CentipedeStrategy) string {
	return shooter.String() + "-vs-" + centipede.String()
}

// Game runs one matchup. Each tick the shooter decides, then the centipede
// decides, then Update advances the world.
type Game struct {
	cfg               config.Config
	shooterStrategy   ShooterStrategy
	centipedeStrategy CentipedeStrategy

	seed      int64
	rng       *rand.Rand
	state     *State
	shooter   *ShooterAgent
	centipede *CentipedeAgent
	tick      uint64
	paused    bool
}

// New creates a matchup. Call Reset before stepping.
func New(cfg config.Config, shooter ShooterStrategy, centipede CentipedeStrategy) *Game {
	return &Game{
		cfg:               cfg,
		shooterStrategy:   shooter,
		centipedeStrategy: centipede,
	}
}

func init() {
	for _, s := range ShooterStrategies() {
		for _, c := range CentipedeStrategies() {
			registry.Register(MatchupID(s, c), func(cfg config.Config) registry.Game {
				return New(cfg, s, c)
			})
		}
	}
}

// ID returns the matchup identifier.
func (g *Game) ID() string {
	return MatchupID(g.shooterStrategy, g.centipedeStrategy)
}

// Title returns the display name.
func (g *Game) Title() string {
	return fmt.Sprintf("%s Shooter vs %s Centipede",
		capitalize(g.shooterStrategy.String()), capitalize(g.centipedeStrategy.String()))
}

// Reset builds a fresh state and fresh agents from the runtime seed.
func (g *Game) Reset(rc core.RuntimeConfig) error {
	rng := rand.New(rand.NewSource(rc.Seed))
	state, err := NewState(g.cfg, rng)
	if err != nil {
		return err
	}

	g.seed = rc.Seed
	g.rng = rng
	g.state = state
	g.shooter = NewShooterAgent(g.shooterStrategy)
	g.centipede = NewCentipedeAgent(g.centipedeStrategy, rng, g.cfg.Agents.EvadeChance, g.cfg.Agents.EvadeCooldown)
	g.tick = 0
	g.paused = false
	return nil
}

// Step handles playback input and advances one tick unless paused.
// ActionStep advances a paused game by exactly one tick.
func (g *Game) Step(in core.InputFrame) core.StepResult {
	if g.state == nil {
		return core.StepResult{State: g.State()}
	}

	if in.Has(core.ActionPause) {
		g.paused = !g.paused
	}

	if g.state.GameOver {
		return core.StepResult{State: g.State()}
	}

	if g.paused && !in.Has(core.ActionStep) {
		return core.StepResult{State: g.State()}
	}

	g.Tick()
	return core.StepResult{State: g.State()}
}

// Tick runs one full turn: shooter, centipede, then the engine.
// It does nothing once the game is over.
func (g *Game) Tick() {
	if g.state == nil || g.state.GameOver {
		return
	}
	g.shooter.Decide(g.state)
	g.centipede.Decide(g.state)
	Update(g.state)
	g.tick++
}

// State returns the platform-facing summary.
func (g *Game) State() core.GameState {
	if g.state == nil {
		return core.GameState{}
	}
	st := core.GameState{
		Score:    g.state.Score,
		Tick:     g.tick,
		GameOver: g.state.GameOver,
		Paused:   g.paused,
	}
	if st.GameOver {
		st.Winner = string(g.Winner())
	}
	return st
}

// World exposes the underlying state. Callers must not mutate it.
func (g *Game) World() (*State, error) {
	if g.state == nil {
		return nil, errNotReset
	}
	return g.state, nil
}

// Board returns the current board projection.
func (g *Game) Board() Board {
	if g.state == nil {
		return NewBoard(0, 0)
	}
	return g.state.Board
}

// Seed returns the seed passed to the last Reset.
func (g *Game) Seed() int64 { return g.seed }

// Config returns the configuration the game was created with.
func (g *Game) Config() config.Config { return g.cfg }

// Winner reports which side won. The shooter wins only by destroying every
// segment; any other ending goes to the centipede.
func (g *Game) Winner() Side {
	if g.state != nil && g.state.ShooterWon() {
		return SideShooter
	}
	return SideCentipede
}

// Render draws the HUD, the bordered board and any overlay message.
func (g *Game) Render(dst *core.Screen) {
	dst.Clear()
	if g.state == nil {
		return
	}

	w, h := g.state.Width(), g.state.Height()
	frame := core.NewRect((dst.Width()-(w+2))/2, 1, w+2, h+2)
	if frame.X < 0 || frame.Bottom() > dst.Height() {
		dst.DrawTextCentered(dst.Height()/2, fmt.Sprintf("Terminal too small: need %dx%d", w+2, h+3))
		return
	}

	dst.DrawText(frame.X, 0, fmt.Sprintf("Score: %d  Tick: %d", g.state.Score, g.tick))
	dst.DrawBox(frame)

	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			kind := g.state.Board.At(x, y)
			if kind == EntityEmpty {
				continue
			}
			dst.SetColored(frame.X+1+x, frame.Y+1+y, kind.Rune(), entityColors[kind])
		}
	}

	switch {
	case g.state.GameOver:
		title := "CENTIPEDE WINS!"
		if g.Winner() == SideShooter {
			title = "SHOOTER WINS!"
		}
		drawCenteredMessage(dst, title, fmt.Sprintf("Score %d  |  R restart  Q quit", g.state.Score))
	case g.paused:
		drawCenteredMessage(dst, "PAUSED", "P resume  N step")
	}
}

// drawCenteredMessage draws a message box in the center of the screen.
func drawCenteredMessage(dst *core.Screen, title, subtitle string) {
	boxW := max(len(title), len(subtitle)) + 4
	boxH := 5
	box := core.NewRect((dst.Width()-boxW)/2, (dst.Height()-boxH)/2, boxW, boxH)

	dst.DrawRect(box, ' ')
	dst.DrawBox(box)
	dst.DrawText(box.X+(boxW-len(title))/2, box.Y+1, title)
	dst.DrawText(box.X+(boxW-len(subtitle))/2, box.Y+3, subtitle)
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

// ParseMatchupID splits an ID produced by MatchupID back into strategies.
func ParseMatchupID(id string) (ShooterStrategy, CentipedeStrategy, error) {
	shooterName, centipedeName, ok := strings.Cut(id, "-vs-")
	if !ok {
		return 0, 0, fmt.Errorf("centipede: malformed matchup %q", id)
	}
	s, err := ParseShooterStrategy(shooterName)
	if err != nil {
		return 0, 0, err
	}
	c, err := ParseCentipedeStrategy(centipedeName)
	if err != nil {
		return 0, 0, err
	}
	return s, c, nil
}
