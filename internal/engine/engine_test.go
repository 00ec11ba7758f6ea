package engine

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/vovakirdan/console-flappy/internal/core"
	"github.com/vovakirdan/console-flappy/internal/engine/enginetest"
)

// fakeGame runs each round for a fixed number of frames and replays as many
// times as answers allow.
type fakeGame struct {
	frames    int // Frames per round
	answers   []PlayAgain
	beginErr  error
	updateErr error
	renderErr error

	resets   int
	begins   int
	ends     int
	updates  int
	renders  int
	ticks    []Tick
	commands [][]core.InputCommand
	left     int
}

func (g *fakeGame) Reset() {
	g.resets++
	g.left = g.frames
}

func (g *fakeGame) Begin(h Host) error {
	g.begins++
	return g.beginErr
}

func (g *fakeGame) Update(t Tick) (bool, error) {
	g.updates++
	if g.updateErr != nil {
		return false, g.updateErr
	}
	g.ticks = append(g.ticks, t)
	g.commands = append(g.commands, append([]core.InputCommand(nil), t.Commands...))
	g.left--
	return g.left > 0, nil
}

func (g *fakeGame) Render(buf *core.FrameBuffer) error {
	g.renders++
	if g.renderErr != nil {
		return g.renderErr
	}
	buf.Set(0, 0, '@', core.Fg(core.ColorYellow))
	return nil
}

func (g *fakeGame) End(h Host) PlayAgain {
	g.ends++
	if len(g.answers) == 0 {
		return PlayAgainNo
	}
	a := g.answers[0]
	g.answers = g.answers[1:]
	return a
}

// stepClock advances by step on every call.
func stepClock(step time.Duration) func() time.Time {
	t := time.Unix(0, 0)
	return func() time.Time {
		t = t.Add(step)
		return t
	}
}

func newTestEngine(t *testing.T, con *enginetest.Console, g Game) *Engine {
	t.Helper()
	e := New("Test", 20, 10, con, g,
		WithClock(stepClock(100*time.Millisecond)),
		WithIdleInterval(0),
	)
	if err := e.Initialize(); err != nil {
		t.Fatalf("Initialize failed: %v", err)
	}
	return e
}

func TestInitialize(t *testing.T) {
	con := enginetest.New()
	e := New("Flappy Bird", 120, 30, con, &fakeGame{frames: 1})

	if e.State() != StateUninitialized {
		t.Errorf("new engine state = %s, expected uninitialized", e.State())
	}

	if err := e.Initialize(); err != nil {
		t.Fatalf("Initialize failed: %v", err)
	}
	if e.State() != StateInitialized {
		t.Errorf("state = %s, expected initialized", e.State())
	}
	if !con.Opened || con.Title != "Flappy Bird" || con.Width != 120 || con.Height != 30 {
		t.Errorf("console opened=%v title=%q size=%dx%d", con.Opened, con.Title, con.Width, con.Height)
	}
	if e.Buffer().Len() != 120*30 {
		t.Errorf("buffer len = %d, expected %d", e.Buffer().Len(), 120*30)
	}
	if con.Writes != 1 {
		t.Errorf("expected one blank frame on initialize, got %d writes", con.Writes)
	}
	for i, c := range con.Last {
		if c.Glyph != core.Blank || c.Attr != 0 {
			t.Fatalf("cell %d not blank after initialize: %+v", i, c)
		}
	}

	if err := e.Initialize(); err == nil {
		t.Error("second Initialize should fail")
	}
}

func TestInitializeOpenFailure(t *testing.T) {
	con := enginetest.New()
	con.OpenErr = errors.New("no console")
	e := New("Test", 20, 10, con, &fakeGame{})

	err := e.Initialize()
	if err == nil {
		t.Fatal("expected Initialize to fail")
	}
	if !errors.Is(err, con.OpenErr) {
		t.Errorf("error should wrap the open failure, got %v", err)
	}
	if e.State() != StateUninitialized {
		t.Errorf("state = %s, expected uninitialized", e.State())
	}
	if err := e.Close(); err != nil {
		t.Errorf("Close on uninitialized engine should be a no-op, got %v", err)
	}
	if con.Closed {
		t.Error("Close should not touch a console that never opened")
	}
}

func TestInitializeInvalidSize(t *testing.T) {
	for _, size := range [][2]int{{0, 10}, {10, 0}, {-1, 5}} {
		e := New("Test", size[0], size[1], enginetest.New(), &fakeGame{})
		if err := e.Initialize(); err == nil {
			t.Errorf("Initialize with %dx%d should fail", size[0], size[1])
		}
	}
}

func TestRunBeforeInitialize(t *testing.T) {
	e := New("Test", 20, 10, enginetest.New(), &fakeGame{})
	if err := e.Run(context.Background()); !errors.Is(err, ErrNotInitialized) {
		t.Errorf("Run before Initialize = %v, expected ErrNotInitialized", err)
	}
}

func TestRunSingleRound(t *testing.T) {
	con := enginetest.New()
	g := &fakeGame{frames: 3}
	e := newTestEngine(t, con, g)

	if err := e.Run(context.Background()); err != nil {
		t.Fatalf("Run failed: %v", err)
	}

	if g.begins != 1 || g.resets != 1 || g.ends != 1 {
		t.Errorf("begins=%d resets=%d ends=%d, expected 1 each", g.begins, g.resets, g.ends)
	}
	if g.updates != 3 || g.renders != 3 {
		t.Errorf("updates=%d renders=%d, expected 3 each", g.updates, g.renders)
	}
	// One blank frame from Initialize plus one per rendered frame
	if con.Writes != 4 {
		t.Errorf("writes = %d, expected 4", con.Writes)
	}
	if con.Cell(0, 0).Glyph != '@' {
		t.Errorf("last frame should carry the rendered glyph, got %q", con.Cell(0, 0).Glyph)
	}
	if e.State() != StateTerminated {
		t.Errorf("state = %s, expected terminated", e.State())
	}
	if e.Rounds() != 1 {
		t.Errorf("rounds = %d, expected 1", e.Rounds())
	}
}

func TestRunFrameTiming(t *testing.T) {
	con := enginetest.New()
	g := &fakeGame{frames: 2}
	e := newTestEngine(t, con, g)

	if err := e.Run(context.Background()); err != nil {
		t.Fatalf("Run failed: %v", err)
	}

	for i, tick := range g.ticks {
		if tick.DT < 0.0999 || tick.DT > 0.1001 {
			t.Errorf("tick %d: dt = %f, expected 0.1", i, tick.DT)
		}
		if tick.FPS < 9.99 || tick.FPS > 10.01 {
			t.Errorf("tick %d: fps = %f, expected 10", i, tick.FPS)
		}
	}
}

func TestRunZeroDeltaReportsZeroFPS(t *testing.T) {
	con := enginetest.New()
	g := &fakeGame{frames: 1}
	fixed := time.Unix(100, 0)
	e := New("Test", 20, 10, con, g, WithClock(func() time.Time { return fixed }))
	if err := e.Initialize(); err != nil {
		t.Fatal(err)
	}

	if err := e.Run(context.Background()); err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	if g.ticks[0].DT != 0 || g.ticks[0].FPS != 0 {
		t.Errorf("dt=%f fps=%f, expected 0 and 0", g.ticks[0].DT, g.ticks[0].FPS)
	}
}

func TestRunReplay(t *testing.T) {
	con := enginetest.New()
	g := &fakeGame{frames: 2, answers: []PlayAgain{PlayAgainYes, PlayAgainYes, PlayAgainNo}}
	e := newTestEngine(t, con, g)

	if err := e.Run(context.Background()); err != nil {
		t.Fatalf("Run failed: %v", err)
	}

	if g.begins != 1 {
		t.Errorf("Begin should run once, ran %d times", g.begins)
	}
	if g.resets != 3 || g.ends != 3 {
		t.Errorf("resets=%d ends=%d, expected 3 each", g.resets, g.ends)
	}
	if e.Rounds() != 3 {
		t.Errorf("rounds = %d, expected 3", e.Rounds())
	}
	if g.updates != 6 {
		t.Errorf("updates = %d, expected 6", g.updates)
	}
}

func TestRunQuitFromBegin(t *testing.T) {
	con := enginetest.New()
	g := &fakeGame{frames: 1, beginErr: ErrQuit}
	e := newTestEngine(t, con, g)

	if err := e.Run(context.Background()); err != nil {
		t.Fatalf("ErrQuit from Begin should end cleanly, got %v", err)
	}
	if g.resets != 0 || g.updates != 0 {
		t.Errorf("no round should start, resets=%d updates=%d", g.resets, g.updates)
	}
	if e.State() != StateTerminated {
		t.Errorf("state = %s, expected terminated", e.State())
	}
}

func TestRunBeginFailure(t *testing.T) {
	boom := errors.New("boom")
	e := newTestEngine(t, enginetest.New(), &fakeGame{frames: 1, beginErr: boom})

	err := e.Run(context.Background())
	if !errors.Is(err, boom) {
		t.Fatalf("expected begin error, got %v", err)
	}
}

func TestRunFailures(t *testing.T) {
	boom := errors.New("boom")

	tests := []struct {
		name   string
		setup  func(con *enginetest.Console, g *fakeGame)
		prefix string
	}{
		{
			name:   "pending",
			setup:  func(con *enginetest.Console, g *fakeGame) { con.PendingErr = boom },
			prefix: "engine: input:",
		},
		{
			name: "read",
			setup: func(con *enginetest.Console, g *fakeGame) {
				con.QueueKeys('w')
				con.ReadErr = boom
			},
			prefix: "engine: input:",
		},
		{
			name:   "update",
			setup:  func(con *enginetest.Console, g *fakeGame) { g.updateErr = boom },
			prefix: "engine: update:",
		},
		{
			name:   "render",
			setup:  func(con *enginetest.Console, g *fakeGame) { g.renderErr = boom },
			prefix: "engine: render:",
		},
		{
			name: "flush",
			setup: func(con *enginetest.Console, g *fakeGame) {
				con.WriteErr = boom
				con.FailWrite = 2
			},
			prefix: "engine: render:",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			con := enginetest.New()
			g := &fakeGame{frames: 5}
			e := newTestEngine(t, con, g)
			tc.setup(con, g)

			err := e.Run(context.Background())
			if err == nil {
				t.Fatal("expected Run to fail")
			}
			if !errors.Is(err, boom) {
				t.Errorf("error should wrap the cause, got %v", err)
			}
			if !strings.HasPrefix(err.Error(), tc.prefix) {
				t.Errorf("error %q should start with %q", err, tc.prefix)
			}
			if g.ends != 0 {
				t.Error("End should not run after a failure")
			}
			if e.State() != StateTerminated {
				t.Errorf("state = %s, expected terminated", e.State())
			}
		})
	}
}

func TestRunContextCanceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	g := &fakeGame{frames: 100}
	e := newTestEngine(t, enginetest.New(), g)

	if err := e.Run(ctx); !errors.Is(err, context.Canceled) {
		t.Errorf("expected context.Canceled, got %v", err)
	}
	if g.updates != 0 {
		t.Errorf("updates = %d, expected none", g.updates)
	}
}

func TestRunDeliversCommandsPerFrame(t *testing.T) {
	con := enginetest.New()
	con.Queue(core.KeyDown(' '), core.KeyDown('q'))
	con.QueueIdle(1)
	con.Queue(core.VirtualKeyDown(core.VKUp))

	g := &fakeGame{frames: 3}
	e := newTestEngine(t, con, g)

	if err := e.Run(context.Background()); err != nil {
		t.Fatalf("Run failed: %v", err)
	}

	want := [][]core.InputCommand{
		{core.CommandJump, core.CommandQuit},
		{},
		{core.CommandUp},
	}
	if len(g.commands) != len(want) {
		t.Fatalf("got %d frames of commands, expected %d", len(g.commands), len(want))
	}
	for i := range want {
		if !equalCommands(g.commands[i], want[i]) {
			t.Errorf("frame %d: commands = %v, expected %v", i, g.commands[i], want[i])
		}
	}
}

func TestPollDropsNoneAndUndefined(t *testing.T) {
	con := enginetest.New()
	e := newTestEngine(t, con, &fakeGame{})

	con.Queue(
		core.KeyEvent{Down: false, Char: 'q'}, // key-up
		core.KeyDown('x'),                     // unmapped
		core.KeyEvent{Down: true},             // neither char nor virtual key
		core.KeyDown('d'),
		core.VirtualKeyDown(core.VKEscape),
	)

	if err := e.Poll(); err != nil {
		t.Fatalf("Poll failed: %v", err)
	}
	want := []core.InputCommand{core.CommandRight, core.CommandQuit}
	if !equalCommands(e.Commands(), want) {
		t.Errorf("commands = %v, expected %v", e.Commands(), want)
	}

	// Nothing pending clears the previous frame's commands
	if err := e.Poll(); err != nil {
		t.Fatalf("Poll failed: %v", err)
	}
	if len(e.Commands()) != 0 {
		t.Errorf("commands should be cleared, got %v", e.Commands())
	}
}

func TestPollFailureClearsCommands(t *testing.T) {
	con := enginetest.New()
	e := newTestEngine(t, con, &fakeGame{})

	con.QueueKeys('w')
	if err := e.Poll(); err != nil {
		t.Fatalf("Poll failed: %v", err)
	}
	if len(e.Commands()) != 1 {
		t.Fatalf("expected one command, got %v", e.Commands())
	}

	con.QueueKeys('s')
	con.ReadErr = errors.New("read failed")
	if err := e.Poll(); err == nil {
		t.Fatal("expected Poll to fail")
	}
	if len(e.Commands()) != 0 {
		t.Errorf("commands should be discarded on failure, got %v", e.Commands())
	}
}

func TestDrawText(t *testing.T) {
	con := enginetest.New()
	e := newTestEngine(t, con, &fakeGame{})

	e.DrawText("Score: 7", 2, 3)
	if err := e.Flush(); err != nil {
		t.Fatalf("Flush failed: %v", err)
	}
	if got := con.Row(2)[3:11]; got != "Score: 7" {
		t.Errorf("row 2 = %q, expected text at column 3", got)
	}
	if con.Cell(2, 3).Attr.Color() != core.ColorWhite {
		t.Errorf("text color = %v, expected white", con.Cell(2, 3).Attr.Color())
	}
}

func TestDrawTextOverrunPanics(t *testing.T) {
	e := newTestEngine(t, enginetest.New(), &fakeGame{})

	defer func() {
		if recover() == nil {
			t.Error("writing past the end of the buffer should panic")
		}
	}()
	e.DrawText("overflow", 9, 15)
}

func TestSuspend(t *testing.T) {
	con := enginetest.New()
	e := newTestEngine(t, con, &fakeGame{})

	called := false
	err := e.Suspend(func() error {
		called = true
		if con.Suspended != 1 || con.Resumed != 0 {
			t.Errorf("console should be suspended while fn runs")
		}
		return nil
	})
	if err != nil {
		t.Fatalf("Suspend failed: %v", err)
	}
	if !called {
		t.Error("fn was not called")
	}
	if con.Resumed != 1 {
		t.Errorf("console resumed %d times, expected 1", con.Resumed)
	}

	boom := errors.New("boom")
	if err := e.Suspend(func() error { return boom }); !errors.Is(err, boom) {
		t.Errorf("Suspend should return fn's error, got %v", err)
	}
	if con.Resumed != 2 {
		t.Error("console should resume even when fn fails")
	}
}

func TestClose(t *testing.T) {
	con := enginetest.New()
	e := newTestEngine(t, con, &fakeGame{})

	e.DrawText("junk", 0, 0)
	if err := e.Flush(); err != nil {
		t.Fatal(err)
	}

	if err := e.Close(); err != nil {
		t.Fatalf("Close failed: %v", err)
	}
	if !con.Closed {
		t.Error("console should be released")
	}
	if con.Row(0) != strings.Repeat(" ", 20) {
		t.Errorf("display should be blank after Close, row 0 = %q", con.Row(0))
	}
	if e.State() != StateTerminated {
		t.Errorf("state = %s, expected terminated", e.State())
	}

	writes := con.Writes
	if err := e.Close(); err != nil {
		t.Errorf("second Close should be a no-op, got %v", err)
	}
	if con.Writes != writes {
		t.Error("second Close should not write")
	}
}

func TestStateString(t *testing.T) {
	tests := []struct {
		s    State
		want string
	}{
		{StateUninitialized, "uninitialized"},
		{StateInitialized, "initialized"},
		{StateRunning, "running"},
		{StateRoundEnded, "round-ended"},
		{StateTerminated, "terminated"},
		{State(99), "unknown"},
	}
	for _, tc := range tests {
		if got := tc.s.String(); got != tc.want {
			t.Errorf("State(%d).String() = %q, expected %q", int(tc.s), got, tc.want)
		}
	}
}

func equalCommands(a, b []core.InputCommand) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
