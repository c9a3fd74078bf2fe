package main

import (
	goerrors "errors"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"

	"github.com/chzyer/readline"
	"golang.org/x/term"

	"github.com/lgbarn/chess-rules-go/internal/chess"
	"github.com/lgbarn/chess-rules-go/internal/config"
	"github.com/lgbarn/chess-rules-go/internal/engine"
	"github.com/lgbarn/chess-rules-go/internal/game"
	"github.com/lgbarn/chess-rules-go/internal/output"
	"github.com/lgbarn/chess-rules-go/internal/snapshot"
)

// command is one REPL command.
type command struct {
	name      string
	shortName string
	usage     string
	help      string
	handler   func(s *session, args []string) error
}

// errQuit ends the session.
var errQuit = goerrors.New("quit")

// session is the state of an interactive game.
type session struct {
	cfg      *config.Config
	out      io.Writer
	tracker  *game.Tracker
	colour   bool
	commands map[string]*command
	names    []string
}

// newSession starts a session from cfg.StartFEN.
func newSession(cfg *config.Config, out io.Writer, colour bool) (*session, error) {
	s := &session{cfg: cfg, out: out, colour: colour, commands: make(map[string]*command)}
	if err := s.reset(cfg.StartFEN); err != nil {
		return nil, err
	}

	s.register(&command{"help", "?", "help", "Show commands", (*session).cmdHelp})
	s.register(&command{"board", "b", "board", "Show the board", (*session).cmdBoard})
	s.register(&command{"moves", "m", "moves [square]", "List legal moves", (*session).cmdMoves})
	s.register(&command{"touch", "t", "touch <square>", "Touch a piece (binding with -touchmove)", (*session).cmdTouch})
	s.register(&command{"fen", "f", "fen", "Show the position as FEN", (*session).cmdFEN})
	s.register(&command{"undo", "u", "undo", "Take back the last move", (*session).cmdUndo})
	s.register(&command{"result", "r", "result", "Show whether the game is over", (*session).cmdResult})
	s.register(&command{"history", "h", "history", "Show the moves played", (*session).cmdHistory})
	s.register(&command{"new", "n", "new [fen]", "Start a new game", (*session).cmdNew})
	s.register(&command{"save", "", "save <file>", "Save the game as a JSON snapshot", (*session).cmdSave})
	s.register(&command{"load", "", "load <file>", "Load a JSON snapshot", (*session).cmdLoad})
	s.register(&command{"quit", "x", "quit", "Leave", func(*session, []string) error { return errQuit }})
	return s, nil
}

func (s *session) register(c *command) {
	s.commands[c.name] = c
	if c.shortName != "" {
		s.commands[c.shortName] = c
	}
	s.names = append(s.names, c.name)
}

func (s *session) reset(fen string) error {
	opts := []game.Option{game.WithTouchMove(s.cfg.Play.TouchMove)}
	if fen == "" {
		s.tracker = game.NewTracker(opts...)
		return nil
	}
	t, err := game.NewTrackerFromFEN(fen, opts...)
	if err != nil {
		return err
	}
	s.tracker = t
	return nil
}

// prompt shows the side to move and the move number.
func (s *session) prompt() string {
	state := s.tracker.State()
	return fmt.Sprintf("[%s %d] %s", strings.ToLower(state.ToMove.String()), state.FullmoveNumber, s.cfg.Play.Prompt)
}

// execute runs one input line. Anything that is not a command is played as
// a move. It returns errQuit when the session should end; other errors are
// reported to the user and the session continues.
func (s *session) execute(line string) error {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return nil
	}
	if c, ok := s.commands[strings.ToLower(fields[0])]; ok {
		return c.handler(s, fields[1:])
	}
	if len(fields) > 1 {
		return fmt.Errorf("unknown command %q; type help", fields[0])
	}
	return s.play(fields[0])
}

func (s *session) play(text string) error {
	tr, san, err := s.tracker.Play(text)
	if err != nil {
		return err
	}
	fmt.Fprintf(s.out, "%s\n", san)
	if s.cfg.Output.ShowBoard {
		renderBoard(s.out, tr.Position, s.colour, tr.Move.From, tr.Move.To)
	}
	if o := s.tracker.Result(); o.Over {
		fmt.Fprintf(s.out, "Game over: %s\n", o)
	}
	return nil
}

func (s *session) cmdHelp(args []string) error {
	for _, name := range s.names {
		c := s.commands[name]
		short := ""
		if c.shortName != "" {
			short = " (" + c.shortName + ")"
		}
		fmt.Fprintf(s.out, "  %-16s %s%s\n", c.usage, c.help, short)
	}
	fmt.Fprintln(s.out, "  <move>           Play a move in SAN (Nf3) or UCI (g1f3)")
	return nil
}

func (s *session) cmdBoard(args []string) error {
	renderBoard(s.out, s.tracker.Position(), s.colour)
	return nil
}

func (s *session) cmdMoves(args []string) error {
	pos, state := s.tracker.Position(), s.tracker.State()
	moves := s.tracker.LegalMoves()
	if len(args) > 0 {
		sq, err := chess.ParseSquare(args[0])
		if err != nil {
			return err
		}
		if !pos.OccupiedBy(sq, state.ToMove) {
			return fmt.Errorf("%s: no %s piece to move", sq, strings.ToLower(state.ToMove.String()))
		}
		moves = engine.LegalMovesFrom(pos, sq, state)
	} else if sq := s.tracker.Touched(); sq != chess.NoSquare {
		moves = engine.LegalMovesFrom(pos, sq, state)
	}

	texts := moveTexts(s.cfg, pos, state, moves)
	sort.Strings(texts)
	lw := output.NewLineWriter(s.out, output.DefaultLineLength)
	for _, text := range texts {
		lw.Write(text)
	}
	lw.NewLine()
	return nil
}

func (s *session) cmdTouch(args []string) error {
	if len(args) != 1 {
		return fmt.Errorf("usage: touch <square>")
	}
	sq, err := chess.ParseSquare(args[0])
	if err != nil {
		return err
	}
	tm := s.tracker.Touch(sq)
	if !tm.MustMove {
		fmt.Fprintf(s.out, "%s: no obligation\n", sq)
		return nil
	}
	fmt.Fprintf(s.out, "%s must move: %s\n", sq, strings.Join(moveTexts(s.cfg, s.tracker.Position(), s.tracker.State(), tm.LegalMoves), " "))
	return nil
}

func (s *session) cmdFEN(args []string) error {
	fmt.Fprintln(s.out, s.tracker.FEN())
	return nil
}

func (s *session) cmdUndo(args []string) error {
	m, err := s.tracker.Undo()
	if err != nil {
		return err
	}
	fmt.Fprintf(s.out, "took back %s\n", m)
	return nil
}

func (s *session) cmdResult(args []string) error {
	fmt.Fprintln(s.out, s.tracker.Result())
	return nil
}

func (s *session) cmdHistory(args []string) error {
	sans := s.tracker.SANHistory()
	if len(sans) == 0 {
		fmt.Fprintln(s.out, "no moves")
		return nil
	}
	_, first, err := engine.StartOf(s.tracker.State())
	if err != nil {
		return err
	}

	lw := output.NewLineWriter(s.out, output.DefaultLineLength)
	colour, number := first.ToMove, first.FullmoveNumber
	for i, san := range sans {
		if colour == chess.White {
			lw.Write(fmt.Sprintf("%d.", number))
		} else if i == 0 {
			lw.Write(fmt.Sprintf("%d...", number))
		}
		lw.Write(san)
		if colour == chess.Black {
			number++
		}
		colour = colour.Opposite()
	}
	lw.NewLine()
	return nil
}

func (s *session) cmdNew(args []string) error {
	return s.reset(strings.Join(args, " "))
}

func (s *session) cmdSave(args []string) error {
	if len(args) != 1 {
		return fmt.Errorf("usage: save <file>")
	}
	data, err := snapshot.Encode(s.tracker.Position(), s.tracker.State())
	if err != nil {
		return err
	}
	if err := os.WriteFile(args[0], data, 0o644); err != nil { //nolint:gosec // G306: user-created save file
		return err
	}
	fmt.Fprintf(s.out, "saved %d plies to %s\n", s.tracker.State().Ply(), args[0])
	return nil
}

func (s *session) cmdLoad(args []string) error {
	if len(args) != 1 {
		return fmt.Errorf("usage: load <file>")
	}
	data, err := os.ReadFile(args[0]) //nolint:gosec // G304: user-supplied save file
	if err != nil {
		return err
	}
	pos, state, err := snapshot.Decode(data)
	if err != nil {
		return err
	}
	s.tracker = game.NewTrackerAt(pos, state, game.WithTouchMove(s.cfg.Play.TouchMove))
	fmt.Fprintf(s.out, "loaded %s\n", s.tracker.FEN())
	return nil
}

// runPlay runs the interactive session on the terminal.
func runPlay(cfg *config.Config) error {
	colour := cfg.Play.Colour && term.IsTerminal(int(os.Stdout.Fd()))
	s, err := newSession(cfg, cfg.OutputFile, colour)
	if err != nil {
		return err
	}

	rl, err := readline.NewEx(&readline.Config{
		Prompt:          s.prompt(),
		HistoryFile:     cfg.Play.HistoryFile,
		InterruptPrompt: "^C",
		EOFPrompt:       "exit",
	})
	if err != nil {
		return err
	}
	defer rl.Close()

	fmt.Fprintln(s.out, "Type 'help' for commands")
	renderBoard(s.out, s.tracker.Position(), s.colour)

	for {
		rl.SetPrompt(s.prompt())
		line, err := rl.Readline()
		if goerrors.Is(err, readline.ErrInterrupt) {
			if line == "" {
				return nil
			}
			continue
		}
		if goerrors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return err
		}

		err = s.execute(line)
		if goerrors.Is(err, errQuit) {
			return nil
		}
		if err != nil {
			fmt.Fprintf(s.out, "error: %v\n", err)
			cfg.Logf(2, "input %q: %v", line, err)
		}
	}
}
