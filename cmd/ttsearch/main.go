// Command ttsearch is an interactive REPL over the pvsearch engine, run
// against the bundled tic-tac-toe reference game. Grounded on the
// teacher's main.go command-line surface and the CLI+config wiring pattern
// shown across turnplayer/settings.go, adapted to a readline-driven loop.
package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"strconv"
	"time"

	"github.com/chzyer/readline"
	shellquote "github.com/kballard/go-shellquote"
	"github.com/nullmove/pvsearch/internal/config"
	"github.com/nullmove/pvsearch/internal/telemetry"
	"github.com/nullmove/pvsearch/internal/tictactoe"
	"github.com/nullmove/pvsearch/pvsearch"
	"github.com/nullmove/pvsearch/pvsearch/ttable"
	"github.com/spf13/pflag"
	"gopkg.in/yaml.v3"
)

type analysisSummary struct {
	Depth uint8    `yaml:"depth"`
	Score int32    `yaml:"score"`
	IsWin bool     `yaml:"is_win"`
	PV    []string `yaml:"pv"`
}

func main() {
	fs := pflag.NewFlagSet("ttsearch", pflag.ContinueOnError)
	configFile := fs.String("config", "", "optional YAML config file")
	config.RegisterFlags(fs)
	if err := fs.Parse(os.Args[1:]); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}

	cfg, err := config.New(*configFile, fs)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	logger := telemetry.NewLogger(cfg.LogLevel())
	tt := ttable.New[tictactoe.Board, tictactoe.Move](ttable.WithMemoryFraction(cfg.TTMemoryFraction()))
	search := pvsearch.New[tictactoe.Board, tictactoe.Move, tictactoe.Resolution](tictactoe.CornerEvaluator{}).
		WithDepth(cfg.Depth()).
		WithGoal(cfg.Goal()).
		WithBranchingFactor(cfg.BranchingFactor()).
		WithTranspositionTable(tt).
		WithLogger(logger)

	board := tictactoe.Board{}
	outputFormat := cfg.OutputFormat()

	rl, err := readline.New("ttsearch> ")
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	defer rl.Close()

	for {
		line, err := rl.Readline()
		if err == readline.ErrInterrupt {
			continue
		}
		if err == io.EOF {
			return
		}
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			return
		}

		args, err := shellquote.Split(line)
		if err != nil || len(args) == 0 {
			continue
		}

		switch args[0] {
		case "quit", "exit":
			return
		case "reset":
			board = tictactoe.Board{}
		case "play":
			if len(args) != 2 {
				fmt.Println("usage: play <cell 0-8>")
				continue
			}
			cell, err := strconv.Atoi(args[1])
			if err != nil {
				fmt.Println(err)
				continue
			}
			ply := tictactoe.Move(cell)
			next, err := board.ExecutePly(&ply)
			if err != nil {
				fmt.Println(err)
				continue
			}
			board = next
		case "board":
			fmt.Println(board.String())
		case "go":
			ctx := context.Background()
			if cfg.Goal() > 0 {
				var cancel context.CancelFunc
				ctx, cancel = context.WithTimeout(ctx, cfg.Goal()+time.Second)
				defer cancel()
			}
			analysis := search.Run(ctx, board)
			printAnalysis(analysis, outputFormat)
		default:
			fmt.Println("commands: board, play <cell>, go, reset, quit")
		}
	}
}

func printAnalysis(analysis pvsearch.Analysis[tictactoe.Board, tictactoe.Move, tictactoe.Resolution], format string) {
	if format == "yaml" {
		summary := analysisSummary{
			Depth: analysis.Depth,
			Score: int32(analysis.Score),
			IsWin: analysis.Score.IsWin(),
		}
		for _, p := range analysis.PV {
			summary.PV = append(summary.PV, p.String())
		}
		out, err := yaml.Marshal(summary)
		if err != nil {
			fmt.Println(err)
			return
		}
		fmt.Print(string(out))
		return
	}
	fmt.Println(analysis.String())
	fmt.Print(analysis.Stats.String())
}
