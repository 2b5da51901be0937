// Command worker is a NATS subscriber that runs pvsearch on demand: each
// request message carries a tic-tac-toe board and a depth budget, and the
// worker replies with the resulting Analysis. Connection setup retries with
// backoff via github.com/avast/retry-go, the general pattern for a worker
// that should survive its broker not being up yet at startup.
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/avast/retry-go"
	"github.com/nats-io/nats.go"
	"github.com/nullmove/pvsearch/internal/config"
	"github.com/nullmove/pvsearch/internal/telemetry"
	"github.com/nullmove/pvsearch/internal/tictactoe"
	"github.com/nullmove/pvsearch/pvsearch"
	"github.com/rs/zerolog"
	"github.com/spf13/pflag"
)

const subject = "pvsearch.analyze"

type request struct {
	Board [9]uint8 `json:"board"`
	Depth uint8    `json:"depth"`
}

type response struct {
	Depth uint8    `json:"depth"`
	Score int32    `json:"score"`
	IsWin bool     `json:"is_win"`
	PV    []string `json:"pv"`
	Error string   `json:"error,omitempty"`
}

func main() {
	fs := pflag.NewFlagSet("worker", pflag.ContinueOnError)
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

	var nc *nats.Conn
	err = retry.Do(
		func() error {
			var dialErr error
			nc, dialErr = nats.Connect(cfg.NATSURL())
			return dialErr
		},
		retry.Attempts(5),
		retry.Delay(500*time.Millisecond),
		retry.OnRetry(func(n uint, dialErr error) {
			logger.Warn().Uint("attempt", n).Err(dialErr).Msg("nats connect retry")
		}),
	)
	if err != nil {
		logger.Fatal().Err(err).Msg("could not connect to nats")
	}
	defer nc.Close()

	sub, err := nc.Subscribe(subject, func(msg *nats.Msg) {
		handle(cfg, logger, msg)
	})
	if err != nil {
		logger.Fatal().Err(err).Msg("could not subscribe")
	}
	defer sub.Unsubscribe()

	logger.Info().Str("subject", subject).Msg("worker ready")

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	<-stop
}

func handle(cfg *config.Config, logger zerolog.Logger, msg *nats.Msg) {
	var req request
	if err := json.Unmarshal(msg.Data, &req); err != nil {
		respond(logger, msg, response{Error: fmt.Sprintf("decode request: %v", err)})
		return
	}

	var board tictactoe.Board
	for i, mark := range req.Board {
		board.Cells[i] = tictactoe.Mark(mark)
	}

	depth := req.Depth
	if depth == 0 {
		depth = cfg.Depth()
	}

	search := pvsearch.New[tictactoe.Board, tictactoe.Move, tictactoe.Resolution](tictactoe.CornerEvaluator{}).
		WithDepth(depth).
		WithGoal(cfg.Goal()).
		WithBranchingFactor(cfg.BranchingFactor()).
		WithLogger(logger)

	ctx := context.Background()
	if cfg.Goal() > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, cfg.Goal()+time.Second)
		defer cancel()
	}

	analysis := search.Run(ctx, board)

	resp := response{
		Depth: analysis.Depth,
		Score: int32(analysis.Score),
		IsWin: analysis.Score.IsWin(),
	}
	for _, p := range analysis.PV {
		resp.PV = append(resp.PV, p.String())
	}
	respond(logger, msg, resp)
}

func respond(logger zerolog.Logger, msg *nats.Msg, resp response) {
	payload, err := json.Marshal(resp)
	if err != nil {
		logger.Error().Err(err).Msg("encode response")
		return
	}
	if err := msg.Respond(payload); err != nil {
		logger.Error().Err(err).Msg("publish response")
	}
}
