package cli

import (
	"bufio"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"time"

	"AwarenessSimulator_SecurityProject/internal/playback"
	"AwarenessSimulator_SecurityProject/internal/render"
	"AwarenessSimulator_SecurityProject/internal/scenario"

	"github.com/spf13/cobra"
)

var (
	playUnit    time.Duration
	playVerbose bool
)

var playCmd = &cobra.Command{
	Use:   "play <scenario|file>",
	Short: "Play a scenario in the terminal",
	Long: `Plays a scenario from the catalog or a file.

Input: an option number for chat choices, "p"/"phishing" or "s"/"safe" for
emails, "t"/"retry" to try again after a mistake, "r"/"restart" to restart
and "q" to quit.`,
	Args: cobra.ExactArgs(1),
	RunE: runPlay,
}

func init() {
	playCmd.Flags().DurationVar(&playUnit, "unit", time.Second, "length of one delay unit")
	playCmd.Flags().BoolVarP(&playVerbose, "verbose", "v", false, "log state transitions")
}

func runPlay(cmd *cobra.Command, args []string) error {
	script, err := resolveScript(args[0])
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()

	level := slog.LevelInfo
	if playVerbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: level}))

	// 완료 콜백은 타이머 goroutine에서 호출되므로 출력은 메인 루프에서만 한다
	completed := make(chan int, 1)
	ctrl, err := playback.New(script,
		playback.WithTimeUnit(playUnit),
		playback.WithLogger(logger),
		playback.OnComplete(func(score int) {
			select {
			case completed <- score:
			default:
			}
		}),
	)
	if err != nil {
		return err
	}
	defer ctrl.Close()

	states, cancel := ctrl.Subscribe()
	defer cancel()

	lines := make(chan string)
	go readLines(cmd.InOrStdin(), lines)

	if err := ctrl.Start(); err != nil {
		return err
	}
	renderer := render.NewRenderer()
	fmt.Fprintln(out, renderer.Text(renderer.Render(<-states, script)))

	for {
		select {
		case snap, ok := <-states:
			if !ok {
				return nil
			}
			fmt.Fprintln(out, renderer.Text(renderer.Render(snap, script)))
		case score := <-completed:
			fmt.Fprintf(out, "*** completed, score %d ***\n", score)
		case line, ok := <-lines:
			if !ok || line == "q" {
				return nil
			}
			if line == "" {
				continue
			}
			if err := render.Dispatch(ctrl, parseInput(line, script.Kind)); err != nil {
				fmt.Fprintf(out, "error: %v\n", err)
			}
		}
	}
}

func readLines(in io.Reader, lines chan<- string) {
	defer close(lines)
	scanner := bufio.NewScanner(in)
	for scanner.Scan() {
		lines <- strings.TrimSpace(scanner.Text())
	}
}

// parseInput maps a terminal line to a renderer command.
func parseInput(line string, kind scenario.Kind) render.Command {
	switch strings.ToLower(line) {
	case "r", render.ActionRestart:
		return render.Command{Action: render.ActionRestart}
	case "t", render.ActionRetry:
		return render.Command{Action: render.ActionRetry}
	}
	if kind == scenario.KindEmail {
		switch strings.ToLower(line) {
		case "p", playback.DecisionPhishing:
			return render.Command{Action: render.ActionDecide, Option: playback.DecisionPhishing}
		case "s", playback.DecisionSafe:
			return render.Command{Action: render.ActionDecide, Option: playback.DecisionSafe}
		}
	}
	return render.Command{Action: render.ActionDecide, Option: line}
}
