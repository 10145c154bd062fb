package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"word-quiz/internal/app"
	"word-quiz/internal/domain"
)

// NewPlayCmd runs one interactive game in the terminal.
func NewPlayCmd(configPath *string) *cobra.Command {
	var difficulty string
	cmd := &cobra.Command{
		Use:   "play",
		Short: "Play the quiz in the terminal",
		RunE: func(cmd *cobra.Command, args []string) error {
			diff, err := domain.ParseDifficultyName(difficulty)
			if err != nil {
				return err
			}
			rt, err := loadRuntime(cmd.Context(), *configPath)
			if err != nil {
				return err
			}
			defer rt.Close()
			return runPlay(cmd.Context(), rt.gameService(), diff, cmd.InOrStdin(), cmd.OutOrStdout())
		},
	}
	cmd.Flags().StringVarP(&difficulty, "difficulty", "d", "easy", "easy, medium or hard (or 0, 1, 2)")
	return cmd
}

// questionFeed hands dealt questions to the input loop, including ones dealt by the advance timer.
type questionFeed struct {
	app.NopListener
	questions chan domain.Question
	errs      chan error
}

func (f *questionFeed) OnQuestion(_ string, q domain.Question) {
	select {
	case f.questions <- q:
	default:
	}
}

func (f *questionFeed) OnError(_ string, err error) {
	select {
	case f.errs <- err:
	default:
	}
}

func runPlay(ctx context.Context, service *app.GameService, difficulty domain.Difficulty, in io.Reader, out io.Writer) error {
	feed := &questionFeed{questions: make(chan domain.Question, 4), errs: make(chan error, 1)}
	id, _, err := service.Start(ctx, int(difficulty), feed)
	if err != nil {
		return err
	}
	defer service.Leave(ctx, id)

	input := bufio.NewScanner(in)
	readLine := func() (string, bool) {
		fmt.Fprint(out, "> ")
		if !input.Scan() {
			return "", false
		}
		return strings.TrimSpace(input.Text()), true
	}

	for {
		var q domain.Question
		select {
		case q = <-feed.questions:
		case err := <-feed.errs:
			return err
		case <-ctx.Done():
			return ctx.Err()
		}
		printQuestion(out, q)

	guessing:
		for {
			line, ok := readLine()
			if !ok {
				return input.Err()
			}
			res, summary, err := service.Guess(ctx, id, resolveChoice(q, line))
			if err != nil && summary == nil {
				fmt.Fprintf(out, "  %v\n", err)
				continue
			}
			if !res.Correct {
				fmt.Fprintln(out, "  Not quite, try again.")
				continue
			}
			fmt.Fprintln(out, "  Correct!")
			if summary == nil {
				break guessing
			}

			printSummary(out, *summary)
			if err != nil {
				fmt.Fprintf(out, "  score not saved: %v\n", err)
			}
			fmt.Fprintln(out, "Play again? (y/n)")
			answer, ok := readLine()
			if !ok || !isYes(answer) {
				return nil
			}
			if _, err := service.PlayAgain(ctx, id); err != nil {
				return err
			}
			break guessing
		}
	}
}

func printQuestion(out io.Writer, q domain.Question) {
	fmt.Fprintf(out, "\nQuestion %d of %d  [%s]  %s\n", q.Number, q.Total, q.Category, q.ImageRef)
	for i, choice := range q.Choices {
		fmt.Fprintf(out, "  %d) %s\n", i+1, choice)
	}
}

func printSummary(out io.Writer, s domain.Summary) {
	fmt.Fprintf(out, "\nDone! Difficulty: %s\n", s.Difficulty)
	fmt.Fprintf(out, "Total guesses: %d\n", s.TotalGuesses)
	fmt.Fprintf(out, "Accuracy: %.1f%%\n", s.Accuracy)
}

// resolveChoice maps a 1-based choice number to its word; anything else is taken as the word itself.
func resolveChoice(q domain.Question, line string) string {
	if n, err := strconv.Atoi(line); err == nil && n >= 1 && n <= len(q.Choices) {
		return q.Choices[n-1]
	}
	return line
}

func isYes(s string) bool {
	switch strings.ToLower(s) {
	case "y", "yes":
		return true
	}
	return false
}
