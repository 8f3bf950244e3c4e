package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"

	"flashcards/internal/pack"
	"flashcards/internal/quiz"
)

type Config struct {
	PacksDir string
}

// Run drives the terminal front-end: category selection, then a quiz
// loop until the category is exhausted, then back to selection. It
// owns the only session alive at a time, so core access is serialized
// by construction.
func Run(ctx context.Context, in io.Reader, out io.Writer, cfg Config) error {
	storage, err := pack.NewDir(cfg.PacksDir)
	if err != nil {
		return err
	}

	store := pack.NewStore()
	store.EnsureDefaultPack(storage)

	_, failures, err := store.LoadAll(storage)
	if err != nil {
		return err
	}
	for _, failure := range failures {
		fmt.Fprintf(out, "warning: skipped %s: %v\n", failure.Source, failure.Err)
	}

	reader := bufio.NewReader(in)

	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		names := store.CategoryNames()
		if len(names) == 0 {
			fmt.Fprintf(out, "\nNo packs available. Drop JSON packs into %s and restart.\n", storage.Path())
			return nil
		}

		printCategories(out, names, store.Snapshot())
		fmt.Fprint(out, "Pick a category (number or name), or \"quit\": ")

		line, err := reader.ReadString('\n')
		if err != nil {
			fmt.Fprintln(out)
			return nil
		}

		choice := strings.TrimSpace(line)
		if choice == "" {
			continue
		}
		if strings.EqualFold(choice, "quit") {
			return nil
		}

		name := resolveChoice(choice, names)
		session, err := quiz.Start(name, store.Snapshot())
		if err != nil {
			fmt.Fprintf(out, "\nUnknown category %q.\n\n", choice)
			continue
		}

		if !runQuiz(reader, out, session) {
			return nil
		}
	}
}

func printCategories(out io.Writer, names []string, table pack.CategoryTable) {
	fmt.Fprintln(out)
	fmt.Fprintln(out, "Categories:")
	for idx, name := range names {
		fmt.Fprintf(out, "  %d. %s (%d questions)\n", idx+1, name, len(table[name]))
	}
	fmt.Fprintln(out)
}

// resolveChoice maps a menu number to its category name; anything else
// is treated as a name and matched exactly, case-sensitive.
func resolveChoice(choice string, names []string) string {
	if number, err := strconv.Atoi(choice); err == nil {
		if number >= 1 && number <= len(names) {
			return names[number-1]
		}
	}
	return choice
}

// runQuiz returns false when input ended and the whole app should stop.
func runQuiz(reader *bufio.Reader, out io.Writer, session *quiz.Session) bool {
	for session.InProgress() {
		question, err := session.CurrentQuestion()
		if err != nil {
			return true
		}

		answered, total := session.Progress()
		fmt.Fprintf(out, "\nQuestion %d of %d: %s\n", answered+1, total, question)
		fmt.Fprint(out, "> ")

		line, err := reader.ReadString('\n')
		if err != nil {
			fmt.Fprintln(out)
			return false
		}
		if strings.EqualFold(strings.TrimSpace(line), "back") {
			fmt.Fprintln(out, "Leaving quiz.")
			return true
		}

		status, err := session.SubmitAnswer(line)
		if err != nil {
			return true
		}

		switch status {
		case quiz.StatusCorrect:
			fmt.Fprintln(out, "Correct! Next question:")
		case quiz.StatusIncorrect:
			fmt.Fprintln(out, "Incorrect! Try again.")
		}
	}

	_, total := session.Progress()
	fmt.Fprintf(out, "\nQuiz completed! You answered all %d questions correctly.\n", total)
	return true
}
