// Command console plays a game of chess on the terminal, both sides at the
// same keyboard.
package main

import (
	"bufio"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"slices"

	"github.com/benbeisheim/chess-backend/internal/chess"
	"github.com/benbeisheim/chess-backend/internal/config"
)

func main() {
	configPath := flag.String("config", "", "path to a YAML config file with startingSide and layout")
	flag.Parse()

	cfg := config.Default()
	if *configPath != "" {
		var err error
		if cfg, err = config.Load(*configPath); err != nil {
			log.Fatalf("loading config: %v", err)
		}
	}
	setup, err := cfg.Setup()
	if err != nil {
		log.Fatal(err)
	}
	game, err := setup.NewEngine()
	if err != nil {
		log.Fatal(err)
	}

	if err := play(game, os.Stdin, os.Stdout); err != nil {
		log.Fatal(err)
	}
}

// errInputClosed is returned when input ends before the game does.
var errInputClosed = errors.New("input closed before the game ended")

// play runs the prompt loop until the game ends or in runs out.
func play(game *chess.Game, in io.Reader, out io.Writer) error {
	words := bufio.NewScanner(in)
	words.Split(bufio.ScanWords)
	next := func(prompt string) (string, error) {
		fmt.Fprint(out, prompt)
		if !words.Scan() {
			if err := words.Err(); err != nil {
				return "", err
			}
			return "", errInputClosed
		}
		return words.Text(), nil
	}
	square := func(prompt string) (chess.Pos, error) {
		for {
			word, err := next(prompt)
			if err != nil {
				return chess.Pos{}, err
			}
			pos, err := chess.ParsePos(word)
			if err != nil {
				fmt.Fprintln(out, "That is not a square!")
				continue
			}
			return pos, nil
		}
	}

	for !game.Result().Terminal() {
		side := game.CurrentSide()
		fmt.Fprintln(out, game.Board())
		if game.Board().KingInCheck(side) {
			fmt.Fprintf(out, "%s's turn - In Check\n", side)
		} else {
			fmt.Fprintf(out, "%s's turn\n", side)
		}

		var from, to chess.Pos
		for {
			pos, err := square("Move from: ")
			if err != nil {
				return err
			}
			if slices.Contains(game.ValidFroms(), pos) {
				from = pos
				break
			}
			fmt.Fprintln(out, "You don't have a piece on that square!")
		}
		for {
			pos, err := square("Move to: ")
			if err != nil {
				return err
			}
			if slices.Contains(game.LegalMovesWithCheck(from), pos) {
				to = pos
				break
			}
			fmt.Fprintln(out, "That move is not legal!")
		}
		game.MakeMove(from, to)

		if _, pending := game.PromotionPending(); pending {
			for {
				word, err := next("Promote to (Q, R, B, N): ")
				if err != nil {
					return err
				}
				if kind, ok := chess.ParseKind(word[0]); len(word) == 1 && ok && game.Promote(kind) {
					break
				}
				fmt.Fprintln(out, "You can't promote to that!")
			}
		}
	}

	fmt.Fprintln(out, game.Board())
	switch game.Result() {
	case chess.WhiteWon, chess.BlackWon:
		fmt.Fprintf(out, "%s won\n", game.CurrentSide().Opponent())
	case chess.Draw:
		fmt.Fprintln(out, "Draw")
	}
	return nil
}
