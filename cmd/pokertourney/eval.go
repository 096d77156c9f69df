package main

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/lox/pokertourney/poker"
)

var (
	handStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("14"))

	categoryStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("12"))
)

type EvalCmd struct {
	Hands []string `arg:"" help:"Hole cards per player, e.g. 'AsKd' 'QhQc'"`
	Board string   `short:"b" help:"Community cards, e.g. 'Td7s8h'"`
}

func (c *EvalCmd) Run() error {
	board, err := parseCardArg(c.Board)
	if err != nil {
		return fmt.Errorf("board: %w", err)
	}
	if len(board) > 5 {
		return fmt.Errorf("board cannot have more than 5 cards")
	}

	seen := make(map[poker.Card]bool)
	for _, card := range board {
		if seen[card] {
			return fmt.Errorf("duplicate card %s", card)
		}
		seen[card] = true
	}

	ranks := make([]poker.HandRank, len(c.Hands))
	holes := make([][]poker.Card, len(c.Hands))
	for i, h := range c.Hands {
		hole, err := parseCardArg(h)
		if err != nil {
			return fmt.Errorf("hand %d: %w", i+1, err)
		}
		if len(hole) != 2 {
			return fmt.Errorf("hand %d: must contain exactly 2 cards, got %d", i+1, len(hole))
		}
		for _, card := range hole {
			if seen[card] {
				return fmt.Errorf("duplicate card %s", card)
			}
			seen[card] = true
		}
		holes[i] = hole
		ranks[i] = poker.Evaluate(hole, board)
	}

	if len(board) > 0 {
		fmt.Printf("Board: %s\n", poker.FormatCards(board))
	}
	best := 0
	for i := range ranks {
		if poker.Compare(ranks[i], ranks[best]) > 0 {
			best = i
		}
	}
	for i, r := range ranks {
		marker := ""
		if poker.Compare(r, ranks[best]) == 0 && len(ranks) > 1 {
			marker = "  <- best"
		}
		fmt.Printf("%s  %s  %s%s\n",
			handStyle.Render(poker.FormatCards(holes[i])),
			poker.Describe(r),
			categoryStyle.Render("("+string(poker.CategorizeHoleCards(holes[i]))+")"),
			marker)
	}
	return nil
}

func parseCardArg(s string) ([]poker.Card, error) {
	if strings.TrimSpace(s) == "" {
		return nil, nil
	}
	return poker.ParseCards(s)
}
