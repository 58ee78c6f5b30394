package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"aspects/internal/game/aspect"
	"aspects/internal/game/ending"
)

var headerStyle = lipgloss.NewStyle().Bold(true).Padding(0, 1)
var cellStyle = lipgloss.NewStyle().Padding(0, 1)

func styledTable(headers ...string) *table.Table {
	return table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(lipgloss.Color("8"))).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle
			}
			return cellStyle
		}).
		Headers(headers...)
}

var rulesCmd = &cobra.Command{
	Use:   "rules",
	Short: "List every combination and aspect weight",
	Run: func(cmd *cobra.Command, args []string) {
		rules := styledTable("First", "Second", "Discovers", "Weight")
		for _, r := range aspect.Rules() {
			rules.Row(r.Left.String(), r.Right.String(), r.Result.String(), strconv.Itoa(aspect.Weight(r.Result)))
		}
		fmt.Fprintln(cmd.OutOrStdout(), rules)

		var base []string
		for _, a := range aspect.All() {
			if _, derived := ruleFor(a); !derived {
				base = append(base, fmt.Sprintf("%s (%+d)", a, aspect.Weight(a)))
			}
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Starting aspects: %s\n", strings.Join(base, ", "))
		fmt.Fprintf(cmd.OutOrStdout(), "Endings: good within ±%d, otherwise too positive or too negative\n", cfg.Threshold)
	},
}

func ruleFor(a aspect.Aspect) (aspect.Rule, bool) {
	for _, r := range aspect.Rules() {
		if r.Result == a {
			return r, true
		}
	}
	return aspect.Rule{}, false
}

var scoreCmd = &cobra.Command{
	Use:   "score ASPECT...",
	Short: "Score a set of aspects and name the ending it leads to",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		aspects := make([]aspect.Aspect, 0, len(args))
		for _, arg := range args {
			a, err := aspect.Parse(arg)
			if err != nil {
				return err
			}
			aspects = append(aspects, a)
		}
		result, score := ending.Evaluate(aspects, cfg.Threshold)
		fmt.Fprintf(cmd.OutOrStdout(), "Score %d with threshold %d: %s\n", score, cfg.Threshold, result)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(rulesCmd)
	rootCmd.AddCommand(scoreCmd)
}
