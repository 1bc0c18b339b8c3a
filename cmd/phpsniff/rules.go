package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
	"gitlab.com/tozd/go/errors"

	"phpsniff/internal/diag"
	"phpsniff/internal/engine"
	"phpsniff/internal/sniffs"
)

var rulesCmd = &cobra.Command{
	Use:   "rules",
	Short: "List rules and the codes they report",
	Args:  cobra.NoArgs,
	RunE:  runRules,
}

func init() {
	rulesCmd.Flags().String("format", "pretty", "output format (pretty|json)")
}

type ruleInfo struct {
	Name     string     `json:"name"`
	Disabled bool       `json:"disabled"`
	Codes    []codeInfo `json:"codes"`
}

type codeInfo struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Title    string `json:"title"`
	Disabled bool   `json:"disabled"`
}

var (
	ruleStyle     = lipgloss.NewStyle().Bold(true)
	codeIDStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("5"))
	disabledStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
)

func runRules(cmd *cobra.Command, _ []string) error {
	format, err := cmd.Flags().GetString("format")
	if err != nil {
		return errors.Errorf("failed to get format flag: %w", err)
	}
	eng, err := loadEngine(cmd)
	if err != nil {
		return err
	}
	infos := describeRules(eng.Config().Config.Rules.Disable, sniffs.All(), eng.Rules())

	switch strings.ToLower(format) {
	case "json":
		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		return enc.Encode(infos)
	case "pretty":
		renderRules(cmd.OutOrStdout(), infos, useColor(cmd, os.Stdout))
		return nil
	default:
		return errors.Errorf("unknown format: %s", format)
	}
}

// describeRules lists every built-in rule; those missing from enabled and
// codes matched by a disable selector are marked.
func describeRules(disable []string, all, enabled []engine.Rule) []ruleInfo {
	on := make(map[string]bool, len(enabled))
	for _, r := range enabled {
		on[r.Name()] = true
	}
	out := make([]ruleInfo, 0, len(all))
	for _, r := range all {
		info := ruleInfo{Name: r.Name(), Disabled: !on[r.Name()]}
		for _, c := range engine.RuleCodes(r) {
			info.Codes = append(info.Codes, codeInfo{
				ID:       c.ID(),
				Name:     c.Name(),
				Title:    c.Title(),
				Disabled: info.Disabled || codeDisabled(disable, c),
			})
		}
		out = append(out, info)
	}
	return out
}

func codeDisabled(selectors []string, c diag.Code) bool {
	for _, sel := range selectors {
		if c.Matches(sel) {
			return true
		}
	}
	return false
}

func renderRules(w io.Writer, infos []ruleInfo, colored bool) {
	style := func(s lipgloss.Style, text string) string {
		if !colored {
			return text
		}
		return s.Render(text)
	}
	for _, r := range infos {
		name := style(ruleStyle, r.Name)
		if r.Disabled {
			name += style(disabledStyle, " (disabled)")
		}
		fmt.Fprintln(w, name)
		for _, c := range r.Codes {
			line := fmt.Sprintf("  %s  %-60s %s", style(codeIDStyle, c.ID), c.Name, c.Title)
			if c.Disabled && !r.Disabled {
				line += style(disabledStyle, " (disabled)")
			}
			fmt.Fprintln(w, line)
		}
	}
}
