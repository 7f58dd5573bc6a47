package main

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/vivekstills/boat/go/internal/campaign"
	"github.com/vivekstills/boat/go/internal/leaderboard"
	"github.com/vivekstills/boat/go/internal/models"
)

const clearScreen = "\033[H\033[2J"

type watchView struct {
	Campaign   *campaign.Campaign
	State      leaderboard.State
	Now        time.Time
	ShowAll    bool
	StaleAfter time.Duration
}

func renderWatch(w io.Writer, v watchView) error {
	var b strings.Builder
	b.WriteString(clearScreen)

	title := strings.ToUpper(v.Campaign.Name)
	if title == "" {
		title = "LEADERBOARD"
	}
	if left, err := v.Campaign.TimeLeft(v.Now); err == nil {
		if left.Done() {
			fmt.Fprintf(&b, "%s  ended\n", title)
		} else {
			fmt.Fprintf(&b, "%s  ends in %s\n", title, left)
		}
	} else {
		fmt.Fprintf(&b, "%s\n", title)
	}
	if v.Campaign.ReferralCode != "" {
		fmt.Fprintf(&b, "code %s", v.Campaign.ReferralCode)
		for _, bonus := range v.Campaign.Bonuses {
			fmt.Fprintf(&b, "  %s %s", bonus.Value, bonus.Title)
		}
		b.WriteString("\n")
	}

	fmt.Fprintln(&b, statusLine(v.State, v.Now, v.StaleAfter))
	b.WriteString("\n")

	if v.State.Snapshot != nil {
		if err := renderBoard(&b, v.State.Snapshot.Players, v.ShowAll); err != nil {
			return err
		}
	}
	b.WriteString("\n[enter] refresh  [a] toggle all  [q] quit\n")

	_, err := io.WriteString(w, b.String())
	return err
}

// statusLine describes the freshness of the shown board
func statusLine(s leaderboard.State, now time.Time, staleAfter time.Duration) string {
	if s.Loading {
		return "loading leaderboard..."
	}

	var line string
	if age, ok := s.Age(now); ok {
		line = fmt.Sprintf("updated %s ago", age.Truncate(time.Second))
	} else {
		line = "showing placeholder standings"
	}
	if s.IsStale(now, staleAfter) {
		line += "  [stale]"
	}
	if msg := s.ErrorMessage(); msg != "" {
		line += "  last refresh failed: " + msg
	}
	return line
}

func renderBoard(w io.Writer, players []models.Player, showAll bool) error {
	board := campaign.SplitBoard(players, showAll)

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "RANK\tPLAYER\tWAGERED\tPRIZE\t")
	for _, p := range board.Podium {
		writeRow(tw, p)
	}
	if len(board.Podium) > 0 && len(board.RunnersUp) > 0 {
		fmt.Fprintln(tw, "\t\t\t\t")
	}
	for _, p := range board.RunnersUp {
		writeRow(tw, p)
	}
	if err := tw.Flush(); err != nil {
		return err
	}

	if board.Hidden > 0 {
		_, err := fmt.Fprintf(w, "+%d more\n", board.Hidden)
		return err
	}
	return nil
}

func writeRow(w io.Writer, p models.Player) {
	fmt.Fprintf(w, "%s %s\t%s\t%s\t%s\t\n",
		changeMarker(p.Change),
		campaign.FormatRank(p.Rank),
		campaign.MaskUsername(p.Username),
		campaign.FormatCurrency(p.Wagered),
		campaign.FormatCurrency(p.Prize),
	)
}

func changeMarker(c models.Change) string {
	switch c {
	case models.ChangeUp:
		return "+"
	case models.ChangeDown:
		return "-"
	default:
		return " "
	}
}
