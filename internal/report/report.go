// Package report renders election results, standings and leaderboards as
// styled terminal text for the CLI.
package report

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"

	"github.com/vovakirdan/ocanada/internal/dataset"
	"github.com/vovakirdan/ocanada/internal/engine"
	"github.com/vovakirdan/ocanada/internal/storage"
)

// Layout constants
const (
	barWidth  = 40 // Width of a full seat bar
	nameWidth = 28 // Party name column
)

var (
	titleStyle = lipgloss.NewStyle().Bold(true)
	dimStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
	winStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("10")).Bold(true)
	lossStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
	headStyle  = lipgloss.NewStyle().
			BorderStyle(lipgloss.NormalBorder()).
			BorderForeground(lipgloss.Color("240")).
			BorderBottom(true).
			Bold(true)
	boxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("240")).
			Padding(0, 1)
)

// Report renders engine output using a data set's party names and colours.
type Report struct {
	ds      *dataset.Dataset
	parties map[dataset.PartyID]lipgloss.Style
}

// New creates a report for the given data set.
func New(ds *dataset.Dataset) *Report {
	r := &Report{ds: ds, parties: make(map[dataset.PartyID]lipgloss.Style, len(ds.Parties))}
	for _, p := range ds.Parties {
		style := lipgloss.NewStyle()
		if p.Colors.Primary != "" {
			style = style.Foreground(lipgloss.Color(p.Colors.Primary))
		}
		r.parties[p.ID] = style
	}
	return r
}

// partyName returns the display name of a party, or its ID when unknown.
func (r *Report) partyName(id dataset.PartyID) string {
	if p, ok := r.ds.Party(id); ok {
		return p.Name
	}
	return string(id)
}

func (r *Report) partyStyle(id dataset.PartyID) lipgloss.Style {
	if s, ok := r.parties[id]; ok {
		return s
	}
	return lipgloss.NewStyle()
}

// bar draws a seat bar scaled against the legislature size.
func (r *Report) bar(id dataset.PartyID, seats int) string {
	total := r.ds.TotalSeats()
	if total <= 0 || seats <= 0 {
		return ""
	}
	n := seats * barWidth / total
	if n == 0 {
		n = 1
	}
	return r.partyStyle(id).Render(strings.Repeat("█", n))
}

// Election renders one election result. index is the zero-based position
// of the election in the calendar.
func (r *Report) Election(res engine.ElectionResult, player dataset.PartyID, index int) string {
	var b strings.Builder

	fmt.Fprintf(&b, "%s\n", titleStyle.Render(fmt.Sprintf("%d federal election (%s of %d)",
		res.Year, humanize.Ordinal(index+1), len(r.ds.Schedule))))

	for _, p := range r.ds.Parties {
		seats := res.National[p.ID]
		if seats == 0 && !p.ActiveIn(res.Year) {
			continue
		}
		name := r.partyStyle(p.ID).Render(fmt.Sprintf("%-*s", nameWidth, p.Name))
		marker := " "
		if p.ID == player {
			marker = "*"
		}
		fmt.Fprintf(&b, "%s %s %4d %s\n", marker, name, seats, r.bar(p.ID, seats))
	}

	if res.Winner == "" {
		b.WriteString(dimStyle.Render("No party won a seat."))
		b.WriteString("\n")
	} else {
		fmt.Fprintf(&b, "%s forms a %s government with %d of %d seats (%d needed).\n",
			r.partyName(res.Winner), res.Government, res.WinnerSeats, res.TotalSeats(), r.ds.MajorityThreshold())
	}

	outcome := lossStyle.Render("lost")
	if res.PlayerWon {
		outcome = winStyle.Render("won")
	}
	fmt.Fprintf(&b, "You %s with %d seats, +%s points.\n", outcome, res.PlayerSeats, humanize.Comma(int64(res.ScoreGained)))

	return b.String()
}

// Standings renders current national totals between elections.
func (r *Report) Standings(totals []engine.PartyTotal) string {
	var b strings.Builder
	b.WriteString(headStyle.Render(fmt.Sprintf("%-*s %8s %6s", nameWidth, "Party", "Support", "Seats")))
	b.WriteString("\n")
	for _, t := range totals {
		name := r.partyStyle(t.Party).Render(fmt.Sprintf("%-*s", nameWidth, r.partyName(t.Party)))
		fmt.Fprintf(&b, "%s %7.1f%% %6d\n", name, t.AverageSupport, t.Seats)
	}
	return b.String()
}

// Final renders the end-of-game summary box.
func (r *Report) Final(fs engine.FinalScore, player dataset.PartyID) string {
	lines := []string{
		titleStyle.Render("Final result: " + r.partyStyle(player).Render(r.partyName(player))),
		fmt.Sprintf("Score:     %s", humanize.Comma(int64(fs.Score))),
		fmt.Sprintf("Grade:     %s (%s)", fs.Grade.Letter, fs.Grade.Label),
		fmt.Sprintf("Governed:  %d of %d elections", fs.TimesWon, fs.Elections),
		fmt.Sprintf("Seats won: %s", humanize.Comma(int64(fs.TotalSeats))),
	}
	return boxStyle.Render(strings.Join(lines, "\n")) + "\n"
}

// Leaderboard renders stored runs, best first. Times are relative to now.
func Leaderboard(runs []storage.Run, now time.Time) string {
	if len(runs) == 0 {
		return "No runs recorded yet.\n"
	}

	var b strings.Builder
	b.WriteString(headStyle.Render(fmt.Sprintf("%-5s %-5s %-8s %-8s %7s %-5s %5s %s",
		"Rank", "Party", "Level", "Strategy", "Score", "Grade", "Wins", "When")))
	b.WriteString("\n")
	for i, run := range runs {
		fmt.Fprintf(&b, "%-5s %-5s %-8s %-8s %7s %-5s %5d %s\n",
			humanize.Ordinal(i+1),
			run.Party,
			run.Difficulty,
			run.Strategy,
			humanize.Comma(int64(run.Score)),
			run.Grade,
			run.TimesWon,
			dimStyle.Render(humanize.RelTime(run.CreatedAt, now, "ago", "from now")),
		)
	}
	return b.String()
}

// Stats renders per-party aggregates of stored runs.
func Stats(stats []storage.PartyStats) string {
	if len(stats) == 0 {
		return ""
	}

	var b strings.Builder
	b.WriteString(headStyle.Render(fmt.Sprintf("%-5s %5s %7s %9s %5s", "Party", "Runs", "Best", "Average", "Wins")))
	b.WriteString("\n")
	for _, s := range stats {
		fmt.Fprintf(&b, "%-5s %5d %7s %9.1f %5d\n",
			s.Party, s.Runs, humanize.Comma(int64(s.Best)), s.Average, s.TimesWon)
	}
	return b.String()
}
