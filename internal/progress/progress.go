// Package progress builds the completion-statistics report from cached
// instruction files: each solved part leaves a confirmation phrase behind,
// so star counts come straight from the answer ledger.
package progress

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"golang.org/x/sync/errgroup"

	"advent/internal/answers"
	"advent/internal/puzzle"
)

// YearReport is one year's star state.
type YearReport struct {
	Year  int
	Stars [puzzle.LastDay + 1]int // Stars[day] in 0..2; index 0 unused
}

// Total returns the year's star count.
func (y YearReport) Total() int {
	total := 0
	for _, s := range y.Stars {
		total += s
	}
	return total
}

// Scan walks every year directory under repo and loads each cached
// instructions file, one goroutine per year. Years are returned in
// ascending order.
func Scan(repo string) ([]YearReport, error) {
	entries, err := os.ReadDir(repo)
	if err != nil {
		return nil, fmt.Errorf("failed to read repository: %w", err)
	}

	var years []int
	for _, e := range entries {
		if !e.IsDir() {
			continue
		}
		year, err := strconv.Atoi(e.Name())
		if err != nil || year < puzzle.FirstYear {
			continue
		}
		years = append(years, year)
	}
	sort.Ints(years)

	reports := make([]YearReport, len(years))
	var g errgroup.Group
	for i, year := range years {
		i, year := i, year
		g.Go(func() error {
			reports[i] = scanYear(repo, year)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return reports, nil
}

func scanYear(repo string, year int) YearReport {
	report := YearReport{Year: year}
	for day := 1; day <= puzzle.LastDay; day++ {
		id := puzzle.ID{Year: year, Day: day}
		data, err := os.ReadFile(filepath.Join(repo, filepath.FromSlash(id.InstructionsPath())))
		if err != nil {
			continue
		}
		state := answers.Load(string(data))
		if state.HasOne() {
			report.Stars[day]++
		}
		if state.HasTwo() {
			report.Stars[day]++
		}
	}
	return report
}

var (
	headerStyle = lipgloss.NewStyle().Bold(true)
	starStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("11"))
	halfStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("7"))
	emptyStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
)

// Render formats the reports as a day grid, two stars per solved day.
func Render(reports []YearReport) string {
	var b strings.Builder
	b.WriteString(headerStyle.Render("Advent of Code progress"))
	b.WriteString("\n\n")

	for _, r := range reports {
		b.WriteString(headerStyle.Render(fmt.Sprintf("%d", r.Year)))
		b.WriteString("  ")
		for day := 1; day <= puzzle.LastDay; day++ {
			switch r.Stars[day] {
			case 2:
				b.WriteString(starStyle.Render("**"))
			case 1:
				b.WriteString(halfStyle.Render("*."))
			default:
				b.WriteString(emptyStyle.Render(".."))
			}
			b.WriteString(" ")
		}
		b.WriteString(fmt.Sprintf(" %d/50\n", r.Total()))
	}
	if len(reports) == 0 {
		b.WriteString("No year directories found.\n")
	}
	return b.String()
}
