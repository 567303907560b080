package csvio

import (
	"cmp"
	"fmt"
	"io"
	"slices"
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/rhyrak/go-workshop/pkg/model"
)

var headerStyle = lipgloss.NewStyle().Bold(true).Padding(0, 1)
var cellStyle = lipgloss.NewStyle().Padding(0, 1)

// PrintStats prints how many students received how many workshops,
// followed by the occupancy of every workshop.
func PrintStats(out io.Writer, mapping model.Mapping, workshops []*model.Workshop) {
	dist := mapping.CountDistribution()
	fmt.Fprintln(out, "There are:")
	counts := make([]int, 0, len(dist))
	for n := range dist {
		counts = append(counts, n)
	}
	slices.Sort(counts)
	for _, n := range counts {
		fmt.Fprintf(out, " - %d students map to %d workshops\n", dist[n], n)
	}

	occupancy := mapping.Occupancy()
	sorted := slices.Clone(workshops)
	slices.SortFunc(sorted, func(a, b *model.Workshop) int { return cmp.Compare(a.ID, b.ID) })

	t := table.New().
		Border(lipgloss.NormalBorder()).
		Headers("ID", "NAME", "SLOT", "TARGET", "ASSIGNED").
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle
			}
			return cellStyle
		})
	for _, w := range sorted {
		t.Row(w.ID.String(), w.Name, w.Slot, w.Participants.String(), strconv.Itoa(occupancy[w.ID]))
	}
	fmt.Fprintln(out, t)
}
