package report

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/kiryu-dev/battleship-tournament/internal/domain"
	"github.com/kiryu-dev/battleship-tournament/pkg/utils"
	"github.com/pkg/errors"
)

const (
	FormatText = "text"
	FormatJSON = "json"
)

var ErrUnknownFormat = errors.New("unknown output format")

func New(format string, w io.Writer) (domain.Reporter, error) {
	switch format {
	case FormatText, "":
		return textReporter{w: w}, nil
	case FormatJSON:
		return jsonReporter{w: w}, nil
	default:
		return nil, errors.WithMessagef(ErrUnknownFormat, "'%s'", format)
	}
}

type textReporter struct {
	w io.Writer
}

func (r textReporter) Report(rounds []domain.RoundResults) error {
	for _, round := range rounds {
		if err := r.table(fmt.Sprintf("Round %d", round.Index+1), round.Players); err != nil {
			return err
		}
	}
	return nil
}

func (r textReporter) Summary(standings []domain.PlayerStatistics) error {
	return r.table("Final standings", standings)
}

func (r textReporter) table(title string, players []domain.PlayerStatistics) error {
	if _, err := fmt.Fprintln(r.w, title); err != nil {
		return errors.WithMessage(err, "write title")
	}
	tw := tabwriter.NewWriter(r.w, 0, 0, 2, ' ', tabwriter.AlignRight)
	fmt.Fprintln(tw, "#\tPlayer\tW\tL\tT\tFor\tAgainst\tRating\t")
	for i, p := range players {
		fmt.Fprintf(tw, "%d\t%s\t%d\t%d\t%d\t%d\t%d\t%.1f%%\t\n",
			i+1, p.Name, p.Wins, p.Losses, p.Ties, p.PointsFor, p.PointsAgainst, p.Rating*100)
	}
	fmt.Fprintln(tw)
	if err := tw.Flush(); err != nil {
		return errors.WithMessage(err, "flush table")
	}
	return nil
}

type jsonReporter struct {
	w io.Writer
}

func (r jsonReporter) Report(rounds []domain.RoundResults) error {
	for _, round := range rounds {
		if err := utils.WriteJson(r.w, round); err != nil {
			return errors.WithMessagef(err, "round %d", round.Index)
		}
	}
	return nil
}

func (r jsonReporter) Summary(standings []domain.PlayerStatistics) error {
	return utils.WriteJson(r.w, map[string]any{"standings": standings})
}
