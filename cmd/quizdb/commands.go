package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/sirupsen/logrus"

	"github.com/yourusername/quiz-store/internal/domain/entity"
	"github.com/yourusername/quiz-store/internal/report"
	"github.com/yourusername/quiz-store/internal/service/stats"
	"github.com/yourusername/quiz-store/pkg/database"
)

func (a *app) version() error {
	v, dirty, err := database.MigrationVersion(a.db, a.driver())
	if err != nil {
		return err
	}
	fmt.Printf("version=%d dirty=%t\n", v, dirty)
	return nil
}

// force сбрасывает флаг dirty после неудачной миграции
func (a *app) force(args []string) error {
	if len(args) != 1 {
		return fmt.Errorf("%w: force needs exactly one version", errUsage)
	}
	v, err := strconv.Atoi(args[0])
	if err != nil {
		return fmt.Errorf("%w: version %q is not a number", errUsage, args[0])
	}
	return database.ForceVersion(a.db, a.driver(), v, a.log)
}

func (a *app) aggregator() (*stats.Aggregator, error) {
	loc, err := a.cfg.Stats.Location()
	if err != nil {
		return nil, err
	}
	return stats.NewAggregator(stats.WithLocation(loc), stats.WithWeekRule(a.cfg.Stats.Rule())), nil
}

// selection превращает заголовок темы в выбор; пустой заголовок означает все темы
func (a *app) selection(title string) (entity.ThemeSelection, error) {
	if title == "" {
		return entity.AllThemes(), nil
	}
	themes, err := a.data.GetAllThemes()
	if err != nil {
		return entity.ThemeSelection{}, err
	}
	for i := range themes {
		if strings.EqualFold(themes[i].Title, title) {
			return entity.SpecificTheme(&themes[i]), nil
		}
	}
	return entity.ThemeSelection{}, fmt.Errorf("%w: theme %q not found", errUsage, title)
}

func (a *app) printStats(out io.Writer, args []string) error {
	fs := flag.NewFlagSet("stats", flag.ContinueOnError)
	themeTitle := fs.String("theme", "", "restrict to one theme")
	week := fs.String("week", "", "also print the day breakdown of a week label, e.g. 2024-KW10")
	if err := fs.Parse(args); err != nil {
		return err
	}

	sel, err := a.selection(*themeTitle)
	if err != nil {
		return err
	}
	agg, err := a.aggregator()
	if err != nil {
		return err
	}
	records, err := a.data.CollectStatistics(sel, entity.AllQuestions())
	if err != nil {
		return err
	}
	themeBuckets, err := agg.ThemeAccuracyFor(sel, a.data)
	if err != nil {
		return err
	}

	tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	fmt.Fprintf(tw, "%s\t%s\n", sel.String(), stats.Summarize(records))
	writeBuckets(tw, "day", agg.DailyAccuracy(records))
	writeBuckets(tw, "week", agg.WeeklyAccuracy(records))
	writeBuckets(tw, "theme", themeBuckets)

	if *week != "" {
		days, err := agg.WeekBreakdown(records, *week)
		if err != nil {
			return fmt.Errorf("%w: %v", errUsage, err)
		}
		fmt.Fprintf(tw, "\n%s\tcorrect\twrong\n", *week)
		for _, d := range days {
			fmt.Fprintf(tw, "%s %s\t%d\t%d\n", d.Date.Weekday().String()[:3], d.Label, d.Correct, d.Wrong)
		}
	}
	return tw.Flush()
}

func writeBuckets(w io.Writer, title string, buckets stats.Buckets) {
	fmt.Fprintf(w, "\n%s\tcorrect\ttotal\taccuracy\n", title)
	for _, b := range buckets {
		fmt.Fprintf(w, "%s\t%d\t%d\t%.1f%%\n", b.Label, b.Correct, b.Total, b.Accuracy)
	}
}

func (a *app) export(args []string) error {
	if len(args) != 1 {
		return fmt.Errorf("%w: export needs the target file", errUsage)
	}
	path := args[0]

	agg, err := a.aggregator()
	if err != nil {
		return err
	}
	records, err := a.data.FindAllStatistics()
	if err != nil {
		return err
	}
	themes, err := agg.ThemeAccuracyFor(entity.AllThemes(), a.data)
	if err != nil {
		return err
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}
	r := report.NewAccuracyReport(agg, records, themes)
	if err := report.WriteAccuracyWorkbook(f, r); err != nil {
		_ = f.Close()
		return errors.Join(err, os.Remove(path))
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("failed to close %s: %w", path, err)
	}

	a.log.WithFields(logrus.Fields{
		"file":    path,
		"records": len(records),
		"summary": r.Summary.String(),
	}).Info("accuracy workbook written")
	return nil
}
