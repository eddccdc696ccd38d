package main

import (
	"chatstat/internal"
	"chatstat/internal/di"
	"chatstat/internal/models"
	"chatstat/internal/structures"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"
)

const usage = `usage: chatstat [-config path] [-debug] <command> [flags]

commands:
  ingest                    rebuild stats and names files from the export
  periods                   list months and years with data
  month [-year Y -month M]  chart one month (asks when flags are omitted)
  year  [-year Y]           chart one year by month (asks when omitted)
  serve                     serve periods, matrices and charts over HTTP
`

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, stdout, stderr io.Writer) (code int) {
	defer func() {
		if r := recover(); r != nil {
			fmt.Fprintf(stderr, "error: %v\n", r)
			code = 1
		}
	}()

	flags := &structures.CliFlags{}
	global := flag.NewFlagSet("chatstat", flag.ContinueOnError)
	global.SetOutput(stderr)
	global.Usage = func() { fmt.Fprint(stderr, usage) }
	global.StringVar(&flags.ConfigPath, "config", "config.yaml", "path to the config file")
	global.BoolVar(&flags.DebugMode, "debug", false, "also log to stderr")
	if err := global.Parse(args); err != nil {
		return 2
	}
	if global.NArg() == 0 {
		global.Usage()
		return 2
	}

	app, err := di.InitApp(flags)
	if err != nil {
		return report(stderr, err)
	}
	defer app.Close()
	app.SetOutput(stdout)

	if err := dispatch(app, global.Arg(0), global.Args()[1:], stdout, stderr); err != nil {
		return report(stderr, err)
	}
	return 0
}

func dispatch(app *internal.App, command string, args []string, stdout, stderr io.Writer) error {
	sub := flag.NewFlagSet(command, flag.ContinueOnError)
	sub.SetOutput(stderr)
	year := sub.Int("year", 0, "year")
	month := sub.Int("month", 0, "month (1-12)")
	if err := sub.Parse(args); err != nil {
		return err
	}

	switch command {
	case "ingest":
		_, err := app.Ingest()
		return err
	case "periods":
		periods, err := app.Periods()
		if err != nil {
			return err
		}
		months := make([]string, 0, len(periods.Months))
		for _, p := range periods.Months {
			months = append(months, p.String())
		}
		fmt.Fprintln(stdout, "Months:", strings.Join(months, ", "))
		fmt.Fprintln(stdout, "Years:", strings.Trim(fmt.Sprint(periods.Years), "[]"))
		return nil
	case "month":
		var p *models.Period
		if *year != 0 || *month != 0 {
			if *month < 1 || *month > 12 {
				return errors.New("month must be between 1 and 12")
			}
			period := models.MonthPeriod(*year, *month)
			p = &period
		}
		_, err := app.Month(p)
		return err
	case "year":
		_, err := app.Year(*year)
		return err
	case "serve":
		return app.Serve()
	default:
		fmt.Fprint(stderr, usage)
		return fmt.Errorf("unknown command %q", command)
	}
}

// report prints err for the user. Missing input files are shown verbatim.
func report(stderr io.Writer, err error) int {
	if errors.Is(err, models.ErrStatsNotFound) || errors.Is(err, models.ErrExportNotFound) {
		fmt.Fprintln(stderr, err)
		return 1
	}
	fmt.Fprintf(stderr, "error: %s\n", err)
	return 1
}
