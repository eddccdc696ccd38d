package prompt

import (
	"bufio"
	"chatstat/internal/models"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/fatih/color"
	"github.com/samber/lo"
)

var ErrAborted = errors.New("input closed before a period was chosen")

type PeriodPromptInterface interface {
	ChooseMonth(available []models.Period) (models.Period, error)
	ChooseYear(available []int) (int, error)
}

// PeriodPrompt asks for a period on in until the answer names a period that
// has data. Bad numbers and unknown periods are reported and asked again.
type PeriodPrompt struct {
	scanner *bufio.Scanner
	out     io.Writer
	errText func(a ...interface{}) string
	hint    func(a ...interface{}) string
}

func NewPeriodPrompt(in io.Reader, out io.Writer) PeriodPromptInterface {
	return &PeriodPrompt{
		scanner: bufio.NewScanner(in),
		out:     out,
		errText: color.New(color.FgRed).SprintFunc(),
		hint:    color.New(color.FgCyan, color.Bold).SprintFunc(),
	}
}

func (p *PeriodPrompt) ChooseMonth(available []models.Period) (models.Period, error) {
	labels := lo.Map(available, func(period models.Period, _ int) string { return period.String() })
	fmt.Fprintln(p.out, p.hint("Available periods:"), strings.Join(labels, ", "))

	for {
		year, err := p.askInt("Enter year: ")
		if err != nil {
			if errors.Is(err, ErrAborted) {
				return models.Period{}, err
			}
			fmt.Fprintln(p.out, p.errText("Error: enter valid numbers"))
			continue
		}
		month, err := p.askInt("Enter month (1-12): ")
		if err != nil {
			if errors.Is(err, ErrAborted) {
				return models.Period{}, err
			}
			fmt.Fprintln(p.out, p.errText("Error: enter valid numbers"))
			continue
		}

		period := models.MonthPeriod(year, month)
		if !lo.Contains(available, period) {
			fmt.Fprintln(p.out, p.errText(fmt.Sprintf("Error: no data for %d/%d", month, year)))
			continue
		}
		return period, nil
	}
}

func (p *PeriodPrompt) ChooseYear(available []int) (int, error) {
	labels := lo.Map(available, func(year int, _ int) string { return strconv.Itoa(year) })
	fmt.Fprintln(p.out, p.hint("Available years:"), strings.Join(labels, ", "))

	for {
		year, err := p.askInt("Enter year: ")
		if err != nil {
			if errors.Is(err, ErrAborted) {
				return 0, err
			}
			fmt.Fprintln(p.out, p.errText("Error: enter a valid year"))
			continue
		}
		if !lo.Contains(available, year) {
			fmt.Fprintln(p.out, p.errText(fmt.Sprintf("Error: no data for %d", year)))
			continue
		}
		return year, nil
	}
}

func (p *PeriodPrompt) askInt(question string) (int, error) {
	fmt.Fprint(p.out, question)
	if !p.scanner.Scan() {
		if err := p.scanner.Err(); err != nil {
			return 0, fmt.Errorf("%w: %s", ErrAborted, err)
		}
		return 0, ErrAborted
	}
	return strconv.Atoi(strings.TrimSpace(p.scanner.Text()))
}

func NewStdPeriodPrompt() PeriodPromptInterface {
	return NewPeriodPrompt(os.Stdin, os.Stdout)
}
