package statistic

import (
	"bufio"
	"bytes"
	"chatstat/internal/models"
	"chatstat/internal/providers"
	"chatstat/internal/statistic/interfaces"
	"fmt"
	"io"
	"os"
	"regexp"
	"strconv"
	"strings"
)

// DateMarker opens a day block in the canonical stats format.
const DateMarker = "Дата:"

type Format int

const (
	FormatBlock Format = iota
	FormatLegacy
)

func (f Format) String() string {
	if f == FormatLegacy {
		return "legacy"
	}
	return "block"
}

var legacyLineRe = regexp.MustCompile(`^\d{4}-\d{1,2}-\d{1,2}\s*(;|$)`)

// StatsFile reads and writes the per-day stats table.
//
// Canonical (block) form, one block per day:
//
//	Дата: 2024-03-01
//	  42:2
//	  7:1
//
// Legacy form, one line per day: 2024-03-01;42:2;7:1;
type StatsFile struct {
	compressor interfaces.CompressorInterface
	logger     providers.Logger
}

func NewStatsFile(compressor interfaces.CompressorInterface, logger providers.Logger) interfaces.StatsStoreInterface {
	return &StatsFile{
		compressor: compressor,
		logger:     logger,
	}
}

// Encode writes blocks in the canonical form.
func Encode(w io.Writer, blocks []models.DayBlock) error {
	bw := bufio.NewWriter(w)
	for _, block := range blocks {
		if len(block.Counts) == 0 {
			continue
		}
		fmt.Fprintf(bw, "%s %s\n", DateMarker, block.Date.Format(models.DateLayout))
		for _, c := range block.Counts {
			fmt.Fprintf(bw, "  %d:%d\n", c.ID, c.Count)
		}
		bw.WriteByte('\n')
	}
	return bw.Flush()
}

func (f *StatsFile) Save(fileName string, blocks []models.DayBlock) error {
	var buf bytes.Buffer
	if err := Encode(&buf, blocks); err != nil {
		return err
	}

	data := buf.Bytes()
	if wantsCompression(fileName) {
		var err error
		if data, err = f.compressor.Compress(data); err != nil {
			return err
		}
	}
	return writeFileAtomic(fileName, data)
}

func (f *StatsFile) Load(fileName string) ([]models.DailyCount, error) {
	data, err := readText(f.compressor, fileName)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", models.ErrStatsNotFound, fileName)
		}
		return nil, err
	}

	result, err := Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", fileName, err)
	}
	if result.Format == FormatLegacy {
		f.logger.Warnf(providers.TypeQuery, "Legacy stats format found in %s", fileName)
	}
	if result.Skipped > 0 {
		f.logger.Warnf(providers.TypeQuery, "Skipped %d malformed entries in %s", result.Skipped, fileName)
	}
	return result.Counts, nil
}

// DecodeResult is the outcome of parsing a stats document. Skipped counts
// lines (or legacy items) that could not be parsed, oversized lines included.
type DecodeResult struct {
	Format  Format
	Counts  []models.DailyCount
	Skipped int
}

// Decode parses a stats document in either format. Only a failing reader
// is an error; bad lines are skipped and counted.
func Decode(r io.Reader) (DecodeResult, error) {
	var lines []string
	oversized := 0
	err := eachLine(r, func(line string, ok bool) {
		if !ok {
			oversized++
			return
		}
		lines = append(lines, strings.TrimSpace(line))
	})
	if err != nil {
		return DecodeResult{}, err
	}

	var res DecodeResult
	if DetectFormat(lines) == FormatLegacy {
		res = decodeLegacy(lines)
	} else {
		res = decodeBlocks(lines)
	}
	res.Skipped += oversized
	return res, nil
}

// DetectFormat returns the format of the first line that identifies one.
// Documents without such a line are treated as block form.
func DetectFormat(lines []string) Format {
	for _, line := range lines {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		if strings.HasPrefix(line, DateMarker) {
			return FormatBlock
		}
		if legacyLineRe.MatchString(line) {
			return FormatLegacy
		}
	}
	return FormatBlock
}

func decodeBlocks(lines []string) DecodeResult {
	res := DecodeResult{Format: FormatBlock}
	var current *models.DailyCount

	for _, line := range lines {
		if line == "" {
			continue
		}
		if rest, ok := strings.CutPrefix(line, DateMarker); ok {
			date, err := models.ParseDate(rest)
			if err != nil {
				current = nil
				res.Skipped++
				continue
			}
			current = &models.DailyCount{Date: date}
			continue
		}
		if current == nil {
			res.Skipped++
			continue
		}
		id, count, ok := parsePair(line)
		if !ok {
			res.Skipped++
			continue
		}
		res.Counts = append(res.Counts, models.DailyCount{Date: current.Date, ID: id, Count: count})
	}
	return res
}

func decodeLegacy(lines []string) DecodeResult {
	res := DecodeResult{Format: FormatLegacy}

	for _, line := range lines {
		if line == "" {
			continue
		}
		parts := strings.Split(strings.TrimRight(line, ";"), ";")
		date, err := models.ParseDate(parts[0])
		if err != nil {
			res.Skipped++
			continue
		}
		for _, item := range parts[1:] {
			item = strings.TrimSpace(item)
			if item == "" {
				continue
			}
			if strings.Count(item, ":") != 1 {
				res.Skipped++
				continue
			}
			id, count, ok := parsePair(item)
			if !ok {
				res.Skipped++
				continue
			}
			res.Counts = append(res.Counts, models.DailyCount{Date: date, ID: id, Count: count})
		}
	}
	return res
}

func parsePair(s string) (models.ParticipantID, int, bool) {
	idStr, countStr, found := strings.Cut(s, ":")
	if !found {
		return 0, 0, false
	}
	id, err := models.ParseParticipantID(strings.TrimSpace(idStr))
	if err != nil {
		return 0, 0, false
	}
	countStr = strings.TrimSpace(countStr)
	if !models.IsDigits(countStr) {
		return 0, 0, false
	}
	count, err := strconv.Atoi(countStr)
	if err != nil || count <= 0 {
		return 0, 0, false
	}
	return id, count, true
}
