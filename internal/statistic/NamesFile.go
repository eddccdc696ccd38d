package statistic

import (
	"bytes"
	"chatstat/internal/models"
	"chatstat/internal/providers"
	"chatstat/internal/statistic/interfaces"
	"os"
	"strings"
)

var lineBreaks = strings.NewReplacer("\r\n", " ", "\n", " ", "\r", " ")

// NamesFile persists the id -> display name table as "id:name" lines.
type NamesFile struct {
	compressor interfaces.CompressorInterface
	logger     providers.Logger
}

func NewNamesFile(compressor interfaces.CompressorInterface, logger providers.Logger) interfaces.NamesStoreInterface {
	return &NamesFile{
		compressor: compressor,
		logger:     logger,
	}
}

// Load returns an empty table when the file does not exist. Lines without a
// separator, with a non-numeric id or over the line size limit are skipped;
// the first entry for an id wins.
func (n *NamesFile) Load(fileName string) (models.NameTable, error) {
	names := make(models.NameTable)

	data, err := readText(n.compressor, fileName)
	if err != nil {
		if os.IsNotExist(err) {
			return names, nil
		}
		return nil, err
	}

	skipped := 0
	err = eachLine(bytes.NewReader(data), func(line string, ok bool) {
		if !ok {
			skipped++
			return
		}
		line = strings.TrimSpace(line)
		if line == "" {
			return
		}
		idStr, name, found := strings.Cut(line, ":")
		if !found {
			skipped++
			return
		}
		id, err := models.ParseParticipantID(strings.TrimSpace(idStr))
		if err != nil {
			skipped++
			return
		}
		if _, ok := names[id]; !ok {
			names[id] = name
		}
	})
	if err != nil {
		return nil, err
	}

	if skipped > 0 {
		n.logger.Warnf(providers.TypeApp, "Skipped %d malformed lines in %s", skipped, fileName)
	}
	return names, nil
}

// Save overwrites fileName with the whole table sorted by ascending id.
func (n *NamesFile) Save(fileName string, names models.NameTable) error {
	var buf bytes.Buffer
	for _, id := range names.SortedIDs() {
		buf.WriteString(id.String())
		buf.WriteByte(':')
		buf.WriteString(lineBreaks.Replace(names[id]))
		buf.WriteByte('\n')
	}
	return writeFileAtomic(fileName, buf.Bytes())
}
