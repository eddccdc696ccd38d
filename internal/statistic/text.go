package statistic

import (
	"bufio"
	"chatstat/internal/statistic/interfaces"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

const compressedSuffix = ".zst"

// maxLineSize bounds a single line of a stats or names file.
var maxLineSize = 16 * 1024 * 1024

// readText returns the UTF-8 content of a file, transparently decompressing
// zstd frames and dropping a byte order mark.
func readText(compressor interfaces.CompressorInterface, path string) ([]byte, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	if compressor.IsCompressed(data) {
		data, err = compressor.Decompress(data)
		if err != nil {
			return nil, fmt.Errorf("decompress %s: %w", path, err)
		}
	}
	out, _, err := transform.Bytes(unicode.BOMOverride(unicode.UTF8.NewDecoder()), data)
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", path, err)
	}
	return out, nil
}

// writeFileAtomic writes data next to fileName and renames it into place.
func writeFileAtomic(fileName string, data []byte) error {
	if dir := filepath.Dir(fileName); dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return err
		}
	}

	tmpFile := fileName + ".tmp"
	file, err := os.Create(tmpFile)
	if err != nil {
		return err
	}

	_, err = file.Write(data)
	if err != nil {
		file.Close()
		os.Remove(tmpFile)
		return err
	}

	if err = file.Sync(); err != nil {
		file.Close()
		os.Remove(tmpFile)
		return err
	}

	if err = file.Close(); err != nil {
		os.Remove(tmpFile)
		return err
	}

	return os.Rename(tmpFile, fileName)
}

func wantsCompression(path string) bool {
	return strings.HasSuffix(path, compressedSuffix)
}

// eachLine calls fn with every line of r, without the line break. A line
// longer than maxLineSize is drained and reported with ok false, and reading
// goes on with the next line.
func eachLine(r io.Reader, fn func(line string, ok bool)) error {
	br := bufio.NewReader(r)
	var buf []byte
	oversized := false
	for {
		chunk, isPrefix, err := br.ReadLine()
		if err != nil {
			if errors.Is(err, io.EOF) {
				return nil
			}
			return err
		}
		if !oversized {
			if len(buf)+len(chunk) > maxLineSize {
				oversized = true
				buf = buf[:0]
			} else {
				buf = append(buf, chunk...)
			}
		}
		if isPrefix {
			continue
		}
		if oversized {
			fn("", false)
		} else {
			fn(string(buf), true)
		}
		buf = buf[:0]
		oversized = false
	}
}
