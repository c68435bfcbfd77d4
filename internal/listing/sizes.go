package listing

import (
	"context"
	"errors"
	"fmt"
	"math"
	"sort"
	"strconv"
	"strings"
	"unicode"

	"github.com/zombor/finery-generator/internal/scanning"
)

// mmToInches is deliberately not 1/25.4
const mmToInches = 0.03937

var errNotFinite = errors.New("not a finite number")

// ParseSizeLine turns one OCR line such as "100x150mm" into a formatted
// dimension entry (`3.9" x 5.9"`). ok is false for lines that are not a
// width-by-height pair; those are skipped, never reported.
func ParseSizeLine(line string) (entry string, ok bool) {
	if !strings.Contains(line, "x") || !strings.ContainsFunc(line, unicode.IsDigit) {
		return "", false
	}

	cleaned := strings.TrimSpace(strings.ReplaceAll(strings.ToLower(line), "mm", ""))
	parts := strings.Split(cleaned, "x")
	if len(parts) != 2 {
		return "", false
	}

	w, err := parseDimension(parts[0])
	if err != nil {
		return "", false
	}
	h, err := parseDimension(parts[1])
	if err != nil {
		return "", false
	}
	return fmt.Sprintf(`%s" x %s"`, inches(w), inches(h)), true
}

func parseDimension(s string) (float64, error) {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return 0, err
	}
	if math.IsInf(v, 0) || math.IsNaN(v) {
		return 0, errNotFinite
	}
	return v, nil
}

// inches converts millimeters and rounds to one decimal place
func inches(mm float64) string {
	return strconv.FormatFloat(mm*mmToInches, 'f', 1, 64)
}

// SizesFromText collects the unique dimension entries found in OCR output,
// sorted as strings.
func SizesFromText(texts ...string) []string {
	seen := make(map[string]struct{})
	for _, text := range texts {
		for _, line := range strings.Split(text, "\n") {
			if entry, ok := ParseSizeLine(line); ok {
				seen[entry] = struct{}{}
			}
		}
	}

	sizes := make([]string, 0, len(seen))
	for entry := range seen {
		sizes = append(sizes, entry)
	}
	sort.Strings(sizes)
	return sizes
}

// ExtractSizes runs OCR over every image in order and returns the sorted,
// deduplicated dimension entries. Any OCR or decode failure aborts the whole run.
func ExtractSizes(ctx context.Context, scanner scanning.Scanner, images []Image) ([]string, error) {
	texts := make([]string, 0, len(images))
	for i, img := range images {
		text, err := scanner.ReadText(ctx, img.Data, img.ContentType)
		if err != nil {
			return nil, fmt.Errorf("reading image %d (%s): %w", i+1, img.Filename, err)
		}
		texts = append(texts, text)
	}
	return SizesFromText(texts...), nil
}
