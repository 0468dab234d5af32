package loader

import (
	"encoding/csv"
	"regexp"
	"strconv"
	"strings"

	"github.com/lixenwraith/tilecast/entity"
)

// numericPrefix matches the leading float literal of a cleaned attribute field
var numericPrefix = regexp.MustCompile(`^[+-]?(\d+\.?\d*|\.\d+)([eE][+-]?\d+)?`)

// attributeNoise is stripped from attribute fields before parsing
var attributeNoise = strings.NewReplacer(
	"$", "", "€", "", "£", "", "¥", "",
	",", "", " ", "", "\u00a0", "", "\"", "", "'", "",
)

// ParseRows converts a CSV export into entities in row order
// The first line is a header and is dropped; blank lines and rows without a name are skipped
func ParseRows(text string) []entity.Entity {
	text = strings.ReplaceAll(text, "\r\n", "\n")
	lines := strings.Split(text, "\n")
	if len(lines) == 0 {
		return nil
	}

	out := make([]entity.Entity, 0, len(lines)-1)
	for _, line := range lines[1:] {
		if strings.TrimSpace(line) == "" {
			continue
		}
		fields := splitFields(line)
		name := strings.TrimSpace(fields[0])
		if name == "" {
			continue
		}
		var attr float64
		if len(fields) > 1 {
			attr = ParseAttribute(fields[1])
		}
		out = append(out, entity.Entity{Name: name, Attribute: attr})
	}
	return out
}

// splitFields honors quoted fields and falls back to a plain comma split
// Always returns at least one field
func splitFields(line string) []string {
	r := csv.NewReader(strings.NewReader(line))
	r.FieldsPerRecord = -1
	r.LazyQuotes = true
	r.TrimLeadingSpace = true
	fields, err := r.Read()
	if err != nil || len(fields) == 0 {
		return strings.Split(line, ",")
	}
	return fields
}

// ParseAttribute parses a currency-formatted number such as "$150,000.50"
// Currency symbols and grouping are stripped; the longest numeric prefix wins;
// anything unparseable yields 0
func ParseAttribute(s string) float64 {
	cleaned := attributeNoise.Replace(strings.TrimSpace(s))
	m := numericPrefix.FindString(cleaned)
	if m == "" {
		return 0
	}
	v, err := strconv.ParseFloat(m, 64)
	if err != nil {
		return 0
	}
	return v
}
