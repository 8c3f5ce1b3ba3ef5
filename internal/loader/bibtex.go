package loader

import (
	"fmt"
	"os"
	"regexp"
	"strings"

	"github.com/kailas-cloud/ragscore/internal/domain/record"
)

// BibTeX entries look like @article{key, field = {value}, ...}.
// The parser is intentionally minimal: flat brace-delimited or quoted
// field values, no nested braces or string macros, matching what JabRef
// exports for the fields this loader consumes.
var (
	bibEntryRe = regexp.MustCompile(`(?s)@(\w+)\{([^,]+),(.*?)\n\}`)
	bibFieldRe = regexp.MustCompile(`(\w+)\s*=\s*(?:\{([^}]*)\}|"([^"]*)")`)
)

// loadBibTeX reads a JabRef/BibTeX export. The title becomes the query,
// the abstract the context (falling back to the note field) and the
// ground truth; BibTeX carries no generated answers.
func loadBibTeX(path string) ([]record.Record, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("open dataset: %w", err)
	}

	var recs []record.Record
	for _, entry := range bibEntryRe.FindAllStringSubmatch(string(data), -1) {
		fields := map[string]string{}
		for _, m := range bibFieldRe.FindAllStringSubmatch(entry[3], -1) {
			value := m[2]
			if value == "" {
				value = m[3]
			}
			fields[strings.ToLower(m[1])] = strings.TrimSpace(value)
		}

		context := fields["abstract"]
		if context == "" {
			context = fields["note"]
		}

		rec := record.New(fields["title"], context, fields["answer"])
		recs = append(recs, rec.WithGroundTruth(fields["abstract"]))
	}
	return recs, nil
}
