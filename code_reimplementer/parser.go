package code_reimplementer

import (
	"encoding/json"
	"log"
	"strings"

	"github.com/Hazy142/AI-GitHub-Repo-Analyzer/code_reimplementer/models"
)

// StreamParser incrementally extracts complete JSON objects from an
// arbitrarily chunked text stream. The model is asked to emit one
// {"path","content"} object per line, but chunk boundaries can split an
// object anywhere and the stream may carry stray formatting noise, so the
// parser scans brace depth instead of splitting on lines. Braces inside
// JSON string literals are not counted (escape-aware scan), since a file's
// content routinely contains literal brace characters.
//
// After each Feed the buffer holds either nothing or the prefix of one
// still-incomplete object (plus unscanned noise before its first brace).
type StreamParser struct {
	buffer string
}

// NewStreamParser initializes an empty parser.
func NewStreamParser() *StreamParser {
	return &StreamParser{}
}

// Feed appends one chunk to the buffer and returns every record completed by
// it, in the order their objects appeared in the stream. Malformed candidate
// objects are dropped with a warning; they never fail the stream.
func (parser *StreamParser) Feed(chunk string) []models.ReimplementedFile {
	parser.buffer += chunk

	var records []models.ReimplementedFile
	for {
		start := strings.IndexByte(parser.buffer, '{')
		if start < 0 {
			// No object start. A stray '}' means a malformed fragment we
			// keep untouched awaiting more input; anything else is noise
			// (code fences, whitespace) that can be stripped away.
			if !strings.ContainsRune(parser.buffer, '}') {
				parser.buffer = stripNoise(parser.buffer)
			}
			return records
		}

		// Text before the first '{' is noise, e.g. a stray code fence.
		parser.buffer = parser.buffer[start:]

		end, complete := scanObject(parser.buffer)
		if !complete {
			// Incomplete object: retain the buffer and wait for more input.
			return records
		}

		candidate := parser.buffer[:end]
		parser.buffer = parser.buffer[end:]

		record, ok := parseCandidate(candidate)
		if !ok {
			log.Printf("Warning: dropping malformed stream object: %.80s", candidate)
			continue
		}

		records = append(records, record)
	}
}

// Finish discards and returns whatever is left in the buffer - an incomplete
// trailing object or noise. A non-empty residue is not an error and does not
// invalidate previously emitted records.
func (parser *StreamParser) Finish() string {
	residual := parser.buffer
	parser.buffer = ""
	return residual
}

// scanObject scans the buffer from its leading '{' counting brace depth and
// returns the exclusive end index of the balanced object. Braces inside
// string literals are skipped, with backslash escapes honored. Reports
// incomplete when the buffer ends before the depth returns to zero.
func scanObject(buffer string) (end int, complete bool) {
	depth := 0
	inString := false
	escaped := false

	for i := 0; i < len(buffer); i++ {
		c := buffer[i]

		if inString {
			switch {
			case escaped:
				escaped = false
			case c == '\\':
				escaped = true
			case c == '"':
				inString = false
			}
			continue
		}

		switch c {
		case '"':
			inString = true
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 {
				return i + 1, true
			}
		}
	}

	return 0, false
}

// parseCandidate validates a balanced span as a record with non-empty path
// and content.
func parseCandidate(candidate string) (models.ReimplementedFile, bool) {
	var record models.ReimplementedFile
	if err := json.Unmarshal([]byte(candidate), &record); err != nil {
		return models.ReimplementedFile{}, false
	}
	if record.Path == "" || record.Content == "" {
		return models.ReimplementedFile{}, false
	}
	return record, true
}

// stripNoise removes code-fence lines and surrounding whitespace from
// brace-free buffer content.
func stripNoise(buffer string) string {
	var kept []string
	for _, line := range strings.Split(buffer, "\n") {
		if strings.HasPrefix(strings.TrimSpace(line), "```") {
			continue
		}
		kept = append(kept, line)
	}
	return strings.TrimSpace(strings.Join(kept, "\n"))
}
