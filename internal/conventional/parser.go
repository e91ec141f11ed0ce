package conventional

import (
	"regexp"
	"strings"
)

// headerPattern matches a Conventional Commits header line:
// type, optional "(scope)", optional "!" breaking marker, ":" separator,
// description. The type is one or more alphanumerics; the scope is any
// run of characters excluding ")".
var headerPattern = regexp.MustCompile(`^([A-Za-z0-9]+)(?:\(([^)]+)\))?(!)?:[ \t]*(.+)$`)

// footerPattern matches one footer line: "token: value" or "token #value".
// The token is BREAKING CHANGE, BREAKING-CHANGE, or a hyphenated word.
var footerPattern = regexp.MustCompile(`^(BREAKING CHANGE|BREAKING-CHANGE|[A-Za-z][A-Za-z0-9]*(?:-[A-Za-z0-9]+)*)(?::[ \t]+| #)(.*)$`)

// Parse applies the Conventional Commits grammar to one commit message.
//
// Parse never fails: any message whose header does not match the grammar
// (missing ":" separator, empty type, empty description after trimming)
// is returned with Malformed set and only Description populated. It is a
// pure function of the message text; commit metadata plays no part.
func Parse(message string) ParsedCommit {
	lines := splitLines(message)
	if len(lines) == 0 {
		return ParsedCommit{Malformed: true}
	}

	header := strings.TrimSpace(lines[0])
	m := headerPattern.FindStringSubmatch(header)
	if m == nil || strings.TrimSpace(m[4]) == "" {
		return ParsedCommit{Description: header, Malformed: true}
	}

	pc := ParsedCommit{
		Type:        strings.ToLower(m[1]),
		Scope:       m[2],
		Breaking:    m[3] == "!",
		Description: strings.TrimSpace(m[4]),
	}

	body, footers := splitBodyFooters(lines[1:])
	pc.Body = body
	pc.Footers = footers

	// A breaking-change footer sets the flag even without the header
	// marker. The flag is an OR across both sources, never reset.
	for _, f := range footers {
		if isBreakingToken(f.Token) {
			pc.Breaking = true
		}
	}

	return pc
}

// splitLines splits a message into lines, tolerating CRLF endings.
func splitLines(message string) []string {
	if message == "" {
		return nil
	}
	lines := strings.Split(message, "\n")
	for i, line := range lines {
		lines[i] = strings.TrimSuffix(line, "\r")
	}
	return lines
}

// splitBodyFooters separates the lines after the header into the body and
// the trailing footer block. The footer block begins at the first line
// matching the footer shape and runs to the end of the message; lines in
// the block that do not match the shape continue the previous footer's
// value.
func splitBodyFooters(rest []string) (string, []Footer) {
	start := -1
	for i, line := range rest {
		if footerPattern.MatchString(line) {
			start = i
			break
		}
	}

	if start == -1 {
		return strings.TrimSpace(strings.Join(rest, "\n")), nil
	}

	body := strings.TrimSpace(strings.Join(rest[:start], "\n"))

	var footers []Footer
	for _, line := range rest[start:] {
		if m := footerPattern.FindStringSubmatch(line); m != nil {
			footers = append(footers, Footer{
				Token: m[1],
				Value: strings.TrimSpace(m[2]),
			})
			continue
		}
		// Continuation line for a multi-line footer value.
		if len(footers) > 0 {
			last := &footers[len(footers)-1]
			last.Value = strings.TrimSpace(last.Value + "\n" + strings.TrimSpace(line))
		}
	}

	return body, footers
}

// isBreakingToken reports whether a footer token declares a breaking change.
func isBreakingToken(token string) bool {
	return token == "BREAKING CHANGE" || token == "BREAKING-CHANGE"
}
