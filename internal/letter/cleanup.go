package letter

import (
	"regexp"
	"strings"
)

// MinLength is the shortest cleaned letter body ever returned. Anything
// shorter is replaced by the generic template.
const MinLength = 100

// GenericLetter is the fixed fallback body. It must survive Clean unchanged:
// no salutation, no closing phrase, no leak markers.
const GenericLetter = "I am excited to apply for this position. My background and hands-on experience align well with the responsibilities described in the posting, and I am confident I can contribute from day one. I would welcome the opportunity to discuss how my skills can support your team's goals."

var (
	salutationRe = regexp.MustCompile(`(?im)^[ \t]*dear\b[^\n]*$`)
	closingRe    = regexp.MustCompile(`(?im)^[ \t]*(sincerely|best regards|kind regards|warm regards|warmest regards|regards|respectfully|yours truly|yours sincerely|best|thank you)[,.!]?[ \t]*$`)
	fenceRe      = regexp.MustCompile("(?s)^```[a-zA-Z]*\\n?(.*?)\\n?```$")
)

// leakMarkers are instruction phrases that betray leaked prompt text inside
// generated prose.
var leakMarkers = []string{
	"write a cover letter",
	"write a professional cover letter",
	"job description:",
	"resume:",
	"candidate resume:",
	"instructions:",
	"your task is",
	"do not include",
	"respond with only",
}

// Clean reduces raw model output to a letter body: no fences, no salutation,
// no signature block, no leaked prompt text, no duplicated body. The
// operation is idempotent and never returns fewer than MinLength characters.
func Clean(raw string) string {
	text := stripFences(strings.TrimSpace(raw))

	text = sliceBody(text)
	text = stripLeaks(text)

	text = strings.TrimSpace(text)
	if len(text) < MinLength {
		return GenericLetter
	}
	return text
}

// stripFences removes a markdown code fence wrapping the whole text.
func stripFences(text string) string {
	if m := fenceRe.FindStringSubmatch(text); m != nil {
		return strings.TrimSpace(m[1])
	}
	return text
}

// sliceBody runs the positional stage of cleanup: locate the salutation,
// locate the closing, slice the letter body between them. A second
// salutation marks a duplicated letter and truncates the body. Everything
// before the first salutation (leaked job description, preamble) is dropped.
func sliceBody(text string) string {
	salutations := salutationRe.FindAllStringIndex(text, 2)

	start := 0
	if len(salutations) > 0 {
		start = salutations[0][1]
	}
	end := len(text)
	if len(salutations) > 1 && salutations[1][0] > start {
		end = salutations[1][0]
	}
	body := text[start:end]

	if loc := closingRe.FindStringIndex(body); loc != nil {
		// The closing phrase and whatever follows it (the name line) are the
		// signature block.
		body = body[:loc[0]]
	}

	return body
}

// stripLeaks removes leaked instruction text: from each known marker phrase
// up to the next salutation occurrence, or to the end when none follows.
func stripLeaks(body string) string {
	for _, marker := range leakMarkers {
		for {
			idx := indexFold(body, marker)
			if idx < 0 {
				break
			}
			rest := body[idx:]
			if loc := salutationRe.FindStringIndex(rest); loc != nil {
				// Drop the leaked text together with the salutation line that
				// follows it; the body resumes after that line.
				body = body[:idx] + rest[loc[1]:]
				continue
			}
			body = body[:idx]
		}
	}
	return body
}

func indexFold(s, substr string) int {
	return strings.Index(strings.ToLower(s), strings.ToLower(substr))
}
