// Copyright 2025 Poiesic Systems
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package openai

import "strings"

// formatReply turns a plain-text model reply into the HTML the web client expects.
//
// Replies that already carry section headers are returned untouched. Replies with
// numbered items get their "1." / "2." / "3." lines collected into an ordered list
// and their "- " / "• " lines into an unordered list; other non-markup lines become
// paragraphs. Anything still lacking <h3> or <p> is wrapped paragraph-per-line.
func formatReply(reply string) string {
	if strings.Contains(reply, "1.") && !strings.Contains(reply, "<h3>") {
		reply = formatLists(reply)
	}
	if !strings.Contains(reply, "<h3>") && !strings.Contains(reply, "<p>") {
		reply = "<p>" + strings.ReplaceAll(reply, "\n", "</p><p>") + "</p>"
	}
	return reply
}

func formatLists(reply string) string {
	var b strings.Builder
	var openedOrdered, openedUnordered bool

	for _, line := range strings.Split(reply, "\n") {
		trimmed := strings.TrimSpace(line)
		switch {
		case isNumberedItem(trimmed):
			if !openedOrdered {
				b.WriteString("<h3>Available Grant Options</h3><ol>")
				openedOrdered = true
			}
			b.WriteString("<li>" + listItemText(trimmed) + "</li>")
		case strings.HasPrefix(trimmed, "- ") || strings.HasPrefix(trimmed, "• "):
			if !openedUnordered {
				b.WriteString("<h3>Key Details</h3><ul>")
				openedUnordered = true
			}
			b.WriteString("<li>" + listItemText(trimmed) + "</li>")
		case trimmed != "" && !strings.HasPrefix(trimmed, "<"):
			b.WriteString("<p>" + trimmed + "</p>")
		default:
			b.WriteString(line)
		}
	}

	if openedOrdered {
		b.WriteString("</ol>")
	}
	if openedUnordered {
		b.WriteString("</ul>")
	}
	return b.String()
}

func isNumberedItem(line string) bool {
	return strings.HasPrefix(line, "1.") || strings.HasPrefix(line, "2.") || strings.HasPrefix(line, "3.")
}

// listItemText drops the two-character list marker. "•" is multi-byte, so the
// marker is removed by rune rather than by byte.
func listItemText(line string) string {
	runes := []rune(line)
	if len(runes) <= 2 {
		return ""
	}
	return strings.TrimSpace(string(runes[2:]))
}
