package domain

import (
	"sort"
	"strconv"
	"strings"
)

// FormatDocument renders a document as the line-per-field text shown to
// clients. Absent scalar fields render as "Unknown", absent collection
// and text fields as "None".
func FormatDocument(doc Document) string {
	var b strings.Builder
	writeField(&b, "Title", textOr(doc.Title, "Unknown"))
	writeField(&b, "Author", textOr(doc.Author, "Unknown"))
	writeField(&b, "Category", textOr(doc.Category, "Unknown"))
	writeField(&b, "Location", textOr(doc.Location, "Unknown"))
	writeField(&b, "Tags", formatTags(doc.Tags))
	writeField(&b, "Word Count", formatCount(doc.WordCount))
	writeField(&b, "Published Date", textOr(string(doc.PublishedDate), "Unknown"))
	writeField(&b, "Summary", textOr(doc.Summary, "None"))
	writeField(&b, "Source URL", textOr(doc.SourceURL, "Unknown"))
	writeField(&b, "HTML Content", textOr(doc.HTMLContent, "None"))
	return b.String()
}

func writeField(b *strings.Builder, name, value string) {
	b.WriteString(name)
	b.WriteString(": ")
	b.WriteString(value)
	b.WriteString("\n")
}

func textOr(s, fallback string) string {
	if s == "" {
		return fallback
	}
	return s
}

func formatCount(n int) string {
	if n == 0 {
		return "Unknown"
	}
	return strconv.Itoa(n)
}

func formatTags(tags map[string]Tag) string {
	if len(tags) == 0 {
		return "None"
	}
	names := make([]string, 0, len(tags))
	for name := range tags {
		names = append(names, name)
	}
	sort.Strings(names)
	return strings.Join(names, ", ")
}
