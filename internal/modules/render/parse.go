package render

import (
	"regexp"
	"strings"
)

// The section editors store structured data as plain text with tiny
// line-based grammars. The parsers here are forgiving: malformed lines
// and incomplete entries are dropped, never reported.

type MenuItem struct {
	Label string
	Link  string
}

type FAQItem struct {
	Question string
	Answer   string
}

type Stat struct {
	Label string
	Value string
}

type TeamMember struct {
	Name string
	Role string
}

type FooterColumn struct {
	Title string
	Links []MenuItem
}

var blockSplit = regexp.MustCompile(`\n\n+`)

// ParseMenuItems reads one "label:link" pair per line. The link keeps any
// later colons (https URLs) and defaults to "#" when missing.
func ParseMenuItems(content string) []MenuItem {
	var items []MenuItem
	for _, line := range strings.Split(content, "\n") {
		if strings.TrimSpace(line) == "" {
			continue
		}
		label, rest, _ := strings.Cut(line, ":")
		link := strings.TrimSpace(rest)
		if link == "" {
			link = "#"
		}
		items = append(items, MenuItem{
			Label: strings.TrimSpace(label),
			Link:  link,
		})
	}
	return items
}

// ParseFAQ reads blank-line separated blocks. Each block contributes the
// first line starting with "Q:" and the first starting with "A:"; blocks
// missing either are dropped.
func ParseFAQ(content string) []FAQItem {
	var items []FAQItem
	for _, block := range blockSplit.Split(content, -1) {
		if strings.TrimSpace(block) == "" {
			continue
		}
		var q, a string
		for _, line := range strings.Split(block, "\n") {
			if q == "" && strings.HasPrefix(line, "Q:") {
				q = strings.TrimSpace(strings.TrimPrefix(line, "Q:"))
			}
			if a == "" && strings.HasPrefix(line, "A:") {
				a = strings.TrimSpace(strings.TrimPrefix(line, "A:"))
			}
		}
		if q != "" && a != "" {
			items = append(items, FAQItem{Question: q, Answer: a})
		}
	}
	return items
}

// ParseStats reads one "label:value" pair per line; lines without a colon
// or with an empty side are dropped.
func ParseStats(content string) []Stat {
	var stats []Stat
	for _, line := range strings.Split(content, "\n") {
		if strings.TrimSpace(line) == "" {
			continue
		}
		parts := strings.Split(line, ":")
		label := strings.TrimSpace(parts[0])
		value := ""
		if len(parts) > 1 {
			value = strings.TrimSpace(parts[1])
		}
		if label != "" && value != "" {
			stats = append(stats, Stat{Label: label, Value: value})
		}
	}
	return stats
}

// ParseTeam reads one "name - role" pair per line; the role keeps any
// later hyphens. Entries missing either part are dropped.
func ParseTeam(content string) []TeamMember {
	var members []TeamMember
	for _, line := range strings.Split(content, "\n") {
		if strings.TrimSpace(line) == "" {
			continue
		}
		name, rest, _ := strings.Cut(line, "-")
		member := TeamMember{
			Name: strings.TrimSpace(name),
			Role: strings.TrimSpace(rest),
		}
		if member.Name != "" && member.Role != "" {
			members = append(members, member)
		}
	}
	return members
}

// ParseGalleryURLs keeps content lines that look like URLs and falls back
// to the section image when the content yields nothing.
func ParseGalleryURLs(content, imageURL string) []string {
	if content != "" {
		var urls []string
		for _, line := range strings.Split(content, "\n") {
			trimmed := strings.TrimSpace(line)
			if strings.HasPrefix(trimmed, "http") {
				urls = append(urls, trimmed)
			}
		}
		return urls
	}
	if imageURL != "" {
		return []string{imageURL}
	}
	return nil
}

// ParseFeatures keeps lines starting with "-" and strips the bullet.
func ParseFeatures(content string) []string {
	var features []string
	for _, line := range strings.Split(content, "\n") {
		trimmed := strings.TrimSpace(line)
		if !strings.HasPrefix(trimmed, "-") {
			continue
		}
		features = append(features, strings.TrimLeft(trimmed, "- \t"))
	}
	return features
}

// ParseTestimonials returns blank-line separated blocks verbatim.
func ParseTestimonials(content string) []string {
	var quotes []string
	for _, block := range strings.Split(content, "\n\n") {
		if strings.TrimSpace(block) == "" {
			continue
		}
		quotes = append(quotes, strings.TrimSpace(block))
	}
	return quotes
}

// ParseFooterColumns reads blank-line separated blocks: the first line is
// the column title, remaining lines are "label:link" entries.
func ParseFooterColumns(content string) []FooterColumn {
	var columns []FooterColumn
	for _, block := range strings.Split(content, "\n\n") {
		if strings.TrimSpace(block) == "" {
			continue
		}
		lines := strings.Split(block, "\n")
		title := strings.TrimSpace(lines[0])
		if title == "" {
			title = "Column"
		}
		col := FooterColumn{Title: title}
		if len(lines) > 1 {
			col.Links = ParseMenuItems(strings.Join(lines[1:], "\n"))
		}
		columns = append(columns, col)
	}
	return columns
}
