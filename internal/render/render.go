// Package render prints articles, topics and status lines to a terminal.
package render

import (
	"fmt"
	"io"
	"strings"
	"time"

	"aiwire/internal/models"
)

const (
	defaultWidth = 100
	timeLayout   = "2006-01-02 15:04"
)

type Printer struct {
	out   io.Writer
	width int
}

// NewPrinter writes to out, wrapping descriptions at width columns. A
// non-positive width uses the default.
func NewPrinter(out io.Writer, width int) *Printer {
	if width <= 0 {
		width = defaultWidth
	}
	return &Printer{out: out, width: width}
}

// Articles prints a header with the summary followed by one block per article
func (p *Printer) Articles(articles []models.Article, summary models.Summary, lastUpdated time.Time) {
	header := headerStyle.Render("AI Wire")
	meta := summaryStyle.Render(summary.Text)
	if !lastUpdated.IsZero() {
		meta += summaryStyle.Render(" · updated " + lastUpdated.Local().Format(timeLayout))
	}
	fmt.Fprintf(p.out, "%s  %s\n\n", header, meta)

	body := descriptionStyle.Width(p.width)
	for i, article := range articles {
		line := titleStyle.Render(fmt.Sprintf("%2d. %s", i+1, article.DisplayTitle()))
		fmt.Fprintln(p.out, line)

		info := sourceStyle.Render(article.Source)
		if ts := article.Timestamp(); !ts.IsZero() {
			info += "  " + timeStyle.Render(ts.Local().Format(timeLayout))
		}
		fmt.Fprintln(p.out, "    "+info)

		if article.Description != "" {
			fmt.Fprintln(p.out, body.Render(article.Description))
		}
		fmt.Fprintln(p.out, linkStyle.Render(article.Link))
		fmt.Fprintln(p.out)
	}
}

// Status prints a status line, nothing when the message is empty
func (p *Printer) Status(status models.Status) {
	if status.Message == "" {
		return
	}
	style, ok := statusStyles[string(status.Severity)]
	if !ok {
		style = statusStyles["info"]
	}
	fmt.Fprintln(p.out, style.Render(status.Message))
}

func (p *Printer) Topics(topics []models.Topic) {
	for _, topic := range topics {
		fmt.Fprintf(p.out, "%s  %s\n", topicStyle.Render(topic.Name), summaryStyle.Render(strings.Join(topic.QueryVariants, ", ")))
	}
}
