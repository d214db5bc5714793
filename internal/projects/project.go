// Package projects shapes raw worksheet records into filterable, linkable
// project views.
package projects

import (
	"strconv"
	"strings"

	"github.com/Zachkp/portfolio-api/internal/sheet"
)

// TitleColumns are checked in order for the project title.
var TitleColumns = []string{"name", "Title", "title"}

// Project is a normalized record. Fields holds every original column; the
// remaining fields are derived from it.
type Project struct {
	Fields       *sheet.Record `json:"fields"`
	Section      string        `json:"section"`
	SectionLabel string        `json:"sectionLabel,omitempty"`
	Slug         string        `json:"slug"`
	Identity     Identity      `json:"identity"`
	Title        string        `json:"title"`
	DisplayDate  string        `json:"displayDate,omitempty"`
	Technologies []string      `json:"technologies,omitempty"`
	Features     []string      `json:"features,omitempty"`
	Gallery      []string      `json:"gallery,omitempty"`
	Sources      []string      `json:"sources,omitempty"`
}

// Normalize derives a Project for every record. The slug is the explicit id
// when one exists and otherwise the position in records, so callers must
// pass the full unfiltered sequence.
func Normalize(records []*sheet.Record) []Project {
	out := make([]Project, 0, len(records))
	for i, rec := range records {
		out = append(out, normalizeOne(rec, i))
	}
	return out
}

// FromMatch builds the view for a lookup result.
func FromMatch(m Match) Project {
	return normalizeOne(m.Record, m.Index)
}

func normalizeOne(rec *sheet.Record, index int) Project {
	p := Project{
		Fields:       rec,
		Section:      Section(rec),
		Title:        Title(rec),
		DisplayDate:  FormatDate(rec.Get("date")),
		Technologies: SplitList(rec.Get("technologies")),
		Features:     SplitList(rec.Get("features")),
		Gallery:      SplitList(rec.Get("gallery")),
		Sources:      Links(rec.Get("sources")),
	}
	p.SectionLabel = SectionLabel(p.Section)

	if id, ok := ExplicitID(rec); ok {
		p.Slug, p.Identity = id, IdentityColumn
	} else {
		p.Slug, p.Identity = strconv.Itoa(index), IdentityIndex
	}
	return p
}

// Title returns the first non-empty title column.
func Title(rec *sheet.Record) string {
	for _, col := range TitleColumns {
		if v := rec.Get(col); v.Truthy() {
			return v.Text()
		}
	}
	return ""
}

// SplitList splits a comma-separated cell into trimmed, non-empty items.
func SplitList(v sheet.Value) []string {
	s, ok := v.Str()
	if !ok || s == "" {
		return nil
	}
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

// Links returns the http(s) URLs in a sources cell.
func Links(v sheet.Value) []string {
	var out []string
	for _, item := range SplitList(v) {
		if strings.HasPrefix(item, "http") {
			out = append(out, item)
		}
	}
	return out
}

// Filter keeps the projects whose section equals code, in their original
// order. An empty code or ALL returns projects unchanged.
func Filter(items []Project, code string) []Project {
	if code == "" || strings.EqualFold(code, AllSections) {
		return items
	}
	out := make([]Project, 0, len(items))
	for _, p := range items {
		if p.Section == code {
			out = append(out, p)
		}
	}
	return out
}
