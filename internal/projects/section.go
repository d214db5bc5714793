package projects

import (
	"strings"

	"github.com/Zachkp/portfolio-api/internal/sheet"
)

// MemberCountColumn holds "<members>, <section code>" in the workbook.
const MemberCountColumn = "member count"

// AllSections selects every project regardless of section.
const AllSections = "ALL"

type SectionInfo struct {
	Code  string `json:"key"`
	Label string `json:"label"`
}

// Sections lists the filter options in display order.
var Sections = []SectionInfo{
	{Code: AllSections, Label: "All"},
	{Code: "M", Label: "Mechanical & Robotics"},
	{Code: "S", Label: "Software Development"},
	{Code: "I", Label: "IoT & Embedded"},
	{Code: "G", Label: "Game Development"},
}

// SectionLabel returns the display label for code, or "" when unknown.
func SectionLabel(code string) string {
	if code == "" || code == AllSections {
		return ""
	}
	for _, s := range Sections {
		if s.Code == code {
			return s.Label
		}
	}
	return ""
}

// Section extracts the section code from the member count column. Only a
// string containing a comma carries a code; its second segment, trimmed, is
// the code. Anything else yields "".
func Section(rec *sheet.Record) string {
	s, ok := rec.Get(MemberCountColumn).Str()
	if !ok {
		return ""
	}
	parts := strings.Split(s, ",")
	if len(parts) < 2 {
		return ""
	}
	return strings.TrimSpace(parts[1])
}
