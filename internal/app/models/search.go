package models

import "strings"

// SearchField selects the research attribute a catalog query matches on
type SearchField string

const (
	SearchByProf        SearchField = "prof"
	SearchByTitle       SearchField = "title"
	SearchByNumber      SearchField = "number"
	SearchByYear        SearchField = "year"
	SearchBySemester    SearchField = "semester"
	SearchByDescription SearchField = "description"
)

// SearchFields lists the accepted q_option values
var SearchFields = []SearchField{
	SearchByProf,
	SearchByTitle,
	SearchByNumber,
	SearchByYear,
	SearchBySemester,
	SearchByDescription,
}

// ParseSearchField maps a q_option value to a SearchField. An empty option
// defaults to title.
func ParseSearchField(raw string) (SearchField, bool) {
	raw = strings.ToLower(strings.TrimSpace(raw))
	if raw == "" {
		return SearchByTitle, true
	}
	for _, f := range SearchFields {
		if string(f) == raw {
			return f, true
		}
	}
	return SearchField(raw), false
}
