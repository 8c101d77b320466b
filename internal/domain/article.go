package domain

import (
	"encoding/json"
	"strconv"
	"strings"
)

// ArticleRecord is one machine-extracted bibliographic entry from a monthly results file.
type ArticleRecord struct {
	PMID            string
	Title           string
	Journal         string
	Authors         string
	Abstract        string
	DOI             string
	PublicationDate string
}

// ArticleIndex maps a trimmed PMID to its extracted record.
type ArticleIndex map[string]ArticleRecord

// Lookup returns the record for id, if indexed.
func (idx ArticleIndex) Lookup(id string) (ArticleRecord, bool) {
	rec, ok := idx[id]
	return rec, ok
}

type articleJSON struct {
	PMID             json.RawMessage `json:"PMID"`
	Title            *string         `json:"Title"`
	Journal          *string         `json:"Journal"`
	Authors          *string         `json:"Authors"`
	Abstract         *string         `json:"Abstract"`
	DOI              *string         `json:"DOI"`
	PublicationDate  *string         `json:"Publication_Date"`
	PublicationDate2 *string         `json:"PublicationDate"`
}

// UnmarshalJSON accepts PMID as a string or a number and either spelling of the publication date key.
func (a *ArticleRecord) UnmarshalJSON(data []byte) error {
	var raw articleJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	*a = ArticleRecord{
		PMID:            strings.TrimSpace(rawScalar(raw.PMID)),
		Title:           deref(raw.Title),
		Journal:         deref(raw.Journal),
		Authors:         deref(raw.Authors),
		Abstract:        deref(raw.Abstract),
		DOI:             deref(raw.DOI),
		PublicationDate: deref(raw.PublicationDate),
	}
	if a.PublicationDate == "" {
		a.PublicationDate = deref(raw.PublicationDate2)
	}
	return nil
}

// MarshalJSON writes the record back in the extracted-file shape.
func (a ArticleRecord) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		PMID            string `json:"PMID"`
		Title           string `json:"Title"`
		Journal         string `json:"Journal"`
		Authors         string `json:"Authors"`
		Abstract        string `json:"Abstract"`
		DOI             string `json:"DOI"`
		PublicationDate string `json:"Publication_Date"`
	}{a.PMID, a.Title, a.Journal, a.Authors, a.Abstract, a.DOI, a.PublicationDate})
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

// rawScalar renders a JSON string or number as plain text; anything else is empty.
func rawScalar(msg json.RawMessage) string {
	if len(msg) == 0 {
		return ""
	}

	var s string
	if err := json.Unmarshal(msg, &s); err == nil {
		return s
	}

	var n json.Number
	if err := json.Unmarshal(msg, &n); err == nil {
		if i, err := strconv.ParseInt(n.String(), 10, 64); err == nil {
			return strconv.FormatInt(i, 10)
		}
		return n.String()
	}
	return ""
}
