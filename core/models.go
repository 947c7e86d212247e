package core

import (
	"encoding/binary"
	"strings"

	"github.com/go-crypt/x/blake2b"
)

// ID is a content-derived identifier.
type ID uint64

// IDFromContent generates a deterministic ID from text content using BLAKE2b hashing.
// This ensures that identical content produces identical IDs.
func IDFromContent(text string) ID {
	h, _ := blake2b.New(8, nil) // 8 bytes = 64 bits
	h.Write([]byte(text))
	sum := h.Sum(nil)
	return ID(binary.LittleEndian.Uint64(sum))
}

// Field is a single named value of a Record.
type Field struct {
	Name  string
	Value string
}

// Record is an ordered mapping of field names to string values.
// It represents one buyer profile or one grant program as loaded from a source table.
// Records are treated as immutable once loaded.
type Record struct {
	Fields []Field
}

// NewRecord builds a Record from fields, keeping their order.
// A repeated field name replaces the earlier value in place.
func NewRecord(fields ...Field) Record {
	r := Record{Fields: make([]Field, 0, len(fields))}
	for _, f := range fields {
		if i := r.indexOf(f.Name); i >= 0 {
			r.Fields[i].Value = f.Value
			continue
		}
		r.Fields = append(r.Fields, f)
	}
	return r
}

func (r Record) indexOf(name string) int {
	for i, f := range r.Fields {
		if f.Name == name {
			return i
		}
	}
	return -1
}

// Get returns the value of the named field and whether it was present.
func (r Record) Get(name string) (string, bool) {
	if i := r.indexOf(name); i >= 0 {
		return r.Fields[i].Value, true
	}
	return "", false
}

// Value returns the value of the named field, or "" if it is missing.
func (r Record) Value(name string) string {
	v, _ := r.Get(name)
	return v
}

// Len returns the number of fields.
func (r Record) Len() int {
	return len(r.Fields)
}

// Text joins all field values in field order, separated by single spaces.
// This is the text that gets embedded for the record.
func (r Record) Text() string {
	values := make([]string, len(r.Fields))
	for i, f := range r.Fields {
		values[i] = f.Value
	}
	return strings.Join(values, " ")
}

// Buyer is a typed view over a buyer profile record.
type Buyer struct {
	Record      Record
	AgencyName  string
	AgencyType  string
	ProductName string
}

// NewBuyer extracts the well-known buyer fields from a record.
// Missing fields are left empty.
func NewBuyer(r Record) *Buyer {
	return &Buyer{
		Record:      r,
		AgencyName:  strings.TrimSpace(r.Value(FieldAgencyName)),
		AgencyType:  strings.TrimSpace(r.Value(FieldAgencyType)),
		ProductName: strings.TrimSpace(r.Value(FieldProductName)),
	}
}

// Text returns the buyer's composite text.
func (b *Buyer) Text() string {
	return b.Record.Text()
}

// ProductTerms splits the product name on "/" into lower-cased, trimmed, non-empty terms.
// "Drone/UAV" yields ["drone", "uav"].
func (b *Buyer) ProductTerms() []string {
	parts := strings.Split(b.ProductName, "/")
	terms := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.ToLower(strings.TrimSpace(p))
		if p != "" {
			terms = append(terms, p)
		}
	}
	return terms
}

// GrantKey identifies a grant program for deduplication.
type GrantKey struct {
	ProgramName string
	Agency      string
}

// Grant is a typed view over a grant program record.
type Grant struct {
	Record              Record
	ProgramName         string
	AdministeringAgency string
	Purpose             string
	ApplicationDeadline string
	AwardAmountRange    string
	EligibleExpenses    string
	FocusAreas          string
	EligibleApplicants  string
}

// NewGrant extracts the well-known grant fields from a record.
// Missing fields are left empty.
func NewGrant(r Record) *Grant {
	return &Grant{
		Record:              r,
		ProgramName:         r.Value(FieldGrantProgramName),
		AdministeringAgency: r.Value(FieldAdministeringAgency),
		Purpose:             r.Value(FieldPurpose),
		ApplicationDeadline: r.Value(FieldApplicationDeadline),
		AwardAmountRange:    r.Value(FieldAwardAmountRange),
		EligibleExpenses:    r.Value(FieldEligibleExpenses),
		FocusAreas:          r.Value(FieldFocusAreas),
		EligibleApplicants:  r.Value(FieldEligibleApplicants),
	}
}

// Text returns the grant's composite text.
func (g *Grant) Text() string {
	return g.Record.Text()
}

// Key returns the grant identity as it appears in a result, with display
// defaults filled in, so two results never share a shown (title, agency) pair.
func (g *Grant) Key() GrantKey {
	return GrantKey{
		ProgramName: OrDefault(g.ProgramName, DefaultProgramName),
		Agency:      OrDefault(g.AdministeringAgency, DefaultAgency),
	}
}

// KeywordText concatenates the fields inspected for keyword matches,
// in the order listed by KeywordFields.
func (g *Grant) KeywordText() string {
	return strings.Join([]string{
		g.EligibleExpenses,
		g.Purpose,
		g.FocusAreas,
		g.EligibleApplicants,
	}, " ")
}

// RepQuery is the three-field input supplied by a sales representative.
type RepQuery struct {
	AgencyType  string `json:"agency_type"`
	ProductType string `json:"product_type"`
	State       string `json:"state"`
}

// Text returns the query text used for the buyer search.
func (q RepQuery) Text() string {
	return q.AgencyType + " " + q.ProductType + " " + q.State
}

// MatchResult is one scored (buyer, grant) pair.
type MatchResult struct {
	GrantTitle      string  `json:"grant_title"`
	Description     string  `json:"description"`
	Agency          string  `json:"agency"`
	Amount          string  `json:"amount"`
	Deadline        string  `json:"deadline"`
	BuyerAgency     string  `json:"buyer_agency"`
	BuyerScore      float64 `json:"buyer_score"`
	GrantScore      float64 `json:"grant_score"`
	ConfidenceScore float64 `json:"confidence_score"`
	Explanation     string  `json:"explanation"`
}

// Key returns the deduplication identity of the result.
func (m MatchResult) Key() GrantKey {
	return GrantKey{ProgramName: m.GrantTitle, Agency: m.Agency}
}
