// Package leadscope is the client SDK for the leadscope lead-intelligence
// feed. It fetches leads and companies from the read-only HTTP API and
// provides pure in-memory search and dashboard aggregation over the
// returned collections.
package leadscope

import (
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// LeadStatus is the workflow state of a lead. The set is closed; documents
// with no status belong to no state.
type LeadStatus string

// Lead workflow states.
const (
	StatusNew       LeadStatus = "new"
	StatusInReview  LeadStatus = "in_review"
	StatusAccepted  LeadStatus = "accepted"
	StatusRejected  LeadStatus = "rejected"
	StatusConverted LeadStatus = "converted"
)

// Urgency tiers.
const (
	UrgencyHigh   = "high"
	UrgencyMedium = "medium"
	UrgencyLow    = "low"
)

// Lead is a single detected business/procurement signal.
//
// Every attribute except the store identifier is optional in the backing
// documents; pointer fields distinguish an absent field from an empty one.
// Field names follow the upstream ingestion pipeline verbatim, on both the
// BSON and JSON sides.
type Lead struct {
	ID                primitive.ObjectID `bson:"_id" json:"_id"`
	LeadID            *string            `bson:"lead_id,omitempty" json:"lead_id,omitempty"`
	CapturedAt        *string            `bson:"Captured_At,omitempty" json:"Captured_At,omitempty"`
	ClosingDate       *string            `bson:"Closing_Date,omitempty" json:"Closing_Date,omitempty"`
	CombinedText      *string            `bson:"Combined_Text,omitempty" json:"Combined_Text,omitempty"`
	CompanyCanonical  *string            `bson:"Company_Canonical,omitempty" json:"Company_Canonical,omitempty"`
	CompanyName       *string            `bson:"Company_Name,omitempty" json:"Company_Name,omitempty"`
	ContactEmail      *string            `bson:"Contact_Email,omitempty" json:"Contact_Email,omitempty"`
	ContactPhone      *string            `bson:"Contact_Phone,omitempty" json:"Contact_Phone,omitempty"`
	Corrigendum       *string            `bson:"Corrigendum,omitempty" json:"Corrigendum,omitempty"`
	DuplicateSources  any                `bson:"Duplicate_Sources,omitempty" json:"Duplicate_Sources,omitempty"`
	FullReference     *string            `bson:"Full_Reference,omitempty" json:"Full_Reference,omitempty"`
	KeywordMatch      any                `bson:"HPCL_Keyword_Match,omitempty" json:"HPCL_Keyword_Match,omitempty"`
	Products          *string            `bson:"HPCL_Products,omitempty" json:"HPCL_Products,omitempty"`
	LocationClues     *string            `bson:"Location_Clues,omitempty" json:"Location_Clues,omitempty"`
	OpeningDate       *string            `bson:"Opening_Date,omitempty" json:"Opening_Date,omitempty"`
	OrganizationChain *string            `bson:"Organization_Chain,omitempty" json:"Organization_Chain,omitempty"`
	OrganizationName  *string            `bson:"Organization_Name,omitempty" json:"Organization_Name,omitempty"`
	PostDate          *string            `bson:"Post_Date,omitempty" json:"Post_Date,omitempty"`
	Provenance        *string            `bson:"Provenance,omitempty" json:"Provenance,omitempty"`
	SerialNumber      *int64             `bson:"Serial_Number,omitempty" json:"Serial_Number,omitempty"`
	SignalType        *string            `bson:"Signal_Type,omitempty" json:"Signal_Type,omitempty"`
	Source            *string            `bson:"Source,omitempty" json:"Source,omitempty"`
	SourceGovernance  *string            `bson:"Source_Governance,omitempty" json:"Source_Governance,omitempty"`
	SourceTrust       any                `bson:"Source_Trust,omitempty" json:"Source_Trust,omitempty"`
	Summary           *string            `bson:"Summary,omitempty" json:"Summary,omitempty"`
	Title             *string            `bson:"Title,omitempty" json:"Title,omitempty"`
	URL               *string            `bson:"URL,omitempty" json:"URL,omitempty"`
	EPublishedDate    *string            `bson:"e_Published_Date,omitempty" json:"e_Published_Date,omitempty"`
	Status            *LeadStatus        `bson:"status,omitempty" json:"status,omitempty"`
	AssignedOfficer   *string            `bson:"assigned_officer,omitempty" json:"assigned_officer,omitempty"`
	ConfidenceScore   *float64           `bson:"confidence_score,omitempty" json:"confidence_score,omitempty"`
	Urgency           *string            `bson:"urgency,omitempty" json:"urgency,omitempty"`
}

// DisplayTitle returns the first usable label for list rows:
// title, full reference, domain identifier, store identifier.
func (l Lead) DisplayTitle() string {
	for _, v := range []*string{l.Title, l.FullReference, l.LeadID} {
		if s := deref(v); s != "" {
			return s
		}
	}
	return l.ID.Hex()
}

// DisplayCompany returns the organization label, preferring the raw name
// over the canonical one.
func (l Lead) DisplayCompany() string {
	if s := deref(l.CompanyName); s != "" {
		return s
	}
	return deref(l.CompanyCanonical)
}

// HasStatus reports whether the lead carries the given workflow state.
// A lead without a status matches nothing.
func (l Lead) HasStatus(status LeadStatus) bool {
	return l.Status != nil && *l.Status == status
}

// Company is an aggregated profile of an organization that shares leads,
// produced by an upstream aggregation pipeline and read-only here.
type Company struct {
	ID            primitive.ObjectID `bson:"_id" json:"_id"`
	CanonicalName *string            `bson:"canonical_name,omitempty" json:"canonical_name,omitempty"`
	FirstSeen     *string            `bson:"first_seen,omitempty" json:"first_seen,omitempty"`
	LastSeen      *string            `bson:"last_seen,omitempty" json:"last_seen,omitempty"`
	Products      []string           `bson:"hpcl_products,omitempty" json:"hpcl_products,omitempty"`
	IsGovernment  *bool              `bson:"is_government,omitempty" json:"is_government,omitempty"`
	TotalSignals  *int64             `bson:"total_signals,omitempty" json:"total_signals,omitempty"`
	Variants      []string           `bson:"variants,omitempty" json:"variants,omitempty"`
	Emails        []string           `bson:"emails,omitempty" json:"emails,omitempty"`
	Phones        []string           `bson:"phones,omitempty" json:"phones,omitempty"`
	Locations     []string           `bson:"locations,omitempty" json:"locations,omitempty"`
	Sources       map[string]int64   `bson:"sources,omitempty" json:"sources,omitempty"`
}

// DisplayName returns the canonical name, falling back to the store identifier.
func (c Company) DisplayName() string {
	if s := deref(c.CanonicalName); s != "" {
		return s
	}
	return c.ID.Hex()
}

// SignalCount returns the aggregated signal total, zero when absent.
func (c Company) SignalCount() int64 {
	if c.TotalSignals == nil {
		return 0
	}
	return *c.TotalSignals
}

// Stats holds the dashboard counters derived from the raw collections.
type Stats struct {
	TotalLeads     int `json:"totalLeads"`
	NewLeads       int `json:"newLeads"`
	Accepted       int `json:"accepted"`
	Converted      int `json:"converted"`
	TotalCompanies int `json:"totalCompanies"`
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
