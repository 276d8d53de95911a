package leadscope

import "strings"

// FilterLeads returns the leads whose searchable text contains query as a
// case-insensitive substring, preserving input order. An empty or
// whitespace-only query returns the input unchanged. The input is never
// mutated; the function is pure.
func FilterLeads(leads []Lead, query string) []Lead {
	q := normalizeQuery(query)
	if q == "" {
		return leads
	}
	var out []Lead
	for _, l := range leads {
		if strings.Contains(leadHaystack(l), q) {
			out = append(out, l)
		}
	}
	return out
}

// FilterCompanies is FilterLeads for companies: canonical name, name
// variants and seen locations are searched.
func FilterCompanies(companies []Company, query string) []Company {
	q := normalizeQuery(query)
	if q == "" {
		return companies
	}
	var out []Company
	for _, c := range companies {
		if strings.Contains(companyHaystack(c), q) {
			out = append(out, c)
		}
	}
	return out
}

func normalizeQuery(query string) string {
	return strings.ToLower(strings.TrimSpace(query))
}

// leadHaystack projects a lead onto a single lower-cased string. The field
// list is fixed; absent and empty fields are skipped alike.
func leadHaystack(l Lead) string {
	fields := []*string{
		l.Title,
		l.CompanyName,
		l.CompanyCanonical,
		l.Products,
		l.Summary,
		l.CombinedText,
		l.FullReference,
		l.LeadID,
	}
	parts := make([]string, 0, len(fields))
	for _, f := range fields {
		if s := deref(f); s != "" {
			parts = append(parts, s)
		}
	}
	return strings.ToLower(strings.Join(parts, " "))
}

func companyHaystack(c Company) string {
	parts := make([]string, 0, 1+len(c.Variants)+len(c.Locations))
	if s := deref(c.CanonicalName); s != "" {
		parts = append(parts, s)
	}
	for _, v := range c.Variants {
		if v != "" {
			parts = append(parts, v)
		}
	}
	for _, loc := range c.Locations {
		if loc != "" {
			parts = append(parts, loc)
		}
	}
	return strings.ToLower(strings.Join(parts, " "))
}
