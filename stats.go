package leadscope

// ComputeStats derives the dashboard counters from the raw collections.
// Status buckets require an exact literal match; a lead without a status
// counts toward none of them. Pure: recomputed on every call, nothing is
// accumulated or cached.
func ComputeStats(leads []Lead, companies []Company) Stats {
	stats := Stats{
		TotalLeads:     len(leads),
		TotalCompanies: len(companies),
	}
	for _, l := range leads {
		switch {
		case l.HasStatus(StatusNew):
			stats.NewLeads++
		case l.HasStatus(StatusAccepted):
			stats.Accepted++
		case l.HasStatus(StatusConverted):
			stats.Converted++
		}
	}
	return stats
}
