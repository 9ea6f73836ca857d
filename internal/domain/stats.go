package domain

// StatCard is one dashboard widget.
type StatCard struct {
	Title string `json:"title"`
	Value any    `json:"value"`
}

// DashboardStats holds up to three role-dependent widgets chosen by the server.
type DashboardStats struct {
	Stat1 *StatCard `json:"stat1,omitempty"`
	Stat2 *StatCard `json:"stat2,omitempty"`
	Stat3 *StatCard `json:"stat3,omitempty"`
}

// Cards returns the present widgets in order.
func (d *DashboardStats) Cards() []StatCard {
	if d == nil {
		return nil
	}
	var cards []StatCard
	for _, c := range []*StatCard{d.Stat1, d.Stat2, d.Stat3} {
		if c != nil {
			cards = append(cards, *c)
		}
	}
	return cards
}

// Statistics is the aggregate returned for a month.
type Statistics struct {
	TotalForms   int `json:"total_forms"`
	TotalUsage   int `json:"total_usage"`
	TotalITUsage int `json:"total_it_usage"`
}

// StatsQuery filters statistics and report exports.
type StatsQuery struct {
	Year         int
	Month        int
	DepartmentID ID
	UserID       ID
}
