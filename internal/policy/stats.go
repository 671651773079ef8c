package policy

import (
	"slices"
	"strconv"

	"quadplus/api/internal/models"
)

// Stat is one overview tile.
type Stat struct {
	Title  string `json:"title"`
	Value  string `json:"value"`
	Change string `json:"change"`
}

// StatCounts carries the live register counts the tiles draw from.
type StatCounts struct {
	Projects    int
	TeamMembers int
	Meetings    int
}

// VisibleStats returns the overview tiles for the role. Tile visibility is
// filtered independently from nav visibility: admins do not see the meetings
// tile, and the tasks tile is structural-only.
func VisibleStats(role models.Role, counts StatCounts) []Stat {
	tiles := []struct {
		stat  Stat
		roles []models.Role
	}{
		{
			Stat{"Active Projects", strconv.Itoa(counts.Projects), "+2 this month"},
			[]models.Role{models.RoleSuperAdmin, models.RoleAdmin, models.RoleArchitect, models.RoleCustomer},
		},
		{
			Stat{"Pending Approvals", "5", "3 requiring attention"},
			[]models.Role{models.RoleSuperAdmin, models.RoleAdmin},
		},
		{
			Stat{"Team Members", strconv.Itoa(counts.TeamMembers), "2 new hires"},
			[]models.Role{models.RoleSuperAdmin, models.RoleAdmin, models.RoleArchitect},
		},
		{
			Stat{"Upcoming Meetings", strconv.Itoa(counts.Meetings), "This week"},
			[]models.Role{models.RoleSuperAdmin, models.RoleArchitect},
		},
		{
			Stat{"Assigned Tasks", "8", "2 new tasks"},
			[]models.Role{models.RoleStructural},
		},
	}

	stats := make([]Stat, 0, len(tiles))
	for _, tile := range tiles {
		if slices.Contains(tile.roles, role) {
			stats = append(stats, tile.stat)
		}
	}
	return stats
}
