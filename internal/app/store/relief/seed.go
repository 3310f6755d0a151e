// internal/app/store/relief/seed.go
package reliefstore

import (
	"time"

	"github.com/dalemusser/sahara/internal/domain/models"
)

func ts(s string) time.Time {
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		panic(err)
	}
	return t
}

// SeedRequests returns a fresh copy of the built-in demo requests.
func SeedRequests() []models.HelpRequest {
	return []models.HelpRequest{
		{
			ID: "REQ-001", Title: "Medical Supplies Needed",
			Description: "Need insulin and basic medical supplies for diabetic patient",
			Category:    "medical", Location: "Downtown District, Block A",
			Priority: models.PriorityHigh, Status: models.StatusCompleted,
			VictimID: "victim1", VictimName: "John Doe",
			AssignedVolunteerID: "vol1", AssignedVolunteerName: "Dr. Sarah Smith",
			CreatedAt: ts("2024-01-15T10:00:00Z"), UpdatedAt: ts("2024-01-15T14:30:00Z"),
		},
		{
			ID: "REQ-002", Title: "Temporary Shelter",
			Description: "Family of 4 needs temporary shelter after house damage",
			Category:    "shelter", Location: "Riverside Area, Zone 3",
			Priority: models.PriorityCritical, Status: models.StatusInProgress,
			VictimID: "victim1", VictimName: "John Doe",
			AssignedVolunteerID: "vol2", AssignedVolunteerName: "Mike Johnson",
			CreatedAt: ts("2024-01-14T08:00:00Z"), UpdatedAt: ts("2024-01-14T12:00:00Z"),
		},
		{
			ID: "REQ-003", Title: "Food and Water",
			Description: "Urgent need for clean water and non-perishable food items",
			Category:    "food", Location: "North Hills, Sector 7",
			Priority: models.PriorityHigh, Status: models.StatusAssigned,
			VictimID: "victim2", VictimName: "Maria Garcia",
			AssignedVolunteerID: "vol3", AssignedVolunteerName: "Lisa Chen",
			CreatedAt: ts("2024-01-13T15:00:00Z"), UpdatedAt: ts("2024-01-13T16:00:00Z"),
		},
		{
			ID: "REQ-004", Title: "Transportation Help",
			Description: "Need transportation to evacuation center",
			Category:    "transport", Location: "East Side, Building 12",
			Priority: models.PriorityMedium, Status: models.StatusPending,
			VictimID: "victim3", VictimName: "Robert Wilson",
			CreatedAt: ts("2024-01-12T09:00:00Z"), UpdatedAt: ts("2024-01-12T09:00:00Z"),
		},
		{
			ID: "REQ-005", Title: "Emergency Medication Delivery",
			Description: "Elderly patient needs heart medication urgently - prescription ready at pharmacy",
			Category:    "medical", Location: "Westside Community, Apartment 4B",
			Priority: models.PriorityCritical, Status: models.StatusPending,
			VictimID: "victim4", VictimName: "Eleanor Thompson",
			CreatedAt: ts("2024-01-16T07:30:00Z"), UpdatedAt: ts("2024-01-16T07:30:00Z"),
		},
		{
			ID: "REQ-006", Title: "Debris Removal",
			Description: "Tree fallen across driveway, blocking emergency vehicle access",
			Category:    "rescue", Location: "Oak Street, House #45",
			Priority: models.PriorityHigh, Status: models.StatusPending,
			VictimID: "victim5", VictimName: "Carlos Rodriguez",
			CreatedAt: ts("2024-01-16T06:15:00Z"), UpdatedAt: ts("2024-01-16T06:15:00Z"),
		},
		{
			ID: "REQ-007", Title: "Baby Formula and Supplies",
			Description: "New mother needs baby formula, diapers, and infant supplies",
			Category:    "supplies", Location: "Central Park Area, Building C",
			Priority: models.PriorityHigh, Status: models.StatusPending,
			VictimID: "victim6", VictimName: "Amanda Foster",
			CreatedAt: ts("2024-01-16T05:45:00Z"), UpdatedAt: ts("2024-01-16T05:45:00Z"),
		},
		{
			ID: "REQ-008", Title: "Pet Rescue and Care",
			Description: "Two cats trapped in flooded basement, need immediate rescue",
			Category:    "rescue", Location: "Riverside District, Blue House",
			Priority: models.PriorityMedium, Status: models.StatusPending,
			VictimID: "victim7", VictimName: "Jennifer Kim",
			CreatedAt: ts("2024-01-16T04:20:00Z"), UpdatedAt: ts("2024-01-16T04:20:00Z"),
		},
		{
			ID: "REQ-009", Title: "Generator and Power Tools",
			Description: "Need portable generator to power medical equipment for disabled resident",
			Category:    "equipment", Location: "Hillside Neighborhood, Unit 12",
			Priority: models.PriorityCritical, Status: models.StatusPending,
			VictimID: "victim8", VictimName: "Michael Chen",
			CreatedAt: ts("2024-01-16T03:10:00Z"), UpdatedAt: ts("2024-01-16T03:10:00Z"),
		},
		{
			ID: "REQ-010", Title: "Warm Clothing and Blankets",
			Description: "Family lost everything in flood, need warm clothes and bedding",
			Category:    "supplies", Location: "Valley View, Trailer Park",
			Priority: models.PriorityMedium, Status: models.StatusPending,
			VictimID: "victim9", VictimName: "Sarah Williams",
			CreatedAt: ts("2024-01-16T02:30:00Z"), UpdatedAt: ts("2024-01-16T02:30:00Z"),
		},
	}
}

// SeedVolunteers returns a fresh copy of the built-in demo volunteers.
func SeedVolunteers() []models.Volunteer {
	return []models.Volunteer{
		{ID: "vol1", Name: "Dr. Sarah Smith", Email: "sarah@volunteer.com", Phone: "+1-555-0101",
			Location: "Downtown District", Skills: "Medical aid, First aid, Emergency response",
			Status: models.VolunteerAvailable, Rating: 4.9, CompletedTasks: 23},
		{ID: "vol2", Name: "Mike Johnson", Email: "mike@volunteer.com", Phone: "+1-555-0102",
			Location: "Riverside Area", Skills: "Construction, Shelter setup, Heavy lifting",
			Status: models.VolunteerOnMission, Rating: 4.7, CompletedTasks: 18},
		{ID: "vol3", Name: "Lisa Chen", Email: "lisa@volunteer.com", Phone: "+1-555-0103",
			Location: "North Hills", Skills: "Food distribution, Logistics, Translation",
			Status: models.VolunteerAvailable, Rating: 4.8, CompletedTasks: 31},
		{ID: "vol4", Name: "David Brown", Email: "david@volunteer.com", Phone: "+1-555-0104",
			Location: "East Side", Skills: "Transportation, Vehicle maintenance, Navigation",
			Status: models.VolunteerAvailable, Rating: 4.6, CompletedTasks: 15},
		{ID: "vol5", Name: "Dr. Emily Rodriguez", Email: "emily@volunteer.com", Phone: "+1-555-0105",
			Location: "Westside Community", Skills: "Emergency medicine, Pediatric care, Pharmacy",
			Status: models.VolunteerAvailable, Rating: 4.9, CompletedTasks: 42},
		{ID: "vol6", Name: "James Wilson", Email: "james@volunteer.com", Phone: "+1-555-0106",
			Location: "Oak Street Area", Skills: "Tree removal, Heavy machinery, Construction",
			Status: models.VolunteerAvailable, Rating: 4.5, CompletedTasks: 28},
		{ID: "vol7", Name: "Maria Santos", Email: "maria@volunteer.com", Phone: "+1-555-0107",
			Location: "Central Park Area", Skills: "Childcare, Family support, Supply distribution",
			Status: models.VolunteerAvailable, Rating: 4.8, CompletedTasks: 35},
		{ID: "vol8", Name: "Alex Thompson", Email: "alex@volunteer.com", Phone: "+1-555-0108",
			Location: "Riverside District", Skills: "Animal rescue, Veterinary aid, Water rescue",
			Status: models.VolunteerAvailable, Rating: 4.7, CompletedTasks: 19},
	}
}
