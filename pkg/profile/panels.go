package profile

// Panel identifiers of the dashboard sidebars.
const (
	PanelSmartTriage         = "SmartTriage"
	PanelAIConflictResolver  = "AIConflictResolver"
	PanelEnergyPeakTime      = "EnergyPeakTime"
	PanelMoodDetection       = "MoodDetection"
	PanelSchedulePanel       = "SchedulePanel"
	PanelNetworkStatus       = "NetworkStatus"
	PanelGamificationRewards = "GamificationRewards"
	PanelVoiceCommand        = "VoiceCommand"
)

// Panels lists every known panel identifier.
func Panels() []string {
	return append(DefaultLeftOrder(), DefaultRightOrder()...)
}

// DefaultLeftOrder is the left sidebar of a fresh profile.
func DefaultLeftOrder() []string {
	return []string{PanelSmartTriage, PanelAIConflictResolver, PanelEnergyPeakTime}
}

// DefaultRightOrder is the right sidebar of a fresh profile.
func DefaultRightOrder() []string {
	return []string{PanelMoodDetection, PanelSchedulePanel, PanelNetworkStatus, PanelGamificationRewards, PanelVoiceCommand}
}

// IsPanel reports whether id names a known panel.
func IsPanel(id string) bool {
	for _, p := range Panels() {
		if p == id {
			return true
		}
	}
	return false
}

func knownPanels(order []string) []string {
	out := make([]string, 0, len(order))
	seen := map[string]bool{}
	for _, id := range order {
		if IsPanel(id) && !seen[id] {
			out = append(out, id)
			seen[id] = true
		}
	}
	return out
}
