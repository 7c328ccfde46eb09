package avatar

// Profile is the static avatar descriptor served to the cockpit UI.
type Profile struct {
	ModelURL    string            `json:"ready_player_me_url"`
	Pose        string            `json:"pose"`
	Background  string            `json:"background"`
	Accessories map[string]string `json:"accessories"`
}

// DefaultProfile returns the cockpit's stock avatar preset.
func DefaultProfile() Profile {
	return Profile{
		ModelURL:   "https://models.readyplayer.me/64d8c1c5474edc001d7c41e0.glb",
		Pose:       "standing",
		Background: "#1e1e2f",
		Accessories: map[string]string{
			"glasses": "cyber",
			"outfit":  "casual",
		},
	}
}
