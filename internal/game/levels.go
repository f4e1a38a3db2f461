package game

// Level defines a campaign level with a target tile.
type Level struct {
	ID     int
	Name   string
	Target int     // Target tile value to reach
	Spawn4 float64 // Probability of spawning 4 instead of 2 (0.0-1.0)
}

// Levels is the full campaign ladder. A campaign uses the prefix whose
// targets stay below its winning value, followed by a final level whose
// target is the winning value itself.
// Spawn4 probability increases to make later levels harder.
var Levels = []Level{
	{ID: 1, Name: "Warm-up", Target: 64, Spawn4: 0.10},
	{ID: 2, Name: "Getting Started", Target: 128, Spawn4: 0.10},
	{ID: 3, Name: "Building Momentum", Target: 256, Spawn4: 0.10},
	{ID: 4, Name: "The Climb", Target: 512, Spawn4: 0.10},
	{ID: 5, Name: "Almost There", Target: 1024, Spawn4: 0.10},
	{ID: 6, Name: "Classic 2048", Target: 2048, Spawn4: 0.12},
	{ID: 7, Name: "Beyond Limits", Target: 4096, Spawn4: 0.15},
	{ID: 8, Name: "Master Class", Target: 8192, Spawn4: 0.18},
	{ID: 9, Name: "Grandmaster", Target: 16384, Spawn4: 0.20},
	{ID: 10, Name: "Ultimate Champion", Target: 32768, Spawn4: 0.25},
}

// CampaignLevels returns the levels of a campaign that ends at winning.
// A winning value of zero or less yields no levels.
func CampaignLevels(winning int) []Level {
	if winning <= 0 {
		return nil
	}

	var levels []Level
	for _, lvl := range Levels {
		if lvl.Target >= winning {
			break
		}
		levels = append(levels, lvl)
	}

	final := Level{
		ID:     len(levels) + 1,
		Name:   "Final",
		Target: winning,
		Spawn4: 0.10,
	}
	for _, lvl := range Levels {
		if lvl.Target == winning {
			final = lvl
			final.ID = len(levels) + 1
			break
		}
	}
	return append(levels, final)
}

// LevelCount returns the number of levels in a campaign ending at winning.
func LevelCount(winning int) int {
	return len(CampaignLevels(winning))
}
