package game

import (
	"sync"

	"github.com/vovakirdan/tilt/internal/registry"
)

// Variant is a named, registered game configuration.
type Variant struct {
	ID      string
	Title   string
	Options Options
}

// Variants lists the built-in games.
var Variants = []Variant{
	{ID: "2048", Title: "2048", Options: Options{Size: 4, Winning: 2048, Mode: ModeCampaign}},
	{ID: "2048_endless", Title: "2048 (Endless)", Options: Options{Size: 4, Mode: ModeEndless}},
	{ID: "3x3", Title: "3x3 Sprint", Options: Options{Size: 3, Winning: 256, Mode: ModeClassic}},
	{ID: "5x5", Title: "5x5 Classic", Options: Options{Size: 5, Winning: 4096, Mode: ModeClassic}},
	{ID: "6x6", Title: "6x6 (Endless)", Options: Options{Size: 6, Mode: ModeEndless}},
	{ID: CustomID, Title: "Custom", Options: Options{Mode: ModeClassic}},
}

// CustomID is the variant whose board comes entirely from Settings.
const CustomID = "custom"

// Settings are process-wide defaults applied to every variant on creation,
// typically loaded from the configuration file.
type Settings struct {
	Size       int     // Custom variant only
	Winning    int     // Custom variant only; 0 plays endless
	StartTiles int
	Spawn4     float64 // Base spawn-4 probability outside campaigns
	Difficulty Difficulty
}

var (
	settingsMu sync.RWMutex
	settings   = Settings{Size: 4, Winning: 2048, StartTiles: 2, Spawn4: 0.10}
)

// Configure replaces the process-wide settings.
func Configure(s Settings) {
	settingsMu.Lock()
	defer settingsMu.Unlock()
	settings = s
}

// CurrentSettings returns the process-wide settings.
func CurrentSettings() Settings {
	settingsMu.RLock()
	defer settingsMu.RUnlock()
	return settings
}

// FindVariant returns the built-in variant with the given ID.
func FindVariant(id string) (Variant, bool) {
	for _, v := range Variants {
		if v.ID == id {
			return v, true
		}
	}
	return Variant{}, false
}

// Resolve fills a variant's options from the current settings.
func (v Variant) Resolve(seed int64) Options {
	s := CurrentSettings()

	opts := v.Options
	opts.ID = v.ID
	opts.Title = v.Title
	opts.Seed = seed
	opts.StartTiles = s.StartTiles
	opts.Difficulty = s.Difficulty
	if opts.Spawn4 == 0 {
		opts.Spawn4 = s.Spawn4
	}
	if v.ID == CustomID {
		opts.Size = s.Size
		opts.Winning = s.Winning
		if s.Winning <= 0 {
			opts.Mode = ModeEndless
		}
	}
	return opts
}

// NewVariant creates a game for a built-in variant.
func NewVariant(v Variant, seed int64) *Game {
	return New(v.Resolve(seed))
}

func init() {
	for _, v := range Variants {
		registry.Register(v.ID, func() registry.Game {
			return NewVariant(v, 0)
		})
	}
}
