package domain

import (
	"fmt"
	"strings"
	"time"

	apperrors "dragochi/internal/platform/errors"
	"dragochi/internal/platform/slug"
)

type Game struct {
	ID        string
	Name      string
	Icon      string
	CreatedAt time.Time
}

type Friend struct {
	ID        string
	Name      string
	Handle    string
	CreatedAt time.Time
}

func ValidateName(kind, name string) (string, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return "", fmt.Errorf("%w: %s name is required", apperrors.ErrInvalidInput, kind)
	}
	return name, nil
}

// CanonicalGame is an entry of the built-in catalog. Aliases are older names
// that should be folded into the canonical entry.
type CanonicalGame struct {
	Name    string
	Icon    string
	Aliases []string
}

var DefaultGames = []CanonicalGame{
	{Name: "Apex Legends", Icon: "apex"},
	{Name: "LOL", Icon: "lol", Aliases: []string{"league of legends", "lol"}},
	{Name: "World War Z", Icon: "wwz", Aliases: []string{"wwz"}},
	{Name: "Clash Royale", Icon: "clash_royale", Aliases: []string{"clash royale", "clash_royale"}},
	{Name: "Valorant", Icon: "volarant", Aliases: []string{"valorant"}},
}

// RetiredGameKey identifies a game that was dropped from the catalog.
const RetiredGameKey = "genshin"

var DefaultFriendNames = []string{
	"Mason", "Kai", "Noah", "Leo", "Aiden", "Ryan", "Evan", "Jude",
	"Liam", "Owen", "Ava", "Mia", "Luna", "Ivy", "Nora",
}

func (c CanonicalGame) Matches(name string) bool {
	key := slug.Key(name)
	if key == slug.Key(c.Name) {
		return true
	}
	for _, alias := range c.Aliases {
		if slug.Key(alias) == key {
			return true
		}
	}
	return false
}

type SyncPlan struct {
	Updates []Game
	Creates []CanonicalGame
	Deletes []string
}

func (p SyncPlan) Empty() bool {
	return len(p.Updates) == 0 && len(p.Creates) == 0 && len(p.Deletes) == 0
}

// PlanSync works out how to bring existing games in line with DefaultGames.
// A canonical entry claims the game with the same icon first, then the first game
// whose name matches it; otherwise it is created. Retired games are deleted.
func PlanSync(existing []Game) SyncPlan {
	games := append([]Game(nil), existing...)
	plan := SyncPlan{}
	claimed := map[int]bool{}

	for _, canonical := range DefaultGames {
		idx := -1
		for i, g := range games {
			if !claimed[i] && g.Icon == canonical.Icon {
				idx = i
				break
			}
		}
		if idx < 0 {
			for i, g := range games {
				if !claimed[i] && canonical.Matches(g.Name) {
					idx = i
					break
				}
			}
		}
		if idx < 0 {
			plan.Creates = append(plan.Creates, canonical)
			continue
		}
		claimed[idx] = true
		g := games[idx]
		if g.Name != canonical.Name || g.Icon != canonical.Icon {
			g.Name, g.Icon = canonical.Name, canonical.Icon
			plan.Updates = append(plan.Updates, g)
		}
	}

	for i, g := range games {
		if claimed[i] {
			continue
		}
		if slug.Key(g.Name) == RetiredGameKey || g.Icon == RetiredGameKey {
			plan.Deletes = append(plan.Deletes, g.ID)
		}
	}
	return plan
}
