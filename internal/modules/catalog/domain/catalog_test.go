package domain

import "testing"

func TestPlanSyncRenamesAliasesAndRemovesRetired(t *testing.T) {
	t.Parallel()
	plan := PlanSync([]Game{
		{ID: "1", Name: "league of legends"},
		{ID: "2", Name: "Clash_Royale", Icon: ""},
		{ID: "3", Name: "Apex Legends", Icon: "apex"},
		{ID: "4", Name: "Genshin", Icon: ""},
		{ID: "5", Name: "Minecraft"},
		{ID: "6", Name: "Old Valorant", Icon: "volarant"},
	})

	if len(plan.Creates) != 1 || plan.Creates[0].Name != "World War Z" {
		t.Fatalf("expected only World War Z to be created, got %+v", plan.Creates)
	}
	updated := map[string]Game{}
	for _, g := range plan.Updates {
		updated[g.ID] = g
	}
	if len(updated) != 3 {
		t.Fatalf("expected 3 updates, got %+v", plan.Updates)
	}
	if g := updated["1"]; g.Name != "LOL" || g.Icon != "lol" {
		t.Fatalf("alias not folded: %+v", g)
	}
	if g := updated["2"]; g.Name != "Clash Royale" || g.Icon != "clash_royale" {
		t.Fatalf("normalized name not matched: %+v", g)
	}
	if g := updated["6"]; g.Name != "Valorant" {
		t.Fatalf("icon match must rename: %+v", g)
	}
	if len(plan.Deletes) != 1 || plan.Deletes[0] != "4" {
		t.Fatalf("expected genshin removal, got %v", plan.Deletes)
	}
}

func TestPlanSyncIsStableOnceApplied(t *testing.T) {
	t.Parallel()
	games := []Game{}
	for i, c := range DefaultGames {
		games = append(games, Game{ID: string(rune('a' + i)), Name: c.Name, Icon: c.Icon})
	}
	if plan := PlanSync(games); !plan.Empty() {
		t.Fatalf("expected empty plan, got %+v", plan)
	}
}
