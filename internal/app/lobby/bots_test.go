package lobby

import (
	"math"
	"math/rand/v2"
	"strings"
	"testing"
	"time"
)

func TestTierFor(t *testing.T) {
	tests := []struct {
		r    float64
		want string
	}{
		{0, "weak"},
		{0.25, "weak"},
		{0.5, "weak"},
		{0.51, "mid"},
		{0.79, "mid"},
		{0.81, "strong"},
		{0.94, "strong"},
		{0.96, "super"},
		{0.999, "super"},
	}
	for _, tt := range tests {
		if got := tierFor(tt.r).Name; got != tt.want {
			t.Errorf("tierFor(%v) = %s, want %s", tt.r, got, tt.want)
		}
	}
}

func TestPickTierFollowsWeights(t *testing.T) {
	f := NewBotFactory(rand.NewPCG(7, 11))
	const draws = 100_000

	counts := make(map[string]int)
	for range draws {
		counts[f.PickTier().Name]++
	}

	for _, tier := range Tiers {
		got := float64(counts[tier.Name]) / draws
		if math.Abs(got-tier.Weight) > 0.01 {
			t.Errorf("tier %s frequency = %.4f, want %.2f ± 0.01", tier.Name, got, tier.Weight)
		}
	}
}

func TestTierResources(t *testing.T) {
	tests := []struct {
		tier     Tier
		pop, gdp int64
		want     Resources
	}{
		{
			tier: Tiers[0], pop: 3_000_000, gdp: 5_000_000,
			want: Resources{
				Population: 3_000_000, Treasury: 500_000, Food: 30_000_000, Oil: 5_000, GDP: 5_000_000,
				Military: Military{Soldiers: 3000, Tanks: 3, Aircraft: 0},
			},
		},
		{
			tier: Tiers[1], pop: 10_000_000, gdp: 20_000_000,
			want: Resources{
				Population: 10_000_000, Treasury: 2_000_000, Food: 100_000_000, Oil: 20_000, GDP: 20_000_000,
				Military: Military{Soldiers: 20000, Tanks: 40, Aircraft: 10},
			},
		},
		{
			tier: Tiers[3], pop: 100_000_000, gdp: 500_000_000,
			want: Resources{
				Population: 100_000_000, Treasury: 50_000_000, Food: 1_000_000_000, Oil: 500_000, GDP: 500_000_000,
				Military: Military{Soldiers: 400000, Tanks: 1600, Aircraft: 400},
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.tier.Name, func(t *testing.T) {
			if got := TierResources(tt.tier, tt.pop, tt.gdp); got != tt.want {
				t.Errorf("TierResources() = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestClampPopulation(t *testing.T) {
	tests := map[int]int{-5: 50, 1: 50, 50: 50, 60: 60, 200: 200, 1000: 200}
	for in, want := range tests {
		if got := ClampPopulation(in); got != want {
			t.Errorf("ClampPopulation(%d) = %d, want %d", in, got, want)
		}
	}
}

func tierByName(name string) (Tier, bool) {
	for _, t := range Tiers {
		if t.Name == name {
			return t, true
		}
	}
	return Tier{}, false
}

func TestBatch(t *testing.T) {
	f := NewBotFactory(rand.NewPCG(1, 2))
	now := time.Now()
	used := []string{"France", "Japan", "Atlantis"}

	bots := f.Batch("s1", 120, used, now)
	if len(bots) != 120 {
		t.Fatalf("len = %d, want 120", len(bots))
	}

	seen := map[string]bool{"France": true, "Japan": true, "Atlantis": true}
	for _, b := range bots {
		if seen[b.Name] {
			t.Fatalf("name %q repeated or reused", b.Name)
		}
		seen[b.Name] = true

		if b.OwnerID != BotOwnerID || b.OwnerName != "AI" || b.ServerID != "s1" {
			t.Fatalf("bad ownership on %+v", b)
		}
		tier, ok := tierByName(b.Tier)
		if !ok {
			t.Fatalf("unknown tier %q", b.Tier)
		}
		pop, gdp := b.Data.Population/million, b.Data.GDP/million
		if pop < tier.Pop[0] || pop > tier.Pop[1] || gdp < tier.GDP[0] || gdp > tier.GDP[1] {
			t.Fatalf("%s stats out of range: pop %d gdp %d", tier.Name, pop, gdp)
		}
		if b.Data != TierResources(tier, b.Data.Population, b.Data.GDP) {
			t.Fatalf("derived stats mismatch for %+v", b)
		}
		if len(b.FlagColor) != 7 || b.FlagColor[0] != '#' {
			t.Fatalf("flag color %q", b.FlagColor)
		}
		if !b.CreatedAt.Equal(now) {
			t.Fatalf("createdAt not stamped")
		}
	}
}

func TestBatchFallsBackToPlaceholders(t *testing.T) {
	f := NewBotFactory(rand.NewPCG(3, 4))

	bots := f.Batch("s1", 5, CountryNames, time.Now())
	seen := make(map[string]bool)
	for _, b := range bots {
		if !strings.HasPrefix(b.Name, "Nation-") || len(b.Name) != len("Nation-")+6 {
			t.Fatalf("placeholder name = %q", b.Name)
		}
		if seen[b.Name] {
			t.Fatalf("placeholder %q repeated", b.Name)
		}
		seen[b.Name] = true
	}
}

func TestSingle(t *testing.T) {
	f := NewBotFactory(rand.NewPCG(5, 6))

	for range 50 {
		b := f.Single("s1", time.Now())
		if !strings.HasPrefix(b.Name, "Bot-") || len(b.Name) != 8 {
			t.Fatalf("name = %q", b.Name)
		}
		if b.GovernmentType != "ai" || b.Tier != "" || !b.IsBot() {
			t.Fatalf("bad bot %+v", b)
		}
		if p := b.Data.Population; p < 4_000_000 || p >= 6_000_000 {
			t.Fatalf("population %d out of range", p)
		}
		if tr := b.Data.Treasury; tr < 800_000 || tr >= 1_200_000 {
			t.Fatalf("treasury %d out of range", tr)
		}
		if b.Data.Military != (Military{Soldiers: 8000, Tanks: 40, Aircraft: 15}) {
			t.Fatalf("military %+v", b.Data.Military)
		}
	}
}

func TestAllReady(t *testing.T) {
	tests := []struct {
		name   string
		humans []string
		ready  []string
		want   bool
	}{
		{"empty roster", nil, nil, true},
		{"all ready", []string{"a", "b"}, []string{"b", "a"}, true},
		{"extra ready ids", []string{"a"}, []string{"a", "ghost"}, true},
		{"one missing", []string{"a", "b"}, []string{"a"}, false},
		{"none ready", []string{"a"}, nil, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := AllReady(tt.humans, tt.ready); got != tt.want {
				t.Errorf("AllReady() = %v, want %v", got, tt.want)
			}
		})
	}
}
