package lobby

import (
	"fmt"
	"math"
	"math/rand/v2"
	"sync"
	"time"

	"geopolitik/internal/pkg/randx"
)

const (
	// MinPopulation and MaxPopulation bound the target nation count of a bulk populate.
	MinPopulation = 50
	MaxPopulation = 200

	botOwnerName = "AI"
	million      = 1_000_000
)

// Tier is a strength band for generated nations. Pop and GDP are inclusive ranges in millions.
type Tier struct {
	Name   string
	Weight float64
	Pop    [2]int64
	GDP    [2]int64
	Mult   float64
}

// Tiers lists the bands in draw order. Weights sum to 1.
var Tiers = []Tier{
	{Name: "weak", Weight: 0.5, Pop: [2]int64{1, 5}, GDP: [2]int64{1, 10}, Mult: 0.5},
	{Name: "mid", Weight: 0.3, Pop: [2]int64{5, 25}, GDP: [2]int64{10, 50}, Mult: 1},
	{Name: "strong", Weight: 0.15, Pop: [2]int64{25, 80}, GDP: [2]int64{50, 200}, Mult: 1.5},
	{Name: "super", Weight: 0.05, Pop: [2]int64{80, 200}, GDP: [2]int64{200, 1000}, Mult: 2},
}

// GovernmentTypes are the regimes a populated bot may draw.
var GovernmentTypes = []string{
	"democracy", "monarchy", "dictatorship", "republic", "theocracy", "communist", "sultanate",
}

// CountryNames is the pool bulk-populated bots are named from.
var CountryNames = []string{
	"Afghanistan", "Albania", "Algeria", "Andorra", "Angola", "Antigua", "Argentina", "Armenia",
	"Australia", "Austria", "Azerbaijan", "Bahamas", "Bahrain", "Bangladesh", "Barbados", "Belarus",
	"Belgium", "Belize", "Benin", "Bhutan", "Bolivia", "Bosnia", "Botswana", "Brazil", "Brunei",
	"Bulgaria", "Burkina", "Burundi", "Cambodia", "Cameroon", "Canada", "Chad", "Chile", "China",
	"Colombia", "Comoros", "Congo", "Costa Rica", "Croatia", "Cuba", "Cyprus", "Czechia", "Denmark",
	"Dominica", "Dominican", "Ecuador", "Egypt", "El Salvador", "Eritrea", "Estonia", "Eswatini",
	"Ethiopia", "Fiji", "Finland", "France", "Gabon", "Gambia", "Georgia", "Germany", "Ghana",
	"Greece", "Grenada", "Guatemala", "Guinea", "Guyana", "Haiti", "Honduras", "Hungary", "Iceland",
	"India", "Indonesia", "Iran", "Iraq", "Ireland", "Israel", "Italy", "Jamaica", "Japan", "Jordan",
	"Kazakhstan", "Kenya", "Kiribati", "Korea", "Kosovo", "Kuwait", "Kyrgyzstan", "Laos", "Latvia",
	"Lebanon", "Lesotho", "Liberia", "Libya", "Liechtenstein", "Lithuania", "Luxembourg",
	"Madagascar", "Malawi", "Malaysia", "Maldives", "Mali", "Malta", "Marshall", "Mauritania",
	"Mauritius", "Mexico", "Micronesia", "Moldova", "Monaco", "Mongolia", "Montenegro", "Morocco",
	"Mozambique", "Myanmar", "Namibia", "Nauru", "Nepal", "Netherlands", "New Zealand", "Nicaragua",
	"Niger", "Nigeria", "North Macedonia", "Norway", "Oman", "Pakistan", "Palau", "Panama", "Papua",
	"Paraguay", "Peru", "Philippines", "Poland", "Portugal", "Qatar", "Romania", "Russia", "Rwanda",
	"Saint Kitts", "Saint Lucia", "Samoa", "San Marino", "Sao Tome", "Saudi Arabia", "Senegal",
	"Serbia", "Seychelles", "Sierra Leone", "Singapore", "Slovakia", "Slovenia", "Solomon", "Somalia",
	"South Africa", "Spain", "Sri Lanka", "Sudan", "Suriname", "Sweden", "Switzerland", "Syria",
	"Taiwan", "Tajikistan", "Tanzania", "Thailand", "Togo", "Tonga", "Trinidad", "Tunisia", "Turkey",
	"Turkmenistan", "Tuvalu", "Uganda", "Ukraine", "United Arab Emirates", "United Kingdom",
	"United States", "Uruguay", "Uzbekistan", "Vanuatu", "Vatican", "Venezuela", "Vietnam", "Yemen",
	"Zambia", "Zimbabwe", "Albia", "Beleria", "Caledor", "Dornia", "Eldoria", "Falkland", "Galicia",
	"Hibernia", "Istria", "Junonia", "Karelia", "Lothian", "Moravia", "Norland", "Ossyria",
	"Pannonia", "Qandahar", "Rhenland", "Syldavia", "Thessia", "Umbria", "Valoria", "Westoria",
	"Xandria", "Yorvik", "Zephyria",
}

// ClampPopulation bounds a requested bulk-populate target to [MinPopulation, MaxPopulation].
func ClampPopulation(n int) int {
	return max(MinPopulation, min(MaxPopulation, n))
}

// BotFactory generates bot nations. It is safe for concurrent use.
type BotFactory struct {
	mu  sync.Mutex
	rng *rand.Rand
}

// NewBotFactory returns a factory drawing from src. A nil src uses a randomly seeded PCG.
func NewBotFactory(src rand.Source) *BotFactory {
	if src == nil {
		src = rand.NewPCG(rand.Uint64(), rand.Uint64())
	}
	return &BotFactory{rng: rand.New(src)}
}

// PickTier draws a tier by cumulative weight, defaulting to the first.
func (f *BotFactory) PickTier() Tier {
	f.mu.Lock()
	r := f.rng.Float64()
	f.mu.Unlock()
	return tierFor(r)
}

func tierFor(r float64) Tier {
	acc := 0.0
	for _, t := range Tiers {
		acc += t.Weight
		if r <= acc {
			return t
		}
	}
	return Tiers[0]
}

// TierResources derives a nation's stats from its drawn population and GDP.
func TierResources(t Tier, pop, gdp int64) Resources {
	soldiers := int64(math.Floor(float64(pop) * 0.002 * t.Mult))
	return Resources{
		Population: pop,
		Treasury:   int64(math.Floor(float64(gdp) * 0.1)),
		Food:       pop * 10,
		Oil:        gdp / 1000,
		GDP:        gdp,
		Military: Military{
			Soldiers: soldiers,
			Tanks:    int64(math.Floor(float64(soldiers) / 500 * t.Mult)),
			Aircraft: int64(math.Floor(float64(soldiers) / 2000 * t.Mult)),
		},
	}
}

// Single builds the stand-alone bot spawned by the host one at a time.
func (f *BotFactory) Single(serverID string, now time.Time) Nation {
	f.mu.Lock()
	defer f.mu.Unlock()

	return Nation{
		ID:             randx.ID(),
		ServerID:       serverID,
		OwnerID:        BotOwnerID,
		OwnerName:      botOwnerName,
		Name:           "Bot-" + randx.ShortHex(4),
		GovernmentType: "ai",
		FlagColor:      f.flagColor(),
		Data: Resources{
			Population: 4_000_000 + f.rng.Int64N(2_000_000),
			Treasury:   800_000 + f.rng.Int64N(400_000),
			Food:       150_000,
			Oil:        40_000,
			GDP:        40_000_000,
			Military:   Military{Soldiers: 8000, Tanks: 40, Aircraft: 15},
		},
		CreatedAt: now,
	}
}

// Batch builds n tiered bots for serverID. Names avoid every entry of used and
// each other; once the country pool is exhausted, placeholder names are drawn.
func (f *BotFactory) Batch(serverID string, n int, used []string, now time.Time) []Nation {
	taken := make(map[string]struct{}, len(used)+n)
	for _, name := range used {
		taken[name] = struct{}{}
	}

	available := make([]string, 0, len(CountryNames))
	for _, name := range CountryNames {
		if _, ok := taken[name]; !ok {
			available = append(available, name)
		}
	}

	f.mu.Lock()
	defer f.mu.Unlock()

	nations := make([]Nation, 0, n)
	for range n {
		tier := tierFor(f.rng.Float64())

		var name string
		if len(available) > 0 {
			i := f.rng.IntN(len(available))
			name = available[i]
			available[i] = available[len(available)-1]
			available = available[:len(available)-1]
		} else {
			name = placeholderName()
			for {
				if _, ok := taken[name]; !ok {
					break
				}
				name = placeholderName()
			}
		}
		taken[name] = struct{}{}

		pop := f.between(tier.Pop) * million
		gdp := f.between(tier.GDP) * million

		nations = append(nations, Nation{
			ID:             randx.ID(),
			ServerID:       serverID,
			OwnerID:        BotOwnerID,
			OwnerName:      botOwnerName,
			Name:           name,
			GovernmentType: GovernmentTypes[f.rng.IntN(len(GovernmentTypes))],
			FlagColor:      f.flagColor(),
			Tier:           tier.Name,
			Data:           TierResources(tier, pop, gdp),
			CreatedAt:      now,
		})
	}
	return nations
}

func placeholderName() string {
	return "Nation-" + randx.ShortHex(6)
}

// between draws an integer from the inclusive range r. Callers hold f.mu.
func (f *BotFactory) between(r [2]int64) int64 {
	return r[0] + f.rng.Int64N(r[1]-r[0]+1)
}

// flagColor draws a "#rrggbb" color. Callers hold f.mu.
func (f *BotFactory) flagColor() string {
	return fmt.Sprintf("#%06x", f.rng.IntN(0xffffff))
}
