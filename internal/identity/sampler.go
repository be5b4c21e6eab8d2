package identity

import (
	"math/rand/v2"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Sampler draws random identities from a fixed set of pools.
// It is not safe for concurrent use; the rotator serializes access.
type Sampler struct {
	pools Pools
	rng   *rand.Rand
	now   func() time.Time
}

// NewSampler validates pools and returns a Sampler seeded from the runtime
// random source.
func NewSampler(pools Pools) (*Sampler, error) {
	return NewSamplerWithSource(pools, rand.NewPCG(rand.Uint64(), rand.Uint64()), time.Now)
}

// NewSamplerWithSource is NewSampler with an explicit random source and clock.
func NewSamplerWithSource(pools Pools, src rand.Source, now func() time.Time) (*Sampler, error) {
	if err := pools.Validate(); err != nil {
		return nil, err
	}
	if now == nil {
		now = time.Now
	}
	return &Sampler{pools: pools, rng: rand.New(src), now: now}, nil
}

// Pools returns the pools the sampler draws from.
func (s *Sampler) Pools() Pools {
	return s.pools
}

// Sample draws a fresh identity. The agent string always comes from the
// pool of the drawn device class.
func (s *Sampler) Sample() Identity {
	dc := DeviceClasses[s.rng.IntN(len(DeviceClasses))]
	id := Identity{
		ID:          uuid.NewString(),
		Address:     s.address(),
		DeviceClass: dc,
		AgentString: pick(s.rng, s.pools.Agents[dc]),
		Region:      pick(s.rng, s.pools.Regions),
		CreatedAt:   s.now(),
	}
	if screens := s.pools.Screens[dc]; len(screens) > 0 {
		id.Screen = pick(s.rng, screens)
	}
	return id
}

// address fills one randomly chosen template with two octets in [0,255].
func (s *Sampler) address() string {
	tmpl := pick(s.rng, s.pools.AddressTemplates)
	x := strconv.Itoa(s.rng.IntN(256))
	y := strconv.Itoa(s.rng.IntN(256))
	return strings.NewReplacer("{x}", x, "{y}", y).Replace(tmpl)
}

func pick(rng *rand.Rand, pool []string) string {
	return pool[rng.IntN(len(pool))]
}
