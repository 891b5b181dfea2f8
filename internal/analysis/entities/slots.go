package entities

import (
	"fmt"
	"math/rand"
	"sort"
	"sync"
	"time"

	gocache "github.com/patrickmn/go-cache"
)

var baseSlots = []string{"6:30 PM", "7:00 PM", "7:15 PM", "8:00 PM", "8:30 PM", "9:00 PM"}

// SlotCache hands out demo reservation time slots. Slots are random per
// entity but memoized by identity key, so the same entity always shows the
// same availability within a process lifetime. The cache grows monotonically
// and is safe for concurrent use.
type SlotCache struct {
	mu    sync.Mutex
	cache *gocache.Cache
	rng   *rand.Rand
}

// NewSlotCache returns a SlotCache seeded from the current time.
func NewSlotCache() *SlotCache {
	return &SlotCache{
		cache: gocache.New(gocache.NoExpiration, 0),
		rng:   rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

// For returns the memoized slot list for the identity key, generating one on
// first use.
func (c *SlotCache) For(key string) []string {
	c.mu.Lock()
	defer c.mu.Unlock()

	if cached, ok := c.cache.Get(key); ok {
		return cached.([]string)
	}
	slots := c.generate()
	c.cache.Set(key, slots, gocache.NoExpiration)
	return slots
}

// generate picks 3-4 of the base slots in chronological order.
func (c *SlotCache) generate() []string {
	shuffled := append([]string(nil), baseSlots...)
	c.rng.Shuffle(len(shuffled), func(i, j int) {
		shuffled[i], shuffled[j] = shuffled[j], shuffled[i]
	})

	count := 3 + c.rng.Intn(2)
	if count > len(shuffled) {
		count = len(shuffled)
	}
	picked := shuffled[:count]
	sort.Slice(picked, func(i, j int) bool {
		return slotMinutes(picked[i]) < slotMinutes(picked[j])
	})
	return picked
}

// slotMinutes orders "h:mm AM/PM" strings within a day.
func slotMinutes(s string) int {
	var h, m int
	var period string
	if _, err := fmt.Sscanf(s, "%d:%d %s", &h, &m, &period); err != nil {
		return 0
	}
	if h == 12 {
		h = 0
	}
	total := h*60 + m
	if period == "PM" {
		total += 12 * 60
	}
	return total
}
