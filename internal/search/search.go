// Package search produces mocked transport offers for a route and date.
// Offers are random and never persisted.
package search

import (
	"fmt"
	"math/rand/v2"
	"sync"
	"time"
)

// Offer is one mocked option returned by Search.
type Offer struct {
	ID             string `json:"id"`
	Type           string `json:"type"`
	Icon           string `json:"icon"`
	Name           string `json:"name"`
	From           string `json:"from"`
	To             string `json:"to"`
	Date           string `json:"date"`
	Fare           int    `json:"fare"`
	AvailableSeats int    `json:"available_seats"`
}

type transport struct {
	kind, icon, name string
}

var transports = []transport{
	{"airplane", "✈️", "Airplane"},
	{"bus", "🚌", "Bus"},
	{"train", "🚆", "Train"},
	{"hotel", "🏨", "Hotel"},
}

// Generator draws offers from a seeded source.  It is safe for concurrent
// use.
type Generator struct {
	mu  sync.Mutex
	rng *rand.Rand
}

func NewGenerator(seed uint64) *Generator {
	return &Generator{rng: rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))}
}

// NewTimeSeeded returns a generator seeded from the current time.
func NewTimeSeeded() *Generator { return NewGenerator(uint64(time.Now().UnixNano())) }

// Search returns 2–4 offers per transport type with fares in [500,10000]
// and 5–50 available seats.
func (g *Generator) Search(from, to, date string) []Offer {
	g.mu.Lock()
	defer g.mu.Unlock()
	out := make([]Offer, 0, len(transports)*4)
	for _, t := range transports {
		n := g.between(2, 4)
		for i := 0; i < n; i++ {
			out = append(out, Offer{
				ID:             fmt.Sprintf("%s_%d", t.kind, i),
				Type:           t.kind,
				Icon:           t.icon,
				Name:           fmt.Sprintf("%s Option %d", t.name, i+1),
				From:           from,
				To:             to,
				Date:           date,
				Fare:           g.between(500, 10000),
				AvailableSeats: g.between(5, 50),
			})
		}
	}
	return out
}

// between returns an int in [lo, hi].
func (g *Generator) between(lo, hi int) int {
	return lo + g.rng.IntN(hi-lo+1)
}
