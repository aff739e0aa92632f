// Package wheel arranges prize-wheel segments for client rendering.
//
// Segment counts are a presentation choice and carry no probability meaning;
// draw odds are owned entirely by the draw engine. The layout is deterministic
// for a given input and never consults a draw result.
package wheel

import (
	"sort"
	"strconv"

	"github.com/google/uuid"

	"github.com/feedspin/feedspin/internal/domain"
)

// SegmentSource describes one origin group to expand onto the wheel.
type SegmentSource struct {
	OriginID uuid.UUID
	Label    string
	Kind     domain.OutcomeKind
	Copies   int
}

// Segment is one rendered wedge.
type Segment struct {
	DisplayID  string             `json:"display_id"`
	Label      string             `json:"label"`
	ColorIndex int                `json:"color_index"`
	Kind       domain.OutcomeKind `json:"kind"`
}

// group is the working set of segments sharing an origin.
type group struct {
	source    SegmentSource
	color     int
	remaining int
	seq       int
}

// FromConfig builds the segment sources for a merchant's wheel: one group per
// in-stock prize plus the unlucky and retry groups.
func FromConfig(cfg domain.WheelConfig, unluckyLabel, retryLabel string) []SegmentSource {
	sources := make([]SegmentSource, 0, len(cfg.Prizes)+2)
	for _, p := range cfg.Prizes {
		if !p.InStock() {
			continue
		}
		copies := p.CopiesOnWheel
		if copies <= 0 {
			copies = 1
		}
		sources = append(sources, SegmentSource{
			OriginID: p.ID,
			Label:    p.Name,
			Kind:     domain.OutcomePrize,
			Copies:   copies,
		})
	}
	if cfg.UnluckyWeight > 0 {
		sources = append(sources, SegmentSource{
			OriginID: uuid.NewSHA1(uuid.NameSpaceOID, []byte("unlucky")),
			Label:    unluckyLabel,
			Kind:     domain.OutcomeUnlucky,
			Copies:   2,
		})
	}
	if cfg.RetryWeight > 0 {
		sources = append(sources, SegmentSource{
			OriginID: uuid.NewSHA1(uuid.NameSpaceOID, []byte("retry")),
			Label:    retryLabel,
			Kind:     domain.OutcomeRetry,
			Copies:   1,
		})
	}
	return sources
}

// Layout expands each source into its copies and arranges them so that no two
// adjacent wedges share an origin, as far as the mix of groups allows.
//
// Placement is greedy: groups sorted by descending size (largest groups are
// hardest to disperse), and each position takes the largest remaining group
// whose origin differs from the previously placed wedge. When only one origin
// remains the adjacency rule is relaxed - with a single dominant group a
// perfect arrangement does not exist, and a clustered tail is the accepted
// degradation rather than an error.
//
// maxSegments caps the wheel size; excess copies are trimmed from the largest
// groups first so every group keeps at least one wedge when the cap allows.
// maxSegments <= 0 means no cap. Zero sources yield an empty slice.
func Layout(sources []SegmentSource, maxSegments int) []Segment {
	groups := make([]*group, 0, len(sources))
	total := 0
	for i, src := range sources {
		if src.Copies <= 0 {
			continue
		}
		groups = append(groups, &group{source: src, color: i, remaining: src.Copies})
		total += src.Copies
	}
	if len(groups) == 0 {
		return []Segment{}
	}

	total = capSegments(groups, total, maxSegments)

	// Largest first; ties keep configuration order.
	sort.SliceStable(groups, func(i, j int) bool {
		return groups[i].remaining > groups[j].remaining
	})

	segments := make([]Segment, 0, total)
	var prev *group
	for len(segments) < total {
		next := pickNext(groups, prev)
		if next == nil {
			// Only the previous origin has segments left.
			next = pickNext(groups, nil)
			if next == nil {
				break
			}
		}
		segments = append(segments, next.take())
		prev = next
	}

	fixWrapAround(segments)
	return segments
}

// capSegments trims copies round-robin from the largest groups until the
// total fits maxSegments. Groups are only trimmed to a single copy; if the cap
// is smaller than the number of groups, trailing groups are dropped entirely.
func capSegments(groups []*group, total, maxSegments int) int {
	if maxSegments <= 0 || total <= maxSegments {
		return total
	}
	for total > maxSegments {
		largest := groups[0]
		for _, g := range groups[1:] {
			if g.remaining > largest.remaining {
				largest = g
			}
		}
		if largest.remaining <= 1 {
			// Every group is down to one copy; drop from the back.
			for i := len(groups) - 1; i >= 0 && total > maxSegments; i-- {
				if groups[i].remaining > 0 {
					groups[i].remaining = 0
					total--
				}
			}
			return total
		}
		largest.remaining--
		total--
	}
	return total
}

// pickNext selects the largest remaining group whose origin differs from prev.
func pickNext(groups []*group, prev *group) *group {
	var best *group
	for _, g := range groups {
		if g.remaining == 0 || g == prev {
			continue
		}
		if best == nil || g.remaining > best.remaining {
			best = g
		}
	}
	return best
}

func (g *group) take() Segment {
	g.remaining--
	g.seq++
	return Segment{
		DisplayID:  g.source.OriginID.String() + "-" + strconv.Itoa(g.seq),
		Label:      g.source.Label,
		ColorIndex: g.color,
		Kind:       g.source.Kind,
	}
}

// fixWrapAround resolves a same-origin pair across the first/last boundary by
// swapping the last wedge with an interior one, when a legal swap exists.
func fixWrapAround(segments []Segment) {
	n := len(segments)
	if n < 3 || segments[0].ColorIndex != segments[n-1].ColorIndex {
		return
	}
	for i := 1; i < n-2; i++ {
		if segments[i].ColorIndex == segments[n-1].ColorIndex {
			continue
		}
		// Swapping in position i must not create new adjacencies on either side.
		if segments[i-1].ColorIndex == segments[n-1].ColorIndex ||
			segments[i+1].ColorIndex == segments[n-1].ColorIndex {
			continue
		}
		if segments[n-2].ColorIndex == segments[i].ColorIndex ||
			segments[0].ColorIndex == segments[i].ColorIndex {
			continue
		}
		segments[i], segments[n-1] = segments[n-1], segments[i]
		return
	}
}
