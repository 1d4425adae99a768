package reward

import "github.com/riskibarqy/lottery-rewards/internal/platform/random"

// Wheel is a spin wheel of equally weighted segments.
type Wheel struct {
	Segments []Outcome
}

func DefaultWheel() Wheel {
	return Wheel{
		Segments: []Outcome{
			{Kind: KindPoints, Amount: 50},
			{Kind: KindPoints, Amount: 100},
			{Kind: KindPoints, Amount: 25},
			{Kind: KindFreeTicket, Amount: 1},
			{Kind: KindPoints, Amount: 75},
			{Kind: KindBonusPoints, Amount: 200},
			{Kind: KindPoints, Amount: 30},
			{Kind: KindBadge, Amount: 1, Ref: "lucky-badge"},
		},
	}
}

// Spin picks one segment uniformly. The wheel keeps no state between spins.
func (w Wheel) Spin(src random.Source) Outcome {
	return w.Segments[src.IntN(len(w.Segments))]
}
