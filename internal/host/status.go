package host

import (
	"fmt"
	"scratchcard/internal/scratch"
)

// Status is the caption shown under a card.
func Status(c *scratch.Card) string {
	mc := c.Card()
	if res := c.Result(); res != nil {
		if res.Err != nil || res.Outcome == nil {
			return "Could not confirm the card, try again later"
		}
		return outcome(res.Outcome.Won, res.Outcome.Message, c)
	}
	if mc.IsScratched {
		msg := "No prize"
		if mc.Won {
			msg = "Winner"
			if mc.Prize != nil {
				msg += ": " + mc.Prize.Description
			}
		}
		return outcome(mc.Won, msg, c)
	}

	switch c.State() {
	case scratch.StateThresholdReached, scratch.StateRevealing:
		return "Revealing..."
	case scratch.StateScratching:
		return fmt.Sprintf("Card #%d  %d%%", mc.CardNumber, int(c.Progress()*100))
	default:
		if c.Locked() && c.Surface() != nil {
			return fmt.Sprintf("Card #%d  wait...", mc.CardNumber)
		}
		return fmt.Sprintf("Card #%d", mc.CardNumber)
	}
}

func outcome(won bool, msg string, c *scratch.Card) string {
	if won {
		if p := prize(c); p != "" {
			return msg + " (code " + p + ")"
		}
		return msg
	}
	if f := c.Filler(); f != nil {
		return f.Emoji + " " + f.Message
	}
	return msg
}

func prize(c *scratch.Card) string {
	if res := c.Result(); res != nil && res.Outcome != nil && res.Outcome.Prize != nil {
		return res.Outcome.Prize.Code
	}
	if p := c.Card().Prize; p != nil {
		return p.Code
	}
	return ""
}
