// Package messages selects the motivational copy shown for each week. The
// selection is deterministic: the same athlete, week and scenario always get
// the same message, so the dashboard doesn't reshuffle on every render.
package messages

import (
	"fmt"
	"strconv"
	"unicode/utf16"

	"github.com/coleburton/rundown-sub000/internal/goals"
)

// Scenario names the situation a week's message speaks to.
type Scenario string

const (
	GoalMet           Scenario = "goal_met"
	CurrentWithActive Scenario = "current_with_activity"
	CurrentNoActivity Scenario = "current_no_activity"
	PastPartial       Scenario = "past_partial"
	PastNone          Scenario = "past_none"
)

// Message is a selected title/body pair.
type Message struct {
	Title string `json:"title"`
	Body  string `json:"message"`
}

// ScenarioFor picks the scenario for a week. A met goal wins regardless of
// offset; otherwise past weeks split on any-activity, as do current weeks.
func ScenarioFor(weekOffset int, progress, target float64) Scenario {
	if progress >= target {
		return GoalMet
	}
	if weekOffset > 0 {
		if progress > 0 {
			return PastPartial
		}
		return PastNone
	}
	if progress > 0 {
		return CurrentWithActive
	}
	return CurrentNoActivity
}

// Hash32 is the stable 32-bit rolling hash used for message selection and
// nudge deduplication: for each UTF-16 code unit, hash = ((hash<<5)-hash)+c,
// wrapped to a signed 32-bit integer. Changing it reshuffles every message
// an athlete has ever seen, so it is frozen.
func Hash32(s string) int32 {
	var h int32
	for _, c := range utf16.Encode([]rune(s)) {
		h = (h << 5) - h + int32(c)
	}
	return h
}

// HashBase36 renders the absolute hash in base 36, the form the nudge
// deduplicator stores.
func HashBase36(s string) string {
	h := int64(Hash32(s))
	if h < 0 {
		h = -h
	}
	return strconv.FormatInt(h, 36)
}

// pick selects a candidate by hashing the seed. Same seed, same pick.
func pick(candidates []string, seed string) string {
	h := int64(Hash32(seed))
	if h < 0 {
		h = -h
	}
	return candidates[h%int64(len(candidates))]
}

// num renders a progress or target value the way it appears in seeds:
// no trailing zeros, so 3 not 3.0, but 2.5 stays 2.5.
func num(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// Seed builds the stable selection key for a week. Every component is a
// stable identifier; nothing time-of-render dependent goes in here.
func Seed(userID string, weekOffset int, scenario Scenario, progress, target float64) string {
	return fmt.Sprintf("%s-%d-%s-%s-%s", userID, weekOffset, scenario, num(progress), num(target))
}

// amount formats a remaining or goal amount for message bodies: one decimal
// for mile-based goals, whole numbers otherwise.
func amount(v float64, goalType goals.Type) string {
	if goalType.IsDistance() {
		return strconv.FormatFloat(v, 'f', 1, 64)
	}
	return strconv.FormatFloat(v, 'f', 0, 64)
}

func pools(scenario Scenario, progress, target float64, goalType goals.Type) (titles, bodies []string) {
	remaining := amount(target-progress, goalType)
	goal := amount(target, goalType)

	switch scenario {
	case GoalMet:
		return []string{"Nailed it!", "Crushed it!", "Goal smashed!", "Victory!", "Boom! Done!"},
			[]string{
				"Goal crushed! Your accountability buddy was proud.",
				"Absolutely nailed it this week. Chef's kiss.",
				"Goal demolished! The couch is jealous.",
				"Mission accomplished. Your future self thanks you.",
				"Perfectly executed. You should be proud.",
			}
	case CurrentWithActive:
		return []string{"You're cooking!", "On fire!", "Rolling!", "Keep going!", "Momentum!"},
			[]string{
				remaining + " more to go! You've got this.",
				remaining + " left. Finish strong this week!",
				"Almost there! " + remaining + " more runs.",
				remaining + " to go. The couch is getting nervous.",
				"So close! Just " + remaining + " more this week.",
			}
	case CurrentNoActivity:
		return []string{"Time to start!", "Let's go!", "Week's waiting!", "Ready to run?", "Lace up!"},
			[]string{
				goal + " runs this week. Let's make it happen!",
				goal + " to go! Perfect time to start.",
				"Fresh week, " + goal + " runs. You've got this!",
				goal + " runs ahead. The couch can wait.",
				"Week just started. " + goal + " runs to conquer!",
			}
	case PastPartial:
		return []string{"Close call!", "Almost!", "So close!", "Nearly there!", "Ouch!"},
			[]string{
				"Missed by " + remaining + ". They remember.",
				remaining + " short. The couch celebrated.",
				"Almost had it! Missed by " + remaining + ".",
				remaining + " away from glory. Next time!",
				"Close but no cigar. Off by " + remaining + ".",
			}
	case PastNone:
		return []string{"Ghost week", "Invisible week", "Couch week", "Mystery week", "Vanishing act"},
			[]string{
				"Zero runs. The couch remembers.",
				"Completely MIA. They noticed.",
				"Full ghost mode. Netflix won that week.",
				"Radio silence. Your shoes got dusty.",
				"Total no-show. Excuses threw a party.",
			}
	default:
		return []string{"Keep going!"}, []string{"You've got this!"}
	}
}

// Select returns the message for a scenario. Title and body are picked with
// different seeds so the pairing varies, but both picks are idempotent for a
// given seed.
func Select(scenario Scenario, progress, target float64, goalType goals.Type, seed string) Message {
	titles, bodies := pools(scenario, progress, target, goalType)
	return Message{
		Title: pick(titles, seed+"-title"),
		Body:  pick(bodies, seed+"-message"),
	}
}

// ConnectionIssue is the placeholder shown when a week's data could not be
// computed. It is a fixed message, not a hashed pick, so failures are
// recognizable.
func ConnectionIssue() Message {
	return Message{
		Title: "Connection Issue 📶",
		Body:  "Unable to load your data right now. Please check your connection.",
	}
}
