// Package nudge evaluates each athlete's week and sends their
// accountability buddy a message when it warrants one. Evaluation reuses the
// progress core; this package only decides whether and what to send.
package nudge

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/coleburton/rundown-sub000/internal/cache"
	"github.com/coleburton/rundown-sub000/internal/goals"
	"github.com/coleburton/rundown-sub000/internal/history"
	"github.com/coleburton/rundown-sub000/internal/messages"
	"github.com/coleburton/rundown-sub000/internal/model"
	"github.com/coleburton/rundown-sub000/internal/progress"
	"github.com/coleburton/rundown-sub000/internal/store"
	"github.com/google/uuid"
	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"
)

// dedupWindow is how long a sent template stays blocked for a contact.
const dedupWindow = 14 * 24 * time.Hour

// maxAttempts bounds the search for an unsent template.
const maxAttempts = 10

// Notifier delivers a nudge to a buddy. Delivery transports (SMS, push)
// live behind this interface; the service itself never sends anything.
type Notifier interface {
	Notify(ctx context.Context, buddy *model.BuddyLink, message string) error
}

// Deduplicator tracks which templates a contact has already received, so a
// buddy doesn't get the same line two weeks running.
type Deduplicator struct {
	cache  cache.Cache
	window time.Duration
}

func NewDeduplicator(che cache.Cache) *Deduplicator {
	return &Deduplicator{cache: che, window: dedupWindow}
}

// CanSend reports whether the message hash is fresh for the contact and, if
// so, records it. Cache errors fail open: a double send beats no send.
func (d *Deduplicator) CanSend(ctx context.Context, contactID, messageHash string) bool {
	key := fmt.Sprintf("nudge:sent:%s:%s", contactID, messageHash)
	v, err := d.cache.Get(ctx, key)
	if err == nil {
		if s, ok := v.(string); ok && s != "" {
			return false
		}
	}
	if err := d.cache.SetWithTTL(ctx, key, "1", d.window); err != nil {
		return true
	}
	return true
}

// Service runs the weekly nudge evaluation. All collaborators are injected;
// there is no package-level state.
type Service struct {
	store    *store.Store
	dedup    *Deduplicator
	notifier Notifier
	log      logrus.FieldLogger
	now      func() time.Time
}

func NewService(st *store.Store, dedup *Deduplicator, notifier Notifier, log logrus.FieldLogger) *Service {
	return &Service{store: st, dedup: dedup, notifier: notifier, log: log, now: time.Now}
}

// RunWeekly evaluates every athlete with a buddy. One athlete's failure
// never stops the rest; errors are counted and logged per athlete.
func (s *Service) RunWeekly(ctx context.Context) error {
	athletes, err := s.store.AthletesWithBuddies()
	if err != nil {
		return fmt.Errorf("listing athletes: %w", err)
	}

	failures := 0
	for i := range athletes {
		if err := s.evaluateAthlete(ctx, &athletes[i]); err != nil {
			s.log.WithError(err).WithField("athlete", athletes[i].UserID).Error("nudge evaluation failed")
			failures++
		}
	}

	s.log.WithField("athletes", len(athletes)).WithField("failures", failures).Info("weekly nudge run complete")
	if failures > 0 {
		return fmt.Errorf("%d of %d athletes failed", failures, len(athletes))
	}
	return nil
}

func (s *Service) evaluateAthlete(ctx context.Context, athlete *model.Athlete) error {
	buddy, err := s.store.BuddyFor(athlete.ID)
	if err != nil {
		return err
	}
	if buddy == nil {
		return nil
	}

	now := s.now()
	acts, err := s.store.ActivitiesSince(athlete.ID, now.AddDate(0, 0, -7))
	if err != nil {
		return err
	}
	goalHistory, err := s.store.GoalHistory(athlete.ID)
	if err != nil {
		return err
	}

	current := history.Build(athlete.UserID, acts, goalHistory, 1, now)[0]

	kind := messages.KindMissedGoal
	if current.Status == progress.OutcomeMet {
		kind = messages.KindWeeklySummary
	}

	style := messages.Style(athlete.NudgeStyle)
	if _, ok := messages.Templates[style]; !ok {
		style = messages.StyleSupportive
	}

	data := messages.TemplateData{
		User:      athlete.StravaAthleteName,
		Completed: current.Progress,
		Goal:      current.Target,
		GoalType:  nudgeGoalType(current.GoalType),
	}
	if remaining := current.Target - current.Progress; remaining > 0 {
		data.Remaining = remaining
	}
	if current.Target > 0 {
		data.ProgressPercent = math.Round(current.Progress / current.Target * 100)
	}

	body, ok := s.pickTemplate(ctx, buddy.BuddyContact, style, kind, data, now)
	if !ok {
		s.log.WithField("athlete", athlete.UserID).Info("no fresh template, skipping nudge")
		return nil
	}

	if err := s.notifier.Notify(ctx, buddy, body); err != nil {
		return fmt.Errorf("notifying buddy: %w", err)
	}

	return s.store.RecordNudge(&model.NudgeRecord{
		NudgeID:     uuid.NewString(),
		AthleteID:   athlete.ID,
		Kind:        string(kind),
		Style:       string(style),
		MessageHash: messages.HashBase36(body),
		Body:        body,
	})
}

// pickTemplate walks the style's templates starting at a week-stable offset
// and returns the first one the buddy hasn't seen recently. The starting
// offset is hashed, not random, so a retried run picks the same message.
func (s *Service) pickTemplate(ctx context.Context, contact string, style messages.Style, kind messages.Kind, data messages.TemplateData, now time.Time) (string, bool) {
	templates := messages.Templates[style][kind]
	year, wk := now.ISOWeek()
	seed := fmt.Sprintf("%s-%s-%d-%d", contact, kind, year, wk)

	h := int64(messages.Hash32(seed))
	if h < 0 {
		h = -h
	}
	start := int(h % int64(len(templates)))

	attempts := len(templates)
	if attempts > maxAttempts {
		attempts = maxAttempts
	}
	for i := 0; i < attempts; i++ {
		tpl := templates[(start+i)%len(templates)]
		body := messages.FormatTemplate(tpl, data)
		if s.dedup.CanSend(ctx, contact, messages.HashBase36(tpl)) {
			return body, true
		}
	}
	return "", false
}

func nudgeGoalType(t goals.Type) messages.NudgeGoalType {
	switch t {
	case goals.TotalRuns:
		return messages.NudgeRuns
	case goals.TotalMilesRun:
		return messages.NudgeMiles
	case goals.TotalRides:
		return messages.NudgeBikeActivities
	case goals.TotalMilesBiking:
		return messages.NudgeBikeMiles
	default:
		return messages.NudgeActivities
	}
}

// Schedule starts the weekly cron. The default spec fires Sunday at 18:00,
// late enough that the week is nearly settled, early enough to act on.
func (s *Service) Schedule(spec string) (*cron.Cron, error) {
	if spec == "" {
		spec = "0 18 * * 0"
	}
	c := cron.New()
	_, err := c.AddFunc(spec, func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
		defer cancel()
		if err := s.RunWeekly(ctx); err != nil {
			s.log.WithError(err).Error("weekly nudge run")
		}
	})
	if err != nil {
		return nil, fmt.Errorf("scheduling nudge run: %w", err)
	}
	c.Start()
	return c, nil
}

// LogNotifier writes nudges to the log instead of a delivery transport.
// Useful in development and as the fallback when no transport is configured.
type LogNotifier struct {
	Log logrus.FieldLogger
}

func (n *LogNotifier) Notify(_ context.Context, buddy *model.BuddyLink, message string) error {
	n.Log.WithField("buddy", buddy.BuddyName).Info(message)
	return nil
}
