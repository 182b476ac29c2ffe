package cluster

import (
	"sort"
	"time"

	"github.com/jengzang/memories-backend-go/internal/models"
)

// DayKeyLayout is the calendar-day key format used across the engine
const DayKeyLayout = "2006-01-02"

// DayKey returns the local calendar-day key of an item's capture time,
// and false when the item carries no timestamp
func DayKey(m *models.MediaItem) (string, bool) {
	t, ok := m.LocalTime()
	if !ok {
		return "", false
	}
	return t.Format(DayKeyLayout), true
}

// SortByTime sorts items chronologically in place, breaking capture-time
// ties by id so equal inputs always yield identical orderings. Items
// without a timestamp sort before timestamped ones.
func SortByTime(items []*models.MediaItem) {
	sort.SliceStable(items, func(i, j int) bool {
		a, b := items[i], items[j]
		switch {
		case !a.HasTime() && !b.HasTime():
			return a.ID < b.ID
		case !a.HasTime():
			return true
		case !b.HasTime():
			return false
		}
		if a.TakenAt.Equal(*b.TakenAt) {
			return a.ID < b.ID
		}
		return a.TakenAt.Before(*b.TakenAt)
	})
}

// Timestamped returns the subset of items that carry a capture timestamp,
// sorted chronologically
func Timestamped(items []*models.MediaItem) []*models.MediaItem {
	var out []*models.MediaItem
	for _, m := range items {
		if m.HasTime() {
			out = append(out, m)
		}
	}
	SortByTime(out)
	return out
}

// GroupByDay partitions items into local calendar days. Items without a
// timestamp are skipped.
func GroupByDay(items []*models.MediaItem) map[string][]*models.MediaItem {
	days := make(map[string][]*models.MediaItem)
	for _, m := range items {
		key, ok := DayKey(m)
		if !ok {
			continue
		}
		days[key] = append(days[key], m)
	}
	return days
}

// SortedDayKeys returns the keys of a per-day grouping in ascending order
func SortedDayKeys[T any](days map[string]T) []string {
	keys := make([]string, 0, len(days))
	for k := range days {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Gap returns the time elapsed between two timestamped items
func Gap(prev, next *models.MediaItem) time.Duration {
	return next.TakenAt.Sub(*prev.TakenAt)
}
