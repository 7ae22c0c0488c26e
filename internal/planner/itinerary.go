package planner

import (
	"sort"

	"github.com/4the-win/go-party-weekend/internal/types"
)

// GroupPartiesByDay buckets parties by their day key (date, falling back to
// the day label), keeping the first-seen label per bucket. Days come back
// sorted ascending by key with DayNumber set 1..N, and parties within each
// day sorted ascending by parsed start time (stable).
func GroupPartiesByDay(parties []types.Party) []types.ItineraryDay {
	index := make(map[string]int)
	var days []types.ItineraryDay

	for _, p := range parties {
		key := p.DayKey()
		i, ok := index[key]
		if !ok {
			days = append(days, types.ItineraryDay{
				Date:     key,
				DayLabel: p.DayLabel(),
			})
			i = len(days) - 1
			index[key] = i
		}
		days[i].Parties = append(days[i].Parties, p)
	}

	sort.SliceStable(days, func(a, b int) bool { return days[a].Date < days[b].Date })
	for i := range days {
		days[i].DayNumber = i + 1
		sortPartiesByStart(days[i].Parties)
	}
	return days
}

// AddParty returns a new itinerary with the party inserted into the correct
// day at the correct position. Adding a party whose name is already present
// anywhere in the itinerary is an idempotent no-op; that is the dedup
// guarantee, not an error. The total cost is bumped by the party's parsed
// price and always equals the full re-sum of every member party.
func AddParty(it types.Itinerary, p types.Party) types.Itinerary {
	if IsPartyInItinerary(it.Days, p.PartyName) {
		return it
	}

	key := p.DayKey()
	days := cloneDays(it.Days)

	placed := false
	for i := range days {
		if days[i].Date == key {
			days[i].Parties = append(days[i].Parties, p)
			sortPartiesByStart(days[i].Parties)
			placed = true
			break
		}
	}
	if !placed {
		day := types.ItineraryDay{
			Date:     key,
			DayLabel: p.DayLabel(),
			Parties:  []types.Party{p},
		}
		pos := sort.Search(len(days), func(i int) bool { return days[i].Date >= key })
		days = append(days, types.ItineraryDay{})
		copy(days[pos+1:], days[pos:])
		days[pos] = day
		for i := range days {
			days[i].DayNumber = i + 1
		}
	}

	return types.Itinerary{
		Days:      days,
		TotalCost: it.TotalCost + ParsePrice(p.TicketPrice),
	}
}

// RemoveParty returns a new itinerary without the party at the given
// day/position, its parsed price subtracted from the total (floored at 0).
// Out-of-range indices are a no-op: the UI only offers indices it rendered.
// A day emptied by the removal is dropped and the remaining days renumbered.
func RemoveParty(it types.Itinerary, dayIndex, partyIndex int) types.Itinerary {
	if dayIndex < 0 || dayIndex >= len(it.Days) {
		return it
	}
	if partyIndex < 0 || partyIndex >= len(it.Days[dayIndex].Parties) {
		return it
	}

	days := cloneDays(it.Days)
	removed := days[dayIndex].Parties[partyIndex]
	days[dayIndex].Parties = append(
		days[dayIndex].Parties[:partyIndex:partyIndex],
		days[dayIndex].Parties[partyIndex+1:]...,
	)
	if len(days[dayIndex].Parties) == 0 {
		days = append(days[:dayIndex:dayIndex], days[dayIndex+1:]...)
		for i := range days {
			days[i].DayNumber = i + 1
		}
	}

	total := it.TotalCost - ParsePrice(removed.TicketPrice)
	if total < 0 {
		total = 0
	}
	return types.Itinerary{Days: days, TotalCost: total}
}

// IsPartyInItinerary reports whether any day contains a party with exactly
// the given name.
func IsPartyInItinerary(days []types.ItineraryDay, partyName string) bool {
	for _, day := range days {
		for _, p := range day.Parties {
			if p.PartyName == partyName {
				return true
			}
		}
	}
	return false
}

// SumItinerary re-sums the parsed ticket price of every party across all
// days. Used to derive a missing total from the generation workflow and as
// the authoritative value the incremental total must agree with.
func SumItinerary(days []types.ItineraryDay) int {
	total := 0
	for _, day := range days {
		for _, p := range day.Parties {
			total += ParsePrice(p.TicketPrice)
		}
	}
	return total
}

func sortPartiesByStart(parties []types.Party) {
	sort.SliceStable(parties, func(a, b int) bool {
		return ParseStartMinutes(parties[a].StartTime) < ParseStartMinutes(parties[b].StartTime)
	})
}

// cloneDays copies the day slice and each day's party slice so callers can
// hold earlier snapshots while the session mutates.
func cloneDays(days []types.ItineraryDay) []types.ItineraryDay {
	out := make([]types.ItineraryDay, len(days))
	copy(out, days)
	for i := range out {
		parties := make([]types.Party, len(out[i].Parties))
		copy(parties, out[i].Parties)
		out[i].Parties = parties
	}
	return out
}
