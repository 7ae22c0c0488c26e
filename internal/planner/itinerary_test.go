package planner

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/4the-win/go-party-weekend/internal/types"
)

func magnitude() types.Party {
	return types.Party{
		PartyName:   "Magnitude",
		Date:        "2026-09-25",
		StartTime:   "10:00 PM",
		TicketPrice: "$75",
	}
}

func brut() types.Party {
	return types.Party{
		PartyName:   "Brut",
		Date:        "2026-09-26",
		StartTime:   "9:00 PM",
		TicketPrice: "$50",
	}
}

func TestAddPartyToEmptyItinerary(t *testing.T) {
	it := AddParty(types.Itinerary{}, magnitude())

	require.Len(t, it.Days, 1)
	assert.Equal(t, "2026-09-25", it.Days[0].Date)
	assert.Equal(t, 1, it.Days[0].DayNumber)
	require.Len(t, it.Days[0].Parties, 1)
	assert.Equal(t, "Magnitude", it.Days[0].Parties[0].PartyName)
	assert.Equal(t, 75, it.TotalCost)
}

func TestAddPartyCreatesSecondDayInDateOrder(t *testing.T) {
	it := AddParty(AddParty(types.Itinerary{}, magnitude()), brut())

	require.Len(t, it.Days, 2)
	assert.Equal(t, "2026-09-25", it.Days[0].Date)
	assert.Equal(t, "2026-09-26", it.Days[1].Date)
	assert.Equal(t, 1, it.Days[0].DayNumber)
	assert.Equal(t, 2, it.Days[1].DayNumber)
	assert.Equal(t, 125, it.TotalCost)
}

func TestAddPartyEarlierDayRenumbers(t *testing.T) {
	it := AddParty(AddParty(types.Itinerary{}, brut()), magnitude())

	require.Len(t, it.Days, 2)
	assert.Equal(t, "2026-09-25", it.Days[0].Date)
	assert.Equal(t, 1, it.Days[0].DayNumber)
	assert.Equal(t, "2026-09-26", it.Days[1].Date)
	assert.Equal(t, 2, it.Days[1].DayNumber)
}

func TestRemoveParty(t *testing.T) {
	it := AddParty(AddParty(types.Itinerary{}, magnitude()), brut())

	it = RemoveParty(it, 0, 0)

	require.Len(t, it.Days, 1)
	require.Len(t, it.Days[0].Parties, 1)
	assert.Equal(t, "Brut", it.Days[0].Parties[0].PartyName)
	assert.Equal(t, 1, it.Days[0].DayNumber)
	assert.Equal(t, 50, it.TotalCost)
}

func TestRemovePartyOutOfRangeIsNoOp(t *testing.T) {
	it := AddParty(types.Itinerary{}, magnitude())

	assert.Equal(t, it, RemoveParty(it, 5, 0))
	assert.Equal(t, it, RemoveParty(it, 0, 3))
	assert.Equal(t, it, RemoveParty(it, -1, 0))
}

func TestAddPartyDuplicateNameIsNoOp(t *testing.T) {
	it := AddParty(AddParty(types.Itinerary{}, magnitude()), brut())

	impostor := types.Party{
		PartyName:   "Magnitude",
		Date:        "2026-09-27",
		StartTime:   "11:00 PM",
		TicketPrice: "$999",
	}
	again := AddParty(it, impostor)

	assert.Equal(t, it, again)
	assert.Equal(t, 125, again.TotalCost)
}

func TestAddPartyIdempotent(t *testing.T) {
	once := AddParty(types.Itinerary{}, magnitude())
	twice := AddParty(once, magnitude())
	assert.Equal(t, once, twice)
}

func TestAddPartyDoesNotMutateInput(t *testing.T) {
	base := AddParty(types.Itinerary{}, magnitude())
	snapshot := cloneDays(base.Days)

	_ = AddParty(base, brut())
	_ = RemoveParty(base, 0, 0)

	assert.Equal(t, snapshot, base.Days)
}

func TestWithinDaySortByStartTime(t *testing.T) {
	it := types.Itinerary{}
	late := types.Party{PartyName: "Afterhours", Date: "2026-09-25", StartTime: "Close", TicketPrice: "$30"}
	early := types.Party{PartyName: "Brunch Beats", Date: "2026-09-25", StartTime: "11:00 AM", TicketPrice: "Free"}
	mid := types.Party{PartyName: "Main", Date: "2026-09-25", StartTime: "10:00 PM", TicketPrice: "$75"}

	for _, p := range []types.Party{late, early, mid} {
		it = AddParty(it, p)
	}

	require.Len(t, it.Days, 1)
	names := []string{}
	for _, p := range it.Days[0].Parties {
		names = append(names, p.PartyName)
	}
	assert.Equal(t, []string{"Brunch Beats", "Main", "Afterhours"}, names)
}

func TestTotalCostMatchesResumAfterMutations(t *testing.T) {
	parties := []types.Party{
		{PartyName: "A", Date: "2026-09-25", StartTime: "10:00 PM", TicketPrice: "$75"},
		{PartyName: "B", Date: "2026-09-25", StartTime: "Close", TicketPrice: "Free"},
		{PartyName: "C", Date: "2026-09-26", StartTime: "9:00 PM", TicketPrice: "$50"},
		{PartyName: "D", Day: "Sep 27 (Sun)", StartTime: "2 PM", TicketPrice: "TBD"},
		{PartyName: "E", Date: "2026-09-27", StartTime: "11:00 PM", TicketPrice: "$120"},
	}

	it := types.Itinerary{}
	for _, p := range parties {
		it = AddParty(it, p)
		assert.Equal(t, SumItinerary(it.Days), it.TotalCost)
		assert.GreaterOrEqual(t, it.TotalCost, 0)
	}

	// duplicate adds do not drift the total
	it = AddParty(it, parties[0])
	assert.Equal(t, SumItinerary(it.Days), it.TotalCost)

	it = RemoveParty(it, 0, 0)
	assert.Equal(t, SumItinerary(it.Days), it.TotalCost)
	it = RemoveParty(it, 1, 0)
	assert.Equal(t, SumItinerary(it.Days), it.TotalCost)
	it = RemoveParty(it, 10, 0)
	assert.Equal(t, SumItinerary(it.Days), it.TotalCost)
	assert.GreaterOrEqual(t, it.TotalCost, 0)
}

func TestDayInvariantsAfterEveryAdd(t *testing.T) {
	parties := []types.Party{
		{PartyName: "C", Date: "2026-09-26", StartTime: "9:00 PM", TicketPrice: "$50"},
		{PartyName: "A", Date: "2026-09-25", StartTime: "10:00 PM", TicketPrice: "$75"},
		{PartyName: "E", Date: "2026-09-27", StartTime: "11:00 PM", TicketPrice: "$120"},
		{PartyName: "B", Date: "2026-09-25", StartTime: "1:00 PM", TicketPrice: "Free"},
		{PartyName: "D", Date: "2026-09-26", StartTime: "Close", TicketPrice: "Door Only"},
	}

	it := types.Itinerary{}
	for _, p := range parties {
		it = AddParty(it, p)
		for i, day := range it.Days {
			assert.Equal(t, i+1, day.DayNumber)
			if i > 0 {
				assert.Less(t, it.Days[i-1].Date, day.Date)
			}
			for j := 1; j < len(day.Parties); j++ {
				assert.LessOrEqual(t,
					ParseStartMinutes(day.Parties[j-1].StartTime),
					ParseStartMinutes(day.Parties[j].StartTime),
				)
			}
		}
	}
}

func TestGroupPartiesByDay(t *testing.T) {
	parties := []types.Party{
		{PartyName: "C", Date: "2026-09-26", Day: "Sep 26 (Sat)", StartTime: "9:00 PM"},
		{PartyName: "A", Date: "2026-09-25", Day: "Sep 25 (Fri)", StartTime: "10:00 PM"},
		{PartyName: "B", Date: "2026-09-25", Day: "Sep 25 (Fri)", StartTime: "1:00 PM"},
		{PartyName: "D", Day: "Sep 27 (Sun)", StartTime: "2 PM"},
	}

	days := GroupPartiesByDay(parties)

	require.Len(t, days, 3)
	assert.Equal(t, "2026-09-25", days[0].Date)
	assert.Equal(t, "Sep 25 (Fri)", days[0].DayLabel)
	assert.Equal(t, []int{1, 2, 3}, []int{days[0].DayNumber, days[1].DayNumber, days[2].DayNumber})
	// date-less party buckets under its day label
	assert.Equal(t, "Sep 27 (Sun)", days[2].Date)
	// within the first day, B (1 PM) sorts before A (10 PM)
	assert.Equal(t, "B", days[0].Parties[0].PartyName)
	assert.Equal(t, "A", days[0].Parties[1].PartyName)
}

func TestIsPartyInItinerary(t *testing.T) {
	it := AddParty(types.Itinerary{}, magnitude())

	assert.True(t, IsPartyInItinerary(it.Days, "Magnitude"))
	assert.False(t, IsPartyInItinerary(it.Days, "magnitude"))
	assert.False(t, IsPartyInItinerary(it.Days, "Brut"))
	assert.False(t, IsPartyInItinerary(nil, "Magnitude"))
}
