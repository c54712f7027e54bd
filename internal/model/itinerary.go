package model

// ItineraryEntry is one row of the trip table.
// Fields are free text; Day and Time carry no enforced format.
type ItineraryEntry struct {
	Day         string `json:"day"`  // one of DayLabels, not enforced
	Time        string `json:"time"` // HH:mm
	Description string `json:"description"`
	Note        string `json:"note"`
}

// TimeLayout is the wall-clock layout used for ItineraryEntry.Time.
const TimeLayout = "15:04"

// DayLabels are the options offered for the day column.
var DayLabels = []string{"Day 1", "Day 2", "Day 3", "Day 4", "Day 5", "Day 6", "Day 7"}

// DefaultItinerary returns the plan a new session starts with.
func DefaultItinerary() []ItineraryEntry {
	return []ItineraryEntry{
		{Day: "Day 1", Time: "14:00", Description: "抵達仁川機場", Note: "購買 T-Money 卡"},
		{Day: "Day 2", Time: "10:00", Description: "景福宮韓服體驗", Note: "門票 ₩3,000 (穿韓服免費)"},
		{Day: "Day 3", Time: "11:00", Description: "東廟市集", Note: "週日限定"},
		{Day: "Day 4", Time: "09:00", Description: "出發往春川", Note: "搭乘 ITX 青春號"},
		{Day: "Day 5", Time: "13:00", Description: "弘大商圈購物", Note: ""},
		{Day: "Day 6", Time: "10:00", Description: "樂天超市採買", Note: "整理行李回程"},
	}
}
