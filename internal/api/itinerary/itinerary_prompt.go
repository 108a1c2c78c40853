package itinerary

import (
	"fmt"
	"strings"

	"github.com/FACorreiaa/go-trip-planner/internal/types"
)

const systemInstruction = "You are a professional travel planner. Create detailed, practical, and engaging travel itineraries."

func getItineraryPrompt(numDays int, req types.ItineraryRequest, dest types.SelectedDestination) string {
	return fmt.Sprintf(`Create a detailed travel itinerary for a %d-day trip to %s.

Trip Details:
- Start Date: %s
- End Date: %s
- Additional Preferences: %s
- Destination Highlights: %s

Please provide a day-by-day breakdown including:
1. Morning activities
2. Afternoon activities
3. Evening activities
4. Recommended restaurants
5. Transportation details
6. Estimated costs for each day
7. Any special considerations based on the preferences

Format the response in a structured way that can be easily displayed on a webpage.`,
		numDays, dest.Location,
		req.StartDate, req.EndDate, req.Preferences,
		strings.Join(dest.Highlights, ", "))
}
