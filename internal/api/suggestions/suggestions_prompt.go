package suggestions

import (
	"fmt"
	"strings"
)

const systemInstruction = `You are a travel planning expert. Analyze the trip details and suggest
suitable locations. Consider the following:
1. Current location and preferred type of trip
2. Number of days and people
3. Budget constraints
4. Season and weather conditions
5. Accessibility and travel time

Format your response as a JSON object with the following structure:
{
    "suggestions": [
        {
            "location": "Location name",
            "description": "Brief description of why this location is suitable",
            "travel_time": "Estimated travel time from current location",
            "best_season": "Best time to visit",
            "estimated_cost": "Estimated cost per person",
            "highlights": ["Highlight 1", "Highlight 2", "Highlight 3"]
        }
    ],
    "summary": "Overall summary of suggestions"
}`

func getSuggestionPrompt(duration, numberOfPeople, description string) string {
	var b strings.Builder
	b.WriteString("Please suggest travel locations based on the following details:\n\n")
	fmt.Fprintf(&b, "Trip Duration: %s\n", duration)
	fmt.Fprintf(&b, "Number of People: %s\n", numberOfPeople)
	fmt.Fprintf(&b, "Trip Description: %s\n\n", description)
	b.WriteString("Please suggest suitable locations considering the above details. ")
	b.WriteString("Focus on locations that would be appropriate for the given duration and group size.")
	return b.String()
}
