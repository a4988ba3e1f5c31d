package domain

// Fixed foraging texts sent in place of generated recommendations.
const (
	// ForagingThinking is sent while generation is pending.
	ForagingThinking = "Thinking..."

	// ForagingDisabled is sent when the caller opted out of generation.
	ForagingDisabled = "Gemini API is disabled"

	// ForagingFallback replaces the text when generation fails.
	ForagingFallback = "Unable to generate foraging recommendations at this time."
)

// Default foraging prompt templates. Arguments are indexed:
// %[1]v height (in), %[2]v weight (lbs), %[3]v sex, %[4]v activity level,
// %[5]v age, %[6]v location.
//
//nolint:lll // Prompt content is intentionally long and should not be wrapped.
const (
	ForagingPromptHTML = `Given a person with the following characteristics: %[1]v inches, %[2]v lbs, %[3]v, %[4]v, %[5]v years old, located in %[6]v.
Provide a concise set of bullet points offering realistic foraging strategies tailored to the user's location.
Each main bullet should present a specific edible plant or natural resource commonly found in that region, formatted with the common name followed by its scientific name in brackets, if applicable.
Under each main bullet, include sub-bullets that offer practical, actionable tips on how and where to forage for the item safely, including identifying features and warnings about toxic look-alikes.
Use second-person perspective, avoid text styling, and do not repeat the user's location at the beginning of the response.
Reference actual plant species, fungi, or typical foraging areas like city parks, coastlines, wooded trails, or urban lots.
Ensure each tip is practical, accurate, and appropriate for the local terrain and climate.
Emphasize the importance of accurate identification and caution the user to avoid consuming any plant unless they are certain of its safety.

Output the response as a valid HTML fragment. Only the inner lists should be unordered. Do not wrap the response in html or body tags.`

	ForagingPromptText = `Given a person with the following characteristics: %[1]v inches, %[2]v lbs, %[3]v, %[4]v, %[5]v years old, located in %[6]v.
Provide realistic foraging strategies tailored to the user's location.
Describe each edible plant or natural resource commonly found in that region as one group:
the first line of a group is the common name followed by the scientific name in brackets, if applicable;
each following line of the group starts with "- " and gives one practical tip on where and how to forage it safely, including identifying features and toxic look-alikes.
Separate groups with exactly one blank line. Use plain text only, second-person perspective, and no other formatting.
Emphasize accurate identification and caution the user to avoid consuming any plant unless they are certain of its safety.`
)
