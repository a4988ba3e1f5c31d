package driven

// PromptStore provides access to LLM prompt templates.
type PromptStore interface {
	// Load returns the prompt template for the given name.
	Load(name string) (string, error)

	// Reload clears any cached prompts, forcing fresh loads on next access.
	// This is called when prompt files change on disk.
	Reload()
}

// Well-known prompt names.
//
// Foraging templates receive the profile as indexed fmt arguments:
// %[1]v height (in), %[2]v weight (lbs), %[3]v sex, %[4]v activity level,
// %[5]v age, %[6]v location.
const (
	// PromptForagingHTML requests an HTML list fragment.
	PromptForagingHTML = "foraging_html"

	// PromptForagingText requests plain text in blank-line separated groups.
	PromptForagingText = "foraging_text"
)
