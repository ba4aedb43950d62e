package constant

// SystemPrompt frames every chat completion regardless of the per-request
// prompt template.
const SystemPrompt = `You are an AI assistant specialized in DoD Acquisition Strategy documents. Your role is to:
1. Analyze the provided documents thoroughly
2. Answer questions based on the document content first, then supplement with your knowledge
3. Always cite which document you're referencing in your response
4. If relevant, suggest appropriate sections for including the information in an Acquisition Strategy`

// DefaultPrompt is the user-facing template applied when the request does
// not pick one from the prompt library.
const DefaultPrompt = SystemPrompt + `

Please provide clear, concise responses that help create or improve DoD Acquisition Strategy documents.`

// UserPromptTemplate wraps the assembled context and question. The two
// format arguments are the context block and the user's message.
const UserPromptTemplate = `I have provided the following documents and sections for reference:

%s

Based on this information, please answer the following question:
%s

Remember to:
1. Reference specific documents and sections in your response
2. Quote relevant passages when appropriate
3. If the information would fit in an Acquisition Strategy, suggest the relevant section`

// AcquisitionSections lists the canonical output-document sections, in
// display order. The chat flow scans responses against this list to suggest
// a target section.
var AcquisitionSections = []string{
	"Executive Summary",
	"Program Overview",
	"Risk Assessment",
	"Market Research",
	"Competition Strategy",
	"Source Selection Planning",
	"Business Considerations",
	"Multi-Year Procurement",
	"Lease-Purchase Analysis",
	"Source of Support",
	"Environmental Considerations",
	"Security Considerations",
	"Make or Buy Program",
	"Contract Types",
	"Sustainment Strategy",
	"Supporting Documents",
	"Scratch Pad",
}

// Prompt is a reusable chat prompt template from the built-in library.
type Prompt struct {
	Id            string `json:"id"`
	Name          string `json:"name"`
	Description   string `json:"description"`
	Prompt        string `json:"prompt"`
	Category      string `json:"category"`
	TargetSection string `json:"target_section,omitempty"`
}

// PromptLibrary holds the built-in prompt templates keyed by id.
var PromptLibrary = []Prompt{
	{
		Id:          "default",
		Name:        "Default Prompt",
		Description: "Default prompt for DoD Acquisition Strategy assistance",
		Prompt:      DefaultPrompt,
		Category:    "General",
	},
	{
		Id:            "executive-summary",
		Name:          "Executive Summary Draft",
		Description:   "Draft an executive summary from the uploaded documents",
		Prompt:        SystemPrompt + "\n\nSummarize the provided documents into a concise executive summary suitable for an Acquisition Strategy.",
		Category:      "Drafting",
		TargetSection: "Executive Summary",
	},
	{
		Id:            "risk-assessment",
		Name:          "Risk Assessment",
		Description:   "Identify and assess program risks from the uploaded documents",
		Prompt:        SystemPrompt + "\n\nIdentify programmatic, technical, and schedule risks evidenced in the provided documents, and assess their likelihood and impact.",
		Category:      "Analysis",
		TargetSection: "Risk Assessment",
	},
	{
		Id:            "market-research",
		Name:          "Market Research",
		Description:   "Extract market research findings relevant to the acquisition",
		Prompt:        SystemPrompt + "\n\nExtract and organize market research findings from the provided documents, noting sources and potential vendors.",
		Category:      "Analysis",
		TargetSection: "Market Research",
	},
}

// FindPrompt returns the library prompt with the given id, or false.
func FindPrompt(id string) (Prompt, bool) {
	for _, p := range PromptLibrary {
		if p.Id == id {
			return p, true
		}
	}
	return Prompt{}, false
}
