package generation

// StepInput is one ordered, labeled step sent to the generation endpoint.
type StepInput struct {
	Label   string `json:"label"`
	Content string `json:"content"`
}

// OutputLabels tells the endpoint how the three artifacts are titled in the
// requesting toolkit.
type OutputLabels struct {
	Primary   string `json:"primary"`
	Secondary string `json:"secondary"`
	Action    string `json:"action"`
}

// ContextEntry is the projection of one prior session in the same workspace.
// It is assembled on demand from the live store and never persisted.
type ContextEntry struct {
	Toolkit         string      `json:"toolkit"`
	ToolkitName     string      `json:"toolkit_name"`
	SentenceOfTruth string      `json:"sentence_of_truth,omitempty"`
	Insights        []string    `json:"insights"`
	NecessaryMoves  []string    `json:"necessary_moves"`
	Steps           []StepInput `json:"steps"`
}

// Request is the outbound generation payload. WorkspaceContext is omitted
// entirely when no prior session qualifies, which is how the endpoint
// distinguishes "nothing to contextualize" from empty context.
type Request struct {
	ToolkitType      string         `json:"toolkit_type"`
	ToolkitName      string         `json:"toolkit_name"`
	Steps            []StepInput    `json:"steps"`
	ThinkingLens     string         `json:"thinking_lens"`
	OutputLabels     OutputLabels   `json:"output_labels"`
	WorkspaceContext []ContextEntry `json:"workspace_context,omitempty"`
}

// Response is the inbound generation result. Extras carries lens-specific
// structured fields the core stores but does not interpret.
type Response struct {
	Insights        []string               `json:"insights"`
	SentenceOfTruth string                 `json:"sentence_of_truth"`
	NecessaryMoves  []string               `json:"necessary_moves"`
	Extras          map[string]interface{} `json:"extras,omitempty"`
}
