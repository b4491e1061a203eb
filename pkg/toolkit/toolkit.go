// Package toolkit holds the static definitions for every guided thinking
// toolkit: the ordered step slots, display labels, and the labels used for
// generated outputs. The definitions are the single source the context
// assembler and generation service use to resolve human-readable labels.
package toolkit

import (
	"strconv"
	"strings"
)

// Type identifies a toolkit. The set is closed; unknown values are rejected
// at the DTO boundary.
type Type string

const (
	InsightStack Type = "insight_stack"
	POVGenerator Type = "pov_generator"
	BeliefMapper Type = "belief_mapper"
	MetricTree   Type = "metric_tree"
	FlowDesigner Type = "flow_designer"
)

// Lens is a selectable analytical mode that biases the generation prompt.
type Lens string

const (
	LensAutomatic       Lens = "automatic"
	LensCritical        Lens = "critical"
	LensSystems         Lens = "systems"
	LensCreative        Lens = "creative"
	LensFirstPrinciples Lens = "first_principles"
)

// StepDefinition describes one input slot within a toolkit.
type StepDefinition struct {
	Number    int    `json:"number"`
	Label     string `json:"label"`
	MinLength int    `json:"min_length"` // trimmed chars for the step to count as complete
}

// OutputLabels are the display labels for the three generated artifacts.
type OutputLabels struct {
	Primary   string `json:"primary"`   // insights list
	Secondary string `json:"secondary"` // sentence of truth
	Action    string `json:"action"`    // necessary moves
}

type Definition struct {
	Type             Type             `json:"type"`
	Name             string           `json:"name"`
	Steps            []StepDefinition `json:"steps"`
	Outputs          OutputLabels     `json:"outputs"`
	MinCompleteSteps int              `json:"min_complete_steps"` // UI generation heuristic, not enforced by the store
}

var definitions = map[Type]*Definition{
	InsightStack: {
		Type: InsightStack,
		Name: "Insight Stack",
		Steps: []StepDefinition{
			{Number: 1, Label: "What did you observe?", MinLength: 15},
			{Number: 2, Label: "What surprised you about it?", MinLength: 15},
			{Number: 3, Label: "What pattern might explain it?", MinLength: 20},
			{Number: 4, Label: "What would have to be true for that pattern to hold?", MinLength: 20},
			{Number: 5, Label: "So what? Why does this matter now?", MinLength: 10},
		},
		Outputs: OutputLabels{
			Primary:   "Insights",
			Secondary: "Sentence of Truth",
			Action:    "Necessary Moves",
		},
		MinCompleteSteps: 2,
	},
	POVGenerator: {
		Type: POVGenerator,
		Name: "POV Generator",
		Steps: []StepDefinition{
			{Number: 1, Label: "Who is the audience?", MinLength: 10},
			{Number: 2, Label: "What do they currently believe?", MinLength: 15},
			{Number: 3, Label: "What do you want them to believe instead?", MinLength: 15},
			{Number: 4, Label: "What evidence supports the shift?", MinLength: 20},
		},
		Outputs: OutputLabels{
			Primary:   "Point-of-View Angles",
			Secondary: "Sentence of Truth",
			Action:    "Necessary Moves",
		},
		MinCompleteSteps: 2,
	},
	BeliefMapper: {
		Type: BeliefMapper,
		Name: "Belief Mapper",
		Steps: []StepDefinition{
			{Number: 1, Label: "State the belief you are examining", MinLength: 10},
			{Number: 2, Label: "List the supporting beliefs underneath it", MinLength: 20},
			{Number: 3, Label: "Which supporting belief is weakest?", MinLength: 15},
			{Number: 4, Label: "What would change your mind?", MinLength: 15},
		},
		Outputs: OutputLabels{
			Primary:   "Belief Insights",
			Secondary: "Sentence of Truth",
			Action:    "Necessary Moves",
		},
		MinCompleteSteps: 2,
	},
	MetricTree: {
		Type: MetricTree,
		Name: "Metric Tree",
		Steps: []StepDefinition{
			{Number: 1, Label: "What outcome are you trying to move?", MinLength: 10},
			{Number: 2, Label: "Break it into its driver metrics", MinLength: 20},
			{Number: 3, Label: "Which driver is most underperforming?", MinLength: 15},
			{Number: 4, Label: "What intervention targets that driver?", MinLength: 15},
		},
		Outputs: OutputLabels{
			Primary:   "Metric Insights",
			Secondary: "Sentence of Truth",
			Action:    "Necessary Moves",
		},
		MinCompleteSteps: 2,
	},
	FlowDesigner: {
		Type: FlowDesigner,
		Name: "Flow Designer",
		Steps: []StepDefinition{
			{Number: 1, Label: "Where does the flow start?", MinLength: 10},
			{Number: 2, Label: "List the steps in order", MinLength: 20},
			{Number: 3, Label: "Where does it break down today?", MinLength: 15},
			{Number: 4, Label: "What does the ideal flow look like?", MinLength: 20},
			{Number: 5, Label: "What is the smallest change with the biggest effect?", MinLength: 15},
		},
		Outputs: OutputLabels{
			Primary:   "Flow Insights",
			Secondary: "Sentence of Truth",
			Action:    "Necessary Moves",
		},
		MinCompleteSteps: 2,
	},
}

var lenses = []Lens{
	LensAutomatic,
	LensCritical,
	LensSystems,
	LensCreative,
	LensFirstPrinciples,
}

// Get returns the definition for a toolkit type.
func Get(t Type) (*Definition, bool) {
	def, ok := definitions[t]
	return def, ok
}

// All returns every definition in a stable order.
func All() []*Definition {
	ordered := []Type{InsightStack, POVGenerator, BeliefMapper, MetricTree, FlowDesigner}
	result := make([]*Definition, 0, len(ordered))
	for _, t := range ordered {
		result = append(result, definitions[t])
	}
	return result
}

// Lenses returns the selectable thinking lenses.
func Lenses() []Lens {
	return lenses
}

func IsValidType(t Type) bool {
	_, ok := definitions[t]
	return ok
}

func IsValidLens(l Lens) bool {
	for _, known := range lenses {
		if known == l {
			return true
		}
	}
	return false
}

// StepLabel resolves the display label for a step number. Unknown steps fall
// back to a generic label so stale ledger rows still render.
func (d *Definition) StepLabel(number int) string {
	for _, step := range d.Steps {
		if step.Number == number {
			return step.Label
		}
	}
	return GenericStepLabel(number)
}

// GenericStepLabel is the fallback label for steps outside any definition.
func GenericStepLabel(number int) string {
	return "Step " + strconv.Itoa(number)
}

// IsStepComplete reports whether the content meets the step's minimum length
// threshold. Completeness drives UI affordances only; generation is never
// gated on it here.
func (d *Definition) IsStepComplete(number int, content string) bool {
	trimmed := strings.TrimSpace(content)
	for _, step := range d.Steps {
		if step.Number == number {
			return len(trimmed) >= step.MinLength
		}
	}
	return trimmed != ""
}

// CompleteCount counts the steps whose content passes the completeness
// threshold.
func (d *Definition) CompleteCount(steps map[int]string) int {
	count := 0
	for number, content := range steps {
		if d.IsStepComplete(number, content) {
			count++
		}
	}
	return count
}

// ReadyForGeneration reports the UI quorum heuristic (at least
// MinCompleteSteps complete).
func (d *Definition) ReadyForGeneration(steps map[int]string) bool {
	return d.CompleteCount(steps) >= d.MinCompleteSteps
}
