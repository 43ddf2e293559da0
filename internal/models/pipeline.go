package models

// Template variable names exposed to agent and task texts.
const (
	VarProjectType         = "project_type"
	VarIndustry            = "industry"
	VarProjectObjectives   = "project_objectives"
	VarTeamMembers         = "team_members"
	VarProjectRequirements = "project_requirements"
)

// PipelineInput holds the free-text parameters supplied by the caller.
// All fields are unconstrained; a missing field is the empty string.
type PipelineInput struct {
	Project      string `json:"project" jsonschema:"Project name or type"`
	Industry     string `json:"industry" jsonschema:"Industry the project belongs to"`
	Objectives   string `json:"objectives" jsonschema:"Project objectives"`
	TeamMembers  string `json:"team_members" jsonschema:"Team members and their roles"`
	Requirements string `json:"project_requirements" jsonschema:"Project requirements"`
}

// DefaultPipelineInput returns the values the input form is pre-filled with.
func DefaultPipelineInput() PipelineInput {
	return PipelineInput{
		Project:      "Website",
		Industry:     "Technology",
		Objectives:   "Create a website for a small business",
		TeamMembers:  "- John Doe (Project Manager)\n- Jane Doe (Software Engineer)",
		Requirements: "- Responsive design\n- Modern UI\n- SEO optimization",
	}
}

// Variables maps the input onto the template variables used by the crew
// configuration documents.
func (in PipelineInput) Variables() map[string]string {
	return map[string]string{
		VarProjectType:         in.Project,
		VarIndustry:            in.Industry,
		VarProjectObjectives:   in.Objectives,
		VarTeamMembers:         in.TeamMembers,
		VarProjectRequirements: in.Requirements,
	}
}

// KnownVariables lists every variable a configuration document may reference.
func KnownVariables() []string {
	return []string{
		VarProjectType,
		VarIndustry,
		VarProjectObjectives,
		VarTeamMembers,
		VarProjectRequirements,
	}
}

// RoleSpec is the behavioral configuration of one agent.
type RoleSpec struct {
	Name      string `json:"name"`
	Role      string `json:"role"`
	Goal      string `json:"goal"`
	Backstory string `json:"backstory"`
}

// StepSpec is a unit of work bound to exactly one role. Structured is set only
// on the terminal step, whose output must coerce into a ProjectPlan.
type StepSpec struct {
	Name           string   `json:"name"`
	Description    string   `json:"description"`
	ExpectedOutput string   `json:"expected_output"`
	Role           RoleSpec `json:"role"`
	Structured     bool     `json:"structured,omitempty"`
}

// StepOutput is the text one step produced. An ordered slice of these is the
// working memory handed to later steps.
type StepOutput struct {
	Step string `json:"step"`
	Role string `json:"role"`
	Text string `json:"text"`
}
