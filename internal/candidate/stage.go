package candidate

// Stage is one discrete step in the fixed screening sequence. Exactly one
// stage is active per session and the machine only ever moves forward,
// except for the closing short circuit reachable from any stage.
type Stage string

const (
	StageGreeting           Stage = "greeting"
	StageName               Stage = "name"
	StageContactInfo        Stage = "contact_info"
	StageExperience         Stage = "experience"
	StagePosition           Stage = "position"
	StageLocation           Stage = "location"
	StageTechStack          Stage = "tech_stack"
	StageTechnicalQuestions Stage = "technical_questions"
	StageClosing            Stage = "closing"
)

// Stages lists the screening sequence in order.
var Stages = []Stage{
	StageGreeting,
	StageName,
	StageContactInfo,
	StageExperience,
	StagePosition,
	StageLocation,
	StageTechStack,
	StageTechnicalQuestions,
	StageClosing,
}

// Valid reports whether s is one of the defined stages.
func (s Stage) Valid() bool {
	for _, known := range Stages {
		if s == known {
			return true
		}
	}
	return false
}

// Terminal reports whether the session has reached its final stage.
func (s Stage) Terminal() bool {
	return s == StageClosing
}

func (s Stage) String() string {
	return string(s)
}
