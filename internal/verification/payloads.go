// internal/verification/payloads.go
package verification

import (
	"encoding/json"
	"regexp"
	"strconv"
	"strings"

	"tutorlink-client/internal/common/errors"
)

// Payload is a stage-specific submission body. Validate runs the client-side
// pre-submit rules so an obviously incomplete form never costs a round trip;
// the server remains the authority and may still reject.
type Payload interface {
	StageKey() StageKey
	Validate() error
}

// Predefined patterns
var (
	emailRegex = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)
	phoneRegex = regexp.MustCompile(`^[\+]?[0-9][\d\s\-\(\)]{5,19}$`)
)

// DecodeData unmarshals a stage's raw payload into a typed struct for
// pre-filling inputs. A missing payload leaves out untouched.
func DecodeData(raw json.RawMessage, out interface{}) error {
	if len(raw) == 0 || string(raw) == "null" {
		return nil
	}
	return json.Unmarshal(raw, out)
}

// ==========================
// Stage 1: credentials
// ==========================

// FileUpload is one document selected for the stage-1 multipart upload.
type FileUpload struct {
	Name        string
	ContentType string
	Content     []byte
}

// DocumentRef is a previously uploaded document as echoed back by the server.
type DocumentRef struct {
	Name       string `json:"name"`
	URL        string `json:"url"`
	UploadedAt string `json:"uploadedAt,omitempty"`
}

// CredentialsPayload carries the files for the credentials upload.
type CredentialsPayload struct {
	Files []FileUpload `json:"-"`
}

func (CredentialsPayload) StageKey() StageKey { return StageCredentials }

func (p CredentialsPayload) Validate() error {
	if len(p.Files) == 0 {
		return errors.NewValidationError("Please choose at least one file to upload")
	}
	return nil
}

// ==========================
// Stage 2: experience
// ==========================

type Reference struct {
	Name  string `json:"name"`
	Email string `json:"email"`
	Phone string `json:"phone"`
}

// complete reports whether every contact field is filled.
func (r Reference) complete() bool {
	return strings.TrimSpace(r.Name) != "" &&
		emailRegex.MatchString(strings.TrimSpace(r.Email)) &&
		phoneRegex.MatchString(strings.TrimSpace(r.Phone))
}

type ExperiencePayload struct {
	References    []Reference `json:"references"`
	YearsTeaching int         `json:"yearsTeaching,omitempty"`
	Summary       string      `json:"summary,omitempty"`
}

func (*ExperiencePayload) StageKey() StageKey { return StageExperience }

// Validate drops incomplete references before the count check; a half-filled
// row on the form is treated as if it were never entered.
func (p *ExperiencePayload) Validate() error {
	kept := p.References[:0]
	for _, ref := range p.References {
		if ref.complete() {
			ref.Name = strings.TrimSpace(ref.Name)
			ref.Email = strings.TrimSpace(ref.Email)
			ref.Phone = strings.TrimSpace(ref.Phone)
			kept = append(kept, ref)
		}
	}
	p.References = kept

	if len(p.References) < 2 {
		return errors.NewValidationError("Please provide at least two references with name, email, and phone")
	}
	return nil
}

// ==========================
// Stage 3: demo lesson
// ==========================

type DemoPayload struct {
	VideoURL        string `json:"videoUrl"`
	Topic           string `json:"topic"`
	DurationMinutes int    `json:"durationMinutes,omitempty"`
}

func (DemoPayload) StageKey() StageKey { return StageDemo }

func (p DemoPayload) Validate() error {
	if strings.TrimSpace(p.VideoURL) == "" || strings.TrimSpace(p.Topic) == "" {
		return errors.NewValidationError("Please provide a video URL and a topic for your demo lesson")
	}
	return nil
}

// ==========================
// Stage 4: ethics declaration
// ==========================

// EthicsPayload has no strictly required fields; unchecked boxes submit as
// false and the reviewer decides.
type EthicsPayload struct {
	BackgroundCheckConsent bool `json:"backgroundCheckConsent"`
	NoCriminalRecord       bool `json:"noCriminalRecord"`
	CodeOfConductAccepted  bool `json:"codeOfConductAccepted"`
}

func (EthicsPayload) StageKey() StageKey { return StageEthics }

func (EthicsPayload) Validate() error { return nil }

// ==========================
// Stage 5: language proficiency
// ==========================

type LanguagePayload struct {
	Language  string `json:"language"`
	TestScore string `json:"testScore"`
	TestName  string `json:"testName,omitempty"`
}

func (LanguagePayload) StageKey() StageKey { return StageLanguage }

func (p LanguagePayload) Validate() error {
	if strings.TrimSpace(p.Language) == "" {
		return errors.NewValidationError("Please provide a language and a numeric test score")
	}
	if _, err := strconv.ParseFloat(strings.TrimSpace(p.TestScore), 64); err != nil {
		return errors.NewValidationError("Please provide a language and a numeric test score")
	}
	return nil
}

// ==========================
// Stage 6: intro call
// ==========================

type IntroCallPayload struct {
	ScheduledDate string `json:"scheduledDate"`
	Timezone      string `json:"timezone,omitempty"`
}

func (IntroCallPayload) StageKey() StageKey { return StageIntroCall }

func (p IntroCallPayload) Validate() error {
	if strings.TrimSpace(p.ScheduledDate) == "" {
		return errors.NewValidationError("Please choose a date and time for your intro call")
	}
	return nil
}

// ==========================
// Stage 7: curriculum
// ==========================

type CurriculumTest struct {
	Curriculum string  `json:"curriculum"`
	Score      float64 `json:"score"`
}

type CurriculumPayload struct {
	Tests           []CurriculumTest `json:"tests"`
	LessonPlanURL   string           `json:"lessonPlanUrl,omitempty"`
	LessonPlanTopic string           `json:"lessonPlanTopic,omitempty"`
}

func (*CurriculumPayload) StageKey() StageKey { return StageCurriculum }

// Validate drops entries without a curriculum selection before the count check.
func (p *CurriculumPayload) Validate() error {
	kept := p.Tests[:0]
	for _, entry := range p.Tests {
		if strings.TrimSpace(entry.Curriculum) != "" {
			kept = append(kept, entry)
		}
	}
	p.Tests = kept

	if len(p.Tests) == 0 {
		return errors.NewValidationError("Please add at least one curriculum test with a curriculum selected")
	}
	return nil
}
