// Package types defines the structured records produced by the resume parser.
package types

// WorkMode classifies a role's location arrangement.
type WorkMode string

// WorkMode constants are the three canonical location arrangements.
const (
	WorkModeRemote WorkMode = "Remote"
	WorkModeHybrid WorkMode = "Hybrid"
	WorkModeOnSite WorkMode = "On-site"
)

// ExperienceType classifies the nature of a work-experience entry.
type ExperienceType string

// ExperienceType constants cover the recognized entry kinds.
const (
	ExperienceProfessional ExperienceType = "PROFESSIONAL"
	ExperienceVolunteer    ExperienceType = "VOLUNTEER"
	ExperienceInternship   ExperienceType = "INTERNSHIP"
	ExperienceBreak        ExperienceType = "BREAK"
)

// ExperienceCategory marks special employment categories.
type ExperienceCategory string

// CategoryFreelance marks freelance/contract/self-employed roles.
const CategoryFreelance ExperienceCategory = "FREELANCE"

// ExperienceEntry is one structured job record extracted from the
// experience section. String fields are nil when the source text carried
// no recognizable value.
type ExperienceEntry struct {
	JobTitle           *string             `json:"jobTitle"`
	Employer           *string             `json:"employer"`
	City               *string             `json:"city"`
	StartDate          *string             `json:"startDate"`
	EndDate            *string             `json:"endDate"`
	IsCurrent          bool                `json:"isCurrent"`
	WorkMode           *WorkMode           `json:"workMode"`
	ExperienceType     ExperienceType      `json:"experienceType"`
	ExperienceCategory *ExperienceCategory `json:"experienceCategory"`
	IsSelfEmployed     bool                `json:"isSelfEmployed"`
	IsPromotion        bool                `json:"isPromotion"`
	ConfidenceScore    int                 `json:"confidenceScore"`
	Description        *string             `json:"description"`
}

// Clone returns a deep copy of the entry. Used by postprocessing when a
// single source entry is split into several (promotion chains).
func (e ExperienceEntry) Clone() ExperienceEntry {
	out := e
	out.JobTitle = cloneString(e.JobTitle)
	out.Employer = cloneString(e.Employer)
	out.City = cloneString(e.City)
	out.StartDate = cloneString(e.StartDate)
	out.EndDate = cloneString(e.EndDate)
	out.Description = cloneString(e.Description)
	if e.WorkMode != nil {
		wm := *e.WorkMode
		out.WorkMode = &wm
	}
	if e.ExperienceCategory != nil {
		ec := *e.ExperienceCategory
		out.ExperienceCategory = &ec
	}
	return out
}

// EducationEntry is one structured degree record extracted from the
// education section.
type EducationEntry struct {
	SchoolName  *string `json:"schoolName"`
	Degree      *string `json:"degree"`
	StartDate   *string `json:"startDate"`
	EndDate     *string `json:"endDate"`
	City        *string `json:"city"`
	Description *string `json:"description"`
}

// Skill is a single tagged skill.
type Skill struct {
	SkillName           string  `json:"skillName"`
	ExperienceLevel     *string `json:"experienceLevel"`
	HideExperienceLevel bool    `json:"hideExperienceLevel"`
}

// SocialLink is a labeled URL found in the resume text.
type SocialLink struct {
	Label string `json:"label"`
	URL   string `json:"url"`
}

// PersonalDetails holds contact information from the resume header.
// Address, City, and Country are always present (possibly empty) so that
// downstream merges never keep stale values.
type PersonalDetails struct {
	FirstName   *string `json:"firstName"`
	LastName    *string `json:"lastName"`
	Email       *string `json:"email"`
	PhoneNumber *string `json:"phoneNumber"`
	Address     string  `json:"address"`
	City        string  `json:"city"`
	Country     string  `json:"country"`
}

// Meta describes how a parse went: which sections were recognized, which
// strategy produced the result, and whether the result is partial.
type Meta struct {
	SectionsFound []string `json:"sectionsFound"`
	Partial       bool     `json:"partial"`
	Parsed        bool     `json:"parsed"`
	Parser        string   `json:"parser"`
	LLMFailed     bool     `json:"llmFailed,omitempty"`
	LLMError      string   `json:"llmError,omitempty"`
	FileType      string   `json:"fileType,omitempty"`
	Pages         *int     `json:"pages,omitempty"`
	SHA256        string   `json:"sha256,omitempty"`
	Warnings      []string `json:"warnings,omitempty"`
}

// ResumeParseResult is the full output of one parse invocation.
type ResumeParseResult struct {
	Personal            PersonalDetails   `json:"personal"`
	ProfessionalSummary *string           `json:"professionalSummary"`
	Experience          []ExperienceEntry `json:"experience"`
	Education           []EducationEntry  `json:"education"`
	Skills              []Skill           `json:"skills"`
	SocialLinks         []SocialLink      `json:"socialLinks"`
	Meta                Meta              `json:"meta"`
}

// Empty returns a ResumeParseResult with every container initialized, the
// shape an empty or unparseable input short-circuits to.
func Empty() *ResumeParseResult {
	return &ResumeParseResult{
		Experience:  []ExperienceEntry{},
		Education:   []EducationEntry{},
		Skills:      []Skill{},
		SocialLinks: []SocialLink{},
		Meta:        Meta{SectionsFound: []string{}},
	}
}

// StringPtr returns a pointer to s, or nil when s is blank after trimming.
func StringPtr(s string) *string {
	if isBlank(s) {
		return nil
	}
	return &s
}

// StringValue returns the value behind p, or "" for nil.
func StringValue(p *string) string {
	if p == nil {
		return ""
	}
	return *p
}

func cloneString(p *string) *string {
	if p == nil {
		return nil
	}
	s := *p
	return &s
}

func isBlank(s string) bool {
	for _, r := range s {
		if r != ' ' && r != '\t' && r != '\n' && r != '\r' {
			return false
		}
	}
	return true
}
