package catalog

import (
	"fmt"
	"slices"

	"github.com/limaJavier/handbook/pkg/code"
	"github.com/limaJavier/handbook/pkg/requirements"
	log "github.com/sirupsen/logrus"
)

// schoolWithoutRequirements names the provider whose courses are never requirement-checked
const schoolWithoutRequirements = "UNSW Global"

type Course struct {
	Title         string
	Code          code.CourseCode
	UOC           uint8
	Description   string
	Level         uint8
	StudyLevel    code.StudyLevel
	OfferingTerms []code.OfferingTerm
	Campus        code.Campus
	School        string
	Faculty       string
	GenEd         bool
	IsMultiterm   bool
	Requirements  *requirements.Requirements // nil when the course is not requirement-checked
}

// IsEligible evaluates the course's requirements against the student's record.
// A course without requirements is always eligible.
func (course *Course) IsEligible(student requirements.Student, lookup requirements.CourseLookup) (bool, error) {
	if course.Requirements == nil {
		log.WithFields(log.Fields{
			"course": course.Code.String(),
		}).Warn("course has no checked requirements, treating as eligible")
		return true, nil
	}
	return course.Requirements.IsSatisfied(student, lookup)
}

func (course *Course) AvailableAt(term code.OfferingTerm) bool {
	return slices.Contains(course.OfferingTerms, term)
}

func (course *Course) String() string {
	return fmt.Sprintf("%v - %v", course.Code, course.Title)
}

// ProcessRawCourse validates a raw course record and parses its requirement text.
// A requirement that cannot be parsed degrades to nil.
func ProcessRawCourse(raw RawCourse) (*Course, error) {
	courseCode, ok := code.FromStrExact(raw.Code)
	if !ok {
		return nil, fmt.Errorf("invalid course code: %v", raw.Code)
	}
	studyLevel, ok := code.ParseStudyLevel(raw.StudyLevel)
	if !ok {
		return nil, fmt.Errorf("unexpected study level for course %v: %v", raw.Code, raw.StudyLevel)
	}
	campus, ok := code.ParseCampus(raw.Campus)
	if !ok {
		return nil, fmt.Errorf("unexpected campus for course %v: %v", raw.Code, raw.Campus)
	}

	// Unknown term labels are skipped
	offeringTerms := make([]code.OfferingTerm, 0, len(raw.Terms))
	for _, label := range raw.Terms {
		if term, ok := code.ParseOfferingTerm(label); ok {
			offeringTerms = append(offeringTerms, term)
		}
	}

	var courseRequirements *requirements.Requirements
	if campus != code.Canberra && raw.School != schoolWithoutRequirements {
		parsed, err := requirements.New(raw.RawRequirements)
		if err != nil {
			log.WithFields(log.Fields{
				"course": raw.Code,
				"error":  err,
			}).Warn("requirement parsing failed, course will not be checked")
		} else {
			courseRequirements = parsed
		}
	}

	return &Course{
		Title:         raw.Title,
		Code:          courseCode,
		UOC:           raw.UOC,
		Description:   raw.Description,
		Level:         raw.Level,
		StudyLevel:    studyLevel,
		OfferingTerms: offeringTerms,
		Campus:        campus,
		School:        raw.School,
		Faculty:       raw.Faculty,
		GenEd:         raw.GenEd,
		IsMultiterm:   raw.IsMultiterm,
		Requirements:  courseRequirements,
	}, nil
}
