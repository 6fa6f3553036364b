package handbook

import (
	"path/filepath"
	"strconv"
	"strings"
	"sync"

	"github.com/limaJavier/handbook/pkg/catalog"
	"github.com/limaJavier/handbook/pkg/code"
	"github.com/limaJavier/handbook/pkg/requirements"
	"github.com/limaJavier/handbook/pkg/search"
	"github.com/samber/lo"
	log "github.com/sirupsen/logrus"
)

const (
	ProgramsFile        = "programsProcessed.json"
	SpecialisationsFile = "specialisationsProcessed.json"
	CoursesFile         = "coursesProcessed.json"
	EquivalentsFile     = "equivalents.json"
	ExclusionsFile      = "exclusions.json"

	conditionsFallback = "Please Report Bug: Course condition parsing error"
)

var specialisationPrefixes = []string{"Major -", "Minor -", "Honours -"}

type CourseInfo struct {
	Code        string   `json:"code"`
	Name        string   `json:"name"`
	UOC         uint8    `json:"uoc"`
	Description string   `json:"description"`
	Conditions  string   `json:"conditions"`
	Offerings   []string `json:"offerings"`
}

type StructureItem struct {
	Name    string   `json:"name"`
	Courses []string `json:"courses"`
}

type ProgramStructure struct {
	CourseList         []StructureItem `json:"course_list"`
	SpecialisationList []StructureItem `json:"specialisation_list"`
}

type ProgramInfo struct {
	Name             string           `json:"name"`
	Code             string           `json:"code"`
	UOC              string           `json:"uoc"`
	Overview         string           `json:"overview"`
	StructureSummary string           `json:"structure_summary"`
	Structure        ProgramStructure `json:"structure"`
}

type ComponentProgress struct {
	Name      string            `json:"name"`
	Filled    map[string]string `json:"filled"`
	Remaining []string          `json:"remaining"`
}

// Handbook answers host queries over one loaded catalog snapshot.
// Every query holds the read lock; Reload swaps the snapshot under the write lock.
type Handbook struct {
	mutex    sync.RWMutex
	programs catalog.ProgramManager
	courses  catalog.CourseManager
	searcher search.Searcher
}

// New loads the five catalog files found in dataDir
func New(dataDir string) (*Handbook, error) {
	handbook := &Handbook{}
	if err := handbook.Reload(dataDir); err != nil {
		return nil, err
	}
	return handbook, nil
}

// FromManagers wraps already loaded managers
func FromManagers(programs catalog.ProgramManager, courses catalog.CourseManager) *Handbook {
	return &Handbook{
		programs: programs,
		courses:  courses,
		searcher: search.NewSearcher(programs, courses),
	}
}

// Reload reads a fresh snapshot from dataDir. On failure the current snapshot is kept.
func (handbook *Handbook) Reload(dataDir string) error {
	programs, err := catalog.LoadProgramManager(
		filepath.Join(dataDir, ProgramsFile),
		filepath.Join(dataDir, SpecialisationsFile),
	)
	if err != nil {
		return err
	}
	courses, err := catalog.LoadCourseManager(
		filepath.Join(dataDir, CoursesFile),
		filepath.Join(dataDir, EquivalentsFile),
		filepath.Join(dataDir, ExclusionsFile),
	)
	if err != nil {
		return err
	}

	handbook.mutex.Lock()
	defer handbook.mutex.Unlock()
	handbook.programs = programs
	handbook.courses = courses
	handbook.searcher = search.NewSearcher(programs, courses)

	log.WithFields(log.Fields{
		"directory":       dataDir,
		"programs":        len(programs.Programs()),
		"specialisations": len(programs.Specialisations()),
		"courses":         len(courses.Courses()),
	}).Info("catalog loaded")
	return nil
}

// CourseInfo describes a course, or returns nil when the code is malformed or unknown
func (handbook *Handbook) CourseInfo(courseCode string) *CourseInfo {
	handbook.mutex.RLock()
	defer handbook.mutex.RUnlock()

	parsed, ok := code.Parse(courseCode)
	if !ok {
		log.WithField("course", courseCode).Info("malformed course code")
		return nil
	}
	course, err := handbook.courses.GetCourse(parsed)
	if err != nil {
		log.WithField("error", err).Info("course lookup failed")
		return nil
	}

	conditions := conditionsFallback
	if course.Requirements != nil {
		conditions = course.Requirements.String()
	}
	return &CourseInfo{
		Code:        course.Code.String(),
		Name:        course.Title,
		UOC:         course.UOC,
		Description: course.Description,
		Conditions:  conditions,
		Offerings:   lo.Map(course.OfferingTerms, func(term code.OfferingTerm, _ int) string { return term.String() }),
	}
}

// ProgramInfo describes a program with its summary structure
func (handbook *Handbook) ProgramInfo(programCode string) *ProgramInfo {
	return handbook.programInfo(programCode, false, nil)
}

// ProgramAndSpecInfo describes a program with its expanded structure.
// A nil specs expands every reachable specialisation.
func (handbook *Handbook) ProgramAndSpecInfo(programCode string, specs []string) *ProgramInfo {
	return handbook.programInfo(programCode, true, specs)
}

func (handbook *Handbook) programInfo(programCode string, recursive bool, specs []string) *ProgramInfo {
	handbook.mutex.RLock()
	defer handbook.mutex.RUnlock()

	parsed, ok := handbook.parseProgram(programCode)
	if !ok {
		return nil
	}
	program, err := handbook.programs.GetProgram(parsed)
	if err != nil {
		log.WithField("error", err).Info("program lookup failed")
		return nil
	}

	structure, err := handbook.searcher.ProgramStructure(parsed, recursive, specs)
	if err != nil {
		log.WithFields(log.Fields{
			"program": programCode,
			"specs":   specs,
			"error":   err,
		}).Warn("program structure unavailable")
		structure = nil
	}

	return &ProgramInfo{
		Name:             program.Title,
		Code:             program.Code.String(),
		UOC:              strconv.FormatUint(uint64(program.UOC), 10),
		Overview:         program.Overview,
		StructureSummary: program.StructureSummary,
		Structure:        splitStructure(structure),
	}
}

// ProgramCourseCodes lists every catalog course reachable from the program
func (handbook *Handbook) ProgramCourseCodes(programCode string) []string {
	handbook.mutex.RLock()
	defer handbook.mutex.RUnlock()

	pool, ok := handbook.coursePool(programCode)
	if !ok {
		return nil
	}
	return courseCodes(handbook.searcher.CoursesFromPool(pool))
}

// EligibleCourses lists the program's courses whose requirements the student meets
func (handbook *Handbook) EligibleCourses(programCode string, taken []string, wam *uint8) []string {
	handbook.mutex.RLock()
	defer handbook.mutex.RUnlock()

	pool, ok := handbook.coursePool(programCode)
	if !ok {
		return nil
	}
	student := requirements.Student{
		Program: code.MustParseProgramCode(programCode),
		Taken:   taken,
		WAM:     wam,
	}
	return courseCodes(handbook.searcher.EligibleCourses(pool, student))
}

// Progress maps taken courses onto the program's structure and the chosen specialisations
func (handbook *Handbook) Progress(programCode string, specs []string, taken []string) []ComponentProgress {
	handbook.mutex.RLock()
	defer handbook.mutex.RUnlock()

	parsed, ok := handbook.parseProgram(programCode)
	if !ok {
		return nil
	}
	progress, err := handbook.searcher.Progress(parsed, specs, taken)
	if err != nil {
		log.WithField("error", err).Info("progress unavailable")
		return nil
	}
	return lo.Map(progress, func(component search.ComponentProgress, _ int) ComponentProgress {
		return ComponentProgress(component)
	})
}

func (handbook *Handbook) coursePool(programCode string) (*search.SearchPool, bool) {
	parsed, ok := handbook.parseProgram(programCode)
	if !ok {
		return nil, false
	}
	pool, err := handbook.searcher.CoursePool(parsed)
	if err != nil {
		log.WithField("error", err).Info("course pool unavailable")
		return nil, false
	}
	return pool, true
}

func (handbook *Handbook) parseProgram(programCode string) (code.ProgramCode, bool) {
	parsed, ok := code.ParseProgramCode(programCode)
	if !ok {
		log.WithField("program", programCode).Info("malformed program code")
	}
	return parsed, ok
}

// splitStructure moves the specialisation blocks of a structure into their own list
func splitStructure(structure []search.StructureEntry) ProgramStructure {
	items := lo.Map(structure, func(entry search.StructureEntry, _ int) StructureItem {
		return StructureItem(entry)
	})
	specialisations, courses := lo.FilterReject(items, func(item StructureItem, _ int) bool {
		return lo.SomeBy(specialisationPrefixes, func(prefix string) bool { return strings.HasPrefix(item.Name, prefix) })
	})
	return ProgramStructure{CourseList: courses, SpecialisationList: specialisations}
}

func courseCodes(courses []*catalog.Course) []string {
	return lo.Map(courses, func(course *catalog.Course, _ int) string { return course.Code.String() })
}
