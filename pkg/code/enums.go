package code

import "github.com/samber/lo"

type OfferingTerm int

const (
	Term1 OfferingTerm = iota
	Term2
	Term3
	Summer
)

type Campus int

const (
	Sydney Campus = iota
	Canberra
	Paddington
)

type StudyLevel int

const (
	Undergraduate StudyLevel = iota
	Postgraduate
)

var (
	offeringTermLabels = map[string]OfferingTerm{
		"T1": Term1,
		"T2": Term2,
		"T3": Term3,
		"T0": Summer,
	}
	offeringTermNames = map[OfferingTerm]string{
		Term1:  "Term 1",
		Term2:  "Term 2",
		Term3:  "Term 3",
		Summer: "Summer Term",
	}
	campusNames = map[Campus]string{
		Sydney:     "Sydney",
		Canberra:   "UNSW Canberra",
		Paddington: "Paddington",
	}
	studyLevelNames = map[StudyLevel]string{
		Undergraduate: "Undergraduate",
		Postgraduate:  "Postgraduate",
	}
)

// ParseOfferingTerm maps the catalog labels T1, T2, T3 and T0 (summer)
func ParseOfferingTerm(s string) (OfferingTerm, bool) {
	term, ok := offeringTermLabels[s]
	return term, ok
}

func (term OfferingTerm) String() string {
	return offeringTermNames[term]
}

func ParseCampus(s string) (Campus, bool) {
	return lo.FindKey(campusNames, s)
}

func (campus Campus) String() string {
	return campusNames[campus]
}

func ParseStudyLevel(s string) (StudyLevel, bool) {
	return lo.FindKey(studyLevelNames, s)
}

func (level StudyLevel) String() string {
	return studyLevelNames[level]
}
