package catalog

import (
	"fmt"

	"github.com/limaJavier/handbook/pkg/code"
)

// ProgramManager owns the loaded programs and specialisations.
// Specialisations know which programs reference them before the manager is handed out.
type ProgramManager interface {
	// Returns the program identified by code
	GetProgram(program code.ProgramCode) (*Program, error)
	// Returns the specialisation identified by code
	GetSpecialisation(specialisation string) (*Specialisation, error)
	// Returns every program keyed by its code
	Programs() map[string]*Program
	// Returns every specialisation keyed by its code
	Specialisations() map[string]*Specialisation
}

type programManagerImpl struct {
	programs        map[string]*Program
	specialisations map[string]*Specialisation
}

// NewProgramManager links every specialisation to the programs referencing it and returns the manager
func NewProgramManager(programs map[string]*Program, specialisations map[string]*Specialisation) ProgramManager {
	manager := &programManagerImpl{
		programs:        programs,
		specialisations: specialisations,
	}
	manager.linkSpecialisations()
	return manager
}

func LoadProgramManager(programsPath, specialisationsPath string) (ProgramManager, error) {
	rawPrograms, err := recordsFromJson[RawProgram](programsPath)
	if err != nil {
		return nil, err
	}
	programs, err := processRecords(rawPrograms, ProcessRawProgram)
	if err != nil {
		return nil, err
	}

	rawSpecialisations, err := recordsFromJson[RawSpecialisation](specialisationsPath)
	if err != nil {
		return nil, err
	}
	specialisations, err := processRecords(rawSpecialisations, ProcessRawSpecialisation)
	if err != nil {
		return nil, err
	}

	return NewProgramManager(programs, specialisations), nil
}

// linkSpecialisations runs once, sequentially, before any reader sees the manager.
// Programs are visited in code order and each program is recorded once per specialisation.
func (manager *programManagerImpl) linkSpecialisations() {
	for _, key := range sortedKeys(manager.programs) {
		program := manager.programs[key]
		if program.SpecialisationComponent == nil {
			continue
		}
		for _, tier := range Tiers {
			for _, view := range program.SpecialisationComponent.Tier(tier) {
				for _, specCode := range view.Specialisations {
					specialisation, ok := manager.specialisations[specCode]
					if !ok || specialisation.IsOfferedBy(program.Code) {
						continue
					}
					specialisation.programs = append(specialisation.programs, program.Code)
				}
			}
		}
	}
}

func (manager *programManagerImpl) GetProgram(program code.ProgramCode) (*Program, error) {
	found, ok := manager.programs[program.String()]
	if !ok {
		return nil, fmt.Errorf("%v %w", program, ErrCodeNotFound)
	}
	return found, nil
}

func (manager *programManagerImpl) GetSpecialisation(specialisation string) (*Specialisation, error) {
	found, ok := manager.specialisations[specialisation]
	if !ok {
		return nil, fmt.Errorf("%v %w", specialisation, ErrCodeNotFound)
	}
	return found, nil
}

func (manager *programManagerImpl) Programs() map[string]*Program {
	return manager.programs
}

func (manager *programManagerImpl) Specialisations() map[string]*Specialisation {
	return manager.specialisations
}
