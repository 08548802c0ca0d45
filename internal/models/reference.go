package models

import "strings"

// Subject is a taught course.
type Subject struct {
	ID          string `db:"id" json:"id" yaml:"id"`
	Name        string `db:"name" json:"name" yaml:"name"`
	RequiresLab bool   `db:"requires_lab" json:"requiresLab" yaml:"requiresLab"`
}

// Faculty is a teaching staff member.
type Faculty struct {
	ID        string `db:"id" json:"id" yaml:"id"`
	Name      string `db:"name" json:"name" yaml:"name"`
	SubjectID string `db:"subject_id" json:"subjectId" yaml:"subjectId"`
	Email     string `db:"email" json:"email" yaml:"email"`
}

// Batch is a cohort of students sharing a timetable.
type Batch struct {
	ID   string `db:"id" json:"id" yaml:"id"`
	Name string `db:"name" json:"name" yaml:"name"`
	Size int    `db:"size" json:"size" yaml:"size"`
}

// Classroom is a bookable room.
type Classroom struct {
	ID       string `db:"id" json:"id" yaml:"id"`
	Name     string `db:"name" json:"name" yaml:"name"`
	IsLab    bool   `db:"is_lab" json:"isLab" yaml:"isLab"`
	Capacity int    `db:"capacity" json:"capacity" yaml:"capacity"`
}

// Club is a student society that books rooms outside class hours.
type Club struct {
	ID   string `db:"id" json:"id" yaml:"id"`
	Name string `db:"name" json:"name" yaml:"name"`
}

// Coordinator runs a club and may book slots on its behalf.
type Coordinator struct {
	ID     string `db:"id" json:"id" yaml:"id"`
	Name   string `db:"name" json:"name" yaml:"name"`
	ClubID string `db:"club_id" json:"clubId" yaml:"clubId"`
	Email  string `db:"email" json:"email" yaml:"email"`
}

// ReferenceTables is the raw form of the static lookup data.
type ReferenceTables struct {
	Subjects     []Subject     `json:"subjects" yaml:"subjects"`
	Faculty      []Faculty     `json:"faculty" yaml:"faculty"`
	Batches      []Batch       `json:"batches" yaml:"batches"`
	Classrooms   []Classroom   `json:"classrooms" yaml:"classrooms"`
	Clubs        []Club        `json:"clubs" yaml:"clubs"`
	Coordinators []Coordinator `json:"coordinators" yaml:"coordinators"`
}

// ReferenceData is a read-only lookup context over ReferenceTables. It is safe for
// concurrent readers once built.
type ReferenceData struct {
	tables       ReferenceTables
	subjects     map[string]Subject
	faculty      map[string]Faculty
	batches      map[string]Batch
	classrooms   map[string]Classroom
	clubs        map[string]Club
	coordinators map[string]Coordinator
}

// NewReferenceData indexes the given tables.
func NewReferenceData(tables ReferenceTables) *ReferenceData {
	ref := &ReferenceData{
		tables:       tables,
		subjects:     make(map[string]Subject, len(tables.Subjects)),
		faculty:      make(map[string]Faculty, len(tables.Faculty)),
		batches:      make(map[string]Batch, len(tables.Batches)),
		classrooms:   make(map[string]Classroom, len(tables.Classrooms)),
		clubs:        make(map[string]Club, len(tables.Clubs)),
		coordinators: make(map[string]Coordinator, len(tables.Coordinators)),
	}
	for _, s := range tables.Subjects {
		ref.subjects[s.ID] = s
	}
	for _, f := range tables.Faculty {
		ref.faculty[f.ID] = f
	}
	for _, b := range tables.Batches {
		ref.batches[b.ID] = b
	}
	for _, c := range tables.Classrooms {
		ref.classrooms[c.ID] = c
	}
	for _, c := range tables.Clubs {
		ref.clubs[c.ID] = c
	}
	for _, c := range tables.Coordinators {
		ref.coordinators[c.ID] = c
	}
	return ref
}

// Tables returns the underlying tables in their original order.
func (r *ReferenceData) Tables() ReferenceTables {
	if r == nil {
		return ReferenceTables{}
	}
	return r.tables
}

// FacultyList returns every faculty member in table order.
func (r *ReferenceData) FacultyList() []Faculty {
	if r == nil {
		return nil
	}
	return r.tables.Faculty
}

// Classrooms returns every classroom in table order.
func (r *ReferenceData) Classrooms() []Classroom {
	if r == nil {
		return nil
	}
	return r.tables.Classrooms
}

// FacultyName resolves a faculty id, falling back to the id itself.
func (r *ReferenceData) FacultyName(id string) string {
	if r != nil {
		if f, ok := r.faculty[id]; ok && f.Name != "" {
			return f.Name
		}
	}
	return id
}

// BatchName resolves a batch id, falling back to the id itself.
func (r *ReferenceData) BatchName(id string) string {
	if r != nil {
		if b, ok := r.batches[id]; ok && b.Name != "" {
			return b.Name
		}
	}
	return id
}

// ClassroomName resolves a classroom id, falling back to the id itself.
func (r *ReferenceData) ClassroomName(id string) string {
	if r != nil {
		if c, ok := r.classrooms[id]; ok && c.Name != "" {
			return c.Name
		}
	}
	return id
}

// SubjectName resolves a subject id, falling back to the id itself.
func (r *ReferenceData) SubjectName(id string) string {
	if r != nil {
		if s, ok := r.subjects[id]; ok && s.Name != "" {
			return s.Name
		}
	}
	return id
}

// ClubName resolves a club id, falling back to the id itself.
func (r *ReferenceData) ClubName(id string) string {
	if r != nil {
		if c, ok := r.clubs[id]; ok && c.Name != "" {
			return c.Name
		}
	}
	return id
}

// Subject looks up a subject.
func (r *ReferenceData) Subject(id string) (Subject, bool) {
	if r == nil {
		return Subject{}, false
	}
	s, ok := r.subjects[id]
	return s, ok
}

// Batch looks up a batch.
func (r *ReferenceData) Batch(id string) (Batch, bool) {
	if r == nil {
		return Batch{}, false
	}
	b, ok := r.batches[id]
	return b, ok
}

// HasFaculty reports whether the faculty id is known.
func (r *ReferenceData) HasFaculty(id string) bool {
	if r == nil {
		return false
	}
	_, ok := r.faculty[id]
	return ok
}

// Classroom looks up a classroom.
func (r *ReferenceData) Classroom(id string) (Classroom, bool) {
	if r == nil {
		return Classroom{}, false
	}
	c, ok := r.classrooms[id]
	return c, ok
}

// ClassroomByName finds a classroom by id or case-insensitive display name.
func (r *ReferenceData) ClassroomByName(name string) (Classroom, bool) {
	if c, ok := r.Classroom(name); ok {
		return c, true
	}
	if r == nil {
		return Classroom{}, false
	}
	for _, c := range r.tables.Classrooms {
		if strings.EqualFold(strings.TrimSpace(c.Name), strings.TrimSpace(name)) {
			return c, true
		}
	}
	return Classroom{}, false
}

// Coordinator looks up a club coordinator.
func (r *ReferenceData) Coordinator(id string) (Coordinator, bool) {
	if r == nil {
		return Coordinator{}, false
	}
	c, ok := r.coordinators[id]
	return c, ok
}
