package services

import (
	"context"
	"time"

	"github.com/digbyberriman-collab/maritime-master-sub000/pkg/db"
)

// mockDatabase is an in-memory test double for db.Database. It mimics the
// store contract: conditional updates fail with ErrConcurrentModification
// when the observed status is stale, duplicate acknowledgments are rejected
// without a second row, and the drill sequence is monotonic.
type mockDatabase struct {
	drills              map[string]*db.Drill
	latestCompleted     map[string]*db.Drill // keyed vesselID + "/" + drillTypeID
	listDrillsOut       []db.Drill
	insertedDrills      []*db.Drill
	completedSubRecords []subRecords
	seq                 int
	seqErr              error

	documents    map[string]*db.Document
	reviews      []*db.DocumentReview
	approvals    []approval
	listDocsOut  []db.Document
	useListStubs bool

	acks map[string]*db.Acknowledgment // keyed documentID + "/" + userID

	vessels    map[string]*db.Vessel
	drillTypes []db.DrillType
	crew       []db.CrewMember
	contacts   []db.EmergencyContact
	procedures []db.EmergencyProcedure
}

var _ db.Database = (*mockDatabase)(nil)

// staleReadMock simulates a concurrent writer landing between a service's
// read and its conditional update: reads report the status a loser would
// have observed before the race, while updates see the current row.
type staleReadMock struct {
	*mockDatabase
	observedDrillStatus    db.DrillStatus
	observedDocumentStatus db.DocumentStatus
}

func (m *staleReadMock) GetDrill(ctx context.Context, id string) (*db.Drill, error) {
	drill, err := m.mockDatabase.GetDrill(ctx, id)
	if err != nil {
		return nil, err
	}
	drill.Status = m.observedDrillStatus
	return drill, nil
}

func (m *staleReadMock) GetDocument(ctx context.Context, id string) (*db.Document, error) {
	doc, err := m.mockDatabase.GetDocument(ctx, id)
	if err != nil {
		return nil, err
	}
	doc.Status = m.observedDocumentStatus
	return doc, nil
}

type approval struct {
	documentID     string
	issueDate      time.Time
	nextReviewDate time.Time
}

func newMockDatabase() *mockDatabase {
	return &mockDatabase{
		drills:          make(map[string]*db.Drill),
		latestCompleted: make(map[string]*db.Drill),
		documents:       make(map[string]*db.Document),
		acks:            make(map[string]*db.Acknowledgment),
		vessels:         make(map[string]*db.Vessel),
	}
}

// DrillStore

func (m *mockDatabase) GetDrill(ctx context.Context, id string) (*db.Drill, error) {
	drill, ok := m.drills[id]
	if !ok {
		return nil, db.ErrNotFound
	}
	copy := *drill
	return &copy, nil
}

func (m *mockDatabase) NextDrillSequence(ctx context.Context, companyID string) (int, error) {
	if m.seqErr != nil {
		return 0, m.seqErr
	}
	m.seq++
	return m.seq, nil
}

func (m *mockDatabase) InsertDrill(ctx context.Context, drill *db.Drill) error {
	m.drills[drill.ID] = drill
	m.insertedDrills = append(m.insertedDrills, drill)
	return nil
}

func (m *mockDatabase) UpdateDrillStatus(ctx context.Context, id string, from, to db.DrillStatus, reason string) error {
	drill, ok := m.drills[id]
	if !ok {
		return db.ErrNotFound
	}
	if drill.Status != from {
		return db.ErrConcurrentModification
	}
	drill.Status = to
	drill.StatusReason = reason
	return nil
}

func (m *mockDatabase) CompleteDrill(ctx context.Context, drill *db.Drill, observed db.DrillStatus,
	participants []db.DrillParticipant, evaluations []db.ObjectiveEvaluation,
	equipment []db.EquipmentCheck, deficiencies []db.DrillDeficiency) error {

	stored, ok := m.drills[drill.ID]
	if !ok {
		return db.ErrNotFound
	}
	if stored.Status != observed {
		return db.ErrConcurrentModification
	}
	*stored = *drill
	m.completedSubRecords = append(m.completedSubRecords, subRecords{
		participants: participants,
		evaluations:  evaluations,
		equipment:    equipment,
		deficiencies: deficiencies,
	})
	return nil
}

type subRecords struct {
	participants []db.DrillParticipant
	evaluations  []db.ObjectiveEvaluation
	equipment    []db.EquipmentCheck
	deficiencies []db.DrillDeficiency
}

func (m *mockDatabase) LatestCompletedDrill(ctx context.Context, vesselID, drillTypeID string) (*db.Drill, error) {
	drill, ok := m.latestCompleted[vesselID+"/"+drillTypeID]
	if !ok {
		return nil, db.ErrNotFound
	}
	copy := *drill
	return &copy, nil
}

func (m *mockDatabase) ListDrills(ctx context.Context, filter db.DrillFilter) ([]db.Drill, error) {
	return m.listDrillsOut, nil
}

func (m *mockDatabase) DeleteDrill(ctx context.Context, id string) error {
	if _, ok := m.drills[id]; !ok {
		return db.ErrNotFound
	}
	delete(m.drills, id)
	return nil
}

// DocumentStore

func (m *mockDatabase) GetDocument(ctx context.Context, id string) (*db.Document, error) {
	doc, ok := m.documents[id]
	if !ok {
		return nil, db.ErrNotFound
	}
	copy := *doc
	return &copy, nil
}

func (m *mockDatabase) InsertDocument(ctx context.Context, doc *db.Document) error {
	m.documents[doc.ID] = doc
	return nil
}

func (m *mockDatabase) UpdateDocumentStatus(ctx context.Context, id string, from, to db.DocumentStatus) error {
	doc, ok := m.documents[id]
	if !ok {
		return db.ErrNotFound
	}
	if doc.Status != from {
		return db.ErrConcurrentModification
	}
	doc.Status = to
	return nil
}

func (m *mockDatabase) ApproveDocument(ctx context.Context, id string, issueDate, nextReviewDate time.Time) error {
	doc, ok := m.documents[id]
	if !ok {
		return db.ErrNotFound
	}
	if doc.Status != db.DocumentUnderReview {
		return db.ErrConcurrentModification
	}
	doc.Status = db.DocumentApproved
	if doc.IssueDate == nil {
		doc.IssueDate = &issueDate
	}
	doc.NextReviewDate = &nextReviewDate
	m.approvals = append(m.approvals, approval{id, issueDate, nextReviewDate})
	return nil
}

func (m *mockDatabase) SetNextReviewDate(ctx context.Context, id string, next time.Time) error {
	doc, ok := m.documents[id]
	if !ok {
		return db.ErrNotFound
	}
	if doc.Status != db.DocumentApproved {
		return db.ErrConcurrentModification
	}
	doc.NextReviewDate = &next
	return nil
}

func (m *mockDatabase) InsertDocumentReview(ctx context.Context, review *db.DocumentReview) error {
	m.reviews = append(m.reviews, review)
	return nil
}

func (m *mockDatabase) ListDocumentReviews(ctx context.Context, documentID string) ([]db.DocumentReview, error) {
	var out []db.DocumentReview
	for _, r := range m.reviews {
		if r.DocumentID == documentID {
			out = append(out, *r)
		}
	}
	return out, nil
}

func (m *mockDatabase) ListDocuments(ctx context.Context, filter db.DocumentFilter) ([]db.Document, error) {
	if m.useListStubs {
		return m.listDocsOut, nil
	}
	var out []db.Document
	for _, doc := range m.documents {
		if filter.Status != "" && doc.Status != filter.Status {
			continue
		}
		if filter.MandatoryOnly && !doc.MandatoryRead {
			continue
		}
		out = append(out, *doc)
	}
	return out, nil
}

// AcknowledgmentStore

func (m *mockDatabase) InsertAcknowledgment(ctx context.Context, ack *db.Acknowledgment) error {
	key := ack.DocumentID + "/" + ack.UserID
	if _, ok := m.acks[key]; ok {
		return db.ErrDuplicateAcknowledgment
	}
	m.acks[key] = ack
	return nil
}

func (m *mockDatabase) CountAcknowledgments(ctx context.Context, documentID string) (int, error) {
	count := 0
	for _, ack := range m.acks {
		if ack.DocumentID == documentID {
			count++
		}
	}
	return count, nil
}

func (m *mockDatabase) ListAcknowledgedUserIDs(ctx context.Context, documentID string) ([]string, error) {
	var ids []string
	for _, ack := range m.acks {
		if ack.DocumentID == documentID {
			ids = append(ids, ack.UserID)
		}
	}
	return ids, nil
}

// ReferenceStore

func (m *mockDatabase) GetVessel(ctx context.Context, id string) (*db.Vessel, error) {
	vessel, ok := m.vessels[id]
	if !ok {
		return nil, db.ErrNotFound
	}
	return vessel, nil
}

func (m *mockDatabase) ListVessels(ctx context.Context, companyID string) ([]db.Vessel, error) {
	var out []db.Vessel
	for _, v := range m.vessels {
		if v.CompanyID == companyID {
			out = append(out, *v)
		}
	}
	return out, nil
}

func (m *mockDatabase) GetDrillType(ctx context.Context, id string) (*db.DrillType, error) {
	for i := range m.drillTypes {
		if m.drillTypes[i].ID == id {
			return &m.drillTypes[i], nil
		}
	}
	return nil, db.ErrNotFound
}

func (m *mockDatabase) ListDrillTypes(ctx context.Context) ([]db.DrillType, error) {
	return m.drillTypes, nil
}

func (m *mockDatabase) ListActiveCrew(ctx context.Context, companyID string, vesselID *string) ([]db.CrewMember, error) {
	return m.crew, nil
}

func (m *mockDatabase) ListEmergencyContacts(ctx context.Context, vesselID string) ([]db.EmergencyContact, error) {
	return m.contacts, nil
}

func (m *mockDatabase) ListEmergencyProcedures(ctx context.Context, vesselID string) ([]db.EmergencyProcedure, error) {
	return m.procedures, nil
}
