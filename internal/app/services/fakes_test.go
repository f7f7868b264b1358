package services

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/asaplab/asap/internal/app/models"
	"github.com/asaplab/asap/internal/pkg/apperrors"
)

type fakeUserRepo struct {
	mu       sync.Mutex
	nextID   int64
	users    map[int64]*models.User
	students map[int64]*models.Student
	profs    map[int64]*models.Prof
	logins   int
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{
		users:    map[int64]*models.User{},
		students: map[int64]*models.Student{},
		profs:    map[int64]*models.Prof{},
	}
}

func (f *fakeUserRepo) create(u *models.User) {
	f.nextID++
	u.ID = f.nextID
	stored := *u
	f.users[u.ID] = &stored
}

func (f *fakeUserRepo) CreateStudentAccount(_ context.Context, u *models.User, student *models.Student) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.create(u)
	student.ID = u.ID
	student.UserID = u.ID
	stored := *student
	f.students[u.ID] = &stored
	return nil
}

func (f *fakeUserRepo) CreateProfAccount(_ context.Context, u *models.User, prof *models.Prof) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.create(u)
	prof.ID = u.ID
	prof.UserID = u.ID
	stored := *prof
	f.profs[u.ID] = &stored
	return nil
}

func (f *fakeUserRepo) GetByID(_ context.Context, id int64) (*models.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	u, ok := f.users[id]
	if !ok {
		return nil, apperrors.ErrUserNotFound
	}
	out := *u
	return &out, nil
}

func (f *fakeUserRepo) GetByEmail(_ context.Context, email string) (*models.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, u := range f.users {
		if strings.EqualFold(u.Email, email) {
			out := *u
			return &out, nil
		}
	}
	return nil, apperrors.ErrUserNotFound
}

func (f *fakeUserRepo) EmailExists(ctx context.Context, email string) (bool, error) {
	_, err := f.GetByEmail(ctx, email)
	return err == nil, nil
}

func (f *fakeUserRepo) Activate(_ context.Context, userID int64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.users[userID].IsActive = true
	return nil
}

func (f *fakeUserRepo) UpdatePassword(_ context.Context, userID int64, hash string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.users[userID].Password = hash
	return nil
}

func (f *fakeUserRepo) UpdateLastLogin(_ context.Context, _ int64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.logins++
	return nil
}

func (f *fakeUserRepo) UpdateProfile(_ context.Context, u *models.User, student *models.Student, prof *models.Prof) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	stored := *u
	f.users[u.ID] = &stored
	if student != nil {
		s := *student
		f.students[u.ID] = &s
	}
	if prof != nil {
		p := *prof
		f.profs[u.ID] = &p
	}
	return nil
}

func (f *fakeUserRepo) GetStudentByUserID(_ context.Context, userID int64) (*models.Student, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	s, ok := f.students[userID]
	if !ok {
		return nil, apperrors.ErrResourceNotFound
	}
	out := *s
	return &out, nil
}

func (f *fakeUserRepo) GetProfByUserID(_ context.Context, userID int64) (*models.Prof, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	p, ok := f.profs[userID]
	if !ok {
		return nil, apperrors.ErrResourceNotFound
	}
	out := *p
	return &out, nil
}

type fakeRefreshToken struct {
	userID  int64
	expiry  time.Time
	revoked bool
}

type fakeTokenRepo struct {
	tokens map[string]*fakeRefreshToken
}

func newFakeTokenRepo() *fakeTokenRepo {
	return &fakeTokenRepo{tokens: map[string]*fakeRefreshToken{}}
}

func (f *fakeTokenRepo) CreateToken(_ context.Context, token string, userID int64, expiryDate time.Time) error {
	f.tokens[token] = &fakeRefreshToken{userID: userID, expiry: expiryDate}
	return nil
}

func (f *fakeTokenRepo) GetUserIDByToken(_ context.Context, token string) (int64, error) {
	t, ok := f.tokens[token]
	switch {
	case !ok:
		return 0, apperrors.ErrTokenNotFound
	case t.revoked:
		return 0, apperrors.ErrTokenRevoked
	case t.expiry.Before(time.Now()):
		return 0, apperrors.ErrTokenExpired
	}
	return t.userID, nil
}

func (f *fakeTokenRepo) RevokeToken(_ context.Context, token string) error {
	t, ok := f.tokens[token]
	if !ok {
		return apperrors.ErrTokenNotFound
	}
	t.revoked = true
	return nil
}

func (f *fakeTokenRepo) RevokeAllUserTokens(_ context.Context, userID int64) error {
	for _, t := range f.tokens {
		if t.userID == userID {
			t.revoked = true
		}
	}
	return nil
}

func (f *fakeTokenRepo) CleanupExpiredTokens(_ context.Context) (int64, error) {
	return 0, nil
}

type fakeVerification struct {
	userID int64
	expiry time.Time
}

type fakeVerificationRepo struct {
	tokens map[string]fakeVerification
}

func newFakeVerificationRepo() *fakeVerificationRepo {
	return &fakeVerificationRepo{tokens: map[string]fakeVerification{}}
}

func (f *fakeVerificationRepo) CreateToken(_ context.Context, userID int64, token string, expiryDate time.Time) error {
	f.tokens[token] = fakeVerification{userID: userID, expiry: expiryDate}
	return nil
}

func (f *fakeVerificationRepo) GetTokenInfo(_ context.Context, token string) (int64, time.Time, error) {
	v, ok := f.tokens[token]
	if !ok {
		return 0, time.Time{}, apperrors.ErrTokenNotFound
	}
	return v.userID, v.expiry, nil
}

func (f *fakeVerificationRepo) DeleteTokensByUserID(_ context.Context, userID int64) error {
	for token, v := range f.tokens {
		if v.userID == userID {
			delete(f.tokens, token)
		}
	}
	return nil
}

func (f *fakeVerificationRepo) DeleteExpiredTokens(_ context.Context) (int64, error) {
	return 0, nil
}

type sentMail struct {
	to, name, link string
}

type fakeMailer struct {
	sent []sentMail
	err  error
}

func (f *fakeMailer) SendActivationEmail(toEmail, toName, activationURL string) error {
	f.sent = append(f.sent, sentMail{to: toEmail, name: toName, link: activationURL})
	return f.err
}

// fakeCatalog backs the research, unit and record fakes with shared state
type fakeCatalog struct {
	mu         sync.Mutex
	nextID     int64
	researches map[int64]*models.Research
	units      map[int64]*models.Unit
	records    map[int64]*models.Record
	order      []int64
}

func newFakeCatalog() *fakeCatalog {
	return &fakeCatalog{
		researches: map[int64]*models.Research{},
		units:      map[int64]*models.Unit{},
		records:    map[int64]*models.Record{},
	}
}

func (c *fakeCatalog) id() int64 {
	c.nextID++
	return c.nextID
}

func (c *fakeCatalog) addResearch(profID int64, title string) *models.Research {
	c.mu.Lock()
	defer c.mu.Unlock()
	r := &models.Research{ID: c.id(), ProfID: profID, Number: "R1", Title: title, Year: 2024, Semester: models.SemesterSpring}
	c.researches[r.ID] = r
	c.order = append(c.order, r.ID)
	return r
}

func (c *fakeCatalog) addUnit(researchID int64, capacity int) *models.Unit {
	c.mu.Lock()
	defer c.mu.Unlock()
	u := &models.Unit{
		ID:            c.id(),
		ResearchID:    researchID,
		Place:         "Room 302",
		Date:          time.Date(2024, 3, 15, 14, 0, 0, 0, time.UTC),
		PeriodMinutes: 60,
		MaxCapacity:   capacity,
		ProfID:        c.researches[researchID].ProfID,
	}
	c.units[u.ID] = u
	return u
}

type fakeResearchRepo struct{ *fakeCatalog }

func (f fakeResearchRepo) Create(_ context.Context, research *models.Research) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	research.ID = f.id()
	stored := *research
	f.researches[research.ID] = &stored
	f.order = append(f.order, research.ID)
	return nil
}

func (f fakeResearchRepo) GetByID(_ context.Context, id int64) (*models.Research, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	r, ok := f.researches[id]
	if !ok {
		return nil, apperrors.ErrResearchNotFound
	}
	out := *r
	out.Units = nil
	return &out, nil
}

func (f fakeResearchRepo) filter(keep func(*models.Research) bool) []*models.Research {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := []*models.Research{}
	for _, id := range f.order {
		if r, ok := f.researches[id]; ok && keep(r) {
			copied := *r
			out = append(out, &copied)
		}
	}
	return out
}

func (f fakeResearchRepo) ListByProf(_ context.Context, profID int64) ([]*models.Research, error) {
	return f.filter(func(r *models.Research) bool { return r.ProfID == profID }), nil
}

func (f fakeResearchRepo) ListAll(_ context.Context) ([]*models.Research, error) {
	return f.filter(func(*models.Research) bool { return true }), nil
}

func (f fakeResearchRepo) Update(_ context.Context, research *models.Research) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.researches[research.ID]; !ok {
		return apperrors.ErrResearchNotFound
	}
	stored := *research
	f.researches[research.ID] = &stored
	return nil
}

func (f fakeResearchRepo) Delete(_ context.Context, id int64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.researches[id]; !ok {
		return apperrors.ErrResearchNotFound
	}
	delete(f.researches, id)
	return nil
}

func (f fakeResearchRepo) Search(_ context.Context, field models.SearchField, q string) ([]*models.Research, error) {
	q = strings.ToLower(q)
	return f.filter(func(r *models.Research) bool {
		switch field {
		case models.SearchByTitle:
			return strings.Contains(strings.ToLower(r.Title), q)
		case models.SearchByNumber:
			return strings.Contains(strings.ToLower(r.Number), q)
		default:
			return false
		}
	}), nil
}

type fakeUnitRepo struct{ *fakeCatalog }

func (f fakeUnitRepo) Create(_ context.Context, unit *models.Unit) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.researches[unit.ResearchID]; !ok {
		return apperrors.ErrResearchNotFound
	}
	unit.ID = f.id()
	stored := *unit
	f.units[unit.ID] = &stored
	return nil
}

func (f fakeUnitRepo) GetByID(_ context.Context, id int64) (*models.Unit, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	u, ok := f.units[id]
	if !ok {
		return nil, apperrors.ErrUnitNotFound
	}
	out := *u
	return &out, nil
}

func (f fakeUnitRepo) ListByResearch(ctx context.Context, researchID int64) ([]*models.Unit, error) {
	return f.ListByResearchIDs(ctx, []int64{researchID})
}

func (f fakeUnitRepo) ListByResearchIDs(_ context.Context, researchIDs []int64) ([]*models.Unit, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	want := map[int64]bool{}
	for _, id := range researchIDs {
		want[id] = true
	}
	out := []*models.Unit{}
	for id := int64(1); id <= f.nextID; id++ {
		if u, ok := f.units[id]; ok && want[u.ResearchID] {
			copied := *u
			out = append(out, &copied)
		}
	}
	return out, nil
}

func (f fakeUnitRepo) Update(_ context.Context, unit *models.Unit) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	current, ok := f.units[unit.ID]
	if !ok {
		return apperrors.ErrUnitNotFound
	}
	if unit.MaxCapacity < current.CurrentCount {
		return apperrors.ErrCapacityBelowCount
	}
	stored := *unit
	stored.CurrentCount = current.CurrentCount
	f.units[unit.ID] = &stored
	return nil
}

func (f fakeUnitRepo) Delete(_ context.Context, id int64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.units[id]; !ok {
		return apperrors.ErrUnitNotFound
	}
	delete(f.units, id)
	return nil
}

type fakeRecordRepo struct {
	*fakeCatalog
	setCalls int
}

func (f *fakeRecordRepo) Enroll(_ context.Context, studentID, unitID int64) (*models.Record, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	unit, ok := f.units[unitID]
	if !ok {
		return nil, apperrors.ErrUnitNotFound
	}
	for _, rec := range f.records {
		if rec.StudentID == studentID && rec.UnitID == unitID {
			return nil, apperrors.ErrAlreadyEnrolled
		}
	}
	if unit.CurrentCount >= unit.MaxCapacity {
		return nil, apperrors.ErrCapacityExceeded
	}
	unit.CurrentCount++
	rec := &models.Record{ID: f.id(), StudentID: studentID, UnitID: unitID}
	f.records[rec.ID] = rec
	out := *rec
	u := *unit
	out.Unit = &u
	return &out, nil
}

func (f *fakeRecordRepo) Cancel(_ context.Context, recordID, studentID int64) (*models.Unit, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	rec, ok := f.records[recordID]
	if !ok || rec.StudentID != studentID {
		return nil, apperrors.ErrRecordNotFound
	}
	delete(f.records, recordID)
	unit := f.units[rec.UnitID]
	if unit.CurrentCount > 0 {
		unit.CurrentCount--
	}
	out := *unit
	return &out, nil
}

func (f *fakeRecordRepo) GetByID(_ context.Context, id int64) (*models.Record, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	rec, ok := f.records[id]
	if !ok {
		return nil, apperrors.ErrRecordNotFound
	}
	out := *rec
	return &out, nil
}

func (f *fakeRecordRepo) list(keep func(*models.Record) bool) []*models.Record {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := []*models.Record{}
	for id := int64(1); id <= f.nextID; id++ {
		if rec, ok := f.records[id]; ok && keep(rec) {
			copied := *rec
			out = append(out, &copied)
		}
	}
	return out
}

func (f *fakeRecordRepo) ListByStudent(_ context.Context, studentID int64) ([]*models.Record, error) {
	return f.list(func(r *models.Record) bool { return r.StudentID == studentID }), nil
}

func (f *fakeRecordRepo) ListByUnit(_ context.Context, unitID int64) ([]*models.Record, error) {
	return f.list(func(r *models.Record) bool { return r.UnitID == unitID }), nil
}

func (f *fakeRecordRepo) SetOutcomes(_ context.Context, unitID int64, outcomes map[int64]models.Outcome) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.setCalls++
	for id := range outcomes {
		rec, ok := f.records[id]
		if !ok || rec.UnitID != unitID {
			return apperrors.ErrRecordNotFound
		}
	}
	for id, outcome := range outcomes {
		f.records[id].Outcome = outcome
	}
	return nil
}

func profActor(profID int64, name string) *models.ProfessorActor {
	return &models.ProfessorActor{
		User: &models.User{ID: profID, Name: name, IsActive: true, IsProf: true},
		Prof: &models.Prof{ID: profID, UserID: profID, ProfNumber: "P-1"},
	}
}

func studentActor(studentID int64) *models.StudentActor {
	return &models.StudentActor{
		User:    &models.User{ID: studentID, Name: "Student", IsActive: true, IsStudent: true},
		Student: &models.Student{ID: studentID, UserID: studentID, StudentNumber: "2024001"},
	}
}
