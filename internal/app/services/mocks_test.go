package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/campus2corporate/portal/internal/app/models"
	"github.com/campus2corporate/portal/internal/app/repositories"
	"github.com/campus2corporate/portal/internal/db"
	"github.com/campus2corporate/portal/internal/pkg/apperrors"
)

// mockUserRepo is a map-backed IUserRepository
type mockUserRepo struct {
	users    map[int64]*models.User
	students map[int64]*models.Student
	alumni   map[int64]*models.Alumni
	nextID   int64

	applyCalls int
	applyErr   error
}

func newMockUserRepo() *mockUserRepo {
	return &mockUserRepo{
		users:    map[int64]*models.User{},
		students: map[int64]*models.Student{},
		alumni:   map[int64]*models.Alumni{},
		nextID:   1,
	}
}

func (m *mockUserRepo) addStudent(s *models.Student) *models.Student {
	if s.ID == 0 {
		s.ID = m.nextID
		m.nextID++
	}
	s.Role = models.RoleStudent
	m.students[s.ID] = s
	m.users[s.ID] = &s.User
	return s
}

func (m *mockUserRepo) addAlumni(a *models.Alumni) *models.Alumni {
	if a.ID == 0 {
		a.ID = m.nextID
		m.nextID++
	}
	a.Role = models.RoleAlumni
	m.alumni[a.ID] = a
	m.users[a.ID] = &a.User
	return a
}

func (m *mockUserRepo) GetUserByID(ctx context.Context, id int64) (*models.User, error) {
	if u, ok := m.users[id]; ok {
		return u, nil
	}
	return nil, repositories.ErrUserNotFound
}

func (m *mockUserRepo) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	for _, u := range m.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, repositories.ErrUserNotFound
}

func (m *mockUserRepo) EmailExists(ctx context.Context, email string) (bool, error) {
	_, err := m.GetUserByEmail(ctx, email)
	return err == nil, nil
}

func (m *mockUserRepo) CreateStudent(ctx context.Context, student *models.Student) error {
	if exists, _ := m.EmailExists(ctx, student.Email); exists {
		return repositories.ErrEmailAlreadyExists
	}
	for _, s := range m.students {
		if s.RollNumber == student.RollNumber {
			return repositories.ErrRollNumberExists
		}
	}
	student.CreatedAt = time.Now()
	m.addStudent(student)
	return nil
}

func (m *mockUserRepo) GetStudentByUserID(ctx context.Context, userID int64) (*models.Student, error) {
	if s, ok := m.students[userID]; ok {
		return s, nil
	}
	return nil, repositories.ErrUserNotFound
}

func (m *mockUserRepo) GetStudentForUpdate(ctx context.Context, tx pgx.Tx, userID int64) (*models.Student, error) {
	return m.GetStudentByUserID(ctx, userID)
}

func (m *mockUserRepo) UpdateStudentProfile(ctx context.Context, userID int64, name, rollNumber, branch, school, cgpa string) error {
	s, ok := m.students[userID]
	if !ok {
		return repositories.ErrUserNotFound
	}
	s.Name = name
	s.RollNumber = rollNumber
	s.Branch = branch
	s.School = school
	s.CGPA = cgpa
	return nil
}

func (m *mockUserRepo) SetCategory(ctx context.Context, userID int64, category models.Category, reset bool) error {
	s, ok := m.students[userID]
	if !ok {
		return repositories.ErrUserNotFound
	}
	s.Category = &category
	if reset {
		s.Progress = models.NewProgress()
	}
	return nil
}

func (m *mockUserRepo) ApplyTaskProgress(ctx context.Context, tx pgx.Tx, userID int64, category models.Category, week, totalScore int) (bool, error) {
	m.applyCalls++
	if m.applyErr != nil {
		return false, m.applyErr
	}
	s, ok := m.students[userID]
	if !ok || s.Category == nil || *s.Category != category {
		return false, nil
	}
	s.Progress.CompletedTasks++
	if s.Progress.WeeklyScores == nil {
		s.Progress.WeeklyScores = map[string]int{}
	}
	s.Progress.WeeklyScores[fmt.Sprintf("%d", week)] = totalScore
	return true, nil
}

func (m *mockUserRepo) UpdateProgress(ctx context.Context, tx pgx.Tx, userID int64, progress models.Progress) error {
	s, ok := m.students[userID]
	if !ok {
		return repositories.ErrUserNotFound
	}
	s.Progress = progress
	return nil
}

func (m *mockUserRepo) RollNumberExists(ctx context.Context, rollNumber string) (bool, error) {
	for _, s := range m.students {
		if s.RollNumber == rollNumber {
			return true, nil
		}
	}
	return false, nil
}

func (m *mockUserRepo) CreateAlumni(ctx context.Context, alumni *models.Alumni) error {
	if exists, _ := m.EmailExists(ctx, alumni.Email); exists {
		return repositories.ErrEmailAlreadyExists
	}
	alumni.CreatedAt = time.Now()
	m.addAlumni(alumni)
	return nil
}

func (m *mockUserRepo) GetAlumniByUserID(ctx context.Context, userID int64) (*models.Alumni, error) {
	if a, ok := m.alumni[userID]; ok {
		return a, nil
	}
	return nil, repositories.ErrUserNotFound
}

func (m *mockUserRepo) UpdateAlumniProfile(ctx context.Context, userID int64, name, company, position string, graduationYear int) error {
	a, ok := m.alumni[userID]
	if !ok {
		return repositories.ErrUserNotFound
	}
	a.Name = name
	a.Company = company
	a.Position = position
	a.GraduationYear = graduationYear
	return nil
}

// mockTaskRepo is a map-backed ITaskRepository
type mockTaskRepo struct {
	tasks map[int64]*models.WeeklyTask
}

func newMockTaskRepo(tasks ...*models.WeeklyTask) *mockTaskRepo {
	m := &mockTaskRepo{tasks: map[int64]*models.WeeklyTask{}}
	for _, t := range tasks {
		m.tasks[t.ID] = t
	}
	return m
}

func (m *mockTaskRepo) GetByCategory(ctx context.Context, category models.Category) ([]*models.WeeklyTask, error) {
	var out []*models.WeeklyTask
	for _, t := range m.tasks {
		if t.Category == category {
			out = append(out, t)
		}
	}
	return out, nil
}

func (m *mockTaskRepo) GetByID(ctx context.Context, id int64) (*models.WeeklyTask, error) {
	if t, ok := m.tasks[id]; ok {
		return t, nil
	}
	return nil, apperrors.ErrTaskNotFound
}

func (m *mockTaskRepo) Create(ctx context.Context, task *models.WeeklyTask) error {
	if task.ID == 0 {
		task.ID = int64(len(m.tasks) + 1)
	}
	m.tasks[task.ID] = task
	return nil
}

// mockSubmissionRepo is a map-backed ISubmissionRepository
type mockSubmissionRepo struct {
	submissions map[string]*models.StudentSubmission
	nextID      int64
	insertErr   error
}

func newMockSubmissionRepo() *mockSubmissionRepo {
	return &mockSubmissionRepo{submissions: map[string]*models.StudentSubmission{}, nextID: 1}
}

func submissionKey(studentID, taskID int64) string {
	return fmt.Sprintf("%d-%d", studentID, taskID)
}

func (m *mockSubmissionRepo) Insert(ctx context.Context, tx pgx.Tx, submission *models.StudentSubmission) error {
	if m.insertErr != nil {
		return m.insertErr
	}
	key := submissionKey(submission.StudentID, submission.TaskID)
	if _, ok := m.submissions[key]; ok {
		return apperrors.ErrDuplicateSubmission
	}
	submission.ID = m.nextID
	m.nextID++
	m.submissions[key] = submission
	return nil
}

func (m *mockSubmissionRepo) GetByStudentAndTask(ctx context.Context, studentID, taskID int64) (*models.StudentSubmission, error) {
	if s, ok := m.submissions[submissionKey(studentID, taskID)]; ok {
		return s, nil
	}
	return nil, apperrors.ErrSubmissionNotFound
}

func (m *mockSubmissionRepo) ListByStudent(ctx context.Context, studentID int64) ([]*models.StudentSubmission, error) {
	var out []*models.StudentSubmission
	for _, s := range m.submissions {
		if s.StudentID == studentID {
			out = append(out, s)
		}
	}
	return out, nil
}

// mockContentRepo is a map-backed IContentRepository
type mockContentRepo struct {
	contents map[string]*models.WeeklyContent
}

func newMockContentRepo(contents ...*models.WeeklyContent) *mockContentRepo {
	m := &mockContentRepo{contents: map[string]*models.WeeklyContent{}}
	for _, c := range contents {
		m.contents[contentKey(c.Category, c.Week)] = c
	}
	return m
}

func contentKey(category models.Category, week int) string {
	return fmt.Sprintf("%s-%d", category, week)
}

func (m *mockContentRepo) GetByCategory(ctx context.Context, category models.Category) ([]*models.WeeklyContent, error) {
	var out []*models.WeeklyContent
	for _, c := range m.contents {
		if c.Category == category {
			out = append(out, c)
		}
	}
	return out, nil
}

func (m *mockContentRepo) GetByCategoryAndWeek(ctx context.Context, category models.Category, week int) (*models.WeeklyContent, error) {
	if c, ok := m.contents[contentKey(category, week)]; ok {
		return c, nil
	}
	return nil, apperrors.ErrContentNotFound
}

func (m *mockContentRepo) Create(ctx context.Context, content *models.WeeklyContent) error {
	m.contents[contentKey(content.Category, content.Week)] = content
	return nil
}

// mockExperienceRepo is a slice-backed IExperienceRepository
type mockExperienceRepo struct {
	experiences []*models.PlacementExperience
	nextID      int64
}

func newMockExperienceRepo() *mockExperienceRepo {
	return &mockExperienceRepo{nextID: 1}
}

func (m *mockExperienceRepo) Create(ctx context.Context, experience *models.PlacementExperience) error {
	experience.ID = m.nextID
	m.nextID++
	experience.CreatedAt = time.Now()
	m.experiences = append(m.experiences, experience)
	return nil
}

func (m *mockExperienceRepo) List(ctx context.Context, companyFilter string) ([]*models.PlacementExperience, error) {
	var out []*models.PlacementExperience
	for i := len(m.experiences) - 1; i >= 0; i-- {
		e := m.experiences[i]
		if companyFilter == "" || strings.Contains(strings.ToLower(e.Company), strings.ToLower(companyFilter)) {
			out = append(out, e)
		}
	}
	return out, nil
}

// tokenRecord is a stored refresh token in the mock
type tokenRecord struct {
	userID  int64
	expiry  time.Time
	revoked bool
}

// mockTokenRepo is a map-backed ITokenRepository
type mockTokenRepo struct {
	tokens map[string]*tokenRecord
}

func newMockTokenRepo() *mockTokenRepo {
	return &mockTokenRepo{tokens: map[string]*tokenRecord{}}
}

func (m *mockTokenRepo) CreateToken(ctx context.Context, token string, userID int64, expiryDate time.Time) error {
	m.tokens[token] = &tokenRecord{userID: userID, expiry: expiryDate}
	return nil
}

func (m *mockTokenRepo) GetTokenByValue(ctx context.Context, token string) (int64, time.Time, bool, error) {
	rec, ok := m.tokens[token]
	if !ok {
		return 0, time.Time{}, false, apperrors.ErrTokenNotFound
	}
	return rec.userID, rec.expiry, rec.revoked, nil
}

func (m *mockTokenRepo) RevokeToken(ctx context.Context, token string) error {
	rec, ok := m.tokens[token]
	if !ok {
		return apperrors.ErrTokenNotFound
	}
	rec.revoked = true
	return nil
}

// fakeTxRunner runs the transaction body with a nil Tx; the mocks
// ignore the Tx argument.
type fakeTxRunner struct {
	beginErr error
}

func (f *fakeTxRunner) WithTransaction(ctx context.Context, fn db.TransactionFn) error {
	if f.beginErr != nil {
		return f.beginErr
	}
	return fn(ctx, nil)
}

// txRunnerFunc adapts a closure to TxRunner
type txRunnerFunc func(ctx context.Context, fn db.TransactionFn) error

func (f txRunnerFunc) WithTransaction(ctx context.Context, fn db.TransactionFn) error {
	return f(ctx, fn)
}

// scriptedJudge replays canned judge replies
type scriptedJudge struct {
	responses []string
	err       error
	calls     int
}

func (j *scriptedJudge) Complete(ctx context.Context, prompt string) (string, error) {
	j.calls++
	if j.err != nil {
		return "", j.err
	}
	if len(j.responses) == 0 {
		return "", errors.New("no scripted response left")
	}
	resp := j.responses[0]
	if len(j.responses) > 1 {
		j.responses = j.responses[1:]
	}
	return resp, nil
}
