package verify

import (
	"errors"
	"sync"
	"testing"

	"juntos_server/internal/dao/mysql/repository"
	"juntos_server/internal/dto/request"
	"juntos_server/internal/model"
	"juntos_server/pkg/errorx"
)

type stubPsychRepo struct {
	records map[uint]model.PsychologistRecord
	nextID  uint
	setErr  error
}

func newStubPsychRepo() *stubPsychRepo {
	return &stubPsychRepo{records: make(map[uint]model.PsychologistRecord), nextID: 1}
}

func (s *stubPsychRepo) FindByID(id uint) (*model.PsychologistRecord, error) {
	r, ok := s.records[id]
	if !ok {
		return nil, errorx.New(errorx.CodeNotFound, "no such record")
	}
	return &r, nil
}

func (s *stubPsychRepo) FindPending() ([]model.PsychologistRecord, error) {
	var out []model.PsychologistRecord
	for _, r := range s.records {
		if !r.Verificado {
			out = append(out, r)
		}
	}
	return out, nil
}

func (s *stubPsychRepo) FindVerified() ([]model.PsychologistRecord, error) {
	var out []model.PsychologistRecord
	for _, r := range s.records {
		if r.Verificado {
			out = append(out, r)
		}
	}
	return out, nil
}

func (s *stubPsychRepo) Create(record *model.PsychologistRecord) error {
	record.ID = s.nextID
	s.nextID++
	s.records[record.ID] = *record
	return nil
}

func (s *stubPsychRepo) SetVerified(id uint) error {
	if s.setErr != nil {
		return s.setErr
	}
	r := s.records[id]
	r.Verificado = true
	s.records[id] = r
	return nil
}

func (s *stubPsychRepo) Delete(id uint) error {
	delete(s.records, id)
	return nil
}

type stubRoleRepo struct {
	roles map[string]map[string]bool
}

func newStubRoleRepo() *stubRoleRepo {
	return &stubRoleRepo{roles: make(map[string]map[string]bool)}
}

func (s *stubRoleRepo) FindByUserUuid(userUuid string) ([]model.UserRole, error) {
	var out []model.UserRole
	for role := range s.roles[userUuid] {
		out = append(out, model.UserRole{UserUuid: userUuid, Role: role})
	}
	return out, nil
}

func (s *stubRoleRepo) Grant(userUuid, role string) error {
	if s.roles[userUuid] == nil {
		s.roles[userUuid] = make(map[string]bool)
	}
	s.roles[userUuid][role] = true
	return nil
}

func (s *stubRoleRepo) Revoke(userUuid, role string) error {
	delete(s.roles[userUuid], role)
	return nil
}

func (s *stubRoleRepo) HasRole(userUuid, role string) (bool, error) {
	return s.roles[userUuid][role], nil
}

type stubProfileRepo struct {
	profiles map[string]model.Profile
}

func newStubProfileRepo() *stubProfileRepo {
	return &stubProfileRepo{profiles: make(map[string]model.Profile)}
}

func (s *stubProfileRepo) FindByUuid(uuid string) (*model.Profile, error) {
	p, ok := s.profiles[uuid]
	if !ok {
		return nil, errorx.New(errorx.CodeNotFound, "no such profile")
	}
	return &p, nil
}

func (s *stubProfileRepo) FindByEmail(email string) (*model.Profile, error) {
	for _, p := range s.profiles {
		if p.Email == email {
			return &p, nil
		}
	}
	return nil, errorx.New(errorx.CodeNotFound, "no such profile")
}

func (s *stubProfileRepo) FindByUuids(uuids []string) ([]model.Profile, error) {
	var out []model.Profile
	for _, id := range uuids {
		if p, ok := s.profiles[id]; ok {
			out = append(out, p)
		}
	}
	return out, nil
}

func (s *stubProfileRepo) Create(profile *model.Profile) error {
	s.profiles[profile.Uuid] = *profile
	return nil
}

func (s *stubProfileRepo) Update(profile *model.Profile) error {
	s.profiles[profile.Uuid] = *profile
	return nil
}

// stubGranter records grants and can be told to fail.
type stubGranter struct {
	mu     sync.Mutex
	grants map[string][]string
	err    error
}

func newStubGranter() *stubGranter {
	return &stubGranter{grants: make(map[string][]string)}
}

func (s *stubGranter) Grant(userUuid, role string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err != nil {
		return s.err
	}
	s.grants[userUuid] = append(s.grants[userUuid], role)
	return nil
}

func (s *stubGranter) granted(userUuid, role string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, r := range s.grants[userUuid] {
		if r == role {
			return true
		}
	}
	return false
}

type nopMailer struct{}

func (nopMailer) Send(to, subject, body string) error { return nil }

func newTestService() (*verifyService, *stubPsychRepo, *stubRoleRepo, *stubGranter, *stubProfileRepo) {
	psychRepo := newStubPsychRepo()
	roleRepo := newStubRoleRepo()
	profileRepo := newStubProfileRepo()
	granter := newStubGranter()
	repos := &repository.Repositories{
		Psychologist: psychRepo,
		Role:         roleRepo,
		Profile:      profileRepo,
	}
	return NewVerifyService(repos, granter, nopMailer{}), psychRepo, roleRepo, granter, profileRepo
}

func TestApprovePerformsBothWrites(t *testing.T) {
	svc, psychRepo, _, granter, _ := newTestService()
	record := model.PsychologistRecord{UserUuid: "U1", Crp: "06/12345"}
	_ = psychRepo.Create(&record)

	resp, err := svc.Approve(record.ID)
	if err != nil {
		t.Fatalf("Approve returned error: %v", err)
	}
	if !resp.Verified || !resp.RoleGranted {
		t.Fatalf("expected both writes reported, got %+v", resp)
	}
	if !psychRepo.records[record.ID].Verificado {
		t.Error("record must be flagged verified")
	}
	if !granter.granted("U1", "psychologist") {
		t.Error("role must be granted")
	}
}

func TestApproveReportsPartialFailureWithoutRollback(t *testing.T) {
	svc, psychRepo, _, granter, _ := newTestService()
	record := model.PsychologistRecord{UserUuid: "U1", Crp: "06/12345"}
	_ = psychRepo.Create(&record)
	granter.err = errors.New("role backend down")

	resp, err := svc.Approve(record.ID)
	if err != nil {
		t.Fatalf("partial failure must not surface as an error, got %v", err)
	}
	if !resp.Verified {
		t.Error("flag write succeeded and must be reported")
	}
	if resp.RoleGranted {
		t.Error("failed grant must be reported as not granted")
	}
	if !psychRepo.records[record.ID].Verificado {
		t.Error("flag write must not be rolled back")
	}
}

func TestApproveFlagFailureChangesNothing(t *testing.T) {
	svc, psychRepo, _, granter, _ := newTestService()
	record := model.PsychologistRecord{UserUuid: "U1", Crp: "06/12345"}
	_ = psychRepo.Create(&record)
	psychRepo.setErr = errors.New("storage down")

	_, err := svc.Approve(record.ID)
	if errorx.GetCode(err) != errorx.CodeServerBusy {
		t.Fatalf("expected server-busy, got %v", err)
	}
	if granter.granted("U1", "psychologist") {
		t.Error("grant must not run when the flag write failed")
	}
}

func TestReconciliationFindsInterruptedApproval(t *testing.T) {
	svc, psychRepo, roleRepo, granter, _ := newTestService()

	// One healthy approval and one interrupted one.
	healthy := model.PsychologistRecord{UserUuid: "Uok", Crp: "06/1"}
	_ = psychRepo.Create(&healthy)
	_ = psychRepo.SetVerified(healthy.ID)
	_ = roleRepo.Grant("Uok", "psychologist")

	broken := model.PsychologistRecord{UserUuid: "Ugap", Crp: "06/2"}
	_ = psychRepo.Create(&broken)
	_ = psychRepo.SetVerified(broken.ID)

	entries, err := svc.ReconciliationReport()
	if err != nil {
		t.Fatalf("ReconciliationReport returned error: %v", err)
	}
	if len(entries) != 1 {
		t.Fatalf("expected exactly the interrupted approval, got %d entries", len(entries))
	}
	if entries[0].UserUuid != "Ugap" || entries[0].HasRole {
		t.Errorf("unexpected entry: %+v", entries[0])
	}
	_ = granter
}

func TestRejectDeletesRecord(t *testing.T) {
	svc, psychRepo, _, _, _ := newTestService()
	record := model.PsychologistRecord{UserUuid: "U1", Crp: "06/12345"}
	_ = psychRepo.Create(&record)

	if err := svc.Reject(record.ID); err != nil {
		t.Fatalf("Reject returned error: %v", err)
	}
	if _, ok := psychRepo.records[record.ID]; ok {
		t.Error("record must be gone after rejection")
	}

	if err := svc.Reject(record.ID); errorx.GetCode(err) != errorx.CodeNotFound {
		t.Errorf("rejecting a missing record should report not-found, got %v", err)
	}
}

func TestListPendingEnrichesProfiles(t *testing.T) {
	svc, psychRepo, _, _, profileRepo := newTestService()
	_ = profileRepo.Create(&model.Profile{Uuid: "U1", Nome: "Ana", Email: "ana@example.com"})
	_ = psychRepo.Create(&model.PsychologistRecord{UserUuid: "U1", Crp: "06/1"})
	_ = psychRepo.Create(&model.PsychologistRecord{UserUuid: "Ughost", Crp: "06/2"})

	list, err := svc.ListPending()
	if err != nil {
		t.Fatalf("ListPending returned error: %v", err)
	}
	if len(list) != 2 {
		t.Fatalf("expected both records, got %d", len(list))
	}
	for _, item := range list {
		if item.UserUuid == "U1" && item.Profile == nil {
			t.Error("known profile must be attached")
		}
		if item.UserUuid == "Ughost" && item.Profile != nil {
			t.Error("missing profile must stay nil")
		}
	}
}

func TestCreateStaffGrantsElevatedRole(t *testing.T) {
	svc, _, _, granter, profileRepo := newTestService()

	info, err := svc.CreateStaff(request.CreateStaffRequest{
		Nome:     "Moderadora",
		Email:    "mod@example.com",
		Password: "segredo-forte",
		Role:     "admin",
	})
	if err != nil {
		t.Fatalf("CreateStaff returned error: %v", err)
	}
	if !granter.granted(info.Uuid, "user") || !granter.granted(info.Uuid, "admin") {
		t.Error("staff account must hold the base and elevated roles")
	}
	if _, err := profileRepo.FindByEmail("mod@example.com"); err != nil {
		t.Error("staff profile must be persisted")
	}

	if _, err := svc.CreateStaff(request.CreateStaffRequest{
		Nome: "Duplicada", Email: "mod@example.com", Password: "segredo-forte", Role: "admin",
	}); errorx.GetCode(err) != errorx.CodeUserExist {
		t.Errorf("duplicate email should be rejected, got %v", err)
	}
}
