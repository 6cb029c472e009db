package auth

import (
	"errors"
	"testing"

	"juntos_server/internal/dao/mysql/repository"
	myredis "juntos_server/internal/dao/redis"
	"juntos_server/internal/dto/request"
	"juntos_server/internal/model"
	"juntos_server/pkg/errorx"
	"juntos_server/pkg/util/jwt"

	"golang.org/x/crypto/bcrypt"
)

type stubCache struct {
	store map[string]string
}

func newStubCache() *stubCache {
	return &stubCache{store: make(map[string]string)}
}

func (s *stubCache) Get(key string) (string, error) {
	if v, ok := s.store[key]; ok {
		return v, nil
	}
	return "", errorx.New(errorx.CodeNotFound, "miss")
}

func (s *stubCache) Set(key string, value string, _ int) error {
	s.store[key] = value
	return nil
}

func (s *stubCache) Delete(key string) error {
	delete(s.store, key)
	return nil
}

func (s *stubCache) DeleteByPattern(string) error    { return nil }
func (s *stubCache) DeleteByPatterns([]string) error { return nil }
func (s *stubCache) Close() error                    { return nil }

func (s *stubCache) SubmitTask(fn func(cache myredis.CacheService)) {
	fn(s)
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
	// Production runs the BeforeSave hook through gorm; the stub runs it
	// directly so the stored record carries the hash, not the plaintext.
	if err := profile.BeforeSave(nil); err != nil {
		return err
	}
	s.profiles[profile.Uuid] = *profile
	return nil
}

func (s *stubProfileRepo) Update(profile *model.Profile) error {
	s.profiles[profile.Uuid] = *profile
	return nil
}

type stubRoleRepo struct {
	roles    map[string][]string
	grantErr error
}

func newStubRoleRepo() *stubRoleRepo {
	return &stubRoleRepo{roles: make(map[string][]string)}
}

func (s *stubRoleRepo) FindByUserUuid(userUuid string) ([]model.UserRole, error) {
	var out []model.UserRole
	for _, r := range s.roles[userUuid] {
		out = append(out, model.UserRole{UserUuid: userUuid, Role: r})
	}
	return out, nil
}

func (s *stubRoleRepo) Grant(userUuid, role string) error {
	if s.grantErr != nil {
		return s.grantErr
	}
	s.roles[userUuid] = append(s.roles[userUuid], role)
	return nil
}

func (s *stubRoleRepo) Revoke(userUuid, role string) error { return nil }

func (s *stubRoleRepo) HasRole(userUuid, role string) (bool, error) {
	for _, r := range s.roles[userUuid] {
		if r == role {
			return true, nil
		}
	}
	return false, nil
}

type stubPsychRepo struct {
	records []model.PsychologistRecord
}

func (s *stubPsychRepo) FindByID(id uint) (*model.PsychologistRecord, error) {
	return nil, errorx.New(errorx.CodeNotFound, "no such record")
}
func (s *stubPsychRepo) FindPending() ([]model.PsychologistRecord, error)  { return s.records, nil }
func (s *stubPsychRepo) FindVerified() ([]model.PsychologistRecord, error) { return nil, nil }
func (s *stubPsychRepo) Create(record *model.PsychologistRecord) error {
	s.records = append(s.records, *record)
	return nil
}
func (s *stubPsychRepo) SetVerified(id uint) error { return nil }
func (s *stubPsychRepo) Delete(id uint) error      { return nil }

type nopMailer struct{}

func (nopMailer) Send(to, subject, body string) error { return nil }

func newTestService() (*authService, *stubProfileRepo, *stubRoleRepo, *stubPsychRepo, *stubCache) {
	jwt.Init("test-secret", 5, 1)
	profileRepo := newStubProfileRepo()
	roleRepo := newStubRoleRepo()
	psychRepo := &stubPsychRepo{}
	cache := newStubCache()
	repos := &repository.Repositories{
		Profile:      profileRepo,
		Role:         roleRepo,
		Psychologist: psychRepo,
	}
	return NewAuthService(repos, cache, nopMailer{}), profileRepo, roleRepo, psychRepo, cache
}

func seedAccount(t *testing.T, profileRepo *stubProfileRepo, email, password string) string {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	if err != nil {
		t.Fatal(err)
	}
	profile := model.Profile{Uuid: "Useed", Nome: "Ana", Email: email, Password: string(hash)}
	profileRepo.profiles[profile.Uuid] = profile
	return profile.Uuid
}

func TestRegisterIssuesTokensAndBaseRole(t *testing.T) {
	svc, profileRepo, roleRepo, psychRepo, _ := newTestService()

	resp, err := svc.Register(request.RegisterRequest{
		Nome:     "Ana",
		Email:    "ana@example.com",
		Password: "segredo-forte",
	})
	if err != nil {
		t.Fatalf("Register returned error: %v", err)
	}
	if resp.AccessToken == "" || resp.RefreshToken == "" {
		t.Fatal("expected a token pair")
	}

	stored, err := profileRepo.FindByEmail("ana@example.com")
	if err != nil {
		t.Fatal(err)
	}
	if stored.Password == "segredo-forte" || stored.Password == "" {
		t.Error("password must be stored hashed")
	}
	if has, _ := roleRepo.HasRole(resp.Uuid, "user"); !has {
		t.Error("every new account must hold the base role")
	}
	if len(psychRepo.records) != 0 {
		t.Error("common signup must not queue a verification record")
	}
}

func TestRegisterDuplicateEmailRejected(t *testing.T) {
	svc, profileRepo, _, _, _ := newTestService()
	seedAccount(t, profileRepo, "ana@example.com", "segredo-forte")

	_, err := svc.Register(request.RegisterRequest{
		Nome: "Outra", Email: "ana@example.com", Password: "segredo-forte",
	})
	if errorx.GetCode(err) != errorx.CodeUserExist {
		t.Fatalf("duplicate email should be rejected, got %v", err)
	}
}

func TestRegisterPsychologistQueuesUnverifiedRecord(t *testing.T) {
	svc, _, roleRepo, psychRepo, _ := newTestService()

	resp, err := svc.Register(request.RegisterRequest{
		Nome:        "Dra. Silva",
		Email:       "silva@example.com",
		Password:    "segredo-forte",
		TipoUsuario: "psychologist",
		Crp:         "06/12345",
	})
	if err != nil {
		t.Fatalf("Register returned error: %v", err)
	}
	if len(psychRepo.records) != 1 {
		t.Fatalf("expected one verification record, got %d", len(psychRepo.records))
	}
	if psychRepo.records[0].Verificado {
		t.Error("signup record must start unverified")
	}
	if has, _ := roleRepo.HasRole(resp.Uuid, "psychologist"); has {
		t.Error("elevated role is only granted on admin approval")
	}
}

func TestRegisterSurvivesBaseRoleFailure(t *testing.T) {
	svc, profileRepo, roleRepo, _, _ := newTestService()
	roleRepo.grantErr = errors.New("role backend down")

	resp, err := svc.Register(request.RegisterRequest{
		Nome: "Ana", Email: "ana@example.com", Password: "segredo-forte",
	})
	if err != nil {
		t.Fatalf("grant failure must not fail the signup, got %v", err)
	}
	if _, err := profileRepo.FindByUuid(resp.Uuid); err != nil {
		t.Error("profile write is the commit point and must stand")
	}
}

func TestLoginWrongPassword(t *testing.T) {
	svc, profileRepo, _, _, _ := newTestService()
	seedAccount(t, profileRepo, "ana@example.com", "segredo-forte")

	_, err := svc.Login(request.LoginRequest{Email: "ana@example.com", Password: "errada"})
	if errorx.GetCode(err) != errorx.CodeWrongPassword {
		t.Fatalf("expected wrong-password, got %v", err)
	}

	if _, err := svc.Login(request.LoginRequest{Email: "ana@example.com", Password: "segredo-forte"}); err != nil {
		t.Fatalf("correct password must log in: %v", err)
	}
}

func TestLoginUnknownAccount(t *testing.T) {
	svc, _, _, _, _ := newTestService()
	_, err := svc.Login(request.LoginRequest{Email: "ghost@example.com", Password: "x"})
	if errorx.GetCode(err) != errorx.CodeUserNotExist {
		t.Fatalf("expected user-not-exist, got %v", err)
	}
}

func TestRefreshRotatesSession(t *testing.T) {
	svc, profileRepo, _, _, _ := newTestService()
	seedAccount(t, profileRepo, "ana@example.com", "segredo-forte")

	login, err := svc.Login(request.LoginRequest{Email: "ana@example.com", Password: "segredo-forte"})
	if err != nil {
		t.Fatal(err)
	}

	rotated, err := svc.Refresh(request.RefreshTokenRequest{RefreshToken: login.RefreshToken})
	if err != nil {
		t.Fatalf("Refresh returned error: %v", err)
	}
	if rotated.RefreshToken == login.RefreshToken {
		t.Error("rotation must mint a new refresh token")
	}

	// The pre-rotation token no longer matches the registered session.
	if _, err := svc.Refresh(request.RefreshTokenRequest{RefreshToken: login.RefreshToken}); errorx.GetCode(err) != errorx.CodeUnauthorized {
		t.Errorf("stale refresh token should be rejected, got %v", err)
	}
}

func TestLogoutInvalidatesRefresh(t *testing.T) {
	svc, profileRepo, _, _, _ := newTestService()
	uuid := seedAccount(t, profileRepo, "ana@example.com", "segredo-forte")

	login, err := svc.Login(request.LoginRequest{Email: "ana@example.com", Password: "segredo-forte"})
	if err != nil {
		t.Fatal(err)
	}
	if err := svc.Logout(uuid); err != nil {
		t.Fatalf("Logout returned error: %v", err)
	}
	if _, err := svc.Refresh(request.RefreshTokenRequest{RefreshToken: login.RefreshToken}); errorx.GetCode(err) != errorx.CodeUnauthorized {
		t.Errorf("refresh after logout should be rejected, got %v", err)
	}
}
