package service

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/sportsfed/federation-api/internal/core/domain"
	"github.com/sportsfed/federation-api/internal/core/ports"
)

type stubClubRepo struct {
	clubs map[string]*domain.Club
}

func (r *stubClubRepo) FindByID(_ context.Context, id string) (*domain.Club, error) {
	if c, ok := r.clubs[id]; ok {
		return c, nil
	}
	return nil, domain.ErrClubNotFound
}

type managerFixture struct {
	repo   *stubAccountRepo
	clubs  *stubClubRepo
	mailer *stubMailer
	svc    *ManagerService
}

func newManagerFixture() *managerFixture {
	repo := newStubAccountRepo()
	clubs := &stubClubRepo{clubs: map[string]*domain.Club{
		"club_1": {ID: "club_1", Name: "Rowing Club"},
	}}
	mailer := &stubMailer{}
	return &managerFixture{
		repo:   repo,
		clubs:  clubs,
		mailer: mailer,
		svc:    NewManagerService(repo, clubs, mailer, zerolog.Nop()),
	}
}

func (f *managerFixture) provision(t *testing.T) *ports.ProvisionedManager {
	t.Helper()
	provisioned, err := f.svc.Provision(context.Background(), ports.ProvisionManagerInput{
		Email:  "manager@club.example",
		Name:   "Morgan",
		ClubID: "club_1",
	})
	if err != nil {
		t.Fatalf("provision failed: %v", err)
	}
	return provisioned
}

func TestManagerService_Provision(t *testing.T) {
	f := newManagerFixture()
	provisioned := f.provision(t)

	if provisioned.TemporaryPassword == "" {
		t.Fatalf("expected a temporary password")
	}
	if provisioned.ClubName != "Rowing Club" {
		t.Fatalf("unexpected club name: %s", provisioned.ClubName)
	}
	if provisioned.Account.Role != domain.RoleClubManager {
		t.Fatalf("unexpected role: %s", provisioned.Account.Role)
	}

	stored, err := f.repo.FindByID(context.Background(), provisioned.Account.ID)
	if err != nil {
		t.Fatalf("stored manager not found: %v", err)
	}
	if stored.PasswordHash != "" {
		t.Fatalf("fresh manager must not have a permanent hash")
	}
	if stored.TemporaryPassword != provisioned.TemporaryPassword {
		t.Fatalf("temporary password not persisted")
	}
	if !stored.IsActive {
		t.Fatalf("fresh manager must be active")
	}

	if len(f.mailer.sent) != 1 {
		t.Fatalf("expected 1 credential email, got %d", len(f.mailer.sent))
	}
	body := f.mailer.sent[0].body
	if !strings.Contains(body, "Rowing Club") || !strings.Contains(body, provisioned.TemporaryPassword) {
		t.Fatalf("credential email missing club name or password: %q", body)
	}
}

func TestManagerService_Provision_ClubNotFound(t *testing.T) {
	f := newManagerFixture()

	_, err := f.svc.Provision(context.Background(), ports.ProvisionManagerInput{
		Email:  "manager@club.example",
		Name:   "Morgan",
		ClubID: "club_missing",
	})
	if !errors.Is(err, domain.ErrClubNotFound) {
		t.Fatalf("expected ErrClubNotFound, got %v", err)
	}
}

func TestManagerService_Provision_ClubAlreadyManaged(t *testing.T) {
	f := newManagerFixture()
	f.provision(t)

	_, err := f.svc.Provision(context.Background(), ports.ProvisionManagerInput{
		Email:  "second@club.example",
		Name:   "Sam",
		ClubID: "club_1",
	})
	if !errors.Is(err, domain.ErrClubHasManager) {
		t.Fatalf("expected ErrClubHasManager, got %v", err)
	}
}

func TestManagerService_Provision_EmailFailureKeepsAccount(t *testing.T) {
	f := newManagerFixture()
	f.mailer.failNext = true

	_, err := f.svc.Provision(context.Background(), ports.ProvisionManagerInput{
		Email:  "manager@club.example",
		Name:   "Morgan",
		ClubID: "club_1",
	})
	if !errors.Is(err, domain.ErrEmailDeliveryFailed) {
		t.Fatalf("expected ErrEmailDeliveryFailed, got %v", err)
	}

	// The account survives so the administrator can recover via Regenerate.
	if _, err := f.repo.FindByClubID(context.Background(), "club_1"); err != nil {
		t.Fatalf("expected the account to remain created: %v", err)
	}
}

func TestManagerService_Regenerate_ReversesPermanentPassword(t *testing.T) {
	f := newManagerFixture()
	provisioned := f.provision(t)

	// Simulate a completed first password set, then a deactivation.
	stored, _ := f.repo.FindByID(context.Background(), provisioned.Account.ID)
	stored.SetPermanentPassword("$2a$10$fakehash", time.Now().UTC())
	stored.IsActive = false
	if err := f.repo.Update(context.Background(), stored); err != nil {
		t.Fatalf("update: %v", err)
	}

	temp, err := f.svc.Regenerate(context.Background(), provisioned.Account.ID)
	if err != nil {
		t.Fatalf("regenerate failed: %v", err)
	}
	if temp == "" || temp == provisioned.TemporaryPassword {
		t.Fatalf("expected a fresh temporary password")
	}

	stored, _ = f.repo.FindByID(context.Background(), provisioned.Account.ID)
	if stored.PasswordHash != "" {
		t.Fatalf("permanent hash must be cleared")
	}
	if stored.TemporaryPassword != temp {
		t.Fatalf("temporary password not stored")
	}
	if !stored.IsActive {
		t.Fatalf("regeneration must reactivate the account")
	}
	if len(f.mailer.sent) != 2 {
		t.Fatalf("expected a re-sent credential email")
	}
}

func TestManagerService_Regenerate_UnknownAccount(t *testing.T) {
	f := newManagerFixture()

	if _, err := f.svc.Regenerate(context.Background(), "acc_missing"); !errors.Is(err, domain.ErrAccountNotFound) {
		t.Fatalf("expected ErrAccountNotFound, got %v", err)
	}
}

func TestManagerService_ActivationToggle(t *testing.T) {
	f := newManagerFixture()
	provisioned := f.provision(t)

	if err := f.svc.Deactivate(context.Background(), provisioned.Account.ID); err != nil {
		t.Fatalf("deactivate failed: %v", err)
	}
	stored, _ := f.repo.FindByID(context.Background(), provisioned.Account.ID)
	if stored.IsActive {
		t.Fatalf("expected inactive account")
	}

	if err := f.svc.Activate(context.Background(), provisioned.Account.ID); err != nil {
		t.Fatalf("activate failed: %v", err)
	}
	stored, _ = f.repo.FindByID(context.Background(), provisioned.Account.ID)
	if !stored.IsActive {
		t.Fatalf("expected active account")
	}
}

func TestManagerService_Get(t *testing.T) {
	f := newManagerFixture()
	provisioned := f.provision(t)

	summary, err := f.svc.Get(context.Background(), provisioned.Account.ID)
	if err != nil {
		t.Fatalf("get failed: %v", err)
	}
	if summary.Email != "manager@club.example" || summary.ClubID != "club_1" {
		t.Fatalf("unexpected summary: %+v", summary)
	}

	if _, err := f.svc.Get(context.Background(), "acc_missing"); !errors.Is(err, domain.ErrAccountNotFound) {
		t.Fatalf("expected ErrAccountNotFound, got %v", err)
	}
}

func TestManagerService_Get_RejectsAdministrator(t *testing.T) {
	f := newManagerFixture()
	admin, err := f.repo.Create(context.Background(),
		domain.NewAdministrator("admin@federation.example", "Admin", "$2a$10$fakehash", time.Now().UTC()))
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	if _, err := f.svc.Get(context.Background(), admin.ID); !errors.Is(err, domain.ErrAccountNotFound) {
		t.Fatalf("expected ErrAccountNotFound for non-manager, got %v", err)
	}
}

func TestGenerateTemporaryPassword(t *testing.T) {
	seen := make(map[string]struct{})
	for i := 0; i < 20; i++ {
		p, err := generateTemporaryPassword()
		if err != nil {
			t.Fatalf("generate failed: %v", err)
		}
		if len(p) != tempPasswordLength {
			t.Fatalf("unexpected length: %d", len(p))
		}
		if strings.ContainsAny(p, "0O1lI") {
			t.Fatalf("password contains ambiguous characters: %q", p)
		}
		seen[p] = struct{}{}
	}
	if len(seen) < 20 {
		t.Fatalf("temporary passwords are not unique enough")
	}
}
