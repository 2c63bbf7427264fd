package users

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/andresmolina/casamolina-backend/pkg/db/models"
	pkgerrors "github.com/andresmolina/casamolina-backend/pkg/errors"
)

type stubProfileRepo struct {
	user    *models.User
	updates map[string]any
}

func (s *stubProfileRepo) FindByID(ctx context.Context, id uuid.UUID) (*models.User, error) {
	if s.user == nil || s.user.ID != id {
		return nil, gorm.ErrRecordNotFound
	}
	copied := *s.user
	return &copied, nil
}

func (s *stubProfileRepo) UpdateProfile(ctx context.Context, id uuid.UUID, updates map[string]any) error {
	s.updates = updates
	if v, ok := updates["first_name"].(string); ok {
		s.user.FirstName = v
	}
	if v, ok := updates["last_name"].(string); ok {
		s.user.LastName = v
	}
	if v, ok := updates["phone"]; ok {
		if v == nil {
			s.user.Phone = nil
		} else {
			phone := v.(string)
			s.user.Phone = &phone
		}
	}
	return nil
}

func userFixture() *models.User {
	phone := "+1-918-555-0101"
	return &models.User{
		ID:        uuid.New(),
		Email:     "ana@example.com",
		FirstName: "Ana",
		LastName:  "Reyes",
		Phone:     &phone,
		IsActive:  true,
	}
}

func TestGetProfile(t *testing.T) {
	t.Parallel()

	user := userFixture()
	svc, err := NewService(&stubProfileRepo{user: user})
	if err != nil {
		t.Fatalf("NewService: %v", err)
	}

	dto, err := svc.GetProfile(context.Background(), user.ID)
	if err != nil {
		t.Fatalf("GetProfile: %v", err)
	}
	if dto.Email != user.Email || dto.FirstName != "Ana" {
		t.Fatalf("unexpected profile: %+v", dto)
	}
}

func TestGetProfileUnknownUser(t *testing.T) {
	t.Parallel()

	svc, err := NewService(&stubProfileRepo{})
	if err != nil {
		t.Fatalf("NewService: %v", err)
	}

	_, err = svc.GetProfile(context.Background(), uuid.New())
	if err == nil {
		t.Fatal("expected error for unknown user")
	}
	if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeNotFound {
		t.Fatalf("expected not found error, got %v", err)
	}
}

func TestUpdateProfilePersistsEdits(t *testing.T) {
	t.Parallel()

	user := userFixture()
	repo := &stubProfileRepo{user: user}
	svc, err := NewService(repo)
	if err != nil {
		t.Fatalf("NewService: %v", err)
	}

	first := "  Mariana "
	clearPhone := ""
	dto, err := svc.UpdateProfile(context.Background(), user.ID, UpdateProfileInput{
		FirstName: &first,
		Phone:     &clearPhone,
	})
	if err != nil {
		t.Fatalf("UpdateProfile: %v", err)
	}

	if dto.FirstName != "Mariana" {
		t.Fatalf("expected trimmed first name, got %q", dto.FirstName)
	}
	if dto.Phone != nil {
		t.Fatalf("expected phone to be cleared, got %v", *dto.Phone)
	}
	if dto.LastName != "Reyes" {
		t.Fatal("untouched field changed")
	}
	if repo.updates == nil {
		t.Fatal("edits were not persisted")
	}
}

func TestUpdateProfileRejectsEmptyName(t *testing.T) {
	t.Parallel()

	user := userFixture()
	svc, err := NewService(&stubProfileRepo{user: user})
	if err != nil {
		t.Fatalf("NewService: %v", err)
	}

	empty := "   "
	_, err = svc.UpdateProfile(context.Background(), user.ID, UpdateProfileInput{FirstName: &empty})
	if err == nil {
		t.Fatal("expected validation error")
	}
	if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected validation code, got %v", err)
	}
}

func TestUpdateProfileNoFieldsIsNoOp(t *testing.T) {
	t.Parallel()

	user := userFixture()
	repo := &stubProfileRepo{user: user}
	svc, err := NewService(repo)
	if err != nil {
		t.Fatalf("NewService: %v", err)
	}

	dto, err := svc.UpdateProfile(context.Background(), user.ID, UpdateProfileInput{})
	if err != nil {
		t.Fatalf("UpdateProfile: %v", err)
	}
	if dto.FirstName != "Ana" {
		t.Fatalf("profile changed unexpectedly: %+v", dto)
	}
	if repo.updates != nil {
		t.Fatal("no update should have been issued")
	}
}
