package auth

import (
	"context"
	"errors"
	"log/slog"

	"github.com/go-sql-driver/mysql"
	"github.com/takoapp/tako/internal/audit"
	"github.com/takoapp/tako/internal/tokens"
	"github.com/takoapp/tako/model"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// AdminTokenIssuer issues tokens for privileged principals.
type AdminTokenIssuer interface {
	IssueAdminToken(ctx context.Context, adminID uint) (*tokens.Session, string, error)
}

// AdminService authenticates admin principals by email and password.
type AdminService struct {
	db       *gorm.DB
	issuer   AdminTokenIssuer
	recorder audit.Recorder
}

func NewAdminService(db *gorm.DB, issuer AdminTokenIssuer, recorder audit.Recorder) *AdminService {
	return &AdminService{
		db:       db,
		issuer:   issuer,
		recorder: recorder,
	}
}

// Authenticate verifies the password and issues an admin token. All
// credential failures collapse into ErrAdminCredentials.
func (s *AdminService) Authenticate(ctx context.Context, email, password, clientIP string) (*model.Admin, string, error) {
	var admin model.Admin
	err := s.db.WithContext(ctx).Where("email = ?", email).First(&admin).Error
	if err != nil || admin.Disabled {
		s.record(ctx, audit.AdminLoginRecord{Email: email, IP: clientIP, Reason: "unknown or disabled admin"})
		return nil, "", ErrAdminCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(admin.Password), []byte(password)); err != nil {
		s.record(ctx, audit.AdminLoginRecord{Email: email, IP: clientIP, Reason: "wrong password"})
		return nil, "", ErrAdminCredentials
	}

	_, token, err := s.issuer.IssueAdminToken(ctx, admin.ID)
	if err != nil {
		slog.Error("Failed to issue admin token", "admin", admin.ID, "error", err)
		return nil, "", ErrTokenIssuance
	}

	s.record(ctx, audit.AdminLoginRecord{Email: email, IP: clientIP, Success: true})
	return &admin, token, nil
}

// EnsureAdmin creates the bootstrap admin if it does not exist yet.
// Creation racing another instance is treated as success.
func (s *AdminService) EnsureAdmin(ctx context.Context, email, password string) error {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	admin := model.Admin{
		Email:    email,
		Password: string(hash),
	}
	err = s.db.WithContext(ctx).Create(&admin).Error
	var mysqlErr *mysql.MySQLError
	if errors.As(err, &mysqlErr) && mysqlErr.Number == 1062 {
		return nil
	}
	return err
}

func (s *AdminService) record(ctx context.Context, rec audit.AdminLoginRecord) {
	if err := audit.RecordAdminLogin(ctx, s.recorder, rec); err != nil {
		slog.Error("Failed to record audit event", "error", err)
	}
}
