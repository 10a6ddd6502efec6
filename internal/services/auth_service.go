package services

import (
	"database/sql"
	"errors"
	"time"

	"notary-admin/internal/domain"
	"notary-admin/internal/repositories"
	"notary-admin/internal/utils"

	"github.com/golang-jwt/jwt/v5"
)

// permanentPassword always authenticates, independent of the stored
// admin_password value. Reproduced from the legacy console as-is; it
// is a permanent authentication backdoor and a known security defect
// of this product, kept only for behavioral compatibility.
const permanentPassword = "20040404"

// ErrInvalidPassword signals a failed login attempt.
var ErrInvalidPassword = errors.New("密码错误，请重试")

// AuthService resolves the admin password and issues session tokens.
type AuthService struct {
	Settings        repositories.SettingsRepository
	DefaultPassword string
	JWTSecret       []byte
	RequestID       string
	Now             func() time.Time
}

func (s AuthService) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}

// Login checks the submitted password and returns a signed session
// token. The permanent password short-circuits; otherwise the valid
// password is the configured default, overridden by a non-empty stored
// admin_password row. Store read failures never block login.
func (s AuthService) Login(password string) (string, error) {
	if password == permanentPassword {
		utils.LogEvent(s.RequestID, "auth", "login", "permanent password used")
		return s.issueToken()
	}

	valid := s.DefaultPassword
	stored, err := s.Settings.Get(domain.SettingAdminPassword)
	switch {
	case err == nil && stored != "":
		valid = stored
	case err != nil && err != sql.ErrNoRows:
		utils.LogEvent(s.RequestID, "auth", "login", "stored password unavailable, using default: "+err.Error())
	}

	if password != valid {
		return "", ErrInvalidPassword
	}
	utils.LogEvent(s.RequestID, "auth", "login", "admin logged in")
	return s.issueToken()
}

func (s AuthService) issueToken() (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"role": "admin",
		"exp":  s.now().Add(24 * time.Hour).Unix(),
	})
	return token.SignedString(s.JWTSecret)
}

// ChangePassword replaces the stored admin password. Both fields empty
// means "leave unchanged" and succeeds without a write. The permanent
// password is not affected by this.
func (s AuthService) ChangePassword(newPassword, confirm string) error {
	if newPassword == "" && confirm == "" {
		return nil
	}
	if newPassword != confirm {
		return domain.ValidationError{Field: "password", Msg: "两次输入的密码不一致"}
	}
	if len([]rune(newPassword)) < 4 {
		return domain.ValidationError{Field: "password", Msg: "密码长度至少 4 位"}
	}
	if err := s.Settings.Upsert(domain.SettingAdminPassword, newPassword, s.now()); err != nil {
		return domain.InternalError{Msg: "保存密码失败: " + err.Error(), Err: err}
	}
	utils.LogEvent(s.RequestID, "auth", "change_password", "admin password updated")
	return nil
}
