package services

import (
	"context"
	"fmt"
	"log/slog"
	"net/url"

	"github.com/ahmetcoskunkizilkaya/account-service/internal/config"
	"github.com/ahmetcoskunkizilkaya/account-service/internal/dto"
	"github.com/ahmetcoskunkizilkaya/account-service/internal/mail"
	"github.com/ahmetcoskunkizilkaya/account-service/internal/models"
	"github.com/ahmetcoskunkizilkaya/account-service/internal/repository"
	"github.com/google/uuid"
)

// Mailer is the outbound notification gateway. The lifecycle depends only on
// its boolean success contract.
type Mailer interface {
	Send(fromAddr, fromName, toAddr, subject, htmlBody, textBody string) bool
}

// UserService owns the account lifecycle: registration, authentication,
// email confirmation, password reset, profile update and deletion. Each
// operation is a single read-compute-write pass over one user row; rate-limit
// windows are re-derived from the row's counters on every call.
type UserService struct {
	repo   repository.UserRepository
	mailer Mailer
	clock  Clock
	tokens *TokenService
	cfg    *config.Config
}

func NewUserService(repo repository.UserRepository, mailer Mailer, clock Clock, tokens *TokenService, cfg *config.Config) *UserService {
	return &UserService{
		repo:   repo,
		mailer: mailer,
		clock:  clock,
		tokens: tokens,
		cfg:    cfg,
	}
}

func (s *UserService) loginLimit() RateLimit {
	return RateLimit{MaxCount: s.cfg.MaxLoginFailedCount, Window: s.cfg.LoginFailedWaitingTime}
}

func (s *UserService) emailChangeLimit() RateLimit {
	return RateLimit{MaxCount: s.cfg.MaxUnconfirmedEmailCount, Window: s.cfg.UnconfirmedEmailWaitingTime}
}

func (s *UserService) resetLimit() RateLimit {
	return RateLimit{MaxCount: s.cfg.MaxResetPasswordCount, Window: s.cfg.ResetPasswordWaitingTime}
}

// Register creates a self-service account. The user starts inactive with a
// nil email; activation happens on the first email confirmation. Nothing is
// persisted unless the confirmation email was handed to the gateway.
func (s *UserService) Register(ctx context.Context, req dto.RegisterRequest) (*dto.UserResponse, error) {
	if req.Password == "" {
		return nil, ErrInvalidPassword
	}

	existing, err := s.repo.GetByUsernameOrEmail(ctx, req.Username, req.Email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		// Username collision wins when one row matches both.
		if existing.Username == req.Username {
			return nil, fmt.Errorf("%w: %q", ErrUsernameTaken, req.Username)
		}
		return nil, fmt.Errorf("%w: %q", ErrEmailTaken, req.Email)
	}

	hash, salt, err := CreateHash(req.Password)
	if err != nil {
		return nil, err
	}

	user := &models.User{
		ID:           uuid.New(),
		CreatedAt:    s.clock.Now(),
		Username:     req.Username,
		FirstName:    req.FirstName,
		LastName:     req.LastName,
		Email:        nil, // must be confirmed first
		IsActive:     false,
		PasswordHash: hash,
		PasswordSalt: salt,
	}

	sent, err := s.changeEmail(user, req.Email)
	if err != nil {
		return nil, err
	}
	if !sent {
		return nil, fmt.Errorf("%w: confirmation email", ErrEmailNotSent)
	}

	if err := s.repo.Create(ctx, user); err != nil {
		return nil, err
	}

	slog.Info("user registered", "user_id", user.ID, "username", user.Username)
	resp := dto.NewUserResponse(user)
	return &resp, nil
}

// Create is the authorized creation path: the account is immediately active
// with its email set, no confirmation cycle runs and no mail is sent.
func (s *UserService) Create(ctx context.Context, actorID uuid.UUID, req dto.RegisterRequest) (*dto.UserResponse, error) {
	if req.Password == "" {
		return nil, ErrInvalidPassword
	}

	existing, err := s.repo.GetByUsernameOrEmail(ctx, req.Username, req.Email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		if existing.Username == req.Username {
			return nil, fmt.Errorf("%w: %q", ErrUsernameTaken, req.Username)
		}
		return nil, fmt.Errorf("%w: %q", ErrEmailTaken, req.Email)
	}

	hash, salt, err := CreateHash(req.Password)
	if err != nil {
		return nil, err
	}

	email := req.Email
	user := &models.User{
		ID:           uuid.New(),
		CreatedAt:    s.clock.Now(),
		CreatedByID:  &actorID,
		Username:     req.Username,
		FirstName:    req.FirstName,
		LastName:     req.LastName,
		Email:        &email,
		IsActive:     true,
		PasswordHash: hash,
		PasswordSalt: salt,
	}

	if err := s.repo.Create(ctx, user); err != nil {
		return nil, err
	}

	slog.Info("user created", "user_id", user.ID, "created_by", actorID)
	resp := dto.NewUserResponse(user)
	return &resp, nil
}

// Authenticate verifies a username/password pair and issues a token. Failed
// attempts feed the login window; every failure before the window elapses
// refreshes the timestamp and re-extends the wait.
func (s *UserService) Authenticate(ctx context.Context, req dto.LoginRequest) (*dto.AuthResponse, error) {
	user, err := s.repo.GetActiveByUsername(ctx, req.Username)
	if err != nil {
		return nil, err
	}
	if user == nil {
		// Deliberately generic: does not reveal whether the account exists.
		return nil, fmt.Errorf("%w: username is incorrect", ErrNotFound)
	}

	now := s.clock.Now()
	if wait, blocked := s.loginLimit().Check(now, user.LoginFailedCount, user.LoginFailedAt); blocked {
		return nil, fmt.Errorf("%w: you must wait for %d seconds before you try to log in again",
			ErrTooManyLoginAttempts, int(wait.Seconds()))
	}

	ok, err := VerifyHash(req.Password, user.PasswordHash, user.PasswordSalt)
	if err != nil {
		return nil, err
	}
	if !ok {
		user.LoginFailedCount++
		user.LoginFailedAt = &now
		if err := s.repo.Save(ctx, user); err != nil {
			return nil, err
		}
		return nil, ErrIncorrectPassword
	}

	user.LoginFailedCount = 0
	user.LoginFailedAt = nil
	user.LastLoginAt = &now
	if err := s.repo.Save(ctx, user); err != nil {
		return nil, err
	}

	return s.tokenize(user)
}

// AuthenticateExternal upserts an account from identity-provider claims. The
// provider is the trust boundary: claims overwrite the local profile and the
// flow is never rate-limited.
func (s *UserService) AuthenticateExternal(ctx context.Context, provider, externalID, email, firstName, lastName string) (*dto.AuthResponse, error) {
	user, err := s.repo.GetByExternalID(ctx, provider, externalID)
	if err != nil {
		return nil, err
	}

	now := s.clock.Now()
	if user == nil {
		user = &models.User{
			ID:               uuid.New(),
			CreatedAt:        now,
			ExternalProvider: &provider,
			ExternalID:       &externalID,
			Username:         externalID + "|" + provider,
			IsActive:         true,
		}
		user.FirstName = firstName
		user.LastName = lastName
		user.Email = &email
		user.LastLoginAt = &now
		if err := s.repo.Create(ctx, user); err != nil {
			return nil, err
		}
		slog.Info("external user created", "user_id", user.ID, "provider", provider)
		return s.tokenize(user)
	}

	user.FirstName = firstName
	user.LastName = lastName
	user.Email = &email
	user.LoginFailedCount = 0
	user.LoginFailedAt = nil
	user.LastLoginAt = &now
	if err := s.repo.Save(ctx, user); err != nil {
		return nil, err
	}
	return s.tokenize(user)
}

// GetDetails returns the profile view of a single user.
func (s *UserService) GetDetails(ctx context.Context, id uuid.UUID) (*dto.UserResponse, error) {
	user, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, fmt.Errorf("%w: user not found", ErrNotFound)
	}
	resp := dto.NewUserResponse(user)
	return &resp, nil
}

// GetAll returns a page of active users.
func (s *UserService) GetAll(ctx context.Context, page, pageSize int) (*dto.PagedResponse[dto.UserSummary], error) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 || pageSize > 100 {
		pageSize = 20
	}

	users, total, err := s.repo.ListActive(ctx, (page-1)*pageSize, pageSize)
	if err != nil {
		return nil, err
	}

	items := make([]dto.UserSummary, 0, len(users))
	for i := range users {
		items = append(items, dto.NewUserSummary(&users[i]))
	}
	return &dto.PagedResponse[dto.UserSummary]{
		Items:    items,
		Total:    total,
		Page:     page,
		PageSize: pageSize,
	}, nil
}

// Update applies a self-service profile edit. External accounts are read-only
// for every field. All mutations land in one Save at the end, so a failed
// email send leaves the record untouched.
func (s *UserService) Update(ctx context.Context, actorID, targetID uuid.UUID, req dto.UpdateUserRequest) (*dto.UserResponse, error) {
	if actorID != targetID {
		return nil, ErrForbidden
	}

	user, err := s.repo.GetByID(ctx, targetID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, fmt.Errorf("%w: user not found", ErrNotFound)
	}

	if req.Username != nil {
		if user.IsExternal() {
			return nil, fmt.Errorf("%w: username", ErrReadOnlyProperty)
		}
		if *req.Username != user.Username {
			taken, err := s.repo.UsernameExists(ctx, *req.Username)
			if err != nil {
				return nil, err
			}
			if taken {
				return nil, fmt.Errorf("%w: %q", ErrUsernameTaken, *req.Username)
			}
			user.Username = *req.Username
		}
	}

	if req.FirstName != nil {
		if user.IsExternal() {
			return nil, fmt.Errorf("%w: first name", ErrReadOnlyProperty)
		}
		user.FirstName = *req.FirstName
	}
	if req.LastName != nil {
		if user.IsExternal() {
			return nil, fmt.Errorf("%w: last name", ErrReadOnlyProperty)
		}
		user.LastName = *req.LastName
	}

	if req.Password != nil {
		if user.IsExternal() {
			return nil, fmt.Errorf("%w: password", ErrReadOnlyProperty)
		}
		hash, salt, err := CreateHash(*req.Password)
		if err != nil {
			return nil, err
		}
		user.PasswordHash = hash
		user.PasswordSalt = salt
	}

	if req.Email != nil {
		if user.IsExternal() {
			return nil, fmt.Errorf("%w: email", ErrReadOnlyProperty)
		}
		sent, err := s.changeEmail(user, *req.Email)
		if err != nil {
			return nil, err
		}
		if !sent {
			return nil, fmt.Errorf("%w: confirmation email", ErrEmailNotSent)
		}
	}

	now := s.clock.Now()
	user.UpdatedAt = &now
	user.UpdatedByID = &actorID

	if err := s.repo.Save(ctx, user); err != nil {
		return nil, err
	}

	resp := dto.NewUserResponse(user)
	return &resp, nil
}

// Delete removes the account. Self-service only; deleting an already absent
// account is not an error.
func (s *UserService) Delete(ctx context.Context, actorID, targetID uuid.UUID) error {
	if actorID != targetID {
		return ErrForbidden
	}

	user, err := s.repo.GetByID(ctx, targetID)
	if err != nil {
		return err
	}
	if user == nil {
		return nil
	}
	return s.repo.Delete(ctx, targetID)
}

// ConfirmEmail promotes a pending email change identified by its code. The
// first confirmation of a fresh account also activates it.
func (s *UserService) ConfirmEmail(ctx context.Context, code string) error {
	user, err := s.repo.GetByUnconfirmedEmailCode(ctx, code)
	if err != nil {
		return err
	}
	if user == nil {
		return fmt.Errorf("%w: something went wrong, please contact support", ErrNotFound)
	}

	if s.cfg.ConfirmEmailValidTime > 0 && user.UnconfirmedEmailCreatedAt != nil {
		if s.clock.Now().Sub(*user.UnconfirmedEmailCreatedAt) > s.cfg.ConfirmEmailValidTime {
			return fmt.Errorf("%w: this link has expired, please request a new confirmation email", ErrApp)
		}
	}

	if user.Email == nil {
		user.IsActive = true
	}

	user.Email = user.UnconfirmedEmail
	user.UnconfirmedEmail = nil
	user.UnconfirmedEmailCode = nil
	user.UnconfirmedEmailCount = 0
	user.UnconfirmedEmailCreatedAt = nil

	if err := s.repo.Save(ctx, user); err != nil {
		return err
	}
	slog.Info("email confirmed", "user_id", user.ID)
	return nil
}

// PasswordReset starts the reset flow for an active, locally-credentialed
// account. Counters persist only when the reset email actually went out.
func (s *UserService) PasswordReset(ctx context.Context, email string) error {
	user, err := s.repo.GetActiveByEmail(ctx, email)
	if err != nil {
		return err
	}
	if user == nil || user.IsExternal() {
		return fmt.Errorf("%w: something went wrong, please contact support", ErrNotFound)
	}

	now := s.clock.Now()
	if wait, blocked := s.resetLimit().Check(now, user.ResetPasswordCount, user.ResetPasswordCreatedAt); blocked {
		return fmt.Errorf("%w: you must wait for %d seconds before you try to reset password again",
			ErrTooManyResetAttempts, int(wait.Seconds()))
	}

	code, err := s.newCode()
	if err != nil {
		return err
	}
	user.ResetPasswordCode = &code
	user.ResetPasswordCount++
	user.ResetPasswordCreatedAt = &now

	resetURL := fmt.Sprintf("%s?code=%s&email=%s",
		s.cfg.ResetPasswordURL, url.QueryEscape(code), url.QueryEscape(email))
	body, err := mail.PasswordResetBody(s.cfg.AppName, resetURL)
	if err != nil {
		return err
	}

	if !s.mailer.Send(s.cfg.EmailFrom, s.cfg.EmailFromName, email, "Reset your password", body, "") {
		return fmt.Errorf("%w: reset email", ErrEmailNotSent)
	}

	return s.repo.Save(ctx, user)
}

// ConfirmResetPassword exchanges a valid reset code for a freshly generated
// password. The plaintext goes back to the caller and is never emailed.
func (s *UserService) ConfirmResetPassword(ctx context.Context, code, email string) (*dto.NewPasswordResponse, error) {
	user, err := s.repo.GetByEmailAndResetCode(ctx, email, code)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, fmt.Errorf("%w: invalid code", ErrNotFound)
	}

	if user.ResetPasswordCreatedAt == nil ||
		s.clock.Now().Sub(*user.ResetPasswordCreatedAt) > s.cfg.ResetPasswordValidTime {
		return nil, fmt.Errorf("%w: this link has expired, please try to reset password again", ErrApp)
	}

	newPassword, err := GenerateRandomToken(8)
	if err != nil {
		return nil, err
	}
	hash, salt, err := CreateHash(newPassword)
	if err != nil {
		return nil, err
	}

	user.ResetPasswordCode = nil
	user.ResetPasswordCount = 0
	user.ResetPasswordCreatedAt = nil
	user.PasswordHash = hash
	user.PasswordSalt = salt

	if err := s.repo.Save(ctx, user); err != nil {
		return nil, err
	}

	slog.Info("password reset confirmed", "user_id", user.ID)
	return &dto.NewPasswordResponse{
		ID:       user.ID,
		Username: user.Username,
		Email:    user.Email,
		Password: newPassword,
	}, nil
}

// changeEmail runs the shared email-change sub-protocol: guard the window,
// stage the unconfirmed fields and hand the confirmation mail to the gateway.
// The boolean is the gateway's verdict; callers decide how to fail on false.
func (s *UserService) changeEmail(user *models.User, newEmail string) (bool, error) {
	if user.Email != nil && *user.Email == newEmail {
		// Same-address edits are free and do not restart the cycle.
		return true, nil
	}

	now := s.clock.Now()
	if wait, blocked := s.emailChangeLimit().Check(now, user.UnconfirmedEmailCount, user.UnconfirmedEmailCreatedAt); blocked {
		return false, fmt.Errorf("%w: you must wait for %d seconds before you try to change email again",
			ErrTooManyEmailChanges, int(wait.Seconds()))
	}

	code, err := s.newCode()
	if err != nil {
		return false, err
	}

	user.UnconfirmedEmail = &newEmail
	user.UnconfirmedEmailCode = &code
	user.UnconfirmedEmailCount++
	user.UnconfirmedEmailCreatedAt = &now

	confirmURL := fmt.Sprintf("%s?code=%s", s.cfg.ConfirmEmailURL, url.QueryEscape(code))
	body, err := mail.ConfirmEmailBody(s.cfg.AppName, confirmURL)
	if err != nil {
		return false, err
	}

	return s.mailer.Send(s.cfg.EmailFrom, s.cfg.EmailFromName, newEmail, "Confirm your email", body, ""), nil
}

// newCode builds a confirmation code: 30 random alphanumerics plus a UUID,
// long enough that collisions and guessing are both out of the question.
func (s *UserService) newCode() (string, error) {
	token, err := GenerateRandomToken(30)
	if err != nil {
		return "", err
	}
	return token + uuid.NewString(), nil
}

func (s *UserService) tokenize(user *models.User) (*dto.AuthResponse, error) {
	token, err := s.tokens.Issue(user.ID)
	if err != nil {
		return nil, err
	}
	return &dto.AuthResponse{
		ID:        user.ID,
		Username:  user.Username,
		FirstName: user.FirstName,
		LastName:  user.LastName,
		Email:     user.Email,
		Token:     token,
	}, nil
}
