package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/swapmart/auth-service/internal/events"
	"github.com/swapmart/auth-service/internal/mailer"
	"github.com/swapmart/auth-service/internal/models"
	"github.com/swapmart/auth-service/internal/repo"
	"github.com/swapmart/auth-service/pkg/hash"
	"github.com/swapmart/auth-service/pkg/logging"
	"github.com/swapmart/auth-service/pkg/tokens"
)

// verificationTokenBytes is the entropy of the mailed one-time secret.
// Hex-encoded it is 72 characters, the maximum bcrypt input length.
const verificationTokenBytes = 36

// EventPublisher pushes domain events to the message broker.
type EventPublisher interface {
	PublishEvent(ctx context.Context, topic, key string, event interface{}) error
}

// Auditor records security-relevant actions for the audit trail.
type Auditor interface {
	Record(ctx context.Context, action, userID string, fields map[string]any)
}

type AuthService struct {
	Users         repo.UserRepo
	Verifications repo.VerificationTokenRepo
	Mailer        mailer.Mailer

	Events EventPublisher // optional
	Audit  Auditor        // optional

	JWTSecret     []byte
	RefreshSecret []byte
	AccessTTL     time.Duration

	// AppURL is the base of the mailed verification link.
	AppURL string
}

type Profile struct {
	ID       string `json:"id"`
	Email    string `json:"email"`
	Name     string `json:"name"`
	Verified bool   `json:"verified"`
}

type LoginResult struct {
	Profile      Profile
	AccessToken  string
	RefreshToken string
	AccessExp    time.Time
}

func publicProfile(u *models.User) Profile {
	return Profile{ID: u.ID, Email: u.Email, Name: u.Name, Verified: u.Verified}
}

// Register creates an unverified account and mails a verification link. The
// token hash is committed before the mail is sent; a send failure leaves the
// account in place and re-issuing the link is the recovery path.
func (s *AuthService) Register(ctx context.Context, name, email, password string) error {
	l := logging.FromContext(ctx).With("svc", "auth.register")

	if name == "" {
		return fmt.Errorf("%w: name is missing", ErrValidation)
	}
	if email == "" {
		return fmt.Errorf("%w: email is missing", ErrValidation)
	}
	if password == "" {
		return fmt.Errorf("%w: password is missing", ErrValidation)
	}

	if _, err := s.Users.FindByEmail(ctx, email); err == nil {
		return ErrEmailTaken
	} else if !errors.Is(err, repo.ErrNotFound) {
		l.Error("register_error", "reason", "email lookup failed", "error", err)
		return err
	}

	pwHash, err := hash.Hash(password)
	if err != nil {
		l.Error("register_error", "reason", "cannot hash the password", "error", err)
		return err
	}

	user := &models.User{
		ID:           uuid.NewString(),
		Email:        email,
		Name:         name,
		PasswordHash: pwHash,
		Tokens:       models.StringSlice{},
	}
	if err := s.Users.Create(ctx, user); err != nil {
		if errors.Is(err, repo.ErrDuplicate) {
			l.Warn("register_error", "reason", "email already in use", "email", email)
			return ErrEmailTaken
		}
		l.Error("register_error", "reason", "cannot create user", "error", err)
		return err
	}

	if err := s.issueVerification(ctx, user); err != nil {
		return err
	}

	s.publish(ctx, events.TopicUserEvents, user.ID, map[string]any{
		"type":    "user_registered",
		"user_id": user.ID,
		"email":   user.Email,
	})
	s.record(ctx, "register", user.ID, nil)

	l.Info("user_registered", "user_id", user.ID)
	return nil
}

// issueVerification stores the hash of a fresh one-time secret and mails the
// plaintext link. Only the hash ever reaches the store.
func (s *AuthService) issueVerification(ctx context.Context, user *models.User) error {
	l := logging.FromContext(ctx).With("svc", "auth.verification")

	secret, err := hash.RandomToken(verificationTokenBytes)
	if err != nil {
		return err
	}
	secretHash, err := hash.Hash(secret)
	if err != nil {
		return err
	}

	if err := s.Verifications.Create(ctx, &models.VerificationToken{
		OwnerID:   user.ID,
		TokenHash: secretHash,
	}); err != nil {
		l.Error("verification_error", "reason", "cannot store token hash", "error", err)
		return err
	}

	link := fmt.Sprintf("%s/auth/verify?id=%s&token=%s", s.AppURL, user.ID, secret)
	if err := s.Mailer.SendVerification(user.Email, link); err != nil {
		// The account and token hash are already committed; the caller can
		// request a fresh link.
		l.Error("verification_error", "reason", "mail send failed", "user_id", user.ID, "error", err)
		return fmt.Errorf("send verification mail: %w", err)
	}

	return nil
}

// VerifyEmail flips the verified flag when the presented secret matches the
// stored hash. A second attempt after success is an idempotent no-op.
func (s *AuthService) VerifyEmail(ctx context.Context, userID, token string) error {
	l := logging.FromContext(ctx).With("svc", "auth.verify", "user_id", userID)

	if userID == "" || token == "" {
		return fmt.Errorf("%w: id or token is missing", ErrValidation)
	}

	vt, err := s.Verifications.FindByOwner(ctx, userID)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			// Verified flag already flipped and the token gone: the
			// completion already happened, report success.
			if user, uerr := s.Users.FindByID(ctx, userID); uerr == nil && user.Verified {
				return nil
			}
			return ErrUnauthorized
		}
		l.Error("verify_error", "reason", "token lookup failed", "error", err)
		return err
	}

	if !hash.Check(vt.TokenHash, token) {
		return ErrUnauthorized
	}

	if err := s.Users.UpdateVerified(ctx, userID, true); err != nil {
		l.Error("verify_error", "reason", "cannot update verified flag", "error", err)
		return err
	}
	if err := s.Verifications.DeleteByID(ctx, vt.ID); err != nil {
		// The flag is flipped; the next attempt resolves as the no-op above.
		l.Warn("verify_cleanup_failed", "error", err)
	}

	s.publish(ctx, events.TopicUserEvents, userID, map[string]any{
		"type":    "user_verified",
		"user_id": userID,
	})
	s.record(ctx, "verify_email", userID, nil)

	l.Info("user_verified")
	return nil
}

// ResendVerification replaces any pending verification token for the caller
// and mails a fresh link. Prior links stop verifying.
func (s *AuthService) ResendVerification(ctx context.Context, userID string) error {
	l := logging.FromContext(ctx).With("svc", "auth.resend", "user_id", userID)

	user, err := s.Users.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return ErrUnauthorized
		}
		return err
	}

	if err := s.Verifications.DeleteByOwner(ctx, userID); err != nil {
		l.Error("resend_error", "reason", "cannot delete prior token", "error", err)
		return err
	}

	return s.issueVerification(ctx, user)
}

// Login verifies credentials and mints a token pair. The refresh token joins
// the user's stored set before the pair is returned.
func (s *AuthService) Login(ctx context.Context, email, password string) (*LoginResult, error) {
	l := logging.FromContext(ctx).With("svc", "auth.login")

	if email == "" || password == "" {
		return nil, fmt.Errorf("%w: email or password is missing", ErrValidation)
	}

	user, err := s.Users.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, ErrInvalidCredentials
		}
		l.Error("login_error", "reason", "email lookup failed", "error", err)
		return nil, err
	}

	if !hash.Check(user.PasswordHash, password) {
		return nil, ErrInvalidCredentials
	}

	res, err := s.mintPair(ctx, user, user.Tokens)
	if err != nil {
		return nil, err
	}

	s.publish(ctx, events.TopicAuthEvents, user.ID, map[string]any{
		"type":    "user_signed_in",
		"user_id": user.ID,
	})
	s.record(ctx, "sign_in", user.ID, nil)

	l.Info("login_successful", "user_id", user.ID)
	return res, nil
}

// Refresh rotates a refresh token: the presented token leaves the stored set
// and the replacement joins it. A well-signed token that is no longer in the
// set is a replay; the whole set is wiped so every session must sign in again.
func (s *AuthService) Refresh(ctx context.Context, refreshToken string) (*LoginResult, error) {
	l := logging.FromContext(ctx).With("svc", "auth.refresh")

	if refreshToken == "" {
		return nil, ErrInvalidCredentials
	}

	claims, err := tokens.RefreshClaimsFromToken(refreshToken, s.RefreshSecret)
	if err != nil {
		return nil, ErrUnauthorized
	}
	if claims.Subject == "" {
		return nil, ErrUnauthorized
	}

	user, err := s.Users.FindByID(ctx, claims.Subject)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, ErrUnauthorized
		}
		l.Error("refresh_error", "reason", "user lookup failed", "error", err)
		return nil, err
	}

	if !user.Tokens.Contains(refreshToken) {
		// Replay of a rotated-out token. Force re-authentication everywhere.
		if err := s.Users.UpdateTokens(ctx, user.ID, models.StringSlice{}); err != nil {
			l.Error("refresh_error", "reason", "cannot wipe token set", "error", err)
			return nil, err
		}

		s.publish(ctx, events.TopicAuthEvents, user.ID, map[string]any{
			"type":    "refresh_token_replayed",
			"user_id": user.ID,
		})
		s.record(ctx, "token_replay", user.ID, map[string]any{"revoked_all": true})

		l.Warn("refresh_token_replayed", "user_id", user.ID)
		return nil, ErrUnauthorized
	}

	res, err := s.mintPair(ctx, user, user.Tokens.Without(refreshToken))
	if err != nil {
		return nil, err
	}

	l.Info("token_rotated", "user_id", user.ID)
	return res, nil
}

// SignOut removes the presented refresh token from the caller's set. Other
// sessions keep their tokens.
func (s *AuthService) SignOut(ctx context.Context, userID, refreshToken string) error {
	if refreshToken == "" {
		return nil
	}

	user, err := s.Users.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return ErrUnauthorized
		}
		return err
	}
	if !user.Tokens.Contains(refreshToken) {
		return nil
	}

	return s.Users.UpdateTokens(ctx, user.ID, user.Tokens.Without(refreshToken))
}

// Profile returns the already-authenticated caller's public profile.
func (s *AuthService) Profile(ctx context.Context, userID string) (*Profile, error) {
	user, err := s.Users.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, ErrUnauthorized
		}
		return nil, err
	}
	p := publicProfile(user)
	return &p, nil
}

// mintPair signs a fresh access/refresh pair and persists base plus the new
// refresh token as the user's token set.
func (s *AuthService) mintPair(ctx context.Context, user *models.User, base models.StringSlice) (*LoginResult, error) {
	l := logging.FromContext(ctx).With("svc", "auth.tokens", "user_id", user.ID)

	accessExp := time.Now().Add(s.AccessTTL)
	access, err := tokens.NewAccessToken(user.ID, accessExp, s.JWTSecret)
	if err != nil {
		l.Error("token_error", "reason", "cannot sign access token", "error", err)
		return nil, err
	}
	refresh, err := tokens.NewRefreshToken(user.ID, s.RefreshSecret)
	if err != nil {
		l.Error("token_error", "reason", "cannot sign refresh token", "error", err)
		return nil, err
	}

	if err := s.Users.UpdateTokens(ctx, user.ID, base.Append(refresh)); err != nil {
		l.Error("token_error", "reason", "cannot persist token set", "error", err)
		return nil, err
	}

	return &LoginResult{
		Profile:      publicProfile(user),
		AccessToken:  access,
		RefreshToken: refresh,
		AccessExp:    accessExp,
	}, nil
}

func (s *AuthService) publish(ctx context.Context, topic, key string, event map[string]any) {
	if s.Events == nil {
		return
	}
	if err := s.Events.PublishEvent(ctx, topic, key, event); err != nil {
		logging.FromContext(ctx).Error("event_publish_failed", "topic", topic, "error", err)
	}
}

func (s *AuthService) record(ctx context.Context, action, userID string, fields map[string]any) {
	if s.Audit == nil {
		return
	}
	s.Audit.Record(ctx, action, userID, fields)
}
