package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/url"
	"regexp"
	"strconv"
	"time"

	"github.com/openvenue/eventgate/internal/eventgate/domain"
	"github.com/openvenue/eventgate/internal/eventgate/notify"
	"github.com/openvenue/eventgate/internal/eventgate/store"
	"github.com/openvenue/eventgate/pkg/cryptox"
	"github.com/openvenue/eventgate/pkg/idx"
	"github.com/openvenue/eventgate/pkg/jwtx"
	"github.com/openvenue/eventgate/pkg/slogx"
	"github.com/openvenue/eventgate/pkg/tokenx"
)

var (
	ErrUsernameAlreadyTaken = errors.New("username already taken")
	ErrEmailAlreadyTaken    = errors.New("email already registered")
	ErrInvalidCredentials   = errors.New("invalid username or password")
	ErrAccountNotActivated  = errors.New("account has not been activated")
	ErrActivationInvalid    = errors.New("activation link is invalid or has expired")
)

// TokenPurposeActivate scopes activation tokens so they cannot be replayed
// against a future token-based flow such as password reset.
const TokenPurposeActivate = "activate"

var usernameRe = regexp.MustCompile(`^[a-zA-Z0-9_.-]{3,32}$`)
var emailRe = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)

// AccountService owns signup, activation and authentication. Activation is
// stateless: tokens are HMAC-signed over the account's current state, so a
// token self-invalidates the moment the account changes.
type AccountService struct {
	Store    store.Store
	Notifier notify.Notifier
	Tokens   *tokenx.Minter
	Sessions *jwtx.Signer

	// DefaultRole is granted to every new signup. It must resolve to an
	// existing role; bootstrap verifies this at startup.
	DefaultRole string

	// AutoActivate skips email confirmation and marks accounts active on
	// creation. Intended for development environments.
	AutoActivate bool

	// PublicURL is the externally reachable base URL used to build
	// activation links.
	PublicURL string
}

// accountFingerprint derives the state fingerprint an activation token is
// bound to. Any change to the activation flag, password hash or email
// invalidates outstanding tokens.
func accountFingerprint(u domain.User) string {
	return cryptox.Fingerprint(strconv.FormatBool(u.Active), u.PasswordHash, u.Email)
}

// Signup creates a new inactive account with the default role and emails an
// activation link. The user row and its role grant are written atomically.
func (s *AccountService) Signup(ctx context.Context, username, email, password string) (domain.User, error) {
	log := slogx.FromContext(ctx)

	// 1. Validate input shape before touching the store.
	if !usernameRe.MatchString(username) {
		return domain.User{}, fmt.Errorf("%w: username must be 3-32 characters (letters, digits, _ . -)", ErrValidation)
	}
	if !emailRe.MatchString(email) {
		return domain.User{}, fmt.Errorf("%w: email address is not valid", ErrValidation)
	}
	if len(password) < 8 {
		return domain.User{}, fmt.Errorf("%w: password must be at least 8 characters", ErrValidation)
	}

	// 2. Resolve the default role. A missing role is a deployment fault,
	// not a user error.
	role, err := s.Store.Roles().GetRoleByName(ctx, s.DefaultRole)
	if err != nil {
		log.Error("default signup role is not provisioned",
			slog.String("role", s.DefaultRole),
			slog.Any("error", err),
		)
		return domain.User{}, err
	}

	// 3. Check username and email availability. The store's unique
	// constraints remain the authority under concurrency; these checks
	// exist to produce friendly errors.
	if _, err := s.Store.Users().GetUserByUsername(ctx, username); err == nil {
		return domain.User{}, ErrUsernameAlreadyTaken
	} else if !errors.Is(err, store.ErrNotFound) {
		log.Error("failed to check username availability", slog.Any("error", err))
		return domain.User{}, err
	}
	if _, err := s.Store.Users().GetUserByEmail(ctx, email); err == nil {
		return domain.User{}, ErrEmailAlreadyTaken
	} else if !errors.Is(err, store.ErrNotFound) {
		log.Error("failed to check email availability", slog.Any("error", err))
		return domain.User{}, err
	}

	// 4. Hash the password using Argon2id.
	passwordHash, err := cryptox.HashPassword(password)
	if err != nil {
		log.Error("failed to hash password", slog.Any("error", err))
		return domain.User{}, err
	}

	user := domain.User{
		ID:           idx.New().String(),
		Username:     username,
		Email:        email,
		PasswordHash: passwordHash,
		Active:       s.AutoActivate,
	}

	// 5. Create the user and grant the default role atomically. A crash
	// between the two must not leave a roleless account behind.
	err = s.Store.WithTx(ctx, func(tx store.Tx) error {
		if err := tx.Users().CreateUser(ctx, user); err != nil {
			return err
		}
		return tx.Users().SetUserRoles(ctx, user.ID, []string{role.ID})
	})
	if err != nil {
		if errors.Is(err, store.ErrAlreadyExists) {
			// Lost a race with a concurrent signup for the same
			// username or email.
			return domain.User{}, ErrUsernameAlreadyTaken
		}
		log.Error("failed to create user",
			slog.String("username", username),
			slog.Any("error", err),
		)
		return domain.User{}, err
	}

	log.Info("account created",
		slog.String("user_id", user.ID),
		slog.String("username", user.Username),
		slog.Bool("auto_activated", s.AutoActivate),
	)

	// 6. Send the activation email, unless auto-activation is on. Delivery
	// failure is logged but does not fail signup; the user can request a
	// resend.
	if !s.AutoActivate {
		s.sendActivationEmail(ctx, user)
	}

	return user, nil
}

// Activate redeems an activation token and flips the account active exactly
// once. Every failure mode collapses into ErrActivationInvalid so the
// response does not reveal whether an account exists or why a token was
// rejected.
func (s *AccountService) Activate(ctx context.Context, userID, token string) error {
	log := slogx.FromContext(ctx)

	// 1. Verify signature, expiry and state binding. The fingerprint is
	// recomputed from the account's current state, so activation tokens
	// become useless once the account activates or its email or password
	// changes.
	_, err := s.Tokens.Verify(token, TokenPurposeActivate, func(subject string) (string, error) {
		if subject != userID {
			return "", tokenx.ErrStateMismatch
		}
		user, err := s.Store.Users().GetUserByID(ctx, subject)
		if err != nil {
			if errors.Is(err, store.ErrNotFound) {
				return "", tokenx.ErrStateMismatch
			}
			return "", err
		}
		return accountFingerprint(user), nil
	})
	if err != nil {
		switch {
		case errors.Is(err, tokenx.ErrMalformed),
			errors.Is(err, tokenx.ErrExpired),
			errors.Is(err, tokenx.ErrStateMismatch):
			log.Warn("activation rejected",
				slog.String("user_id", userID),
				slog.Any("reason", err),
			)
			return ErrActivationInvalid
		default:
			log.Error("failed to verify activation token", slog.Any("error", err))
			return err
		}
	}

	// 2. Flip the flag with a conditional update so concurrent redemptions
	// of the same token activate at most once.
	flipped, err := s.Store.Users().ActivateUser(ctx, userID)
	if err != nil {
		log.Error("failed to activate user",
			slog.String("user_id", userID),
			slog.Any("error", err),
		)
		return err
	}
	if !flipped {
		// Another request won the race between Verify and the update.
		return ErrActivationInvalid
	}

	log.Info("account activated", slog.String("user_id", userID))

	// 3. Only the request that flipped the flag sends the welcome email,
	// giving at-most-once delivery.
	user, err := s.Store.Users().GetUserByID(ctx, userID)
	if err == nil {
		if err := s.Notifier.Send(ctx, user.Email, subjectWelcome, welcomeBody(user.Username)); err != nil {
			log.Warn("failed to send welcome email",
				slog.String("user_id", userID),
				slog.Any("error", err),
			)
		}
	}

	return nil
}

// ResendActivation mints a fresh activation token for a pending account.
// It always reports success to the caller so the endpoint cannot be used to
// probe which email addresses are registered.
func (s *AccountService) ResendActivation(ctx context.Context, email string) error {
	log := slogx.FromContext(ctx)

	user, err := s.Store.Users().GetUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			log.Debug("activation resend for unknown email")
			return nil
		}
		log.Error("failed to look up account for resend", slog.Any("error", err))
		return err
	}
	if user.Active {
		log.Debug("activation resend for already-active account",
			slog.String("user_id", user.ID),
		)
		return nil
	}

	s.sendActivationEmail(ctx, user)
	return nil
}

// Authenticate verifies credentials and issues a session token. Inactive
// accounts are rejected with a distinct error after the password check, so
// the pending state is only revealed to someone holding valid credentials.
func (s *AccountService) Authenticate(ctx context.Context, username, password string) (string, domain.User, error) {
	log := slogx.FromContext(ctx)

	// 1. Look up the account. Unknown usernames and bad passwords share
	// one error.
	user, err := s.Store.Users().GetUserByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return "", domain.User{}, ErrInvalidCredentials
		}
		log.Error("failed to fetch user", slog.Any("error", err))
		return "", domain.User{}, err
	}

	// 2. Verify the password.
	if err := cryptox.VerifyPassword(password, user.PasswordHash); err != nil {
		if errors.Is(err, cryptox.ErrPasswordMismatch) {
			log.Warn("failed login attempt", slog.String("username", username))
			return "", domain.User{}, ErrInvalidCredentials
		}
		log.Error("failed to verify password", slog.Any("error", err))
		return "", domain.User{}, err
	}

	// 3. Correct credentials against a pending account get the distinct
	// not-activated outcome.
	if !user.Active {
		log.Info("login attempt on pending account", slog.String("user_id", user.ID))
		return "", domain.User{}, ErrAccountNotActivated
	}

	// 4. Load roles and issue the session token.
	roles, err := s.Store.Users().GetUserRoles(ctx, user.ID)
	if err != nil {
		log.Error("failed to fetch user roles", slog.Any("error", err))
		return "", domain.User{}, err
	}
	roleNames := make([]string, 0, len(roles))
	for _, r := range roles {
		roleNames = append(roleNames, r.Name)
	}

	session, err := s.Sessions.Sign(jwtx.NewSessionClaims(
		user.ID, user.Username, roleNames, user.Superuser,
		s.Sessions.Issuer, jwtx.DefaultSessionTTL, time.Now(),
	))
	if err != nil {
		log.Error("failed to sign session token", slog.Any("error", err))
		return "", domain.User{}, err
	}

	log.Info("user logged in",
		slog.String("user_id", user.ID),
		slog.String("username", user.Username),
	)
	return session, user, nil
}

// Profile returns the account and role names for an authenticated principal.
func (s *AccountService) Profile(ctx context.Context, userID string) (domain.User, []string, error) {
	user, err := s.Store.Users().GetUserByID(ctx, userID)
	if err != nil {
		return domain.User{}, nil, err
	}
	roles, err := s.Store.Users().GetUserRoles(ctx, userID)
	if err != nil {
		return domain.User{}, nil, err
	}
	names := make([]string, 0, len(roles))
	for _, r := range roles {
		names = append(names, r.Name)
	}
	return user, names, nil
}

func (s *AccountService) sendActivationEmail(ctx context.Context, user domain.User) {
	log := slogx.FromContext(ctx)

	token, err := s.Tokens.Mint(user.ID, accountFingerprint(user), TokenPurposeActivate)
	if err != nil {
		log.Error("failed to mint activation token",
			slog.String("user_id", user.ID),
			slog.Any("error", err),
		)
		return
	}

	link := fmt.Sprintf("%s/v1/auth/activate?uid=%s&token=%s",
		s.PublicURL, url.QueryEscape(user.ID), url.QueryEscape(token))

	if err := s.Notifier.Send(ctx, user.Email, subjectActivate, activationBody(user.Username, link)); err != nil {
		log.Warn("failed to send activation email",
			slog.String("user_id", user.ID),
			slog.Any("error", err),
		)
	}
}
