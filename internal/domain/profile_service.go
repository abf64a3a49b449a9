package domain

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"log/slog"
	"math/big"
	"net/mail"
	"net/url"
	"regexp"
	"strings"
	"unicode/utf8"
)

const (
	minPasswordLength  = 8
	maxBioLength       = 150
	verificationDigits = 6
)

var usernamePattern = regexp.MustCompile(`^[A-Za-z0-9_.@+-]{3,150}$`)

// ProfileService manages accounts and profile data.
type ProfileService struct {
	profiles ProfileRepository
	hasher   PasswordHasher
	mailer   Mailer
	opts     options
	logger   *slog.Logger
}

func NewProfileService(profiles ProfileRepository, hasher PasswordHasher, mailer Mailer, logger *slog.Logger, opts ...Option) *ProfileService {
	return &ProfileService{
		profiles: profiles,
		hasher:   hasher,
		mailer:   mailer,
		opts:     buildOptions(opts),
		logger:   logger,
	}
}

// Register creates an account. Returns ErrAlreadyExists if the username is taken.
func (s *ProfileService) Register(ctx context.Context, cmd RegisterCommand) (*Profile, error) {
	username := strings.TrimSpace(cmd.Username)
	if !usernamePattern.MatchString(username) {
		return nil, fmt.Errorf("%w: username must be 3-150 letters, digits or @.+-_", ErrInvalidInput)
	}
	email := strings.TrimSpace(cmd.Email)
	if email != "" {
		if _, err := mail.ParseAddress(email); err != nil {
			return nil, fmt.Errorf("%w: invalid email address", ErrInvalidInput)
		}
	}
	if utf8.RuneCountInString(cmd.Password) < minPasswordLength {
		return nil, fmt.Errorf("%w: password must be at least %d characters", ErrInvalidInput, minPasswordLength)
	}

	hash, err := s.hasher.Hash(cmd.Password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	p := &Profile{
		Username:     username,
		Email:        email,
		PasswordHash: hash,
		CreatedAt:    timestamp(s.opts.now()),
	}
	if err := s.profiles.CreateProfile(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

// Authenticate checks credentials. Unknown usernames and wrong passwords are both
// reported as ErrUnauthenticated.
func (s *ProfileService) Authenticate(ctx context.Context, username, password string) (*Profile, error) {
	p, err := s.profiles.GetProfileByUsername(ctx, strings.TrimSpace(username))
	if errors.Is(err, ErrNotFound) {
		return nil, ErrUnauthenticated
	}
	if err != nil {
		return nil, fmt.Errorf("load profile: %w", err)
	}
	if !s.hasher.Compare(p.PasswordHash, password) {
		return nil, ErrUnauthenticated
	}
	return p, nil
}

func (s *ProfileService) Get(ctx context.Context, id int64) (*Profile, error) {
	return s.profiles.GetProfile(ctx, id)
}

func (s *ProfileService) List(ctx context.Context, limit int, cursor string) (*ProfilePage, error) {
	profiles, next, err := s.profiles.ListProfiles(ctx, limit, cursor)
	if err != nil {
		return nil, fmt.Errorf("list profiles: %w", err)
	}
	return &ProfilePage{Profiles: profiles, Cursor: next}, nil
}

// Search matches query against usernames, case-insensitively.
func (s *ProfileService) Search(ctx context.Context, query string, limit int) ([]Profile, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, fmt.Errorf("%w: search query is required", ErrInvalidInput)
	}
	profiles, err := s.profiles.SearchProfiles(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("search profiles: %w", err)
	}
	return profiles, nil
}

// Update applies a partial update to the actor's own profile.
func (s *ProfileService) Update(ctx context.Context, actor Actor, cmd UpdateProfileCommand) (*Profile, error) {
	p, err := s.profiles.GetProfile(ctx, actor.ID)
	if err != nil {
		return nil, err
	}

	if cmd.Bio != nil {
		if utf8.RuneCountInString(*cmd.Bio) > maxBioLength {
			return nil, fmt.Errorf("%w: bio exceeds %d characters", ErrInvalidInput, maxBioLength)
		}
		p.Bio = *cmd.Bio
	}
	if cmd.AvatarURL != nil {
		p.AvatarURL = *cmd.AvatarURL
	}
	if cmd.WebsiteURL != nil {
		if *cmd.WebsiteURL != "" && !isWebURL(*cmd.WebsiteURL) {
			return nil, fmt.Errorf("%w: website must be an absolute http(s) URL", ErrInvalidInput)
		}
		p.WebsiteURL = *cmd.WebsiteURL
	}

	if err := s.profiles.UpdateProfile(ctx, p); err != nil {
		return nil, fmt.Errorf("update profile: %w", err)
	}
	return p, nil
}

// SendVerification issues a fresh one-time code and mails it to the actor.
func (s *ProfileService) SendVerification(ctx context.Context, actor Actor) error {
	p, err := s.profiles.GetProfile(ctx, actor.ID)
	if err != nil {
		return err
	}
	if p.Email == "" {
		return fmt.Errorf("%w: profile has no email address", ErrInvalidInput)
	}

	code, err := verificationCode()
	if err != nil {
		return fmt.Errorf("generate verification code: %w", err)
	}
	p.VerificationCode = code
	if err := s.profiles.UpdateProfile(ctx, p); err != nil {
		return fmt.Errorf("store verification code: %w", err)
	}
	if err := s.mailer.SendVerificationCode(ctx, p, code); err != nil {
		return fmt.Errorf("send verification code: %w", err)
	}
	return nil
}

// VerifyEmail marks the actor's email verified when code matches the outstanding code.
func (s *ProfileService) VerifyEmail(ctx context.Context, actor Actor, code string) (*Profile, error) {
	p, err := s.profiles.GetProfile(ctx, actor.ID)
	if err != nil {
		return nil, err
	}
	if p.VerificationCode == "" || p.VerificationCode != strings.TrimSpace(code) {
		return nil, fmt.Errorf("%w: verification code does not match", ErrInvalidInput)
	}
	p.EmailVerified = true
	p.VerificationCode = ""
	if err := s.profiles.UpdateProfile(ctx, p); err != nil {
		return nil, fmt.Errorf("update profile: %w", err)
	}
	s.logger.Info("email verified", "profile_id", p.ID)
	return p, nil
}

func isWebURL(raw string) bool {
	u, err := url.Parse(raw)
	if err != nil {
		return false
	}
	return (u.Scheme == "http" || u.Scheme == "https") && u.Host != ""
}

func verificationCode() (string, error) {
	max := big.NewInt(1_000_000)
	n, err := rand.Int(rand.Reader, max)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%0*d", verificationDigits, n.Int64()), nil
}
