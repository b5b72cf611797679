package hosts

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"regexp"
	"strings"
	"time"

	"github.com/Domenick1991/guesthouse/internal/auth"
	"github.com/Domenick1991/guesthouse/internal/domain"
	"github.com/Domenick1991/guesthouse/internal/repository"
	"github.com/google/uuid"
)

var (
	ErrHostNotFound       = errors.New("host not found")
	ErrInvalidPasscode    = errors.New("passcode must be exactly 4 digits")
	ErrPasscodeTaken      = errors.New("passcode is already used by another host")
	ErrInvalidCredentials = errors.New("wrong passcode")
	ErrNameRequired       = errors.New("name is required")
)

var passcodePattern = regexp.MustCompile(`^[0-9]{4}$`)

type HostUseCase interface {
	Register(ctx context.Context, input RegisterInput) (*domain.Host, error)
	Login(ctx context.Context, passcode string) (*Session, error)
	Get(ctx context.Context, id string) (*domain.Host, error)
	Update(ctx context.Context, id string, input ProfileInput) (*domain.Host, error)
	GuestFormURL(hostID string) (string, error)
}

type TokenIssuer interface {
	Issue(hostID string) (string, time.Time, error)
}

type RegisterInput struct {
	Name         string `json:"name"`
	BusinessName string `json:"business_name"`
	Passcode     string `json:"passcode"`
}

// ProfileInput holds the fields a host may edit. The passcode is not one of them.
type ProfileInput struct {
	Name         string `json:"name"`
	BusinessName string `json:"business_name"`
}

type Session struct {
	Host      *domain.Host
	Token     string
	ExpiresAt time.Time
}

type HostService struct {
	repo      repository.HostRepository
	issuer    TokenIssuer
	publicURL string
}

func NewHostService(repo repository.HostRepository, issuer TokenIssuer, publicURL string) *HostService {
	return &HostService{repo: repo, issuer: issuer, publicURL: publicURL}
}

// Register creates a host. Passcodes identify hosts at login, so no two
// hosts may share one.
func (s *HostService) Register(ctx context.Context, input RegisterInput) (*domain.Host, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, ErrNameRequired
	}
	if !passcodePattern.MatchString(input.Passcode) {
		return nil, ErrInvalidPasscode
	}

	if existing, err := s.findByPasscode(ctx, input.Passcode); err != nil {
		return nil, err
	} else if existing != nil {
		return nil, ErrPasscodeTaken
	}

	hash, err := auth.HashPasscode(input.Passcode)
	if err != nil {
		return nil, fmt.Errorf("hash passcode: %w", err)
	}
	host := &domain.Host{
		ID:           uuid.NewString(),
		Name:         name,
		BusinessName: strings.TrimSpace(input.BusinessName),
		PasscodeHash: hash,
	}
	if err := s.repo.Create(ctx, host); err != nil {
		return nil, err
	}
	return host, nil
}

func (s *HostService) Login(ctx context.Context, passcode string) (*Session, error) {
	if !passcodePattern.MatchString(passcode) {
		return nil, ErrInvalidCredentials
	}
	host, err := s.findByPasscode(ctx, passcode)
	if err != nil {
		return nil, err
	}
	if host == nil {
		return nil, ErrInvalidCredentials
	}

	token, expires, err := s.issuer.Issue(host.ID)
	if err != nil {
		return nil, err
	}
	return &Session{Host: host, Token: token, ExpiresAt: expires}, nil
}

func (s *HostService) Get(ctx context.Context, id string) (*domain.Host, error) {
	host, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrHostNotFound
		}
		return nil, err
	}
	return host, nil
}

func (s *HostService) Update(ctx context.Context, id string, input ProfileInput) (*domain.Host, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, ErrNameRequired
	}

	host := &domain.Host{
		ID:           id,
		Name:         name,
		BusinessName: strings.TrimSpace(input.BusinessName),
	}
	if err := s.repo.Update(ctx, host); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrHostNotFound
		}
		return nil, err
	}
	return host, nil
}

// GuestFormURL is the registration link a host shares with guests.
func (s *HostService) GuestFormURL(hostID string) (string, error) {
	u, err := url.Parse(s.publicURL)
	if err != nil {
		return "", fmt.Errorf("parse public url: %w", err)
	}
	q := u.Query()
	q.Set("landlord", hostID)
	u.RawQuery = q.Encode()
	return u.String(), nil
}

// findByPasscode compares against every stored hash; host counts are small.
func (s *HostService) findByPasscode(ctx context.Context, passcode string) (*domain.Host, error) {
	hosts, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	for i := range hosts {
		if auth.CheckPasscode(hosts[i].PasscodeHash, passcode) {
			return &hosts[i], nil
		}
	}
	return nil, nil
}

var _ HostUseCase = (*HostService)(nil)
