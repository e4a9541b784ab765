package service

import (
	"context"
	"crypto/subtle"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"path"
	"strings"
	"time"

	"github.com/gabriel-vasile/mimetype"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/mentorlink/api/internal/auth"
	"github.com/mentorlink/api/internal/cache"
	"github.com/mentorlink/api/internal/dto"
	"github.com/mentorlink/api/internal/entity"
	"github.com/mentorlink/api/internal/mail"
	"github.com/mentorlink/api/internal/repository"
	"github.com/mentorlink/api/internal/storage"
)

const dateLayout = "2006-01-02"

var allowedImageTypes = []string{"image/jpeg", "image/png", "image/webp"}

// MentorOptions configures links and limits used by MentorService.
type MentorOptions struct {
	// FrontendURL is the base of the links sent by email.
	FrontendURL string
	// PublicURL is the base of the profile image URLs.
	PublicURL    string
	MaxImageSize int64
}

// Upload is a file received from a multipart request.
type Upload struct {
	Name        string
	ContentType string
	Data        []byte
}

// MentorService implements mentor registration, profile and account recovery flows.
type MentorService struct {
	repo    repository.MentorsRepository
	mailer  mail.Sender
	store   storage.ObjectStore
	cache   cache.Cache
	log     zerolog.Logger
	opts    MentorOptions
	newCode func() string
}

// NewMentorService wires a MentorService. A nil cache disables caching.
func NewMentorService(repo repository.MentorsRepository, mailer mail.Sender, store storage.ObjectStore, c cache.Cache, log zerolog.Logger, opts MentorOptions) *MentorService {
	if c == nil {
		c = cache.Noop{}
	}
	if opts.MaxImageSize <= 0 {
		opts.MaxImageSize = 5 << 20
	}
	opts.FrontendURL = strings.TrimRight(opts.FrontendURL, "/")
	opts.PublicURL = strings.TrimRight(opts.PublicURL, "/")
	return &MentorService{
		repo:    repo,
		mailer:  mailer,
		store:   store,
		cache:   c,
		log:     log,
		opts:    opts,
		newCode: uuid.NewString,
	}
}

func toMentorResponse(m *entity.Mentor) dto.MentorResponse {
	specialties := m.Specialties
	if specialties == nil {
		specialties = []string{}
	}
	return dto.MentorResponse{
		ID:              m.ID.String(),
		FullName:        m.FullName,
		Email:           m.Email,
		DateOfBirth:     m.DateOfBirth.Format(dateLayout),
		Specialties:     specialties,
		Gender:          m.Gender,
		AboutMe:         m.AboutMe,
		ProfileImageURL: m.ProfileImageURL,
		EmailConfirmed:  m.EmailConfirmed,
		Active:          m.Active,
		CreatedAt:       m.CreatedAt,
		UpdatedAt:       m.UpdatedAt,
	}
}

func toMentorResponses(mentors []entity.Mentor) []dto.MentorResponse {
	responses := make([]dto.MentorResponse, 0, len(mentors))
	for i := range mentors {
		responses = append(responses, toMentorResponse(&mentors[i]))
	}
	return responses
}

func cleanSpecialties(values []string) []string {
	if values == nil {
		return nil
	}
	seen := make(map[string]struct{}, len(values))
	cleaned := make([]string, 0, len(values))
	for _, v := range values {
		v = strings.TrimSpace(v)
		if v == "" {
			continue
		}
		if _, dup := seen[strings.ToLower(v)]; dup {
			continue
		}
		seen[strings.ToLower(v)] = struct{}{}
		cleaned = append(cleaned, v)
	}
	return cleaned
}

func (s *MentorService) link(route, email, code string) string {
	q := url.Values{}
	q.Set("email", email)
	q.Set("code", code)
	return s.opts.FrontendURL + route + "?" + q.Encode()
}

func (s *MentorService) forget(ctx context.Context, id uuid.UUID) {
	if err := s.cache.Delete(ctx, id.String()); err != nil {
		s.log.Warn().Err(err).Str("mentor_id", id.String()).Msg("failed to invalidate mentor cache")
	}
}

// CreateMentor registers a mentor and emails the activation link.
func (s *MentorService) CreateMentor(ctx context.Context, req dto.CreateMentorRequest) (*dto.MentorResponse, error) {
	email, err := normalizeEmail(req.Email)
	if err != nil {
		return nil, fail(http.StatusBadRequest, "invalid email")
	}
	if req.Password != req.PasswordConfirmation {
		return nil, fail(http.StatusBadRequest, "passwords do not match")
	}
	dob, err := time.Parse(dateLayout, req.DateOfBirth)
	if err != nil {
		return nil, fail(http.StatusBadRequest, "invalid dateOfBirth")
	}

	if _, err := s.repo.FindByEmail(ctx, email); err == nil {
		return nil, fail(http.StatusConflict, "email already registered")
	} else if !errors.Is(err, repository.ErrMentorNotFound) {
		return nil, err
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	specialties := cleanSpecialties(req.Specialties)
	if specialties == nil {
		specialties = []string{}
	}
	mentor, err := s.repo.Create(ctx, &entity.Mentor{
		FullName:     strings.TrimSpace(req.FullName),
		Email:        email,
		PasswordHash: string(hashed),
		DateOfBirth:  dob,
		Specialties:  specialties,
		Gender:       strings.TrimSpace(req.Gender),
		AboutMe:      strings.TrimSpace(req.AboutMe),
		Code:         s.newCode(),
	})
	if err != nil {
		if errors.Is(err, repository.ErrMentorEmailDuplicate) {
			return nil, fail(http.StatusConflict, "email already registered")
		}
		return nil, err
	}

	msg, err := mail.Compose(mentor.Email, "Confirme seu email", mail.TemplateActivation, mail.Data{
		Name: mentor.FullName,
		Link: s.link("/mentor/active", mentor.Email, mentor.Code),
		Code: mentor.Code,
	})
	if err == nil {
		err = s.mailer.Send(ctx, msg)
	}
	if err != nil {
		s.log.Error().Err(err).Str("mentor_id", mentor.ID.String()).Msg("failed to send activation email")
	}

	resp := toMentorResponse(mentor)
	return &resp, nil
}

// GetAllMentors lists active mentors.
func (s *MentorService) GetAllMentors(ctx context.Context) ([]dto.MentorResponse, error) {
	mentors, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	return toMentorResponses(mentors), nil
}

// FindMentorByNameAndRole searches active mentors. The specialty filter must be one of the
// mentor's specialties and the specialties filter must overlap them.
func (s *MentorService) FindMentorByNameAndRole(ctx context.Context, req dto.SearchMentorRequest, specialty string) ([]dto.MentorResponse, error) {
	mentors, err := s.repo.Search(ctx, repository.MentorSearch{
		FullName:    req.FullName,
		Specialty:   specialty,
		Specialties: cleanSpecialties(req.Specialties),
	})
	if err != nil {
		return nil, err
	}
	return toMentorResponses(mentors), nil
}

// FindMentorByID returns the mentor with status 200, or status 404 when the id is unknown or malformed.
func (s *MentorService) FindMentorByID(ctx context.Context, id string) (Result, error) {
	notFound := Result{Status: http.StatusNotFound, Data: dto.MessageResponse{Message: "mentor not found"}}

	mentorID, err := uuid.Parse(id)
	if err != nil {
		return notFound, nil
	}

	var cached dto.MentorResponse
	found, err := s.cache.Get(ctx, mentorID.String(), &cached)
	if err != nil {
		s.log.Warn().Err(err).Str("mentor_id", id).Msg("mentor cache read failed")
	}
	if found {
		return Result{Status: http.StatusOK, Data: cached}, nil
	}

	mentor, err := s.repo.FindByID(ctx, mentorID)
	if err != nil {
		if errors.Is(err, repository.ErrMentorNotFound) {
			return notFound, nil
		}
		return Result{}, err
	}

	resp := toMentorResponse(mentor)
	if err := s.cache.Set(ctx, mentorID.String(), resp); err != nil {
		s.log.Warn().Err(err).Str("mentor_id", id).Msg("mentor cache write failed")
	}
	return Result{Status: http.StatusOK, Data: resp}, nil
}

// UpdateMentor applies a partial profile update to the mentor identified by id.
func (s *MentorService) UpdateMentor(ctx context.Context, id string, req dto.UpdateMentorRequest) (*dto.MentorResponse, error) {
	mentorID, err := uuid.Parse(id)
	if err != nil {
		return nil, errMentorNotFound
	}

	var patch repository.MentorPatch
	if req.FullName != nil {
		trimmed := strings.TrimSpace(*req.FullName)
		if trimmed == "" {
			return nil, fail(http.StatusBadRequest, "fullName cannot be empty")
		}
		patch.FullName = &trimmed
	}
	if req.DateOfBirth != nil {
		dob, err := time.Parse(dateLayout, *req.DateOfBirth)
		if err != nil {
			return nil, fail(http.StatusBadRequest, "invalid dateOfBirth")
		}
		patch.DateOfBirth = &dob
	}
	if req.Specialties != nil {
		patch.Specialties = cleanSpecialties(req.Specialties)
	}
	if req.Gender != nil {
		trimmed := strings.TrimSpace(*req.Gender)
		patch.Gender = &trimmed
	}
	if req.AboutMe != nil {
		trimmed := strings.TrimSpace(*req.AboutMe)
		patch.AboutMe = &trimmed
	}

	mentor, err := s.repo.Update(ctx, mentorID, patch)
	if err != nil {
		if errors.Is(err, repository.ErrMentorNotFound) {
			return nil, errMentorNotFound
		}
		return nil, err
	}
	s.forget(ctx, mentorID)

	resp := toMentorResponse(mentor)
	return &resp, nil
}

// UploadProfileImage stores a jpeg, png or webp image as the logged mentor's profile picture.
func (s *MentorService) UploadProfileImage(ctx context.Context, principal auth.Principal, file Upload) (*dto.MentorResponse, error) {
	mentorID, err := uuid.Parse(principal.ID)
	if err != nil {
		return nil, errMentorNotFound
	}
	if len(file.Data) == 0 {
		return nil, fail(http.StatusBadRequest, "file is empty")
	}
	if int64(len(file.Data)) > s.opts.MaxImageSize {
		return nil, fail(http.StatusRequestEntityTooLarge, fmt.Sprintf("file exceeds %d bytes", s.opts.MaxImageSize))
	}

	detected := mimetype.Detect(file.Data)
	if !mimetype.EqualsAny(detected.String(), allowedImageTypes...) {
		return nil, fail(http.StatusUnsupportedMediaType, "only jpeg, png and webp images are accepted")
	}

	current, err := s.repo.FindByID(ctx, mentorID)
	if err != nil {
		if errors.Is(err, repository.ErrMentorNotFound) {
			return nil, errMentorNotFound
		}
		return nil, err
	}

	name := mentorID.String() + detected.Extension()
	if err := s.store.Put(ctx, name, file.Data, detected.String()); err != nil {
		return nil, fmt.Errorf("store profile image: %w", err)
	}

	mentor, err := s.repo.SetProfileImage(ctx, mentorID, s.opts.PublicURL+"/files/"+name)
	if err != nil {
		if errors.Is(err, repository.ErrMentorNotFound) {
			return nil, errMentorNotFound
		}
		return nil, err
	}

	if current.ProfileImageURL != "" {
		if previous := path.Base(current.ProfileImageURL); previous != name {
			if err := s.store.Delete(ctx, previous); err != nil {
				s.log.Warn().Err(err).Str("object", previous).Msg("failed to remove previous profile image")
			}
		}
	}
	s.forget(ctx, mentorID)

	resp := toMentorResponse(mentor)
	return &resp, nil
}

// ActiveMentor confirms a mentor email. The status is 404 for an unknown email, 409 when the email
// is already confirmed, 400 for a wrong code and 200 once confirmed.
func (s *MentorService) ActiveMentor(ctx context.Context, req dto.ActiveMentorRequest) (Result, error) {
	email, err := normalizeEmail(req.Email)
	if err != nil {
		return Result{Status: http.StatusNotFound, Data: dto.MessageResponse{Message: "mentor not found"}}, nil
	}

	mentor, err := s.repo.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrMentorNotFound) {
			return Result{Status: http.StatusNotFound, Data: dto.MessageResponse{Message: "mentor not found"}}, nil
		}
		return Result{}, err
	}
	if mentor.EmailConfirmed {
		return Result{Status: http.StatusConflict, Data: dto.MessageResponse{Message: "email already confirmed"}}, nil
	}
	if !codeMatches(mentor.Code, req.Code) {
		return Result{Status: http.StatusBadRequest, Data: dto.MessageResponse{Message: "invalid code"}}, nil
	}

	if _, err := s.repo.ConfirmEmail(ctx, mentor.ID); err != nil {
		return Result{}, err
	}
	s.forget(ctx, mentor.ID)

	return Result{Status: http.StatusOK, Data: dto.MessageResponse{Message: "email confirmed"}}, nil
}

// DesactivateLoggedMentor marks the mentor as inactive.
func (s *MentorService) DesactivateLoggedMentor(ctx context.Context, id string) (*dto.MentorResponse, error) {
	mentorID, err := uuid.Parse(id)
	if err != nil {
		return nil, errMentorNotFound
	}
	mentor, err := s.repo.Deactivate(ctx, mentorID)
	if err != nil {
		if errors.Is(err, repository.ErrMentorNotFound) {
			return nil, errMentorNotFound
		}
		return nil, err
	}
	s.forget(ctx, mentorID)

	resp := toMentorResponse(mentor)
	return &resp, nil
}

// SendRestorationEmail issues a fresh code and emails the password redefinition link.
func (s *MentorService) SendRestorationEmail(ctx context.Context, rawEmail string) (*dto.MessageResponse, error) {
	email, err := normalizeEmail(rawEmail)
	if err != nil {
		return nil, errMentorNotFound
	}
	mentor, err := s.repo.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrMentorNotFound) {
			return nil, errMentorNotFound
		}
		return nil, err
	}

	code := s.newCode()
	if err := s.repo.SetCode(ctx, mentor.ID, code); err != nil {
		return nil, err
	}

	msg, err := mail.Compose(mentor.Email, "Redefinição de senha", mail.TemplateRestoration, mail.Data{
		Name: mentor.FullName,
		Link: s.link("/mentor/restoreAccount/redefinePass", mentor.Email, code),
		Code: code,
	})
	if err != nil {
		return nil, err
	}
	if err := s.mailer.Send(ctx, msg); err != nil {
		return nil, fmt.Errorf("send restoration email: %w", err)
	}

	return &dto.MessageResponse{Message: "restoration email sent"}, nil
}

// RedefineMentorPassword replaces the password when the emailed code matches.
func (s *MentorService) RedefineMentorPassword(ctx context.Context, query dto.ActiveMentorRequest, body dto.MentorPassConfirmationRequest) (*dto.MessageResponse, error) {
	if body.Password != body.ConfirmPassword {
		return nil, fail(http.StatusBadRequest, "passwords do not match")
	}
	email, err := normalizeEmail(query.Email)
	if err != nil {
		return nil, errMentorNotFound
	}
	mentor, err := s.repo.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrMentorNotFound) {
			return nil, errMentorNotFound
		}
		return nil, err
	}
	if !codeMatches(mentor.Code, query.Code) {
		return nil, errInvalidCode
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(body.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}
	if err := s.repo.UpdatePassword(ctx, mentor.ID, string(hashed)); err != nil {
		if errors.Is(err, repository.ErrMentorNotFound) {
			return nil, errMentorNotFound
		}
		return nil, err
	}
	s.forget(ctx, mentor.ID)

	return &dto.MessageResponse{Message: "password updated"}, nil
}

// codeMatches compares codes in constant time. An empty stored code never matches.
func codeMatches(stored, given string) bool {
	if stored == "" {
		return false
	}
	return subtle.ConstantTimeCompare([]byte(stored), []byte(strings.TrimSpace(given))) == 1
}
