package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"yt-dashboard/domain/dto"
	"yt-dashboard/domain/model"
	"yt-dashboard/domain/repository"
	"yt-dashboard/infrastructure/logger"
	"yt-dashboard/infrastructure/metrics"
	"yt-dashboard/infrastructure/utils"
)

// DefaultPageBudget bounds the pager: the upstream never reports an exact page count
const DefaultPageBudget = 10

// errSuperseded aborts a store update whose fetch was overtaken by a newer one
var errSuperseded = errors.New("fetch superseded by a newer request")

// ISessionUseCase drives token based pagination for one dashboard session
type ISessionUseCase interface {
	Create(ctx context.Context) (*model.SearchSession, error)
	Get(ctx context.Context, id string) (*model.SearchSession, error)
	Search(ctx context.Context, id, keyword string) (*model.SearchSession, error)
	GoToPage(ctx context.Context, id string, page int) (*model.SearchSession, error)
	Retry(ctx context.Context, id string) (*model.SearchSession, error)
	Delete(ctx context.Context, id string) error
}

// SessionUseCase implements ISessionUseCase
type SessionUseCase struct {
	store      repository.ISearchSessionStore
	search     ISearchUseCase
	recorder   metrics.IRecorder
	pageBudget int
	now        func() time.Time
	newID      func() string
}

// NewSessionUseCase creates a new session use case instance. pageBudget <= 0 uses DefaultPageBudget.
func NewSessionUseCase(store repository.ISearchSessionStore, search ISearchUseCase, recorder metrics.IRecorder, pageBudget int) ISessionUseCase {
	if recorder == nil {
		recorder = metrics.Nop{}
	}
	if pageBudget <= 0 {
		pageBudget = DefaultPageBudget
	}
	return &SessionUseCase{
		store:      store,
		search:     search,
		recorder:   recorder,
		pageBudget: pageBudget,
		now:        utils.GetCurrentTime,
		newID:      uuid.NewString,
	}
}

func (u *SessionUseCase) Create(ctx context.Context) (*model.SearchSession, error) {
	session := model.NewSearchSession(u.newID(), u.now())
	if err := u.store.Create(ctx, session); err != nil {
		u.recorder.SessionOperation("create", err)
		return nil, fmt.Errorf("failed to create search session: %w", err)
	}
	u.recorder.SessionOperation("create", nil)
	return session, nil
}

func (u *SessionUseCase) Get(ctx context.Context, id string) (*model.SearchSession, error) {
	session, err := u.store.Get(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get search session: %w", err)
	}
	return session, nil
}

func (u *SessionUseCase) Delete(ctx context.Context, id string) error {
	err := u.store.Delete(ctx, id)
	u.recorder.SessionOperation("delete", err)
	if err != nil {
		return fmt.Errorf("failed to delete search session: %w", err)
	}
	return nil
}

// Search switches the session to keyword and loads its first page.
// A new keyword discards the token cache, page position and videos.
func (u *SessionUseCase) Search(ctx context.Context, id, keyword string) (*model.SearchSession, error) {
	keyword = strings.TrimSpace(keyword)
	if keyword == "" {
		return nil, u.malformed("search", id, fmt.Errorf("%w: keyword is required", model.ErrMalformedInput))
	}
	return u.fetch(ctx, "search", id, func(s *model.SearchSession) (int, error) {
		if s.Keyword != keyword {
			s.Reset(keyword)
		}
		return 1, nil
	})
}

// GoToPage loads page n. Page 1 is always reachable; any other page needs
// its token from an earlier fetch and must lie within the page budget.
func (u *SessionUseCase) GoToPage(ctx context.Context, id string, page int) (*model.SearchSession, error) {
	return u.fetch(ctx, "goto_page", id, func(s *model.SearchSession) (int, error) {
		if err := checkPage(s, page); err != nil {
			return 0, err
		}
		return page, nil
	})
}

// Retry re-issues the last attempted page under the same preconditions
func (u *SessionUseCase) Retry(ctx context.Context, id string) (*model.SearchSession, error) {
	return u.fetch(ctx, "retry", id, func(s *model.SearchSession) (int, error) {
		if s.LastAttempt == 0 {
			return 0, fmt.Errorf("%w: nothing to retry", model.ErrMalformedInput)
		}
		if err := checkPage(s, s.LastAttempt); err != nil {
			return 0, err
		}
		return s.LastAttempt, nil
	})
}

func checkPage(s *model.SearchSession, page int) error {
	if s.Keyword == "" {
		return fmt.Errorf("%w: session has no keyword", model.ErrMalformedInput)
	}
	if page < 1 {
		return fmt.Errorf("%w: page %d out of range", model.ErrMalformedInput, page)
	}
	if page == 1 {
		return nil
	}
	if page > s.TotalPages {
		return fmt.Errorf("%w: page %d beyond %d known pages", model.ErrMalformedInput, page, s.TotalPages)
	}
	if _, ok := s.TokenFor(page); !ok {
		return fmt.Errorf("%w: no token known for page %d", model.ErrMalformedInput, page)
	}
	return nil
}

// fetch runs one page load in three steps: take a generation ticket under the
// store update, call upstream without holding anything, then apply the result
// only if the ticket is still current.
func (u *SessionUseCase) fetch(ctx context.Context, op, id string, prepare func(s *model.SearchSession) (int, error)) (*model.SearchSession, error) {
	var ticket model.PendingFetch
	_, err := u.store.Update(ctx, id, func(s *model.SearchSession) error {
		page, err := prepare(s)
		if err != nil {
			return err
		}
		token, _ := s.TokenFor(page)
		s.Generation++
		ticket = model.PendingFetch{Generation: s.Generation, Keyword: s.Keyword, Page: page, Token: token}
		s.Pending = &ticket
		s.LastAttempt = page
		s.UpdatedAt = u.now()
		return nil
	})
	if err != nil {
		if errors.Is(err, model.ErrMalformedInput) {
			return nil, u.malformed(op, id, err)
		}
		u.recorder.SessionOperation(op, err)
		return nil, fmt.Errorf("failed to prepare page fetch: %w", err)
	}

	result, fetchErr := u.search.Search(ctx, ticket.Keyword, ticket.Token)

	session, err := u.store.Update(ctx, id, func(s *model.SearchSession) error {
		if s.Generation != ticket.Generation || s.Keyword != ticket.Keyword {
			return errSuperseded
		}
		s.Pending = nil
		s.UpdatedAt = u.now()
		if fetchErr != nil {
			s.LastError = fetchErr.Error()
			return nil
		}
		u.apply(s, ticket.Page, result)
		return nil
	})
	if errors.Is(err, errSuperseded) {
		u.recorder.StaleResponse()
		logger.GetLogger().
			WithField("session", id).
			WithField("page", ticket.Page).
			WithField("keyword", ticket.Keyword).
			Info("Discarding superseded page result")
		u.recorder.SessionOperation(op, nil)
		return u.Get(ctx, id)
	}
	if err != nil {
		u.recorder.SessionOperation(op, err)
		return nil, fmt.Errorf("failed to store page result: %w", err)
	}

	u.recorder.SessionOperation(op, fetchErr)
	if fetchErr != nil {
		logger.GetLogger().
			WithField("error", fetchErr).
			WithField("session", id).
			WithField("page", ticket.Page).
			Warn("Page fetch failed, keeping previous page")
		return session, fmt.Errorf("failed to load page %d: %w", ticket.Page, fetchErr)
	}
	return session, nil
}

func (u *SessionUseCase) apply(s *model.SearchSession, page int, result *dto.SearchResult) {
	s.CurrentPage = page
	s.Videos = result.Videos
	s.NextPageToken = result.NextPageToken
	s.PrevPageToken = result.PrevPageToken
	s.StatsUnavailable = result.StatsUnavailable
	s.LastError = ""

	if s.PageTokens == nil {
		s.PageTokens = map[int]string{}
	}
	if result.NextPageToken != "" {
		s.PageTokens[page+1] = result.NextPageToken
	}
	if page-1 > 1 && result.PrevPageToken != "" {
		s.PageTokens[page-1] = result.PrevPageToken
	}

	if len(result.Videos) == 0 && page == 1 {
		s.TotalPages = 0
		return
	}
	if s.TotalPages == 0 {
		s.TotalPages = u.pageBudget
	}
	// an exhausted result set is authoritative over the budget
	if result.NextPageToken == "" {
		s.TotalPages = page
	}
}

func (u *SessionUseCase) malformed(op, id string, err error) error {
	logger.GetLogger().
		WithField("error", err).
		WithField("session", id).
		WithField("operation", op).
		Error("Rejected page request")
	u.recorder.SessionOperation(op, err)
	return err
}
