package usecase

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/panjf2000/ants/v2"

	"github.com/acitysports/sports-backend/internal/platform/logging"
)

// resyncKindOrder is the dependency order for a full replay: parents before
// the documents that reference them.
var resyncKindOrder = []string{
	DocumentTypeSeasons,
	DocumentTypeTeams,
	DocumentTypePlayers,
	DocumentTypeFixtures,
}

// DocumentLister reads every CMS document of one type, used for full
// resynchronization when webhook deliveries were lost.
type DocumentLister interface {
	ListDocuments(ctx context.Context, docType string) ([]WebhookDocument, error)
}

type ResyncInput struct {
	// Kinds narrows the replay to specific document types; empty means all.
	Kinds      []string
	MaxWorkers int
}

type ResyncResult struct {
	KindCount     int                `json:"kind_count"`
	DocumentCount int                `json:"document_count"`
	SuccessCount  int                `json:"success_count"`
	FailedCount   int                `json:"failed_count"`
	WorkerCount   int                `json:"worker_count"`
	Kinds         []ResyncKindResult `json:"kinds"`
}

type ResyncKindResult struct {
	Kind          string          `json:"kind"`
	DocumentCount int             `json:"document_count"`
	SuccessCount  int             `json:"success_count"`
	FailedCount   int             `json:"failed_count"`
	DurationMs    int64           `json:"duration_ms"`
	Failures      []ResyncFailure `json:"failures,omitempty"`
}

type ResyncFailure struct {
	DocumentID string `json:"document_id"`
	Message    string `json:"message"`
}

const resyncDefaultMaxWorkers = 8

type ResyncService struct {
	lister     DocumentLister
	dispatcher *WebhookDispatcher
	logger     *logging.Logger
	maxWorkers int
}

func NewResyncService(lister DocumentLister, dispatcher *WebhookDispatcher, maxWorkers int, logger *logging.Logger) *ResyncService {
	if logger == nil {
		logger = logging.Default()
	}
	if maxWorkers < 1 {
		maxWorkers = resyncDefaultMaxWorkers
	}

	return &ResyncService{
		lister:     lister,
		dispatcher: dispatcher,
		logger:     logger,
		maxWorkers: maxWorkers,
	}
}

// Resync replays the CMS's current documents through the webhook upsert
// path. Kinds run sequentially in dependency order; documents within a kind
// run concurrently, which is safe because same-kind documents never
// reference each other.
func (s *ResyncService) Resync(ctx context.Context, input ResyncInput) (ResyncResult, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.ResyncService.Resync")
	defer span.End()

	if s.lister == nil {
		return ResyncResult{}, fmt.Errorf("%w: cms client is not configured", ErrDependencyUnavailable)
	}

	kinds, err := normalizeResyncKinds(input.Kinds)
	if err != nil {
		return ResyncResult{}, err
	}

	workerCount := input.MaxWorkers
	if workerCount < 1 || workerCount > s.maxWorkers {
		workerCount = s.maxWorkers
	}

	pool, err := ants.NewPool(workerCount)
	if err != nil {
		return ResyncResult{}, fmt.Errorf("create worker pool: %w", err)
	}
	defer pool.Release()

	result := ResyncResult{
		KindCount:   len(kinds),
		WorkerCount: workerCount,
		Kinds:       make([]ResyncKindResult, 0, len(kinds)),
	}

	for _, kind := range kinds {
		kindResult, err := s.resyncKind(ctx, pool, kind)
		if err != nil {
			return ResyncResult{}, err
		}

		result.DocumentCount += kindResult.DocumentCount
		result.SuccessCount += kindResult.SuccessCount
		result.FailedCount += kindResult.FailedCount
		result.Kinds = append(result.Kinds, kindResult)
	}

	s.logger.InfoContext(ctx, "cms resync finished",
		"kinds", len(kinds),
		"documents", result.DocumentCount,
		"failed", result.FailedCount,
	)

	return result, nil
}

func (s *ResyncService) resyncKind(ctx context.Context, pool *ants.Pool, kind string) (ResyncKindResult, error) {
	start := time.Now()

	docs, err := s.lister.ListDocuments(ctx, kind)
	if err != nil {
		return ResyncKindResult{}, fmt.Errorf("%w: list %s documents from cms: %v", ErrDependencyUnavailable, kind, err)
	}

	kindResult := ResyncKindResult{
		Kind:          kind,
		DocumentCount: len(docs),
	}

	var successCount atomic.Int32
	var failures sync.Map

	var workers sync.WaitGroup
	for _, doc := range docs {
		doc := doc
		workers.Add(1)
		if err := pool.Submit(func() {
			defer workers.Done()

			if err := s.dispatcher.DispatchUpsert(ctx, doc); err != nil {
				failures.Store(doc.ID, err.Error())
				return
			}
			successCount.Add(1)
		}); err != nil {
			workers.Done()
			workers.Wait()
			return ResyncKindResult{}, fmt.Errorf("submit resync task to worker pool: %w", err)
		}
	}
	workers.Wait()

	failures.Range(func(key, value any) bool {
		kindResult.Failures = append(kindResult.Failures, ResyncFailure{
			DocumentID: key.(string),
			Message:    value.(string),
		})
		return true
	})
	sort.Slice(kindResult.Failures, func(i, j int) bool {
		return kindResult.Failures[i].DocumentID < kindResult.Failures[j].DocumentID
	})

	kindResult.SuccessCount = int(successCount.Load())
	kindResult.FailedCount = len(kindResult.Failures)
	kindResult.DurationMs = time.Since(start).Milliseconds()

	return kindResult, nil
}

func normalizeResyncKinds(raw []string) ([]string, error) {
	if len(raw) == 0 {
		return append([]string(nil), resyncKindOrder...), nil
	}

	requested := make(map[string]struct{}, len(raw))
	for _, kind := range raw {
		kind = strings.ToLower(strings.TrimSpace(kind))
		if kind == "" {
			continue
		}

		known := false
		for _, candidate := range resyncKindOrder {
			if candidate == kind {
				known = true
				break
			}
		}
		if !known {
			return nil, fmt.Errorf("%w: unknown resync kind %q", ErrInvalidInput, kind)
		}
		requested[kind] = struct{}{}
	}
	if len(requested) == 0 {
		return nil, fmt.Errorf("%w: no resync kinds requested", ErrInvalidInput)
	}

	kinds := make([]string, 0, len(requested))
	for _, kind := range resyncKindOrder {
		if _, ok := requested[kind]; ok {
			kinds = append(kinds, kind)
		}
	}

	return kinds, nil
}
