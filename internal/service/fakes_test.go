package service

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"tribe-chatbot-be/internal/model"
	"tribe-chatbot-be/internal/repository/specification"
	"tribe-chatbot-be/pkg/llm"
	"tribe-chatbot-be/pkg/vectorstore"

	"github.com/google/uuid"
)

// In-memory stand-ins for the gorm repositories and external backends. They
// interpret just the specifications the services actually use. Every fake is
// mutex-guarded: the consumer tests share them between the bus goroutine and
// the test goroutine.

type fakeChatbotRepo struct {
	mu    sync.Mutex
	items map[uuid.UUID]*model.Chatbot
}

func newFakeChatbotRepo() *fakeChatbotRepo {
	return &fakeChatbotRepo{items: make(map[uuid.UUID]*model.Chatbot)}
}

func (r *fakeChatbotRepo) Create(_ context.Context, chatbot *model.Chatbot) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if chatbot.Id == uuid.Nil {
		chatbot.Id = uuid.New()
	}
	chatbot.CreatedAt = time.Now()
	copied := *chatbot
	r.items[chatbot.Id] = &copied
	return nil
}

func (r *fakeChatbotRepo) Update(_ context.Context, chatbot *model.Chatbot) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	copied := *chatbot
	r.items[chatbot.Id] = &copied
	return nil
}

func (r *fakeChatbotRepo) Delete(_ context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.items, id)
	return nil
}

func (r *fakeChatbotRepo) FindOne(_ context.Context, specs ...specification.Specification) (*model.Chatbot, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, sp := range specs {
		if byID, ok := sp.(specification.ByID); ok {
			if chatbot, found := r.items[byID.ID]; found {
				copied := *chatbot
				return &copied, nil
			}
			return nil, nil
		}
	}
	return nil, nil
}

func (r *fakeChatbotRepo) FindAll(_ context.Context, specs ...specification.Specification) ([]*model.Chatbot, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	result := make([]*model.Chatbot, 0, len(r.items))
	for _, chatbot := range r.items {
		copied := *chatbot
		result = append(result, &copied)
	}
	return result, nil
}

func (r *fakeChatbotRepo) count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.items)
}

type fakeCompanyRepo struct {
	mu      sync.Mutex
	byID    map[uuid.UUID]*model.Company
	byEmail map[string]*model.Company
}

func newFakeCompanyRepoImpl() *fakeCompanyRepo {
	return &fakeCompanyRepo{
		byID:    make(map[uuid.UUID]*model.Company),
		byEmail: make(map[string]*model.Company),
	}
}

func (r *fakeCompanyRepo) Create(_ context.Context, company *model.Company) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if company.Id == uuid.Nil {
		company.Id = uuid.New()
	}
	copied := *company
	r.byID[company.Id] = &copied
	r.byEmail[company.Email] = &copied
	return nil
}

func (r *fakeCompanyRepo) Update(_ context.Context, company *model.Company) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	copied := *company
	r.byID[company.Id] = &copied
	r.byEmail[company.Email] = &copied
	return nil
}

func (r *fakeCompanyRepo) Delete(_ context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if company, found := r.byID[id]; found {
		delete(r.byEmail, company.Email)
		delete(r.byID, id)
	}
	return nil
}

func (r *fakeCompanyRepo) FindOne(_ context.Context, specs ...specification.Specification) (*model.Company, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, sp := range specs {
		switch s := sp.(type) {
		case specification.ByID:
			if company, found := r.byID[s.ID]; found {
				copied := *company
				return &copied, nil
			}
			return nil, nil
		case specification.ByEmail:
			if company, found := r.byEmail[s.Email]; found {
				copied := *company
				return &copied, nil
			}
			return nil, nil
		}
	}
	return nil, nil
}

func (r *fakeCompanyRepo) FindAll(_ context.Context, specs ...specification.Specification) ([]*model.Company, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	result := make([]*model.Company, 0, len(r.byID))
	for _, company := range r.byID {
		copied := *company
		result = append(result, &copied)
	}
	return result, nil
}

func (r *fakeCompanyRepo) storedPassword(email string) string {
	r.mu.Lock()
	defer r.mu.Unlock()
	if company, found := r.byEmail[email]; found {
		return company.Password
	}
	return ""
}

type fakeVisitorRepo struct {
	mu       sync.Mutex
	visitors map[string]*model.Visitor
	sessions map[uuid.UUID]*model.VisitorSession
}

func newFakeVisitorRepo() *fakeVisitorRepo {
	return &fakeVisitorRepo{
		visitors: make(map[string]*model.Visitor),
		sessions: make(map[uuid.UUID]*model.VisitorSession),
	}
}

func (r *fakeVisitorRepo) CreateVisitor(_ context.Context, visitor *model.Visitor) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if visitor.Id == uuid.Nil {
		visitor.Id = uuid.New()
	}
	copied := *visitor
	r.visitors[visitor.AnonymousId] = &copied
	return nil
}

func (r *fakeVisitorRepo) FindVisitor(_ context.Context, specs ...specification.Specification) (*model.Visitor, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, sp := range specs {
		if byAnon, ok := sp.(specification.ByAnonymousID); ok {
			if visitor, found := r.visitors[byAnon.AnonymousID]; found {
				copied := *visitor
				return &copied, nil
			}
		}
	}
	return nil, nil
}

func (r *fakeVisitorRepo) CreateSession(_ context.Context, session *model.VisitorSession) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if session.Id == uuid.Nil {
		session.Id = uuid.New()
	}
	copied := *session
	r.sessions[session.Id] = &copied
	return nil
}

func (r *fakeVisitorRepo) FindSession(_ context.Context, specs ...specification.Specification) (*model.VisitorSession, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, sp := range specs {
		if byID, ok := sp.(specification.ByID); ok {
			if session, found := r.sessions[byID.ID]; found {
				copied := *session
				return &copied, nil
			}
		}
	}
	return nil, nil
}

func (r *fakeVisitorRepo) UpdateSession(_ context.Context, session *model.VisitorSession) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	copied := *session
	r.sessions[session.Id] = &copied
	return nil
}

func (r *fakeVisitorRepo) DeleteExpiredSessions(_ context.Context, before time.Time) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var removed int64
	for id, session := range r.sessions {
		if session.ExpiresAt.Before(before) {
			delete(r.sessions, id)
			removed++
		}
	}
	return removed, nil
}

type fakeChatLogRepo struct {
	mu   sync.Mutex
	logs []*model.ChatLog
}

func (r *fakeChatLogRepo) Create(_ context.Context, log *model.ChatLog) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if log.Id == uuid.Nil {
		log.Id = uuid.New()
	}
	log.CreatedAt = time.Now().Add(time.Duration(len(r.logs)) * time.Millisecond)
	copied := *log
	r.logs = append(r.logs, &copied)
	return nil
}

func (r *fakeChatLogRepo) FindAll(_ context.Context, specs ...specification.Specification) ([]*model.ChatLog, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var sessionID *uuid.UUID
	desc := false
	limit := 0
	for _, sp := range specs {
		switch s := sp.(type) {
		case specification.BySessionID:
			id := s.SessionID
			sessionID = &id
		case specification.OrderBy:
			desc = s.Desc
		case specification.Limit:
			limit = s.N
		}
	}

	result := make([]*model.ChatLog, 0)
	for _, entry := range r.logs {
		if sessionID != nil && entry.VisitorSessionId != *sessionID {
			continue
		}
		copied := *entry
		result = append(result, &copied)
	}
	sort.Slice(result, func(i, j int) bool {
		if desc {
			return result[i].CreatedAt.After(result[j].CreatedAt)
		}
		return result[i].CreatedAt.Before(result[j].CreatedAt)
	})
	if limit > 0 && len(result) > limit {
		result = result[:limit]
	}
	return result, nil
}

// fakeEmbedder produces tiny deterministic vectors keyed on text length.
type fakeEmbedder struct {
	mu    sync.Mutex
	calls int
}

func (e *fakeEmbedder) Embed(_ context.Context, texts []string) ([][]float32, error) {
	e.mu.Lock()
	e.calls++
	e.mu.Unlock()
	vectors := make([][]float32, len(texts))
	for i, text := range texts {
		vectors[i] = []float32{float32(len(text)), 1, 0}
	}
	return vectors, nil
}

func (e *fakeEmbedder) Dimension() int { return 3 }

// fakeStore is an in-memory vector store keeping insertion order so search
// results are stable.
type fakeStore struct {
	mu     sync.Mutex
	dims   map[string]int
	points map[string]map[string]vectorstore.Point
	order  map[string][]string
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		dims:   make(map[string]int),
		points: make(map[string]map[string]vectorstore.Point),
		order:  make(map[string][]string),
	}
}

func (s *fakeStore) CollectionExists(_ context.Context, collection string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, found := s.dims[collection]
	return found, nil
}

func (s *fakeStore) EnsureCollection(_ context.Context, collection string, vectorSize int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if dim, found := s.dims[collection]; found {
		if dim != vectorSize {
			return vectorstore.ErrDimensionMismatch
		}
		return nil
	}
	s.dims[collection] = vectorSize
	s.points[collection] = make(map[string]vectorstore.Point)
	return nil
}

func (s *fakeStore) Upsert(_ context.Context, collection string, points []vectorstore.Point) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, found := s.dims[collection]; !found {
		return fmt.Errorf("upsert into missing collection %q", collection)
	}
	for _, point := range points {
		if _, exists := s.points[collection][point.ID]; !exists {
			s.order[collection] = append(s.order[collection], point.ID)
		}
		s.points[collection][point.ID] = point
	}
	return nil
}

func (s *fakeStore) Search(_ context.Context, collection string, _ []float32, topK int, match map[string]interface{}) ([]vectorstore.Hit, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, found := s.dims[collection]; !found {
		return nil, vectorstore.ErrCollectionNotFound
	}
	hits := make([]vectorstore.Hit, 0)
	for _, id := range s.order[collection] {
		point := s.points[collection][id]
		matched := true
		for key, want := range match {
			if point.Payload[key] != want {
				matched = false
				break
			}
		}
		if !matched {
			continue
		}
		hits = append(hits, vectorstore.Hit{ID: point.ID, Score: 0.9, Payload: point.Payload})
		if len(hits) == topK {
			break
		}
	}
	return hits, nil
}

type fakeLLM struct {
	mu          sync.Mutex
	reply       string
	gotMessages []llm.Message
}

func (l *fakeLLM) Chat(_ context.Context, history []llm.Message, _ ...llm.Option) (string, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.gotMessages = history
	return l.reply, nil
}

func (l *fakeLLM) Generate(ctx context.Context, prompt string, options ...llm.Option) (string, error) {
	return l.Chat(ctx, []llm.Message{{Role: "user", Content: prompt}}, options...)
}

func (l *fakeLLM) setReply(reply string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.reply = reply
}

func (l *fakeLLM) lastMessages() []llm.Message {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.gotMessages
}

type fakePublisher struct {
	mu     sync.Mutex
	events []interface{}
}

func (p *fakePublisher) Publish(_ context.Context, payload interface{}) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, payload)
	return nil
}
