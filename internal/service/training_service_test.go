package service

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"tribe-chatbot-be/internal/constant"
	"tribe-chatbot-be/internal/dto"
	"tribe-chatbot-be/internal/model"
	"tribe-chatbot-be/internal/pkg/logger"
	"tribe-chatbot-be/pkg/chunker"
	"tribe-chatbot-be/pkg/crawler"
	"tribe-chatbot-be/pkg/extract"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func newTrainingFixture(t *testing.T) (*fakeChatbotRepo, *fakeStore, *fakePublisher, ITrainingService, *model.Chatbot) {
	t.Helper()

	chatbotRepo := newFakeChatbotRepo()
	store := newFakeStore()
	publisher := &fakePublisher{}

	ck, err := chunker.New(400, 50)
	assert.NoError(t, err)

	nop := logger.NewNopLogger()
	svc := NewTrainingService(chatbotRepo, ck, &fakeEmbedder{}, store, crawler.New(1, 5, nop), publisher, 16, nop)

	chatbot := &model.Chatbot{Name: "support-bot", CompanyId: uuid.New()}
	assert.NoError(t, chatbotRepo.Create(context.Background(), chatbot))

	return chatbotRepo, store, publisher, svc, chatbot
}

func TestTrainFromFilesIndexesChunks(t *testing.T) {
	_, store, publisher, svc, chatbot := newTrainingFixture(t)

	// 1200 words through a 400-word window with 50 overlap is 4 chunks.
	doc := extract.Document{
		Name: "handbook.txt",
		Data: []byte(strings.TrimSpace(strings.Repeat("word ", 1200))),
	}

	res, err := svc.TrainFromFiles(context.Background(), chatbot.CompanyId, chatbot.Id, []extract.Document{doc})
	assert.NoError(t, err)
	assert.Equal(t, 4, res.ChunksIndexed)
	assert.Empty(t, res.SkippedSources)

	tenantKey := TenantKeyFor(chatbot.CompanyId, chatbot.Id)
	assert.Equal(t, 3, store.dims[tenantKey])
	assert.Len(t, store.points[tenantKey], 4)
	for _, point := range store.points[tenantKey] {
		assert.Equal(t, "handbook.txt", point.Payload["source"])
		assert.Equal(t, tenantKey, point.Payload["tenant_key"])
		assert.Len(t, point.Vector, 3)
	}

	assert.Len(t, publisher.events, 1)
	event := publisher.events[0].(dto.TrainedEvent)
	assert.Equal(t, chatbot.Id.String(), event.ChatbotId)
	assert.Equal(t, tenantKey, event.TenantKey)
	assert.Equal(t, 4, event.ChunksIndexed)
}

func TestTrainFromFilesSkipsUnsupported(t *testing.T) {
	_, store, _, svc, chatbot := newTrainingFixture(t)

	docs := []extract.Document{
		{Name: "tool.exe", Data: []byte{0x4d, 0x5a}},
		{Name: "faq.txt", Data: []byte("Shipping takes three business days worldwide.")},
	}

	res, err := svc.TrainFromFiles(context.Background(), chatbot.CompanyId, chatbot.Id, docs)
	assert.NoError(t, err)
	assert.Equal(t, []string{"tool.exe"}, res.SkippedSources)
	assert.Equal(t, 1, res.ChunksIndexed)

	tenantKey := TenantKeyFor(chatbot.CompanyId, chatbot.Id)
	assert.Len(t, store.points[tenantKey], 1)
}

func TestTrainFromFilesNoContent(t *testing.T) {
	_, store, publisher, svc, chatbot := newTrainingFixture(t)

	docs := []extract.Document{
		{Name: "empty.txt", Data: []byte("   ")},
		{Name: "binary.bin", Data: []byte{0x00}},
	}

	res, err := svc.TrainFromFiles(context.Background(), chatbot.CompanyId, chatbot.Id, docs)
	assert.NoError(t, err)
	assert.Equal(t, 0, res.ChunksIndexed)
	assert.Equal(t, constant.TrainNoContentMessage, res.Message)
	assert.ElementsMatch(t, []string{"empty.txt", "binary.bin"}, res.SkippedSources)

	// Nothing was indexed: no collection, no event.
	tenantKey := TenantKeyFor(chatbot.CompanyId, chatbot.Id)
	_, exists := store.dims[tenantKey]
	assert.False(t, exists)
	assert.Empty(t, publisher.events)
}

func TestRetrainOverwritesInsteadOfDuplicating(t *testing.T) {
	_, store, _, svc, chatbot := newTrainingFixture(t)

	doc := extract.Document{
		Name: "handbook.txt",
		Data: []byte(strings.TrimSpace(strings.Repeat("word ", 1200))),
	}

	for i := 0; i < 2; i++ {
		res, err := svc.TrainFromFiles(context.Background(), chatbot.CompanyId, chatbot.Id, []extract.Document{doc})
		assert.NoError(t, err)
		assert.Equal(t, 4, res.ChunksIndexed)
	}

	tenantKey := TenantKeyFor(chatbot.CompanyId, chatbot.Id)
	assert.Len(t, store.points[tenantKey], 4)
}

func TestTrainFromFilesRejectsForeignChatbot(t *testing.T) {
	_, _, _, svc, chatbot := newTrainingFixture(t)

	doc := extract.Document{Name: "faq.txt", Data: []byte("hello")}
	_, err := svc.TrainFromFiles(context.Background(), uuid.New(), chatbot.Id, []extract.Document{doc})
	assert.ErrorIs(t, err, ErrForbidden)
}

func TestTrainFromFilesUnknownChatbot(t *testing.T) {
	_, _, _, svc, chatbot := newTrainingFixture(t)

	doc := extract.Document{Name: "faq.txt", Data: []byte("hello")}
	_, err := svc.TrainFromFiles(context.Background(), chatbot.CompanyId, uuid.New(), []extract.Document{doc})
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestTrainFromURL(t *testing.T) {
	_, store, _, svc, chatbot := newTrainingFixture(t)

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		switch r.URL.Path {
		case "/":
			w.Write([]byte(`<html><body><p>We sell artisanal coffee beans.</p><a href="/pricing">Pricing</a></body></html>`))
		case "/pricing":
			w.Write([]byte(`<html><body><p>A bag costs twelve dollars.</p></body></html>`))
		default:
			http.NotFound(w, r)
		}
	}))
	defer srv.Close()

	res, err := svc.TrainFromURL(context.Background(), chatbot.CompanyId, chatbot.Id, srv.URL)
	assert.NoError(t, err)
	assert.Equal(t, 2, res.ChunksIndexed)

	tenantKey := TenantKeyFor(chatbot.CompanyId, chatbot.Id)
	assert.Len(t, store.points[tenantKey], 2)

	sources := make(map[string]bool)
	for _, point := range store.points[tenantKey] {
		sources[point.Payload["source"].(string)] = true
	}
	assert.True(t, sources[srv.URL])
	assert.True(t, sources[srv.URL+"/pricing"])
}
