// internal/handlers/router_test.go
package handlers_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/tadoku-reader/storygen/internal/handlers"
	"github.com/tadoku-reader/storygen/internal/model"
	"github.com/tadoku-reader/storygen/internal/repository"
	"github.com/tadoku-reader/storygen/internal/service"
)

const cannedStoryResponse = `===TITLE-JP===
ねこのいちにち
===TITLE-EN===
A Day of a Cat
===STORY-JP===
わたしの猫はミケです。
===STORY-EN===
My cat is Mike.
===VOCABULARY===
猫 (ねこ) - cat - 猫が好きです
===GRAMMAR===
〜たい - want to - Genki 5
`

// newTestServer は静的レスポンスを返す生成器とインメモリDBでアプリ全体を組み立てます
func newTestServer(t *testing.T, generatorText string) (*httptest.Server, *gorm.DB) {
	t.Helper()
	db := setupTestDB(t)

	path := filepath.Join(t.TempDir(), "response.txt")
	require.NoError(t, os.WriteFile(path, []byte(generatorText), 0o600))

	storyService := service.NewStoryService(
		db,
		service.NewStaticGenerator(path),
		nil,
		repository.NewGormStoryRepository(),
		repository.NewGormVocabularyRepository(),
		repository.NewGormGrammarRepository(),
	)
	storyHandler := handlers.NewStoryHandler(storyService, testLogger)
	router := handlers.NewRouter(newTestConfig(), testLogger, db, storyHandler)

	server := httptest.NewServer(router)
	t.Cleanup(server.Close)
	return server, db
}

func generateBody() map[string]interface{} {
	return map[string]interface{}{
		"wanikani_level": 10,
		"genki_chapter":  5,
		"tadoku_level":   2,
		"length":         "medium",
		"topic":          "daily life",
	}
}

func TestRouter_GenerateAndFetchStory(t *testing.T) {
	server, db := newTestServer(t, cannedStoryResponse)
	headers := map[string]string{"X-User-ID": uuid.NewString()}

	body := sendRequest(t, server, httpRequestDetails{
		Method: http.MethodPost, Path: "/api/v1/stories/generate", Body: generateBody(), Headers: headers,
	}, http.StatusOK)

	var generated model.GenerateStoryResponse
	require.NoError(t, json.Unmarshal(body, &generated))
	assert.Equal(t, "ねこのいちにち\n\nわたしの猫はミケです。", generated.ContentJP)
	assert.Equal(t, "A Day of a Cat\n\nMy cat is Mike.", generated.ContentEN)
	assert.Equal(t, 10, generated.WaniKaniLevel)
	assert.Equal(t, 5, generated.GenkiChapter)
	assert.Equal(t, 2, generated.TadokuLevel)
	assert.Equal(t, model.LengthMedium, generated.Length)
	assert.Equal(t, "daily life", generated.Topic)

	assert.EqualValues(t, 1, countRows(t, db, &model.Story{}))
	assert.EqualValues(t, 1, countRows(t, db, &model.VocabularyEntry{}))
	assert.EqualValues(t, 1, countRows(t, db, &model.GrammarEntry{}))
	assert.EqualValues(t, 1, countRows(t, db, &model.StoryVocabulary{}))
	assert.EqualValues(t, 1, countRows(t, db, &model.StoryGrammar{}))

	// 旧パスからも同じストーリーを取得できる
	for _, prefix := range []string{"/api/v1/stories/", "/api/stories/"} {
		body = sendRequest(t, server, httpRequestDetails{Method: http.MethodGet, Path: prefix + generated.ID.String()}, http.StatusOK)
		var detail model.StoryDetailResponse
		require.NoError(t, json.Unmarshal(body, &detail))
		assert.Equal(t, "ねこのいちにち", detail.TitleJP)
		assert.Equal(t, "わたしの猫はミケです。", detail.StoryJP)
		require.Len(t, detail.Vocabulary, 1)
		assert.Equal(t, "ねこ", detail.Vocabulary[0].Reading)
		require.Len(t, detail.Grammar, 1)
		assert.Equal(t, "Genki 5", detail.Grammar[0].GenkiReference)
	}
}

func TestRouter_GenerateStory_MissingSectionStoresNothing(t *testing.T) {
	truncated := cannedStoryResponse[:strings.Index(cannedStoryResponse, "===GRAMMAR===")]
	server, db := newTestServer(t, truncated)

	body := sendRequest(t, server, httpRequestDetails{
		Method:  http.MethodPost,
		Path:    "/api/stories/generate",
		Body:    generateBody(),
		Headers: map[string]string{"X-User-ID": uuid.NewString()},
	}, http.StatusInternalServerError)

	errResp := decodeErrorResponse(t, body)
	assert.Equal(t, "Server error", errResp.Message)
	assert.Equal(t, "MALFORMED_RESPONSE", errResp.Code)
	assert.Contains(t, errResp.Error, "GRAMMAR")

	assert.EqualValues(t, 0, countRows(t, db, &model.Story{}))
	assert.EqualValues(t, 0, countRows(t, db, &model.VocabularyEntry{}))
}

func TestRouter_GenerateStory_ValidationNamesField(t *testing.T) {
	server, db := newTestServer(t, cannedStoryResponse)

	reqBody := generateBody()
	reqBody["topic"] = strings.Repeat("ね", 51)
	body := sendRequest(t, server, httpRequestDetails{
		Method:  http.MethodPost,
		Path:    "/api/v1/stories/generate",
		Body:    reqBody,
		Headers: map[string]string{"X-User-ID": uuid.NewString()},
	}, http.StatusBadRequest)

	errResp := decodeErrorResponse(t, body)
	assert.Equal(t, "VALIDATION_ERROR", errResp.Code)
	assert.Equal(t, "topic", errResp.Field)
	assert.EqualValues(t, 0, countRows(t, db, &model.Story{}))
}

func TestRouter_GenerateStory_BlankTopicRejected(t *testing.T) {
	server, _ := newTestServer(t, cannedStoryResponse)

	reqBody := generateBody()
	reqBody["topic"] = "   "
	body := sendRequest(t, server, httpRequestDetails{
		Method:  http.MethodPost,
		Path:    "/api/v1/stories/generate",
		Body:    reqBody,
		Headers: map[string]string{"X-User-ID": uuid.NewString()},
	}, http.StatusBadRequest)

	errResp := decodeErrorResponse(t, body)
	assert.Equal(t, "VALIDATION_ERROR", errResp.Code)
	assert.Equal(t, "topic", errResp.Field)
}

func TestRouter_GenerateStory_RequiresUser(t *testing.T) {
	server, _ := newTestServer(t, cannedStoryResponse)

	sendRequest(t, server, httpRequestDetails{
		Method: http.MethodPost, Path: "/api/v1/stories/generate", Body: generateBody(),
	}, http.StatusUnauthorized)
}

func TestRouter_Health(t *testing.T) {
	server, _ := newTestServer(t, cannedStoryResponse)

	body := sendRequest(t, server, httpRequestDetails{Method: http.MethodGet, Path: "/health"}, http.StatusOK)
	assert.Equal(t, "OK", string(body))
}
