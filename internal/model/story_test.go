package model

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func intPtr(v int) *int { return &v }

func validRequest() *GenerateStoryRequest {
	return &GenerateStoryRequest{
		WaniKaniLevel: intPtr(10),
		GenkiChapter:  intPtr(5),
		TadokuLevel:   intPtr(2),
		Length:        LengthMedium,
		Topic:         "daily life",
	}
}

func TestGenerateStoryRequest_Validate(t *testing.T) {
	tests := []struct {
		name      string
		modify    func(r *GenerateStoryRequest)
		wantField string
	}{
		{name: "valid", modify: func(r *GenerateStoryRequest) {}},
		{name: "tadoku zero allowed", modify: func(r *GenerateStoryRequest) { r.TadokuLevel = intPtr(0) }},
		{name: "bounds inclusive", modify: func(r *GenerateStoryRequest) {
			r.WaniKaniLevel, r.GenkiChapter, r.TadokuLevel = intPtr(60), intPtr(23), intPtr(5)
		}},
		{name: "topic 50 runes", modify: func(r *GenerateStoryRequest) { r.Topic = strings.Repeat("猫", 50) }},
		{name: "missing wanikani", modify: func(r *GenerateStoryRequest) { r.WaniKaniLevel = nil }, wantField: "wanikani_level"},
		{name: "wanikani zero", modify: func(r *GenerateStoryRequest) { r.WaniKaniLevel = intPtr(0) }, wantField: "wanikani_level"},
		{name: "genki 24", modify: func(r *GenerateStoryRequest) { r.GenkiChapter = intPtr(24) }, wantField: "genki_chapter"},
		{name: "tadoku 6", modify: func(r *GenerateStoryRequest) { r.TadokuLevel = intPtr(6) }, wantField: "tadoku_level"},
		{name: "missing length", modify: func(r *GenerateStoryRequest) { r.Length = "" }, wantField: "length"},
		{name: "unknown length", modify: func(r *GenerateStoryRequest) { r.Length = "epic" }, wantField: "length"},
		{name: "whitespace topic", modify: func(r *GenerateStoryRequest) { r.Topic = " \t " }, wantField: "topic"},
		{name: "topic 51 runes", modify: func(r *GenerateStoryRequest) { r.Topic = strings.Repeat("猫", 51) }, wantField: "topic"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := validRequest()
			tt.modify(req)
			err := req.Validate()
			if tt.wantField == "" {
				assert.NoError(t, err)
				return
			}
			var validationErr *ValidationError
			if assert.True(t, errors.As(err, &validationErr), "got %v", err) {
				assert.Equal(t, tt.wantField, validationErr.Field)
			}
			assert.True(t, errors.Is(err, ErrInvalidInput))
		})
	}

	var nilReq *GenerateStoryRequest
	assert.Error(t, nilReq.Validate())
}

func TestJoinSplitContent(t *testing.T) {
	joined := JoinContent("ねこ", "一行目\n\n二行目")
	assert.Equal(t, "ねこ\n\n一行目\n\n二行目", joined)

	title, body := SplitContent(joined)
	assert.Equal(t, "ねこ", title)
	assert.Equal(t, "一行目\n\n二行目", body)

	title, body = SplitContent("no blank line here")
	assert.Equal(t, "", title)
	assert.Equal(t, "no blank line here", body)
}

func TestStoryLength_Band(t *testing.T) {
	band, ok := LengthLong.Band()
	assert.True(t, ok)
	assert.Equal(t, LengthBand{Min: 700, Max: 1000}, band)

	_, ok = StoryLength("huge").Band()
	assert.False(t, ok)
}

func TestErrorKinds(t *testing.T) {
	upstream := &UpstreamError{Kind: ErrRateLimited, StatusCode: 429, Message: "slow down"}
	assert.True(t, errors.Is(upstream, ErrRateLimited))
	assert.False(t, errors.Is(upstream, ErrUpstreamAuth))
	assert.Equal(t, "text generation API rate limit exceeded (status 429): slow down", upstream.Error())

	malformed := &MalformedResponseError{Missing: []string{"GRAMMAR"}, Empty: []string{"STORY-EN"}}
	assert.True(t, errors.Is(malformed, ErrMalformedResponse))
	assert.Contains(t, malformed.Error(), "missing sections: GRAMMAR")
	assert.Contains(t, malformed.Error(), "empty sections: STORY-EN")

	cause := errors.New("boom")
	persist := &PersistenceError{Op: "link grammar", Err: cause}
	assert.True(t, errors.Is(persist, ErrPersistence))
	assert.True(t, errors.Is(persist, cause))
}
